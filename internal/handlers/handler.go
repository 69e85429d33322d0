package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yukikurage/project-tracker-api/internal/constants"
	apierrors "github.com/yukikurage/project-tracker-api/internal/errors"
	"github.com/yukikurage/project-tracker-api/internal/middleware"
	"github.com/yukikurage/project-tracker-api/internal/models"
)

// requireActor returns the request actor or writes a 401.
func requireActor(c *gin.Context) (*models.User, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return nil, false
	}
	return actor, true
}

// bindJSON decodes and validates the body, writing a 400 with the validation
// message on failure.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return false
	}
	return true
}

func uuidParam(c *gin.Context) string {
	return c.Param(constants.ParamUUID)
}

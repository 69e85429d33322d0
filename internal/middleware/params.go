package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yukikurage/project-tracker-api/internal/constants"
	apierrors "github.com/yukikurage/project-tracker-api/internal/errors"
)

// RequireUUIDParam rejects requests whose :uuid path segment is malformed.
func RequireUUIDParam() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := uuid.Parse(c.Param(constants.ParamUUID)); err != nil {
			apierrors.BadRequest(c, "Invalid identifier")
			c.Abort()
			return
		}
		c.Next()
	}
}

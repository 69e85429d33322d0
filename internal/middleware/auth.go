package middleware

import (
	"context"
	"errors"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/yukikurage/project-tracker-api/internal/constants"
	apierrors "github.com/yukikurage/project-tracker-api/internal/errors"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/services"
)

// ActorResolver loads the active user behind a session.
type ActorResolver interface {
	FindActive(ctx context.Context, id string) (*models.User, error)
}

// RequireAuth resolves the session user and stores it as the request actor.
// Sessions of blocked or deleted users are cleared.
func RequireAuth(users ActorResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID, ok := session.Get(constants.ContextKeyUserID).(string)
		if !ok || userID == "" {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		actor, err := users.FindActive(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				session.Clear()
				_ = session.Save()
				apierrors.Unauthorized(c, "")
				c.Abort()
				return
			}
			_ = c.Error(err)
			apierrors.InternalError(c, "")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, actor.ID)
		c.Set(constants.ContextKeyActor, actor)
		c.Next()
	}
}

// RequireAdmin rejects non-admin actors. It must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}
		if !actor.IsAdmin {
			apierrors.Forbidden(c, "Administrator privileges required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetActor retrieves the authenticated user from context
func GetActor(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(constants.ContextKeyActor)
	if !exists {
		return nil, false
	}

	actor, ok := value.(*models.User)
	if !ok || actor == nil {
		return nil, false
	}
	return actor, true
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return "", false
	}

	id, ok := userID.(string)
	return id, ok && id != ""
}

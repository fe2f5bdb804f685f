package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/teamboard/project-management-api/internal/constants"
	apierrors "github.com/teamboard/project-management-api/internal/errors"
	"github.com/teamboard/project-management-api/internal/models"
	"github.com/teamboard/project-management-api/internal/services"
)

// RequireAuth resolves the caller's identity from the bearer token. The
// token subject is the username; an unknown subject is rejected the same way
// as an invalid token.
func RequireAuth(tokenService *services.TokenService, authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, constants.BearerSchema) {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		username, err := tokenService.Verify(strings.TrimPrefix(header, constants.BearerSchema))
		if err != nil {
			apierrors.Unauthorized(c, "Could not validate credentials")
			c.Abort()
			return
		}

		user, err := authService.GetUserByUsername(username)
		if err != nil {
			apierrors.Unauthorized(c, "Could not validate credentials")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyUser, *user)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	id, ok := userID.(uint64)
	if !ok {
		return 0, false
	}
	return id, true
}

// GetCurrentUser retrieves the authenticated user from context
func GetCurrentUser(c *gin.Context) (models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return models.User{}, false
	}

	user, ok := value.(models.User)
	if !ok {
		return models.User{}, false
	}
	return user, true
}

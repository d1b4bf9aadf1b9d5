package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/devcollab/team-collab-api/internal/constants"
	apierrors "github.com/devcollab/team-collab-api/internal/errors"
	"github.com/devcollab/team-collab-api/internal/services"
)

// RequireAuth validates the access token presented as an
// "Authorization: Bearer" header or as an access_token cookie.
func RequireAuth(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		userID, err := tokens.ParseAccessToken(tokenString)
		if err != nil {
			apierrors.Unauthorized(c, "Invalid or expired access token")
			c.Abort()
			return
		}

		// Store user ID in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, userID)
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

func extractToken(c *gin.Context) string {
	bearer := c.GetHeader("Authorization")
	if len(bearer) >= 7 && strings.EqualFold(bearer[:7], "bearer ") {
		return bearer[7:]
	}

	if cookie, err := c.Cookie(constants.AccessTokenCookie); err == nil {
		return cookie
	}

	return ""
}

package middleware

import (
	"github.com/gin-gonic/gin"

	"guestdex-backend/internal/shared/response"
)

// RequireRole gates a route group to the given roles. Must run after
// AuthMiddleware.
func RequireRole(allowed ...string) gin.HandlerFunc {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			response.Unauthorized(c, "missing identity")
			c.Abort()
			return
		}

		if _, ok := allowedSet[identity.Role]; !ok {
			response.Forbidden(c, "insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"guestdex-backend/internal/shared/auth"
	"guestdex-backend/internal/shared/response"
	"guestdex-backend/pkg/jwt"
)

const identityKey = "identity"

// AuthMiddleware verifies the bearer token and stores the resolved
// Identity on the context. Handlers read it back with GetIdentity and
// pass it to services explicitly.
func AuthMiddleware(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := manager.Verify(parts[1])
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				response.Unauthorized(c, "token has expired")
			} else {
				response.Unauthorized(c, "invalid token")
			}
			c.Abort()
			return
		}

		c.Set(identityKey, auth.Identity{
			UserID:   claims.UserID,
			UserName: claims.UserName,
			Role:     claims.Role,
		})
		c.Next()
	}
}

// GetIdentity returns the Identity set by AuthMiddleware.
func GetIdentity(c *gin.Context) (auth.Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return auth.Identity{}, false
	}
	id, ok := v.(auth.Identity)
	return id, ok
}

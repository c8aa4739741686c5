package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Logger emits one structured line per request. The user id is included
// once AuthMiddleware has resolved an identity, so moderation actions
// are attributable from the access log alone.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		event := log.Info().
			Str("request_id", c.GetString("request_id")).
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", c.Writer.Status()).
			Dur("latency_ms", time.Since(start)).
			Str("ip", c.ClientIP())

		if ident, ok := GetIdentity(c); ok {
			event = event.Int64("user_id", ident.UserID).Str("role", ident.Role)
		}

		event.Msg("request completed")
	}
}

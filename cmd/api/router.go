package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"guestdex-backend/internal/shared/auth"
	"guestdex-backend/internal/shared/middleware"
	"guestdex-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		// Public directory reads and login need no token.
		c.UserHandler.RegisterPublicRoutes(v1)
		c.GuestHandler.RegisterPublicRoutes(v1)
		c.CollectibleHandler.RegisterPublicRoutes(v1)

		// Editors and above submit changes and read their own history.
		editor := v1.Group("")
		editor.Use(
			middleware.AuthMiddleware(c.JWTManager),
			middleware.RequireRole(auth.RoleEditor, auth.RoleModerator, auth.RoleAdmin),
		)
		c.ModerationHandler.RegisterEditorRoutes(editor)
		c.CollectibleHandler.RegisterEditorRoutes(editor)

		// Moderators and above work the review queue.
		moderation := v1.Group("/moderation")
		moderation.Use(
			middleware.AuthMiddleware(c.JWTManager),
			middleware.RequireRole(auth.RoleModerator, auth.RoleAdmin),
		)
		c.ModerationHandler.RegisterModeratorRoutes(moderation)

		// Account management is admin only.
		admin := v1.Group("/admin")
		admin.Use(
			middleware.AuthMiddleware(c.JWTManager),
			middleware.RequireRole(auth.RoleAdmin),
		)
		c.UserHandler.RegisterAdminRoutes(admin)
	}

	return router
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		dbStatus := "ok"
		if err := appCtx.DB.Ping(c.Request.Context()); err != nil {
			dbStatus = "error"
			health["status"] = "degraded"
		}

		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disabled"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = "error"
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"microblog-backend/internal/shared/middleware"
	"microblog-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupPostRoutes(v1, c)
		setupUserRoutes(v1, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/check-username", c.AuthHandler.CheckUsername)
		auth.POST("/signup/send-otp", c.AuthHandler.SendSignupOTP)
		auth.POST("/signup/verify", c.AuthHandler.VerifySignup)
		auth.POST("/login/send-otp", c.AuthHandler.SendLoginOTP)
		auth.POST("/login/verify", c.AuthHandler.VerifyLogin)
	}
}

// ========================================
// POST ROUTES
// ========================================
func setupPostRoutes(v1 *gin.RouterGroup, c *container.Container) {
	// Public reads
	v1.GET("/posts", c.PostHandler.Feed)
	v1.GET("/posts/:username", c.PostHandler.ListByUsername)

	// Owner-scoped, behind the session gate
	authed := v1.Group("")
	authed.Use(middleware.Auth(c.SessionRegistry))
	{
		authed.GET("/my-posts", c.PostHandler.ListMine)
		authed.POST("/post", c.PostHandler.Create)
		authed.PUT("/post/:id", c.PostHandler.Edit)
		authed.DELETE("/post/:id", c.PostHandler.Delete)
	}
}

// ========================================
// USER ROUTES
// ========================================
func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.GET("/user/:username", c.UserHandler.GetProfile)
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

		// Check the data directory is usable
		storageStatus := "ok"
		if err := os.MkdirAll(appCtx.Config.Storage.DataDir, 0o755); err != nil {
			storageStatus = fmt.Sprintf("error: %v", err)
			health["status"] = "degraded"
		}

		// Check redis when the registries use it
		registryStatus := "memory"
		if appCtx.Redis != nil {
			registryStatus = "ok"

			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Redis.HealthCheck(ctx); err != nil {
				registryStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		health["services"] = gin.H{
			"storage":  storageStatus,
			"registry": registryStatus,
		}

		statusCode := http.StatusOK
		if health["status"] != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}

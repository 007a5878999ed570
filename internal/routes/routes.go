// Package routes defines HTTP routes for the account service.
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/portfolio-platform/account-service/internal/config"
	"github.com/portfolio-platform/account-service/internal/handlers"
	"github.com/portfolio-platform/account-service/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Handlers bundles the HTTP handlers wired by Setup.
type Handlers struct {
	Auth   *handlers.AuthHandler
	User   *handlers.UserHandler
	Admin  *handlers.AdminHandler
	Health *handlers.HealthHandler
}

// Setup configures all HTTP routes. Guards are composed explicitly here:
// auth routes are public, user routes require a valid token, admin routes
// additionally require the admin role.
func Setup(router *gin.Engine, h Handlers, guard *middleware.Guard, cfg *config.Config, logger *zap.Logger) {
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: cfg.AllowedOrigins,
	}))

	// Health check
	router.GET("/health", h.Health.Check)
	// Metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", h.Auth.Signup)
			auth.POST("/login", h.Auth.Login)
		}

		user := api.Group("/user", guard.RequireAuth())
		{
			user.GET("/profile", h.User.GetProfile)
			user.PUT("/profile", h.User.UpdateProfile)
		}

		admin := api.Group("/admin", guard.RequireAdmin())
		{
			admin.GET("/users", h.Admin.ListUsers)
			admin.PATCH("/users/:id/status", h.Admin.UpdateStatus)
		}
	}
}

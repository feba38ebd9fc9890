package routes

import (
	"github.com/gin-gonic/gin"

	"garage/internal/infrastructure/permission"
	"garage/internal/interfaces/http/handlers"
	"garage/internal/interfaces/http/middleware"
)

// AuthRouteConfig holds dependencies for authentication and user routes.
type AuthRouteConfig struct {
	AuthHandler          *handlers.AuthHandler
	UserHandler          *handlers.UserHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupAuthRoutes configures login, current user and user provisioning routes.
func SetupAuthRoutes(api *gin.RouterGroup, cfg *AuthRouteConfig) {
	auth := api.Group("/auth")
	{
		auth.POST("/login", cfg.AuthHandler.Login)
		auth.GET("/me", cfg.AuthMiddleware.RequireAuth(), cfg.AuthHandler.GetCurrentUser)
	}

	users := api.Group("/users")
	users.Use(cfg.AuthMiddleware.RequireAuth())
	{
		users.POST("",
			cfg.PermissionMiddleware.RequirePermission(permission.ResourceUsers, permission.ActionWrite),
			cfg.UserHandler.CreateUser)
	}
}

package routes

import (
	"github.com/gin-gonic/gin"

	"garage/internal/infrastructure/permission"
	"garage/internal/interfaces/http/handlers"
	"garage/internal/interfaces/http/middleware"
)

// ClientRouteConfig holds dependencies for client and vehicle routes.
type ClientRouteConfig struct {
	ClientHandler        *handlers.ClientHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupClientRoutes configures client and vehicle routes.
func SetupClientRoutes(api *gin.RouterGroup, cfg *ClientRouteConfig) {
	perm := cfg.PermissionMiddleware
	h := cfg.ClientHandler

	clients := api.Group("/clients")
	clients.Use(cfg.AuthMiddleware.RequireAuth())
	{
		clients.POST("", perm.RequirePermission(permission.ResourceClients, permission.ActionWrite), h.CreateClient)
		clients.GET("", perm.RequirePermission(permission.ResourceClients, permission.ActionRead), h.ListClients)
		clients.GET("/:id", perm.RequirePermission(permission.ResourceClients, permission.ActionRead), h.GetClient)
		clients.DELETE("/:id", perm.RequirePermission(permission.ResourceClients, permission.ActionDelete), h.DeleteClient)
		clients.POST("/:id/vehicles", perm.RequirePermission(permission.ResourceVehicles, permission.ActionWrite), h.CreateVehicle)
	}

	vehicles := api.Group("/vehicles")
	vehicles.Use(cfg.AuthMiddleware.RequireAuth())
	{
		vehicles.GET("/:id", perm.RequirePermission(permission.ResourceVehicles, permission.ActionRead), h.GetVehicle)
	}
}

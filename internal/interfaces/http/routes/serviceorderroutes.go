package routes

import (
	"github.com/gin-gonic/gin"

	"garage/internal/infrastructure/permission"
	"garage/internal/interfaces/http/handlers"
	"garage/internal/interfaces/http/middleware"
)

// ServiceOrderRouteConfig holds dependencies for service order routes.
type ServiceOrderRouteConfig struct {
	ServiceOrderHandler  *handlers.ServiceOrderHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupServiceOrderRoutes configures the service order lifecycle routes.
func SetupServiceOrderRoutes(api *gin.RouterGroup, cfg *ServiceOrderRouteConfig) {
	perm := cfg.PermissionMiddleware
	h := cfg.ServiceOrderHandler
	can := func(action permission.Action) gin.HandlerFunc {
		return perm.RequirePermission(permission.ResourceServices, action)
	}

	services := api.Group("/services")
	services.Use(cfg.AuthMiddleware.RequireAuth())
	{
		// Collection operations
		services.POST("", can(permission.ActionWrite), h.CreateServiceOrder)
		services.GET("", can(permission.ActionRead), h.ListServiceOrders)

		// Named endpoints (must come BEFORE /:id)
		services.GET("/statistics", can(permission.ActionStats), h.GetStatistics)
		services.GET("/export", can(permission.ActionExport), h.ExportServiceOrders)

		services.GET("/:id", can(permission.ActionRead), h.GetServiceOrder)
		services.PUT("/:id", can(permission.ActionWrite), h.UpdateServiceOrder)
		services.DELETE("/:id", can(permission.ActionDelete), h.DeleteServiceOrder)

		services.POST("/:id/start", can(permission.ActionStart), h.StartServiceOrder)
		services.POST("/:id/complete", can(permission.ActionComplete), h.CompleteServiceOrder)
		services.POST("/:id/cancel", can(permission.ActionCancel), h.CancelServiceOrder)

		services.POST("/:id/items", can(permission.ActionItems), h.AddItem)
		services.DELETE("/:id/items/:itemId", can(permission.ActionItems), h.RemoveItem)
	}
}

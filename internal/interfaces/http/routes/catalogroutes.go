package routes

import (
	"github.com/gin-gonic/gin"

	"garage/internal/infrastructure/permission"
	"garage/internal/interfaces/http/handlers"
	"garage/internal/interfaces/http/middleware"
)

// CatalogRouteConfig holds dependencies for reference data routes.
type CatalogRouteConfig struct {
	CatalogHandler       *handlers.CatalogHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupCatalogRoutes configures statuses, payment methods, service centers and products.
func SetupCatalogRoutes(api *gin.RouterGroup, cfg *CatalogRouteConfig) {
	perm := cfg.PermissionMiddleware
	h := cfg.CatalogHandler

	reference := api.Group("")
	reference.Use(cfg.AuthMiddleware.RequireAuth())
	{
		reference.GET("/service-statuses", perm.RequirePermission(permission.ResourceCatalog, permission.ActionRead), h.ListServiceStatuses)
		reference.GET("/payment-methods", perm.RequirePermission(permission.ResourceCatalog, permission.ActionRead), h.ListPaymentMethods)
	}

	centers := api.Group("/service-centers")
	centers.Use(cfg.AuthMiddleware.RequireAuth())
	{
		centers.POST("", perm.RequirePermission(permission.ResourceServiceCenters, permission.ActionWrite), h.CreateServiceCenter)
		centers.GET("", perm.RequirePermission(permission.ResourceServiceCenters, permission.ActionRead), h.ListServiceCenters)
		centers.GET("/nearby", perm.RequirePermission(permission.ResourceServiceCenters, permission.ActionRead), h.FindNearbyServiceCenters)
	}

	products := api.Group("/products")
	products.Use(cfg.AuthMiddleware.RequireAuth())
	{
		products.POST("", perm.RequirePermission(permission.ResourceProducts, permission.ActionWrite), h.CreateProduct)
		products.GET("", perm.RequirePermission(permission.ResourceProducts, permission.ActionRead), h.ListProducts)
	}
}

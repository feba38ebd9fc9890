package http

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"garage/internal/infrastructure/config"
	"garage/internal/interfaces/http/middleware"
	"garage/internal/interfaces/http/routes"
	"garage/internal/shared/constants"
	"garage/internal/shared/logger"
)

// Router represents the HTTP router configuration
type Router struct {
	container *Container
}

// NewRouter wires the container behind a fresh gin engine.
func NewRouter(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) (*Router, error) {
	c, err := NewContainer(db, redisClient, cfg, log)
	if err != nil {
		return nil, err
	}
	return &Router{container: c}, nil
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	c := r.container
	engine := c.engine

	engine.Use(middleware.RequestID())
	engine.Use(middleware.CustomLogger(c.log))
	engine.Use(middleware.Recovery(c.log))
	engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	engine.Use(middleware.SecurityHeaders())
	engine.Use(middleware.Metrics(c.metrics))

	engine.GET("/health", c.hdlrs.healthHandler.Health)
	engine.GET("/metrics", gin.WrapH(c.metrics.Handler()))

	api := engine.Group(constants.APIPrefix)
	if c.rateLimiter != nil {
		api.Use(c.rateLimiter.Limit())
	}

	routes.SetupAuthRoutes(api, &routes.AuthRouteConfig{
		AuthHandler:          c.hdlrs.authHandler,
		UserHandler:          c.hdlrs.userHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})

	routes.SetupCatalogRoutes(api, &routes.CatalogRouteConfig{
		CatalogHandler:       c.hdlrs.catalogHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})

	routes.SetupClientRoutes(api, &routes.ClientRouteConfig{
		ClientHandler:        c.hdlrs.clientHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})

	routes.SetupServiceOrderRoutes(api, &routes.ServiceOrderRouteConfig{
		ServiceOrderHandler:  c.hdlrs.serviceOrderHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})
}

// GetEngine returns the gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.container.engine
}

// StartBackground starts scheduled jobs.
func (r *Router) StartBackground() {
	r.container.StartBackground()
}

// Shutdown releases background resources after the HTTP server stopped.
func (r *Router) Shutdown(ctx context.Context) error {
	return r.container.Shutdown(ctx)
}

package http

import (
	"garage/internal/infrastructure/config"
	"garage/internal/interfaces/http/handlers"
	"garage/internal/shared/logger"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	authHandler         *handlers.AuthHandler
	userHandler         *handlers.UserHandler
	clientHandler       *handlers.ClientHandler
	catalogHandler      *handlers.CatalogHandler
	serviceOrderHandler *handlers.ServiceOrderHandler
	healthHandler       *handlers.HealthHandler
}

func newHandlers(cfg *config.Config, uc *allUseCases, checks map[string]handlers.Pinger, log logger.Interface) *allHandlers {
	perPage := cfg.ServiceOrder.DefaultPerPage

	return &allHandlers{
		authHandler: handlers.NewAuthHandler(uc.login, uc.getCurrentUser, log),
		userHandler: handlers.NewUserHandler(uc.createUser, log),
		clientHandler: handlers.NewClientHandler(
			uc.createClient, uc.getClient, uc.listClients, uc.deleteClient,
			uc.createVehicle, uc.getVehicle, perPage, log,
		),
		catalogHandler: handlers.NewCatalogHandler(
			uc.createServiceCenter, uc.listServiceCenters, uc.nearbyCenters,
			uc.createProduct, uc.listProducts, uc.listPaymentMethods, uc.listStatuses,
			perPage, log,
		),
		serviceOrderHandler: handlers.NewServiceOrderHandler(uc.serviceOrders, perPage, log),
		healthHandler:       handlers.NewHealthHandler(checks, log),
	}
}

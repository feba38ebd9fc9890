package http

import (
	catalogUsecases "garage/internal/application/catalog/usecases"
	clientUsecases "garage/internal/application/client/usecases"
	serviceOrderUsecases "garage/internal/application/serviceorder/usecases"
	userUsecases "garage/internal/application/user/usecases"
	"garage/internal/infrastructure/auth"
	"garage/internal/infrastructure/config"
	"garage/internal/infrastructure/services"
	"garage/internal/interfaces/http/handlers"
	"garage/internal/shared/db"
	"garage/internal/shared/logger"
)

// allUseCases groups the use cases consumed by the handlers.
type allUseCases struct {
	serviceOrders handlers.ServiceOrderUseCases
	agendaJob     *serviceOrderUsecases.DailyAgendaJob

	createClient  *clientUsecases.CreateClientUseCase
	getClient     *clientUsecases.GetClientUseCase
	listClients   *clientUsecases.ListClientsUseCase
	deleteClient  *clientUsecases.DeleteClientUseCase
	createVehicle *clientUsecases.CreateVehicleUseCase
	getVehicle    *clientUsecases.GetVehicleUseCase

	createServiceCenter *catalogUsecases.CreateServiceCenterUseCase
	listServiceCenters  *catalogUsecases.ListServiceCentersUseCase
	nearbyCenters       *catalogUsecases.FindNearbyServiceCentersUseCase
	createProduct       *catalogUsecases.CreateProductUseCase
	listProducts        *catalogUsecases.ListProductsUseCase
	listPaymentMethods  *catalogUsecases.ListPaymentMethodsUseCase
	listStatuses        *catalogUsecases.ListStatusesUseCase

	login          *userUsecases.LoginUseCase
	getCurrentUser *userUsecases.GetCurrentUserUseCase
	createUser     *userUsecases.CreateUserUseCase
}

type useCaseDeps struct {
	repos   *repositories
	tx      db.Transactor
	effects serviceOrderUsecases.SideEffects
	agenda  serviceOrderUsecases.AgendaSender
	hasher  *auth.BcryptPasswordHasher
	tokens  *auth.JWTService
}

func newUseCases(cfg *config.Config, deps useCaseDeps, log logger.Interface) *allUseCases {
	r := deps.repos
	soCfg := cfg.ServiceOrder

	enricher := serviceOrderUsecases.NewEnricher(
		r.statusRepo, r.clientRepo, r.vehicleRepo, r.serviceCenterRepo,
		r.userRepo, r.paymentMethodRepo, r.productRepo,
	)
	numbers := services.NewServiceNumberGenerator(soCfg.NumberPrefix)

	uc := &allUseCases{
		serviceOrders: handlers.ServiceOrderUseCases{
			Create: serviceOrderUsecases.NewCreateServiceOrderUseCase(
				r.serviceOrderRepo, r.historyRepo, numbers,
				r.clientRepo, r.vehicleRepo, r.serviceCenterRepo, r.userRepo,
				r.paymentMethodRepo, r.productRepo,
				deps.tx, enricher, deps.effects, soCfg.NumberMaxAttempts, log,
			),
			Get: serviceOrderUsecases.NewGetServiceOrderUseCase(r.serviceOrderRepo, r.historyRepo, enricher, log),
			List: serviceOrderUsecases.NewListServiceOrdersUseCase(
				r.serviceOrderRepo, enricher, soCfg.DefaultPerPage, log,
			),
			Update: serviceOrderUsecases.NewUpdateServiceOrderUseCase(
				r.serviceOrderRepo, r.historyRepo,
				r.clientRepo, r.vehicleRepo, r.serviceCenterRepo, r.userRepo, r.paymentMethodRepo,
				enricher, deps.effects, log,
			),
			Delete: serviceOrderUsecases.NewDeleteServiceOrderUseCase(r.serviceOrderRepo, deps.effects, log),
			Start: serviceOrderUsecases.NewStartServiceOrderUseCase(
				r.serviceOrderRepo, r.historyRepo, r.userRepo, deps.tx, enricher, deps.effects, log,
			),
			Complete: serviceOrderUsecases.NewCompleteServiceOrderUseCase(
				r.serviceOrderRepo, r.historyRepo, r.paymentMethodRepo, r.vehicleRepo, r.productRepo,
				deps.tx, enricher, deps.effects, soCfg.DefaultPaymentMethod, log,
			),
			Cancel: serviceOrderUsecases.NewCancelServiceOrderUseCase(
				r.serviceOrderRepo, r.historyRepo, deps.tx, enricher, deps.effects, log,
			),
			AddItem: serviceOrderUsecases.NewAddItemUseCase(
				r.serviceOrderRepo, r.productRepo, deps.tx, enricher, deps.effects, log,
			),
			RemoveItem: serviceOrderUsecases.NewRemoveItemUseCase(
				r.serviceOrderRepo, deps.tx, enricher, deps.effects, log,
			),
			Statistics: serviceOrderUsecases.NewGetStatisticsUseCase(r.serviceOrderRepo, deps.effects, log),
			Export: serviceOrderUsecases.NewExportServiceOrdersUseCase(
				r.serviceOrderRepo, enricher, soCfg.ExportMaxRows, log,
			),
		},

		createClient:  clientUsecases.NewCreateClientUseCase(r.clientRepo, log),
		getClient:     clientUsecases.NewGetClientUseCase(r.clientRepo, r.vehicleRepo, log),
		listClients:   clientUsecases.NewListClientsUseCase(r.clientRepo, log),
		deleteClient:  clientUsecases.NewDeleteClientUseCase(r.clientRepo, log),
		createVehicle: clientUsecases.NewCreateVehicleUseCase(r.clientRepo, r.vehicleRepo, log),
		getVehicle:    clientUsecases.NewGetVehicleUseCase(r.vehicleRepo, log),

		createServiceCenter: catalogUsecases.NewCreateServiceCenterUseCase(r.serviceCenterRepo, log),
		listServiceCenters:  catalogUsecases.NewListServiceCentersUseCase(r.serviceCenterRepo, log),
		nearbyCenters:       catalogUsecases.NewFindNearbyServiceCentersUseCase(r.serviceCenterRepo, log),
		createProduct:       catalogUsecases.NewCreateProductUseCase(r.productRepo, log),
		listProducts:        catalogUsecases.NewListProductsUseCase(r.productRepo, log),
		listPaymentMethods:  catalogUsecases.NewListPaymentMethodsUseCase(r.paymentMethodRepo, log),
		listStatuses:        catalogUsecases.NewListStatusesUseCase(r.statusRepo, log),

		login:          userUsecases.NewLoginUseCase(r.userRepo, deps.hasher, deps.tokens, log),
		getCurrentUser: userUsecases.NewGetCurrentUserUseCase(r.userRepo, log),
		createUser:     userUsecases.NewCreateUserUseCase(r.userRepo, r.serviceCenterRepo, deps.hasher, log),
	}

	if deps.agenda != nil {
		uc.agendaJob = serviceOrderUsecases.NewDailyAgendaJob(r.serviceOrderRepo, deps.agenda, log)
	}

	return uc
}

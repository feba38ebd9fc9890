package http

import (
	"gorm.io/gorm"

	"garage/internal/domain/client"
	"garage/internal/domain/payment"
	"garage/internal/domain/product"
	"garage/internal/domain/servicecenter"
	"garage/internal/domain/serviceorder"
	"garage/internal/domain/user"
	"garage/internal/domain/vehicle"
	"garage/internal/infrastructure/repository"
	"garage/internal/shared/logger"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	statusRepo        *repository.ServiceStatusRepository
	clientRepo        client.Repository
	vehicleRepo       vehicle.Repository
	serviceCenterRepo servicecenter.Repository
	productRepo       product.Repository
	paymentMethodRepo payment.Repository
	userRepo          user.Repository
	serviceOrderRepo  serviceorder.Repository
	historyRepo       serviceorder.HistoryRepository
}

func newRepositories(db *gorm.DB, log logger.Interface) *repositories {
	statuses := repository.NewServiceStatusRepository(db, log)

	return &repositories{
		statusRepo:        statuses,
		clientRepo:        repository.NewClientRepository(db),
		vehicleRepo:       repository.NewVehicleRepository(db),
		serviceCenterRepo: repository.NewServiceCenterRepository(db),
		productRepo:       repository.NewProductRepository(db),
		paymentMethodRepo: repository.NewPaymentMethodRepository(db),
		userRepo:          repository.NewUserRepository(db),
		serviceOrderRepo:  repository.NewServiceOrderRepository(db, statuses, log),
		historyRepo:       repository.NewStatusHistoryRepository(db, statuses),
	}
}

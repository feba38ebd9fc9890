package usecases

import (
	"context"

	"garage/internal/application/serviceorder/dto"
	"garage/internal/domain/serviceorder"
	"garage/internal/shared/errors"
	"garage/internal/shared/logger"
)

type GetServiceOrderQuery struct {
	ServiceID uint
	Actor     Actor
}

type GetServiceOrderUseCase struct {
	orders   serviceorder.Repository
	history  serviceorder.HistoryRepository
	enricher *Enricher
	logger   logger.Interface
}

func NewGetServiceOrderUseCase(
	orders serviceorder.Repository,
	history serviceorder.HistoryRepository,
	enricher *Enricher,
	logger logger.Interface,
) *GetServiceOrderUseCase {
	return &GetServiceOrderUseCase{
		orders:   orders,
		history:  history,
		enricher: enricher,
		logger:   logger,
	}
}

func (uc *GetServiceOrderUseCase) Execute(ctx context.Context, query GetServiceOrderQuery) (*dto.ServiceOrderDTO, error) {
	if query.ServiceID == 0 {
		return nil, errors.NewValidationError("service ID is required")
	}

	order, err := loadAccessible(ctx, uc.orders, query.ServiceID, query.Actor)
	if err != nil {
		return nil, err
	}

	changes, err := uc.history.ListByService(ctx, order.ID())
	if err != nil {
		uc.logger.Errorw("failed to load status history", "service_id", order.ID(), "error", err)
		return nil, err
	}
	return uc.enricher.One(ctx, order, changes)
}

// loadAccessible fetches an order the actor is allowed to see. Orders of
// other centers are reported as missing.
func loadAccessible(ctx context.Context, orders serviceorder.Repository, id uint, actor Actor) (*serviceorder.ServiceOrder, error) {
	order, err := orders.GetByID(ctx, id)
	if err != nil {
		return nil, translateError(err)
	}
	if !actor.canAccess(order.ServiceCenterID()) {
		return nil, translateError(serviceorder.ErrNotFound)
	}
	return order, nil
}

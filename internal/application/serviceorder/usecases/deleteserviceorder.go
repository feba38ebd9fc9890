package usecases

import (
	"context"

	"garage/internal/domain/serviceorder"
	"garage/internal/shared/errors"
	"garage/internal/shared/logger"
)

type DeleteServiceOrderCommand struct {
	ServiceID uint
	Actor     Actor
}

// DeleteServiceOrderUseCase soft deletes an order. Its number stays reserved.
type DeleteServiceOrderUseCase struct {
	orders  serviceorder.Repository
	effects SideEffects
	logger  logger.Interface
}

func NewDeleteServiceOrderUseCase(
	orders serviceorder.Repository,
	effects SideEffects,
	logger logger.Interface,
) *DeleteServiceOrderUseCase {
	return &DeleteServiceOrderUseCase{
		orders:  orders,
		effects: effects.withDefaults(),
		logger:  logger,
	}
}

func (uc *DeleteServiceOrderUseCase) Execute(ctx context.Context, cmd DeleteServiceOrderCommand) error {
	uc.logger.Infow("executing delete service order use case", "service_id", cmd.ServiceID)

	if cmd.ServiceID == 0 {
		return errors.NewValidationError("service ID is required")
	}

	order, err := loadAccessible(ctx, uc.orders, cmd.ServiceID, cmd.Actor)
	if err != nil {
		return err
	}

	if err := uc.orders.Delete(ctx, order.ID()); err != nil {
		uc.logger.Errorw("failed to delete service order", "service_id", order.ID(), "error", err)
		return translateError(err)
	}

	uc.effects.invalidateStatistics(ctx, uc.logger)
	uc.logger.Infow("service order deleted successfully", "service_id", order.ID(), "service_number", order.ServiceNumber())
	return nil
}

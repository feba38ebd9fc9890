package usecases

import (
	"context"

	"garage/internal/application/serviceorder/dto"
	"garage/internal/domain/serviceorder"
	"garage/internal/shared/biztime"
	"garage/internal/shared/db"
	"garage/internal/shared/errors"
	"garage/internal/shared/logger"
)

type RemoveItemCommand struct {
	ServiceID uint
	ItemID    uint
	Actor     Actor
}

type RemoveItemUseCase struct {
	orders   serviceorder.Repository
	tx       db.Transactor
	enricher *Enricher
	effects  SideEffects
	logger   logger.Interface
}

func NewRemoveItemUseCase(
	orders serviceorder.Repository,
	tx db.Transactor,
	enricher *Enricher,
	effects SideEffects,
	logger logger.Interface,
) *RemoveItemUseCase {
	return &RemoveItemUseCase{
		orders:   orders,
		tx:       tx,
		enricher: enricher,
		effects:  effects.withDefaults(),
		logger:   logger,
	}
}

func (uc *RemoveItemUseCase) Execute(ctx context.Context, cmd RemoveItemCommand) (*dto.ServiceOrderDTO, error) {
	uc.logger.Infow("executing remove service item use case", "service_id", cmd.ServiceID, "item_id", cmd.ItemID)

	if cmd.ServiceID == 0 || cmd.ItemID == 0 {
		return nil, errors.NewValidationError("service ID and item ID are required")
	}

	var order *serviceorder.ServiceOrder
	err := uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		order, err = loadAccessible(ctx, uc.orders, cmd.ServiceID, cmd.Actor)
		if err != nil {
			return err
		}
		if _, err := order.RemoveItem(cmd.ItemID, biztime.NowUTC()); err != nil {
			return err
		}
		if err := uc.orders.DeleteItem(ctx, order.ID(), cmd.ItemID); err != nil {
			return err
		}
		return uc.orders.Update(ctx, order)
	})
	if err != nil {
		uc.logger.Warnw("failed to remove service item", "service_id", cmd.ServiceID, "item_id", cmd.ItemID, "error", err)
		return nil, translateError(err)
	}

	uc.effects.invalidateStatistics(ctx, uc.logger)
	uc.logger.Infow("service item removed successfully",
		"service_id", order.ID(),
		"total_amount", order.TotalAmount().StringFixed(2),
	)
	return uc.enricher.One(ctx, order, nil)
}

package usecases

import (
	"context"
	"strings"

	"garage/internal/application/serviceorder/dto"
	"garage/internal/domain/serviceorder"
	"garage/internal/shared/biztime"
	"garage/internal/shared/db"
	"garage/internal/shared/errors"
	"garage/internal/shared/logger"
)

type CancelServiceOrderCommand struct {
	ServiceID uint
	Reason    string
	Actor     Actor
}

type CancelServiceOrderUseCase struct {
	runner   *transitionRunner
	enricher *Enricher
	logger   logger.Interface
}

func NewCancelServiceOrderUseCase(
	orders serviceorder.Repository,
	history serviceorder.HistoryRepository,
	tx db.Transactor,
	enricher *Enricher,
	effects SideEffects,
	logger logger.Interface,
) *CancelServiceOrderUseCase {
	return &CancelServiceOrderUseCase{
		runner: &transitionRunner{
			orders:  orders,
			history: history,
			tx:      tx,
			effects: effects.withDefaults(),
			logger:  logger,
		},
		enricher: enricher,
		logger:   logger,
	}
}

func (uc *CancelServiceOrderUseCase) Execute(ctx context.Context, cmd CancelServiceOrderCommand) (*dto.ServiceOrderDTO, error) {
	uc.logger.Infow("executing cancel service order use case", "service_id", cmd.ServiceID)

	if cmd.ServiceID == 0 {
		return nil, errors.NewValidationError("service ID is required")
	}

	reason := strings.TrimSpace(cmd.Reason)
	order, history, err := uc.runner.run(ctx, transitionRequest{
		event:     "cancel",
		serviceID: cmd.ServiceID,
		actor:     cmd.Actor,
		reason:    &reason,
		apply: func(ctx context.Context, o *serviceorder.ServiceOrder) error {
			return o.Cancel(reason, biztime.NowUTC())
		},
	})
	if err != nil {
		return nil, err
	}
	return uc.enricher.One(ctx, order, history)
}

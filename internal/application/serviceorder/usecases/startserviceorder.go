package usecases

import (
	"context"

	"garage/internal/application/serviceorder/dto"
	"garage/internal/domain/serviceorder"
	"garage/internal/domain/status"
	"garage/internal/domain/user"
	"garage/internal/shared/biztime"
	"garage/internal/shared/db"
	"garage/internal/shared/errors"
	"garage/internal/shared/logger"
)

type StartServiceOrderCommand struct {
	ServiceID uint
	// TechnicianID replaces the assigned technician when set.
	TechnicianID *uint
	Actor        Actor
}

type StartServiceOrderUseCase struct {
	runner   *transitionRunner
	refs     *referenceChecker
	enricher *Enricher
	logger   logger.Interface
}

func NewStartServiceOrderUseCase(
	orders serviceorder.Repository,
	history serviceorder.HistoryRepository,
	users user.Repository,
	tx db.Transactor,
	enricher *Enricher,
	effects SideEffects,
	logger logger.Interface,
) *StartServiceOrderUseCase {
	return &StartServiceOrderUseCase{
		runner: &transitionRunner{
			orders:  orders,
			history: history,
			tx:      tx,
			effects: effects.withDefaults(),
			logger:  logger,
		},
		refs:     &referenceChecker{users: users},
		enricher: enricher,
		logger:   logger,
	}
}

func (uc *StartServiceOrderUseCase) Execute(ctx context.Context, cmd StartServiceOrderCommand) (*dto.ServiceOrderDTO, error) {
	uc.logger.Infow("executing start service order use case", "service_id", cmd.ServiceID)

	if cmd.ServiceID == 0 {
		return nil, errors.NewValidationError("service ID is required")
	}

	order, history, err := uc.runner.run(ctx, transitionRequest{
		event:     "start",
		serviceID: cmd.ServiceID,
		actor:     cmd.Actor,
		apply: func(ctx context.Context, o *serviceorder.ServiceOrder) error {
			if !serviceorder.CanTransition(o.Status(), status.InProgress) {
				return &serviceorder.TransitionError{Event: "start", From: o.Status()}
			}
			fe := fieldErrors{}
			if err := uc.refs.staff(ctx, fe, "technician_id", cmd.TechnicianID); err != nil {
				return err
			}
			if err := fe.err(); err != nil {
				return err
			}
			return o.Start(cmd.TechnicianID, biztime.NowUTC())
		},
	})
	if err != nil {
		return nil, err
	}
	return uc.enricher.One(ctx, order, history)
}

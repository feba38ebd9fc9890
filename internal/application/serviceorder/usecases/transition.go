package usecases

import (
	"context"

	"garage/internal/domain/serviceorder"
	"garage/internal/domain/status"
	"garage/internal/shared/biztime"
	"garage/internal/shared/db"
	"garage/internal/shared/logger"
)

// transitionRunner applies one lifecycle event inside a transaction: load,
// mutate, persist and append the history row. Side effects run after commit.
type transitionRunner struct {
	orders  serviceorder.Repository
	history serviceorder.HistoryRepository
	tx      db.Transactor
	effects SideEffects
	logger  logger.Interface
}

type transitionRequest struct {
	event     string
	serviceID uint
	actor     Actor
	reason    *string
	// apply mutates the order and performs any extra writes in the same transaction.
	apply func(ctx context.Context, o *serviceorder.ServiceOrder) error
}

func (r *transitionRunner) run(ctx context.Context, req transitionRequest) (*serviceorder.ServiceOrder, []*serviceorder.StatusChange, error) {
	var (
		order *serviceorder.ServiceOrder
		from  status.Name
	)
	now := biztime.NowUTC()

	err := r.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		order, err = loadAccessible(ctx, r.orders, req.serviceID, req.actor)
		if err != nil {
			return err
		}
		from = order.Status()

		if err := req.apply(ctx, order); err != nil {
			return err
		}
		if err := r.orders.Update(ctx, order); err != nil {
			return err
		}

		change := serviceorder.NewStatusChange(order.ID(), &from, order.Status(), req.actor.userID(), req.reason, now)
		change.Metadata["event"] = req.event
		return r.history.Append(ctx, change)
	})
	if err != nil {
		r.logger.Warnw("service order transition failed",
			"event", req.event,
			"service_id", req.serviceID,
			"error", err,
		)
		return nil, nil, translateError(err)
	}

	r.logger.Infow("service order transitioned",
		"event", req.event,
		"service_id", order.ID(),
		"from", from.String(),
		"to", order.Status().String(),
	)
	r.effects.transitioned(ctx, r.logger, req.event,
		serviceorder.NewStatusChangedEvent(order, &from, req.actor.userID(), req.reason, now))

	changes, err := r.history.ListByService(ctx, order.ID())
	if err != nil {
		r.logger.Warnw("failed to reload status history", "service_id", order.ID(), "error", err)
		changes = nil
	}
	return order, changes, nil
}

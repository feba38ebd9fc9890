package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"garage/internal/application/serviceorder/dto"
	"garage/internal/domain/payment"
	"garage/internal/domain/product"
	"garage/internal/domain/serviceorder"
	"garage/internal/domain/status"
	"garage/internal/domain/vehicle"
	"garage/internal/shared/biztime"
	"garage/internal/shared/db"
	"garage/internal/shared/errors"
	"garage/internal/shared/logger"
)

type CompleteServiceOrderCommand struct {
	ServiceID uint
	// PaymentMethodID replaces the recorded payment method when set.
	PaymentMethodID *uint
	Actor           Actor
}

// CompleteServiceOrderUseCase closes an order, syncs the vehicle mileage and
// consumes product stock in one transaction.
type CompleteServiceOrderUseCase struct {
	runner         *transitionRunner
	refs           *referenceChecker
	payments       payment.Repository
	vehicles       vehicle.Repository
	products       product.Repository
	enricher       *Enricher
	defaultPayment string
	logger         logger.Interface
}

func NewCompleteServiceOrderUseCase(
	orders serviceorder.Repository,
	history serviceorder.HistoryRepository,
	payments payment.Repository,
	vehicles vehicle.Repository,
	products product.Repository,
	tx db.Transactor,
	enricher *Enricher,
	effects SideEffects,
	defaultPayment string,
	logger logger.Interface,
) *CompleteServiceOrderUseCase {
	return &CompleteServiceOrderUseCase{
		runner: &transitionRunner{
			orders:  orders,
			history: history,
			tx:      tx,
			effects: effects.withDefaults(),
			logger:  logger,
		},
		refs:           &referenceChecker{payments: payments},
		payments:       payments,
		vehicles:       vehicles,
		products:       products,
		enricher:       enricher,
		defaultPayment: defaultPayment,
		logger:         logger,
	}
}

func (uc *CompleteServiceOrderUseCase) Execute(ctx context.Context, cmd CompleteServiceOrderCommand) (*dto.ServiceOrderDTO, error) {
	uc.logger.Infow("executing complete service order use case", "service_id", cmd.ServiceID)

	if cmd.ServiceID == 0 {
		return nil, errors.NewValidationError("service ID is required")
	}

	order, history, err := uc.runner.run(ctx, transitionRequest{
		event:     "complete",
		serviceID: cmd.ServiceID,
		actor:     cmd.Actor,
		apply: func(ctx context.Context, o *serviceorder.ServiceOrder) error {
			return uc.complete(ctx, o, cmd.PaymentMethodID)
		},
	})
	if err != nil {
		return nil, err
	}
	return uc.enricher.One(ctx, order, history)
}

func (uc *CompleteServiceOrderUseCase) complete(ctx context.Context, o *serviceorder.ServiceOrder, paymentMethodID *uint) error {
	if !serviceorder.CanTransition(o.Status(), status.Completed) {
		return &serviceorder.TransitionError{Event: "complete", From: o.Status()}
	}

	fe := fieldErrors{}
	if err := uc.refs.paymentMethod(ctx, fe, paymentMethodID); err != nil {
		return err
	}
	if err := fe.err(); err != nil {
		return err
	}

	if paymentMethodID == nil && o.PaymentMethodID() == nil && uc.defaultPayment != "" {
		pm, err := uc.payments.GetBySlug(ctx, uc.defaultPayment)
		switch {
		case err == nil && pm.IsActive():
			id := pm.ID()
			paymentMethodID = &id
		case err != nil && !stderrors.Is(err, payment.ErrNotFound):
			return err
		default:
			uc.logger.Warnw("default payment method unavailable", "slug", uc.defaultPayment)
		}
	}

	if err := o.Complete(paymentMethodID, biztime.NowUTC()); err != nil {
		return err
	}

	if m := o.MileageAtService(); m != nil {
		raised, err := uc.vehicles.RaiseMileage(ctx, o.VehicleID(), *m)
		if err != nil {
			return fmt.Errorf("failed to sync vehicle mileage: %w", err)
		}
		if raised {
			uc.logger.Infow("vehicle mileage updated", "vehicle_id", o.VehicleID(), "mileage", *m)
		}
	}

	for _, it := range o.Items() {
		pid := it.ProductID()
		if pid == nil {
			continue
		}
		if err := uc.products.DecrementStock(ctx, *pid, it.Quantity()); err != nil {
			switch {
			case stderrors.Is(err, product.ErrInsufficientStock):
				return errors.NewFieldValidationError("items", fmt.Sprintf("Insufficient stock for product %d", *pid))
			case stderrors.Is(err, product.ErrNotFound):
				uc.logger.Warnw("product of service item no longer exists", "product_id", *pid, "service_id", o.ID())
				continue
			}
			return err
		}
	}
	return nil
}

package usecases

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"garage/internal/application/serviceorder/dto"
	"garage/internal/domain/client"
	"garage/internal/domain/payment"
	"garage/internal/domain/servicecenter"
	"garage/internal/domain/serviceorder"
	"garage/internal/domain/user"
	"garage/internal/domain/vehicle"
	"garage/internal/shared/biztime"
	"garage/internal/shared/errors"
	"garage/internal/shared/logger"
	"garage/internal/shared/services/markdown"
)

// UpdateServiceOrderCommand is a partial update; nil fields are untouched.
type UpdateServiceOrderCommand struct {
	ServiceID        uint
	ClientID         *uint
	VehicleID        *uint
	ServiceCenterID  *uint
	TechnicianID     *uint
	AttendantID      *uint
	PaymentMethodID  *uint
	ScheduledDate    *time.Time
	Description      *string
	Complaint        *string
	Diagnosis        *string
	Solution         *string
	Observations     *string
	InternalNotes    *string
	LaborCost        *decimal.Decimal
	Discount         *decimal.Decimal
	MileageAtService *int
	FuelLevel        *string
	Priority         *string
	WarrantyMonths   *int
	Actor            Actor
}

type UpdateServiceOrderUseCase struct {
	orders   serviceorder.Repository
	history  serviceorder.HistoryRepository
	refs     *referenceChecker
	enricher *Enricher
	effects  SideEffects
	logger   logger.Interface
}

func NewUpdateServiceOrderUseCase(
	orders serviceorder.Repository,
	history serviceorder.HistoryRepository,
	clients client.Repository,
	vehicles vehicle.Repository,
	centers servicecenter.Repository,
	users user.Repository,
	payments payment.Repository,
	enricher *Enricher,
	effects SideEffects,
	logger logger.Interface,
) *UpdateServiceOrderUseCase {
	return &UpdateServiceOrderUseCase{
		orders:  orders,
		history: history,
		refs: &referenceChecker{
			clients:  clients,
			vehicles: vehicles,
			centers:  centers,
			users:    users,
			payments: payments,
		},
		enricher: enricher,
		effects:  effects.withDefaults(),
		logger:   logger,
	}
}

func (uc *UpdateServiceOrderUseCase) Execute(ctx context.Context, cmd UpdateServiceOrderCommand) (*dto.ServiceOrderDTO, error) {
	uc.logger.Infow("executing update service order use case", "service_id", cmd.ServiceID)

	if cmd.ServiceID == 0 {
		return nil, errors.NewValidationError("service ID is required")
	}

	order, err := loadAccessible(ctx, uc.orders, cmd.ServiceID, cmd.Actor)
	if err != nil {
		return nil, err
	}
	if cmd.ServiceCenterID != nil && !cmd.Actor.canAccess(*cmd.ServiceCenterID) {
		return nil, errors.NewForbiddenError("You cannot move service orders to another service center")
	}

	fe := fieldErrors{}
	if !order.IsTerminal() {
		if err := uc.checkReferences(ctx, fe, order, cmd); err != nil {
			return nil, err
		}
	}
	params := serviceorder.UpdateParams{
		ClientID:         cmd.ClientID,
		VehicleID:        cmd.VehicleID,
		ServiceCenterID:  cmd.ServiceCenterID,
		TechnicianID:     cmd.TechnicianID,
		AttendantID:      cmd.AttendantID,
		PaymentMethodID:  cmd.PaymentMethodID,
		ScheduledDate:    cmd.ScheduledDate,
		Description:      cmd.Description,
		Complaint:        markdown.Clean(cmd.Complaint),
		Diagnosis:        markdown.Clean(cmd.Diagnosis),
		Solution:         markdown.Clean(cmd.Solution),
		Observations:     markdown.Clean(cmd.Observations),
		InternalNotes:    markdown.Clean(cmd.InternalNotes),
		LaborCost:        cmd.LaborCost,
		Discount:         cmd.Discount,
		MileageAtService: cmd.MileageAtService,
		WarrantyMonths:   cmd.WarrantyMonths,
	}
	if cmd.FuelLevel != nil {
		fl, err := serviceorder.ParseFuelLevel(*cmd.FuelLevel)
		if err != nil {
			fe.add("fuel_level", "The selected fuel_level is invalid.")
		} else {
			params.FuelLevel = &fl
		}
	}
	if cmd.Priority != nil {
		p, err := serviceorder.ParsePriority(*cmd.Priority)
		if err != nil {
			fe.add("priority", "The selected priority is invalid.")
		} else {
			params.Priority = &p
		}
	}
	if err := fe.err(); err != nil {
		return nil, err
	}

	clamped, err := order.Update(params, biztime.NowUTC())
	if err != nil {
		uc.logger.Warnw("service order update rejected", "service_id", order.ID(), "error", err)
		return nil, translateError(err)
	}
	if clamped {
		uc.logger.Warnw("service order total clamped to zero", "service_id", order.ID())
	}

	if err := uc.orders.Update(ctx, order); err != nil {
		uc.logger.Errorw("failed to update service order", "service_id", order.ID(), "error", err)
		return nil, translateError(err)
	}

	uc.effects.invalidateStatistics(ctx, uc.logger)
	uc.logger.Infow("service order updated successfully", "service_id", order.ID())

	changes, err := uc.history.ListByService(ctx, order.ID())
	if err != nil {
		return nil, err
	}
	return uc.enricher.One(ctx, order, changes)
}

// checkReferences validates changed foreign keys. The vehicle is checked
// against the resulting client whenever either of them changes.
func (uc *UpdateServiceOrderUseCase) checkReferences(ctx context.Context, fe fieldErrors, order *serviceorder.ServiceOrder, cmd UpdateServiceOrderCommand) error {
	if cmd.ClientID != nil || cmd.VehicleID != nil {
		clientID, vehicleID := order.ClientID(), order.VehicleID()
		if cmd.ClientID != nil {
			clientID = *cmd.ClientID
		}
		if cmd.VehicleID != nil {
			vehicleID = *cmd.VehicleID
		}
		if err := uc.refs.clientAndVehicle(ctx, fe, clientID, vehicleID); err != nil {
			return err
		}
	}
	if cmd.ServiceCenterID != nil {
		if err := uc.refs.center(ctx, fe, *cmd.ServiceCenterID); err != nil {
			return err
		}
	}
	if err := uc.refs.staff(ctx, fe, "technician_id", cmd.TechnicianID); err != nil {
		return err
	}
	if err := uc.refs.staff(ctx, fe, "attendant_id", cmd.AttendantID); err != nil {
		return err
	}
	return uc.refs.paymentMethod(ctx, fe, cmd.PaymentMethodID)
}

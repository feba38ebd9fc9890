package usecases

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"garage/internal/application/serviceorder/dto"
	"garage/internal/domain/client"
	"garage/internal/domain/payment"
	"garage/internal/domain/product"
	"garage/internal/domain/servicecenter"
	"garage/internal/domain/serviceorder"
	"garage/internal/domain/user"
	"garage/internal/domain/vehicle"
	"garage/internal/shared/biztime"
	"garage/internal/shared/db"
	"garage/internal/shared/errors"
	"garage/internal/shared/logger"
	"garage/internal/shared/services/markdown"
)

const defaultNumberAttempts = 5

type CreateItemInput struct {
	ProductID *uint
	Quantity  int
	// UnitPrice defaults to the product's current price.
	UnitPrice *decimal.Decimal
	Discount  decimal.Decimal
	Notes     *string
}

type CreateServiceOrderCommand struct {
	ClientID         uint
	VehicleID        uint
	ServiceCenterID  uint
	TechnicianID     *uint
	AttendantID      *uint
	PaymentMethodID  *uint
	ScheduledDate    *time.Time
	Description      string
	Complaint        *string
	Diagnosis        *string
	Solution         *string
	Observations     *string
	InternalNotes    *string
	LaborCost        decimal.Decimal
	Discount         decimal.Decimal
	MileageAtService *int
	FuelLevel        *string
	Priority         string
	WarrantyMonths   int
	Items            []CreateItemInput
	Actor            Actor
}

type CreateServiceOrderUseCase struct {
	orders      serviceorder.Repository
	history     serviceorder.HistoryRepository
	numbers     serviceorder.NumberGenerator
	products    product.Repository
	refs        *referenceChecker
	tx          db.Transactor
	enricher    *Enricher
	effects     SideEffects
	maxAttempts int
	logger      logger.Interface
}

func NewCreateServiceOrderUseCase(
	orders serviceorder.Repository,
	history serviceorder.HistoryRepository,
	numbers serviceorder.NumberGenerator,
	clients client.Repository,
	vehicles vehicle.Repository,
	centers servicecenter.Repository,
	users user.Repository,
	payments payment.Repository,
	products product.Repository,
	tx db.Transactor,
	enricher *Enricher,
	effects SideEffects,
	maxAttempts int,
	logger logger.Interface,
) *CreateServiceOrderUseCase {
	if maxAttempts <= 0 {
		maxAttempts = defaultNumberAttempts
	}
	return &CreateServiceOrderUseCase{
		orders:   orders,
		history:  history,
		numbers:  numbers,
		products: products,
		refs: &referenceChecker{
			clients:  clients,
			vehicles: vehicles,
			centers:  centers,
			users:    users,
			payments: payments,
		},
		tx:          tx,
		enricher:    enricher,
		effects:     effects.withDefaults(),
		maxAttempts: maxAttempts,
		logger:      logger,
	}
}

func (uc *CreateServiceOrderUseCase) Execute(ctx context.Context, cmd CreateServiceOrderCommand) (*dto.ServiceOrderDTO, error) {
	uc.logger.Infow("executing create service order use case",
		"client_id", cmd.ClientID,
		"vehicle_id", cmd.VehicleID,
		"service_center_id", cmd.ServiceCenterID,
		"items", len(cmd.Items),
	)

	if cmd.ServiceCenterID == 0 && cmd.Actor.ServiceCenterID != nil {
		cmd.ServiceCenterID = *cmd.Actor.ServiceCenterID
	}
	if cmd.ServiceCenterID != 0 && !cmd.Actor.canAccess(cmd.ServiceCenterID) {
		return nil, errors.NewForbiddenError("You cannot create service orders for another service center")
	}

	now := biztime.NowUTC()
	order, err := uc.buildOrder(ctx, cmd, now)
	if err != nil {
		uc.logger.Warnw("service order rejected", "error", err)
		return nil, err
	}

	var created *serviceorder.StatusChange
	for attempt := 1; ; attempt++ {
		created, err = uc.persist(ctx, order, cmd.Actor, now)
		if err == nil {
			break
		}
		if !errors.IsDuplicateError(err) {
			uc.logger.Errorw("failed to create service order", "error", err)
			return nil, translateError(err)
		}
		if attempt >= uc.maxAttempts {
			uc.logger.Errorw("service number allocation exhausted", "attempts", attempt, "error", err)
			return nil, errors.NewConflictError("Could not allocate a unique service number, please retry")
		}
		uc.logger.Warnw("service number collision, retrying", "number", order.ServiceNumber(), "attempt", attempt)
	}

	uc.logger.Infow("service order created successfully",
		"service_id", order.ID(),
		"service_number", order.ServiceNumber(),
		"total_amount", order.TotalAmount().StringFixed(2),
	)
	uc.effects.transitioned(ctx, uc.logger, "create",
		serviceorder.NewStatusChangedEvent(order, nil, cmd.Actor.userID(), nil, now))

	return uc.enricher.One(ctx, order, []*serviceorder.StatusChange{created})
}

// buildOrder validates the command and returns the unsaved aggregate with its items.
func (uc *CreateServiceOrderUseCase) buildOrder(ctx context.Context, cmd CreateServiceOrderCommand, now time.Time) (*serviceorder.ServiceOrder, error) {
	fe := fieldErrors{}

	if err := uc.refs.clientAndVehicle(ctx, fe, cmd.ClientID, cmd.VehicleID); err != nil {
		return nil, err
	}
	if err := uc.refs.center(ctx, fe, cmd.ServiceCenterID); err != nil {
		return nil, err
	}
	if err := uc.refs.staff(ctx, fe, "technician_id", cmd.TechnicianID); err != nil {
		return nil, err
	}
	if err := uc.refs.staff(ctx, fe, "attendant_id", cmd.AttendantID); err != nil {
		return nil, err
	}
	if err := uc.refs.paymentMethod(ctx, fe, cmd.PaymentMethodID); err != nil {
		return nil, err
	}

	var fuel *serviceorder.FuelLevel
	if cmd.FuelLevel != nil && *cmd.FuelLevel != "" {
		fl, err := serviceorder.ParseFuelLevel(*cmd.FuelLevel)
		if err != nil {
			fe.add("fuel_level", "The selected fuel_level is invalid.")
		} else {
			fuel = &fl
		}
	}
	priority, err := serviceorder.ParsePriority(cmd.Priority)
	if err != nil {
		fe.add("priority", "The selected priority is invalid.")
		priority = serviceorder.PriorityNormal
	}

	order, err := serviceorder.NewServiceOrder(serviceorder.NewParams{
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
		FuelLevel:        fuel,
		Priority:         priority,
		WarrantyMonths:   cmd.WarrantyMonths,
	}, now)
	if err != nil {
		if err := fe.merge("", err); err != nil {
			return nil, err
		}
	}

	items, err := uc.buildItems(ctx, fe, cmd.Items, now)
	if err != nil {
		return nil, err
	}
	if order != nil {
		for i, it := range items {
			if it == nil {
				continue
			}
			if err := order.AddItem(it, now); err != nil {
				if err := fe.merge(itemPrefix(i), err); err != nil {
					return nil, err
				}
			}
		}
	}

	if err := fe.err(); err != nil {
		return nil, err
	}
	if order.RecalculateTotal() {
		uc.logger.Warnw("service order total clamped to zero",
			"labor_cost", order.LaborCost().String(),
			"discount", order.Discount().String(),
		)
	}
	return order, nil
}

// buildItems returns one entry per input; entries that failed validation are nil.
func (uc *CreateServiceOrderUseCase) buildItems(ctx context.Context, fe fieldErrors, inputs []CreateItemInput, now time.Time) ([]*serviceorder.Item, error) {
	var productIDs []uint
	for _, in := range inputs {
		if in.ProductID != nil {
			productIDs = append(productIDs, *in.ProductID)
		}
	}
	products, err := uc.products.GetByIDs(ctx, unique(productIDs))
	if err != nil {
		return nil, err
	}

	items := make([]*serviceorder.Item, len(inputs))
	for i, in := range inputs {
		prefix := itemPrefix(i)
		price, ok := snapshotPrice(in.ProductID, in.UnitPrice, products)
		if in.ProductID != nil && *in.ProductID != 0 {
			if p, found := products[*in.ProductID]; !found || !p.IsActive() {
				fe.add(prefix+"product_id", "The selected product_id is invalid.")
				continue
			}
		}
		if !ok {
			fe.add(prefix+"unit_price", "unit_price is required for lines without a product")
			continue
		}
		it, err := serviceorder.NewItem(in.ProductID, in.Quantity, price, in.Discount, markdown.Clean(in.Notes), now)
		if err != nil {
			if err := fe.merge(prefix, err); err != nil {
				return nil, err
			}
			continue
		}
		items[i] = it
	}
	return items, nil
}

func (uc *CreateServiceOrderUseCase) persist(ctx context.Context, order *serviceorder.ServiceOrder, actor Actor, now time.Time) (*serviceorder.StatusChange, error) {
	number, err := uc.nextNumber(ctx)
	if err != nil {
		return nil, err
	}
	if err := order.SetServiceNumber(number); err != nil {
		return nil, err
	}

	var change *serviceorder.StatusChange
	err = uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.orders.Create(ctx, order); err != nil {
			return err
		}
		change = serviceorder.NewStatusChange(order.ID(), nil, order.Status(), actor.userID(), nil, now)
		change.Metadata["service_number"] = order.ServiceNumber()
		return uc.history.Append(ctx, change)
	})
	if err != nil {
		return nil, err
	}
	return change, nil
}

// nextNumber skips candidates already taken, including by soft-deleted orders.
func (uc *CreateServiceOrderUseCase) nextNumber(ctx context.Context) (string, error) {
	var last string
	for i := 0; i < uc.maxAttempts; i++ {
		number, err := uc.numbers.Generate(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to generate service number: %w", err)
		}
		exists, err := uc.orders.NumberExists(ctx, number)
		if err != nil {
			return "", err
		}
		if !exists {
			return number, nil
		}
		last = number
	}
	// let the insert fail on the unique key so the caller counts the attempt
	return last, nil
}

func snapshotPrice(productID *uint, given *decimal.Decimal, products map[uint]*product.Product) (decimal.Decimal, bool) {
	if given != nil {
		return *given, true
	}
	if productID != nil {
		if p, ok := products[*productID]; ok {
			return p.Price(), true
		}
	}
	return decimal.Zero, false
}

func itemPrefix(i int) string {
	return "items." + strconv.Itoa(i) + "."
}

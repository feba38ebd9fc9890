package usecases

import (
	"context"
	stderrors "errors"

	"github.com/shopspring/decimal"

	"garage/internal/application/serviceorder/dto"
	"garage/internal/domain/product"
	"garage/internal/domain/serviceorder"
	"garage/internal/shared/biztime"
	"garage/internal/shared/db"
	"garage/internal/shared/errors"
	"garage/internal/shared/logger"
	"garage/internal/shared/services/markdown"
)

type AddItemCommand struct {
	ServiceID uint
	ProductID *uint
	Quantity  int
	// UnitPrice defaults to the product's current price.
	UnitPrice *decimal.Decimal
	Discount  decimal.Decimal
	Notes     *string
	Actor     Actor
}

// AddItemUseCase appends a line and persists the new total in one transaction.
type AddItemUseCase struct {
	orders   serviceorder.Repository
	products product.Repository
	tx       db.Transactor
	enricher *Enricher
	effects  SideEffects
	logger   logger.Interface
}

func NewAddItemUseCase(
	orders serviceorder.Repository,
	products product.Repository,
	tx db.Transactor,
	enricher *Enricher,
	effects SideEffects,
	logger logger.Interface,
) *AddItemUseCase {
	return &AddItemUseCase{
		orders:   orders,
		products: products,
		tx:       tx,
		enricher: enricher,
		effects:  effects.withDefaults(),
		logger:   logger,
	}
}

func (uc *AddItemUseCase) Execute(ctx context.Context, cmd AddItemCommand) (*dto.ServiceOrderDTO, error) {
	uc.logger.Infow("executing add service item use case", "service_id", cmd.ServiceID, "product_id", cmd.ProductID)

	if cmd.ServiceID == 0 {
		return nil, errors.NewValidationError("service ID is required")
	}

	var order *serviceorder.ServiceOrder
	err := uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		order, err = loadAccessible(ctx, uc.orders, cmd.ServiceID, cmd.Actor)
		if err != nil {
			return err
		}

		price, err := uc.unitPrice(ctx, cmd)
		if err != nil {
			return err
		}
		now := biztime.NowUTC()
		item, err := serviceorder.NewItem(cmd.ProductID, cmd.Quantity, price, cmd.Discount, markdown.Clean(cmd.Notes), now)
		if err != nil {
			return err
		}
		if err := order.AddItem(item, now); err != nil {
			return err
		}
		if err := uc.orders.AddItem(ctx, item); err != nil {
			return err
		}
		return uc.orders.Update(ctx, order)
	})
	if err != nil {
		uc.logger.Warnw("failed to add service item", "service_id", cmd.ServiceID, "error", err)
		return nil, translateError(err)
	}

	uc.effects.invalidateStatistics(ctx, uc.logger)
	uc.logger.Infow("service item added successfully",
		"service_id", order.ID(),
		"total_amount", order.TotalAmount().StringFixed(2),
	)
	return uc.enricher.One(ctx, order, nil)
}

func (uc *AddItemUseCase) unitPrice(ctx context.Context, cmd AddItemCommand) (decimal.Decimal, error) {
	if cmd.ProductID == nil {
		if cmd.UnitPrice == nil {
			return decimal.Zero, errors.NewFieldValidationError("unit_price", "unit_price is required for lines without a product")
		}
		return *cmd.UnitPrice, nil
	}

	p, err := uc.products.GetByID(ctx, *cmd.ProductID)
	if err != nil {
		if stderrors.Is(err, product.ErrNotFound) {
			return decimal.Zero, errors.NewFieldValidationError("product_id", "The selected product_id is invalid.")
		}
		return decimal.Zero, err
	}
	if !p.IsActive() {
		return decimal.Zero, errors.NewFieldValidationError("product_id", "The selected product is inactive.")
	}
	if cmd.UnitPrice != nil {
		return *cmd.UnitPrice, nil
	}
	return p.Price(), nil
}

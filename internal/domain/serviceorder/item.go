package serviceorder

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is a billable line of a service order. A nil productID marks a pure
// labor line. unitPrice is the price captured when the line was added.
type Item struct {
	id        uint
	serviceID uint
	productID *uint
	quantity  int
	unitPrice decimal.Decimal
	discount  decimal.Decimal
	notes     *string
	createdAt time.Time
	updatedAt time.Time
}

// NewItem validates a line. discount is a flat amount and may not exceed the gross value.
func NewItem(productID *uint, quantity int, unitPrice, discount decimal.Decimal, notes *string, now time.Time) (*Item, error) {
	var errs ValidationErrors
	if quantity < 1 {
		errs.add("quantity", "quantity must be at least 1", nil)
	}
	if unitPrice.IsNegative() {
		errs.add("unit_price", "unit_price must be greater than or equal to 0", nil)
	}
	if discount.IsNegative() {
		errs.add("discount", "discount must be greater than or equal to 0", nil)
	}
	if len(errs) == 0 {
		gross := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
		if discount.GreaterThan(gross) {
			errs.add("discount", "discount cannot exceed quantity times unit_price", nil)
		}
	}
	if productID != nil && *productID == 0 {
		errs.add("product_id", "product_id is invalid", nil)
	}
	if err := errs.orNil(); err != nil {
		return nil, err
	}

	return &Item{
		productID: productID,
		quantity:  quantity,
		unitPrice: unitPrice,
		discount:  discount,
		notes:     notes,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructItem(
	id, serviceID uint,
	productID *uint,
	quantity int,
	unitPrice, discount decimal.Decimal,
	notes *string,
	createdAt, updatedAt time.Time,
) *Item {
	return &Item{
		id:        id,
		serviceID: serviceID,
		productID: productID,
		quantity:  quantity,
		unitPrice: unitPrice,
		discount:  discount,
		notes:     notes,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (i *Item) ID() uint                   { return i.id }
func (i *Item) ServiceID() uint            { return i.serviceID }
func (i *Item) ProductID() *uint           { return i.productID }
func (i *Item) Quantity() int              { return i.quantity }
func (i *Item) UnitPrice() decimal.Decimal { return i.unitPrice }
func (i *Item) Discount() decimal.Decimal  { return i.discount }
func (i *Item) Notes() *string             { return i.notes }
func (i *Item) CreatedAt() time.Time       { return i.createdAt }
func (i *Item) UpdatedAt() time.Time       { return i.updatedAt }

// TotalPrice is quantity × unit price minus the flat discount.
func (i *Item) TotalPrice() decimal.Decimal {
	return i.unitPrice.Mul(decimal.NewFromInt(int64(i.quantity))).Sub(i.discount)
}

// SetID is called by the repository after insert.
func (i *Item) SetID(id uint) {
	i.id = id
}

func (i *Item) setServiceID(id uint) {
	i.serviceID = id
}

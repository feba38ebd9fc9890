package serviceorder

import (
	"context"
	"time"
)

type Repository interface {
	// Create inserts the order and its items, assigning ids.
	Create(ctx context.Context, order *ServiceOrder) error
	// Update persists the order columns. Items are written through AddItem/DeleteItem.
	Update(ctx context.Context, order *ServiceOrder) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*ServiceOrder, error)
	// NumberExists also checks soft-deleted orders.
	NumberExists(ctx context.Context, number string) (bool, error)
	List(ctx context.Context, filter Filter) ([]*ServiceOrder, int64, error)
	Statistics(ctx context.Context, serviceCenterID *uint, monthStart time.Time) (*Statistics, error)

	AddItem(ctx context.Context, item *Item) error
	DeleteItem(ctx context.Context, serviceID, itemID uint) error
}

// NumberGenerator produces candidate service numbers. Uniqueness is
// guaranteed by the caller retrying on collision.
type NumberGenerator interface {
	Generate(ctx context.Context) (string, error)
}

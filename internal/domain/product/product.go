// Package product models the parts catalog and its stock.
package product

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type Product struct {
	id            uint
	name          string
	sku           string
	description   *string
	price         decimal.Decimal
	stockQuantity int
	minStock      int
	unit          string
	active        bool
	createdAt     time.Time
	updatedAt     time.Time
}

func NewProduct(name, sku string, description *string, price decimal.Decimal, stock, minStock int, unit string, now time.Time) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if strings.TrimSpace(sku) == "" {
		return nil, fmt.Errorf("sku is required")
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("price cannot be negative")
	}
	if stock < 0 || minStock < 0 {
		return nil, fmt.Errorf("stock cannot be negative")
	}
	if unit == "" {
		unit = "un"
	}
	return &Product{
		name:          name,
		sku:           strings.ToUpper(strings.TrimSpace(sku)),
		description:   description,
		price:         price,
		stockQuantity: stock,
		minStock:      minStock,
		unit:          unit,
		active:        true,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

func ReconstructProduct(id uint, name, sku string, description *string, price decimal.Decimal, stock, minStock int, unit string, active bool, createdAt, updatedAt time.Time) *Product {
	return &Product{
		id:            id,
		name:          name,
		sku:           sku,
		description:   description,
		price:         price,
		stockQuantity: stock,
		minStock:      minStock,
		unit:          unit,
		active:        active,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (p *Product) ID() uint               { return p.id }
func (p *Product) Name() string           { return p.name }
func (p *Product) SKU() string            { return p.sku }
func (p *Product) Description() *string   { return p.description }
func (p *Product) Price() decimal.Decimal { return p.price }
func (p *Product) StockQuantity() int     { return p.stockQuantity }
func (p *Product) MinStock() int          { return p.minStock }
func (p *Product) Unit() string           { return p.unit }
func (p *Product) IsActive() bool         { return p.active }
func (p *Product) CreatedAt() time.Time   { return p.createdAt }
func (p *Product) UpdatedAt() time.Time   { return p.updatedAt }

func (p *Product) SetID(id uint) {
	p.id = id
}

// IsLowStock reports whether the stock reached the reorder threshold.
func (p *Product) IsLowStock() bool {
	return p.stockQuantity <= p.minStock
}

type Filter struct {
	Search     string
	ActiveOnly bool
	LowStock   bool
	Page       int
	PerPage    int
}

type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id uint) (*Product, error)
	GetByIDs(ctx context.Context, ids []uint) (map[uint]*Product, error)
	List(ctx context.Context, filter Filter) ([]*Product, int64, error)
	// DecrementStock subtracts quantity atomically and fails with
	// ErrInsufficientStock when not enough units are left.
	DecrementStock(ctx context.Context, id uint, quantity int) error
}

// Package payment holds the accepted payment methods.
package payment

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("payment method not found")

type PaymentMethod struct {
	id     uint
	name   string
	slug   string
	active bool
}

func NewPaymentMethod(id uint, name, slug string, active bool) *PaymentMethod {
	return &PaymentMethod{id: id, name: name, slug: slug, active: active}
}

func (m *PaymentMethod) ID() uint       { return m.id }
func (m *PaymentMethod) Name() string   { return m.name }
func (m *PaymentMethod) Slug() string   { return m.slug }
func (m *PaymentMethod) IsActive() bool { return m.active }

type Repository interface {
	ListActive(ctx context.Context) ([]*PaymentMethod, error)
	GetByID(ctx context.Context, id uint) (*PaymentMethod, error)
	GetBySlug(ctx context.Context, slug string) (*PaymentMethod, error)
}

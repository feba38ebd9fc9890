package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"garage/internal/domain/payment"
	"garage/internal/infrastructure/persistence/mappers"
	"garage/internal/infrastructure/persistence/models"
	"garage/internal/shared/db"
)

type PaymentMethodRepository struct {
	db *gorm.DB
}

func NewPaymentMethodRepository(db *gorm.DB) *PaymentMethodRepository {
	return &PaymentMethodRepository{db: db}
}

func (r *PaymentMethodRepository) ListActive(ctx context.Context) ([]*payment.PaymentMethod, error) {
	var rows []models.PaymentMethodModel
	if err := db.GetTxFromContext(ctx, r.db).Where("active = ?", true).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}

	methods := make([]*payment.PaymentMethod, 0, len(rows))
	for i := range rows {
		methods = append(methods, mappers.PaymentMethodToDomain(&rows[i]))
	}
	return methods, nil
}

func (r *PaymentMethodRepository) GetByID(ctx context.Context, id uint) (*payment.PaymentMethod, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *PaymentMethodRepository) GetBySlug(ctx context.Context, slug string) (*payment.PaymentMethod, error) {
	return r.first(ctx, "slug = ?", slug)
}

func (r *PaymentMethodRepository) first(ctx context.Context, cond string, arg any) (*payment.PaymentMethod, error) {
	var model models.PaymentMethodModel
	if err := db.GetTxFromContext(ctx, r.db).Where(cond, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payment.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get payment method: %w", err)
	}
	return mappers.PaymentMethodToDomain(&model), nil
}

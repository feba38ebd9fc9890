package repository

import (
	"context"
	"fmt"

	"garage/internal/domain/serviceorder"
	"garage/internal/infrastructure/persistence/models"
	"garage/internal/shared/db"
)

func (r *ServiceOrderRepository) AddItem(ctx context.Context, it *serviceorder.Item) error {
	if it.ServiceID() == 0 {
		return fmt.Errorf("service item has no service order")
	}

	tx := db.GetTxFromContext(ctx, r.db)
	model := r.mapper.ItemToModel(it)
	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to add service item: %w", err)
	}
	it.SetID(model.ID)
	return nil
}

func (r *ServiceOrderRepository) DeleteItem(ctx context.Context, serviceID, itemID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Where("id = ? AND service_id = ?", itemID, serviceID).Delete(&models.ServiceItemModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete service item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return serviceorder.ErrItemNotFound
	}
	return nil
}

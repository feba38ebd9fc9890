package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"garage/internal/domain/serviceorder"
	"garage/internal/domain/status"
	"garage/internal/infrastructure/persistence/mappers"
	"garage/internal/infrastructure/persistence/models"
	"garage/internal/shared/db"
	"garage/internal/shared/logger"
)

type ServiceOrderRepository struct {
	db       *gorm.DB
	mapper   mappers.ServiceOrderMapper
	statuses status.Registry
	logger   logger.Interface
}

func NewServiceOrderRepository(db *gorm.DB, statuses status.Registry, logger logger.Interface) *ServiceOrderRepository {
	return &ServiceOrderRepository{
		db:       db,
		mapper:   mappers.NewServiceOrderMapper(),
		statuses: statuses,
		logger:   logger,
	}
}

func (r *ServiceOrderRepository) statusID(ctx context.Context, name status.Name) (uint, error) {
	s, err := r.statuses.FindByName(ctx, name)
	if err != nil {
		return 0, err
	}
	return s.ID(), nil
}

// Create inserts the order and its items. Duplicate service numbers surface
// as the driver error so the caller can retry with a new number.
func (r *ServiceOrderRepository) Create(ctx context.Context, o *serviceorder.ServiceOrder) error {
	statusID, err := r.statusID(ctx, o.Status())
	if err != nil {
		return err
	}

	tx := db.GetTxFromContext(ctx, r.db)
	model := r.mapper.ToModel(o, statusID)
	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create service order: %w", err)
	}
	if err := o.SetID(model.ID); err != nil {
		return err
	}

	for _, it := range o.Items() {
		if err := r.AddItem(ctx, it); err != nil {
			return err
		}
	}
	return nil
}

func (r *ServiceOrderRepository) Update(ctx context.Context, o *serviceorder.ServiceOrder) error {
	statusID, err := r.statusID(ctx, o.Status())
	if err != nil {
		return err
	}

	tx := db.GetTxFromContext(ctx, r.db)
	model := r.mapper.ToModel(o, statusID)

	// Select("*") writes nil pointers too, which clears started_at on cancel.
	result := tx.Model(&models.ServiceModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "service_number", "created_at", "deleted_at").
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update service order: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return serviceorder.ErrNotFound
	}
	return nil
}

func (r *ServiceOrderRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Delete(&models.ServiceModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete service order: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return serviceorder.ErrNotFound
	}
	return nil
}

func (r *ServiceOrderRepository) GetByID(ctx context.Context, id uint) (*serviceorder.ServiceOrder, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var model models.ServiceModel
	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, serviceorder.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get service order: %w", err)
	}

	orders, err := r.toDomainList(ctx, []models.ServiceModel{model})
	if err != nil {
		return nil, err
	}
	return orders[0], nil
}

func (r *ServiceOrderRepository) NumberExists(ctx context.Context, number string) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var count int64
	if err := tx.Unscoped().
		Model(&models.ServiceModel{}).
		Where("service_number = ?", number).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check service number: %w", err)
	}
	return count > 0, nil
}

// toDomainList loads the items of every order with one query.
func (r *ServiceOrderRepository) toDomainList(ctx context.Context, rows []models.ServiceModel) ([]*serviceorder.ServiceOrder, error) {
	if len(rows) == 0 {
		return []*serviceorder.ServiceOrder{}, nil
	}

	ids := make([]uint, len(rows))
	for i := range rows {
		ids[i] = rows[i].ID
	}

	var itemRows []*models.ServiceItemModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("service_id IN ?", ids).
		Order("id ASC").
		Find(&itemRows).Error; err != nil {
		return nil, fmt.Errorf("failed to load service items: %w", err)
	}
	itemsByService := make(map[uint][]*models.ServiceItemModel, len(rows))
	for _, it := range itemRows {
		itemsByService[it.ServiceID] = append(itemsByService[it.ServiceID], it)
	}

	orders := make([]*serviceorder.ServiceOrder, 0, len(rows))
	for i := range rows {
		st, err := r.statuses.FindByID(ctx, rows[i].StatusID)
		if err != nil {
			return nil, err
		}
		o, err := r.mapper.ToDomain(&rows[i], st.Name(), itemsByService[rows[i].ID])
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

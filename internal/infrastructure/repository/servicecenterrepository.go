package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"garage/internal/domain/servicecenter"
	"garage/internal/infrastructure/persistence/mappers"
	"garage/internal/infrastructure/persistence/models"
	"garage/internal/shared/db"
)

type ServiceCenterRepository struct {
	db *gorm.DB
}

func NewServiceCenterRepository(db *gorm.DB) *ServiceCenterRepository {
	return &ServiceCenterRepository{db: db}
}

func (r *ServiceCenterRepository) Create(ctx context.Context, sc *servicecenter.ServiceCenter) error {
	model := mappers.ServiceCenterToModel(sc)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create service center: %w", err)
	}
	sc.SetID(model.ID)
	return nil
}

func (r *ServiceCenterRepository) GetByID(ctx context.Context, id uint) (*servicecenter.ServiceCenter, error) {
	var model models.ServiceCenterModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, servicecenter.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get service center: %w", err)
	}
	return mappers.ServiceCenterToDomain(&model), nil
}

func (r *ServiceCenterRepository) List(ctx context.Context, activeOnly bool) ([]*servicecenter.ServiceCenter, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.ServiceCenterModel{})
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var rows []models.ServiceCenterModel
	if err := query.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list service centers: %w", err)
	}
	return serviceCentersToDomain(rows), nil
}

// ListWithinBounds is the coarse prefilter for nearby searches; exact
// distances are computed in memory.
func (r *ServiceCenterRepository) ListWithinBounds(ctx context.Context, b servicecenter.Bounds) ([]*servicecenter.ServiceCenter, error) {
	var rows []models.ServiceCenterModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("active = ?", true).
		Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Where("latitude BETWEEN ? AND ?", b.MinLat, b.MaxLat).
		Where("longitude BETWEEN ? AND ?", b.MinLng, b.MaxLng).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list service centers within bounds: %w", err)
	}
	return serviceCentersToDomain(rows), nil
}

func serviceCentersToDomain(rows []models.ServiceCenterModel) []*servicecenter.ServiceCenter {
	centers := make([]*servicecenter.ServiceCenter, 0, len(rows))
	for i := range rows {
		centers = append(centers, mappers.ServiceCenterToDomain(&rows[i]))
	}
	return centers
}

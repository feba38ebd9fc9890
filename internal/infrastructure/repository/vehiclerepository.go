package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"garage/internal/domain/vehicle"
	"garage/internal/infrastructure/persistence/mappers"
	"garage/internal/infrastructure/persistence/models"
	"garage/internal/shared/db"
	apperrors "garage/internal/shared/errors"
)

type VehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

func (r *VehicleRepository) Create(ctx context.Context, v *vehicle.Vehicle) error {
	model := mappers.VehicleToModel(v)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return vehicle.ErrPlateDuplicate
		}
		return fmt.Errorf("failed to create vehicle: %w", err)
	}
	v.SetID(model.ID)
	return nil
}

func (r *VehicleRepository) GetByID(ctx context.Context, id uint) (*vehicle.Vehicle, error) {
	var model models.VehicleModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, vehicle.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}
	return mappers.VehicleToDomain(&model), nil
}

func (r *VehicleRepository) GetByIDs(ctx context.Context, ids []uint) (map[uint]*vehicle.Vehicle, error) {
	result := make(map[uint]*vehicle.Vehicle, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var rows []models.VehicleModel
	if err := db.GetTxFromContext(ctx, r.db).Unscoped().Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get vehicles: %w", err)
	}
	for i := range rows {
		result[rows[i].ID] = mappers.VehicleToDomain(&rows[i])
	}
	return result, nil
}

func (r *VehicleRepository) ListByClient(ctx context.Context, clientID uint) ([]*vehicle.Vehicle, error) {
	var rows []models.VehicleModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("client_id = ?", clientID).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}

	vehicles := make([]*vehicle.Vehicle, 0, len(rows))
	for i := range rows {
		vehicles = append(vehicles, mappers.VehicleToDomain(&rows[i]))
	}
	return vehicles, nil
}

// RaiseMileage only ever moves the odometer forward.
func (r *VehicleRepository) RaiseMileage(ctx context.Context, id uint, mileage int) (bool, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.VehicleModel{}).
		Where("id = ? AND mileage < ?", id, mileage).
		UpdateColumn("mileage", mileage)
	if result.Error != nil {
		return false, fmt.Errorf("failed to update vehicle mileage: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

package usecases

import (
	"context"
	stderrors "errors"

	"garage/internal/application/client/dto"
	"garage/internal/domain/vehicle"
	"garage/internal/shared/errors"
	"garage/internal/shared/logger"
)

type GetVehicleUseCase struct {
	vehicles vehicle.Repository
	logger   logger.Interface
}

func NewGetVehicleUseCase(vehicles vehicle.Repository, logger logger.Interface) *GetVehicleUseCase {
	return &GetVehicleUseCase{
		vehicles: vehicles,
		logger:   logger,
	}
}

func (uc *GetVehicleUseCase) Execute(ctx context.Context, vehicleID uint) (*dto.VehicleDTO, error) {
	if vehicleID == 0 {
		return nil, errors.NewValidationError("vehicle ID is required")
	}
	v, err := uc.vehicles.GetByID(ctx, vehicleID)
	if err != nil {
		if stderrors.Is(err, vehicle.ErrNotFound) {
			return nil, errors.NewNotFoundError("vehicle not found")
		}
		uc.logger.Errorw("failed to get vehicle", "vehicle_id", vehicleID, "error", err)
		return nil, err
	}
	result := dto.ToVehicleDTO(v)
	return &result, nil
}

package usecases

import (
	"context"
	stderrors "errors"

	"garage/internal/application/client/dto"
	"garage/internal/domain/client"
	"garage/internal/domain/vehicle"
	"garage/internal/shared/biztime"
	"garage/internal/shared/errors"
	"garage/internal/shared/logger"
)

type CreateVehicleCommand struct {
	ClientID uint
	Plate    string
	Brand    string
	Model    string
	Year     *int
	Color    *string
	Mileage  int
}

type CreateVehicleUseCase struct {
	clients  client.Repository
	vehicles vehicle.Repository
	logger   logger.Interface
}

func NewCreateVehicleUseCase(clients client.Repository, vehicles vehicle.Repository, logger logger.Interface) *CreateVehicleUseCase {
	return &CreateVehicleUseCase{
		clients:  clients,
		vehicles: vehicles,
		logger:   logger,
	}
}

func (uc *CreateVehicleUseCase) Execute(ctx context.Context, cmd CreateVehicleCommand) (*dto.VehicleDTO, error) {
	uc.logger.Infow("executing create vehicle use case", "client_id", cmd.ClientID, "plate", cmd.Plate)

	c, err := getClient(ctx, uc.clients, cmd.ClientID)
	if err != nil {
		return nil, err
	}

	v, err := vehicle.NewVehicle(c.ID(), cmd.Plate, cmd.Brand, cmd.Model, cmd.Year, cmd.Color, cmd.Mileage, biztime.NowUTC())
	if err != nil {
		uc.logger.Warnw("invalid vehicle data", "error", err)
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.vehicles.Create(ctx, v); err != nil {
		if stderrors.Is(err, vehicle.ErrPlateDuplicate) {
			return nil, errors.NewFieldValidationError("plate", "The plate has already been taken.")
		}
		uc.logger.Errorw("failed to create vehicle", "client_id", c.ID(), "error", err)
		return nil, err
	}

	uc.logger.Infow("vehicle created successfully", "vehicle_id", v.ID(), "client_id", c.ID())
	result := dto.ToVehicleDTO(v)
	return &result, nil
}

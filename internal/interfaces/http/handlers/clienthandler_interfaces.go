package handlers

import (
	"context"

	"garage/internal/application/client/dto"
	"garage/internal/application/client/usecases"
)

type createClientUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreateClientCommand) (*dto.ClientDTO, error)
}

type getClientUseCase interface {
	Execute(ctx context.Context, clientID uint) (*dto.ClientDTO, error)
}

type listClientsUseCase interface {
	Execute(ctx context.Context, query usecases.ListClientsQuery) (*usecases.ListClientsResult, error)
}

type deleteClientUseCase interface {
	Execute(ctx context.Context, clientID uint) error
}

type createVehicleUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreateVehicleCommand) (*dto.VehicleDTO, error)
}

type getVehicleUseCase interface {
	Execute(ctx context.Context, vehicleID uint) (*dto.VehicleDTO, error)
}

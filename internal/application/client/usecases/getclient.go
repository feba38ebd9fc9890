package usecases

import (
	"context"
	stderrors "errors"

	"garage/internal/application/client/dto"
	"garage/internal/domain/client"
	"garage/internal/domain/vehicle"
	"garage/internal/shared/errors"
	"garage/internal/shared/logger"
)

type GetClientUseCase struct {
	clients  client.Repository
	vehicles vehicle.Repository
	logger   logger.Interface
}

func NewGetClientUseCase(clients client.Repository, vehicles vehicle.Repository, logger logger.Interface) *GetClientUseCase {
	return &GetClientUseCase{
		clients:  clients,
		vehicles: vehicles,
		logger:   logger,
	}
}

// Execute returns the client with its vehicles.
func (uc *GetClientUseCase) Execute(ctx context.Context, clientID uint) (*dto.ClientDTO, error) {
	c, err := getClient(ctx, uc.clients, clientID)
	if err != nil {
		return nil, err
	}

	vehicles, err := uc.vehicles.ListByClient(ctx, c.ID())
	if err != nil {
		uc.logger.Errorw("failed to list client vehicles", "client_id", c.ID(), "error", err)
		return nil, err
	}

	result := dto.ToClientDTO(c, vehicles)
	return &result, nil
}

func getClient(ctx context.Context, clients client.Repository, id uint) (*client.Client, error) {
	if id == 0 {
		return nil, errors.NewValidationError("client ID is required")
	}
	c, err := clients.GetByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, client.ErrNotFound) {
			return nil, errors.NewNotFoundError("client not found")
		}
		return nil, err
	}
	return c, nil
}

package usecases

import (
	"context"

	"garage/internal/domain/client"
	"garage/internal/shared/logger"
)

// DeleteClientUseCase soft deletes a client. Existing orders keep showing it.
type DeleteClientUseCase struct {
	clients client.Repository
	logger  logger.Interface
}

func NewDeleteClientUseCase(clients client.Repository, logger logger.Interface) *DeleteClientUseCase {
	return &DeleteClientUseCase{
		clients: clients,
		logger:  logger,
	}
}

func (uc *DeleteClientUseCase) Execute(ctx context.Context, clientID uint) error {
	uc.logger.Infow("executing delete client use case", "client_id", clientID)

	c, err := getClient(ctx, uc.clients, clientID)
	if err != nil {
		return err
	}
	if err := uc.clients.Delete(ctx, c.ID()); err != nil {
		uc.logger.Errorw("failed to delete client", "client_id", c.ID(), "error", err)
		return err
	}

	uc.logger.Infow("client deleted successfully", "client_id", c.ID())
	return nil
}

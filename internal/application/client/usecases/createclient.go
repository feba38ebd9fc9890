package usecases

import (
	"context"
	"strings"

	"garage/internal/application/client/dto"
	"garage/internal/domain/client"
	"garage/internal/shared/biztime"
	"garage/internal/shared/errors"
	"garage/internal/shared/logger"
	"garage/internal/shared/services/markdown"
)

type CreateClientCommand struct {
	Name     string
	Email    *string
	Phone    string
	Document string
	Address  *string
	Notes    *string
}

type CreateClientUseCase struct {
	clients client.Repository
	logger  logger.Interface
}

func NewCreateClientUseCase(clients client.Repository, logger logger.Interface) *CreateClientUseCase {
	return &CreateClientUseCase{
		clients: clients,
		logger:  logger,
	}
}

func (uc *CreateClientUseCase) Execute(ctx context.Context, cmd CreateClientCommand) (*dto.ClientDTO, error) {
	uc.logger.Infow("executing create client use case", "name", cmd.Name)

	email := cmd.Email
	if email != nil {
		trimmed := strings.ToLower(strings.TrimSpace(*email))
		email = &trimmed
		if trimmed == "" {
			email = nil
		}
	}

	c, err := client.NewClient(cmd.Name, cmd.Phone, cmd.Document, email, cmd.Address, markdown.Clean(cmd.Notes), biztime.NowUTC())
	if err != nil {
		uc.logger.Warnw("invalid client data", "error", err)
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.clients.Create(ctx, c); err != nil {
		uc.logger.Errorw("failed to create client", "error", err)
		return nil, err
	}

	uc.logger.Infow("client created successfully", "client_id", c.ID())
	result := dto.ToClientDTO(c, nil)
	return &result, nil
}

package usecases

import (
	"context"

	"garage/internal/application/client/dto"
	"garage/internal/domain/client"
	"garage/internal/shared/logger"
	"garage/internal/shared/utils"
)

type ListClientsQuery struct {
	Search  string
	Page    int
	PerPage int
}

type ListClientsResult struct {
	Items   []dto.ClientDTO
	Total   int64
	Page    int
	PerPage int
}

type ListClientsUseCase struct {
	clients client.Repository
	logger  logger.Interface
}

func NewListClientsUseCase(clients client.Repository, logger logger.Interface) *ListClientsUseCase {
	return &ListClientsUseCase{
		clients: clients,
		logger:  logger,
	}
}

// Execute searches clients by name, phone or document.
func (uc *ListClientsUseCase) Execute(ctx context.Context, query ListClientsQuery) (*ListClientsResult, error) {
	p := utils.ValidatePagination(query.Page, query.PerPage, 0)

	clients, total, err := uc.clients.List(ctx, client.Filter{
		Search:  query.Search,
		Page:    p.Page,
		PerPage: p.PerPage,
	})
	if err != nil {
		uc.logger.Errorw("failed to list clients", "error", err)
		return nil, err
	}

	items := make([]dto.ClientDTO, 0, len(clients))
	for _, c := range clients {
		items = append(items, dto.ToClientDTO(c, nil))
	}
	return &ListClientsResult{
		Items:   items,
		Total:   total,
		Page:    p.Page,
		PerPage: p.PerPage,
	}, nil
}

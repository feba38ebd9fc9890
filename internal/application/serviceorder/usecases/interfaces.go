package usecases

import (
	"context"

	"garage/internal/application/serviceorder/dto"
)

type CreateServiceOrderExecutor interface {
	Execute(ctx context.Context, cmd CreateServiceOrderCommand) (*dto.ServiceOrderDTO, error)
}

type GetServiceOrderExecutor interface {
	Execute(ctx context.Context, query GetServiceOrderQuery) (*dto.ServiceOrderDTO, error)
}

type ListServiceOrdersExecutor interface {
	Execute(ctx context.Context, query ListServiceOrdersQuery) (*ListServiceOrdersResult, error)
}

type UpdateServiceOrderExecutor interface {
	Execute(ctx context.Context, cmd UpdateServiceOrderCommand) (*dto.ServiceOrderDTO, error)
}

type DeleteServiceOrderExecutor interface {
	Execute(ctx context.Context, cmd DeleteServiceOrderCommand) error
}

type StartServiceOrderExecutor interface {
	Execute(ctx context.Context, cmd StartServiceOrderCommand) (*dto.ServiceOrderDTO, error)
}

type CompleteServiceOrderExecutor interface {
	Execute(ctx context.Context, cmd CompleteServiceOrderCommand) (*dto.ServiceOrderDTO, error)
}

type CancelServiceOrderExecutor interface {
	Execute(ctx context.Context, cmd CancelServiceOrderCommand) (*dto.ServiceOrderDTO, error)
}

type AddItemExecutor interface {
	Execute(ctx context.Context, cmd AddItemCommand) (*dto.ServiceOrderDTO, error)
}

type RemoveItemExecutor interface {
	Execute(ctx context.Context, cmd RemoveItemCommand) (*dto.ServiceOrderDTO, error)
}

type GetStatisticsExecutor interface {
	Execute(ctx context.Context, query GetStatisticsQuery) (*dto.StatisticsDTO, error)
}

type ExportServiceOrdersExecutor interface {
	Execute(ctx context.Context, query ListServiceOrdersQuery) (*ExportServiceOrdersResult, error)
}

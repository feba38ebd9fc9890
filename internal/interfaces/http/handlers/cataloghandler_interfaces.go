package handlers

import (
	"context"

	"garage/internal/application/catalog/dto"
	"garage/internal/application/catalog/usecases"
)

type createServiceCenterUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreateServiceCenterCommand) (*dto.ServiceCenterDTO, error)
}

type listServiceCentersUseCase interface {
	Execute(ctx context.Context, activeOnly bool) ([]dto.ServiceCenterDTO, error)
}

type findNearbyServiceCentersUseCase interface {
	Execute(ctx context.Context, query usecases.FindNearbyQuery) ([]dto.ServiceCenterDTO, error)
}

type createProductUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreateProductCommand) (*dto.ProductDTO, error)
}

type listProductsUseCase interface {
	Execute(ctx context.Context, query usecases.ListProductsQuery) (*usecases.ListProductsResult, error)
}

type listPaymentMethodsUseCase interface {
	Execute(ctx context.Context) ([]dto.PaymentMethodDTO, error)
}

type listStatusesUseCase interface {
	Execute(ctx context.Context) ([]dto.StatusDTO, error)
}

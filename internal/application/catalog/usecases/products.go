package usecases

import (
	"context"

	"github.com/shopspring/decimal"

	"garage/internal/application/catalog/dto"
	"garage/internal/domain/product"
	"garage/internal/shared/biztime"
	"garage/internal/shared/errors"
	"garage/internal/shared/logger"
	"garage/internal/shared/utils"
)

type CreateProductCommand struct {
	Name          string
	SKU           string
	Description   *string
	Price         decimal.Decimal
	StockQuantity int
	MinStock      int
	Unit          string
}

type CreateProductUseCase struct {
	products product.Repository
	logger   logger.Interface
}

func NewCreateProductUseCase(products product.Repository, logger logger.Interface) *CreateProductUseCase {
	return &CreateProductUseCase{
		products: products,
		logger:   logger,
	}
}

func (uc *CreateProductUseCase) Execute(ctx context.Context, cmd CreateProductCommand) (*dto.ProductDTO, error) {
	uc.logger.Infow("executing create product use case", "sku", cmd.SKU)

	p, err := product.NewProduct(cmd.Name, cmd.SKU, cmd.Description, cmd.Price.Round(2), cmd.StockQuantity, cmd.MinStock, cmd.Unit, biztime.NowUTC())
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.products.Create(ctx, p); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewFieldValidationError("sku", "The sku has already been taken.")
		}
		uc.logger.Errorw("failed to create product", "sku", cmd.SKU, "error", err)
		return nil, err
	}

	uc.logger.Infow("product created successfully", "product_id", p.ID(), "sku", p.SKU())
	result := dto.ToProductDTO(p)
	return &result, nil
}

type ListProductsQuery struct {
	Search     string
	ActiveOnly bool
	LowStock   bool
	Page       int
	PerPage    int
}

type ListProductsResult struct {
	Items   []dto.ProductDTO
	Total   int64
	Page    int
	PerPage int
}

type ListProductsUseCase struct {
	products product.Repository
	logger   logger.Interface
}

func NewListProductsUseCase(products product.Repository, logger logger.Interface) *ListProductsUseCase {
	return &ListProductsUseCase{
		products: products,
		logger:   logger,
	}
}

func (uc *ListProductsUseCase) Execute(ctx context.Context, query ListProductsQuery) (*ListProductsResult, error) {
	p := utils.ValidatePagination(query.Page, query.PerPage, 0)

	products, total, err := uc.products.List(ctx, product.Filter{
		Search:     query.Search,
		ActiveOnly: query.ActiveOnly,
		LowStock:   query.LowStock,
		Page:       p.Page,
		PerPage:    p.PerPage,
	})
	if err != nil {
		uc.logger.Errorw("failed to list products", "error", err)
		return nil, err
	}

	items := make([]dto.ProductDTO, 0, len(products))
	for _, pr := range products {
		items = append(items, dto.ToProductDTO(pr))
	}
	return &ListProductsResult{
		Items:   items,
		Total:   total,
		Page:    p.Page,
		PerPage: p.PerPage,
	}, nil
}

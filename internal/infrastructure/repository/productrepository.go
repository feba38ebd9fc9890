package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"garage/internal/domain/product"
	"garage/internal/infrastructure/persistence/mappers"
	"garage/internal/infrastructure/persistence/models"
	"garage/internal/shared/constants"
	"garage/internal/shared/db"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	model := mappers.ProductToModel(p)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	p.SetID(model.ID)
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id uint) (*product.Product, error) {
	var model models.ProductModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, product.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return mappers.ProductToDomain(&model), nil
}

func (r *ProductRepository) GetByIDs(ctx context.Context, ids []uint) (map[uint]*product.Product, error) {
	result := make(map[uint]*product.Product, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var rows []models.ProductModel
	if err := db.GetTxFromContext(ctx, r.db).Unscoped().Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	for i := range rows {
		result[rows[i].ID] = mappers.ProductToDomain(&rows[i])
	}
	return result, nil
}

func (r *ProductRepository) List(ctx context.Context, filter product.Filter) ([]*product.Product, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.ProductModel{})

	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + escapeLike(strings.ToLower(search)) + "%"
		query = query.Where("(LOWER(name) LIKE ? ESCAPE '!' OR LOWER(sku) LIKE ? ESCAPE '!')", like, like)
	}
	if filter.ActiveOnly {
		query = query.Where("active = ?", true)
	}
	if filter.LowStock {
		query = query.Where("stock_quantity <= min_stock")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	perPage := filter.PerPage
	if perPage < 1 {
		perPage = constants.DefaultPerPage
	}

	var rows []models.ProductModel
	if err := query.Order("name ASC, id ASC").Scopes(db.Paginate(filter.Page, perPage)).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}

	products := make([]*product.Product, 0, len(rows))
	for i := range rows {
		products = append(products, mappers.ProductToDomain(&rows[i]))
	}
	return products, total, nil
}

func (r *ProductRepository) DecrementStock(ctx context.Context, id uint, quantity int) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.ProductModel{}).
		Where("id = ? AND stock_quantity >= ?", id, quantity).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", quantity))
	if result.Error != nil {
		return fmt.Errorf("failed to decrement stock: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := tx.Model(&models.ProductModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check product: %w", err)
	}
	if count == 0 {
		return product.ErrNotFound
	}
	return product.ErrInsufficientStock
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"garage/internal/domain/client"
	"garage/internal/infrastructure/persistence/mappers"
	"garage/internal/infrastructure/persistence/models"
	"garage/internal/shared/constants"
	"garage/internal/shared/db"
)

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(ctx context.Context, c *client.Client) error {
	model := mappers.ClientToModel(c)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	c.SetID(model.ID)
	return nil
}

func (r *ClientRepository) GetByID(ctx context.Context, id uint) (*client.Client, error) {
	var model models.ClientModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, client.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return mappers.ClientToDomain(&model), nil
}

func (r *ClientRepository) GetByIDs(ctx context.Context, ids []uint) (map[uint]*client.Client, error) {
	result := make(map[uint]*client.Client, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var rows []models.ClientModel
	if err := db.GetTxFromContext(ctx, r.db).Unscoped().Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get clients: %w", err)
	}
	for i := range rows {
		result[rows[i].ID] = mappers.ClientToDomain(&rows[i])
	}
	return result, nil
}

func (r *ClientRepository) List(ctx context.Context, filter client.Filter) ([]*client.Client, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.ClientModel{})

	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + escapeLike(strings.ToLower(search)) + "%"
		digits := client.NormalizeDigits(search)
		if digits != "" {
			digitsLike := "%" + digits + "%"
			query = query.Where("(LOWER(name) LIKE ? ESCAPE '!' OR phone LIKE ? OR document LIKE ?)", like, digitsLike, digitsLike)
		} else {
			query = query.Where("LOWER(name) LIKE ? ESCAPE '!'", like)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count clients: %w", err)
	}

	perPage := filter.PerPage
	if perPage < 1 {
		perPage = constants.DefaultPerPage
	}

	var rows []models.ClientModel
	if err := query.Order("name ASC, id ASC").Scopes(db.Paginate(filter.Page, perPage)).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list clients: %w", err)
	}

	clients := make([]*client.Client, 0, len(rows))
	for i := range rows {
		clients = append(clients, mappers.ClientToDomain(&rows[i]))
	}
	return clients, total, nil
}

func (r *ClientRepository) Delete(ctx context.Context, id uint) error {
	result := db.GetTxFromContext(ctx, r.db).Delete(&models.ClientModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete client: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return client.ErrNotFound
	}
	return nil
}

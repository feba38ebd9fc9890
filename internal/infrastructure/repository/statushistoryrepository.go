package repository

import (
	"context"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"garage/internal/domain/serviceorder"
	"garage/internal/domain/status"
	"garage/internal/infrastructure/persistence/models"
	"garage/internal/shared/db"
)

// StatusHistoryRepository stores the status audit trail by status id.
type StatusHistoryRepository struct {
	db       *gorm.DB
	statuses status.Registry
}

func NewStatusHistoryRepository(db *gorm.DB, statuses status.Registry) *StatusHistoryRepository {
	return &StatusHistoryRepository{db: db, statuses: statuses}
}

func (r *StatusHistoryRepository) Append(ctx context.Context, change *serviceorder.StatusChange) error {
	to, err := r.statuses.FindByName(ctx, change.To)
	if err != nil {
		return err
	}

	model := &models.ServiceStatusHistoryModel{
		ServiceID:  change.ServiceID,
		ToStatusID: to.ID(),
		ChangedBy:  change.ChangedBy,
		Reason:     change.Reason,
		Metadata:   datatypes.JSONMap(change.Metadata),
		CreatedAt:  change.CreatedAt.UTC(),
	}
	if change.From != nil {
		from, err := r.statuses.FindByName(ctx, *change.From)
		if err != nil {
			return err
		}
		id := from.ID()
		model.FromStatusID = &id
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to append status history: %w", err)
	}
	change.ID = model.ID
	return nil
}

func (r *StatusHistoryRepository) ListByService(ctx context.Context, serviceID uint) ([]*serviceorder.StatusChange, error) {
	var rows []models.ServiceStatusHistoryModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("service_id = ?", serviceID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list status history: %w", err)
	}

	changes := make([]*serviceorder.StatusChange, 0, len(rows))
	for _, row := range rows {
		to, err := r.statuses.FindByID(ctx, row.ToStatusID)
		if err != nil {
			return nil, err
		}
		change := &serviceorder.StatusChange{
			ID:        row.ID,
			ServiceID: row.ServiceID,
			To:        to.Name(),
			ChangedBy: row.ChangedBy,
			Reason:    row.Reason,
			Metadata:  map[string]any(row.Metadata),
			CreatedAt: row.CreatedAt,
		}
		if row.FromStatusID != nil {
			from, err := r.statuses.FindByID(ctx, *row.FromStatusID)
			if err != nil {
				return nil, err
			}
			name := from.Name()
			change.From = &name
		}
		changes = append(changes, change)
	}
	return changes, nil
}

package repository

import (
	"context"
	"fmt"
	"strings"

	"garage/internal/domain/serviceorder"
	"garage/internal/infrastructure/persistence/models"
	"garage/internal/shared/constants"
	"garage/internal/shared/db"
)

var allowedServiceOrderOrderByFields = map[string]bool{
	"id":             true,
	"service_number": true,
	"scheduled_date": true,
	"started_at":     true,
	"finished_at":    true,
	"total_amount":   true,
	"priority":       true,
	"created_at":     true,
	"updated_at":     true,
}

// List returns one page of orders matching every predicate of the filter,
// plus the total match count.
func (r *ServiceOrderRepository) List(ctx context.Context, filter serviceorder.Filter) ([]*serviceorder.ServiceOrder, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).
		Model(&models.ServiceModel{}).
		Scopes(db.WithTrashed(filter.WithDeleted))

	if filter.Status != nil {
		statusID, err := r.statusID(ctx, *filter.Status)
		if err != nil {
			return nil, 0, err
		}
		query = query.Where("services.status_id = ?", statusID)
	}
	if filter.ServiceCenterID != nil {
		query = query.Where("services.service_center_id = ?", *filter.ServiceCenterID)
	}
	if filter.TechnicianID != nil {
		query = query.Where("services.technician_id = ?", *filter.TechnicianID)
	}
	if filter.ClientID != nil {
		query = query.Where("services.client_id = ?", *filter.ClientID)
	}
	if filter.VehicleID != nil {
		query = query.Where("services.vehicle_id = ?", *filter.VehicleID)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("services.created_at >= ?", filter.CreatedFrom.UTC())
	}
	if filter.CreatedTo != nil {
		query = query.Where("services.created_at <= ?", filter.CreatedTo.UTC())
	}
	if filter.ScheduledFrom != nil {
		query = query.Where("services.scheduled_date >= ?", filter.ScheduledFrom.UTC())
	}
	if filter.ScheduledTo != nil {
		query = query.Where("services.scheduled_date <= ?", filter.ScheduledTo.UTC())
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + escapeLike(strings.ToLower(search)) + "%"
		query = query.
			Joins("LEFT JOIN clients ON clients.id = services.client_id").
			Where(`(LOWER(services.description) LIKE ? ESCAPE '!'
				OR LOWER(services.service_number) LIKE ? ESCAPE '!'
				OR LOWER(clients.name) LIKE ? ESCAPE '!'
				OR clients.phone LIKE ? ESCAPE '!'
				OR clients.document LIKE ? ESCAPE '!')`,
				like, like, like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count service orders", "error", err)
		return nil, 0, fmt.Errorf("failed to count service orders: %w", err)
	}
	if total == 0 {
		return []*serviceorder.ServiceOrder{}, 0, nil
	}

	// Apply sorting with whitelist validation
	sortBy := strings.ToLower(filter.SortBy)
	if allowedServiceOrderOrderByFields[sortBy] {
		order := "DESC"
		if strings.EqualFold(filter.SortOrder, "asc") {
			order = "ASC"
		}
		query = query.Order(fmt.Sprintf("services.%s %s, services.id %s", sortBy, order, order))
	} else {
		query = query.Order("services.created_at DESC, services.id DESC")
	}

	page, perPage := filter.Page, filter.PerPage
	if perPage < 1 {
		perPage = constants.DefaultPerPage
	}

	var rows []models.ServiceModel
	if err := query.Select("services.*").Scopes(db.Paginate(page, perPage)).Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list service orders", "error", err)
		return nil, 0, fmt.Errorf("failed to list service orders: %w", err)
	}

	orders, err := r.toDomainList(ctx, rows)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// escapeLike escapes LIKE wildcards with '!' so user input matches literally.
// Backslash is avoided since MySQL treats it as a string escape.
func escapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}

package usecases

import (
	"context"
	"strings"
	"time"

	"garage/internal/application/serviceorder/dto"
	"garage/internal/domain/serviceorder"
	"garage/internal/domain/status"
	"garage/internal/shared/biztime"
	"garage/internal/shared/logger"
	"garage/internal/shared/utils"
)

// ListServiceOrdersQuery carries raw list parameters. Dates are YYYY-MM-DD
// business days and both bounds are inclusive.
type ListServiceOrdersQuery struct {
	Search          string
	Status          string
	ServiceCenterID *uint
	TechnicianID    *uint
	ClientID        *uint
	VehicleID       *uint
	DateFrom        string
	DateTo          string
	ScheduledFrom   string
	ScheduledTo     string
	WithDeleted     bool
	Page            int
	PerPage         int
	SortBy          string
	SortOrder       string
	Actor           Actor
}

type ListServiceOrdersResult struct {
	Items   []*dto.ServiceOrderDTO
	Total   int64
	Page    int
	PerPage int
}

type ListServiceOrdersUseCase struct {
	orders         serviceorder.Repository
	enricher       *Enricher
	defaultPerPage int
	logger         logger.Interface
}

func NewListServiceOrdersUseCase(
	orders serviceorder.Repository,
	enricher *Enricher,
	defaultPerPage int,
	logger logger.Interface,
) *ListServiceOrdersUseCase {
	return &ListServiceOrdersUseCase{
		orders:         orders,
		enricher:       enricher,
		defaultPerPage: defaultPerPage,
		logger:         logger,
	}
}

func (uc *ListServiceOrdersUseCase) Execute(ctx context.Context, query ListServiceOrdersQuery) (*ListServiceOrdersResult, error) {
	filter, err := buildFilter(query, uc.defaultPerPage)
	if err != nil {
		return nil, err
	}

	orders, total, err := uc.orders.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list service orders", "error", err)
		return nil, err
	}

	items, err := uc.enricher.Many(ctx, orders)
	if err != nil {
		uc.logger.Errorw("failed to load related records", "error", err)
		return nil, err
	}

	return &ListServiceOrdersResult{
		Items:   items,
		Total:   total,
		Page:    filter.Page,
		PerPage: filter.PerPage,
	}, nil
}

// buildFilter validates query parameters and applies the actor's center scope.
func buildFilter(query ListServiceOrdersQuery, defaultPerPage int) (serviceorder.Filter, error) {
	fe := fieldErrors{}
	p := utils.ValidatePagination(query.Page, query.PerPage, defaultPerPage)

	filter := serviceorder.Filter{
		Search:          strings.TrimSpace(query.Search),
		ServiceCenterID: query.Actor.scopeCenter(query.ServiceCenterID),
		TechnicianID:    query.TechnicianID,
		ClientID:        query.ClientID,
		VehicleID:       query.VehicleID,
		WithDeleted:     query.WithDeleted && query.Actor.Role.IsAdmin(),
		Page:            p.Page,
		PerPage:         p.PerPage,
		SortBy:          query.SortBy,
		SortOrder:       query.SortOrder,
	}

	if query.Status != "" {
		name, err := status.ParseName(query.Status)
		if err != nil {
			fe.add("status", "The selected status is invalid.")
		} else {
			filter.Status = &name
		}
	}

	filter.CreatedFrom = parseDay(fe, "date_from", query.DateFrom, biztime.StartOfDayUTC)
	filter.CreatedTo = parseDay(fe, "date_to", query.DateTo, biztime.EndOfDayUTC)
	filter.ScheduledFrom = parseDay(fe, "scheduled_from", query.ScheduledFrom, biztime.StartOfDayUTC)
	filter.ScheduledTo = parseDay(fe, "scheduled_to", query.ScheduledTo, biztime.EndOfDayUTC)

	if filter.CreatedFrom != nil && filter.CreatedTo != nil && filter.CreatedTo.Before(*filter.CreatedFrom) {
		fe.add("date_to", "date_to must be a date after or equal to date_from")
	}
	if filter.ScheduledFrom != nil && filter.ScheduledTo != nil && filter.ScheduledTo.Before(*filter.ScheduledFrom) {
		fe.add("scheduled_to", "scheduled_to must be a date after or equal to scheduled_from")
	}

	return filter, fe.err()
}

func parseDay(fe fieldErrors, field, value string, bound func(time.Time) time.Time) *time.Time {
	if value == "" {
		return nil
	}
	d, err := biztime.ParseDate(value)
	if err != nil {
		fe.add(field, "%s must be a date in the YYYY-MM-DD format", field)
		return nil
	}
	t := bound(d)
	return &t
}

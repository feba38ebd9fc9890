package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"garage/internal/domain/serviceorder"
	"garage/internal/domain/status"
	"garage/internal/infrastructure/persistence/models"
)

type statusAggregateRow struct {
	StatusID uint
	Count    int64
	Amount   decimal.Decimal
}

type amountRow struct {
	Amount decimal.Decimal
}

// Statistics aggregates non-deleted orders, optionally for one service center.
// Month revenue counts completed orders finished on or after monthStart.
func (r *ServiceOrderRepository) Statistics(ctx context.Context, serviceCenterID *uint, monthStart time.Time) (*serviceorder.Statistics, error) {
	completedID, err := r.statusID(ctx, status.Completed)
	if err != nil {
		return nil, err
	}

	var (
		rows  []statusAggregateRow
		month amountRow
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		q := r.db.WithContext(gctx).
			Model(&models.ServiceModel{}).
			Select("status_id, COUNT(*) AS count, COALESCE(SUM(total_amount), 0) AS amount")
		if serviceCenterID != nil {
			q = q.Where("service_center_id = ?", *serviceCenterID)
		}
		if err := q.Group("status_id").Scan(&rows).Error; err != nil {
			return fmt.Errorf("failed to aggregate service orders by status: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		q := r.db.WithContext(gctx).
			Model(&models.ServiceModel{}).
			Select("COALESCE(SUM(total_amount), 0) AS amount").
			Where("status_id = ? AND finished_at >= ?", completedID, monthStart.UTC())
		if serviceCenterID != nil {
			q = q.Where("service_center_id = ?", *serviceCenterID)
		}
		if err := q.Scan(&month).Error; err != nil {
			return fmt.Errorf("failed to sum monthly revenue: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		r.logger.Errorw("failed to compute service order statistics", "error", err)
		return nil, err
	}

	aggregates := make([]serviceorder.StatusAggregate, 0, len(rows))
	for _, row := range rows {
		st, err := r.statuses.FindByID(ctx, row.StatusID)
		if err != nil {
			r.logger.Warnw("statistics row with unknown status", "status_id", row.StatusID)
			continue
		}
		aggregates = append(aggregates, serviceorder.StatusAggregate{
			Status: st.Name(),
			Count:  row.Count,
			Amount: row.Amount,
		})
	}

	return serviceorder.BuildStatistics(aggregates, month.Amount), nil
}

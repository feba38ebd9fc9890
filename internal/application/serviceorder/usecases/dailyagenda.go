package usecases

import (
	"context"
	"time"

	"garage/internal/domain/serviceorder"
	"garage/internal/domain/status"
	"garage/internal/shared/biztime"
	"garage/internal/shared/logger"
)

const agendaMaxOrders = 500

// DailyAgendaJob posts the orders scheduled for the next business day.
// It satisfies the scheduler's batch job contract.
type DailyAgendaJob struct {
	orders serviceorder.Repository
	sender AgendaSender
	logger logger.Interface
}

func NewDailyAgendaJob(orders serviceorder.Repository, sender AgendaSender, logger logger.Interface) *DailyAgendaJob {
	return &DailyAgendaJob{
		orders: orders,
		sender: sender,
		logger: logger,
	}
}

func (j *DailyAgendaJob) Execute(ctx context.Context) (int, error) {
	// noon of the next day keeps the result right across DST changes
	from := biztime.StartOfDayUTC(biztime.StartOfDayUTC(biztime.NowUTC()).Add(36 * time.Hour))
	to := biztime.EndOfDayUTC(from)
	scheduled := status.Scheduled

	orders, total, err := j.orders.List(ctx, serviceorder.Filter{
		Status:        &scheduled,
		ScheduledFrom: &from,
		ScheduledTo:   &to,
		Page:          1,
		PerPage:       agendaMaxOrders,
		SortBy:        "scheduled_date",
		SortOrder:     "asc",
	})
	if err != nil {
		return 0, err
	}
	if total > int64(len(orders)) {
		j.logger.Warnw("daily agenda truncated", "total", total, "sent", len(orders))
	}
	if len(orders) == 0 {
		j.logger.Infow("no service orders scheduled for the next day", "day", biztime.Format(from, biztime.DateLayout))
		return 0, nil
	}

	if err := j.sender.SendAgenda(ctx, from, orders); err != nil {
		return 0, err
	}
	return len(orders), nil
}

package serviceorder

import (
	"github.com/shopspring/decimal"

	"garage/internal/domain/status"
)

// StatusAggregate is one row of the grouped statistics query.
type StatusAggregate struct {
	Status status.Name
	Count  int64
	Amount decimal.Decimal
}

type Statistics struct {
	Total            int64
	Pending          int64
	Scheduled        int64
	InProgress       int64
	Completed        int64
	Cancelled        int64
	Revenue          decimal.Decimal
	RevenueThisMonth decimal.Decimal
	ByStatus         map[status.Name]int64
}

// BuildStatistics folds grouped rows into the counters. Revenue only counts
// completed orders.
func BuildStatistics(rows []StatusAggregate, revenueThisMonth decimal.Decimal) *Statistics {
	s := &Statistics{
		Revenue:          decimal.Zero,
		RevenueThisMonth: revenueThisMonth,
		ByStatus:         make(map[status.Name]int64, len(status.All())),
	}
	for _, n := range status.All() {
		s.ByStatus[n] = 0
	}

	for _, r := range rows {
		s.Total += r.Count
		s.ByStatus[r.Status] += r.Count
		switch r.Status {
		case status.Scheduled:
			s.Scheduled += r.Count
		case status.InProgress:
			s.InProgress += r.Count
		case status.Completed:
			s.Completed += r.Count
			s.Revenue = s.Revenue.Add(r.Amount)
		case status.Cancelled:
			s.Cancelled += r.Count
		}
	}
	s.Pending = s.Scheduled + s.InProgress
	return s
}

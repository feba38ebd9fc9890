package usecases

import (
	"context"

	"garage/internal/application/serviceorder/dto"
	"garage/internal/domain/serviceorder"
	"garage/internal/shared/biztime"
	"garage/internal/shared/logger"
)

type GetStatisticsQuery struct {
	ServiceCenterID *uint
	Actor           Actor
}

// GetStatisticsUseCase serves the dashboard counters, read through the
// statistics cache.
type GetStatisticsUseCase struct {
	orders  serviceorder.Repository
	effects SideEffects
	logger  logger.Interface
}

func NewGetStatisticsUseCase(
	orders serviceorder.Repository,
	effects SideEffects,
	logger logger.Interface,
) *GetStatisticsUseCase {
	return &GetStatisticsUseCase{
		orders:  orders,
		effects: effects.withDefaults(),
		logger:  logger,
	}
}

func (uc *GetStatisticsUseCase) Execute(ctx context.Context, query GetStatisticsQuery) (*dto.StatisticsDTO, error) {
	centerID := query.Actor.scopeCenter(query.ServiceCenterID)
	monthStart := biztime.StartOfMonthUTC(biztime.NowUTC())

	cached, err := uc.effects.Cache.Get(ctx, centerID, monthStart)
	if err != nil {
		uc.logger.Warnw("failed to read statistics cache", "error", err)
	}
	if cached != nil {
		uc.effects.Metrics.RecordStatisticsCache(true)
		return dto.ToStatisticsDTO(cached), nil
	}
	uc.effects.Metrics.RecordStatisticsCache(false)

	stats, err := uc.orders.Statistics(ctx, centerID, monthStart)
	if err != nil {
		uc.logger.Errorw("failed to compute service order statistics", "error", err)
		return nil, err
	}

	if err := uc.effects.Cache.Set(ctx, centerID, monthStart, stats); err != nil {
		uc.logger.Warnw("failed to write statistics cache", "error", err)
	}
	return dto.ToStatisticsDTO(stats), nil
}

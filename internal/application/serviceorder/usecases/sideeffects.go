package usecases

import (
	"context"

	"garage/internal/domain/serviceorder"
	"garage/internal/infrastructure/cache"
	"garage/internal/shared/logger"
)

// SideEffects are run after a mutation commits. None of them can fail the
// request.
type SideEffects struct {
	Cache    cache.StatisticsCache
	Notifier StatusChangeNotifier
	Metrics  MetricsRecorder
}

func (s SideEffects) withDefaults() SideEffects {
	if s.Cache == nil {
		s.Cache = cache.NopStatisticsCache{}
	}
	if s.Notifier == nil {
		s.Notifier = nopNotifier{}
	}
	if s.Metrics == nil {
		s.Metrics = nopMetrics{}
	}
	return s
}

func (s SideEffects) invalidateStatistics(ctx context.Context, log logger.Interface) {
	if err := s.Cache.InvalidateAll(ctx); err != nil {
		log.Warnw("failed to invalidate statistics cache", "error", err)
	}
}

// transitioned records a lifecycle event and hands it to the notifier.
func (s SideEffects) transitioned(ctx context.Context, log logger.Interface, event string, ev serviceorder.StatusChangedEvent) {
	s.invalidateStatistics(ctx, log)
	s.Metrics.RecordTransition(event, ev.To.String())
	s.Notifier.NotifyStatusChanged(ev)
}

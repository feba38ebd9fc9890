// Package scheduler runs periodic jobs on cron expressions evaluated in the
// business timezone.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"garage/internal/shared/biztime"
	"garage/internal/shared/logger"
)

const jobTimeout = 5 * time.Minute

// BatchJob processes one batch and returns the number of items handled.
type BatchJob interface {
	Execute(ctx context.Context) (int, error)
}

type SchedulerManager struct {
	cron   *cron.Cron
	logger logger.Interface

	started   bool
	startedMu sync.Mutex
}

func NewSchedulerManager(log logger.Interface) *SchedulerManager {
	return &SchedulerManager{
		cron: cron.New(
			cron.WithLocation(biztime.Location()),
			cron.WithChain(cron.Recover(cronLogger{log}), cron.SkipIfStillRunning(cronLogger{log})),
		),
		logger: log,
	}
}

// RegisterAgendaJob schedules the daily agenda digest.
func (m *SchedulerManager) RegisterAgendaJob(spec string, job BatchJob) error {
	return m.register("daily-agenda", spec, job)
}

func (m *SchedulerManager) register(name, spec string, job BatchJob) error {
	_, err := m.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		m.run(ctx, name, job)
	})
	if err != nil {
		return fmt.Errorf("failed to register job %s with spec %q: %w", name, spec, err)
	}

	m.logger.Infow("registered scheduled job", "job", name, "spec", spec)
	return nil
}

func (m *SchedulerManager) run(ctx context.Context, name string, job BatchJob) {
	start := time.Now()
	count, err := job.Execute(ctx)
	if err != nil {
		m.logger.Errorw("scheduled job failed",
			"job", name,
			"error", err,
			"duration", time.Since(start),
		)
		return
	}
	m.logger.Infow("scheduled job finished",
		"job", name,
		"count", count,
		"duration", time.Since(start),
	)
}

// Start is a no-op when the scheduler is already running.
func (m *SchedulerManager) Start() {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()
	if m.started {
		return
	}
	m.cron.Start()
	m.started = true
	m.logger.Infow("scheduler started", "jobs", len(m.cron.Entries()))
}

// Stop waits for running jobs or until ctx is done.
func (m *SchedulerManager) Stop(ctx context.Context) error {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()
	if !m.started {
		return nil
	}
	m.started = false

	select {
	case <-m.cron.Stop().Done():
		m.logger.Infow("scheduler stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("scheduler shutdown: %w", ctx.Err())
	}
}

// NextRun returns the next activation of the first registered job.
func (m *SchedulerManager) NextRun() (time.Time, bool) {
	entries := m.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}, false
	}
	return entries[0].Schedule.Next(time.Now()), true
}

type cronLogger struct {
	log logger.Interface
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Errorw(msg, append(keysAndValues, "error", err)...)
}

package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"garage/internal/shared/logger"
)

type countingJob struct {
	calls int
	err   error
}

func (j *countingJob) Execute(ctx context.Context) (int, error) {
	j.calls++
	if _, ok := ctx.Deadline(); !ok {
		return 0, errors.New("missing deadline")
	}
	return 3, j.err
}

func TestSchedulerManager_RegisterAgendaJob(t *testing.T) {
	m := NewSchedulerManager(logger.NewNopLogger())

	require.NoError(t, m.RegisterAgendaJob("0 18 * * *", &countingJob{}))

	next, ok := m.NextRun()
	require.True(t, ok)
	local := next.In(m.cron.Location())
	assert.Equal(t, 18, local.Hour())
	assert.Equal(t, 0, local.Minute())
}

func TestSchedulerManager_RegisterInvalidSpec(t *testing.T) {
	m := NewSchedulerManager(logger.NewNopLogger())

	err := m.RegisterAgendaJob("not a cron", &countingJob{})
	assert.Error(t, err)

	_, ok := m.NextRun()
	assert.False(t, ok)
}

func TestSchedulerManager_Run(t *testing.T) {
	m := NewSchedulerManager(logger.NewNopLogger())
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	job := &countingJob{}
	m.run(ctx, "test", job)
	assert.Equal(t, 1, job.calls)

	failing := &countingJob{err: errors.New("boom")}
	m.run(ctx, "test", failing)
	assert.Equal(t, 1, failing.calls)
}

func TestSchedulerManager_StartStop(t *testing.T) {
	m := NewSchedulerManager(logger.NewNopLogger())
	require.NoError(t, m.Stop(context.Background()))

	m.Start()
	m.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, m.Stop(ctx))
}

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"garage/internal/domain/serviceorder"
	"garage/internal/domain/status"
	"garage/internal/shared/logger"
)

func setupTestRedis(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	client.FlushDB(ctx)
	t.Cleanup(func() {
		client.FlushDB(ctx)
		client.Close()
	})
	return client
}

func sampleStatistics() *serviceorder.Statistics {
	return serviceorder.BuildStatistics([]serviceorder.StatusAggregate{
		{Status: status.Scheduled, Count: 3, Amount: decimal.NewFromInt(300)},
		{Status: status.Completed, Count: 2, Amount: decimal.RequireFromString("1250.50")},
	}, decimal.NewFromInt(400))
}

func TestRedisStatisticsCache_RoundTrip(t *testing.T) {
	client := setupTestRedis(t)
	c := NewRedisStatisticsCache(client, time.Minute, logger.NewNopLogger())
	ctx := context.Background()
	month := time.Date(2024, 1, 1, 3, 0, 0, 0, time.UTC)
	center := uint(7)

	got, err := c.Get(ctx, &center, month)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, c.Set(ctx, &center, month, sampleStatistics()))

	got, err = c.Get(ctx, &center, month)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(5), got.Total)
	assert.Equal(t, int64(3), got.Pending)
	assert.True(t, got.Revenue.Equal(decimal.RequireFromString("1250.50")))
	assert.Equal(t, int64(2), got.ByStatus[status.Completed])

	all, err := c.Get(ctx, nil, month)
	require.NoError(t, err)
	assert.Nil(t, all, "center entries must not leak into the global scope")
}

func TestRedisStatisticsCache_InvalidateAll(t *testing.T) {
	client := setupTestRedis(t)
	c := NewRedisStatisticsCache(client, time.Minute, logger.NewNopLogger())
	ctx := context.Background()
	month := time.Date(2024, 1, 1, 3, 0, 0, 0, time.UTC)
	center := uint(1)

	require.NoError(t, c.Set(ctx, nil, month, sampleStatistics()))
	require.NoError(t, c.Set(ctx, &center, month, sampleStatistics()))
	require.NoError(t, c.InvalidateAll(ctx))

	got, err := c.Get(ctx, nil, month)
	require.NoError(t, err)
	assert.Nil(t, got)
	got, err = c.Get(ctx, &center, month)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestNopStatisticsCache(t *testing.T) {
	var c StatisticsCache = NopStatisticsCache{}
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, nil, time.Now(), sampleStatistics()))
	got, err := c.Get(ctx, nil, time.Now())
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, c.InvalidateAll(ctx))
}

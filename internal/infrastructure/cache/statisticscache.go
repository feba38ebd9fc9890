package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"garage/internal/domain/serviceorder"
	"garage/internal/shared/logger"
)

// StatisticsCache keeps dashboard counters for a short time. Any write to a
// service order invalidates every entry.
type StatisticsCache interface {
	// Get returns nil on a cache miss.
	Get(ctx context.Context, serviceCenterID *uint, monthStart time.Time) (*serviceorder.Statistics, error)
	Set(ctx context.Context, serviceCenterID *uint, monthStart time.Time, stats *serviceorder.Statistics) error
	InvalidateAll(ctx context.Context) error
}

const statsKeyPrefix = "garage:stats:"

type RedisStatisticsCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Interface
}

func NewRedisStatisticsCache(client *redis.Client, ttl time.Duration, logger logger.Interface) *RedisStatisticsCache {
	return &RedisStatisticsCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *RedisStatisticsCache) key(serviceCenterID *uint, monthStart time.Time) string {
	scope := "all"
	if serviceCenterID != nil {
		scope = fmt.Sprintf("center:%d", *serviceCenterID)
	}
	return fmt.Sprintf("%s%s:%d", statsKeyPrefix, scope, monthStart.Unix())
}

func (c *RedisStatisticsCache) Get(ctx context.Context, serviceCenterID *uint, monthStart time.Time) (*serviceorder.Statistics, error) {
	raw, err := c.client.Get(ctx, c.key(serviceCenterID, monthStart)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get statistics from cache: %w", err)
	}

	var stats serviceorder.Statistics
	if err := json.Unmarshal(raw, &stats); err != nil {
		c.logger.Warnw("discarding corrupt statistics cache entry", "error", err)
		return nil, nil
	}
	return &stats, nil
}

func (c *RedisStatisticsCache) Set(ctx context.Context, serviceCenterID *uint, monthStart time.Time, stats *serviceorder.Statistics) error {
	if c.ttl <= 0 || stats == nil {
		return nil
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to encode statistics: %w", err)
	}
	if err := c.client.Set(ctx, c.key(serviceCenterID, monthStart), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store statistics in cache: %w", err)
	}
	return nil
}

func (c *RedisStatisticsCache) InvalidateAll(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, statsKeyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan statistics keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate statistics cache: %w", err)
	}
	return nil
}

// NopStatisticsCache is used when redis is not configured.
type NopStatisticsCache struct{}

func (NopStatisticsCache) Get(context.Context, *uint, time.Time) (*serviceorder.Statistics, error) {
	return nil, nil
}

func (NopStatisticsCache) Set(context.Context, *uint, time.Time, *serviceorder.Statistics) error {
	return nil
}

func (NopStatisticsCache) InvalidateAll(context.Context) error { return nil }

package ratelimit

import (
	"context"
	"time"
)

// Result reports the outcome of one Allow call.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	// RetryAfter is set when the request was denied.
	RetryAfter time.Duration
}

type RateLimiter interface {
	// Allow counts one request for key inside a sliding window.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (Result, error)
	Reset(ctx context.Context, key string) error
}

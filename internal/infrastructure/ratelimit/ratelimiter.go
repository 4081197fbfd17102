package ratelimit

import (
	"context"
	"time"
)

// Limit allows Requests per Window for a single key.
type Limit struct {
	Requests int
	Window   time.Duration
}

type Result struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

type RateLimiter interface {
	Allow(ctx context.Context, key string, limit Limit) (Result, error)
}

package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"talentika/internal/shared/biztime"
)

// RedisRateLimiter counts requests in fixed windows aligned to the window size.
type RedisRateLimiter struct {
	client *redis.Client
	prefix string
}

func NewRedisRateLimiter(client *redis.Client) *RedisRateLimiter {
	return &RedisRateLimiter{
		client: client,
		prefix: "ratelimit",
	}
}

var _ RateLimiter = (*RedisRateLimiter)(nil)

func (l *RedisRateLimiter) Allow(ctx context.Context, key string, limit Limit) (Result, error) {
	if limit.Requests <= 0 || limit.Window <= 0 {
		return Result{Allowed: true}, nil
	}

	now := biztime.NowUTC()
	windowStart := now.Truncate(limit.Window)
	redisKey := l.getKey(key, limit.Window, windowStart)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.ExpireNX(ctx, redisKey, limit.Window+time.Second)
	if _, err := pipe.Exec(ctx); err != nil {
		return Result{}, fmt.Errorf("failed to execute pipeline: %w", err)
	}

	count := int(incr.Val())
	if count > limit.Requests {
		return Result{
			Allowed:    false,
			RetryAfter: windowStart.Add(limit.Window).Sub(now),
		}, nil
	}
	return Result{Allowed: true, Remaining: limit.Requests - count}, nil
}

func (l *RedisRateLimiter) getKey(identifier string, window time.Duration, windowStart time.Time) string {
	return fmt.Sprintf("%s:%s:%s:%d", l.prefix, identifier, window.String(), windowStart.Unix())
}

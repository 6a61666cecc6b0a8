// Package ratelimit throttles ticket issuance per holder so a kiosk script
// cannot exhaust a counter's daily capacity in seconds.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// IssueLimiter answers whether a holder may issue another ticket right now.
type IssueLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Remaining(ctx context.Context, key string) (int64, error)
	Reset(ctx context.Context, key string) error
}

// RedisIssueLimiter is a sliding-window limiter over a redis sorted set. Each
// issuance is a member scored by its nanosecond timestamp; expired members
// are trimmed before counting.
type RedisIssueLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

func NewRedisIssueLimiter(client *redis.Client, perMinute int) *RedisIssueLimiter {
	return &RedisIssueLimiter{
		client: client,
		limit:  perMinute,
		window: time.Minute,
	}
}

func (l *RedisIssueLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.limit <= 0 {
		return true, nil
	}

	now := time.Now()
	redisKey := l.redisKey(key)
	windowStart := now.Add(-l.window).UnixNano()
	nowNano := now.UnixNano()

	pipe := l.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", fmt.Sprintf("%d", windowStart))
	zcard := pipe.ZCard(ctx, redisKey)
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(nowNano), Member: nowNano})
	pipe.Expire(ctx, redisKey, l.window+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to execute rate limit pipeline: %w", err)
	}

	return zcard.Val() < int64(l.limit), nil
}

func (l *RedisIssueLimiter) Remaining(ctx context.Context, key string) (int64, error) {
	if l.limit <= 0 {
		return int64(^uint64(0) >> 1), nil
	}

	redisKey := l.redisKey(key)
	windowStart := time.Now().Add(-l.window).UnixNano()

	pipe := l.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", fmt.Sprintf("%d", windowStart))
	zcard := pipe.ZCard(ctx, redisKey)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to count rate limit window: %w", err)
	}

	remaining := int64(l.limit) - zcard.Val()
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

func (l *RedisIssueLimiter) Reset(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, l.redisKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to reset rate limit: %w", err)
	}
	return nil
}

func (l *RedisIssueLimiter) redisKey(key string) string {
	return "ratelimit:issue:" + key
}

// NopLimiter allows everything. Used when redis is not configured.
type NopLimiter struct{}

func (NopLimiter) Allow(ctx context.Context, key string) (bool, error) { return true, nil }

func (NopLimiter) Remaining(ctx context.Context, key string) (int64, error) { return 0, nil }

func (NopLimiter) Reset(ctx context.Context, key string) error { return nil }

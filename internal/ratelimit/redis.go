package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisWindow is a fixed-window limiter shared across instances: one
// counter per key per window, expiry handled by Redis.
type RedisWindow struct {
	client *redis.Client
	prefix string
	window time.Duration
	max    int
}

func NewRedisWindow(client *redis.Client, prefix string, window time.Duration, max int) *RedisWindow {
	return &RedisWindow{client: client, prefix: prefix, window: window, max: max}
}

func (r *RedisWindow) Allow(ctx context.Context, key string) (Decision, error) {
	full := r.prefix + ":" + key

	count, err := r.client.Incr(ctx, full).Result()
	if err != nil {
		return Decision{}, err
	}
	if count == 1 {
		if err := r.client.Expire(ctx, full, r.window).Err(); err != nil {
			return Decision{}, err
		}
	}

	if count > int64(r.max) {
		ttl, err := r.client.TTL(ctx, full).Result()
		if err != nil || ttl < 0 {
			ttl = r.window
		}
		return Decision{Allowed: false, Remaining: 0, ResetIn: ttl}, nil
	}

	remaining := r.max - int(count)
	return Decision{Allowed: true, Remaining: remaining, ResetIn: r.window}, nil
}

package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrTooManyAttempts = errors.New("too many attempts")

// RedisLimiter counts attempts per key within a fixed window shared by every
// instance of the service.
type RedisLimiter struct {
	redis  *redis.Client
	max    int64
	window time.Duration
}

func NewRedisLimiter(redis *redis.Client, max int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		redis:  redis,
		max:    int64(max),
		window: window,
	}
}

// Allow counts one attempt for key. The window starts with the first attempt
// and is set in the same transaction as the increment.
func (r *RedisLimiter) Allow(ctx context.Context, key string) error {
	key = fmt.Sprintf("submit_attempts:%s", key)

	var count *redis.IntCmd
	_, err := r.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		count = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, r.window)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to count attempt: %w", err)
	}

	if count.Val() > r.max {
		return ErrTooManyAttempts
	}

	return nil
}

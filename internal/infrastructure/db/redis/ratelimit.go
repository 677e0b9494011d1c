package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	failureWindow = time.Minute
	maxFailures   = 10
)

// LoginLimiter throttles repeated login failures per username with a
// fixed-window counter in Redis. Key format: login_fail:<username>
type LoginLimiter struct {
	client *redis.Client
}

// NewLoginLimiter creates a LoginLimiter wrapping the given Redis client.
func NewLoginLimiter(client *redis.Client) *LoginLimiter {
	return &LoginLimiter{client: client}
}

// TooMany reports whether the username exceeded the failure budget within
// the current window.
func (l *LoginLimiter) TooMany(ctx context.Context, username string) (bool, error) {
	n, err := l.client.Get(ctx, l.key(username)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("limiter check: %w", err)
	}
	return n >= maxFailures, nil
}

// RecordFailure counts one failed attempt; the first failure in a window
// starts its expiry.
func (l *LoginLimiter) RecordFailure(ctx context.Context, username string) error {
	key := l.key(username)
	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("limiter incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, key, failureWindow).Err(); err != nil {
			return fmt.Errorf("limiter expire: %w", err)
		}
	}
	return nil
}

func (l *LoginLimiter) key(username string) string {
	return "login_fail:" + username
}

// Copyright (c) 2026 Quillside. All rights reserved.
// Author: dev@quillside.app

package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/quillside/quillside/internal/platform/constants"
)

// RedisLoginThrottle implements [LoginThrottle] on top of volatile,
// self-expiring Redis counters.
type RedisLoginThrottle struct {
	client *redis.Client
}

// NewLoginThrottle creates the Redis-backed login failure tracker.
func NewLoginThrottle(client *redis.Client) *RedisLoginThrottle {
	return &RedisLoginThrottle{client: client}
}

// RecordFailure increments the failure counter and returns the new count.
//
// The expiry is set only when the counter is created, so the window runs
// from the first failure rather than being refreshed by every attempt.
func (throttle *RedisLoginThrottle) RecordFailure(ctx context.Context, email string) (int, error) {
	key := throttleKey(email)

	count, err := throttle.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("login_throttle_incr_failed: %w", err)
	}

	if count == 1 {
		if err := throttle.client.Expire(ctx, key, constants.LoginFailureWindow).Err(); err != nil {
			return int(count), fmt.Errorf("login_throttle_expire_failed: %w", err)
		}
	}

	return int(count), nil
}

// Failures returns the current failure count, 0 when no counter exists.
func (throttle *RedisLoginThrottle) Failures(ctx context.Context, email string) (int, error) {
	count, err := throttle.client.Get(ctx, throttleKey(email)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("login_throttle_get_failed: %w", err)
	}

	return count, nil
}

// Reset clears the failure counter after a successful login.
func (throttle *RedisLoginThrottle) Reset(ctx context.Context, email string) error {
	if err := throttle.client.Del(ctx, throttleKey(email)).Err(); err != nil {
		return fmt.Errorf("login_throttle_reset_failed: %w", err)
	}
	return nil
}

func throttleKey(email string) string {
	return constants.RedisPrefixLoginFailures + email
}

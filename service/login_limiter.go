package service

import (
	"context"
	"go-session-api/logger"
	"strings"
	"time"
)

const (
	loginAttemptLimit  = 5
	loginAttemptWindow = 5 * time.Minute
)

// LoginLimiter throttles login attempts per email with a fixed redis
// window. It fails open: a cache outage must not lock everyone out.
type LoginLimiter struct {
	cache  ICacheClient
	limit  int64
	window time.Duration
}

func NewLoginLimiter(cache ICacheClient) *LoginLimiter {
	return &LoginLimiter{cache: cache, limit: loginAttemptLimit, window: loginAttemptWindow}
}

// Allow records one attempt and reports whether the caller is still under
// the limit for the current window.
func (l *LoginLimiter) Allow(ctx context.Context, email string) bool {
	key := attemptKey(email)
	count, err := l.cache.Incr(ctx, key).Result()
	if err != nil {
		logger.Log.WithError(err).Warn("Login limiter unavailable, allowing attempt")
		return true
	}
	if count == 1 {
		if err := l.cache.Expire(ctx, key, l.window).Err(); err != nil {
			logger.Log.WithError(err).Warn("Failed to set login limiter window")
		}
	}
	return count <= l.limit
}

// Reset clears the attempt counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, email string) {
	if err := l.cache.Del(ctx, attemptKey(email)).Err(); err != nil {
		logger.Log.WithError(err).Warn("Failed to reset login limiter")
	}
}

func attemptKey(email string) string {
	return "login_attempts:" + strings.ToLower(email)
}

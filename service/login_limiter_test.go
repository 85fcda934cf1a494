package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func newTestLimiter(t *testing.T) (*LoginLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewLoginLimiter(client), mr
}

func TestLoginLimiter_AllowsUnderLimit(t *testing.T) {
	limiter, _ := newTestLimiter(t)
	ctx := context.Background()

	for i := 0; i < loginAttemptLimit; i++ {
		assert.True(t, limiter.Allow(ctx, "ann@x.com"), "attempt %d should be allowed", i+1)
	}
	assert.False(t, limiter.Allow(ctx, "ann@x.com"))
}

func TestLoginLimiter_IsolatesEmails(t *testing.T) {
	limiter, _ := newTestLimiter(t)
	ctx := context.Background()

	for i := 0; i < loginAttemptLimit+1; i++ {
		limiter.Allow(ctx, "ann@x.com")
	}
	assert.True(t, limiter.Allow(ctx, "bob@x.com"))
}

func TestLoginLimiter_ResetClearsCounter(t *testing.T) {
	limiter, _ := newTestLimiter(t)
	ctx := context.Background()

	for i := 0; i < loginAttemptLimit+1; i++ {
		limiter.Allow(ctx, "ann@x.com")
	}
	assert.False(t, limiter.Allow(ctx, "ann@x.com"))

	limiter.Reset(ctx, "ann@x.com")
	assert.True(t, limiter.Allow(ctx, "ann@x.com"))
}

func TestLoginLimiter_WindowExpires(t *testing.T) {
	limiter, mr := newTestLimiter(t)
	ctx := context.Background()

	for i := 0; i < loginAttemptLimit+1; i++ {
		limiter.Allow(ctx, "ann@x.com")
	}
	assert.False(t, limiter.Allow(ctx, "ann@x.com"))

	mr.FastForward(loginAttemptWindow + time.Second)
	assert.True(t, limiter.Allow(ctx, "ann@x.com"))
}

func TestLoginLimiter_FailsOpenWhenRedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	limiter := NewLoginLimiter(client)

	mr.Close()
	assert.True(t, limiter.Allow(context.Background(), "ann@x.com"))
}

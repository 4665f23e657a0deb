package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimiter(t *testing.T, limit int) (*FixedWindowLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	limiter, err := NewFixedWindowLimiter(client, "test:ratelimit", limit, time.Minute)
	require.NoError(t, err)
	return limiter, mr
}

func TestFixedWindowLimiter(t *testing.T) {
	limiter, _ := newLimiter(t, 2)
	ctx := context.Background()

	assert.True(t, limiter.Allow(ctx, "ip-1"), "first request should pass")
	assert.True(t, limiter.Allow(ctx, "ip-1"), "second request should pass")
	assert.False(t, limiter.Allow(ctx, "ip-1"), "third request should be blocked")
	assert.True(t, limiter.Allow(ctx, "ip-2"), "keys are limited independently")
}

func TestFixedWindowLimiter_FailClosed(t *testing.T) {
	limiter, mr := newLimiter(t, 1)
	mr.Close()
	assert.False(t, limiter.Allow(context.Background(), "ip-1"), "limiter should fail closed on redis errors")
}

func TestNewFixedWindowLimiter_RequiresClient(t *testing.T) {
	limiter, err := NewFixedWindowLimiter(nil, "", 1, time.Second)
	assert.Error(t, err)
	assert.Nil(t, limiter)
}

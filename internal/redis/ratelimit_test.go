package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowAuth_BlocksAfterLimit(t *testing.T) {
	client, _ := newTestClient(t)
	rl := NewRateLimiter(client, RateLimitConfig{AuthLimit: 2, AuthWindow: time.Minute})
	ctx := context.Background()

	first, err := rl.AllowAuth(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, first.Allowed)
	assert.Equal(t, 1, first.Remaining)
	assert.Equal(t, 2, first.Limit)

	second, err := rl.AllowAuth(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, second.Allowed)
	assert.Equal(t, 0, second.Remaining)

	third, err := rl.AllowAuth(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, third.Allowed)

	other, err := rl.AllowAuth(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, other.Allowed)
}

func TestAllowAuth_WindowExpires(t *testing.T) {
	client, mr := newTestClient(t)
	rl := NewRateLimiter(client, RateLimitConfig{AuthLimit: 1, AuthWindow: time.Minute})
	ctx := context.Background()

	_, err := rl.AllowAuth(ctx, "ip")
	require.NoError(t, err)
	blocked, err := rl.AllowAuth(ctx, "ip")
	require.NoError(t, err)
	assert.False(t, blocked.Allowed)

	mr.FastForward(61 * time.Second)

	again, err := rl.AllowAuth(ctx, "ip")
	require.NoError(t, err)
	assert.True(t, again.Allowed)
}

func TestAllowAuth_ZeroLimitAllows(t *testing.T) {
	rl := NewRateLimiter(nil, RateLimitConfig{AuthLimit: 0, AuthWindow: time.Minute})

	res, err := rl.AllowAuth(context.Background(), "ip")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestAllowAuth_RedisDown(t *testing.T) {
	client, mr := newTestClient(t)
	rl := NewRateLimiter(client, DefaultRateLimitConfig())
	mr.Close()

	_, err := rl.AllowAuth(context.Background(), "ip")
	assert.ErrorContains(t, err, "rate limit check failed")
}

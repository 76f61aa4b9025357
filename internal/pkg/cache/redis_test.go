package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGet(t *testing.T) {
	redis := miniredis.RunT(t)
	c := NewRedisCache(redis.Addr(), "orders")
	ctx := context.Background()

	key := c.GenerateKey("customer-profile", "c-1")
	assert.Equal(t, "orders:customer-profile:c-1", key)

	require.NoError(t, c.Set(ctx, key, "payload", time.Minute))

	val, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "payload", val)
}

func TestGetMissReturnsEmpty(t *testing.T) {
	redis := miniredis.RunT(t)
	c := NewRedisCache(redis.Addr(), "orders")

	val, err := c.Get(context.Background(), "orders:missing:key")
	require.NoError(t, err)
	assert.Empty(t, val)
}

func TestTTLExpiry(t *testing.T) {
	redis := miniredis.RunT(t)
	c := NewRedisCache(redis.Addr(), "orders")
	ctx := context.Background()

	key := c.GenerateKey("customer-profile", "c-2")
	require.NoError(t, c.Set(ctx, key, "payload", time.Second))

	redis.FastForward(2 * time.Second)

	val, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.Empty(t, val, "expired keys read as a miss")
}

package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/restaurant-orders/internal/pkg/cache"
)

func TestMemoryCache_SetGet(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemoryCache("orders")

	key := c.GenerateKey("create_order", "req-1")
	assert.Equal(t, "orders:create_order:req-1", key)

	require.NoError(t, c.Set(ctx, key, "order-42", time.Minute))

	val, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "order-42", val)
}

func TestMemoryCache_MissReturnsEmpty(t *testing.T) {
	c := cache.NewMemoryCache("orders")

	val, err := c.Get(context.Background(), "orders:create_order:unknown")
	require.NoError(t, err, "a miss is not an error, matching the redis implementation")
	assert.Empty(t, val)
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemoryCache("orders")

	require.NoError(t, c.Set(ctx, "k", "v", time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	val, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Empty(t, val)
}

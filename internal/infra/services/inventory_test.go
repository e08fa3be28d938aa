package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/restaurant-orders/internal/core/domain"
	"github.com/jcmexdev/restaurant-orders/internal/infra/services"
)

func TestStockService_ReserveAndRelease(t *testing.T) {
	ctx := context.Background()
	stock := services.NewStockService()
	stock.SetStock("p1", 10)
	stock.SetStock("p2", 5)

	require.NoError(t, stock.Reserve(ctx, map[string]int{"p1": 4, "p2": 5}))

	left, err := stock.AvailableQuantity(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 6, left)
	left, err = stock.AvailableQuantity(ctx, "p2")
	require.NoError(t, err)
	assert.Equal(t, 0, left)

	require.NoError(t, stock.Release(ctx, map[string]int{"p1": 4, "p2": 5}))
	left, err = stock.AvailableQuantity(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 10, left)
}

func TestStockService_ReserveIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	stock := services.NewStockService()
	stock.SetStock("p1", 10)
	stock.SetStock("p2", 1)

	err := stock.Reserve(ctx, map[string]int{"p1": 4, "p2": 2})
	var rerr *domain.ReservationError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "p2", rerr.ProductID)
	assert.Equal(t, 2, rerr.Requested)
	assert.Equal(t, 1, rerr.Available)

	// Nothing was decremented, including the line that could have been served.
	left, err := stock.AvailableQuantity(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 10, left)
	left, err = stock.AvailableQuantity(ctx, "p2")
	require.NoError(t, err)
	assert.Equal(t, 1, left)
}

func TestStockService_DefaultLevel(t *testing.T) {
	ctx := context.Background()
	stock := services.NewStockService()

	ok, err := stock.CheckAvailability(ctx, "never-seen", domain.DefaultInventoryLevel)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = stock.CheckAvailability(ctx, "never-seen", domain.DefaultInventoryLevel+1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStockService_UpdateStock(t *testing.T) {
	ctx := context.Background()
	stock := services.NewStockService()
	stock.SetStock("p1", 3)

	require.NoError(t, stock.UpdateStock(ctx, "p1", 7))
	left, err := stock.AvailableQuantity(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 10, left)

	var verr *domain.ValidationError
	assert.ErrorAs(t, stock.UpdateStock(ctx, "p1", -11), &verr)
	left, err = stock.AvailableQuantity(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 10, left, "rejected update must not change stock")
}

func TestStockService_ConcurrentReservesCannotOversell(t *testing.T) {
	ctx := context.Background()
	stock := services.NewStockService()
	stock.SetStock("p1", 100)

	// Two goroutines race for 60 units each out of 100: exactly one wins.
	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- stock.Reserve(ctx, map[string]int{"p1": 60})
		}()
	}
	wg.Wait()
	close(errs)

	var failures int
	for err := range errs {
		if err != nil {
			var rerr *domain.ReservationError
			assert.ErrorAs(t, err, &rerr)
			failures++
		}
	}
	assert.Equal(t, 1, failures)

	left, err := stock.AvailableQuantity(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 40, left)
}

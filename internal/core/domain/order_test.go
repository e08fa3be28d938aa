package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/restaurant-orders/internal/core/domain"
)

func newTestProduct(t *testing.T, name string, price float64) *domain.Product {
	t.Helper()
	product, err := domain.NewProduct(name, "test product", price, "Test")
	require.NoError(t, err)
	return product
}

func newTestOrder(t *testing.T) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder("customer-1", "")
	require.NoError(t, err)
	return order
}

// orderInStatus walks the order through the transition graph to reach target.
func orderInStatus(t *testing.T, target domain.OrderStatus) *domain.Order {
	t.Helper()
	order := newTestOrder(t)
	path := map[domain.OrderStatus][]domain.OrderStatus{
		domain.StatusPending:   {},
		domain.StatusConfirmed: {domain.StatusConfirmed},
		domain.StatusPreparing: {domain.StatusConfirmed, domain.StatusPreparing},
		domain.StatusReady:     {domain.StatusConfirmed, domain.StatusPreparing, domain.StatusReady},
		domain.StatusDelivered: {domain.StatusConfirmed, domain.StatusPreparing, domain.StatusReady, domain.StatusDelivered},
		domain.StatusCancelled: {domain.StatusCancelled},
	}
	for _, next := range path[target] {
		require.NoError(t, order.UpdateStatus(next))
	}
	require.Equal(t, target, order.Status)
	return order
}

func TestNewOrder(t *testing.T) {
	order, err := domain.NewOrder("customer-1", "no onions")
	require.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, domain.StatusPending, order.Status)
	assert.Equal(t, "no onions", order.Notes)
	assert.Empty(t, order.Items)
	assert.False(t, order.CreatedAt.IsZero())
	assert.Equal(t, order.CreatedAt, order.UpdatedAt)

	_, err = domain.NewOrder("", "")
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestOrder_StatusTransitions(t *testing.T) {
	allowed := map[domain.OrderStatus][]domain.OrderStatus{
		domain.StatusPending:   {domain.StatusConfirmed, domain.StatusCancelled},
		domain.StatusConfirmed: {domain.StatusPreparing, domain.StatusCancelled},
		domain.StatusPreparing: {domain.StatusReady, domain.StatusCancelled},
		domain.StatusReady:     {domain.StatusDelivered},
		domain.StatusDelivered: {},
		domain.StatusCancelled: {},
	}

	for _, from := range domain.AllStatuses() {
		for _, to := range domain.AllStatuses() {
			order := orderInStatus(t, from)
			before := order.UpdatedAt

			err := order.UpdateStatus(to)
			if contains(allowed[from], to) {
				require.NoError(t, err, "%s -> %s must be allowed", from, to)
				assert.Equal(t, to, order.Status)
			} else {
				var terr *domain.TransitionError
				require.ErrorAs(t, err, &terr, "%s -> %s must be rejected", from, to)
				assert.Equal(t, from, terr.From)
				assert.Equal(t, to, terr.To)
				assert.Equal(t, from, order.Status, "failed transition must not mutate")
				assert.Equal(t, before, order.UpdatedAt, "failed transition must not touch UpdatedAt")
			}
		}
	}
}

func TestOrderStatus_IsTerminal(t *testing.T) {
	assert.True(t, domain.StatusDelivered.IsTerminal())
	assert.True(t, domain.StatusCancelled.IsTerminal())
	assert.False(t, domain.StatusPending.IsTerminal())
	assert.False(t, domain.StatusReady.IsTerminal())
	assert.False(t, domain.OrderStatus("BOGUS").IsTerminal())
	assert.False(t, domain.OrderStatus("BOGUS").IsValid())
}

func TestOrder_AddItem(t *testing.T) {
	t.Run("merges duplicate product into one line", func(t *testing.T) {
		order := newTestOrder(t)
		pizza := newTestProduct(t, "Margherita Pizza", 12.99)

		require.NoError(t, order.AddItem(pizza, 2))
		require.NoError(t, order.AddItem(pizza, 3))

		require.Len(t, order.Items, 1)
		assert.Equal(t, 5, order.Items[0].Quantity)
	})

	t.Run("merge over max quantity is rejected", func(t *testing.T) {
		order := newTestOrder(t)
		pizza := newTestProduct(t, "Margherita Pizza", 12.99)

		require.NoError(t, order.AddItem(pizza, 60))
		err := order.AddItem(pizza, 60)
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, 60, order.Items[0].Quantity)
	})

	t.Run("unavailable product is rejected", func(t *testing.T) {
		order := newTestOrder(t)
		pizza := newTestProduct(t, "Margherita Pizza", 12.99)
		pizza.MakeUnavailable()

		err := order.AddItem(pizza, 1)
		var uerr *domain.UnavailableError
		require.ErrorAs(t, err, &uerr)
		assert.Equal(t, pizza.ID, uerr.ProductID)
	})

	t.Run("only PENDING orders can be mutated", func(t *testing.T) {
		pizza := newTestProduct(t, "Margherita Pizza", 12.99)
		for _, status := range []domain.OrderStatus{
			domain.StatusConfirmed, domain.StatusPreparing, domain.StatusReady,
			domain.StatusDelivered, domain.StatusCancelled,
		} {
			order := orderInStatus(t, status)
			var serr *domain.InvalidStateError
			assert.ErrorAs(t, order.AddItem(pizza, 1), &serr, "status %s", status)
			assert.ErrorAs(t, order.RemoveItem(pizza.ID), &serr, "status %s", status)
			assert.ErrorAs(t, order.UpdateItemQuantity(pizza.ID, 2), &serr, "status %s", status)
		}
	})

	t.Run("caps distinct lines", func(t *testing.T) {
		order := newTestOrder(t)
		for i := 0; i < domain.MaxItemsPerOrder; i++ {
			require.NoError(t, order.AddItem(newTestProduct(t, "item", 1.00), 1))
		}
		err := order.AddItem(newTestProduct(t, "one too many", 1.00), 1)
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Len(t, order.Items, domain.MaxItemsPerOrder)
	})
}

func TestOrder_RemoveItem(t *testing.T) {
	order := newTestOrder(t)
	pizza := newTestProduct(t, "Margherita Pizza", 12.99)
	burger := newTestProduct(t, "Classic Burger", 10.50)
	require.NoError(t, order.AddItem(pizza, 2))
	require.NoError(t, order.AddItem(burger, 1))

	require.NoError(t, order.RemoveItem(pizza.ID))
	require.Len(t, order.Items, 1)
	assert.Equal(t, burger.ID, order.Items[0].ProductID)

	// Removing a missing line is a no-op.
	require.NoError(t, order.RemoveItem("missing"))
	assert.Len(t, order.Items, 1)
}

func TestOrder_UpdateItemQuantity(t *testing.T) {
	order := newTestOrder(t)
	pizza := newTestProduct(t, "Margherita Pizza", 12.99)
	require.NoError(t, order.AddItem(pizza, 2))

	require.NoError(t, order.UpdateItemQuantity(pizza.ID, 7))
	assert.Equal(t, 7, order.Item(pizza.ID).Quantity)

	var nerr *domain.NotFoundError
	assert.ErrorAs(t, order.UpdateItemQuantity("missing", 3), &nerr)

	// Zero or negative removes the line.
	require.NoError(t, order.UpdateItemQuantity(pizza.ID, 0))
	assert.Nil(t, order.Item(pizza.ID))
}

func TestOrder_TotalAmount(t *testing.T) {
	order := newTestOrder(t)
	pizza := newTestProduct(t, "Margherita Pizza", 12.99)
	burger := newTestProduct(t, "Classic Burger", 10.50)

	require.NoError(t, order.AddItem(pizza, 2))
	require.NoError(t, order.AddItem(burger, 1))

	assert.InDelta(t, 36.48, order.TotalAmount(), 1e-9)
	assert.Equal(t, 3, order.TotalItems())
}

func TestOrder_Cancel(t *testing.T) {
	for _, status := range []domain.OrderStatus{domain.StatusPending, domain.StatusConfirmed} {
		order := orderInStatus(t, status)
		assert.True(t, order.CanBeCancelled())
		require.NoError(t, order.Cancel())
		assert.Equal(t, domain.StatusCancelled, order.Status)
	}

	for _, status := range []domain.OrderStatus{
		domain.StatusPreparing, domain.StatusReady,
		domain.StatusDelivered, domain.StatusCancelled,
	} {
		order := orderInStatus(t, status)
		assert.False(t, order.CanBeCancelled())
		var serr *domain.InvalidStateError
		assert.ErrorAs(t, order.Cancel(), &serr)
		assert.Equal(t, status, order.Status)
	}
}

func TestOrder_AddNotes(t *testing.T) {
	order := newTestOrder(t)
	order.AddNotes("extra napkins")
	assert.Equal(t, "extra napkins", order.Notes)
}

func contains(statuses []domain.OrderStatus, s domain.OrderStatus) bool {
	for _, v := range statuses {
		if v == s {
			return true
		}
	}
	return false
}

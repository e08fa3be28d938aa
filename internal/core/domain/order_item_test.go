package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/restaurant-orders/internal/core/domain"
)

func TestNewOrderItem_Validation(t *testing.T) {
	tests := []struct {
		name      string
		productID string
		prodName  string
		quantity  int
		unitPrice float64
		wantErr   bool
	}{
		{"valid", "p1", "Margherita Pizza", 2, 12.99, false},
		{"min quantity", "p1", "Margherita Pizza", 1, 0.01, false},
		{"max quantity", "p1", "Margherita Pizza", 99, 12.99, false},
		{"empty product id", "", "Margherita Pizza", 2, 12.99, true},
		{"empty name", "p1", "   ", 2, 12.99, true},
		{"zero quantity", "p1", "Margherita Pizza", 0, 12.99, true},
		{"negative quantity", "p1", "Margherita Pizza", -1, 12.99, true},
		{"quantity over max", "p1", "Margherita Pizza", 100, 12.99, true},
		{"price below floor", "p1", "Margherita Pizza", 2, 0.009, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := domain.NewOrderItem(tt.productID, tt.prodName, tt.quantity, tt.unitPrice)
			if tt.wantErr {
				require.Error(t, err)
				var verr *domain.ValidationError
				assert.ErrorAs(t, err, &verr)
				assert.Nil(t, item)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, item)
		})
	}
}

func TestNewOrderItem_TrimsName(t *testing.T) {
	item, err := domain.NewOrderItem("p1", "  Classic Burger  ", 1, 10.50)
	require.NoError(t, err)
	assert.Equal(t, "Classic Burger", item.ProductName)
}

func TestOrderItem_TotalPrice(t *testing.T) {
	tests := []struct {
		quantity  int
		unitPrice float64
		want      float64
	}{
		{2, 12.99, 25.98},
		{1, 10.50, 10.50},
		{3, 0.01, 0.03},
		{3, 3.335, 10.01}, // rounds half away from zero
	}

	for _, tt := range tests {
		item, err := domain.NewOrderItem("p1", "item", tt.quantity, tt.unitPrice)
		require.NoError(t, err)
		assert.InDelta(t, tt.want, item.TotalPrice(), 1e-9)
	}
}

func TestOrderItem_UpdateQuantity(t *testing.T) {
	item, err := domain.NewOrderItem("p1", "item", 2, 5.00)
	require.NoError(t, err)

	require.NoError(t, item.UpdateQuantity(10))
	assert.Equal(t, 10, item.Quantity)

	assert.Error(t, item.UpdateQuantity(0))
	assert.Error(t, item.UpdateQuantity(100))
	assert.Equal(t, 10, item.Quantity, "failed update must not mutate")
}

func TestOrderItem_ApplyDiscount(t *testing.T) {
	t.Run("applies percentage", func(t *testing.T) {
		item, err := domain.NewOrderItem("p1", "item", 1, 10.00)
		require.NoError(t, err)

		require.NoError(t, item.ApplyDiscount(25))
		assert.InDelta(t, 7.50, item.UnitPrice, 1e-9)
	})

	t.Run("never drops below floor", func(t *testing.T) {
		item, err := domain.NewOrderItem("p1", "item", 1, 0.01)
		require.NoError(t, err)

		require.NoError(t, item.ApplyDiscount(50))
		assert.InDelta(t, domain.MinUnitPrice, item.UnitPrice, 1e-9)
	})

	t.Run("out of range rejected without mutation", func(t *testing.T) {
		item, err := domain.NewOrderItem("p1", "item", 1, 10.00)
		require.NoError(t, err)

		assert.Error(t, item.ApplyDiscount(-1))
		assert.Error(t, item.ApplyDiscount(50.1))
		assert.InDelta(t, 10.00, item.UnitPrice, 1e-9)
	})
}

func TestOrderItem_CanApplyDiscount(t *testing.T) {
	item, err := domain.NewOrderItem("p1", "item", 1, 10.00)
	require.NoError(t, err)

	assert.True(t, item.CanApplyDiscount(0))
	assert.True(t, item.CanApplyDiscount(50))
	assert.False(t, item.CanApplyDiscount(-0.1))
	assert.False(t, item.CanApplyDiscount(50.1))

	cheap, err := domain.NewOrderItem("p2", "item", 1, 0.01)
	require.NoError(t, err)
	assert.False(t, cheap.CanApplyDiscount(50), "discount would clamp to the floor")
	assert.InDelta(t, 0.01, cheap.UnitPrice, 1e-9, "pre-flight check must not mutate")
}

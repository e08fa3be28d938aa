// Package ports defines the collaborator interfaces the workflow depends on
// but does not implement. Adapters in internal/infra satisfy them; tests
// substitute doubles freely.
package ports

import (
	"context"

	"github.com/jcmexdev/restaurant-orders/internal/core/domain"
)

// ProductLookup resolves products by id. A missing product is a
// domain.NotFoundError, not a nil result.
type ProductLookup interface {
	FindByID(ctx context.Context, id string) (*domain.Product, error)
}

// CustomerLookup resolves customers by id.
type CustomerLookup interface {
	FindByID(ctx context.Context, id string) (*domain.Customer, error)
}

// ProductStore is the full catalog port used by the product service.
type ProductStore interface {
	ProductLookup
	Save(ctx context.Context, product *domain.Product) error
	FindAvailable(ctx context.Context) ([]*domain.Product, error)
	FindByCategory(ctx context.Context, category string) ([]*domain.Product, error)
}

// CustomerStore is the full customer port used by the customer service.
type CustomerStore interface {
	CustomerLookup
	Save(ctx context.Context, customer *domain.Customer) error
	FindAll(ctx context.Context) ([]*domain.Customer, error)
}

// OrderStore persists orders. Every mutation saved must be visible to reads
// issued later in the same workflow call (read-your-writes).
type OrderStore interface {
	Save(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	FindByCustomerID(ctx context.Context, customerID string) ([]*domain.Order, error)
	FindByStatus(ctx context.Context, status domain.OrderStatus) ([]*domain.Order, error)
	FindAll(ctx context.Context) ([]*domain.Order, error)
}

// InventoryService owns available stock. Reserve must perform its
// check-and-decrement atomically: a prior CheckAvailability answer is a hint,
// never a guarantee, under concurrent reservations for the same product.
type InventoryService interface {
	CheckAvailability(ctx context.Context, productID string, quantity int) (bool, error)

	// Reserve decrements stock for every requested product or for none at
	// all. An insufficient line fails the whole call with a
	// domain.ReservationError.
	Reserve(ctx context.Context, items map[string]int) error

	// Release returns previously reserved quantities to available stock.
	Release(ctx context.Context, items map[string]int) error

	AvailableQuantity(ctx context.Context, productID string) (int, error)

	// UpdateStock applies a signed delta and fails if the result would be
	// negative.
	UpdateStock(ctx context.Context, productID string, delta int) error
}

// PaymentGateway charges, refunds and verifies payments. Calls may be slow;
// the workflow bounds them with a timeout.
type PaymentGateway interface {
	ProcessPayment(ctx context.Context, order *domain.Order, customer *domain.Customer) (domain.PaymentResult, error)
	RefundPayment(ctx context.Context, transactionID string, amount float64) (domain.PaymentResult, error)
	VerifyPayment(ctx context.Context, transactionID string) (bool, error)
}

// NotificationService delivers customer-facing messages. All sends are
// best-effort: a failure is logged and never rolls back the order.
type NotificationService interface {
	SendOrderConfirmation(ctx context.Context, order *domain.Order, customer *domain.Customer) error
	SendStatusUpdate(ctx context.Context, order *domain.Order, customer *domain.Customer) error
	SendDeliveryNotification(ctx context.Context, order *domain.Order, customer *domain.Customer) error
	SendOrderCancelled(ctx context.Context, order *domain.Order, customer *domain.Customer) error
}

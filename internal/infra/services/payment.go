package services

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/jcmexdev/restaurant-orders/internal/core/domain"
)

// DefaultChargeLimit is the amount above which the mock gateway declines.
const DefaultChargeLimit = 500.00

// MockGateway simulates a payment acquirer: charges up to a configurable
// limit succeed, anything above is declined. Refunds always succeed.
type MockGateway struct {
	mu       sync.Mutex
	limit    float64
	payments map[string]float64 // transaction id -> charged amount
}

func NewMockGateway(limit float64) *MockGateway {
	if limit <= 0 {
		limit = DefaultChargeLimit
	}
	return &MockGateway{
		limit:    limit,
		payments: make(map[string]float64),
	}
}

func (g *MockGateway) ProcessPayment(ctx context.Context, order *domain.Order, customer *domain.Customer) (domain.PaymentResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.PaymentResult{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	amount := order.TotalAmount()
	slog.InfoContext(ctx, "processing charge",
		"order_id", order.ID, "customer", customer.Name, "amount", amount)

	if amount > g.limit {
		// Esto dispara la compensación en la saga.
		slog.WarnContext(ctx, "charge declined", "order_id", order.ID, "amount", amount, "limit", g.limit)
		return domain.PaymentResult{
			Success:      false,
			ErrorMessage: "amount exceeds charge limit",
		}, nil
	}

	transactionID := uuid.NewString()
	g.payments[transactionID] = amount
	slog.InfoContext(ctx, "charge successful", "order_id", order.ID, "transaction_id", transactionID)

	return domain.PaymentResult{
		Success:       true,
		TransactionID: transactionID,
	}, nil
}

func (g *MockGateway) RefundPayment(ctx context.Context, transactionID string, amount float64) (domain.PaymentResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.payments[transactionID]; !ok {
		slog.WarnContext(ctx, "no payment found to refund", "transaction_id", transactionID)
	}
	delete(g.payments, transactionID)

	refundID := uuid.NewString()
	slog.InfoContext(ctx, "refund processed",
		"transaction_id", transactionID, "refund_id", refundID, "amount", amount)

	return domain.PaymentResult{
		Success:       true,
		TransactionID: refundID,
	}, nil
}

func (g *MockGateway) VerifyPayment(_ context.Context, transactionID string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.payments[transactionID]
	return ok, nil
}

package services

import (
	"context"
	"log/slog"

	"github.com/jcmexdev/restaurant-orders/internal/core/domain"
)

// LogNotifier stands in for an email/SMS provider and writes every
// notification to the structured log. Sends never fail.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier { return &LogNotifier{} }

func (n *LogNotifier) SendOrderConfirmation(ctx context.Context, order *domain.Order, customer *domain.Customer) error {
	slog.InfoContext(ctx, "notification: order confirmation",
		"order_id", order.ID,
		"email", customer.Email,
		"total", order.TotalAmount(),
		"items", len(order.Items),
	)
	return nil
}

func (n *LogNotifier) SendStatusUpdate(ctx context.Context, order *domain.Order, customer *domain.Customer) error {
	slog.InfoContext(ctx, "notification: status update",
		"order_id", order.ID,
		"phone", customer.Phone,
		"status", order.Status,
	)
	return nil
}

func (n *LogNotifier) SendDeliveryNotification(ctx context.Context, order *domain.Order, customer *domain.Customer) error {
	slog.InfoContext(ctx, "notification: order delivered",
		"order_id", order.ID,
		"email", customer.Email,
		"address", customer.Address,
	)
	return nil
}

func (n *LogNotifier) SendOrderCancelled(ctx context.Context, order *domain.Order, customer *domain.Customer) error {
	slog.InfoContext(ctx, "notification: order cancelled",
		"order_id", order.ID,
		"email", customer.Email,
	)
	return nil
}

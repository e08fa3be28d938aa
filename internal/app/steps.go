package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jcmexdev/restaurant-orders/internal/core/domain"
	"github.com/jcmexdev/restaurant-orders/internal/core/ports"
)

// --- ReserveStockStep ---

// ReserveStockStep issues the single all-or-nothing reservation covering
// every line of the order. Its compensation gives the stock back.
type ReserveStockStep struct {
	inventory ports.InventoryService
	items     map[string]int
}

func NewReserveStockStep(inventory ports.InventoryService, items map[string]int) *ReserveStockStep {
	return &ReserveStockStep{inventory: inventory, items: items}
}

func (s *ReserveStockStep) Name() string { return "Reserve_Stock_Step" }

func (s *ReserveStockStep) Execute(ctx context.Context) error {
	return s.inventory.Reserve(ctx, s.items)
}

func (s *ReserveStockStep) Compensate(ctx context.Context) error {
	return s.inventory.Release(ctx, s.items)
}

// --- PersistOrderStep ---

// PersistOrderStep saves the freshly built PENDING order. There is nothing to
// physically undo: if this step fails the reservation step compensates and
// the order object is simply discarded.
type PersistOrderStep struct {
	orders ports.OrderStore
	order  *domain.Order
}

func NewPersistOrderStep(orders ports.OrderStore, order *domain.Order) *PersistOrderStep {
	return &PersistOrderStep{orders: orders, order: order}
}

func (s *PersistOrderStep) Name() string { return "Persist_Order_Step" }

func (s *PersistOrderStep) Execute(ctx context.Context) error {
	if err := s.orders.Save(ctx, s.order); err != nil {
		return fmt.Errorf("failed to persist order: %w", err)
	}
	return nil
}

func (s *PersistOrderStep) Compensate(ctx context.Context) error { return nil }

// --- ChargePaymentStep ---

// ChargePaymentStep charges the customer through the gateway, bounded by a
// timeout. A decline or a deadline surfaces as a domain.ExternalServiceError.
// Its compensation refunds the charge.
type ChargePaymentStep struct {
	gateway  ports.PaymentGateway
	order    *domain.Order
	customer *domain.Customer
	timeout  time.Duration
	result   domain.PaymentResult
}

func NewChargePaymentStep(gateway ports.PaymentGateway, order *domain.Order, customer *domain.Customer, timeout time.Duration) *ChargePaymentStep {
	return &ChargePaymentStep{gateway: gateway, order: order, customer: customer, timeout: timeout}
}

func (s *ChargePaymentStep) Name() string { return "Charge_Payment_Step" }

func (s *ChargePaymentStep) Execute(ctx context.Context) error {
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.gateway.ProcessPayment(cctx, s.order, s.customer)
	if err != nil {
		return &domain.ExternalServiceError{
			Service: "payment",
			Timeout: errors.Is(err, context.DeadlineExceeded),
			Err:     err,
		}
	}
	if !res.Success {
		return &domain.ExternalServiceError{
			Service: "payment",
			Err:     fmt.Errorf("payment declined for order %s: %s", s.order.ID, res.ErrorMessage),
		}
	}
	s.result = res
	return nil
}

func (s *ChargePaymentStep) Compensate(ctx context.Context) error {
	if s.result.TransactionID == "" {
		return nil
	}
	_, err := s.gateway.RefundPayment(ctx, s.result.TransactionID, s.order.TotalAmount())
	return err
}

// Charged reports whether the charge went through, regardless of what later
// steps did.
func (s *ChargePaymentStep) Charged() bool { return s.result.Success }

// Result returns the gateway result of a successful charge.
func (s *ChargePaymentStep) Result() domain.PaymentResult { return s.result }

// --- ConfirmOrderStep ---

// ConfirmOrderStep moves the order from PENDING to CONFIRMED through the
// state machine and persists it. Last step of the confirmation saga, so its
// compensation is empty; a failed Save rolls the in-memory status back
// itself so the aggregate never drifts from the store.
type ConfirmOrderStep struct {
	orders ports.OrderStore
	order  *domain.Order
}

func NewConfirmOrderStep(orders ports.OrderStore, order *domain.Order) *ConfirmOrderStep {
	return &ConfirmOrderStep{orders: orders, order: order}
}

func (s *ConfirmOrderStep) Name() string { return "Confirm_Order_Step" }

func (s *ConfirmOrderStep) Execute(ctx context.Context) error {
	prev := s.order.Status
	if err := s.order.UpdateStatus(domain.StatusConfirmed); err != nil {
		return err
	}
	if err := s.orders.Save(ctx, s.order); err != nil {
		s.order.Status = prev
		return fmt.Errorf("failed to persist confirmed order: %w", err)
	}
	return nil
}

func (s *ConfirmOrderStep) Compensate(ctx context.Context) error { return nil }

// Package app contains the application services: the order workflow (the
// saga coordinator over the collaborator ports) and the thin product and
// customer use cases feeding the console.
package app

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/jcmexdev/restaurant-orders/internal/core/domain"
	"github.com/jcmexdev/restaurant-orders/internal/core/ports"
	"github.com/jcmexdev/restaurant-orders/internal/pkg/cache"
	"github.com/jcmexdev/restaurant-orders/internal/saga"
	"github.com/jcmexdev/restaurant-orders/internal/saga/sagalog"
)

const (
	defaultPaymentTimeout = 10 * time.Second
	defaultNotifyTimeout  = 3 * time.Second

	// idempotencyTTL bounds how long a create-order idempotency key maps to
	// its order.
	idempotencyTTL = 24 * time.Hour
)

// OrderLine is one requested product/quantity pair.
type OrderLine struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CreateOrderInput carries everything needed to create an order. The
// idempotency key is optional; when set, retrying the same key returns the
// order created by the first attempt instead of reserving stock again.
type CreateOrderInput struct {
	CustomerID     string      `json:"customer_id"`
	Lines          []OrderLine `json:"lines"`
	Notes          string      `json:"notes,omitempty"`
	IdempotencyKey string      `json:"-"`
}

// OrderWorkflow coordinates the order lifecycle across the collaborator
// ports, issuing compensations whenever a later step fails.
type OrderWorkflow struct {
	orders    ports.OrderStore
	products  ports.ProductLookup
	customers ports.CustomerLookup
	inventory ports.InventoryService
	payments  ports.PaymentGateway
	notifier  ports.NotificationService

	sagaLog sagalog.Repository // nil-safe
	cache   cache.Cache        // nil-safe
	tracer  trace.Tracer

	paymentTimeout time.Duration
	notifyTimeout  time.Duration
}

func NewOrderWorkflow(
	orders ports.OrderStore,
	products ports.ProductLookup,
	customers ports.CustomerLookup,
	inventory ports.InventoryService,
	payments ports.PaymentGateway,
	notifier ports.NotificationService,
) *OrderWorkflow {
	return &OrderWorkflow{
		orders:         orders,
		products:       products,
		customers:      customers,
		inventory:      inventory,
		payments:       payments,
		notifier:       notifier,
		tracer:         otel.Tracer("order-workflow"),
		paymentTimeout: defaultPaymentTimeout,
		notifyTimeout:  defaultNotifyTimeout,
	}
}

// WithSagaLog enables persistence of workflow state transitions.
func (w *OrderWorkflow) WithSagaLog(repo sagalog.Repository) *OrderWorkflow {
	w.sagaLog = repo
	return w
}

// WithCache enables idempotent CreateOrder via idempotency keys.
func (w *OrderWorkflow) WithCache(c cache.Cache) *OrderWorkflow {
	w.cache = c
	return w
}

// WithTimeouts overrides the bounds applied to payment and notification
// calls. Zero values keep the current setting.
func (w *OrderWorkflow) WithTimeouts(payment, notify time.Duration) *OrderWorkflow {
	if payment > 0 {
		w.paymentTimeout = payment
	}
	if notify > 0 {
		w.notifyTimeout = notify
	}
	return w
}

// CreateOrder validates the request, reserves stock for every line in one
// all-or-nothing call, and persists a PENDING order with name and price
// snapshotted from the catalog. Any failure after a successful reservation
// releases it before the error propagates.
func (w *OrderWorkflow) CreateOrder(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	ctx, span := w.tracer.Start(ctx, "OrderWorkflow.CreateOrder")
	defer span.End()

	if existing, ok := w.lookupIdempotent(ctx, in.IdempotencyKey); ok {
		return existing, nil
	}

	if _, err := w.customers.FindByID(ctx, in.CustomerID); err != nil {
		return nil, err
	}
	if len(in.Lines) == 0 {
		return nil, &domain.ValidationError{Reason: "order must have at least one item"}
	}

	// Phase one: resolve and validate every line before touching stock, so a
	// bad line N+1 never leaves lines 1..N reserved.
	reservation := make(map[string]int, len(in.Lines))
	catalog := make(map[string]*domain.Product, len(in.Lines))
	for _, line := range in.Lines {
		if line.Quantity <= 0 {
			return nil, domain.Validationf("quantity must be positive for product %s", line.ProductID)
		}
		product, err := w.products.FindByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if !product.Available {
			return nil, &domain.UnavailableError{ProductID: product.ID}
		}
		requested := reservation[product.ID] + line.Quantity
		ok, err := w.inventory.CheckAvailability(ctx, product.ID, requested)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &domain.UnavailableError{ProductID: product.ID, Reason: "insufficient stock"}
		}
		reservation[product.ID] = requested
		catalog[product.ID] = product
	}

	order, err := domain.NewOrder(in.CustomerID, in.Notes)
	if err != nil {
		return nil, err
	}
	for _, line := range in.Lines {
		if err := order.AddItem(catalog[line.ProductID], line.Quantity); err != nil {
			return nil, err
		}
	}

	// Phase two: one reservation covering every line, then persistence. The
	// orchestrator releases the reservation if persistence fails.
	run := saga.NewOrchestrator(order.ID, []saga.Step{
		NewReserveStockStep(w.inventory, reservation),
		NewPersistOrderStep(w.orders, order),
	}, w.sagaLog).WithPayload(marshalPayload(in))

	if err := run.Start(ctx); err != nil {
		return nil, err
	}

	w.recordIdempotent(ctx, in.IdempotencyKey, order.ID)

	slog.InfoContext(ctx, "order created",
		"order_id", order.ID,
		"customer_id", order.CustomerID,
		"total", order.TotalAmount(),
	)
	return order, nil
}

// ConfirmOrder charges payment for a PENDING order. On a declined or timed
// out charge the whole reservation is released and the order stays PENDING,
// so the customer can retry. On success the order moves to CONFIRMED and a
// confirmation is sent.
func (w *OrderWorkflow) ConfirmOrder(ctx context.Context, orderID string) error {
	ctx, span := w.tracer.Start(ctx, "OrderWorkflow.ConfirmOrder")
	defer span.End()

	order, err := w.orders.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Status != domain.StatusPending {
		return &domain.InvalidStateError{Op: "confirm order", Status: order.Status}
	}
	customer, err := w.customers.FindByID(ctx, order.CustomerID)
	if err != nil {
		return err
	}

	charge := NewChargePaymentStep(w.payments, order, customer, w.paymentTimeout)
	run := saga.NewOrchestrator(order.ID, []saga.Step{
		charge,
		NewConfirmOrderStep(w.orders, order),
	}, w.sagaLog)

	if err := run.Start(ctx); err != nil {
		if !charge.Charged() {
			// The charge never went through: give the stock back so the
			// order stays PENDING and re-confirmable.
			w.releaseOrderStock(ctx, order)
		}
		return err
	}

	w.notify(ctx, "order confirmation", func(nctx context.Context) error {
		return w.notifier.SendOrderConfirmation(nctx, order, customer)
	})

	slog.InfoContext(ctx, "order confirmed",
		"order_id", order.ID,
		"transaction_id", charge.Result().TransactionID,
	)
	return nil
}

// UpdateOrderStatus applies a transition from the status graph, persists it
// and sends the matching notifications. Cancelling from PENDING or CONFIRMED
// releases the reservation; orders already PREPARING or READY are assumed to
// have consumed their stock.
func (w *OrderWorkflow) UpdateOrderStatus(ctx context.Context, orderID string, next domain.OrderStatus) error {
	ctx, span := w.tracer.Start(ctx, "OrderWorkflow.UpdateOrderStatus")
	defer span.End()

	order, err := w.orders.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	customer, err := w.customers.FindByID(ctx, order.CustomerID)
	if err != nil {
		return err
	}

	prev := order.Status
	if err := order.UpdateStatus(next); err != nil {
		return err
	}
	if err := w.orders.Save(ctx, order); err != nil {
		order.Status = prev
		return err
	}

	w.notify(ctx, "status update", func(nctx context.Context) error {
		return w.notifier.SendStatusUpdate(nctx, order, customer)
	})

	switch next {
	case domain.StatusDelivered:
		w.notify(ctx, "delivery", func(nctx context.Context) error {
			return w.notifier.SendDeliveryNotification(nctx, order, customer)
		})
	case domain.StatusCancelled:
		w.notify(ctx, "cancellation", func(nctx context.Context) error {
			return w.notifier.SendOrderCancelled(nctx, order, customer)
		})
		if prev == domain.StatusPending || prev == domain.StatusConfirmed {
			w.releaseOrderStock(ctx, order)
		}
	}

	slog.InfoContext(ctx, "order status updated", "order_id", order.ID, "from", prev, "to", next)
	return nil
}

// CancelOrder cancels a PENDING or CONFIRMED order, delegating the
// notification and stock release behavior to UpdateOrderStatus.
func (w *OrderWorkflow) CancelOrder(ctx context.Context, orderID string) error {
	order, err := w.orders.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if !order.CanBeCancelled() {
		return &domain.InvalidStateError{Op: "cancel order", Status: order.Status}
	}
	return w.UpdateOrderStatus(ctx, orderID, domain.StatusCancelled)
}

// AddItemToOrder reserves the incremental quantity before mutating the
// order, and releases it again if the mutation or persistence fails.
func (w *OrderWorkflow) AddItemToOrder(ctx context.Context, orderID, productID string, quantity int) error {
	if quantity <= 0 {
		return domain.Validationf("quantity must be positive for product %s", productID)
	}
	order, err := w.orders.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	product, err := w.products.FindByID(ctx, productID)
	if err != nil {
		return err
	}

	increment := map[string]int{productID: quantity}
	if err := w.inventory.Reserve(ctx, increment); err != nil {
		return err
	}
	if err := order.AddItem(product, quantity); err != nil {
		w.release(ctx, increment)
		return err
	}
	if err := w.orders.Save(ctx, order); err != nil {
		w.release(ctx, increment)
		return err
	}
	return nil
}

// RemoveItemFromOrder drops a line and releases its reserved quantity after
// the order has been persisted without it.
func (w *OrderWorkflow) RemoveItemFromOrder(ctx context.Context, orderID, productID string) error {
	order, err := w.orders.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	item := order.Item(productID)
	if item == nil {
		return &domain.NotFoundError{Kind: "order item", ID: productID}
	}
	removed := item.Quantity

	if err := order.RemoveItem(productID); err != nil {
		return err
	}
	if err := w.orders.Save(ctx, order); err != nil {
		return err
	}

	w.release(ctx, map[string]int{productID: removed})
	return nil
}

// GetOrder loads a single order.
func (w *OrderWorkflow) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	return w.orders.FindByID(ctx, orderID)
}

// OrdersByCustomer lists a customer's orders.
func (w *OrderWorkflow) OrdersByCustomer(ctx context.Context, customerID string) ([]*domain.Order, error) {
	return w.orders.FindByCustomerID(ctx, customerID)
}

// OrdersByStatus lists orders in a given status.
func (w *OrderWorkflow) OrdersByStatus(ctx context.Context, status domain.OrderStatus) ([]*domain.Order, error) {
	return w.orders.FindByStatus(ctx, status)
}

// AllOrders lists every order.
func (w *OrderWorkflow) AllOrders(ctx context.Context) ([]*domain.Order, error) {
	return w.orders.FindAll(ctx)
}

// CustomerOrderCount counts a customer's orders.
func (w *OrderWorkflow) CustomerOrderCount(ctx context.Context, customerID string) (int, error) {
	orders, err := w.orders.FindByCustomerID(ctx, customerID)
	if err != nil {
		return 0, err
	}
	return len(orders), nil
}

// releaseOrderStock compensates the reservation for every line of the order.
func (w *OrderWorkflow) releaseOrderStock(ctx context.Context, order *domain.Order) {
	quantities := make(map[string]int, len(order.Items))
	for _, item := range order.Items {
		quantities[item.ProductID] += item.Quantity
	}
	w.release(ctx, quantities)
}

func (w *OrderWorkflow) release(ctx context.Context, items map[string]int) {
	if err := w.inventory.Release(ctx, items); err != nil {
		slog.ErrorContext(ctx, "CRITICAL: failed to release reserved stock", "error", err)
	}
}

// notify runs a best-effort notification bounded by the notify timeout and
// detached from the caller's cancellation, logging failures instead of
// surfacing them.
func (w *OrderWorkflow) notify(ctx context.Context, kind string, send func(context.Context) error) {
	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), w.notifyTimeout)
	defer cancel()
	if err := send(nctx); err != nil {
		slog.WarnContext(ctx, "notification failed", "kind", kind, "error", err)
	}
}

func (w *OrderWorkflow) lookupIdempotent(ctx context.Context, key string) (*domain.Order, bool) {
	if key == "" || w.cache == nil {
		return nil, false
	}
	id, err := w.cache.Get(ctx, w.cache.GenerateKey("create_order", key))
	if err != nil {
		slog.WarnContext(ctx, "idempotency cache lookup failed", "error", err)
		return nil, false
	}
	if id == "" {
		return nil, false
	}
	order, err := w.orders.FindByID(ctx, id)
	if err != nil {
		return nil, false
	}
	slog.InfoContext(ctx, "idempotent create-order replay", "order_id", id)
	return order, true
}

func (w *OrderWorkflow) recordIdempotent(ctx context.Context, key, orderID string) {
	if key == "" || w.cache == nil {
		return
	}
	if err := w.cache.Set(ctx, w.cache.GenerateKey("create_order", key), orderID, idempotencyTTL); err != nil {
		slog.WarnContext(ctx, "idempotency cache store failed", "error", err)
	}
}

func marshalPayload(in CreateOrderInput) string {
	b, err := json.Marshal(in)
	if err != nil {
		return ""
	}
	return string(b)
}

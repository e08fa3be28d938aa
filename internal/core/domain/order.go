package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxItemsPerOrder caps the number of distinct lines in a single order.
const MaxItemsPerOrder = 50

// Order is the aggregate root: all mutation of its items goes through it, and
// it enforces the status transition graph.
type Order struct {
	ID         string
	CustomerID string
	Items      []*OrderItem
	Status     OrderStatus
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewOrder creates a PENDING order with a fresh id and timestamps.
func NewOrder(customerID, notes string) (*Order, error) {
	if customerID == "" {
		return nil, &ValidationError{Reason: "order must have a customer ID"}
	}
	now := time.Now().UTC()
	return &Order{
		ID:         uuid.NewString(),
		CustomerID: customerID,
		Status:     StatusPending,
		Notes:      notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// TotalAmount is the sum of the line totals, rounded to cents.
func (o *Order) TotalAmount() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.TotalPrice()
	}
	return round2(total)
}

// TotalItems is the summed quantity across all lines.
func (o *Order) TotalItems() int {
	var n int
	for _, item := range o.Items {
		n += item.Quantity
	}
	return n
}

// UpdateStatus applies a transition from the status graph and bumps
// UpdatedAt. An illegal transition returns a TransitionError and leaves the
// order untouched.
func (o *Order) UpdateStatus(next OrderStatus) error {
	if !o.Status.CanTransitionTo(next) {
		return &TransitionError{From: o.Status, To: next}
	}
	o.Status = next
	o.touch()
	return nil
}

// AddItem adds a line for the product. If the product is already in the
// order, quantities are merged through the item's own quantity rule instead
// of creating a duplicate line.
func (o *Order) AddItem(product *Product, quantity int) error {
	if o.Status != StatusPending {
		return &InvalidStateError{Op: "add item", Status: o.Status}
	}
	if !product.Available {
		return &UnavailableError{ProductID: product.ID}
	}

	if existing := o.Item(product.ID); existing != nil {
		if err := existing.UpdateQuantity(existing.Quantity + quantity); err != nil {
			return err
		}
		o.touch()
		return nil
	}

	if len(o.Items) >= MaxItemsPerOrder {
		return Validationf("order cannot have more than %d items", MaxItemsPerOrder)
	}

	item, err := NewOrderItem(product.ID, product.Name, quantity, product.Price)
	if err != nil {
		return err
	}
	o.Items = append(o.Items, item)
	o.touch()
	return nil
}

// RemoveItem drops the line for productID, if present.
func (o *Order) RemoveItem(productID string) error {
	if o.Status != StatusPending {
		return &InvalidStateError{Op: "remove item", Status: o.Status}
	}
	kept := make([]*OrderItem, 0, len(o.Items))
	for _, item := range o.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	o.Items = kept
	o.touch()
	return nil
}

// UpdateItemQuantity changes the quantity of an existing line. A quantity of
// zero or less removes the line.
func (o *Order) UpdateItemQuantity(productID string, quantity int) error {
	if o.Status != StatusPending {
		return &InvalidStateError{Op: "update item quantity", Status: o.Status}
	}
	item := o.Item(productID)
	if item == nil {
		return &NotFoundError{Kind: "order item", ID: productID}
	}
	if quantity <= 0 {
		return o.RemoveItem(productID)
	}
	if err := item.UpdateQuantity(quantity); err != nil {
		return err
	}
	o.touch()
	return nil
}

// Item returns the line for productID, or nil.
func (o *Order) Item(productID string) *OrderItem {
	for _, item := range o.Items {
		if item.ProductID == productID {
			return item
		}
	}
	return nil
}

// AddNotes sets or replaces the free-text notes.
func (o *Order) AddNotes(notes string) {
	o.Notes = notes
	o.touch()
}

// CanBeCancelled is true only while the order is PENDING or CONFIRMED.
func (o *Order) CanBeCancelled() bool {
	return o.Status == StatusPending || o.Status == StatusConfirmed
}

// Cancel moves the order to CANCELLED if the current status allows it.
func (o *Order) Cancel() error {
	if !o.CanBeCancelled() {
		return &InvalidStateError{Op: "cancel", Status: o.Status}
	}
	return o.UpdateStatus(StatusCancelled)
}

// touch bumps UpdatedAt, keeping it monotonically non-decreasing.
func (o *Order) touch() {
	now := time.Now().UTC()
	if now.After(o.UpdatedAt) {
		o.UpdatedAt = now
	}
}

// Package domain holds the order aggregate, its value objects and the typed
// failure taxonomy. Callers use errors.As to tell retryable failures
// (ExternalServiceError) apart from terminal ones (ValidationError,
// TransitionError).
package domain

import "fmt"

// ValidationError reports malformed input. It is always returned before any
// side effect has taken place.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return "validation: " + e.Reason }

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a missing customer, product, order or order item.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("%s %s not found", e.Kind, e.ID) }

// UnavailableError reports a product that cannot be ordered, either because it
// is disabled in the catalog or because stock does not cover the request.
type UnavailableError struct {
	ProductID string
	Reason    string
}

func (e *UnavailableError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("product %s is not available", e.ProductID)
	}
	return fmt.Sprintf("product %s is not available: %s", e.ProductID, e.Reason)
}

// ReservationError reports a failed all-or-nothing stock reservation,
// typically after losing a race with a concurrent reservation.
type ReservationError struct {
	ProductID string
	Requested int
	Available int
}

func (e *ReservationError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

// TransitionError reports an illegal order status change. The order is left
// unchanged.
type TransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}

// InvalidStateError reports an operation attempted in a status that does not
// permit it, e.g. mutating the items of a CONFIRMED order.
type InvalidStateError struct {
	Op     string
	Status OrderStatus
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s while order is %s", e.Op, e.Status)
}

// ExternalServiceError reports a failure in a collaborator outside the core
// (payment gateway, notification provider). Timeout distinguishes a deadline
// hit from a business decline so callers can decide whether to retry.
type ExternalServiceError struct {
	Service string
	Timeout bool
	Err     error
}

func (e *ExternalServiceError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("%s service timed out: %v", e.Service, e.Err)
	}
	return fmt.Sprintf("%s service failed: %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

// Package services provides the external-service adapters: stock, payment
// and notifications.
package services

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jcmexdev/restaurant-orders/internal/core/domain"
)

// StockService tracks available stock in memory. A single mutex covers every
// operation, so the check-and-decrement inside Reserve is atomic: concurrent
// reservations for the same product serialize here and cannot oversell.
// Products the service has never been told about start at the domain's
// default inventory level.
type StockService struct {
	mu    sync.Mutex
	stock map[string]int
}

func NewStockService() *StockService {
	return &StockService{stock: make(map[string]int)}
}

// SetStock fixes the tracked quantity for a product. Used by seeding and
// tests.
func (s *StockService) SetStock(productID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stock[productID] = quantity
}

func (s *StockService) CheckAvailability(_ context.Context, productID string, quantity int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level(productID) >= quantity, nil
}

// Reserve decrements stock for every requested product or for none at all.
func (s *StockService) Reserve(ctx context.Context, items map[string]int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for productID, quantity := range items {
		if available := s.level(productID); available < quantity {
			slog.WarnContext(ctx, "reservation rejected",
				"product_id", productID, "requested", quantity, "available", available)
			return &domain.ReservationError{
				ProductID: productID,
				Requested: quantity,
				Available: available,
			}
		}
	}

	for productID, quantity := range items {
		s.stock[productID] = s.level(productID) - quantity
		slog.DebugContext(ctx, "stock reserved",
			"product_id", productID, "quantity", quantity, "remaining", s.stock[productID])
	}
	return nil
}

func (s *StockService) Release(ctx context.Context, items map[string]int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for productID, quantity := range items {
		s.stock[productID] = s.level(productID) + quantity
		slog.DebugContext(ctx, "stock released",
			"product_id", productID, "quantity", quantity, "available", s.stock[productID])
	}
	return nil
}

func (s *StockService) AvailableQuantity(_ context.Context, productID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level(productID), nil
}

func (s *StockService) UpdateStock(_ context.Context, productID string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.level(productID) + delta
	if next < 0 {
		return domain.Validationf("stock for product %s cannot go negative", productID)
	}
	s.stock[productID] = next
	return nil
}

// level must be called with the mutex held.
func (s *StockService) level(productID string) int {
	if quantity, ok := s.stock[productID]; ok {
		return quantity
	}
	return domain.DefaultInventoryLevel
}

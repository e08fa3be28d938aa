// Package persistence provides in-memory implementations of the store ports.
// Each store guards its map with a RWMutex and trades in copies, so stored
// state only ever changes through Save. Read-your-writes holds trivially:
// Save publishes under the same lock later reads take.
package persistence

import (
	"context"
	"sort"
	"sync"

	"github.com/jcmexdev/restaurant-orders/internal/core/domain"
)

// OrderStore is an in-memory ports.OrderStore.
type OrderStore struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
}

func NewOrderStore() *OrderStore {
	return &OrderStore{orders: make(map[string]*domain.Order)}
}

func (s *OrderStore) Save(_ context.Context, order *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[order.ID] = cloneOrder(order)
	return nil
}

func (s *OrderStore) FindByID(_ context.Context, id string) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	order, ok := s.orders[id]
	if !ok {
		return nil, &domain.NotFoundError{Kind: "order", ID: id}
	}
	return cloneOrder(order), nil
}

func (s *OrderStore) FindByCustomerID(_ context.Context, customerID string) ([]*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(o *domain.Order) bool { return o.CustomerID == customerID }), nil
}

func (s *OrderStore) FindByStatus(_ context.Context, status domain.OrderStatus) ([]*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(o *domain.Order) bool { return o.Status == status }), nil
}

func (s *OrderStore) FindAll(_ context.Context) ([]*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(*domain.Order) bool { return true }), nil
}

// collect returns matching orders sorted by creation time for stable
// listings. Callers must hold at least the read lock.
func (s *OrderStore) collect(match func(*domain.Order) bool) []*domain.Order {
	out := make([]*domain.Order, 0, len(s.orders))
	for _, order := range s.orders {
		if match(order) {
			out = append(out, cloneOrder(order))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func cloneOrder(o *domain.Order) *domain.Order {
	c := *o
	c.Items = make([]*domain.OrderItem, len(o.Items))
	for i, item := range o.Items {
		it := *item
		c.Items[i] = &it
	}
	return &c
}

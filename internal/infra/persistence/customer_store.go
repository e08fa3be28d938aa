package persistence

import (
	"context"
	"sort"
	"sync"

	"github.com/jcmexdev/restaurant-orders/internal/core/domain"
)

// CustomerStore is an in-memory ports.CustomerStore.
type CustomerStore struct {
	mu        sync.RWMutex
	customers map[string]*domain.Customer
}

func NewCustomerStore() *CustomerStore {
	return &CustomerStore{customers: make(map[string]*domain.Customer)}
}

func (s *CustomerStore) Save(_ context.Context, customer *domain.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *customer
	s.customers[customer.ID] = &c
	return nil
}

func (s *CustomerStore) FindByID(_ context.Context, id string) (*domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	customer, ok := s.customers[id]
	if !ok {
		return nil, &domain.NotFoundError{Kind: "customer", ID: id}
	}
	c := *customer
	return &c, nil
}

func (s *CustomerStore) FindAll(_ context.Context) ([]*domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Customer, 0, len(s.customers))
	for _, customer := range s.customers {
		c := *customer
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

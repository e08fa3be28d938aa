package persistence

import (
	"context"
	"sort"
	"sync"

	"github.com/jcmexdev/restaurant-orders/internal/core/domain"
)

// ProductStore is an in-memory ports.ProductStore.
type ProductStore struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
}

func NewProductStore() *ProductStore {
	return &ProductStore{products: make(map[string]*domain.Product)}
}

func (s *ProductStore) Save(_ context.Context, product *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := *product
	s.products[product.ID] = &p
	return nil
}

func (s *ProductStore) FindByID(_ context.Context, id string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	product, ok := s.products[id]
	if !ok {
		return nil, &domain.NotFoundError{Kind: "product", ID: id}
	}
	p := *product
	return &p, nil
}

func (s *ProductStore) FindAvailable(_ context.Context) ([]*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(p *domain.Product) bool { return p.Available }), nil
}

func (s *ProductStore) FindByCategory(_ context.Context, category string) ([]*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(p *domain.Product) bool { return p.Category == category }), nil
}

func (s *ProductStore) collect(match func(*domain.Product) bool) []*domain.Product {
	out := make([]*domain.Product, 0, len(s.products))
	for _, product := range s.products {
		if match(product) {
			p := *product
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

package app

import (
	"context"

	"github.com/jcmexdev/restaurant-orders/internal/core/domain"
	"github.com/jcmexdev/restaurant-orders/internal/core/ports"
)

// ProductService manages the catalog. Plain CRUD; the workflow only ever
// reads products through the lookup port.
type ProductService struct {
	products ports.ProductStore
}

func NewProductService(products ports.ProductStore) *ProductService {
	return &ProductService{products: products}
}

func (s *ProductService) AddProduct(ctx context.Context, name, description string, price float64, category string) (*domain.Product, error) {
	product, err := domain.NewProduct(name, description, price, category)
	if err != nil {
		return nil, err
	}
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) ProductByID(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.FindByID(ctx, id)
}

func (s *ProductService) AvailableProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.products.FindAvailable(ctx)
}

// ProductsByCategory lists available products in a category.
func (s *ProductService) ProductsByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	products, err := s.products.FindByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	available := make([]*domain.Product, 0, len(products))
	for _, p := range products {
		if p.Available {
			available = append(available, p)
		}
	}
	return available, nil
}

func (s *ProductService) UpdateProductPrice(ctx context.Context, id string, price float64) error {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := product.UpdatePrice(price); err != nil {
		return err
	}
	return s.products.Save(ctx, product)
}

// SetProductAvailability toggles whether a product can be ordered.
func (s *ProductService) SetProductAvailability(ctx context.Context, id string, available bool) error {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if available {
		product.MakeAvailable()
	} else {
		product.MakeUnavailable()
	}
	return s.products.Save(ctx, product)
}

package app

import (
	"context"

	"github.com/jcmexdev/restaurant-orders/internal/core/domain"
	"github.com/jcmexdev/restaurant-orders/internal/core/ports"
)

// CustomerService manages customers.
type CustomerService struct {
	customers ports.CustomerStore
}

func NewCustomerService(customers ports.CustomerStore) *CustomerService {
	return &CustomerService{customers: customers}
}

func (s *CustomerService) RegisterCustomer(ctx context.Context, name, email, phone, address string) (*domain.Customer, error) {
	customer, err := domain.NewCustomer(name, email, phone, address)
	if err != nil {
		return nil, err
	}
	if err := s.customers.Save(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) CustomerByID(ctx context.Context, id string) (*domain.Customer, error) {
	return s.customers.FindByID(ctx, id)
}

func (s *CustomerService) AllCustomers(ctx context.Context) ([]*domain.Customer, error) {
	return s.customers.FindAll(ctx)
}

func (s *CustomerService) UpdateCustomerContact(ctx context.Context, id, phone, address string) error {
	customer, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return err
	}
	customer.UpdateContactInfo(phone, address)
	return s.customers.Save(ctx, customer)
}

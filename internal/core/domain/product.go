package domain

import (
	"strings"

	"github.com/google/uuid"
)

// DefaultInventoryLevel is the stock assumed for a product the inventory
// service has never been told about.
const DefaultInventoryLevel = 100

// Product is a menu item. The workflow treats it as a read-only lookup; its
// CRUD lifecycle lives in the product service.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       float64
	Category    string
	Available   bool
}

// NewProduct validates and builds a product with a fresh id, available by
// default.
func NewProduct(name, description string, price float64, category string) (*Product, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	category = strings.TrimSpace(category)

	if name == "" {
		return nil, &ValidationError{Reason: "product name cannot be empty"}
	}
	if category == "" {
		return nil, &ValidationError{Reason: "product category cannot be empty"}
	}
	if price < MinUnitPrice {
		return nil, Validationf("price must be at least $%.2f", MinUnitPrice)
	}

	return &Product{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Price:       price,
		Category:    category,
		Available:   true,
	}, nil
}

func (p *Product) MakeAvailable()   { p.Available = true }
func (p *Product) MakeUnavailable() { p.Available = false }

// UpdatePrice changes the catalog price. Orders already created keep their
// snapshotted price.
func (p *Product) UpdatePrice(price float64) error {
	if price < MinUnitPrice {
		return Validationf("price must be at least $%.2f", MinUnitPrice)
	}
	p.Price = price
	return nil
}

package domain

import (
	"math"
	"strings"
)

const (
	MinQuantity        = 1
	MaxQuantity        = 99
	MinUnitPrice       = 0.01
	MaxDiscountPercent = 50.0
)

// OrderItem is a single line within an Order. Name and price are snapshotted
// from the product when the line is created, so later catalog changes do not
// retroactively affect existing orders.
type OrderItem struct {
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   float64
}

// NewOrderItem validates and builds an order line.
func NewOrderItem(productID, productName string, quantity int, unitPrice float64) (*OrderItem, error) {
	productName = strings.TrimSpace(productName)

	switch {
	case productID == "":
		return nil, &ValidationError{Reason: "product ID cannot be empty"}
	case productName == "":
		return nil, &ValidationError{Reason: "product name cannot be empty"}
	case quantity < MinQuantity:
		return nil, Validationf("quantity must be at least %d", MinQuantity)
	case quantity > MaxQuantity:
		return nil, Validationf("quantity cannot exceed %d", MaxQuantity)
	case unitPrice < MinUnitPrice:
		return nil, Validationf("unit price must be at least $%.2f", MinUnitPrice)
	}

	return &OrderItem{
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
	}, nil
}

// TotalPrice is quantity times unit price, rounded to cents.
func (i *OrderItem) TotalPrice() float64 {
	return round2(float64(i.Quantity) * i.UnitPrice)
}

// UpdateQuantity re-applies the construction bounds before mutating.
func (i *OrderItem) UpdateQuantity(quantity int) error {
	if quantity < MinQuantity {
		return Validationf("quantity must be at least %d", MinQuantity)
	}
	if quantity > MaxQuantity {
		return Validationf("quantity cannot exceed %d", MaxQuantity)
	}
	i.Quantity = quantity
	return nil
}

// ApplyDiscount lowers the unit price by pct percent, never below the minimum
// unit price. An out-of-range pct is rejected without mutating the item.
func (i *OrderItem) ApplyDiscount(pct float64) error {
	price, err := i.discountedPrice(pct)
	if err != nil {
		return err
	}
	i.UnitPrice = price
	return nil
}

// CanApplyDiscount reports whether pct could be applied without clamping the
// price to the floor. It never mutates the item.
func (i *OrderItem) CanApplyDiscount(pct float64) bool {
	if pct < 0 || pct > MaxDiscountPercent {
		return false
	}
	return i.UnitPrice*(1-pct/100) >= MinUnitPrice
}

func (i *OrderItem) discountedPrice(pct float64) (float64, error) {
	if pct < 0 {
		return 0, &ValidationError{Reason: "discount percentage cannot be negative"}
	}
	if pct > MaxDiscountPercent {
		return 0, Validationf("discount percentage cannot exceed %.0f%%", MaxDiscountPercent)
	}
	price := i.UnitPrice * (1 - pct/100)
	if price < MinUnitPrice {
		price = MinUnitPrice
	}
	return round2(price), nil
}

// round2 rounds to two decimal places. Money stays float64 across the repo,
// always rounded at the boundaries where totals are produced.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

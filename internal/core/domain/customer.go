package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Customer is the buyer behind an order. The workflow only ever reads it.
type Customer struct {
	ID      string
	Name    string
	Email   string
	Phone   string
	Address string
}

// NewCustomer validates and builds a customer with a fresh id.
func NewCustomer(name, email, phone, address string) (*Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Reason: "customer name cannot be empty"}
	}
	if !validEmail(email) {
		return nil, &ValidationError{Reason: "invalid email address"}
	}
	return &Customer{
		ID:      uuid.NewString(),
		Name:    name,
		Email:   email,
		Phone:   phone,
		Address: address,
	}, nil
}

// UpdateEmail replaces the email after validation.
func (c *Customer) UpdateEmail(email string) error {
	if !validEmail(email) {
		return &ValidationError{Reason: "invalid email address"}
	}
	c.Email = email
	return nil
}

// UpdateContactInfo replaces phone and address; empty arguments leave the
// current value in place.
func (c *Customer) UpdateContactInfo(phone, address string) {
	if phone != "" {
		c.Phone = phone
	}
	if address != "" {
		c.Address = address
	}
}

func validEmail(email string) bool {
	return email != "" && strings.Contains(email, "@")
}

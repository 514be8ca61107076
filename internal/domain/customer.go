package domain

import (
	"errors"
	"time"
)

const (
	// MinCustomerAge is the youngest generated customer age (inclusive)
	MinCustomerAge = 18
	// MaxCustomerAge is the oldest generated customer age (inclusive)
	MaxCustomerAge = 80
)

// Address is a postal address. It is generated alongside a customer but not persisted.
type Address struct {
	Street     string
	City       string
	State      string
	PostalCode string
	Country    string
}

// Customer represents a synthetic bank customer.
// It is the root of the generation graph: accounts reference it, never the other way round.
type Customer struct {
	ID          int64 // Assigned by the store on insert
	FirstName   string
	MiddleName  string // Optional, not persisted
	LastName    string
	Email       string // Unique within one process lifetime
	Phone       string // Not persisted
	Address     Address
	Age         int
	DateOfBirth time.Time // Derived from Age, not persisted
	CreatedAt   time.Time
}

// FullName returns the customer's name including the middle name when present
func (c *Customer) FullName() string {
	if c.MiddleName == "" {
		return c.FirstName + " " + c.LastName
	}
	return c.FirstName + " " + c.MiddleName + " " + c.LastName
}

// Validate ensures the customer adheres to domain rules
// Returns an error if validation fails
func (c *Customer) Validate() error {
	if c.FirstName == "" || c.LastName == "" {
		return errors.New("customer first and last name cannot be empty")
	}

	if c.Email == "" {
		return errors.New("customer email cannot be empty")
	}

	if c.Age < MinCustomerAge || c.Age > MaxCustomerAge {
		return errors.New("customer age must be between 18 and 80")
	}

	if c.CreatedAt.IsZero() {
		return errors.New("customer creation timestamp must be set")
	}

	return nil
}

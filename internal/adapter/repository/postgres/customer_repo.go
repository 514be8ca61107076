package postgres

import (
	"context"
	"fmt"

	"github.com/simaogato/wealthflow-datagen/internal/domain"
)

// customerRepository implements domain.CustomerRepository
type customerRepository struct {
	db *DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *DB) domain.CustomerRepository {
	return &customerRepository{db: db}
}

// Create inserts a customer and stores the generated ID on it.
// Middle name, phone, address and date of birth are not part of the table.
func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	query := `
		INSERT INTO customers (first_name, last_name, email, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		customer.FirstName,
		customer.LastName,
		customer.Email,
		customer.CreatedAt,
	).Scan(&customer.ID)
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}

	return nil
}

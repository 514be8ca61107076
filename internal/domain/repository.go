package domain

import (
	"context"
)

// CustomerRepository defines the interface for customer persistence operations
type CustomerRepository interface {
	// Create inserts a customer and sets its generated ID
	Create(ctx context.Context, customer *Customer) error
}

// AccountRepository defines the interface for account persistence operations
type AccountRepository interface {
	// Create inserts an account and sets its generated ID
	Create(ctx context.Context, account *Account) error
}

// TransactionRepository defines the interface for transaction persistence operations
type TransactionRepository interface {
	// Create inserts a transaction
	// Nothing downstream needs the generated ID, so implementations may leave it unset
	Create(ctx context.Context, tx *Transaction) error
}

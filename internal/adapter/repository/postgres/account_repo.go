package postgres

import (
	"context"
	"fmt"

	"github.com/simaogato/wealthflow-datagen/internal/domain"
)

// accountRepository implements domain.AccountRepository
type accountRepository struct {
	db *DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *DB) domain.AccountRepository {
	return &accountRepository{db: db}
}

// Create inserts an account and stores the generated ID on it
func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (customer_id, account_type, balance, currency, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		account.CustomerID,
		string(account.Type),
		account.Balance.StringFixed(domain.MoneyScale),
		string(account.Currency),
		account.CreatedAt,
	).Scan(&account.ID)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

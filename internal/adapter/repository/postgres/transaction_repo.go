package postgres

import (
	"context"
	"fmt"

	"github.com/simaogato/wealthflow-datagen/internal/domain"
)

// transactionRepository implements domain.TransactionRepository
type transactionRepository struct {
	db *DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *DB) domain.TransactionRepository {
	return &transactionRepository{db: db}
}

// Create inserts a single transaction row.
// The statement autocommits: there is no surrounding database transaction.
func (r *transactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	query := `
		INSERT INTO transactions (account_id, txn_type, amount, related_account_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	var relatedID interface{}
	if tx.RelatedAccountID != nil {
		relatedID = *tx.RelatedAccountID
	}

	_, err := r.db.ExecContext(ctx, query,
		tx.AccountID,
		string(tx.Type),
		tx.Amount.StringFixed(domain.MoneyScale),
		relatedID,
		string(tx.Status),
		tx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	return nil
}

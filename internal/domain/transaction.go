package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrEmptyAccountPool is returned when transactions are requested but no accounts exist
var ErrEmptyAccountPool = errors.New("no accounts available for transactions")

// TransactionType represents the kind of money movement
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal TransactionType = "WITHDRAWAL"
	TransactionTypeTransfer   TransactionType = "TRANSFER"
	TransactionTypePayment    TransactionType = "PAYMENT"
	TransactionTypeRefund     TransactionType = "REFUND"
	TransactionTypeFee        TransactionType = "FEE"
	TransactionTypeInterest   TransactionType = "INTEREST"
)

// IsValid reports whether t is a known transaction type
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeDeposit, TransactionTypeWithdrawal, TransactionTypeTransfer,
		TransactionTypePayment, TransactionTypeRefund, TransactionTypeFee, TransactionTypeInterest:
		return true
	}
	return false
}

// TransactionStatus represents the processing state of a transaction
type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusFailed    TransactionStatus = "FAILED"
	TransactionStatusCancelled TransactionStatus = "CANCELLED"
)

// IsValid reports whether s is a known transaction status
func (s TransactionStatus) IsValid() bool {
	switch s {
	case TransactionStatusCompleted, TransactionStatusPending, TransactionStatusFailed, TransactionStatusCancelled:
		return true
	}
	return false
}

// MinTransactionAmount is the floor applied to every generated amount
var MinTransactionAmount = decimal.NewFromInt(1)

// Transaction represents a single movement on an account
type Transaction struct {
	ID               int64
	AccountID        int64
	Type             TransactionType
	Amount           decimal.Decimal // ABSOLUTE VALUE (Always Positive)
	Status           TransactionStatus
	RelatedAccountID *int64    // Counterparty, only set for TRANSFER
	CreatedAt        time.Time // Never before the account's CreatedAt
}

// Validate ensures the transaction adheres to domain rules
// Returns an error if validation fails
func (t *Transaction) Validate() error {
	if t.AccountID == 0 {
		return errors.New("transaction must reference an account")
	}

	if !t.Type.IsValid() {
		return errors.New("transaction type is not supported")
	}

	if !t.Status.IsValid() {
		return errors.New("transaction status must be COMPLETED, PENDING, FAILED, or CANCELLED")
	}

	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return errors.New("transaction amount must be positive")
	}

	if !IsQuantized(t.Amount) {
		return errors.New("transaction amount must have at most 2 decimal places")
	}

	if t.RelatedAccountID != nil {
		if t.Type != TransactionTypeTransfer {
			return errors.New("only TRANSFER transactions may reference a related account")
		}
		if *t.RelatedAccountID == t.AccountID {
			return errors.New("related account cannot be the source account")
		}
	}

	if t.CreatedAt.IsZero() {
		return errors.New("transaction creation timestamp must be set")
	}

	return nil
}

package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func TestTransaction_Validate(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		tx      Transaction
		wantErr bool
		errMsg  string
	}{
		{
			name: "Deposit with positive amount should pass",
			tx: Transaction{
				AccountID: 1,
				Type:      TransactionTypeDeposit,
				Amount:    decimal.RequireFromString("120.50"),
				Status:    TransactionStatusCompleted,
				CreatedAt: now,
			},
			wantErr: false,
		},
		{
			name: "Transfer to another account should pass",
			tx: Transaction{
				AccountID:        1,
				Type:             TransactionTypeTransfer,
				Amount:           decimal.NewFromInt(500),
				Status:           TransactionStatusPending,
				RelatedAccountID: int64Ptr(2),
				CreatedAt:        now,
			},
			wantErr: false,
		},
		{
			name: "Transfer to itself should fail",
			tx: Transaction{
				AccountID:        7,
				Type:             TransactionTypeTransfer,
				Amount:           decimal.NewFromInt(500),
				Status:           TransactionStatusCompleted,
				RelatedAccountID: int64Ptr(7),
				CreatedAt:        now,
			},
			wantErr: true,
			errMsg:  "related account cannot be the source account",
		},
		{
			name: "Related account on a non-transfer should fail",
			tx: Transaction{
				AccountID:        1,
				Type:             TransactionTypeFee,
				Amount:           decimal.NewFromInt(5),
				Status:           TransactionStatusCompleted,
				RelatedAccountID: int64Ptr(2),
				CreatedAt:        now,
			},
			wantErr: true,
			errMsg:  "only TRANSFER transactions may reference a related account",
		},
		{
			name: "Zero amount should fail",
			tx: Transaction{
				AccountID: 1,
				Type:      TransactionTypePayment,
				Amount:    decimal.Zero,
				Status:    TransactionStatusCompleted,
				CreatedAt: now,
			},
			wantErr: true,
			errMsg:  "transaction amount must be positive",
		},
		{
			name: "Amount with three decimals should fail",
			tx: Transaction{
				AccountID: 1,
				Type:      TransactionTypeInterest,
				Amount:    decimal.RequireFromString("0.505"),
				Status:    TransactionStatusCompleted,
				CreatedAt: now,
			},
			wantErr: true,
			errMsg:  "at most 2 decimal places",
		},
		{
			name: "Unknown status should fail",
			tx: Transaction{
				AccountID: 1,
				Type:      TransactionTypeDeposit,
				Amount:    decimal.NewFromInt(10),
				Status:    TransactionStatus("REVERSED"),
				CreatedAt: now,
			},
			wantErr: true,
			errMsg:  "transaction status must be",
		},
		{
			name: "Missing account should fail",
			tx: Transaction{
				Type:      TransactionTypeDeposit,
				Amount:    decimal.NewFromInt(10),
				Status:    TransactionStatusCompleted,
				CreatedAt: now,
			},
			wantErr: true,
			errMsg:  "transaction must reference an account",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tx.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

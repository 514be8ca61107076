package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// AccountType represents the kind of bank account
type AccountType string

const (
	AccountTypeSavings    AccountType = "SAVINGS"
	AccountTypeChecking   AccountType = "CHECKING"
	AccountTypeBusiness   AccountType = "BUSINESS"
	AccountTypeInvestment AccountType = "INVESTMENT"
)

// AccountTypes lists every account type in a stable order
var AccountTypes = []AccountType{
	AccountTypeSavings,
	AccountTypeChecking,
	AccountTypeBusiness,
	AccountTypeInvestment,
}

// IsValid reports whether t is a known account type
func (t AccountType) IsValid() bool {
	switch t {
	case AccountTypeSavings, AccountTypeChecking, AccountTypeBusiness, AccountTypeInvestment:
		return true
	}
	return false
}

// Currency is an ISO 4217 currency code
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyINR Currency = "INR"
	CurrencyCAD Currency = "CAD"
	CurrencyAUD Currency = "AUD"
)

// IsValid reports whether c is a supported currency
func (c Currency) IsValid() bool {
	switch c {
	case CurrencyUSD, CurrencyEUR, CurrencyGBP, CurrencyINR, CurrencyCAD, CurrencyAUD:
		return true
	}
	return false
}

// MoneyScale is the number of decimal places kept for balances and amounts
const MoneyScale int32 = 2

// Account represents a bank account owned by exactly one customer
type Account struct {
	ID         int64
	CustomerID int64
	Type       AccountType
	Currency   Currency
	Balance    decimal.Decimal // Initial balance, quantized to MoneyScale
	CreatedAt  time.Time       // Never before the owning customer's CreatedAt
}

// Validate ensures the account adheres to domain rules
// Returns an error if validation fails
func (a *Account) Validate() error {
	if a.CustomerID == 0 {
		return errors.New("account must reference a customer")
	}

	if !a.Type.IsValid() {
		return errors.New("account type must be SAVINGS, CHECKING, BUSINESS, or INVESTMENT")
	}

	if !a.Currency.IsValid() {
		return errors.New("account currency is not supported")
	}

	if a.Balance.IsNegative() {
		return errors.New("account balance cannot be negative")
	}

	if !IsQuantized(a.Balance) {
		return errors.New("account balance must have at most 2 decimal places")
	}

	if a.CreatedAt.IsZero() {
		return errors.New("account creation timestamp must be set")
	}

	return nil
}

// IsQuantized reports whether d carries no precision beyond MoneyScale
func IsQuantized(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(MoneyScale))
}

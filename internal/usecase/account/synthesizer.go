package account

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/shopspring/decimal"

	"github.com/simaogato/wealthflow-datagen/internal/domain"
	"github.com/simaogato/wealthflow-datagen/internal/usecase/sampler"
	"github.com/simaogato/wealthflow-datagen/internal/usecase/timestamp"
)

const (
	// GuaranteedCheckingProbability is the chance a customer's first account is forced to CHECKING
	GuaranteedCheckingProbability = 0.9

	// SeniorAge is the age above which balances get the wealth multiplier
	SeniorAge = 50
)

// SeniorBalanceMultiplier scales balances of customers older than SeniorAge.
// The result is not clamped back into the type's range.
var SeniorBalanceMultiplier = decimal.RequireFromString("1.5")

// BalanceRange is the inclusive initial balance range for an account type
type BalanceRange struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

// BalanceRanges maps every account type to its initial balance range
var BalanceRanges = map[domain.AccountType]BalanceRange{
	domain.AccountTypeSavings:    {Min: decimal.RequireFromString("500.00"), Max: decimal.RequireFromString("50000.00")},
	domain.AccountTypeChecking:   {Min: decimal.RequireFromString("100.00"), Max: decimal.RequireFromString("15000.00")},
	domain.AccountTypeBusiness:   {Min: decimal.RequireFromString("5000.00"), Max: decimal.RequireFromString("500000.00")},
	domain.AccountTypeInvestment: {Min: decimal.RequireFromString("10000.00"), Max: decimal.RequireFromString("1000000.00")},
}

// TypeSampler picks the type of every account slot not pre-assigned to CHECKING
var TypeSampler = sampler.MustNew([]sampler.Weighted[domain.AccountType]{
	{Value: domain.AccountTypeSavings, Weight: 0.35},
	{Value: domain.AccountTypeChecking, Weight: 0.35},
	{Value: domain.AccountTypeBusiness, Weight: 0.15},
	{Value: domain.AccountTypeInvestment, Weight: 0.15},
})

// CurrencySampler picks the currency of every account
var CurrencySampler = sampler.MustNew([]sampler.Weighted[domain.Currency]{
	{Value: domain.CurrencyUSD, Weight: 0.60},
	{Value: domain.CurrencyEUR, Weight: 0.15},
	{Value: domain.CurrencyGBP, Weight: 0.10},
	{Value: domain.CurrencyINR, Weight: 0.08},
	{Value: domain.CurrencyCAD, Weight: 0.04},
	{Value: domain.CurrencyAUD, Weight: 0.03},
})

// Config bounds how many accounts each customer gets
type Config struct {
	MinPerCustomer int
	MaxPerCustomer int
}

// Synthesizer generates and stores accounts for existing customers
type Synthesizer struct {
	repo       domain.AccountRepository
	cfg        Config
	timestamps timestamp.Policy
	rng        *rand.Rand
}

// NewSynthesizer creates a new account Synthesizer
func NewSynthesizer(repo domain.AccountRepository, cfg Config, timestamps timestamp.Policy, rng *rand.Rand) *Synthesizer {
	return &Synthesizer{
		repo:       repo,
		cfg:        cfg,
		timestamps: timestamps,
		rng:        rng,
	}
}

// Generate creates between MinPerCustomer and MaxPerCustomer accounts for every customer
// and inserts each one. The returned slice is the account pool for transaction generation.
//
// Logic:
//   - With 90% probability the first slot is CHECKING
//   - Remaining slots are filled from TypeSampler
//   - Balance is uniform in the type's range, truncated to cents, then x1.5 for customers over 50
//   - Creation time falls between the customer's creation time and the end of the window
func (s *Synthesizer) Generate(ctx context.Context, customers []*domain.Customer) ([]*domain.Account, error) {
	if s.cfg.MinPerCustomer < 0 || s.cfg.MaxPerCustomer < s.cfg.MinPerCustomer {
		return nil, fmt.Errorf("invalid accounts per customer range [%d, %d]", s.cfg.MinPerCustomer, s.cfg.MaxPerCustomer)
	}

	accounts := make([]*domain.Account, 0, len(customers)*(s.cfg.MinPerCustomer+s.cfg.MaxPerCustomer)/2)

	for _, c := range customers {
		for _, accountType := range s.accountTypes() {
			a := &domain.Account{
				CustomerID: c.ID,
				Type:       accountType,
				Currency:   CurrencySampler.Sample(s.rng),
				Balance:    s.balance(accountType, c.Age),
				CreatedAt:  s.timestamps.After(s.rng, c.CreatedAt),
			}

			if err := a.Validate(); err != nil {
				return accounts, err
			}

			if err := s.repo.Create(ctx, a); err != nil {
				return accounts, fmt.Errorf("failed to insert account for customer %d: %w", c.ID, err)
			}

			accounts = append(accounts, a)
		}
	}

	return accounts, nil
}

// accountTypes decides the types of one customer's accounts
func (s *Synthesizer) accountTypes() []domain.AccountType {
	n := s.cfg.MinPerCustomer + s.rng.IntN(s.cfg.MaxPerCustomer-s.cfg.MinPerCustomer+1)

	types := make([]domain.AccountType, 0, n)
	if n > 0 && s.rng.Float64() < GuaranteedCheckingProbability {
		types = append(types, domain.AccountTypeChecking)
	}
	for len(types) < n {
		types = append(types, TypeSampler.Sample(s.rng))
	}

	return types
}

// balance draws an initial balance for the given type and owner age
func (s *Synthesizer) balance(accountType domain.AccountType, age int) decimal.Decimal {
	r := BalanceRanges[accountType]
	balance := RandomMoney(s.rng, r.Min, r.Max)

	if age > SeniorAge {
		balance = balance.Mul(SeniorBalanceMultiplier).Truncate(domain.MoneyScale)
	}

	return balance
}

// RandomMoney returns a uniform amount in [lo, hi] truncated (not rounded) to cents
func RandomMoney(rng *rand.Rand, lo, hi decimal.Decimal) decimal.Decimal {
	v := lo.Add(hi.Sub(lo).Mul(decimal.NewFromFloat(rng.Float64())))
	return v.Truncate(domain.MoneyScale)
}

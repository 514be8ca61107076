package transaction

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
	// RoundToTenProbability is the chance an amount is rounded to the nearest 10
	RoundToTenProbability = 0.3
	// RoundToHundredProbability is the independent chance an amount is rounded to the nearest 100
	RoundToHundredProbability = 0.1
	// SameCustomerTransferProbability is the chance a transfer stays within the owner's accounts, when possible
	SameCustomerTransferProbability = 0.4
)

var (
	ten     = decimal.NewFromInt(10)
	hundred = decimal.NewFromInt(100)
)

// AmountRange is the inclusive amount range of a transaction type
type AmountRange struct {
	Min float64
	Max float64
}

// AmountRanges maps every transaction type to its amount range
var AmountRanges = map[domain.TransactionType]AmountRange{
	domain.TransactionTypeDeposit:    {Min: 50.00, Max: 5000.00},
	domain.TransactionTypeWithdrawal: {Min: 20.00, Max: 2000.00},
	domain.TransactionTypeTransfer:   {Min: 100.00, Max: 10000.00},
	domain.TransactionTypePayment:    {Min: 10.00, Max: 500.00},
	domain.TransactionTypeRefund:     {Min: 5.00, Max: 200.00},
	domain.TransactionTypeFee:        {Min: 1.00, Max: 50.00},
	domain.TransactionTypeInterest:   {Min: 0.50, Max: 500.00},
}

// TypeSampler picks the type of every transaction
var TypeSampler = sampler.MustNew([]sampler.Weighted[domain.TransactionType]{
	{Value: domain.TransactionTypeDeposit, Weight: 0.25},
	{Value: domain.TransactionTypeWithdrawal, Weight: 0.20},
	{Value: domain.TransactionTypeTransfer, Weight: 0.25},
	{Value: domain.TransactionTypePayment, Weight: 0.15},
	{Value: domain.TransactionTypeRefund, Weight: 0.05},
	{Value: domain.TransactionTypeFee, Weight: 0.05},
	{Value: domain.TransactionTypeInterest, Weight: 0.05},
})

// StatusSampler picks the status of every transaction. Weights are relative.
var StatusSampler = sampler.MustNew([]sampler.Weighted[domain.TransactionStatus]{
	{Value: domain.TransactionStatusCompleted, Weight: 85},
	{Value: domain.TransactionStatusPending, Weight: 8},
	{Value: domain.TransactionStatusFailed, Weight: 4},
	{Value: domain.TransactionStatusCancelled, Weight: 3},
})

// Synthesizer generates and stores transactions against an account pool
type Synthesizer struct {
	repo       domain.TransactionRepository
	timestamps timestamp.Policy
	rng        *rand.Rand
}

// NewSynthesizer creates a new transaction Synthesizer
func NewSynthesizer(repo domain.TransactionRepository, timestamps timestamp.Policy, rng *rand.Rand) *Synthesizer {
	return &Synthesizer{
		repo:       repo,
		timestamps: timestamps,
		rng:        rng,
	}
}

// Generate creates exactly n transactions on accounts drawn uniformly from the pool
// and inserts each one. Returns domain.ErrEmptyAccountPool if n > 0 and the pool is empty.
func (s *Synthesizer) Generate(ctx context.Context, accounts []*domain.Account, n int) ([]*domain.Transaction, error) {
	if n <= 0 {
		return []*domain.Transaction{}, nil
	}
	if len(accounts) == 0 {
		return nil, domain.ErrEmptyAccountPool
	}

	pool := newAccountPool(accounts)
	txs := make([]*domain.Transaction, 0, n)

	for i := 0; i < n; i++ {
		src := s.rng.IntN(len(accounts))
		account := accounts[src]
		txType := TypeSampler.Sample(s.rng)

		tx := &domain.Transaction{
			AccountID: account.ID,
			Type:      txType,
			Amount:    s.amount(txType),
		}

		if txType == domain.TransactionTypeTransfer {
			tx.RelatedAccountID = s.relatedAccount(pool, src)
		}

		tx.Status = StatusSampler.Sample(s.rng)
		tx.CreatedAt = s.timestamps.After(s.rng, account.CreatedAt)

		if err := tx.Validate(); err != nil {
			return txs, err
		}

		if err := s.repo.Create(ctx, tx); err != nil {
			return txs, fmt.Errorf("failed to insert transaction %d of %d: %w", i+1, n, err)
		}

		txs = append(txs, tx)
	}

	return txs, nil
}

// amount draws an amount for the given type.
//
// Logic:
//   - Uniform in the type's range, rounded to cents
//   - 30% chance: round to the nearest 10
//   - independently, 10% chance: round to the nearest 100 (both may apply)
//   - Never below 1.00
func (s *Synthesizer) amount(txType domain.TransactionType) decimal.Decimal {
	r := AmountRanges[txType]
	raw := r.Min + s.rng.Float64()*(r.Max-r.Min)
	amount := decimal.NewFromFloat(raw).RoundBank(domain.MoneyScale)

	if s.rng.Float64() < RoundToTenProbability {
		amount = roundTo(amount, ten)
	}
	if s.rng.Float64() < RoundToHundredProbability {
		amount = roundTo(amount, hundred)
	}

	if amount.LessThan(domain.MinTransactionAmount) {
		amount = domain.MinTransactionAmount
	}

	return amount
}

// roundTo rounds d to the nearest multiple of unit, ties to even
func roundTo(d, unit decimal.Decimal) decimal.Decimal {
	return d.Div(unit).RoundBank(0).Mul(unit)
}

// relatedAccount picks the counterparty of a transfer from account index src.
// Returns nil when the pool has a single account.
func (s *Synthesizer) relatedAccount(pool *accountPool, src int) *int64 {
	if len(pool.accounts) < 2 {
		return nil
	}

	siblings := pool.siblings(src)
	if len(siblings) > 0 && s.rng.Float64() < SameCustomerTransferProbability {
		id := pool.accounts[siblings[s.rng.IntN(len(siblings))]].ID
		return &id
	}

	// Uniform over every index except src
	other := s.rng.IntN(len(pool.accounts) - 1)
	if other >= src {
		other++
	}
	id := pool.accounts[other].ID
	return &id
}

// accountPool indexes accounts by owning customer
type accountPool struct {
	accounts   []*domain.Account
	byCustomer map[int64][]int
}

func newAccountPool(accounts []*domain.Account) *accountPool {
	p := &accountPool{
		accounts:   accounts,
		byCustomer: make(map[int64][]int),
	}
	for i, a := range accounts {
		p.byCustomer[a.CustomerID] = append(p.byCustomer[a.CustomerID], i)
	}
	return p
}

// siblings returns the indexes of the other accounts owned by the same customer as accounts[i]
func (p *accountPool) siblings(i int) []int {
	owned := p.byCustomer[p.accounts[i].CustomerID]
	out := make([]int, 0, len(owned)-1)
	for _, j := range owned {
		if j != i {
			out = append(out, j)
		}
	}
	return out
}

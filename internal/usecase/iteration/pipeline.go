package iteration

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/simaogato/wealthflow-datagen/internal/domain"
	"github.com/simaogato/wealthflow-datagen/internal/metrics"
)

// CustomerGenerator is the first stage of an iteration
type CustomerGenerator interface {
	Generate(ctx context.Context, n int) ([]*domain.Customer, error)
}

// AccountGenerator opens accounts for freshly inserted customers
type AccountGenerator interface {
	Generate(ctx context.Context, customers []*domain.Customer) ([]*domain.Account, error)
}

// TransactionGenerator books transactions against freshly inserted accounts
type TransactionGenerator interface {
	Generate(ctx context.Context, accounts []*domain.Account, n int) ([]*domain.Transaction, error)
}

// FallbackCounter reports how many emails needed the hash suffix fallback so far
type FallbackCounter interface {
	Fallbacks() int
}

// Config holds the per-iteration volumes
type Config struct {
	Customers    int
	Transactions int
}

// Summary describes what one iteration inserted.
// On failure it describes the rows persisted before the failing insert.
type Summary struct {
	RunID          uuid.UUID
	Customers      int
	Accounts       int
	Transactions   int
	AccountsByType map[domain.AccountType]int
	EmailFallbacks int
	Duration       time.Duration
}

// Pipeline runs customers, then accounts, then transactions
type Pipeline struct {
	cfg          Config
	customers    CustomerGenerator
	accounts     AccountGenerator
	transactions TransactionGenerator
	emails       FallbackCounter
	metrics      metrics.Collector
	now          func() time.Time
}

// NewPipeline creates a new Pipeline. A nil collector disables metrics.
func NewPipeline(
	cfg Config,
	customers CustomerGenerator,
	accounts AccountGenerator,
	transactions TransactionGenerator,
	emails FallbackCounter,
	collector metrics.Collector,
) *Pipeline {
	if collector == nil {
		collector = metrics.NoOpCollector{}
	}
	return &Pipeline{
		cfg:          cfg,
		customers:    customers,
		accounts:     accounts,
		transactions: transactions,
		emails:       emails,
		metrics:      collector,
		now:          time.Now,
	}
}

// Run executes one full iteration.
// Each insert autocommits, so rows written before an error are not rolled back.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	start := p.now()
	fallbacksBefore := p.emails.Fallbacks()

	summary := &Summary{
		RunID:          uuid.New(),
		AccountsByType: make(map[domain.AccountType]int),
	}

	err := p.run(ctx, summary)

	summary.EmailFallbacks = p.emails.Fallbacks() - fallbacksBefore
	summary.Duration = p.now().Sub(start)

	p.metrics.RecordRows(metrics.EntityCustomer, summary.Customers)
	p.metrics.RecordRows(metrics.EntityAccount, summary.Accounts)
	p.metrics.RecordRows(metrics.EntityTransaction, summary.Transactions)
	p.metrics.RecordEmailFallbacks(summary.EmailFallbacks)
	p.metrics.RecordIteration(err == nil, summary.Duration)

	return summary, err
}

func (p *Pipeline) run(ctx context.Context, summary *Summary) error {
	customers, err := p.customers.Generate(ctx, p.cfg.Customers)
	summary.Customers = len(customers)
	if err != nil {
		return fmt.Errorf("failed to generate customers: %w", err)
	}

	accounts, err := p.accounts.Generate(ctx, customers)
	summary.Accounts = len(accounts)
	for _, a := range accounts {
		summary.AccountsByType[a.Type]++
	}
	if err != nil {
		return fmt.Errorf("failed to generate accounts: %w", err)
	}

	transactions, err := p.transactions.Generate(ctx, accounts, p.cfg.Transactions)
	summary.Transactions = len(transactions)
	if err != nil {
		return fmt.Errorf("failed to generate transactions: %w", err)
	}

	return nil
}

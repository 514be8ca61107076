package transaction

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/wealthflow-datagen/internal/domain"
	"github.com/simaogato/wealthflow-datagen/internal/usecase/timestamp"
)

// MockTransactionRepository is a mock implementation of TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// testAccounts builds n accounts spread over customers, perCustomer accounts each
func testAccounts(n, perCustomer int) []*domain.Account {
	accounts := make([]*domain.Account, n)
	for i := range accounts {
		accounts[i] = &domain.Account{
			ID:         int64(1000 + i),
			CustomerID: int64(1 + i/perCustomer),
			Type:       domain.AccountTypeChecking,
			Currency:   domain.CurrencyUSD,
			Balance:    decimal.NewFromInt(1000),
			CreatedAt:  time.Date(2021, time.January, 1, 12, 0, 0, 0, time.UTC).AddDate(0, 0, i),
		}
	}
	return accounts
}

func newTestSynthesizer(repo domain.TransactionRepository, seed uint64) *Synthesizer {
	return NewSynthesizer(repo, timestamp.DefaultPolicy(), rand.New(rand.NewPCG(seed, seed^0xbeef)))
}

func TestSynthesizer_Generate_ExactCountAndReferences(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTransactionRepository)
	repo.On("Create", ctx, mock.AnythingOfType("*domain.Transaction")).Return(nil)

	accounts := testAccounts(60, 3)
	byID := make(map[int64]*domain.Account)
	for _, a := range accounts {
		byID[a.ID] = a
	}

	s := newTestSynthesizer(repo, 1)
	txs, err := s.Generate(ctx, accounts, 5000)
	require.NoError(t, err)
	require.Len(t, txs, 5000)
	repo.AssertNumberOfCalls(t, "Create", 5000)

	for _, tx := range txs {
		account, ok := byID[tx.AccountID]
		require.True(t, ok, "transaction references unknown account %d", tx.AccountID)

		assert.True(t, tx.Amount.GreaterThanOrEqual(decimal.NewFromInt(1)), "amount %s below 1.00", tx.Amount)
		assert.True(t, domain.IsQuantized(tx.Amount), "amount %s not quantized", tx.Amount)
		assert.False(t, tx.CreatedAt.Before(account.CreatedAt), "transaction before its account")
		assert.False(t, tx.CreatedAt.After(timestamp.DefaultEnd))

		if tx.Type == domain.TransactionTypeTransfer {
			require.NotNil(t, tx.RelatedAccountID)
			assert.NotEqual(t, tx.AccountID, *tx.RelatedAccountID)
			_, ok := byID[*tx.RelatedAccountID]
			assert.True(t, ok, "related account must exist")
		} else {
			assert.Nil(t, tx.RelatedAccountID)
		}
	}
}

func TestSynthesizer_Generate_StatusDistribution(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTransactionRepository)
	repo.On("Create", ctx, mock.Anything).Return(nil)

	s := newTestSynthesizer(repo, 2)
	txs, err := s.Generate(ctx, testAccounts(10, 2), 10000)
	require.NoError(t, err)

	counts := make(map[domain.TransactionStatus]int)
	for _, tx := range txs {
		counts[tx.Status]++
	}

	const n = 10000.0
	assert.InDelta(t, 0.85, float64(counts[domain.TransactionStatusCompleted])/n, 0.015)
	assert.InDelta(t, 0.08, float64(counts[domain.TransactionStatusPending])/n, 0.01)
	assert.InDelta(t, 0.04, float64(counts[domain.TransactionStatusFailed])/n, 0.008)
	assert.InDelta(t, 0.03, float64(counts[domain.TransactionStatusCancelled])/n, 0.008)
}

func TestSynthesizer_Generate_SameCustomerTransferPreference(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTransactionRepository)
	repo.On("Create", ctx, mock.Anything).Return(nil)

	// 100 customers with 2 accounts each: a uniform pick would hit the sibling 1/199 of the time
	accounts := testAccounts(200, 2)
	owner := make(map[int64]int64)
	for _, a := range accounts {
		owner[a.ID] = a.CustomerID
	}

	s := newTestSynthesizer(repo, 3)
	txs, err := s.Generate(ctx, accounts, 8000)
	require.NoError(t, err)

	transfers, sameCustomer := 0, 0
	for _, tx := range txs {
		if tx.Type != domain.TransactionTypeTransfer {
			continue
		}
		transfers++
		if owner[tx.AccountID] == owner[*tx.RelatedAccountID] {
			sameCustomer++
		}
	}

	require.Greater(t, transfers, 1000)
	assert.InDelta(t, SameCustomerTransferProbability, float64(sameCustomer)/float64(transfers), 0.05)
}

func TestSynthesizer_Generate_SingleAccountTransferHasNoCounterparty(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTransactionRepository)
	repo.On("Create", ctx, mock.Anything).Return(nil)

	s := newTestSynthesizer(repo, 4)
	txs, err := s.Generate(ctx, testAccounts(1, 1), 500)
	require.NoError(t, err)

	sawTransfer := false
	for _, tx := range txs {
		if tx.Type == domain.TransactionTypeTransfer {
			sawTransfer = true
		}
		assert.Nil(t, tx.RelatedAccountID)
	}
	assert.True(t, sawTransfer)
}

func TestSynthesizer_Generate_EmptyPool(t *testing.T) {
	repo := new(MockTransactionRepository)
	s := newTestSynthesizer(repo, 5)

	_, err := s.Generate(context.Background(), nil, 10)
	assert.ErrorIs(t, err, domain.ErrEmptyAccountPool)

	txs, err := s.Generate(context.Background(), nil, 0)
	assert.NoError(t, err)
	assert.Empty(t, txs)
	repo.AssertNotCalled(t, "Create")
}

func TestSynthesizer_Generate_RepositoryError(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTransactionRepository)
	insertErr := errors.New("disk full")
	repo.On("Create", ctx, mock.Anything).Return(nil).Once()
	repo.On("Create", ctx, mock.Anything).Return(insertErr)

	s := newTestSynthesizer(repo, 6)
	txs, err := s.Generate(ctx, testAccounts(4, 2), 20)

	assert.ErrorIs(t, err, insertErr)
	assert.Contains(t, err.Error(), "failed to insert transaction 2 of 20")
	assert.Len(t, txs, 1)
}

func TestSynthesizer_AmountRounding(t *testing.T) {
	s := newTestSynthesizer(new(MockTransactionRepository), 7)

	multiplesOfTen := 0
	const n = 20000
	for i := 0; i < n; i++ {
		txType := TypeSampler.Sample(s.rng)
		amount := s.amount(txType)
		require.True(t, amount.GreaterThanOrEqual(domain.MinTransactionAmount))
		require.True(t, domain.IsQuantized(amount))
		if amount.Mod(ten).IsZero() {
			multiplesOfTen++
		}
	}

	// At least the 30% explicitly rounded, plus the 10% rounded to hundreds, minus overlap
	share := float64(multiplesOfTen) / n
	assert.Greater(t, share, 0.33)
	assert.Less(t, share, 0.45)
}

func TestSynthesizer_AmountRoundingStepsAreIndependent(t *testing.T) {
	const seed = 11
	s := newTestSynthesizer(new(MockTransactionRepository), seed)
	replay := rand.New(rand.NewPCG(seed, seed^0xbeef))

	r := AmountRanges[domain.TransactionTypeDeposit]
	both := 0
	for i := 0; i < 5000; i++ {
		got := s.amount(domain.TransactionTypeDeposit)

		want := decimal.NewFromFloat(r.Min + replay.Float64()*(r.Max-r.Min)).RoundBank(domain.MoneyScale)
		toTen := replay.Float64() < RoundToTenProbability
		toHundred := replay.Float64() < RoundToHundredProbability
		if toTen {
			want = roundTo(want, ten)
		}
		if toHundred {
			want = roundTo(want, hundred)
		}
		if want.LessThan(domain.MinTransactionAmount) {
			want = domain.MinTransactionAmount
		}
		if toTen && toHundred {
			both++
		}

		require.True(t, got.Equal(want), "draw %d: got %s want %s", i, got, want)
	}

	// Roughly 3% of draws take both rounding steps
	assert.Greater(t, both, 50)
}

func TestSynthesizer_AmountHundredsShare(t *testing.T) {
	s := newTestSynthesizer(new(MockTransactionRepository), 12)

	multiplesOfHundred := 0
	const n = 40000
	for i := 0; i < n; i++ {
		if s.amount(domain.TransactionTypeDeposit).Mod(hundred).IsZero() {
			multiplesOfHundred++
		}
	}

	// 10% rounded to hundreds, plus a tenth of the remaining 27% rounded to tens only.
	// Mutually exclusive steps would give 10%.
	share := float64(multiplesOfHundred) / n
	assert.InDelta(t, 0.127, share, 0.01)
}

func TestRoundTo_Compounded(t *testing.T) {
	amount := decimal.RequireFromString("1251.00")

	assert.True(t, roundTo(roundTo(amount, ten), hundred).Equal(decimal.NewFromInt(1200)))
	assert.True(t, roundTo(amount, hundred).Equal(decimal.NewFromInt(1300)))
}

func TestRoundTo(t *testing.T) {
	tests := []struct {
		in   string
		unit decimal.Decimal
		want string
	}{
		{"1234.56", ten, "1230"},
		{"1235.00", ten, "1240"},
		{"1225.00", ten, "1220"},
		{"4.99", ten, "0"},
		{"150.00", hundred, "200"},
		{"250.00", hundred, "200"},
		{"1251.00", hundred, "1300"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := roundTo(decimal.RequireFromString(tt.in), tt.unit)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

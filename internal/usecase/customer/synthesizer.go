package customer

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/simaogato/wealthflow-datagen/internal/domain"
	"github.com/simaogato/wealthflow-datagen/internal/usecase/timestamp"
)

// MiddleNameProbability is the chance a customer gets a middle name
const MiddleNameProbability = 0.3

// EmailIssuer hands out addresses that were never issued before
type EmailIssuer interface {
	Issue(firstName, lastName string) string
}

// Synthesizer generates and stores customers
type Synthesizer struct {
	repo       domain.CustomerRepository
	names      domain.NameProvider
	addresses  domain.AddressProvider
	emails     EmailIssuer
	timestamps timestamp.Policy
	rng        *rand.Rand
	now        func() time.Time
}

// NewSynthesizer creates a new customer Synthesizer
func NewSynthesizer(
	repo domain.CustomerRepository,
	names domain.NameProvider,
	addresses domain.AddressProvider,
	emails EmailIssuer,
	timestamps timestamp.Policy,
	rng *rand.Rand,
) *Synthesizer {
	return &Synthesizer{
		repo:       repo,
		names:      names,
		addresses:  addresses,
		emails:     emails,
		timestamps: timestamps,
		rng:        rng,
		now:        time.Now,
	}
}

// Generate creates exactly n customers and inserts each one.
// The returned customers carry the IDs assigned by the repository.
// On failure the customers inserted so far stay persisted.
func (s *Synthesizer) Generate(ctx context.Context, n int) ([]*domain.Customer, error) {
	customers := make([]*domain.Customer, 0, n)

	for i := 0; i < n; i++ {
		c := s.build()

		if err := c.Validate(); err != nil {
			return customers, fmt.Errorf("invalid customer %q: %w", c.FullName(), err)
		}

		if err := s.repo.Create(ctx, c); err != nil {
			return customers, fmt.Errorf("failed to insert customer %d of %d: %w", i+1, n, err)
		}

		customers = append(customers, c)
	}

	return customers, nil
}

func (s *Synthesizer) build() *domain.Customer {
	first := s.names.FirstName()
	last := s.names.LastName()

	var middle string
	if s.rng.Float64() < MiddleNameProbability {
		middle = s.names.FirstName()
	}

	address := s.addresses.Address()
	if address.State == "" {
		address.State = address.City
	}

	age := domain.MinCustomerAge + s.rng.IntN(domain.MaxCustomerAge-domain.MinCustomerAge+1)
	daysOld := age*365 + s.rng.IntN(366)

	return &domain.Customer{
		FirstName:   first,
		MiddleName:  middle,
		LastName:    last,
		Email:       s.emails.Issue(first, last),
		Phone:       Phone(s.rng),
		Address:     address,
		Age:         age,
		DateOfBirth: s.now().AddDate(0, 0, -daysOld),
		CreatedAt:   s.timestamps.Random(s.rng),
	}
}

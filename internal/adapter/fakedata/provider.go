package fakedata

import (
	"github.com/brianvoe/gofakeit/v7"

	"github.com/simaogato/wealthflow-datagen/internal/domain"
)

// Provider implements domain.NameProvider and domain.AddressProvider on top of gofakeit.
// Every call picks one of the US, UK, India, Canada and Australia locales
// uniformly; an address always carries the country of the locale it was drawn from.
type Provider struct {
	faker *gofakeit.Faker
}

// NewProvider creates a provider. A zero seed draws a random one.
func NewProvider(seed uint64) *Provider {
	return &Provider{faker: gofakeit.New(seed)}
}

func (p *Provider) locale() locale {
	return locales[p.faker.IntN(len(locales))]
}

// FirstName returns a random given name
func (p *Provider) FirstName() string {
	return p.locale().firstName(p.faker)
}

// LastName returns a random family name
func (p *Provider) LastName() string {
	return p.locale().lastName(p.faker)
}

// Address returns a random postal address. State is empty for the UK.
func (p *Provider) Address() domain.Address {
	l := p.locale()
	return domain.Address{
		Street:     p.faker.Street(),
		City:       l.city(p.faker),
		State:      l.state(p.faker),
		PostalCode: l.postalCode(p.faker),
		Country:    l.country,
	}
}

var (
	_ domain.NameProvider    = (*Provider)(nil)
	_ domain.AddressProvider = (*Provider)(nil)
)

package fakedata

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/wealthflow-datagen/internal/domain"
)

func TestProvider_Names(t *testing.T) {
	p := NewProvider(11)

	for i := 0; i < 20; i++ {
		assert.NotEmpty(t, p.FirstName())
		assert.NotEmpty(t, p.LastName())
	}
}

func TestProvider_Address(t *testing.T) {
	p := NewProvider(12)
	addr := p.Address()

	assert.NotEmpty(t, addr.Street)
	assert.NotEmpty(t, addr.City)
	assert.NotEmpty(t, addr.PostalCode)
	assert.NotEmpty(t, addr.Country)
}

func TestProvider_SeededIsDeterministic(t *testing.T) {
	a := NewProvider(99)
	b := NewProvider(99)

	for i := 0; i < 10; i++ {
		assert.Equal(t, a.FirstName(), b.FirstName())
		assert.Equal(t, a.LastName(), b.LastName())
	}
}

func TestProvider_AddressCoversEveryLocale(t *testing.T) {
	p := NewProvider(13)

	byCountry := make(map[string][]domain.Address)
	for i := 0; i < 1000; i++ {
		addr := p.Address()
		byCountry[addr.Country] = append(byCountry[addr.Country], addr)
	}

	require.Len(t, byCountry, len(locales))
	for _, l := range locales {
		assert.InDelta(t, 200, len(byCountry[l.country]), 60, "%s share", l.code)
	}
}

func TestProvider_AddressMatchesLocale(t *testing.T) {
	p := NewProvider(14)
	pin := regexp.MustCompile(`^\d{6}$`)
	canadian := regexp.MustCompile(`^[A-Z]\d[A-Z] \d[A-Z]\d$`)

	for i := 0; i < 500; i++ {
		addr := p.Address()
		switch addr.Country {
		case "United Kingdom":
			// No states in the UK; callers fall back to the city
			assert.Empty(t, addr.State)
		case "India":
			assert.Contains(t, locales[2].states, addr.State)
			assert.Regexp(t, pin, addr.PostalCode)
		case "Canada":
			assert.Contains(t, locales[3].cities, addr.City)
			assert.Regexp(t, canadian, addr.PostalCode)
		case "Australia":
			assert.Len(t, addr.PostalCode, 4)
		case "United States":
			assert.NotEmpty(t, addr.State)
		default:
			t.Fatalf("unexpected country %q", addr.Country)
		}
	}
}

func TestProvider_NamesMixLocales(t *testing.T) {
	p := NewProvider(15)
	indian := make(map[string]bool)
	for _, n := range locales[2].lastNames {
		indian[n] = true
	}

	hits := 0
	const n = 2000
	for i := 0; i < n; i++ {
		if indian[p.LastName()] {
			hits++
		}
	}

	// One locale in five draws from the Indian corpus
	assert.InDelta(t, 0.2, float64(hits)/n, 0.04)
}

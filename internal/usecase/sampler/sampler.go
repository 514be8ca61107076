package sampler

import (
	"errors"
	"math"
	"math/rand/v2"
	"sort"
)

var (
	// ErrNoCategories is returned when a sampler is built without categories
	ErrNoCategories = errors.New("sampler: no categories")

	// ErrInvalidWeight is returned for negative, NaN or infinite weights
	ErrInvalidWeight = errors.New("sampler: weight must be a finite non-negative number")

	// ErrZeroTotalWeight is returned when every weight is zero
	ErrZeroTotalWeight = errors.New("sampler: total weight must be positive")
)

// Weighted pairs a category with its relative weight.
// Weights need not sum to 1: {0.6, 0.4} and {60, 40} describe the same distribution.
type Weighted[T comparable] struct {
	Value  T
	Weight float64
}

// Sampler draws categories with probability proportional to their weight
type Sampler[T comparable] struct {
	values       []T
	cumulative   []float64 // Normalized running totals
	weights      map[T]float64
	lastPositive int
}

// New builds a sampler from an ordered list of weighted categories.
// The order only matters for reproducibility with a seeded source.
func New[T comparable](items []Weighted[T]) (*Sampler[T], error) {
	if len(items) == 0 {
		return nil, ErrNoCategories
	}

	total := 0.0
	for _, item := range items {
		if item.Weight < 0 || math.IsNaN(item.Weight) || math.IsInf(item.Weight, 0) {
			return nil, ErrInvalidWeight
		}
		total += item.Weight
	}
	if total <= 0 {
		return nil, ErrZeroTotalWeight
	}

	s := &Sampler[T]{
		values:     make([]T, len(items)),
		cumulative: make([]float64, len(items)),
		weights:    make(map[T]float64, len(items)),
	}

	running := 0.0
	for i, item := range items {
		running += item.Weight
		s.values[i] = item.Value
		s.cumulative[i] = running / total
		s.weights[item.Value] += item.Weight / total
		if item.Weight > 0 {
			s.lastPositive = i
		}
	}

	return s, nil
}

// MustNew is like New but panics on error. Intended for package-level tables.
func MustNew[T comparable](items []Weighted[T]) *Sampler[T] {
	s, err := New(items)
	if err != nil {
		panic(err)
	}
	return s
}

// Sample draws one category
func (s *Sampler[T]) Sample(rng *rand.Rand) T {
	u := rng.Float64()
	// First index whose cumulative weight exceeds u; zero-weight categories are never chosen
	i := sort.Search(len(s.cumulative), func(i int) bool {
		return s.cumulative[i] > u
	})
	if i == len(s.values) {
		// Float rounding can leave the final total just under 1
		i = s.lastPositive
	}
	return s.values[i]
}

// Probability returns the normalized probability of v, 0 for unknown categories
func (s *Sampler[T]) Probability(v T) float64 {
	return s.weights[v]
}

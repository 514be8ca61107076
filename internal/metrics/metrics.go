package metrics

import (
	"time"
)

// Entity labels used with RecordRows
const (
	EntityCustomer    = "customer"
	EntityAccount     = "account"
	EntityTransaction = "transaction"
)

// Collector defines the interface for collecting generator metrics.
// Implementations can export metrics to various backends.
type Collector interface {
	// RecordIteration records one finished pipeline iteration
	RecordIteration(success bool, duration time.Duration)
	// RecordRows records rows inserted for an entity
	RecordRows(entity string, n int)
	// RecordEmailFallbacks records emails that needed the hash suffix fallback
	RecordEmailFallbacks(n int)
}

// NoOpCollector is the default collector when metrics are not exported.
type NoOpCollector struct{}

// RecordIteration does nothing.
func (NoOpCollector) RecordIteration(success bool, duration time.Duration) {}

// RecordRows does nothing.
func (NoOpCollector) RecordRows(entity string, n int) {}

// RecordEmailFallbacks does nothing.
func (NoOpCollector) RecordEmailFallbacks(n int) {}

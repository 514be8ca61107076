package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements Collector for Prometheus.
type PrometheusCollector struct {
	iterations        *prometheus.CounterVec
	iterationDuration prometheus.Histogram
	rows              *prometheus.CounterVec
	emailFallbacks    prometheus.Counter
}

// NewPrometheusCollector creates a new Prometheus metrics collector.
func NewPrometheusCollector(namespace string) *PrometheusCollector {
	return &PrometheusCollector{
		iterations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "iterations_total",
				Help:      "Total number of generation iterations by outcome",
			},
			[]string{"status"},
		),
		iterationDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "iteration_duration_seconds",
				Help:      "Wall time of one generation iteration",
				Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms to ~25s
			},
		),
		rows: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rows_inserted_total",
				Help:      "Total number of rows inserted per entity",
			},
			[]string{"entity"},
		),
		emailFallbacks: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "email_fallbacks_total",
				Help:      "Total number of emails issued through the hash suffix fallback",
			},
		),
	}
}

// Register registers all metrics with the given Prometheus registry.
func (pc *PrometheusCollector) Register(registry *prometheus.Registry) error {
	collectors := []prometheus.Collector{
		pc.iterations,
		pc.iterationDuration,
		pc.rows,
		pc.emailFallbacks,
	}

	for _, collector := range collectors {
		if err := registry.Register(collector); err != nil {
			return err
		}
	}

	return nil
}

// RecordIteration records one finished pipeline iteration.
func (pc *PrometheusCollector) RecordIteration(success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	pc.iterations.WithLabelValues(status).Inc()
	pc.iterationDuration.Observe(duration.Seconds())
}

// RecordRows records rows inserted for an entity.
func (pc *PrometheusCollector) RecordRows(entity string, n int) {
	if n <= 0 {
		return
	}
	pc.rows.WithLabelValues(entity).Add(float64(n))
}

// RecordEmailFallbacks records fallback emails.
func (pc *PrometheusCollector) RecordEmailFallbacks(n int) {
	if n <= 0 {
		return
	}
	pc.emailFallbacks.Add(float64(n))
}

package reconcile

import (
	"time"

	"resource-sync/core/resource"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Fetch outcomes recorded by Metrics.
const (
	OutcomeSuccess      = "success"
	OutcomeNetworkError = "network_error"
	OutcomeServerError  = "server_error"
	OutcomeOtherError   = "other_error"
	OutcomeSkipped      = "skipped"
	OutcomePersistError = "persist_error"
)

// MetricsConfig configures the reconcile metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "resource_sync").
	Namespace string

	// Buckets are the histogram buckets for fetch duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the reconcile metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// WithBuckets sets the fetch duration histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// Metrics holds the Prometheus collectors shared by engines.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	emissions     *prometheus.CounterVec
	fetches       *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
}

// NewMetrics registers the reconcile collectors.
func NewMetrics(opts ...MetricsOption) *Metrics {
	cfg := MetricsConfig{
		Namespace: "resource_sync",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	factory := promauto.With(cfg.Registry)

	return &Metrics{
		emissions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "emissions_total",
			Help:      "Total number of resource states emitted",
		}, []string{"engine", "status"}),

		fetches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "fetch_total",
			Help:      "Total number of reconciliation runs by fetch outcome",
		}, []string{"engine", "outcome"}),

		fetchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Remote fetch duration in seconds",
			Buckets:   cfg.Buckets,
		}, []string{"engine"}),
	}
}

func (m *Metrics) recordEmission(engine string, status resource.Status) {
	if m == nil {
		return
	}
	m.emissions.WithLabelValues(engine, string(status)).Inc()
}

func (m *Metrics) recordOutcome(engine, outcome string) {
	if m == nil {
		return
	}
	m.fetches.WithLabelValues(engine, outcome).Inc()
}

func (m *Metrics) recordFetch(engine string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.fetchDuration.WithLabelValues(engine).Observe(elapsed.Seconds())
}

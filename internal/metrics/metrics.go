package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector exposes Prometheus metrics for ledger operations.
type Collector struct {
	registry            *prometheus.Registry
	operationsProcessed *prometheus.CounterVec
	operationsFailed    *prometheus.CounterVec
	operationDuration   prometheus.Histogram
}

func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	return &Collector{
		registry: registry,
		operationsProcessed: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_operations_processed_total",
			Help: "Total number of committed ledger operations",
		}, []string{"type"}),
		operationsFailed: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_operations_failed_total",
			Help: "Total number of failed ledger operations",
		}, []string{"type"}),
		operationDuration: promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
			Name:    "ledger_operation_duration_seconds",
			Help:    "Time taken to commit a ledger operation",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// OperationProcessed records one committed operation and its duration.
func (c *Collector) OperationProcessed(operation string, seconds float64) {
	c.operationsProcessed.WithLabelValues(operation).Inc()
	c.operationDuration.Observe(seconds)
}

// OperationFailed records one failed operation.
func (c *Collector) OperationFailed(operation string) {
	c.operationsFailed.WithLabelValues(operation).Inc()
}

// Handler returns the HTTP handler serving the collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Package middleware provides cross-cutting concerns for the split-chunks
// optimizer.
package middleware

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ahrav/go-splitchunks/internal/ports"
)

var _ ports.MetricsCollector = (*PrometheusMetrics)(nil)

// PrometheusMetrics implements the MetricsCollector interface using
// Prometheus. It provides real-time monitoring of candidate construction,
// selection progress, and pass latency for the optimizer.
type PrometheusMetrics struct {
	candidatesCreated *prometheus.CounterVec
	groupsSelected    *prometheus.CounterVec
	groupSizeBytes    *prometheus.HistogramVec
	passLatency       *prometheus.HistogramVec
	operationCounter  *prometheus.CounterVec
	systemGauges      *prometheus.GaugeVec
}

// NewPrometheusMetrics creates a PrometheusMetrics instance and registers
// all required metrics with the given registerer. Pass
// prometheus.DefaultRegisterer in production; tests can pass a fresh
// registry to avoid duplicate-registration panics.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		candidatesCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "split_candidates_created_total",
				Help: "Total number of candidate module groups built from cache group rules.",
			},
			[]string{"pass"},
		),
		groupsSelected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "split_groups_selected_total",
				Help: "Total number of module groups committed by the selection loop.",
			},
			[]string{"pass"},
		),
		groupSizeBytes: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "split_group_size_bytes",
				Help:    "Aggregate size of committed module groups across all source types.",
				Buckets: prometheus.ExponentialBuckets(1024, 4, 10),
			},
			[]string{"cache_group"},
		),
		passLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "split_optimizer_pass_duration_seconds",
				Help:    "Execution time of optimizer passes.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		operationCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "split_optimizer_operations_total",
				Help: "Total number of operations performed by the optimizer.",
			},
			[]string{"operation", "status"},
		),
		systemGauges: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "split_optimizer_system_state",
				Help: "Current system state values for the optimizer.",
			},
			[]string{"metric"},
		),
	}
}

// RecordLatency implements the MetricsCollector interface by recording
// pass latency in a Prometheus histogram.
func (pm *PrometheusMetrics) RecordLatency(
	operation string,
	duration time.Duration,
	_ map[string]string,
) {
	pm.passLatency.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordCounter implements the MetricsCollector interface by incrementing
// Prometheus counters. Known optimizer metrics map to dedicated counters;
// anything else lands in the generic operation counter.
func (pm *PrometheusMetrics) RecordCounter(
	metric string, value float64, labels map[string]string,
) {
	pass, ok := labels["pass"]
	if !ok {
		pass = "unknown"
	}

	switch metric {
	case "split_candidates_created_total":
		pm.candidatesCreated.WithLabelValues(pass).Add(value)
	case "split_groups_selected_total":
		pm.groupsSelected.WithLabelValues(pass).Add(value)
	default:
		pm.operationCounter.WithLabelValues(metric, "recorded").Add(value)
	}
}

// RecordGauge implements the MetricsCollector interface by setting gauge
// values for system state tracking.
func (pm *PrometheusMetrics) RecordGauge(
	metric string, value float64, _ map[string]string,
) {
	pm.systemGauges.WithLabelValues(metric).Set(value)
}

// RecordHistogram implements the MetricsCollector interface by recording
// values in Prometheus histograms.
func (pm *PrometheusMetrics) RecordHistogram(
	metric string, value float64, labels map[string]string,
) {
	if metric == "split_group_size_bytes" {
		cacheGroup, ok := labels["cache_group"]
		if !ok {
			cacheGroup = "unknown"
		}
		pm.groupSizeBytes.WithLabelValues(cacheGroup).Observe(value)
	}
}

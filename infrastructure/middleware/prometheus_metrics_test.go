package middleware

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheusMetrics(t *testing.T) {
	pm := NewPrometheusMetrics(prometheus.NewRegistry())

	t.Run("known counters increment", func(t *testing.T) {
		pm.RecordCounter("split_candidates_created_total", 3, map[string]string{"pass": "split_chunks"})
		pm.RecordCounter("split_candidates_created_total", 2, map[string]string{"pass": "split_chunks"})
		pm.RecordCounter("split_groups_selected_total", 1, map[string]string{"pass": "split_chunks"})

		assert.Equal(t, 5.0, testutil.ToFloat64(
			pm.candidatesCreated.WithLabelValues("split_chunks")))
		assert.Equal(t, 1.0, testutil.ToFloat64(
			pm.groupsSelected.WithLabelValues("split_chunks")))
	})

	t.Run("unknown counters land in the operation counter", func(t *testing.T) {
		pm.RecordCounter("something_else", 4, nil)

		assert.Equal(t, 4.0, testutil.ToFloat64(
			pm.operationCounter.WithLabelValues("something_else", "recorded")))
	})

	t.Run("gauges set current values", func(t *testing.T) {
		pm.RecordGauge("candidates_remaining", 7, nil)
		pm.RecordGauge("candidates_remaining", 2, nil)

		assert.Equal(t, 2.0, testutil.ToFloat64(
			pm.systemGauges.WithLabelValues("candidates_remaining")))
	})

	t.Run("latency and size histograms observe without panicking", func(t *testing.T) {
		pm.RecordLatency("optimizer_pass", 125*time.Millisecond, nil)
		pm.RecordHistogram("split_group_size_bytes", 4096, map[string]string{"cache_group": "vendors"})
		pm.RecordHistogram("split_group_size_bytes", 512, nil)
		pm.RecordHistogram("ignored_metric", 1, nil)
	})
}

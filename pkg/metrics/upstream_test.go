package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestUpstreamMetricsCounters(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := NewUpstreamMetrics(reg)

	m.IncSuccess("cart.add")
	m.IncSuccess("cart.add")
	m.IncFailure("")
	m.ObserveDuration("cart.add", 50*time.Millisecond)

	if got := testutil.ToFloat64(m.success.WithLabelValues("cart.add")); got != 2 {
		t.Fatalf("expected 2 successes, got %f", got)
	}
	if got := testutil.ToFloat64(m.failure.WithLabelValues("unknown")); got != 1 {
		t.Fatalf("expected empty endpoint to normalize to unknown, got %f", got)
	}
}

func TestUpstreamMetricsNilSafe(t *testing.T) {
	t.Parallel()

	var m *UpstreamMetrics
	m.IncSuccess("x")
	m.IncFailure("x")
	m.ObserveDuration("x", time.Second)

	unregistered := NewUpstreamMetrics(nil)
	unregistered.IncSuccess("x")
}

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	// Replace global default registry to allow test inspection.
	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry

	m := New()

	if m.BatchesCreated == nil || m.HTTPRequests == nil || m.MappingsSkipped == nil {
		t.Fatalf("expected key metrics to be initialized: %+v", m)
	}

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	if len(metricFamilies) == 0 {
		t.Fatalf("expected registered metrics, got none")
	}
}

func TestRecorderForwardsToCounters(t *testing.T) {
	registry := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry

	m := New()
	r := NewRecorder(m)

	r.BatchCreated()
	r.BatchUpdated()
	r.BatchDeleted()
	r.PostingsWritten(4)
	r.MappingSkipped()

	if got := testutil.ToFloat64(m.BatchesCreated); got != 1 {
		t.Fatalf("expected 1 batch created, got %v", got)
	}
	if got := testutil.ToFloat64(m.PostingsWritten); got != 4 {
		t.Fatalf("expected 4 postings written, got %v", got)
	}
	if got := testutil.ToFloat64(m.MappingsSkipped); got != 1 {
		t.Fatalf("expected 1 mapping skipped, got %v", got)
	}
}

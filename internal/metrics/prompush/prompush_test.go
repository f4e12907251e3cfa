package prompush

import (
	"testing"

	"github.com/jimsharma206/UM-TerrorismDW-Project/internal/metrics"
)

func TestNewBackendRequiresURL(t *testing.T) {
	t.Parallel()

	if _, err := NewBackend("gtd_clean", ""); err == nil {
		t.Fatal("empty gateway URL accepted")
	}
}

func TestBackendRecords(t *testing.T) {
	t.Parallel()

	b, err := NewBackend("", "http://localhost:9091")
	if err != nil {
		t.Fatalf("NewBackend: %v", err)
	}

	lbls := metrics.Labels{"step": "geo_filter", "status": "success", "kind": "cleaned"}

	// None of these may panic; unknown names are ignored.
	b.IncCounter("gtd_step_total", 1, lbls)
	b.IncCounter("gtd_records_total", 5, lbls)
	b.IncCounter("gtd_batches_total", 1, nil)
	b.IncCounter("unknown_metric", 1, nil)
	b.ObserveHistogram("gtd_step_duration_seconds", 0.5, lbls)
	b.ObserveHistogram("unknown_metric", 1, nil)
}

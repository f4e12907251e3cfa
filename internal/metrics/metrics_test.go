package metrics

import (
	"errors"
	"testing"
	"time"
)

// captureBackend records every call for assertions.
type captureBackend struct {
	counters   []capturedMetric
	histograms []capturedMetric
	flushed    bool
	flushErr   error
}

type capturedMetric struct {
	name   string
	value  float64
	labels Labels
}

func (c *captureBackend) IncCounter(name string, delta float64, labels Labels) {
	c.counters = append(c.counters, capturedMetric{name, delta, labels})
}
func (c *captureBackend) ObserveHistogram(name string, value float64, labels Labels) {
	c.histograms = append(c.histograms, capturedMetric{name, value, labels})
}
func (c *captureBackend) Flush() error {
	c.flushed = true
	return c.flushErr
}

func withCapture(t *testing.T) *captureBackend {
	t.Helper()
	old := backend
	t.Cleanup(func() { backend = old })
	c := &captureBackend{}
	SetBackend(c)
	return c
}

func TestRecordStep(t *testing.T) {
	c := withCapture(t)

	RecordStep("gtd_clean", "geo_filter", nil, 250*time.Millisecond)
	RecordStep("gtd_clean", "export", errors.New("disk full"), time.Millisecond)

	if len(c.counters) != 2 || len(c.histograms) != 2 {
		t.Fatalf("counters=%d histograms=%d, want 2 each", len(c.counters), len(c.histograms))
	}
	first := c.counters[0]
	if first.name != "gtd_step_total" || first.labels["step"] != "geo_filter" || first.labels["status"] != "success" {
		t.Fatalf("first counter = %+v", first)
	}
	if c.counters[1].labels["status"] != "failure" {
		t.Fatalf("failed step labeled %q", c.counters[1].labels["status"])
	}
	if got := c.histograms[0]; got.name != "gtd_step_duration_seconds" || got.value != 0.25 {
		t.Fatalf("duration observation = %+v", got)
	}
}

func TestRecordRow(t *testing.T) {
	c := withCapture(t)

	RecordRow("gtd_clean", "cleaned", 100)
	RecordRow("gtd_clean", "dropped", 0) // non-positive deltas are ignored

	if len(c.counters) != 1 {
		t.Fatalf("counters = %d, want 1", len(c.counters))
	}
	got := c.counters[0]
	if got.name != "gtd_records_total" || got.value != 100 || got.labels["kind"] != "cleaned" {
		t.Fatalf("counter = %+v", got)
	}
}

func TestRecordBatches(t *testing.T) {
	c := withCapture(t)

	RecordBatches("gtd_load", 3)
	RecordBatches("gtd_load", -1)

	if len(c.counters) != 1 {
		t.Fatalf("counters = %d, want 1", len(c.counters))
	}
	if got := c.counters[0]; got.name != "gtd_batches_total" || got.value != 3 {
		t.Fatalf("counter = %+v", got)
	}
}

func TestSetBackendNilKeepsCurrent(t *testing.T) {
	c := withCapture(t)

	SetBackend(nil)
	RecordBatches("job", 1)
	if len(c.counters) != 1 {
		t.Fatal("nil SetBackend replaced the installed backend")
	}
}

func TestFlushDelegates(t *testing.T) {
	c := withCapture(t)
	c.flushErr = errors.New("push failed")

	if err := Flush(); !errors.Is(err, c.flushErr) {
		t.Fatalf("Flush = %v", err)
	}
	if !c.flushed {
		t.Fatal("Flush not delegated")
	}
}

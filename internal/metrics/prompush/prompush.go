// Package prompush implements a Prometheus Pushgateway backend for the
// metrics package.
//
// A one-shot batch job cannot be scraped, so collected metrics are pushed to
// a Pushgateway at the end of the run instead of being exposed on an HTTP
// endpoint. All Prometheus-specific dependencies live here so the rest of the
// project depends only on the metrics.Backend abstraction.
package prompush

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/jimsharma206/UM-TerrorismDW-Project/internal/metrics"
)

// Backend is a Prometheus Pushgateway metrics backend.
type Backend struct {
	gatewayURL string // e.g. http://pushgateway:9091
	jobName    string // Pushgateway "job" group
	reg        *prometheus.Registry

	stepCounter  *prometheus.CounterVec // "gtd_step_total"
	stepDuration *prometheus.SummaryVec // "gtd_step_duration_seconds"

	recordCounter *prometheus.CounterVec // "gtd_records_total"
	batchCounter  prometheus.Counter     // "gtd_batches_total"
}

// NewBackend constructs a Prometheus Pushgateway backend.
// jobName: the Pushgateway "job" name (often same as pipeline job).
// gatewayURL: base URL of the Pushgateway server.
func NewBackend(jobName, gatewayURL string) (*Backend, error) {
	if gatewayURL == "" {
		return nil, fmt.Errorf("prompush: gateway URL is required")
	}
	if jobName == "" {
		jobName = "gtd"
	}

	reg := prometheus.NewRegistry()

	stepCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gtd_step_total",
			Help: "Total number of pipeline step executions, partitioned by step and status.",
		},
		[]string{"step", "status"},
	)
	stepDuration := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "gtd_step_duration_seconds",
			Help:       "Duration of pipeline steps in seconds, partitioned by step and status.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"step", "status"},
	)
	recordCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gtd_records_total",
			Help: "Record-level counts per kind (cleaned, dropped, inserted, etc.).",
		},
		[]string{"kind"},
	)
	batchCounter := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gtd_batches_total",
			Help: "Total number of bulk-insert batches flushed for this job.",
		},
	)

	if err := reg.Register(stepCounter); err != nil {
		return nil, fmt.Errorf("prompush: register step counter: %w", err)
	}
	if err := reg.Register(stepDuration); err != nil {
		return nil, fmt.Errorf("prompush: register step summary: %w", err)
	}
	if err := reg.Register(recordCounter); err != nil {
		return nil, fmt.Errorf("prompush: register record counter: %w", err)
	}
	if err := reg.Register(batchCounter); err != nil {
		return nil, fmt.Errorf("prompush: register batch counter: %w", err)
	}

	return &Backend{
		gatewayURL:    gatewayURL,
		jobName:       jobName,
		reg:           reg,
		stepCounter:   stepCounter,
		stepDuration:  stepDuration,
		recordCounter: recordCounter,
		batchCounter:  batchCounter,
	}, nil
}

// IncCounter implements metrics.Backend.
func (b *Backend) IncCounter(name string, delta float64, labels metrics.Labels) {
	switch name {
	case "gtd_step_total":
		b.stepCounter.WithLabelValues(labels["step"], labels["status"]).Add(delta)
	case "gtd_records_total":
		b.recordCounter.WithLabelValues(labels["kind"]).Add(delta)
	case "gtd_batches_total":
		b.batchCounter.Add(delta)
	default:
		// unknown metric name: ignore
	}
}

// ObserveHistogram implements metrics.Backend.
func (b *Backend) ObserveHistogram(name string, value float64, labels metrics.Labels) {
	if name != "gtd_step_duration_seconds" {
		return
	}
	b.stepDuration.WithLabelValues(labels["step"], labels["status"]).Observe(value)
}

// Flush pushes the current registry to the Pushgateway.
func (b *Backend) Flush() error {
	return push.New(b.gatewayURL, b.jobName).
		Gatherer(b.reg).
		Push()
}

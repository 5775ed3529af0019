// Package prompush pushes pipeline metrics to a Prometheus Pushgateway.
//
// A run has no HTTP server to scrape, so collectors live in a private
// registry that Flush pushes under the job's grouping key.
package prompush

import (
	"fmt"

	"github.com/nahlarmash/GitHub-Repos-Pipeline/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const defaultJob = "github_repos_analysis"

// Backend implements metrics.Backend. The job label is not a metric label
// here; it is the Pushgateway grouping key.
type Backend struct {
	gatewayURL string
	jobName    string
	reg        *prometheus.Registry

	stepCounter  *prometheus.CounterVec
	stepDuration *prometheus.SummaryVec
	fileCounter  *prometheus.CounterVec
	rowCounter   *prometheus.CounterVec
}

var (
	stepLabels = []string{"step", "status"}
	fileLabels = []string{"status"}
	rowLabels  = []string{"kind"}
)

// NewBackend registers the pipeline collectors on a fresh registry. An empty
// jobName falls back to "github_repos_analysis".
func NewBackend(jobName, gatewayURL string) (*Backend, error) {
	if gatewayURL == "" {
		return nil, fmt.Errorf("prompush: gateway URL is required")
	}
	if jobName == "" {
		jobName = defaultJob
	}

	b := &Backend{
		gatewayURL: gatewayURL,
		jobName:    jobName,
		reg:        prometheus.NewRegistry(),
		stepCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: metrics.StepTotal,
			Help: "Pipeline step executions by step and status.",
		}, stepLabels),
		stepDuration: prometheus.NewSummaryVec(prometheus.SummaryOpts{
			Name:       metrics.StepDurationSeconds,
			Help:       "Pipeline step wall time in seconds by step and status.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		}, stepLabels),
		fileCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: metrics.FilesTotal,
			Help: "Snapshot files by load outcome.",
		}, fileLabels),
		rowCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: metrics.RowsTotal,
			Help: "Rows by kind: loaded, nulled, written.",
		}, rowLabels),
	}
	// A private registry keeps the Go runtime and process collectors out of
	// the push.
	for _, c := range []prometheus.Collector{b.stepCounter, b.stepDuration, b.fileCounter, b.rowCounter} {
		if err := b.reg.Register(c); err != nil {
			return nil, fmt.Errorf("prompush: register: %w", err)
		}
	}
	return b, nil
}

// counter maps a metric name to its vector and label order. The vector is
// nil for names this backend does not export and on a zero Backend.
func (b *Backend) counter(name string) (*prometheus.CounterVec, []string) {
	switch name {
	case metrics.StepTotal:
		return b.stepCounter, stepLabels
	case metrics.FilesTotal:
		return b.fileCounter, fileLabels
	case metrics.RowsTotal:
		return b.rowCounter, rowLabels
	}
	return nil, nil
}

// values orders label values to match a vector's label names. A missing
// label becomes "".
func values(labels metrics.Labels, keys []string) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = labels[k]
	}
	return out
}

// IncCounter routes known counters and ignores other names.
func (b *Backend) IncCounter(name string, delta float64, labels metrics.Labels) {
	vec, keys := b.counter(name)
	if vec == nil {
		return
	}
	vec.WithLabelValues(values(labels, keys)...).Add(delta)
}

// ObserveHistogram only records metrics.StepDurationSeconds.
func (b *Backend) ObserveHistogram(name string, value float64, labels metrics.Labels) {
	if name != metrics.StepDurationSeconds || b.stepDuration == nil {
		return
	}
	b.stepDuration.WithLabelValues(values(labels, stepLabels)...).Observe(value)
}

// Flush replaces the previous push for this job with the current registry.
func (b *Backend) Flush() error {
	if err := push.New(b.gatewayURL, b.jobName).Gatherer(b.reg).Push(); err != nil {
		return fmt.Errorf("prompush: push %s: %w", b.jobName, err)
	}
	return nil
}

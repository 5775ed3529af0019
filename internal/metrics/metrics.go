// Package metrics records pipeline counters and step timings through a
// process-wide Backend. The default backend discards everything, so callers
// never check whether metrics are configured. Concrete backends live in
// subpackages and main installs one with SetBackend.
package metrics

import "time"

const (
	StepTotal           = "ghrepos_step_total"
	StepDurationSeconds = "ghrepos_step_duration_seconds"
	FilesTotal          = "ghrepos_files_total"
	RowsTotal           = "ghrepos_rows_total"
)

// Labels are attached to a single observation.
type Labels map[string]string

// Backend receives observations. Flush is called after each run.
type Backend interface {
	IncCounter(name string, delta float64, labels Labels)
	ObserveHistogram(name string, value float64, labels Labels)
	Flush() error
}

type nopBackend struct{}

func (nopBackend) IncCounter(string, float64, Labels)       {}
func (nopBackend) ObserveHistogram(string, float64, Labels) {}
func (nopBackend) Flush() error                             { return nil }

var backend Backend = nopBackend{}

// SetBackend replaces the process backend. nil is ignored.
func SetBackend(b Backend) {
	if b != nil {
		backend = b
	}
}

func Flush() error { return backend.Flush() }

func outcome(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}

// RecordStep counts one execution of step and observes how long it took.
// Steps are "list", "load", "merge", "aggregate" and "write:<table>".
func RecordStep(job, step string, err error, d time.Duration) {
	lbls := Labels{"job": job, "step": step, "status": outcome(err)}
	backend.IncCounter(StepTotal, 1, lbls)
	backend.ObserveHistogram(StepDurationSeconds, d.Seconds(), lbls)
}

// RecordFiles counts input files; status is "loaded" or "failed".
func RecordFiles(job, status string, n int) {
	if n > 0 {
		backend.IncCounter(FilesTotal, float64(n), Labels{"job": job, "status": status})
	}
}

// RecordRows counts rows of a kind: "loaded" rows came from good files,
// "nulled" counts field values dropped to null on a type mismatch, and
// "written" rows reached a sink table.
func RecordRows(job, kind string, n int64) {
	if n > 0 {
		backend.IncCounter(RowsTotal, float64(n), Labels{"job": job, "kind": kind})
	}
}

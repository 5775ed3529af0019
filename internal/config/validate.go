// Package config provides the pipeline configuration model and helpers.
//
// This file adds a static validator for Pipeline values. It returns a list
// of issues (errors and warnings) that the CLI prints before a run and that
// -validate uses as its only output.
package config

import (
	"fmt"
	"strings"
)

// IssueSeverity classifies a validation finding.
type IssueSeverity string

const (
	SeverityError   IssueSeverity = "error"   // run is refused
	SeverityWarning IssueSeverity = "warning" // printed, run continues
)

// Issue is one finding from ValidatePipeline. Path is the dotted config key
// it concerns, e.g. "source.dir".
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// HasErrors reports whether any issue is a SeverityError.
func HasErrors(issues []Issue) bool {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return true
		}
	}
	return false
}

// knownKinds lists the storage kinds cmd/ghrepos links in.
var knownKinds = map[string]struct{}{
	"postgres": {},
	"mysql":    {},
	"mssql":    {},
	"sqlite":   {},
}

type findings []Issue

func (f *findings) fail(path, format string, args ...any) {
	*f = append(*f, Issue{Severity: SeverityError, Path: path, Message: fmt.Sprintf(format, args...)})
}

func (f *findings) warn(path, format string, args ...any) {
	*f = append(*f, Issue{Severity: SeverityWarning, Path: path, Message: fmt.Sprintf(format, args...)})
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// ValidatePipeline checks p without touching the filesystem or network.
// Findings come back in config order: job, source, storage, runtime.
func ValidatePipeline(p Pipeline) []Issue {
	var f findings

	if blank(p.Job) {
		f.fail("job", "job must not be empty; runs and metrics are labeled with it")
	}

	if blank(p.Source.Dir) {
		f.fail("source.dir", "source.dir must not be empty")
	}
	if p.Source.Suffix == "" {
		f.fail("source.suffix", "source.suffix must not be empty; every entry of source.dir would be read")
	} else if !strings.HasPrefix(p.Source.Suffix, ".") {
		f.warn("source.suffix", "suffix %q has no leading dot; file names merely ending in it will match", p.Source.Suffix)
	}

	if blank(p.Storage.Kind) {
		f.fail("storage.kind", "storage.kind must not be empty")
	} else if _, ok := knownKinds[p.Storage.Kind]; !ok {
		f.warn("storage.kind", "unknown storage kind %q; no backend with that name is linked in", p.Storage.Kind)
	}
	if blank(p.Storage.DB.DSN) {
		f.fail("storage.db.dsn", "storage.db.dsn must not be empty")
	}
	if p.Storage.DB.Password != "" && p.Storage.DB.User == "" {
		f.warn("storage.db.password", "password is set without a user; the DSN user, if any, is used")
	}

	if p.Runtime.LoaderWorkers < 0 {
		f.fail("runtime.loader_workers", "loader_workers must not be negative, got %d", p.Runtime.LoaderWorkers)
	}
	if p.Runtime.BatchSize <= 0 {
		f.warn("runtime.batch_size", "batch_size=%d; the sink default will be used", p.Runtime.BatchSize)
	}

	return f
}

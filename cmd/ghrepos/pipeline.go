package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/nahlarmash/GitHub-Repos-Pipeline/internal/aggregate"
	"github.com/nahlarmash/GitHub-Repos-Pipeline/internal/config"
	"github.com/nahlarmash/GitHub-Repos-Pipeline/internal/datasource/file"
	"github.com/nahlarmash/GitHub-Repos-Pipeline/internal/dataset"
	"github.com/nahlarmash/GitHub-Repos-Pipeline/internal/loader"
	"github.com/nahlarmash/GitHub-Repos-Pipeline/internal/metrics"
	"github.com/nahlarmash/GitHub-Repos-Pipeline/internal/sink"
)

// ErrNoData is returned when no input file could be loaded. No repository
// is opened in that case.
var ErrNoData = errors.New("pipeline: no data loaded")

// Function variables used to introduce test seams. Tests that replace them
// do not run in parallel.
var (
	listFilesFn = file.ListFiles
	loadAllFn   = loader.LoadAll
	writeViewFn = func(ctx context.Context, w sink.Writer, v aggregate.View) (int64, error) {
		return w.Write(ctx, v)
	}
)

// TableSummary describes one written table.
type TableSummary struct {
	Name        string
	Rows        int64
	Fingerprint string
}

// Summary is what one run did.
type Summary struct {
	RunID       string
	FilesOK     int
	FilesFailed int
	Rows        int    // merged dataset rows
	Fingerprint string // merged dataset fingerprint
	Tables      []TableSummary
}

// runOnce executes list → load → merge → aggregate → write once. Tables
// are written in aggregate.All order and the first write failure stops the
// run; tables already written stay written.
func runOnce(ctx context.Context, p config.Pipeline, runID string) (Summary, error) {
	sum := Summary{RunID: runID}
	job := p.Job

	// 1) Discover snapshot files. A missing directory is an error, not
	//    "no data".
	start := time.Now()
	paths, err := listFilesFn(p.Source.Dir, p.Source.Suffix)
	metrics.RecordStep(job, "list", err, time.Since(start))
	if err != nil {
		return sum, fmt.Errorf("pipeline: list %s: %w", p.Source.Dir, err)
	}

	// 2) Load every file. Failures are isolated per file and already logged
	//    by the loader; the load step itself never fails.
	start = time.Now()
	results := loadAllFn(ctx, paths, p.Source.Suffix, p.Runtime.LoaderWorkers)
	sum.FilesFailed = loader.Failed(results)
	sum.FilesOK = len(results) - sum.FilesFailed
	metrics.RecordStep(job, "load", nil, time.Since(start))
	metrics.RecordFiles(job, "loaded", sum.FilesOK)
	metrics.RecordFiles(job, "failed", sum.FilesFailed)

	// Type-mismatch drops only count for files that made it into the run.
	var nulled int64
	for _, r := range results {
		if r.Err == nil {
			nulled += int64(r.Stats.Nulled)
		}
	}
	metrics.RecordRows(job, "nulled", nulled)

	// Stop before any sink work once SIGINT/SIGTERM arrived.
	if err := ctx.Err(); err != nil {
		return sum, err
	}

	// 3) Merge by column name. Nothing loaded ends the run here, before a
	//    repository is opened, so existing tables are left untouched.
	start = time.Now()
	merged, ok, err := dataset.Merge(loader.Frames(results))
	metrics.RecordStep(job, "merge", err, time.Since(start))
	if err != nil {
		return sum, fmt.Errorf("pipeline: %w", err)
	}
	if !ok {
		log.Printf("pipeline: no data files_found=%d files_failed=%d dir=%s", len(paths), sum.FilesFailed, p.Source.Dir)
		return sum, ErrNoData
	}
	// The fingerprint ignores file and row order, so two runs over the same
	// inputs log the same value.
	sum.Rows = merged.Len()
	sum.Fingerprint = dataset.FingerprintHex(merged)
	metrics.RecordRows(job, "loaded", int64(sum.Rows))

	// 4) Build the three views.
	start = time.Now()
	views, err := aggregate.All(merged)
	metrics.RecordStep(job, "aggregate", err, time.Since(start))
	if err != nil {
		return sum, fmt.Errorf("pipeline: %w", err)
	}

	// 5) Replace each table in order. There is no cross-table transaction:
	//    a failure leaves earlier tables replaced and later ones as they were.
	w := sink.Writer{
		Kind:      p.Storage.Kind,
		DSN:       p.Storage.DB.DSN,
		User:      p.Storage.DB.User,
		Password:  p.Storage.DB.Password,
		BatchSize: p.Runtime.BatchSize,
	}
	for _, v := range views {
		start = time.Now()
		n, err := writeViewFn(ctx, w, v)
		metrics.RecordStep(job, "write:"+v.Table.FQN, err, time.Since(start))
		if err != nil {
			return sum, fmt.Errorf("pipeline: %w", err)
		}
		metrics.RecordRows(job, "written", n)
		sum.Tables = append(sum.Tables, TableSummary{
			Name:        v.Table.FQN,
			Rows:        n,
			Fingerprint: dataset.FingerprintHex(v.Frame),
		})
	}

	log.Printf("pipeline: done run_id=%s files_ok=%d files_failed=%d rows=%d fingerprint=%s tables=%s",
		runID, sum.FilesOK, sum.FilesFailed, sum.Rows, sum.Fingerprint, tableList(sum.Tables))
	return sum, nil
}

// tableList formats tables as name:rows:fingerprint, comma separated.
func tableList(ts []TableSummary) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = fmt.Sprintf("%s:%d:%s", t.Name, t.Rows, t.Fingerprint)
	}
	return strings.Join(parts, ",")
}

// Package loader turns snapshot files into per-file datasets. Each file is
// decoded under schema.RepoFields and tagged with the query it came from, so
// every successful Frame carries exactly schema.Columns().
package loader

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"

	"github.com/nahlarmash/GitHub-Repos-Pipeline/internal/dataset"
	"github.com/nahlarmash/GitHub-Repos-Pipeline/internal/datasource"
	"github.com/nahlarmash/GitHub-Repos-Pipeline/internal/datasource/file"
	jsonparser "github.com/nahlarmash/GitHub-Repos-Pipeline/internal/parser/json"
	"github.com/nahlarmash/GitHub-Repos-Pipeline/internal/schema"
)

// openSource is a test hook for substituting the file data source.
var openSource = func(path string) datasource.Source { return file.NewLocal(path) }

// Result is the outcome of loading one file. Exactly one of Frame and Err is
// meaningful.
type Result struct {
	Path  string
	Tag   string
	Frame dataset.Frame
	Stats jsonparser.Stats
	Err   error
}

// TagFromPath derives the source tag from a file path: the base name with
// suffix removed, in Unicode NFC so that names written by NFD filesystems
// (macOS) tag the same query identically.
func TagFromPath(path, suffix string) string {
	return norm.NFC.String(strings.TrimSuffix(filepath.Base(path), suffix))
}

// LoadFile decodes one snapshot file and appends the search_term column
// holding its tag.
func LoadFile(ctx context.Context, path, suffix string) (dataset.Frame, jsonparser.Stats, error) {
	return loadTagged(ctx, path, TagFromPath(path, suffix))
}

// loadTagged is LoadFile with the tag already derived.
func loadTagged(ctx context.Context, path, tag string) (dataset.Frame, jsonparser.Stats, error) {
	if tag == "" {
		return dataset.Frame{}, jsonparser.Stats{}, fmt.Errorf("load %s: empty source tag", path)
	}

	rc, err := openSource(path).Open(ctx)
	if err != nil {
		return dataset.Frame{}, jsonparser.Stats{}, fmt.Errorf("load: %w", err)
	}
	defer rc.Close()

	rows, stats, err := jsonparser.DecodeRepos(rc, schema.RepoFields)
	if err != nil {
		return dataset.Frame{}, stats, fmt.Errorf("load %s: %w", path, err)
	}

	f := dataset.Frame{Columns: schema.FieldNames(), Rows: rows}
	return f.WithConstColumn(schema.SearchTerm, tag), stats, nil
}

// LoadAll loads paths with at most workers files in flight (workers <= 0
// means one per CPU). Results are returned in input order. A failing file
// never stops the others; it gets exactly one log line and a Result with
// Err set.
func LoadAll(ctx context.Context, paths []string, suffix string, workers int) []Result {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]Result, len(paths))
	var g errgroup.Group
	g.SetLimit(workers)

	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			res := Result{Path: p, Tag: TagFromPath(p, suffix)}
			res.Frame, res.Stats, res.Err = loadTagged(ctx, p, res.Tag)
			if res.Err != nil {
				log.Printf("loader: skipping file=%s: %v", filepath.Base(p), res.Err)
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Frames returns the frames of the successful results, in order.
func Frames(results []Result) []dataset.Frame {
	out := make([]dataset.Frame, 0, len(results))
	for _, r := range results {
		if r.Err == nil {
			out = append(out, r.Frame)
		}
	}
	return out
}

// Failed counts results with an error.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

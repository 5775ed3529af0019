// Package sink persists aggregate views to a relational backend, replacing
// whatever the target table held before.
package sink

import (
	"context"
	"fmt"

	"github.com/nahlarmash/GitHub-Repos-Pipeline/internal/aggregate"
	"github.com/nahlarmash/GitHub-Repos-Pipeline/internal/storage"
)

// DefaultBatchSize is used when Writer.BatchSize is not positive.
const DefaultBatchSize = 5000

// newRepository is a test hook for storage.New.
var newRepository = storage.New

// Writer writes views to one backend. It opens a fresh repository per view.
type Writer struct {
	Kind      string
	DSN       string
	User      string
	Password  string
	BatchSize int
}

// Write replaces view.Table with view.Frame's rows and returns the number
// of rows written. Errors carry the table name. There is no retry and no
// rollback of tables written earlier.
func (w Writer) Write(ctx context.Context, view aggregate.View) (int64, error) {
	table := view.Table.FQN

	repo, err := newRepository(ctx, storage.Config{
		Kind:     w.Kind,
		DSN:      w.DSN,
		User:     w.User,
		Password: w.Password,
		Table:    table,
		Columns:  view.Table.ColumnNames(),
	})
	if err != nil {
		return 0, fmt.Errorf("sink: table=%s: open: %w", table, err)
	}
	// Close runs on every path, including alignment and replace failures.
	defer repo.Close()

	batch := w.BatchSize
	if batch <= 0 {
		batch = DefaultBatchSize
	}

	// Rows are matched to the table by column name, never by position.
	rows, err := alignRows(view)
	if err != nil {
		return 0, fmt.Errorf("sink: table=%s: %w", table, err)
	}

	n, err := storage.ReplaceTable(ctx, w.Kind, repo, view.Table, rows, batch)
	if err != nil {
		return n, fmt.Errorf("sink: table=%s: %w", table, err)
	}
	return n, nil
}

// alignRows returns the frame's rows in table column order.
func alignRows(view aggregate.View) ([][]any, error) {
	names := view.Table.ColumnNames()
	perm := make([]int, len(names))
	identity := len(names) == len(view.Frame.Columns)
	for i, n := range names {
		j := view.Frame.Index(n)
		if j < 0 {
			return nil, fmt.Errorf("column %q missing from view rows", n)
		}
		perm[i] = j
		if j != i {
			identity = false
		}
	}
	// Views built by aggregate are already in table order; share their rows
	// instead of copying.
	if identity {
		return view.Frame.Rows, nil
	}

	out := make([][]any, len(view.Frame.Rows))
	for r, row := range view.Frame.Rows {
		aligned := make([]any, len(perm))
		for i, j := range perm {
			aligned[i] = row[j]
		}
		out[r] = aligned
	}
	return out, nil
}

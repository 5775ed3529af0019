// Package dataset holds the in-memory tabular model the pipeline passes
// between stages: a Frame is a list of column names and row values aligned to
// them. Frames are built once per stage and never mutated afterwards.
package dataset

import (
	"fmt"
	"sort"
	"strings"
)

// Frame is a column-named table. Rows[i][j] is the value of Columns[j].
// Values are int64, float64, string or nil.
type Frame struct {
	Columns []string
	Rows    [][]any
}

// Len returns the number of rows.
func (f Frame) Len() int { return len(f.Rows) }

// Index returns the position of column name, or -1.
func (f Frame) Index(name string) int {
	for i, c := range f.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// MustIndex is Index for columns the caller knows exist.
func (f Frame) MustIndex(name string) int {
	i := f.Index(name)
	if i < 0 {
		panic(fmt.Sprintf("dataset: column %q not in %v", name, f.Columns))
	}
	return i
}

// WithConstColumn returns a copy of f with an extra column holding v in
// every row. If the column already exists its values are replaced.
func (f Frame) WithConstColumn(name string, v any) Frame {
	if i := f.Index(name); i >= 0 {
		rows := make([][]any, len(f.Rows))
		for r, row := range f.Rows {
			nr := append([]any(nil), row...)
			nr[i] = v
			rows[r] = nr
		}
		return Frame{Columns: append([]string(nil), f.Columns...), Rows: rows}
	}

	cols := make([]string, 0, len(f.Columns)+1)
	cols = append(cols, f.Columns...)
	cols = append(cols, name)

	rows := make([][]any, len(f.Rows))
	for r, row := range f.Rows {
		nr := make([]any, len(row)+1)
		copy(nr, row)
		nr[len(row)] = v
		rows[r] = nr
	}
	return Frame{Columns: cols, Rows: rows}
}

// UnionByName appends b's rows to a's, matching columns by name rather than
// position. The result uses a's column order. Both frames must carry the
// same column set.
func UnionByName(a, b Frame) (Frame, error) {
	if len(a.Columns) != len(b.Columns) {
		return Frame{}, fmt.Errorf("dataset: union: column count %d != %d (%s vs %s)",
			len(a.Columns), len(b.Columns), columnList(a.Columns), columnList(b.Columns))
	}

	// perm[i] is the position in b of a.Columns[i].
	perm := make([]int, len(a.Columns))
	for i, name := range a.Columns {
		j := b.Index(name)
		if j < 0 {
			return Frame{}, fmt.Errorf("dataset: union: column %q missing from right side (%s)", name, columnList(b.Columns))
		}
		perm[i] = j
	}

	rows := make([][]any, 0, len(a.Rows)+len(b.Rows))
	rows = append(rows, a.Rows...)
	for _, row := range b.Rows {
		aligned := make([]any, len(perm))
		for i, j := range perm {
			aligned[i] = row[j]
		}
		rows = append(rows, aligned)
	}
	return Frame{Columns: append([]string(nil), a.Columns...), Rows: rows}, nil
}

// Merge folds frames left to right with UnionByName. It reports ok=false
// when there is nothing to merge; that is a "no data" signal, not an error.
func Merge(frames []Frame) (merged Frame, ok bool, err error) {
	if len(frames) == 0 {
		return Frame{}, false, nil
	}
	// The first frame fixes the column order of the result. Rows are
	// appended as-is: duplicates across or within files are kept.
	merged = frames[0]
	for i := 1; i < len(frames); i++ {
		merged, err = UnionByName(merged, frames[i])
		if err != nil {
			return Frame{}, false, fmt.Errorf("merge frame %d: %w", i, err)
		}
	}
	return merged, true, nil
}

// columnList renders cols sorted, for error messages.
func columnList(cols []string) string {
	sorted := append([]string(nil), cols...)
	sort.Strings(sorted)
	return "[" + strings.Join(sorted, ",") + "]"
}

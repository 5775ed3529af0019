package dataset

import (
	"reflect"
	"strings"
	"testing"
)

func TestWithConstColumn(t *testing.T) {
	t.Parallel()

	f := Frame{Columns: []string{"a"}, Rows: [][]any{{int64(1)}, {nil}}}
	got := f.WithConstColumn("tag", "x")

	want := Frame{
		Columns: []string{"a", "tag"},
		Rows:    [][]any{{int64(1), "x"}, {nil, "x"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("WithConstColumn = %#v, want %#v", got, want)
	}
	if len(f.Columns) != 1 || len(f.Rows[0]) != 1 {
		t.Fatalf("WithConstColumn mutated its receiver: %#v", f)
	}

	// Existing column is overwritten, not duplicated.
	again := got.WithConstColumn("tag", "y")
	if len(again.Columns) != 2 || again.Rows[1][1] != "y" {
		t.Fatalf("overwrite = %#v", again)
	}
	if got.Rows[1][1] != "x" {
		t.Fatalf("overwrite mutated its receiver")
	}
}

func TestUnionByName_AlignsByName(t *testing.T) {
	t.Parallel()

	a := Frame{Columns: []string{"x", "y"}, Rows: [][]any{{int64(1), "a"}}}
	b := Frame{Columns: []string{"y", "x"}, Rows: [][]any{{"b", int64(2)}, {"c", nil}}}

	got, err := UnionByName(a, b)
	if err != nil {
		t.Fatalf("UnionByName error: %v", err)
	}
	want := Frame{
		Columns: []string{"x", "y"},
		Rows:    [][]any{{int64(1), "a"}, {int64(2), "b"}, {nil, "c"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("UnionByName = %#v, want %#v", got, want)
	}
}

func TestUnionByName_ColumnMismatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		a, b        Frame
		errContains string
	}{
		{
			name:        "different count",
			a:           Frame{Columns: []string{"x"}},
			b:           Frame{Columns: []string{"x", "y"}},
			errContains: "column count 1 != 2",
		},
		{
			name:        "different names",
			a:           Frame{Columns: []string{"x", "y"}},
			b:           Frame{Columns: []string{"x", "z"}},
			errContains: `column "y" missing`,
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := UnionByName(tc.a, tc.b)
			if err == nil || !strings.Contains(err.Error(), tc.errContains) {
				t.Fatalf("err = %v, want containing %q", err, tc.errContains)
			}
		})
	}
}

func TestMerge_EmptyIsNoData(t *testing.T) {
	t.Parallel()

	_, ok, err := Merge(nil)
	if err != nil {
		t.Fatalf("Merge(nil) error: %v", err)
	}
	if ok {
		t.Fatalf("Merge(nil) ok = true, want false")
	}
}

func TestMerge_RowCountIsSumAndNoDedup(t *testing.T) {
	t.Parallel()

	cols := []string{"id", "tag"}
	frames := []Frame{
		{Columns: cols, Rows: [][]any{{int64(1), "a"}, {int64(1), "a"}}},
		{Columns: cols, Rows: nil},
		{Columns: []string{"tag", "id"}, Rows: [][]any{{"b", int64(1)}, {"b", int64(2)}, {"b", int64(3)}}},
	}

	merged, ok, err := Merge(frames)
	if err != nil || !ok {
		t.Fatalf("Merge = ok %v err %v", ok, err)
	}
	if got, want := merged.Len(), 5; got != want {
		t.Fatalf("merged.Len() = %d, want %d", got, want)
	}
	if !reflect.DeepEqual(merged.Columns, cols) {
		t.Fatalf("merged.Columns = %v, want %v", merged.Columns, cols)
	}
}

func TestMerge_OrderIndependentFingerprint(t *testing.T) {
	t.Parallel()

	a := Frame{Columns: []string{"id", "tag"}, Rows: [][]any{{int64(1), "a"}, {nil, "a"}}}
	b := Frame{Columns: []string{"tag", "id"}, Rows: [][]any{{"b", int64(2)}}}
	c := Frame{Columns: []string{"id", "tag"}, Rows: [][]any{{int64(3), "c"}, {int64(3), "c"}}}

	perms := [][]Frame{{a, b, c}, {c, b, a}, {b, a, c}, {b, c, a}}

	var first uint64
	for i, p := range perms {
		m, ok, err := Merge(p)
		if err != nil || !ok {
			t.Fatalf("perm %d: Merge ok=%v err=%v", i, ok, err)
		}
		fp := Fingerprint(m)
		if i == 0 {
			first = fp
			continue
		}
		if fp != first {
			t.Fatalf("perm %d fingerprint %x != %x", i, fp, first)
		}
	}
}

func TestFingerprint_Distinguishes(t *testing.T) {
	t.Parallel()

	cols := []string{"k", "v"}
	base := Frame{Columns: cols, Rows: [][]any{{"a", int64(1)}}}

	tests := []struct {
		name  string
		other Frame
	}{
		{"duplicate row", Frame{Columns: cols, Rows: [][]any{{"a", int64(1)}, {"a", int64(1)}}}},
		{"nil vs zero", Frame{Columns: cols, Rows: [][]any{{"a", nil}}}},
		{"int vs float", Frame{Columns: cols, Rows: [][]any{{"a", float64(1)}}}},
		{"renamed column", Frame{Columns: []string{"k", "w"}, Rows: [][]any{{"a", int64(1)}}}},
		{"empty", Frame{Columns: cols}},
	}
	for _, tc := range tests {
		if Fingerprint(tc.other) == Fingerprint(base) {
			t.Errorf("%s: fingerprint collides with base", tc.name)
		}
	}

	if FingerprintHex(Frame{}) != "0000000000000000" {
		t.Errorf("FingerprintHex(empty) = %q", FingerprintHex(Frame{}))
	}
}

package file

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocal_OpenReadsFile(t *testing.T) {
	t.Parallel()

	p := filepath.Join(t.TempDir(), "golang.json")
	if err := os.WriteFile(p, []byte(`{"id":1}`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	src := NewLocal(p)
	if src.Name() != p {
		t.Fatalf("Name() = %q, want %q", src.Name(), p)
	}
	rc, err := src.Open(context.Background())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	b, err := io.ReadAll(rc)
	if err != nil || string(b) != `{"id":1}` {
		t.Fatalf("ReadAll = %q, %v", b, err)
	}
}

func TestLocal_OpenErrors(t *testing.T) {
	t.Parallel()

	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	dir := t.TempDir()

	tests := []struct {
		name     string
		ctx      context.Context
		path     string
		is       error
		contains string
	}{
		{"missing", context.Background(), filepath.Join(dir, "missing.json"), fs.ErrNotExist, "open "},
		{"directory", context.Background(), dir, nil, "is a directory"},
		{"canceled", canceled, filepath.Join(dir, "missing.json"), context.Canceled, ""},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rc, err := NewLocal(tc.path).Open(tc.ctx)
			if err == nil {
				rc.Close()
				t.Fatalf("Open(%s) err = nil", tc.path)
			}
			if tc.is != nil && !errors.Is(err, tc.is) {
				t.Fatalf("err = %v, want errors.Is %v", err, tc.is)
			}
			if !strings.Contains(err.Error(), tc.contains) {
				t.Fatalf("err = %v, want containing %q", err, tc.contains)
			}
		})
	}
}

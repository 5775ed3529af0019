// Package datasource defines where raw snapshot bytes come from.
package datasource

import (
	"context"
	"io"
)

// Source is a named, openable input. Name identifies the input in
// diagnostics (for local files, the path).
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	Name() string
}

// Package storage holds the backend-agnostic sink contracts: the Repository
// interface, a kind-keyed factory that backends register into from init, the
// per-kind DDL dialects, and the batched replace path built on top of them.
package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Repository is the minimal write surface a relational backend provides.
type Repository interface {
	// CopyFrom bulk-inserts rows (aligned to columns) into the configured
	// table and reports how many rows were written.
	CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error)
	// Exec runs a single statement, typically DDL.
	Exec(ctx context.Context, sql string) error
	// Close releases the underlying connection(s).
	Close()
}

// Config selects a backend and the table a Repository writes to.
type Config struct {
	Kind     string // "postgres", "sqlite", "mssql", "mysql"
	DSN      string
	User     string // optional; merged into DSN by backends that support it
	Password string
	Table    string // target table, optionally schema-qualified
	Columns  []string
}

// Factory constructs a Repository for cfg.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

// Register installs (or replaces) the factory for kind.
func Register(kind string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[kind] = f
}

// New opens a Repository using the factory registered for cfg.Kind.
func New(ctx context.Context, cfg Config) (Repository, error) {
	mu.RLock()
	f, ok := factories[cfg.Kind]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unsupported storage.kind=%s", cfg.Kind)
	}
	return f(ctx, cfg)
}

// ListKinds returns the registered kinds in sorted order. The slice is a
// copy.
func ListKinds() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

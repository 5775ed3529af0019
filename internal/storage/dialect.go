// Package storage contains backend-agnostic sink contracts and utilities.
// This file holds the per-kind DDL dialect registry.
package storage

import (
	"fmt"
	"sync"

	"github.com/nahlarmash/GitHub-Repos-Pipeline/internal/ddl"
)

// Dialect renders the DDL a backend needs for a full table replace.
// Backends register theirs next to their factory at init time.
type Dialect struct {
	CreateTable func(ddl.TableDef) (string, error)
	DropTable   func(ddl.TableDef) (string, error)
}

var (
	dialectMu sync.RWMutex
	dialects  = map[string]Dialect{}
)

// RegisterDialect registers (or replaces) the Dialect for kind.
func RegisterDialect(kind string, d Dialect) {
	dialectMu.Lock()
	defer dialectMu.Unlock()
	dialects[kind] = d
}

// DialectFor returns the Dialect registered for kind.
func DialectFor(kind string) (Dialect, error) {
	dialectMu.RLock()
	d, ok := dialects[kind]
	dialectMu.RUnlock()
	if !ok || d.CreateTable == nil || d.DropTable == nil {
		return Dialect{}, fmt.Errorf("no DDL dialect registered for storage.kind=%q", kind)
	}
	return d, nil
}

// Package sqlite wires the SQLite backend into the storage factory. Callers
// reach it through storage.New with Kind "sqlite"; registration happens in
// init.
package sqlite

import (
	"context"

	"github.com/nahlarmash/GitHub-Repos-Pipeline/internal/storage"
	sqliteddl "github.com/nahlarmash/GitHub-Repos-Pipeline/internal/storage/sqlite/ddl"
)

// newRepository is a test hook that points to NewRepository by default.
var newRepository = NewRepository

// wrappedRepo adds a Close method that calls the cleanup function returned
// by NewRepository.
type wrappedRepo struct {
	*Repository
	closeFn func()
}

func (w *wrappedRepo) Close() {
	if w.closeFn != nil {
		w.closeFn()
	}
}

var _ storage.Repository = (*wrappedRepo)(nil)

func init() {
	// SQLite has no users; cfg.User and cfg.Password are ignored.
	storage.Register("sqlite", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		r, closeFn, err := newRepository(ctx, Config{
			DSN:     cfg.DSN,
			Table:   cfg.Table,
			Columns: cfg.Columns,
		})
		if err != nil {
			return nil, err
		}
		return &wrappedRepo{Repository: r, closeFn: closeFn}, nil
	})

	storage.RegisterDialect("sqlite", storage.Dialect{
		CreateTable: sqliteddl.BuildCreateTableSQL,
		DropTable:   sqliteddl.BuildDropTableSQL,
	})
}

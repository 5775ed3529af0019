// Package mysql provides a MySQL-backed storage.Repository.
// This adapter wires the backend and its dialect into the storage factory.
package mysql

import (
	"context"

	"github.com/nahlarmash/GitHub-Repos-Pipeline/internal/storage"
	myddl "github.com/nahlarmash/GitHub-Repos-Pipeline/internal/storage/mysql/ddl"
)

// newRepository is a test hook that points to NewRepository by default.
// Tests may replace this variable to avoid real DB connections.
var newRepository = NewRepository

var _ storage.Repository = (*wrappedRepo)(nil)

func init() {
	storage.Register("mysql", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		r, closeFn, err := newRepository(ctx, Config{
			DSN:      cfg.DSN,
			User:     cfg.User,
			Password: cfg.Password,
			Table:    cfg.Table,
			Columns:  cfg.Columns,
		})
		if err != nil {
			return nil, err
		}
		return &wrappedRepo{Repository: r, closeFn: closeFn}, nil
	})

	storage.RegisterDialect("mysql", storage.Dialect{
		CreateTable: myddl.BuildCreateTableSQL,
		DropTable:   myddl.BuildDropTableSQL,
	})
}

// wrappedRepo adapts *mysql.Repository to storage.Repository and provides Close.
type wrappedRepo struct {
	*Repository
	closeFn func()
}

// Close closes the underlying connection pool.
func (w *wrappedRepo) Close() {
	if w.closeFn != nil {
		w.closeFn()
	}
}

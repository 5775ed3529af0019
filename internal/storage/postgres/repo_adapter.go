// Package postgres provides a Postgres-backed storage.Repository.
// This adapter registers the backend and its DDL dialect with the storage
// factory at init time, so the driver obtains a Repository through
// storage.New(...) by kind alone and never imports this package directly
// (cmd/ghrepos links it in through storage/all).
package postgres

import (
	"context"

	"github.com/nahlarmash/GitHub-Repos-Pipeline/internal/storage"
	pgddl "github.com/nahlarmash/GitHub-Repos-Pipeline/internal/storage/postgres/ddl"
)

// newRepository is a test hook that points to NewRepository by default.
// Tests may replace this variable to avoid real DB connections.
var newRepository = NewRepository

// wrappedRepo implements storage.Repository by delegating to *Repository and
// calling the close function returned by NewRepository.
type wrappedRepo struct {
	*Repository
	closeFn func()
}

var _ storage.Repository = (*wrappedRepo)(nil)

func (w *wrappedRepo) Close() {
	if w.closeFn != nil {
		w.closeFn()
	}
}

func init() {
	storage.Register("postgres", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
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

	storage.RegisterDialect("postgres", storage.Dialect{
		CreateTable: pgddl.BuildCreateTableSQL,
		DropTable:   pgddl.BuildDropTableSQL,
	})
}

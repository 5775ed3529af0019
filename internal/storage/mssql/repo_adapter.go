// Package mssql wires the SQL Server backend into the storage factory.
// Registration of both the Repository constructor and the T-SQL dialect
// happens in init.
package mssql

import (
	"context"

	"github.com/nahlarmash/GitHub-Repos-Pipeline/internal/storage"
	msddl "github.com/nahlarmash/GitHub-Repos-Pipeline/internal/storage/mssql/ddl"
)

// newRepository is a test hook that points to NewRepository by default.
var newRepository = NewRepository

var _ storage.Repository = (*wrappedRepo)(nil)

func init() {
	storage.Register("mssql", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
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

	storage.RegisterDialect("mssql", storage.Dialect{
		CreateTable: msddl.BuildCreateTableSQL,
		DropTable:   msddl.BuildDropTableSQL,
	})
}

// wrappedRepo adapts *mssql.Repository to storage.Repository and provides Close.
type wrappedRepo struct {
	*Repository
	closeFn func()
}

func (w *wrappedRepo) Close() {
	if w.closeFn != nil {
		w.closeFn()
	}
}

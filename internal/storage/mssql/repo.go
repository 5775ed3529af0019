// Package mssql implements a Microsoft SQL Server storage.Repository using
// the go-mssqldb bulk copy API (INSERT BULK via mssql.CopyIn).
package mssql

import (
	"context"
	"database/sql"
	"fmt"

	mssql "github.com/microsoft/go-mssqldb"
	"github.com/microsoft/go-mssqldb/msdsn"
)

// Config is the SQL Server slice of storage.Config.
type Config struct {
	DSN      string // e.g. sqlserver://host:1433?database=github_repos
	User     string // overrides the DSN user when set
	Password string // overrides the DSN password when set
	Table    string // e.g. dbo.programming_lang
	Columns  []string
}

// Repository writes one table through a database/sql pool.
type Repository struct {
	db  *sql.DB
	cfg Config
}

// NewRepository validates the DSN, opens a pool and pings it.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	dsn, err := connConfig(cfg)
	if err != nil {
		return nil, nil, err
	}
	// Credential overrides live only in the parsed config.
	db := sql.OpenDB(mssql.NewConnectorConfig(dsn))
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("mssql: ping: %w", err)
	}
	closeFn := func() { _ = db.Close() }
	return &Repository{db: db, cfg: cfg}, closeFn, nil
}

// connConfig parses cfg.DSN and applies the credential overrides.
func connConfig(cfg Config) (msdsn.Config, error) {
	if cfg.DSN == "" {
		return msdsn.Config{}, fmt.Errorf("mssql: DSN must not be empty")
	}
	dsn, err := msdsn.Parse(cfg.DSN)
	if err != nil {
		return msdsn.Config{}, fmt.Errorf("mssql dsn: %w", err)
	}
	if cfg.User != "" {
		dsn.User = cfg.User
	}
	if cfg.Password != "" {
		dsn.Password = cfg.Password
	}
	return dsn, nil
}

// CopyFrom bulk-inserts rows with INSERT BULK inside a transaction that is
// rolled back on any failure.
func (r *Repository) CopyFrom(ctx context.Context, columns []string, rows [][]any) (n int64, err error) {
	if len(rows) == 0 {
		return 0, nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("mssql: begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if n, err = bulkCopy(ctx, tx, r.cfg.Table, columns, rows); err != nil {
		return 0, err
	}
	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("mssql: commit: %w", err)
	}
	return n, nil
}

// bulkCopy queues every row on a CopyIn statement. The final argument-less
// Exec sends the batch and reports the row count.
func bulkCopy(ctx context.Context, tx *sql.Tx, table string, columns []string, rows [][]any) (int64, error) {
	stmt, err := tx.PrepareContext(ctx, mssql.CopyIn(table, mssql.BulkOptions{}, columns...))
	if err != nil {
		return 0, fmt.Errorf("mssql: prepare bulk %s: %w", table, err)
	}
	defer stmt.Close()

	// Each Exec with arguments only buffers a row client-side.
	for i, row := range rows {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return 0, fmt.Errorf("mssql: bulk row %d: %w", i, err)
		}
	}
	res, err := stmt.ExecContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("mssql: bulk finalize %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("mssql: rows affected: %w", err)
	}
	return n, nil
}

// Exec runs one statement, typically DDL.
func (r *Repository) Exec(ctx context.Context, sqlText string) error {
	if _, err := r.db.ExecContext(ctx, sqlText); err != nil {
		return fmt.Errorf("mssql: exec: %w", err)
	}
	return nil
}

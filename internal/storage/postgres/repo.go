// Package postgres implements a Postgres storage.Repository using pgx v5.
// Batches are written with the COPY protocol through a pgxpool.Pool.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Config is the Postgres slice of storage.Config.
type Config struct {
	DSN      string // URL or key=value connection string
	User     string // overrides the DSN user when set
	Password string // overrides the DSN password when set
	Table    string // target table, e.g. "public.programming_lang"
	Columns  []string
}

// Repository writes one table through a pgx pool.
type Repository struct {
	pool *pgxpool.Pool
	cfg  Config
}

// NewRepository builds a pool, checks connectivity, and returns the
// Repository with a close function.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	pcfg, err := poolConfig(cfg)
	if err != nil {
		return nil, nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, nil, fmt.Errorf("postgres: pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("postgres: ping: %w", err)
	}
	return &Repository{pool: pool, cfg: cfg}, pool.Close, nil
}

// poolConfig parses cfg.DSN and applies the credential overrides. Keeping
// credentials out of the DSN lets them come from separate env vars.
func poolConfig(cfg Config) (*pgxpool.Config, error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, fmt.Errorf("postgres: DSN must not be empty")
	}
	pcfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres dsn: %w", err)
	}
	if cfg.User != "" {
		pcfg.ConnConfig.User = cfg.User
	}
	if cfg.Password != "" {
		pcfg.ConnConfig.Password = cfg.Password
	}
	return pcfg, nil
}

// CopyFrom streams rows into the configured table with COPY.
func (r *Repository) CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	n, err := r.pool.CopyFrom(ctx, splitFQN(r.cfg.Table), columns, pgx.CopyFromRows(rows))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Detail != "" {
			return n, fmt.Errorf("postgres: copy into %s: %s (%s): %w", r.cfg.Table, pgErr.Detail, pgErr.SQLState(), err)
		}
		return n, fmt.Errorf("postgres: copy into %s: %w", r.cfg.Table, err)
	}
	return n, nil
}

func (r *Repository) Exec(ctx context.Context, sql string) error {
	if _, err := r.pool.Exec(ctx, sql); err != nil {
		return fmt.Errorf("postgres: exec: %w", err)
	}
	return nil
}

// splitFQN turns "public.programming_lang" into its pgx.Identifier parts,
// dropping empty segments.
func splitFQN(fqn string) pgx.Identifier {
	return pgx.Identifier(strings.FieldsFunc(fqn, func(r rune) bool { return r == '.' }))
}

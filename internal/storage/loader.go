// Package storage contains backend-agnostic sink contracts and utilities.
// This file implements the batched insert loop: a slice of rows is cut into
// batches and each batch goes to a backend-provided CopyFn (Postgres COPY,
// SQL Server bulk copy, multi-row INSERT for MySQL and SQLite).
//
// Logging: a progress line follows every batch that leaves rows pending,
// and a failing batch is logged with its index before the error returns.
package storage

import (
	"context"
	"fmt"
	"log"
	"time"
)

// CopyFn is a backend's bulk insert, normally Repository.CopyFrom. Backends
// implement it with their fastest primitive (Postgres COPY, SQL Server bulk
// copy, multi-row INSERT).
type CopyFn func(ctx context.Context, columns []string, rows [][]any) (int64, error)

// InsertBatches hands rows to copyFn in consecutive slices of at most
// batchSize rows and returns the total copyFn reported. It stops at the
// first error, or before the next batch once ctx is done.
func InsertBatches(
	ctx context.Context,
	columns []string,
	rows [][]any,
	batchSize int,
	copyFn CopyFn,
) (int64, error) {
	if batchSize <= 0 {
		return 0, fmt.Errorf("storage: batchSize must be > 0")
	}
	if copyFn == nil {
		return 0, fmt.Errorf("storage: copyFn must not be nil")
	}

	var total int64
	start := time.Now()
	for batch := 1; len(rows) > 0; batch++ {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		size := min(batchSize, len(rows))

		n, err := copyFn(ctx, columns, rows[:size])
		total += n
		if err != nil {
			log.Printf("storage: batch=%d failed inserted=%d total=%d err=%v", batch, n, total, err)
			return total, err
		}
		rows = rows[size:]

		if len(rows) > 0 {
			log.Printf("storage: batch=%d inserted=%d total=%d remaining=%d elapsed=%s",
				batch, n, total, len(rows), time.Since(start).Truncate(time.Millisecond))
		}
	}
	return total, nil
}

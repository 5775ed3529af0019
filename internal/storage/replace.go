// Package storage contains backend-agnostic sink contracts and utilities.
// This file implements the overwrite path used for every sink table.
package storage

import (
	"context"
	"fmt"
	"log"

	"github.com/nahlarmash/GitHub-Repos-Pipeline/internal/ddl"
)

// ReplaceTable overwrites def.FQN with rows: the table is dropped if it
// exists, recreated from def, then filled in batches of batchSize.
//
// The three steps are not atomic. A failure after the drop leaves the table
// missing or partially filled; the next successful run replaces it again.
func ReplaceTable(
	ctx context.Context,
	kind string,
	repo Repository,
	def ddl.TableDef,
	rows [][]any,
	batchSize int,
) (int64, error) {
	if batchSize <= 0 {
		return 0, fmt.Errorf("storage: batchSize must be > 0")
	}
	d, err := DialectFor(kind)
	if err != nil {
		return 0, err
	}

	drop, err := d.DropTable(def)
	if err != nil {
		return 0, fmt.Errorf("render drop: %w", err)
	}
	create, err := d.CreateTable(def)
	if err != nil {
		return 0, fmt.Errorf("render create: %w", err)
	}

	if err := repo.Exec(ctx, drop); err != nil {
		return 0, fmt.Errorf("drop table: %w", err)
	}
	if err := repo.Exec(ctx, create); err != nil {
		return 0, fmt.Errorf("create table: %w", err)
	}
	if len(rows) == 0 {
		log.Printf("storage: table=%s replaced rows=0", def.FQN)
		return 0, nil
	}

	n, err := InsertBatches(ctx, def.ColumnNames(), rows, batchSize, repo.CopyFrom)
	if err != nil {
		return n, fmt.Errorf("insert rows: %w", err)
	}
	log.Printf("storage: table=%s replaced rows=%d", def.FQN, n)
	return n, nil
}

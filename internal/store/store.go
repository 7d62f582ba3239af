// Package store persists inventory, sales, upload history, and settings
// in PostgreSQL via pgx.
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store wraps a pgx pool with the queries the service layer needs.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store on an existing pool. The pool's lifecycle belongs to
// the caller.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Migrate creates the tables if they do not exist. Idempotent; run at
// startup.
func (s *Store) Migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS inventory (
			sku          TEXT PRIMARY KEY,
			asin         TEXT NOT NULL DEFAULT '',
			product_name TEXT NOT NULL,
			quantity     INTEGER NOT NULL,
			cost         NUMERIC(14,4) NOT NULL,
			price        NUMERIC(14,4) NOT NULL,
			status       TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS sales (
			id            BIGSERIAL PRIMARY KEY,
			sku           TEXT NOT NULL,
			product_name  TEXT NOT NULL,
			sale_date     DATE NOT NULL,
			quantity_sold INTEGER NOT NULL,
			revenue       NUMERIC(14,4) NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS sales_sale_date_idx ON sales (sale_date)`,
		`CREATE TABLE IF NOT EXISTS uploads (
			id             UUID PRIMARY KEY,
			filename       TEXT NOT NULL,
			dataset        TEXT NOT NULL,
			upload_date    TIMESTAMPTZ NOT NULL,
			rows_processed INTEGER NOT NULL,
			status         TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			id                  BOOLEAN PRIMARY KEY DEFAULT TRUE CHECK (id),
			low_stock_threshold INTEGER NOT NULL,
			currency            TEXT NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

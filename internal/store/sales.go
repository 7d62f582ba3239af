package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/sellerpulse/sellerpulse/internal/model"
)

// InsertSales appends a batch of sale records in one transaction.
func (s *Store) InsertSales(ctx context.Context, records []model.SaleRecord) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, r := range records {
		batch.Queue(
			`INSERT INTO sales (sku, product_name, sale_date, quantity_sold, revenue)
			 VALUES ($1, $2, $3, $4, $5)`,
			r.SKU, r.ProductName, r.Date.Time(), r.QuantitySold, r.Revenue.String(),
		)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert sales: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// ListSales returns every recorded sale in chronological order, ties broken
// by insertion order.
func (s *Store) ListSales(ctx context.Context) ([]model.SaleRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT sku, product_name, sale_date, quantity_sold, revenue::TEXT
		 FROM sales ORDER BY sale_date, id`)
	if err != nil {
		return nil, fmt.Errorf("query sales: %w", err)
	}
	defer rows.Close()

	records := []model.SaleRecord{}
	for rows.Next() {
		var (
			r       model.SaleRecord
			date    time.Time
			revenue string
		)
		if err := rows.Scan(&r.SKU, &r.ProductName, &date, &r.QuantitySold, &revenue); err != nil {
			return nil, fmt.Errorf("scan sales row: %w", err)
		}
		r.Date = model.DateOf(date)
		if r.Revenue, err = decimal.NewFromString(revenue); err != nil {
			return nil, fmt.Errorf("parse revenue for %s: %w", r.SKU, err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

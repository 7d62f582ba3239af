package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/sellerpulse/sellerpulse/internal/model"
)

// ReplaceInventory swaps the entire inventory snapshot for the given
// records in one transaction. Either the whole batch lands or nothing
// changes.
func (s *Store) ReplaceInventory(ctx context.Context, records []model.InventoryRecord) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM inventory`); err != nil {
		return fmt.Errorf("clear inventory: %w", err)
	}

	batch := &pgx.Batch{}
	for _, r := range records {
		batch.Queue(
			`INSERT INTO inventory (sku, asin, product_name, quantity, cost, price, status)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 ON CONFLICT (sku) DO UPDATE SET
			   asin = EXCLUDED.asin,
			   product_name = EXCLUDED.product_name,
			   quantity = EXCLUDED.quantity,
			   cost = EXCLUDED.cost,
			   price = EXCLUDED.price,
			   status = EXCLUDED.status`,
			r.SKU, r.ASIN, r.ProductName, r.Quantity, r.Cost.String(), r.Price.String(), string(r.Status),
		)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert inventory: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// ListInventory returns the current snapshot ordered by SKU.
func (s *Store) ListInventory(ctx context.Context) ([]model.InventoryRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT sku, asin, product_name, quantity, cost::TEXT, price::TEXT, status
		 FROM inventory ORDER BY sku`)
	if err != nil {
		return nil, fmt.Errorf("query inventory: %w", err)
	}
	defer rows.Close()

	records := []model.InventoryRecord{}
	for rows.Next() {
		var (
			r           model.InventoryRecord
			cost, price string
			status      string
		)
		if err := rows.Scan(&r.SKU, &r.ASIN, &r.ProductName, &r.Quantity, &cost, &price, &status); err != nil {
			return nil, fmt.Errorf("scan inventory row: %w", err)
		}
		if r.Cost, err = decimal.NewFromString(cost); err != nil {
			return nil, fmt.Errorf("parse cost for %s: %w", r.SKU, err)
		}
		if r.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("parse price for %s: %w", r.SKU, err)
		}
		r.Status = model.StockStatus(status)
		records = append(records, r)
	}
	return records, rows.Err()
}

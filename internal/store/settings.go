package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sellerpulse/sellerpulse/internal/model"
)

// GetSettings returns the saved settings, or the defaults when the seller
// has never saved any.
func (s *Store) GetSettings(ctx context.Context) (model.Settings, error) {
	var out model.Settings
	err := s.pool.QueryRow(ctx,
		`SELECT low_stock_threshold, currency FROM settings WHERE id`).
		Scan(&out.LowStockThreshold, &out.Currency)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.DefaultSettings(), nil
	}
	if err != nil {
		return model.Settings{}, fmt.Errorf("query settings: %w", err)
	}
	return out, nil
}

// SaveSettings upserts the single settings row.
func (s *Store) SaveSettings(ctx context.Context, settings model.Settings) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO settings (id, low_stock_threshold, currency)
		 VALUES (TRUE, $1, $2)
		 ON CONFLICT (id) DO UPDATE SET
		   low_stock_threshold = EXCLUDED.low_stock_threshold,
		   currency = EXCLUDED.currency`,
		settings.LowStockThreshold, settings.Currency,
	)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

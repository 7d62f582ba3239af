package store

import (
	"context"
	"fmt"

	"github.com/sellerpulse/sellerpulse/internal/model"
)

// RecordUpload appends one entry to the upload history. Failed uploads are
// recorded too; history is the audit trail, not just the success log.
func (s *Store) RecordUpload(ctx context.Context, rec model.UploadRecord) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO uploads (id, filename, dataset, upload_date, rows_processed, status)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		rec.ID, rec.Filename, rec.Dataset, rec.UploadDate, rec.RowsProcessed, rec.Status,
	)
	if err != nil {
		return fmt.Errorf("record upload: %w", err)
	}
	return nil
}

// ListUploads returns the upload history, most recent first.
func (s *Store) ListUploads(ctx context.Context) ([]model.UploadRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, filename, dataset, upload_date, rows_processed, status
		 FROM uploads ORDER BY upload_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("query uploads: %w", err)
	}
	defer rows.Close()

	records := []model.UploadRecord{}
	for rows.Next() {
		var r model.UploadRecord
		if err := rows.Scan(&r.ID, &r.Filename, &r.Dataset, &r.UploadDate, &r.RowsProcessed, &r.Status); err != nil {
			return nil, fmt.Errorf("scan upload row: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

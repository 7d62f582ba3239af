package model

import (
	"time"

	"github.com/google/uuid"
)

// Upload outcomes recorded in history.
const (
	UploadStatusSuccess = "success"
	UploadStatusFailed  = "failed"
)

// UploadRecord is one entry in the upload history.
type UploadRecord struct {
	ID            uuid.UUID `json:"id"`
	Filename      string    `json:"filename"`
	Dataset       string    `json:"dataset"`
	UploadDate    time.Time `json:"upload_date"`
	RowsProcessed int       `json:"rows_processed"`
	Status        string    `json:"status"`
}

// Settings holds the tunables a seller can change at runtime.
type Settings struct {
	LowStockThreshold int    `json:"low_stock_threshold"`
	Currency          string `json:"currency"`
}

// DefaultSettings are used until the seller saves their own.
func DefaultSettings() Settings {
	return Settings{
		LowStockThreshold: DefaultLowStockThreshold,
		Currency:          "USD",
	}
}

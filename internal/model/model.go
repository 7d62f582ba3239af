// Package model defines the canonical record types produced by the ingestion
// pipeline and consumed by persistence and the insights engine.
package model

import (
	"github.com/shopspring/decimal"
)

// StockStatus classifies an inventory record by quantity on hand.
type StockStatus string

const (
	StatusOK  StockStatus = "OK"
	StatusLow StockStatus = "Low"
	StatusOut StockStatus = "Out"
)

// DefaultLowStockThreshold is used when no configured threshold is available.
const DefaultLowStockThreshold = 10

// StatusFor derives the stock status from quantity and the low-stock
// threshold. This is the only place status is computed; every other
// component reads the stored value.
func StatusFor(quantity, threshold int) StockStatus {
	switch {
	case quantity == 0:
		return StatusOut
	case quantity <= threshold:
		return StatusLow
	default:
		return StatusOK
	}
}

// InventoryRecord is a normalized inventory row. Status is derived, never
// taken from the source file.
type InventoryRecord struct {
	SKU         string          `json:"sku"`
	ASIN        string          `json:"asin"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Cost        decimal.Decimal `json:"cost"`
	Price       decimal.Decimal `json:"price"`
	Status      StockStatus     `json:"status"`
}

// SaleRecord is a normalized sales row. SKU references InventoryRecord.SKU
// by convention only; a sale for an unknown SKU is accepted.
type SaleRecord struct {
	SKU          string          `json:"sku"`
	ProductName  string          `json:"product_name"`
	Date         Date            `json:"date"`
	QuantitySold int             `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

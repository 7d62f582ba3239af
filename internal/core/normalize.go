package core

import (
	"github.com/shopspring/decimal"

	"github.com/sellerpulse/sellerpulse/internal/model"
)

// NormalizeInventory converts validated, schema-mapped rows into inventory
// records. Status is derived here, once, from the configured threshold;
// downstream consumers read the stored status and never re-derive it.
//
// Rows must have passed Validate first. A conversion failure after
// validation is reported as an internal error.
func NormalizeInventory(rows []map[string]string, threshold int) ([]model.InventoryRecord, error) {
	records := make([]model.InventoryRecord, 0, len(rows))

	for i, row := range rows {
		quantity, err := intCell(row, "quantity", i+1)
		if err != nil {
			return nil, err
		}
		cost, err := decimalCell(row, "cost", i+1)
		if err != nil {
			return nil, err
		}
		price, err := decimalCell(row, "price", i+1)
		if err != nil {
			return nil, err
		}

		records = append(records, model.InventoryRecord{
			SKU:         CleanCell(row["sku"]),
			ASIN:        CleanCell(row["asin"]),
			ProductName: CleanCell(row["productName"]),
			Quantity:    quantity,
			Cost:        cost,
			Price:       price,
			Status:      model.StatusFor(quantity, threshold),
		})
	}

	return records, nil
}

// NormalizeSales converts validated, schema-mapped rows into sale records.
// A missing sale date defaults to the processing date.
func NormalizeSales(rows []map[string]string, now model.Date) ([]model.SaleRecord, error) {
	records := make([]model.SaleRecord, 0, len(rows))

	for i, row := range rows {
		var date model.Date
		if raw := CleanCell(row["date"]); raw != "" {
			d, ok := ParseDate(raw)
			if !ok {
				return nil, &coercionError{rowIndex: i + 1, field: "date", value: raw}
			}
			date = d
		}
		if date.IsZero() {
			date = now
		}

		quantity, err := intCell(row, "quantitySold", i+1)
		if err != nil {
			return nil, err
		}
		revenue, err := decimalCell(row, "revenue", i+1)
		if err != nil {
			return nil, err
		}

		records = append(records, model.SaleRecord{
			SKU:          CleanCell(row["sku"]),
			ProductName:  CleanCell(row["productName"]),
			Date:         date,
			QuantitySold: quantity,
			Revenue:      revenue,
		})
	}

	return records, nil
}

// decimalCell parses an optional numeric cell, defaulting to zero when
// absent or blank.
func decimalCell(row map[string]string, field string, rowIndex int) (decimal.Decimal, error) {
	raw := CleanCell(row[field])
	if raw == "" {
		return decimal.Zero, nil
	}
	d, ok := ParseDecimal(raw)
	if !ok {
		return decimal.Zero, &coercionError{rowIndex: rowIndex, field: field, value: raw}
	}
	return d, nil
}

// intCell parses an optional numeric cell as a whole number, truncating any
// fractional part toward zero.
func intCell(row map[string]string, field string, rowIndex int) (int, error) {
	d, err := decimalCell(row, field, rowIndex)
	if err != nil {
		return 0, err
	}
	return toInt(d), nil
}

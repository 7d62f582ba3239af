package core

import (
	"reflect"
	"testing"

	"github.com/sellerpulse/sellerpulse/internal/schema"
)

func TestValidateInventory(t *testing.T) {
	inv := schema.ByDataset(schema.DatasetInventory)

	goodRow := func() map[string]string {
		return map[string]string{
			"sku":         "A1",
			"productName": "Widget",
			"quantity":    "5",
			"cost":        "2.00",
			"price":       "4.00",
		}
	}

	tests := []struct {
		name string
		rows []map[string]string
		want []ValidationError
	}{
		{
			name: "clean row passes",
			rows: []map[string]string{goodRow()},
			want: nil,
		},
		{
			name: "empty batch passes",
			rows: nil,
			want: nil,
		},
		{
			name: "missing price",
			rows: []map[string]string{func() map[string]string {
				r := goodRow()
				delete(r, "price")
				return r
			}()},
			want: []ValidationError{
				{RowIndex: 1, Field: "price", Message: "Missing price"},
			},
		},
		{
			name: "blank required field",
			rows: []map[string]string{func() map[string]string {
				r := goodRow()
				r["sku"] = "   "
				return r
			}()},
			want: []ValidationError{
				{RowIndex: 1, Field: "sku", Message: "Missing sku"},
			},
		},
		{
			name: "zero quantity is a value not an absence",
			rows: []map[string]string{func() map[string]string {
				r := goodRow()
				r["quantity"] = "0"
				return r
			}()},
			want: nil,
		},
		{
			name: "non-numeric quantity",
			rows: []map[string]string{func() map[string]string {
				r := goodRow()
				r["quantity"] = "lots"
				return r
			}()},
			want: []ValidationError{
				{RowIndex: 1, Field: "quantity", Message: "quantity must be a number"},
			},
		},
		{
			name: "optional asin may be absent",
			rows: []map[string]string{goodRow()},
			want: nil,
		},
		{
			name: "multiple errors in one row are all reported",
			rows: []map[string]string{{
				"sku":      "A1",
				"quantity": "many",
				"cost":     "2.00",
				"price":    "4.00",
			}},
			want: []ValidationError{
				{RowIndex: 1, Field: "productName", Message: "Missing productName"},
				{RowIndex: 1, Field: "quantity", Message: "quantity must be a number"},
			},
		},
		{
			name: "errors carry one-based row index",
			rows: []map[string]string{
				goodRow(),
				func() map[string]string {
					r := goodRow()
					delete(r, "cost")
					return r
				}(),
			},
			want: []ValidationError{
				{RowIndex: 2, Field: "cost", Message: "Missing cost"},
			},
		},
		{
			name: "scientific notation counts as numeric",
			rows: []map[string]string{func() map[string]string {
				r := goodRow()
				r["quantity"] = "1e3"
				return r
			}()},
			want: nil,
		},
		{
			name: "currency formatting still counts as numeric",
			rows: []map[string]string{func() map[string]string {
				r := goodRow()
				r["price"] = "$1,234.56"
				return r
			}()},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(tt.rows, inv)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Validate() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestValidateSales(t *testing.T) {
	sales := schema.ByDataset(schema.DatasetSales)

	tests := []struct {
		name string
		rows []map[string]string
		want []ValidationError
	}{
		{
			name: "clean row passes",
			rows: []map[string]string{{
				"sku":          "A1",
				"productName":  "Widget",
				"date":         "2026-08-01",
				"quantitySold": "3",
				"revenue":      "12.00",
			}},
			want: nil,
		},
		{
			name: "bad date",
			rows: []map[string]string{{
				"sku":          "A1",
				"productName":  "Widget",
				"date":         "someday",
				"quantitySold": "3",
				"revenue":      "12.00",
			}},
			want: []ValidationError{
				{RowIndex: 1, Field: "date", Message: "date must be a valid date"},
			},
		},
		{
			name: "missing date",
			rows: []map[string]string{{
				"sku":          "A1",
				"productName":  "Widget",
				"quantitySold": "3",
				"revenue":      "12.00",
			}},
			want: []ValidationError{
				{RowIndex: 1, Field: "date", Message: "Missing date"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(tt.rows, sales)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Validate() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

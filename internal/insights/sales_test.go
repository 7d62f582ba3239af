package insights

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/sellerpulse/sellerpulse/internal/model"
)

func sale(sku string, date model.Date, qty int, revenue string) model.SaleRecord {
	r, _ := decimal.NewFromString(revenue)
	return model.SaleRecord{
		SKU:          sku,
		ProductName:  "Item " + sku,
		Date:         date,
		QuantitySold: qty,
		Revenue:      r,
	}
}

func TestSalesWindowFiltersOldRecords(t *testing.T) {
	now := model.NewDate(2026, 8, 30)
	sales := []model.SaleRecord{
		sale("A1", now, 2, "10.00"),
		sale("B2", now.AddDays(-45), 5, "99.00"),
	}

	got := SalesWindow(sales, 30, now)

	if got.SaleCount != 1 {
		t.Fatalf("SaleCount = %d, want 1 (45-day-old record excluded)", got.SaleCount)
	}
	if got.UnitsSold != 2 {
		t.Errorf("UnitsSold = %d, want 2", got.UnitsSold)
	}
	if got.TotalRevenue.String() != "10" {
		t.Errorf("TotalRevenue = %s, want 10", got.TotalRevenue)
	}
}

func TestSalesWindowBoundaryIsInclusive(t *testing.T) {
	now := model.NewDate(2026, 8, 30)
	sales := []model.SaleRecord{
		sale("A1", now.AddDays(-30), 1, "5.00"),
		sale("B2", now.AddDays(-31), 1, "5.00"),
	}

	got := SalesWindow(sales, 30, now)
	if got.SaleCount != 1 {
		t.Errorf("SaleCount = %d, want 1 (exactly 30 days old is in, 31 is out)", got.SaleCount)
	}
}

func TestSalesWindowZeroMeansAll(t *testing.T) {
	now := model.NewDate(2026, 8, 30)
	sales := []model.SaleRecord{
		sale("A1", now.AddDays(-400), 1, "5.00"),
		sale("B2", now, 1, "5.00"),
	}

	got := SalesWindow(sales, 0, now)
	if got.SaleCount != 2 {
		t.Errorf("SaleCount = %d, want 2 (no window)", got.SaleCount)
	}
}

func TestSalesWindowAverageOrderValue(t *testing.T) {
	now := model.NewDate(2026, 8, 30)
	sales := []model.SaleRecord{
		sale("A1", now, 1, "10.00"),
		sale("B2", now, 1, "20.00"),
	}

	got := SalesWindow(sales, 30, now)
	if got.AvgOrderValue.String() != "15" {
		t.Errorf("AvgOrderValue = %s, want 15", got.AvgOrderValue)
	}
}

func TestSalesWindowEmptyGuardsAverage(t *testing.T) {
	got := SalesWindow(nil, 30, model.NewDate(2026, 8, 30))

	if got.SaleCount != 0 || got.UnitsSold != 0 {
		t.Errorf("counts = %d/%d, want zeros", got.SaleCount, got.UnitsSold)
	}
	if !got.AvgOrderValue.IsZero() {
		t.Errorf("AvgOrderValue = %s, want 0 (no division by zero)", got.AvgOrderValue)
	}
	if got.Series == nil || len(got.Series) != 0 {
		t.Error("Series must be an empty slice")
	}
}

func TestSalesWindowSeries(t *testing.T) {
	now := model.NewDate(2026, 8, 30)
	d1 := model.NewDate(2026, 8, 10)
	d2 := model.NewDate(2026, 8, 20)
	sales := []model.SaleRecord{
		sale("A1", d2, 1, "5.00"),
		sale("B2", d1, 2, "3.00"),
		sale("C3", d2, 3, "7.00"), // same day as A1, summed
	}

	got := SalesWindow(sales, 30, now)

	if len(got.Series) != 2 {
		t.Fatalf("series length = %d, want 2 (same-day rows merged)", len(got.Series))
	}
	if got.Series[0].Date != d1 || got.Series[1].Date != d2 {
		t.Errorf("series order = %s,%s; want ascending %s,%s",
			got.Series[0].Date, got.Series[1].Date, d1, d2)
	}
	if got.Series[1].Revenue.String() != "12" {
		t.Errorf("merged revenue = %s, want 12", got.Series[1].Revenue)
	}
	if got.Series[1].Units != 4 {
		t.Errorf("merged units = %d, want 4", got.Series[1].Units)
	}
}

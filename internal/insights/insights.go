// Package insights derives KPIs from stored inventory and sales records.
// Every function here is pure: no I/O, no errors, deterministic output.
// Empty input yields zero values, never panics.
package insights

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/sellerpulse/sellerpulse/internal/model"
)

// StockBreakdown partitions the inventory snapshot by stock status.
type StockBreakdown struct {
	OK  []model.InventoryRecord `json:"ok"`
	Low []model.InventoryRecord `json:"low"`
	Out []model.InventoryRecord `json:"out"`
}

// ClassifyStock groups records by their stored status. The status field on
// each record is authoritative; it is never recomputed here.
func ClassifyStock(records []model.InventoryRecord) StockBreakdown {
	b := StockBreakdown{
		OK:  []model.InventoryRecord{},
		Low: []model.InventoryRecord{},
		Out: []model.InventoryRecord{},
	}
	for _, r := range records {
		switch r.Status {
		case model.StatusOut:
			b.Out = append(b.Out, r)
		case model.StatusLow:
			b.Low = append(b.Low, r)
		default:
			b.OK = append(b.OK, r)
		}
	}
	return b
}

// Totals summarizes the whole inventory snapshot.
type Totals struct {
	SKUCount        int             `json:"sku_count"`
	TotalUnits      int             `json:"total_units"`
	TotalCost       decimal.Decimal `json:"total_cost"`
	TotalValue      decimal.Decimal `json:"total_value"`
	PotentialProfit decimal.Decimal `json:"potential_profit"`
	MarginPct       decimal.Decimal `json:"margin_pct"`
}

// InventoryTotals computes aggregate cost, retail value, and potential
// profit across the snapshot. MarginPct is zero when total value is zero.
func InventoryTotals(records []model.InventoryRecord) Totals {
	t := Totals{
		SKUCount:        len(records),
		TotalCost:       decimal.Zero,
		TotalValue:      decimal.Zero,
		PotentialProfit: decimal.Zero,
		MarginPct:       decimal.Zero,
	}

	for _, r := range records {
		qty := decimal.NewFromInt(int64(r.Quantity))
		t.TotalUnits += r.Quantity
		t.TotalCost = t.TotalCost.Add(r.Cost.Mul(qty))
		t.TotalValue = t.TotalValue.Add(r.Price.Mul(qty))
	}

	t.PotentialProfit = t.TotalValue.Sub(t.TotalCost)
	if !t.TotalValue.IsZero() {
		t.MarginPct = t.PotentialProfit.Div(t.TotalValue).Mul(decimal.NewFromInt(100))
	}
	return t
}

// ItemProfit is the per-SKU profitability view.
type ItemProfit struct {
	SKU         string          `json:"sku"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Cost        decimal.Decimal `json:"cost"`
	Price       decimal.Decimal `json:"price"`
	UnitProfit  decimal.Decimal `json:"unit_profit"`
	TotalProfit decimal.Decimal `json:"total_profit"`
	MarginPct   decimal.Decimal `json:"margin_pct"`
}

// ProfitByItem computes unit and total profit per record. MarginPct is zero
// for records with a zero price.
func ProfitByItem(records []model.InventoryRecord) []ItemProfit {
	out := make([]ItemProfit, 0, len(records))
	for _, r := range records {
		unit := r.Price.Sub(r.Cost)
		p := ItemProfit{
			SKU:         r.SKU,
			ProductName: r.ProductName,
			Quantity:    r.Quantity,
			Cost:        r.Cost,
			Price:       r.Price,
			UnitProfit:  unit,
			TotalProfit: unit.Mul(decimal.NewFromInt(int64(r.Quantity))),
			MarginPct:   decimal.Zero,
		}
		if !r.Price.IsZero() {
			p.MarginPct = unit.Div(r.Price).Mul(decimal.NewFromInt(100))
		}
		out = append(out, p)
	}
	return out
}

// TopByValue returns the n records with the highest quantity*price, ordered
// descending. Ties keep the input order. n <= 0 returns an empty slice.
func TopByValue(records []model.InventoryRecord, n int) []model.InventoryRecord {
	if n <= 0 {
		return []model.InventoryRecord{}
	}
	value := func(r model.InventoryRecord) decimal.Decimal {
		return r.Price.Mul(decimal.NewFromInt(int64(r.Quantity)))
	}
	sorted := make([]model.InventoryRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return value(sorted[i]).GreaterThan(value(sorted[j]))
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// TopByProfit returns the n records with the highest total profit
// (quantity * (price - cost)), ordered descending. Ties keep the input
// order.
func TopByProfit(records []model.InventoryRecord, n int) []model.InventoryRecord {
	if n <= 0 {
		return []model.InventoryRecord{}
	}
	profit := func(r model.InventoryRecord) decimal.Decimal {
		return r.Price.Sub(r.Cost).Mul(decimal.NewFromInt(int64(r.Quantity)))
	}
	sorted := make([]model.InventoryRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return profit(sorted[i]).GreaterThan(profit(sorted[j]))
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// Package report renders stored data as downloadable tables with
// presentation-grade headers.
package report

import (
	"fmt"

	"github.com/sellerpulse/sellerpulse/internal/insights"
	"github.com/sellerpulse/sellerpulse/internal/model"
	"github.com/sellerpulse/sellerpulse/internal/tabular"
)

// Kind identifies a downloadable report.
type Kind string

const (
	KindInventory Kind = "inventory"
	KindSales     Kind = "sales"
	KindSummary   Kind = "summary"
)

// ParseKind validates a report name from a request path.
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindInventory, KindSales, KindSummary:
		return Kind(s), true
	}
	return "", false
}

// Filename returns the download name for a report generated on the given
// date, e.g. "inventory_2026-08-30.csv".
func Filename(kind Kind, format tabular.Format, when model.Date) string {
	return fmt.Sprintf("%s_%s.%s", kind, when, format.Ext())
}

// Build renders the requested report from the stored records. The summary
// report computes its KPIs over the full data set.
func Build(kind Kind, inv []model.InventoryRecord, sales []model.SaleRecord) (*tabular.Table, error) {
	switch kind {
	case KindInventory:
		return buildInventory(inv), nil
	case KindSales:
		return buildSales(sales), nil
	case KindSummary:
		return buildSummary(inv, sales), nil
	}
	return nil, fmt.Errorf("unknown report kind %q", kind)
}

func buildInventory(records []model.InventoryRecord) *tabular.Table {
	t := &tabular.Table{
		Headers: []string{"SKU", "ASIN", "Product Name", "Quantity", "Cost", "Price", "Status"},
	}
	for _, r := range records {
		t.AddRow(map[string]string{
			"SKU":          r.SKU,
			"ASIN":         r.ASIN,
			"Product Name": r.ProductName,
			"Quantity":     fmt.Sprintf("%d", r.Quantity),
			"Cost":         r.Cost.String(),
			"Price":        r.Price.String(),
			"Status":       string(r.Status),
		})
	}
	return t
}

func buildSales(records []model.SaleRecord) *tabular.Table {
	t := &tabular.Table{
		Headers: []string{"Date", "SKU", "Product Name", "Quantity Sold", "Revenue"},
	}
	for _, r := range records {
		t.AddRow(map[string]string{
			"Date":          r.Date.String(),
			"SKU":           r.SKU,
			"Product Name":  r.ProductName,
			"Quantity Sold": fmt.Sprintf("%d", r.QuantitySold),
			"Revenue":       r.Revenue.String(),
		})
	}
	return t
}

func buildSummary(inv []model.InventoryRecord, sales []model.SaleRecord) *tabular.Table {
	totals := insights.InventoryTotals(inv)
	breakdown := insights.ClassifyStock(inv)
	window := insights.SalesWindow(sales, 0, model.Today())

	t := &tabular.Table{Headers: []string{"Metric", "Value"}}
	add := func(metric, value string) {
		t.AddRow(map[string]string{"Metric": metric, "Value": value})
	}

	add("Total SKUs", fmt.Sprintf("%d", totals.SKUCount))
	add("Total Units", fmt.Sprintf("%d", totals.TotalUnits))
	add("Total Cost", totals.TotalCost.String())
	add("Total Value", totals.TotalValue.String())
	add("Potential Profit", totals.PotentialProfit.String())
	add("Margin %", totals.MarginPct.StringFixed(2))
	add("Low Stock Items", fmt.Sprintf("%d", len(breakdown.Low)))
	add("Out of Stock Items", fmt.Sprintf("%d", len(breakdown.Out)))
	add("Total Revenue", window.TotalRevenue.String())

	return t
}

package insights

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/sellerpulse/sellerpulse/internal/model"
)

// SalesSummary aggregates sales over a trailing window.
type SalesSummary struct {
	WindowDays    int             `json:"window_days"`
	SaleCount     int             `json:"sale_count"`
	UnitsSold     int             `json:"units_sold"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	AvgOrderValue decimal.Decimal `json:"avg_order_value"`
	Series        []SeriesPoint   `json:"series"`
}

// SeriesPoint is one day of the revenue series. Rows sharing a date are
// summed into a single point.
type SeriesPoint struct {
	Date    model.Date      `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
	Units   int             `json:"units"`
}

// SalesWindow summarizes the sales dated on or after now minus windowDays.
// windowDays <= 0 means no window: every sale counts. AvgOrderValue is zero
// when no sales match.
func SalesWindow(sales []model.SaleRecord, windowDays int, now model.Date) SalesSummary {
	summary := SalesSummary{
		WindowDays:    windowDays,
		TotalRevenue:  decimal.Zero,
		AvgOrderValue: decimal.Zero,
		Series:        []SeriesPoint{},
	}

	var cutoff model.Date
	if windowDays > 0 {
		cutoff = now.AddDays(-windowDays)
	}

	byDay := map[model.Date]SeriesPoint{}
	for _, s := range sales {
		if windowDays > 0 && s.Date.Before(cutoff) {
			continue
		}
		summary.SaleCount++
		summary.UnitsSold += s.QuantitySold
		summary.TotalRevenue = summary.TotalRevenue.Add(s.Revenue)

		p := byDay[s.Date]
		p.Date = s.Date
		p.Revenue = p.Revenue.Add(s.Revenue)
		p.Units += s.QuantitySold
		byDay[s.Date] = p
	}

	if summary.SaleCount > 0 {
		summary.AvgOrderValue = summary.TotalRevenue.Div(decimal.NewFromInt(int64(summary.SaleCount)))
	}

	days := make([]model.Date, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	for _, day := range days {
		summary.Series = append(summary.Series, byDay[day])
	}

	return summary
}

package core

// convert.go coerces raw spreadsheet cells into canonical Go types.
//
// Seller exports are messy: currency symbols, thousands separators,
// accounting-style negatives, Excel formula prefixes, half a dozen date
// layouts. All of that is absorbed here so the rest of the pipeline only
// ever sees clean values.

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sellerpulse/sellerpulse/internal/model"
)

// numericRegex matches integers and decimals after cleanup, including the
// scientific notation Excel emits for large values (1E+05).
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// dateLayouts are tried in order; ISO first since that is what the original
// exports produce.
var dateLayouts = []string{
	"2006-01-02", "2006/01/02", "2006.01.02",
	"1/2/2006", "01/02/2006", "1-2-2006", "01-02-2006",
	"Jan 2, 2006", "2 Jan 2006",
	"20060102",
	// Two-digit years; time.Parse pivots 00-68 to 20xx and 69-99 to 19xx.
	"1/2/06", "01/02/06",
}

// CleanCell strips common spreadsheet artifacts from a cell value:
// surrounding whitespace, Excel formula prefixes (="..."), stray quotes.
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	s = strings.Trim(s, `"'`)

	return strings.TrimSpace(s)
}

// ParseDecimal converts a raw cell to a decimal. It tolerates currency
// symbols, thousands separators, and accounting negatives "(123.45)".
// The second return is false when the cell is empty or not numeric.
func ParseDecimal(s string) (decimal.Decimal, bool) {
	s = CleanCell(s)
	if s == "" {
		return decimal.Zero, false
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, "€", "") // euro
	s = strings.ReplaceAll(s, "£", "") // pound
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	if negative {
		s = "-" + s
	}

	if !numericRegex.MatchString(s) {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// IsNumeric reports whether a cell would survive ParseDecimal.
func IsNumeric(s string) bool {
	_, ok := ParseDecimal(s)
	return ok
}

// ParseDate converts a raw cell to a calendar date, trying each supported
// layout in turn. The second return is false on empty or unparseable input.
func ParseDate(s string) (model.Date, bool) {
	s = CleanCell(s)
	if s == "" {
		return model.Date{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return model.DateOf(t), true
		}
	}

	return model.Date{}, false
}

// toInt truncates a decimal toward zero. Unit counts with fractional parts
// are coerced by truncation rather than rounding; see DESIGN.md.
func toInt(d decimal.Decimal) int {
	return int(d.IntPart())
}

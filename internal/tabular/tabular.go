// Package tabular decodes uploaded spreadsheet files (CSV, XLSX) into raw
// rows and serializes flat record tables back to the same formats.
//
// The decoder normalizes every cell to a string at this boundary, so the
// mapping/validation/normalization stages never branch on cell type. The
// serializer is the structural inverse: Decode(Serialize(t)) reproduces t.
package tabular

import (
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
)

// Format identifies a supported tabular file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ErrUnsupportedFormat is returned for any file type other than CSV/XLSX.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ErrEmptyFile is returned when a file decodes to zero data rows.
var ErrEmptyFile = errors.New("empty file")

// Table is an ordered set of raw rows keyed by the header text found in the
// source. Headers preserve source order; Rows preserve source row order.
type Table struct {
	Headers []string
	Rows    []map[string]string
}

// AddRow appends a row, registering any header the table has not seen yet.
// Headers the row lacks stay registered; cell lookup treats them as empty.
func (t *Table) AddRow(row map[string]string) {
	seen := make(map[string]bool, len(t.Headers))
	for _, h := range t.Headers {
		seen[h] = true
	}
	for k := range row {
		if !seen[k] {
			t.Headers = append(t.Headers, k)
			seen[k] = true
		}
	}
	t.Rows = append(t.Rows, row)
}

// DetectFormat resolves a file name, extension, or MIME type to a Format.
// Anything other than CSV or XLSX is an ErrUnsupportedFormat.
func DetectFormat(nameOrMIME string) (Format, error) {
	s := strings.ToLower(strings.TrimSpace(nameOrMIME))

	switch s {
	case "csv", ".csv", "text/csv":
		return FormatCSV, nil
	case "xlsx", ".xlsx",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":
		return FormatXLSX, nil
	}

	if mt, _, err := mime.ParseMediaType(s); err == nil {
		switch mt {
		case "text/csv":
			return FormatCSV, nil
		case "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":
			return FormatXLSX, nil
		}
	}

	switch strings.ToLower(filepath.Ext(s)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, nameOrMIME)
}

// Decode parses file bytes into a Table. The first row (CSV) or the first
// row of the first worksheet (XLSX) is the header row; subsequent rows
// become maps keyed by header text verbatim.
func Decode(data []byte, format Format) (*Table, error) {
	switch format {
	case FormatCSV:
		return decodeCSV(data)
	case FormatXLSX:
		return decodeXLSX(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Serialize renders a Table to file bytes in the requested format, columns
// in Headers order.
func Serialize(t *Table, format Format) ([]byte, error) {
	switch format {
	case FormatCSV:
		return encodeCSV(t)
	case FormatXLSX:
		return encodeXLSX(t)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Ext returns the file extension for a format, without the dot.
func (f Format) Ext() string { return string(f) }

// ContentType returns the MIME type to serve for a format.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

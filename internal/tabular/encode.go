package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// exportSheet is the worksheet name used for XLSX downloads.
const exportSheet = "Data"

func encodeCSV(t *Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(t.Headers); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for _, row := range t.Rows {
		rec := make([]string, len(t.Headers))
		for i, h := range t.Headers {
			rec[i] = row[h]
		}
		if err := w.Write(rec); err != nil {
			return nil, fmt.Errorf("write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

func encodeXLSX(t *Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for ri, row := range t.Rows {
		cells := make([]interface{}, len(t.Headers))
		for ci, h := range t.Headers {
			cells[ci] = row[h]
		}
		addr, err := excelize.CoordinatesToCellName(1, ri+2)
		if err != nil {
			return nil, fmt.Errorf("cell address: %w", err)
		}
		if err := f.SetSheetRow(exportSheet, addr, &cells); err != nil {
			return nil, fmt.Errorf("write row %d: %w", ri+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render workbook: %w", err)
	}
	return buf.Bytes(), nil
}

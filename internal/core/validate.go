package core

import (
	"fmt"

	"github.com/sellerpulse/sellerpulse/internal/schema"
)

// ValidationError describes a single bad cell in an uploaded file.
// RowIndex is 1-based over data rows (the header row is not counted).
type ValidationError struct {
	RowIndex int    `json:"rowIndex"`
	Field    string `json:"field"`
	Message  string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("row %d: field %q: %s", e.RowIndex, e.Field, e.Message)
}

// Validate checks every mapped row against the schema and returns all
// problems found. It never stops at the first error; callers get the
// complete picture in one pass. A nil return means the batch is clean.
//
// Rules per field:
//   - required fields must be present and non-empty after cleanup;
//     the literal "0" is a value, not an absence
//   - numeric fields, when present, must parse as numbers
//   - date fields, when present, must parse as calendar dates
func Validate(rows []map[string]string, s *schema.Schema) []ValidationError {
	var errs []ValidationError

	for i, row := range rows {
		rowIndex := i + 1
		for _, f := range s.Fields {
			cleaned := CleanCell(row[f.Name])

			if cleaned == "" {
				if f.Required {
					errs = append(errs, ValidationError{
						RowIndex: rowIndex,
						Field:    f.Name,
						Message:  "Missing " + f.Name,
					})
				}
				continue
			}

			if f.Numeric && !IsNumeric(cleaned) {
				errs = append(errs, ValidationError{
					RowIndex: rowIndex,
					Field:    f.Name,
					Message:  f.Name + " must be a number",
				})
			}

			if f.IsDate {
				if _, ok := ParseDate(cleaned); !ok {
					errs = append(errs, ValidationError{
						RowIndex: rowIndex,
						Field:    f.Name,
						Message:  f.Name + " must be a valid date",
					})
				}
			}
		}
	}

	return errs
}

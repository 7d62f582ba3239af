package core

import (
	"errors"
	"fmt"

	"github.com/sellerpulse/sellerpulse/internal/tabular"
)

// Sentinel errors surfaced by the ingestion pipeline. The HTTP layer maps
// these onto response codes; nothing below the web package knows about
// status codes.
var (
	// ErrUnsupportedFormat re-exports the tabular sentinel so callers can
	// match it without importing tabular directly.
	ErrUnsupportedFormat = tabular.ErrUnsupportedFormat

	// ErrEmptyFile re-exports the tabular sentinel.
	ErrEmptyFile = tabular.ErrEmptyFile

	// ErrUnknownDataset means the request named a dataset the schema
	// registry has never heard of.
	ErrUnknownDataset = errors.New("unknown dataset")

	// ErrUnknownReport means an export was requested for a report kind
	// that does not exist.
	ErrUnknownReport = errors.New("unknown report kind")

	// ErrFileTooLarge means the uploaded payload exceeded the configured
	// size limit before decoding was attempted.
	ErrFileTooLarge = errors.New("file too large")

	// ErrInvalidSettings means a settings update failed validation.
	ErrInvalidSettings = errors.New("invalid settings")
)

// BatchError carries every validation failure found in an upload. When a
// batch fails validation nothing from it is persisted.
type BatchError struct {
	Errors []ValidationError
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("validation failed: %d error(s)", len(e.Errors))
}

// coercionError reports a cell that passed validation but failed final
// conversion. Validation and conversion share the same parsers, so this
// indicates a pipeline bug rather than bad user input.
type coercionError struct {
	rowIndex int
	field    string
	value    string
}

func (e *coercionError) Error() string {
	return fmt.Sprintf("internal: row %d field %q value %q validated but did not convert", e.rowIndex, e.field, e.value)
}

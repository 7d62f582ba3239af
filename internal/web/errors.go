package web

// errors.go maps pipeline errors onto HTTP responses. The core package
// knows nothing about status codes; this is the only place the mapping
// lives.
//
//	validation failures        -> 422 with per-cell details
//	bad format / empty file    -> 400
//	unknown dataset or report  -> 404
//	oversized upload           -> 413
//	anything else              -> 500

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sellerpulse/sellerpulse/internal/core"
	"github.com/sellerpulse/sellerpulse/internal/logging"
)

// errorResponse is the JSON body for every error. Errors is only present
// for validation failures.
type errorResponse struct {
	Success bool                   `json:"success"`
	Error   string                 `json:"error"`
	Errors  []core.ValidationError `json:"errors,omitempty"`
}

// respondError classifies err and writes the matching status and body.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var batchErr *core.BatchError
	switch {
	case errors.As(err, &batchErr):
		writeError(w, r, http.StatusUnprocessableEntity, "validation failed", batchErr.Errors)
	case errors.Is(err, core.ErrUnsupportedFormat), errors.Is(err, core.ErrEmptyFile), errors.Is(err, core.ErrInvalidSettings):
		writeError(w, r, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, core.ErrUnknownDataset), errors.Is(err, core.ErrUnknownReport):
		writeError(w, r, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, core.ErrFileTooLarge):
		writeError(w, r, http.StatusRequestEntityTooLarge, err.Error(), nil)
	default:
		logging.FromContext(r.Context()).Error("request failed",
			"path", r.URL.Path,
			"method", r.Method,
			"error", err,
		)
		writeError(w, r, http.StatusInternalServerError, "internal server error", nil)
	}
}

// writeError writes a JSON error body with the given status.
func writeError(w http.ResponseWriter, r *http.Request, status int, msg string, details []core.ValidationError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(errorResponse{Error: msg, Errors: details}); err != nil {
		logging.FromContext(r.Context()).Error("encode error response", "error", err)
	}
}

// writeJSON writes a success body with the given status.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).Error("encode response", "error", err)
	}
}

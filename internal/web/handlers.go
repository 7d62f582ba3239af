package web

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sellerpulse/sellerpulse/internal/logging"
	"github.com/sellerpulse/sellerpulse/internal/model"
	"github.com/sellerpulse/sellerpulse/internal/report"
	"github.com/sellerpulse/sellerpulse/internal/schema"
	"github.com/sellerpulse/sellerpulse/internal/tabular"
)

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// handleUpload ingests a multipart spreadsheet upload. The target dataset
// comes from the "dataset" query parameter or form field.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		writeError(w, r, http.StatusRequestEntityTooLarge, "file too large or invalid form", nil)
		return
	}

	dataset := r.URL.Query().Get("dataset")
	if dataset == "" {
		dataset = r.FormValue("dataset")
	}
	if dataset == "" {
		writeError(w, r, http.StatusBadRequest, "missing dataset parameter", nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "no file provided", nil)
		return
	}
	defer file.Close()

	log := logging.WithFields(r.Context(), "dataset", dataset, "file", header.Filename)

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "read upload: "+err.Error(), nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.Upload.Timeout)
	defer cancel()

	result, err := s.service.IngestFile(ctx, header.Filename, data, schema.Dataset(dataset))
	if err != nil {
		respondError(w, r, err)
		return
	}

	log.Info("upload accepted", "rows", result.RowCount)
	writeJSON(w, r, http.StatusCreated, result)
}

func (s *Server) handleInventory(w http.ResponseWriter, r *http.Request) {
	records, err := s.service.Inventory(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, records)
}

func (s *Server) handleSales(w http.ResponseWriter, r *http.Request) {
	records, err := s.service.Sales(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, records)
}

func (s *Server) handleUploads(w http.ResponseWriter, r *http.Request) {
	records, err := s.service.Uploads(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, records)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := s.service.BuildDashboard(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, dashboard)
}

func (s *Server) handleProfit(w http.ResponseWriter, r *http.Request) {
	items, err := s.service.Profit(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, items)
}

// handleSalesSummary aggregates sales over a trailing window. "window" is a
// day count; "all" or "0" disables the window.
func (s *Server) handleSalesSummary(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("window")

	if raw == "all" || raw == "0" {
		summary, err := s.service.SalesSummaryAll(r.Context())
		if err != nil {
			respondError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, summary)
		return
	}

	windowDays := 0
	if raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid window %q", raw), nil)
			return
		}
		windowDays = n
	}

	summary, err := s.service.SalesSummary(r.Context(), windowDays)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, summary)
}

// handleExport streams a report download. Format defaults to CSV.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	kind, ok := report.ParseKind(chi.URLParam(r, "report"))
	if !ok {
		writeError(w, r, http.StatusNotFound, "unknown report", nil)
		return
	}

	format := tabular.FormatCSV
	if raw := r.URL.Query().Get("format"); raw != "" {
		f, err := tabular.DetectFormat(raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, fmt.Sprintf("unsupported format %q", raw), nil)
			return
		}
		format = f
	}

	payload, filename, contentType, err := s.service.Export(r.Context(), kind, format)
	if err != nil {
		respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(payload)))
	if _, err := w.Write(payload); err != nil {
		logging.FromContext(r.Context()).Error("write export", "report", kind, "error", err)
	}
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.service.Settings(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, settings)
}

func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var settings model.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid settings body", nil)
		return
	}

	saved, err := s.service.UpdateSettings(r.Context(), settings)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, saved)
}

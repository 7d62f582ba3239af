package web

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sellerpulse/sellerpulse/internal/config"
	"github.com/sellerpulse/sellerpulse/internal/core"
	"github.com/sellerpulse/sellerpulse/internal/metrics"
	"github.com/sellerpulse/sellerpulse/internal/model"
)

// stubStore keeps everything in memory so handler tests run without a
// database.
type stubStore struct {
	inventory []model.InventoryRecord
	sales     []model.SaleRecord
	uploads   []model.UploadRecord
	settings  model.Settings
}

func (s *stubStore) ReplaceInventory(_ context.Context, r []model.InventoryRecord) error {
	s.inventory = r
	return nil
}
func (s *stubStore) ListInventory(_ context.Context) ([]model.InventoryRecord, error) {
	return s.inventory, nil
}
func (s *stubStore) InsertSales(_ context.Context, r []model.SaleRecord) error {
	s.sales = append(s.sales, r...)
	return nil
}
func (s *stubStore) ListSales(_ context.Context) ([]model.SaleRecord, error) { return s.sales, nil }
func (s *stubStore) RecordUpload(_ context.Context, r model.UploadRecord) error {
	s.uploads = append([]model.UploadRecord{r}, s.uploads...)
	return nil
}
func (s *stubStore) ListUploads(_ context.Context) ([]model.UploadRecord, error) {
	return s.uploads, nil
}
func (s *stubStore) GetSettings(_ context.Context) (model.Settings, error) { return s.settings, nil }
func (s *stubStore) SaveSettings(_ context.Context, v model.Settings) error {
	s.settings = v
	return nil
}

func newTestServer(t *testing.T) (*Server, *stubStore) {
	t.Helper()

	st := &stubStore{settings: model.DefaultSettings()}
	m := metrics.New()
	svc := core.NewService(st, m, slog.Default(), core.ServiceOptions{})

	cfg := &config.Config{
		Server: config.ServerConfig{
			Host:           "127.0.0.1",
			Port:           0,
			RequestTimeout: 10 * time.Second,
		},
		Upload: config.UploadConfig{MaxFileSize: 1 << 20, Timeout: 10 * time.Second},
		Rate:   config.RateLimitConfig{Enabled: false},
	}

	return NewServer(svc, m, cfg), st
}

func multipartUpload(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("CreateFormFile() error = %v", err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestUploadEndpoint(t *testing.T) {
	srv, st := newTestServer(t)

	body, contentType := multipartUpload(t, "file", "inventory.csv",
		"sku,product_name,quantity,cost,price\nA1,Widget,5,2.00,4.00\n")

	req := httptest.NewRequest(http.MethodPost, "/api/upload?dataset=inventory", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body = %s", rec.Code, rec.Body.String())
	}

	var result core.IngestResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !result.Success {
		t.Error("Success = false, want true")
	}
	if result.RowCount != 1 {
		t.Errorf("RowCount = %d, want 1", result.RowCount)
	}
	if len(st.inventory) != 1 {
		t.Errorf("stored %d records, want 1", len(st.inventory))
	}
}

func TestUploadEndpointValidationFailure(t *testing.T) {
	srv, st := newTestServer(t)

	body, contentType := multipartUpload(t, "file", "inventory.csv",
		"sku,product_name,quantity,cost,price\nA1,Widget,5,2.00,\n")

	req := httptest.NewRequest(http.MethodPost, "/api/upload?dataset=inventory", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422; body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success bool                   `json:"success"`
		Error   string                 `json:"error"`
		Errors  []core.ValidationError `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Success {
		t.Error("success = true, want false")
	}
	if len(resp.Errors) != 1 {
		t.Fatalf("errors = %+v, want 1 entry", resp.Errors)
	}
	d := resp.Errors[0]
	if d.RowIndex != 1 || d.Field != "price" || d.Message != "Missing price" {
		t.Errorf("detail = %+v", d)
	}

	if len(st.inventory) != 0 {
		t.Errorf("stored %d records, want 0", len(st.inventory))
	}
}

func TestUploadEndpointMissingDataset(t *testing.T) {
	srv, _ := newTestServer(t)

	body, contentType := multipartUpload(t, "file", "inventory.csv", "sku\nA1\n")
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestUploadEndpointUnsupportedFormat(t *testing.T) {
	srv, _ := newTestServer(t)

	body, contentType := multipartUpload(t, "file", "inventory.xls", "x")
	req := httptest.NewRequest(http.MethodPost, "/api/upload?dataset=inventory", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400; body = %s", rec.Code, rec.Body.String())
	}
}

func TestExportEndpoint(t *testing.T) {
	srv, st := newTestServer(t)
	st.inventory = []model.InventoryRecord{
		{SKU: "A1", ProductName: "Widget", Quantity: 5, Status: model.StatusLow},
	}

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/export/inventory", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "inventory_") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if !strings.Contains(rec.Body.String(), "A1") {
		t.Errorf("body missing data: %s", rec.Body.String())
	}
}

func TestExportEndpointUnknownReport(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/export/refunds", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/settings", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET status = %d", rec.Code)
	}
	var got model.Settings
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode settings: %v", err)
	}
	if got.LowStockThreshold != 10 || got.Currency != "USD" {
		t.Errorf("defaults = %+v", got)
	}

	update := bytes.NewBufferString(`{"low_stock_threshold": 25, "currency": "EUR"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/settings", update)
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT status = %d; body = %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/settings", nil))
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode settings: %v", err)
	}
	if got.LowStockThreshold != 25 || got.Currency != "EUR" {
		t.Errorf("after update = %+v", got)
	}
}

func TestSalesSummaryWindowParam(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, path := range []string{
		"/api/sales/summary",
		"/api/sales/summary?window=7",
		"/api/sales/summary?window=all",
	} {
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("%s status = %d, want 200", path, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sales/summary?window=soon", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad window status = %d, want 400", rec.Code)
	}
}

func TestDashboardEndpoint(t *testing.T) {
	srv, st := newTestServer(t)
	st.inventory = []model.InventoryRecord{
		{SKU: "A1", ProductName: "Widget", Quantity: 0, Status: model.StatusOut},
	}

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; body = %s", rec.Code, rec.Body.String())
	}

	var d core.Dashboard
	if err := json.Unmarshal(rec.Body.Bytes(), &d); err != nil {
		t.Fatalf("decode dashboard: %v", err)
	}
	if d.Totals.SKUCount != 1 || len(d.Stock.Out) != 1 {
		t.Errorf("dashboard = %+v", d)
	}
}

func TestSecurityHeaders(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q", got)
	}
}

package core

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sellerpulse/sellerpulse/internal/insights"
	"github.com/sellerpulse/sellerpulse/internal/metrics"
	"github.com/sellerpulse/sellerpulse/internal/model"
	"github.com/sellerpulse/sellerpulse/internal/report"
	"github.com/sellerpulse/sellerpulse/internal/schema"
	"github.com/sellerpulse/sellerpulse/internal/tabular"
)

// Store is the persistence surface the service depends on.
type Store interface {
	ReplaceInventory(ctx context.Context, records []model.InventoryRecord) error
	ListInventory(ctx context.Context) ([]model.InventoryRecord, error)
	InsertSales(ctx context.Context, records []model.SaleRecord) error
	ListSales(ctx context.Context) ([]model.SaleRecord, error)
	RecordUpload(ctx context.Context, rec model.UploadRecord) error
	ListUploads(ctx context.Context) ([]model.UploadRecord, error)
	GetSettings(ctx context.Context) (model.Settings, error)
	SaveSettings(ctx context.Context, settings model.Settings) error
}

// Service implements the business operations behind the HTTP API: file
// ingestion, KPI views, report exports, and settings.
type Service struct {
	store          Store
	metrics        *metrics.Metrics
	logger         *slog.Logger
	maxUploadBytes int64
	topN           int
	defaultWindow  int
}

// ServiceOptions tunes a Service. Zero values fall back to sane defaults.
type ServiceOptions struct {
	MaxUploadBytes int64 // default 10 MiB
	TopN           int   // default 5
	DefaultWindow  int   // trailing days for sales summaries, default 30
}

// NewService wires a Service to its store and instrumentation.
func NewService(store Store, m *metrics.Metrics, logger *slog.Logger, opts ServiceOptions) *Service {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 10 << 20
	}
	if opts.TopN <= 0 {
		opts.TopN = 5
	}
	if opts.DefaultWindow <= 0 {
		opts.DefaultWindow = 30
	}
	return &Service{
		store:          store,
		metrics:        m,
		logger:         logger,
		maxUploadBytes: opts.MaxUploadBytes,
		topN:           opts.TopN,
		defaultWindow:  opts.DefaultWindow,
	}
}

// IngestResult reports a successful upload. Records holds the normalized
// batch as stored, either []model.InventoryRecord or []model.SaleRecord.
type IngestResult struct {
	Success  bool      `json:"success"`
	UploadID uuid.UUID `json:"uploadId"`
	Dataset  string    `json:"dataset"`
	RowCount int       `json:"rowCount"`
	Records  any       `json:"records"`
}

// IngestFile runs the full pipeline for one uploaded file: decode, map
// headers, validate, normalize, persist. The batch is all-or-nothing; any
// validation error rejects the entire file and nothing is stored except the
// history entry recording the failure.
func (s *Service) IngestFile(ctx context.Context, fileName string, data []byte, dataset schema.Dataset) (*IngestResult, error) {
	start := time.Now()
	uploadID := uuid.New()
	log := s.logger.With("upload_id", uploadID, "dataset", string(dataset), "file", fileName)

	defer func() {
		s.metrics.UploadDuration.WithLabelValues(string(dataset)).Observe(time.Since(start).Seconds())
	}()

	if int64(len(data)) > s.maxUploadBytes {
		s.recordFailure(ctx, uploadID, fileName, dataset, 0)
		return nil, fmt.Errorf("%w: %d bytes (limit %d)", ErrFileTooLarge, len(data), s.maxUploadBytes)
	}

	sch := schema.ByDataset(dataset)
	if sch == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDataset, dataset)
	}

	format, err := tabular.DetectFormat(fileName)
	if err != nil {
		s.recordFailure(ctx, uploadID, fileName, dataset, 0)
		return nil, err
	}

	table, err := tabular.Decode(data, format)
	if err != nil {
		s.recordFailure(ctx, uploadID, fileName, dataset, 0)
		return nil, fmt.Errorf("decode %s: %w", format, err)
	}

	mapped := sch.MapRows(table.Rows)

	if errs := Validate(mapped, sch); len(errs) > 0 {
		log.Info("upload rejected", "rows", len(mapped), "errors", len(errs))
		s.metrics.ValidationErrors.WithLabelValues(string(dataset)).Add(float64(len(errs)))
		s.recordFailure(ctx, uploadID, fileName, dataset, len(mapped))
		return nil, &BatchError{Errors: errs}
	}

	var stored any
	switch dataset {
	case schema.DatasetInventory:
		settings, err := s.store.GetSettings(ctx)
		if err != nil {
			return nil, err
		}
		records, err := NormalizeInventory(mapped, settings.LowStockThreshold)
		if err != nil {
			return nil, err
		}
		if err := s.store.ReplaceInventory(ctx, records); err != nil {
			s.recordFailure(ctx, uploadID, fileName, dataset, len(records))
			return nil, err
		}
		stored = records
	case schema.DatasetSales:
		records, err := NormalizeSales(mapped, model.Today())
		if err != nil {
			return nil, err
		}
		if err := s.store.InsertSales(ctx, records); err != nil {
			s.recordFailure(ctx, uploadID, fileName, dataset, len(records))
			return nil, err
		}
		stored = records
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDataset, dataset)
	}

	if err := s.store.RecordUpload(ctx, model.UploadRecord{
		ID:            uploadID,
		Filename:      fileName,
		Dataset:       string(dataset),
		UploadDate:    time.Now().UTC(),
		RowsProcessed: len(mapped),
		Status:        model.UploadStatusSuccess,
	}); err != nil {
		return nil, err
	}

	s.metrics.UploadsTotal.WithLabelValues(string(dataset), "success").Inc()
	s.metrics.UploadRowsTotal.WithLabelValues(string(dataset)).Add(float64(len(mapped)))
	log.Info("upload processed", "rows", len(mapped), "elapsed", time.Since(start))

	return &IngestResult{
		Success:  true,
		UploadID: uploadID,
		Dataset:  string(dataset),
		RowCount: len(mapped),
		Records:  stored,
	}, nil
}

// recordFailure appends a failed entry to the upload history. History
// writes are best-effort on the failure path; the original error is what
// the caller needs to see.
func (s *Service) recordFailure(ctx context.Context, id uuid.UUID, fileName string, dataset schema.Dataset, rows int) {
	s.metrics.UploadsTotal.WithLabelValues(string(dataset), "failed").Inc()
	err := s.store.RecordUpload(ctx, model.UploadRecord{
		ID:            id,
		Filename:      fileName,
		Dataset:       string(dataset),
		UploadDate:    time.Now().UTC(),
		RowsProcessed: rows,
		Status:        model.UploadStatusFailed,
	})
	if err != nil {
		s.logger.Error("record failed upload", "upload_id", id, "error", err)
	}
}

// Inventory returns the stored snapshot.
func (s *Service) Inventory(ctx context.Context) ([]model.InventoryRecord, error) {
	return s.store.ListInventory(ctx)
}

// Sales returns all recorded sales in chronological order.
func (s *Service) Sales(ctx context.Context) ([]model.SaleRecord, error) {
	return s.store.ListSales(ctx)
}

// Uploads returns the upload history, most recent first.
func (s *Service) Uploads(ctx context.Context) ([]model.UploadRecord, error) {
	return s.store.ListUploads(ctx)
}

// Settings returns the saved settings or the defaults.
func (s *Service) Settings(ctx context.Context) (model.Settings, error) {
	return s.store.GetSettings(ctx)
}

// UpdateSettings validates and persists new settings. Changing the low
// stock threshold takes effect on the next inventory upload; stored
// statuses are not rewritten retroactively.
func (s *Service) UpdateSettings(ctx context.Context, settings model.Settings) (model.Settings, error) {
	if settings.LowStockThreshold < 0 {
		return model.Settings{}, fmt.Errorf("%w: low_stock_threshold must not be negative", ErrInvalidSettings)
	}
	if settings.Currency == "" {
		settings.Currency = model.DefaultSettings().Currency
	}
	if err := s.store.SaveSettings(ctx, settings); err != nil {
		return model.Settings{}, err
	}
	return settings, nil
}

// Dashboard is the aggregate KPI view behind the main screen.
type Dashboard struct {
	Totals     insights.Totals         `json:"totals"`
	Stock      insights.StockBreakdown `json:"stock"`
	Sales      insights.SalesSummary   `json:"sales"`
	TopValue   []model.InventoryRecord `json:"top_by_value"`
	TopProfit  []model.InventoryRecord `json:"top_by_profit"`
	LastUpload *model.UploadRecord     `json:"last_upload,omitempty"`
}

// BuildDashboard assembles the KPI view from the stored records.
func (s *Service) BuildDashboard(ctx context.Context) (*Dashboard, error) {
	inv, err := s.store.ListInventory(ctx)
	if err != nil {
		return nil, err
	}
	sales, err := s.store.ListSales(ctx)
	if err != nil {
		return nil, err
	}
	uploads, err := s.store.ListUploads(ctx)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		Totals:    insights.InventoryTotals(inv),
		Stock:     insights.ClassifyStock(inv),
		Sales:     insights.SalesWindow(sales, s.defaultWindow, model.Today()),
		TopValue:  insights.TopByValue(inv, s.topN),
		TopProfit: insights.TopByProfit(inv, s.topN),
	}
	if len(uploads) > 0 {
		d.LastUpload = &uploads[0]
	}
	return d, nil
}

// Profit returns the per-SKU profitability view.
func (s *Service) Profit(ctx context.Context) ([]insights.ItemProfit, error) {
	inv, err := s.store.ListInventory(ctx)
	if err != nil {
		return nil, err
	}
	return insights.ProfitByItem(inv), nil
}

// SalesSummary aggregates sales over a trailing window of windowDays.
// windowDays <= 0 selects the configured default window.
func (s *Service) SalesSummary(ctx context.Context, windowDays int) (insights.SalesSummary, error) {
	if windowDays <= 0 {
		windowDays = s.defaultWindow
	}
	sales, err := s.store.ListSales(ctx)
	if err != nil {
		return insights.SalesSummary{}, err
	}
	return insights.SalesWindow(sales, windowDays, model.Today()), nil
}

// SalesSummaryAll aggregates every recorded sale with no window.
func (s *Service) SalesSummaryAll(ctx context.Context) (insights.SalesSummary, error) {
	sales, err := s.store.ListSales(ctx)
	if err != nil {
		return insights.SalesSummary{}, err
	}
	return insights.SalesWindow(sales, 0, model.Today()), nil
}

// Export renders a report and serializes it in the requested format.
// Returns the payload, the download filename, and the content type.
func (s *Service) Export(ctx context.Context, kind report.Kind, format tabular.Format) ([]byte, string, string, error) {
	inv, err := s.store.ListInventory(ctx)
	if err != nil {
		return nil, "", "", err
	}
	sales, err := s.store.ListSales(ctx)
	if err != nil {
		return nil, "", "", err
	}

	table, err := report.Build(kind, inv, sales)
	if err != nil {
		return nil, "", "", fmt.Errorf("%w: %q", ErrUnknownReport, kind)
	}

	payload, err := tabular.Serialize(table, format)
	if err != nil {
		return nil, "", "", err
	}

	s.metrics.ExportsTotal.WithLabelValues(string(kind), string(format)).Inc()
	return payload, report.Filename(kind, format, model.Today()), format.ContentType(), nil
}

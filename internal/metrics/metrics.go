package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the instrumentation for the ingestion and export paths.
// Everything is registered on a private registry so tests can construct
// isolated instances.
type Metrics struct {
	registry *prometheus.Registry

	UploadsTotal     *prometheus.CounterVec
	UploadRowsTotal  *prometheus.CounterVec
	ValidationErrors *prometheus.CounterVec
	ExportsTotal     *prometheus.CounterVec
	UploadDuration   *prometheus.HistogramVec
}

// New builds a Metrics with its own registry, including the standard Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		UploadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sellerpulse_uploads_total",
			Help: "Upload attempts by dataset and outcome.",
		}, []string{"dataset", "outcome"}),
		UploadRowsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sellerpulse_upload_rows_total",
			Help: "Rows persisted from successful uploads, by dataset.",
		}, []string{"dataset"}),
		ValidationErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sellerpulse_validation_errors_total",
			Help: "Cell-level validation failures, by dataset.",
		}, []string{"dataset"}),
		ExportsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sellerpulse_exports_total",
			Help: "Report exports by kind and format.",
		}, []string{"report", "format"}),
		UploadDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sellerpulse_upload_duration_seconds",
			Help:    "End-to-end upload processing time, by dataset.",
			Buckets: prometheus.DefBuckets,
		}, []string{"dataset"}),
	}

	reg.MustRegister(
		m.UploadsTotal,
		m.UploadRowsTotal,
		m.ValidationErrors,
		m.ExportsTotal,
		m.UploadDuration,
	)

	return m
}

// Handler exposes the registry in Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

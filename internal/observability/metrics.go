// Package observability exposes the Prometheus metrics surface: the HTTP
// request middleware plus the import/export pipeline counters.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects the application's Prometheus metrics.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	importRuns    *prometheus.CounterVec
	importLines   *prometheus.CounterVec
	exportReasons *prometheus.CounterVec
	exportedFiles prometheus.Counter
}

// NewMetrics initializes the registry and the base metrics.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quebras_http_requests_total",
		Help: "HTTP requests by route and status code.",
	}, []string{"route", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quebras_http_request_duration_seconds",
		Help:    "HTTP request duration per route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	importRuns := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quebras_import_runs_total",
		Help: "Catalog import runs by final status.",
	}, []string{"status"})
	importLines := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quebras_import_lines_total",
		Help: "Catalog import lines by outcome.",
	}, []string{"outcome"})
	exportReasons := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quebras_export_reasons_total",
		Help: "Export pipeline reasons by outcome.",
	}, []string{"outcome"})
	exportedFiles := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "quebras_export_files_total",
		Help: "Export files written to disk.",
	})
	registry.MustRegister(requests, duration, importRuns, importLines, exportReasons, exportedFiles)
	return &Metrics{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestsTotal:   requests,
		requestDuration: duration,
		importRuns:      importRuns,
		importLines:     importLines,
		exportReasons:   exportReasons,
		exportedFiles:   exportedFiles,
	}
}

// Handler returns the http.Handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Middleware records request metrics for every HTTP request.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(&recorder, r)
		route := routePattern(r)
		m.requestsTotal.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// ObserveImportRun records the outcome of one catalog import batch.
func (m *Metrics) ObserveImportRun(status string, inserted, updated, rejected int) {
	if m == nil {
		return
	}
	m.importRuns.WithLabelValues(status).Inc()
	m.importLines.WithLabelValues("inserted").Add(float64(inserted))
	m.importLines.WithLabelValues("updated").Add(float64(updated))
	m.importLines.WithLabelValues("rejected").Add(float64(rejected))
}

// ObserveExportRun records per-reason outcomes of one export run.
func (m *Metrics) ObserveExportRun(exported, failed, skipped int) {
	if m == nil {
		return
	}
	m.exportReasons.WithLabelValues("exported").Add(float64(exported))
	m.exportReasons.WithLabelValues("failed").Add(float64(failed))
	m.exportReasons.WithLabelValues("skipped").Add(float64(skipped))
	m.exportedFiles.Add(float64(exported))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func routePattern(r *http.Request) string {
	if routeCtx := chi.RouteContext(r.Context()); routeCtx != nil {
		if pattern := routeCtx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unknown"
}

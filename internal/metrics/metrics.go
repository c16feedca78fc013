// Package metrics exposes the Prometheus instruments of the pauta service:
// HTTP traffic, schedule calculations and OTC submissions.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pautas-radio/internal/core/domain"
)

const namespace = "pautas"

// Metrics holds the collectors registered for the service.
type Metrics struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	calculations    prometheus.Counter
	scheduleRows    prometheus.Histogram
	imports         *prometheus.CounterVec
	transitions     *prometheus.CounterVec
}

// New creates the collectors on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern, method and status code.",
		}, []string{"route", "method", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		calculations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calculations_total",
			Help:      "Schedule recalculations served.",
		}),
		scheduleRows: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "schedule_rows",
			Help:      "Rows per recalculated schedule.",
			Buckets:   []float64{1, 2, 5, 10, 20, 50, 100, 250},
		}),
		imports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "schedule_imports_total",
			Help:      "Spreadsheet imports by outcome.",
		}, []string{"outcome"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "otc_transitions_total",
			Help:      "Orders entering each OTC stage.",
		}, []string{"status"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.requestDuration,
		m.calculations,
		m.scheduleRows,
		m.imports,
		m.transitions,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveCalculation records one recalculation of a schedule with rows rows.
func (m *Metrics) ObserveCalculation(rows int) {
	m.calculations.Inc()
	m.scheduleRows.Observe(float64(rows))
}

// ObserveImport records a spreadsheet import outcome ("ok", "invalid",
// "missing_columns").
func (m *Metrics) ObserveImport(outcome string) {
	m.imports.WithLabelValues(outcome).Inc()
}

// ObserveTransition records an order entering status.
func (m *Metrics) ObserveTransition(status domain.OTCStatus) {
	m.transitions.WithLabelValues(string(status)).Inc()
}

// Middleware counts requests by chi route pattern, so path parameters such
// as folios do not explode the label space.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

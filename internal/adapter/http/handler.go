package httpadapter

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"pautas-radio/internal/core/domain"
	"pautas-radio/internal/core/port"
)

// Observer receives business events worth counting. *metrics.Metrics
// satisfies it.
type Observer interface {
	ObserveCalculation(rows int)
	ObserveImport(outcome string)
	ObserveTransition(status domain.OTCStatus)
}

// Handler contains dependencies and routes. It is an inbound adapter for HTTP.
// It holds the order use case, a logger for structured logging and an
// optional observer for metrics. Routes are registered on a chi.Router.
type Handler struct {
	svc            port.OrderUseCase
	logger         *slog.Logger
	observer       Observer
	metrics        http.Handler
	maxImportBytes int64
	now            func() time.Time
	router         chi.Router
}

// Option customises a Handler.
type Option func(*Handler)

// WithObserver counts calculations, imports and OTC transitions. When mw is
// not nil it is installed as router middleware and metricsHandler is served
// on /metrics.
func WithObserver(o Observer, mw func(http.Handler) http.Handler, metricsHandler http.Handler) Option {
	return func(h *Handler) {
		h.observer = o
		if mw != nil {
			h.router.Use(mw)
		}
		h.metrics = metricsHandler
	}
}

// WithMaxImportBytes limits the size of uploaded workbooks.
func WithMaxImportBytes(n int64) Option {
	return func(h *Handler) {
		if n > 0 {
			h.maxImportBytes = n
		}
	}
}

// WithClock replaces time.Now for import date defaults.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

// NewHandler creates a handler with all routes configured.
func NewHandler(svc port.OrderUseCase, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{
		svc:            svc,
		logger:         logger,
		observer:       noopObserver{},
		maxImportBytes: 10 << 20,
		now:            time.Now,
		router:         chi.NewRouter(),
	}
	h.router.Use(middleware.RequestID, middleware.RealIP, h.logRequests, middleware.Recoverer)
	for _, opt := range opts {
		opt(h)
	}

	r := h.router
	r.Get("/healthz", h.handleHealth)
	if h.metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.metrics)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/catalog", h.handleCatalog)

		r.Route("/schedule", func(r chi.Router) {
			r.Post("/calculate", h.handleCalculate)
			r.Get("/calendar", h.handleCalendar)
			r.Post("/import", h.handleImport)
		})

		r.Route("/pautas", func(r chi.Router) {
			r.Get("/", h.handleListOrders)
			r.Post("/", h.handleCreateOrder)
			r.Get("/metrics", h.handleStatusCounts)

			r.Route("/{folio}", func(r chi.Router) {
				r.Get("/", h.handleGetOrder)
				r.Put("/", h.handleUpdateOrder)
				r.Delete("/", h.handleDeleteOrder)
				r.Post("/duplicate", h.handleDuplicateOrder)
				r.Post("/submit", h.handleSubmitOrder)
				r.Post("/status", h.handleAdvanceStatus)
				r.Post("/materials", h.handleAddMaterial)
				r.Delete("/materials/{id}", h.handleRemoveMaterial)
			})
		})
	})
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

type noopObserver struct{}

func (noopObserver) ObserveCalculation(int)             {}
func (noopObserver) ObserveImport(string)               {}
func (noopObserver) ObserveTransition(domain.OTCStatus) {}

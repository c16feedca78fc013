package httpadapter

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"pautas-radio/internal/core/domain"
	"pautas-radio/internal/core/port"
)

// handleListOrders returns the orders listing. It accepts optional
// `client`, `agency` and `campaign` substring filters, a `from`/`to`
// capture date range (YYYY-MM-DD or DD/MM/YYYY), one or more `status`
// values (repeated or comma separated) and a `limit`.
func (h *Handler) handleListOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := port.OrderFilter{
		Client:   q.Get("client"),
		Agency:   q.Get("agency"),
		Campaign: q.Get("campaign"),
	}
	for _, p := range []struct {
		name string
		dst  **time.Time
	}{{"from", &filter.CapturedFrom}, {"to", &filter.CapturedTo}} {
		if s := q.Get(p.name); s != "" {
			d, err := domain.ParseDate(s)
			if err != nil {
				http.Error(w, "invalid '"+p.name+"' date", http.StatusBadRequest)
				return
			}
			*p.dst = &d.Time
		}
	}
	for _, v := range q["status"] {
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				filter.Statuses = append(filter.Statuses, domain.OTCStatus(strings.ToUpper(s)))
			}
		}
	}
	if s := q.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		filter.Limit = n
	}

	items, err := h.svc.ListOrders(r.Context(), filter)
	if err != nil {
		h.fail(w, r, "list orders", err)
		return
	}
	h.writeJSON(w, http.StatusOK, items)
}

func (h *Handler) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var in port.OrderInput
	if err := decodeJSON(w, r, &in); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	view, err := h.svc.CreateOrder(r.Context(), in)
	if err != nil {
		h.fail(w, r, "create order", err)
		return
	}
	h.observer.ObserveCalculation(len(view.Order.Schedule))
	w.Header().Set("Location", "/api/v1/pautas/"+view.Order.Folio)
	h.writeJSON(w, http.StatusCreated, view)
}

func (h *Handler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.GetOrder(r.Context(), chi.URLParam(r, "folio"))
	if err != nil {
		h.fail(w, r, "get order", err)
		return
	}
	h.writeJSON(w, http.StatusOK, view)
}

func (h *Handler) handleUpdateOrder(w http.ResponseWriter, r *http.Request) {
	var in port.OrderInput
	if err := decodeJSON(w, r, &in); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	view, err := h.svc.UpdateOrder(r.Context(), chi.URLParam(r, "folio"), in)
	if err != nil {
		h.fail(w, r, "update order", err)
		return
	}
	h.observer.ObserveCalculation(len(view.Order.Schedule))
	h.writeJSON(w, http.StatusOK, view)
}

func (h *Handler) handleDeleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteOrder(r.Context(), chi.URLParam(r, "folio")); err != nil {
		h.fail(w, r, "delete order", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleStatusCounts serves the per-stage counters of the sidebar.
func (h *Handler) handleStatusCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.svc.StatusCounts(r.Context())
	if err != nil {
		h.fail(w, r, "status counts", err)
		return
	}
	h.writeJSON(w, http.StatusOK, counts)
}

package httpadapter

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"pautas-radio/internal/core/domain"
	"pautas-radio/internal/core/port"
)

func (h *Handler) handleDuplicateOrder(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.DuplicateOrder(r.Context(), chi.URLParam(r, "folio"))
	if err != nil {
		h.fail(w, r, "duplicate order", err)
		return
	}
	w.Header().Set("Location", "/api/v1/pautas/"+view.Order.Folio)
	h.writeJSON(w, http.StatusCreated, view)
}

// handleSubmitOrder sends a draft to the OTC pipeline.
func (h *Handler) handleSubmitOrder(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.SubmitOrder(r.Context(), chi.URLParam(r, "folio"))
	if err != nil {
		h.fail(w, r, "submit order", err)
		return
	}
	h.observer.ObserveTransition(view.Order.Status)
	h.writeJSON(w, http.StatusOK, view)
}

type statusReq struct {
	Status domain.OTCStatus `json:"status"`
}

// handleAdvanceStatus moves an order to the next OTC stage. The body names
// the target stage so that a stale client cannot skip one.
func (h *Handler) handleAdvanceStatus(w http.ResponseWriter, r *http.Request) {
	var req statusReq
	if err := decodeJSON(w, r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	to := domain.OTCStatus(strings.ToUpper(strings.TrimSpace(string(req.Status))))
	if !to.Valid() {
		http.Error(w, "unknown status", http.StatusBadRequest)
		return
	}
	view, err := h.svc.AdvanceStatus(r.Context(), chi.URLParam(r, "folio"), to)
	if err != nil {
		h.fail(w, r, "advance status", err)
		return
	}
	h.observer.ObserveTransition(view.Order.Status)
	h.writeJSON(w, http.StatusOK, view)
}

func (h *Handler) handleAddMaterial(w http.ResponseWriter, r *http.Request) {
	var in port.MaterialInput
	if err := decodeJSON(w, r, &in); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	m, err := h.svc.AddMaterial(r.Context(), chi.URLParam(r, "folio"), in)
	if err != nil {
		h.fail(w, r, "add material", err)
		return
	}
	h.writeJSON(w, http.StatusCreated, m)
}

func (h *Handler) handleRemoveMaterial(w http.ResponseWriter, r *http.Request) {
	err := h.svc.RemoveMaterial(r.Context(), chi.URLParam(r, "folio"), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "remove material", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

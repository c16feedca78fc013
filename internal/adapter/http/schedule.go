package httpadapter

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"pautas-radio/internal/core/domain"
	"pautas-radio/internal/core/port"
	"pautas-radio/internal/ingest"
)

// handleCalculate recalculates the schedule of the live editor. Malformed
// cells count as zero, so any well-formed JSON body gets an answer.
func (h *Handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var req port.CalculateReq
	if err := decodeJSON(w, r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	resp, err := h.svc.Calculate(req)
	if err != nil {
		h.fail(w, r, "calculate", err)
		return
	}
	h.observer.ObserveCalculation(len(resp.Items))
	h.writeJSON(w, http.StatusOK, resp)
}

// handleCalendar returns the day columns for ?start=&end=.
func (h *Handler) handleCalendar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start, err := domain.ParseDate(q.Get("start"))
	if err != nil {
		http.Error(w, "invalid 'start' date", http.StatusBadRequest)
		return
	}
	end, err := domain.ParseDate(q.Get("end"))
	if err != nil {
		http.Error(w, "invalid 'end' date", http.StatusBadRequest)
		return
	}
	days, err := h.svc.Calendar(start, end)
	if err != nil {
		h.fail(w, r, "calendar", err)
		return
	}
	h.writeJSON(w, http.StatusOK, days)
}

type importResp struct {
	Order    port.OrderInput `json:"order"`
	Calendar []domain.Day    `json:"calendar"`
	Summary  domain.Summary  `json:"summary"`
	Rows     int             `json:"rows"`
	Warnings []string        `json:"warnings"`
}

// handleImport reads an uploaded .xlsx schedule (multipart field "file")
// into a draft that the client reviews before saving. Nothing is stored.
func (h *Handler) handleImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxImportBytes)
	file, fh, err := r.FormFile("file")
	if err != nil {
		h.observer.ObserveImport("invalid")
		http.Error(w, "missing or oversized 'file' upload", http.StatusBadRequest)
		return
	}
	defer file.Close()
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".xlsx") {
		h.observer.ObserveImport("invalid")
		http.Error(w, "only .xlsx workbooks are supported", http.StatusBadRequest)
		return
	}

	imp, err := ingest.ParseXLSX(file, h.now())
	var missing *ingest.MissingColumnsError
	switch {
	case errors.As(err, &missing):
		h.observer.ObserveImport("missing_columns")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		h.observer.ObserveImport("invalid")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	calc, err := h.svc.Calculate(port.CalculateReq{
		StartDate: imp.Order.StartDate,
		EndDate:   imp.Order.EndDate,
		Items:     imp.Order.Schedule,
		Tax:       imp.Order.Tax,
	})
	if err != nil {
		h.observer.ObserveImport("invalid")
		h.fail(w, r, "import", err)
		return
	}
	imp.Order.Schedule = calc.Items
	imp.Order.Tax = domain.TaxConfig{Option: calc.Summary.TaxOption, Currency: calc.Summary.Currency}
	h.observer.ObserveImport("ok")
	h.observer.ObserveCalculation(len(calc.Items))
	h.writeJSON(w, http.StatusOK, importResp{
		Order:    imp.Order,
		Calendar: calc.Calendar,
		Summary:  calc.Summary,
		Rows:     imp.Rows,
		Warnings: imp.Warnings,
	})
}

type catalogResp struct {
	TaxOptions         []domain.TaxOption     `json:"tax_options"`
	DefaultTaxOption   domain.TaxOption       `json:"default_tax_option"`
	DefaultCurrency    domain.Currency        `json:"default_currency"`
	Currencies         []domain.Currency      `json:"currencies"`
	AgreementTypes     []domain.AgreementType `json:"agreement_types"`
	MaterialKinds      []domain.MaterialKind  `json:"material_kinds"`
	MaterialExtensions []string               `json:"material_extensions"`
	OTCStatuses        []domain.OTCStatus     `json:"otc_statuses"`
	RequiredColumns    []string               `json:"required_columns"`
}

// handleCatalog lists the fixed choices offered by the order form.
func (h *Handler) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	def := h.svc.DefaultTax()
	h.writeJSON(w, http.StatusOK, catalogResp{
		TaxOptions:         domain.TaxOptions,
		DefaultTaxOption:   def.Option,
		DefaultCurrency:    def.Currency,
		Currencies:         domain.Currencies,
		AgreementTypes:     domain.AgreementTypes,
		MaterialKinds:      domain.MaterialKinds,
		MaterialExtensions: domain.MaterialExtensions,
		OTCStatuses:        domain.OTCStatuses,
		RequiredColumns:    ingest.RequiredColumns,
	})
}

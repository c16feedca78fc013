package domain

import (
	"fmt"
	"time"
)

// Order is a radio transmission order ("pauta"): the client and campaign
// header, the day-by-day schedule, tax selection, creative materials and
// the free-text instructions attached to it. Financial totals are never
// stored on the order; they are recomputed from Schedule and Tax.
type Order struct {
	ID      int64  `json:"id"`
	Folio   string `json:"folio"`
	F1Folio string `json:"f1_folio"`

	Client         string        `json:"client"`
	BillTo         string        `json:"bill_to"`
	BillingAddress string        `json:"billing_address"`
	Agency         string        `json:"agency"`
	Brand          string        `json:"brand"`
	Advertiser     string        `json:"advertiser"`
	Campaign       string        `json:"campaign"`
	EventName      string        `json:"event_name"`
	OrderNumber    string        `json:"order_number"`
	Executive      string        `json:"executive"`
	SalesPlaza     string        `json:"sales_plaza"`
	AgreementType  AgreementType `json:"agreement_type"`
	AgreementName  string        `json:"agreement_name"`

	IsNewClient         bool `json:"is_new_client"`
	IsAddOn             bool `json:"is_add_on"`
	SignsPromissoryNote bool `json:"signs_promissory_note"`

	StartDate Date `json:"start_date"`
	EndDate   Date `json:"end_date"`

	Schedule  []LineItem `json:"schedule"`
	Tax       TaxConfig  `json:"tax"`
	Materials []Material `json:"materials"`

	MaterialNotes string `json:"material_notes"`
	TalentNotes   string `json:"talent_notes"`
	BillingNotes  string `json:"billing_notes"`

	Status      OTCStatus  `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
}

// FormatFolio renders the sequential folio assigned to an order on save.
func FormatFolio(seq int64) string {
	return fmt.Sprintf("FOLIO-%03d", seq)
}

// AgreementType is the commercial agreement ("convenio") governing how a
// campaign is billed.
type AgreementType string

const (
	AgreementCash              AgreementType = "EFECTIVO"
	AgreementCashNonRevolving  AgreementType = "EFECTIVO NO REVOLVENTE"
	AgreementAdvanceInvoicing  AgreementType = "FACTURACION ANTICIPADA"
	AgreementDirectFA          AgreementType = "FA DIRECTA"
	AgreementExchangeFA        AgreementType = "FA INTERCAMBIO"
	AgreementIndustrialPromo   AgreementType = "PROMOCIÓN INDUSTRIAL"
	AgreementExchange          AgreementType = "INTERCAMBIO"
	AgreementMediaExchange     AgreementType = "INTERCAMBIO DE MEDIOS"
	AgreementPExchange         AgreementType = "PINTERCAMBIO"
	AgreementAdministrativeMov AgreementType = "MOVIMIENTO ADMINISTRATIVO"
)

var AgreementTypes = []AgreementType{
	AgreementCash,
	AgreementCashNonRevolving,
	AgreementAdvanceInvoicing,
	AgreementDirectFA,
	AgreementExchangeFA,
	AgreementIndustrialPromo,
	AgreementExchange,
	AgreementMediaExchange,
	AgreementPExchange,
	AgreementAdministrativeMov,
}

func (a AgreementType) Valid() bool {
	for _, v := range AgreementTypes {
		if v == a {
			return true
		}
	}
	return false
}

// OTCStatus is the internal workflow stage of an order.
type OTCStatus string

const (
	StatusDraft             OTCStatus = "BORRADOR"
	StatusSales             OTCStatus = "VENTAS"
	StatusCommercialContact OTCStatus = "CONTACTO COMERCIAL"
	StatusCapture           OTCStatus = "CAPTURA"
	StatusProcessedF1       OTCStatus = "PROCESADO F1"
)

// OTCStatuses is the pipeline in order; an order only moves forward one
// step at a time.
var OTCStatuses = []OTCStatus{
	StatusDraft,
	StatusSales,
	StatusCommercialContact,
	StatusCapture,
	StatusProcessedF1,
}

func (s OTCStatus) index() int {
	for i, v := range OTCStatuses {
		if v == s {
			return i
		}
	}
	return -1
}

func (s OTCStatus) Valid() bool { return s.index() >= 0 }

// Next returns the stage following s, or false when s is the last stage
// or unknown.
func (s OTCStatus) Next() (OTCStatus, bool) {
	i := s.index()
	if i < 0 || i+1 >= len(OTCStatuses) {
		return "", false
	}
	return OTCStatuses[i+1], true
}

// Editable reports whether an order in this stage may still be changed.
func (s OTCStatus) Editable() bool {
	return s != StatusProcessedF1
}

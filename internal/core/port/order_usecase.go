package port

import (
	"context"
	"time"

	"pautas-radio/internal/core/domain"
)

// OrderUseCase defines the business operations exposed by the pauta
// service. This interface represents the primary port into the application
// domain.
type OrderUseCase interface {
	// Calculate recalculates a schedule for the given campaign range and
	// summarizes it under the tax selection, the configured default filling
	// an empty one. Malformed cells count as zero; only a campaign range
	// longer than the configured maximum is rejected with ErrInvalidInput.
	Calculate(req CalculateReq) (CalculateResp, error)

	// Calendar returns the day columns of an inclusive campaign range. A
	// range longer than the configured maximum is rejected with
	// ErrInvalidInput.
	Calendar(start, end domain.Date) ([]domain.Day, error)

	// DefaultTax returns the tax selection applied when none is given.
	DefaultTax() domain.TaxConfig

	// CreateOrder validates the input, recalculates its schedule and stores
	// it as a draft with a freshly assigned folio.
	CreateOrder(ctx context.Context, in OrderInput) (*OrderView, error)

	// GetOrder returns an order by folio together with its calendar and a
	// freshly computed summary.
	GetOrder(ctx context.Context, folio string) (*OrderView, error)

	// UpdateOrder replaces the editable fields of an order. Orders already
	// processed in F1 are locked.
	UpdateOrder(ctx context.Context, folio string, in OrderInput) (*OrderView, error)

	// DeleteOrder removes an order.
	DeleteOrder(ctx context.Context, folio string) error

	// DuplicateOrder copies an order into a new draft.
	DuplicateOrder(ctx context.Context, folio string) (*OrderView, error)

	// ListOrders returns the orders matching the filter with their totals.
	ListOrders(ctx context.Context, filter OrderFilter) ([]OrderListItem, error)

	// SubmitOrder sends a draft to the OTC pipeline (VENTAS) and publishes
	// an event carrying its summary.
	SubmitOrder(ctx context.Context, folio string) (*OrderView, error)

	// AdvanceStatus moves an order to the given stage, which must be the
	// one right after its current stage.
	AdvanceStatus(ctx context.Context, folio string, to domain.OTCStatus) (*OrderView, error)

	// AddMaterial attaches a creative material to an order.
	AddMaterial(ctx context.Context, folio string, in MaterialInput) (*domain.Material, error)

	// RemoveMaterial detaches a material by id.
	RemoveMaterial(ctx context.Context, folio, materialID string) error

	// StatusCounts returns how many orders sit in each OTC stage.
	StatusCounts(ctx context.Context) (*StatusCounts, error)
}

// CalculateReq is the live editor payload: campaign range, rows and tax
// selection.
type CalculateReq struct {
	StartDate domain.Date       `json:"start_date"`
	EndDate   domain.Date       `json:"end_date"`
	Items     []domain.LineItem `json:"items"`
	Tax       domain.TaxConfig  `json:"tax"`
}

// CalculateResp carries the recalculated rows, the calendar they were
// computed against and the summary.
type CalculateResp struct {
	Calendar []domain.Day      `json:"calendar"`
	Items    []domain.LineItem `json:"items"`
	Summary  domain.Summary    `json:"summary"`
}

// OrderInput holds the user-editable fields of an order.
type OrderInput struct {
	F1Folio        string               `json:"f1_folio"`
	Client         string               `json:"client"`
	BillTo         string               `json:"bill_to"`
	BillingAddress string               `json:"billing_address"`
	Agency         string               `json:"agency"`
	Brand          string               `json:"brand"`
	Advertiser     string               `json:"advertiser"`
	Campaign       string               `json:"campaign"`
	EventName      string               `json:"event_name"`
	OrderNumber    string               `json:"order_number"`
	Executive      string               `json:"executive"`
	SalesPlaza     string               `json:"sales_plaza"`
	AgreementType  domain.AgreementType `json:"agreement_type"`
	AgreementName  string               `json:"agreement_name"`

	IsNewClient         bool `json:"is_new_client"`
	IsAddOn             bool `json:"is_add_on"`
	SignsPromissoryNote bool `json:"signs_promissory_note"`

	StartDate domain.Date       `json:"start_date"`
	EndDate   domain.Date       `json:"end_date"`
	Schedule  []domain.LineItem `json:"schedule"`
	Tax       domain.TaxConfig  `json:"tax"`

	MaterialNotes string `json:"material_notes"`
	TalentNotes   string `json:"talent_notes"`
	BillingNotes  string `json:"billing_notes"`
}

// OrderView is an order as shown to the client: the stored order, its day
// columns and the summary computed at read time.
type OrderView struct {
	Order    domain.Order   `json:"order"`
	Calendar []domain.Day   `json:"calendar"`
	Summary  domain.Summary `json:"summary"`
}

// OrderListItem is one row of the orders listing.
type OrderListItem struct {
	Folio          string               `json:"folio"`
	F1Folio        string               `json:"f1_folio"`
	Client         string               `json:"client"`
	Agency         string               `json:"agency"`
	AgreementType  domain.AgreementType `json:"agreement_type"`
	Campaign       string               `json:"campaign"`
	StartDate      domain.Date          `json:"start_date"`
	EndDate        domain.Date          `json:"end_date"`
	GrandTotal     float64              `json:"grand_total"`
	Currency       domain.Currency      `json:"currency"`
	CampaignStatus string               `json:"campaign_status"`
	Status         domain.OTCStatus     `json:"status"`
	CapturedAt     time.Time            `json:"captured_at"`
	SalesPlaza     string               `json:"sales_plaza"`
	Executive      string               `json:"executive"`
}

// MaterialInput describes a material being attached. DurationSeconds is
// set when the client could measure the file; otherwise a default by file
// type is used.
type MaterialInput struct {
	Name            string              `json:"name"`
	FileName        string              `json:"file_name"`
	Version         string              `json:"version"`
	Kind            domain.MaterialKind `json:"kind"`
	DurationSeconds *float64            `json:"duration_seconds,omitempty"`
}

// StatusCounts summarizes the order book per OTC stage.
type StatusCounts struct {
	Total    int64                      `json:"total"`
	ByStatus map[domain.OTCStatus]int64 `json:"by_status"`
}

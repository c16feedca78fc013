package domain

import "time"

// EventType names an order lifecycle event.
type EventType string

const (
	EventOrderSubmitted     EventType = "pauta.submitted"
	EventOrderStatusChanged EventType = "pauta.status_changed"
)

// OrderEvent is published when an order leaves the sales desk or moves
// through the OTC pipeline. Summary carries the totals computed at the
// moment of the event.
type OrderEvent struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	Folio      string    `json:"folio"`
	Client     string    `json:"client"`
	Campaign   string    `json:"campaign"`
	Executive  string    `json:"executive"`
	Status     OTCStatus `json:"status"`
	Summary    Summary   `json:"summary"`
	Materials  int       `json:"materials"`
	OccurredAt time.Time `json:"occurred_at"`
}

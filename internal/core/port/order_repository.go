package port

import (
	"context"
	"errors"
	"time"

	"pautas-radio/internal/core/domain"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrMaterialNotFound  = errors.New("material not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrOrderLocked       = errors.New("order can no longer be modified")
)

// OrderRepository defines the persistence layer for orders. It is an
// outbound port in hexagonal architecture.
type OrderRepository interface {
	// Create stores a new order and assigns its ID, Folio and timestamps.
	Create(ctx context.Context, order *domain.Order) error
	// Update replaces the stored order with the same folio. It returns
	// ErrOrderNotFound when there is none.
	Update(ctx context.Context, order *domain.Order) error
	// Get returns an order by folio, or nil when it does not exist.
	Get(ctx context.Context, folio string) (*domain.Order, error)
	// List returns orders matching the filter, newest first.
	List(ctx context.Context, filter OrderFilter) ([]domain.Order, error)
	// Delete removes an order by folio. It returns ErrOrderNotFound when
	// there is none.
	Delete(ctx context.Context, folio string) error
	// CountByStatus returns how many orders sit in each OTC stage.
	CountByStatus(ctx context.Context) (map[domain.OTCStatus]int64, error)
}

// OrderCache keeps recently read orders. A miss is (nil, nil).
type OrderCache interface {
	Get(ctx context.Context, folio string) (*domain.Order, error)
	Set(ctx context.Context, order *domain.Order) error
	Delete(ctx context.Context, folio string) error
}

// EventPublisher emits order lifecycle events to downstream systems.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.OrderEvent) error
}

// OrderFilter narrows ListOrders. Text fields match case-insensitive
// substrings; CapturedFrom/CapturedTo bound the creation date (inclusive
// days); an empty Statuses matches every stage.
type OrderFilter struct {
	Client       string
	Agency       string
	Campaign     string
	CapturedFrom *time.Time
	CapturedTo   *time.Time
	Statuses     []domain.OTCStatus
	Limit        int
}

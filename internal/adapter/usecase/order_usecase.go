package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"pautas-radio/internal/core/calc"
	"pautas-radio/internal/core/domain"
	"pautas-radio/internal/core/port"
)

// Campaign states shown in the orders listing.
const (
	CampaignScheduled  = "PROGRAMADA"
	CampaignInProgress = "EN PROCESO"
	CampaignFinished   = "FINALIZADA"
)

// OrderUseCase provides business logic for transmission orders. It
// orchestrates the calculator, the repository, the cache and the event
// publisher to implement port.OrderUseCase.
type OrderUseCase struct {
	repo   port.OrderRepository
	cache  port.OrderCache
	events port.EventPublisher
	logger *slog.Logger

	// maxCampaignDays bounds the length of a campaign range so a typo in a
	// year cannot produce a calendar of thousands of columns.
	maxCampaignDays int
	defaultTax      domain.TaxConfig
	now             func() time.Time
}

// Option customises an OrderUseCase.
type Option func(*OrderUseCase)

// WithMaxCampaignDays sets the longest accepted campaign range.
func WithMaxCampaignDays(n int) Option {
	return func(u *OrderUseCase) {
		if n > 0 {
			u.maxCampaignDays = n
		}
	}
}

// WithDefaultTax sets the tax selection used when an order omits it.
func WithDefaultTax(tax domain.TaxConfig) Option {
	return func(u *OrderUseCase) {
		if tax.Option.Valid() {
			u.defaultTax.Option = tax.Option
		}
		if tax.Currency.Valid() {
			u.defaultTax.Currency = tax.Currency
		}
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(u *OrderUseCase) { u.now = now }
}

// NewOrderUseCase creates a new usecase. A nil cache or publisher is
// replaced by a no-op implementation.
func NewOrderUseCase(repo port.OrderRepository, cache port.OrderCache, events port.EventPublisher, logger *slog.Logger, opts ...Option) *OrderUseCase {
	if cache == nil {
		cache = noopCache{}
	}
	if events == nil {
		events = noopPublisher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	u := &OrderUseCase{
		repo:            repo,
		cache:           cache,
		events:          events,
		logger:          logger,
		maxCampaignDays: 366,
		defaultTax:      domain.TaxConfig{Option: domain.DefaultTaxOption, Currency: domain.DefaultCurrency},
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Calculate recalculates the schedule of the live editor. An empty tax
// selection takes the configured default, as saving would.
func (u *OrderUseCase) Calculate(req port.CalculateReq) (port.CalculateResp, error) {
	days, err := u.Calendar(req.StartDate, req.EndDate)
	if err != nil {
		return port.CalculateResp{}, err
	}
	res := calc.Calculate(req.Items, days, u.withDefaultTax(req.Tax))
	return port.CalculateResp{
		Calendar: days,
		Items:    res.Items,
		Summary:  res.Summary,
	}, nil
}

// Calendar returns the day columns of [start, end]. Missing dates give no
// columns; a range over the campaign limit is refused before anything is
// allocated.
func (u *OrderUseCase) Calendar(start, end domain.Date) ([]domain.Day, error) {
	if start.IsZero() || end.IsZero() {
		return []domain.Day{}, nil
	}
	if n := calc.DaySpan(start.Time, end.Time); n > u.maxCampaignDays {
		return nil, fmt.Errorf("%w: campaign of %d days is longer than %d days", port.ErrInvalidInput, n, u.maxCampaignDays)
	}
	return calc.Calendar(start.Time, end.Time), nil
}

// DefaultTax returns the configured tax selection for new orders.
func (u *OrderUseCase) DefaultTax() domain.TaxConfig {
	return u.defaultTax
}

func (u *OrderUseCase) withDefaultTax(tax domain.TaxConfig) domain.TaxConfig {
	if tax.Option == "" {
		tax.Option = u.defaultTax.Option
	}
	if tax.Currency == "" {
		tax.Currency = u.defaultTax.Currency
	}
	return tax
}

// CreateOrder validates in and stores it as a new draft.
func (u *OrderUseCase) CreateOrder(ctx context.Context, in port.OrderInput) (*port.OrderView, error) {
	in, err := u.normalize(in)
	if err != nil {
		return nil, err
	}
	order := &domain.Order{Status: domain.StatusDraft, Materials: []domain.Material{}}
	u.apply(order, in)

	if err = u.repo.Create(ctx, order); err != nil {
		return nil, err
	}
	u.cacheSet(ctx, order)
	return u.view(*order), nil
}

// GetOrder returns the order with its calendar and summary.
func (u *OrderUseCase) GetOrder(ctx context.Context, folio string) (*port.OrderView, error) {
	order, err := u.load(ctx, folio)
	if err != nil {
		return nil, err
	}
	return u.view(*order), nil
}

// UpdateOrder replaces the editable fields of an order.
func (u *OrderUseCase) UpdateOrder(ctx context.Context, folio string, in port.OrderInput) (*port.OrderView, error) {
	order, err := u.load(ctx, folio)
	if err != nil {
		return nil, err
	}
	if !order.Status.Editable() {
		return nil, port.ErrOrderLocked
	}
	in, err = u.normalize(in)
	if err != nil {
		return nil, err
	}
	u.apply(order, in)
	if err = u.save(ctx, order); err != nil {
		return nil, err
	}
	return u.view(*order), nil
}

// DeleteOrder removes an order and evicts it from the cache.
func (u *OrderUseCase) DeleteOrder(ctx context.Context, folio string) error {
	if err := u.repo.Delete(ctx, folio); err != nil {
		return err
	}
	u.cacheDelete(ctx, folio)
	return nil
}

// DuplicateOrder copies an order into a new draft. Materials get new ids
// and the OTC history is not carried over.
func (u *OrderUseCase) DuplicateOrder(ctx context.Context, folio string) (*port.OrderView, error) {
	src, err := u.load(ctx, folio)
	if err != nil {
		return nil, err
	}
	dup := *src
	dup.ID = 0
	dup.Folio = ""
	dup.F1Folio = ""
	dup.Status = domain.StatusDraft
	dup.SubmittedAt = nil
	dup.Schedule = make([]domain.LineItem, len(src.Schedule))
	for i, row := range src.Schedule {
		dup.Schedule[i] = row.Clone()
	}
	dup.Materials = make([]domain.Material, len(src.Materials))
	for i, m := range src.Materials {
		m.ID = uuid.NewString()
		dup.Materials[i] = m
	}

	if err = u.repo.Create(ctx, &dup); err != nil {
		return nil, err
	}
	u.cacheSet(ctx, &dup)
	return u.view(dup), nil
}

// ListOrders returns the matching orders with their totals recomputed.
func (u *OrderUseCase) ListOrders(ctx context.Context, filter port.OrderFilter) ([]port.OrderListItem, error) {
	for _, s := range filter.Statuses {
		if !s.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", port.ErrInvalidInput, s)
		}
	}
	orders, err := u.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	today := domain.NewDate(u.now())
	items := make([]port.OrderListItem, 0, len(orders))
	for _, o := range orders {
		v := u.view(o)
		items = append(items, port.OrderListItem{
			Folio:          o.Folio,
			F1Folio:        o.F1Folio,
			Client:         o.Client,
			Agency:         o.Agency,
			AgreementType:  o.AgreementType,
			Campaign:       o.Campaign,
			StartDate:      o.StartDate,
			EndDate:        o.EndDate,
			GrandTotal:     v.Summary.GrandTotal,
			Currency:       v.Summary.Currency,
			CampaignStatus: campaignStatus(today, o.StartDate, o.EndDate),
			Status:         o.Status,
			CapturedAt:     o.CreatedAt,
			SalesPlaza:     o.SalesPlaza,
			Executive:      o.Executive,
		})
	}
	return items, nil
}

// SubmitOrder moves a draft to VENTAS and publishes the submission.
func (u *OrderUseCase) SubmitOrder(ctx context.Context, folio string) (*port.OrderView, error) {
	order, err := u.load(ctx, folio)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.StatusDraft {
		return nil, fmt.Errorf("%w: %s is already %s", port.ErrInvalidTransition, folio, order.Status)
	}
	now := u.now().UTC()
	order.Status = domain.StatusSales
	order.SubmittedAt = &now
	if err = u.save(ctx, order); err != nil {
		return nil, err
	}
	view := u.view(*order)
	u.publish(ctx, domain.EventOrderSubmitted, view)
	return view, nil
}

// AdvanceStatus moves a submitted order one stage forward.
func (u *OrderUseCase) AdvanceStatus(ctx context.Context, folio string, to domain.OTCStatus) (*port.OrderView, error) {
	order, err := u.load(ctx, folio)
	if err != nil {
		return nil, err
	}
	if order.Status == domain.StatusDraft {
		return nil, fmt.Errorf("%w: drafts are sent with submit", port.ErrInvalidTransition)
	}
	next, ok := order.Status.Next()
	if !ok || next != to {
		return nil, fmt.Errorf("%w: %s -> %s", port.ErrInvalidTransition, order.Status, to)
	}
	order.Status = next
	if err = u.save(ctx, order); err != nil {
		return nil, err
	}
	view := u.view(*order)
	u.publish(ctx, domain.EventOrderStatusChanged, view)
	return view, nil
}

// AddMaterial validates and attaches a material.
func (u *OrderUseCase) AddMaterial(ctx context.Context, folio string, in port.MaterialInput) (*domain.Material, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.FileName = strings.TrimSpace(in.FileName)
	switch {
	case in.Name == "":
		return nil, fmt.Errorf("%w: material name is required", port.ErrInvalidInput)
	case in.FileName == "":
		return nil, fmt.Errorf("%w: material file is required", port.ErrInvalidInput)
	case !domain.AllowedMaterialFile(in.FileName):
		return nil, fmt.Errorf("%w: unsupported material file %q", port.ErrInvalidInput, in.FileName)
	}
	if in.Kind == "" {
		in.Kind = domain.MaterialSpot
	}
	if !in.Kind.Valid() {
		return nil, fmt.Errorf("%w: unknown material kind %q", port.ErrInvalidInput, in.Kind)
	}

	order, err := u.load(ctx, folio)
	if err != nil {
		return nil, err
	}
	if !order.Status.Editable() {
		return nil, port.ErrOrderLocked
	}

	duration := domain.DefaultDuration(in.FileName)
	if in.DurationSeconds != nil {
		duration = domain.FormatDuration(*in.DurationSeconds)
	}
	m := domain.Material{
		ID:       uuid.NewString(),
		Name:     in.Name,
		FileName: in.FileName,
		Version:  strings.TrimSpace(in.Version),
		Kind:     in.Kind,
		Duration: duration,
	}
	order.Materials = append(order.Materials, m)
	if err = u.save(ctx, order); err != nil {
		return nil, err
	}
	return &m, nil
}

// RemoveMaterial detaches a material from an order.
func (u *OrderUseCase) RemoveMaterial(ctx context.Context, folio, materialID string) error {
	order, err := u.load(ctx, folio)
	if err != nil {
		return err
	}
	if !order.Status.Editable() {
		return port.ErrOrderLocked
	}
	idx := -1
	for i, m := range order.Materials {
		if m.ID == materialID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return port.ErrMaterialNotFound
	}
	order.Materials = append(order.Materials[:idx], order.Materials[idx+1:]...)
	return u.save(ctx, order)
}

// StatusCounts reports the order book per OTC stage. Every stage is
// present, with zero when empty.
func (u *OrderUseCase) StatusCounts(ctx context.Context) (*port.StatusCounts, error) {
	counts, err := u.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	out := &port.StatusCounts{ByStatus: make(map[domain.OTCStatus]int64, len(domain.OTCStatuses))}
	for _, s := range domain.OTCStatuses {
		out.ByStatus[s] = counts[s]
		out.Total += counts[s]
	}
	return out, nil
}

// load reads an order through the cache.
func (u *OrderUseCase) load(ctx context.Context, folio string) (*domain.Order, error) {
	if folio == "" {
		return nil, port.ErrOrderNotFound
	}
	if cached, err := u.cache.Get(ctx, folio); err != nil {
		u.logger.Warn("order cache get", slog.String("folio", folio), slog.Any("error", err))
	} else if cached != nil {
		return cached, nil
	}
	order, err := u.repo.Get(ctx, folio)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, port.ErrOrderNotFound
	}
	u.cacheSet(ctx, order)
	return order, nil
}

// save persists an order and evicts its cached copy.
func (u *OrderUseCase) save(ctx context.Context, order *domain.Order) error {
	if err := u.repo.Update(ctx, order); err != nil {
		return err
	}
	u.cacheDelete(ctx, order.Folio)
	return nil
}

func (u *OrderUseCase) cacheSet(ctx context.Context, order *domain.Order) {
	if err := u.cache.Set(ctx, order); err != nil {
		u.logger.Warn("order cache set", slog.String("folio", order.Folio), slog.Any("error", err))
	}
}

func (u *OrderUseCase) cacheDelete(ctx context.Context, folio string) {
	if err := u.cache.Delete(ctx, folio); err != nil {
		u.logger.Warn("order cache delete", slog.String("folio", folio), slog.Any("error", err))
	}
}

// publish emits an order event. The order is already stored, so a broker
// failure is logged rather than returned.
func (u *OrderUseCase) publish(ctx context.Context, typ domain.EventType, v *port.OrderView) {
	event := domain.OrderEvent{
		ID:         uuid.NewString(),
		Type:       typ,
		Folio:      v.Order.Folio,
		Client:     v.Order.Client,
		Campaign:   v.Order.Campaign,
		Executive:  v.Order.Executive,
		Status:     v.Order.Status,
		Summary:    v.Summary,
		Materials:  len(v.Order.Materials),
		OccurredAt: u.now().UTC(),
	}
	if err := u.events.Publish(ctx, event); err != nil {
		u.logger.Error("publish order event",
			slog.String("folio", event.Folio),
			slog.String("type", string(typ)),
			slog.Any("error", err))
	}
}

// view recalculates the stored schedule against the order's calendar and
// attaches the summary.
func (u *OrderUseCase) view(o domain.Order) *port.OrderView {
	days := []domain.Day{}
	if !o.StartDate.IsZero() && !o.EndDate.IsZero() {
		days = calc.Calendar(o.StartDate.Time, o.EndDate.Time)
	}
	res := calc.Calculate(o.Schedule, days, o.Tax)
	o.Schedule = res.Items
	return &port.OrderView{Order: o, Calendar: days, Summary: res.Summary}
}

// normalize trims and defaults the input and checks it. All problems are
// reported at once.
func (u *OrderUseCase) normalize(in port.OrderInput) (port.OrderInput, error) {
	in.Client = strings.TrimSpace(in.Client)
	in.Executive = strings.TrimSpace(in.Executive)
	in.AgreementType = domain.AgreementType(strings.ToUpper(strings.TrimSpace(string(in.AgreementType))))
	if in.AgreementType == "" {
		in.AgreementType = domain.AgreementCash
	}
	in.Tax = u.withDefaultTax(in.Tax)

	var problems []string
	if in.Client == "" {
		problems = append(problems, "client is required")
	}
	if in.Executive == "" {
		problems = append(problems, "executive is required")
	}
	if !in.AgreementType.Valid() {
		problems = append(problems, fmt.Sprintf("unknown agreement type %q", in.AgreementType))
	}
	if !in.Tax.Option.Valid() {
		problems = append(problems, fmt.Sprintf("unknown tax option %q", in.Tax.Option))
	}
	if !in.Tax.Currency.Valid() {
		problems = append(problems, fmt.Sprintf("unknown currency %q", in.Tax.Currency))
	}
	switch {
	case in.StartDate.IsZero() || in.EndDate.IsZero():
		problems = append(problems, "campaign start and end dates are required")
	case in.EndDate.Before(in.StartDate.Time):
		problems = append(problems, "campaign end date precedes start date")
	case calc.DaySpan(in.StartDate.Time, in.EndDate.Time) > u.maxCampaignDays:
		problems = append(problems, fmt.Sprintf("campaign longer than %d days", u.maxCampaignDays))
	}
	if len(problems) > 0 {
		return in, fmt.Errorf("%w: %s", port.ErrInvalidInput, strings.Join(problems, "; "))
	}

	if len(in.Schedule) == 0 {
		in.Schedule = []domain.LineItem{domain.ExampleLineItem()}
	}
	return in, nil
}

// apply copies the editable fields of in onto o and recalculates the
// schedule so the stored derived fields are never stale.
func (u *OrderUseCase) apply(o *domain.Order, in port.OrderInput) {
	o.F1Folio = strings.TrimSpace(in.F1Folio)
	o.Client = in.Client
	o.BillTo = in.BillTo
	o.BillingAddress = in.BillingAddress
	o.Agency = in.Agency
	o.Brand = in.Brand
	o.Advertiser = in.Advertiser
	o.Campaign = in.Campaign
	o.EventName = in.EventName
	o.OrderNumber = in.OrderNumber
	o.Executive = in.Executive
	o.SalesPlaza = in.SalesPlaza
	o.AgreementType = in.AgreementType
	o.AgreementName = in.AgreementName
	o.IsNewClient = in.IsNewClient
	o.IsAddOn = in.IsAddOn
	o.SignsPromissoryNote = in.SignsPromissoryNote
	o.StartDate = in.StartDate
	o.EndDate = in.EndDate
	o.Tax = in.Tax
	o.MaterialNotes = in.MaterialNotes
	o.TalentNotes = in.TalentNotes
	o.BillingNotes = in.BillingNotes
	o.Schedule = calc.Recalculate(in.Schedule, calc.Calendar(in.StartDate.Time, in.EndDate.Time))
}

func campaignStatus(today, start, end domain.Date) string {
	switch {
	case !start.IsZero() && today.Before(start.Time):
		return CampaignScheduled
	case !end.IsZero() && today.After(end.Time):
		return CampaignFinished
	default:
		return CampaignInProgress
	}
}

type noopCache struct{}

func (noopCache) Get(context.Context, string) (*domain.Order, error) { return nil, nil }
func (noopCache) Set(context.Context, *domain.Order) error           { return nil }
func (noopCache) Delete(context.Context, string) error               { return nil }

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, domain.OrderEvent) error { return nil }

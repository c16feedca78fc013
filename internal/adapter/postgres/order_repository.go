package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pautas-radio/internal/core/domain"
	"pautas-radio/internal/core/port"
)

const orderColumns = `
    id, folio, f1_folio, client, bill_to, billing_address, agency, brand,
    advertiser, campaign, event_name, order_number, executive, sales_plaza,
    agreement_type, agreement_name, is_new_client, is_add_on,
    signs_promissory_note, start_date, end_date, schedule, tax_option,
    currency, materials, material_notes, talent_notes, billing_notes,
    status, created_at, updated_at, submitted_at`

// OrderRepository implements port.OrderRepository using pgxpool for
// PostgreSQL. Schedule rows and materials are stored as jsonb.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns a new repository instance.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create inserts the order. The folio is derived from the id drawn from the
// table sequence, so both are assigned before the insert.
func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	schedule, materials, err := encodeDocs(o)
	if err != nil {
		return err
	}

	var id int64
	if err = r.pool.QueryRow(ctx, `SELECT nextval(pg_get_serial_sequence('pautas', 'id'))`).Scan(&id); err != nil {
		return err
	}
	folio := domain.FormatFolio(id)

	err = r.pool.QueryRow(ctx, `
        INSERT INTO pautas (
            id, folio, f1_folio, client, bill_to, billing_address, agency, brand,
            advertiser, campaign, event_name, order_number, executive, sales_plaza,
            agreement_type, agreement_name, is_new_client, is_add_on,
            signs_promissory_note, start_date, end_date, schedule, tax_option,
            currency, materials, material_notes, talent_notes, billing_notes,
            status, submitted_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,
                $19,$20,$21,$22,$23,$24,$25,$26,$27,$28,$29,$30)
        RETURNING created_at, updated_at`,
		id, folio, o.F1Folio, o.Client, o.BillTo, o.BillingAddress, o.Agency, o.Brand,
		o.Advertiser, o.Campaign, o.EventName, o.OrderNumber, o.Executive, o.SalesPlaza,
		string(o.AgreementType), o.AgreementName, o.IsNewClient, o.IsAddOn,
		o.SignsPromissoryNote, o.StartDate.Time, o.EndDate.Time, schedule, string(o.Tax.Option),
		string(o.Tax.Currency), materials, o.MaterialNotes, o.TalentNotes, o.BillingNotes,
		string(o.Status), o.SubmittedAt,
	).Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return err
	}
	o.ID = id
	o.Folio = folio
	return nil
}

// Update overwrites every editable column of the order with o's folio.
func (r *OrderRepository) Update(ctx context.Context, o *domain.Order) error {
	schedule, materials, err := encodeDocs(o)
	if err != nil {
		return err
	}
	err = r.pool.QueryRow(ctx, `
        UPDATE pautas SET
            f1_folio = $2, client = $3, bill_to = $4, billing_address = $5,
            agency = $6, brand = $7, advertiser = $8, campaign = $9,
            event_name = $10, order_number = $11, executive = $12,
            sales_plaza = $13, agreement_type = $14, agreement_name = $15,
            is_new_client = $16, is_add_on = $17, signs_promissory_note = $18,
            start_date = $19, end_date = $20, schedule = $21, tax_option = $22,
            currency = $23, materials = $24, material_notes = $25,
            talent_notes = $26, billing_notes = $27, status = $28,
            submitted_at = $29, updated_at = now()
        WHERE folio = $1
        RETURNING updated_at`,
		o.Folio, o.F1Folio, o.Client, o.BillTo, o.BillingAddress,
		o.Agency, o.Brand, o.Advertiser, o.Campaign,
		o.EventName, o.OrderNumber, o.Executive,
		o.SalesPlaza, string(o.AgreementType), o.AgreementName,
		o.IsNewClient, o.IsAddOn, o.SignsPromissoryNote,
		o.StartDate.Time, o.EndDate.Time, schedule, string(o.Tax.Option),
		string(o.Tax.Currency), materials, o.MaterialNotes,
		o.TalentNotes, o.BillingNotes, string(o.Status),
		o.SubmittedAt,
	).Scan(&o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return port.ErrOrderNotFound
	}
	return err
}

// Get returns the order with the given folio, or nil when there is none.
func (r *OrderRepository) Get(ctx context.Context, folio string) (*domain.Order, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+orderColumns+` FROM pautas WHERE folio = $1`, folio)
	if err != nil {
		return nil, err
	}
	o, err := pgx.CollectExactlyOneRow(rows, scanOrder)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// List returns orders matching filter, newest first.
func (r *OrderRepository) List(ctx context.Context, filter port.OrderFilter) ([]domain.Order, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	for _, f := range [...]struct{ col, val string }{
		{"client", filter.Client},
		{"agency", filter.Agency},
		{"campaign", filter.Campaign},
	} {
		if val := strings.TrimSpace(f.val); val != "" {
			where = append(where, fmt.Sprintf("%s ILIKE %s", f.col, arg("%"+escapeLike(val)+"%")))
		}
	}
	if filter.CapturedFrom != nil {
		where = append(where, "created_at >= "+arg(dayStart(*filter.CapturedFrom)))
	}
	if filter.CapturedTo != nil {
		where = append(where, "created_at < "+arg(dayStart(*filter.CapturedTo).AddDate(0, 0, 1)))
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		where = append(where, "status = ANY("+arg(statuses)+")")
	}

	query := `SELECT ` + orderColumns + ` FROM pautas`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"
	if filter.Limit > 0 {
		query += " LIMIT " + arg(filter.Limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanOrder)
}

// Delete removes the order with the given folio.
func (r *OrderRepository) Delete(ctx context.Context, folio string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM pautas WHERE folio = $1`, folio)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return port.ErrOrderNotFound
	}
	return nil
}

// CountByStatus groups the order book by OTC stage.
func (r *OrderRepository) CountByStatus(ctx context.Context) (map[domain.OTCStatus]int64, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, count(*) FROM pautas GROUP BY status`)
	if err != nil {
		return nil, err
	}
	type statusCount struct {
		Status string
		Count  int64
	}
	counts, err := pgx.CollectRows(rows, pgx.RowToStructByPos[statusCount])
	if err != nil {
		return nil, err
	}
	out := make(map[domain.OTCStatus]int64, len(counts))
	for _, c := range counts {
		out[domain.OTCStatus(c.Status)] = c.Count
	}
	return out, nil
}

func scanOrder(row pgx.CollectableRow) (domain.Order, error) {
	var (
		o                         domain.Order
		agreement, status         string
		taxOption, currency       string
		start, end                time.Time
		scheduleRaw, materialsRaw []byte
	)
	err := row.Scan(
		&o.ID, &o.Folio, &o.F1Folio, &o.Client, &o.BillTo, &o.BillingAddress, &o.Agency, &o.Brand,
		&o.Advertiser, &o.Campaign, &o.EventName, &o.OrderNumber, &o.Executive, &o.SalesPlaza,
		&agreement, &o.AgreementName, &o.IsNewClient, &o.IsAddOn,
		&o.SignsPromissoryNote, &start, &end, &scheduleRaw, &taxOption,
		&currency, &materialsRaw, &o.MaterialNotes, &o.TalentNotes, &o.BillingNotes,
		&status, &o.CreatedAt, &o.UpdatedAt, &o.SubmittedAt,
	)
	if err != nil {
		return o, err
	}
	o.AgreementType = domain.AgreementType(agreement)
	o.Status = domain.OTCStatus(status)
	o.Tax = domain.TaxConfig{Option: domain.TaxOption(taxOption), Currency: domain.Currency(currency)}
	o.StartDate = domain.NewDate(start)
	o.EndDate = domain.NewDate(end)

	if err = json.Unmarshal(scheduleRaw, &o.Schedule); err != nil {
		return o, fmt.Errorf("order %s schedule: %w", o.Folio, err)
	}
	if err = json.Unmarshal(materialsRaw, &o.Materials); err != nil {
		return o, fmt.Errorf("order %s materials: %w", o.Folio, err)
	}
	if o.Schedule == nil {
		o.Schedule = []domain.LineItem{}
	}
	if o.Materials == nil {
		o.Materials = []domain.Material{}
	}
	return o, nil
}

func encodeDocs(o *domain.Order) (schedule, materials []byte, err error) {
	rows := o.Schedule
	if rows == nil {
		rows = []domain.LineItem{}
	}
	if schedule, err = json.Marshal(rows); err != nil {
		return nil, nil, fmt.Errorf("encode schedule: %w", err)
	}
	mats := o.Materials
	if mats == nil {
		mats = []domain.Material{}
	}
	if materials, err = json.Marshal(mats); err != nil {
		return nil, nil, fmt.Errorf("encode materials: %w", err)
	}
	return schedule, materials, nil
}

func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// Package ingest reads transmission orders captured in the sales team's
// spreadsheet template: a block of header labels in the first thirteen rows
// followed by the schedule table whose header sits on row 15.
package ingest

import (
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"pautas-radio/internal/core/calc"
	"pautas-radio/internal/core/domain"
	"pautas-radio/internal/core/port"
)

const (
	headerRows     = 13
	tableHeaderRow = 14
)

// defaultCampaignDays is the span used when the sheet has no end date.
const defaultCampaignDays = 28

// MaxCampaignDays caps the calendar built for a sheet. A longer range is
// reported as a warning and replaced by the default span.
const MaxCampaignDays = 366

// headerLabels are the labels read from the header block.
var headerLabels = []string{
	"CLIENTE", "AGENCIA", "MARCA", "TIPO CONVENIO", "NOMBRE DEL CONVENIO",
	"ANUNCIA", "CAMPAÑA", "NUMERO DE ORDEN", "AGENTE / EJECUTIVO",
	"NOMBRE EVENTO", "FACTURAR A", "FIRMA PAGARE", "ES AGREGADO",
	"ES CLIENTE NUEVO", "INICIO CAMPAÑA", "FIN CAMPAÑA",
}

// Table columns.
const (
	ColPlaza      = "PLAZA TRANS"
	ColMediaType  = "TIPO MEDIO"
	ColOutlet     = "MEDIO"
	ColProgram    = "PROGRAMA"
	ColDuration   = "DURACION"
	ColProduct    = "PRODUCTO"
	ColVersion    = "VERSION"
	ColTalent     = "TALENTO"
	ColStartTime  = "HORA INICIO"
	ColEndTime    = "HORA FIN"
	ColImpacts    = "TOTAL IMPACTOS"
	ColTariff     = "TARIFA"
	ColInvestment = "TOTAL INVERSION"
)

// RequiredColumns must all be present in the table header.
var RequiredColumns = []string{
	ColPlaza, ColMediaType, ColOutlet, ColProgram, ColDuration,
	ColProduct, ColVersion, ColTalent, ColStartTime, ColEndTime,
	ColImpacts, ColTariff, ColInvestment,
}

// MissingColumnsError rejects a sheet whose table lacks required columns.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return "missing required columns: " + strings.Join(e.Columns, ", ")
}

// Import is a spreadsheet turned into an order draft. The schedule is not
// recalculated; callers run it through the calculator.
type Import struct {
	Order    port.OrderInput `json:"order"`
	Calendar []domain.Day    `json:"calendar"`
	// Rows is the number of schedule rows read before the first row
	// without a plaza.
	Rows     int      `json:"rows"`
	Warnings []string `json:"warnings"`
}

// ParseXLSX reads the first sheet of an .xlsx workbook. Dates stored as
// serial numbers are read in the 1900 date system.
func ParseXLSX(r io.Reader, now time.Time) (*Import, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return ParseRows(rows, now)
}

// ParseRows builds an Import from the raw cell values of a sheet, row by
// row. Missing campaign dates default to now and now plus 28 days.
func ParseRows(rows [][]string, now time.Time) (*Import, error) {
	imp := &Import{Warnings: []string{}}
	h := headerBlock(rows[:min(len(rows), headerRows)])

	in := &imp.Order
	in.Client = h.value("CLIENTE")
	in.Agency = h.value("AGENCIA")
	in.Brand = h.value("MARCA")
	in.AgreementName = h.value("NOMBRE DEL CONVENIO")
	in.Advertiser = h.value("ANUNCIA")
	in.Campaign = h.value("CAMPAÑA")
	in.OrderNumber = h.value("NUMERO DE ORDEN")
	in.Executive = h.value("AGENTE / EJECUTIVO")
	in.EventName = h.value("NOMBRE EVENTO")
	in.BillTo = h.value("FACTURAR A")
	in.SignsPromissoryNote = yes(h.value("FIRMA PAGARE"))
	in.IsAddOn = yes(h.value("ES AGREGADO"))
	in.IsNewClient = yes(h.value("ES CLIENTE NUEVO"))

	in.AgreementType = domain.AgreementType(strings.ToUpper(h.value("TIPO CONVENIO")))
	if !in.AgreementType.Valid() {
		if in.AgreementType != "" {
			imp.warn("unknown agreement type %q, using %s", in.AgreementType, domain.AgreementCash)
		}
		in.AgreementType = domain.AgreementCash
	}

	today := domain.NewDate(now)
	in.StartDate = imp.date(h.value("INICIO CAMPAÑA"), today, "start")
	in.EndDate = imp.date(h.value("FIN CAMPAÑA"), domain.NewDate(today.AddDate(0, 0, defaultCampaignDays)), "end")
	if calc.DaySpan(in.StartDate.Time, in.EndDate.Time) > MaxCampaignDays {
		end := domain.NewDate(in.StartDate.AddDate(0, 0, defaultCampaignDays))
		imp.warn("campaign from %s to %s is longer than %d days, using end %s", in.StartDate, in.EndDate, MaxCampaignDays, end)
		in.EndDate = end
	}
	imp.Calendar = calc.Calendar(in.StartDate.Time, in.EndDate.Time)

	var header []string
	if len(rows) > tableHeaderRow {
		header = rows[tableHeaderRow]
	}
	cols, missing := indexColumns(header)
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}
	dayCols := imp.mapDayColumns(header)

	in.Schedule = []domain.LineItem{}
	for _, row := range rows[min(len(rows), tableHeaderRow+1):] {
		cell := func(col string) string { return at(row, cols[col]) }
		if cell(ColPlaza) == "" {
			break
		}
		item := domain.LineItem{
			Plaza:       cell(ColPlaza),
			MediaType:   cell(ColMediaType),
			Outlet:      cell(ColOutlet),
			Program:     cell(ColProgram),
			Duration:    cell(ColDuration),
			Product:     cell(ColProduct),
			Version:     cell(ColVersion),
			Talent:      cell(ColTalent),
			StartTime:   clockTime(cell(ColStartTime)),
			EndTime:     clockTime(cell(ColEndTime)),
			Tariff:      domain.Cell(cell(ColTariff)),
			DailyCounts: make(map[string]domain.Cell, len(dayCols)),
		}
		for idx, key := range dayCols {
			if v := at(row, idx); v != "" {
				item.DailyCounts[key] = domain.Cell(v)
			}
		}
		in.Schedule = append(in.Schedule, item)
	}
	imp.Rows = len(in.Schedule)
	return imp, nil
}

func (imp *Import) warn(format string, args ...any) {
	imp.Warnings = append(imp.Warnings, fmt.Sprintf(format, args...))
}

func (imp *Import) date(raw string, fallback domain.Date, which string) domain.Date {
	if raw == "" {
		return fallback
	}
	if d, err := domain.ParseDate(raw); err == nil {
		return d
	}
	if serial, err := strconv.ParseFloat(raw, 64); err == nil && serial > 0 {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return domain.NewDate(t)
		}
	}
	imp.warn("unreadable campaign %s date %q, using %s", which, raw, fallback)
	return fallback
}

// mapDayColumns assigns each day column of the table header to a calendar
// day. Labels repeat every month, so the k-th column labelled "1/L" goes
// to the k-th calendar day labelled "1/L".
func (imp *Import) mapDayColumns(header []string) map[int]string {
	byLabel := make(map[string][]string)
	for _, d := range imp.Calendar {
		byLabel[d.Label] = append(byLabel[d.Label], d.Key)
	}
	seen := make(map[string]int)
	out := make(map[int]string)
	for idx, raw := range header {
		label := normalizeLabel(raw)
		if !dayLabelRe.MatchString(label) {
			continue
		}
		k := seen[label]
		seen[label]++
		if keys := byLabel[label]; k < len(keys) {
			out[idx] = keys[k]
		} else {
			imp.warn("column %q is outside the campaign range", label)
		}
	}
	return out
}

var dayLabelRe = regexp.MustCompile(`^\d{1,2}/[LMJVSD]$`)

func normalizeLabel(s string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
}

func indexColumns(header []string) (map[string]int, []string) {
	cols := make(map[string]int, len(RequiredColumns))
	for i, raw := range header {
		name := strings.ToUpper(strings.TrimSpace(raw))
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}
	var missing []string
	for _, c := range RequiredColumns {
		if _, ok := cols[c]; !ok {
			missing = append(missing, c)
		}
	}
	return cols, missing
}

// headerBlock is the label/value area above the table.
type headerBlock [][]string

// value returns the cell to the right of label. A cell equal to the label
// (ignoring case and a trailing colon) wins over one merely containing it,
// so "CAMPAÑA" does not pick up "INICIO CAMPAÑA". A containing cell that
// carries a longer known label ("ES CLIENTE NUEVO" for "CLIENTE") belongs
// to that label and is never used.
func (h headerBlock) value(label string) string {
	found, ok := "", false
	for _, row := range h {
		for i, raw := range row {
			cell := strings.TrimSuffix(strings.ToUpper(strings.TrimSpace(raw)), ":")
			cell = strings.TrimSpace(cell)
			if cell == "" || !strings.Contains(cell, label) {
				continue
			}
			if cell == label {
				return at(row, i+1)
			}
			if !ok && !ownedByLongerLabel(cell, label) {
				found, ok = at(row, i+1), true
			}
		}
	}
	return found
}

func ownedByLongerLabel(cell, label string) bool {
	for _, other := range headerLabels {
		if len(other) > len(label) && strings.Contains(other, label) && strings.Contains(cell, other) {
			return true
		}
	}
	return false
}

func at(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func yes(s string) bool {
	switch strings.ToUpper(s) {
	case "SI", "SÍ", "S", "YES", "TRUE", "1":
		return true
	}
	return false
}

// clockTime renders a time-of-day stored as a fraction of a day ("0.25")
// as HH:MM. Text is returned unchanged.
func clockTime(s string) string {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 || f >= 1 || math.IsNaN(f) {
		return s
	}
	minutes := int(math.Round(f * 24 * 60))
	if minutes == 24*60 {
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

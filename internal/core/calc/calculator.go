// Package calc derives the per-row and aggregate figures of a transmission
// schedule. Every function here is pure: no state survives a call, inputs
// are never mutated and malformed cells degrade to zero instead of
// producing errors, so the editor can recalculate on every keystroke.
package calc

import (
	"github.com/shopspring/decimal"

	"pautas-radio/internal/core/domain"
)

// Result is a recalculated schedule together with its summary.
type Result struct {
	Items   []domain.LineItem `json:"items"`
	Summary domain.Summary    `json:"summary"`
}

// RecalculateRow overwrites TotalImpacts and TotalInvestment of a copy of
// row. Only the days passed in count: keys outside the calendar are
// ignored and days without a key contribute zero. Each cell is coerced on
// its own, so one bad cell never spoils the rest of the row.
func RecalculateRow(row domain.LineItem, days []domain.Day) domain.LineItem {
	out := row.Clone()
	var impacts int64
	for _, d := range days {
		impacts = addImpacts(impacts, ParseNonNegativeIntOrZero(string(row.DailyCounts[d.Key])))
	}
	tariff := ParseFloatOrZero(string(row.Tariff))
	out.TotalImpacts = impacts
	out.TotalInvestment = investment(impacts, tariff)
	return out
}

// Recalculate applies RecalculateRow to every row and returns the new
// slice. The whole schedule is always recomputed.
func Recalculate(rows []domain.LineItem, days []domain.Day) []domain.LineItem {
	out := make([]domain.LineItem, len(rows))
	for i, r := range rows {
		out[i] = RecalculateRow(r, days)
	}
	return out
}

// Summarize rolls up rows that were already recalculated. Unknown tax
// options fall back to domain.DefaultTaxOption and unknown currencies to
// domain.DefaultCurrency. The exempt option always yields a zero tax.
func Summarize(rows []domain.LineItem, tax domain.TaxConfig) domain.Summary {
	opt := tax.Option
	rate, ok := opt.Rate()
	if !ok {
		opt = domain.DefaultTaxOption
		rate, _ = opt.Rate()
	}
	cur := tax.Currency
	if !cur.Valid() {
		cur = domain.DefaultCurrency
	}

	var impacts int64
	subtotal := decimal.Zero
	for _, r := range rows {
		impacts = addImpacts(impacts, max(r.TotalImpacts, 0))
		subtotal = subtotal.Add(decimal.NewFromFloat(r.TotalInvestment))
	}

	taxAmount := subtotal.Mul(decimal.NewFromFloat(rate)).Round(2)
	if opt.Exempt() {
		taxAmount = decimal.Zero
	}
	grand := subtotal.Add(taxAmount).Round(2)

	return domain.Summary{
		TotalImpacts: impacts,
		Subtotal:     subtotal.InexactFloat64(),
		TaxAmount:    taxAmount.InexactFloat64(),
		GrandTotal:   grand.InexactFloat64(),
		TaxOption:    opt,
		TaxRate:      rate,
		Currency:     cur,
		Exempt:       opt.Exempt(),
	}
}

// Calculate recalculates rows against days and summarizes them.
func Calculate(rows []domain.LineItem, days []domain.Day, tax domain.TaxConfig) Result {
	items := Recalculate(rows, days)
	return Result{Items: items, Summary: Summarize(items, tax)}
}

func investment(impacts int64, tariff float64) float64 {
	return decimal.NewFromInt(impacts).
		Mul(decimal.NewFromFloat(tariff)).
		Round(2).
		InexactFloat64()
}

package calc

import (
	"math"
	"math/rand"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pautas-radio/internal/core/domain"
)

func twoDays() []domain.Day {
	start := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	return Calendar(start, start.AddDate(0, 0, 1))
}

func rowWith(tariff domain.Cell, counts ...domain.Cell) domain.LineItem {
	days := twoDays()
	row := domain.ExampleLineItem()
	row.Tariff = tariff
	for i, c := range counts {
		row.DailyCounts[days[i].Key] = c
	}
	return row
}

func TestRecalculateRow(t *testing.T) {
	days := twoDays()

	row := RecalculateRow(rowWith("100.0", "3", "2"), days)
	assert.Equal(t, int64(5), row.TotalImpacts)
	assert.Equal(t, 500.0, row.TotalInvestment)
}

func TestRecalculateRowBadCellsDegradeToZero(t *testing.T) {
	days := twoDays()

	row := RecalculateRow(rowWith("50", "abc", "4"), days)
	assert.Equal(t, int64(4), row.TotalImpacts, "a bad cell must not spoil the others")
	assert.Equal(t, 200.0, row.TotalInvestment)

	row = RecalculateRow(rowWith("", "3", "2"), days)
	assert.Equal(t, int64(5), row.TotalImpacts)
	assert.Equal(t, 0.0, row.TotalInvestment, "blank tariff counts as zero")

	row = RecalculateRow(rowWith("n/a", "-2", ""), days)
	assert.Equal(t, int64(0), row.TotalImpacts)
	assert.Equal(t, 0.0, row.TotalInvestment)
}

func TestRecalculateRowIgnoresColumnsOutsideCalendar(t *testing.T) {
	days := twoDays()
	row := rowWith("10", "1", "1")
	row.DailyCounts["2030-01-01"] = "99"
	delete(row.DailyCounts, days[1].Key)

	out := RecalculateRow(row, days)
	assert.Equal(t, int64(1), out.TotalImpacts)
	assert.Equal(t, 10.0, out.TotalInvestment)
}

func TestRecalculateRowNilCounts(t *testing.T) {
	out := RecalculateRow(domain.LineItem{Tariff: "12.5"}, twoDays())
	assert.Equal(t, int64(0), out.TotalImpacts)
	assert.Equal(t, 0.0, out.TotalInvestment)
}

func TestRecalculateRowOverwritesStaleTotals(t *testing.T) {
	row := rowWith("10", "1", "2")
	row.TotalImpacts = 1000
	row.TotalInvestment = 123456.78

	out := RecalculateRow(row, twoDays())
	assert.Equal(t, int64(3), out.TotalImpacts)
	assert.Equal(t, 30.0, out.TotalInvestment)
}

func TestRecalculateRowRoundsInvestment(t *testing.T) {
	out := RecalculateRow(rowWith("0.335", "1"), twoDays())
	assert.Equal(t, 0.34, out.TotalInvestment)

	out = RecalculateRow(rowWith("33.333", "3"), twoDays())
	assert.Equal(t, 100.0, out.TotalInvestment)
}

func TestRecalculateRowIsIdempotent(t *testing.T) {
	days := twoDays()
	row := rowWith("17.45", "3", "x")

	once := RecalculateRow(row, days)
	twice := RecalculateRow(once, days)
	assert.Equal(t, once, twice)
}

func TestRecalculateDoesNotMutateInput(t *testing.T) {
	days := twoDays()
	rows := []domain.LineItem{rowWith("10", "1", "1")}

	out := Recalculate(rows, days)
	out[0].DailyCounts[days[0].Key] = "50"

	assert.Equal(t, int64(0), rows[0].TotalImpacts)
	assert.Equal(t, domain.Cell("1"), rows[0].DailyCounts[days[0].Key])
}

func TestSummarizeEmptySchedule(t *testing.T) {
	for _, opt := range domain.TaxOptions {
		s := Summarize(nil, domain.TaxConfig{Option: opt, Currency: domain.CurrencyUSD})
		assert.Equal(t, int64(0), s.TotalImpacts)
		assert.Equal(t, 0.0, s.Subtotal)
		assert.Equal(t, 0.0, s.TaxAmount)
		assert.Equal(t, 0.0, s.GrandTotal)
		assert.Equal(t, opt.Exempt(), s.Exempt)
	}

	res := Calculate([]domain.LineItem{}, twoDays(), domain.TaxConfig{Option: domain.Tax16})
	assert.Empty(t, res.Items)
	assert.Equal(t, 0.0, res.Summary.GrandTotal)
}

func TestCalculateSixteenPercent(t *testing.T) {
	res := Calculate(
		[]domain.LineItem{rowWith("100.0", "3", "2")},
		twoDays(),
		domain.TaxConfig{Option: domain.Tax16, Currency: domain.CurrencyMN},
	)

	require.Len(t, res.Items, 1)
	assert.Equal(t, int64(5), res.Items[0].TotalImpacts)
	assert.Equal(t, 500.0, res.Items[0].TotalInvestment)
	assert.Equal(t, domain.Summary{
		TotalImpacts: 5,
		Subtotal:     500,
		TaxAmount:    80,
		GrandTotal:   580,
		TaxOption:    domain.Tax16,
		TaxRate:      0.16,
		Currency:     domain.CurrencyMN,
	}, res.Summary)
}

func TestCalculateExempt(t *testing.T) {
	res := Calculate(
		[]domain.LineItem{rowWith("100.0", "3", "2")},
		twoDays(),
		domain.TaxConfig{Option: domain.TaxExempt, Currency: domain.CurrencyEUR},
	)

	assert.True(t, res.Summary.Exempt)
	assert.Equal(t, 0.0, res.Summary.TaxAmount)
	assert.Equal(t, 500.0, res.Summary.GrandTotal)
	assert.Equal(t, domain.CurrencyEUR, res.Summary.Currency)
}

func TestCalculateTwoRows(t *testing.T) {
	res := Calculate(
		[]domain.LineItem{
			rowWith("50", "4", "0"),
			rowWith("10", "0", "6"),
		},
		twoDays(),
		domain.TaxConfig{Option: domain.Tax0},
	)

	require.Len(t, res.Items, 2)
	assert.Equal(t, int64(4), res.Items[0].TotalImpacts)
	assert.Equal(t, int64(6), res.Items[1].TotalImpacts)
	assert.Equal(t, 200.0, res.Items[0].TotalInvestment)
	assert.Equal(t, 60.0, res.Items[1].TotalInvestment)
	assert.Equal(t, 260.0, res.Summary.Subtotal)
	assert.Equal(t, int64(10), res.Summary.TotalImpacts)
	assert.Equal(t, 260.0, res.Summary.GrandTotal)
	assert.False(t, res.Summary.Exempt)
}

func TestSummarizeEightPercentRoundsOnce(t *testing.T) {
	rows := Recalculate([]domain.LineItem{
		rowWith("0.35", "1"),
		rowWith("0.35", "1"),
		rowWith("0.35", "1"),
	}, twoDays())

	s := Summarize(rows, domain.TaxConfig{Option: domain.Tax8})
	assert.Equal(t, 1.05, s.Subtotal)
	// 1.05 * 0.08 = 0.084
	assert.Equal(t, 0.08, s.TaxAmount)
	assert.Equal(t, 1.13, s.GrandTotal)
}

func TestSummarizeUnknownOptionsFallBack(t *testing.T) {
	rows := Recalculate([]domain.LineItem{rowWith("100", "1")}, twoDays())

	s := Summarize(rows, domain.TaxConfig{Option: "21%", Currency: "GBP"})
	assert.Equal(t, domain.DefaultTaxOption, s.TaxOption)
	assert.Equal(t, domain.DefaultCurrency, s.Currency)
	assert.Equal(t, 16.0, s.TaxAmount)
}

func TestGrandTotalIsMonotoneInDailyCounts(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	days := Calendar(start, start.AddDate(0, 0, 9))
	tax := domain.TaxConfig{Option: domain.Tax16}

	for iter := 0; iter < 200; iter++ {
		rows := make([]domain.LineItem, 1+rnd.Intn(4))
		for i := range rows {
			rows[i] = domain.ExampleLineItem()
			rows[i].Tariff = domain.Cell(decimalString(rnd.Float64() * 500))
			for _, d := range days {
				rows[i].DailyCounts[d.Key] = domain.NumberCell(int64(rnd.Intn(6)))
			}
		}
		before := Calculate(rows, days, tax)

		ri := rnd.Intn(len(rows))
		day := days[rnd.Intn(len(days))].Key
		bumped := make([]domain.LineItem, len(rows))
		for i := range rows {
			bumped[i] = rows[i].Clone()
		}
		cur := ParseNonNegativeIntOrZero(string(bumped[ri].DailyCounts[day]))
		bumped[ri].DailyCounts[day] = domain.NumberCell(cur + 1 + int64(rnd.Intn(3)))
		after := Calculate(bumped, days, tax)

		assert.GreaterOrEqual(t, after.Items[ri].TotalInvestment, before.Items[ri].TotalInvestment)
		assert.GreaterOrEqual(t, after.Summary.GrandTotal, before.Summary.GrandTotal)
	}
}

func TestHugeCountsSaturateInsteadOfWrapping(t *testing.T) {
	days := twoDays()
	tax := domain.TaxConfig{Option: domain.Tax16}
	half := domain.Cell("4611686018427387904")

	before := Calculate([]domain.LineItem{rowWith("1", half, "0")}, days, tax)
	after := Calculate([]domain.LineItem{rowWith("1", half, half)}, days, tax)

	assert.Equal(t, int64(math.MaxInt64), after.Items[0].TotalImpacts)
	assert.GreaterOrEqual(t, after.Items[0].TotalImpacts, before.Items[0].TotalImpacts)
	assert.GreaterOrEqual(t, after.Items[0].TotalInvestment, before.Items[0].TotalInvestment)
	assert.GreaterOrEqual(t, after.Summary.GrandTotal, before.Summary.GrandTotal)
	assert.Positive(t, after.Summary.GrandTotal)

	rows := []domain.LineItem{rowWith("1", half, half), rowWith("1", half, half)}
	s := Calculate(rows, days, tax).Summary
	assert.Equal(t, int64(math.MaxInt64), s.TotalImpacts)
	assert.Positive(t, s.GrandTotal)
}

func TestCalculateIsIdempotent(t *testing.T) {
	days := twoDays()
	rows := []domain.LineItem{rowWith("12.34", "2", "7"), rowWith("x", "1", "1")}
	tax := domain.TaxConfig{Option: domain.Tax8, Currency: domain.CurrencyUSD}

	first := Calculate(rows, days, tax)
	second := Calculate(first.Items, days, tax)
	assert.Equal(t, first, second)
}

func decimalString(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

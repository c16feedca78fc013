package ingest

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"pautas-radio/internal/core/domain"
)

var now = time.Date(2025, 11, 20, 15, 30, 0, 0, time.UTC)

// sheet lays out header labels from the top, the table header on row 15
// and the data rows below it.
func sheet(header [][]string, table []string, data ...[]string) [][]string {
	rows := make([][]string, 15, 15+len(data))
	copy(rows, header)
	rows[tableHeaderRow] = table
	return append(rows, data...)
}

func tableHeader(days ...string) []string {
	return append(append([]string{}, RequiredColumns...), days...)
}

func dataRow(plaza, tariff string, counts ...string) []string {
	row := []string{plaza, "RADIO", "XERT-AM", ".", "20''", "SPOT", "VERSION1", ".", "05:00", "10:00", "999", tariff, "999"}
	return append(row, counts...)
}

func TestParseRows(t *testing.T) {
	rows := sheet(
		[][]string{
			{"", "CLIENTE", "POLLO LOCO"},
			{"", "AGENCIA:", "MEDIA CORP", "", "MARCA", "EL POLLO"},
			{"", "INICIO CAMPAÑA", "01/12/2025"},
			{"", "FIN CAMPAÑA", "03/12/2025"},
			{"", "CAMPAÑA", "NAVIDAD"},
			{"", "AGENTE / EJECUTIVO", "CRISTA REYNA"},
			{"", "TIPO CONVENIO", "intercambio"},
			{"", "FIRMA PAGARE (SI / NO)", "SI"},
			{"", "ES AGREGADO (SI / NO)", "NO"},
		},
		tableHeader("1/L", "2/M", "3/M"),
		dataRow("MONTERREY", "100", "3", "2", ""),
		dataRow("SALTILLO", "abc", "1"),
		dataRow("", "", "7", "7", "7"),
		dataRow("TOTALES", "0", "99"),
	)

	imp, err := ParseRows(rows, now)
	require.NoError(t, err)

	in := imp.Order
	assert.Equal(t, "POLLO LOCO", in.Client)
	assert.Equal(t, "MEDIA CORP", in.Agency)
	assert.Equal(t, "EL POLLO", in.Brand)
	assert.Equal(t, "NAVIDAD", in.Campaign, "exact label wins over INICIO CAMPAÑA")
	assert.Equal(t, "CRISTA REYNA", in.Executive)
	assert.Equal(t, domain.AgreementExchange, in.AgreementType)
	assert.True(t, in.SignsPromissoryNote)
	assert.False(t, in.IsAddOn)
	assert.Equal(t, "2025-12-01", in.StartDate.String())
	assert.Equal(t, "2025-12-03", in.EndDate.String())
	require.Len(t, imp.Calendar, 3)

	require.Equal(t, 2, imp.Rows, "data stops at the first row without a plaza")
	first := in.Schedule[0]
	assert.Equal(t, "MONTERREY", first.Plaza)
	assert.Equal(t, "05:00", first.StartTime)
	assert.Equal(t, domain.Cell("100"), first.Tariff)
	assert.Equal(t, map[string]domain.Cell{"2025-12-01": "3", "2025-12-02": "2"}, first.DailyCounts)
	assert.Equal(t, int64(0), first.TotalImpacts, "totals from the sheet are not trusted")

	assert.Equal(t, domain.Cell("abc"), in.Schedule[1].Tariff)
	assert.Empty(t, imp.Warnings)
}

func TestParseRowsMissingColumns(t *testing.T) {
	table := []string{"PLAZA TRANS", "TIPO MEDIO", "MEDIO", "PROGRAMA", "DURACION", "PRODUCTO", "VERSION", "TALENTO", "HORA INICIO", "HORA FIN", "TOTAL IMPACTOS"}
	_, err := ParseRows(sheet(nil, table), now)

	var mc *MissingColumnsError
	require.True(t, errors.As(err, &mc))
	assert.Equal(t, []string{"TARIFA", "TOTAL INVERSION"}, mc.Columns)
	assert.EqualError(t, err, "missing required columns: TARIFA, TOTAL INVERSION")
}

func TestParseRowsShortSheet(t *testing.T) {
	_, err := ParseRows([][]string{{"CLIENTE", "X"}}, now)
	var mc *MissingColumnsError
	require.ErrorAs(t, err, &mc)
	assert.Len(t, mc.Columns, len(RequiredColumns))
}

func TestParseRowsDefaultsDates(t *testing.T) {
	imp, err := ParseRows(sheet(nil, tableHeader()), now)
	require.NoError(t, err)

	assert.Equal(t, "2025-11-20", imp.Order.StartDate.String())
	assert.Equal(t, "2025-12-18", imp.Order.EndDate.String())
	assert.Len(t, imp.Calendar, 29)
	assert.Empty(t, imp.Order.Schedule)
	assert.Equal(t, domain.AgreementCash, imp.Order.AgreementType)
}

func TestParseRowsUnreadableDateWarns(t *testing.T) {
	rows := sheet([][]string{{"INICIO CAMPAÑA", "pronto"}}, tableHeader())
	imp, err := ParseRows(rows, now)
	require.NoError(t, err)

	assert.Equal(t, "2025-11-20", imp.Order.StartDate.String())
	require.Len(t, imp.Warnings, 1)
	assert.Contains(t, imp.Warnings[0], "pronto")
}

func TestParseRowsLongerLabelIsNotClient(t *testing.T) {
	rows := sheet(
		[][]string{
			{"ES CLIENTE NUEVO (SI / NO)", "SI"},
			{"NOMBRE DEL CLIENTE", "POLLO LOCO"},
		},
		tableHeader(),
	)
	imp, err := ParseRows(rows, now)
	require.NoError(t, err)

	assert.Equal(t, "POLLO LOCO", imp.Order.Client)
	assert.True(t, imp.Order.IsNewClient)
}

func TestParseRowsOnlyLongerLabelLeavesClientEmpty(t *testing.T) {
	rows := sheet([][]string{{"ES CLIENTE NUEVO", "NO"}}, tableHeader())
	imp, err := ParseRows(rows, now)
	require.NoError(t, err)

	assert.Empty(t, imp.Order.Client)
	assert.False(t, imp.Order.IsNewClient)
}

func TestParseRowsOverlongRangeFallsBack(t *testing.T) {
	rows := sheet(
		[][]string{
			{"INICIO CAMPAÑA", "2025-12-01"},
			{"FIN CAMPAÑA", "31/12/9999"},
		},
		tableHeader("1/L"),
		dataRow("MONTERREY", "10", "4"),
	)
	imp, err := ParseRows(rows, now)
	require.NoError(t, err)

	assert.Equal(t, "2025-12-01", imp.Order.StartDate.String())
	assert.Equal(t, "2025-12-29", imp.Order.EndDate.String())
	assert.Len(t, imp.Calendar, 29)
	require.Len(t, imp.Warnings, 1)
	assert.Contains(t, imp.Warnings[0], "longer than 366 days")
	assert.Equal(t, domain.Cell("4"), imp.Order.Schedule[0].DailyCounts["2025-12-01"])
}

func TestParseRowsRepeatedDayLabels(t *testing.T) {
	// 1 September and 1 December 2025 are both Mondays.
	rows := sheet(
		[][]string{
			{"INICIO CAMPAÑA", "2025-09-01"},
			{"FIN CAMPAÑA", "2025-12-01"},
		},
		tableHeader("1/L", "1/L", "1/L"),
		dataRow("MONTERREY", "10", "4", "6", "8"),
	)
	imp, err := ParseRows(rows, now)
	require.NoError(t, err)

	counts := imp.Order.Schedule[0].DailyCounts
	assert.Equal(t, domain.Cell("4"), counts["2025-09-01"])
	assert.Equal(t, domain.Cell("6"), counts["2025-12-01"])
	assert.Len(t, counts, 2)
	require.Len(t, imp.Warnings, 1, "third 1/L column has no day in range")
}

func TestParseRowsSerialValues(t *testing.T) {
	rows := sheet(
		[][]string{
			{"INICIO CAMPAÑA", "45992"},
			{"FIN CAMPAÑA", "45998"},
		},
		tableHeader(),
		dataRow("MONTERREY", "10"),
	)
	rows[15][8] = "0.25"
	rows[15][9] = "0.75"

	imp, err := ParseRows(rows, now)
	require.NoError(t, err)
	assert.Equal(t, "2025-12-01", imp.Order.StartDate.String())
	assert.Equal(t, "2025-12-07", imp.Order.EndDate.String())
	assert.Equal(t, "06:00", imp.Order.Schedule[0].StartTime)
	assert.Equal(t, "18:00", imp.Order.Schedule[0].EndTime)
}

func TestParseXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	const sh = "Sheet1"

	require.NoError(t, f.SetCellValue(sh, "B1", "CLIENTE"))
	require.NoError(t, f.SetCellValue(sh, "C1", "POLLO LOCO"))
	require.NoError(t, f.SetCellValue(sh, "B2", "INICIO CAMPAÑA"))
	require.NoError(t, f.SetCellValue(sh, "C2", time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, f.SetCellValue(sh, "B3", "FIN CAMPAÑA"))
	require.NoError(t, f.SetCellValue(sh, "C3", "02/12/2025"))

	header := make([]any, 0, len(RequiredColumns)+2)
	for _, c := range RequiredColumns {
		header = append(header, c)
	}
	header = append(header, "1/L", "2/M")
	require.NoError(t, f.SetSheetRow(sh, "A15", &header))

	row := []any{"MONTERREY", "RADIO", "XERT-AM", ".", "20''", "SPOT", "VERSION1", ".", "05:00", "10:00", 0, 100.5, 0, 3, 2}
	require.NoError(t, f.SetSheetRow(sh, "A16", &row))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	imp, err := ParseXLSX(buf, now)
	require.NoError(t, err)

	assert.Equal(t, "POLLO LOCO", imp.Order.Client)
	assert.Equal(t, "2025-12-01", imp.Order.StartDate.String())
	assert.Equal(t, "2025-12-02", imp.Order.EndDate.String())
	require.Len(t, imp.Order.Schedule, 1)
	assert.Equal(t, domain.Cell("100.5"), imp.Order.Schedule[0].Tariff)
	assert.Equal(t, domain.Cell("3"), imp.Order.Schedule[0].DailyCounts["2025-12-01"])
	assert.Equal(t, domain.Cell("2"), imp.Order.Schedule[0].DailyCounts["2025-12-02"])
}

func TestParseXLSXRejectsGarbage(t *testing.T) {
	_, err := ParseXLSX(errReader{}, now)
	assert.Error(t, err)
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("broken upload") }

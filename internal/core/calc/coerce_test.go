package calc

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseNonNegativeIntOrZero(t *testing.T) {
	cases := map[string]int64{
		"":         0,
		"   ":      0,
		"0":        0,
		"3":        3,
		" 12 ":     12,
		"3.0":      3,
		"2.9":      2,
		"-1":       0,
		"-2.5":     0,
		"abc":      0,
		"1e2":      100,
		"NaN":      0,
		"Inf":      0,
		"true":     0,
		"{}":       0,
		"00000007": 7,

		"1e300":                math.MaxInt64,
		"1e400":                math.MaxInt64,
		"99999999999999999999": math.MaxInt64,
		"9223372036854775807":  math.MaxInt64,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseNonNegativeIntOrZero(in), "input %q", in)
	}
}

func TestParseFloatOrZero(t *testing.T) {
	cases := map[string]float64{
		"":       0,
		"100":    100,
		"100.0":  100,
		" 12.5 ": 12.5,
		"-3":     0,
		"$100":   0,
		"NaN":    0,
		"-Inf":   0,
		"x":      0,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseFloatOrZero(in), "input %q", in)
	}
}

func TestCalendar(t *testing.T) {
	// 1 Dec 2025 is a Monday
	start := time.Date(2025, 12, 1, 15, 30, 0, 0, time.UTC)
	days := Calendar(start, time.Date(2025, 12, 7, 0, 0, 0, 0, time.UTC))

	labels := make([]string, len(days))
	for i, d := range days {
		labels[i] = d.Label
	}
	assert.Equal(t, []string{"1/L", "2/M", "3/M", "4/J", "5/V", "6/S", "7/D"}, labels)
	assert.Equal(t, "2025-12-01", days[0].Key)
	assert.Equal(t, "2025-12-07", days[6].Key)
}

func TestCalendarSingleDay(t *testing.T) {
	d := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)
	days := Calendar(d, d)
	assert.Len(t, days, 1)
	assert.Equal(t, "15/M", days[0].Label)
}

func TestCalendarInvertedRangeIsEmpty(t *testing.T) {
	start := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	days := Calendar(start, start.AddDate(0, 0, -1))
	assert.NotNil(t, days)
	assert.Empty(t, days)
}

func TestCalendarLongRangeKeepsKeysUnique(t *testing.T) {
	start := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	days := Calendar(start, start.AddDate(0, 2, 0))

	keys := map[string]bool{}
	labels := map[string]int{}
	for _, d := range days {
		assert.False(t, keys[d.Key], "duplicate key %s", d.Key)
		keys[d.Key] = true
		labels[d.Label]++
	}
	assert.Len(t, days, 63)
	// short labels repeat across months, keys must not
	repeated := false
	for _, n := range labels {
		if n > 1 {
			repeated = true
		}
	}
	assert.True(t, repeated)
}

func TestDaySpan(t *testing.T) {
	start := time.Date(2025, 12, 1, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, DaySpan(start, start))
	assert.Equal(t, 7, DaySpan(start, time.Date(2025, 12, 7, 1, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, DaySpan(start, start.AddDate(0, 0, -1)))
	assert.Equal(t, 366, DaySpan(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)))

	far := DaySpan(time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 3652059, far)
}

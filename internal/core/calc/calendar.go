package calc

import (
	"strconv"
	"time"

	"pautas-radio/internal/core/domain"
)

var weekdayLetters = [7]string{
	time.Sunday:    "D",
	time.Monday:    "L",
	time.Tuesday:   "M",
	time.Wednesday: "M",
	time.Thursday:  "J",
	time.Friday:    "V",
	time.Saturday:  "S",
}

// DayLabel returns the editor heading of a date: the day of month and the
// single-letter Spanish weekday, e.g. "15/L".
func DayLabel(t time.Time) string {
	return strconv.Itoa(t.Day()) + "/" + weekdayLetters[t.Weekday()]
}

// DateOnly drops the clock part of t, keeping its calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaySpan returns how many dates Calendar would produce for [start, end]
// without building them. An inverted range spans zero days.
func DaySpan(start, end time.Time) int {
	start, end = DateOnly(start), DateOnly(end)
	if end.Before(start) {
		return 0
	}
	return int((end.Unix()-start.Unix())/secondsPerDay) + 1
}

const secondsPerDay = 24 * 60 * 60

// Calendar returns one Day per date in [start, end], both inclusive. An
// inverted range produces no columns. Callers bound the range with DaySpan
// first; Calendar itself allocates whatever it is asked for.
func Calendar(start, end time.Time) []domain.Day {
	n := DaySpan(start, end)
	if n == 0 {
		return []domain.Day{}
	}
	start, end = DateOnly(start), DateOnly(end)
	days := make([]domain.Day, 0, n)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, domain.Day{
			Date:  d,
			Key:   d.Format(domain.DayKeyLayout),
			Label: DayLabel(d),
		})
	}
	return days
}

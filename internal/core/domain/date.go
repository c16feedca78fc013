package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// Date is a calendar date without clock or zone, carried on the wire as
// "YYYY-MM-DD".
type Date struct {
	time.Time
}

// dateLayouts are tried in order; day-first forms come from the sales
// spreadsheets.
var dateLayouts = []string{
	DayKeyLayout,
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"02/01/06",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

var ErrBadDate = errors.New("unrecognised date")

// NewDate truncates t to its calendar date.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts ISO dates and the day-first forms used in the order
// sheets ("31/12/2025").
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewDate(t), nil
		}
	}
	return Date{}, ErrBadDate
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DayKeyLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if strings.TrimSpace(s) == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

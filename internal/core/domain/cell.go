package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Cell is a raw value typed into the schedule editor or read from an
// imported sheet. It keeps the textual form of whatever arrived (a JSON
// number, string or bool) and is only interpreted by the calculator's
// coercion functions. A JSON null or an absent value is the empty Cell.
type Cell string

// NumberCell builds a Cell from an integer count.
func NumberCell(n int64) Cell {
	return Cell(strconv.FormatInt(n, 10))
}

// UnmarshalJSON accepts any JSON scalar. Objects and arrays are kept as
// their raw text so they later coerce to zero instead of failing the
// whole request.
func (c *Cell) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = Cell(s)
		return nil
	}
	*c = Cell(data)
	return nil
}

// MarshalJSON writes numeric cells as JSON numbers, blank cells as null
// and anything else as a string.
func (c Cell) MarshalJSON() ([]byte, error) {
	if c == "" {
		return []byte("null"), nil
	}
	if _, err := strconv.ParseFloat(string(c), 64); err == nil && json.Valid([]byte(c)) {
		return []byte(c), nil
	}
	return json.Marshal(string(c))
}

package calc

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ParseNonNegativeIntOrZero coerces a day cell to an impact count. Whole
// numbers are taken as-is and finite decimals are truncated toward zero,
// since spreadsheets hand integers over as "3.0". Counts beyond the int64
// range saturate at math.MaxInt64. Blank, non-numeric, negative or
// non-finite input yields 0. It never fails.
func ParseNonNegativeIntOrZero(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n < 0 {
			return 0
		}
		return n
	}
	f, err := strconv.ParseFloat(s, 64)
	if errors.Is(err, strconv.ErrRange) && f > 0 {
		return math.MaxInt64
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	if f >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(f)
}

// addImpacts sums two non-negative counts, saturating at math.MaxInt64.
func addImpacts(a, b int64) int64 {
	if a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}

// ParseFloatOrZero coerces a tariff cell to a price per impact. Blank,
// non-numeric, negative or non-finite input yields 0. It never fails.
func ParseFloatOrZero(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

package parser

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDate is returned when a date field is not exactly eight
// digits in ddmmyyyy order. Callers log it and continue with a zero date.
var ErrInvalidDate = errors.New("invalid date")

// ParseDecimal converts Brazilian-formatted numeric text to a float64.
// The comma is the decimal separator and the dot the thousands separator
// ("1.234,56" -> 1234.56). Text that already uses a dot as the decimal
// point parses unchanged, so the function is idempotent on normalized
// output. An empty field is a legitimate zero, and so is unparseable
// garbage: tax value columns are frequently blank in real files and a
// single bad cell must not abort the run.
func ParseDecimal(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	hasComma := strings.Contains(s, ",")
	if hasComma {
		// Dots left of a comma can only be thousands separators.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseDate parses the SPED ddmmyyyy date format (eight digits, no
// separators). Anything else is a data-quality problem reported as
// ErrInvalidDate.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) != 8 {
		return time.Time{}, ErrInvalidDate
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return time.Time{}, ErrInvalidDate
		}
	}

	t, err := time.Parse("02012006", s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

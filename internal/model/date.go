package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDate is returned when a date cannot be parsed.
var ErrInvalidDate = errors.New("invalid date")

// DateLayout is the ledger's calendar date format.
const DateLayout = "2006-01-02"

// ParseDate parses a ledger date. It accepts YYYY-MM-DD and RFC 3339
// timestamps; timestamps keep their own calendar day. The result is always
// midnight UTC so day arithmetic never crosses a DST boundary.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

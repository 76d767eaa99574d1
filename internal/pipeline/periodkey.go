package pipeline

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/cashpilot/internal/model"
)

// ErrInvalidDate is returned when a date or period key cannot be parsed.
var ErrInvalidDate = model.ErrInvalidDate

// ParseDate parses a calendar date. It accepts YYYY-MM-DD and RFC 3339
// timestamps and always returns midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return model.ParseDate(s)
}

// FormatDateKey formats t as a zero-padded YYYY-MM-DD string.
func FormatDateKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// ISOWeekKey returns the ISO week key (YYYY-WNN) for a date string.
// The week year is the year of that week's Thursday, so 2025-12-30 is 2026-W01.
func ISOWeekKey(date string) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return isoWeekKey(t), nil
}

// YearKey returns the calendar year (YYYY) of a date string.
func YearKey(date string) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return yearKey(t), nil
}

// ParseKey recovers a date from a period key. ISO week keys resolve to the
// Monday of that week, year keys to January 1, anything else is parsed as a date.
func ParseKey(key string) (time.Time, error) {
	if i := strings.Index(key, "-W"); i > 0 {
		year, err := strconv.Atoi(key[:i])
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, key)
		}
		week, err := strconv.Atoi(key[i+2:])
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, key)
		}
		// Week 1 is the week holding January 4.
		jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
		wd := int(jan4.Weekday())
		if wd == 0 {
			wd = 7
		}
		week1Monday := jan4.AddDate(0, 0, 1-wd)
		return week1Monday.AddDate(0, 0, (week-1)*7), nil
	}
	if isYearKey(key) {
		year, _ := strconv.Atoi(key)
		return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), nil
	}
	return ParseDate(key)
}

// MonthsElapsed returns the number of calendar months from startKey to
// currentKey. Either may be a date, an ISO week key or a year key.
func MonthsElapsed(startKey, currentKey string) (int, error) {
	start, err := ParseKey(startKey)
	if err != nil {
		return 0, err
	}
	current, err := ParseKey(currentKey)
	if err != nil {
		return 0, err
	}
	return (current.Year()-start.Year())*12 + int(current.Month()) - int(start.Month()), nil
}

func isoWeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

func yearKey(t time.Time) string {
	return fmt.Sprintf("%04d", t.Year())
}

func isYearKey(key string) bool {
	if len(key) != 4 {
		return false
	}
	for _, r := range key {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween returns whole days from a to b, rounded up.
func daysBetween(a, b time.Time) int {
	d := b.Sub(a)
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) > 0 {
		days++
	}
	return days
}

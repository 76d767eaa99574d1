// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/theirongolddev/cashpilot/internal/model"
)

// FormatCurrency formats a dollar amount with separators and cents.
// e.g., 1234.5 -> "$1,234.50", -20 -> "-$20.00"
func FormatCurrency(v float64) string {
	if v < 0 {
		return "-$" + humanize.FormatFloat("#,###.##", -v)
	}
	return "$" + humanize.FormatFloat("#,###.##", v)
}

// FormatCompactCurrency formats an amount for narrow columns.
// e.g., 950 -> "$950", 12345 -> "$12.3k", 2500000 -> "$2.5M"
func FormatCompactCurrency(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("%s$%.1fM", sign, v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("%s$%.1fk", sign, v/1_000)
	default:
		return fmt.Sprintf("%s$%.0f", sign, v)
	}
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatDelta formats the signed difference between two amounts.
func FormatDelta(current, previous float64) string {
	delta := current - previous
	if delta >= 0 {
		return "+" + FormatCurrency(delta)
	}
	return FormatCurrency(delta)
}

// FormatMonths formats a month count with one decimal.
func FormatMonths(m float64) string {
	return fmt.Sprintf("%.1f months", m)
}

// FormatRunway formats runway for display. Without a burn rate there is no
// meaningful runway, so it reads "N/A".
func FormatRunway(r model.RunwayMetrics) string {
	if r.BurnRate <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.1f Months", r.Months)
}

// FormatXAxisLabel labels a chart date relative to start: "Today", "+Nd" for
// the first two weeks, "+Nw" up to 60 days, then the month abbreviation.
// Unparseable dates are returned unchanged.
func FormatXAxisLabel(date string, start time.Time) string {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	days := int(d.Sub(s).Hours() / 24)

	switch {
	case days == 0:
		return "Today"
	case days <= 14:
		return fmt.Sprintf("+%dd", days)
	case days <= 60:
		return fmt.Sprintf("+%dw", days/7)
	default:
		return d.Format("Jan")
	}
}

// FormatOptionalDays renders a day count that may be absent.
func FormatOptionalDays(days *int) string {
	if days == nil {
		return "-"
	}
	return fmt.Sprintf("%dd", *days)
}

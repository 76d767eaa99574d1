package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/cashpilot/internal/model"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{12.5, "$12.50"},
		{1234.5, "$1,234.50"},
		{1234567.891, "$1,234,567.89"},
		{-20, "-$20.00"},
	}
	for _, tt := range tests {
		if got := FormatCurrency(tt.in); got != tt.want {
			t.Errorf("FormatCurrency(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatCompactCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{950, "$950"},
		{12345, "$12.3k"},
		{2_500_000, "$2.5M"},
		{-4200, "-$4.2k"},
	}
	for _, tt := range tests {
		if got := FormatCompactCurrency(tt.in); got != tt.want {
			t.Errorf("FormatCompactCurrency(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	if got := FormatNumber(1234567); got != "1,234,567" {
		t.Errorf("FormatNumber = %q", got)
	}
	if got := FormatNumber(-1000); got != "-1,000" {
		t.Errorf("FormatNumber(-1000) = %q", got)
	}
}

func TestFormatDelta(t *testing.T) {
	if got := FormatDelta(1500, 1000); got != "+$500.00" {
		t.Errorf("FormatDelta up = %q", got)
	}
	if got := FormatDelta(1000, 1500); got != "-$500.00" {
		t.Errorf("FormatDelta down = %q", got)
	}
}

func TestFormatRunway(t *testing.T) {
	tests := []struct {
		r    model.RunwayMetrics
		want string
	}{
		{model.RunwayMetrics{Months: 5, BurnRate: 2000}, "5.0 Months"},
		{model.RunwayMetrics{Months: 2.3, BurnRate: 400}, "2.3 Months"},
		{model.RunwayMetrics{Months: 0, BurnRate: 0}, "N/A"},
		{model.RunwayMetrics{Months: 0, BurnRate: 500, AvailableCash: -1000}, "0.0 Months"},
	}
	for _, tt := range tests {
		if got := FormatRunway(tt.r); got != tt.want {
			t.Errorf("FormatRunway(%+v) = %q, want %q", tt.r, got, tt.want)
		}
	}
}

func TestFormatXAxisLabel(t *testing.T) {
	start := time.Date(2024, time.March, 1, 17, 30, 0, 0, time.UTC)
	tests := []struct {
		date string
		want string
	}{
		{"2024-03-01", "Today"},
		{"2024-03-02", "+1d"},
		{"2024-03-15", "+14d"},
		{"2024-03-16", "+2w"},
		{"2024-04-30", "+8w"},
		{"2024-05-01", "May"},
		{"not a date", "not a date"},
	}
	for _, tt := range tests {
		if got := FormatXAxisLabel(tt.date, start); got != tt.want {
			t.Errorf("FormatXAxisLabel(%q) = %q, want %q", tt.date, got, tt.want)
		}
	}
}

func TestFormatOptionalDays(t *testing.T) {
	n := 45
	if got := FormatOptionalDays(&n); got != "45d" {
		t.Errorf("FormatOptionalDays(45) = %q", got)
	}
	if got := FormatOptionalDays(nil); got != "-" {
		t.Errorf("FormatOptionalDays(nil) = %q", got)
	}
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(Table{
		Title:   "Totals",
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Cash In", "$1,200.00"},
			{"---"},
			{"Net", "$600.00"},
		},
	})
	for _, want := range []string{"Totals", "Metric", "Cash In", "$1,200.00", "Net", "├", "╰"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if RenderTable(Table{}) != "" {
		t.Error("empty table should render nothing")
	}
}

func TestRenderSparkline(t *testing.T) {
	if got := RenderSparkline(nil); got != "" {
		t.Errorf("RenderSparkline(nil) = %q", got)
	}
	got := []rune(RenderSparkline([]float64{-100, 0, 100}))
	if len(got) != 3 || got[0] != '▁' || got[2] != '█' {
		t.Errorf("RenderSparkline = %q, want low to high", string(got))
	}
	flat := []rune(RenderSparkline([]float64{5, 5, 5}))
	if len(flat) != 3 || flat[0] != flat[2] {
		t.Errorf("flat sparkline = %q", string(flat))
	}
}

func TestRenderBar(t *testing.T) {
	if got := RenderBar(10, 0, 20); got != "" {
		t.Errorf("RenderBar with no max = %q", got)
	}
	if got := RenderBar(-50, 100, 20); strings.Count(got, "█") != 10 {
		t.Errorf("RenderBar(-50) = %q, want 10 blocks", got)
	}
	if got := RenderBar(500, 100, 20); strings.Count(got, "█") != 20 {
		t.Errorf("RenderBar over max = %q, want capped at 20", got)
	}
}

func TestRenderRisk(t *testing.T) {
	got := RenderRisk(model.RiskScoreResult{Score: 72, Category: model.RiskHigh})
	if !strings.Contains(got, "72 high") {
		t.Errorf("RenderRisk = %q", got)
	}
}

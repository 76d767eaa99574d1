package pipeline

import (
	"math"
	"strings"
	"time"

	"github.com/theirongolddev/cashpilot/internal/model"
)

// Scope selects the horizon of a balance projection.
type Scope string

const (
	ScopeWeek   Scope = "week"
	ScopeMonth  Scope = "month"
	ScopeYear   Scope = "year"
	ScopeCustom Scope = "custom"
)

// customDailyLimit is the longest custom range still drawn with daily points.
const customDailyLimit = 60

// daysPerMonth approximates a month for cash flow and fixed-cost amortization.
const daysPerMonth = 30

// ParseScope maps user input to a Scope, defaulting to ScopeMonth.
func ParseScope(s string) Scope {
	switch sc := Scope(strings.ToLower(strings.TrimSpace(s))); sc {
	case ScopeWeek, ScopeYear, ScopeCustom:
		return sc
	default:
		return ScopeMonth
	}
}

// AverageDailyCashFlow returns net cash flow per day between the first and
// last dated events. The span is at least one day; no events yields zero.
func AverageDailyCashFlow(records []model.CashRecord) float64 {
	events := expandEvents(records)
	if len(events) == 0 {
		return 0
	}
	sortEvents(events)

	days := max(1, daysBetween(events[0].date, events[len(events)-1].date))

	var total float64
	for _, e := range events {
		total += e.amount
	}
	return total / float64(days)
}

// WeekProjection projects 7 daily balances starting at from.
// Networth carries a single day of fixed cost on every point.
func WeekProjection(from time.Time, currentBalance, fixedCost, avgDailyCashFlow float64) []model.ChartDataPoint {
	return dailyProjection(civilDate(from), 7, currentBalance, fixedCost/daysPerMonth, avgDailyCashFlow)
}

// MonthProjection projects 30 daily balances starting at from.
// Networth carries one month of fixed cost on every point.
func MonthProjection(from time.Time, currentBalance, fixedCost, avgDailyCashFlow float64) []model.ChartDataPoint {
	return dailyProjection(civilDate(from), 30, currentBalance, daysPerMonth*(fixedCost/daysPerMonth), avgDailyCashFlow)
}

// YearProjection projects 12 monthly balances, dated the first of each month
// starting with from's month. Networth accumulates one fixed cost per month.
func YearProjection(from time.Time, currentBalance, fixedCost, avgDailyCashFlow float64) []model.ChartDataPoint {
	return monthlyProjection(civilDate(from), 12, currentBalance, fixedCost, avgDailyCashFlow)
}

// CustomProjection projects balances over the inclusive range start..end.
// Ranges up to 60 days get daily points, longer ranges one point per month.
// An end before start yields an empty series.
func CustomProjection(currentBalance, fixedCost float64, start, end string, avgDailyCashFlow float64) ([]model.ChartDataPoint, error) {
	s, err := ParseDate(start)
	if err != nil {
		return nil, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return nil, err
	}

	span := daysBetween(s, e) + 1
	switch {
	case span <= 0:
		return []model.ChartDataPoint{}, nil
	case span <= customDailyLimit:
		return dailyProjection(s, span, currentBalance, fixedCost/daysPerMonth, avgDailyCashFlow), nil
	default:
		months := int(math.Ceil(float64(span) / daysPerMonth))
		return monthlyProjection(s, months, currentBalance, fixedCost, avgDailyCashFlow), nil
	}
}

// GenerateCashflowChartData projects the balance forward from from, using
// the average daily cash flow of records. Unknown scopes project a month.
func GenerateCashflowChartData(records []model.CashRecord, currentBalance, fixedCost float64, scope Scope, from time.Time) []model.ChartDataPoint {
	avg := AverageDailyCashFlow(records)

	switch scope {
	case ScopeWeek:
		return WeekProjection(from, currentBalance, fixedCost, avg)
	case ScopeYear:
		return YearProjection(from, currentBalance, fixedCost, avg)
	default:
		return MonthProjection(from, currentBalance, fixedCost, avg)
	}
}

// dailyProjection: point 0 is today and carries no cash flow of its own.
func dailyProjection(start time.Time, n int, balance, deduction, avgDaily float64) []model.ChartDataPoint {
	points := make([]model.ChartDataPoint, 0, n)
	running := balance
	for i := 0; i < n; i++ {
		if i > 0 {
			running += avgDaily
		}
		points = append(points, model.ChartDataPoint{
			Date:     FormatDateKey(start.AddDate(0, 0, i)),
			Balance:  running,
			Networth: running - deduction,
		})
	}
	return points
}

func monthlyProjection(start time.Time, n int, balance, fixedCost, avgDaily float64) []model.ChartDataPoint {
	points := make([]model.ChartDataPoint, 0, n)
	running := balance
	for i := 0; i < n; i++ {
		if i > 0 {
			running += avgDaily * daysPerMonth
		}
		date := time.Date(start.Year(), start.Month()+time.Month(i), 1, 0, 0, 0, 0, time.UTC)
		points = append(points, model.ChartDataPoint{
			Date:     FormatDateKey(date),
			Balance:  running,
			Networth: running - float64(i)*fixedCost,
		})
	}
	return points
}

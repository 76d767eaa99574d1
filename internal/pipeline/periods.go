package pipeline

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/cashpilot/internal/model"
)

// PeriodType selects the bucket size for cash flow bar charts.
type PeriodType string

const (
	PeriodWeek  PeriodType = "week"
	PeriodMonth PeriodType = "month"
)

// ParsePeriodType maps user input to a PeriodType, defaulting to PeriodMonth.
func ParsePeriodType(s string) PeriodType {
	if PeriodType(strings.ToLower(strings.TrimSpace(s))) == PeriodWeek {
		return PeriodWeek
	}
	return PeriodMonth
}

type flowEvent struct {
	date    time.Time
	cashIn  float64
	cashOut float64
}

// AggregateCashFlowByPeriod totals cash in and cash out per period for a bar
// chart. Only positive, finite, dated legs count. Periods appear in the order
// they are first reached when walking events by date.
func AggregateCashFlowByPeriod(records []model.CashRecord, periodType PeriodType) []model.CashFlowPeriod {
	periods := []model.CashFlowPeriod{}
	if len(records) == 0 {
		return periods
	}

	var events []flowEvent
	for _, r := range records {
		if finite(r.CashIn) && *r.CashIn > 0 && r.DateIn != "" {
			if d, err := ParseDate(r.DateIn); err == nil {
				events = append(events, flowEvent{date: d, cashIn: *r.CashIn})
			}
		}
		if finite(r.CashOut) && *r.CashOut > 0 && r.DateOut != "" {
			if d, err := ParseDate(r.DateOut); err == nil {
				events = append(events, flowEvent{date: d, cashOut: *r.CashOut})
			}
		}
	}
	if len(events) == 0 {
		return periods
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].date.Before(events[j].date)
	})

	type totals struct {
		in, out decimal.Decimal
	}
	var order []string
	byLabel := make(map[string]*totals)

	for _, e := range events {
		label := PeriodLabel(e.date, periodType)
		tot, ok := byLabel[label]
		if !ok {
			tot = &totals{}
			byLabel[label] = tot
			order = append(order, label)
		}
		tot.in = tot.in.Add(decimal.NewFromFloat(e.cashIn))
		tot.out = tot.out.Add(decimal.NewFromFloat(e.cashOut))
	}

	periods = make([]model.CashFlowPeriod, 0, len(order))
	for _, label := range order {
		tot := byLabel[label]
		periods = append(periods, model.CashFlowPeriod{
			Period:  label,
			CashIn:  tot.in.InexactFloat64(),
			CashOut: tot.out.InexactFloat64(),
			Net:     tot.in.Sub(tot.out).InexactFloat64(),
		})
	}
	return periods
}

// PeriodLabel returns the bar chart label for t: "Jan 2024" for months,
// "Week N" for weeks. Week numbers count Sunday-started weeks from January 1
// and deliberately differ from ISO week numbers.
func PeriodLabel(t time.Time, periodType PeriodType) string {
	if periodType != PeriodWeek {
		return t.Format("Jan 2006")
	}
	jan1 := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	pastDays := civilDate(t).Sub(jan1).Hours() / 24
	week := int(math.Ceil((pastDays + float64(jan1.Weekday()) + 1) / 7))
	return fmt.Sprintf("Week %d", week)
}

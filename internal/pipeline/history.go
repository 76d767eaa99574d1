package pipeline

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/cashpilot/internal/model"
)

// AggregateByWeek groups cash events by ISO week and returns the running
// balance at the end of each week, oldest first.
// A positive, finite fixedCost (per month) is amortized into Networth from the
// first event; any other value leaves Networth equal to Balance.
func AggregateByWeek(records []model.CashRecord, fixedCost float64) []model.ChartDataPoint {
	return aggregateRunning(records, fixedCost, isoWeekKey)
}

// AggregateByYear is AggregateByWeek with calendar-year buckets.
func AggregateByYear(records []model.CashRecord, fixedCost float64) []model.ChartDataPoint {
	return aggregateRunning(records, fixedCost, yearKey)
}

func aggregateRunning(records []model.CashRecord, fixedCost float64, keyFn func(time.Time) string) []model.ChartDataPoint {
	points := []model.ChartDataPoint{}
	if len(records) == 0 {
		return points
	}

	events := expandEvents(records)
	if len(events) == 0 {
		return points
	}

	changes := make(map[string]decimal.Decimal)
	first := events[0].date
	for _, e := range events {
		key := keyFn(e.date)
		changes[key] = changes[key].Add(decimal.NewFromFloat(e.amount))
		if e.date.Before(first) {
			first = e.date
		}
	}

	// Keys are fixed width and zero padded, so lexical order is chronological.
	keys := make([]string, 0, len(changes))
	for k := range changes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	firstKey := FormatDateKey(first)
	chargeCost := fixedCost > 0 && isFinite(fixedCost)
	monthlyCost := decimal.Zero
	if chargeCost {
		monthlyCost = decimal.NewFromFloat(fixedCost)
	}
	running := decimal.Zero

	points = make([]model.ChartDataPoint, 0, len(keys))
	for _, k := range keys {
		running = running.Add(changes[k])
		networth := running
		if chargeCost {
			if months, err := MonthsElapsed(firstKey, k); err == nil {
				networth = running.Sub(monthlyCost.Mul(decimal.NewFromInt(int64(months))))
			}
		}
		points = append(points, model.ChartDataPoint{
			Date:     k,
			Balance:  running.InexactFloat64(),
			Networth: networth.InexactFloat64(),
		})
	}
	return points
}

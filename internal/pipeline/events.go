package pipeline

import (
	"math"
	"sort"
	"time"

	"github.com/theirongolddev/cashpilot/internal/model"
)

// cashEvent is one dated leg of a record: positive for cash in, negative for cash out.
type cashEvent struct {
	date   time.Time
	amount float64
}

// expandEvents turns records into dated cash events. A record yields up to
// two events, which may land in different buckets. Legs without a date, with
// a date that does not parse, or with a NaN or infinite amount are left out.
func expandEvents(records []model.CashRecord) []cashEvent {
	events := make([]cashEvent, 0, len(records))
	for _, r := range records {
		if finite(r.CashIn) && r.DateIn != "" {
			if d, err := ParseDate(r.DateIn); err == nil {
				events = append(events, cashEvent{date: d, amount: *r.CashIn})
			}
		}
		if finite(r.CashOut) && r.DateOut != "" {
			if d, err := ParseDate(r.DateOut); err == nil {
				events = append(events, cashEvent{date: d, amount: -*r.CashOut})
			}
		}
	}
	return events
}

// finite reports whether v is present and neither NaN nor infinite.
func finite(v *float64) bool {
	return v != nil && isFinite(*v)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func sortEvents(events []cashEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].date.Before(events[j].date)
	})
}

// CashRecords narrows transactions to the records the engine works on.
func CashRecords(txs []model.Transaction) []model.CashRecord {
	records := make([]model.CashRecord, len(txs))
	for i, t := range txs {
		records[i] = t.Cash()
	}
	return records
}

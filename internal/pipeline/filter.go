package pipeline

import (
	"time"

	"github.com/theirongolddev/cashpilot/internal/model"
)

// FilterByDateRange returns transactions with at least one dated leg in
// [since, until). Zero bounds are open.
func FilterByDateRange(txs []model.Transaction, since, until time.Time) []model.Transaction {
	if since.IsZero() && until.IsZero() {
		return txs
	}

	var result []model.Transaction
	for _, t := range txs {
		if inRange(t.DateIn, since, until) || inRange(t.DateOut, since, until) {
			result = append(result, t)
		}
	}
	return result
}

// FilterByStatus returns transactions with the given status.
// An empty status keeps everything.
func FilterByStatus(txs []model.Transaction, status model.TransactionStatus) []model.Transaction {
	if status == "" {
		return txs
	}
	var result []model.Transaction
	for _, t := range txs {
		if t.Status == status {
			result = append(result, t)
		}
	}
	return result
}

func inRange(date string, since, until time.Time) bool {
	if date == "" {
		return false
	}
	d, err := ParseDate(date)
	if err != nil {
		return false
	}
	if !since.IsZero() && d.Before(civilDate(since)) {
		return false
	}
	if !until.IsZero() && !d.Before(civilDate(until)) {
		return false
	}
	return true
}

// Package pipeline turns ledger records into cashflow metrics, chart series
// and projections, and orchestrates loading ledgers from disk.
package pipeline

import (
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/cashpilot/internal/model"
)

// CalculateCashflowMetrics sums cash in and cash out across records.
// Dates play no part; absent, NaN and infinite amounts count as zero, as does
// a non-finite initialBalance.
func CalculateCashflowMetrics(records []model.CashRecord, initialBalance float64) model.CashflowMetrics {
	in, out := decimal.Zero, decimal.Zero
	for _, r := range records {
		if finite(r.CashIn) {
			in = in.Add(decimal.NewFromFloat(*r.CashIn))
		}
		if finite(r.CashOut) {
			out = out.Add(decimal.NewFromFloat(*r.CashOut))
		}
	}
	net := in.Sub(out)

	opening := decimal.Zero
	if isFinite(initialBalance) {
		opening = decimal.NewFromFloat(initialBalance)
	}

	return model.CashflowMetrics{
		TotalCashIn:    in.InexactFloat64(),
		TotalCashOut:   out.InexactFloat64(),
		NetCashFlow:    net.InexactFloat64(),
		CurrentBalance: opening.Add(net).InexactFloat64(),
	}
}

// CalculateRunway returns how many months currentBalance lasts at
// monthlyBurnRate. A non-positive burn rate or balance yields zero months.
func CalculateRunway(currentBalance, monthlyBurnRate float64) model.RunwayMetrics {
	var months float64
	if monthlyBurnRate > 0 {
		months = currentBalance / monthlyBurnRate
	}
	return model.RunwayMetrics{
		Months:        max(0, months),
		BurnRate:      monthlyBurnRate,
		AvailableCash: currentBalance,
	}
}

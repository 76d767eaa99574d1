// Package scoring maps payment-behaviour metrics to 0-100 risk scores.
package scoring

import (
	"math"

	"github.com/theirongolddev/cashpilot/internal/model"
)

// Category thresholds shared by supplier and customer scores.
const (
	mediumThreshold = 40
	highThreshold   = 70
)

// CategoryFor derives the risk category from a score.
func CategoryFor(score int) model.RiskCategory {
	switch {
	case score < mediumThreshold:
		return model.RiskLow
	case score < highThreshold:
		return model.RiskMedium
	default:
		return model.RiskHigh
	}
}

// SupplierScore scores a supplier from its days payable outstanding.
// Short DPO means strict payment terms and therefore more cash pressure:
//
//	DPO < 15    70-100  high
//	DPO 15-30   69-40   medium
//	DPO > 30    38-0    low (0 from DPO 50)
func SupplierScore(dpo int) model.RiskScoreResult {
	var score int
	switch {
	case dpo < 15:
		score = max(70, 100-dpo*2)
	case dpo <= 30:
		score = roundHalfUp(69 + float64(dpo-15)*(-29.0/15.0))
	default:
		score = max(0, 100-dpo*2)
	}
	return model.RiskScoreResult{Score: score, Category: CategoryFor(score)}
}

// CustomerScore scores a customer from its days sales outstanding.
// Long DSO means a slow payer:
//
//	DSO < 30    0-38    low
//	DSO 30-50   40-69   medium
//	DSO > 50    70-100  high (100 from DSO 100)
func CustomerScore(dso int) model.RiskScoreResult {
	var score int
	switch {
	case dso < 30:
		score = max(0, roundHalfUp(float64(dso)*1.3))
	case dso <= 50:
		score = roundHalfUp(40 + float64(dso-30)*1.45)
	default:
		score = min(100, roundHalfUp(70+float64(dso-50)*0.6))
	}
	return model.RiskScoreResult{Score: score, Category: CategoryFor(score)}
}

// SupplierRiskScore returns only the score part of SupplierScore.
func SupplierRiskScore(dpo int) int {
	return SupplierScore(dpo).Score
}

// CustomerRiskScore returns only the score part of CustomerScore.
func CustomerRiskScore(dso int) int {
	return CustomerScore(dso).Score
}

// roundHalfUp rounds .5 toward positive infinity.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

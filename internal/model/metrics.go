package model

// CashflowMetrics holds the flat totals across a set of transactions.
type CashflowMetrics struct {
	TotalCashIn    float64
	TotalCashOut   float64
	NetCashFlow    float64
	CurrentBalance float64
}

// ChartDataPoint is one point of a balance line chart.
// Date is YYYY-MM-DD for projections and a bucket key for history series.
type ChartDataPoint struct {
	Date     string  `json:"date"`
	Balance  float64 `json:"balance"`
	Networth float64 `json:"networth"`
}

// CashFlowPeriod holds per-bucket totals for a bar chart.
type CashFlowPeriod struct {
	Period  string  `json:"period"`
	CashIn  float64 `json:"cash_in"`
	CashOut float64 `json:"cash_out"` // positive
	Net     float64 `json:"net"`
}

// RiskCategory buckets a 0-100 risk score.
type RiskCategory string

const (
	RiskLow    RiskCategory = "low"
	RiskMedium RiskCategory = "medium"
	RiskHigh   RiskCategory = "high"
)

// RiskScoreResult is a risk score with its derived category.
type RiskScoreResult struct {
	Score    int          `json:"score"`
	Category RiskCategory `json:"category"`
}

// EntityRisk is a scored supplier or customer.
type EntityRisk struct {
	ID     string
	Name   string
	Days   int // DPO for suppliers, DSO for customers
	Scored bool
	Result RiskScoreResult
}

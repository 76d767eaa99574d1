package model

// RunwayMetrics holds months of runway at a monthly burn rate.
type RunwayMetrics struct {
	Months        float64
	BurnRate      float64
	AvailableCash float64
}

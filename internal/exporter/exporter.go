// Package exporter publishes cashflow figures as Prometheus gauges written
// to a node-exporter textfile.
package exporter

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/theirongolddev/cashpilot/internal/model"
)

// Snapshot is one point-in-time view of the books.
type Snapshot struct {
	Metrics          model.CashflowMetrics
	Runway           model.RunwayMetrics
	ProjectedBalance map[string]float64 // by projection scope, end of horizon
	Suppliers        []model.EntityRisk
	Customers        []model.EntityRisk
}

// Registry owns a private Prometheus registry and the cashpilot gauges.
type Registry struct {
	reg *prometheus.Registry

	cashIn        prometheus.Gauge
	cashOut       prometheus.Gauge
	balance       prometheus.Gauge
	runwayMonths  prometheus.Gauge
	projected     *prometheus.GaugeVec
	supplierScore *prometheus.GaugeVec
	customerScore *prometheus.GaugeVec
}

// NewRegistry creates the gauges and registers them.
func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		cashIn: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cashpilot_cash_in_total",
			Help: "Total cash received across loaded transactions.",
		}),
		cashOut: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cashpilot_cash_out_total",
			Help: "Total cash paid out across loaded transactions.",
		}),
		balance: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cashpilot_balance",
			Help: "Initial balance plus net cash flow.",
		}),
		runwayMonths: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cashpilot_runway_months",
			Help: "Months the balance covers at the monthly fixed cost. Zero without a fixed cost.",
		}),
		projected: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "cashpilot_projected_balance",
			Help: "Projected balance at the end of each projection horizon.",
		}, []string{"scope"}),
		supplierScore: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "cashpilot_supplier_risk_score",
			Help: "Supplier risk score (0-100) derived from days payable outstanding.",
		}, []string{"id", "name"}),
		customerScore: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "cashpilot_customer_risk_score",
			Help: "Customer risk score (0-100) derived from days sales outstanding.",
		}, []string{"id", "name"}),
	}

	r.reg.MustRegister(
		r.cashIn, r.cashOut, r.balance, r.runwayMonths,
		r.projected, r.supplierScore, r.customerScore,
	)
	return r
}

// Record sets every gauge from s. Labelled series not present in s are dropped.
// Entities without a DPO/DSO are not exported. Risk series are keyed by
// entity id, so entities sharing a name stay separate.
func (r *Registry) Record(s Snapshot) {
	r.cashIn.Set(s.Metrics.TotalCashIn)
	r.cashOut.Set(s.Metrics.TotalCashOut)
	r.balance.Set(s.Metrics.CurrentBalance)
	r.runwayMonths.Set(s.Runway.Months)

	r.projected.Reset()
	for scope, v := range s.ProjectedBalance {
		r.projected.WithLabelValues(scope).Set(v)
	}

	r.supplierScore.Reset()
	for _, e := range s.Suppliers {
		if e.Scored {
			r.supplierScore.WithLabelValues(e.ID, e.Name).Set(float64(e.Result.Score))
		}
	}
	r.customerScore.Reset()
	for _, e := range s.Customers {
		if e.Scored {
			r.customerScore.WithLabelValues(e.ID, e.Name).Set(float64(e.Result.Score))
		}
	}
}

// WriteTextfile writes all gauges to path in the text exposition format.
// The file is written atomically.
func (r *Registry) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}

// Gatherer exposes the underlying registry.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/cashpilot/internal/exporter"
	"github.com/theirongolddev/cashpilot/internal/pipeline"
	"github.com/theirongolddev/cashpilot/internal/scoring"
)

var flagTextfile string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write dashboard gauges for the node-exporter textfile collector",
	Long: `Write cash totals, balance, runway, projected balances and risk scores
in the Prometheus text exposition format. Point --textfile into the
node-exporter textfile directory and run from cron.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&flagTextfile, "textfile", "", "Output path, e.g. /var/lib/node_exporter/cashpilot.prom")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	if flagTextfile == "" {
		return errors.New("--textfile is required")
	}

	result, err := loadData()
	if err != nil {
		return err
	}

	d := buildDashboard(result.Ledger)
	now := time.Now()

	projected := make(map[string]float64)
	for _, scope := range []pipeline.Scope{pipeline.ScopeWeek, pipeline.ScopeMonth, pipeline.ScopeYear} {
		points := pipeline.GenerateCashflowChartData(d.Records, d.Metrics.CurrentBalance, appCfg.Settings.FixedCost, scope, now)
		if len(points) > 0 {
			projected[string(scope)] = points[len(points)-1].Balance
		}
	}

	reg := exporter.NewRegistry()
	reg.Record(exporter.Snapshot{
		Metrics:          d.Metrics,
		Runway:           d.Runway,
		ProjectedBalance: projected,
		Suppliers:        scoring.ScoreSuppliers(result.Ledger.Suppliers),
		Customers:        scoring.ScoreCustomers(result.Ledger.Customers),
	})

	if err := reg.WriteTextfile(flagTextfile); err != nil {
		return err
	}
	log.WithField("path", flagTextfile).Info("metrics written")
	if !flagQuiet {
		fmt.Printf("  Wrote %s\n", flagTextfile)
	}
	return nil
}

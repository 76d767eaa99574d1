package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/cashpilot/internal/cli"
	"github.com/theirongolddev/cashpilot/internal/model"
	"github.com/theirongolddev/cashpilot/internal/pipeline"
)

var (
	flagScope string
	flagFrom  string
	flagTo    string
)

var projectionCmd = &cobra.Command{
	Use:   "projection",
	Short: "Project balance and networth forward",
	Long: `Project the balance forward at the average daily cash flow of the loaded
transactions. Networth subtracts the monthly fixed cost.

Scopes: week (7 days), month (30 days), year (12 months), or custom with
--from and --to (daily up to 60 days, monthly beyond).`,
	RunE: runProjection,
}

func init() {
	projectionCmd.Flags().StringVar(&flagScope, "scope", "", "week, month, year or custom (default from config)")
	projectionCmd.Flags().StringVar(&flagFrom, "from", "", "Custom range start (YYYY-MM-DD)")
	projectionCmd.Flags().StringVar(&flagTo, "to", "", "Custom range end (YYYY-MM-DD)")
	rootCmd.AddCommand(projectionCmd)
}

func runProjection(cmd *cobra.Command, _ []string) error {
	scopeArg := flagScope
	if !cmd.Flags().Changed("scope") {
		scopeArg = appCfg.General.DefaultScope
	}
	scope := pipeline.ParseScope(scopeArg)
	if scope == pipeline.ScopeCustom && (flagFrom == "" || flagTo == "") {
		return fmt.Errorf("custom scope needs --from and --to")
	}

	result, err := loadData()
	if err != nil {
		return err
	}
	d := buildDashboard(result.Ledger)
	fixed := appCfg.Settings.FixedCost

	var points []model.ChartDataPoint
	if scope == pipeline.ScopeCustom {
		avg := pipeline.AverageDailyCashFlow(d.Records)
		points, err = pipeline.CustomProjection(d.Metrics.CurrentBalance, fixed, flagFrom, flagTo, avg)
		if err != nil {
			return fmt.Errorf("custom range: %w", err)
		}
	} else {
		points = pipeline.GenerateCashflowChartData(d.Records, d.Metrics.CurrentBalance, fixed, scope, time.Now())
	}

	if len(points) == 0 {
		fmt.Println("\n  Empty range: --to is before --from.")
		return nil
	}

	start, _ := pipeline.ParseDate(points[0].Date)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("PROJECTION  %s", scope)))
	fmt.Println()

	rows := make([][]string, 0, len(points))
	balances := make([]float64, 0, len(points))
	for _, p := range points {
		rows = append(rows, []string{
			p.Date,
			cli.FormatXAxisLabel(p.Date, start),
			cli.FormatCurrency(p.Balance),
			cli.FormatCurrency(p.Networth),
		})
		balances = append(balances, p.Balance)
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "When", "Balance", "Networth"},
		Rows:    rows,
	}))
	fmt.Println()
	fmt.Printf("  Balance  %s\n", cli.RenderSparkline(balances))

	last := points[len(points)-1]
	fmt.Println(cli.RenderNote(fmt.Sprintf("Ends at %s (%s vs today)",
		cli.FormatCurrency(last.Balance), cli.FormatDelta(last.Balance, d.Metrics.CurrentBalance))))

	return nil
}

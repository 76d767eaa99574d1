package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/cashpilot/internal/cli"
	"github.com/theirongolddev/cashpilot/internal/model"
	"github.com/theirongolddev/cashpilot/internal/pipeline"
)

var flagHistoryBy string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Running balance by ISO week or year",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&flagHistoryBy, "by", "week", "Bucket size: week or year")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
	by := strings.ToLower(flagHistoryBy)
	if by != "week" && by != "year" {
		return fmt.Errorf("--by must be week or year, got %q", flagHistoryBy)
	}

	result, err := loadData()
	if err != nil {
		return err
	}
	if len(result.Ledger.Transactions) == 0 {
		noLedgerData()
		return nil
	}

	d := buildDashboard(result.Ledger)
	fixed := appCfg.Settings.FixedCost

	var points []model.ChartDataPoint
	if by == "year" {
		points = pipeline.AggregateByYear(d.Records, fixed)
	} else {
		points = pipeline.AggregateByWeek(d.Records, fixed)
	}

	if len(points) == 0 {
		fmt.Println("\n  No dated cash movements for the selected period.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("HISTORY BY %s  %s", strings.ToUpper(by), windowLabel())))
	fmt.Println()

	rows := make([][]string, 0, len(points))
	balances := make([]float64, 0, len(points))
	prev := 0.0
	for _, p := range points {
		rows = append(rows, []string{
			p.Date,
			cli.FormatDelta(p.Balance, prev),
			cli.FormatCurrency(p.Balance),
			cli.FormatCurrency(p.Networth),
		})
		balances = append(balances, p.Balance)
		prev = p.Balance
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Period", "Change", "Running", "Networth"},
		Rows:    rows,
	}))
	fmt.Println()
	fmt.Printf("  Running  %s\n", cli.RenderSparkline(balances))
	if fixed > 0 {
		fmt.Println(cli.RenderNote(fmt.Sprintf("Networth deducts %s per month since the first movement.",
			cli.FormatCurrency(fixed))))
	}

	return nil
}

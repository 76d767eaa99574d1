package cmd

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/cashpilot/internal/cli"
	"github.com/theirongolddev/cashpilot/internal/pipeline"
)

var flagPeriodsBy string

var periodsCmd = &cobra.Command{
	Use:   "periods",
	Short: "Cash in and out per week or month",
	RunE:  runPeriods,
}

func init() {
	periodsCmd.Flags().StringVar(&flagPeriodsBy, "by", "month", "Bucket size: week or month")
	rootCmd.AddCommand(periodsCmd)
}

func runPeriods(_ *cobra.Command, _ []string) error {
	result, err := loadData()
	if err != nil {
		return err
	}
	if len(result.Ledger.Transactions) == 0 {
		noLedgerData()
		return nil
	}

	d := buildDashboard(result.Ledger)
	periodType := pipeline.ParsePeriodType(flagPeriodsBy)
	periods := pipeline.AggregateCashFlowByPeriod(d.Records, periodType)

	if len(periods) == 0 {
		fmt.Println("\n  No data for the selected period.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("CASH FLOW BY %s  %s", periodType, windowLabel())))
	fmt.Println()

	var maxNet float64
	for _, p := range periods {
		maxNet = math.Max(maxNet, math.Abs(p.Net))
	}

	rows := make([][]string, 0, len(periods))
	for _, p := range periods {
		rows = append(rows, []string{
			p.Period,
			cli.FormatCurrency(p.CashIn),
			cli.FormatCurrency(p.CashOut),
			cli.FormatCurrency(p.Net),
			cli.RenderBar(p.Net, maxNet, 20),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Period", "Cash In", "Cash Out", "Net", ""},
		Rows:    rows,
	}))

	return nil
}

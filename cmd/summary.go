package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/cashpilot/internal/cli"
	"github.com/theirongolddev/cashpilot/internal/model"
	"github.com/theirongolddev/cashpilot/internal/pipeline"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Cash in, cash out, balance and runway",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

// dashboard holds the headline figures shared by summary, projection and
// export. Flow covers only the --days/--status window; the balance in Metrics
// and everything seeded from it always come from the whole ledger.
type dashboard struct {
	Transactions []model.Transaction
	Records      []model.CashRecord
	Flow         model.CashflowMetrics
	Metrics      model.CashflowMetrics
	Runway       model.RunwayMetrics
}

func buildDashboard(ledger model.Ledger) dashboard {
	s := appCfg.Settings
	txs := applyFilters(ledger.Transactions)
	records := pipeline.CashRecords(txs)
	metrics := pipeline.CalculateCashflowMetrics(pipeline.CashRecords(ledger.Transactions), s.InitialBalance)
	return dashboard{
		Transactions: txs,
		Records:      records,
		Flow:         pipeline.CalculateCashflowMetrics(records, 0),
		Metrics:      metrics,
		Runway:       pipeline.CalculateRunway(metrics.CurrentBalance, s.FixedCost),
	}
}

func runSummary(_ *cobra.Command, _ []string) error {
	result, err := loadData()
	if err != nil {
		return err
	}

	if len(result.Ledger.Transactions) == 0 {
		noLedgerData()
		return nil
	}

	d := buildDashboard(result.Ledger)
	if len(d.Transactions) == 0 {
		fmt.Println("\n  No transactions in the selected window.")
		return nil
	}

	s := appCfg.Settings
	flow := d.Flow

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("CASHFLOW  %s", windowLabel())))
	fmt.Println()

	rows := [][]string{
		{"Transactions", cli.FormatNumber(int64(len(d.Transactions)))},
		{"---"},
		{"Cash In", cli.FormatCurrency(flow.TotalCashIn)},
		{"Cash Out", cli.FormatCurrency(flow.TotalCashOut)},
		{"Net Cash Flow", cli.FormatCurrency(flow.NetCashFlow)},
		{"---"},
		{"Opening Balance", cli.FormatCurrency(s.InitialBalance)},
		{"Current Balance", cli.FormatCurrency(d.Metrics.CurrentBalance)},
		{"Baseline", fmt.Sprintf("%s  (%s)", cli.FormatCurrency(s.BaselineAmount),
			cli.FormatDelta(d.Metrics.CurrentBalance, s.BaselineAmount))},
		{"---"},
		{"Fixed Cost/mo", cli.FormatCurrency(s.FixedCost)},
		{"Avg Daily Flow", cli.FormatCurrency(pipeline.AverageDailyCashFlow(d.Records))},
		{"Runway", cli.FormatRunway(d.Runway)},
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	weeks := pipeline.AggregateByWeek(d.Records, s.FixedCost)
	if len(weeks) > 1 {
		values := make([]float64, len(weeks))
		for i, w := range weeks {
			values[i] = w.Balance
		}
		fmt.Println()
		fmt.Printf("  Weekly balance  %s\n", cli.RenderSparkline(values))
		fmt.Println(cli.RenderNote(fmt.Sprintf("%s to %s, as of %s",
			weeks[0].Date, weeks[len(weeks)-1].Date, time.Now().Format("2006-01-02"))))
	}

	return nil
}

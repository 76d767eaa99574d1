package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/cashpilot/internal/cli"
	"github.com/theirongolddev/cashpilot/internal/pipeline"
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Top suppliers, customers and SKUs",
	RunE:  runInsights,
}

func init() {
	rootCmd.AddCommand(insightsCmd)
}

func runInsights(_ *cobra.Command, _ []string) error {
	result, err := loadData()
	if err != nil {
		return err
	}
	if len(result.Ledger.Transactions) == 0 {
		noLedgerData()
		return nil
	}

	ledger := result.Ledger
	ledger.Transactions = applyFilters(ledger.Transactions)
	ins := pipeline.BuildInsights(ledger)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("INSIGHTS  %s", windowLabel())))
	fmt.Println()

	printParties("Top suppliers by cash out", "Cash Out", ins.TopSuppliersByValue, false)
	printParties("Most frequent suppliers", "Cash Out", ins.TopSuppliersByFreq, false)
	printParties("Suppliers with pending payments", "Pending", ins.RiskSuppliers, true)
	printParties("Top customers by cash in", "Cash In", ins.TopCustomersByValue, false)
	printParties("Most frequent customers", "Cash In", ins.TopCustomersByFreq, false)
	printParties("Customers with pending receipts", "Pending", ins.RiskCustomers, true)
	printSKUs("Top SKUs by cash moved", ins.TopSKUsByValue)
	printSKUs("Most frequent SKUs", ins.TopSKUsByFreq)

	return nil
}

func printParties(title, valueHeader string, rows []pipeline.PartyStats, pending bool) {
	if len(rows) == 0 {
		return
	}
	out := make([][]string, 0, len(rows))
	for _, p := range rows {
		v := p.Value
		if pending {
			v = p.PendingValue
		}
		out = append(out, []string{p.Name, cli.FormatCurrency(v), cli.FormatNumber(int64(p.Count))})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   title,
		Headers: []string{"Name", valueHeader, "Txns"},
		Rows:    out,
	}))
	fmt.Println()
}

func printSKUs(title string, rows []pipeline.SKUStats) {
	if len(rows) == 0 {
		return
	}
	out := make([][]string, 0, len(rows))
	for _, s := range rows {
		out = append(out, []string{s.Name, cli.FormatCurrency(s.Value), cli.FormatNumber(int64(s.Count))})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   title,
		Headers: []string{"SKU", "Cash Moved", "Txns"},
		Rows:    out,
	}))
	fmt.Println()
}

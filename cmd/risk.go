package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/cashpilot/internal/cli"
	"github.com/theirongolddev/cashpilot/internal/model"
	"github.com/theirongolddev/cashpilot/internal/scoring"
)

var (
	flagDPO int
	flagDSO int
)

var riskCmd = &cobra.Command{
	Use:   "risk",
	Short: "Supplier and customer payment risk",
	Long: `Score suppliers by days payable outstanding (DPO) and customers by days
sales outstanding (DSO). Scores run 0-100: below 40 is low, 40-69 medium,
70 and above high.`,
	RunE: runRisk,
}

var riskScoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a single DPO or DSO value",
	RunE:  runRiskScore,
}

func init() {
	riskScoreCmd.Flags().IntVar(&flagDPO, "dpo", 0, "Supplier days payable outstanding")
	riskScoreCmd.Flags().IntVar(&flagDSO, "dso", 0, "Customer days sales outstanding")
	riskCmd.AddCommand(riskScoreCmd)
	rootCmd.AddCommand(riskCmd)
}

func runRisk(_ *cobra.Command, _ []string) error {
	result, err := loadData()
	if err != nil {
		return err
	}

	l := result.Ledger
	if len(l.Suppliers) == 0 && len(l.Customers) == 0 {
		fmt.Println("\n  No suppliers or customers found.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("PAYMENT RISK"))
	fmt.Println()

	if len(l.Suppliers) > 0 {
		fmt.Print(cli.RenderTable(riskTable("Suppliers", "DPO", scoring.ScoreSuppliers(l.Suppliers))))
		fmt.Println()
	}
	if len(l.Customers) > 0 {
		fmt.Print(cli.RenderTable(riskTable("Customers", "DSO", scoring.ScoreCustomers(l.Customers))))
	}

	return nil
}

func riskTable(title, daysHeader string, rows []model.EntityRisk) cli.Table {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		name := r.Name
		if name == "" {
			name = r.ID
		}
		if !r.Scored {
			out = append(out, []string{name, "-", "not scored"})
			continue
		}
		out = append(out, []string{name, fmt.Sprintf("%dd", r.Days), cli.RenderRisk(r.Result)})
	}
	return cli.Table{
		Title:   title,
		Headers: []string{"Name", daysHeader, "Risk"},
		Rows:    out,
	}
}

func runRiskScore(cmd *cobra.Command, _ []string) error {
	dpoSet := cmd.Flags().Changed("dpo")
	dsoSet := cmd.Flags().Changed("dso")
	if dpoSet == dsoSet {
		return errors.New("pass exactly one of --dpo or --dso")
	}

	if flagDPO < 0 || flagDSO < 0 {
		return errors.New("days outstanding cannot be negative")
	}

	if dpoSet {
		fmt.Printf("  Supplier DPO %dd: %s\n", flagDPO, cli.RenderRisk(scoring.SupplierScore(flagDPO)))
	} else {
		fmt.Printf("  Customer DSO %dd: %s\n", flagDSO, cli.RenderRisk(scoring.CustomerScore(flagDSO)))
	}
	return nil
}

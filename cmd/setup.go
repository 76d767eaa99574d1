package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/cashpilot/internal/cli"
	"github.com/theirongolddev/cashpilot/internal/config"
	"github.com/theirongolddev/cashpilot/internal/source"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive setup for data directory and business settings",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

// setupValues holds the form's raw inputs; amounts stay strings until saved.
type setupValues struct {
	dataDir  string
	baseline string
	fixed    string
	initial  string
	days     int
	scope    string
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg := appCfg

	files, _ := source.ScanDir(flagDataDir)

	fmt.Println()
	fmt.Println("  Welcome to cashpilot!")
	fmt.Println()
	if len(files) > 0 {
		fmt.Printf("  Found %s ledger files in %s (%d books)\n\n",
			cli.FormatNumber(int64(len(files))), flagDataDir, source.CountBooks(files))
	}

	vals := setupValues{
		dataDir:  flagDataDir,
		baseline: formatAmount(cfg.Settings.BaselineAmount),
		fixed:    formatAmount(cfg.Settings.FixedCost),
		initial:  formatAmount(cfg.Settings.InitialBalance),
		days:     cfg.General.DefaultDays,
		scope:    cfg.General.DefaultScope,
	}

	if err := newSetupForm(&vals).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled, nothing saved.")
			return nil
		}
		return fmt.Errorf("setup form: %w", err)
	}

	if err := applySetup(&cfg, vals); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `cashpilot setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}

func newSetupForm(v *setupValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Ledger directory").
				Description("Where your JSONL ledger exports live.").
				Value(&v.dataDir),
			huh.NewInput().
				Title("Baseline amount").
				Description("The balance you want to stay above.").
				Value(&v.baseline).
				Validate(amountValidator(config.ValidateBaselineAmount)),
			huh.NewInput().
				Title("Monthly fixed cost").
				Description("Rent, payroll and other recurring costs. Drives runway.").
				Value(&v.fixed).
				Validate(amountValidator(config.ValidateFixedCost)),
			huh.NewInput().
				Title("Opening balance").
				Value(&v.initial).
				Validate(amountValidator(nil)),
		),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Default time range").
				Options(
					huh.NewOption("All history", 0),
					huh.NewOption("30 days", 30),
					huh.NewOption("90 days", 90),
					huh.NewOption("365 days", 365),
				).
				Value(&v.days),
			huh.NewSelect[string]().
				Title("Default projection").
				Options(
					huh.NewOption("Next 7 days", "week"),
					huh.NewOption("Next 30 days", "month"),
					huh.NewOption("Next 12 months", "year"),
				).
				Value(&v.scope),
		),
	)
}

// amountValidator parses the input and then runs check, if any.
func amountValidator(check func(float64) error) func(string) error {
	return func(s string) error {
		v, err := config.ParseAmount(s)
		if err != nil {
			return err
		}
		if check != nil {
			return check(v)
		}
		return nil
	}
}

func applySetup(cfg *config.Config, v setupValues) error {
	baseline, err := config.ParseAmount(v.baseline)
	if err != nil {
		return fmt.Errorf("baseline: %w", err)
	}
	fixed, err := config.ParseAmount(v.fixed)
	if err != nil {
		return fmt.Errorf("fixed cost: %w", err)
	}
	initial, err := config.ParseAmount(v.initial)
	if err != nil {
		return fmt.Errorf("opening balance: %w", err)
	}

	cfg.General.DataDir = v.dataDir
	cfg.General.DefaultDays = v.days
	cfg.General.DefaultScope = v.scope
	cfg.Settings = config.Settings{
		BaselineAmount: baseline,
		FixedCost:      fixed,
		InitialBalance: initial,
	}
	return cfg.Settings.Validate()
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

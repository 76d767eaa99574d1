// Package cmd implements the cashpilot CLI commands.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/cashpilot/internal/cli"
	"github.com/theirongolddev/cashpilot/internal/config"
	"github.com/theirongolddev/cashpilot/internal/pipeline"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg := appCfg

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Printf("  Cache:       %s\n", pipeline.CachePath())
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Data directory: %s\n", flagDataDir)
	if cfg.General.DefaultDays > 0 {
		fmt.Printf("    Default days:   %d\n", cfg.General.DefaultDays)
	} else {
		fmt.Println("    Default days:   all history")
	}
	fmt.Printf("    Default scope:  %s\n", pipeline.ParseScope(cfg.General.DefaultScope))
	fmt.Println()

	fmt.Println("  [Settings]")
	fmt.Printf("    Baseline:        %s\n", cli.FormatCurrency(cfg.Settings.BaselineAmount))
	fmt.Printf("    Fixed cost/mo:   %s\n", cli.FormatCurrency(cfg.Settings.FixedCost))
	fmt.Printf("    Opening balance: %s\n", cli.FormatCurrency(cfg.Settings.InitialBalance))
	fmt.Println()

	fmt.Println("  Environment overrides: " + config.EnvDataDir + ", " + config.EnvBaselineAmount +
		", " + config.EnvFixedCost + ", " + config.EnvInitialBalance)
	fmt.Println("  Run `cashpilot setup` to reconfigure.")
	return nil
}

package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/cashpilot/internal/cli"
	"github.com/theirongolddev/cashpilot/internal/config"
	"github.com/theirongolddev/cashpilot/internal/model"
	"github.com/theirongolddev/cashpilot/internal/pipeline"
	"github.com/theirongolddev/cashpilot/internal/store"
)

var (
	flagDays     int
	flagStatus   string
	flagNoCache  bool
	flagDataDir  string
	flagQuiet    bool
	flagLogLevel string
	flagLogJSON  bool
)

var (
	log    = logrus.New()
	appCfg = config.DefaultConfig()
)

var rootCmd = &cobra.Command{
	Use:               "cashpilot",
	Short:             "Cashflow scoring and projection CLI",
	Long:              "Score supplier and customer risk, track cash history and project your balance forward.",
	PersistentPreRunE: prepare,
	RunE:              runSummary,
	SilenceUsage:      true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&flagDays, "days", "n", 0, "Time window in days (0 = all history)")
	rootCmd.PersistentFlags().StringVar(&flagStatus, "status", "", "Filter to transaction status (pending, completed, cancelled)")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Skip SQLite cache, reparse everything")
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Ledger directory (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error); falls back to $LOG_LEVEL")
	rootCmd.PersistentFlags().BoolVar(&flagLogJSON, "log-json", false, "Emit logs as JSON")
}

// prepare configures logging and loads config before any command runs.
func prepare(cmd *cobra.Command, _ []string) error {
	setupLogger()

	cfg, err := config.Load()
	if err != nil {
		// setup must stay usable to repair a broken config.
		if cmd.Name() != "setup" {
			return fmt.Errorf("loading config: %w", err)
		}
		log.WithError(err).Warn("ignoring invalid config")
		cfg = config.DefaultConfig()
	}
	appCfg = cfg

	if flagDataDir == "" {
		flagDataDir = config.GetDataDir(cfg)
	}
	if !cmd.Flags().Changed("days") && cfg.General.DefaultDays > 0 {
		flagDays = cfg.General.DefaultDays
	}

	switch model.TransactionStatus(flagStatus) {
	case "", model.StatusPending, model.StatusCompleted, model.StatusCancelled:
	default:
		return fmt.Errorf("unknown status %q", flagStatus)
	}
	return nil
}

func setupLogger() {
	log.SetOutput(os.Stderr)
	if flagLogJSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}

	level := flagLogLevel
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		lvl = logrus.WarnLevel
	}
	log.SetLevel(lvl)
}

// loadData is the shared data loading path used by all commands.
// Uses SQLite cache when available for fast subsequent runs.
func loadData() (*pipeline.LoadResult, error) {
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Scanning %s...\n", flagDataDir)
	}

	progressFn := func(current, total int) {
		if flagQuiet {
			return
		}
		if current%50 == 0 || current == total {
			fmt.Fprintf(os.Stderr, "\r  Parsing [%d/%d]", current, total)
		}
	}

	if !flagNoCache {
		cache, err := store.Open(pipeline.CachePath())
		if err != nil {
			log.WithError(err).Warn("cache unavailable, doing full parse")
		} else {
			defer func() { _ = cache.Close() }()

			cr, err := pipeline.LoadWithCache(flagDataDir, cache, log, progressFn)
			if err != nil {
				log.WithError(err).Warn("cache error, falling back to full parse")
			} else {
				if !flagQuiet && cr.TotalFiles > 0 {
					if cr.Reparsed == 0 {
						fmt.Fprintf(os.Stderr, "\r  Loaded %s transactions from cache (%d books)    \n",
							cli.FormatNumber(int64(len(cr.Ledger.Transactions))),
							cr.BookCount,
						)
					} else {
						fmt.Fprintf(os.Stderr, "\r  %s cached + %d reparsed files (%d books)    \n",
							cli.FormatNumber(int64(cr.CacheHits)),
							cr.Reparsed,
							cr.BookCount,
						)
					}
				}
				reportErrors(&cr.LoadResult)
				return &cr.LoadResult, nil
			}
		}
	}

	result, err := pipeline.Load(flagDataDir, log, progressFn)
	if err != nil {
		return nil, err
	}

	if !flagQuiet && result.TotalFiles > 0 {
		fmt.Fprintf(os.Stderr, "\r  Parsed %s files across %d books    \n",
			cli.FormatNumber(int64(result.ParsedFiles)),
			result.BookCount,
		)
	}
	reportErrors(result)
	return result, nil
}

func reportErrors(r *pipeline.LoadResult) {
	if r.FileErrors > 0 || r.ParseErrors > 0 {
		log.WithFields(logrus.Fields{
			"file_errors":  r.FileErrors,
			"parse_errors": r.ParseErrors,
		}).Warn("some ledger data was skipped")
	}
}

// applyFilters returns the transactions inside the --days window and
// matching --status.
func applyFilters(txs []model.Transaction) []model.Transaction {
	filtered := pipeline.FilterByStatus(txs, model.TransactionStatus(flagStatus))
	if flagDays > 0 {
		now := time.Now()
		filtered = pipeline.FilterByDateRange(filtered, now.AddDate(0, 0, -flagDays), now.AddDate(0, 0, 1))
	}
	return filtered
}

// windowLabel describes the --days window for titles.
func windowLabel() string {
	if flagDays > 0 {
		return fmt.Sprintf("Last %dd", flagDays)
	}
	return "All history"
}

func noLedgerData() {
	fmt.Println("\n  No ledger data found in " + flagDataDir)
	fmt.Println("  Export transactions as JSONL there, or pass --data-dir.")
}

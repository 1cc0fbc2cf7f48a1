// Package cmd implements the pulse CLI commands.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/pulse/internal/calendar"
	"github.com/theirongolddev/pulse/internal/cli"
	"github.com/theirongolddev/pulse/internal/config"
	"github.com/theirongolddev/pulse/internal/logging"
	"github.com/theirongolddev/pulse/internal/model"
	"github.com/theirongolddev/pulse/internal/pipeline"
	"github.com/theirongolddev/pulse/internal/store"
)

var (
	flagDataDir string
	flagToday   string
	flagTZ      string
	flagNoCache bool
	flagQuiet   bool
	flagJSON    bool
	flagVerbose bool
)

// Resolved once per run by the root PersistentPreRunE.
var (
	runCfg config.Config
	runLoc *time.Location
	runNow calendar.Date
)

var rootCmd = &cobra.Command{
	Use:               "pulse",
	Short:             "Personal productivity dashboard",
	Long:              "Summarize tasks, habits, fitness, meals, money, travel and wellness records exported by your tracking apps.",
	SilenceUsage:      true,
	PersistentPreRunE: setupRun,
	RunE:              runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Export data directory (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagToday, "today", "", "Reference date YYYY-MM-DD (default: today)")
	rootCmd.PersistentFlags().StringVar(&flagTZ, "tz", "", "Time zone for dates (default from config, then system)")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Skip SQLite cache, reparse everything")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Print composed stats as JSON")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging to stderr")
}

// setupRun configures logging and resolves config, data dir, time zone and
// the reference date.
func setupRun(_ *cobra.Command, _ []string) error {
	logging.Setup(logging.Config{Level: logging.LevelFor(flagVerbose, flagQuiet), Output: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		logging.For(logging.ComponentCLI).Warn("config unreadable, using defaults", logging.Err(err))
		cfg = config.DefaultConfig()
	}
	runCfg = cfg

	if flagDataDir == "" {
		flagDataDir = config.ResolveDataDir(cfg)
	}

	tz := cfg.General.Timezone
	if flagTZ != "" {
		tz = flagTZ
	}
	if runLoc, err = config.Location(tz); err != nil {
		return err
	}

	runNow, err = resolveToday(flagToday, time.Now(), runLoc)
	return err
}

// resolveToday returns the pinned date or the civil date of now in loc.
func resolveToday(pinned string, now time.Time, loc *time.Location) (calendar.Date, error) {
	if pinned != "" {
		d, err := calendar.Parse(pinned)
		if err != nil {
			return 0, fmt.Errorf("--today: %w", err)
		}
		return d, nil
	}
	return calendar.FromTime(now.In(loc)), nil
}

// loadData is the shared data loading path used by all commands.
// Uses SQLite cache when available for fast subsequent runs.
func loadData() (*pipeline.LoadResult, error) {
	log := logging.For(logging.ComponentCLI)
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Scanning %s...\n", flagDataDir)
	}

	progressFn := func(current, total int) {
		if flagQuiet {
			return
		}
		if current%10 == 0 || current == total {
			fmt.Fprintf(os.Stderr, "\r  Parsing [%d/%d]", current, total)
		}
	}

	if !flagNoCache {
		cache, err := store.Open(pipeline.CachePath())
		if err != nil {
			log.Warn("cache unavailable, doing full parse", logging.Err(err))
		} else {
			defer func() { _ = cache.Close() }()

			cr, err := pipeline.LoadWithCache(flagDataDir, runLoc, cache, progressFn)
			if err != nil {
				log.Warn("cache error, falling back to full parse", logging.Err(err))
			} else {
				if !flagQuiet && cr.TotalFiles > 0 {
					if cr.Reparsed == 0 {
						fmt.Fprintf(os.Stderr, "\r  Loaded %s records from cache (%d modules)    \n",
							cli.FormatNumber(int64(len(cr.Records))), cr.ModuleCount)
					} else {
						fmt.Fprintf(os.Stderr, "\r  %d cached + %d reparsed files (%d modules)    \n",
							cr.CacheHits, cr.Reparsed, cr.ModuleCount)
					}
				}
				reportParseErrors(&cr.LoadResult)
				return &cr.LoadResult, nil
			}
		}
	}

	result, err := pipeline.Load(flagDataDir, runLoc, progressFn)
	if err != nil {
		return nil, err
	}
	if !flagQuiet && result.TotalFiles > 0 {
		fmt.Fprintf(os.Stderr, "\r  Parsed %s records across %d modules    \n",
			cli.FormatNumber(int64(len(result.Records))), result.ModuleCount)
	}
	reportParseErrors(result)
	return result, nil
}

func reportParseErrors(r *pipeline.LoadResult) {
	if r.ParseErrors == 0 && r.FileErrors == 0 {
		return
	}
	attrs := []any{"lines", r.ParseErrors, "files", r.FileErrors}
	if r.FirstError != nil {
		attrs = append(attrs, logging.Err(r.FirstError))
	}
	logging.For(logging.ComponentLoader).Warn("skipped unreadable records", attrs...)
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// noRecords prints the empty-state hint and reports whether there was
// nothing to show.
func noRecords(records []model.Record) bool {
	if len(records) > 0 || flagJSON {
		return false
	}
	fmt.Println("\n  No records found in " + flagDataDir + ".")
	fmt.Println("  Point --data-dir at your export directory or run `pulse setup`.")
	return true
}

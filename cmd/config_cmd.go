package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/pulse/internal/cli"
	"github.com/theirongolddev/pulse/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func showGoal(v float64) string {
	if v <= 0 {
		return "not set"
	}
	return cli.FormatCount(v)
}

func showBudget(v float64) string {
	if v <= 0 {
		return "not set"
	}
	return cli.FormatAmount(v)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg := runCfg
	if flagJSON {
		return printJSON(cfg)
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("  Problems:\n    %v\n", err)
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Data directory: %s\n", flagDataDir)
	fmt.Printf("    Time zone:      %s\n", runLoc)
	fmt.Printf("    Default days:   %d\n", cfg.General.DefaultDays)
	fmt.Println()

	g := cfg.Goals
	fmt.Println("  [Goals]")
	fmt.Printf("    Workouts / week:  %s\n", showGoal(g.WeeklyWorkouts))
	fmt.Printf("    Calories / day:   %s\n", showGoal(g.DailyCalories))
	fmt.Printf("    Protein g / day:  %s\n", showGoal(g.DailyProteinG))
	fmt.Printf("    Sleep hours:      %s\n", showGoal(g.SleepHours))
	fmt.Printf("    Contacts / week:  %s\n", showGoal(g.WeeklyContacts))
	fmt.Printf("    Monthly budget:   %s\n", showBudget(g.MonthlyBudget))
	fmt.Printf("    Travel / year:    %s\n", showBudget(g.AnnualTravelBudget))

	if len(g.CategoryBudgets) > 0 {
		cats := make([]string, 0, len(g.CategoryBudgets))
		for c := range g.CategoryBudgets {
			cats = append(cats, c)
		}
		sort.Strings(cats)
		for _, c := range cats {
			fmt.Printf("    Budget %-10s %s\n", c+":", showBudget(g.CategoryBudgets[c]))
		}
	}
	for _, h := range g.Habits {
		target := "daily"
		if h.Target > 1 {
			target = cli.FormatCount(h.Target) + " / day"
		}
		fmt.Printf("    Habit %-11s %s\n", h.Name+":", target)
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [TUI]")
	fmt.Printf("    Auto refresh:     %v\n", cfg.TUI.AutoRefresh)
	fmt.Printf("    Refresh interval: %ds\n", cfg.TUI.RefreshIntervalSec)
	fmt.Println()

	fmt.Println("  Run `pulse setup` to reconfigure.")
	return nil
}

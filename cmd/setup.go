package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/pulse/internal/cli"
	"github.com/theirongolddev/pulse/internal/config"
	"github.com/theirongolddev/pulse/internal/source"
	"github.com/theirongolddev/pulse/internal/tui/theme"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

// prompter reads answers line by line, keeping the current value on an
// empty answer.
type prompter struct {
	r *bufio.Reader
}

func (p prompter) ask(question, current string) string {
	if current != "" {
		fmt.Printf("     %s [%s]\n", question, current)
	} else {
		fmt.Printf("     %s\n", question)
	}
	fmt.Print("     > ")
	line, _ := p.r.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return current
	}
	return line
}

// askNumber keeps asking until the answer is a non-negative number, "-"
// clears the goal.
func (p prompter) askNumber(question string, current float64) float64 {
	cur := ""
	if current > 0 {
		cur = strconv.FormatFloat(current, 'f', -1, 64)
	}
	for {
		ans := p.ask(question, cur)
		if ans == "-" || ans == "" {
			return 0
		}
		v, err := strconv.ParseFloat(ans, 64)
		if err == nil && v >= 0 {
			return v
		}
		fmt.Println("     Please enter a number, or - to clear.")
	}
}

func runSetup(_ *cobra.Command, _ []string) error {
	p := prompter{r: bufio.NewReader(os.Stdin)}
	cfg := runCfg

	files, _ := source.ScanDir(flagDataDir)

	fmt.Println()
	fmt.Println("  Welcome to pulse!")
	fmt.Println()
	if len(files) > 0 {
		fmt.Printf("  Found %s export files in %s (%d modules)\n\n",
			cli.FormatNumber(int64(len(files))), flagDataDir, source.CountModules(files))
	}

	fmt.Println("  1. Export directory")
	cfg.General.DataDir = p.ask("Where does your tracking service write records?", flagDataDir)
	fmt.Println()

	fmt.Println("  2. Goals (empty keeps the current value, - clears it)")
	g := &cfg.Goals
	g.WeeklyWorkouts = p.askNumber("Workouts per week", g.WeeklyWorkouts)
	g.DailyCalories = p.askNumber("Daily calories", g.DailyCalories)
	g.DailyProteinG = p.askNumber("Daily protein (g)", g.DailyProteinG)
	g.SleepHours = p.askNumber("Sleep hours per night", g.SleepHours)
	g.WeeklyContacts = p.askNumber("People to contact per week", g.WeeklyContacts)
	g.MonthlyBudget = p.askNumber("Monthly budget", g.MonthlyBudget)
	g.AnnualTravelBudget = p.askNumber("Travel budget per year", g.AnnualTravelBudget)
	fmt.Println()

	fmt.Println("  3. Habits (comma separated, name:target for counted habits)")
	if habits := p.ask("Habits to track", config.FormatHabits(g.Habits)); habits != "" {
		g.Habits = config.ParseHabits(habits)
	}
	fmt.Println()

	fmt.Println("  4. Color theme")
	for i, name := range theme.Names() {
		fmt.Printf("     (%d) %s\n", i+1, name)
	}
	choice := p.ask("Theme", cfg.Appearance.Theme)
	if n, err := strconv.Atoi(choice); err == nil && n >= 1 && n <= len(theme.All) {
		cfg.Appearance.Theme = theme.All[n-1].Name
	} else if theme.Valid(choice) {
		cfg.Appearance.Theme = choice
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `pulse setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}

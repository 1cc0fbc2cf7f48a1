package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/pulse/internal/cli"
	"github.com/theirongolddev/pulse/internal/pipeline"
)

var streaksCmd = &cobra.Command{
	Use:   "streaks",
	Short: "Current and longest streaks for habits and modules",
	RunE:  runStreaks,
}

func init() {
	rootCmd.AddCommand(streaksCmd)
}

type streakLine struct {
	Name    string `json:"name"`
	Current int    `json:"current"`
	Longest int    `json:"longest,omitempty"`
}

func runStreaks(_ *cobra.Command, _ []string) error {
	result, err := loadData()
	if err != nil {
		return err
	}
	if noRecords(result.Records) {
		return nil
	}

	d := pipeline.ComposeDashboard(result.Records, runCfg.Goals, runNow)

	lines := []streakLine{
		{Name: "Any habit", Current: d.Habits.HabitsStreak},
		{Name: "Tasks completed", Current: d.Tasks.Streak},
		{Name: "Workouts", Current: d.Fitness.Streak},
		{Name: "Journal", Current: d.Wellness.JournalStreak},
	}
	for _, h := range d.Habits.Habits {
		lines = append(lines, streakLine{Name: "Habit: " + h.Name, Current: h.Streak, Longest: h.LongestStreak})
	}

	if flagJSON {
		return printJSON(lines)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("STREAKS  " + runNow.String()))
	fmt.Println()

	rows := make([][]string, 0, len(lines)+1)
	for i, l := range lines {
		if i == 4 {
			rows = append(rows, []string{"---"})
		}
		longest := "-"
		if l.Longest > 0 {
			longest = cli.FormatStreak(l.Longest)
		}
		rows = append(rows, []string{l.Name, cli.FormatStreak(l.Current), longest})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Streak", "Current", "Longest"},
		Rows:    rows,
	}))
	return nil
}

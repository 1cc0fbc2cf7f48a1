package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/pulse/internal/cli"
	"github.com/theirongolddev/pulse/internal/model"
	"github.com/theirongolddev/pulse/internal/pipeline"
)

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Progress toward every configured goal and budget",
	RunE:  runGoals,
}

func init() {
	rootCmd.AddCommand(goalsCmd)
}

// goalLine is one goal in the goals report.
type goalLine struct {
	Name     string             `json:"name"`
	Period   string             `json:"period"`
	Progress model.GoalProgress `json:"progress"`
	Money    bool               `json:"-"`
}

func collectGoals(d model.Dashboard) []goalLine {
	lines := []goalLine{
		{Name: "Workouts", Period: "this week", Progress: d.Fitness.WeeklyGoal},
		{Name: "Calories", Period: "today", Progress: d.Meals.CalorieGoal},
		{Name: "Protein (g)", Period: "today", Progress: d.Meals.ProteinGoal},
		{Name: "Contacts", Period: "this week", Progress: d.Contacts.WeeklyGoal},
		{Name: "Sleep (h avg)", Period: "14d", Progress: d.Wellness.SleepGoal},
		{Name: "Budget", Period: "this month", Progress: d.Finance.Budget, Money: true},
	}
	for _, c := range d.Finance.Categories {
		if c.Budget != nil {
			lines = append(lines, goalLine{Name: "Budget: " + c.Category, Period: "this month", Progress: *c.Budget, Money: true})
		}
	}
	lines = append(lines, goalLine{Name: "Travel budget", Period: "this year", Progress: d.Travel.Budget, Money: true})
	for _, h := range d.Habits.Habits {
		lines = append(lines, goalLine{Name: "Habit: " + h.Name, Period: "today", Progress: h.TodayProgress})
	}
	return lines
}

func runGoals(_ *cobra.Command, _ []string) error {
	result, err := loadData()
	if err != nil {
		return err
	}

	d := pipeline.ComposeDashboard(result.Records, runCfg.Goals, runNow)
	lines := collectGoals(d)
	if flagJSON {
		return printJSON(lines)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("GOALS  " + runNow.String()))
	fmt.Println()

	rows := make([][]string, 0, len(lines))
	for _, g := range lines {
		format := cli.FormatCount
		if g.Money {
			format = cli.FormatAmount
		}
		if g.Progress.Target <= 0 {
			rows = append(rows, []string{g.Name, g.Period, "", "no goal set"})
			continue
		}
		rows = append(rows, []string{
			g.Name,
			g.Period,
			cli.RenderGoalBar(g.Progress, 20),
			format(g.Progress.Current) + " / " + format(g.Progress.Target) + ", " + cli.FormatRemainder(g.Progress, format),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Goal", "Period", "Progress", "Status"},
		Rows:    rows,
	}))
	return nil
}

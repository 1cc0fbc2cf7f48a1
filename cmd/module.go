package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/pulse/internal/cli"
	"github.com/theirongolddev/pulse/internal/model"
	"github.com/theirongolddev/pulse/internal/pipeline"
)

func init() {
	for _, m := range model.Modules {
		rootCmd.AddCommand(newModuleCmd(m))
	}
}

func newModuleCmd(m model.Module) *cobra.Command {
	return &cobra.Command{
		Use:   string(m),
		Short: fmt.Sprintf("Detailed %s stats", m),
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runModule(m)
		},
	}
}

func runModule(m model.Module) error {
	result, err := loadData()
	if err != nil {
		return err
	}

	stats, err := pipeline.ComposeModule(m, result.Records, runCfg.Goals, runNow)
	if err != nil {
		return err
	}
	if flagJSON {
		return printJSON(stats)
	}

	rows, series, values := moduleDetail(stats)

	fmt.Println()
	fmt.Println(cli.RenderTitle(strings.ToUpper(string(m)) + "  " + runNow.String()))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))
	if len(series) > 0 {
		fmt.Println()
		fmt.Println("  " + cli.RenderSeries(series, values))
	}
	return nil
}

func goalRow(label string, p model.GoalProgress, format func(float64) string) []string {
	if p.Target <= 0 {
		return []string{label, "no goal set"}
	}
	return []string{label, fmt.Sprintf("%s / %s (%s, %s)",
		format(p.Current), format(p.Target), cli.FormatPercent(p.Percent), cli.FormatRemainder(p, format))}
}

func periodRow(start, end string) []string {
	return []string{"Period", start + " → " + end}
}

// moduleDetail returns the detail rows for a composed module and the chart
// series with the values to plot.
func moduleDetail(stats any) ([][]string, []model.Bucket, []float64) {
	count := cli.FormatCount
	switch s := stats.(type) {
	case model.TaskStats:
		return [][]string{
			periodRow(s.PeriodStart, s.PeriodEnd),
			{"Tasks", cli.FormatNumber(int64(s.Total))},
			{"Completed", cli.FormatNumber(int64(s.Completed))},
			{"Open", cli.FormatNumber(int64(s.Open))},
			{"Completion rate", cli.FormatPercent(s.CompletionRate)},
			{"Completed today", cli.FormatNumber(int64(s.CompletedToday))},
			{"Streak", cli.FormatStreak(s.Streak)},
		}, s.Series, cli.BucketSums(s.Series)

	case model.ContactStats:
		return [][]string{
			periodRow(s.PeriodStart, s.PeriodEnd),
			{"Interactions", cli.FormatNumber(int64(s.Interactions))},
			{"People reached", cli.FormatNumber(int64(s.PeopleReached))},
			goalRow("This week", s.WeeklyGoal, count),
		}, s.Series, bucketCounts(s.Series)

	case model.HabitStats:
		rows := [][]string{
			periodRow(s.PeriodStart, s.PeriodEnd),
			{"Done today", fmt.Sprintf("%d / %d (%s)", s.CompletedToday, len(s.Habits), cli.FormatPercent(s.TodayRate))},
			{"Any-habit streak", cli.FormatStreak(s.HabitsStreak)},
		}
		for _, h := range s.Habits {
			rows = append(rows, []string{"---"})
			rows = append(rows, goalRow(h.Name, h.TodayProgress, count))
			rows = append(rows, []string{"  streak", fmt.Sprintf("%s (longest %s)", cli.FormatStreak(h.Streak), cli.FormatStreak(h.LongestStreak))})
			rows = append(rows, []string{"  last 7 days", cli.FormatPercent(h.CompletionRate)})
		}
		return rows, s.Series, bucketCounts(s.Series)

	case model.FitnessStats:
		top := s.TopExercise
		if top == "" {
			top = "-"
		}
		return [][]string{
			periodRow(s.PeriodStart, s.PeriodEnd),
			{"Workouts", cli.FormatNumber(int64(s.Workouts))},
			{"Active time", cli.FormatMinutes(s.TotalMinutes)},
			{"Average session", cli.FormatMinutes(s.AvgDuration)},
			{"Volume", count(s.TotalVolume)},
			{"Top exercise", top},
			{"Streak", cli.FormatStreak(s.Streak)},
			goalRow("This week", s.WeeklyGoal, count),
		}, s.Series, cli.BucketSums(s.Series)

	case model.MealStats:
		return [][]string{
			periodRow(s.PeriodStart, s.PeriodEnd),
			goalRow("Calories today", s.CalorieGoal, count),
			goalRow("Protein today", s.ProteinGoal, count),
			{"Meals this month", cli.FormatNumber(int64(s.MonthMeals))},
			{"Days logged", cli.FormatNumber(int64(s.DaysLogged))},
			{"Average kcal/day", count(s.AvgDailyCalories)},
		}, s.Series, cli.BucketSums(s.Series)

	case model.FinanceStats:
		rows := [][]string{
			periodRow(s.PeriodStart, s.PeriodEnd),
			{"Income", cli.FormatMoney(s.MonthIncome)},
			{"Expenses", cli.FormatMoney(s.MonthExpenses)},
			{"Net savings", cli.FormatMoney(s.NetSavings)},
			{"Savings rate", cli.FormatPercent(s.SavingsRate)},
			goalRow("Budget", s.Budget, cli.FormatAmount),
		}
		if len(s.Categories) > 0 {
			rows = append(rows, []string{"---"})
		}
		for _, c := range s.Categories {
			if c.Budget != nil {
				rows = append(rows, goalRow(c.Category, *c.Budget, cli.FormatAmount))
				continue
			}
			rows = append(rows, []string{c.Category, fmt.Sprintf("%s (%s)", cli.FormatMoney(c.Amount), cli.FormatPercent(c.PercentOfExpense))})
		}
		return rows, s.Series, cli.BucketSums(s.Series)

	case model.TravelStats:
		return [][]string{
			periodRow(s.PeriodStart, s.PeriodEnd),
			{"Trips", cli.FormatNumber(int64(s.Trips))},
			{"Nights", count(s.Nights)},
			{"Spend", cli.FormatMoney(s.Spend)},
			goalRow("Budget", s.Budget, cli.FormatAmount),
		}, s.Series, bucketCounts(s.Series)

	case model.WellnessStats:
		measured := s.Entries > 0
		return [][]string{
			periodRow(s.PeriodStart, s.PeriodEnd),
			{"Check-ins", cli.FormatNumber(int64(s.Entries))},
			{"Mood", cli.FormatAverage(s.AvgMood, measured)},
			{"Sleep", cli.FormatAverage(s.AvgSleep, measured)},
			{"Energy", cli.FormatAverage(s.AvgEnergy, measured)},
			goalRow("Sleep goal", s.SleepGoal, func(v float64) string { return cli.FormatAverage(v, true) + "h" }),
			{"Journal streak", cli.FormatStreak(s.JournalStreak)},
		}, s.Series, cli.BucketAverages(s.Series)
	}
	return nil, nil, nil
}

func bucketCounts(buckets []model.Bucket) []float64 {
	out := make([]float64, len(buckets))
	for i, b := range buckets {
		out[i] = float64(b.Count)
	}
	return out
}

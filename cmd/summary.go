package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/pulse/internal/cli"
	"github.com/theirongolddev/pulse/internal/model"
	"github.com/theirongolddev/pulse/internal/pipeline"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "One line per module with headline numbers",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	result, err := loadData()
	if err != nil {
		return err
	}
	if noRecords(result.Records) {
		return nil
	}

	d := pipeline.ComposeDashboard(result.Records, runCfg.Goals, runNow)
	d.GeneratedAt = time.Now()
	if flagJSON {
		return printJSON(d)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("PULSE  " + runNow.Format("Mon Jan 2, 2006")))
	fmt.Println()
	fmt.Print(cli.RenderTable(summaryTable(d)))

	if result.ParseErrors > 0 {
		fmt.Printf("\n  %d lines could not be parsed\n", result.ParseErrors)
	}
	return nil
}

func summaryTable(d model.Dashboard) cli.Table {
	w := d.Wellness
	return cli.Table{
		Headers: []string{"Module", "Period", "Headline", "Detail"},
		Rows: [][]string{
			{"Tasks", "7d",
				fmt.Sprintf("%d done, %d open", d.Tasks.Completed, d.Tasks.Open),
				fmt.Sprintf("%s complete, streak %s", cli.FormatPercent(d.Tasks.CompletionRate), cli.FormatStreak(d.Tasks.Streak))},
			{"Contacts", "30d",
				fmt.Sprintf("%d interactions", d.Contacts.Interactions),
				fmt.Sprintf("%d people, week %s", d.Contacts.PeopleReached, cli.FormatPercent(d.Contacts.WeeklyGoal.Percent))},
			{"Habits", "7d",
				fmt.Sprintf("%d/%d today", d.Habits.CompletedToday, len(d.Habits.Habits)),
				"streak " + cli.FormatStreak(d.Habits.HabitsStreak)},
			{"Fitness", "7d",
				fmt.Sprintf("%d workouts", d.Fitness.Workouts),
				cli.FormatMinutes(d.Fitness.TotalMinutes) + ", volume " + cli.FormatCount(d.Fitness.TotalVolume)},
			{"Meals", "month",
				cli.FormatCount(d.Meals.TodayCalories) + " kcal today",
				fmt.Sprintf("%d meals, %s kcal/day", d.Meals.MonthMeals, cli.FormatCount(d.Meals.AvgDailyCalories))},
			{"Finance", "month",
				cli.FormatMoney(d.Finance.MonthExpenses) + " spent",
				"net " + cli.FormatMoney(d.Finance.NetSavings) + ", budget " + cli.FormatPercent(d.Finance.Budget.Percent)},
			{"Travel", "year",
				fmt.Sprintf("%d trips", d.Travel.Trips),
				cli.FormatCount(d.Travel.Nights) + " nights, " + cli.FormatMoney(d.Travel.Spend)},
			{"Wellness", "14d",
				"mood " + cli.FormatAverage(w.AvgMood, w.Entries > 0),
				"sleep " + cli.FormatAverage(w.AvgSleep, w.Entries > 0) + "h, journal " + cli.FormatStreak(w.JournalStreak)},
		},
	}
}

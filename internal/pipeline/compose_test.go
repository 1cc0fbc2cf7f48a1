package pipeline

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/pulse/internal/calendar"
	"github.com/theirongolddev/pulse/internal/model"
)

func TestPeriodRange(t *testing.T) {
	tests := []struct {
		name       string
		period     Period
		now        string
		start, end string
	}{
		{"rolling 7", LastDays(7), "2026-10-19", "2026-10-13", "2026-10-19"},
		{"rolling 1", LastDays(1), "2026-10-19", "2026-10-19", "2026-10-19"},
		{"rolling 0 treated as 1", LastDays(0), "2026-10-19", "2026-10-19", "2026-10-19"},
		{"week", Period{Kind: CalendarWeek}, "2026-10-21", "2026-10-19", "2026-10-25"},
		{"february", Period{Kind: CalendarMonth}, "2026-02-10", "2026-02-01", "2026-02-28"},
		{"leap february", Period{Kind: CalendarMonth}, "2024-02-10", "2024-02-01", "2024-02-29"},
		{"year", Period{Kind: CalendarYear}, "2026-10-19", "2026-01-01", "2026-12-31"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := tt.period.Range(calendar.MustParse(tt.now))
			if start.String() != tt.start || end.String() != tt.end {
				t.Errorf("Range = %s..%s, want %s..%s", start, end, tt.start, tt.end)
			}
		})
	}
}

func TestCompose_EmptyPeriodIsAllZeros(t *testing.T) {
	now := calendar.MustParse("2026-10-19")
	cfg := StatsConfig{
		Module:   model.ModuleWellness,
		Period:   LastDays(14),
		Measures: []Measure{{Name: "mood", Value: Field("mood")}, {Name: "cost", Value: Field("cost"), Money: true}},
		Splits:   []Split{{Name: "journal", Match: IsKind("journal")}},
		Goals:    []Goal{{Name: "mood", Measure: "mood", Target: 4, Average: true}},
		Chart:    &Chart{Window: Window{Count: 14, Unit: UnitDay}, Measure: "mood"},
		Streak:   &StreakRule{Qualify: anyRecord},
	}

	s := Compose(nil, cfg, now)
	if s.Records != 0 || s.Streak != 0 || s.LongestStreak != 0 {
		t.Errorf("Records/Streak/Longest = %d/%d/%d, want zeros", s.Records, s.Streak, s.LongestStreak)
	}
	if s.Totals["mood"] != (model.Total{}) || s.Totals["cost"] != (model.Total{}) {
		t.Errorf("Totals = %+v, want zero totals", s.Totals)
	}
	if s.Splits["journal"].Records != 0 {
		t.Errorf("split records = %d, want 0", s.Splits["journal"].Records)
	}
	if g := s.Goals["mood"]; g.Percent != 0 || g.Current != 0 {
		t.Errorf("goal = %+v, want zero current", g)
	}
	if len(s.Series) != 14 {
		t.Errorf("Series = %d buckets, want 14", len(s.Series))
	}
}

func TestCompose_FiltersModuleAndPeriod(t *testing.T) {
	now := calendar.MustParse("2026-10-19")
	records := []model.Record{
		rec(model.ModuleMeals, "2026-10-19", "", "", map[string]float64{"calories": 500}),
		rec(model.ModuleMeals, "2026-10-31", "", "", map[string]float64{"calories": 700}), // later this month
		rec(model.ModuleMeals, "2026-09-30", "", "", map[string]float64{"calories": 900}),
		rec(model.ModuleFitness, "2026-10-19", "", "", map[string]float64{"calories": 300}),
	}

	s := Compose(records, StatsConfig{
		Module:   model.ModuleMeals,
		Period:   Period{Kind: CalendarMonth},
		Measures: []Measure{{Name: "calories", Value: Field("calories")}},
	}, now)

	if s.PeriodStart != "2026-10-01" || s.PeriodEnd != "2026-10-31" {
		t.Errorf("period = %s..%s", s.PeriodStart, s.PeriodEnd)
	}
	if s.Records != 2 {
		t.Errorf("Records = %d, want 2", s.Records)
	}
	if got := s.Totals["calories"]; got.Sum != 1200 || got.Count != 2 || got.Average != 600 {
		t.Errorf("calories = %+v, want sum 1200 count 2 avg 600", got)
	}
}

func TestComposeFinance_BudgetExample(t *testing.T) {
	now := calendar.MustParse("2026-10-19")
	records := []model.Record{
		rec(model.ModuleFinance, "2026-10-01", model.KindExpense, "", map[string]float64{"amount": 100}),
		rec(model.ModuleFinance, "2026-10-02", model.KindIncome, "", map[string]float64{"amount": 50}),
	}

	st := ComposeFinance(records, model.Goals{MonthlyBudget: 80}, now)

	if !st.MonthExpenses.Equal(decimal.NewFromInt(100)) {
		t.Errorf("MonthExpenses = %s, want 100", st.MonthExpenses)
	}
	if !st.MonthIncome.Equal(decimal.NewFromInt(50)) {
		t.Errorf("MonthIncome = %s, want 50", st.MonthIncome)
	}
	if !st.NetSavings.Equal(decimal.NewFromInt(-50)) {
		t.Errorf("NetSavings = %s, want -50", st.NetSavings)
	}
	want := model.GoalProgress{Current: 100, Target: 80, Percent: 100, IsOver: true, Remainder: -20}
	if st.Budget != want {
		t.Errorf("Budget = %+v, want %+v", st.Budget, want)
	}
	if st.SavingsRate != 0 {
		t.Errorf("SavingsRate = %d, want 0 when spending exceeds income", st.SavingsRate)
	}
}

func TestComposeFinance_Categories(t *testing.T) {
	now := calendar.MustParse("2026-10-19")
	records := []model.Record{
		rec(model.ModuleFinance, "2026-10-03", model.KindExpense, "groceries", map[string]float64{"amount": 60.10}),
		rec(model.ModuleFinance, "2026-10-04", model.KindExpense, "groceries", map[string]float64{"amount": 0.20}),
		rec(model.ModuleFinance, "2026-10-05", model.KindExpense, "rent", map[string]float64{"amount": 120}),
		rec(model.ModuleFinance, "2026-10-06", model.KindExpense, "", map[string]float64{"amount": 19.70}),
		rec(model.ModuleFinance, "2026-10-01", model.KindIncome, "salary", map[string]float64{"amount": 1000}),
		rec(model.ModuleFinance, "2026-09-28", model.KindExpense, "rent", map[string]float64{"amount": 120}),
	}
	goals := model.Goals{CategoryBudgets: map[string]float64{"groceries": 50, "travel": 100}}

	st := ComposeFinance(records, goals, now)

	if !st.MonthExpenses.Equal(decimal.RequireFromString("200")) {
		t.Errorf("MonthExpenses = %s, want 200", st.MonthExpenses)
	}
	if st.SavingsRate != 80 {
		t.Errorf("SavingsRate = %d, want 80", st.SavingsRate)
	}

	got := make([]string, 0, len(st.Categories))
	for _, c := range st.Categories {
		got = append(got, c.Category)
	}
	wantOrder := []string{"rent", "groceries", Uncategorized, "travel"}
	if len(got) != len(wantOrder) {
		t.Fatalf("categories = %v, want %v", got, wantOrder)
	}
	for i := range wantOrder {
		if got[i] != wantOrder[i] {
			t.Fatalf("categories = %v, want %v", got, wantOrder)
		}
	}

	groceries := st.Categories[1]
	if !groceries.Amount.Equal(decimal.RequireFromString("60.30")) {
		t.Errorf("groceries = %s, want 60.30", groceries.Amount)
	}
	if groceries.PercentOfExpense != 30 {
		t.Errorf("groceries share = %d, want 30", groceries.PercentOfExpense)
	}
	if groceries.Budget == nil || !groceries.Budget.IsOver || groceries.Budget.Percent != 100 {
		t.Errorf("groceries budget = %+v, want over at 100%%", groceries.Budget)
	}
	if st.Categories[0].Budget != nil {
		t.Errorf("rent has no budget, got %+v", st.Categories[0].Budget)
	}
	travel := st.Categories[3]
	if !travel.Amount.IsZero() || travel.Budget == nil || travel.Budget.Remainder != 100 {
		t.Errorf("travel = %+v, want zero spend with full remainder", travel)
	}

	if len(st.Series) != 6 || st.Series[5].Sum != 200 || st.Series[4].Sum != 120 {
		t.Errorf("series = %+v, want 6 months ending with 120, 200", st.Series)
	}
}

func TestComposeTasks(t *testing.T) {
	now := calendar.MustParse("2026-10-19")
	records := []model.Record{
		rec(model.ModuleTasks, "2026-10-19", "done", "", nil),
		rec(model.ModuleTasks, "2026-10-19", "done", "", nil),
		rec(model.ModuleTasks, "2026-10-19", "open", "", nil),
		rec(model.ModuleTasks, "2026-10-18", "done", "", nil),
		rec(model.ModuleTasks, "2026-10-15", "open", "", nil),
		rec(model.ModuleTasks, "2026-10-12", "done", "", nil),
	}

	st := ComposeTasks(records, model.Goals{}, now)

	if st.Total != 5 || st.Completed != 3 || st.Open != 2 {
		t.Errorf("Total/Completed/Open = %d/%d/%d, want 5/3/2", st.Total, st.Completed, st.Open)
	}
	if st.CompletionRate != 60 {
		t.Errorf("CompletionRate = %d, want 60", st.CompletionRate)
	}
	if st.CompletedToday != 2 {
		t.Errorf("CompletedToday = %d, want 2", st.CompletedToday)
	}
	if st.Streak != 2 {
		t.Errorf("Streak = %d, want 2", st.Streak)
	}
	if last := st.Series[6]; last.Sum != 2 || last.Count != 3 {
		t.Errorf("today bucket = %+v, want sum 2 of 3", last)
	}
}

func TestComposeContacts(t *testing.T) {
	now := calendar.MustParse("2026-10-19") // Monday
	records := []model.Record{
		rec(model.ModuleContacts, "2026-10-19", "call", "alice", nil),
		rec(model.ModuleContacts, "2026-10-19", "text", "bob", nil),
		rec(model.ModuleContacts, "2026-10-18", "call", "alice", nil),
		rec(model.ModuleContacts, "2026-09-10", "call", "carol", nil),
	}

	st := ComposeContacts(records, model.Goals{WeeklyContacts: 3}, now)

	if st.Interactions != 3 || st.PeopleReached != 2 {
		t.Errorf("Interactions/People = %d/%d, want 3/2", st.Interactions, st.PeopleReached)
	}
	if st.WeeklyGoal.Current != 2 || st.WeeklyGoal.Percent != 67 {
		t.Errorf("WeeklyGoal = %+v, want 2 of 3 (67%%)", st.WeeklyGoal)
	}
	if len(st.Series) != 4 || st.Series[3].Count != 2 || st.Series[2].Count != 1 {
		t.Errorf("Series = %+v", st.Series)
	}
}

func TestComposeFitness_MissingMeasures(t *testing.T) {
	now := calendar.MustParse("2026-10-19")
	records := []model.Record{
		rec(model.ModuleFitness, "2026-10-19", "", "bench", map[string]float64{"sets": 3, "reps": 10, "weight": 50, "duration_min": 45}),
		rec(model.ModuleFitness, "2026-10-18", "", "run", map[string]float64{"duration_min": 30}),
		rec(model.ModuleFitness, "2026-10-16", "", "bench", map[string]float64{"sets": 3, "reps": 5, "weight": 100}),
	}

	st := ComposeFitness(records, model.Goals{WeeklyWorkouts: 4}, now)

	if st.Workouts != 3 {
		t.Errorf("Workouts = %d, want 3", st.Workouts)
	}
	if st.TotalVolume != 3000 {
		t.Errorf("TotalVolume = %v, want 3000", st.TotalVolume)
	}
	if st.TotalMinutes != 75 || st.AvgDuration != 37.5 {
		t.Errorf("minutes/avg = %v/%v, want 75/37.5 (missing duration excluded)", st.TotalMinutes, st.AvgDuration)
	}
	if st.WeeklyGoal.Percent != 75 || st.WeeklyGoal.Remainder != 1 {
		t.Errorf("WeeklyGoal = %+v, want 75%% with 1 left", st.WeeklyGoal)
	}
	if st.Streak != 2 {
		t.Errorf("Streak = %d, want 2", st.Streak)
	}
	if st.TopExercise != "bench" {
		t.Errorf("TopExercise = %q, want bench", st.TopExercise)
	}
	if st.Series[6].Sum != 1500 || st.Series[5].Measured != 0 {
		t.Errorf("series today/yesterday = %+v / %+v", st.Series[6], st.Series[5])
	}
}

func TestComposeMeals(t *testing.T) {
	now := calendar.MustParse("2026-10-19")
	records := []model.Record{
		rec(model.ModuleMeals, "2026-10-19", "lunch", "", map[string]float64{"calories": 600, "protein_g": 30}),
		rec(model.ModuleMeals, "2026-10-19", "dinner", "", map[string]float64{"calories": 900, "protein_g": 40}),
		rec(model.ModuleMeals, "2026-10-01", "lunch", "", map[string]float64{"calories": 1500}),
		rec(model.ModuleMeals, "2026-09-30", "lunch", "", map[string]float64{"calories": 2500}),
	}

	st := ComposeMeals(records, model.Goals{DailyCalories: 2000, DailyProteinG: 100}, now)

	if st.TodayCalories != 1500 || st.CalorieGoal.Percent != 75 {
		t.Errorf("calories today = %v (%d%%), want 1500 (75%%)", st.TodayCalories, st.CalorieGoal.Percent)
	}
	if st.TodayProtein != 70 || st.ProteinGoal.Percent != 70 {
		t.Errorf("protein today = %v (%d%%), want 70 (70%%)", st.TodayProtein, st.ProteinGoal.Percent)
	}
	if st.MonthMeals != 3 || st.DaysLogged != 2 {
		t.Errorf("MonthMeals/DaysLogged = %d/%d, want 3/2", st.MonthMeals, st.DaysLogged)
	}
	if st.AvgDailyCalories != 1500 {
		t.Errorf("AvgDailyCalories = %v, want 1500", st.AvgDailyCalories)
	}
}

func TestComposeWellness(t *testing.T) {
	now := calendar.MustParse("2026-10-19")
	records := []model.Record{
		rec(model.ModuleWellness, "2026-10-19", "", "", map[string]float64{"mood": 4, "sleep_hours": 7, "energy": 3}),
		rec(model.ModuleWellness, "2026-10-18", "", "", map[string]float64{"mood": 2}),
	}

	st := ComposeWellness(records, model.Goals{SleepHours: 8}, now)

	if st.Entries != 2 || st.AvgMood != 3 || st.AvgSleep != 7 || st.AvgEnergy != 3 {
		t.Errorf("got %+v", st)
	}
	if st.SleepGoal.Percent != 88 || st.SleepGoal.Current != 7 {
		t.Errorf("SleepGoal = %+v, want 7 of 8 (88%%)", st.SleepGoal)
	}
	if st.JournalStreak != 2 {
		t.Errorf("JournalStreak = %d, want 2", st.JournalStreak)
	}
	if len(st.Series) != 14 || st.Series[13].Average != 4 {
		t.Errorf("series today = %+v", st.Series[len(st.Series)-1])
	}
}

func TestComposeTravel(t *testing.T) {
	now := calendar.MustParse("2026-10-19")
	records := []model.Record{
		rec(model.ModuleTravel, "2026-03-01", "", "lisbon", map[string]float64{"nights": 4, "cost": 1200.50}),
		rec(model.ModuleTravel, "2026-12-20", "", "tokyo", map[string]float64{"nights": 3, "cost": 800.25}),
		rec(model.ModuleTravel, "2025-12-30", "", "oslo", map[string]float64{"nights": 2, "cost": 500}),
	}

	st := ComposeTravel(records, model.Goals{AnnualTravelBudget: 2000}, now)

	if st.Trips != 2 || st.Nights != 7 {
		t.Errorf("Trips/Nights = %d/%v, want 2/7", st.Trips, st.Nights)
	}
	if !st.Spend.Equal(decimal.RequireFromString("2000.75")) {
		t.Errorf("Spend = %s, want 2000.75", st.Spend)
	}
	if !st.Budget.IsOver || st.Budget.Remainder != -0.75 {
		t.Errorf("Budget = %+v, want over by 0.75", st.Budget)
	}
	if len(st.Series) != 12 {
		t.Errorf("Series = %d buckets, want 12", len(st.Series))
	}
}

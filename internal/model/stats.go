package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bucket holds aggregates for one calendar window. Start and End are
// inclusive YYYY-MM-DD dates. Label is for display only.
type Bucket struct {
	Label    string  `json:"label"`
	Start    string  `json:"start"`
	End      string  `json:"end"`
	Count    int     `json:"count"`
	Measured int     `json:"measured"` // records that carried the summed measure
	Sum      float64 `json:"sum"`
	Average  float64 `json:"average"`
}

// Total is the aggregate of one measure over a stats period.
type Total struct {
	Sum     float64 `json:"sum"`
	Count   int     `json:"count"` // records that carried the measure
	Average float64 `json:"average"`
}

// SplitTotals holds the totals for the records matching one discriminant.
type SplitTotals struct {
	Records int              `json:"records"`
	Totals  map[string]Total `json:"totals"`
}

// Stats is the generic composed result every module composer starts from.
type Stats struct {
	Module        Module                  `json:"module"`
	PeriodStart   string                  `json:"period_start"`
	PeriodEnd     string                  `json:"period_end"`
	Records       int                     `json:"records"`
	Totals        map[string]Total        `json:"totals"`
	Splits        map[string]SplitTotals  `json:"splits,omitempty"`
	Goals         map[string]GoalProgress `json:"goals,omitempty"`
	Series        []Bucket                `json:"series,omitempty"`
	Streak        int                     `json:"streak"`
	LongestStreak int                     `json:"longest_streak"`
}

// TaskStats summarizes tasks touched in the last 7 days.
type TaskStats struct {
	PeriodStart    string   `json:"period_start"`
	PeriodEnd      string   `json:"period_end"`
	Total          int      `json:"total"`
	Completed      int      `json:"completed"`
	Open           int      `json:"open"`
	CompletionRate int      `json:"completion_rate"`
	CompletedToday int      `json:"completed_today"`
	Streak         int      `json:"streak"`
	Series         []Bucket `json:"series"`
}

// ContactStats summarizes logged interactions over the last 30 days.
type ContactStats struct {
	PeriodStart   string       `json:"period_start"`
	PeriodEnd     string       `json:"period_end"`
	Interactions  int          `json:"interactions"`
	PeopleReached int          `json:"people_reached"`
	WeeklyGoal    GoalProgress `json:"weekly_goal"`
	Series        []Bucket     `json:"series"`
}

// HabitSummary is the per-habit view.
type HabitSummary struct {
	Name           string       `json:"name"`
	Target         float64      `json:"target"`
	Today          float64      `json:"today"`
	TodayProgress  GoalProgress `json:"today_progress"`
	Streak         int          `json:"streak"`
	LongestStreak  int          `json:"longest_streak"`
	CompletionRate int          `json:"completion_rate"` // qualifying days in the last 7
}

// HabitStats summarizes all habits.
type HabitStats struct {
	PeriodStart    string         `json:"period_start"`
	PeriodEnd      string         `json:"period_end"`
	Habits         []HabitSummary `json:"habits"`
	HabitsStreak   int            `json:"habits_streak"`
	CompletedToday int            `json:"completed_today"`
	TodayRate      int            `json:"today_rate"`
	Series         []Bucket       `json:"series"`
}

// FitnessStats summarizes workouts over the last 7 days.
type FitnessStats struct {
	PeriodStart  string       `json:"period_start"`
	PeriodEnd    string       `json:"period_end"`
	Workouts     int          `json:"workouts"`
	TotalVolume  float64      `json:"total_volume"`
	TotalMinutes float64      `json:"total_minutes"`
	AvgDuration  float64      `json:"avg_duration"`
	WeeklyGoal   GoalProgress `json:"weekly_goal"`
	Streak       int          `json:"streak"`
	TopExercise  string       `json:"top_exercise,omitempty"`
	Series       []Bucket     `json:"series"`
}

// MealStats summarizes food logging for today and the current month.
type MealStats struct {
	PeriodStart      string       `json:"period_start"`
	PeriodEnd        string       `json:"period_end"`
	TodayCalories    float64      `json:"today_calories"`
	TodayProtein     float64      `json:"today_protein"`
	CalorieGoal      GoalProgress `json:"calorie_goal"`
	ProteinGoal      GoalProgress `json:"protein_goal"`
	MonthMeals       int          `json:"month_meals"`
	DaysLogged       int          `json:"days_logged"`
	AvgDailyCalories float64      `json:"avg_daily_calories"`
	Series           []Bucket     `json:"series"`
}

// CategoryAmount is spending in one category for the period.
type CategoryAmount struct {
	Category         string          `json:"category"`
	Amount           decimal.Decimal `json:"amount"`
	PercentOfExpense int             `json:"percent_of_expense"`
	Budget           *GoalProgress   `json:"budget,omitempty"`
}

// FinanceStats summarizes the current calendar month of transactions.
type FinanceStats struct {
	PeriodStart   string           `json:"period_start"`
	PeriodEnd     string           `json:"period_end"`
	MonthIncome   decimal.Decimal  `json:"month_income"`
	MonthExpenses decimal.Decimal  `json:"month_expenses"`
	NetSavings    decimal.Decimal  `json:"net_savings"`
	SavingsRate   int              `json:"savings_rate"`
	Budget        GoalProgress     `json:"budget"`
	Categories    []CategoryAmount `json:"categories"`
	Series        []Bucket         `json:"series"`
}

// TravelStats summarizes trips starting in the current calendar year.
type TravelStats struct {
	PeriodStart string          `json:"period_start"`
	PeriodEnd   string          `json:"period_end"`
	Trips       int             `json:"trips"`
	Nights      float64         `json:"nights"`
	Spend       decimal.Decimal `json:"spend"`
	Budget      GoalProgress    `json:"budget"`
	Series      []Bucket        `json:"series"`
}

// WellnessStats summarizes mood and sleep check-ins over the last 14 days.
type WellnessStats struct {
	PeriodStart   string       `json:"period_start"`
	PeriodEnd     string       `json:"period_end"`
	Entries       int          `json:"entries"`
	AvgMood       float64      `json:"avg_mood"`
	AvgSleep      float64      `json:"avg_sleep"`
	AvgEnergy     float64      `json:"avg_energy"`
	SleepGoal     GoalProgress `json:"sleep_goal"`
	JournalStreak int          `json:"journal_streak"`
	Series        []Bucket     `json:"series"`
}

// Dashboard bundles every module's stats for one reference date.
type Dashboard struct {
	Today       string        `json:"today"`
	GeneratedAt time.Time     `json:"generated_at"`
	Tasks       TaskStats     `json:"tasks"`
	Contacts    ContactStats  `json:"contacts"`
	Habits      HabitStats    `json:"habits"`
	Fitness     FitnessStats  `json:"fitness"`
	Meals       MealStats     `json:"meals"`
	Finance     FinanceStats  `json:"finance"`
	Travel      TravelStats   `json:"travel"`
	Wellness    WellnessStats `json:"wellness"`
}

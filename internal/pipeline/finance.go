package pipeline

import (
	"sort"

	"github.com/theirongolddev/pulse/internal/calendar"
	"github.com/theirongolddev/pulse/internal/model"
)

// Uncategorized names expenses recorded without a category.
const Uncategorized = "uncategorized"

const categoryPrefix = "category:"

func categoryOf(r model.Record) string {
	if r.Entity == "" {
		return Uncategorized
	}
	return r.Entity
}

func inCategory(name string) func(model.Record) bool {
	isExpense := IsKind(model.KindExpense)
	return func(r model.Record) bool {
		return isExpense(r) && categoryOf(r) == name
	}
}

// ComposeFinance reports income, expenses and budgets for the current
// calendar month. Amounts are summed in decimal and rounded to cents once.
func ComposeFinance(records []model.Record, goals model.Goals, now calendar.Date) model.FinanceStats {
	isExpense := IsKind(model.KindExpense)
	amount := Field(model.ValueAmount)

	start, end := FinancePeriod.Range(now)
	expenses := filter(FilterByRange(FilterByModule(records, model.ModuleFinance), start, end), isExpense)
	categories := financeCategories(expenses, goals.CategoryBudgets)

	cfg := StatsConfig{
		Module: model.ModuleFinance,
		Period: FinancePeriod,
		Measures: []Measure{
			{Name: "amount", Value: amount, Money: true},
			{Name: "spent", Value: Where(isExpense, amount), Money: true},
		},
		Splits: []Split{
			{Name: model.KindIncome, Match: IsKind(model.KindIncome)},
			{Name: model.KindExpense, Match: isExpense},
		},
		Goals: []Goal{{
			Name:    "budget",
			Measure: "amount",
			Split:   model.KindExpense,
			Target:  goals.MonthlyBudget,
		}},
		Chart: &Chart{Window: Window{Count: 6, Unit: UnitMonth}, Measure: "spent"},
	}
	for _, c := range categories {
		cfg.Splits = append(cfg.Splits, Split{Name: categoryPrefix + c, Match: inCategory(c)})
		if target, ok := goals.CategoryBudgets[c]; ok {
			cfg.Goals = append(cfg.Goals, Goal{
				Name:    categoryPrefix + c,
				Measure: "amount",
				Split:   categoryPrefix + c,
				Target:  target,
			})
		}
	}

	s := Compose(records, cfg, now)

	income := Money(s.Splits[model.KindIncome].Totals["amount"].Sum)
	spent := Money(s.Splits[model.KindExpense].Totals["amount"].Sum)
	net := income.Sub(spent)

	st := model.FinanceStats{
		PeriodStart:   s.PeriodStart,
		PeriodEnd:     s.PeriodEnd,
		MonthIncome:   income,
		MonthExpenses: spent,
		NetSavings:    net,
		Budget:        s.Goals["budget"],
		Series:        s.Series,
	}
	if income.IsPositive() {
		st.SavingsRate = Percent(net.InexactFloat64(), income.InexactFloat64())
	}

	for _, c := range categories {
		ca := model.CategoryAmount{
			Category: c,
			Amount:   Money(s.Splits[categoryPrefix+c].Totals["amount"].Sum),
		}
		if spent.IsPositive() {
			ca.PercentOfExpense = Percent(ca.Amount.InexactFloat64(), spent.InexactFloat64())
		}
		if g, ok := s.Goals[categoryPrefix+c]; ok {
			ca.Budget = &g
		}
		st.Categories = append(st.Categories, ca)
	}
	sort.SliceStable(st.Categories, func(i, j int) bool {
		a, b := st.Categories[i], st.Categories[j]
		if !a.Amount.Equal(b.Amount) {
			return a.Amount.GreaterThan(b.Amount)
		}
		return a.Category < b.Category
	})
	return st
}

// financeCategories lists every category spent in plus every budgeted one.
func financeCategories(expenses []model.Record, budgets map[string]float64) []string {
	seen := make(map[string]struct{})
	for _, r := range expenses {
		seen[categoryOf(r)] = struct{}{}
	}
	for c := range budgets {
		seen[c] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for c := range seen {
		names = append(names, c)
	}
	sort.Strings(names)
	return names
}

// ComposeTravel reports trips starting in the current calendar year. Each
// record is one trip dated by its start.
func ComposeTravel(records []model.Record, goals model.Goals, now calendar.Date) model.TravelStats {
	s := Compose(records, StatsConfig{
		Module: model.ModuleTravel,
		Period: TravelPeriod,
		Measures: []Measure{
			{Name: "nights", Value: Field(model.ValueNights)},
			{Name: "cost", Value: Field(model.ValueCost), Money: true},
		},
		Goals: []Goal{{Name: "budget", Measure: "cost", Target: goals.AnnualTravelBudget}},
		Chart: &Chart{Window: Window{Count: 12, Unit: UnitMonth}},
	}, now)

	return model.TravelStats{
		PeriodStart: s.PeriodStart,
		PeriodEnd:   s.PeriodEnd,
		Trips:       s.Records,
		Nights:      s.Totals["nights"].Sum,
		Spend:       Money(s.Totals["cost"].Sum),
		Budget:      s.Goals["budget"],
		Series:      s.Series,
	}
}

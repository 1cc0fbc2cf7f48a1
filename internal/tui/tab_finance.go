package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/pulse/internal/cli"
	"github.com/theirongolddev/pulse/internal/tui/components"
	"github.com/theirongolddev/pulse/internal/tui/theme"
)

// renderFinanceTab shows the month's money and the year's travel.
func (a App) renderFinanceTab(cw int) string {
	t := theme.Active
	fin := a.dash.Finance
	tr := a.dash.Travel
	var b strings.Builder

	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Income (month)", Value: cli.FormatMoney(fin.MonthIncome)},
		{Label: "Spent (month)", Value: cli.FormatMoney(fin.MonthExpenses)},
		{Label: "Net savings", Value: cli.FormatMoney(fin.NetSavings), Delta: cli.FormatPercent(fin.SavingsRate) + " saved"},
		{Label: "Trips (year)", Value: cli.FormatNumber(int64(tr.Trips)), Delta: cli.FormatCount(tr.Nights) + " nights"},
	}, cw))
	b.WriteString("\n")

	rows := []goalRow{
		{"Monthly budget", fin.Budget, true, moneyCaption(fin.Budget)},
		{"Travel budget", tr.Budget, true, moneyCaption(tr.Budget)},
	}
	for _, c := range fin.Categories {
		if c.Budget != nil {
			rows = append(rows, goalRow{c.Category, *c.Budget, true, moneyCaption(*c.Budget)})
		}
	}
	b.WriteString(components.ContentCard("Budgets", renderGoals(rows, cw), cw))
	b.WriteString("\n")

	chartH := a.chartHeight()
	b.WriteString(a.sideBySide(cw, func(lw, rw int) (string, string) {
		left := components.ContentCard("Spending by category", a.renderCategories(lw), lw)
		right := components.ContentCard(
			"Spent (6 months)",
			components.BucketChart(fin.Series, components.BucketSum, t.ModuleColor("finance"), components.CardInnerWidth(rw), chartH),
			rw,
		)
		return left, right
	}))
	b.WriteString("\n")

	b.WriteString(components.ContentCard(
		fmt.Sprintf("Trips by month · %s spent", cli.FormatMoney(tr.Spend)),
		components.BucketChart(tr.Series, components.BucketCount, t.ModuleColor("travel"), components.CardInnerWidth(cw), chartH),
		cw,
	))

	return b.String()
}

func (a App) renderCategories(w int) string {
	t := theme.Active
	cats := a.dash.Finance.Categories
	innerW := components.CardInnerWidth(w)

	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	amountStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	if len(cats) == 0 {
		return mutedStyle.Render("No expenses this month")
	}

	const amountW = 12
	nameW := max(innerW-amountW-6, 6)
	var b strings.Builder
	for i, c := range cats {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(nameStyle.Render(fmt.Sprintf("%-*s", nameW, truncStr(c.Category, nameW))))
		b.WriteString(amountStyle.Render(fmt.Sprintf("%*s", amountW, cli.FormatMoney(c.Amount))))
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%5s", cli.FormatPercent(c.PercentOfExpense))))
	}
	return b.String()
}

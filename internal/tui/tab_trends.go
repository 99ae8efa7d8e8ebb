package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/finpulse/internal/cli"
	"github.com/theirongolddev/finpulse/internal/model"
	"github.com/theirongolddev/finpulse/internal/pipeline"
	"github.com/theirongolddev/finpulse/internal/tui/components"
	"github.com/theirongolddev/finpulse/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderTrendsTab(cw int) string {
	t := theme.Active
	trends := a.data.analysis.MonthlyTrends

	title := fmt.Sprintf("Income vs Expenses (last %d months)", pipeline.TrendMonths)
	if len(trends) == 0 {
		return components.ContentCard(title,
			lipgloss.NewStyle().Foreground(t.TextDim).Render("No transactions in the trend window"), cw)
	}

	labels, income, expenses, net := trendSeries(trends)

	chartH := 12
	if a.isCompactLayout() {
		chartH = 8
	}

	legend := lipgloss.NewStyle().Foreground(t.Income).Background(t.Surface).Render("█ income") +
		lipgloss.NewStyle().Background(t.Surface).Render("  ") +
		lipgloss.NewStyle().Foreground(t.Expense).Background(t.Surface).Render("█ expenses")

	chart := components.BarChart([]components.Series{
		{Values: income, Color: t.Income},
		{Values: expenses, Color: t.Expense},
	}, labels, components.CardInnerWidth(cw), chartH)

	var b strings.Builder
	b.WriteString(components.ContentCard(title, legend+"\n"+chart, cw))
	b.WriteString("\n")

	// Net per month table with sparkline
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var body strings.Builder
	body.WriteString(labelStyle.Render("net ") + components.Sparkline(net, t.Accent))
	body.WriteString("\n")
	for i, month := range labels {
		style := lipgloss.NewStyle().Foreground(t.Flow(net[i])).Background(t.Surface)
		body.WriteString(labelStyle.Render(fmt.Sprintf("%-9s", month)))
		body.WriteString(labelStyle.Render(fmt.Sprintf("%14s %14s", cli.FormatMoney(income[i]), cli.FormatMoney(expenses[i]))))
		body.WriteString(style.Render(fmt.Sprintf(" %15s", cli.FormatDelta(net[i]))))
		body.WriteString("\n")
	}
	b.WriteString(components.ContentCard("Monthly Net", strings.TrimRight(body.String(), "\n"), cw))

	return b.String()
}

// trendSeries splits monthly trends into parallel label and value slices.
func trendSeries(trends []model.MonthlyTrend) (labels []string, income, expenses, net []float64) {
	labels = make([]string, len(trends))
	income = make([]float64, len(trends))
	expenses = make([]float64, len(trends))
	net = make([]float64, len(trends))
	for i, m := range trends {
		labels[i] = m.Month
		income[i] = m.Income
		expenses[i] = m.Expenses
		net[i] = m.Income - m.Expenses
	}
	return labels, income, expenses, net
}

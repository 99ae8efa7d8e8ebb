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

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	snap := a.data.snapshot
	an := a.data.analysis
	m := pipeline.ComputeMetrics(snap)

	var b strings.Builder

	// Row 1: headline metrics
	cards := []components.Metric{
		{Label: "Net Worth", Value: cli.FormatMoney(an.NetWorth), Delta: "savings + investments - debt"},
		{Label: "Monthly Surplus", Value: cli.FormatDelta(an.MonthlySurplus), Delta: cli.FormatPercent(m.SavingsRate) + " savings rate", Color: t.Flow(an.MonthlySurplus)},
		{Label: "Emergency Fund", Value: cli.FormatMonths(an.EmergencyFundMonths), Delta: cli.FormatMoney(snap.EmergencyFund)},
		{Label: "Debt / Income", Value: cli.FormatRatio(m.DebtToIncome), Delta: cli.FormatMoney(snap.DebtAmount) + " owed"},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	// Row 2: health score
	innerW := components.CardInnerWidth(cw)
	barW := min(max(innerW-30, 10), 60)
	b.WriteString(components.ContentCard("Financial Health",
		cli.RenderScoreBar(an.FinancialHealthScore, an.HealthRating, barW), cw))
	b.WriteString("\n")

	// Row 3: snapshot + recent transactions
	halves := components.LayoutRow(cw, 2)
	snapCard := components.ContentCard("Snapshot", a.snapshotBody(), halves[0])
	recentCard := components.ContentCard("Recent Transactions", a.recentBody(components.CardInnerWidth(halves[1])), halves[1])
	if a.isCompactLayout() {
		b.WriteString(components.ContentCard("Snapshot", a.snapshotBody(), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Recent Transactions", a.recentBody(innerW), cw))
	} else {
		b.WriteString(components.CardRow([]string{snapCard, recentCard}))
	}

	return b.String()
}

func (a App) snapshotBody() string {
	t := theme.Active
	snap := a.data.snapshot

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	rows := []struct {
		label string
		value float64
	}{
		{"Monthly income", snap.MonthlyIncome},
		{"Monthly expenses", snap.MonthlyExpenses},
		{"Savings goal", snap.SavingsGoal},
		{"Current savings", snap.CurrentSavings},
		{"Investments", snap.InvestmentAmount},
		{"Debt", snap.DebtAmount},
		{"Emergency fund", snap.EmergencyFund},
	}

	var b strings.Builder
	for _, r := range rows {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-18s", r.label)))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%14s", cli.FormatMoney(r.value))))
		b.WriteString("\n")
	}
	if !snap.UpdatedAt.IsZero() {
		b.WriteString(labelStyle.Render("updated " + snap.UpdatedAt.Local().Format("Jan 2 15:04")))
	}
	return b.String()
}

func (a App) recentBody(innerW int) string {
	t := theme.Active
	if len(a.data.recent) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Render("No transactions recorded")
	}

	dateStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	catStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	inStyle := lipgloss.NewStyle().Foreground(t.Income).Background(t.Surface)
	outStyle := lipgloss.NewStyle().Foreground(t.Expense).Background(t.Surface)

	amountW := 13
	catW := max(innerW-10-1-amountW-1, 8)

	var b strings.Builder
	for _, tx := range a.data.recent {
		amount := cli.FormatMoney(tx.Amount)
		style := outStyle
		if tx.Type == model.Income {
			amount = "+" + amount
			style = inStyle
		}
		b.WriteString(dateStyle.Render(tx.Date.String()))
		b.WriteString(catStyle.Render(fmt.Sprintf(" %-*s", catW, truncStr(tx.Category, catW))))
		b.WriteString(style.Render(fmt.Sprintf(" %*s", amountW, amount)))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

package tui

import (
	"strings"

	"github.com/theirongolddev/finpulse/internal/cli"
	"github.com/theirongolddev/finpulse/internal/tui/components"
	"github.com/theirongolddev/finpulse/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// adviceChrome is the rows taken by the summary card and the advice card border.
const adviceChrome = 8

func (a App) renderAdviceTab(cw int) string {
	t := theme.Active
	dim := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	errStyle := lipgloss.NewStyle().Foreground(t.Error).Background(t.Surface)

	switch {
	case !a.adviceEnabled:
		return components.ContentCard("Advice",
			dim.Render("No text generation provider configured. Set an API key with `finpulse setup`."), cw)
	case a.advising:
		return components.ContentCard("Advice",
			a.spinner.View()+muted.Render(" Asking your advisor..."), cw)
	case a.adviceErr != nil:
		return components.ContentCard("Advice",
			errStyle.Render(a.adviceErr.Error())+"\n"+dim.Render("Press a to try again."), cw)
	case a.advice == nil:
		return components.ContentCard("Advice",
			dim.Render("Press a to generate personalized advice from your snapshot and recent transactions."), cw)
	}

	s := a.advice.Summary
	summary := components.MetricCardRow([]components.Metric{
		{Label: "Income", Value: cli.FormatMoney(s.MonthlyIncome)},
		{Label: "Expenses", Value: cli.FormatMoney(s.MonthlyExpenses)},
		{Label: "Net", Value: cli.FormatDelta(s.NetIncome)},
		{Label: "Savings Rate", Value: cli.FormatPercent(s.SavingsRate)},
		{Label: "Debt / Income", Value: cli.FormatRatio(s.DebtToIncomeRatio)},
	}, cw)

	var b strings.Builder
	b.WriteString(summary)
	b.WriteString("\n")
	b.WriteString(components.ContentCard("Advice", a.adviceView.View(), cw))
	return b.String()
}

// resizeAdviceView sizes the advice viewport to the content area and
// re-wraps the advice text to its width.
func (a *App) resizeAdviceView() {
	cw := a.contentWidth()
	a.adviceView.Width = components.CardInnerWidth(cw)
	a.adviceView.Height = max(a.contentHeight()-adviceChrome, 3)
	if a.advice == nil {
		a.adviceView.SetContent("")
		return
	}
	t := theme.Active
	wrapped := lipgloss.NewStyle().
		Foreground(t.TextPrimary).
		Width(a.adviceView.Width).
		Render(a.advice.Advice)
	a.adviceView.SetContent(wrapped)
	a.adviceView.GotoTop()
}

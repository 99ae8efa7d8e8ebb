package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/finpulse/internal/cli"
	"github.com/theirongolddev/finpulse/internal/tui/components"
	"github.com/theirongolddev/finpulse/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderSpendingTab(cw int) string {
	t := theme.Active
	cats := a.data.analysis.SpendingByCategory

	if len(cats) == 0 {
		return components.ContentCard("Spending by Category",
			lipgloss.NewStyle().Foreground(t.TextDim).Render("No expenses recorded"), cw)
	}

	innerW := components.CardInnerWidth(cw)

	total := 0.0
	nameW := 10
	for _, c := range cats {
		total += c.Amount
		nameW = max(nameW, len([]rune(c.Category)))
	}
	nameW = min(nameW, innerW/3)
	amountW := 14
	shareW := 7
	barMax := max(innerW-nameW-amountW-shareW-3, 1)
	peak := cats[0].Amount

	barStyles := make([]lipgloss.Style, max(len(t.Categories), 1))
	for i := range barStyles {
		barStyles[i] = lipgloss.NewStyle().Foreground(t.Category(i)).Background(t.Surface)
	}
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	amountStyle := lipgloss.NewStyle().Foreground(t.Expense).Background(t.Surface)
	shareStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	ruleStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-*s %*s %*s", nameW, "Category", amountW, "Amount", shareW, "Share")))
	b.WriteString("\n")
	b.WriteString(ruleStyle.Render(strings.Repeat("─", innerW)))
	b.WriteString("\n")

	for i, c := range cats {
		share := 0.0
		if total > 0 {
			share = c.Amount / total * 100
		}
		barLen := 0
		if peak > 0 {
			barLen = max(int(c.Amount/peak*float64(barMax)), 0)
		}
		b.WriteString(nameStyle.Render(fmt.Sprintf("%-*s", nameW, truncStr(c.Category, nameW))))
		b.WriteString(amountStyle.Render(fmt.Sprintf(" %*s", amountW, cli.FormatMoney(c.Amount))))
		b.WriteString(shareStyle.Render(fmt.Sprintf(" %*s ", shareW, cli.FormatPercent(share))))
		b.WriteString(barStyles[i%len(barStyles)].Render(strings.Repeat("█", barLen)))
		b.WriteString("\n")
	}

	b.WriteString(ruleStyle.Render(strings.Repeat("─", innerW)))
	b.WriteString("\n")
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-*s %*s", nameW, "Total", amountW, cli.FormatMoney(total))))

	return components.ContentCard(
		fmt.Sprintf("Spending by Category (%s)", cli.FormatCount(len(cats))+" categories"),
		b.String(), cw)
}

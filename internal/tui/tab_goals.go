package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/finpulse/internal/cli"
	"github.com/theirongolddev/finpulse/internal/model"
	"github.com/theirongolddev/finpulse/internal/tui/components"
	"github.com/theirongolddev/finpulse/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderGoalsTab(cw int) string {
	t := theme.Active
	goals := a.data.goals

	if len(goals) == 0 {
		return components.ContentCard("Goals",
			lipgloss.NewStyle().Foreground(t.TextDim).Render("No goals yet. Add one with `finpulse goals add`."), cw)
	}

	innerW := components.CardInnerWidth(cw)
	labelW := 18
	remainingW := 24
	barW := max(innerW-labelW-remainingW-8, 10)

	descStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	doneStyle := lipgloss.NewStyle().Foreground(t.Healthy).Background(t.Surface).Bold(true)

	var b strings.Builder
	for _, g := range goals {
		pct := g.ProgressPercent() / 100
		remaining := fmt.Sprintf("%s of %s", cli.FormatMoney(g.CurrentAmount), cli.FormatMoney(g.TargetAmount))
		b.WriteString(components.GoalBar(truncStr(g.GoalType, labelW), pct, remaining, labelW, barW))
		b.WriteString("\n")

		var meta []string
		if g.Status == model.GoalCompleted {
			meta = append(meta, doneStyle.Render("completed"))
		}
		if g.TargetDate != nil {
			meta = append(meta, descStyle.Render("by "+g.TargetDate.String()))
		}
		if g.Description != "" {
			meta = append(meta, descStyle.Render(truncStr(g.Description, innerW-labelW-20)))
		}
		if len(meta) > 0 {
			b.WriteString(descStyle.Render(strings.Repeat(" ", labelW+1)))
			b.WriteString(strings.Join(meta, descStyle.Render(" · ")))
			b.WriteString("\n")
		}
	}

	return components.ContentCard(fmt.Sprintf("Goals (%d)", len(goals)), strings.TrimRight(b.String(), "\n"), cw)
}

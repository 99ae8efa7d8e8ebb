package components

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/finpulse/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ProgressBar renders a block progress bar with percentage.
func ProgressBar(pct float64, width int) string {
	t := theme.Active
	pct = clamp01(pct)
	filled := int(pct * float64(width))

	barColor := ColorForProgress(pct)
	filledStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	b.WriteString(filledStyle.Render(strings.Repeat("█", filled)))
	b.WriteString(emptyStyle.Render(strings.Repeat("░", width-filled)))

	return b.String() + spaceStyle.Render(" ") + pctStyle.Render(fmt.Sprintf("%.0f%%", pct*100))
}

// ColorForProgress returns the active theme's colour for the fraction of a
// target reached.
func ColorForProgress(pct float64) lipgloss.Color {
	return theme.Active.Progress(pct)
}

// GoalBar renders a labeled goal progress line: label, bar, percent and the
// remaining amount.
func GoalBar(label string, pct float64, remaining string, labelW, barWidth int) string {
	t := theme.Active
	pct = clamp01(pct)
	color := ColorForProgress(pct)

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	remainingStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		spaceStyle.Render(" ") +
		bar.ViewAs(pct) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%3.0f%%", pct*100)) +
		spaceStyle.Render("  ") +
		remainingStyle.Render(remaining)
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}

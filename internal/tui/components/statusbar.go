package components

import (
	"fmt"

	"github.com/theirongolddev/finpulse/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// StatusInfo is the state shown in the bottom status bar.
type StatusInfo struct {
	Subject       string
	DataAge       string
	Refreshing    bool
	AdviceEnabled bool
	Err           error
}

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, info StatusInfo) string {
	t := theme.Active

	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.SurfaceHover)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceHover).Bold(true)
	errStyle := lipgloss.NewStyle().Foreground(t.Error).Background(t.SurfaceHover)

	left := base.Render(" ") + keyStyle.Render("?") + base.Render(" help  ") +
		keyStyle.Render("r") + base.Render(" refresh  ")
	if info.AdviceEnabled {
		left += keyStyle.Render("a") + base.Render(" advice  ")
	}
	left += keyStyle.Render("q") + base.Render(" quit")

	var right string
	switch {
	case info.Err != nil:
		right = errStyle.Render(info.Err.Error() + " ")
	case info.Refreshing:
		right = base.Render("refreshing… ")
	default:
		right = base.Render(fmt.Sprintf("%s · loaded in %s ", info.Subject, info.DataAge))
	}

	padding := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	bar := left + base.Render(fmt.Sprintf("%*s", padding, "")) + right

	return lipgloss.NewStyle().Background(t.SurfaceHover).MaxWidth(width).Render(bar)
}

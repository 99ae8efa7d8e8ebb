package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/finpulse/internal/model"
	"github.com/theirongolddev/finpulse/internal/tui/theme"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// RatingColor returns the active theme's color for a health rating.
func RatingColor(r model.HealthRating) lipgloss.Color {
	return theme.Active.Rating(r)
}

// RatingLabel returns a human label for a health rating.
func RatingLabel(r model.HealthRating) string {
	switch r {
	case model.RatingHealthy:
		return "Healthy"
	case model.RatingFair:
		return "Fair"
	default:
		return "At risk"
	}
}

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Widths  []int // optional column widths, auto-calculated if nil
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderTable renders a bordered table with headers and rows. The first
// column is left-aligned, the rest right-aligned. A row holding the single
// cell "---" renders as a separator.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	numCols := len(t.Headers)
	if numCols == 0 {
		numCols = len(t.Rows[0])
	}
	widths := columnWidths(t, numCols)

	rule := func(left, mid, right string) string {
		var b strings.Builder
		b.WriteString(left)
		for i, w := range widths {
			b.WriteString(strings.Repeat("─", w+2))
			if i < numCols-1 {
				b.WriteString(mid)
			}
		}
		b.WriteString(right)
		return dimStyle.Render(b.String()) + "\n"
	}
	sep := dimStyle.Render("│")

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  " + headerStyle.Render(t.Title) + "\n")
	}

	b.WriteString(rule("╭", "┬", "╮"))

	if len(t.Headers) > 0 {
		b.WriteString(sep)
		for i, h := range t.Headers {
			b.WriteString(headerStyle.Render(fmt.Sprintf(" %-*s ", widths[i], h)))
			b.WriteString(sep)
		}
		b.WriteString("\n")
		b.WriteString(rule("├", "┼", "┤"))
	}

	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			b.WriteString(rule("├", "┼", "┤"))
			continue
		}

		b.WriteString(sep)
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			format := " %*s "
			if i == 0 {
				format = " %-*s "
			}
			b.WriteString(valueStyle.Render(fmt.Sprintf(format, widths[i], cell)))
			b.WriteString(sep)
		}
		b.WriteString("\n")
	}

	b.WriteString(rule("╰", "┴", "╯"))
	return b.String()
}

func columnWidths(t Table, numCols int) []int {
	widths := make([]int, numCols)
	if t.Widths != nil {
		copy(widths, t.Widths)
		return widths
	}
	for i, h := range t.Headers {
		widths[i] = max(widths[i], lipgloss.Width(h))
	}
	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			continue
		}
		for i, cell := range row {
			if i < numCols {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}
	return widths
}

// RenderScoreBar renders a 0-100 score as a colored bar with its value.
func RenderScoreBar(score float64, rating model.HealthRating, width int) string {
	pct := score / 100
	pct = min(max(pct, 0), 1)

	filled := int(pct * float64(width))
	bar := lipgloss.NewStyle().Foreground(RatingColor(rating)).Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("[%s] %s %s", bar, FormatScore(score),
		lipgloss.NewStyle().Foreground(RatingColor(rating)).Bold(true).Render(RatingLabel(rating)))
}

// RenderSparkline generates a unicode block sparkline from a series of values.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := values[0]
	for _, v := range values[1:] {
		peak = max(peak, v)
	}
	if peak <= 0 {
		peak = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		idx = min(max(idx, 0), len(blocks)-1)
		b.WriteRune(blocks[idx])
	}
	return b.String()
}

// RenderHorizontalBar renders a labelled horizontal bar chart entry.
func RenderHorizontalBar(label string, labelWidth int, value, maxValue float64, maxWidth int) string {
	barLen := 0
	if maxValue > 0 {
		barLen = max(int(value/maxValue*float64(maxWidth)), 0)
	}
	return fmt.Sprintf("  %-*s %s %s", labelWidth, label,
		lipgloss.NewStyle().Foreground(ColorAccent).Render(strings.Repeat("█", barLen)),
		mutedStyle.Render(FormatMoney(value)))
}

package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/finpulse/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	peak := values[0]
	for _, v := range values[1:] {
		peak = max(peak, v)
	}
	if peak <= 0 {
		peak = 1
	}

	var buf strings.Builder
	buf.Grow(len(values) * 3)
	for _, v := range values {
		idx := int(v / peak * float64(len(sparkBlocks)-1))
		idx = min(max(idx, 0), len(sparkBlocks)-1)
		buf.WriteRune(sparkBlocks[idx])
	}

	return lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render(buf.String())
}

// Series is one set of bars in a BarChart.
type Series struct {
	Values []float64
	Color  lipgloss.Color
}

// BarChart renders grouped vertical bars, one group per label. Every series
// must have len(labels) values. Negative values render as empty bars.
func BarChart(series []Series, labels []string, width, height int) string {
	if len(series) == 0 || len(labels) == 0 {
		return ""
	}
	if width < 15 || height < 3 {
		return Sparkline(series[0].Values, series[0].Color)
	}

	t := theme.Active
	n := len(labels)

	maxVal := 0.0
	for _, s := range series {
		for _, v := range s.Values {
			maxVal = max(maxVal, v)
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	// Y-axis: compute tick step and ceiling
	tickStep := chartTickStep(maxVal)
	maxIntervals := max(height/2, 2)
	for int(math.Ceil(maxVal/tickStep)) > maxIntervals {
		tickStep *= 2
	}
	ceiling := math.Ceil(maxVal/tickStep) * tickStep
	numIntervals := max(int(math.Round(ceiling/tickStep)), 1)
	rowsPerTick := max(height/numIntervals, 2)
	chartH := rowsPerTick * numIntervals

	yLabelW := max(len(formatChartLabel(ceiling))+1, 5)
	tickLabels := make(map[int]string, numIntervals)
	for i := 1; i <= numIntervals; i++ {
		tickLabels[i*rowsPerTick] = formatChartLabel(tickStep * float64(i))
	}

	// Bar sizing: bars within a group touch, groups are separated by a gap.
	chartW := max(width-yLabelW-1, 5)
	groupGap := 2
	barW := (chartW - (n-1)*groupGap) / (n * len(series))
	barW = min(max(barW, 1), 5)
	groupW := barW * len(series)
	axisLen := n*groupW + (n-1)*groupGap

	blocks := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)
	styles := make([]lipgloss.Style, len(series))
	for i, s := range series {
		styles[i] = lipgloss.NewStyle().Foreground(s.Color).Background(t.Surface)
	}

	var b strings.Builder
	for row := chartH; row >= 1; row-- {
		rowTop := ceiling * float64(row) / float64(chartH)
		rowBottom := ceiling * float64(row-1) / float64(chartH)

		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, tickLabels[row])))
		b.WriteString(axisStyle.Render("│"))

		for i := range labels {
			if i > 0 {
				b.WriteString(blank.Render(strings.Repeat(" ", groupGap)))
			}
			for si, s := range series {
				v := 0.0
				if i < len(s.Values) {
					v = s.Values[i]
				}
				switch {
				case v >= rowTop:
					b.WriteString(styles[si].Render(strings.Repeat("█", barW)))
				case v > rowBottom:
					idx := int((v - rowBottom) / (rowTop - rowBottom) * 8)
					idx = min(max(idx, 1), 8)
					b.WriteString(styles[si].Render(strings.Repeat(string(blocks[idx]), barW)))
				default:
					b.WriteString(blank.Render(strings.Repeat(" ", barW)))
				}
			}
		}
		b.WriteString("\n")
	}

	// X-axis line with 0 label
	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, "0")))
	b.WriteString(axisStyle.Render("└" + strings.Repeat("─", axisLen)))

	// X-axis labels, skipped when they would collide
	buf := []byte(strings.Repeat(" ", axisLen))
	lastEnd := -1
	for i, lbl := range labels {
		pos := i * (groupW + groupGap)
		if pos <= lastEnd || pos >= axisLen {
			continue
		}
		end := min(pos+len(lbl), axisLen)
		copy(buf[pos:end], lbl[:end-pos])
		lastEnd = end
	}
	b.WriteString("\n")
	b.WriteString(blank.Render(strings.Repeat(" ", yLabelW+1)))
	b.WriteString(axisStyle.Render(strings.TrimRight(string(buf), " ")))

	return b.String()
}

// chartTickStep computes a nice tick interval targeting ~5 ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	exp := math.Floor(math.Log10(rough))
	base := math.Pow(10, exp)
	frac := rough / base

	switch {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

// formatChartLabel renders a money axis tick, e.g. "$500", "$1.5k", "$2M".
func formatChartLabel(v float64) string {
	scaled := func(div float64, suffix string) string {
		if v == math.Trunc(v/div)*div {
			return fmt.Sprintf("$%.0f%s", v/div, suffix)
		}
		return fmt.Sprintf("$%.1f%s", v/div, suffix)
	}
	switch {
	case v >= 1e6:
		return scaled(1e6, "M")
	case v >= 1e3:
		return scaled(1e3, "k")
	case v >= 1:
		return fmt.Sprintf("$%.0f", v)
	default:
		return fmt.Sprintf("$%.2f", v)
	}
}

// Package theme maps finpulse's money meanings (cash flow, health rating,
// goal progress, spending categories) onto terminal colour palettes.
package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/finpulse/internal/model"
)

// Theme holds the chrome colours of the dashboard and the finance roles
// drawn on top of them.
type Theme struct {
	Name string

	Background    lipgloss.Color
	Surface       lipgloss.Color // cards and panels
	SurfaceHover  lipgloss.Color // status bar, highlighted rows
	SurfaceBright lipgloss.Color // active tab
	Border        lipgloss.Color
	BorderBright  lipgloss.Color
	BorderAccent  lipgloss.Color
	TextDim       lipgloss.Color
	TextMuted     lipgloss.Color
	TextPrimary   lipgloss.Color
	Accent        lipgloss.Color
	AccentBright  lipgloss.Color
	AccentDim     lipgloss.Color

	// Money flowing in and out: surplus, income rows, trend bars.
	Income  lipgloss.Color
	Expense lipgloss.Color

	// Health rating bands.
	Healthy lipgloss.Color
	Fair    lipgloss.Color
	AtRisk  lipgloss.Color

	// Goal progress below the fair band.
	Behind lipgloss.Color

	Error lipgloss.Color

	// Categories cycles through distinguishable series colours.
	Categories []lipgloss.Color
}

// palette is the raw colour set a theme is built from.
type palette struct {
	bg, surface, hover, bright       string
	border, borderBright             string
	dim, muted, text                 string
	accent, accentBright, accentDim  string
	green, yellow, orange, red       string
	blue, magenta, cyan, greenBright string
}

func build(name string, p palette) Theme {
	c := func(s string) lipgloss.Color { return lipgloss.Color(s) }
	return Theme{
		Name:          name,
		Background:    c(p.bg),
		Surface:       c(p.surface),
		SurfaceHover:  c(p.hover),
		SurfaceBright: c(p.bright),
		Border:        c(p.border),
		BorderBright:  c(p.borderBright),
		BorderAccent:  c(p.accent),
		TextDim:       c(p.dim),
		TextMuted:     c(p.muted),
		TextPrimary:   c(p.text),
		Accent:        c(p.accent),
		AccentBright:  c(p.accentBright),
		AccentDim:     c(p.accentDim),

		Income:  c(p.green),
		Expense: c(p.red),
		Healthy: c(p.green),
		Fair:    c(p.yellow),
		AtRisk:  c(p.red),
		Behind:  c(p.orange),
		Error:   c(p.red),

		Categories: []lipgloss.Color{c(p.blue), c(p.cyan), c(p.magenta), c(p.yellow), c(p.greenBright), c(p.orange)},
	}
}

// Rating returns the colour of a health rating band.
func (t Theme) Rating(r model.HealthRating) lipgloss.Color {
	switch r {
	case model.RatingHealthy:
		return t.Healthy
	case model.RatingFair:
		return t.Fair
	default:
		return t.AtRisk
	}
}

// Flow colours a signed amount: zero and up reads as income.
func (t Theme) Flow(amount float64) lipgloss.Color {
	if amount < 0 {
		return t.Expense
	}
	return t.Income
}

// Progress colours the fraction of a goal reached. Bands mirror the
// rating scale: 90% is healthy, 50% fair, 25% behind.
func (t Theme) Progress(pct float64) lipgloss.Color {
	switch {
	case pct >= 0.9:
		return t.Healthy
	case pct >= 0.5:
		return t.Fair
	case pct >= 0.25:
		return t.Behind
	default:
		return t.AtRisk
	}
}

// Category returns the series colour for the i-th spending category.
func (t Theme) Category(i int) lipgloss.Color {
	if len(t.Categories) == 0 {
		return t.Accent
	}
	return t.Categories[i%len(t.Categories)]
}

// Active is the currently selected theme.
var Active = FlexokiDark

// FlexokiDark is the default, a warm paper-like dark palette.
var FlexokiDark = build("flexoki-dark", palette{
	bg: "#100F0F", surface: "#1C1B1A", hover: "#282726", bright: "#343331",
	border: "#403E3C", borderBright: "#575653",
	dim: "#575653", muted: "#878580", text: "#FFFCF0",
	accent: "#3AA99F", accentBright: "#5BC8BE", accentDim: "#1A3533",
	green: "#879A39", yellow: "#D0A215", orange: "#DA702C", red: "#D14D41",
	blue: "#6BA3D6", magenta: "#CE5D97", cyan: "#24837B", greenBright: "#A3B859",
})

// CatppuccinMocha is a soft pastel palette.
var CatppuccinMocha = build("catppuccin-mocha", palette{
	bg: "#1E1E2E", surface: "#313244", hover: "#45475A", bright: "#585B70",
	border: "#585B70", borderBright: "#7F849C",
	dim: "#6C7086", muted: "#A6ADC8", text: "#CDD6F4",
	accent: "#89B4FA", accentBright: "#B4D0FB", accentDim: "#293147",
	green: "#A6E3A1", yellow: "#F9E2AF", orange: "#FAB387", red: "#F38BA8",
	blue: "#B4D0FB", magenta: "#F5C2E7", cyan: "#94E2D5", greenBright: "#C6F6C1",
})

// TokyoNight is a cool blue and purple palette.
var TokyoNight = build("tokyo-night", palette{
	bg: "#1A1B26", surface: "#24283B", hover: "#343A52", bright: "#414868",
	border: "#565F89", borderBright: "#7982A9",
	dim: "#565F89", muted: "#A9B1D6", text: "#C0CAF5",
	accent: "#7AA2F7", accentBright: "#A9C1FF", accentDim: "#252B3F",
	green: "#9ECE6A", yellow: "#E0AF68", orange: "#FF9E64", red: "#F7768E",
	blue: "#A9C1FF", magenta: "#BB9AF7", cyan: "#7DCFFF", greenBright: "#B9E87A",
})

// Terminal sticks to the 16 ANSI colours.
var Terminal = build("terminal", palette{
	bg: "0", surface: "0", hover: "8", bright: "8",
	border: "8", borderBright: "7",
	dim: "8", muted: "7", text: "15",
	accent: "6", accentBright: "14", accentDim: "0",
	green: "2", yellow: "3", orange: "3", red: "1",
	blue: "12", magenta: "5", cyan: "6", greenBright: "10",
})

// All available themes.
var All = []Theme{FlexokiDark, CatppuccinMocha, TokyoNight, Terminal}

// ByName returns a theme by its name, defaulting to FlexokiDark.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return FlexokiDark
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}

// Names lists the available theme names in display order.
func Names() []string {
	names := make([]string, len(All))
	for i, t := range All {
		names[i] = t.Name
	}
	return names
}

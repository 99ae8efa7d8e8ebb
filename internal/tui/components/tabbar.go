package components

import (
	"strings"

	"github.com/theirongolddev/finpulse/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name   string
	Key    rune
	KeyPos int // position of the shortcut letter in the name (-1 if not in name)
}

// Tabs defines all available tabs.
var Tabs = []Tab{
	{Name: "Overview", Key: 'o', KeyPos: 0},
	{Name: "Spending", Key: 's', KeyPos: 0},
	{Name: "Trends", Key: 't', KeyPos: 0},
	{Name: "Goals", Key: 'g', KeyPos: 0},
	{Name: "Advice", Key: 'v', KeyPos: 3},
}

func tabStyles() (active, inactive, key, dimKey lipgloss.Style) {
	t := theme.Active
	active = lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright).Bold(true).Padding(0, 1)
	inactive = lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	key = lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	dimKey = lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	return active, inactive, key, dimKey
}

func renderTab(tab Tab, active bool) string {
	activeStyle, inactiveStyle, keyStyle, _ := tabStyles()
	if active {
		return activeStyle.Render(tab.Name)
	}

	pad := inactiveStyle.Render(" ")
	if tab.KeyPos >= 0 && tab.KeyPos < len(tab.Name) {
		before := tab.Name[:tab.KeyPos]
		k := string(tab.Name[tab.KeyPos])
		after := tab.Name[tab.KeyPos+1:]
		return pad + inactiveStyle.Render(before) + keyStyle.Render(k) + inactiveStyle.Render(after) + pad
	}
	return pad + inactiveStyle.Render(tab.Name) + keyStyle.Render("["+string(tab.Key)+"]") + pad
}

// TabVisualWidth returns the rendered width of a tab in the given state.
func TabVisualWidth(tab Tab, active bool) int {
	return lipgloss.Width(renderTab(tab, active))
}

// RenderTabBar renders the tab bar with the given active index.
func RenderTabBar(activeIdx, width int) string {
	t := theme.Active
	_, _, _, dimKey := tabStyles()

	parts := make([]string, len(Tabs))
	for i, tab := range Tabs {
		parts[i] = renderTab(tab, i == activeIdx)
	}
	row := strings.Join(parts, dimKey.Render("│"))

	return lipgloss.NewStyle().Background(t.Surface).Width(width).MaxWidth(width).Render(row)
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}

// Package tui provides the interactive Bubble Tea dashboard for finpulse.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/finpulse/internal/finance"
	"github.com/theirongolddev/finpulse/internal/model"
	"github.com/theirongolddev/finpulse/internal/tui/components"
	"github.com/theirongolddev/finpulse/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Source is the data the dashboard reads and writes. *finance.Service
// satisfies it.
type Source interface {
	Snapshot(ctx context.Context, subject string) (model.FinancialSnapshot, error)
	SaveSnapshot(ctx context.Context, subject string, snap model.FinancialSnapshot) (model.FinancialSnapshot, error)
	Analyze(ctx context.Context, subject string) (model.Analysis, error)
	Transactions(ctx context.Context, subject string, since model.Date, limit int) ([]model.Transaction, error)
	Goals(ctx context.Context, subject string) ([]model.Goal, error)
	Advise(ctx context.Context, subject string) (model.Advice, error)
	AdviceEnabled() bool
}

// dashboardData is everything the tabs render, loaded in one pass.
type dashboardData struct {
	snapshot    model.FinancialSnapshot
	hasSnapshot bool
	analysis    model.Analysis
	recent      []model.Transaction
	goals       []model.Goal
}

// DataLoadedMsg is sent when a load or refresh finishes.
type DataLoadedMsg struct {
	data     dashboardData
	LoadTime time.Duration
	Err      error
}

// AdviceMsg is sent when advice generation completes.
type AdviceMsg struct {
	Advice model.Advice
	Err    error
}

// SnapshotSavedMsg is sent after the snapshot form is persisted.
type SnapshotSavedMsg struct {
	Err error
}

const (
	tabOverview = iota
	tabSpending
	tabTrends
	tabGoals
	tabAdvice
)

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180

	minContentHeight = 5  // minimum content area height
	recentLimit      = 10 // transactions shown on the overview
	requestTimeout   = 90 * time.Second
)

// App is the root Bubble Tea model.
type App struct {
	src     Source
	subject string

	// Data
	data     dashboardData
	loaded   bool
	loadTime time.Duration
	loadErr  error

	refreshing bool

	// Advice
	advice        *model.Advice
	adviceErr     error
	advising      bool
	adviceView    viewport.Model
	adviceEnabled bool

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	spinner   spinner.Model

	// Snapshot editor (huh form). formVals is a pointer because App is
	// copied on every Update while the form keeps writing through it.
	form     *huh.Form
	formVals *snapshotValues
	saveErr  error
}

// NewApp creates a new TUI app model for subject.
func NewApp(src Source, subject string) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		src:           src,
		subject:       subject,
		spinner:       sp,
		adviceView:    viewport.New(0, 0),
		adviceEnabled: src.AdviceEnabled(),
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadDataCmd(a.src, a.subject),
		a.spinner.Tick,
	)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resizeAdviceView()
		if a.form != nil {
			a.form = a.form.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || a.form != nil {
			return a, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
			if a.activeTab == tabAdvice {
				var cmd tea.Cmd
				a.adviceView, cmd = a.adviceView.Update(msg)
				return a, cmd
			}
		case tea.MouseButtonLeft:
			if msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.activeTab = tab
				}
			}
		}
		return a, nil

	case tea.KeyMsg:
		return a.updateKey(msg)

	case DataLoadedMsg:
		a.loaded = true
		a.refreshing = false
		a.loadTime = msg.LoadTime
		a.loadErr = msg.Err
		if msg.Err != nil {
			return a, nil
		}
		a.data = msg.data
		if !a.data.hasSnapshot && a.form == nil {
			return a, a.openSnapshotForm()
		}
		return a, nil

	case AdviceMsg:
		a.advising = false
		a.adviceErr = msg.Err
		if msg.Err == nil {
			adv := msg.Advice
			a.advice = &adv
		}
		a.resizeAdviceView()
		return a, nil

	case SnapshotSavedMsg:
		a.saveErr = msg.Err
		if msg.Err != nil {
			return a, nil
		}
		a.refreshing = true
		return a, loadDataCmd(a.src, a.subject)

	case spinner.TickMsg:
		if !a.loaded || a.advising || a.refreshing {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages to the form (cursor blinks, etc.)
	if a.form != nil {
		return a.updateSnapshotForm(msg)
	}

	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}
	if !a.loaded {
		return a, nil
	}

	// The snapshot editor intercepts all keys
	if a.form != nil {
		return a.updateSnapshotForm(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "r":
		if a.refreshing {
			return a, nil
		}
		a.refreshing = true
		return a, tea.Batch(loadDataCmd(a.src, a.subject), a.spinner.Tick)
	case "e":
		return a, a.openSnapshotForm()
	case "a":
		if !a.adviceEnabled || a.advising || !a.data.hasSnapshot {
			return a, nil
		}
		a.advising = true
		a.adviceErr = nil
		a.activeTab = tabAdvice
		return a, tea.Batch(adviceCmd(a.src, a.subject), a.spinner.Tick)
	case "left", "h":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil
	case "right", "l", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	}

	if a.activeTab == tabAdvice {
		var cmd tea.Cmd
		a.adviceView, cmd = a.adviceView.Update(msg)
		if cmd != nil {
			return a, cmd
		}
	}

	if len(msg.Runes) == 1 {
		if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
			a.activeTab = idx
		}
	}
	return a, nil
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// contentHeight is the rows left between the tab bar and the status bar.
func (a App) contentHeight() int {
	return max(a.height-2, minContentHeight)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.form != nil {
		return a.viewSnapshotForm()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  finpulse needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)
	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	body := logoStyle.Render("◈ finpulse") +
		subtitleStyle.Render(" · Personal Finance") + "\n\n" +
		a.spinner.View() + subtitleStyle.Render(" Loading your finances...")

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(body),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	bindings := []struct{ key, desc string }{
		{"o s t g v", "Jump to tab"},
		{"← → tab", "Previous / Next tab"},
		{"j k", "Scroll advice"},
		{"e", "Edit financial snapshot"},
		{"a", "Generate advice"},
		{"r", "Refresh data"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")
	for _, bind := range bindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	contentH := a.contentHeight()

	header := components.RenderTabBar(a.activeTab, w)
	statusBar := components.RenderStatusBar(w, components.StatusInfo{
		Subject:       a.subject,
		DataAge:       fmt.Sprintf("%.0fms", float64(a.loadTime.Microseconds())/1000),
		Refreshing:    a.refreshing,
		AdviceEnabled: a.adviceEnabled,
		Err:           firstErr(a.loadErr, a.saveErr),
	})

	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverviewTab(cw)
	case tabSpending:
		content = a.renderSpendingTab(cw)
	case tabTrends:
		content = a.renderTrendsTab(cw)
	case tabGoals:
		content = a.renderGoalsTab(cw)
	case tabAdvice:
		content = a.renderAdviceTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, a.height, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Commands ───────────────────────────────────────────────────

// loadDataCmd reads the snapshot, analysis, recent transactions and goals.
// A subject with no snapshot yet loads successfully with hasSnapshot unset.
func loadDataCmd(src Source, subject string) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		data, err := loadData(ctx, src, subject)
		return DataLoadedMsg{data: data, LoadTime: time.Since(start), Err: err}
	}
}

func loadData(ctx context.Context, src Source, subject string) (dashboardData, error) {
	var d dashboardData

	snap, err := src.Snapshot(ctx, subject)
	switch {
	case errors.Is(err, finance.ErrNoSnapshot), errors.Is(err, finance.ErrUserNotFound):
		return d, nil
	case err != nil:
		return d, err
	}
	d.snapshot = snap
	d.hasSnapshot = true

	if d.analysis, err = src.Analyze(ctx, subject); err != nil {
		return d, err
	}
	if d.recent, err = src.Transactions(ctx, subject, model.Date{}, recentLimit); err != nil {
		return d, err
	}
	if d.goals, err = src.Goals(ctx, subject); err != nil {
		return d, err
	}
	return d, nil
}

func adviceCmd(src Source, subject string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		adv, err := src.Advise(ctx, subject)
		return AdviceMsg{Advice: adv, Err: err}
	}
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW + 1 // separator
	}
	return -1
}

// ─── Helpers ────────────────────────────────────────────────────

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}

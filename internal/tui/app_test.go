package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/theirongolddev/finpulse/internal/finance"
	"github.com/theirongolddev/finpulse/internal/model"
	"github.com/theirongolddev/finpulse/internal/pipeline"
	"github.com/theirongolddev/finpulse/internal/tui/components"
)

type fakeSource struct {
	snap       *model.FinancialSnapshot
	txs        []model.Transaction
	goals      []model.Goal
	advice     model.Advice
	adviceErr  error
	advisorOn  bool
	saved      []model.FinancialSnapshot
	analyzeErr error
}

func (f *fakeSource) Snapshot(context.Context, string) (model.FinancialSnapshot, error) {
	if f.snap == nil {
		return model.FinancialSnapshot{}, finance.ErrNoSnapshot
	}
	return *f.snap, nil
}

func (f *fakeSource) SaveSnapshot(_ context.Context, _ string, s model.FinancialSnapshot) (model.FinancialSnapshot, error) {
	f.saved = append(f.saved, s)
	f.snap = &s
	return s, nil
}

func (f *fakeSource) Analyze(context.Context, string) (model.Analysis, error) {
	if f.analyzeErr != nil {
		return model.Analysis{}, f.analyzeErr
	}
	now := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	return pipeline.Analyze(*f.snap, f.txs, now), nil
}

func (f *fakeSource) Transactions(_ context.Context, _ string, _ model.Date, limit int) ([]model.Transaction, error) {
	if limit > 0 && len(f.txs) > limit {
		return f.txs[:limit], nil
	}
	return f.txs, nil
}

func (f *fakeSource) Goals(context.Context, string) ([]model.Goal, error) { return f.goals, nil }

func (f *fakeSource) Advise(context.Context, string) (model.Advice, error) {
	return f.advice, f.adviceErr
}

func (f *fakeSource) AdviceEnabled() bool { return f.advisorOn }

func sampleSource() *fakeSource {
	return &fakeSource{
		snap: &model.FinancialSnapshot{
			MonthlyIncome:    5000,
			MonthlyExpenses:  3500,
			CurrentSavings:   10000,
			InvestmentAmount: 2000,
			EmergencyFund:    9000,
		},
		txs: []model.Transaction{
			{ID: 2, Type: model.Expense, Category: "rent", Amount: 1200, Date: model.NewDate(2026, 10, 1)},
			{ID: 1, Type: model.Income, Category: "salary", Amount: 5000, Date: model.NewDate(2026, 9, 28)},
		},
		goals: []model.Goal{
			{ID: 1, GoalType: "emergency", TargetAmount: 10000, CurrentAmount: 9000, Status: model.GoalActive},
		},
		advice:    model.Advice{Advice: "Keep saving.", Summary: model.AdviceSummary{MonthlyIncome: 5000}},
		advisorOn: true,
	}
}

func loadedApp(t *testing.T, src *fakeSource) App {
	t.Helper()
	a := NewApp(src, "user_1")
	m, _ := a.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	msg := loadDataCmd(src, "user_1")()
	m, _ = m.Update(msg)
	return m.(App)
}

func TestLoadDataWithoutSnapshot(t *testing.T) {
	data, err := loadData(context.Background(), &fakeSource{}, "nobody")
	if err != nil {
		t.Fatalf("loadData: %v", err)
	}
	if data.hasSnapshot {
		t.Error("hasSnapshot should be false when no snapshot exists")
	}
}

func TestLoadDataPropagatesErrors(t *testing.T) {
	src := sampleSource()
	src.analyzeErr = errors.New("db gone")
	if _, err := loadData(context.Background(), src, "user_1"); err == nil {
		t.Fatal("expected analyze error")
	}
}

func TestFirstRunOpensSnapshotForm(t *testing.T) {
	a := loadedApp(t, &fakeSource{})
	if a.form == nil {
		t.Fatal("snapshot form should open when no snapshot exists")
	}
	if !strings.Contains(a.View(), "Welcome to finpulse") {
		t.Error("first-run form should show the welcome note")
	}
}

func TestLoadedDashboardRendersTabs(t *testing.T) {
	a := loadedApp(t, sampleSource())
	if a.form != nil {
		t.Fatal("form should stay closed when a snapshot exists")
	}
	if a.data.analysis.HealthRating == "" {
		t.Fatal("analysis was not loaded")
	}

	for tab := range components.Tabs {
		a.activeTab = tab
		view := a.View()
		if lines := strings.Count(view, "\n") + 1; lines != 40 {
			t.Errorf("tab %d renders %d lines, want 40", tab, lines)
		}
	}

	a.activeTab = tabSpending
	if !strings.Contains(a.View(), "rent") {
		t.Error("spending tab should list the rent category")
	}
}

func TestAdviceFlow(t *testing.T) {
	src := sampleSource()
	a := loadedApp(t, src)

	m, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	a = m.(App)
	if !a.advising || a.activeTab != tabAdvice || cmd == nil {
		t.Fatalf("pressing a should start advice generation (advising=%v tab=%d)", a.advising, a.activeTab)
	}

	m, _ = a.Update(adviceCmd(src, "user_1")())
	a = m.(App)
	if a.advising || a.advice == nil {
		t.Fatal("advice message should finish generation")
	}
	if !strings.Contains(a.View(), "Keep saving.") {
		t.Error("advice tab should show the advice text")
	}
}

func TestAdviceDisabledIgnoresKey(t *testing.T) {
	src := sampleSource()
	src.advisorOn = false
	a := loadedApp(t, src)

	m, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	if m.(App).advising {
		t.Error("advice should not start without a provider")
	}
}

func TestTabKeysAndArrows(t *testing.T) {
	a := loadedApp(t, sampleSource())

	m, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	if got := m.(App).activeTab; got != tabTrends {
		t.Errorf("t -> tab %d, want %d", got, tabTrends)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if got := m.(App).activeTab; got != tabSpending {
		t.Errorf("left -> tab %d, want %d", got, tabSpending)
	}
}

func TestTabAtXMatchesTabWidths(t *testing.T) {
	for active := range components.Tabs {
		a := App{activeTab: active}
		pos := 0
		for i, tab := range components.Tabs {
			w := components.TabVisualWidth(tab, i == active)
			if got := a.tabAtX(pos + w/2); got != i {
				t.Fatalf("active=%d x=%d -> tab=%d, want %d", active, pos+w/2, got, i)
			}
			pos += w + 1
		}
		if got := a.tabAtX(pos + 50); got != -1 {
			t.Errorf("x past the last tab = %d, want -1", got)
		}
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"", 0, false},
		{"  1200 ", 1200, false},
		{"$1,234.50", 1234.5, false},
		{"-20", -20, false},
		{"abc", 0, true},
		{"NaN", 0, true},
	}
	for _, tt := range tests {
		got, err := parseAmount(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("parseAmount(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestSnapshotValuesRoundTrip(t *testing.T) {
	src := sampleSource()
	vals := valuesFromSnapshot(*src.snap)
	if vals.debt != "" {
		t.Errorf("zero debt should render blank, got %q", vals.debt)
	}
	got, err := vals.snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if got != *src.snap {
		t.Errorf("snapshot = %+v, want %+v", got, *src.snap)
	}

	vals.income = "lots"
	if _, err := vals.snapshot(); err == nil {
		t.Error("invalid income should fail")
	}
}

func TestSnapshotSavedTriggersReload(t *testing.T) {
	a := loadedApp(t, sampleSource())
	m, cmd := a.Update(SnapshotSavedMsg{})
	if !m.(App).refreshing || cmd == nil {
		t.Error("saving a snapshot should reload the dashboard")
	}

	m, _ = a.Update(SnapshotSavedMsg{Err: errors.New("boom")})
	if m.(App).saveErr == nil {
		t.Error("save errors should be kept for display")
	}
}

func TestTrendSeries(t *testing.T) {
	labels, income, expenses, net := trendSeries([]model.MonthlyTrend{
		{Month: "2026-09", Income: 5000},
		{Month: "2026-10", Expenses: 1200},
	})
	if labels[1] != "2026-10" || income[0] != 5000 || expenses[1] != 1200 || net[1] != -1200 {
		t.Errorf("unexpected series: %v %v %v %v", labels, income, expenses, net)
	}
}

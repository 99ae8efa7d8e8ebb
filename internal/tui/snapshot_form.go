package tui

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/theirongolddev/finpulse/internal/model"
	"github.com/theirongolddev/finpulse/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// snapshotValues holds the form's raw text inputs.
type snapshotValues struct {
	income, expenses, savingsGoal, savings, debt, investments, emergency string
}

func valuesFromSnapshot(s model.FinancialSnapshot) snapshotValues {
	f := func(v float64) string {
		if v == 0 {
			return ""
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return snapshotValues{
		income:      f(s.MonthlyIncome),
		expenses:    f(s.MonthlyExpenses),
		savingsGoal: f(s.SavingsGoal),
		savings:     f(s.CurrentSavings),
		debt:        f(s.DebtAmount),
		investments: f(s.InvestmentAmount),
		emergency:   f(s.EmergencyFund),
	}
}

// snapshot parses the inputs. Blank fields are zero.
func (v snapshotValues) snapshot() (model.FinancialSnapshot, error) {
	var firstErr error
	parse := func(s string) float64 {
		n, err := parseAmount(s)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		return n
	}
	snap := model.FinancialSnapshot{
		MonthlyIncome:    parse(v.income),
		MonthlyExpenses:  parse(v.expenses),
		SavingsGoal:      parse(v.savingsGoal),
		CurrentSavings:   parse(v.savings),
		DebtAmount:       parse(v.debt),
		InvestmentAmount: parse(v.investments),
		EmergencyFund:    parse(v.emergency),
	}
	return snap, firstErr
}

// parseAmount accepts plain numbers with optional "$" and thousands commas.
func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, fmt.Errorf("%q is not an amount", s)
	}
	return n, nil
}

func validateAmount(s string) error {
	_, err := parseAmount(s)
	return err
}

// newSnapshotForm builds the huh form that edits a snapshot.
func newSnapshotForm(vals *snapshotValues, firstRun bool) *huh.Form {
	title := "Update your finances"
	desc := "Monthly figures and current balances. Leave a field blank for zero."
	if firstRun {
		title = "Welcome to finpulse!"
		desc = "No financial data yet. Enter a snapshot to build your dashboard."
	}

	input := func(label string, value *string) *huh.Input {
		return huh.NewInput().
			Title(label).
			Placeholder("0").
			Value(value).
			Validate(validateAmount)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title(title).Description(desc),
			input("Monthly income", &vals.income),
			input("Monthly expenses", &vals.expenses),
			input("Savings goal", &vals.savingsGoal),
		),
		huh.NewGroup(
			input("Current savings", &vals.savings),
			input("Debt", &vals.debt),
			input("Investments", &vals.investments),
			input("Emergency fund", &vals.emergency),
		),
	).WithTheme(huh.ThemeDracula())
}

func (a *App) openSnapshotForm() tea.Cmd {
	vals := valuesFromSnapshot(a.data.snapshot)
	a.formVals = &vals
	a.saveErr = nil
	a.form = newSnapshotForm(a.formVals, !a.data.hasSnapshot)
	if a.width > 0 {
		a.form = a.form.WithWidth(a.width).WithHeight(a.height)
	}
	return a.form.Init()
}

func (a App) updateSnapshotForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		a.form = nil
		return a, nil
	}

	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		a.form = nil
		snap, err := a.formVals.snapshot()
		if err != nil {
			a.saveErr = err
			return a, nil
		}
		return a, saveSnapshotCmd(a.src, a.subject, snap)
	case huh.StateAborted:
		a.form = nil
		return a, nil
	}

	return a, cmd
}

func (a App) viewSnapshotForm() string {
	t := theme.Active
	body := a.form.View()
	if a.saveErr != nil {
		body += "\n" + lipgloss.NewStyle().Foreground(t.Error).Render(a.saveErr.Error())
	}
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, body)
}

func saveSnapshotCmd(src Source, subject string, snap model.FinancialSnapshot) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if _, err := src.SaveSnapshot(ctx, subject, snap); err != nil {
			return SnapshotSavedMsg{Err: fmt.Errorf("saving snapshot: %w", err)}
		}
		return SnapshotSavedMsg{}
	}
}

package advisor

import (
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/finpulse/internal/model"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{12.5, "$12.50"},
		{5000, "$5,000.00"},
		{1234567.891, "$1,234,567.89"},
		{-1500, "$-1,500.00"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.in); got != tt.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestComposePrompt(t *testing.T) {
	snap := model.FinancialSnapshot{
		MonthlyIncome:    5000,
		MonthlyExpenses:  3500,
		SavingsGoal:      20000,
		CurrentSavings:   10000,
		DebtAmount:       1250,
		InvestmentAmount: 3000,
		EmergencyFund:    7000,
	}
	d := model.NewDate(2026, time.October, 1)
	var recent []model.Transaction
	for i, c := range []string{"groceries", "rent", "fuel", "dining", "gym", "books", "travel"} {
		recent = append(recent, model.Transaction{Type: model.Expense, Category: c, Amount: float64(i+1) * 10.5, Date: d})
	}

	p := ComposePrompt("Ada", snap, recent)

	for _, want := range []string{
		"for Ada",
		"Monthly Income: $5,000.00",
		"Monthly Expenses: $3,500.00",
		"Net Monthly Income: $1,500.00",
		"Savings Rate: 30.0%",
		"Savings Goal: $20,000.00",
		"Total Debt: $1,250.00",
		"Emergency Fund Coverage: 2.00 months",
		"Net Worth: $11,750.00",
		"Debt-to-Income Ratio: 0.25",
		"groceries: $10.50, rent: $21.00, fuel: $31.50, dining: $42.00, gym: $52.50",
		"6. Emergency fund recommendations",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q\n%s", want, p)
		}
	}
	if strings.Contains(p, "books") || strings.Contains(p, "travel") {
		t.Error("prompt lists more than five transactions")
	}
}

func TestComposePromptRatiosUseTwoDecimals(t *testing.T) {
	p := ComposePrompt("Ada", model.FinancialSnapshot{
		MonthlyIncome:   4500,
		MonthlyExpenses: 3000,
		DebtAmount:      1000,
		EmergencyFund:   7700,
	}, nil)

	for _, want := range []string{
		"Emergency Fund Coverage: 2.57 months",
		"Debt-to-Income Ratio: 0.22",
		"Savings Rate: 33.3%",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q\n%s", want, p)
		}
	}
}

func TestComposePromptDefaults(t *testing.T) {
	p := ComposePrompt("  ", model.FinancialSnapshot{}, nil)

	if !strings.Contains(p, "for User") {
		t.Error("blank name should fall back to User")
	}
	if !strings.Contains(p, "Savings Rate: 0.0%") {
		t.Error("zero income should report a zero savings rate")
	}
	if !strings.Contains(p, "Recent Transaction Categories: none recorded") {
		t.Error("empty history should be stated explicitly")
	}
}

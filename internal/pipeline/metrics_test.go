package pipeline

import (
	"math"
	"testing"

	"github.com/theirongolddev/finpulse/internal/model"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestComputeMetrics(t *testing.T) {
	s := model.FinancialSnapshot{
		MonthlyIncome:    5000,
		MonthlyExpenses:  3500,
		CurrentSavings:   10000,
		DebtAmount:       2500,
		InvestmentAmount: 4000,
		EmergencyFund:    7000,
	}

	m := ComputeMetrics(s)

	if !almostEqual(m.NetIncome, 1500) {
		t.Errorf("NetIncome = %f, want 1500", m.NetIncome)
	}
	if !almostEqual(m.SavingsRate, 30) {
		t.Errorf("SavingsRate = %f, want 30", m.SavingsRate)
	}
	if !almostEqual(m.DebtToIncome, 0.5) {
		t.Errorf("DebtToIncome = %f, want 0.5", m.DebtToIncome)
	}
	if !almostEqual(m.NetWorth, 11500) {
		t.Errorf("NetWorth = %f, want 11500", m.NetWorth)
	}
	if !almostEqual(m.EmergencyFundMonths, 2) {
		t.Errorf("EmergencyFundMonths = %f, want 2", m.EmergencyFundMonths)
	}
}

func TestComputeMetricsZeroDenominators(t *testing.T) {
	s := model.FinancialSnapshot{
		MonthlyIncome:   0,
		MonthlyExpenses: 0,
		DebtAmount:      800,
		CurrentSavings:  200,
		EmergencyFund:   1000,
	}

	m := ComputeMetrics(s)

	if m.SavingsRate != 0 || m.DebtToIncome != 0 || m.EmergencyFundMonths != 0 {
		t.Errorf("ratios = (%f, %f, %f), want all zero", m.SavingsRate, m.DebtToIncome, m.EmergencyFundMonths)
	}
	if !almostEqual(m.NetWorth, -600) {
		t.Errorf("NetWorth = %f, want -600", m.NetWorth)
	}
	if !almostEqual(m.NetIncome, 0) {
		t.Errorf("NetIncome = %f, want 0", m.NetIncome)
	}
}

func TestComputeMetricsNegativeIncome(t *testing.T) {
	m := ComputeMetrics(model.FinancialSnapshot{MonthlyIncome: -100, MonthlyExpenses: 50, DebtAmount: 10})
	if m.SavingsRate != 0 || m.DebtToIncome != 0 {
		t.Errorf("SavingsRate, DebtToIncome = %f, %f, want 0, 0", m.SavingsRate, m.DebtToIncome)
	}
	if !almostEqual(m.NetIncome, -150) {
		t.Errorf("NetIncome = %f, want -150", m.NetIncome)
	}
}

func TestHealthScore(t *testing.T) {
	tests := []struct {
		name string
		snap model.FinancialSnapshot
		want float64
	}{
		{
			name: "reference profile",
			snap: model.FinancialSnapshot{MonthlyIncome: 5000, MonthlyExpenses: 3500, CurrentSavings: 10000, EmergencyFund: 9000},
			// 30 (capped savings rate) + 9000/3500*4 + 25 (no debt) + 4
			want: 30 + 9000.0/3500.0*4 + 25 + 4,
		},
		{
			name: "no income short-circuits",
			snap: model.FinancialSnapshot{MonthlyIncome: 0, MonthlyExpenses: 100, CurrentSavings: 1e6, EmergencyFund: 1e6},
			want: 0,
		},
		{
			name: "negative income short-circuits",
			snap: model.FinancialSnapshot{MonthlyIncome: -10, CurrentSavings: 1e6},
			want: 0,
		},
		{
			name: "every component capped",
			snap: model.FinancialSnapshot{MonthlyIncome: 10000, MonthlyExpenses: 1000, CurrentSavings: 1e6, EmergencyFund: 1e6},
			want: 100,
		},
		{
			name: "negative savings rate clamps to zero",
			snap: model.FinancialSnapshot{MonthlyIncome: 1000, MonthlyExpenses: 5000, DebtAmount: 10000},
			want: 0,
		},
		{
			name: "negative savings contribution offsets other components",
			// rate -10% -> -15, debt 0 -> 25, no expenses component beyond 0 fund
			snap: model.FinancialSnapshot{MonthlyIncome: 1000, MonthlyExpenses: 1100},
			want: 10,
		},
		{
			name: "zero expenses skips emergency component",
			// rate 100% -> 30, debt 25
			snap: model.FinancialSnapshot{MonthlyIncome: 1000, MonthlyExpenses: 0, EmergencyFund: 50000},
			want: 55,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HealthScore(tt.snap)
			if !almostEqual(got, tt.want) {
				t.Errorf("HealthScore() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestHealthScoreDebtTierBoundaries(t *testing.T) {
	// Income equals expenses so only the debt tier contributes.
	tests := []struct {
		debt float64
		want float64
	}{
		{debt: 0, want: 25},
		{debt: 100, want: 25}, // ratio exactly 0.1
		{debt: 101, want: 15},
		{debt: 300, want: 15}, // ratio exactly 0.3
		{debt: 301, want: 10},
		{debt: 500, want: 10}, // ratio exactly 0.5
		{debt: 501, want: 0},
		{debt: 5000, want: 0},
	}

	for _, tt := range tests {
		snap := model.FinancialSnapshot{MonthlyIncome: 1000, MonthlyExpenses: 1000, DebtAmount: tt.debt}
		got := HealthScore(snap)
		if !almostEqual(got, tt.want) {
			t.Errorf("HealthScore(debt=%.0f) = %f, want %f", tt.debt, got, tt.want)
		}
	}
}

func TestHealthScoreBounded(t *testing.T) {
	values := []float64{-1e9, -5000, -1, 0, 0.5, 1, 100, 3500, 5000, 1e9}
	for _, income := range values {
		for _, expenses := range values {
			for _, other := range values {
				snap := model.FinancialSnapshot{
					MonthlyIncome:   income,
					MonthlyExpenses: expenses,
					CurrentSavings:  other,
					DebtAmount:      other,
					EmergencyFund:   other,
				}
				got := HealthScore(snap)
				if got < 0 || got > 100 {
					t.Fatalf("HealthScore(%+v) = %f, outside [0, 100]", snap, got)
				}
			}
		}
	}
}

func TestRate(t *testing.T) {
	tests := []struct {
		score float64
		want  model.HealthRating
	}{
		{100, model.RatingHealthy},
		{80, model.RatingHealthy},
		{79.99, model.RatingFair},
		{60, model.RatingFair},
		{59.9, model.RatingAtRisk},
		{0, model.RatingAtRisk},
	}
	for _, tt := range tests {
		if got := Rate(tt.score); got != tt.want {
			t.Errorf("Rate(%f) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

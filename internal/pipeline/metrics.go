// Package pipeline derives metrics, health scores and spending aggregates
// from a financial snapshot and its transaction history.
package pipeline

import (
	"math"

	"github.com/theirongolddev/finpulse/internal/model"
)

// ComputeMetrics derives the headline ratios for a snapshot. Ratios whose
// denominator is not positive are reported as zero.
func ComputeMetrics(s model.FinancialSnapshot) model.Metrics {
	m := model.Metrics{
		NetIncome: s.MonthlyIncome - s.MonthlyExpenses,
		NetWorth:  s.CurrentSavings + s.InvestmentAmount - s.DebtAmount,
	}
	if s.MonthlyIncome > 0 {
		m.SavingsRate = m.NetIncome / s.MonthlyIncome * 100
		m.DebtToIncome = s.DebtAmount / s.MonthlyIncome
	}
	if s.MonthlyExpenses > 0 {
		m.EmergencyFundMonths = s.EmergencyFund / s.MonthlyExpenses
	}
	return m
}

// Component caps of the health score.
const (
	savingsRateCap     = 30.0
	emergencyFundCap   = 25.0
	savingsPresenceCap = 20.0
	maxScore           = 100.0
)

// debtTier awards points when the debt-to-income ratio is at most maxRatio.
type debtTier struct {
	maxRatio float64
	points   float64
}

// Ordered by maxRatio; the first matching tier wins.
var debtTiers = []debtTier{
	{maxRatio: 0.1, points: 25},
	{maxRatio: 0.3, points: 15},
	{maxRatio: 0.5, points: 10},
}

func debtPoints(ratio float64) float64 {
	for _, t := range debtTiers {
		if ratio <= t.maxRatio {
			return t.points
		}
	}
	return 0
}

// HealthScore rates a snapshot on a 0-100 scale from four capped components:
// savings rate, emergency fund runway, debt-to-income tier and existing
// savings. A snapshot without positive income scores zero.
func HealthScore(s model.FinancialSnapshot) float64 {
	if s.MonthlyIncome <= 0 {
		return 0
	}

	savingsRate := (s.MonthlyIncome - s.MonthlyExpenses) / s.MonthlyIncome * 100
	score := math.Min(savingsRateCap, savingsRate*1.5)

	if s.MonthlyExpenses > 0 {
		score += math.Min(emergencyFundCap, s.EmergencyFund/s.MonthlyExpenses*4)
	}

	score += debtPoints(s.DebtAmount / s.MonthlyIncome)

	if s.CurrentSavings > 0 {
		score += math.Min(savingsPresenceCap, s.CurrentSavings/s.MonthlyIncome*2)
	}

	if math.IsNaN(score) {
		return 0
	}
	return math.Max(0, math.Min(maxScore, score))
}

// Rate maps a health score onto its display band.
func Rate(score float64) model.HealthRating {
	switch {
	case score >= 80:
		return model.RatingHealthy
	case score >= 60:
		return model.RatingFair
	default:
		return model.RatingAtRisk
	}
}

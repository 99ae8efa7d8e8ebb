package model

// Metrics holds the ratios derived from a single snapshot.
type Metrics struct {
	NetIncome           float64 `json:"net_income"`
	SavingsRate         float64 `json:"savings_rate"`   // percent of income
	DebtToIncome        float64 `json:"debt_to_income"` // ratio, not percent
	NetWorth            float64 `json:"net_worth"`
	EmergencyFundMonths float64 `json:"emergency_fund_months"`
}

// CategorySpend is the total expense amount recorded under one category.
type CategorySpend struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// MonthlyTrend holds income and expense totals for one YYYY-MM month.
type MonthlyTrend struct {
	Month    string  `json:"month"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

// HealthRating is a coarse band over the 0-100 health score.
type HealthRating string

const (
	RatingHealthy HealthRating = "healthy"
	RatingFair    HealthRating = "fair"
	RatingAtRisk  HealthRating = "at_risk"
)

// Analysis is the full report returned for a user's finances.
type Analysis struct {
	NetWorth             float64         `json:"net_worth"`
	MonthlySurplus       float64         `json:"monthly_surplus"`
	EmergencyFundMonths  float64         `json:"emergency_fund_months"`
	SpendingByCategory   []CategorySpend `json:"spending_by_category"`
	MonthlyTrends        []MonthlyTrend  `json:"monthly_trends"`
	FinancialHealthScore float64         `json:"financial_health_score"`
	HealthRating         HealthRating    `json:"health_rating"`
}

// AdviceSummary echoes the headline figures the advice was based on.
type AdviceSummary struct {
	MonthlyIncome     float64 `json:"monthly_income"`
	MonthlyExpenses   float64 `json:"monthly_expenses"`
	NetIncome         float64 `json:"net_income"`
	SavingsRate       float64 `json:"savings_rate"`
	DebtToIncomeRatio float64 `json:"debt_to_income_ratio"`
}

// Advice is generated advice text plus the summary it was derived from.
type Advice struct {
	Advice  string        `json:"advice"`
	Summary AdviceSummary `json:"financial_summary"`
}

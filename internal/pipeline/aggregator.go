package pipeline

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/finpulse/internal/model"
)

// TrendMonths is how many whole calendar months before the current one the
// monthly trend window reaches back.
const TrendMonths = 6

// TrendWindowStart returns the first day of the calendar month TrendMonths
// before now's month. The current, partial month is inside the window.
func TrendWindowStart(now time.Time) model.Date {
	return model.NewDate(now.Year(), now.Month()-TrendMonths, 1)
}

// FilterSince returns the transactions dated on or after since.
func FilterSince(txs []model.Transaction, since model.Date) []model.Transaction {
	if since.IsZero() {
		return txs
	}

	var result []model.Transaction
	for _, tx := range txs {
		if tx.Date.Before(since.Time) {
			continue
		}
		result = append(result, tx)
	}
	return result
}

// AggregateCategories sums expense amounts per category, largest total first.
// Categories with equal totals keep the order in which they first appear in
// txs.
func AggregateCategories(txs []model.Transaction) []model.CategorySpend {
	totals := make(map[string]decimal.Decimal)
	var order []string

	for _, tx := range txs {
		if tx.Type != model.Expense {
			continue
		}
		sum, seen := totals[tx.Category]
		if !seen {
			order = append(order, tx.Category)
		}
		totals[tx.Category] = sum.Add(decimal.NewFromFloat(tx.Amount))
	}

	result := make([]model.CategorySpend, 0, len(order))
	for _, category := range order {
		result = append(result, model.CategorySpend{
			Category: category,
			Amount:   totals[category].InexactFloat64(),
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Amount > result[j].Amount
	})
	return result
}

type monthTotals struct {
	income   decimal.Decimal
	expenses decimal.Decimal
}

// AggregateMonthly buckets the transactions inside the trend window by
// YYYY-MM and returns per-month income and expense totals in ascending month
// order. Months with no transactions are omitted.
func AggregateMonthly(txs []model.Transaction, now time.Time) []model.MonthlyTrend {
	monthMap := make(map[string]*monthTotals)

	for _, tx := range FilterSince(txs, TrendWindowStart(now)) {
		if !tx.Type.Valid() {
			continue
		}
		key := tx.Date.YearMonth()
		mt, ok := monthMap[key]
		if !ok {
			mt = &monthTotals{}
			monthMap[key] = mt
		}
		amount := decimal.NewFromFloat(tx.Amount)
		switch tx.Type {
		case model.Income:
			mt.income = mt.income.Add(amount)
		case model.Expense:
			mt.expenses = mt.expenses.Add(amount)
		}
	}

	result := make([]model.MonthlyTrend, 0, len(monthMap))
	for month, mt := range monthMap {
		result = append(result, model.MonthlyTrend{
			Month:    month,
			Income:   mt.income.InexactFloat64(),
			Expenses: mt.expenses.InexactFloat64(),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Month < result[j].Month
	})
	return result
}

// Analyze builds the analysis report for a snapshot and its transactions.
// Category totals cover the whole history; monthly trends cover the trend
// window ending at now.
func Analyze(s model.FinancialSnapshot, txs []model.Transaction, now time.Time) model.Analysis {
	m := ComputeMetrics(s)
	score := HealthScore(s)

	return model.Analysis{
		NetWorth:             m.NetWorth,
		MonthlySurplus:       m.NetIncome,
		EmergencyFundMonths:  m.EmergencyFundMonths,
		SpendingByCategory:   AggregateCategories(txs),
		MonthlyTrends:        AggregateMonthly(txs, now),
		FinancialHealthScore: score,
		HealthRating:         Rate(score),
	}
}

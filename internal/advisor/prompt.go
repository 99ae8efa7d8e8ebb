// Package advisor composes financial-advice prompts and sends them to a
// text-generation provider.
package advisor

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/theirongolddev/finpulse/internal/model"
	"github.com/theirongolddev/finpulse/internal/pipeline"
)

// SystemPrompt frames the model as a financial advisor.
const SystemPrompt = "You are a professional financial advisor providing personalized, actionable advice. " +
	"Be encouraging but realistic, and focus on practical steps the user can take."

const (
	// RecentLimit is how many recent transactions are loaded for a prompt.
	RecentLimit = 10
	// promptTransactions is how many of those are listed in the prompt text.
	promptTransactions = 5
	defaultName        = "User"
)

// FormatMoney renders an amount with two decimals and thousands separators.
func FormatMoney(v float64) string {
	return "$" + humanize.FormatFloat("#,###.##", v)
}

// ComposePrompt renders the user prompt for a snapshot and its most recent
// transactions, newest first.
func ComposePrompt(firstName string, s model.FinancialSnapshot, recent []model.Transaction) string {
	name := strings.TrimSpace(firstName)
	if name == "" {
		name = defaultName
	}
	m := pipeline.ComputeMetrics(s)

	var b strings.Builder
	fmt.Fprintf(&b, "As a professional financial advisor, analyze the following financial profile for %s and provide personalized advice:\n\n", name)

	b.WriteString("Financial Overview:\n")
	fmt.Fprintf(&b, "- Monthly Income: %s\n", FormatMoney(s.MonthlyIncome))
	fmt.Fprintf(&b, "- Monthly Expenses: %s\n", FormatMoney(s.MonthlyExpenses))
	fmt.Fprintf(&b, "- Net Monthly Income: %s\n", FormatMoney(m.NetIncome))
	fmt.Fprintf(&b, "- Savings Rate: %.1f%%\n", m.SavingsRate)
	fmt.Fprintf(&b, "- Current Savings: %s\n", FormatMoney(s.CurrentSavings))
	fmt.Fprintf(&b, "- Savings Goal: %s\n", FormatMoney(s.SavingsGoal))
	fmt.Fprintf(&b, "- Total Debt: %s\n", FormatMoney(s.DebtAmount))
	fmt.Fprintf(&b, "- Investment Amount: %s\n", FormatMoney(s.InvestmentAmount))
	fmt.Fprintf(&b, "- Emergency Fund: %s\n", FormatMoney(s.EmergencyFund))
	fmt.Fprintf(&b, "- Emergency Fund Coverage: %.2f months\n", m.EmergencyFundMonths)
	fmt.Fprintf(&b, "- Net Worth: %s\n", FormatMoney(m.NetWorth))
	fmt.Fprintf(&b, "- Debt-to-Income Ratio: %.2f\n\n", m.DebtToIncome)

	fmt.Fprintf(&b, "Recent Transaction Categories: %s\n\n", listTransactions(recent))

	b.WriteString(`Please provide:
1. Overall financial health assessment
2. Top 3 actionable recommendations
3. Budget optimization suggestions
4. Savings and investment advice
5. Debt management strategy (if applicable)
6. Emergency fund recommendations

Keep the advice practical, specific, and encouraging. Format the response in clear sections.`)

	return b.String()
}

func listTransactions(recent []model.Transaction) string {
	if len(recent) > promptTransactions {
		recent = recent[:promptTransactions]
	}
	if len(recent) == 0 {
		return "none recorded"
	}
	parts := make([]string, 0, len(recent))
	for _, tx := range recent {
		parts = append(parts, fmt.Sprintf("%s: %s", tx.Category, FormatMoney(tx.Amount)))
	}
	return strings.Join(parts, ", ")
}

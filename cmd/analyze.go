package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/theirongolddev/finpulse/internal/cli"
	"github.com/theirongolddev/finpulse/internal/finance"
	"github.com/theirongolddev/finpulse/internal/model"
	"github.com/theirongolddev/finpulse/internal/pipeline"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Financial health report: metrics, spending, trends",
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().Bool("json", false, "Output JSON")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	svc, closeFn, err := openService()
	if err != nil {
		return err
	}
	defer closeFn()

	ctx := context.Background()
	an, err := svc.Analyze(ctx, subject())
	if errors.Is(err, finance.ErrNoSnapshot) || errors.Is(err, finance.ErrUserNotFound) {
		if asJSON {
			return err
		}
		fmt.Println("\n  No financial data yet.")
		fmt.Println("  Record a snapshot with `finpulse snapshot set --income ... --expenses ...`")
		return nil
	}
	if err != nil {
		return err
	}

	if asJSON {
		return printJSON(an)
	}

	snap, err := svc.Snapshot(ctx, subject())
	if err != nil {
		return err
	}
	printAnalysis(snap, an)
	return nil
}

func printAnalysis(snap model.FinancialSnapshot, an model.Analysis) {
	m := pipeline.ComputeMetrics(snap)

	fmt.Println()
	fmt.Println(cli.RenderTitle("FINANCIAL HEALTH"))
	fmt.Println()
	fmt.Println("  " + cli.RenderScoreBar(an.FinancialHealthScore, an.HealthRating, 30))
	fmt.Println()

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Overview",
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Monthly income", cli.FormatMoney(snap.MonthlyIncome)},
			{"Monthly expenses", cli.FormatMoney(snap.MonthlyExpenses)},
			{"Monthly surplus", cli.FormatDelta(an.MonthlySurplus)},
			{"Savings rate", cli.FormatPercent(m.SavingsRate)},
			{"---"},
			{"Net worth", cli.FormatMoney(an.NetWorth)},
			{"Debt to income", cli.FormatRatio(m.DebtToIncome)},
			{"Emergency fund", cli.FormatMonths(an.EmergencyFundMonths)},
		},
	}))

	if len(an.SpendingByCategory) > 0 {
		fmt.Println()
		rows := make([][]string, 0, len(an.SpendingByCategory))
		for _, c := range an.SpendingByCategory {
			rows = append(rows, []string{c.Category, cli.FormatMoney(c.Amount)})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Spending by Category",
			Headers: []string{"Category", "Amount"},
			Rows:    rows,
		}))

		labelW := 0
		for _, c := range an.SpendingByCategory {
			labelW = max(labelW, len(c.Category))
		}
		fmt.Println()
		for _, c := range an.SpendingByCategory {
			fmt.Println(cli.RenderHorizontalBar(c.Category, labelW, c.Amount, an.SpendingByCategory[0].Amount, 30))
		}
	}

	if len(an.MonthlyTrends) > 0 {
		fmt.Println()
		rows := make([][]string, 0, len(an.MonthlyTrends))
		net := make([]float64, 0, len(an.MonthlyTrends))
		for _, t := range an.MonthlyTrends {
			rows = append(rows, []string{t.Month, cli.FormatMoney(t.Income), cli.FormatMoney(t.Expenses), cli.FormatDelta(t.Income - t.Expenses)})
			net = append(net, t.Income-t.Expenses)
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   fmt.Sprintf("Monthly Trends (last %d months)", pipeline.TrendMonths),
			Headers: []string{"Month", "Income", "Expenses", "Net"},
			Rows:    rows,
		}))
		fmt.Printf("  Net  %s\n", cli.RenderSparkline(net))
	}
	fmt.Println()
}

package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/theirongolddev/finpulse/internal/cli"

	"github.com/spf13/cobra"
)

var adviceCmd = &cobra.Command{
	Use:   "advice",
	Short: "Generate personalized financial advice",
	RunE:  runAdvice,
}

func init() {
	adviceCmd.Flags().Bool("json", false, "Output JSON")
	rootCmd.AddCommand(adviceCmd)
}

func runAdvice(cmd *cobra.Command, _ []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	svc, closeFn, err := openService()
	if err != nil {
		return err
	}
	defer closeFn()

	if !svc.AdviceEnabled() {
		return fmt.Errorf("no API key for provider %q; run `finpulse setup` or set the provider's API key env var", cfg.Advisor.Provider)
	}

	progress("  Asking your advisor (%s)...\n", cfg.Advisor.Provider)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Advisor.Timeout()+5*time.Second)
	defer cancel()

	adv, err := svc.Advise(ctx, subject())
	if err != nil {
		return err
	}

	if asJSON {
		return printJSON(map[string]any{
			"success":           true,
			"advice":            adv.Advice,
			"financial_summary": adv.Summary,
		})
	}

	s := adv.Summary
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Based on",
		Headers: []string{"Figure", "Value"},
		Rows: [][]string{
			{"Monthly income", cli.FormatMoney(s.MonthlyIncome)},
			{"Monthly expenses", cli.FormatMoney(s.MonthlyExpenses)},
			{"Net income", cli.FormatDelta(s.NetIncome)},
			{"Savings rate", cli.FormatPercent(s.SavingsRate)},
			{"Debt to income", cli.FormatRatio(s.DebtToIncomeRatio)},
		},
	}))
	fmt.Println()
	fmt.Println(adv.Advice)
	fmt.Println()
	return nil
}

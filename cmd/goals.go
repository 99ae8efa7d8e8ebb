package cmd

import (
	"context"
	"fmt"

	"github.com/theirongolddev/finpulse/internal/cli"
	"github.com/theirongolddev/finpulse/internal/finance"

	"github.com/spf13/cobra"
)

var (
	flagGoalType        string
	flagGoalTarget      float64
	flagGoalCurrent     float64
	flagGoalDate        string
	flagGoalDescription string
	flagGoalStatus      string
)

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "List savings and payoff goals",
	RunE:  runGoalsList,
}

var goalsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a goal",
	RunE:  runGoalsAdd,
}

func init() {
	goalsAddCmd.Flags().StringVar(&flagGoalType, "type", "", "Goal type, e.g. emergency_fund or debt_payoff")
	goalsAddCmd.Flags().Float64Var(&flagGoalTarget, "target", 0, "Target amount")
	goalsAddCmd.Flags().Float64Var(&flagGoalCurrent, "current", 0, "Amount already saved")
	goalsAddCmd.Flags().StringVar(&flagGoalDate, "date", "", "Target date as YYYY-MM-DD")
	goalsAddCmd.Flags().StringVar(&flagGoalDescription, "description", "", "Optional description")
	goalsAddCmd.Flags().StringVar(&flagGoalStatus, "status", "", "active or completed (default active)")
	_ = goalsAddCmd.MarkFlagRequired("type")
	_ = goalsAddCmd.MarkFlagRequired("target")

	goalsCmd.Flags().Bool("json", false, "Output JSON")
	goalsCmd.AddCommand(goalsAddCmd)
	rootCmd.AddCommand(goalsCmd)
}

func runGoalsAdd(_ *cobra.Command, _ []string) error {
	svc, closeFn, err := openService()
	if err != nil {
		return err
	}
	defer closeFn()

	g, err := svc.AddGoal(context.Background(), subject(), finance.GoalInput{
		GoalType:      flagGoalType,
		TargetAmount:  flagGoalTarget,
		CurrentAmount: flagGoalCurrent,
		TargetDate:    flagGoalDate,
		Description:   flagGoalDescription,
		Status:        flagGoalStatus,
	})
	if err != nil {
		return err
	}
	fmt.Printf("\n  Goal added (#%d): %s %s of %s (%s)\n\n", g.ID, g.GoalType,
		cli.FormatMoney(g.CurrentAmount), cli.FormatMoney(g.TargetAmount), cli.FormatPercent(g.ProgressPercent()))
	return nil
}

func runGoalsList(cmd *cobra.Command, _ []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	svc, closeFn, err := openService()
	if err != nil {
		return err
	}
	defer closeFn()

	goals, err := svc.Goals(context.Background(), subject())
	if err != nil {
		return err
	}
	if asJSON {
		return printJSON(goals)
	}
	if len(goals) == 0 {
		fmt.Println("\n  No goals yet. Add one with `finpulse goals add --type ... --target ...`")
		return nil
	}

	rows := make([][]string, 0, len(goals))
	for _, g := range goals {
		due := ""
		if g.TargetDate != nil {
			due = g.TargetDate.String()
		}
		rows = append(rows, []string{
			g.GoalType,
			cli.FormatMoney(g.CurrentAmount),
			cli.FormatMoney(g.TargetAmount),
			cli.FormatPercent(g.ProgressPercent()),
			due,
			string(g.Status),
		})
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Goals",
		Headers: []string{"Goal", "Current", "Target", "Progress", "Due", "Status"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}

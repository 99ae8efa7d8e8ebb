package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/theirongolddev/finpulse/internal/cli"
	"github.com/theirongolddev/finpulse/internal/finance"
	"github.com/theirongolddev/finpulse/internal/model"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Show or replace your financial snapshot",
	RunE:  runSnapshotShow,
}

var snapshotSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Replace the snapshot; unset flags keep their current values",
	RunE:  runSnapshotSet,
}

// snapshotFields maps flag names to snapshot fields.
var snapshotFields = []struct {
	flag, usage string
	field       func(*model.FinancialSnapshot) *float64
}{
	{"income", "Monthly income", func(s *model.FinancialSnapshot) *float64 { return &s.MonthlyIncome }},
	{"expenses", "Monthly expenses", func(s *model.FinancialSnapshot) *float64 { return &s.MonthlyExpenses }},
	{"savings-goal", "Savings goal", func(s *model.FinancialSnapshot) *float64 { return &s.SavingsGoal }},
	{"savings", "Current savings", func(s *model.FinancialSnapshot) *float64 { return &s.CurrentSavings }},
	{"debt", "Total debt", func(s *model.FinancialSnapshot) *float64 { return &s.DebtAmount }},
	{"investments", "Investment balance", func(s *model.FinancialSnapshot) *float64 { return &s.InvestmentAmount }},
	{"emergency-fund", "Emergency fund balance", func(s *model.FinancialSnapshot) *float64 { return &s.EmergencyFund }},
}

func init() {
	for _, f := range snapshotFields {
		snapshotSetCmd.Flags().Float64(f.flag, 0, f.usage)
	}
	snapshotSetCmd.Flags().Bool("reset", false, "Start from zero instead of the current snapshot")
	snapshotCmd.Flags().Bool("json", false, "Output JSON")

	snapshotCmd.AddCommand(snapshotSetCmd)
	rootCmd.AddCommand(snapshotCmd)
}

func runSnapshotShow(cmd *cobra.Command, _ []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	svc, closeFn, err := openService()
	if err != nil {
		return err
	}
	defer closeFn()

	snap, err := svc.Snapshot(context.Background(), subject())
	if err != nil {
		return err
	}
	if asJSON {
		return printJSON(snap)
	}
	printSnapshot(snap)
	return nil
}

func runSnapshotSet(cmd *cobra.Command, _ []string) error {
	svc, closeFn, err := openService()
	if err != nil {
		return err
	}
	defer closeFn()

	ctx := context.Background()
	var snap model.FinancialSnapshot
	if reset, _ := cmd.Flags().GetBool("reset"); !reset {
		snap, err = svc.Snapshot(ctx, subject())
		if err != nil && !errors.Is(err, finance.ErrNoSnapshot) && !errors.Is(err, finance.ErrUserNotFound) {
			return err
		}
	}

	if err := applySnapshotFlags(cmd.Flags(), &snap); err != nil {
		return err
	}

	saved, err := svc.SaveSnapshot(ctx, subject(), snap)
	if err != nil {
		return err
	}
	fmt.Println("\n  Financial data saved successfully")
	printSnapshot(saved)
	return nil
}

// applySnapshotFlags copies explicitly set flags onto snap.
func applySnapshotFlags(fs *pflag.FlagSet, snap *model.FinancialSnapshot) error {
	for _, f := range snapshotFields {
		if !fs.Changed(f.flag) {
			continue
		}
		v, err := fs.GetFloat64(f.flag)
		if err != nil {
			return err
		}
		*f.field(snap) = v
	}
	return nil
}

func printSnapshot(s model.FinancialSnapshot) {
	rows := make([][]string, 0, len(snapshotFields)+2)
	for _, f := range snapshotFields {
		v := *f.field(&s)
		rows = append(rows, []string{f.usage, cli.FormatMoney(v)})
	}
	if !s.UpdatedAt.IsZero() {
		rows = append(rows, []string{"---"}, []string{"Updated", s.UpdatedAt.Local().Format("2006-01-02 15:04")})
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Snapshot",
		Headers: []string{"Field", "Value"},
		Rows:    rows,
	}))
	fmt.Println()
}

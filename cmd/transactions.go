package cmd

import (
	"context"
	"fmt"

	"github.com/theirongolddev/finpulse/internal/cli"
	"github.com/theirongolddev/finpulse/internal/finance"
	"github.com/theirongolddev/finpulse/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagTxType        string
	flagTxCategory    string
	flagTxAmount      float64
	flagTxDescription string
	flagTxDate        string

	flagTxLimit int
	flagTxSince string
)

var txCmd = &cobra.Command{
	Use:     "tx",
	Aliases: []string{"transactions"},
	Short:   "Record and list transactions",
}

var txAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record an income or expense transaction",
	RunE:  runTxAdd,
}

var txListCmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions, newest first",
	RunE:  runTxList,
}

func init() {
	txAddCmd.Flags().StringVarP(&flagTxType, "type", "t", "expense", "Transaction type: income or expense")
	txAddCmd.Flags().StringVar(&flagTxCategory, "category", "", "Category, e.g. rent or groceries")
	txAddCmd.Flags().Float64VarP(&flagTxAmount, "amount", "a", 0, "Amount")
	txAddCmd.Flags().StringVar(&flagTxDescription, "description", "", "Optional description")
	txAddCmd.Flags().StringVar(&flagTxDate, "date", "", "Date as YYYY-MM-DD (default today)")
	_ = txAddCmd.MarkFlagRequired("category")
	_ = txAddCmd.MarkFlagRequired("amount")

	txListCmd.Flags().IntVarP(&flagTxLimit, "limit", "n", finance.DefaultTransactionLimit, "Maximum transactions to show")
	txListCmd.Flags().StringVar(&flagTxSince, "since", "", "Only transactions on or after YYYY-MM-DD")
	txListCmd.Flags().Bool("json", false, "Output JSON")

	txCmd.AddCommand(txAddCmd, txListCmd)
	rootCmd.AddCommand(txCmd)
}

func runTxAdd(_ *cobra.Command, _ []string) error {
	svc, closeFn, err := openService()
	if err != nil {
		return err
	}
	defer closeFn()

	tx, err := svc.AddTransaction(context.Background(), subject(), finance.TransactionInput{
		Type:        flagTxType,
		Category:    flagTxCategory,
		Amount:      flagTxAmount,
		Description: flagTxDescription,
		Date:        flagTxDate,
	})
	if err != nil {
		return err
	}

	fmt.Printf("\n  Transaction added successfully (#%d)\n", tx.ID)
	fmt.Printf("  %s  %s  %s  %s\n\n", tx.Date, tx.Type, tx.Category, cli.FormatMoney(tx.Amount))
	return nil
}

func runTxList(cmd *cobra.Command, _ []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	var since model.Date
	if flagTxSince != "" {
		d, err := model.ParseDate(flagTxSince)
		if err != nil {
			return fmt.Errorf("--since: %w", err)
		}
		since = d
	}

	svc, closeFn, err := openService()
	if err != nil {
		return err
	}
	defer closeFn()

	txs, err := svc.Transactions(context.Background(), subject(), since, flagTxLimit)
	if err != nil {
		return err
	}
	if asJSON {
		return printJSON(txs)
	}
	if len(txs) == 0 {
		fmt.Println("\n  No transactions recorded.")
		return nil
	}

	var income, expenses float64
	rows := make([][]string, 0, len(txs)+2)
	for _, tx := range txs {
		amount := cli.FormatMoney(tx.Amount)
		switch tx.Type {
		case model.Income:
			income += tx.Amount
			amount = "+" + amount
		case model.Expense:
			expenses += tx.Amount
		}
		rows = append(rows, []string{tx.Date.String(), string(tx.Type), tx.Category, amount, tx.Description})
	}
	rows = append(rows, []string{"---"}, []string{"Total", "", "", cli.FormatDelta(income - expenses), cli.FormatCount(len(txs)) + " transactions"})

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Transactions",
		Headers: []string{"Date", "Type", "Category", "Amount", "Description"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}

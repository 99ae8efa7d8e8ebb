package cmd

import (
	"context"
	"fmt"

	"github.com/theirongolddev/finpulse/internal/finance"

	"github.com/spf13/cobra"
)

var (
	flagProfileEmail     string
	flagProfileFirstName string
	flagProfileLastName  string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Register your name and email (first registration wins)",
	RunE:  runProfile,
}

func init() {
	profileCmd.Flags().StringVar(&flagProfileEmail, "email", "", "Email address")
	profileCmd.Flags().StringVar(&flagProfileFirstName, "first-name", "", "First name, used to address advice")
	profileCmd.Flags().StringVar(&flagProfileLastName, "last-name", "", "Last name")
	rootCmd.AddCommand(profileCmd)
}

func runProfile(_ *cobra.Command, _ []string) error {
	svc, closeFn, err := openService()
	if err != nil {
		return err
	}
	defer closeFn()

	id, err := svc.SaveProfile(context.Background(), subject(), finance.ProfileInput{
		Email:     flagProfileEmail,
		FirstName: flagProfileFirstName,
		LastName:  flagProfileLastName,
	})
	if err != nil {
		return err
	}
	fmt.Printf("\n  Profile saved for %s (user #%d)\n\n", subject(), id)
	return nil
}

package main

import (
	"fmt"

	"github.com/atinyakov/AccountKeeper/internal/machinecode"
	"github.com/atinyakov/AccountKeeper/internal/remote"
	"github.com/spf13/cobra"
)

func newRemoteCmd() *cobra.Command {
	var token string
	cmd := &cobra.Command{
		Use:   "remote",
		Short: "Query the remote account API",
	}
	cmd.PersistentFlags().StringVar(&token, "token", "", "auth token sent to the API")

	client := remote.NewClient()
	user := &cobra.Command{
		Use:   "user",
		Short: "Fetch the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			u, err := client.FetchCurrentUser(cmd.Context(), token)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", u.Email, u.PlanName)
			return nil
		},
	}
	usage := &cobra.Command{
		Use:   "usage",
		Short: "Fetch credit usage for the current billing period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			u, err := client.FetchCurrentPeriodUsage(cmd.Context(), token)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "prompt credits: %d, flow credits: %d\n", u.UsedPromptCredits, u.UsedFlowCredits)
			return nil
		},
	}
	cmd.AddCommand(user, usage)
	return cmd
}

func newMachineCodeCmd() *cobra.Command {
	var osName string
	cmd := &cobra.Command{
		Use:   "machine-code",
		Short: "Back up or restore the editor machine identifiers",
	}
	cmd.PersistentFlags().StringVar(&osName, "os", "", "target OS (default: current)")

	backup := &cobra.Command{
		Use:   "backup",
		Short: "Save the machine identifiers",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return machinecode.Backup(osName)
		},
	}
	restore := &cobra.Command{
		Use:   "restore",
		Short: "Restore previously saved machine identifiers",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return machinecode.Restore(osName)
		},
	}
	cmd.AddCommand(backup, restore)
	return cmd
}

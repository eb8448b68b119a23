package main

import (
	"fmt"
	"strings"

	"github.com/atinyakov/AccountKeeper/internal/client/shell"
	"github.com/spf13/cobra"
)

func newAccountsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "List, import, export and delete stored accounts",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Show every stored account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := a.openSession()
			if err != nil {
				return err
			}
			shell.PrintAccounts(cmd.OutOrStdout(), session.Accounts(), session.ActiveAccountID())
			return nil
		},
	}

	importCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Merge accounts from a legacy JSON file, keyed by email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := a.openSession()
			if err != nil {
				return err
			}
			added, err := session.ImportAccounts(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d new account(s), %d total\n", added, len(session.Accounts()))
			return nil
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Write all accounts to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := a.openSession()
			if err != nil {
				return err
			}
			if err := session.ExportAccounts(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d account(s) to %s\n", len(session.Accounts()), args[0])
			return nil
		},
	}

	var skipConfirm bool
	deleteCmd := &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete accounts by id",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := a.openSession()
			if err != nil {
				return err
			}
			if !skipConfirm && !confirm(cmd, fmt.Sprintf("Delete %d account(s)?", len(args))) {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
			n, err := session.DeleteAccounts(args)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d account(s)\n", n)
			return nil
		},
	}
	deleteCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")

	note := &cobra.Command{
		Use:   "note <id> <text>",
		Short: "Replace the note of an account",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := a.openSession()
			if err != nil {
				return err
			}
			if err := session.SetAccountNote(args[0], strings.Join(args[1:], " ")); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Account updated")
			return nil
		},
	}

	cmd.AddCommand(list, importCmd, exportCmd, deleteCmd, note)
	return cmd
}

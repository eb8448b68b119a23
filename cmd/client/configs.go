package main

import (
	"errors"
	"fmt"

	"github.com/atinyakov/AccountKeeper/internal/client/shell"
	"github.com/atinyakov/AccountKeeper/internal/service"
	"github.com/spf13/cobra"
)

var errNoFile = errors.New("no file given: use --file or set it in the config")

// sessionFile is a session with one MCP or rules file opened.
type sessionFile struct {
	session *service.Session
	path    string
}

func newMCPCmd(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Inspect and edit an MCP server file",
	}
	cmd.PersistentFlags().StringVarP(&file, "file", "f", "", "MCP file (default: mcp_config_path from config)")

	// open loads the MCP file into a fresh session.
	open := func() (*sessionFile, error) {
		path := file
		if path == "" {
			path = a.options.MCPConfigPath
		}
		if path == "" {
			return nil, errNoFile
		}
		session, err := a.openSession()
		if err != nil {
			return nil, err
		}
		if err := session.OpenServers(path); err != nil {
			return nil, err
		}
		return &sessionFile{session, path}, nil
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Show the entries of the MCP file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sf, err := open()
			if err != nil {
				return err
			}
			shell.PrintServers(cmd.OutOrStdout(), sf.session.Servers())
			return nil
		},
	}

	var skipConfirm bool
	deleteCmd := &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete entries and save the file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sf, err := open()
			if err != nil {
				return err
			}
			if !skipConfirm && !confirm(cmd, fmt.Sprintf("Delete %d MCP entr(ies) from %s?", len(args), sf.path)) {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
			n := sf.session.DeleteServers(args)
			if n == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to delete")
				return nil
			}
			if err := sf.session.SaveServers(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d entr(ies)\n", n)
			return nil
		},
	}
	deleteCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")

	backup := &cobra.Command{
		Use:   "backup <target>",
		Short: "Copy the entries of the MCP file to target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sf, err := open()
			if err != nil {
				return err
			}
			if err := sf.session.BackupServers(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Backed up %d entr(ies) to %s\n", len(sf.session.Servers()), args[0])
			return nil
		},
	}

	cmd.AddCommand(list, deleteCmd, backup)
	return cmd
}

func newRulesCmd(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect and edit a rules file",
	}
	cmd.PersistentFlags().StringVarP(&file, "file", "f", "", "rules file (default: rules_config_path from config)")

	open := func() (*sessionFile, error) {
		path := file
		if path == "" {
			path = a.options.RulesConfigPath
		}
		if path == "" {
			return nil, errNoFile
		}
		session, err := a.openSession()
		if err != nil {
			return nil, err
		}
		if err := session.OpenRules(path); err != nil {
			return nil, err
		}
		return &sessionFile{session, path}, nil
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Show the rules with a prompt preview",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sf, err := open()
			if err != nil {
				return err
			}
			shell.PrintRules(cmd.OutOrStdout(), sf.session.Rules())
			return nil
		},
	}

	var skipConfirm bool
	deleteCmd := &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete rules and save the file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sf, err := open()
			if err != nil {
				return err
			}
			if !skipConfirm && !confirm(cmd, fmt.Sprintf("Delete %d rule(s) from %s?", len(args), sf.path)) {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
			n := sf.session.DeleteRules(args)
			if n == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to delete")
				return nil
			}
			if err := sf.session.SaveRules(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d rule(s)\n", n)
			return nil
		},
	}
	deleteCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")

	backup := &cobra.Command{
		Use:   "backup <target>",
		Short: "Copy the rules to target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sf, err := open()
			if err != nil {
				return err
			}
			if err := sf.session.BackupRules(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Backed up %d rule(s) to %s\n", len(sf.session.Rules()), args[0])
			return nil
		},
	}

	cmd.AddCommand(list, deleteCmd, backup)
	return cmd
}

package main

import (
	"github.com/atinyakov/AccountKeeper/internal/client/shell"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive keeper prompt",
		Long: `Starts a prompt that keeps one session open. The MCP and rules files
named in the config are opened on start; "help" lists the commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := a.openSession()
			if err != nil {
				return err
			}
			if p := a.options.MCPConfigPath; p != "" {
				if err := session.OpenServers(p); err != nil {
					a.log.Log.Warn("cannot open MCP file", zap.Error(err))
				}
			}
			if p := a.options.RulesConfigPath; p != "" {
				if err := session.OpenRules(p); err != nil {
					a.log.Log.Warn("cannot open rules file", zap.Error(err))
				}
			}
			shell.New(session, cmd.InOrStdin(), cmd.OutOrStdout()).Run()
			return nil
		},
	}
}

package main

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"strings"

	"github.com/atinyakov/AccountKeeper/internal/config"
	"github.com/atinyakov/AccountKeeper/internal/logger"
	"github.com/atinyakov/AccountKeeper/internal/repository"
	"github.com/atinyakov/AccountKeeper/internal/service"
	"github.com/spf13/cobra"
)

// app carries the state shared by every subcommand of one invocation.
type app struct {
	options config.Options
	log     *logger.ZapLogger
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	a := &app{log: logger.New()}

	root := &cobra.Command{
		Use:   "keeper",
		Short: "Keep local accounts, MCP servers and rules in order",
		Long: `keeper manages the account list stored in the data directory and
edits MCP server and rule files in place.

Settings come from flags, then KEEPER_* environment variables, then the
YAML file given with --config.`,
		Example: `  keeper accounts list
  keeper accounts import ~/old-accounts.json
  keeper mcp list --file ~/.codeium/mcp.json
  keeper shell`,
		Version:           cmp.Or(version, "dev"),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(*cobra.Command, []string) error { return a.setup() },
		PersistentPostRun: func(*cobra.Command, []string) { _ = a.log.Log.Sync() },
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetVersionTemplate(versionTemplate())
	root.CompletionOptions.HiddenDefaultCmd = true

	flags := root.PersistentFlags()
	flags.StringVar(&a.options.DataDir, "data-dir", "", "directory holding "+config.AccountsFile)
	flags.StringVarP(&a.options.Config, "config", "c", "", "YAML configuration file")
	flags.StringVar(&a.options.LogLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		newAccountsCmd(a),
		newMCPCmd(a),
		newRulesCmd(a),
		newShellCmd(a),
		newRemoteCmd(),
		newMachineCodeCmd(),
	)
	return root
}

func versionTemplate() string {
	return fmt.Sprintf("keeper %s\n  built: %s\n", cmp.Or(version, "dev"), cmp.Or(buildDate, "N/A"))
}

// setup resolves the configuration and switches to the configured logger.
func (a *app) setup() error {
	if err := a.options.ResolveCLI(); err != nil {
		return err
	}
	return a.log.Init(a.options.LogLevel)
}

// openSession prepares the data directory and loads the stored accounts.
func (a *app) openSession() (*service.Session, error) {
	path, err := a.options.EnsureDataDir()
	if err != nil {
		return nil, err
	}
	log := a.log.Log
	session := service.NewSession(repository.NewAccountRepository(path, log),
		repository.NewServerFile(log),
		repository.NewRuleFile(log),
		log,
	)
	if err := session.LoadAccounts(); err != nil {
		return nil, err
	}
	return session, nil
}

// confirm asks a yes/no question on cmd's streams. Anything but y/yes is no.
func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", prompt)
	response, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && response == "" {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}

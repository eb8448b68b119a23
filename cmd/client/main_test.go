package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atinyakov/AccountKeeper/internal/config"
	"github.com/atinyakov/AccountKeeper/internal/machinecode"
	"github.com/atinyakov/AccountKeeper/internal/models"
	"github.com/atinyakov/AccountKeeper/internal/remote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runKeeper executes the root command with args and stdin, returning stdout.
func runKeeper(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	for _, k := range []string{config.EnvConfig, config.EnvDataDir, config.EnvAddr, config.EnvLogLevel} {
		t.Setenv(k, "")
	}
	var out bytes.Buffer
	root := newRootCmd(strings.NewReader(stdin), &out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readAccounts(t *testing.T, dataDir string) []models.Account {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dataDir, config.AccountsFile))
	require.NoError(t, err)
	var accounts []models.Account
	require.NoError(t, json.Unmarshal(data, &accounts))
	return accounts
}

func TestAccountsWorkflow(t *testing.T) {
	dataDir := t.TempDir()
	legacy := filepath.Join(t.TempDir(), "legacy.json")
	writeFile(t, legacy, `[{"email":"a@x.com","password":"pw"},{"email":"b@x.com"},{"email":""}]`)

	out, err := runKeeper(t, "", "--data-dir", dataDir, "accounts", "import", legacy)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 new account(s), 2 total")

	accounts := readAccounts(t, dataDir)
	require.Len(t, accounts, 2)
	assert.Equal(t, "a@x.com", accounts[0].Email)
	assert.Equal(t, "pw", accounts[0].Password)

	out, err = runKeeper(t, "", "--data-dir", dataDir, "accounts", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "a@x.com")
	assert.Contains(t, out, "b@x.com")

	out, err = runKeeper(t, "", "--data-dir", dataDir, "accounts", "note", accounts[0].ID, "main", "account")
	require.NoError(t, err)
	assert.Contains(t, out, "Account updated")
	assert.Equal(t, "main account", readAccounts(t, dataDir)[0].Note)

	exported := filepath.Join(t.TempDir(), "export.json")
	out, err = runKeeper(t, "", "--data-dir", dataDir, "accounts", "export", exported)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 2 account(s)")
	assert.FileExists(t, exported)

	out, err = runKeeper(t, "n\n", "--data-dir", dataDir, "accounts", "delete", accounts[1].ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Aborted.")
	assert.Len(t, readAccounts(t, dataDir), 2)

	out, err = runKeeper(t, "y\n", "--data-dir", dataDir, "accounts", "delete", accounts[1].ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted 1 account(s)")
	assert.Len(t, readAccounts(t, dataDir), 1)
}

func TestAccountsNoteUnknownID(t *testing.T) {
	_, err := runKeeper(t, "", "--data-dir", t.TempDir(), "accounts", "note", "ghost", "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost")
}

func TestAccountsImportMalformed(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.json")
	writeFile(t, bad, `{"email":"a@x.com"}`)

	_, err := runKeeper(t, "", "--data-dir", t.TempDir(), "accounts", "import", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed file")
}

func TestMCPFromConfigFile(t *testing.T) {
	dir := t.TempDir()
	mcpPath := filepath.Join(dir, "mcp.json")
	writeFile(t, mcpPath, `[
  {"id":"fs","name":"files","command":"npx","args":["-y"],"env":{},"enabled":true},
  {"id":"git","name":"git","command":"uvx"}
]`)
	cfgPath := filepath.Join(dir, "keeper.yaml")
	writeFile(t, cfgPath, "data_dir: "+filepath.Join(dir, "data")+"\nmcp_config_path: "+mcpPath+"\n")

	out, err := runKeeper(t, "", "--config", cfgPath, "mcp", "list")
	require.NoError(t, err)
	assert.Regexp(t, `fs\s+files\s+npx\s+yes`, out)
	assert.Regexp(t, `git\s+git\s+uvx\s+yes`, out)

	backup := filepath.Join(dir, "mcp.bak.json")
	out, err = runKeeper(t, "", "--config", cfgPath, "mcp", "backup", backup)
	require.NoError(t, err)
	assert.Contains(t, out, "Backed up 2 entr(ies)")
	assert.FileExists(t, backup)

	out, err = runKeeper(t, "", "--config", cfgPath, "mcp", "delete", "--yes", "git")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted 1 entr(ies)")

	data, err := os.ReadFile(mcpPath)
	require.NoError(t, err)
	var servers []models.ServerConfig
	require.NoError(t, json.Unmarshal(data, &servers))
	require.Len(t, servers, 1)
	assert.Equal(t, "fs", servers[0].ID)
}

func TestMCPNeedsFile(t *testing.T) {
	_, err := runKeeper(t, "", "--data-dir", t.TempDir(), "mcp", "list")
	require.ErrorIs(t, err, errNoFile)
}

func TestRulesFileFlag(t *testing.T) {
	dir := t.TempDir()
	rulesPath := filepath.Join(dir, "rules.json")
	writeFile(t, rulesPath, `[{"id":"r1","prompt":"be brief"},{"id":"r2","prompt":"write tests"}]`)

	out, err := runKeeper(t, "", "--data-dir", dir, "rules", "list", "--file", rulesPath)
	require.NoError(t, err)
	assert.Regexp(t, `r1\s+be brief`, out)

	out, err = runKeeper(t, "", "--data-dir", dir, "rules", "delete", "-f", rulesPath, "-y", "missing")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to delete")

	out, err = runKeeper(t, "", "--data-dir", dir, "rules", "delete", "-f", rulesPath, "-y", "r1")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted 1 rule(s)")

	out, err = runKeeper(t, "", "--data-dir", dir, "rules", "list", "-f", rulesPath)
	require.NoError(t, err)
	assert.NotContains(t, out, "be brief")
	assert.Contains(t, out, "write tests")
}

func TestShellCommand(t *testing.T) {
	out, err := runKeeper(t, "accounts\nexit\n", "--data-dir", t.TempDir(), "shell")
	require.NoError(t, err)
	assert.Contains(t, out, "keeper> ")
	assert.Contains(t, out, "No accounts")
	assert.Contains(t, out, "Bye")
}

func TestStubCommands(t *testing.T) {
	_, err := runKeeper(t, "", "--data-dir", t.TempDir(), "remote", "user")
	assert.ErrorIs(t, err, remote.ErrNotImplemented)

	_, err = runKeeper(t, "", "--data-dir", t.TempDir(), "remote", "usage")
	assert.ErrorIs(t, err, remote.ErrNotImplemented)

	_, err = runKeeper(t, "", "--data-dir", t.TempDir(), "machine-code", "backup", "--os", "linux")
	require.ErrorIs(t, err, machinecode.ErrNotImplemented)
	assert.Contains(t, err.Error(), "linux")

	_, err = runKeeper(t, "", "--data-dir", t.TempDir(), "machine-code", "restore")
	assert.ErrorIs(t, err, machinecode.ErrNotImplemented)
}

func TestVersionFlag(t *testing.T) {
	out, err := runKeeper(t, "", "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "keeper dev")
}

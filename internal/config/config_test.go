package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{EnvConfig, EnvDataDir, EnvAddr, EnvLogLevel} {
		t.Setenv(key, "")
	}
}

func TestParse_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	o, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultAddr, o.Addr)
	assert.Equal(t, DefaultLogLevel, o.LogLevel)

	want, err := DefaultDataDir()
	require.NoError(t, err)
	assert.Equal(t, want, o.DataDir)
	assert.Equal(t, filepath.Join(want, AccountsFile), o.AccountsPath())
}

func TestParse_Precedence(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "keeper.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
addr: 127.0.0.1:9000
data_dir: /from/file
log_level: debug
mcp_config_path: /from/file/mcp.json
rules_config_path: /from/file/rules.json
`), 0o644))
	t.Setenv(EnvDataDir, "/from/env")

	o, err := Parse([]string{"-c", cfgPath, "-a", "127.0.0.1:1"})
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:1", o.Addr)
	assert.Equal(t, "/from/env", o.DataDir)
	assert.Equal(t, "debug", o.LogLevel)
	assert.Equal(t, "/from/file/mcp.json", o.MCPConfigPath)
	assert.Equal(t, "/from/file/rules.json", o.RulesConfigPath)
}

func TestParse_ConfigFromEnv(t *testing.T) {
	clearEnv(t)
	cfgPath := filepath.Join(t.TempDir(), "keeper.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("data_dir: /data\n"), 0o644))
	t.Setenv(EnvConfig, cfgPath)

	o, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, "/data", o.DataDir)
}

func TestParse_MissingConfigFile(t *testing.T) {
	clearEnv(t)
	o, err := Parse([]string{"-config", filepath.Join(t.TempDir(), "none.yaml"), "-data-dir", "/d"})
	require.NoError(t, err)
	assert.Equal(t, "/d", o.DataDir)
}

func TestParse_BadConfigFile(t *testing.T) {
	clearEnv(t)
	cfgPath := filepath.Join(t.TempDir(), "keeper.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("addr: [unclosed"), 0o644))

	_, err := Parse([]string{"-c", cfgPath})
	assert.Error(t, err)
}

func TestEnsureDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "keeper")
	o := &Options{DataDir: dir}

	path, err := o.EnsureDataDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, AccountsFile), path)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	_, err = (&Options{}).EnsureDataDir()
	assert.Error(t, err)
}

func TestResolveCLI(t *testing.T) {
	clearEnv(t)
	o := &Options{DataDir: "/d"}
	require.NoError(t, o.ResolveCLI())
	assert.Equal(t, CLILogLevel, o.LogLevel)

	t.Setenv(EnvLogLevel, "debug")
	o = &Options{DataDir: "/d"}
	require.NoError(t, o.ResolveCLI())
	assert.Equal(t, "debug", o.LogLevel)
}

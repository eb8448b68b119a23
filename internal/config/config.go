// Package config resolves AccountKeeper settings from command-line flags,
// environment variables and an optional YAML config file.
//
// Precedence, highest first: flags, environment, config file, defaults.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultAddr is the loopback address of the local API.
	DefaultAddr = "127.0.0.1:8765"
	// DefaultLogLevel is used when no level is configured.
	DefaultLogLevel = "info"
	// CLILogLevel is the default for one-shot commands and the shell.
	CLILogLevel = "warn"
	// AccountsFile is the name of the account file inside the data directory.
	AccountsFile = "accounts.json"

	appDirName = "accountkeeper"
)

// Environment variables read by Resolve.
const (
	EnvConfig   = "KEEPER_CONFIG"
	EnvDataDir  = "KEEPER_DATA_DIR"
	EnvAddr     = "KEEPER_ADDR"
	EnvLogLevel = "KEEPER_LOG_LEVEL"
)

// Options holds the configuration values for the application.
type Options struct {
	// Addr is the ip:port the local API listens on.
	Addr string `yaml:"addr"`

	// DataDir holds accounts.json.
	DataDir string `yaml:"data_dir"`

	// LogLevel is a zap level name.
	LogLevel string `yaml:"log_level"`

	// MCPConfigPath is the MCP server file used when a command gets no explicit path.
	MCPConfigPath string `yaml:"mcp_config_path"`

	// RulesConfigPath is the rules file used when a command gets no explicit path.
	RulesConfigPath string `yaml:"rules_config_path"`

	// Config is the path to the YAML config file.
	Config string `yaml:"-"`
}

// Parse builds Options from command-line args (without the program name)
// and resolves them.
func Parse(args []string) (*Options, error) {
	options := &Options{}
	flags := flag.NewFlagSet("keeper-server", flag.ContinueOnError)
	flags.StringVar(&options.Addr, "a", "", "run on ip:port server (default "+DefaultAddr+")")
	flags.StringVar(&options.DataDir, "data-dir", "", "directory holding accounts.json")
	flags.StringVar(&options.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&options.Config, "config", "", "path to config file")
	flags.StringVar(&options.Config, "c", "", "path to config file (shorthand)")
	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	if err := options.Resolve(); err != nil {
		return nil, err
	}
	return options, nil
}

// Resolve fills every empty field from the environment, then the config
// file, then the built-in defaults.
func (o *Options) Resolve() error {
	return o.resolve(DefaultLogLevel)
}

// ResolveCLI is Resolve with CLILogLevel as the default level.
func (o *Options) ResolveCLI() error {
	return o.resolve(CLILogLevel)
}

func (o *Options) resolve(defaultLevel string) error {
	o.fill(Options{
		Config:   os.Getenv(EnvConfig),
		DataDir:  os.Getenv(EnvDataDir),
		Addr:     os.Getenv(EnvAddr),
		LogLevel: os.Getenv(EnvLogLevel),
	})

	if o.Config != "" {
		fromFile, err := readFile(o.Config)
		if err != nil {
			return err
		}
		o.fill(fromFile)
	}

	defaults := Options{Addr: DefaultAddr, LogLevel: defaultLevel}
	if o.DataDir == "" {
		dir, err := DefaultDataDir()
		if err != nil {
			return err
		}
		defaults.DataDir = dir
	}
	o.fill(defaults)
	return nil
}

// AccountsPath returns the default account file.
func (o *Options) AccountsPath() string {
	return filepath.Join(o.DataDir, AccountsFile)
}

// EnsureDataDir creates the data directory if needed and returns the
// default account file path.
func (o *Options) EnsureDataDir() (string, error) {
	if o.DataDir == "" {
		return "", errors.New("data directory is not configured")
	}
	if err := os.MkdirAll(o.DataDir, 0o700); err != nil {
		return "", fmt.Errorf("create data directory: %w", err)
	}
	return o.AccountsPath(), nil
}

// DefaultDataDir returns the per-user configuration directory for the app.
func DefaultDataDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, appDirName), nil
}

// fill copies every non-empty field of src into an empty field of o.
func (o *Options) fill(src Options) {
	for _, f := range []struct{ dst, src *string }{
		{&o.Addr, &src.Addr},
		{&o.DataDir, &src.DataDir},
		{&o.LogLevel, &src.LogLevel},
		{&o.MCPConfigPath, &src.MCPConfigPath},
		{&o.RulesConfigPath, &src.RulesConfigPath},
		{&o.Config, &src.Config},
	} {
		if *f.dst == "" {
			*f.dst = *f.src
		}
	}
}

// readFile loads the YAML config file. A missing file is not an error.
func readFile(path string) (Options, error) {
	var out Options
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return out, nil
		}
		return out, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return out, nil
}

package service

import (
	"slices"
	"strings"

	"github.com/google/uuid"
)

// NewID returns a fresh id for a new MCP entry or rule.
func NewID() string {
	return uuid.NewString()
}

// ParseArgs splits a space-separated argument line. Repeated spaces do not
// produce empty arguments.
func ParseArgs(line string) []string {
	args := []string{}
	for _, a := range strings.Split(strings.TrimSpace(line), " ") {
		if a != "" {
			args = append(args, a)
		}
	}
	return args
}

// FormatArgs is the inverse of ParseArgs.
func FormatArgs(args []string) string {
	return strings.Join(args, " ")
}

// ParseEnv reads KEY=VALUE lines. Blank lines and lines without '=' are
// ignored; a later key overwrites an earlier one.
func ParseEnv(text string) map[string]string {
	env := map[string]string{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		env[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return env
}

// FormatEnv prints env as KEY=VALUE lines sorted by key.
func FormatEnv(env map[string]string) string {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	lines := make([]string, len(keys))
	for i, k := range keys {
		lines[i] = k + "=" + env[k]
	}
	return strings.Join(lines, "\n")
}

// NormalizePrompt drops trailing newlines from a rule prompt.
func NormalizePrompt(prompt string) string {
	return strings.TrimRight(prompt, "\r\n")
}

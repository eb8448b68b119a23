// Command keeper manages the local account list, MCP server files and
// rule files, either one command at a time or through an interactive shell.
package main

import (
	"fmt"
	"os"
)

// Version information set via ldflags at build time.
var (
	version   string
	buildDate string
)

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

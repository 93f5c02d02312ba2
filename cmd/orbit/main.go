// Package main is the entry point for the orbit CLI.
//
// Usage:
//
//	orbit [flags] <command> [subcommand] [args]
//
// Commands:
//
//	config     - Configuration management (API key, defaults, export backend)
//	run        - Interactive live translation session
//	serve      - Local web console for a session
//	history    - Archived conversation history (list, clear, export)
//	version    - Show version information
package main

import (
	"fmt"
	"os"

	"github.com/eburon/orbit/cmd/orbit/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

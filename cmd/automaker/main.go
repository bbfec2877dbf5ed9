// Automaker: project memory and context selection for AI coding agents.
//
// Keeps per-project context and self-updating memory files under
// .automaker/ and serves them over MCP or the command line.
//
// Usage:
//
//	automaker serve      # Start MCP server (stdio transport)
//	automaker init       # Initialize .automaker/memory
//	automaker context    # Print the context block for a task
package main

import (
	"fmt"
	"os"

	"github.com/rkuprin/automaker/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

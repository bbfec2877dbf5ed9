// Package cli provides the command-line interface for automaker.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rkuprin/automaker/internal/config"
	"github.com/rkuprin/automaker/internal/journal"
	"github.com/rkuprin/automaker/internal/memory"
	"github.com/rkuprin/automaker/internal/server"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	log      *logrus.Logger
	engine   *memory.Engine
	journals *journal.Manager

	projectFlag string
	verbose     bool
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "automaker",
	Short: "Project memory and context selection for AI coding agents",
	Long: `Automaker - persistent project memory for AI coding agents

Keeps per-project context files and self-updating memory files under
.automaker/, and selects the most relevant ones for a given task.

Quick Start:
  automaker init                          # Create .automaker/memory
  automaker context "Add OAuth login"     # Print the context block for a task
  automaker learn decision auth "..."     # Record a decision
  automaker memory                        # List memory files
  automaker stats                         # Usage counters and journal totals
  automaker serve                         # Start the MCP server (stdio)`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log = logrus.New()
		log.SetOutput(os.Stderr)
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		} else {
			log.SetLevel(logrus.WarnLevel)
		}

		journals = journal.NewManager()
		engine = memory.NewEngine(
			memory.WithJournal(journals),
			memory.WithLogger(log),
		)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if journals != nil {
			if err := journals.Close(); err != nil {
				log.WithError(err).Warn("journal close")
			}
		}
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&projectFlag, "project", "p", "", "Project root (default: nearest ancestor containing .automaker/)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the automaker version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("automaker v%s\n", server.Version)
	},
}

// projectRoot resolves the project directory: the --project flag if
// given, otherwise the nearest ancestor of cwd containing .automaker/,
// otherwise cwd itself.
func projectRoot() (string, error) {
	if projectFlag != "" {
		abs, err := filepath.Abs(projectFlag)
		if err != nil {
			return "", fmt.Errorf("resolving project path: %w", err)
		}
		return abs, nil
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}

	current := dir
	for {
		marker := filepath.Join(current, config.AutomakerDir)
		if info, err := os.Stat(marker); err == nil && info.IsDir() {
			return current, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return dir, nil
		}
		current = parent
	}
}

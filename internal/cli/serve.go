package cli

import (
	"fmt"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/rkuprin/automaker/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server on stdio",
	Long: `Start the automaker MCP server on stdio.

Add to your AI tool's MCP config:

  {
    "mcpServers": {
      "automaker": {
        "command": "automaker",
        "args": ["serve"]
      }
    }
  }`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, cleanup, err := server.New(log)
		if err != nil {
			return fmt.Errorf("creating server: %w", err)
		}
		defer cleanup()

		return mcpserver.ServeStdio(s)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

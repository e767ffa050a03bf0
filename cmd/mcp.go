package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xvierd/daybook/internal/adapters/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol (MCP) server for integration with AI
assistants. The server communicates via stdio and exposes tools to read
days, add entries and query the journal.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !appConfig.MCP.Enabled {
			return fmt.Errorf("MCP server is disabled in the config")
		}

		server := mcp.NewServer(journalSvc)
		if err := server.Start(context.Background()); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}
		return nil
	},
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/eventbox/internal/adapters/driving/mcp"
)

var mcpHTTPAddr string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can list events.

By default the server communicates over stdio using JSON-RPC. Use --http to
serve the streamable HTTP transport instead.

Examples:
  # Stdio mode (for desktop assistants)
  eventbox mcp

  # HTTP mode (for MCP Inspector, remote access)
  eventbox mcp --http :8090

Assistant configuration:
  {
    "mcpServers": {
      "eventbox": {
        "command": "/path/to/eventbox",
        "args": ["mcp"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&mcpHTTPAddr, "http", "", "HTTP listen address (empty = use stdio)")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	events, err := eventService()
	if err != nil {
		return err
	}

	server, err := mcp.NewServer(&mcp.Ports{Events: events})
	if err != nil {
		return err
	}

	if mcpHTTPAddr != "" {
		cmd.PrintErrf("MCP server listening on http://%s\n", mcpHTTPAddr)
		return server.RunHTTP(cmd.Context(), mcpHTTPAddr)
	}

	return server.Run(cmd.Context())
}

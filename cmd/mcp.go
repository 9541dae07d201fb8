package cmd

import (
	"github.com/mquintal/graphlens/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Graphlens MCP server",
	Long:  `Launch an MCP server that allows AI agents to perform graph analysis via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Tools provide snapshot paths per request, so none is needed here.
		input.SnapshotOptional = true
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, cacheManager)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

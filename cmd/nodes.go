package cmd

import (
	"github.com/mquintal/graphlens/core"
	"github.com/mquintal/graphlens/internal/contract"
	"github.com/spf13/cobra"
)

// nodesCmd performs node-level collaboration analysis.
var nodesCmd = &cobra.Command{
	Use:   "nodes [snapshot-path]",
	Short: "Show the top nodes ranked by centrality score.",
	Long: `Analyze the collaboration graph and rank individual nodes by centrality score.

Computes degree, betweenness, closeness, clustering and eigenvector centrality for
every node, helping you:
- Identify which people and teams are most central to your organization
- Find connectors that bridge otherwise separate groups
- Spot locally embedded anchors that hold their teams together
- Discover isolated members at the edge of the network

Scores nodes based on your selected mode (influence, broker, anchor, periphery),
ranking them from highest to lowest.

Examples:
  # Find the most influential people and teams
  graphlens nodes graph.json --mode influence --limit 20

  # Identify cross-community connectors
  graphlens nodes graph.json --mode broker

  # Restrict ranking to teams only
  graphlens nodes graph.json --type team

  # Find members at risk of isolation
  graphlens nodes graph.json --mode periphery

  # Include detailed metrics and component breakdown
  graphlens nodes graph.json --detail --explain

  # Export findings to CSV for tracking
  graphlens nodes graph.json --mode influence --output csv --output-file nodes.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteGraphNodes(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run node analysis", err)
		}
	},
}

package cmd

import (
	"github.com/mquintal/graphlens/core"
	"github.com/mquintal/graphlens/internal/contract"
	"github.com/spf13/cobra"
)

// bottlenecksCmd finds single points of failure in the graph.
var bottlenecksCmd = &cobra.Command{
	Use:   "bottlenecks [snapshot-path]",
	Short: "Find nodes whose removal would fragment the graph.",
	Long: `Identify structural bottlenecks in the collaboration graph.

A bottleneck is a node that sits on many shortest paths between other nodes
while having few redundant connections around it. If such a node leaves or
becomes unavailable, information flow between whole sections of the graph
breaks down.

Use this to:
- Find single points of failure in your organization
- Plan knowledge transfer before departures
- Justify adding redundant links around overloaded connectors

Severity reflects how badly connectivity degrades without the node.

Examples:
  # Find bottlenecks in a snapshot
  graphlens bottlenecks graph.json

  # Focus on people only
  graphlens bottlenecks graph.json --type user

  # Export for reporting
  graphlens bottlenecks graph.json --output csv --output-file bottlenecks.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteGraphBottlenecks(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run bottleneck analysis", err)
		}
	},
}

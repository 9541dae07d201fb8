package cmd

import (
	"github.com/mquintal/graphlens/core"
	"github.com/mquintal/graphlens/internal/contract"
	"github.com/spf13/cobra"
)

// communitiesCmd performs community detection on the graph.
var communitiesCmd = &cobra.Command{
	Use:   "communities [snapshot-path]",
	Short: "Detect communities and rank them by size and cohesion.",
	Long: `Detect natural groupings in the collaboration graph using Louvain modularity
optimization and rank them by member count.

Communities are clusters of nodes that interact far more with each other than
with the rest of the graph. Use this to:
- See whether formal team boundaries match actual collaboration patterns
- Find shadow teams that formed around projects or skills
- Measure how internally cohesive each group is
- Identify the key member holding each community together

Examples:
  # Detect communities in a snapshot
  graphlens communities graph.json

  # Show the largest 10 communities with member lists
  graphlens communities graph.json --limit 10 --detail

  # Export community assignments for further analysis
  graphlens communities graph.json --output json --output-file communities.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteGraphCommunities(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run community analysis", err)
		}
	},
}

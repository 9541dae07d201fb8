package cmd

import (
	"github.com/mquintal/graphlens/core"
	"github.com/mquintal/graphlens/internal/contract"
	"github.com/spf13/cobra"
)

// opportunitiesCmd suggests new collaborations.
var opportunitiesCmd = &cobra.Command{
	Use:   "opportunities [snapshot-path]",
	Short: "Suggest node pairs that should be collaborating but aren't.",
	Long: `Find pairs of unconnected nodes with strong structural reasons to collaborate.

Candidate pairs are scored by three signals:
- shared_neighbors    - many common collaborators
- community_bridge    - high-centrality nodes in different communities
- neighbor_similarity - similar collaboration patterns

Use this to:
- Recommend introductions between teams working on related problems
- Reduce duplicated effort across disconnected groups
- Strengthen weak spots found by the bottlenecks command

Examples:
  # Suggest collaborations in a snapshot
  graphlens opportunities graph.json

  # Top 10 suggestions with reasons
  graphlens opportunities graph.json --limit 10

  # Export suggestions as JSON
  graphlens opportunities graph.json --output json --output-file pairs.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteGraphOpportunities(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run opportunity analysis", err)
		}
	},
}

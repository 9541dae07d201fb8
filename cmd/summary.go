package cmd

import (
	"github.com/mquintal/graphlens/core"
	"github.com/mquintal/graphlens/internal/contract"
	"github.com/spf13/cobra"
)

// summaryCmd prints graph-wide health statistics.
var summaryCmd = &cobra.Command{
	Use:   "summary [snapshot-path]",
	Short: "Show graph-wide statistics and health indicators.",
	Long: `Print a one-page overview of the collaboration graph.

Displays:
- Node and edge counts, overall density
- Average degree and clustering coefficient
- Connected components and connectedness ratio
- Community count and modularity
- Graph diameter of the largest component

Use this as a first look at a new snapshot or to track graph health over time.

Examples:
  # Summarize a snapshot
  graphlens summary graph.json

  # Machine-readable summary for dashboards
  graphlens summary graph.json --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteGraphSummary(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run summary analysis", err)
		}
	},
}

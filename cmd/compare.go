package cmd

import (
	"errors"

	"github.com/mquintal/graphlens/core"
	"github.com/mquintal/graphlens/internal/contract"
	"github.com/spf13/cobra"
)

// compareCmd focused on snapshot-over-snapshot comparisons.
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare analysis results between two graph snapshots.",
	Long: `Compare node scores between two snapshots to track how the collaboration
graph has evolved.

Ideal for:
- Reorg validation - verify a restructure actually improved connectivity
- Onboarding tracking - watch new hires integrate into the network
- Attrition planning - see which departures left structural holes
- Progress tracking - monitor centrality shifts quarter over quarter

The comparison shows before/after scores, deltas, status (new/modified/removed)
and community moves for each node.

Examples:
  # Compare two quarterly snapshots
  graphlens compare --base-snapshot q1.json --target-snapshot q2.json

  # See broker changes after a reorg
  graphlens compare --mode broker --base-snapshot before.json --target-snapshot after.json

  # Export comparison to CSV for tracking
  graphlens compare --base-snapshot q1.json --target-snapshot q2.json --output csv --output-file delta.csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if !cfg.CompareMode {
			contract.LogFatal("Cannot run compare analysis", errors.New("base and target snapshots must be provided"))
		}
		if err := core.ExecuteGraphCompare(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run compare analysis", err)
		}
	},
}

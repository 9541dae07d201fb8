package cmd

import (
	"github.com/mquintal/graphlens/core"
	"github.com/mquintal/graphlens/internal/contract"
	"github.com/spf13/cobra"
)

// checkCmd focused on CI/CD policy enforcement.
var checkCmd = &cobra.Command{
	Use:   "check [snapshot-path]",
	Short: "Enforce score thresholds for CI/CD pipelines (fails on violations)",
	Long: `Analyze a snapshot and enforce policy thresholds on node scores.

Designed for automated pipelines - fails with non-zero exit code when any node
exceeds the acceptable score for a checked mode. Use it to catch unhealthy
concentration before it becomes a problem.

Default thresholds: 50.0 for all modes (influence, broker, anchor, periphery)

Use cases:
- Weekly health gates - alert when one person becomes too central
- Reorg validation - ensure no new bottlenecks were introduced
- Trend enforcement - keep isolation scores below agreed limits

Examples:
  # Check a snapshot against default thresholds
  graphlens check graph.json

  # Custom thresholds per mode
  graphlens check graph.json --thresholds-override "influence:75,broker:60"

  # Only gate on broker concentration
  graphlens check graph.json --thresholds-override "broker:70"`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		// Validation is done in ExecuteGraphCheck
		if err := core.ExecuteGraphCheck(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Policy check failed", err)
		}
	},
}

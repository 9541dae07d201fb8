package cmd

import (
	"github.com/mquintal/graphlens/core"
	"github.com/mquintal/graphlens/internal/contract"
	"github.com/spf13/cobra"
)

// metricsCmd displays the formal definitions of all scoring modes.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Display mathematical formulas and definitions for all scoring modes",
	Long: `Show the formal definitions, formulas, and factor weights for all scoring modes.

Provides complete transparency into how nodes are ranked, including:
- Scoring mode purpose and focus
- Factor names and their contribution weights
- Mathematical formula for score calculation
- Custom weights if configured via .graphlens.yaml

No graph analysis is performed - this is purely informational.

Use this to:
- Understand what each scoring mode measures
- Explain scoring logic to your team
- Validate custom weight configurations
- Document scoring methodology

Examples:
  # Show default scoring formulas
  graphlens metrics

  # View with custom weights from config file
  graphlens metrics --config .graphlens.yaml`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Metrics needs weights from the config file but no snapshot.
		input.SnapshotOptional = true
		return sharedSetup(rootCtx, cmd, args)
	},
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteGraphMetrics(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot display metrics", err)
		}
	},
}

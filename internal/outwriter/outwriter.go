// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"path/filepath"

	"github.com/mquintal/graphlens/internal/contract"
)

// LogAnalysisHeader prints a concise, 2-line header for each analysis phase.
func LogAnalysisHeader(cfg *contract.Config) {
	snapshotName := filepath.Base(cfg.SnapshotPath)
	if snapshotName == "" || snapshotName == "." {
		snapshotName = "current"
	}

	// Line 1: The analysis summary (Snapshot and Mode)
	fmt.Printf("🔎 Snapshot: %s (Mode: %s)\n", snapshotName, cfg.Mode)

	// Line 2: The analysis scope
	scope := "all types"
	if cfg.TypeFilter != "" {
		scope = fmt.Sprintf("type: %s", cfg.TypeFilter)
	}
	fmt.Printf("🧭 Scope: %s (workers: %d)\n", scope, cfg.Workers)
}

// LogCompareHeader prints a header for comparison analysis.
func LogCompareHeader(cfg *contract.Config) {
	baseName := filepath.Base(cfg.BaseSnapshot)
	targetName := filepath.Base(cfg.TargetSnapshot)
	fmt.Printf("🔎 Mode: %s\n", cfg.Mode)
	fmt.Printf("📊 Comparing: %s ↔ %s\n", baseName, targetName)
}

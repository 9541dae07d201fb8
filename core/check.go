package core

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/mquintal/graphlens/internal/contract"
	"github.com/mquintal/graphlens/schema"
)

// ExecuteGraphCheck runs the check command for CI/CD gating.
// It analyzes the snapshot, checks node scores against the configured
// per-mode thresholds, and returns a non-zero exit code on violations.
func ExecuteGraphCheck(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()

	engine := newEngineForSnapshot(cfg, mgr)
	output, err := engine.AnalyzeNodes(ctx)
	if err != nil {
		return err
	}

	result := buildCheckResult(output.NodeResults, cfg)
	printCheckResult(result, time.Since(start))

	if !result.Passed {
		fmt.Printf("%d violation(s) found\n", len(result.FailedNodes))
		os.Exit(1)
	}
	return nil
}

// buildCheckResult evaluates every node's per-mode scores against the
// configured thresholds and aggregates max and average scores per mode.
func buildCheckResult(results []schema.NodeResult, cfg *contract.Config) *schema.CheckResult {
	checkedModes := make([]schema.ScoringMode, 0, len(cfg.CheckThresholds))
	for _, mode := range schema.AllScoringModes {
		if _, ok := cfg.CheckThresholds[mode]; ok {
			checkedModes = append(checkedModes, mode)
		}
	}

	result := &schema.CheckResult{
		Passed:        true,
		TotalNodes:    len(results),
		CheckedModes:  checkedModes,
		Snapshot:      cfg.SnapshotPath,
		Thresholds:    cfg.CheckThresholds,
		MaxScores:     make(map[schema.ScoringMode]float64),
		MaxScoreNodes: make(map[schema.ScoringMode][]schema.CheckMaxScoreNode),
		AvgScores:     make(map[schema.ScoringMode]float64),
	}

	sums := make(map[schema.ScoringMode]float64)
	for _, r := range results {
		for _, mode := range checkedModes {
			score := r.AllScores[mode]
			sums[mode] += score

			if score > result.MaxScores[mode] {
				result.MaxScores[mode] = score
				result.MaxScoreNodes[mode] = []schema.CheckMaxScoreNode{{NodeID: r.ID, Label: r.Label}}
			} else if score == result.MaxScores[mode] && score > 0 {
				result.MaxScoreNodes[mode] = append(result.MaxScoreNodes[mode], schema.CheckMaxScoreNode{NodeID: r.ID, Label: r.Label})
			}

			if score > cfg.CheckThresholds[mode] {
				result.Passed = false
				result.FailedNodes = append(result.FailedNodes, schema.CheckFailedNode{
					NodeID:    r.ID,
					Label:     r.Label,
					Mode:      mode,
					Score:     score,
					Threshold: cfg.CheckThresholds[mode],
				})
			}
		}
	}

	if len(results) > 0 {
		for _, mode := range checkedModes {
			result.AvgScores[mode] = sums[mode] / float64(len(results))
		}
	}

	return result
}

// printCheckResult prints the check result in a concise format suitable for CI/CD.
func printCheckResult(result *schema.CheckResult, duration time.Duration) {
	printCheckHeader(result, duration)

	if result.Passed {
		printCheckSuccess(result)
	} else {
		printCheckFailure(result)
	}
}

// printCheckHeader prints the common header information for check results.
func printCheckHeader(result *schema.CheckResult, duration time.Duration) {
	fmt.Println("Policy Check Results:")

	thresholdParts := ""
	for i, mode := range result.CheckedModes {
		if i > 0 {
			thresholdParts += ", "
		}
		thresholdParts += fmt.Sprintf("%s=%.1f", mode, result.Thresholds[mode])
	}

	// Define labels and values for dynamic padding
	labels := []string{"Snapshot:", "Thresholds:"}
	values := []any{result.Snapshot, thresholdParts}

	// Find the longest label for consistent padding
	maxLabelLen := 0
	for _, label := range labels {
		if len(label) > maxLabelLen {
			maxLabelLen = len(label)
		}
	}

	// Print each label-value pair with consistent padding
	for i, label := range labels {
		fmt.Printf("  %-*s %v\n", maxLabelLen+1, label, values[i])
	}
	fmt.Println()

	fmt.Printf("Checked %d nodes in %v\n\n", result.TotalNodes, duration)
}

// printCheckSuccess prints the success case output.
func printCheckSuccess(result *schema.CheckResult) {
	fmt.Printf("✅ All nodes passed policy checks\n\n")
	fmt.Println("Scores observed:")

	for _, mode := range result.CheckedModes {
		score := result.MaxScores[mode]
		nodes := result.MaxScoreNodes[mode]
		avgScore := result.AvgScores[mode]

		if len(nodes) == 0 {
			fmt.Printf("  %s: max=%.1f, avg=%.1f\n", mode, score, avgScore)
			continue
		}

		// Show the primary node that achieved max score (first one if tie)
		name := nodes[0].Label
		if len(nodes) > 1 {
			name += fmt.Sprintf(" (+%d more)", len(nodes)-1)
		}

		fmt.Printf("  %s: max=%.1f (%s), avg=%.1f\n", mode, score, name, avgScore)
	}
}

// printCheckFailure prints the failure case output.
func printCheckFailure(result *schema.CheckResult) {
	fmt.Printf("❌ Policy check failed: %d violation(s) found across %d nodes\n\n", len(result.FailedNodes), result.TotalNodes)

	// Group by mode for better readability
	modeGroups := make(map[schema.ScoringMode][]schema.CheckFailedNode)
	for _, failed := range result.FailedNodes {
		modeGroups[failed.Mode] = append(modeGroups[failed.Mode], failed)
	}

	for _, mode := range result.CheckedModes {
		nodes := modeGroups[mode]
		if len(nodes) == 0 {
			continue
		}

		// Sort by score descending
		sort.Slice(nodes, func(i, j int) bool {
			return nodes[i].Score > nodes[j].Score
		})

		fmt.Printf("Mode: %s (%d violations)\n", mode, len(nodes))

		// Show top 5 violations, with "+X more" if needed
		maxToShow := 5
		shown := 0
		for _, n := range nodes {
			if shown >= maxToShow {
				remaining := len(nodes) - shown
				if remaining > 0 {
					fmt.Printf("  ... and %d more\n", remaining)
				}
				break
			}
			fmt.Printf("  - %s (score: %.1f > threshold: %.1f)\n", n.Label, n.Score, n.Threshold)
			shown++
		}
		fmt.Println()
	}
}

package core

import (
	"math"
	"sort"
	"strings"

	"github.com/mquintal/graphlens/schema"
)

// compareNodeResults matches node results from the base snapshot against
// the target snapshot and computes score and degree deltas. Nodes whose
// score barely moves are kept out of the detail list but still counted in
// the summary.
func compareNodeResults(baseResults, targetResults []schema.NodeResult, limit int, mode schema.ScoringMode) schema.ComparisonResult {
	baseMap := make(map[string]schema.NodeResult, len(baseResults))
	targetMap := make(map[string]schema.NodeResult, len(targetResults))
	allIDs := make(map[string]struct{})

	// 1. Populate maps and collect all node ids
	for _, r := range baseResults {
		baseMap[r.ID] = r
		allIDs[r.ID] = struct{}{}
	}
	for _, r := range targetResults {
		targetMap[r.ID] = r
		allIDs[r.ID] = struct{}{}
	}

	details := make([]schema.ComparisonDetail, 0, len(allIDs))

	// Initialize summary accumulators
	var netScoreDelta float64
	var netDegreeDelta int
	var totalNewNodes, totalRemovedNodes, totalModifiedNodes int
	var totalCommunityMoves int

	// 2. Compare all node ids
	for id := range allIDs {
		baseR, baseExists := baseMap[id]
		targetR, targetExists := targetMap[id]

		// Get scores (default to 0 if not exists)
		baseScore := 0.0
		if baseExists {
			baseScore = baseR.ModeScore
		}
		targetScore := 0.0
		if targetExists {
			targetScore = targetR.ModeScore
		}

		// Calculate deltas
		deltaScore := targetScore - baseScore
		deltaDegree := 0
		if baseExists && targetExists {
			deltaDegree = targetR.RawDegree - baseR.RawDegree
		}

		// Accumulate summary
		netScoreDelta += deltaScore
		netDegreeDelta += deltaDegree

		// Determine status
		status := determineStatus(baseExists, targetExists)
		switch status {
		case schema.NewStatus:
			totalNewNodes++
		case schema.ModifiedStatus:
			totalModifiedNodes++
		case schema.RemovedStatus:
			totalRemovedNodes++
		}

		// Community assignments (default -1 if not exists)
		beforeCluster := -1
		if baseExists {
			beforeCluster = baseR.Community
		}
		afterCluster := -1
		if targetExists {
			afterCluster = targetR.Community
		}
		if baseExists && targetExists && beforeCluster != afterCluster {
			totalCommunityMoves++
		}

		// Only include results with significant score changes
		if math.Abs(deltaScore) > 0.01 || status != schema.ModifiedStatus {
			label := id
			if targetExists {
				label = targetR.Label
			} else if baseExists {
				label = baseR.Label
			}

			details = append(details, schema.ComparisonDetail{
				NodeID:        id,
				Label:         label,
				BeforeScore:   baseScore,
				AfterScore:    targetScore,
				Delta:         deltaScore,
				DeltaDegree:   deltaDegree,
				Status:        status,
				BeforeCluster: beforeCluster,
				AfterCluster:  afterCluster,
				Mode:          mode,
			})
		}
	}

	// Create summary
	summary := schema.ComparisonSummary{
		NetScoreDelta:       netScoreDelta,
		NetDegreeDelta:      netDegreeDelta,
		TotalNewNodes:       totalNewNodes,
		TotalRemovedNodes:   totalRemovedNodes,
		TotalModifiedNodes:  totalModifiedNodes,
		TotalCommunityMoves: totalCommunityMoves,
	}

	// Sort results
	sortComparisonDetails(details)

	// Apply limit
	if limit > 0 && len(details) > limit {
		details = details[:limit]
	}

	return schema.ComparisonResult{Details: details, Summary: summary}
}

// determineStatus returns the status based on existence in base and target.
func determineStatus(baseExists, targetExists bool) schema.NodeStatus {
	switch {
	case !baseExists && targetExists:
		return schema.NewStatus
	case baseExists && targetExists:
		return schema.ModifiedStatus
	default:
		return schema.RemovedStatus
	}
}

// sortComparisonDetails sorts comparison details by absolute delta, then delta sign, then node id.
func sortComparisonDetails(details []schema.ComparisonDetail) {
	sort.Slice(details, func(i, j int) bool {
		a := details[i]
		b := details[j]

		// Primary: Absolute delta (descending)
		absA := math.Abs(a.Delta)
		absB := math.Abs(b.Delta)
		if absA != absB {
			return absA > absB
		}

		// Secondary: Delta sign (positive before negative)
		if a.Delta != b.Delta {
			return a.Delta > b.Delta
		}

		// Tertiary: Node id (ascending)
		return strings.Compare(a.NodeID, b.NodeID) < 0
	})
}

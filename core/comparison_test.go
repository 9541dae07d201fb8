package core

import (
	"fmt"
	"testing"

	"github.com/mquintal/graphlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareNodeResults_StatusClassification(t *testing.T) {
	baseResults := []schema.NodeResult{
		{ID: "both", Label: "Both", ModeScore: 10.0, RawDegree: 5, Community: 0},
		{ID: "only-base", Label: "OnlyBase", ModeScore: 5.0, RawDegree: 2, Community: 1},
	}
	targetResults := []schema.NodeResult{
		{ID: "both", Label: "Both", ModeScore: 15.0, RawDegree: 7, Community: 0},
		{ID: "only-target", Label: "OnlyTarget", ModeScore: 8.0, RawDegree: 3, Community: 1},
	}

	result := compareNodeResults(baseResults, targetResults, 10, schema.InfluenceMode)
	require.Len(t, result.Details, 3)

	byID := make(map[string]schema.ComparisonDetail)
	for _, d := range result.Details {
		byID[d.NodeID] = d
	}

	assert.Equal(t, schema.ModifiedStatus, byID["both"].Status)
	assert.Equal(t, schema.RemovedStatus, byID["only-base"].Status)
	assert.Equal(t, schema.NewStatus, byID["only-target"].Status)

	assert.InDelta(t, 5.0, byID["both"].Delta, 1e-9)
	assert.Equal(t, 2, byID["both"].DeltaDegree)
	assert.InDelta(t, -5.0, byID["only-base"].Delta, 1e-9)
	assert.InDelta(t, 8.0, byID["only-target"].Delta, 1e-9)

	// Removed nodes keep their base label; new nodes use the target label.
	assert.Equal(t, "OnlyBase", byID["only-base"].Label)
	assert.Equal(t, "OnlyTarget", byID["only-target"].Label)

	assert.Equal(t, 1, result.Summary.TotalNewNodes)
	assert.Equal(t, 1, result.Summary.TotalRemovedNodes)
	assert.Equal(t, 1, result.Summary.TotalModifiedNodes)
	assert.InDelta(t, 8.0, result.Summary.NetScoreDelta, 1e-9) // +5 -5 +8
	assert.Equal(t, 2, result.Summary.NetDegreeDelta)
}

func TestCompareNodeResults_FiltersTinyDeltas(t *testing.T) {
	baseResults := []schema.NodeResult{
		{ID: "steady", ModeScore: 50.0},
		{ID: "moved", ModeScore: 50.0},
	}
	targetResults := []schema.NodeResult{
		{ID: "steady", ModeScore: 50.005}, // Below the significance cutoff
		{ID: "moved", ModeScore: 60.0},
	}

	result := compareNodeResults(baseResults, targetResults, 10, schema.InfluenceMode)

	require.Len(t, result.Details, 1)
	assert.Equal(t, "moved", result.Details[0].NodeID)

	// Filtered nodes still count toward the summary.
	assert.Equal(t, 2, result.Summary.TotalModifiedNodes)
}

func TestCompareNodeResults_CommunityMoves(t *testing.T) {
	baseResults := []schema.NodeResult{
		{ID: "mover", ModeScore: 10.0, Community: 0},
		{ID: "stayer", ModeScore: 20.0, Community: 1},
	}
	targetResults := []schema.NodeResult{
		{ID: "mover", ModeScore: 12.0, Community: 2},
		{ID: "stayer", ModeScore: 25.0, Community: 1},
	}

	result := compareNodeResults(baseResults, targetResults, 10, schema.BrokerMode)
	assert.Equal(t, 1, result.Summary.TotalCommunityMoves)

	byID := make(map[string]schema.ComparisonDetail)
	for _, d := range result.Details {
		byID[d.NodeID] = d
	}
	assert.Equal(t, 0, byID["mover"].BeforeCluster)
	assert.Equal(t, 2, byID["mover"].AfterCluster)
	assert.Equal(t, schema.BrokerMode, byID["mover"].Mode)
}

func TestCompareNodeResults_SortAndLimit(t *testing.T) {
	var baseResults, targetResults []schema.NodeResult
	for i := range 5 {
		id := fmt.Sprintf("node-%d", i)
		baseResults = append(baseResults, schema.NodeResult{ID: id, ModeScore: 50.0})
		targetResults = append(targetResults, schema.NodeResult{ID: id, ModeScore: 50.0 + float64(i+1)})
	}

	result := compareNodeResults(baseResults, targetResults, 3, schema.InfluenceMode)
	require.Len(t, result.Details, 3)

	// Largest absolute delta first.
	assert.Equal(t, "node-4", result.Details[0].NodeID)
	assert.Equal(t, "node-3", result.Details[1].NodeID)
	assert.Equal(t, "node-2", result.Details[2].NodeID)
}

func TestCompareNodeResults_TieBreaks(t *testing.T) {
	baseResults := []schema.NodeResult{
		{ID: "up", ModeScore: 10.0},
		{ID: "down", ModeScore: 20.0},
		{ID: "alpha", ModeScore: 10.0},
	}
	targetResults := []schema.NodeResult{
		{ID: "up", ModeScore: 15.0},    // +5
		{ID: "down", ModeScore: 15.0},  // -5
		{ID: "alpha", ModeScore: 15.0}, // +5
	}

	result := compareNodeResults(baseResults, targetResults, 10, schema.InfluenceMode)
	require.Len(t, result.Details, 3)

	// Same magnitude: positive deltas first, then id ascending.
	assert.Equal(t, "alpha", result.Details[0].NodeID)
	assert.Equal(t, "up", result.Details[1].NodeID)
	assert.Equal(t, "down", result.Details[2].NodeID)
}

func TestCompareNodeResults_Empty(t *testing.T) {
	result := compareNodeResults(nil, nil, 10, schema.InfluenceMode)
	assert.Empty(t, result.Details)
	assert.Zero(t, result.Summary.TotalNewNodes)
	assert.Zero(t, result.Summary.NetScoreDelta)
}

func TestDetermineStatus(t *testing.T) {
	assert.Equal(t, schema.NewStatus, determineStatus(false, true))
	assert.Equal(t, schema.ModifiedStatus, determineStatus(true, true))
	assert.Equal(t, schema.RemovedStatus, determineStatus(true, false))
}

package schema

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestGetPlainLabel verifies the label boundaries.
func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		name     string
		score    float64
		expected string
	}{
		{"critical boundary", 80.0, "Critical"},
		{"high boundary", 60.0, "High"},
		{"moderate boundary", 40.0, "Moderate"},
		{"low", 39.9, "Low"},
		{"zero", 0.0, "Low"},
		{"above critical", 95.5, "Critical"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetPlainLabel(tt.score))
		})
	}
}

// TestGetDefaultWeightsSumToOne ensures every mode's default weights sum to 1.0.
func TestGetDefaultWeightsSumToOne(t *testing.T) {
	for _, mode := range AllScoringModes {
		t.Run(string(mode), func(t *testing.T) {
			weights := GetDefaultWeights(mode)
			assert.NotEmpty(t, weights)

			var sum float64
			for _, w := range weights {
				sum += w
			}
			assert.LessOrEqual(t, math.Abs(sum-1.0), 1e-9)
		})
	}
}

// TestEnrichNodes verifies rank and label assignment.
func TestEnrichNodes(t *testing.T) {
	nodes := []NodeResult{
		{ID: "a", ModeScore: 90},
		{ID: "b", ModeScore: 45},
		{ID: "c", ModeScore: 10},
	}

	enriched := EnrichNodes(nodes)

	assert.Len(t, enriched, 3)
	assert.Equal(t, 1, enriched[0].Rank)
	assert.Equal(t, "Critical", enriched[0].Label)
	assert.Equal(t, 2, enriched[1].Rank)
	assert.Equal(t, "Moderate", enriched[1].Label)
	assert.Equal(t, 3, enriched[2].Rank)
	assert.Equal(t, "Low", enriched[2].Label)
}

// TestFormatMembers covers truncation behavior.
func TestFormatMembers(t *testing.T) {
	tests := []struct {
		name     string
		members  []string
		maxShown int
		expected string
	}{
		{"empty", nil, 3, ""},
		{"under limit", []string{"a", "b"}, 3, "a, b"},
		{"at limit", []string{"a", "b", "c"}, 3, "a, b, c"},
		{"over limit", []string{"a", "b", "c", "d", "e"}, 3, "a, b, c (+2 more)"},
		{"no limit", []string{"a", "b"}, 0, "a, b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatMembers(tt.members, tt.maxShown))
		})
	}
}

// TestDisplayName falls back to the id when the label is empty.
func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Alice", DisplayName(Node{ID: "u1", Label: "Alice"}))
	assert.Equal(t, "u1", DisplayName(Node{ID: "u1"}))
}

// TestNodeIndex builds a lookup keyed by id.
func TestNodeIndex(t *testing.T) {
	g := &GraphData{Nodes: []Node{{ID: "a", Label: "A"}, {ID: "b", Label: "B"}}}
	index := NodeIndex(g)
	assert.Len(t, index, 2)
	assert.Equal(t, "A", index["a"].Label)
}

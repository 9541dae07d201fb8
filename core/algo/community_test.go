package algo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestDetectCommunitiesNoEdges: every node lands in its own singleton
// community with modularity 0.
func TestDetectCommunitiesNoEdges(t *testing.T) {
	g := graphFrom([]string{"a", "b", "c", "d"}, nil)
	result := DetectCommunities(BuildAdjacency(g), NodeOrder(g))

	assert.Len(t, result.Communities, 4)
	assert.Zero(t, result.Modularity)
	for _, cluster := range result.Communities {
		assert.Len(t, cluster.Members, 1)
	}
	assert.Len(t, result.Assignments, 4)
}

// TestDetectCommunitiesTwoTriangles: the components separate cleanly and
// modularity is positive.
func TestDetectCommunitiesTwoTriangles(t *testing.T) {
	g := twoTriangles()
	result := DetectCommunities(BuildAdjacency(g), NodeOrder(g))

	assert.Len(t, result.Communities, 2)
	assert.Greater(t, result.Modularity, 0.0)

	// Members of the same triangle share an assignment.
	assert.Equal(t, result.Assignments["a"], result.Assignments["b"])
	assert.Equal(t, result.Assignments["b"], result.Assignments["c"])
	assert.Equal(t, result.Assignments["x"], result.Assignments["y"])
	assert.Equal(t, result.Assignments["y"], result.Assignments["z"])
	assert.NotEqual(t, result.Assignments["a"], result.Assignments["x"])
}

// TestDetectCommunitiesBarbell: two dense cliques joined by one edge
// still separate into two communities.
func TestDetectCommunitiesBarbell(t *testing.T) {
	g := graphFrom(
		[]string{"a", "b", "c", "x", "y", "z"},
		[][2]string{
			{"a", "b"}, {"b", "c"}, {"c", "a"},
			{"x", "y"}, {"y", "z"}, {"z", "x"},
			{"c", "x"}, // bridge
		},
	)
	result := DetectCommunities(BuildAdjacency(g), NodeOrder(g))

	assert.Len(t, result.Communities, 2)
	assert.Equal(t, result.Assignments["a"], result.Assignments["c"])
	assert.Equal(t, result.Assignments["x"], result.Assignments["z"])
	assert.NotEqual(t, result.Assignments["a"], result.Assignments["x"])
	assert.Greater(t, result.Modularity, 0.0)
}

// TestDetectCommunitiesScores: cluster scores reflect relative size.
func TestDetectCommunitiesScores(t *testing.T) {
	g := twoTriangles()
	result := DetectCommunities(BuildAdjacency(g), NodeOrder(g))

	for _, cluster := range result.Communities {
		assert.InDelta(t, 50.0, cluster.Score, 1e-9) // 3 of 6 nodes each
	}
}

// TestModularityPartitionQuality: the natural two-community split scores
// higher than everything-in-one.
func TestModularityPartitionQuality(t *testing.T) {
	g := twoTriangles()
	adj := BuildAdjacency(g)

	split := map[string]int{"a": 0, "b": 0, "c": 0, "x": 1, "y": 1, "z": 1}
	lumped := map[string]int{"a": 0, "b": 0, "c": 0, "x": 0, "y": 0, "z": 0}

	m2 := 0.0
	for _, neighbors := range adj {
		m2 += float64(len(neighbors))
	}

	assert.Greater(t, modularity(adj, split, m2), modularity(adj, lumped, m2))
}

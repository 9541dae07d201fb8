package algo

import (
	"testing"

	"github.com/mquintal/graphlens/schema"
	"github.com/stretchr/testify/assert"
)

// analyzeForBottlenecks computes the inputs FindBottlenecks needs.
func analyzeForBottlenecks(g *schema.GraphData) []schema.BottleneckResult {
	adj := BuildAdjacency(g)
	order := NodeOrder(g)
	return FindBottlenecks(
		schema.NodeIndex(g),
		order,
		Betweenness(adj, order),
		ClusteringCoefficients(adj),
		RawDegrees(adj),
	)
}

// TestFindBottlenecksBridgeTops: the cut vertex joining two cliques must
// rank first.
func TestFindBottlenecksBridgeTops(t *testing.T) {
	// Two triangles joined through the single node "m".
	g := graphFrom(
		[]string{"a", "b", "m", "x", "y"},
		[][2]string{
			{"a", "b"}, {"a", "m"}, {"b", "m"},
			{"x", "y"}, {"x", "m"}, {"y", "m"},
		},
	)
	results := analyzeForBottlenecks(g)

	assert.NotEmpty(t, results)
	assert.Equal(t, "m", results[0].NodeID)
	assert.Greater(t, results[0].Score, 0.0)
	assert.Equal(t, 4, results[0].Connections)
}

// TestFindBottlenecksMinimumCount: small graphs return every node rather
// than an empty top-5%.
func TestFindBottlenecksMinimumCount(t *testing.T) {
	g := pathGraph()
	results := analyzeForBottlenecks(g)

	assert.Len(t, results, 3) // min(5, n)
}

// TestFindBottlenecksOrdering: scores are descending.
func TestFindBottlenecksOrdering(t *testing.T) {
	g := graphFrom(
		[]string{"a", "b", "c", "d", "e", "f"},
		[][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}, {"d", "e"}, {"e", "f"}},
	)
	results := analyzeForBottlenecks(g)

	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
}

// TestFindBottlenecksSeverityLabels: severity uses the shared label scale.
func TestFindBottlenecksSeverityLabels(t *testing.T) {
	g := pathGraph()
	results := analyzeForBottlenecks(g)

	for _, r := range results {
		assert.Equal(t, schema.GetPlainLabel(r.Score), r.Severity)
	}
}

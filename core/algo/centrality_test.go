package algo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestClosenessIsolatedNode: no reachable neighbors means 0.
func TestClosenessIsolatedNode(t *testing.T) {
	g := graphFrom([]string{"a", "b", "lonely"}, [][2]string{{"a", "b"}})
	result := Closeness(BuildAdjacency(g), NodeOrder(g))

	assert.Zero(t, result["lonely"])
	assert.Greater(t, result["a"], 0.0)
}

// TestClosenessPath: the middle of a path is closest to everyone.
func TestClosenessPath(t *testing.T) {
	g := pathGraph()
	result := Closeness(BuildAdjacency(g), NodeOrder(g))

	// b reaches both at distance 1: (2/2)*(2/2) = 1.
	assert.InDelta(t, 1.0, result["b"], 1e-9)
	// a reaches b at 1 and c at 2: (2/2)*(2/3).
	assert.InDelta(t, 2.0/3.0, result["a"], 1e-9)
	assert.InDelta(t, 2.0/3.0, result["c"], 1e-9)
}

// TestClosenessTwoTriangles: disconnected components scale by the share
// of the graph each node can reach.
func TestClosenessTwoTriangles(t *testing.T) {
	g := twoTriangles()
	result := Closeness(BuildAdjacency(g), NodeOrder(g))

	// Each node reaches 2 of 5 others, both at distance 1: (2/5)*(2/2) = 0.4.
	for _, id := range []string{"a", "b", "c", "x", "y", "z"} {
		assert.InDelta(t, 0.4, result[id], 1e-9, "node %s", id)
	}
}

// TestClusteringTriangle: every neighbor pair is connected.
func TestClusteringTriangle(t *testing.T) {
	g := triangle()
	result := ClusteringCoefficients(BuildAdjacency(g))

	for id, coeff := range result {
		assert.InDelta(t, 1.0, coeff, 1e-9, "node %s", id)
	}
}

// TestClusteringFewNeighbors: fewer than 2 distinct neighbors means 0.
func TestClusteringFewNeighbors(t *testing.T) {
	tests := []struct {
		name  string
		edges [][2]string
		node  string
	}{
		{"isolated", nil, "a"},
		{"single neighbor", [][2]string{{"a", "b"}}, "a"},
		{"parallel edges one neighbor", [][2]string{{"a", "b"}, {"a", "b"}}, "a"},
		{"self loop only", [][2]string{{"a", "a"}}, "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := graphFrom([]string{"a", "b", "c"}, tt.edges)
			result := ClusteringCoefficients(BuildAdjacency(g))
			assert.Zero(t, result[tt.node])
		})
	}
}

// TestClusteringOpenWedge: the hub of a path sees no closed pair.
func TestClusteringOpenWedge(t *testing.T) {
	g := pathGraph()
	result := ClusteringCoefficients(BuildAdjacency(g))

	assert.Zero(t, result["b"])
}

// TestEigenvectorTriangle: a symmetric cycle gives equal weights with
// unit L2 norm.
func TestEigenvectorTriangle(t *testing.T) {
	g := triangle()
	result := Eigenvector(BuildAdjacency(g), NodeOrder(g))

	expected := 1.0 / math.Sqrt(3)
	for id, v := range result {
		assert.InDelta(t, expected, v, 1e-3, "node %s", id)
	}
}

// TestEigenvectorNoEdges: nothing to propagate along.
func TestEigenvectorNoEdges(t *testing.T) {
	g := graphFrom([]string{"a", "b", "c"}, nil)
	result := Eigenvector(BuildAdjacency(g), NodeOrder(g))

	for id, v := range result {
		assert.Zero(t, v, "node %s", id)
	}
}

// TestEigenvectorHubDominates: the star center accumulates the most weight.
func TestEigenvectorHubDominates(t *testing.T) {
	g := graphFrom(
		[]string{"hub", "s1", "s2", "s3"},
		[][2]string{{"hub", "s1"}, {"hub", "s2"}, {"hub", "s3"}},
	)
	result := Eigenvector(BuildAdjacency(g), NodeOrder(g))

	for _, spoke := range []string{"s1", "s2", "s3"} {
		assert.Greater(t, result["hub"], result[spoke])
	}
}

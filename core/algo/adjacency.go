// Package algo has pure graph algorithms for adjacency, centrality,
// community detection, and the derived heuristics built on them.
package algo

import (
	"errors"

	"github.com/mquintal/graphlens/schema"
)

// ErrEmptyGraph is returned when an analysis is requested for a snapshot
// with no nodes.
var ErrEmptyGraph = errors.New("graph has no nodes")

// BuildAdjacency converts a node/edge list into a symmetric adjacency list.
// For each edge, the target is appended to the source's neighbor list and
// vice versa. Duplicates are preserved for parallel edges and self-loops
// are not filtered, so degree counts reflect edge multiplicity.
func BuildAdjacency(g *schema.GraphData) schema.AdjacencyList {
	adj := make(schema.AdjacencyList, len(g.Nodes))
	for _, n := range g.Nodes {
		adj[n.ID] = []string{}
	}
	for _, e := range g.Edges {
		adj[e.Source] = append(adj[e.Source], e.Target)
		adj[e.Target] = append(adj[e.Target], e.Source)
	}
	return adj
}

// NodeOrder returns the node ids in snapshot order. All per-node passes
// iterate in this order so results are deterministic.
func NodeOrder(g *schema.GraphData) []string {
	order := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		order[i] = n.ID
	}
	return order
}

// RawDegrees returns the unnormalized neighbor count per node, parallel
// edges included.
func RawDegrees(adj schema.AdjacencyList) map[string]int {
	degrees := make(map[string]int, len(adj))
	for id, neighbors := range adj {
		degrees[id] = len(neighbors)
	}
	return degrees
}

// DegreeCentrality returns the neighbor count of each node normalized by
// (n-1). For a single-node graph every value is 0.
func DegreeCentrality(adj schema.AdjacencyList) map[string]float64 {
	n := len(adj)
	result := make(map[string]float64, n)
	if n < 2 {
		for id := range adj {
			result[id] = 0
		}
		return result
	}
	for id, neighbors := range adj {
		result[id] = float64(len(neighbors)) / float64(n-1)
	}
	return result
}

// NeighborSets returns the set of unique neighbors per node, self-loops
// excluded. Used for clustering, similarity, and opportunity checks where
// membership matters and multiplicity does not.
func NeighborSets(adj schema.AdjacencyList) map[string]map[string]struct{} {
	sets := make(map[string]map[string]struct{}, len(adj))
	for id, neighbors := range adj {
		set := make(map[string]struct{}, len(neighbors))
		for _, nb := range neighbors {
			if nb == id {
				continue
			}
			set[nb] = struct{}{}
		}
		sets[id] = set
	}
	return sets
}

// bfsDistances runs a breadth-first search from the source over the
// adjacency list and returns hop distances for every reachable node,
// including the source itself at distance 0.
func bfsDistances(adj schema.AdjacencyList, source string) map[string]int {
	dist := map[string]int{source: 0}
	queue := []string{source}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, w := range adj[v] {
			if _, seen := dist[w]; !seen {
				dist[w] = dist[v] + 1
				queue = append(queue, w)
			}
		}
	}
	return dist
}

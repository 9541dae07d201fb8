package algo

import "github.com/mquintal/graphlens/schema"

// Summarize computes the whole-graph scalars. Modularity comes from the
// supplied community structure; everything else derives from the
// adjacency list:
//
//   - density: 2m / n(n-1), parallel edges counted
//   - connectedness: share of nodes in the largest component
//   - centralization: Freeman degree centralization
//   - efficiency: mean inverse shortest-path distance over ordered pairs
//   - resilience: 1 - articulation-point fraction
//   - diameter: longest shortest path observed in any component
func Summarize(g *schema.GraphData, adj schema.AdjacencyList, order []string, communities schema.CommunityStructure) schema.GraphSummary {
	n := len(order)
	summary := schema.GraphSummary{
		NodeCount:  n,
		EdgeCount:  len(g.Edges),
		Modularity: communities.Modularity,
		Status:     schema.ComputedStatus,
	}
	if n == 0 {
		return summary
	}

	if n > 1 {
		summary.Density = 2 * float64(len(g.Edges)) / float64(n*(n-1))
	}

	largest, components := componentSizes(adj, order)
	summary.Components = components
	summary.Connectedness = float64(largest) / float64(n)

	summary.Centralization = degreeCentralization(adj, n)
	summary.Efficiency, summary.Diameter = efficiencyAndDiameter(adj, order, n)

	articulations := ArticulationPoints(adj, order)
	summary.Resilience = 1 - float64(len(articulations))/float64(n)

	return summary
}

// componentSizes returns the largest connected-component size and the
// number of components.
func componentSizes(adj schema.AdjacencyList, order []string) (largest, count int) {
	visited := make(map[string]struct{}, len(order))
	for _, id := range order {
		if _, seen := visited[id]; seen {
			continue
		}
		count++
		size := 0
		for reached := range bfsDistances(adj, id) {
			if _, seen := visited[reached]; !seen {
				visited[reached] = struct{}{}
				size++
			}
		}
		if size > largest {
			largest = size
		}
	}
	return largest, count
}

// degreeCentralization computes Freeman centralization over normalized
// degree: how star-like the graph is, 1 for a perfect star, 0 for a
// degree-regular graph. Undefined below 3 nodes.
func degreeCentralization(adj schema.AdjacencyList, n int) float64 {
	if n < 3 {
		return 0
	}
	centrality := DegreeCentrality(adj)
	maxC := 0.0
	for _, c := range centrality {
		if c > maxC {
			maxC = c
		}
	}
	sum := 0.0
	for _, c := range centrality {
		sum += maxC - c
	}
	return sum / float64(n-2)
}

// efficiencyAndDiameter runs a BFS per node, averaging inverse distances
// over all ordered pairs (unreachable pairs contribute 0) and tracking the
// longest shortest path seen.
func efficiencyAndDiameter(adj schema.AdjacencyList, order []string, n int) (float64, int) {
	if n < 2 {
		return 0, 0
	}
	sum := 0.0
	diameter := 0
	for _, id := range order {
		for target, d := range bfsDistances(adj, id) {
			if target == id || d == 0 {
				continue
			}
			sum += 1 / float64(d)
			if d > diameter {
				diameter = d
			}
		}
	}
	return sum / float64(n*(n-1)), diameter
}

// ArticulationPoints finds cut vertices via DFS low-link values. Removing
// any of these nodes disconnects its component. Parallel edges are
// treated as a single edge for this purpose.
func ArticulationPoints(adj schema.AdjacencyList, order []string) []string {
	sets := NeighborSets(adj)
	disc := make(map[string]int, len(order))
	low := make(map[string]int, len(order))
	parent := make(map[string]string, len(order))
	cut := make(map[string]struct{})
	timer := 0

	var dfs func(v string)
	dfs = func(v string) {
		timer++
		disc[v] = timer
		low[v] = timer
		children := 0
		_, hasParent := parent[v]

		for w := range sets[v] {
			if _, seen := disc[w]; !seen {
				parent[w] = v
				children++
				dfs(w)
				if low[w] < low[v] {
					low[v] = low[w]
				}
				if hasParent && low[w] >= disc[v] {
					cut[v] = struct{}{}
				}
			} else if w != parent[v] && disc[w] < low[v] {
				low[v] = disc[w]
			}
		}

		// A DFS root is a cut vertex iff it has two or more DFS children.
		if !hasParent && children > 1 {
			cut[v] = struct{}{}
		}
	}

	for _, id := range order {
		if _, seen := disc[id]; !seen {
			dfs(id)
		}
	}

	result := make([]string, 0, len(cut))
	for _, id := range order {
		if _, ok := cut[id]; ok {
			result = append(result, id)
		}
	}
	return result
}

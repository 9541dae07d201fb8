package algo

import (
	"math"

	"github.com/mquintal/graphlens/schema"
)

// Eigenvector iteration limits. Iteration stops when the total absolute
// change across all nodes drops below eigenTolerance.
const (
	eigenMaxIterations = 100
	eigenTolerance     = 1e-4
)

// Closeness computes closeness centrality for every node: the reciprocal
// relationship between the reachable-node count and the summed shortest-path
// distances from a BFS per source. On disconnected graphs the value uses the
// Wasserman-Faust form C(v) = (r/(n-1)) * (r/sum), which scales each node's
// intra-component closeness by the fraction of the graph it can reach.
// An isolated node scores 0.
func Closeness(adj schema.AdjacencyList, order []string) map[string]float64 {
	result := make(map[string]float64, len(adj))
	for _, id := range order {
		result[id] = ClosenessFromSource(adj, id)
	}
	return result
}

// ClosenessFromSource computes the closeness centrality of a single node.
func ClosenessFromSource(adj schema.AdjacencyList, source string) float64 {
	n := len(adj)
	if n < 2 {
		return 0
	}

	dist := bfsDistances(adj, source)
	reachable := 0
	sum := 0
	for id, d := range dist {
		if id == source {
			continue
		}
		reachable++
		sum += d
	}
	if reachable == 0 || sum == 0 {
		return 0
	}

	r := float64(reachable)
	return (r / float64(n-1)) * (r / float64(sum))
}

// ClusteringCoefficients computes the local clustering coefficient per
// node: the fraction of its unique neighbor pairs that are themselves
// connected. Nodes with fewer than 2 distinct neighbors score 0.
func ClusteringCoefficients(adj schema.AdjacencyList) map[string]float64 {
	sets := NeighborSets(adj)
	result := make(map[string]float64, len(adj))

	for id, set := range sets {
		if len(set) < 2 {
			result[id] = 0
			continue
		}

		neighbors := make([]string, 0, len(set))
		for nb := range set {
			neighbors = append(neighbors, nb)
		}

		connected := 0
		pairs := 0
		for i := 0; i < len(neighbors); i++ {
			for j := i + 1; j < len(neighbors); j++ {
				pairs++
				if _, ok := sets[neighbors[i]][neighbors[j]]; ok {
					connected++
				}
			}
		}
		result[id] = float64(connected) / float64(pairs)
	}

	return result
}

// Eigenvector computes eigenvector centrality by power iteration: start
// from uniform weights, repeatedly propagate each node's weight to its
// neighbors, and L2-normalize. Parallel edges propagate proportionally
// more weight. A graph with no edges yields all zeros.
func Eigenvector(adj schema.AdjacencyList, order []string) map[string]float64 {
	n := len(adj)
	result := make(map[string]float64, n)
	if n == 0 {
		return result
	}

	current := make(map[string]float64, n)
	for _, id := range order {
		current[id] = 1.0 / float64(n)
	}

	for range eigenMaxIterations {
		next := make(map[string]float64, n)
		for _, id := range order {
			for _, nb := range adj[id] {
				next[nb] += current[id]
			}
		}

		var norm float64
		for _, v := range next {
			norm += v * v
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			// No edges to propagate along.
			for _, id := range order {
				result[id] = 0
			}
			return result
		}

		var change float64
		for _, id := range order {
			scaled := next[id] / norm
			change += math.Abs(scaled - current[id])
			current[id] = scaled
		}
		if change < eigenTolerance {
			break
		}
	}

	for _, id := range order {
		result[id] = current[id]
	}
	return result
}

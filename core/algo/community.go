package algo

import (
	"fmt"
	"sort"

	"github.com/mquintal/graphlens/schema"
)

// moveGainEpsilon guards against oscillating on floating-point noise when
// comparing candidate community moves.
const moveGainEpsilon = 1e-12

// DetectCommunities assigns nodes to communities by greedy modularity
// maximization (single-level Louvain, no hierarchical contraction phase).
// Each node starts in its own community; passes over all nodes move each
// node into the neighboring community with the best modularity gain,
// evaluated with the incremental delta formula rather than a full
// recomputation. Passes repeat until none produces a move.
//
// A graph with no edges yields singleton communities and modularity 0.
func DetectCommunities(adj schema.AdjacencyList, order []string) schema.CommunityStructure {
	comm := make(map[string]int, len(order))
	for i, id := range order {
		comm[id] = i
	}

	// m2 is twice the total edge weight: every undirected edge appears in
	// the adjacency list once per direction.
	m2 := 0.0
	k := make(map[string]float64, len(order))
	for id, neighbors := range adj {
		k[id] = float64(len(neighbors))
		m2 += k[id]
	}

	if m2 == 0 {
		return buildStructure(adj, order, comm, 0)
	}

	sumTot := make([]float64, len(order))
	for id, c := range comm {
		sumTot[c] += k[id]
	}

	for moved := true; moved; {
		moved = false
		for _, v := range order {
			cur := comm[v]

			// Edge weight from v to each adjacent community. Self-loops are
			// excluded: they travel with v no matter where it moves.
			neighborWeights := make(map[int]float64)
			for _, w := range adj[v] {
				if w == v {
					continue
				}
				neighborWeights[comm[w]]++
			}

			// Take v out of its community before evaluating candidates.
			sumTot[cur] -= k[v]

			best := cur
			bestGain := neighborWeights[cur] - sumTot[cur]*k[v]/m2
			for c, w := range neighborWeights {
				if c == cur {
					continue
				}
				gain := w - sumTot[c]*k[v]/m2
				if gain > bestGain+moveGainEpsilon {
					best = c
					bestGain = gain
				}
			}

			sumTot[best] += k[v]
			if best != cur {
				comm[v] = best
				moved = true
			}
		}
	}

	return buildStructure(adj, order, comm, modularity(adj, comm, m2))
}

// modularity computes Q for a community assignment: the share of edge
// weight inside communities minus the expected share under the degree
// distribution.
func modularity(adj schema.AdjacencyList, comm map[string]int, m2 float64) float64 {
	internal := 0.0
	sumTot := make(map[int]float64)
	for id, neighbors := range adj {
		sumTot[comm[id]] += float64(len(neighbors))
		for _, w := range neighbors {
			if comm[w] == comm[id] {
				internal++
			}
		}
	}

	q := internal / m2
	for _, tot := range sumTot {
		frac := tot / m2
		q -= frac * frac
	}
	return q
}

// buildStructure converts a raw assignment into the result shape:
// clusters ordered by size descending with size-based scores, plus a
// node-to-cluster index.
func buildStructure(adj schema.AdjacencyList, order []string, comm map[string]int, q float64) schema.CommunityStructure {
	grouped := make(map[int][]string)
	for _, id := range order {
		grouped[comm[id]] = append(grouped[comm[id]], id)
	}

	clusters := make([]schema.Cluster, 0, len(grouped))
	for _, members := range grouped {
		clusters = append(clusters, schema.Cluster{Members: members})
	}
	sort.Slice(clusters, func(i, j int) bool {
		if len(clusters[i].Members) != len(clusters[j].Members) {
			return len(clusters[i].Members) > len(clusters[j].Members)
		}
		return clusters[i].Members[0] < clusters[j].Members[0]
	})

	total := len(adj)
	assignments := make(map[string]int, total)
	for i := range clusters {
		clusters[i].ID = fmt.Sprintf("c%d", i)
		if total > 0 {
			clusters[i].Score = 100 * float64(len(clusters[i].Members)) / float64(total)
		}
		for _, id := range clusters[i].Members {
			assignments[id] = i
		}
	}

	return schema.CommunityStructure{
		Communities: clusters,
		Assignments: assignments,
		Modularity:  q,
		Status:      schema.ComputedStatus,
	}
}

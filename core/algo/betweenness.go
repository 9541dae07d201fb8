package algo

import "github.com/mquintal/graphlens/schema"

// Betweenness computes normalized betweenness centrality for all nodes
// using Brandes' algorithm: a BFS phase per source to count shortest paths,
// then back-propagation of pair dependencies. Every unordered node pair is
// visited twice (once per endpoint), which the normalization accounts for.
//
// The per-pair work makes this O(n * (n + e)); acceptable for the small
// collaboration graphs this tool targets (tens to low hundreds of nodes).
func Betweenness(adj schema.AdjacencyList, order []string) map[string]float64 {
	cb := make(map[string]float64, len(adj))
	for id := range adj {
		cb[id] = 0
	}
	for _, s := range order {
		MergeBetweenness(cb, BetweennessFromSource(adj, s))
	}
	return NormalizeBetweenness(cb, len(adj))
}

// BetweennessFromSource runs the single-source portion of Brandes'
// algorithm and returns the raw dependency contributions from that source.
// Sources are independent, so callers may fan these out across workers and
// merge the partial maps.
func BetweennessFromSource(adj schema.AdjacencyList, s string) map[string]float64 {
	stack, sigma, pred := brandesBFS(adj, s)
	return brandesAccumulate(s, stack, sigma, pred)
}

// MergeBetweenness adds one source's partial contributions into cb.
func MergeBetweenness(cb, partial map[string]float64) {
	for id, v := range partial {
		cb[id] += v
	}
}

// NormalizeBetweenness rescales raw pair dependencies to [0,1]. The factor
// (n-1)(n-2) folds together the undirected pair normalization (n-1)(n-2)/2
// and the double-counting of each pair from both endpoints.
func NormalizeBetweenness(cb map[string]float64, n int) map[string]float64 {
	if n < 3 {
		for id := range cb {
			cb[id] = 0
		}
		return cb
	}
	factor := float64((n - 1) * (n - 2))
	for id := range cb {
		cb[id] /= factor
	}
	return cb
}

// brandesBFS performs the BFS phase of Brandes' algorithm from source s.
// It returns the visit stack (reverse BFS order for back-propagation),
// shortest-path counts (sigma), and predecessor lists (pred). Parallel
// edges contribute multiple shortest paths, consistent with the
// multiplicity-preserving adjacency list.
func brandesBFS(adj schema.AdjacencyList, s string) ([]string, map[string]float64, map[string][]string) {
	n := len(adj)
	stack := make([]string, 0, n)
	pred := make(map[string][]string, n)
	sigma := map[string]float64{s: 1}
	dist := map[string]int{s: 0}

	queue := []string{s}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		stack = append(stack, v)

		for _, w := range adj[v] {
			if _, seen := dist[w]; !seen {
				dist[w] = dist[v] + 1
				queue = append(queue, w)
			}
			if dist[w] == dist[v]+1 {
				sigma[w] += sigma[v]
				pred[w] = append(pred[w], v)
			}
		}
	}

	return stack, sigma, pred
}

// brandesAccumulate performs the back-propagation phase of Brandes'
// algorithm, returning the pair-dependency values contributed by s.
func brandesAccumulate(s string, stack []string, sigma map[string]float64, pred map[string][]string) map[string]float64 {
	delta := make(map[string]float64, len(stack))
	contrib := make(map[string]float64, len(stack))

	for i := len(stack) - 1; i >= 0; i-- {
		w := stack[i]
		for _, v := range pred[w] {
			delta[v] += (sigma[v] / sigma[w]) * (1 + delta[w])
		}
		if w != s {
			contrib[w] = delta[w]
		}
	}

	return contrib
}

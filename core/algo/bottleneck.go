package algo

import (
	"sort"

	"github.com/mquintal/graphlens/schema"
)

// Bottleneck selection: the top bottleneckShare of nodes are returned,
// with a floor of bottleneckMinCount (capped at the graph size).
const (
	bottleneckShare    = 0.05
	bottleneckMinCount = 5
)

// FindBottlenecks ranks nodes by how much they choke information flow:
// high betweenness, low clustering around them, and few direct
// connections to absorb the load. Score = betweenness * (1 - clustering)
// / (degree + 1), scaled to 0-100 for labeling.
func FindBottlenecks(index map[string]schema.Node, order []string, betweenness, clustering map[string]float64, rawDegrees map[string]int) []schema.BottleneckResult {
	results := make([]schema.BottleneckResult, 0, len(order))
	for _, id := range order {
		b := betweenness[id]
		c := clustering[id]
		deg := rawDegrees[id]
		score := 100 * b * (1 - c) / float64(deg+1)

		results = append(results, schema.BottleneckResult{
			NodeID:      id,
			Label:       schema.DisplayName(index[id]),
			Score:       score,
			Severity:    schema.GetPlainLabel(score),
			Connections: deg,
			Betweenness: b,
			Clustering:  c,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].NodeID < results[j].NodeID
	})

	count := int(float64(len(results)) * bottleneckShare)
	if count < bottleneckMinCount {
		count = bottleneckMinCount
	}
	if count > len(results) {
		count = len(results)
	}
	return results[:count]
}

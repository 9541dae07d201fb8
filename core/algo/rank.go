package algo

import (
	"sort"

	"github.com/mquintal/graphlens/schema"
)

// RankNodes sorts nodes by their mode score in descending order and
// returns the top 'limit' nodes. If limit is greater than the number of
// nodes, all nodes are returned in sorted order. Ties break on id so
// rankings are stable across runs.
func RankNodes(nodes []schema.NodeResult, limit int) []schema.NodeResult {
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].ModeScore != nodes[j].ModeScore {
			return nodes[i].ModeScore > nodes[j].ModeScore
		}
		return nodes[i].ID < nodes[j].ID
	})
	if len(nodes) > limit {
		return nodes[:limit]
	}
	return nodes
}

// RankClusters sorts clusters by their size-based score in descending
// order and returns the top 'limit' clusters.
func RankClusters(clusters []schema.Cluster, limit int) []schema.Cluster {
	sort.Slice(clusters, func(i, j int) bool {
		if clusters[i].Score != clusters[j].Score {
			return clusters[i].Score > clusters[j].Score
		}
		return clusters[i].ID < clusters[j].ID
	})
	if len(clusters) > limit {
		return clusters[:limit]
	}
	return clusters
}

package algo

import (
	"fmt"
	"sort"

	"github.com/mquintal/graphlens/schema"
)

// Opportunity heuristics: pairs sharing at least minSharedNeighbors
// collaborators, or exceeding jaccardThreshold neighbor similarity, are
// suggested when not already connected. The merged list keeps the top
// opportunityLimit by score.
const (
	minSharedNeighbors = 2
	jaccardThreshold   = 0.3
	opportunityLimit   = 20
)

// FindOpportunities merges three independent signal sources into a ranked
// list of suggested connections: shared-neighbor pairs, cross-community
// bridge pairs, and high neighbor-similarity pairs. These are heuristics,
// not guaranteed-optimal recommendations.
func FindOpportunities(index map[string]schema.Node, order []string, adj schema.AdjacencyList, communities schema.CommunityStructure) []schema.OpportunityResult {
	sets := NeighborSets(adj)
	merged := make(map[[2]string]schema.OpportunityResult)

	collect := func(o schema.OpportunityResult) {
		key := pairKey(o.NodeA, o.NodeB)
		if existing, ok := merged[key]; ok && existing.Score >= o.Score {
			return
		}
		merged[key] = o
	}

	sharedNeighborPairs(index, order, sets, collect)
	communityBridgePairs(index, adj, sets, communities, collect)
	similarNeighborPairs(index, order, sets, collect)

	results := make([]schema.OpportunityResult, 0, len(merged))
	for _, o := range merged {
		results = append(results, o)
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		if results[i].NodeA != results[j].NodeA {
			return results[i].NodeA < results[j].NodeA
		}
		return results[i].NodeB < results[j].NodeB
	})
	if len(results) > opportunityLimit {
		results = results[:opportunityLimit]
	}
	return results
}

// sharedNeighborPairs suggests node pairs with at least minSharedNeighbors
// common neighbors that are not directly connected.
func sharedNeighborPairs(index map[string]schema.Node, order []string, sets map[string]map[string]struct{}, collect func(schema.OpportunityResult)) {
	for i := 0; i < len(order); i++ {
		for j := i + 1; j < len(order); j++ {
			a, b := order[i], order[j]
			if connected(sets, a, b) {
				continue
			}
			common := countCommon(sets[a], sets[b])
			if common < minSharedNeighbors {
				continue
			}
			collect(schema.OpportunityResult{
				NodeA:  a,
				NodeB:  b,
				Score:  100 * float64(common) / float64(common+minSharedNeighbors),
				Reason: fmt.Sprintf("%s and %s share %d collaborators but are not connected", schema.DisplayName(index[a]), schema.DisplayName(index[b]), common),
				Signal: schema.SharedNeighborSignal,
			})
		}
	}
}

// communityBridgePairs suggests connecting the best-connected member of
// each community pair when no edge between them exists yet.
func communityBridgePairs(index map[string]schema.Node, adj schema.AdjacencyList, sets map[string]map[string]struct{}, communities schema.CommunityStructure, collect func(schema.OpportunityResult)) {
	n := len(adj)
	if n < 2 {
		return
	}

	anchors := make([]string, len(communities.Communities))
	for i, cluster := range communities.Communities {
		best := ""
		bestDeg := -1
		for _, id := range cluster.Members {
			if deg := len(adj[id]); deg > bestDeg {
				best = id
				bestDeg = deg
			}
		}
		anchors[i] = best
	}

	for i := 0; i < len(anchors); i++ {
		for j := i + 1; j < len(anchors); j++ {
			a, b := anchors[i], anchors[j]
			if a == "" || b == "" || connected(sets, a, b) {
				continue
			}
			meanDegree := float64(len(adj[a])+len(adj[b])) / (2 * float64(n-1))
			collect(schema.OpportunityResult{
				NodeA:  a,
				NodeB:  b,
				Score:  100 * meanDegree,
				Reason: fmt.Sprintf("%s and %s would bridge communities %s and %s", schema.DisplayName(index[a]), schema.DisplayName(index[b]), communities.Communities[i].ID, communities.Communities[j].ID),
				Signal: schema.CommunityBridgeSignal,
			})
		}
	}
}

// similarNeighborPairs suggests unconnected pairs whose Jaccard neighbor
// similarity exceeds jaccardThreshold.
func similarNeighborPairs(index map[string]schema.Node, order []string, sets map[string]map[string]struct{}, collect func(schema.OpportunityResult)) {
	for i := 0; i < len(order); i++ {
		for j := i + 1; j < len(order); j++ {
			a, b := order[i], order[j]
			if connected(sets, a, b) {
				continue
			}
			sim := Jaccard(sets[a], sets[b])
			if sim <= jaccardThreshold {
				continue
			}
			collect(schema.OpportunityResult{
				NodeA:  a,
				NodeB:  b,
				Score:  100 * sim,
				Reason: fmt.Sprintf("%s and %s have %.0f%% neighbor overlap but are not connected", schema.DisplayName(index[a]), schema.DisplayName(index[b]), 100*sim),
				Signal: schema.SimilarNeighborSignal,
			})
		}
	}
}

// Jaccard returns the neighbor-set similarity |A∩B| / |A∪B|, or 0 when
// both sets are empty.
func Jaccard(a, b map[string]struct{}) float64 {
	common := countCommon(a, b)
	union := len(a) + len(b) - common
	if union == 0 {
		return 0
	}
	return float64(common) / float64(union)
}

func countCommon(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	common := 0
	for id := range a {
		if _, ok := b[id]; ok {
			common++
		}
	}
	return common
}

func connected(sets map[string]map[string]struct{}, a, b string) bool {
	_, ok := sets[a][b]
	return ok
}

func pairKey(a, b string) [2]string {
	if b < a {
		a, b = b, a
	}
	return [2]string{a, b}
}

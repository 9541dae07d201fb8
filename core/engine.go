// Package core has core logic for analysis, scoring and ranking.
package core

import (
	"context"
	"sync"

	"github.com/mquintal/graphlens/core/algo"
	"github.com/mquintal/graphlens/internal/contract"
	"github.com/mquintal/graphlens/schema"
)

// Engine owns the state of a single graph analysis session: the parsed
// snapshot, its adjacency list (built once), the cache manager handle and
// the compute strategy. There is no process-wide engine state; each
// command constructs its own Engine.
type Engine struct {
	cfg      *contract.Config
	source   contract.GraphSource
	mgr      contract.CacheManager
	strategy contract.ComputeStrategy

	loadOnce sync.Once
	loadErr  error
	graph    *schema.GraphData
	index    map[string]schema.Node
	adj      schema.AdjacencyList
	order    []string
	hash     string
}

// NewEngine creates an Engine for the given config, graph source and cache
// manager. The compute strategy is selected from cfg.Workers.
func NewEngine(cfg *contract.Config, source contract.GraphSource, mgr contract.CacheManager) *Engine {
	return &Engine{
		cfg:      cfg,
		source:   source,
		mgr:      mgr,
		strategy: strategyForConfig(cfg),
	}
}

// load parses the snapshot and builds the adjacency list exactly once.
func (e *Engine) load(ctx context.Context) error {
	e.loadOnce.Do(func() {
		graph, err := e.source.Load(ctx)
		if err != nil {
			e.loadErr = err
			return
		}
		hash, err := e.source.Hash(ctx)
		if err != nil {
			e.loadErr = err
			return
		}
		e.graph = graph
		e.index = schema.NodeIndex(graph)
		e.adj = algo.BuildAdjacency(graph)
		e.order = algo.NodeOrder(graph)
		e.hash = hash
	})
	return e.loadErr
}

// Graph returns the loaded snapshot. It is nil before the first task runs.
func (e *Engine) Graph() *schema.GraphData {
	return e.graph
}

// AnalyzeNodes computes per-node centrality metrics, community membership
// and composite scores for every node in the snapshot. Results are cached
// keyed on the snapshot hash and scoring parameters.
func (e *Engine) AnalyzeNodes(ctx context.Context) (*schema.NodeAnalysisOutput, error) {
	if err := e.load(ctx); err != nil {
		return nil, err
	}

	store := e.resultStore()
	key := generateCacheKey("nodes", e.hash, e.cfg)
	if hit := checkCacheHit[schema.NodeAnalysisOutput](store, key); hit != nil {
		hit.Status = cacheHitStatus(hit.Status)
		hit.Communities.Status = cacheHitStatus(hit.Communities.Status)
		return hit, nil
	}

	analysisID := e.beginTracking()

	metrics, rawDegrees, err := e.computeMetrics(ctx)
	if err != nil {
		return nil, err
	}
	communities := e.detectWithFallback()
	results := e.buildNodeResults(metrics, rawDegrees, communities)

	e.recordTracking(analysisID, results)

	status := schema.ComputedStatus
	if communities.Status == schema.DegradedStatus {
		status = schema.DegradedStatus
	}
	out := &schema.NodeAnalysisOutput{
		NodeResults: results,
		Communities: communities,
		Status:      status,
	}
	storeInCache(store, key, out)
	return out, nil
}

// Communities runs community detection alone, with caching.
func (e *Engine) Communities(ctx context.Context) (schema.CommunityStructure, error) {
	if err := e.load(ctx); err != nil {
		return schema.CommunityStructure{}, err
	}

	store := e.resultStore()
	key := generateCacheKey("communities", e.hash, e.cfg)
	if hit := checkCacheHit[schema.CommunityStructure](store, key); hit != nil {
		hit.Status = cacheHitStatus(hit.Status)
		return *hit, nil
	}

	communities := e.detectWithFallback()
	storeInCache(store, key, &communities)
	return communities, nil
}

// Bottlenecks identifies nodes whose position concentrates shortest paths.
func (e *Engine) Bottlenecks(ctx context.Context) ([]schema.BottleneckResult, schema.ResultStatus, error) {
	if err := e.load(ctx); err != nil {
		return nil, "", err
	}

	store := e.resultStore()
	key := generateCacheKey("bottlenecks", e.hash, e.cfg)
	type envelope struct {
		Results []schema.BottleneckResult `json:"results"`
	}
	if hit := checkCacheHit[envelope](store, key); hit != nil {
		return hit.Results, schema.CachedStatus, nil
	}

	betweenness, err := e.computeBetweenness(ctx)
	if err != nil {
		return nil, "", err
	}
	clustering := algo.ClusteringCoefficients(e.adj)
	rawDegrees := algo.RawDegrees(e.adj)
	results := algo.FindBottlenecks(e.index, e.order, betweenness, clustering, rawDegrees)

	storeInCache(store, key, &envelope{Results: results})
	return results, schema.ComputedStatus, nil
}

// Opportunities suggests missing connections between node pairs.
func (e *Engine) Opportunities(ctx context.Context) ([]schema.OpportunityResult, schema.ResultStatus, error) {
	if err := e.load(ctx); err != nil {
		return nil, "", err
	}

	store := e.resultStore()
	key := generateCacheKey("opportunities", e.hash, e.cfg)
	type envelope struct {
		Results []schema.OpportunityResult `json:"results"`
	}
	if hit := checkCacheHit[envelope](store, key); hit != nil {
		return hit.Results, schema.CachedStatus, nil
	}

	communities := e.detectWithFallback()
	results := algo.FindOpportunities(e.index, e.order, e.adj, communities)

	storeInCache(store, key, &envelope{Results: results})
	return results, schema.ComputedStatus, nil
}

// Summary computes the whole-graph scalar metrics.
func (e *Engine) Summary(ctx context.Context) (schema.GraphSummary, error) {
	if err := e.load(ctx); err != nil {
		return schema.GraphSummary{}, err
	}

	store := e.resultStore()
	key := generateCacheKey("summary", e.hash, e.cfg)
	if hit := checkCacheHit[schema.GraphSummary](store, key); hit != nil {
		hit.Status = cacheHitStatus(hit.Status)
		return *hit, nil
	}

	communities := e.detectWithFallback()
	summary := algo.Summarize(e.graph, e.adj, e.order, communities)
	if communities.Status == schema.DegradedStatus {
		summary.Status = schema.DegradedStatus
	}

	storeInCache(store, key, &summary)
	return summary, nil
}

// resultStore returns the configured result cache store, or nil when
// caching is disabled.
func (e *Engine) resultStore() contract.CacheStore {
	if e.mgr == nil {
		return nil
	}
	return e.mgr.GetResultStore()
}

// detectWithFallback runs community detection. Detection cannot panic, but
// an empty structure on a non-empty graph means the pass produced nothing
// usable; in that case every node is folded into a single cluster and the
// result is marked degraded rather than silently dropped.
func (e *Engine) detectWithFallback() schema.CommunityStructure {
	communities := algo.DetectCommunities(e.adj, e.order)
	if len(communities.Communities) > 0 || len(e.order) == 0 {
		return communities
	}

	members := make([]string, len(e.order))
	copy(members, e.order)
	assignments := make(map[string]int, len(e.order))
	for _, id := range e.order {
		assignments[id] = 0
	}
	return schema.CommunityStructure{
		Communities: []schema.Cluster{{ID: "community-0", Members: members, Score: 100}},
		Assignments: assignments,
		Modularity:  0,
		Status:      schema.DegradedStatus,
	}
}

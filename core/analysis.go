package core

import (
	"context"
	"sync"
	"time"

	"github.com/mquintal/graphlens/core/algo"
	"github.com/mquintal/graphlens/internal/contract"
	"github.com/mquintal/graphlens/schema"
)

// computeMetrics computes every per-node centrality measure for the loaded
// graph. The per-source BFS passes (betweenness, closeness) are scheduled
// through the engine's compute strategy; the remaining measures are cheap
// single passes.
func (e *Engine) computeMetrics(ctx context.Context) (map[string]schema.NodeMetrics, map[string]int, error) {
	degree := algo.DegreeCentrality(e.adj)
	rawDegrees := algo.RawDegrees(e.adj)
	clustering := algo.ClusteringCoefficients(e.adj)
	eigenvector := algo.Eigenvector(e.adj, e.order)

	betweenness, err := e.computeBetweenness(ctx)
	if err != nil {
		return nil, nil, err
	}

	closeness, err := e.computeCloseness(ctx)
	if err != nil {
		return nil, nil, err
	}

	metrics := make(map[string]schema.NodeMetrics, len(e.order))
	for _, id := range e.order {
		metrics[id] = schema.NodeMetrics{
			Degree:      degree[id],
			Betweenness: betweenness[id],
			Closeness:   closeness[id],
			Clustering:  clustering[id],
			Eigenvector: eigenvector[id],
		}
	}
	return metrics, rawDegrees, nil
}

// computeBetweenness runs the Brandes per-source passes through the
// compute strategy and merges the partial sums under a mutex. Each source
// pass is independent, so only the merge needs synchronization.
func (e *Engine) computeBetweenness(ctx context.Context) (map[string]float64, error) {
	cb := make(map[string]float64, len(e.order))
	for _, id := range e.order {
		cb[id] = 0
	}

	var mu sync.Mutex
	err := e.strategy.ForEachSource(ctx, e.order, func(source string) error {
		partial := algo.BetweennessFromSource(e.adj, source)
		mu.Lock()
		algo.MergeBetweenness(cb, partial)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return algo.NormalizeBetweenness(cb, len(e.order)), nil
}

// computeCloseness runs one BFS per source through the compute strategy.
// Each pass writes a distinct key, so a mutex only guards the map itself.
func (e *Engine) computeCloseness(ctx context.Context) (map[string]float64, error) {
	closeness := make(map[string]float64, len(e.order))

	var mu sync.Mutex
	err := e.strategy.ForEachSource(ctx, e.order, func(source string) error {
		value := algo.ClosenessFromSource(e.adj, source)
		mu.Lock()
		closeness[source] = value
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return closeness, nil
}

// buildNodeResults assembles the full per-node results: metrics, community
// membership and composite scores. The type filter and exclude patterns
// are applied here so cached results reflect the configured scope.
func (e *Engine) buildNodeResults(metrics map[string]schema.NodeMetrics, rawDegrees map[string]int, communities schema.CommunityStructure) []schema.NodeResult {
	results := make([]schema.NodeResult, 0, len(e.order))

	weights := algo.WeightsForMode(e.cfg.Mode, e.cfg.ComputedWeights)

	for _, id := range e.order {
		node := e.index[id]
		if e.cfg.TypeFilter != "" && node.Type != e.cfg.TypeFilter {
			continue
		}
		if contract.ShouldIgnoreNode(node, e.cfg.Excludes) {
			continue
		}

		m := metrics[id]
		modeScore, breakdown := algo.ComputeScore(m, e.cfg.Mode, weights)
		allScores := algo.ComputeAllScores(m, e.cfg.ComputedWeights)

		community := -1
		if idx, ok := communities.Assignments[id]; ok {
			community = idx
		}

		results = append(results, schema.NodeResult{
			ID:        node.ID,
			Label:     schema.DisplayName(node),
			Type:      node.Type,
			Metrics:   m,
			RawDegree: rawDegrees[id],
			Community: community,
			ModeScore: modeScore,
			AllScores: allScores,
			Breakdown: breakdown,
		})
	}

	return results
}

// beginTracking starts an analysis history record if an analysis store is
// configured. A zero id means tracking is disabled or failed to start.
func (e *Engine) beginTracking() int64 {
	if e.mgr == nil {
		return 0
	}
	analysisStore := e.mgr.GetAnalysisStore()
	if analysisStore == nil {
		return 0
	}

	configParams := map[string]any{
		"mode":         string(e.cfg.Mode),
		"snapshot":     e.source.Name(),
		"workers":      e.cfg.Workers,
		"result_limit": e.cfg.ResultLimit,
	}
	analysisID, err := analysisStore.BeginAnalysis(time.Now(), configParams)
	if err != nil {
		contract.LogWarn("Analysis tracking initialization failed", err)
		return 0
	}
	return analysisID
}

// recordTracking records per-node metrics and scores for the run and
// finalizes the history record. Tracking failures never fail an analysis.
func (e *Engine) recordTracking(analysisID int64, results []schema.NodeResult) {
	if analysisID <= 0 || e.mgr == nil {
		return
	}
	analysisStore := e.mgr.GetAnalysisStore()
	if analysisStore == nil {
		return
	}

	now := time.Now()
	for _, r := range results {
		metrics := schema.NodeMetricsRecord{
			AnalysisTime: now,
			RawDegree:    r.RawDegree,
			Degree:       r.Metrics.Degree,
			Betweenness:  r.Metrics.Betweenness,
			Closeness:    r.Metrics.Closeness,
			Clustering:   r.Metrics.Clustering,
			Eigenvector:  r.Metrics.Eigenvector,
			Community:    r.Community,
		}
		scores := schema.NodeScores{
			AnalysisTime:   now,
			InfluenceScore: r.AllScores[schema.InfluenceMode],
			BrokerScore:    r.AllScores[schema.BrokerMode],
			AnchorScore:    r.AllScores[schema.AnchorMode],
			PeripheryScore: r.AllScores[schema.PeripheryMode],
			ScoreLabel:     string(e.cfg.Mode),
		}
		if err := analysisStore.RecordNodeMetricsAndScores(analysisID, r.ID, metrics, scores); err != nil {
			contract.LogWarn("Analysis tracking failed for node "+r.ID, err)
		}
	}

	if err := analysisStore.EndAnalysis(analysisID, time.Now(), len(results)); err != nil {
		contract.LogWarn("Failed to finalize analysis tracking", err)
	}
}

package core

import (
	"context"
	"time"

	"github.com/mquintal/graphlens/core/algo"
	"github.com/mquintal/graphlens/internal/contract"
	"github.com/mquintal/graphlens/internal/outwriter"
)

// ExecutorFunc defines the function signature for executing different analysis modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error

// newEngineForSnapshot builds an Engine over the snapshot configured in cfg.
func newEngineForSnapshot(cfg *contract.Config, mgr contract.CacheManager) *Engine {
	source := contract.NewLocalGraphSource(cfg.SnapshotPath)
	return NewEngine(cfg, source, mgr)
}

// ExecuteGraphNodes runs the per-node analysis and prints ranked results.
// It serves as the main entry point for the 'nodes' command.
func ExecuteGraphNodes(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	if !shouldSuppressHeader(ctx) {
		outwriter.LogAnalysisHeader(cfg)
	}

	engine := newEngineForSnapshot(cfg, mgr)
	output, err := engine.AnalyzeNodes(ctx)
	if err != nil {
		return err
	}

	ranked := algo.RankNodes(output.NodeResults, cfg.ResultLimit)
	duration := time.Since(start)
	return outwriter.WriteNodeResults(ranked, cfg, duration, output.Status)
}

// ExecuteGraphCommunities runs community detection and prints ranked clusters.
func ExecuteGraphCommunities(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	if !shouldSuppressHeader(ctx) {
		outwriter.LogAnalysisHeader(cfg)
	}

	engine := newEngineForSnapshot(cfg, mgr)
	communities, err := engine.Communities(ctx)
	if err != nil {
		return err
	}

	ranked := algo.RankClusters(communities.Communities, cfg.ResultLimit)
	duration := time.Since(start)
	return outwriter.WriteClusterResults(ranked, communities.Modularity, cfg, duration, communities.Status)
}

// ExecuteGraphBottlenecks runs bottleneck identification and prints the ranking.
func ExecuteGraphBottlenecks(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	if !shouldSuppressHeader(ctx) {
		outwriter.LogAnalysisHeader(cfg)
	}

	engine := newEngineForSnapshot(cfg, mgr)
	results, status, err := engine.Bottlenecks(ctx)
	if err != nil {
		return err
	}

	duration := time.Since(start)
	return outwriter.WriteBottleneckResults(results, cfg, duration, status)
}

// ExecuteGraphOpportunities runs opportunity scoring and prints suggestions.
func ExecuteGraphOpportunities(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	if !shouldSuppressHeader(ctx) {
		outwriter.LogAnalysisHeader(cfg)
	}

	engine := newEngineForSnapshot(cfg, mgr)
	results, status, err := engine.Opportunities(ctx)
	if err != nil {
		return err
	}

	duration := time.Since(start)
	return outwriter.WriteOpportunityResults(results, cfg, duration, status)
}

// ExecuteGraphSummary computes whole-graph metrics and prints them.
func ExecuteGraphSummary(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	if !shouldSuppressHeader(ctx) {
		outwriter.LogAnalysisHeader(cfg)
	}

	engine := newEngineForSnapshot(cfg, mgr)
	summary, err := engine.Summary(ctx)
	if err != nil {
		return err
	}

	duration := time.Since(start)
	return outwriter.WriteSummaryResult(summary, cfg, duration)
}

// ExecuteGraphCompare analyzes two snapshots (Base and Target) and computes
// the per-node score deltas between them.
func ExecuteGraphCompare(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()

	// Print single header for the comparison
	outwriter.LogCompareHeader(cfg)
	suppressCtx := withSuppressHeader(ctx)

	baseCfg := cfg.CloneWithSnapshot(cfg.BaseSnapshot)
	baseEngine := newEngineForSnapshot(baseCfg, mgr)
	baseOutput, err := baseEngine.AnalyzeNodes(suppressCtx)
	if err != nil {
		return err
	}

	targetCfg := cfg.CloneWithSnapshot(cfg.TargetSnapshot)
	targetEngine := newEngineForSnapshot(targetCfg, mgr)
	targetOutput, err := targetEngine.AnalyzeNodes(suppressCtx)
	if err != nil {
		return err
	}

	comparisonResult := compareNodeResults(baseOutput.NodeResults, targetOutput.NodeResults, cfg.ResultLimit, cfg.Mode)
	duration := time.Since(start)
	return outwriter.WriteComparisonResults(comparisonResult, cfg, duration)
}

// ExecuteGraphMetrics displays the formal definitions of all scoring modes.
// This is a static display that does not require graph analysis.
func ExecuteGraphMetrics(_ context.Context, cfg *contract.Config, _ contract.CacheManager) error {
	return outwriter.WriteMetricsDefinitions(cfg.CustomWeights, cfg)
}

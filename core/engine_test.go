package core

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/mquintal/graphlens/internal/contract"
	"github.com/mquintal/graphlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// testGraph is a small two-cluster graph bridged through node c.
func testGraph() *schema.GraphData {
	return &schema.GraphData{
		Nodes: []schema.Node{
			{ID: "a", Label: "Alice", Type: schema.UserNode},
			{ID: "b", Label: "Bob", Type: schema.UserNode},
			{ID: "c", Label: "Carol", Type: schema.UserNode},
			{ID: "d", Label: "Platform", Type: schema.TeamNode},
			{ID: "e", Label: "Eve", Type: schema.UserNode},
		},
		Edges: []schema.Edge{
			{Source: "a", Target: "b"},
			{Source: "a", Target: "c"},
			{Source: "b", Target: "c"},
			{Source: "c", Target: "d"},
			{Source: "d", Target: "e"},
		},
	}
}

func testConfig() *contract.Config {
	return &contract.Config{
		Mode:        schema.InfluenceMode,
		ResultLimit: 10,
		Workers:     1,
	}
}

func newTestSource(graph *schema.GraphData, hash string) *contract.MockGraphSource {
	source := &contract.MockGraphSource{}
	source.On("Load", mock.Anything).Return(graph, nil)
	source.On("Hash", mock.Anything).Return(hash, nil)
	source.On("Name").Return("test-snapshot")
	return source
}

// memStore is an in-process CacheStore used to exercise the full
// store-then-hit path without a database.
type memStore struct {
	mu      sync.Mutex
	entries map[string]memEntry
}

type memEntry struct {
	data    []byte
	version int
	ts      int64
}

func newMemStore() *memStore {
	return &memStore{entries: make(map[string]memEntry)}
}

func (s *memStore) Get(key string) ([]byte, int, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return nil, 0, 0, errors.New("not found")
	}
	return e.data, e.version, e.ts, nil
}

func (s *memStore) Set(key string, data []byte, version int, ts int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memEntry{data: data, version: version, ts: ts}
	return nil
}

func (s *memStore) Close() error { return nil }

func (s *memStore) GetStatus() (schema.CacheStatus, error) {
	return schema.CacheStatus{}, nil
}

// memManager pairs a memStore with a disabled analysis store.
type memManager struct {
	store *memStore
}

func (m *memManager) GetResultStore() contract.CacheStore      { return m.store }
func (m *memManager) GetAnalysisStore() contract.AnalysisStore { return nil }

func TestEngineAnalyzeNodes(t *testing.T) {
	source := newTestSource(testGraph(), "hash-1")
	engine := NewEngine(testConfig(), source, nil)

	output, err := engine.AnalyzeNodes(context.Background())
	require.NoError(t, err)
	require.NotNil(t, output)

	assert.Equal(t, schema.ComputedStatus, output.Status)
	assert.Len(t, output.NodeResults, 5)
	assert.NotEmpty(t, output.Communities.Communities)

	for _, r := range output.NodeResults {
		assert.GreaterOrEqual(t, r.ModeScore, 0.0)
		assert.LessOrEqual(t, r.ModeScore, 100.0)
		assert.Len(t, r.AllScores, len(schema.AllScoringModes))
		assert.GreaterOrEqual(t, r.Community, 0)
	}

	// The bridge node sits on every path between the two clusters.
	var bridge schema.NodeResult
	for _, r := range output.NodeResults {
		if r.ID == "c" {
			bridge = r
		}
	}
	assert.Equal(t, "Carol", bridge.Label)
	for _, r := range output.NodeResults {
		assert.LessOrEqual(t, r.Metrics.Betweenness, bridge.Metrics.Betweenness)
	}
}

func TestEngineAnalyzeNodesTypeFilter(t *testing.T) {
	cfg := testConfig()
	cfg.TypeFilter = schema.TeamNode

	source := newTestSource(testGraph(), "hash-1")
	engine := NewEngine(cfg, source, nil)

	output, err := engine.AnalyzeNodes(context.Background())
	require.NoError(t, err)
	require.Len(t, output.NodeResults, 1)
	assert.Equal(t, "d", output.NodeResults[0].ID)
}

func TestEngineAnalyzeNodesExcludes(t *testing.T) {
	cfg := testConfig()
	cfg.Excludes = []string{"Eve"}

	source := newTestSource(testGraph(), "hash-1")
	engine := NewEngine(cfg, source, nil)

	output, err := engine.AnalyzeNodes(context.Background())
	require.NoError(t, err)
	assert.Len(t, output.NodeResults, 4)
	for _, r := range output.NodeResults {
		assert.NotEqual(t, "e", r.ID)
	}
}

func TestEngineCacheRoundTrip(t *testing.T) {
	mgr := &memManager{store: newMemStore()}
	cfg := testConfig()

	first := NewEngine(cfg, newTestSource(testGraph(), "hash-1"), mgr)
	output, err := first.AnalyzeNodes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, schema.ComputedStatus, output.Status)

	// A fresh engine over the same snapshot hash must hit the cache.
	second := NewEngine(cfg, newTestSource(testGraph(), "hash-1"), mgr)
	cached, err := second.AnalyzeNodes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, schema.CachedStatus, cached.Status)
	assert.Equal(t, schema.CachedStatus, cached.Communities.Status)
	assert.Len(t, cached.NodeResults, len(output.NodeResults))
}

func TestEngineCacheMissOnNewHash(t *testing.T) {
	mgr := &memManager{store: newMemStore()}
	cfg := testConfig()

	first := NewEngine(cfg, newTestSource(testGraph(), "hash-1"), mgr)
	_, err := first.AnalyzeNodes(context.Background())
	require.NoError(t, err)

	// A different snapshot hash must recompute.
	second := NewEngine(cfg, newTestSource(testGraph(), "hash-2"), mgr)
	output, err := second.AnalyzeNodes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, schema.ComputedStatus, output.Status)
}

func TestEngineCacheMissOnWeightChange(t *testing.T) {
	mgr := &memManager{store: newMemStore()}

	defaultCfg := testConfig()
	defaultCfg.ComputedWeights = map[schema.ScoringMode]map[schema.BreakdownKey]float64{
		schema.InfluenceMode: schema.GetDefaultWeights(schema.InfluenceMode),
	}
	first := NewEngine(defaultCfg, newTestSource(testGraph(), "hash-1"), mgr)
	baseline, err := first.AnalyzeNodes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, schema.ComputedStatus, baseline.Status)

	// Same snapshot, but all influence weight moved onto degree. The
	// entry written under the default weights must not be served.
	degreeOnly := make(map[schema.BreakdownKey]float64)
	for k := range schema.GetDefaultWeights(schema.InfluenceMode) {
		degreeOnly[k] = 0
	}
	degreeOnly[schema.BreakdownDegree] = 1.0

	overrideCfg := testConfig()
	overrideCfg.ComputedWeights = map[schema.ScoringMode]map[schema.BreakdownKey]float64{
		schema.InfluenceMode: degreeOnly,
	}
	second := NewEngine(overrideCfg, newTestSource(testGraph(), "hash-1"), mgr)
	output, err := second.AnalyzeNodes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, schema.ComputedStatus, output.Status)

	scoreOf := func(out *schema.NodeAnalysisOutput, id string) float64 {
		for _, r := range out.NodeResults {
			if r.ID == id {
				return r.ModeScore
			}
		}
		t.Fatalf("node %s missing from results", id)
		return 0
	}
	// With all weight on degree the score is the normalized degree
	// alone: 3/4 for the bridge, 1/4 for the leaf. The default blend
	// mixes in betweenness and eigenvector, so a stale entry could not
	// produce these values.
	assert.InDelta(t, 75.0, scoreOf(output, "c"), 0.001)
	assert.InDelta(t, 25.0, scoreOf(output, "e"), 0.001)
	assert.Greater(t, math.Abs(scoreOf(baseline, "e")-scoreOf(output, "e")), 0.001)
}

func TestEngineCacheKeepsDegradedLabel(t *testing.T) {
	mgr := &memManager{store: newMemStore()}
	cfg := testConfig()

	degraded := &schema.NodeAnalysisOutput{
		NodeResults: []schema.NodeResult{{ID: "a"}},
		Communities: schema.CommunityStructure{Status: schema.DegradedStatus},
		Status:      schema.DegradedStatus,
	}
	storeInCache(mgr.store, generateCacheKey("nodes", "hash-1", cfg), degraded)

	engine := NewEngine(cfg, newTestSource(testGraph(), "hash-1"), mgr)
	output, err := engine.AnalyzeNodes(context.Background())
	require.NoError(t, err)

	// Serving from cache must not relabel a degraded result as cached.
	assert.Equal(t, schema.DegradedStatus, output.Status)
	assert.Equal(t, schema.DegradedStatus, output.Communities.Status)
	assert.Len(t, output.NodeResults, 1)
}

func TestEngineLoadError(t *testing.T) {
	source := &contract.MockGraphSource{}
	source.On("Load", mock.Anything).Return(nil, errors.New("snapshot not found"))

	engine := NewEngine(testConfig(), source, nil)
	_, err := engine.AnalyzeNodes(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "snapshot not found")

	// The load error is sticky across calls.
	_, err = engine.Communities(context.Background())
	require.Error(t, err)
}

func TestEngineCommunities(t *testing.T) {
	engine := NewEngine(testConfig(), newTestSource(testGraph(), "hash-1"), nil)

	communities, err := engine.Communities(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, communities.Communities)
	assert.Len(t, communities.Assignments, 5)
}

func TestEngineBottlenecks(t *testing.T) {
	engine := NewEngine(testConfig(), newTestSource(testGraph(), "hash-1"), nil)

	results, status, err := engine.Bottlenecks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, schema.ComputedStatus, status)

	// The bridge node should lead the bottleneck ranking.
	require.NotEmpty(t, results)
	assert.Equal(t, "c", results[0].NodeID)
}

func TestEngineOpportunities(t *testing.T) {
	engine := NewEngine(testConfig(), newTestSource(testGraph(), "hash-1"), nil)

	results, status, err := engine.Opportunities(context.Background())
	require.NoError(t, err)
	assert.Equal(t, schema.ComputedStatus, status)

	for _, r := range results {
		assert.NotEqual(t, r.NodeA, r.NodeB)
		assert.Greater(t, r.Score, 0.0)
	}
}

func TestEngineSummary(t *testing.T) {
	engine := NewEngine(testConfig(), newTestSource(testGraph(), "hash-1"), nil)

	summary, err := engine.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, summary.NodeCount)
	assert.Equal(t, 5, summary.EdgeCount)
	assert.Equal(t, 1, summary.Components)
	assert.InDelta(t, 1.0, summary.Connectedness, 1e-9)
}

func TestEngineEmptyGraph(t *testing.T) {
	graph := &schema.GraphData{}
	engine := NewEngine(testConfig(), newTestSource(graph, "empty"), nil)

	output, err := engine.AnalyzeNodes(context.Background())
	require.NoError(t, err)
	assert.Empty(t, output.NodeResults)
	assert.Equal(t, schema.ComputedStatus, output.Status)
}

func TestDetectWithFallback(t *testing.T) {
	engine := NewEngine(testConfig(), newTestSource(testGraph(), "hash-1"), nil)
	require.NoError(t, engine.load(context.Background()))

	communities := engine.detectWithFallback()
	assert.NotEmpty(t, communities.Communities)
	assert.Len(t, communities.Assignments, 5)
	assert.NotEqual(t, schema.DegradedStatus, communities.Status)
}

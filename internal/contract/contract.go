// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/mquintal/graphlens/schema"
)

// GraphSource defines how a collaboration graph snapshot is loaded.
// This allows the core analysis logic to be tested without real snapshot
// files on disk.
type GraphSource interface {
	// Load reads and validates the snapshot, returning the graph data.
	Load(ctx context.Context) (*schema.GraphData, error)

	// Hash returns a stable content hash for the snapshot. Two snapshots
	// with identical content must hash identically, so cached results can
	// be shared across paths.
	Hash(ctx context.Context) (string, error)

	// Name returns a human-readable identifier for the snapshot, used in
	// output headers and analysis tracking.
	Name() string
}

// ComputeStrategy controls how per-source graph traversals are scheduled.
// Centrality passes run one BFS per source node; a strategy may run them
// inline or fan them out across workers.
type ComputeStrategy interface {
	// ForEachSource invokes fn once per source and returns the first
	// error encountered. Implementations must stop scheduling new work
	// once ctx is cancelled.
	ForEachSource(ctx context.Context, sources []string, fn func(source string) error) error
}

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetResultStore() CacheStore
	GetAnalysisStore() AnalysisStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// AnalysisStore defines the interface for tracking analysis runs and storing metrics.
type AnalysisStore interface {
	// BeginAnalysis creates a new analysis run and returns its unique ID
	BeginAnalysis(startTime time.Time, configParams map[string]any) (int64, error)

	// EndAnalysis updates the analysis run with completion data
	EndAnalysis(analysisID int64, endTime time.Time, totalNodes int) error

	// RecordNodeMetricsAndScores stores raw centrality metrics and final
	// scores for a node in one operation
	RecordNodeMetricsAndScores(analysisID int64, nodeID string, metrics schema.NodeMetricsRecord, scores schema.NodeScores) error

	// GetAllAnalysisRuns retrieves every recorded analysis run, for export
	GetAllAnalysisRuns() ([]schema.AnalysisRunRecord, error)

	// GetAllNodeScoresMetrics retrieves every recorded node row, for export
	GetAllNodeScoresMetrics() ([]schema.NodeScoresMetricsRecord, error)

	// GetStatus returns status information about the analysis store
	GetStatus() (schema.AnalysisStatus, error)

	// Close closes the underlying connection
	Close() error
}

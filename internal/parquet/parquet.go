// Package parquet provides data structures and functions for exporting graph
// analysis data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/mquintal/graphlens/schema"
	"github.com/parquet-go/parquet-go"
)

// AnalysisRun represents a single graph analysis run with metadata.
// This struct maps to the graphlens_analysis_runs database table.
type AnalysisRun struct {
	// AnalysisID is the unique identifier for this analysis run
	AnalysisID int64 `parquet:"analysis_id,snappy"`

	// StartTime is when the analysis began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the analysis completed (nullable, stored as TIMESTAMP with nanosecond precision)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the analysis run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// TotalNodesAnalyzed is the number of nodes analyzed in this run
	TotalNodesAnalyzed int32 `parquet:"total_nodes_analyzed,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// NodeScoresMetrics represents the metrics and scores for a single node in an analysis.
// This struct maps to the graphlens_node_scores_metrics database table.
type NodeScoresMetrics struct {
	// AnalysisID references the parent analysis run
	AnalysisID int64 `parquet:"analysis_id,snappy"`

	// NodeID is the stable identifier of the node in the graph snapshot
	NodeID string `parquet:"node_id,snappy"`

	// AnalysisTime is when this node was analyzed (stored as TIMESTAMP with nanosecond precision)
	AnalysisTime time.Time `parquet:"analysis_time,snappy"`

	// RawDegree is the number of distinct neighbors of the node
	RawDegree int32 `parquet:"raw_degree,snappy"`

	// Degree is the normalized degree centrality (0-1)
	Degree float64 `parquet:"degree,snappy"`

	// Betweenness is the normalized betweenness centrality (0-1)
	Betweenness float64 `parquet:"betweenness,snappy"`

	// Closeness is the closeness centrality (0-1)
	Closeness float64 `parquet:"closeness,snappy"`

	// Clustering is the local clustering coefficient (0-1)
	Clustering float64 `parquet:"clustering,snappy"`

	// Eigenvector is the normalized eigenvector centrality (0-1)
	Eigenvector float64 `parquet:"eigenvector,snappy"`

	// Community is the community assignment for the node
	Community int32 `parquet:"community,snappy"`

	// ScoreInfluence is the node score in influence mode
	ScoreInfluence float64 `parquet:"score_influence,snappy"`

	// ScoreBroker is the node score in broker mode
	ScoreBroker float64 `parquet:"score_broker,snappy"`

	// ScoreAnchor is the node score in anchor mode
	ScoreAnchor float64 `parquet:"score_anchor,snappy"`

	// ScorePeriphery is the node score in periphery mode
	ScorePeriphery float64 `parquet:"score_periphery,snappy"`

	// ScoreLabel indicates which scoring mode was used
	ScoreLabel string `parquet:"score_label,snappy"`
}

// WriteAnalysisRunsParquet writes a slice of AnalysisRun structs to a Parquet file.
func WriteAnalysisRunsParquet(data []AnalysisRun, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the AnalysisRun struct tags
	writer := parquet.NewGenericWriter[AnalysisRun](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteNodeScoresMetricsParquet writes a slice of NodeScoresMetrics structs to a Parquet file.
func WriteNodeScoresMetricsParquet(data []NodeScoresMetrics, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the NodeScoresMetrics struct tags
	writer := parquet.NewGenericWriter[NodeScoresMetrics](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertAnalysisRunRecords converts schema.AnalysisRunRecord to AnalysisRun for Parquet export.
func ConvertAnalysisRunRecords(records []schema.AnalysisRunRecord) []AnalysisRun {
	result := make([]AnalysisRun, len(records))
	for i, record := range records {
		result[i] = AnalysisRun{
			AnalysisID:         record.AnalysisID,
			StartTime:          record.StartTime,
			EndTime:            record.EndTime,
			RunDurationMs:      record.RunDurationMs,
			TotalNodesAnalyzed: record.TotalNodesAnalyzed,
			ConfigParams:       record.ConfigParams,
		}
	}
	return result
}

// ConvertNodeScoresMetricsRecords converts schema.NodeScoresMetricsRecord to NodeScoresMetrics for Parquet export.
func ConvertNodeScoresMetricsRecords(records []schema.NodeScoresMetricsRecord) []NodeScoresMetrics {
	result := make([]NodeScoresMetrics, len(records))
	for i, record := range records {
		result[i] = NodeScoresMetrics{
			AnalysisID:     record.AnalysisID,
			NodeID:         record.NodeID,
			AnalysisTime:   record.AnalysisTime,
			RawDegree:      record.RawDegree,
			Degree:         record.Degree,
			Betweenness:    record.Betweenness,
			Closeness:      record.Closeness,
			Clustering:     record.Clustering,
			Eigenvector:    record.Eigenvector,
			Community:      record.Community,
			ScoreInfluence: record.ScoreInfluence,
			ScoreBroker:    record.ScoreBroker,
			ScoreAnchor:    record.ScoreAnchor,
			ScorePeriphery: record.ScorePeriphery,
			ScoreLabel:     record.ScoreLabel,
		}
	}
	return result
}

package schema

import "time"

// NodeMetricsRecord represents raw graph metrics for a single node,
// as stored by the analysis store.
type NodeMetricsRecord struct {
	AnalysisTime time.Time
	RawDegree    int
	Degree       float64
	Betweenness  float64
	Closeness    float64
	Clustering   float64
	Eigenvector  float64
	Community    int
}

// NodeScores represents final computed scores for a single node.
type NodeScores struct {
	AnalysisTime   time.Time
	InfluenceScore float64 // influence mode score
	BrokerScore    float64 // broker mode score
	AnchorScore    float64 // anchor mode score
	PeripheryScore float64 // periphery mode score
	ScoreLabel     string  // current mode name
}

// AnalysisRunRecord represents a row from the graphlens_analysis_runs table.
type AnalysisRunRecord struct {
	AnalysisID         int64
	StartTime          time.Time
	EndTime            *time.Time
	RunDurationMs      *int32
	TotalNodesAnalyzed int32
	ConfigParams       *string
}

// NodeScoresMetricsRecord represents a row from the graphlens_node_scores_metrics table.
type NodeScoresMetricsRecord struct {
	AnalysisID     int64
	NodeID         string
	AnalysisTime   time.Time
	RawDegree      int32
	Degree         float64
	Betweenness    float64
	Closeness      float64
	Clustering     float64
	Eigenvector    float64
	Community      int32
	ScoreInfluence float64
	ScoreBroker    float64
	ScoreAnchor    float64
	ScorePeriphery float64
	ScoreLabel     string
}

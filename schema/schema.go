// Package schema has configs, models and shared constants for all parts of graphlens.
package schema

// Node is a single vertex in a collaboration graph. Nodes are immutable
// once loaded into an analysis pass.
type Node struct {
	ID    string   `json:"id"`
	Label string   `json:"label"`
	Type  NodeType `json:"type"`
}

// Edge is a connection between two nodes. Edges are treated as undirected
// for analysis: both directions populate the adjacency list.
type Edge struct {
	Source string   `json:"source"`
	Target string   `json:"target"`
	Type   EdgeType `json:"type,omitempty"`
}

// GraphData is an immutable snapshot of a collaboration graph.
type GraphData struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// AdjacencyList maps a node id to the ordered list of its neighbor ids.
// Duplicates are preserved when parallel edges exist, and self-loops are
// not filtered; both choices intentionally weight the metrics toward
// heavily connected pairs.
type AdjacencyList map[string][]string

// NodeMetrics bundles the per-node centrality measures. All values are
// normalized floats in [0,1] where applicable.
type NodeMetrics struct {
	Degree      float64 `json:"degree"`
	Betweenness float64 `json:"betweenness"`
	Closeness   float64 `json:"closeness"`
	Clustering  float64 `json:"clustering"`
	Eigenvector float64 `json:"eigenvector"`
}

// NodeResult represents the full analysis output for a single node:
// its centrality metrics, community membership, and composite scores.
type NodeResult struct {
	ID        string   `json:"id"`
	Label     string   `json:"label"`
	Type      NodeType `json:"type"`
	Metrics   NodeMetrics
	RawDegree int    `json:"raw_degree"` // Unnormalized neighbor count, parallel edges included
	Community int    `json:"community"`  // Index into the detected community list (-1 if not assigned)

	ModeScore float64                  `json:"mode_score"` // Score (0-100) for the configured scoring mode
	AllScores map[ScoringMode]float64  `json:"all_scores"` // Scores for every mode, for tracking and check gating
	Breakdown map[BreakdownKey]float64 `json:"breakdown"`  // Per-metric contribution of the mode score, for explain output
}

// Cluster is a detected community: an identifier, its member node ids,
// and a size-based score.
type Cluster struct {
	ID      string   `json:"id"`
	Members []string `json:"members"`
	Score   float64  `json:"score"`
}

// CommunityStructure is the output of community detection: the clusters,
// a node-to-cluster assignment, and the achieved modularity.
type CommunityStructure struct {
	Communities []Cluster      `json:"communities"`
	Assignments map[string]int `json:"assignments"` // node id -> index into Communities
	Modularity  float64        `json:"modularity"`
	Status      ResultStatus   `json:"status"`
}

// BottleneckResult flags a node whose position concentrates shortest
// paths: high betweenness, low clustering, modest degree.
type BottleneckResult struct {
	NodeID      string  `json:"node_id"`
	Label       string  `json:"label"`
	Score       float64 `json:"score"`
	Severity    string  `json:"severity"`    // Critical/High/Moderate/Low, from the shared label scale
	Connections int     `json:"connections"` // Raw degree
	Betweenness float64 `json:"betweenness"`
	Clustering  float64 `json:"clustering"`
}

// OpportunityResult suggests a missing connection between two nodes,
// with the signal that produced it and a human-readable reason.
type OpportunityResult struct {
	NodeA  string            `json:"node_a"`
	NodeB  string            `json:"node_b"`
	Score  float64           `json:"score"`
	Reason string            `json:"reason"`
	Signal OpportunitySignal `json:"signal"`
}

// GraphSummary aggregates whole-graph scalars. Every value is computed
// from the graph; none are placeholders.
type GraphSummary struct {
	NodeCount      int          `json:"node_count"`
	EdgeCount      int          `json:"edge_count"`
	Density        float64      `json:"density"`
	Modularity     float64      `json:"modularity"`
	Connectedness  float64      `json:"connectedness"` // Share of nodes in the largest component
	Components     int          `json:"components"`
	Centralization float64      `json:"centralization"` // Freeman degree centralization
	Resilience     float64      `json:"resilience"`     // 1 - articulation-point fraction
	Efficiency     float64      `json:"efficiency"`     // Mean inverse shortest-path distance over reachable pairs
	Diameter       int          `json:"diameter"`       // Longest shortest path in the largest component
	Status         ResultStatus `json:"status"`
}

// NodeAnalysisOutput bundles the per-node results of a single analysis run
// together with the community structure they were annotated from.
type NodeAnalysisOutput struct {
	NodeResults []NodeResult
	Communities CommunityStructure
	Status      ResultStatus
}

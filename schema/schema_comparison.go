package schema

// NodeStatus is the intrinsic status of a node across two snapshots.
type NodeStatus string

// All node statuses supported for comparisons.
const (
	NewStatus      NodeStatus = "new"
	RemovedStatus  NodeStatus = "removed"
	ModifiedStatus NodeStatus = "modified"
)

// ComparisonDetail holds the base info, target info, and their associated deltas.
type ComparisonDetail struct {
	NodeID        string      `json:"node_id"`
	Label         string      `json:"label"`
	BeforeScore   float64     `json:"before_score"` // Score from the base snapshot
	AfterScore    float64     `json:"after_score"`  // Score from the target snapshot
	Delta         float64     `json:"delta"`        // AfterScore - BeforeScore (positive means more central)
	DeltaDegree   int         `json:"delta_degree"` // Change in raw degree
	Status        NodeStatus  `json:"status"`
	BeforeCluster int         `json:"before_cluster"`
	AfterCluster  int         `json:"after_cluster"`
	Mode          ScoringMode `json:"mode"`
}

// ComparisonSummary has high-level deltas and counts.
type ComparisonSummary struct {
	NetScoreDelta      float64 `json:"net_score_delta"`
	NetDegreeDelta     int     `json:"net_degree_delta"`
	TotalNewNodes      int     `json:"total_new_nodes"`
	TotalRemovedNodes  int     `json:"total_removed_nodes"`
	TotalModifiedNodes int     `json:"total_modified_nodes"`
	TotalCommunityMoves int    `json:"total_community_moves"`
}

// ComparisonResult holds the comparison details and summary.
type ComparisonResult struct {
	Details []ComparisonDetail `json:"details"`
	Summary ComparisonSummary  `json:"summary"`
}

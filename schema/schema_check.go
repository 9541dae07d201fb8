package schema

// CheckResult holds the results of a policy check.
type CheckResult struct {
	Passed        bool
	FailedNodes   []CheckFailedNode
	TotalNodes    int
	CheckedModes  []ScoringMode
	Snapshot      string
	Thresholds    map[ScoringMode]float64
	MaxScores     map[ScoringMode]float64
	MaxScoreNodes map[ScoringMode][]CheckMaxScoreNode
	AvgScores     map[ScoringMode]float64 // Average score per mode
}

// CheckMaxScoreNode represents a node that achieved the maximum score for a mode.
type CheckMaxScoreNode struct {
	NodeID string
	Label  string
}

// CheckFailedNode represents a node that failed the policy check.
type CheckFailedNode struct {
	NodeID    string
	Label     string
	Mode      ScoringMode
	Score     float64
	Threshold float64
}

package schema

// Custom string types for type safety.
type (
	// NodeType classifies the entity a node represents.
	NodeType string

	// EdgeType classifies the relationship an edge represents.
	EdgeType string

	// BreakdownKey represents keys used in scoring breakdowns.
	BreakdownKey string

	// OutputMode represents the format of the output.
	OutputMode string

	// ScoringMode represents the scoring mode used.
	ScoringMode string

	// ResultStatus distinguishes freshly computed results from cached ones
	// and from degraded fallbacks.
	ResultStatus string

	// OpportunitySignal names the heuristic that produced an opportunity.
	OpportunitySignal string

	// DatabaseBackend represents the database backend for caching.
	DatabaseBackend string
)

// Node types found in collaboration graphs.
const (
	UserNode     NodeType = "user"
	TeamNode     NodeType = "team"
	ProjectNode  NodeType = "project"
	GoalNode     NodeType = "goal"
	SkillNode    NodeType = "skill"
	DocumentNode NodeType = "document"
	UnknownNode  NodeType = "unknown"
)

// Breakdown keys used in the scoring logic.
const (
	BreakdownDegree      BreakdownKey = "degree"      // nDegree
	BreakdownBetweenness BreakdownKey = "betweenness" // nBetweenness
	BreakdownCloseness   BreakdownKey = "closeness"   // nCloseness
	BreakdownClustering  BreakdownKey = "clustering"  // nClustering
	BreakdownEigenvector BreakdownKey = "eigenvector" // nEigenvector

	BreakdownInvDegree      BreakdownKey = "inv_degree"      // 1 - nDegree
	BreakdownInvCloseness   BreakdownKey = "inv_closeness"   // 1 - nCloseness
	BreakdownInvClustering  BreakdownKey = "inv_clustering"  // 1 - nClustering
	BreakdownInvEigenvector BreakdownKey = "inv_eigenvector" // 1 - nEigenvector
)

// All output modes supported.
const (
	CSVOut  OutputMode = "csv"
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
)

// All scoring modes supported.
const (
	InfluenceMode ScoringMode = "influence" // default
	BrokerMode    ScoringMode = "broker"
	AnchorMode    ScoringMode = "anchor"
	PeripheryMode ScoringMode = "periphery"
)

// All result statuses.
const (
	ComputedStatus ResultStatus = "computed"
	CachedStatus   ResultStatus = "cached"
	DegradedStatus ResultStatus = "degraded"
)

// All opportunity signals.
const (
	SharedNeighborSignal  OpportunitySignal = "shared_neighbors"
	CommunityBridgeSignal OpportunitySignal = "community_bridge"
	SimilarNeighborSignal OpportunitySignal = "neighbor_similarity"
)

// All cache backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// AllScoringModes returns a list of all supported scoring modes.
var AllScoringModes = []ScoringMode{InfluenceMode, BrokerMode, AnchorMode, PeripheryMode}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:  {},
	TextOut: {},
	JSONOut: {},
}

// ValidScoringModes lists all valid scoring modes.
var ValidScoringModes = map[ScoringMode]struct{}{
	InfluenceMode: {},
	BrokerMode:    {},
	AnchorMode:    {},
	PeripheryMode: {},
}

// ValidDatabaseBackends lists all valid cache backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidNodeTypes lists all node types accepted by the snapshot loader.
var ValidNodeTypes = map[NodeType]struct{}{
	UserNode:     {},
	TeamNode:     {},
	ProjectNode:  {},
	GoalNode:     {},
	SkillNode:    {},
	DocumentNode: {},
	UnknownNode:  {},
}

// GetDefaultWeights returns the default weight map for a given scoring mode.
func GetDefaultWeights(mode ScoringMode) map[BreakdownKey]float64 {
	switch mode {
	case BrokerMode:
		return map[BreakdownKey]float64{
			BreakdownBetweenness:   0.40,
			BreakdownInvClustering: 0.20,
			BreakdownCloseness:     0.20,
			BreakdownDegree:        0.15,
			BreakdownEigenvector:   0.05,
		}
	case AnchorMode:
		return map[BreakdownKey]float64{
			BreakdownClustering:  0.35,
			BreakdownDegree:      0.25,
			BreakdownEigenvector: 0.20,
			BreakdownCloseness:   0.15,
			BreakdownBetweenness: 0.05,
		}
	case PeripheryMode:
		return map[BreakdownKey]float64{
			BreakdownInvDegree:      0.30,
			BreakdownInvCloseness:   0.30,
			BreakdownInvEigenvector: 0.25,
			BreakdownInvClustering:  0.15,
		}
	default: // InfluenceMode
		return map[BreakdownKey]float64{
			BreakdownEigenvector: 0.35,
			BreakdownDegree:      0.25,
			BreakdownCloseness:   0.20,
			BreakdownBetweenness: 0.10,
			BreakdownClustering:  0.10,
		}
	}
}

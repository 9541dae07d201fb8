package schema

// EnrichedNodeResult adds presentation data to a NodeResult.
type EnrichedNodeResult struct {
	Rank  int    `json:"rank"`
	Label string `json:"label"`
	NodeResult
}

// EnrichedClusterResult adds presentation data to a Cluster.
type EnrichedClusterResult struct {
	Rank  int    `json:"rank"`
	Label string `json:"label"`
	Cluster
}

// Scoring label constants.
const (
	CriticalValue = "Critical" // Critical value
	HighValue     = "High"     // High value
	ModerateValue = "Moderate" // Moderate value
	LowValue      = "Low"      // Low value
)

// GetPlainLabel returns a plain text label indicating the criticality level
// based on the importance score.
func GetPlainLabel(score float64) string {
	switch {
	case score >= 80:
		return CriticalValue
	case score >= 60:
		return HighValue
	case score >= 40:
		return ModerateValue
	default:
		return LowValue
	}
}

// EnrichNodes adds rank and label to a list of node results.
func EnrichNodes(nodes []NodeResult) []EnrichedNodeResult {
	output := make([]EnrichedNodeResult, len(nodes))
	for i, n := range nodes {
		output[i] = EnrichedNodeResult{
			Rank:       i + 1,
			Label:      GetPlainLabel(n.ModeScore),
			NodeResult: n,
		}
	}
	return output
}

// EnrichClusters adds rank and label to a list of clusters.
func EnrichClusters(clusters []Cluster) []EnrichedClusterResult {
	output := make([]EnrichedClusterResult, len(clusters))
	for i, c := range clusters {
		output[i] = EnrichedClusterResult{
			Rank:    i + 1,
			Label:   GetPlainLabel(c.Score),
			Cluster: c,
		}
	}
	return output
}

package algo

import (
	"maps"

	"github.com/mquintal/graphlens/schema"
)

// ComputeScore calculates a node's importance score (0-100) for the given
// scoring mode from its normalized centrality metrics. Supports four
// modes:
//   - influence: who drives the graph (eigenvector, degree heavy)
//   - broker: who bridges it (betweenness heavy, open neighborhoods)
//   - anchor: who holds groups together (clustering, degree heavy)
//   - periphery: who is isolated (inverse metrics)
//
// The returned breakdown maps each factor to its contribution in percent,
// for explain output and weight tuning.
func ComputeScore(m schema.NodeMetrics, mode schema.ScoringMode, weights map[schema.BreakdownKey]float64) (float64, map[schema.BreakdownKey]float64) {
	if weights == nil {
		weights = schema.GetDefaultWeights(mode)
	}

	breakdown := make(map[schema.BreakdownKey]float64, len(weights))
	var raw float64
	for key, weight := range weights {
		value := weight * metricValue(m, key)
		breakdown[key] = value
		raw += value
	}

	for key, value := range breakdown {
		breakdown[key] = value * 100.0
	}
	return raw * 100.0, breakdown
}

// ComputeAllScores returns the score for every mode, applying any custom
// weight overrides per mode.
func ComputeAllScores(m schema.NodeMetrics, customWeights map[schema.ScoringMode]map[schema.BreakdownKey]float64) map[schema.ScoringMode]float64 {
	scores := make(map[schema.ScoringMode]float64, len(schema.AllScoringModes))
	for _, mode := range schema.AllScoringModes {
		score, _ := ComputeScore(m, mode, WeightsForMode(mode, customWeights))
		scores[mode] = score
	}
	return scores
}

// WeightsForMode returns the effective weight map for a mode: the defaults
// overlaid with any custom overrides.
func WeightsForMode(mode schema.ScoringMode, customWeights map[schema.ScoringMode]map[schema.BreakdownKey]float64) map[schema.BreakdownKey]float64 {
	weights := make(map[schema.BreakdownKey]float64)
	maps.Copy(weights, schema.GetDefaultWeights(mode))
	if customWeights != nil {
		if modeWeights, ok := customWeights[mode]; ok {
			maps.Copy(weights, modeWeights)
		}
	}
	return weights
}

// metricValue resolves a breakdown key to its normalized metric, inverting
// where the key asks for it. All inputs are already in [0,1].
func metricValue(m schema.NodeMetrics, key schema.BreakdownKey) float64 {
	switch key {
	case schema.BreakdownDegree:
		return clamp01(m.Degree)
	case schema.BreakdownBetweenness:
		return clamp01(m.Betweenness)
	case schema.BreakdownCloseness:
		return clamp01(m.Closeness)
	case schema.BreakdownClustering:
		return clamp01(m.Clustering)
	case schema.BreakdownEigenvector:
		return clamp01(m.Eigenvector)
	case schema.BreakdownInvDegree:
		return 1 - clamp01(m.Degree)
	case schema.BreakdownInvCloseness:
		return 1 - clamp01(m.Closeness)
	case schema.BreakdownInvClustering:
		return 1 - clamp01(m.Clustering)
	case schema.BreakdownInvEigenvector:
		return 1 - clamp01(m.Eigenvector)
	default:
		return 0
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

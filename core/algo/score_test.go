package algo

import (
	"testing"

	"github.com/mquintal/graphlens/schema"
	"github.com/stretchr/testify/assert"
)

func TestComputeScoreBounds(t *testing.T) {
	perfect := schema.NodeMetrics{Degree: 1, Betweenness: 1, Closeness: 1, Clustering: 1, Eigenvector: 1}
	isolated := schema.NodeMetrics{}

	tests := []struct {
		name    string
		metrics schema.NodeMetrics
		mode    schema.ScoringMode
		want    float64
	}{
		{"influence maxes on perfect metrics", perfect, schema.InfluenceMode, 100.0},
		{"anchor maxes on perfect metrics", perfect, schema.AnchorMode, 100.0},
		{"periphery maxes on isolated node", isolated, schema.PeripheryMode, 100.0},
		{"periphery bottoms on perfect metrics", perfect, schema.PeripheryMode, 0.0},
		{"influence bottoms on isolated node", isolated, schema.InfluenceMode, 0.0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			score, _ := ComputeScore(tc.metrics, tc.mode, nil)
			assert.InDelta(t, tc.want, score, 1e-9)
		})
	}
}

func TestComputeScoreBreakdownSums(t *testing.T) {
	m := schema.NodeMetrics{Degree: 0.5, Betweenness: 0.2, Closeness: 0.7, Clustering: 0.9, Eigenvector: 0.3}

	for _, mode := range schema.AllScoringModes {
		score, breakdown := ComputeScore(m, mode, nil)
		sum := 0.0
		for _, v := range breakdown {
			sum += v
		}
		assert.InDelta(t, score, sum, 1e-9, "mode %s", mode)
	}
}

func TestComputeScoreClampsMetrics(t *testing.T) {
	// Out-of-range metrics must not push scores past the bounds.
	m := schema.NodeMetrics{Degree: 1.5, Betweenness: -0.2, Closeness: 2.0, Clustering: 1.0, Eigenvector: 1.1}

	score, _ := ComputeScore(m, schema.InfluenceMode, nil)
	assert.LessOrEqual(t, score, 100.0)
	assert.GreaterOrEqual(t, score, 0.0)
}

func TestComputeScoreCustomWeights(t *testing.T) {
	m := schema.NodeMetrics{Degree: 1.0}
	weights := map[schema.BreakdownKey]float64{schema.BreakdownDegree: 1.0}

	score, breakdown := ComputeScore(m, schema.InfluenceMode, weights)
	assert.InDelta(t, 100.0, score, 1e-9)
	assert.Len(t, breakdown, 1)
	assert.InDelta(t, 100.0, breakdown[schema.BreakdownDegree], 1e-9)
}

func TestWeightsForModeOverlay(t *testing.T) {
	custom := map[schema.ScoringMode]map[schema.BreakdownKey]float64{
		schema.BrokerMode: {schema.BreakdownBetweenness: 0.9},
	}

	weights := WeightsForMode(schema.BrokerMode, custom)
	assert.InDelta(t, 0.9, weights[schema.BreakdownBetweenness], 1e-9)
	// Untouched keys keep their defaults.
	defaults := schema.GetDefaultWeights(schema.BrokerMode)
	assert.InDelta(t, defaults[schema.BreakdownCloseness], weights[schema.BreakdownCloseness], 1e-9)

	// Other modes are unaffected.
	plain := WeightsForMode(schema.InfluenceMode, custom)
	assert.Equal(t, schema.GetDefaultWeights(schema.InfluenceMode), plain)
}

func TestComputeAllScoresCoversEveryMode(t *testing.T) {
	scores := ComputeAllScores(schema.NodeMetrics{Degree: 0.4, Closeness: 0.6}, nil)

	assert.Len(t, scores, len(schema.AllScoringModes))
	for _, mode := range schema.AllScoringModes {
		assert.Contains(t, scores, mode)
	}
}

package outwriter

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mquintal/graphlens/internal/contract"
	"github.com/mquintal/graphlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleComparison() schema.ComparisonResult {
	return schema.ComparisonResult{
		Details: []schema.ComparisonDetail{
			{
				NodeID:        "alice",
				Label:         "Alice",
				BeforeScore:   60.0,
				AfterScore:    75.0,
				Delta:         15.0,
				DeltaDegree:   4,
				Status:        schema.ModifiedStatus,
				BeforeCluster: 0,
				AfterCluster:  1,
				Mode:          schema.InfluenceMode,
			},
			{
				NodeID:       "bob",
				Label:        "Bob",
				BeforeScore:  0,
				AfterScore:   30.0,
				Delta:        30.0,
				Status:       schema.NewStatus,
				BeforeCluster: -1,
				AfterCluster:  2,
				Mode:         schema.InfluenceMode,
			},
		},
		Summary: schema.ComparisonSummary{
			NetScoreDelta:       45.0,
			NetDegreeDelta:      4,
			TotalNewNodes:       1,
			TotalModifiedNodes:  1,
			TotalCommunityMoves: 1,
		},
	}
}

func TestWriteComparisonTable(t *testing.T) {
	fmtFloat, intFmt := createFormatters(1)
	cfg := &contract.Config{
		Precision:    1,
		Workers:      1,
		CacheBackend: schema.SQLiteBackend,
		Detail:       true,
		Width:        160,
	}

	var buf bytes.Buffer
	err := writeComparisonTable(sampleComparison(), cfg, fmtFloat, intFmt, time.Second, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "+15.0 ▲")
	assert.Contains(t, out, "modified")
	assert.Contains(t, out, "new")
	assert.Contains(t, out, "0 → 1")
	assert.Contains(t, out, "Net score delta: 45.0, Net degree delta: 4")
	assert.Contains(t, out, "New nodes: 1, Removed nodes: 0, Modified nodes: 1, Community moves: 1")
}

func TestWriteComparisonResultsCSV(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "compare.csv")
	cfg := &contract.Config{
		Output:     schema.CSVOut,
		OutputFile: outputFile,
		Precision:  1,
	}

	err := WriteComparisonResults(sampleComparison(), cfg, time.Second)
	require.NoError(t, err)

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "delta_degree")
	assert.Contains(t, lines[1], "alice")
	assert.Contains(t, lines[1], "modified")
	assert.Contains(t, lines[2], "bob")
	assert.Contains(t, lines[2], "new")
}

func TestWriteComparisonResultsJSON(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "compare.json")
	cfg := &contract.Config{
		Output:     schema.JSONOut,
		OutputFile: outputFile,
		Precision:  1,
	}

	err := WriteComparisonResults(sampleComparison(), cfg, time.Second)
	require.NoError(t, err)

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\"net_score_delta\": 45")
	assert.Contains(t, string(data), "\"status\": \"new\"")
}

func TestFormatClusterMove(t *testing.T) {
	assert.Equal(t, "stable", formatClusterMove(schema.ComparisonDetail{Status: schema.ModifiedStatus, BeforeCluster: 1, AfterCluster: 1}))
	assert.Equal(t, "1 → 2", formatClusterMove(schema.ComparisonDetail{Status: schema.ModifiedStatus, BeforeCluster: 1, AfterCluster: 2}))
	assert.Equal(t, "→ 3", formatClusterMove(schema.ComparisonDetail{Status: schema.NewStatus, AfterCluster: 3}))
	assert.Equal(t, "2 →", formatClusterMove(schema.ComparisonDetail{Status: schema.RemovedStatus, BeforeCluster: 2}))
}

package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/mquintal/graphlens/internal/contract"
	"github.com/mquintal/graphlens/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteComparisonResults outputs the comparison results, dispatching based on the output format configured.
func WriteComparisonResults(comparisonResult schema.ComparisonResult, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, comparisonResult)
		}, "Wrote JSON")
	case schema.CSVOut:
		if err := writeComparisonCSV(comparisonResult, cfg, fmtFloat, intFmt); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeComparisonTable(comparisonResult, cfg, fmtFloat, intFmt, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeComparisonCSV writes the comparison data in CSV format.
func writeComparisonCSV(comparisonResult schema.ComparisonResult, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	header := []string{
		"rank",
		"id",
		"label",
		"before_score",
		"after_score",
		"delta_score",
		"delta_degree",
		"status",
		"before_cluster",
		"after_cluster",
		"mode",
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for i, r := range comparisonResult.Details {
				row := []string{
					strconv.Itoa(i + 1),                // Rank
					r.NodeID,                           // Node ID
					r.Label,                            // Label
					fmtFloat(r.BeforeScore),            // Base Score
					fmtFloat(r.AfterScore),             // Target Score
					fmtFloat(r.Delta),                  // Delta Score (Target - Base)
					fmt.Sprintf(intFmt, r.DeltaDegree), // Delta Degree
					string(r.Status),                   // Status
					strconv.Itoa(r.BeforeCluster),      // Base Cluster
					strconv.Itoa(r.AfterCluster),       // Target Cluster
					string(r.Mode),                     // Mode
				}
				if err := csvWriter.Write(row); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeComparisonTable writes the deltas in a custom comparison format.
func writeComparisonTable(comparisonResult schema.ComparisonResult, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers (Comparison Mode)
	headers := []string{
		"Rank",
		"Node",
		"Before",
		"After",
		"Delta",
		"Status",
	}
	if cfg.Detail {
		headers = append(headers, "Δ Degree", "Cluster Move")
	}
	table.Header(headers)

	// 2. Configure Alignment
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Prepare Data Rows
	var data [][]string
	var red, green, yellow func(...any) string
	if cfg.UseColors {
		red = color.New(color.FgRed).SprintFunc()
		green = color.New(color.FgGreen).SprintFunc()
		yellow = color.New(color.FgYellow).SprintFunc()
	} else {
		red = fmt.Sprint
		green = fmt.Sprint
		yellow = fmt.Sprint
	}
	for i, r := range comparisonResult.Details {
		var deltaStr string
		deltaValue := r.Delta
		switch {
		case deltaValue > 0:
			// Explicitly add + sign
			deltaStr = red(fmt.Sprintf("+%.*f ▲", cfg.Precision, deltaValue))
		case deltaValue < 0:
			// Keeps the - sign from the float
			deltaStr = green(fmt.Sprintf("%.*f ▼", cfg.Precision, deltaValue))
		default:
			// For 0.0 deltas, format simply without an indicator
			deltaStr = yellow(fmt.Sprintf("%.*f", cfg.Precision, 0.0))
		}

		row := []string{
			strconv.Itoa(i + 1), // Rank
			contract.TruncateLabel(r.Label, getMaxTableLabelWidth(cfg)), // Node
			fmtFloat(r.BeforeScore), // Base Score
			fmtFloat(r.AfterScore),  // Target Score
			deltaStr,                // Delta Score
			string(r.Status),        // Status
		}
		if cfg.Detail {
			row = append(row, fmt.Sprintf(intFmt, r.DeltaDegree), formatClusterMove(r))
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	// Compute summary stats
	summary := comparisonResult.Summary
	if _, err := fmt.Fprintf(writer, "Showing top %d changes\n", len(comparisonResult.Details)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Net score delta: %.*f, Net degree delta: %d\n", cfg.Precision, summary.NetScoreDelta, summary.NetDegreeDelta); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "New nodes: %d, Removed nodes: %d, Modified nodes: %d, Community moves: %d\n", summary.TotalNewNodes, summary.TotalRemovedNodes, summary.TotalModifiedNodes, summary.TotalCommunityMoves); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v with %d workers. Cache backend: %s\n", duration, cfg.Workers, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// formatClusterMove renders a community reassignment for the detail column.
func formatClusterMove(r schema.ComparisonDetail) string {
	switch r.Status {
	case schema.NewStatus:
		return fmt.Sprintf("→ %d", r.AfterCluster)
	case schema.RemovedStatus:
		return fmt.Sprintf("%d →", r.BeforeCluster)
	default:
		if r.BeforeCluster == r.AfterCluster {
			return "stable"
		}
		return fmt.Sprintf("%d → %d", r.BeforeCluster, r.AfterCluster)
	}
}

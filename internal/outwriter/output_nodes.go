package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/mquintal/graphlens/internal/contract"
	"github.com/mquintal/graphlens/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteNodeResults outputs the analysis results, dispatching based on the output format configured.
func WriteNodeResults(nodes []schema.NodeResult, cfg *contract.Config, duration time.Duration, status schema.ResultStatus) error {
	// Create formatters using helper
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeNodeJSONResults(nodes, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeNodeCSVResults(nodes, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeNodeTable(nodes, cfg, fmtFloat, duration, status, w)
		}, "Wrote table")
	}
	return nil
}

// writeNodeJSONResults handles opening the file and calling the JSON writer.
func writeNodeJSONResults(nodes []schema.NodeResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, schema.EnrichNodes(nodes))
	}, "Wrote JSON")
}

// writeNodeCSVResults handles opening the file and calling the CSV writer.
func writeNodeCSVResults(nodes []schema.NodeResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	header := []string{
		"rank",
		"id",
		"label",
		"type",
		"score",
		"level",
		"degree",
		"betweenness",
		"closeness",
		"clustering",
		"eigenvector",
		"raw_degree",
		"community",
		"mode",
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for i, n := range nodes {
				rec := []string{
					strconv.Itoa(i + 1),               // Rank
					n.ID,                              // Node ID
					n.Label,                           // Label
					string(n.Type),                    // Type
					fmtFloat(n.ModeScore),             // Score
					schema.GetPlainLabel(n.ModeScore), // Level
					fmtFloat(n.Metrics.Degree),        // Degree
					fmtFloat(n.Metrics.Betweenness),   // Betweenness
					fmtFloat(n.Metrics.Closeness),     // Closeness
					fmtFloat(n.Metrics.Clustering),    // Clustering
					fmtFloat(n.Metrics.Eigenvector),   // Eigenvector
					strconv.Itoa(n.RawDegree),         // Raw Degree
					strconv.Itoa(n.Community),         // Community
					string(cfg.Mode),                  // Mode
				}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeNodeTable generates and writes the human-readable table.
func writeNodeTable(nodes []schema.NodeResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, status schema.ResultStatus, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Rank", "Node", "Type", "Score", "Label"}
	if cfg.Detail {
		headers = append(headers, "Degree", "Between", "Close", "Cluster", "Eigen", "Community")
	}
	if cfg.Explain {
		headers = append(headers, "Explain")
	}
	table.Header(headers)

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	var data [][]string
	for i, n := range nodes {
		row := []string{
			strconv.Itoa(i + 1), // Rank
			contract.TruncateLabel(n.Label, getMaxTableLabelWidth(cfg)), // Node
			string(n.Type),                      // Type
			fmtFloat(n.ModeScore),               // Score
			contract.GetColorLabel(n.ModeScore), // Label
		}
		if cfg.Detail {
			row = append(
				row,
				fmtFloat(n.Metrics.Degree),      // Degree
				fmtFloat(n.Metrics.Betweenness), // Betweenness
				fmtFloat(n.Metrics.Closeness),   // Closeness
				fmtFloat(n.Metrics.Clustering),  // Clustering
				fmtFloat(n.Metrics.Eigenvector), // Eigenvector
				strconv.Itoa(n.Community),       // Community
			)
		}
		if cfg.Explain {
			row = append(row, formatTopMetricBreakdown(n.Breakdown)) // Breakdown explanation
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
	totalEdges := 0
	for _, n := range nodes {
		totalEdges += n.RawDegree
	}
	if _, err := fmt.Fprintf(writer, "Showing top %d nodes (status: %s, total degree: %d)\n", len(nodes), status, totalEdges); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v with %d workers. Cache backend: %s\n", duration, cfg.Workers, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

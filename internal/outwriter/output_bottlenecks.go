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

// WriteBottleneckResults outputs bottleneck nodes, dispatching based on the output format configured.
func WriteBottleneckResults(results []schema.BottleneckResult, cfg *contract.Config, duration time.Duration, status schema.ResultStatus) error {
	// Create formatters using helper
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeBottleneckJSONResults(results, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeBottleneckCSVResults(results, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBottleneckTable(results, cfg, fmtFloat, duration, status, w)
		}, "Wrote table")
	}
	return nil
}

// writeBottleneckJSONResults handles opening the file and calling the JSON writer.
func writeBottleneckJSONResults(results []schema.BottleneckResult, cfg *contract.Config) error {
	type JSONBottleneckResult struct {
		Rank int `json:"rank"`
		schema.BottleneckResult
	}

	output := make([]JSONBottleneckResult, len(results))
	for i, r := range results {
		output[i] = JSONBottleneckResult{
			Rank:             i + 1,
			BottleneckResult: r,
		}
	}

	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, output)
	}, "Wrote JSON")
}

// writeBottleneckCSVResults handles opening the file and calling the CSV writer.
func writeBottleneckCSVResults(results []schema.BottleneckResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	header := []string{
		"rank",
		"id",
		"label",
		"score",
		"severity",
		"connections",
		"betweenness",
		"clustering",
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for i, r := range results {
				rec := []string{
					strconv.Itoa(i + 1),          // Rank
					r.NodeID,                     // Node ID
					r.Label,                      // Label
					fmtFloat(r.Score),            // Score
					r.Severity,                   // Severity
					strconv.Itoa(r.Connections),  // Connections
					fmtFloat(r.Betweenness),      // Betweenness
					fmtFloat(r.Clustering),       // Clustering
				}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeBottleneckTable generates and writes the human-readable table.
func writeBottleneckTable(results []schema.BottleneckResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, status schema.ResultStatus, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	headers := []string{"Rank", "Node", "Score", "Severity", "Connections", "Between", "Cluster"}
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, r := range results {
		row := []string{
			strconv.Itoa(i + 1), // Rank
			contract.TruncateLabel(r.Label, getMaxTableLabelWidth(cfg)), // Node
			fmtFloat(r.Score),               // Score
			contract.GetColorLabel(r.Score), // Severity
			strconv.Itoa(r.Connections),     // Connections
			fmtFloat(r.Betweenness),         // Betweenness
			fmtFloat(r.Clustering),          // Clustering
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Showing %d bottleneck nodes (status: %s)\n", len(results), status); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v with %d workers. Cache backend: %s\n", duration, cfg.Workers, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

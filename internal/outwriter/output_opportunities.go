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

// WriteOpportunityResults outputs collaboration suggestions, dispatching based on the output format configured.
func WriteOpportunityResults(results []schema.OpportunityResult, cfg *contract.Config, duration time.Duration, status schema.ResultStatus) error {
	// Create formatters using helper
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeOpportunityJSONResults(results, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeOpportunityCSVResults(results, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeOpportunityTable(results, cfg, fmtFloat, duration, status, w)
		}, "Wrote table")
	}
	return nil
}

// writeOpportunityJSONResults handles opening the file and calling the JSON writer.
func writeOpportunityJSONResults(results []schema.OpportunityResult, cfg *contract.Config) error {
	type JSONOpportunityResult struct {
		Rank int `json:"rank"`
		schema.OpportunityResult
	}

	output := make([]JSONOpportunityResult, len(results))
	for i, r := range results {
		output[i] = JSONOpportunityResult{
			Rank:              i + 1,
			OpportunityResult: r,
		}
	}

	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, output)
	}, "Wrote JSON")
}

// writeOpportunityCSVResults handles opening the file and calling the CSV writer.
func writeOpportunityCSVResults(results []schema.OpportunityResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	header := []string{
		"rank",
		"node_a",
		"node_b",
		"score",
		"signal",
		"reason",
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for i, r := range results {
				rec := []string{
					strconv.Itoa(i + 1), // Rank
					r.NodeA,             // Node A
					r.NodeB,             // Node B
					fmtFloat(r.Score),   // Score
					string(r.Signal),    // Signal
					r.Reason,            // Reason
				}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeOpportunityTable generates and writes the human-readable table.
func writeOpportunityTable(results []schema.OpportunityResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, status schema.ResultStatus, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	headers := []string{"Rank", "Node A", "Node B", "Score", "Signal", "Reason"}
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	maxWidth := getMaxTableLabelWidth(cfg)
	var data [][]string
	for i, r := range results {
		row := []string{
			strconv.Itoa(i + 1),                      // Rank
			contract.TruncateLabel(r.NodeA, maxWidth), // Node A
			contract.TruncateLabel(r.NodeB, maxWidth), // Node B
			fmtFloat(r.Score),                        // Score
			string(r.Signal),                         // Signal
			r.Reason,                                 // Reason
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Showing %d collaboration opportunities (status: %s)\n", len(results), status); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v with %d workers. Cache backend: %s\n", duration, cfg.Workers, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

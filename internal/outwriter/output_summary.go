package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/mquintal/graphlens/internal/contract"
	"github.com/mquintal/graphlens/schema"
)

// WriteSummaryResult outputs the whole-graph summary, dispatching based on the output format configured.
func WriteSummaryResult(summary schema.GraphSummary, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, summary)
		}, "Wrote JSON")
	case schema.CSVOut:
		if err := writeSummaryCSV(summary, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable text
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSummaryText(summary, cfg, fmtFloat, duration, w)
		}, "Wrote text")
	}
	return nil
}

// writeSummaryCSV writes the summary as a single CSV record.
func writeSummaryCSV(summary schema.GraphSummary, cfg *contract.Config, fmtFloat func(float64) string) error {
	header := []string{
		"nodes",
		"edges",
		"density",
		"modularity",
		"connectedness",
		"components",
		"centralization",
		"resilience",
		"efficiency",
		"diameter",
		"status",
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			rec := []string{
				strconv.Itoa(summary.NodeCount),
				strconv.Itoa(summary.EdgeCount),
				fmtFloat(summary.Density),
				fmtFloat(summary.Modularity),
				fmtFloat(summary.Connectedness),
				strconv.Itoa(summary.Components),
				fmtFloat(summary.Centralization),
				fmtFloat(summary.Resilience),
				fmtFloat(summary.Efficiency),
				strconv.Itoa(summary.Diameter),
				string(summary.Status),
			}
			return csvWriter.Write(rec)
		})
	}, "Wrote CSV")
}

// writeSummaryText writes the summary as aligned key-value lines.
func writeSummaryText(summary schema.GraphSummary, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	if _, err := fmt.Fprintf(writer, "📈 Graph Summary\n"); err != nil {
		return err
	}

	// Define labels and values for dynamic padding
	labels := []string{
		"Nodes:",
		"Edges:",
		"Density:",
		"Modularity:",
		"Connectedness:",
		"Components:",
		"Centralization:",
		"Resilience:",
		"Efficiency:",
		"Diameter:",
	}
	values := []string{
		strconv.Itoa(summary.NodeCount),
		strconv.Itoa(summary.EdgeCount),
		fmtFloat(summary.Density),
		fmtFloat(summary.Modularity),
		fmtFloat(summary.Connectedness),
		strconv.Itoa(summary.Components),
		fmtFloat(summary.Centralization),
		fmtFloat(summary.Resilience),
		fmtFloat(summary.Efficiency),
		strconv.Itoa(summary.Diameter),
	}

	// Find the longest label for consistent padding
	maxLabelLen := 0
	for _, label := range labels {
		if len(label) > maxLabelLen {
			maxLabelLen = len(label)
		}
	}

	// Print each label-value pair with consistent padding
	for i, label := range labels {
		if _, err := fmt.Fprintf(writer, "  %-*s %s\n", maxLabelLen+1, label, values[i]); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(writer, "\nStatus: %s\n", summary.Status); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v with %d workers. Cache backend: %s\n", duration, cfg.Workers, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

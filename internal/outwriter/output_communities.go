package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/mquintal/graphlens/internal/contract"
	"github.com/mquintal/graphlens/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// memberPreviewLimit caps how many member labels show in the table column.
const memberPreviewLimit = 3

// WriteClusterResults outputs detected communities, dispatching based on the output format configured.
func WriteClusterResults(clusters []schema.Cluster, modularity float64, cfg *contract.Config, duration time.Duration, status schema.ResultStatus) error {
	// Create formatters using helper
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeClusterJSONResults(clusters, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeClusterCSVResults(clusters, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeClusterTable(clusters, modularity, cfg, fmtFloat, duration, status, w)
		}, "Wrote table")
	}
	return nil
}

// writeClusterJSONResults handles opening the file and calling the JSON writer.
func writeClusterJSONResults(clusters []schema.Cluster, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, schema.EnrichClusters(clusters))
	}, "Wrote JSON")
}

// writeClusterCSVResults handles opening the file and calling the CSV writer.
func writeClusterCSVResults(clusters []schema.Cluster, cfg *contract.Config, fmtFloat func(float64) string) error {
	header := []string{
		"rank",
		"community",
		"size",
		"score",
		"level",
		"members",
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for i, c := range clusters {
				rec := []string{
					strconv.Itoa(i + 1),           // Rank
					c.ID,                          // Community ID
					strconv.Itoa(len(c.Members)),  // Size
					fmtFloat(c.Score),             // Score
					schema.GetPlainLabel(c.Score), // Level
					strings.Join(c.Members, "|"),  // Members
				}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeClusterTable generates and writes the human-readable table.
func writeClusterTable(clusters []schema.Cluster, modularity float64, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, status schema.ResultStatus, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	headers := []string{"Rank", "Community", "Size", "Score", "Label", "Members"}
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, c := range clusters {
		row := []string{
			strconv.Itoa(i + 1),            // Rank
			c.ID,                           // Community
			strconv.Itoa(len(c.Members)),   // Size
			fmtFloat(c.Score),              // Score
			contract.GetColorLabel(c.Score), // Label
			formatMemberPreview(c.Members), // Members
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	// Compute summary stats
	totalMembers := 0
	for _, c := range clusters {
		totalMembers += len(c.Members)
	}
	if _, err := fmt.Fprintf(writer, "Showing top %d communities covering %d nodes (status: %s)\n", len(clusters), totalMembers, status); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Modularity: %.4f\n", modularity); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v with %d workers. Cache backend: %s\n", duration, cfg.Workers, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// formatMemberPreview shows the first few members with a count of the rest.
func formatMemberPreview(members []string) string {
	if len(members) <= memberPreviewLimit {
		return strings.Join(members, ", ")
	}
	preview := strings.Join(members[:memberPreviewLimit], ", ")
	return fmt.Sprintf("%s (+%d more)", preview, len(members)-memberPreviewLimit)
}

package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/mquintal/graphlens/internal/contract"
	"github.com/mquintal/graphlens/schema"
)

// getDisplayNameForMode returns the display name with emoji for a given mode name.
func getDisplayNameForMode(modeName string) string {
	switch modeName {
	case "influence":
		return "🌟 INFLUENCE"
	case "broker":
		return "🌉 BROKER"
	case "anchor":
		return "⚓ ANCHOR"
	case "periphery":
		return "🛰️  PERIPHERY"
	default:
		return strings.ToUpper(modeName)
	}
}

// getDisplayWeightsForMode returns the weights to display for a given scoring mode.
// Uses active weights if available, otherwise falls back to defaults.
func getDisplayWeightsForMode(mode schema.ScoringMode, activeWeights map[schema.ScoringMode]map[schema.BreakdownKey]float64) map[string]float64 {
	// Start with default weights
	defaultWeights := schema.GetDefaultWeights(mode)

	// Convert BreakdownKey map to string map for backward compatibility
	weights := make(map[string]float64)
	for k, v := range defaultWeights {
		weights[string(k)] = v
	}

	// Override with active weights if provided
	if activeWeights != nil {
		if modeWeights, ok := activeWeights[mode]; ok {
			// Only override weights that are actually customized
			for k, v := range modeWeights {
				weights[string(k)] = v
			}
		}
	}

	return weights
}

// formatWeights formats weights for display in formulas.
func formatWeights(weights map[string]float64, factorKeys []string) string {
	var parts []string
	for _, key := range factorKeys {
		if weight, ok := weights[key]; ok && weight > 0 {
			parts = append(parts, fmt.Sprintf("%.2f*%s", weight, key))
		}
	}
	return strings.Join(parts, "+")
}

// WriteMetricsDefinitions displays the formal definitions of all scoring modes.
// This is a static display that does not require graph analysis.
func WriteMetricsDefinitions(activeWeights map[schema.ScoringMode]map[schema.BreakdownKey]float64, cfg *contract.Config) error {
	// Build the complete render model with all processed data
	renderModel := buildMetricsRenderModel(activeWeights)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, renderModel)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			writer := csv.NewWriter(w)
			defer writer.Flush()
			return writeCSVMetrics(writer, renderModel)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMetricsText(w, renderModel)
		}, "Wrote text")
	}
}

// writeMetricsText displays metrics in human-readable text format.
func writeMetricsText(w io.Writer, renderModel *schema.MetricsRenderModel) error {
	if _, err := fmt.Fprintf(w, "📐 %s\n", renderModel.Title); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "========================\n\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s\n\n", renderModel.Description); err != nil {
		return err
	}

	for _, mode := range renderModel.Modes {
		// Add emoji prefix for display
		displayName := getDisplayNameForMode(mode.Name)
		if _, err := fmt.Fprintf(w, "%s: %s\n", displayName, mode.Purpose); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "   Factors: %s\n", strings.Join(mode.Factors, ", ")); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "   Formula: Score = %s\n\n", mode.Formula); err != nil {
			return err
		}
	}

	return nil
}

// writeCSVMetrics writes the metrics definitions in CSV format.
func writeCSVMetrics(w *csv.Writer, renderModel *schema.MetricsRenderModel) error {
	// Write header
	header := []string{"Mode", "Purpose", "Factors", "Formula"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write each mode
	for _, mode := range renderModel.Modes {
		record := []string{
			mode.Name,
			mode.Purpose,
			strings.Join(mode.Factors, "|"),
			mode.Formula,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	return nil
}

// buildMetricsRenderModel constructs the complete render model with all processed data.
func buildMetricsRenderModel(activeWeights map[schema.ScoringMode]map[schema.BreakdownKey]float64) *schema.MetricsRenderModel {
	modes := []schema.MetricsMode{
		{
			Name:       "influence",
			Purpose:    "Overall reach - well-connected nodes central to the whole graph",
			Factors:    []string{"Eigenvector", "Degree", "Closeness", "Betweenness", "Clustering"},
			FactorKeys: []string{string(schema.BreakdownEigenvector), string(schema.BreakdownDegree), string(schema.BreakdownCloseness), string(schema.BreakdownBetweenness), string(schema.BreakdownClustering)},
		},
		{
			Name:       "broker",
			Purpose:    "Bridging position - nodes that sit between otherwise distant groups",
			Factors:    []string{"Betweenness", "InvClustering", "Closeness", "Degree", "Eigenvector"},
			FactorKeys: []string{string(schema.BreakdownBetweenness), string(schema.BreakdownInvClustering), string(schema.BreakdownCloseness), string(schema.BreakdownDegree), string(schema.BreakdownEigenvector)},
		},
		{
			Name:       "anchor",
			Purpose:    "Local cohesion - nodes embedded in tight, stable neighborhoods",
			Factors:    []string{"Clustering", "Degree", "Eigenvector", "Closeness", "Betweenness"},
			FactorKeys: []string{string(schema.BreakdownClustering), string(schema.BreakdownDegree), string(schema.BreakdownEigenvector), string(schema.BreakdownCloseness), string(schema.BreakdownBetweenness)},
		},
		{
			Name:       "periphery",
			Purpose:    "Isolation risk - poorly connected nodes at the edge of the graph",
			Factors:    []string{"InvDegree", "InvCloseness", "InvEigenvector", "InvClustering"},
			FactorKeys: []string{string(schema.BreakdownInvDegree), string(schema.BreakdownInvCloseness), string(schema.BreakdownInvEigenvector), string(schema.BreakdownInvClustering)},
		},
	}
	modesWithData := make([]schema.MetricsModeWithData, len(modes))

	for i, mode := range modes {
		weights := getDisplayWeightsForMode(schema.ScoringMode(mode.Name), activeWeights)
		formula := formatWeights(weights, mode.FactorKeys)

		modesWithData[i] = schema.MetricsModeWithData{
			MetricsMode: mode,
			Weights:     weights,
			Formula:     formula,
		}
	}

	return &schema.MetricsRenderModel{
		Title:       "Graphlens Scoring Modes",
		Description: "All scores = weighted sum of normalized centrality factors",
		Modes:       modesWithData,
	}
}

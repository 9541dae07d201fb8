// Package main provides a performance benchmarking tool for the Graphlens CLI.
// It measures execution times across different snapshot sizes and command types,
// running each test multiple times, treating the first successful run as cold and
// averaging the rest as warm, generating CSV output for performance analysis.
//
// Prerequisites:
// - graphlens binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory where synthetic snapshots are generated
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-cache average, cold run and average of warm runs).
type BenchmarkResult struct {
	Snapshot    string
	Command     string
	NoCacheTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir     string
	Timeout     time.Duration
	Workers     int
	NoCacheRuns int
	CacheRuns   int
	Sizes       map[string]int
}

// graphNode and graphEdge mirror the snapshot wire format without importing
// internal packages, since this tool drives the CLI as a black box.
type graphNode struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

type graphEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

type graphData struct {
	Nodes []graphNode `json:"nodes"`
	Edges []graphEdge `json:"edges"`
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}
	workDir := os.Args[1]

	config := BenchmarkConfig{
		WorkDir:     workDir,
		Timeout:     5 * time.Minute,
		Workers:     14,
		NoCacheRuns: 3,
		CacheRuns:   4,
		Sizes: map[string]int{
			"small":  100,
			"medium": 1000,
			"large":  5000,
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	// Clear the cache using graphlens cache clear
	fmt.Printf("Clearing cache...\n")
	clearCmd := exec.Command("graphlens", "cache", "clear")
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear cache: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("Cache cleared successfully\n")
	}

	results, err := runBenchmarks(config)
	if err != nil {
		fmt.Printf("Benchmark failed: %v\n", err)
		os.Exit(1)
	}

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the graphlens binary and work directory exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("graphlens"); err != nil {
		return fmt.Errorf("graphlens binary not found in PATH")
	}

	if err := os.MkdirAll(config.WorkDir, 0o755); err != nil {
		return fmt.Errorf("cannot create work dir %s: %w", config.WorkDir, err)
	}

	return nil
}

// generateSnapshot writes a synthetic collaboration graph with the given node
// count. The topology is a ring plus random chords so every graph is connected
// and has non-trivial betweenness and community structure.
func generateSnapshot(path string, nodeCount int, seed int64) error {
	rng := rand.New(rand.NewSource(seed))
	types := []string{"user", "user", "user", "team", "project", "skill"}

	graph := graphData{
		Nodes: make([]graphNode, 0, nodeCount),
		Edges: make([]graphEdge, 0, nodeCount*3),
	}

	for i := range nodeCount {
		graph.Nodes = append(graph.Nodes, graphNode{
			ID:    fmt.Sprintf("n%d", i),
			Label: fmt.Sprintf("Node %d", i),
			Type:  types[rng.Intn(len(types))],
		})
	}

	// Ring keeps the graph connected
	for i := range nodeCount {
		graph.Edges = append(graph.Edges, graphEdge{
			Source: fmt.Sprintf("n%d", i),
			Target: fmt.Sprintf("n%d", (i+1)%nodeCount),
		})
	}

	// Random chords create hubs and communities
	for range nodeCount * 2 {
		a := rng.Intn(nodeCount)
		b := rng.Intn(nodeCount)
		if a == b {
			continue
		}
		graph.Edges = append(graph.Edges, graphEdge{
			Source: fmt.Sprintf("n%d", a),
			Target: fmt.Sprintf("n%d", b),
		})
	}

	data, err := json.Marshal(graph)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// runBenchmarks executes all benchmark tests across configured snapshot sizes
func runBenchmarks(config BenchmarkConfig) ([]BenchmarkResult, error) {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d sizes, %v timeout, %d workers, no-cache: %d runs, cache: %d runs\n",
		len(config.Sizes), config.Timeout, config.Workers, config.NoCacheRuns, config.CacheRuns)

	for _, name := range []string{"small", "medium", "large"} {
		nodeCount := config.Sizes[name]
		fmt.Printf("Benchmarking %s (%d nodes)\n", name, nodeCount)

		snapshotPath := filepath.Join(config.WorkDir, name+".json")
		if err := generateSnapshot(snapshotPath, nodeCount, int64(nodeCount)); err != nil {
			return nil, fmt.Errorf("cannot generate snapshot %s: %w", name, err)
		}

		// A slightly perturbed sibling snapshot for compare runs
		targetPath := filepath.Join(config.WorkDir, name+"_next.json")
		if err := generateSnapshot(targetPath, nodeCount, int64(nodeCount)+1); err != nil {
			return nil, fmt.Errorf("cannot generate snapshot %s: %w", name, err)
		}

		// Node analysis
		result := runBenchmarkSuite(config, name, "nodes", "node analysis", []string{snapshotPath})
		results = append(results, result)

		// Community analysis
		result = runBenchmarkSuite(config, name, "communities", "community analysis", []string{snapshotPath})
		results = append(results, result)

		// Compare analysis
		compareArgs := []string{"--base-snapshot", snapshotPath, "--target-snapshot", targetPath}
		result = runBenchmarkSuite(config, name, "compare", "compare analysis", compareArgs)
		results = append(results, result)
	}

	return results, nil
}

// runBenchmarkSuite runs both no-cache and cache benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, snapshot, command, description string, extraArgs []string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", description, snapshot)

	// Helper to run a benchmark phase
	runPhase := func(cacheBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, command, extraArgs, cacheBackend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avg := sum / float64(len(times))
			avgTime = fmt.Sprintf("%.3fs", avg)
		}
		return cold, avgTime
	}

	// Phase 1: No-cache runs
	_, noCacheAvg := runPhase("none", config.NoCacheRuns, "No-cache")

	// Phase 2: Cache runs
	coldTime, warmAvg := runPhase("sqlite", config.CacheRuns, "Cache")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-cache average: %s, Cold time: %s, Warm average: %s\n", noCacheAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Snapshot:    snapshot,
		Command:     command,
		NoCacheTime: noCacheAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes a graphlens command multiple times with the specified cache backend and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, command string, extraArgs []string, cacheBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := []string{command, "--cache-backend", cacheBackend, "--workers", fmt.Sprintf("%d", config.Workers)}
	args = append(args, extraArgs...)

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("graphlens", args...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte) bool {
	outputStr := string(output)
	return strings.Contains(outputStr, "completed in") &&
		strings.Contains(outputStr, "workers")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/graphlens_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"snapshot", "cmd", "no_cache_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Snapshot, result.Command, result.NoCacheTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "nodes", "Node Analysis:")
	printCommandSummary(results, "communities", "Community Analysis:")
	printCommandSummary(results, "compare", "Compare Analysis:")

	fmt.Printf("Benchmark script completed successfully\n")
}

// printCommandSummary displays results for a specific command type
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-12s: No-cache: %s, Cold: %s, Warm: %s\n", result.Snapshot, result.NoCacheTime, result.ColdTime, result.WarmTime)
		}
	}
}

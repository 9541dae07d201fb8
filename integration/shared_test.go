//go:build basic || database

package integration

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"

	"github.com/mquintal/graphlens/schema"
)

var (
	// sharedGraphlensPath holds the path to a shared graphlens binary built once for all tests.
	sharedGraphlensPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getGraphlensBinary returns the path to the graphlens binary, building it once if needed.
func getGraphlensBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		// Create a temp directory for the binary
		var err error
		tempDir, err = os.MkdirTemp("", "graphlens-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		graphlensPath := filepath.Join(tempDir, "graphlens")
		buildCmd := exec.Command("go", "build", "-o", graphlensPath, "./cmd/graphlens")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		err = buildCmd.Run()
		if err != nil {
			panic(fmt.Sprintf("failed to build graphlens: %v", err))
		}

		sharedGraphlensPath = graphlensPath
	})

	return sharedGraphlensPath
}

// writeSnapshotFile writes a small collaboration graph snapshot for CLI tests.
func writeSnapshotFile(t *testing.T, dir string) string {
	t.Helper()

	graph := schema.GraphData{
		Nodes: []schema.Node{
			{ID: "alice", Label: "Alice", Type: schema.UserNode},
			{ID: "bob", Label: "Bob", Type: schema.UserNode},
			{ID: "carol", Label: "Carol", Type: schema.UserNode},
			{ID: "platform", Label: "Platform", Type: schema.TeamNode},
			{ID: "search", Label: "Search", Type: schema.ProjectNode},
		},
		Edges: []schema.Edge{
			{Source: "alice", Target: "bob"},
			{Source: "alice", Target: "carol"},
			{Source: "bob", Target: "platform"},
			{Source: "carol", Target: "platform"},
			{Source: "platform", Target: "search"},
		},
	}

	data, err := json.Marshal(graph)
	if err != nil {
		t.Fatalf("failed to marshal snapshot: %v", err)
	}

	path := filepath.Join(dir, "snapshot.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write snapshot: %v", err)
	}
	return path
}

package contract

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mquintal/graphlens/schema"
)

// LocalGraphSource implements the GraphSource interface by reading a JSON
// snapshot file from the local filesystem.
type LocalGraphSource struct {
	path string
}

var _ GraphSource = &LocalGraphSource{} // Compile-time check

// NewLocalGraphSource creates a new snapshot source for the given path.
func NewLocalGraphSource(path string) *LocalGraphSource {
	return &LocalGraphSource{path: path}
}

// Load reads the snapshot file, parses it, and validates its structure.
func (s *LocalGraphSource) Load(ctx context.Context) (*schema.GraphData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("cannot read snapshot %q: %w", s.path, err)
	}

	var graph schema.GraphData
	if err := json.Unmarshal(raw, &graph); err != nil {
		return nil, fmt.Errorf("cannot parse snapshot %q: %w", s.path, err)
	}

	if err := ValidateGraph(&graph); err != nil {
		return nil, fmt.Errorf("invalid snapshot %q: %w", s.path, err)
	}
	return &graph, nil
}

// Hash returns the SHA-256 of the snapshot file contents. Identical
// snapshots at different paths share cache entries.
func (s *LocalGraphSource) Hash(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return "", fmt.Errorf("cannot read snapshot %q: %w", s.path, err)
	}
	return fmt.Sprintf("%x", sha256.Sum256(raw)), nil
}

// Name returns the snapshot's base filename.
func (s *LocalGraphSource) Name() string {
	return filepath.Base(s.path)
}

// ValidateGraph checks structural invariants of a parsed graph: non-empty
// unique node ids, edges referencing known nodes, and recognized node
// types. Missing node types default to unknown.
func ValidateGraph(graph *schema.GraphData) error {
	seen := make(map[string]struct{}, len(graph.Nodes))
	for i := range graph.Nodes {
		node := &graph.Nodes[i]
		if node.ID == "" {
			return fmt.Errorf("node at index %d has an empty id", i)
		}
		if _, dup := seen[node.ID]; dup {
			return fmt.Errorf("duplicate node id %q", node.ID)
		}
		seen[node.ID] = struct{}{}

		if node.Type == "" {
			node.Type = schema.UnknownNode
			continue
		}
		if _, ok := schema.ValidNodeTypes[node.Type]; !ok {
			return fmt.Errorf("node %q has unrecognized type %q", node.ID, node.Type)
		}
	}

	for i, edge := range graph.Edges {
		if _, ok := seen[edge.Source]; !ok {
			return fmt.Errorf("edge at index %d references unknown source %q", i, edge.Source)
		}
		if _, ok := seen[edge.Target]; !ok {
			return fmt.Errorf("edge at index %d references unknown target %q", i, edge.Target)
		}
	}
	return nil
}

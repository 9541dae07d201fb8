package schema

import (
	"fmt"
	"strings"
)

// FormatMembers formats a member list as "alice, bob (+3 more)", keeping
// at most maxShown ids inline.
func FormatMembers(members []string, maxShown int) string {
	if len(members) == 0 {
		return ""
	}
	if maxShown <= 0 || len(members) <= maxShown {
		return strings.Join(members, ", ")
	}
	shown := strings.Join(members[:maxShown], ", ")
	return fmt.Sprintf("%s (+%d more)", shown, len(members)-maxShown)
}

// DisplayName returns the node label when present, falling back to the id.
func DisplayName(n Node) string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// NodeIndex builds an id -> Node lookup for a graph snapshot.
func NodeIndex(g *GraphData) map[string]Node {
	index := make(map[string]Node, len(g.Nodes))
	for _, n := range g.Nodes {
		index[n.ID] = n
	}
	return index
}

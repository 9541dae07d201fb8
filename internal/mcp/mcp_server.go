// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mquintal/graphlens/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Graphlens MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Graphlens Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: get_node_rankings ---
	s.AddTool(mcp.NewTool("get_node_rankings",
		mcp.WithDescription("Analyze a collaboration graph snapshot and rank nodes by centrality score."),
		mcp.WithString("snapshot_path", mcp.Description("Path to the graph snapshot JSON file (defaults to the configured snapshot if not specified).")),
		mcp.WithString("mode", mcp.Description("Scoring mode (influence, broker, anchor, periphery). Defaults to 'influence'."), mcp.Enum("influence", "broker", "anchor", "periphery")),
		mcp.WithString("type", mcp.Description("Restrict results to one node type (user, team, project, goal, skill, document).")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleGetNodeRankings)

	// --- 2. Tool: get_communities ---
	s.AddTool(mcp.NewTool("get_communities",
		mcp.WithDescription("Detect communities in a collaboration graph snapshot and rank them by size."),
		mcp.WithString("snapshot_path", mcp.Description("Path to the graph snapshot JSON file.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of communities returned.")),
	), h.handleGetCommunities)

	// --- 3. Tool: get_bottlenecks ---
	s.AddTool(mcp.NewTool("get_bottlenecks",
		mcp.WithDescription("Identify nodes whose position concentrates shortest paths between groups."),
		mcp.WithString("snapshot_path", mcp.Description("Path to the graph snapshot JSON file.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleGetBottlenecks)

	// --- 4. Tool: get_opportunities ---
	s.AddTool(mcp.NewTool("get_opportunities",
		mcp.WithDescription("Suggest missing connections between node pairs that share structure."),
		mcp.WithString("snapshot_path", mcp.Description("Path to the graph snapshot JSON file.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of suggestions returned.")),
	), h.handleGetOpportunities)

	// --- 5. Tool: get_graph_summary ---
	s.AddTool(mcp.NewTool("get_graph_summary",
		mcp.WithDescription("Compute whole-graph metrics: density, modularity, connectedness, resilience."),
		mcp.WithString("snapshot_path", mcp.Description("Path to the graph snapshot JSON file.")),
	), h.handleGetGraphSummary)

	return s
}

// StartMCPServer starts the Graphlens MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}

package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mquintal/graphlens/core"
	"github.com/mquintal/graphlens/core/algo"
	"github.com/mquintal/graphlens/internal/contract"
	"github.com/mquintal/graphlens/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

// configForRequest clones the base config and applies request overrides
// shared by every tool: snapshot path, scoring mode and result limit.
func (h *toolHandler) configForRequest(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("snapshot_path", ""); p != "" {
		cfg.SnapshotPath = p
	}
	if m := request.GetString("mode", ""); m != "" {
		mode := schema.ScoringMode(m)
		if _, ok := schema.ValidScoringModes[mode]; !ok {
			return nil, fmt.Errorf("invalid mode %q", m)
		}
		cfg.Mode = mode
	}
	if tf := request.GetString("type", ""); tf != "" {
		nodeType := schema.NodeType(tf)
		if _, ok := schema.ValidNodeTypes[nodeType]; !ok {
			return nil, fmt.Errorf("invalid node type %q", tf)
		}
		cfg.TypeFilter = nodeType
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}
	if cfg.SnapshotPath == "" {
		return nil, fmt.Errorf("snapshot_path is required")
	}
	return cfg, nil
}

// engineFor builds an analysis engine over the configured snapshot.
func (h *toolHandler) engineFor(cfg *contract.Config) *core.Engine {
	return core.NewEngine(cfg, contract.NewLocalGraphSource(cfg.SnapshotPath), h.mgr)
}

func (h *toolHandler) handleGetNodeRankings(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configForRequest(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	output, err := h.engineFor(cfg).AnalyzeNodes(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	ranked := algo.RankNodes(output.NodeResults, cfg.ResultLimit)
	enriched := schema.EnrichNodes(ranked)
	jsonData, _ := json.MarshalIndent(enriched, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetCommunities(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configForRequest(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	communities, err := h.engineFor(cfg).Communities(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("community detection failed: %v", err)), nil
	}

	ranked := algo.RankClusters(communities.Communities, cfg.ResultLimit)
	enriched := schema.EnrichClusters(ranked)
	jsonData, _ := json.MarshalIndent(enriched, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetBottlenecks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configForRequest(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	results, _, err := h.engineFor(cfg).Bottlenecks(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("bottleneck analysis failed: %v", err)), nil
	}

	if cfg.ResultLimit > 0 && len(results) > cfg.ResultLimit {
		results = results[:cfg.ResultLimit]
	}
	jsonData, _ := json.MarshalIndent(results, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetOpportunities(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configForRequest(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	results, _, err := h.engineFor(cfg).Opportunities(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("opportunity analysis failed: %v", err)), nil
	}

	if cfg.ResultLimit > 0 && len(results) > cfg.ResultLimit {
		results = results[:cfg.ResultLimit]
	}
	jsonData, _ := json.MarshalIndent(results, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetGraphSummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configForRequest(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	summary, err := h.engineFor(cfg).Summary(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("summary failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(summary, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

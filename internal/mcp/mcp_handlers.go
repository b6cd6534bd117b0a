package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/arcadecab/cabcheck/core"
	"github.com/arcadecab/cabcheck/internal/contract"
	"github.com/arcadecab/cabcheck/internal/outwriter"
	"github.com/arcadecab/cabcheck/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

func (h *toolHandler) handleCheckGames(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.GameNames = request.GetStringSlice("names", nil)
	cfg.AllGames = request.GetBool("all", false)
	if s := request.GetString("sort", ""); s != "" {
		sort := schema.SortOrder(s)
		if _, ok := schema.ValidSortOrders[sort]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid sort %q (must be status or input)", s)), nil
		}
		cfg.Sort = sort
	}
	if len(cfg.GameNames) > contract.MaxGameNames {
		return mcp.NewToolResultError(fmt.Sprintf("too many game names: %d (max %d)", len(cfg.GameNames), contract.MaxGameNames)), nil
	}

	results, err := core.GetCheckResults(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("check failed: %v", err)), nil
	}

	return jsonResult(outwriter.NewJSONGameResults(results))
}

func (h *toolHandler) handleCheckControls(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	cfg := h.baseCfg.Clone()
	cfg.GameNames = []string{name}
	cfg.PanelFilter = request.GetString("panel", "")

	result, err := core.GetControlsResult(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("controls check failed: %v", err)), nil
	}
	if result.Game == nil {
		return mcp.NewToolResultError(fmt.Sprintf("game %q not found", name)), nil
	}

	return jsonResult(struct {
		Input  string                       `json:"input"`
		Name   string                       `json:"name"`
		Title  string                       `json:"title"`
		Panels []outwriter.JSONPanelExplain `json:"panels"`
	}{
		Input:  result.GameNameInput,
		Name:   result.Game.Name,
		Title:  result.Game.Title(),
		Panels: outwriter.NewJSONPanelExplains(result.ControlsComps),
	})
}

func (h *toolHandler) handleListPanels(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(h.baseCfg.Panels)
}

func (h *toolHandler) handleListMonitors(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(h.baseCfg.Monitors)
}

// jsonResult wraps data as indented JSON text.
func jsonResult(data any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

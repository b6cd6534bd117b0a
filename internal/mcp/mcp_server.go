// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/arcadecab/cabcheck/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the cabcheck MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Cabinet Compatibility Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	s.AddTool(mcp.NewTool("check_games",
		mcp.WithDescription("Rate how well games run on the configured cabinet: emulation, video on each monitor and controls on each panel."),
		mcp.WithArray("names", mcp.Description("Game short names to check (e.g. sf2, pacman)."), mcp.Items(map[string]any{"type": "string"})),
		mcp.WithBoolean("all", mcp.Description("Check every game in the database instead of names.")),
		mcp.WithString("sort", mcp.Description("Result order. Defaults to 'status'."), mcp.Enum("status", "input")),
	), h.handleCheckGames)

	s.AddTool(mcp.NewTool("check_controls",
		mcp.WithDescription("Explain how the controls of one game are allocated onto the control panels."),
		mcp.WithString("name", mcp.Description("Game short name."), mcp.Required()),
		mcp.WithString("panel", mcp.Description("Restrict the explanation to one panel ID or name.")),
	), h.handleCheckControls)

	s.AddTool(mcp.NewTool("list_panels",
		mcp.WithDescription("List the configured control panels with their controls, button clusters and control sets."),
	), h.handleListPanels)

	s.AddTool(mcp.NewTool("list_monitors",
		mcp.WithDescription("List the configured monitors and their modeline settings."),
	), h.handleListMonitors)

	return s
}

// StartMCPServer starts the cabcheck MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}

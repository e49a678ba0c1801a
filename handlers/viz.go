// ABOUTME: Dashboard and pipeline graph MCP handlers
// ABOUTME: Provides hub_dashboard and pipeline_graph tools for agents
package handlers

import (
	"context"
	"strings"

	"github.com/harperreed/lifehub/hub"
	"github.com/harperreed/lifehub/viz"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type VizHandlers struct {
	hub *hub.Hub
}

func NewVizHandlers(h *hub.Hub) *VizHandlers {
	return &VizHandlers{hub: h}
}

type DashboardInput struct{}

type DashboardOutput struct {
	Text         string         `json:"text"`
	Tiles        map[string]int `json:"tiles"`
	TotalClients int            `json:"total_clients"`
	Upcoming     int            `json:"upcoming_posts"`
	Stale        int            `json:"stale_clients"`
}

func (h *VizHandlers) Dashboard(_ context.Context, _ *mcp.CallToolRequest, _ DashboardInput) (*mcp.CallToolResult, DashboardOutput, error) {
	stats := viz.GenerateDashboardStats(h.hub)
	tiles := make(map[string]int, len(stats.Tiles))
	for _, t := range stats.Tiles {
		tiles[string(t.Stage)] = t.Count
	}
	return nil, DashboardOutput{
		Text:         viz.RenderDashboard(stats),
		Tiles:        tiles,
		TotalClients: stats.TotalClients,
		Upcoming:     len(stats.UpcomingPosts),
		Stale:        len(stats.StaleClients),
	}, nil
}

type PipelineGraphInput struct{}

type PipelineGraphOutput struct {
	DOTSource string `json:"dot_source"`
	EdgeCount int    `json:"edge_count"`
}

func (h *VizHandlers) PipelineGraph(_ context.Context, _ *mcp.CallToolRequest, _ PipelineGraphInput) (*mcp.CallToolResult, PipelineGraphOutput, error) {
	dot, err := viz.GeneratePipelineGraph(h.hub.Clients())
	if err != nil {
		return nil, PipelineGraphOutput{}, err
	}
	return nil, PipelineGraphOutput{DOTSource: dot, EdgeCount: strings.Count(dot, "->")}, nil
}

// ABOUTME: MCP server assembly for the hub
// ABOUTME: Registers every tool, resource and prompt against one Hub
package handlers

import (
	"github.com/harperreed/lifehub/hub"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer builds an MCP server exposing h.
func NewServer(h *hub.Hub, version string) *mcp.Server {
	clientHandlers := NewClientHandlers(h)
	postHandlers := NewPostHandlers(h)
	libraryHandlers := NewLibraryHandlers(h)
	vizHandlers := NewVizHandlers(h)
	resourceHandlers := NewResourceHandlers(h)
	promptHandlers := NewPromptHandlers(h)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "lifehub",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_client",
		Description: "Add a client to the pipeline (defaults to New Lead in Schuylkill)",
	}, clientHandlers.AddClient)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_clients",
		Description: "Search clients by name, email or notes, optionally within one stage",
	}, clientHandlers.FindClients)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "move_client",
		Description: "Move a client to any pipeline stage",
	}, clientHandlers.MoveClient)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_client",
		Description: "Delete a client",
	}, clientHandlers.DeleteClient)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "schedule_post",
		Description: "Schedule a social post for a date/time or quick-date preset, or save it as a draft",
	}, postHandlers.SchedulePost)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_posts",
		Description: "List social posts in date order with optional status, platform and month filters",
	}, postHandlers.ListPosts)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "remove_post",
		Description: "Remove a social post",
	}, postHandlers.RemovePost)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "month_calendar",
		Description: "Show the posts for each day of a month",
	}, postHandlers.MonthCalendar)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "quick_date",
		Description: "Resolve a quick-date preset (tomorrow, weekend, prime) to a schedule time",
	}, postHandlers.QuickDate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_library",
		Description: "Full-text search over saved links, documents and strategy templates",
	}, libraryHandlers.SearchLibrary)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "hub_dashboard",
		Description: "Pipeline tiles, post counts and clients needing attention",
	}, vizHandlers.Dashboard)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "pipeline_graph",
		Description: "Graphviz DOT source of the pipeline with per-stage counts",
	}, vizHandlers.PipelineGraph)

	for _, r := range resourceHandlers.Resources() {
		server.AddResource(r, resourceHandlers.ReadResource)
	}
	for _, p := range promptHandlers.Prompts() {
		server.AddPrompt(p, promptHandlers.GetPrompt)
	}

	return server
}

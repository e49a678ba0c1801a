// ABOUTME: Library search MCP tool handler
// ABOUTME: Implements search_library across links, documents and strategy templates
package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/harperreed/lifehub/catalog"
	"github.com/harperreed/lifehub/hub"
	"github.com/harperreed/lifehub/library"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type LibraryHandlers struct {
	hub *hub.Hub
}

func NewLibraryHandlers(h *hub.Hub) *LibraryHandlers {
	return &LibraryHandlers{hub: h}
}

type SearchLibraryInput struct {
	Query    string `json:"query" jsonschema:"Full-text query (required)"`
	Category string `json:"category,omitempty" jsonschema:"Restrict strategy templates to this category; links and docs are always searched"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Maximum results (default 10)"`
}

type SearchLibraryOutput struct {
	Hits  []library.Hit `json:"hits"`
	Count int           `json:"count"`
}

func (h *LibraryHandlers) SearchLibrary(_ context.Context, _ *mcp.CallToolRequest, input SearchLibraryInput) (*mcp.CallToolResult, SearchLibraryOutput, error) {
	if strings.TrimSpace(input.Query) == "" {
		return nil, SearchLibraryOutput{}, fmt.Errorf("query is required")
	}
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	hits, err := h.hub.SearchLibrary(input.Query, limit)
	if err != nil {
		return nil, SearchLibraryOutput{}, fmt.Errorf("failed to search library: %w", err)
	}

	if input.Category != "" {
		hits = filterTemplateCategory(hits, input.Category)
	}
	if hits == nil {
		hits = []library.Hit{}
	}
	return nil, SearchLibraryOutput{Hits: hits, Count: len(hits)}, nil
}

func filterTemplateCategory(hits []library.Hit, category string) []library.Hit {
	var out []library.Hit
	for _, hit := range hits {
		if hit.Kind != library.KindTemplate {
			out = append(out, hit)
			continue
		}
		tmpl, ok := catalog.FindLibraryTemplate(hit.RefID)
		if ok && strings.EqualFold(string(tmpl.Category), category) {
			out = append(out, hit)
		}
	}
	return out
}

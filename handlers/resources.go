// ABOUTME: MCP resource handlers for exposing hub data
// ABOUTME: Provides read-only access to clients and posts via hub:// URIs
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/harperreed/lifehub/hub"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	ClientsURI = "hub://clients"
	PostsURI   = "hub://posts"
)

type ResourceHandlers struct {
	hub *hub.Hub
}

func NewResourceHandlers(h *hub.Hub) *ResourceHandlers {
	return &ResourceHandlers{hub: h}
}

// Resources lists the resources this handler serves.
func (h *ResourceHandlers) Resources() []*mcp.Resource {
	return []*mcp.Resource{
		{URI: ClientsURI, Name: "clients", Description: "Every client in the pipeline", MIMEType: "application/json"},
		{URI: PostsURI, Name: "posts", Description: "Social posts ordered by scheduled date", MIMEType: "application/json"},
	}
}

// ReadResource handles resource read requests
func (h *ResourceHandlers) ReadResource(_ context.Context, request *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := request.Params.URI
	if !strings.HasPrefix(uri, "hub://") {
		return nil, fmt.Errorf("invalid URI scheme: expected hub://")
	}

	var payload any
	switch uri {
	case ClientsURI:
		payload = h.hub.Clients()
	case PostsURI:
		payload = h.hub.SortedPosts()
	default:
		return nil, fmt.Errorf("unknown resource: %s", strings.TrimPrefix(uri, "hub://"))
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{
		{URI: uri, MIMEType: "application/json", Text: string(data)},
	}}, nil
}

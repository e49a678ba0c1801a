// ABOUTME: Client MCP tool handlers
// ABOUTME: Implements add_client, find_clients, move_client and delete_client tools
package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/harperreed/lifehub/crm"
	"github.com/harperreed/lifehub/hub"
	"github.com/harperreed/lifehub/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type ClientHandlers struct {
	hub *hub.Hub
}

func NewClientHandlers(h *hub.Hub) *ClientHandlers {
	return &ClientHandlers{hub: h}
}

type AddClientInput struct {
	Name            string   `json:"name" jsonschema:"Client name (required)"`
	Email           string   `json:"email" jsonschema:"Client email address (required)"`
	Phone           string   `json:"phone,omitempty" jsonschema:"Phone number"`
	Stage           string   `json:"stage,omitempty" jsonschema:"Pipeline stage label or 1-10 position (default New Lead)"`
	County          string   `json:"county,omitempty" jsonschema:"Schuylkill, Luzerne, Northumberland or Other"`
	LeadSource      string   `json:"lead_source,omitempty" jsonschema:"Website, Referral, Community, School District or Social"`
	ProductInterest string   `json:"product_interest,omitempty" jsonschema:"Term, IUL, FIA, Final Expense or None"`
	Household       string   `json:"household,omitempty" jsonschema:"Household description"`
	Goals           []string `json:"goals,omitempty" jsonschema:"Client goals"`
	Notes           string   `json:"notes,omitempty" jsonschema:"Free-form notes"`
	Carrier         string   `json:"carrier,omitempty" jsonschema:"Carrier name"`
	MonthlyPremium  *float64 `json:"monthly_premium,omitempty" jsonschema:"Monthly premium in dollars"`
}

type ClientOutput struct {
	Client models.Client `json:"client"`
}

func (h *ClientHandlers) AddClient(_ context.Context, _ *mcp.CallToolRequest, input AddClientInput) (*mcp.CallToolResult, ClientOutput, error) {
	draft := crm.Draft{
		Name:            input.Name,
		Email:           input.Email,
		Phone:           input.Phone,
		County:          models.County(input.County),
		LeadSource:      models.LeadSource(input.LeadSource),
		ProductInterest: models.ProductType(input.ProductInterest),
		Household:       input.Household,
		Goals:           input.Goals,
		Notes:           input.Notes,
		Carrier:         input.Carrier,
		MonthlyPremium:  input.MonthlyPremium,
	}
	if input.Stage != "" {
		stage, ok := models.ParseStage(input.Stage)
		if !ok {
			return nil, ClientOutput{}, fmt.Errorf("unknown stage %q", input.Stage)
		}
		draft.Status = stage
	}

	client, err := h.hub.AddClient(draft)
	if err != nil {
		return nil, ClientOutput{}, err
	}
	return nil, ClientOutput{Client: client}, nil
}

type FindClientsInput struct {
	Query string `json:"query,omitempty" jsonschema:"Search name, email or notes"`
	Stage string `json:"stage,omitempty" jsonschema:"Only clients in this stage"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum number of results (default 20)"`
}

type FindClientsOutput struct {
	Clients []models.Client `json:"clients"`
	Total   int             `json:"total"`
}

func (h *ClientHandlers) FindClients(_ context.Context, _ *mcp.CallToolRequest, input FindClientsInput) (*mcp.CallToolResult, FindClientsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}

	clients := h.hub.SearchClients(input.Query)
	if strings.TrimSpace(input.Stage) != "" {
		stage, ok := models.ParseStage(input.Stage)
		if !ok {
			return nil, FindClientsOutput{}, fmt.Errorf("unknown stage %q", input.Stage)
		}
		clients = crm.FilterByStage(clients, stage)
	}

	total := len(clients)
	if len(clients) > limit {
		clients = clients[:limit]
	}
	return nil, FindClientsOutput{Clients: clients, Total: total}, nil
}

type MoveClientInput struct {
	ID    string `json:"id" jsonschema:"Client ID (required)"`
	Stage string `json:"stage" jsonschema:"Target stage label or 1-10 position (required)"`
}

func (h *ClientHandlers) MoveClient(_ context.Context, _ *mcp.CallToolRequest, input MoveClientInput) (*mcp.CallToolResult, ClientOutput, error) {
	if input.ID == "" {
		return nil, ClientOutput{}, fmt.Errorf("id is required")
	}
	stage, ok := models.ParseStage(input.Stage)
	if !ok {
		return nil, ClientOutput{}, fmt.Errorf("unknown stage %q", input.Stage)
	}
	if _, found := h.hub.FindClient(input.ID); !found {
		return nil, ClientOutput{}, fmt.Errorf("client not found: %s", input.ID)
	}
	if err := h.hub.AdvanceStage(input.ID, stage); err != nil {
		return nil, ClientOutput{}, err
	}

	client, _ := h.hub.FindClient(input.ID)
	return nil, ClientOutput{Client: client}, nil
}

type DeleteClientInput struct {
	ID string `json:"id" jsonschema:"Client ID (required)"`
}

type DeleteOutput struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

func (h *ClientHandlers) DeleteClient(_ context.Context, _ *mcp.CallToolRequest, input DeleteClientInput) (*mcp.CallToolResult, DeleteOutput, error) {
	if input.ID == "" {
		return nil, DeleteOutput{}, fmt.Errorf("id is required")
	}
	_, found := h.hub.FindClient(input.ID)
	h.hub.DeleteClient(input.ID)
	return nil, DeleteOutput{Deleted: found, ID: input.ID}, nil
}

// ABOUTME: MCP prompt handlers for reusable hub workflows
// ABOUTME: Provides client-summary, review-prep and content-week prompts
package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/lifehub/crm"
	"github.com/harperreed/lifehub/hub"
	"github.com/harperreed/lifehub/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type PromptHandlers struct {
	hub *hub.Hub
}

func NewPromptHandlers(h *hub.Hub) *PromptHandlers {
	return &PromptHandlers{hub: h}
}

// Prompts lists the prompts this handler serves.
func (h *PromptHandlers) Prompts() []*mcp.Prompt {
	clientArg := []*mcp.PromptArgument{{Name: "client_id", Description: "Client ID", Required: true}}
	return []*mcp.Prompt{
		{Name: "client-summary", Description: "Summarize a client and suggest next steps", Arguments: clientArg},
		{Name: "review-prep", Description: "Prepare for an annual review call", Arguments: clientArg},
		{Name: "content-week", Description: "Plan a week of posts around the calendar", Arguments: []*mcp.PromptArgument{
			{Name: "topic", Description: "Theme for the week"},
		}},
	}
}

// GetPrompt generates the prompt message based on the template
func (h *PromptHandlers) GetPrompt(_ context.Context, request *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	args := request.Params.Arguments
	switch request.Params.Name {
	case "client-summary":
		return h.clientPrompt(args, false)
	case "review-prep":
		return h.clientPrompt(args, true)
	case "content-week":
		return h.contentWeekPrompt(args)
	default:
		return nil, fmt.Errorf("unknown prompt: %s", request.Params.Name)
	}
}

func (h *PromptHandlers) clientPrompt(args map[string]string, review bool) (*mcp.GetPromptResult, error) {
	id, ok := args["client_id"]
	if !ok || id == "" {
		return nil, fmt.Errorf("client_id is required")
	}
	c, found := h.hub.FindClient(id)
	if !found {
		return nil, fmt.Errorf("client not found: %s", id)
	}

	var b strings.Builder
	if review {
		b.WriteString("Help me prepare for an annual review call with this client:\n\n")
	} else {
		b.WriteString("Please summarize this client and where they stand:\n\n")
	}
	fmt.Fprintf(&b, "Name: %s\n", c.Name)
	fmt.Fprintf(&b, "Stage: %s\n", c.Status)
	fmt.Fprintf(&b, "County: %s\n", c.County)
	fmt.Fprintf(&b, "Product interest: %s\n", c.ProductInterest)
	if c.Household != "" {
		fmt.Fprintf(&b, "Household: %s\n", c.Household)
	}
	if len(c.Goals) > 0 {
		fmt.Fprintf(&b, "Goals: %s\n", strings.Join(c.Goals, "; "))
	}
	if c.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", c.Notes)
	}
	fmt.Fprintf(&b, "Last interaction: %s\n", c.LastInteraction)
	if c.Snapshot != nil {
		fmt.Fprintf(&b, "Snapshot: %s\n", c.Snapshot.Summary)
	}

	b.WriteString("\nPlease provide:")
	if review {
		if !crm.NeedsReview(c) {
			b.WriteString("\n(Note: this client is not yet in force.)")
		}
		b.WriteString("\n1. A warm opening that references their community")
		b.WriteString("\n2. Discovery questions about life changes")
		b.WriteString("\n3. The next logical product conversation")
	} else {
		b.WriteString("\n1. A short summary of their situation")
		b.WriteString("\n2. The next action to move them forward")
	}

	desc := "Summary: " + c.Name
	if review {
		desc = "Review prep: " + c.Name
	}
	return &mcp.GetPromptResult{
		Description: desc,
		Messages: []*mcp.PromptMessage{
			{Role: "user", Content: &mcp.TextContent{Text: b.String()}},
		},
	}, nil
}

func (h *PromptHandlers) contentWeekPrompt(args map[string]string) (*mcp.GetPromptResult, error) {
	topic := strings.TrimSpace(args["topic"])
	if topic == "" {
		topic = "protecting young families"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Plan a week of social posts about %q.\n\n", topic)
	upcoming := h.hub.UpcomingPosts(7 * 24 * time.Hour)
	if len(upcoming) == 0 {
		b.WriteString("Nothing is scheduled for the next 7 days.\n")
	} else {
		b.WriteString("Already scheduled:\n")
		for _, p := range upcoming {
			fmt.Fprintf(&b, "- %s on %s: %s\n", p.ScheduledDate, p.Platform, p.Content)
		}
	}
	b.WriteString("\nUse the schedule_post tool to fill the gaps. Platforms: ")
	platforms := make([]string, 0, len(models.Platforms()))
	for _, p := range models.Platforms() {
		platforms = append(platforms, string(p))
	}
	b.WriteString(strings.Join(platforms, ", "))
	b.WriteString(". Keep the tone educational, never fear-based.")

	return &mcp.GetPromptResult{
		Description: "Content plan: " + topic,
		Messages: []*mcp.PromptMessage{
			{Role: "user", Content: &mcp.TextContent{Text: b.String()}},
		},
	}, nil
}

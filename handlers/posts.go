// ABOUTME: Social post and calendar MCP tool handlers
// ABOUTME: Implements schedule_post, list_posts, remove_post, month_calendar and quick_date tools
package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/lifehub/calendar"
	"github.com/harperreed/lifehub/hub"
	"github.com/harperreed/lifehub/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// MonthLayout is the month argument format ("2026-05").
const MonthLayout = "2006-01"

type PostHandlers struct {
	hub *hub.Hub
}

func NewPostHandlers(h *hub.Hub) *PostHandlers {
	return &PostHandlers{hub: h}
}

type SchedulePostInput struct {
	Content       string `json:"content" jsonschema:"Post text (required)"`
	Platform      string `json:"platform" jsonschema:"facebook, linkedin, instagram or twitter (required)"`
	ScheduledDate string `json:"scheduled_date,omitempty" jsonschema:"Local date and time, YYYY-MM-DDTHH:MM"`
	QuickDate     string `json:"quick_date,omitempty" jsonschema:"tomorrow, weekend or prime; used when scheduled_date is empty"`
	Draft         bool   `json:"draft,omitempty" jsonschema:"Save as a draft instead of scheduling"`
}

type PostOutput struct {
	Post models.SocialPost `json:"post"`
}

func (h *PostHandlers) SchedulePost(_ context.Context, _ *mcp.CallToolRequest, input SchedulePostInput) (*mcp.CallToolResult, PostOutput, error) {
	date := strings.TrimSpace(input.ScheduledDate)
	if date == "" && input.QuickDate != "" {
		preset, err := calendar.ParsePreset(input.QuickDate)
		if err != nil {
			return nil, PostOutput{}, err
		}
		if date, err = calendar.QuickDate(preset, h.hub.Now()); err != nil {
			return nil, PostOutput{}, err
		}
	}

	draft := calendar.PostDraft{Content: input.Content, Platform: input.Platform, ScheduledDate: date}
	var (
		post models.SocialPost
		err  error
	)
	if input.Draft {
		post, err = h.hub.AddPost(draft)
	} else {
		post, err = h.hub.SchedulePost(draft)
	}
	if err != nil {
		return nil, PostOutput{}, err
	}
	return nil, PostOutput{Post: post}, nil
}

type ListPostsInput struct {
	Status   string `json:"status,omitempty" jsonschema:"draft, scheduled or published"`
	Platform string `json:"platform,omitempty" jsonschema:"Only this platform"`
	Month    string `json:"month,omitempty" jsonschema:"Only posts scheduled in this month, YYYY-MM"`
}

type ListPostsOutput struct {
	Posts []models.SocialPost `json:"posts"`
}

func (h *PostHandlers) ListPosts(_ context.Context, _ *mcp.CallToolRequest, input ListPostsInput) (*mcp.CallToolResult, ListPostsOutput, error) {
	var platform models.Platform
	if input.Platform != "" {
		p, ok := models.ParsePlatform(input.Platform)
		if !ok {
			return nil, ListPostsOutput{}, fmt.Errorf("unknown platform %q", input.Platform)
		}
		platform = p
	}
	if input.Month != "" {
		if _, err := time.Parse(MonthLayout, input.Month); err != nil {
			return nil, ListPostsOutput{}, fmt.Errorf("invalid month %q: want YYYY-MM", input.Month)
		}
	}

	out := []models.SocialPost{}
	for _, p := range h.hub.SortedPosts() {
		if input.Status != "" && !strings.EqualFold(string(p.Status), input.Status) {
			continue
		}
		if platform != "" && p.Platform != platform {
			continue
		}
		if input.Month != "" && !strings.HasPrefix(p.ScheduledDate, input.Month) {
			continue
		}
		out = append(out, p)
	}
	return nil, ListPostsOutput{Posts: out}, nil
}

type RemovePostInput struct {
	ID string `json:"id" jsonschema:"Post ID (required)"`
}

func (h *PostHandlers) RemovePost(_ context.Context, _ *mcp.CallToolRequest, input RemovePostInput) (*mcp.CallToolResult, DeleteOutput, error) {
	if input.ID == "" {
		return nil, DeleteOutput{}, fmt.Errorf("id is required")
	}
	before := len(h.hub.Posts())
	h.hub.RemovePost(input.ID)
	return nil, DeleteOutput{Deleted: len(h.hub.Posts()) < before, ID: input.ID}, nil
}

type MonthCalendarInput struct {
	Month string `json:"month,omitempty" jsonschema:"Month to show, YYYY-MM (default current month)"`
}

type CalendarDay struct {
	Date  string              `json:"date"`
	Posts []models.SocialPost `json:"posts"`
}

type MonthCalendarOutput struct {
	Label     string        `json:"label"`
	StartDay  int           `json:"start_day"`
	TotalDays int           `json:"total_days"`
	Days      []CalendarDay `json:"days"`
}

func (h *PostHandlers) MonthCalendar(_ context.Context, _ *mcp.CallToolRequest, input MonthCalendarInput) (*mcp.CallToolResult, MonthCalendarOutput, error) {
	ref := h.hub.Now()
	if input.Month != "" {
		m, err := time.ParseInLocation(MonthLayout, input.Month, ref.Location())
		if err != nil {
			return nil, MonthCalendarOutput{}, fmt.Errorf("invalid month %q: want YYYY-MM", input.Month)
		}
		ref = m
	}

	grid := h.hub.MonthGrid(ref)
	out := MonthCalendarOutput{Label: grid.Label(), StartDay: grid.StartDay, TotalDays: grid.TotalDays}
	for _, cell := range grid.Cells {
		if !cell.Schedulable() {
			continue
		}
		posts := cell.Posts
		if posts == nil {
			posts = []models.SocialPost{}
		}
		out.Days = append(out.Days, CalendarDay{Date: cell.DateKey, Posts: posts})
	}
	return nil, out, nil
}

type QuickDateInput struct {
	Preset string `json:"preset" jsonschema:"tomorrow (09:30 next day), weekend (next Saturday 11:00) or prime (19:45 in two days)"`
}

type QuickDateOutput struct {
	Preset        string `json:"preset"`
	ScheduledDate string `json:"scheduled_date"`
}

func (h *PostHandlers) QuickDate(_ context.Context, _ *mcp.CallToolRequest, input QuickDateInput) (*mcp.CallToolResult, QuickDateOutput, error) {
	preset, err := calendar.ParsePreset(input.Preset)
	if err != nil {
		return nil, QuickDateOutput{}, err
	}
	date, err := calendar.QuickDate(preset, h.hub.Now())
	if err != nil {
		return nil, QuickDateOutput{}, err
	}
	return nil, QuickDateOutput{Preset: string(preset), ScheduledDate: date}, nil
}

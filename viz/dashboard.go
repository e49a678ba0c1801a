// ABOUTME: Terminal dashboard statistics and rendering
// ABOUTME: Provides the ASCII hub overview used by the CLI, TUI and web surfaces
package viz

import (
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/lifehub/crm"
	"github.com/harperreed/lifehub/hub"
	"github.com/harperreed/lifehub/models"
)

// StaleAfter is how long since the last interaction before a client needs attention.
const StaleAfter = 30 * 24 * time.Hour

type DashboardStats struct {
	// Pipeline in stage order, every stage present
	Pipeline []PipelineStageStats

	// Summary tiles
	Tiles []PipelineStageStats

	TotalClients int
	TotalLinks   int
	TotalDocs    int

	// Posts
	UpcomingPosts  []models.SocialPost
	DraftPosts     int
	ScheduledPosts int
	PublishedPosts int

	// Needs attention
	StaleClients []StaleClient
}

type PipelineStageStats struct {
	Stage models.PipelineStage
	Count int
}

type StaleClient struct {
	Name      string
	DaysSince int
}

// Snapshot is the hub data a dashboard is computed from.
type Snapshot struct {
	Clients []models.Client
	Posts   []models.SocialPost
	Links   []models.LinkItem
	Docs    []models.DocItem
	Now     time.Time
}

// SnapshotOf reads the current hub state.
func SnapshotOf(h *hub.Hub) Snapshot {
	return Snapshot{
		Clients: h.Clients(),
		Posts:   h.Posts(),
		Links:   h.Links.List(),
		Docs:    h.Docs.List(),
		Now:     h.Now(),
	}
}

func GenerateDashboardStats(h *hub.Hub) *DashboardStats {
	return ComputeStats(SnapshotOf(h))
}

// ComputeStats derives the dashboard from snap.
func ComputeStats(snap Snapshot) *DashboardStats {
	stats := &DashboardStats{
		TotalClients: len(snap.Clients),
		TotalLinks:   len(snap.Links),
		TotalDocs:    len(snap.Docs),
	}

	counts := make(map[models.PipelineStage]int)
	for _, c := range snap.Clients {
		counts[c.Status]++
	}
	for _, stage := range models.Stages() {
		stats.Pipeline = append(stats.Pipeline, PipelineStageStats{Stage: stage, Count: counts[stage]})
	}
	tiles := crm.CountByStage(snap.Clients)
	for _, stage := range crm.TileStages {
		stats.Tiles = append(stats.Tiles, PipelineStageStats{Stage: stage, Count: tiles[stage]})
	}

	for _, p := range snap.Posts {
		switch p.Status {
		case models.PostDraft:
			stats.DraftPosts++
		case models.PostScheduled:
			stats.ScheduledPosts++
		case models.PostPublished:
			stats.PublishedPosts++
		}
	}
	stats.UpcomingPosts = upcoming(snap.Posts, snap.Now)

	for _, c := range snap.Clients {
		last, ok := c.LastInteractionTime()
		if !ok {
			stats.StaleClients = append(stats.StaleClients, StaleClient{Name: c.Name, DaysSince: -1})
			continue
		}
		if since := snap.Now.Sub(last); since > StaleAfter {
			stats.StaleClients = append(stats.StaleClients, StaleClient{Name: c.Name, DaysSince: int(since.Hours() / 24)})
		}
	}

	return stats
}

func upcoming(posts []models.SocialPost, now time.Time) []models.SocialPost {
	var out []models.SocialPost
	for _, p := range posts {
		if p.Status != models.PostScheduled {
			continue
		}
		if t, ok := p.ScheduledTime(); ok && !t.Before(now) && t.Before(now.Add(7*24*time.Hour)) {
			out = append(out, p)
		}
	}
	return out
}

func RenderDashboard(stats *DashboardStats) string {
	var out strings.Builder

	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	out.WriteString("  LIFE HUB DASHBOARD\n")
	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")

	out.WriteString("AT A GLANCE\n")
	for _, tile := range stats.Tiles {
		out.WriteString(fmt.Sprintf("  %-20s %3d\n", tile.Stage, tile.Count))
	}
	out.WriteString("\n")

	out.WriteString("PIPELINE\n")
	renderPipeline(&out, stats.Pipeline)
	out.WriteString("\n")

	out.WriteString("STATS\n")
	out.WriteString(fmt.Sprintf("  👪 %d clients  🔗 %d links  📄 %d docs\n", stats.TotalClients, stats.TotalLinks, stats.TotalDocs))
	out.WriteString(fmt.Sprintf("  📝 %d drafts  📅 %d scheduled  ✅ %d published\n\n", stats.DraftPosts, stats.ScheduledPosts, stats.PublishedPosts))

	if len(stats.UpcomingPosts) > 0 {
		out.WriteString("NEXT 7 DAYS\n")
		for _, p := range stats.UpcomingPosts {
			out.WriteString(fmt.Sprintf("  %s  %-9s %s\n", p.ScheduledDate, p.Platform, truncate(p.Content, 40)))
		}
		out.WriteString("\n")
	}

	if len(stats.StaleClients) > 0 {
		out.WriteString("NEEDS ATTENTION\n")
		out.WriteString(fmt.Sprintf("  ⚠️  %d clients - no interaction in 30+ days\n", len(stats.StaleClients)))
	}

	return out.String()
}

func renderPipeline(out *strings.Builder, pipeline []PipelineStageStats) {
	maxCount := 0
	for _, s := range pipeline {
		if s.Count > maxCount {
			maxCount = s.Count
		}
	}
	if maxCount == 0 {
		maxCount = 1
	}

	for _, s := range pipeline {
		barLength := (s.Count * 10) / maxCount
		bar := strings.Repeat("█", barLength) + strings.Repeat("░", 10-barLength)
		out.WriteString(fmt.Sprintf("  %-22s %s  %2d\n", s.Stage, bar, s.Count))
	}
}

func truncate(s string, n int) string {
	r := []rune(strings.ReplaceAll(s, "\n", " "))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n-3]) + "..."
}

// ABOUTME: Tests for dashboard stats, the ASCII render and the pipeline graph
// ABOUTME: Stats are computed from fixed snapshots so the clock never matters
package viz

import (
	"strings"
	"testing"
	"time"

	"github.com/harperreed/lifehub/crm"
	"github.com/harperreed/lifehub/hub"
	"github.com/harperreed/lifehub/models"
	"github.com/harperreed/lifehub/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, time.March, 1, 9, 0, 0, 0, time.Local)

func snapshot() Snapshot {
	return Snapshot{
		Clients: []models.Client{
			{ID: "1", Name: "Fresh", Status: models.StageNewLead, LastInteraction: "Feb 20, 2026"},
			{ID: "2", Name: "Old", Status: models.StageNewLead, LastInteraction: "Jan 2, 2026"},
			{ID: "3", Name: "Unknown", Status: models.StageInForce},
			{ID: "4", Name: "Writing", Status: models.StageUnderwriting, LastInteraction: "Feb 28, 2026"},
		},
		Posts: []models.SocialPost{
			{ID: "a", Status: models.PostDraft},
			{ID: "b", Status: models.PostScheduled, ScheduledDate: "2026-03-03T10:00", Content: "Soon"},
			{ID: "c", Status: models.PostScheduled, ScheduledDate: "2026-04-03T10:00"},
			{ID: "d", Status: models.PostPublished},
		},
		Links: []models.LinkItem{{ID: "l"}},
		Now:   now,
	}
}

func TestComputeStats(t *testing.T) {
	stats := ComputeStats(snapshot())

	require.Len(t, stats.Pipeline, len(models.Stages()))
	assert.Equal(t, PipelineStageStats{Stage: models.StageNewLead, Count: 2}, stats.Pipeline[0])
	assert.Equal(t, 0, stats.Pipeline[1].Count)

	require.Len(t, stats.Tiles, len(crm.TileStages))
	assert.Equal(t, models.StageNewLead, stats.Tiles[0].Stage)
	assert.Equal(t, 1, stats.Tiles[1].Count)

	assert.Equal(t, 4, stats.TotalClients)
	assert.Equal(t, 1, stats.TotalLinks)
	assert.Equal(t, 0, stats.TotalDocs)
	assert.Equal(t, 1, stats.DraftPosts)
	assert.Equal(t, 2, stats.ScheduledPosts)
	assert.Equal(t, 1, stats.PublishedPosts)

	require.Len(t, stats.UpcomingPosts, 1)
	assert.Equal(t, "b", stats.UpcomingPosts[0].ID)

	require.Len(t, stats.StaleClients, 2)
	assert.Equal(t, "Old", stats.StaleClients[0].Name)
	assert.Equal(t, "Unknown", stats.StaleClients[1].Name)
	assert.Equal(t, -1, stats.StaleClients[1].DaysSince)
}

func TestRenderDashboard(t *testing.T) {
	out := RenderDashboard(ComputeStats(snapshot()))

	assert.Contains(t, out, "LIFE HUB DASHBOARD")
	assert.Contains(t, out, "AT A GLANCE")
	assert.Contains(t, out, "Lost / Not Proceeding")
	assert.Contains(t, out, "4 clients")
	assert.Contains(t, out, "NEXT 7 DAYS")
	assert.Contains(t, out, "2 clients - no interaction in 30+ days")
	assert.Contains(t, out, "██████████", "the largest stage gets a full bar")
}

func TestRenderDashboardEmpty(t *testing.T) {
	out := RenderDashboard(ComputeStats(Snapshot{Now: now}))
	assert.NotContains(t, out, "NEEDS ATTENTION")
	assert.NotContains(t, out, "NEXT 7 DAYS")
}

func TestGenerateDashboardStatsFromHub(t *testing.T) {
	h := hub.New(store.NewMemoryKV(), hub.Options{Now: func() time.Time { return now }, SyncLatency: -1})
	defer h.Close()
	_, err := h.AddClient(crm.Draft{Name: "Dana", Email: "dana@example.com"})
	require.NoError(t, err)

	stats := GenerateDashboardStats(h)
	assert.Equal(t, 1, stats.TotalClients)
	assert.Equal(t, 4, stats.TotalLinks)
	assert.Empty(t, stats.StaleClients)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate(strings.Repeat("abcdefghij", 3), 10))
	assert.Equal(t, "a b", truncate("a\nb", 10))
}

func TestGeneratePipelineGraph(t *testing.T) {
	dot, err := GeneratePipelineGraph(snapshot().Clients)
	require.NoError(t, err)

	assert.Contains(t, dot, "digraph")
	assert.Contains(t, dot, "Client Pipeline")
	assert.Contains(t, dot, "stage_0")
	assert.Contains(t, dot, "stage_9")
	assert.Contains(t, dot, "->")
}

// ABOUTME: Tests for the TUI model key handling and rendering
// ABOUTME: Feeds key messages through Update against an in-memory hub
package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/lifehub/calendar"
	"github.com/harperreed/lifehub/crm"
	"github.com/harperreed/lifehub/hub"
	"github.com/harperreed/lifehub/models"
	"github.com/harperreed/lifehub/store"
)

var now = time.Date(2026, time.June, 15, 12, 0, 0, 0, time.Local)

func setupTestHub(t *testing.T) *hub.Hub {
	t.Helper()
	h := hub.New(store.NewMemoryKV(), hub.Options{Now: func() time.Time { return now }, SyncLatency: -1})
	t.Cleanup(func() { _ = h.Close() })
	return h
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(Model)
	}
	return m
}

func TestOpensOnStoredTab(t *testing.T) {
	h := setupTestHub(t)
	if m := NewModel(h); m.tab != TabPipeline {
		t.Errorf("default tab = %d, want pipeline", m.tab)
	}

	h.SetActiveTab("calendar")
	if m := NewModel(h); m.tab != TabCalendar {
		t.Errorf("tab = %d, want calendar", m.tab)
	}
}

func TestTabSwitchPersists(t *testing.T) {
	h := setupTestHub(t)
	m := press(t, NewModel(h), tea.KeyMsg{Type: tea.KeyTab})

	if m.tab != TabCalendar {
		t.Fatalf("tab = %d, want calendar", m.tab)
	}
	if got := h.ActiveTab(); got != "calendar" {
		t.Errorf("active tab = %q, want calendar", got)
	}

	m = press(t, m, runes("3"))
	if got := h.ActiveTab(); got != "library" {
		t.Errorf("active tab = %q, want library", got)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.tab != TabCalendar {
		t.Errorf("shift+tab landed on %d", m.tab)
	}
}

func TestAdvanceStageKeys(t *testing.T) {
	h := setupTestHub(t)
	c, err := h.AddClient(crm.Draft{Name: "Dana Reyes", Email: "dana@example.com"})
	if err != nil {
		t.Fatalf("add client: %v", err)
	}

	m := press(t, NewModel(h), runes("]"), runes("]"))
	got, _ := h.FindClient(c.ID)
	if got.Status != models.StageBookedCall {
		t.Fatalf("status = %q, want %q", got.Status, models.StageBookedCall)
	}
	if !strings.Contains(m.status, "Booked Call") {
		t.Errorf("status line %q should name the new stage", m.status)
	}

	press(t, m, runes("["), runes("["), runes("["))
	got, _ = h.FindClient(c.ID)
	if got.Status != models.StageNewLead {
		t.Errorf("backing past the first stage should stop at New Lead, got %q", got.Status)
	}

	press(t, m, runes("x"))
	got, _ = h.FindClient(c.ID)
	if got.Status != models.StageLost {
		t.Errorf("x should mark lost, got %q", got.Status)
	}
}

func TestSearchFiltersPipeline(t *testing.T) {
	h := setupTestHub(t)
	for _, d := range []crm.Draft{
		{Name: "Dana Reyes", Email: "dana@example.com"},
		{Name: "Sam Ortiz", Email: "sam@example.com"},
	} {
		if _, err := h.AddClient(d); err != nil {
			t.Fatalf("add client: %v", err)
		}
	}

	m := press(t, NewModel(h), runes("/"))
	if !m.searching {
		t.Fatal("/ should open the search prompt")
	}
	m = press(t, m, runes("sam"), tea.KeyMsg{Type: tea.KeyEnter})

	if m.searchQuery != "sam" {
		t.Fatalf("query = %q", m.searchQuery)
	}
	visible := m.visibleClients()
	if len(visible) != 1 || visible[0].Name != "Sam Ortiz" {
		t.Errorf("visible = %+v", visible)
	}
	if !strings.Contains(m.View(), "Sam Ortiz") {
		t.Error("view should list the match")
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if len(m.visibleClients()) != 2 {
		t.Error("esc should clear the filter")
	}
}

func TestCalendarPaging(t *testing.T) {
	h := setupTestHub(t)
	if _, err := h.SchedulePost(calendar.PostDraft{Content: "July kickoff", Platform: "linkedin", ScheduledDate: "2026-07-01T09:00"}); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	h.SetActiveTab("calendar")
	m := NewModel(h)

	view := m.View()
	if !strings.Contains(view, "June 2026") {
		t.Errorf("view should show the current month:\n%s", view)
	}
	if !strings.Contains(view, "Nothing scheduled") {
		t.Error("June should be empty")
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	view = m.View()
	if !strings.Contains(view, "July 2026") || !strings.Contains(view, "July kickoff") {
		t.Errorf("next month should show the July post:\n%s", view)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyLeft})
	if m.month.Month() != time.May {
		t.Errorf("month = %s, want May", m.month.Month())
	}
	m = press(t, m, runes("t"))
	if m.month.Month() != time.June {
		t.Errorf("t should return to June, got %s", m.month.Month())
	}
}

func TestToggleFavoriteLink(t *testing.T) {
	h := setupTestHub(t)
	h.SetActiveTab("library")
	m := NewModel(h)

	first := m.links()[0]
	if !first.IsFavorite {
		t.Fatalf("seeded favorite should sort first, got %s", first.Name)
	}

	m = press(t, m, runes("f"))
	got, _ := h.Links.Find(first.ID)
	if got.IsFavorite {
		t.Error("f should unstar the selected link")
	}
	if !strings.HasPrefix(m.status, "Unstarred") {
		t.Errorf("status = %q", m.status)
	}
}

func TestQuit(t *testing.T) {
	_, cmd := NewModel(setupTestHub(t)).Update(runes("q"))
	if cmd == nil {
		t.Fatal("q should return a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/lifehub/crm"
	"github.com/harperreed/lifehub/models"
)

func (m Model) visibleClients() []models.Client {
	return m.hub.SearchClients(m.searchQuery)
}

func (m Model) selectedClient() (models.Client, bool) {
	clients := m.visibleClients()
	if m.selectedRow < 0 || m.selectedRow >= len(clients) {
		return models.Client{}, false
	}
	return clients[m.selectedRow], true
}

func (m Model) renderPipelineView() string {
	var s strings.Builder

	s.WriteString(m.renderTiles())
	s.WriteString("\n\n")

	if m.searching {
		s.WriteString("Search: " + m.search.View() + "\n\n")
	} else if m.searchQuery != "" {
		s.WriteString(dimStyle.Render(fmt.Sprintf("Filtered by %q (esc clears)", m.searchQuery)) + "\n\n")
	}

	s.WriteString(m.renderClientsTable())
	s.WriteString("\n")

	if c, ok := m.selectedClient(); ok {
		s.WriteString("\n" + renderProgress(c) + "\n")
	}

	s.WriteString(m.renderPipelineHelp())
	return s.String()
}

func (m Model) renderTiles() string {
	tiles := m.hub.StageTiles()
	parts := make([]string, 0, len(tiles))
	for _, stage := range crm.TileStages {
		parts = append(parts, fmt.Sprintf("%s %d", stage, tiles[stage]))
	}
	return dimStyle.Render(strings.Join(parts, "  │  "))
}

func (m Model) renderClientsTable() string {
	clients := m.visibleClients()

	columns := []table.Column{
		{Title: "Name", Width: 24},
		{Title: "Stage", Width: 22},
		{Title: "Product", Width: 12},
		{Title: "Premium", Width: 10},
		{Title: "Last touch", Width: 14},
	}

	rows := make([]table.Row, 0, len(clients))
	for _, c := range clients {
		premium := ""
		if c.MonthlyPremium != nil {
			premium = fmt.Sprintf("$%.2f", *c.MonthlyPremium)
		}
		rows = append(rows, table.Row{
			c.Name,
			string(c.Status),
			string(c.ProductInterest),
			premium,
			c.LastInteraction,
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(m.tableHeight()),
	)

	if m.selectedRow < len(rows) {
		t.SetCursor(m.selectedRow)
	}

	return t.View()
}

// renderProgress draws one segment per stage, filled through the current one.
func renderProgress(c models.Client) string {
	var bar strings.Builder
	for _, p := range crm.Progress(c.Status) {
		if p.Passed {
			bar.WriteString(passedStyle.Render("█"))
		} else {
			bar.WriteString(pendingStyle.Render("░"))
		}
	}
	return fmt.Sprintf("%s  %s  %s", c.Name, bar.String(), c.Status)
}

func (m Model) renderPipelineHelp() string {
	help := []string{
		"↑/↓: Navigate",
		"]/[: Advance/back stage",
		"x: Mark lost",
		"/: Search",
		"Tab: Switch tabs",
		"q: Quit",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handlePipelineKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case "down", "j":
		if m.selectedRow < len(m.visibleClients())-1 {
			m.selectedRow++
		}
	case "]", "l":
		m.moveSelected(1)
	case "[", "h":
		m.moveSelected(-1)
	case "x":
		if c, ok := m.selectedClient(); ok {
			m.setStage(c, models.StageLost)
		}
	case "/":
		m.searching = true
		m.search.SetValue(m.searchQuery)
		m.search.Focus()
		return m, textinput.Blink
	case "esc":
		m.searchQuery = ""
		m.selectedRow = 0
	}

	return m, nil
}

// moveSelected steps the selected client delta stages along the pipeline,
// stopping at either end.
func (m *Model) moveSelected(delta int) {
	c, ok := m.selectedClient()
	if !ok {
		return
	}
	stages := models.Stages()
	idx := c.Status.Index()
	if idx < 0 {
		idx = 0
	}
	next := idx + delta
	if next < 0 || next >= len(stages) {
		return
	}
	m.setStage(c, stages[next])
}

func (m *Model) setStage(c models.Client, stage models.PipelineStage) {
	if err := m.hub.AdvanceStage(c.ID, stage); err != nil {
		m.status = fmt.Sprintf("Error: %v", err)
		return
	}
	m.status = fmt.Sprintf("%s → %s", c.Name, stage)
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchQuery = strings.TrimSpace(m.search.Value())
		m.searching = false
		m.search.Blur()
		m.selectedRow = 0
		return m, nil
	case "esc":
		m.searching = false
		m.search.Blur()
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/lifehub/models"
)

// links are shown favorites first, most recently updated next.
func (m Model) links() []models.LinkItem {
	return m.hub.Links.Filter("", "")
}

func (m Model) renderLinksView() string {
	links := m.links()

	columns := []table.Column{
		{Title: "★", Width: 2},
		{Title: "Name", Width: 26},
		{Title: "Category", Width: 12},
		{Title: "URL", Width: 40},
	}

	rows := make([]table.Row, 0, len(links))
	for _, l := range links {
		star := ""
		if l.IsFavorite {
			star = "★"
		}
		rows = append(rows, table.Row{star, l.Name, string(l.Category), l.URL})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(m.tableHeight()),
	)
	if m.selectedLink < len(rows) {
		t.SetCursor(m.selectedLink)
	}

	help := []string{
		"↑/↓: Navigate",
		"f: Toggle favorite",
		"Tab: Switch tabs",
		"q: Quit",
	}
	return t.View() + "\n" + helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleLinksKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	links := m.links()
	switch msg.String() {
	case "up", "k":
		if m.selectedLink > 0 {
			m.selectedLink--
		}
	case "down", "j":
		if m.selectedLink < len(links)-1 {
			m.selectedLink++
		}
	case "f":
		if m.selectedLink >= len(links) {
			return m, nil
		}
		link, ok := m.hub.Links.ToggleFavorite(links[m.selectedLink].ID, m.hub.Now())
		if ok {
			verb := "Unstarred"
			if link.IsFavorite {
				verb = "Starred"
			}
			m.status = fmt.Sprintf("%s %s", verb, link.Name)
		}
	}
	return m, nil
}

// ABOUTME: Terminal User Interface using bubbletea framework
// ABOUTME: Full-screen pipeline, calendar and links views over the hub
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/harperreed/lifehub/hub"
)

// Tab is one of the top-level sections.
type Tab int

const (
	TabPipeline Tab = iota
	TabCalendar
	TabLinks
)

var tabNames = []string{"Pipeline", "Calendar", "Links"}

// tabIDs are the section ids persisted under the active tab key.
var tabIDs = []string{"pipeline", "calendar", "library"}

func tabFromID(id string) Tab {
	for i, v := range tabIDs {
		if v == id {
			return Tab(i)
		}
	}
	return TabPipeline
}

// Model is the main bubbletea model
type Model struct {
	hub *hub.Hub
	tab Tab

	// Pipeline state
	selectedRow int
	searchQuery string
	searching   bool
	search      textinput.Model

	// Calendar state
	month time.Time

	// Links state
	selectedLink int

	status string
	width  int
	height int
}

// NewModel opens on the section stored as the active tab.
func NewModel(h *hub.Hub) Model {
	search := textinput.New()
	search.Placeholder = "name or email"
	search.CharLimit = 64

	return Model{
		hub:    h,
		tab:    tabFromID(h.ActiveTab()),
		search: search,
		month:  h.Now(),
		width:  80,
		height: 24,
	}
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(h *hub.Hub) error {
	_, err := tea.NewProgram(NewModel(h), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	var body string
	switch m.tab {
	case TabPipeline:
		body = m.renderPipelineView()
	case TabCalendar:
		body = m.renderCalendarView()
	case TabLinks:
		body = m.renderLinksView()
	}

	out := titleStyle.Render("LIFE HUB") + "\n\n" + m.renderTabs() + "\n\n" + body
	if m.status != "" {
		out += "\n" + statusStyle.Render(m.status)
	}
	return out
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.handleSearchKeys(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab":
		return m.switchTab((m.tab + 1) % Tab(len(tabNames))), nil
	case "shift+tab":
		return m.switchTab((m.tab + Tab(len(tabNames)) - 1) % Tab(len(tabNames))), nil
	case "1", "2", "3":
		return m.switchTab(Tab(msg.String()[0] - '1')), nil
	}

	m.status = ""
	switch m.tab {
	case TabPipeline:
		return m.handlePipelineKeys(msg)
	case TabCalendar:
		return m.handleCalendarKeys(msg)
	case TabLinks:
		return m.handleLinksKeys(msg)
	}
	return m, nil
}

func (m Model) switchTab(tab Tab) Model {
	m.tab = tab
	m.status = ""
	m.hub.SetActiveTab(tabIDs[tab])
	return m
}

func (m Model) renderTabs() string {
	rendered := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		if Tab(i) == m.tab {
			rendered = append(rendered, tabActiveStyle.Render(name))
		} else {
			rendered = append(rendered, tabInactiveStyle.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) tableHeight() int {
	if h := m.height - 12; h > 3 {
		return h
	}
	return 3
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170"))

	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235")).
			Padding(0, 2)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	passedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))

	todayStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("170"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

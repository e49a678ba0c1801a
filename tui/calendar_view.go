package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/lifehub/calendar"
	"github.com/harperreed/lifehub/models"
)

const cellWidth = 9

func (m Model) renderCalendarView() string {
	grid := m.hub.MonthGrid(m.month)
	today := m.hub.Now().Format(models.DateKeyLayout)

	var s strings.Builder
	s.WriteString(titleStyle.Render(grid.Label()))
	s.WriteString("\n\n")

	header := make([]string, 0, 7)
	for _, d := range []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"} {
		header = append(header, dimStyle.Width(cellWidth).Render(d))
	}
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, header...))
	s.WriteString("\n")

	for _, week := range grid.Weeks() {
		row := make([]string, 0, 7)
		for _, cell := range week {
			row = append(row, renderCell(cell, today))
		}
		s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, row...))
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(renderMonthPosts(grid))
	s.WriteString(m.renderCalendarHelp())
	return s.String()
}

func renderCell(cell calendar.Cell, today string) string {
	style := lipgloss.NewStyle().Width(cellWidth)
	if !cell.Schedulable() {
		return style.Render("")
	}
	label := fmt.Sprintf("%2d", cell.Day)
	if n := len(cell.Posts); n > 0 {
		label += fmt.Sprintf(" •%d", n)
	}
	if cell.DateKey == today {
		style = style.Inherit(todayStyle)
	}
	return style.Render(label)
}

func renderMonthPosts(grid calendar.Grid) string {
	var s strings.Builder
	for _, cell := range grid.Cells {
		for _, p := range cell.Posts {
			s.WriteString(fmt.Sprintf("  %s  %-9s %-9s %s\n", p.ScheduledDate, p.Platform, p.Status, truncate(p.Content, 40)))
		}
	}
	if s.Len() == 0 {
		return dimStyle.Render("  Nothing scheduled this month.") + "\n"
	}
	return s.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func (m Model) renderCalendarHelp() string {
	help := []string{
		"←/→: Previous/next month",
		"t: This month",
		"Tab: Switch tabs",
		"q: Quit",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleCalendarKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		m.month = calendar.PrevMonth(m.month)
	case "right", "l":
		m.month = calendar.NextMonth(m.month)
	case "t":
		m.month = m.hub.Now()
	}
	return m, nil
}

// Package week renders the week's sessions as a selectable table.
package week

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/studyweek/internal/models"
	"github.com/julianstephens/studyweek/internal/scheduler"
)

type Model struct {
	table    table.Model
	sessions []models.Session
}

func New(width, height int) Model {
	t := table.New(
		table.WithColumns(columns(width)),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	t.SetStyles(s)
	return Model{table: t}
}

func columns(width int) []table.Column {
	subject := 24
	if width > 60 {
		subject = width - 44
	}
	return []table.Column{
		{Title: "Day", Width: 18},
		{Title: "Subject", Width: subject},
		{Title: "Hours", Width: 7},
		{Title: "Status", Width: 10},
	}
}

// SetWeek replaces the rows with the week's sessions in day order.
// today is the weekday name to mark in the Day column.
func (m *Model) SetWeek(days []scheduler.DaySessions, subjects map[string]models.Subject, today string) {
	m.sessions = nil
	var rows []table.Row
	for _, day := range days {
		for _, sess := range day.Sessions {
			m.sessions = append(m.sessions, sess)
			rows = append(rows, row(sess, subjects, today))
		}
	}
	m.table.SetRows(rows)
	if c := m.table.Cursor(); c >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

func row(sess models.Session, subjects map[string]models.Subject, today string) table.Row {
	day := sess.DayName
	if day == today {
		day += " (today)"
	}
	name := "(unknown subject)"
	if sub, ok := subjects[sess.SubjectID]; ok {
		name = sub.Name
	}
	return table.Row{day, name, fmt.Sprintf("%.1fh", sess.Hours), statusLabel(sess.Status)}
}

// Cells stay unstyled; the table truncates by rune width.
func statusLabel(s models.SessionStatus) string {
	switch s {
	case models.SessionDone:
		return "✓ done"
	case models.SessionMissed:
		return "✗ missed"
	default:
		return "· pending"
	}
}

// Selected returns the session under the cursor.
func (m Model) Selected() (models.Session, bool) {
	c := m.table.Cursor()
	if c < 0 || c >= len(m.sessions) {
		return models.Session{}, false
	}
	return m.sessions[c], true
}

// Len is the number of sessions shown.
func (m Model) Len() int { return len(m.sessions) }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.sessions) == 0 {
		return "No sessions planned this week. Press 'g' to generate."
	}
	return m.table.View()
}

func (m *Model) SetSize(width, height int) {
	m.table.SetColumns(columns(width))
	m.table.SetHeight(height)
}

// Package subjects lists subjects in urgency order.
package subjects

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/studyweek/internal/models"
)

type Item struct {
	Subject  models.Subject
	DaysLeft int
}

func (i Item) Title() string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(i.Subject.Color)).Render("■") + " " + i.Subject.Name
}

func (i Item) Description() string {
	return fmt.Sprintf("%.1fh | %s | due %s (%d days left)",
		i.Subject.TotalHours, i.Subject.Priority, i.Subject.Deadline, i.DaysLeft)
}

func (i Item) FilterValue() string { return i.Subject.Name }

type Model struct {
	list list.Model
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Subjects"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	return Model{list: l}
}

// SetSubjects replaces the items; ranked must already be in display order.
func (m *Model) SetSubjects(ranked []models.Subject, daysLeft func(models.Subject) int) {
	items := make([]list.Item, len(ranked))
	for i, s := range ranked {
		items[i] = Item{Subject: s, DaysLeft: daysLeft(s)}
	}
	m.list.SetItems(items)
}

func (m Model) Len() int { return len(m.list.Items()) }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  No subjects yet.\n  Add one with 'studyweek subject add'."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

package tui

import (
	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateWeek:
		content = m.weekModel.View()
	case StateProgress:
		content = m.progressModel.View()
	case StateSubjects:
		content = m.subjectsModel.View()
	case StateConfirm:
		content = m.form.View()
	}

	parts := []string{m.viewTabs()}
	if m.warning != "" {
		parts = append(parts, warningStyle.Render(m.warning))
	}
	parts = append(parts, docStyle.Render(content))
	if m.err != nil {
		parts = append(parts, dangerStyle.Render("Error: "+m.err.Error()))
	} else if m.status != "" {
		parts = append(parts, statusStyle.Render(m.status))
	}
	parts = append(parts, m.help.View(m))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewTabs() string {
	active := m.state
	if active == StateConfirm {
		active = m.previousState
	}
	var tabs []string
	for i, title := range tabTitles {
		if active == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	tabs = append(tabs, inactiveTabStyle.Render(m.today.Format("Mon 2006-01-02")))
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

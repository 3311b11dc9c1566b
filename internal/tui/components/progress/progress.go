// Package progress renders per-subject completion bars.
package progress

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/studyweek/internal/planner"
)

var (
	scoreStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	nameStyle  = lipgloss.NewStyle().Width(20)
)

const defaultBarWidth = 30

type Model struct {
	report planner.Report
	width  int
}

func New(width int) Model {
	return Model{width: width}
}

func (m *Model) SetReport(r planner.Report) {
	m.report = r
}

func (m *Model) SetSize(width int) {
	m.width = width
}

func (m Model) barWidth() int {
	if w := m.width - 40; w > 10 && w < defaultBarWidth {
		return w
	}
	return defaultBarWidth
}

func (m Model) View() string {
	if len(m.report.Subjects) == 0 {
		return "No subjects yet. Add one with 'studyweek subject add'."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Productivity score: %s\n", scoreStyle.Render(fmt.Sprint(m.report.Score)))
	fmt.Fprintf(&b, "%s\n\n", mutedStyle.Render(fmt.Sprintf("%.1fh of %.1fh done, %d session(s) missed",
		m.report.CompletedHours, m.report.TotalHours, m.report.MissedCount)))

	for _, sp := range m.report.Subjects {
		bar := progress.New(
			progress.WithSolidFill(sp.Subject.Color),
			progress.WithWidth(m.barWidth()),
			progress.WithoutPercentage(),
		)
		fmt.Fprintf(&b, "%s %s %3d%%  %s\n",
			nameStyle.Render(sp.Subject.Name),
			bar.ViewAs(float64(sp.Pct)/100),
			sp.Pct,
			mutedStyle.Render(fmt.Sprintf("%.1fh left, %d days", sp.RemainingHours, sp.DaysLeft)),
		)
	}
	return b.String()
}

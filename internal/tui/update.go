package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/studyweek/internal/models"
	"github.com/julianstephens/studyweek/internal/scheduler"
)

// actionDoneMsg reports the end of a regeneration or adjustment.
type actionDoneMsg struct {
	status string
	err    error
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		h := msg.Height - 8
		if h < 3 {
			h = 3
		}
		m.weekModel.SetSize(msg.Width-4, h)
		m.progressModel.SetSize(msg.Width - 4)
		m.subjectsModel.SetSize(msg.Width-4, h)
		return m, nil

	case actionDoneMsg:
		m.reload()
		if msg.err != nil {
			m.status = ""
			m.err = msg.err
		} else {
			m.status = msg.status
		}
		return m, nil
	}

	if m.state == StateConfirm {
		cmd := m.handleConfirmationState(msg)
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % numTabs
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + numTabs) % numTabs
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.status = ""
			m.reload()
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateWeek:
		if msg, ok := msg.(tea.KeyMsg); ok {
			if handled, cmd := m.handleWeekKey(msg); handled {
				return m, cmd
			}
		}
		m.weekModel, cmd = m.weekModel.Update(msg)
	case StateSubjects:
		m.subjectsModel, cmd = m.subjectsModel.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleWeekKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Done):
		m.setSelectedStatus(models.SessionDone)
	case key.Matches(msg, m.keys.Missed):
		m.setSelectedStatus(models.SessionMissed)
	case key.Matches(msg, m.keys.Pending):
		m.setSelectedStatus(models.SessionPending)
	case key.Matches(msg, m.keys.Generate):
		return true, m.confirm(
			"Regenerate this week's plan?",
			"Every session of the week, done and missed ones included, is replaced.",
			generateCmd(m.scheduler, m.today),
		)
	case key.Matches(msg, m.keys.Adjust):
		return true, m.confirm(
			"Reschedule after missed sessions?",
			"Subjects with missed sessions move up a priority and pending sessions are replaced.",
			adjustCmd(m.scheduler, m.today),
		)
	default:
		return false, nil
	}
	return true, nil
}

func (m *Model) setSelectedStatus(status models.SessionStatus) {
	sess, ok := m.weekModel.Selected()
	if !ok {
		return
	}
	updated, err := m.scheduler.SetStatus(sess.ID, status)
	if err != nil {
		m.err = fmt.Errorf("failed to update session: %w", err)
		return
	}
	m.reload()
	m.status = fmt.Sprintf("%.1fh on %s marked %s", updated.Hours, updated.DayName, updated.Status)
}

// confirm opens a yes/no form that runs action once accepted.
func (m *Model) confirm(title, description string, action tea.Cmd) tea.Cmd {
	m.confirmationForm = &ConfirmationForm{}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(&m.confirmationForm.Confirmed),
		),
	)
	m.pendingAction = func() tea.Cmd { return action }
	m.previousState = m.state
	m.state = StateConfirm
	return m.form.Init()
}

func (m *Model) handleConfirmationState(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.pendingAction = nil
		m.state = m.previousState
		return nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		if m.confirmationForm.Confirmed && m.pendingAction != nil {
			cmds = append(cmds, m.pendingAction())
		}
		m.pendingAction = nil
		m.state = m.previousState
	case huh.StateAborted:
		m.pendingAction = nil
		m.state = m.previousState
	}
	return tea.Batch(cmds...)
}

func generateCmd(sched *scheduler.Scheduler, today time.Time) tea.Cmd {
	return func() tea.Msg {
		out, err := sched.Generate(today)
		if err != nil {
			if errors.Is(err, scheduler.ErrNoSubjects) {
				return actionDoneMsg{err: fmt.Errorf("%w, add one with 'studyweek subject add'", err)}
			}
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{status: fmt.Sprintf("✓ Saved %d sessions for the week of %s.", len(out.Sessions), out.WeekStart)}
	}
}

func adjustCmd(sched *scheduler.Scheduler, today time.Time) tea.Cmd {
	return func() tea.Msg {
		out, err := sched.AdjustMissed(today)
		if err != nil {
			if errors.Is(err, scheduler.ErrNoMissedSessions) {
				return actionDoneMsg{status: "No missed sessions this week, nothing to adjust."}
			}
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{status: fmt.Sprintf("✓ Adjusted %d subject(s), %d sessions this week.", len(out.Adjusted), len(out.Sessions))}
	}
}

// Package tui is the interactive view of the current week.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/studyweek/internal/models"
	"github.com/julianstephens/studyweek/internal/planner"
	"github.com/julianstephens/studyweek/internal/scheduler"
	"github.com/julianstephens/studyweek/internal/storage"
	"github.com/julianstephens/studyweek/internal/tui/components/progress"
	"github.com/julianstephens/studyweek/internal/tui/components/subjects"
	"github.com/julianstephens/studyweek/internal/tui/components/week"
	"github.com/julianstephens/studyweek/internal/utils"
	"github.com/julianstephens/studyweek/internal/validation"
)

type SessionState int

const (
	StateWeek SessionState = iota
	StateProgress
	StateSubjects
	StateConfirm
)

const numTabs = 3

var tabTitles = [numTabs]string{"Week", "Progress", "Subjects"}

type ConfirmationForm struct {
	Confirmed bool
}

type Model struct {
	store     storage.Provider
	scheduler *scheduler.Scheduler
	today     time.Time

	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model

	weekModel     week.Model
	progressModel progress.Model
	subjectsModel subjects.Model

	form             *huh.Form
	confirmationForm *ConfirmationForm
	pendingAction    func() tea.Cmd

	status   string
	warning  string
	err      error
	quitting bool
	width    int
	height   int
}

func NewModel(store storage.Provider, sched *scheduler.Scheduler, today time.Time) Model {
	m := Model{
		store:         store,
		scheduler:     sched,
		today:         today,
		state:         StateWeek,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		weekModel:     week.New(0, 10),
		progressModel: progress.New(0),
		subjectsModel: subjects.New(0, 10),
	}
	m.reload()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	if m.state == StateWeek {
		keys = append(keys, m.keys.Done, m.keys.Missed, m.keys.Generate, m.keys.Adjust)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Refresh}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}

	var actions []key.Binding
	if m.state == StateWeek {
		actions = []key.Binding{m.keys.Done, m.keys.Missed, m.keys.Pending, m.keys.Generate, m.keys.Adjust}
	}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// reload refreshes every tab from storage.
func (m *Model) reload() {
	m.err = nil
	byID, err := m.scheduler.Subjects()
	if err != nil {
		m.err = err
		return
	}
	days, err := m.scheduler.Timetable(m.today)
	if err != nil {
		m.err = err
		return
	}
	m.weekModel.SetWeek(days, byID, utils.DayName(m.today))

	report, err := m.scheduler.Progress(m.today)
	if err != nil {
		m.err = err
		return
	}
	m.progressModel.SetReport(report)

	active, err := m.store.GetAllSubjects()
	if err != nil {
		m.err = fmt.Errorf("failed to load subjects: %w", err)
		return
	}
	m.subjectsModel.SetSubjects(planner.Rank(active, m.today), func(s models.Subject) int {
		return planner.DaysUntil(s.Deadline, m.today)
	})

	m.updateValidationStatus(active, days)
}

func (m *Model) updateValidationStatus(active []models.Subject, days []scheduler.DaySessions) {
	settings, err := m.store.GetSettings()
	if err != nil {
		m.warning = "⚠ Validation unavailable"
		return
	}
	var sessions []models.Session
	for _, d := range days {
		sessions = append(sessions, d.Sessions...)
	}
	res := validation.CheckWeek(active, sessions, settings.HoursPerDay, m.today)
	if res.HasConflicts() {
		m.warning = fmt.Sprintf("⚠ %d conflict(s), run 'studyweek validate' for details", len(res.Conflicts))
		return
	}
	m.warning = ""
}

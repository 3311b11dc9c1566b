// Package scheduler runs the weekly planner against storage: it loads
// subjects and settings, allocates, and persists the week's sessions.
package scheduler

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/julianstephens/studyweek/internal/backup"
	"github.com/julianstephens/studyweek/internal/logger"
	"github.com/julianstephens/studyweek/internal/models"
	"github.com/julianstephens/studyweek/internal/planner"
	"github.com/julianstephens/studyweek/internal/storage"
	"github.com/julianstephens/studyweek/internal/utils"
	"github.com/julianstephens/studyweek/internal/weeklock"
)

var (
	ErrNoSubjects       = errors.New("no subjects added yet")
	ErrNoMissedSessions = errors.New("no missed sessions found this week")
)

// Snapshotter takes a backup before sessions are rewritten.
type Snapshotter interface {
	Create(reason string) (string, error)
}

// Outcome is the result of a generation, adjustment or preview.
type Outcome struct {
	WeekStart   string
	Capacity    float64
	Ranked      []models.Subject
	Plan        planner.WeeklyPlan
	Unscheduled []planner.Shortfall
	// Sessions holds what was persisted; for a preview, the unsaved sessions.
	Sessions []models.Session
	// Adjusted lists subjects whose priority was escalated.
	Adjusted []string
}

// DaySessions is one column of the week's timetable.
type DaySessions struct {
	Day      string
	Sessions []models.Session
}

type Option func(*Scheduler)

// WithLocker serialises regeneration across processes.
func WithLocker(l *weeklock.Locker) Option {
	return func(s *Scheduler) { s.locks = l }
}

// WithBackups snapshots the database before every regeneration.
func WithBackups(b Snapshotter) Option {
	return func(s *Scheduler) { s.backups = b }
}

type Scheduler struct {
	store   storage.Provider
	locks   *weeklock.Locker
	backups Snapshotter

	mu    sync.Mutex
	weeks map[string]*sync.Mutex
}

func New(store storage.Provider, opts ...Option) *Scheduler {
	s := &Scheduler{store: store, weeks: make(map[string]*sync.Mutex)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Scheduler) weekMutex(weekStart string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.weeks[weekStart]
	if !ok {
		m = &sync.Mutex{}
		s.weeks[weekStart] = m
	}
	return m
}

// exclusive runs fn while holding both the in-process and the on-disk lock
// for weekStart.
func (s *Scheduler) exclusive(weekStart string, fn func() error) error {
	m := s.weekMutex(weekStart)
	m.Lock()
	defer m.Unlock()

	if s.locks != nil {
		lk, err := s.locks.Acquire(weekStart)
		if err != nil {
			return err
		}
		defer func() {
			if err := lk.Release(); err != nil {
				logger.Warn("failed to release week lock", "week", weekStart, "error", err)
			}
		}()
	}
	return fn()
}

func (s *Scheduler) snapshot(reason string) error {
	if s.backups == nil {
		return nil
	}
	if _, err := s.backups.Create(reason); err != nil {
		return fmt.Errorf("pre-%s backup failed: %w", reason, err)
	}
	return nil
}

func (s *Scheduler) capacity() (float64, error) {
	settings, err := s.store.GetSettings()
	if err != nil {
		return 0, fmt.Errorf("failed to load settings: %w", err)
	}
	models.ApplyDefaultSettings(&settings)
	return settings.HoursPerDay, nil
}

// plan ranks and allocates all live subjects without touching storage.
func (s *Scheduler) plan(today time.Time) (Outcome, error) {
	subjects, err := s.store.GetAllSubjects()
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to load subjects: %w", err)
	}
	if len(subjects) == 0 {
		return Outcome{}, ErrNoSubjects
	}
	capacity, err := s.capacity()
	if err != nil {
		return Outcome{}, err
	}

	weekStart := utils.WeekStart(today)
	ranked := planner.Rank(subjects, today)
	wp := planner.Allocate(ranked, capacity)
	return Outcome{
		WeekStart:   weekStart,
		Capacity:    capacity,
		Ranked:      ranked,
		Plan:        wp,
		Unscheduled: wp.Unscheduled(ranked),
		Sessions:    wp.Sessions(weekStart),
	}, nil
}

// Preview computes the plan Generate would store.
func (s *Scheduler) Preview(today time.Time) (Outcome, error) {
	return s.plan(today)
}

// Generate replaces every session of today's week with a fresh allocation.
func (s *Scheduler) Generate(today time.Time) (Outcome, error) {
	var out Outcome
	err := s.exclusive(utils.WeekStart(today), func() error {
		var err error
		if out, err = s.plan(today); err != nil {
			return err
		}
		if err := s.snapshot(backup.ReasonPlan); err != nil {
			return err
		}
		stored, err := s.store.ReplaceWeekSessions(out.WeekStart, out.Sessions)
		if err != nil {
			return fmt.Errorf("failed to save sessions: %w", err)
		}
		out.Sessions = stored
		return nil
	})
	if err != nil {
		return Outcome{}, err
	}

	logger.Info("plan generated", "week", out.WeekStart, "sessions", len(out.Sessions),
		"capacity", out.Capacity, "unscheduled", len(out.Unscheduled))
	return out, nil
}

// AdjustMissed raises the priority of every subject with a missed session
// this week and reallocates, replacing only pending sessions.
func (s *Scheduler) AdjustMissed(today time.Time) (Outcome, error) {
	weekStart := utils.WeekStart(today)
	var out Outcome

	err := s.exclusive(weekStart, func() error {
		week, err := s.store.GetSessionsForWeek(weekStart)
		if err != nil {
			return fmt.Errorf("failed to load sessions: %w", err)
		}
		missed := planner.MissedSubjects(week)
		if len(missed) == 0 {
			return ErrNoMissedSessions
		}
		if err := s.snapshot(backup.ReasonAdjust); err != nil {
			return err
		}

		subjects, err := s.store.GetAllSubjects()
		if err != nil {
			return fmt.Errorf("failed to load subjects: %w", err)
		}
		adjusted, changed := planner.EscalatePriorities(subjects, missed)
		byID := make(map[string]models.Subject, len(adjusted))
		for _, sub := range adjusted {
			byID[sub.ID] = sub
		}
		for _, id := range changed {
			if err := s.store.UpdateSubject(byID[id]); err != nil {
				return fmt.Errorf("failed to escalate subject %s: %w", id, err)
			}
		}

		out, err = s.plan(today)
		if err != nil {
			return err
		}
		stored, err := s.store.ReplacePendingSessions(weekStart, out.Sessions)
		if err != nil {
			return fmt.Errorf("failed to save sessions: %w", err)
		}
		out.Sessions = stored
		out.Adjusted = missed
		return nil
	})
	if err != nil {
		return Outcome{}, err
	}

	logger.Info("plan adjusted for missed sessions", "week", weekStart,
		"adjusted", len(out.Adjusted), "sessions", len(out.Sessions))
	return out, nil
}

// Timetable returns the week's sessions grouped Monday to Sunday.
func (s *Scheduler) Timetable(today time.Time) ([]DaySessions, error) {
	week, err := s.store.GetSessionsForWeek(utils.WeekStart(today))
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}

	days := make([]DaySessions, planner.DaysPerWeek)
	for i, name := range planner.Days {
		days[i] = DaySessions{Day: name, Sessions: []models.Session{}}
	}
	for _, sess := range week {
		if i := planner.DayIndex(sess.DayName); i >= 0 {
			days[i].Sessions = append(days[i].Sessions, sess)
		}
	}
	return days, nil
}

// Today returns today's sessions, highest subject priority first.
func (s *Scheduler) Today(today time.Time) ([]models.Session, error) {
	week, err := s.store.GetSessionsForWeek(utils.WeekStart(today))
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}
	subjects, err := s.Subjects()
	if err != nil {
		return nil, err
	}

	name := utils.DayName(today)
	out := []models.Session{}
	for _, sess := range week {
		if sess.DayName == name {
			out = append(out, sess)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return subjects[out[i].SubjectID].Priority > subjects[out[j].SubjectID].Priority
	})
	return out, nil
}

// Subjects indexes every subject, deleted ones included, by ID.
func (s *Scheduler) Subjects() (map[string]models.Subject, error) {
	all, err := s.store.GetAllSubjectsIncludingDeleted()
	if err != nil {
		return nil, fmt.Errorf("failed to load subjects: %w", err)
	}
	byID := make(map[string]models.Subject, len(all))
	for _, sub := range all {
		byID[sub.ID] = sub
	}
	return byID, nil
}

func (s *Scheduler) Progress(today time.Time) (planner.Report, error) {
	subjects, err := s.store.GetAllSubjects()
	if err != nil {
		return planner.Report{}, fmt.Errorf("failed to load subjects: %w", err)
	}
	history, err := s.store.GetAllSessions()
	if err != nil {
		return planner.Report{}, fmt.Errorf("failed to load sessions: %w", err)
	}
	week, err := s.store.GetSessionsForWeek(utils.WeekStart(today))
	if err != nil {
		return planner.Report{}, fmt.Errorf("failed to load sessions: %w", err)
	}
	return planner.ComputeProgress(subjects, history, week, today), nil
}

func (s *Scheduler) Summary(today time.Time) ([]planner.DaySummary, error) {
	week, err := s.store.GetSessionsForWeek(utils.WeekStart(today))
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}
	return planner.WeeklySummary(week), nil
}

// SetStatus marks a session done, missed or pending.
func (s *Scheduler) SetStatus(sessionID string, status models.SessionStatus) (models.Session, error) {
	if err := s.store.UpdateSessionStatus(sessionID, status); err != nil {
		return models.Session{}, err
	}
	sess, err := s.store.GetSession(sessionID)
	if err != nil {
		return models.Session{}, err
	}
	logger.Debug("session status updated", "session", sessionID, "status", status)
	return sess, nil
}

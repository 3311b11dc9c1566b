package storage

import (
	"errors"

	"github.com/julianstephens/studyweek/internal/migration"
	"github.com/julianstephens/studyweek/internal/models"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrNotInitialized = errors.New("storage not initialized, run 'studyweek init' first")
	ErrAlreadyDeleted = errors.New("already deleted")
	ErrNotDeleted     = errors.New("not deleted")
	ErrInvalidStatus  = errors.New("invalid session status")
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Schema
	Migrate(logFn func(string)) (int, error)
	SchemaStatus() (migration.Status, error)

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Subjects
	AddSubject(models.Subject) error
	GetSubject(id string) (models.Subject, error)
	GetAllSubjects() ([]models.Subject, error)
	GetAllSubjectsIncludingDeleted() ([]models.Subject, error)
	UpdateSubject(models.Subject) error
	// DeleteSubject soft-deletes the subject and removes all of its sessions.
	DeleteSubject(id string) error
	RestoreSubject(id string) error
	// CountSubjects counts every subject ever added, deleted ones included.
	CountSubjects() (int, error)

	// Sessions
	GetSession(id string) (models.Session, error)
	// GetSessionsForWeek returns the week's sessions in insertion order.
	GetSessionsForWeek(weekStart string) ([]models.Session, error)
	GetAllSessions() ([]models.Session, error)
	UpdateSessionStatus(id string, status models.SessionStatus) error
	// ReplaceWeekSessions atomically deletes every session of the week and
	// inserts the given ones, assigning IDs where missing. The stored
	// sessions are returned.
	ReplaceWeekSessions(weekStart string, sessions []models.Session) ([]models.Session, error)
	// ReplacePendingSessions is ReplaceWeekSessions restricted to pending
	// rows: done and missed sessions of the week are preserved.
	ReplacePendingSessions(weekStart string, sessions []models.Session) ([]models.Session, error)

	// Utils
	GetConfigPath() string
}

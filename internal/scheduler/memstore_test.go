package scheduler

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/julianstephens/studyweek/internal/migration"
	"github.com/julianstephens/studyweek/internal/models"
	"github.com/julianstephens/studyweek/internal/storage"
)

// memStore is an in-memory storage.Provider for scheduler tests.
type memStore struct {
	mu       sync.Mutex
	settings models.Settings
	subjects []models.Subject
	sessions []models.Session
	nextID   int

	// failReplace makes the next Replace* call fail.
	failReplace bool
	replaces    int
}

var _ storage.Provider = (*memStore)(nil)

func newMemStore(hoursPerDay float64, subjects ...models.Subject) *memStore {
	return &memStore{
		settings: models.Settings{HoursPerDay: hoursPerDay, Timezone: "UTC"},
		subjects: subjects,
	}
}

func (m *memStore) Init() error { return nil }
func (m *memStore) Load() error { return nil }
func (m *memStore) Close() error { return nil }

func (m *memStore) Migrate(func(string)) (int, error) { return 0, nil }

func (m *memStore) SchemaStatus() (migration.Status, error) {
	return migration.Status{Current: 1, Latest: 1}, nil
}

func (m *memStore) GetConfigPath() string { return "memory" }

func (m *memStore) GetSettings() (models.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings, nil
}

func (m *memStore) SaveSettings(s models.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = s
	return nil
}

func (m *memStore) AddSubject(s models.Subject) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subjects = append(m.subjects, s)
	return nil
}

func (m *memStore) GetSubject(id string) (models.Subject, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.subjects {
		if s.ID == id && s.DeletedAt == nil {
			return s, nil
		}
	}
	return models.Subject{}, fmt.Errorf("subject %s: %w", id, storage.ErrNotFound)
}

func (m *memStore) GetAllSubjects() ([]models.Subject, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Subject
	for _, s := range m.subjects {
		if s.DeletedAt == nil {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memStore) GetAllSubjectsIncludingDeleted() ([]models.Subject, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Subject(nil), m.subjects...), nil
}

func (m *memStore) UpdateSubject(s models.Subject) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.subjects {
		if m.subjects[i].ID == s.ID {
			m.subjects[i] = s
			return nil
		}
	}
	return storage.ErrNotFound
}

func (m *memStore) DeleteSubject(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.subjects {
		if m.subjects[i].ID == id {
			now := "deleted"
			m.subjects[i].DeletedAt = &now
			kept := m.sessions[:0]
			for _, sess := range m.sessions {
				if sess.SubjectID != id {
					kept = append(kept, sess)
				}
			}
			m.sessions = kept
			return nil
		}
	}
	return storage.ErrNotFound
}

func (m *memStore) RestoreSubject(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.subjects {
		if m.subjects[i].ID == id {
			m.subjects[i].DeletedAt = nil
			return nil
		}
	}
	return storage.ErrNotFound
}

func (m *memStore) CountSubjects() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subjects), nil
}

func (m *memStore) GetSession(id string) (models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		if s.ID == id {
			return s, nil
		}
	}
	return models.Session{}, storage.ErrNotFound
}

func (m *memStore) GetSessionsForWeek(weekStart string) ([]models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Session
	for _, s := range m.sessions {
		if s.WeekStart == weekStart {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memStore) GetAllSessions() ([]models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Session(nil), m.sessions...), nil
}

func (m *memStore) UpdateSessionStatus(id string, status models.SessionStatus) error {
	if !status.Valid() {
		return storage.ErrInvalidStatus
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.sessions {
		if m.sessions[i].ID == id {
			m.sessions[i].Status = status
			return nil
		}
	}
	return storage.ErrNotFound
}

func (m *memStore) ReplaceWeekSessions(weekStart string, sessions []models.Session) ([]models.Session, error) {
	return m.replace(weekStart, sessions, func(models.Session) bool { return true })
}

func (m *memStore) ReplacePendingSessions(weekStart string, sessions []models.Session) ([]models.Session, error) {
	return m.replace(weekStart, sessions, func(s models.Session) bool { return s.Status == models.SessionPending })
}

func (m *memStore) replace(weekStart string, sessions []models.Session, drop func(models.Session) bool) ([]models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replaces++
	if m.failReplace {
		m.failReplace = false
		return nil, fmt.Errorf("replace failed")
	}

	var kept []models.Session
	for _, s := range m.sessions {
		if s.WeekStart == weekStart && drop(s) {
			continue
		}
		kept = append(kept, s)
	}
	stored := make([]models.Session, 0, len(sessions))
	for _, s := range sessions {
		m.nextID++
		s.ID = "s" + strconv.Itoa(m.nextID)
		s.WeekStart = weekStart
		if s.Status == "" {
			s.Status = models.SessionPending
		}
		stored = append(stored, s)
	}
	m.sessions = append(kept, stored...)
	return stored, nil
}

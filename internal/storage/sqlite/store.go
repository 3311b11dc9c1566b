package sqlite

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/studyweek/internal/logger"
	"github.com/julianstephens/studyweek/internal/migration"
	"github.com/julianstephens/studyweek/internal/models"
	"github.com/julianstephens/studyweek/internal/storage"
	"github.com/julianstephens/studyweek/migrations"
)

// busy_timeout lets a second studyweek process wait on a regeneration
// transaction instead of failing with SQLITE_BUSY.
const dsnPragmas = "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"

type Store struct {
	path string
	db   *sql.DB
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) open() error {
	db, err := sql.Open("sqlite", s.path+dsnPragmas)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db
	return nil
}

// Init creates the database file if needed, applies migrations and seeds
// default settings.
func (s *Store) Init() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if s.db == nil {
		if err := s.open(); err != nil {
			return err
		}
	}

	if _, err := s.Migrate(func(msg string) { logger.Info(msg) }); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	current, err := s.GetSettings()
	if err != nil {
		return err
	}
	// GetSettings fills defaults, so writing it back persists them.
	return s.SaveSettings(current)
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return storage.ErrNotInitialized
	}
	if err := s.open(); err != nil {
		return err
	}

	st, err := s.SchemaStatus()
	if err != nil {
		return err
	}
	if st.Current == 0 {
		return storage.ErrNotInitialized
	}
	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *Store) runner() (*migration.Runner, error) {
	sub, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(s.db, sub), nil
}

func (s *Store) Migrate(logFn func(string)) (int, error) {
	r, err := s.runner()
	if err != nil {
		return 0, err
	}
	return r.Apply(logFn)
}

func (s *Store) SchemaStatus() (migration.Status, error) {
	r, err := s.runner()
	if err != nil {
		return migration.Status{}, err
	}
	return r.Status()
}

func (s *Store) GetConfigPath() string {
	return s.path
}

// GetDB returns the underlying handle, nil before Init or Load.
func (s *Store) GetDB() *sql.DB {
	return s.db
}

func (s *Store) GetSettings() (models.Settings, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return models.Settings{}, err
	}
	defer rows.Close()

	raw := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		raw[key] = value
	}
	if err := rows.Err(); err != nil {
		return models.Settings{}, err
	}

	settings, err := models.MapToSettings(raw)
	if err != nil {
		return models.Settings{}, err
	}
	models.ApplyDefaultSettings(&settings)
	return settings, nil
}

func (s *Store) SaveSettings(settings models.Settings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for key, value := range models.SettingsToMap(settings) {
		if _, err := stmt.Exec(key, value); err != nil {
			return fmt.Errorf("saving setting %s: %w", key, err)
		}
	}
	return tx.Commit()
}

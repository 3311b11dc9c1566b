package postgres

import (
	"database/sql"
	"fmt"
	"io/fs"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/julianstephens/studyweek/internal/constants"
	"github.com/julianstephens/studyweek/internal/logger"
	"github.com/julianstephens/studyweek/internal/migration"
	"github.com/julianstephens/studyweek/internal/models"
	"github.com/julianstephens/studyweek/internal/storage"
	"github.com/julianstephens/studyweek/migrations"
)

type Store struct {
	connStr string
	db      *sql.DB
}

func New(connStr string) *Store {
	pinned, err := withSearchPath(connStr)
	if err != nil {
		logger.Warn("could not set search_path on connection string", "error", err)
		pinned = connStr
	}
	return &Store{connStr: pinned}
}

func (s *Store) connect() error {
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		if strings.Contains(err.Error(), "SSL is not enabled on the server") && !hasParam(s.connStr, "sslmode") {
			return fmt.Errorf("failed to connect to database: %w (hint: add sslmode=disable to the connection string)", err)
		}
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	s.db = db
	return nil
}

func (s *Store) Init() error {
	if s.db == nil {
		if err := s.connect(); err != nil {
			return err
		}
	}
	if _, err := s.db.Exec("CREATE SCHEMA IF NOT EXISTS " + constants.AppName); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	if _, err := s.Migrate(func(msg string) { logger.Info(msg) }); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	current, err := s.GetSettings()
	if err != nil {
		return err
	}
	return s.SaveSettings(current)
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}
	if err := s.connect(); err != nil {
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
	sub, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		return nil, fmt.Errorf("failed to access postgres migrations: %w", err)
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

// GetConfigPath returns a fixed label so the connection string never
// reaches logs or output.
func (s *Store) GetConfigPath() string {
	return "postgresql"
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

	stmt, err := tx.Prepare(`INSERT INTO settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`)
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

package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/studyweek/internal/cli"
	"github.com/julianstephens/studyweek/internal/models"
	"github.com/julianstephens/studyweek/internal/storage"
	"github.com/julianstephens/studyweek/internal/storage/postgres"
	"github.com/julianstephens/studyweek/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting the existing SQLite database before initialization."`
	Source string `help:"Source database path or connection string to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized studyweek storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		ctx.Printf("Copying data from: %s\n", c.Source)
		if err := c.copyFrom(ctx); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Println("Migration completed successfully!")
	}
	return nil
}

func (c *InitCmd) reset(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return errors.New("--force is only supported for SQLite storage")
	}
	dbPath := ctx.Store.GetConfigPath()
	if c.Source != "" {
		absDB, err := filepath.Abs(dbPath)
		if err == nil {
			dbPath = absDB
		}
		if absSource, err := filepath.Abs(c.Source); err == nil && absSource == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if _, err := os.Stat(dbPath); err == nil {
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		ctx.Printf("Deleted existing database at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}

func openSource(source string) (storage.Provider, error) {
	if !postgres.IsConnString(source) {
		return sqlite.NewStore(source), nil
	}
	if err := postgres.ValidateConnString(source); err != nil {
		if errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return nil, errors.New("PostgreSQL source connection string contains embedded credentials, use ~/.pgpass or PGPASSWORD instead")
		}
		return nil, err
	}
	return postgres.New(source), nil
}

// copyFrom copies settings, subjects and every week's sessions from the
// source store into the freshly initialised one.
func (c *InitCmd) copyFrom(ctx *cli.Context) error {
	src, err := openSource(c.Source)
	if err != nil {
		return err
	}
	if err := src.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer src.Close()

	ctx.Println("  Copying settings...")
	settings, err := src.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}

	ctx.Println("  Copying subjects...")
	subjects, err := src.GetAllSubjectsIncludingDeleted()
	if err != nil {
		return fmt.Errorf("failed to get subjects from source: %w", err)
	}
	var deleted []models.Subject
	for _, sub := range subjects {
		if err := ctx.Store.AddSubject(sub); err != nil {
			return fmt.Errorf("failed to add subject %s: %w", sub.ID, err)
		}
		if sub.DeletedAt != nil {
			deleted = append(deleted, sub)
		}
	}
	for _, sub := range deleted {
		if err := ctx.Store.DeleteSubject(sub.ID); err != nil {
			return fmt.Errorf("failed to mark subject %s deleted: %w", sub.ID, err)
		}
	}
	ctx.Printf("    Copied %d subjects\n", len(subjects))

	ctx.Println("  Copying sessions...")
	sessions, err := src.GetAllSessions()
	if err != nil {
		return fmt.Errorf("failed to get sessions from source: %w", err)
	}
	var weeks []string
	byWeek := make(map[string][]models.Session)
	for _, sess := range sessions {
		if _, ok := byWeek[sess.WeekStart]; !ok {
			weeks = append(weeks, sess.WeekStart)
		}
		byWeek[sess.WeekStart] = append(byWeek[sess.WeekStart], sess)
	}
	for _, w := range weeks {
		if _, err := ctx.Store.ReplaceWeekSessions(w, byWeek[w]); err != nil {
			return fmt.Errorf("failed to copy sessions for week %s: %w", w, err)
		}
	}
	ctx.Printf("    Copied %d sessions across %d weeks\n", len(sessions), len(weeks))
	return nil
}

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	count, err := ctx.Store.Migrate(func(msg string) {
		ctx.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		ctx.Println("No migrations to apply. Database is up to date.")
	} else {
		ctx.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}

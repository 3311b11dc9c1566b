// Package clitest builds command contexts backed by a throwaway SQLite
// database for command tests.
package clitest

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/studyweek/internal/backup"
	"github.com/julianstephens/studyweek/internal/cli"
	"github.com/julianstephens/studyweek/internal/models"
	"github.com/julianstephens/studyweek/internal/scheduler"
	"github.com/julianstephens/studyweek/internal/storage/sqlite"
	"github.com/julianstephens/studyweek/internal/weeklock"
)

// Today is the pinned date of every test context, a Monday.
const Today = "2025-01-06"

// Setup returns an initialised context whose output is captured in the
// returned buffer. The store is closed when the test ends.
func Setup(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "studyweek.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	mgr := backup.NewManager(dbPath)
	out := &bytes.Buffer{}
	ctx := &cli.Context{
		Store:         store,
		Scheduler:     scheduler.New(store, scheduler.WithLocker(weeklock.New(dir)), scheduler.WithBackups(mgr)),
		Backups:       mgr,
		ConfigDir:     dir,
		TodayOverride: Today,
		Out:           out,
		In:            strings.NewReader(""),
	}
	return ctx, out
}

// AddSubject stores a subject directly, bypassing the add command.
func AddSubject(t *testing.T, ctx *cli.Context, id, name string, hours float64, priority models.Priority, deadline string) models.Subject {
	t.Helper()
	sub := models.Subject{
		ID:         id,
		Name:       name,
		TotalHours: hours,
		Priority:   priority,
		Deadline:   deadline,
		Color:      models.ColorFor(0),
	}
	if err := ctx.Store.AddSubject(sub); err != nil {
		t.Fatalf("failed to add subject %s: %v", name, err)
	}
	return sub
}

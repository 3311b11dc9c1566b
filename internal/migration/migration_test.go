package migration

import (
	"database/sql"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func mapFS(files map[string]string) fstest.MapFS {
	out := fstest.MapFS{}
	for name, body := range files {
		out[name] = &fstest.MapFile{Data: []byte(body)}
	}
	return out
}

func TestCurrentVersion_FreshDatabase(t *testing.T) {
	r := NewRunner(openTestDB(t), mapFS(nil))
	v, err := r.CurrentVersion()
	if err != nil {
		t.Fatalf("CurrentVersion failed: %v", err)
	}
	if v != 0 {
		t.Errorf("version = %d, want 0", v)
	}
}

func TestMigrations_SortedAndFiltered(t *testing.T) {
	r := NewRunner(openTestDB(t), mapFS(map[string]string{
		"002_sessions.sql": "CREATE TABLE b (id INTEGER);",
		"001_init.sql":     "CREATE TABLE a (id INTEGER);",
		"README.md":        "not a migration",
	}))

	ms, err := r.Migrations()
	if err != nil {
		t.Fatalf("Migrations failed: %v", err)
	}
	if len(ms) != 2 {
		t.Fatalf("got %d migrations, want 2", len(ms))
	}
	if ms[0].Version != 1 || ms[0].Name != "init" || ms[1].Version != 2 || ms[1].Name != "sessions" {
		t.Errorf("unexpected migrations: %+v", ms)
	}
}

func TestMigrations_InvalidFilenames(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
	}{
		{"no underscore", map[string]string{"001.sql": ""}},
		{"non-numeric", map[string]string{"abc_init.sql": ""}},
		{"zero version", map[string]string{"000_init.sql": ""}},
		{"duplicate", map[string]string{"001_a.sql": "", "1_b.sql": ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRunner(openTestDB(t), mapFS(tt.files))
			if _, err := r.Migrations(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestApply(t *testing.T) {
	db := openTestDB(t)
	r := NewRunner(db, mapFS(map[string]string{
		"001_init.sql":     "CREATE TABLE subjects (id TEXT PRIMARY KEY);",
		"002_sessions.sql": "CREATE TABLE sessions (id TEXT PRIMARY KEY);",
	}))

	var lines []string
	n, err := r.Apply(func(s string) { lines = append(lines, s) })
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if n != 2 {
		t.Errorf("applied %d, want 2", n)
	}
	if len(lines) == 0 {
		t.Error("expected progress lines")
	}

	v, _ := r.CurrentVersion()
	if v != 2 {
		t.Errorf("version = %d, want 2", v)
	}
	for _, table := range []string{"subjects", "sessions"} {
		var count int
		if err := db.QueryRow("SELECT count(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count); err != nil || count != 1 {
			t.Errorf("table %s missing (err=%v)", table, err)
		}
	}

	// second run is a no-op
	n, err = r.Apply(nil)
	if err != nil || n != 0 {
		t.Errorf("second Apply = (%d, %v), want (0, nil)", n, err)
	}
}

func TestApply_FailureRollsBack(t *testing.T) {
	r := NewRunner(openTestDB(t), mapFS(map[string]string{
		"001_init.sql":   "CREATE TABLE ok (id INTEGER);",
		"002_broken.sql": "CREATE TABLE broken (;",
	}))

	n, err := r.Apply(nil)
	if err == nil {
		t.Fatal("expected error from broken migration")
	}
	if !strings.Contains(err.Error(), "broken") {
		t.Errorf("error should name the migration: %v", err)
	}
	if n != 1 {
		t.Errorf("applied %d, want 1", n)
	}
	v, _ := r.CurrentVersion()
	if v != 1 {
		t.Errorf("version = %d, want 1", v)
	}
}

func TestValidate_SchemaTooNew(t *testing.T) {
	db := openTestDB(t)
	newer := NewRunner(db, mapFS(map[string]string{
		"001_init.sql": "CREATE TABLE a (id INTEGER);",
		"002_more.sql": "CREATE TABLE b (id INTEGER);",
	}))
	if _, err := newer.Apply(nil); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	older := NewRunner(db, mapFS(map[string]string{
		"001_init.sql": "CREATE TABLE a (id INTEGER);",
	}))
	if err := older.Validate(); !errors.Is(err, ErrSchemaTooNew) {
		t.Errorf("Validate = %v, want ErrSchemaTooNew", err)
	}
	if _, err := older.Apply(nil); !errors.Is(err, ErrSchemaTooNew) {
		t.Errorf("Apply = %v, want ErrSchemaTooNew", err)
	}
}

func TestStatus(t *testing.T) {
	r := NewRunner(openTestDB(t), mapFS(map[string]string{
		"001_init.sql": "CREATE TABLE a (id INTEGER);",
	}))
	st, err := r.Status()
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if st.UpToDate() || len(st.Pending) != 1 || st.Latest != 1 {
		t.Errorf("unexpected status before apply: %+v", st)
	}
	if _, err := r.Apply(nil); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	st, _ = r.Status()
	if !st.UpToDate() {
		t.Errorf("expected up to date, got %+v", st)
	}
}

package system

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/studyweek/internal/cli/clitest"
	"github.com/julianstephens/studyweek/internal/models"
	"github.com/julianstephens/studyweek/internal/scheduler"
	"github.com/julianstephens/studyweek/internal/storage/sqlite"
	"github.com/julianstephens/studyweek/internal/utils"
)

func TestInitCmd(t *testing.T) {
	t.Run("idempotent", func(t *testing.T) {
		ctx, out := clitest.Setup(t)
		for i := 0; i < 2; i++ {
			if err := (&InitCmd{}).Run(ctx); err != nil {
				t.Fatalf("init run %d failed: %v", i+1, err)
			}
		}
		if !strings.Contains(out.String(), "Initialized studyweek storage at") {
			t.Errorf("unexpected output: %s", out.String())
		}
	})

	t.Run("force resets the database", func(t *testing.T) {
		ctx, out := clitest.Setup(t)
		clitest.AddSubject(t, ctx, "alg", "Algebra", 5, models.PriorityHigh, "2025-01-09")

		if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
			t.Fatalf("init --force failed: %v", err)
		}
		if !strings.Contains(out.String(), "Deleted existing database") {
			t.Errorf("expected deletion notice, got: %s", out.String())
		}
		subjects, err := ctx.Store.GetAllSubjectsIncludingDeleted()
		if err != nil {
			t.Fatalf("failed to get subjects: %v", err)
		}
		if len(subjects) != 0 {
			t.Errorf("expected an empty database, got %d subjects", len(subjects))
		}
	})

	t.Run("force refuses same source", func(t *testing.T) {
		ctx, _ := clitest.Setup(t)
		err := (&InitCmd{Force: true, Source: ctx.Store.GetConfigPath()}).Run(ctx)
		if err == nil || !strings.Contains(err.Error(), "same") {
			t.Errorf("expected same source error, got %v", err)
		}
	})
}

func TestInitCmd_Source(t *testing.T) {
	srcPath := filepath.Join(t.TempDir(), "source.db")
	src := sqlite.NewStore(srcPath)
	if err := src.Init(); err != nil {
		t.Fatalf("failed to init source: %v", err)
	}
	settings, err := src.GetSettings()
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}
	settings.HoursPerDay = 4
	if err := src.SaveSettings(settings); err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}
	for _, sub := range []models.Subject{
		{ID: "alg", Name: "Algebra", TotalHours: 5, Priority: models.PriorityHigh, Deadline: "2025-01-09", Color: models.ColorFor(0)},
		{ID: "read", Name: "Reading", TotalHours: 4, Priority: models.PriorityLow, Deadline: "2025-01-26", Color: models.ColorFor(1)},
		{ID: "old", Name: "Old", TotalHours: 2, Priority: models.PriorityLow, Deadline: "2025-01-20", Color: models.ColorFor(2)},
	} {
		if err := src.AddSubject(sub); err != nil {
			t.Fatalf("failed to add subject: %v", err)
		}
	}
	if err := src.DeleteSubject("old"); err != nil {
		t.Fatalf("failed to delete subject: %v", err)
	}
	today, _ := utils.ParseDate(clitest.Today)
	out, err := scheduler.New(src).Generate(today)
	if err != nil {
		t.Fatalf("failed to generate source plan: %v", err)
	}
	if err := src.Close(); err != nil {
		t.Fatalf("failed to close source: %v", err)
	}

	ctx, buf := clitest.Setup(t)
	if err := (&InitCmd{Source: srcPath}).Run(ctx); err != nil {
		t.Fatalf("init --source failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Migration completed successfully!") {
		t.Errorf("unexpected output: %s", buf.String())
	}

	gotSettings, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}
	if gotSettings.HoursPerDay != 4 {
		t.Errorf("hours per day = %v, want 4", gotSettings.HoursPerDay)
	}
	all, _ := ctx.Store.GetAllSubjectsIncludingDeleted()
	active, _ := ctx.Store.GetAllSubjects()
	if len(all) != 3 || len(active) != 2 {
		t.Errorf("got %d subjects (%d active), want 3 (2 active)", len(all), len(active))
	}
	sessions, err := ctx.Store.GetSessionsForWeek(out.WeekStart)
	if err != nil {
		t.Fatalf("failed to get sessions: %v", err)
	}
	if len(sessions) != len(out.Sessions) {
		t.Errorf("copied %d sessions, want %d", len(sessions), len(out.Sessions))
	}
}

func TestMigrateCmd_UpToDate(t *testing.T) {
	ctx, out := clitest.Setup(t)
	if err := (&MigrateCmd{}).Run(ctx); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if !strings.Contains(out.String(), "Database is up to date") {
		t.Errorf("unexpected output: %s", out.String())
	}
}

package planner

import (
	"testing"

	"github.com/julianstephens/studyweek/internal/models"
)

func TestMissedSubjects(t *testing.T) {
	got := MissedSubjects([]models.Session{
		{SubjectID: "b", Status: models.SessionMissed},
		{SubjectID: "a", Status: models.SessionDone},
		{SubjectID: "c", Status: models.SessionMissed},
		{SubjectID: "b", Status: models.SessionMissed},
		{SubjectID: "d", Status: models.SessionPending},
	})

	want := []string{"b", "c"}
	if len(got) != len(want) {
		t.Fatalf("MissedSubjects = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("MissedSubjects = %v, want %v", got, want)
		}
	}

	if MissedSubjects(nil) != nil {
		t.Error("expected nil for no sessions")
	}
}

func TestEscalatePriorities(t *testing.T) {
	subjects := []models.Subject{
		{ID: "low", Priority: models.PriorityLow},
		{ID: "high", Priority: models.PriorityHigh},
		{ID: "medium", Priority: models.PriorityMedium},
		{ID: "untouched", Priority: models.PriorityLow},
	}

	adjusted, changed := EscalatePriorities(subjects, []string{"low", "high", "medium"})

	wantPriorities := []models.Priority{2, 3, 3, 1}
	for i, p := range wantPriorities {
		if adjusted[i].Priority != p {
			t.Errorf("%s priority = %d, want %d", adjusted[i].ID, adjusted[i].Priority, p)
		}
	}

	if len(changed) != 2 || changed[0] != "low" || changed[1] != "medium" {
		t.Errorf("changed = %v, want [low medium]", changed)
	}

	if subjects[0].Priority != models.PriorityLow {
		t.Error("input subjects were mutated")
	}
}

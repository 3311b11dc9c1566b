package planner

import (
	"math"
	"testing"
	"time"

	"github.com/julianstephens/studyweek/internal/models"
)

// Monday 2 June 2025.
var monday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func TestDaysUntil(t *testing.T) {
	tests := []struct {
		name     string
		deadline string
		want     int
	}{
		{"future", "2025-06-12", 10},
		{"tomorrow", "2025-06-03", 1},
		{"today floors to one", "2025-06-02", 1},
		{"past floors to one", "2025-05-01", 1},
		{"unparseable falls back", "next friday", FallbackDaysLeft},
		{"empty falls back", "", FallbackDaysLeft},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysUntil(tt.deadline, monday); got != tt.want {
				t.Errorf("DaysUntil(%q) = %d, want %d", tt.deadline, got, tt.want)
			}
		})
	}
}

func TestDaysUntil_IgnoresTimeOfDay(t *testing.T) {
	lateEvening := time.Date(2025, 6, 2, 23, 30, 0, 0, time.UTC)
	if got := DaysUntil("2025-06-04", lateEvening); got != 2 {
		t.Errorf("DaysUntil = %d, want 2", got)
	}
}

func TestUrgency(t *testing.T) {
	tests := []struct {
		name    string
		subject models.Subject
		want    float64
	}{
		{"medium, ten days", models.Subject{Priority: 2, Deadline: "2025-06-12"}, 30},
		{"high, due tomorrow hits the deadline cap", models.Subject{Priority: 3, Deadline: "2025-06-03"}, 80},
		{"low, twenty days", models.Subject{Priority: 1, Deadline: "2025-06-22"}, 15},
		{"bad deadline uses fallback", models.Subject{Priority: 1, Deadline: "soon"}, 10 + 100.0/30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Urgency(tt.subject, monday)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Urgency = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRank_OrdersByUrgency(t *testing.T) {
	subjects := []models.Subject{
		{ID: "history", Priority: 1, Deadline: "2025-06-22"},
		{ID: "maths", Priority: 3, Deadline: "2025-06-05"},
		{ID: "physics", Priority: 2, Deadline: "2025-06-12"},
	}

	ranked := Rank(subjects, monday)

	want := []string{"maths", "physics", "history"}
	for i, id := range want {
		if ranked[i].ID != id {
			t.Fatalf("ranked[%d] = %s, want %s (full order %v)", i, ranked[i].ID, id, ids(ranked))
		}
	}
}

func TestRank_StableForTies(t *testing.T) {
	subjects := []models.Subject{
		{ID: "c", Priority: 2, Deadline: "2025-06-10"},
		{ID: "a", Priority: 2, Deadline: "2025-06-10"},
		{ID: "b", Priority: 2, Deadline: "2025-06-10"},
		{ID: "top", Priority: 3, Deadline: "2025-06-10"},
	}

	ranked := Rank(subjects, monday)

	want := []string{"top", "c", "a", "b"}
	for i, id := range want {
		if ranked[i].ID != id {
			t.Fatalf("got order %v, want %v", ids(ranked), want)
		}
	}
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	subjects := []models.Subject{
		{ID: "low", Priority: 1, Deadline: "2025-07-01"},
		{ID: "high", Priority: 3, Deadline: "2025-06-03"},
	}

	_ = Rank(subjects, monday)

	if subjects[0].ID != "low" || subjects[1].ID != "high" {
		t.Errorf("input slice was reordered: %v", ids(subjects))
	}
}

func TestRank_Empty(t *testing.T) {
	ranked := Rank(nil, monday)
	if ranked == nil || len(ranked) != 0 {
		t.Errorf("Rank(nil) = %#v, want empty non-nil slice", ranked)
	}
}

func TestValidatePriority(t *testing.T) {
	for _, p := range []int{1, 2, 3} {
		if err := ValidatePriority(p); err != nil {
			t.Errorf("ValidatePriority(%d) = %v, want nil", p, err)
		}
	}
	for _, p := range []int{0, 4, -1} {
		if err := ValidatePriority(p); err != ErrInvalidPriority {
			t.Errorf("ValidatePriority(%d) = %v, want ErrInvalidPriority", p, err)
		}
	}
}

func TestValidateCapacity(t *testing.T) {
	if err := ValidateCapacity(0.5); err != nil {
		t.Errorf("ValidateCapacity(0.5) = %v", err)
	}
	if err := ValidateCapacity(0); err != ErrInvalidCapacity {
		t.Errorf("ValidateCapacity(0) = %v, want ErrInvalidCapacity", err)
	}
}

func ids(subjects []models.Subject) []string {
	out := make([]string, len(subjects))
	for i, s := range subjects {
		out[i] = s.ID
	}
	return out
}

package planner

import (
	"testing"

	"github.com/julianstephens/studyweek/internal/models"
)

func TestProductivityScore(t *testing.T) {
	tests := []struct {
		name   string
		total  float64
		done   float64
		missed int
		want   int
	}{
		{"no workload", 0, 0, 3, 0},
		{"half done, no misses", 10, 5, 0, 50},
		{"penalty per miss", 10, 5, 2, 44},
		{"penalty capped at 25", 10, 5, 10, 25},
		{"clamped at zero", 10, 1, 9, 0},
		{"fully done", 8, 8, 0, 100},
		{"rounds to nearest", 3, 1, 0, 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ProductivityScore(tt.total, tt.done, tt.missed); got != tt.want {
				t.Errorf("ProductivityScore(%v, %v, %d) = %d, want %d", tt.total, tt.done, tt.missed, got, tt.want)
			}
		})
	}
}

func TestProductivityScore_MonotonicInMisses(t *testing.T) {
	for _, done := range []float64{0, 2.5, 7, 10} {
		prev := ProductivityScore(10, done, 0)
		for missed := 1; missed <= 20; missed++ {
			score := ProductivityScore(10, done, missed)
			if score > prev {
				t.Fatalf("done=%v: score rose from %d to %d at %d misses", done, prev, score, missed)
			}
			if score < 0 {
				t.Fatalf("done=%v: negative score %d", done, score)
			}
			prev = score
		}
	}
}

func TestCompletedHours(t *testing.T) {
	got := CompletedHours([]models.Session{
		{SubjectID: "a", Hours: 1.1, Status: models.SessionDone},
		{SubjectID: "a", Hours: 2.2, Status: models.SessionDone},
		{SubjectID: "a", Hours: 5, Status: models.SessionMissed},
		{SubjectID: "b", Hours: 3, Status: models.SessionPending},
	})

	if got["a"] != 3.3 {
		t.Errorf("a = %v, want 3.3", got["a"])
	}
	if _, ok := got["b"]; ok {
		t.Errorf("b should have no completed hours, got %v", got["b"])
	}
}

func TestComputeProgress(t *testing.T) {
	subjects := []models.Subject{
		{ID: "algebra", TotalHours: 10, Priority: 2, Deadline: "2025-06-12"},
		{ID: "reading", TotalHours: 0, Priority: 1, Deadline: "2025-06-30"},
		{ID: "latin", TotalHours: 2, Priority: 3, Deadline: "bogus"},
	}
	history := []models.Session{
		// Earlier week still counts toward completed hours.
		{SubjectID: "algebra", Hours: 2.5, WeekStart: "2025-05-26", Status: models.SessionDone},
		{SubjectID: "algebra", Hours: 1.5, WeekStart: "2025-06-02", Status: models.SessionDone},
		{SubjectID: "latin", Hours: 3, WeekStart: "2025-06-02", Status: models.SessionDone},
		{SubjectID: "algebra", Hours: 2, WeekStart: "2025-06-02", Status: models.SessionMissed},
	}
	week := []models.Session{
		history[1], history[2], history[3],
		{SubjectID: "algebra", Hours: 2, WeekStart: "2025-06-02", Status: models.SessionPending},
	}

	report := ComputeProgress(subjects, history, week, monday)

	algebra := report.Subjects[0]
	if algebra.CompletedHours != 4 || algebra.Pct != 40 || algebra.DaysLeft != 10 {
		t.Errorf("algebra progress = %+v", algebra)
	}
	if algebra.HoursPerDayNeeded != 0.6 || algebra.RemainingHours != 6 {
		t.Errorf("algebra pace = %+v", algebra)
	}

	reading := report.Subjects[1]
	if reading.Pct != 0 || reading.HoursPerDayNeeded != 0 {
		t.Errorf("zero-workload subject = %+v", reading)
	}

	latin := report.Subjects[2]
	if latin.Pct != 150 {
		t.Errorf("over-logged subject pct = %d, want 150", latin.Pct)
	}
	if latin.DaysLeft != FallbackDaysLeft || latin.HoursPerDayNeeded != 0 {
		t.Errorf("latin = %+v", latin)
	}

	if report.TotalHours != 12 || report.CompletedHours != 7 {
		t.Errorf("totals = %v / %v, want 12 / 7", report.TotalHours, report.CompletedHours)
	}
	if report.MissedCount != 1 || report.DoneCount != 2 {
		t.Errorf("counts = missed %d done %d", report.MissedCount, report.DoneCount)
	}
	// 7/12 = 58.33%, minus 3 for the single miss.
	if report.Score != 55 {
		t.Errorf("Score = %d, want 55", report.Score)
	}

	wantOrder := []string{"latin", "algebra", "reading"}
	for i, id := range wantOrder {
		if report.PriorityOrder[i] != id {
			t.Fatalf("PriorityOrder = %v, want %v", report.PriorityOrder, wantOrder)
		}
	}
}

func TestComputeProgress_Empty(t *testing.T) {
	report := ComputeProgress(nil, nil, nil, monday)
	if report.Score != 0 || len(report.Subjects) != 0 || len(report.PriorityOrder) != 0 {
		t.Errorf("empty report = %+v", report)
	}
}

func TestWeeklySummary(t *testing.T) {
	summary := WeeklySummary([]models.Session{
		{DayName: "Monday", Hours: 2, Status: models.SessionDone},
		{DayName: "Monday", Hours: 1.5, Status: models.SessionMissed},
		{DayName: "Wednesday", Hours: 3, Status: models.SessionPending},
		{DayName: "Wednesday", Hours: 0.2, Status: models.SessionPending},
		{DayName: "Someday", Hours: 9, Status: models.SessionDone},
	})

	if len(summary) != DaysPerWeek {
		t.Fatalf("got %d days, want 7", len(summary))
	}
	if summary[0] != (DaySummary{Day: "Monday", TotalHours: 3.5, Done: 1, Missed: 1}) {
		t.Errorf("Monday = %+v", summary[0])
	}
	if summary[2] != (DaySummary{Day: "Wednesday", TotalHours: 3.2, Pending: 2}) {
		t.Errorf("Wednesday = %+v", summary[2])
	}
	if summary[6] != (DaySummary{Day: "Sunday"}) {
		t.Errorf("Sunday = %+v", summary[6])
	}
}

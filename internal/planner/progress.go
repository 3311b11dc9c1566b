package planner

import (
	"math"
	"time"

	"github.com/julianstephens/studyweek/internal/models"
)

const (
	// MissedPenaltyPoints is deducted from the score per missed session.
	MissedPenaltyPoints = 3
	// MaxMissedPenalty caps the total deduction for missed sessions.
	MaxMissedPenalty = 25
)

// SubjectProgress is the derived state of one subject.
type SubjectProgress struct {
	Subject           models.Subject `json:"subject"`
	CompletedHours    float64        `json:"completed_hours"`
	RemainingHours    float64        `json:"remaining_hours"`
	DaysLeft          int            `json:"days_left"`
	Pct               int            `json:"pct"`
	HoursPerDayNeeded float64        `json:"hours_per_day_needed"`
}

// Report aggregates progress across all subjects.
type Report struct {
	Subjects       []SubjectProgress `json:"subjects"`
	Score          int               `json:"score"`
	TotalHours     float64           `json:"total_hours"`
	CompletedHours float64           `json:"completed_hours"`
	MissedCount    int               `json:"missed_count"`
	DoneCount      int               `json:"done_count"`
	PriorityOrder  []string          `json:"priority_order"`
}

// CompletedHours sums the hours of done sessions per subject.
func CompletedHours(history []models.Session) map[string]float64 {
	done := make(map[string]float64)
	for _, s := range history {
		if s.Status == models.SessionDone {
			done[s.SubjectID] += s.Hours
		}
	}
	for id, h := range done {
		done[id] = round1(h)
	}
	return done
}

// ProductivityScore turns completed vs total workload into a 0..100 score,
// docking MissedPenaltyPoints per missed session up to MaxMissedPenalty.
func ProductivityScore(totalHours, doneHours float64, missedCount int) int {
	if totalHours == 0 {
		return 0
	}
	base := doneHours / totalHours * 100
	penalty := min(missedCount*MissedPenaltyPoints, MaxMissedPenalty)
	return max(0, int(math.Round(base-float64(penalty))))
}

// ComputeProgress derives per-subject and aggregate progress. history is
// every known session of the subjects (completed hours are all-time);
// week is the sessions of the current week (counts and score penalty).
func ComputeProgress(subjects []models.Subject, history, week []models.Session, today time.Time) Report {
	completed := CompletedHours(history)

	report := Report{
		Subjects:      make([]SubjectProgress, 0, len(subjects)),
		PriorityOrder: make([]string, 0, len(subjects)),
	}

	totalH, doneH := 0.0, 0.0
	for _, s := range subjects {
		sp := SubjectProgress{
			Subject:        s,
			CompletedHours: completed[s.ID],
			DaysLeft:       DaysUntil(s.Deadline, today),
		}
		if s.TotalHours != 0 {
			sp.Pct = int(math.Round(sp.CompletedHours / s.TotalHours * 100))
		}
		remaining := s.TotalHours - sp.CompletedHours
		if remaining > 0 {
			sp.RemainingHours = round1(remaining)
			if sp.DaysLeft > 0 {
				sp.HoursPerDayNeeded = round1(remaining / float64(sp.DaysLeft))
			}
		}
		report.Subjects = append(report.Subjects, sp)

		totalH += s.TotalHours
		doneH += sp.CompletedHours
	}

	for _, s := range week {
		switch s.Status {
		case models.SessionMissed:
			report.MissedCount++
		case models.SessionDone:
			report.DoneCount++
		}
	}

	report.Score = ProductivityScore(totalH, doneH, report.MissedCount)
	report.TotalHours = round1(totalH)
	report.CompletedHours = round1(doneH)

	for _, s := range Rank(subjects, today) {
		report.PriorityOrder = append(report.PriorityOrder, s.ID)
	}

	return report
}

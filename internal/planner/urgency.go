package planner

import (
	"math"
	"sort"
	"time"

	"github.com/julianstephens/studyweek/internal/models"
	"github.com/julianstephens/studyweek/internal/utils"
)

const (
	// FallbackDaysLeft is used when a deadline cannot be parsed.
	FallbackDaysLeft = 30

	priorityWeight = 10.0
	deadlineWeight = 100.0
	deadlineCap    = 50.0
)

// DaysUntil returns the whole days from today to deadline, floored at 1.
// An unparseable deadline yields FallbackDaysLeft.
func DaysUntil(deadline string, today time.Time) int {
	dl, err := utils.ParseDate(deadline)
	if err != nil {
		return FallbackDaysLeft
	}
	return max(1, utils.DaysBetween(today, dl))
}

// Urgency scores s; higher is more urgent.
func Urgency(s models.Subject, today time.Time) float64 {
	d := float64(DaysUntil(s.Deadline, today))
	return float64(s.Priority)*priorityWeight + math.Min(deadlineCap, deadlineWeight/d)
}

type scored struct {
	subject models.Subject
	urgency float64
}

// Rank returns a copy of subjects ordered by descending urgency. Subjects
// with equal urgency keep their input order.
func Rank(subjects []models.Subject, today time.Time) []models.Subject {
	entries := make([]scored, len(subjects))
	for i, s := range subjects {
		entries[i] = scored{subject: s, urgency: Urgency(s, today)}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].urgency > entries[j].urgency
	})

	ranked := make([]models.Subject, len(entries))
	for i, e := range entries {
		ranked[i] = e.subject
	}
	return ranked
}

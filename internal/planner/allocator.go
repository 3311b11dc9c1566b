package planner

import (
	"math"

	"github.com/julianstephens/studyweek/internal/models"
)

// Per-block ceilings by priority, so one subject cannot eat a whole day.
const (
	HighPriorityBlockHours   = 3.0
	MediumPriorityBlockHours = 2.0
	LowPriorityBlockHours    = 1.5
)

// Block is a contiguous chunk of study for one subject on one day.
type Block struct {
	SubjectID string  `json:"subject_id"`
	Hours     float64 `json:"hours"`
}

// WeeklyPlan maps each weekday (by index into Days) to its blocks in
// allocation order.
type WeeklyPlan struct {
	Days [DaysPerWeek][]Block `json:"days"`
}

// Shortfall is workload the allocator could not fit into the week.
type Shortfall struct {
	SubjectID string  `json:"subject_id"`
	Hours     float64 `json:"hours"`
}

// NewWeeklyPlan returns a plan with all seven days present and empty.
func NewWeeklyPlan() WeeklyPlan {
	var p WeeklyPlan
	for i := range p.Days {
		p.Days[i] = []Block{}
	}
	return p
}

// MaxBlockHours returns the largest block a subject of priority p may
// receive. Anything other than high or medium gets the low cap.
func MaxBlockHours(p models.Priority) float64 {
	switch p {
	case models.PriorityHigh:
		return HighPriorityBlockHours
	case models.PriorityMedium:
		return MediumPriorityBlockHours
	default:
		return LowPriorityBlockHours
	}
}

// Allocate distributes the workload of ranked subjects over the week in a
// single greedy pass. Subjects are consumed in the given order; a day
// closes once its used hours reach dailyCapacity. Workload that does not
// fit by Sunday is dropped.
func Allocate(ranked []models.Subject, dailyCapacity float64) WeeklyPlan {
	plan := NewWeeklyPlan()

	dayIndex := 0
	dayHoursUsed := 0.0

	for _, sub := range ranked {
		if dayIndex >= DaysPerWeek {
			break
		}

		remaining := sub.TotalHours
		maxBlock := MaxBlockHours(sub.Priority)

		for remaining > 0 && dayIndex < DaysPerWeek {
			available := dailyCapacity - dayHoursUsed
			if available <= 0 {
				dayIndex++
				dayHoursUsed = 0
				continue
			}

			block := round1(math.Min(remaining, math.Min(available, maxBlock)))
			if block <= 0 {
				// Sub-0.05h slivers round to nothing: either the day has no
				// usable room left or the subject is effectively finished.
				if round1(available) <= 0 {
					dayIndex++
					dayHoursUsed = 0
					continue
				}
				break
			}

			plan.Days[dayIndex] = append(plan.Days[dayIndex], Block{SubjectID: sub.ID, Hours: block})
			remaining = round1(remaining - block)
			dayHoursUsed = round1(dayHoursUsed + block)

			if dayHoursUsed >= dailyCapacity {
				dayIndex++
				dayHoursUsed = 0
			}
		}
	}

	return plan
}

// Day returns the blocks for the named weekday, or nil for an unknown name.
func (p WeeklyPlan) Day(name string) []Block {
	i := DayIndex(name)
	if i < 0 {
		return nil
	}
	return p.Days[i]
}

// DayHours sums the hours allocated on day i.
func (p WeeklyPlan) DayHours(i int) float64 {
	total := 0.0
	for _, b := range p.Days[i] {
		total += b.Hours
	}
	return round1(total)
}

// SubjectHours sums the hours allocated to one subject across the week.
func (p WeeklyPlan) SubjectHours(subjectID string) float64 {
	total := 0.0
	for _, day := range p.Days {
		for _, b := range day {
			if b.SubjectID == subjectID {
				total += b.Hours
			}
		}
	}
	return round1(total)
}

// TotalHours sums every block in the plan.
func (p WeeklyPlan) TotalHours() float64 {
	total := 0.0
	for i := range p.Days {
		total += p.DayHours(i)
	}
	return round1(total)
}

// BlockCount returns the number of blocks in the plan.
func (p WeeklyPlan) BlockCount() int {
	n := 0
	for _, day := range p.Days {
		n += len(day)
	}
	return n
}

// Sessions materialises the plan as pending sessions for the week starting
// on weekStart. IDs are left for the store to assign.
func (p WeeklyPlan) Sessions(weekStart string) []models.Session {
	sessions := make([]models.Session, 0, p.BlockCount())
	for i, day := range p.Days {
		for _, b := range day {
			sessions = append(sessions, models.Session{
				SubjectID: b.SubjectID,
				DayName:   Days[i],
				Hours:     b.Hours,
				WeekStart: weekStart,
				Status:    models.SessionPending,
			})
		}
	}
	return sessions
}

// Unscheduled reports, in the given order, the workload of each subject
// that the plan did not cover.
func (p WeeklyPlan) Unscheduled(subjects []models.Subject) []Shortfall {
	var out []Shortfall
	for _, s := range subjects {
		if s.TotalHours <= 0 {
			continue
		}
		left := round1(s.TotalHours - p.SubjectHours(s.ID))
		if left > 0 {
			out = append(out, Shortfall{SubjectID: s.ID, Hours: left})
		}
	}
	return out
}

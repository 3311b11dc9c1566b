package planner

import "github.com/julianstephens/studyweek/internal/models"

// DaySummary aggregates one weekday's sessions.
type DaySummary struct {
	Day        string  `json:"day"`
	TotalHours float64 `json:"total"`
	Done       int     `json:"done"`
	Missed     int     `json:"missed"`
	Pending    int     `json:"pending"`
}

// WeeklySummary returns one DaySummary per weekday, Monday first. Sessions
// with an unrecognised day name are ignored.
func WeeklySummary(week []models.Session) []DaySummary {
	summary := make([]DaySummary, DaysPerWeek)
	for i, d := range Days {
		summary[i].Day = d
	}

	for _, s := range week {
		i := DayIndex(s.DayName)
		if i < 0 {
			continue
		}
		summary[i].TotalHours += s.Hours
		switch s.Status {
		case models.SessionDone:
			summary[i].Done++
		case models.SessionMissed:
			summary[i].Missed++
		case models.SessionPending:
			summary[i].Pending++
		}
	}

	for i := range summary {
		summary[i].TotalHours = round1(summary[i].TotalHours)
	}
	return summary
}

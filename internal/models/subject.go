package models

import "github.com/julianstephens/studyweek/internal/constants"

// Priority is the urgency tier of a subject. Values outside 1..3 are
// accepted by the planner and treated as low.
type Priority int

const (
	PriorityLow    Priority = 1
	PriorityMedium Priority = 2
	PriorityHigh   Priority = 3
)

func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	case PriorityLow:
		return "low"
	default:
		return "unknown"
	}
}

type Subject struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	TotalHours float64  `json:"total_hours"`
	Priority   Priority `json:"priority"`
	Deadline   string   `json:"deadline"` // YYYY-MM-DD format
	Color      string   `json:"color"`
	CreatedAt  string   `json:"created_at"`           // RFC3339 timestamp
	DeletedAt  *string  `json:"deleted_at,omitempty"` // RFC3339 timestamp
}

// ColorFor returns the palette colour for a subject added after existing
// others. Colours cycle once the palette is exhausted.
func ColorFor(existing int) string {
	if existing < 0 {
		existing = 0
	}
	return constants.SubjectColors[existing%len(constants.SubjectColors)]
}

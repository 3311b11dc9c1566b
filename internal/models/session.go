package models

type SessionStatus string

const (
	SessionPending SessionStatus = "pending"
	SessionDone    SessionStatus = "done"
	SessionMissed  SessionStatus = "missed"
)

// Valid reports whether s is one of the known session statuses.
func (s SessionStatus) Valid() bool {
	switch s {
	case SessionPending, SessionDone, SessionMissed:
		return true
	}
	return false
}

// Session is one allocated block of study for a subject on a weekday of
// a given week.
type Session struct {
	ID        string        `json:"id"`
	SubjectID string        `json:"subject_id"`
	DayName   string        `json:"day_name"` // Monday..Sunday
	Hours     float64       `json:"hours"`
	WeekStart string        `json:"week_start"` // YYYY-MM-DD, always a Monday
	Status    SessionStatus `json:"status"`
}

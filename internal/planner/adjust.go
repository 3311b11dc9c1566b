package planner

import "github.com/julianstephens/studyweek/internal/models"

// MissedSubjects returns the distinct IDs of subjects with at least one
// missed session, in first-seen order.
func MissedSubjects(week []models.Session) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, s := range week {
		if s.Status != models.SessionMissed || seen[s.SubjectID] {
			continue
		}
		seen[s.SubjectID] = true
		ids = append(ids, s.SubjectID)
	}
	return ids
}

// EscalatePriorities raises the priority of every subject in missedIDs by
// one tier, capped at high. It returns an adjusted copy of subjects and the
// IDs whose priority actually changed.
func EscalatePriorities(subjects []models.Subject, missedIDs []string) ([]models.Subject, []string) {
	missed := make(map[string]bool, len(missedIDs))
	for _, id := range missedIDs {
		missed[id] = true
	}

	adjusted := make([]models.Subject, len(subjects))
	copy(adjusted, subjects)

	var changed []string
	for i := range adjusted {
		if !missed[adjusted[i].ID] {
			continue
		}
		next := min(models.PriorityHigh, adjusted[i].Priority+1)
		if next != adjusted[i].Priority {
			adjusted[i].Priority = next
			changed = append(changed, adjusted[i].ID)
		}
	}
	return adjusted, changed
}

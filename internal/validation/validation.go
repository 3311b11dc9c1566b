package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/julianstephens/studyweek/internal/models"
	"github.com/julianstephens/studyweek/internal/planner"
	"github.com/julianstephens/studyweek/internal/utils"
)

// SubjectInput is a subject as entered by the user, before it gets an ID.
type SubjectInput struct {
	Name       string  `validate:"required,max=100"`
	TotalHours float64 `validate:"gte=0,lte=10000"`
	Priority   int     `validate:"oneof=1 2 3"`
	Deadline   string  `validate:"required,datetime=2006-01-02"`
}

// SettingsInput holds user-editable settings.
type SettingsInput struct {
	HoursPerDay float64 `validate:"gt=0,lte=24"`
	Timezone    string  `validate:"required"`
}

var validate = validator.New()

// FieldError is one failed rule on one input field.
type FieldError struct {
	Field   string
	Message string
}

// InputError collects every failed field of an input.
type InputError struct {
	Fields []FieldError
}

func (e *InputError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + " " + f.Message
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "gte":
		return "must be at least " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "lte", "max":
		return "must be at most " + fe.Param()
	default:
		return "failed " + fe.Tag() + " check"
	}
}

func check(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}
	out := &InputError{}
	for _, fe := range ves {
		out.Fields = append(out.Fields, FieldError{Field: strings.ToLower(fe.Field()), Message: message(fe)})
	}
	return out
}

// ValidateSubject checks a subject entered on the command line or in the TUI.
func ValidateSubject(in SubjectInput) error {
	return check(in)
}

// ValidateSettings checks capacity bounds and that the timezone loads.
func ValidateSettings(in SettingsInput) error {
	if err := check(in); err != nil {
		return err
	}
	if _, err := utils.LoadLocation(in.Timezone); err != nil {
		return &InputError{Fields: []FieldError{{Field: "timezone", Message: "is not a known IANA timezone"}}}
	}
	return nil
}

type ConflictType string

const (
	ConflictOverCapacity     ConflictType = "over_capacity"
	ConflictUnscheduled      ConflictType = "unscheduled"
	ConflictPastDeadline     ConflictType = "past_deadline"
	ConflictInvalidDeadline  ConflictType = "invalid_deadline"
	ConflictDuplicateSubject ConflictType = "duplicate_subject"
	ConflictInvalidPriority  ConflictType = "invalid_priority"
	ConflictInvalidCapacity  ConflictType = "invalid_capacity"
)

// Conflict is a problem found in the subjects or the stored week.
type Conflict struct {
	Type        ConflictType
	Description string
	Day         string   // set for day-level conflicts
	SubjectIDs  []string // subjects involved
}

type Result struct {
	Conflicts []Conflict
}

func (r *Result) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

func (r *Result) FormatReport() string {
	if !r.HasConflicts() {
		return "No conflicts detected."
	}
	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, c := range r.Conflicts {
		fmt.Fprintf(&b, "- %s\n", c.Description)
	}
	return b.String()
}

// CheckWeek inspects subjects and the stored sessions of one week.
// capacity is the configured hours per day.
func CheckWeek(subjects []models.Subject, week []models.Session, capacity float64, today time.Time) Result {
	var res Result
	names := make(map[string]string, len(subjects))
	for _, s := range subjects {
		names[s.ID] = s.Name
	}

	res.Conflicts = append(res.Conflicts, duplicateNames(subjects)...)

	if err := planner.ValidateCapacity(capacity); err != nil {
		res.Conflicts = append(res.Conflicts, Conflict{
			Type:        ConflictInvalidCapacity,
			Description: fmt.Sprintf("daily capacity %.1fh leaves nothing to allocate", capacity),
		})
	}

	for _, s := range subjects {
		if err := planner.ValidatePriority(int(s.Priority)); err != nil {
			res.Conflicts = append(res.Conflicts, Conflict{
				Type:        ConflictInvalidPriority,
				Description: fmt.Sprintf("%s has priority %d; it is planned as low", s.Name, s.Priority),
				SubjectIDs:  []string{s.ID},
			})
		}
		deadline, err := utils.ParseDate(s.Deadline)
		if err != nil {
			res.Conflicts = append(res.Conflicts, Conflict{
				Type:        ConflictInvalidDeadline,
				Description: fmt.Sprintf("%s has an unreadable deadline %q; urgency assumes %d days left", s.Name, s.Deadline, planner.FallbackDaysLeft),
				SubjectIDs:  []string{s.ID},
			})
			continue
		}
		if utils.DaysBetween(today, deadline) < 0 {
			res.Conflicts = append(res.Conflicts, Conflict{
				Type:        ConflictPastDeadline,
				Description: fmt.Sprintf("%s deadline %s has passed", s.Name, s.Deadline),
				SubjectIDs:  []string{s.ID},
			})
		}
	}

	for _, day := range planner.WeeklySummary(week) {
		if day.TotalHours > capacity+0.1 {
			res.Conflicts = append(res.Conflicts, Conflict{
				Type:        ConflictOverCapacity,
				Description: fmt.Sprintf("%s has %.1fh scheduled, over the %.1fh daily capacity", day.Day, day.TotalHours, capacity),
				Day:         day.Day,
			})
		}
	}

	if len(week) > 0 {
		scheduled := make(map[string]float64)
		for _, sess := range week {
			scheduled[sess.SubjectID] += sess.Hours
		}
		for _, s := range subjects {
			short := s.TotalHours - scheduled[s.ID]
			if short >= 0.05 {
				res.Conflicts = append(res.Conflicts, Conflict{
					Type:        ConflictUnscheduled,
					Description: fmt.Sprintf("%s has %.1fh that did not fit into this week", s.Name, short),
					SubjectIDs:  []string{s.ID},
				})
			}
		}
	}
	return res
}

func duplicateNames(subjects []models.Subject) []Conflict {
	byName := make(map[string][]models.Subject)
	for _, s := range subjects {
		key := strings.ToLower(strings.TrimSpace(s.Name))
		byName[key] = append(byName[key], s)
	}

	var keys []string
	for k, group := range byName {
		if len(group) > 1 {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var out []Conflict
	for _, k := range keys {
		group := byName[k]
		ids := make([]string, len(group))
		for i, s := range group {
			ids[i] = s.ID
		}
		out = append(out, Conflict{
			Type:        ConflictDuplicateSubject,
			Description: fmt.Sprintf("%d subjects are named %q", len(group), group[0].Name),
			SubjectIDs:  ids,
		})
	}
	return out
}

package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/studyweek/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// TodayInTimezone returns midnight of the current day in the specified timezone.
func TodayInTimezone(timezone string) (time.Time, error) {
	now, err := NowInTimezone(timezone)
	if err != nil {
		return time.Time{}, err
	}
	return StartOfDay(now), nil
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ParseDate parses a date string in the standard format (YYYY-MM-DD).
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse(constants.DateFormat, dateStr)
}

// FormatDate formats t in the standard format (YYYY-MM-DD).
func FormatDate(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// WeekStart returns the Monday of the ISO week containing t, as YYYY-MM-DD.
func WeekStart(t time.Time) string {
	// time.Weekday has Sunday == 0; shift so Monday == 0.
	offset := (int(t.Weekday()) + 6) % 7
	return FormatDate(StartOfDay(t).AddDate(0, 0, -offset))
}

// DayName returns the English weekday name of t (Monday..Sunday).
func DayName(t time.Time) string {
	return t.Weekday().String()
}

// DaysBetween returns the number of calendar days from a to b, ignoring the
// time of day. The result is negative when b is before a.
func DaysBetween(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

package constants

const (
	SettingHoursPerDay = "hours_per_day"
	SettingTimezone    = "timezone"

	// Default Settings Values
	DefaultHoursPerDay = 5.0
	DefaultTimezone    = "Local" // Use system local timezone by default
)

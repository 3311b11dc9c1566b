package models

// Settings represents application-wide settings
type Settings struct {
	HoursPerDay float64 `json:"hours_per_day"` // daily study capacity in hours
	Timezone    string  `json:"timezone"`      // IANA timezone name, or "Local" for the system timezone
}

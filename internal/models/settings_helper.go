package models

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/studyweek/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
// Unknown keys are ignored.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingHoursPerDay:
			hours, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing %s: %w", constants.SettingHoursPerDay, err)
			}
			settings.HoursPerDay = hours
		case constants.SettingTimezone:
			settings.Timezone = value
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingHoursPerDay: strconv.FormatFloat(settings.HoursPerDay, 'f', -1, 64),
		constants.SettingTimezone:    settings.Timezone,
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.HoursPerDay == 0 {
		settings.HoursPerDay = constants.DefaultHoursPerDay
	}
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
}

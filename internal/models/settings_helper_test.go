package models

import (
	"testing"

	"github.com/julianstephens/studyweek/internal/constants"
)

func TestMapToSettings(t *testing.T) {
	settings, err := MapToSettings(map[string]string{
		constants.SettingHoursPerDay: "4.5",
		constants.SettingTimezone:    "Europe/London",
		"unknown_key":                "ignored",
	})
	if err != nil {
		t.Fatalf("MapToSettings failed: %v", err)
	}
	if settings.HoursPerDay != 4.5 {
		t.Errorf("HoursPerDay = %v, want 4.5", settings.HoursPerDay)
	}
	if settings.Timezone != "Europe/London" {
		t.Errorf("Timezone = %q, want Europe/London", settings.Timezone)
	}
}

func TestMapToSettings_InvalidHours(t *testing.T) {
	if _, err := MapToSettings(map[string]string{constants.SettingHoursPerDay: "lots"}); err == nil {
		t.Error("expected error for non-numeric hours_per_day")
	}
}

func TestSettingsRoundTripThroughMap(t *testing.T) {
	in := Settings{HoursPerDay: 6.5, Timezone: "UTC"}
	out, err := MapToSettings(SettingsToMap(in))
	if err != nil {
		t.Fatalf("MapToSettings failed: %v", err)
	}
	if out != in {
		t.Errorf("got %+v, want %+v", out, in)
	}
}

func TestApplyDefaultSettings(t *testing.T) {
	s := Settings{}
	ApplyDefaultSettings(&s)
	if s.HoursPerDay != constants.DefaultHoursPerDay {
		t.Errorf("HoursPerDay = %v, want %v", s.HoursPerDay, constants.DefaultHoursPerDay)
	}
	if s.Timezone != constants.DefaultTimezone {
		t.Errorf("Timezone = %q, want %q", s.Timezone, constants.DefaultTimezone)
	}

	custom := Settings{HoursPerDay: 2, Timezone: "UTC"}
	ApplyDefaultSettings(&custom)
	if custom.HoursPerDay != 2 || custom.Timezone != "UTC" {
		t.Errorf("defaults overwrote explicit values: %+v", custom)
	}
}

func TestSessionStatusValid(t *testing.T) {
	for _, s := range []SessionStatus{SessionPending, SessionDone, SessionMissed} {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
	}
	if SessionStatus("skipped").Valid() {
		t.Error("skipped should not be valid")
	}
}

func TestColorFor(t *testing.T) {
	n := len(constants.SubjectColors)
	if ColorFor(0) != constants.SubjectColors[0] {
		t.Errorf("ColorFor(0) = %s", ColorFor(0))
	}
	if ColorFor(n+2) != constants.SubjectColors[2] {
		t.Errorf("palette should cycle: ColorFor(%d) = %s", n+2, ColorFor(n+2))
	}
	if ColorFor(-1) != constants.SubjectColors[0] {
		t.Errorf("negative count should map to first colour")
	}
}

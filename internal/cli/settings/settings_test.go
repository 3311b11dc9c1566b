package settings

import (
	"errors"
	"strings"
	"testing"

	"github.com/julianstephens/studyweek/internal/cli/clitest"
	"github.com/julianstephens/studyweek/internal/validation"
)

func TestSettingsCmd_List(t *testing.T) {
	ctx, out := clitest.Setup(t)

	if err := (&SettingsCmd{List: true}).Run(ctx); err != nil {
		t.Fatalf("settings list failed: %v", err)
	}
	if !strings.Contains(out.String(), "Hours Per Day: 5.0") || !strings.Contains(out.String(), "Timezone:      Local") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestSettingsCmd_Update(t *testing.T) {
	ctx, _ := clitest.Setup(t)

	hours := 3.5
	tz := "UTC"
	if err := (&SettingsCmd{HoursPerDay: &hours, Timezone: &tz}).Run(ctx); err != nil {
		t.Fatalf("settings update failed: %v", err)
	}

	got, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if got.HoursPerDay != 3.5 || got.Timezone != "UTC" {
		t.Errorf("settings not saved: %+v", got)
	}
}

func TestSettingsCmd_RejectsInvalid(t *testing.T) {
	zero := 0.0
	tooMany := 25.0
	badTZ := "Mars/Olympus_Mons"

	tests := []struct {
		name string
		cmd  SettingsCmd
	}{
		{"zero capacity", SettingsCmd{HoursPerDay: &zero}},
		{"over a day", SettingsCmd{HoursPerDay: &tooMany}},
		{"unknown timezone", SettingsCmd{Timezone: &badTZ}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := clitest.Setup(t)
			err := tt.cmd.Run(ctx)
			var inputErr *validation.InputError
			if !errors.As(err, &inputErr) {
				t.Fatalf("expected InputError, got %v", err)
			}
			got, _ := ctx.Store.GetSettings()
			if got.HoursPerDay != 5 || got.Timezone != "Local" {
				t.Errorf("invalid settings were saved: %+v", got)
			}
		})
	}
}

func TestSettingsCmd_NoChanges(t *testing.T) {
	ctx, out := clitest.Setup(t)
	if err := (&SettingsCmd{}).Run(ctx); err != nil {
		t.Fatalf("settings failed: %v", err)
	}
	if !strings.Contains(out.String(), "No changes specified") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

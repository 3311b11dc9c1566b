package settings

import (
	"fmt"

	"github.com/julianstephens/studyweek/internal/cli"
	"github.com/julianstephens/studyweek/internal/validation"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	HoursPerDay *float64 `help:"Daily study capacity in hours." name:"hours-per-day"`
	Timezone    *string  `help:"IANA timezone used to decide what 'today' is (or 'Local')."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		ctx.Println("Current Settings:")
		ctx.Printf("  Hours Per Day: %.1f\n", settings.HoursPerDay)
		ctx.Printf("  Timezone:      %s\n", settings.Timezone)
		return nil
	}

	updated := false
	if c.HoursPerDay != nil {
		settings.HoursPerDay = *c.HoursPerDay
		updated = true
	}
	if c.Timezone != nil {
		settings.Timezone = *c.Timezone
		updated = true
	}

	if !updated {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	if err := validation.ValidateSettings(validation.SettingsInput{
		HoursPerDay: settings.HoursPerDay,
		Timezone:    settings.Timezone,
	}); err != nil {
		return err
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ctx.Println("Settings updated successfully.")
	if c.HoursPerDay != nil {
		ctx.Println("Run 'studyweek plan' to reallocate this week with the new capacity.")
	}
	return nil
}

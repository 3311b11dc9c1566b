package system

import (
	"fmt"

	"github.com/julianstephens/studyweek/internal/cli"
	"github.com/julianstephens/studyweek/internal/utils"
	"github.com/julianstephens/studyweek/internal/validation"
)

type ValidateCmd struct{}

func (cmd *ValidateCmd) Run(ctx *cli.Context) error {
	today, err := ctx.Today()
	if err != nil {
		return err
	}
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	ctx.Println("Validating subjects...")
	subjects, err := ctx.Store.GetAllSubjects()
	if err != nil {
		return fmt.Errorf("failed to load subjects: %w", err)
	}

	weekStart := utils.WeekStart(today)
	ctx.Printf("Validating the week of %s...\n", weekStart)
	week, err := ctx.Store.GetSessionsForWeek(weekStart)
	if err != nil {
		return fmt.Errorf("failed to load sessions: %w", err)
	}

	res := validation.CheckWeek(subjects, week, settings.HoursPerDay, today)
	ctx.Println()
	ctx.Println(res.FormatReport())
	return nil
}

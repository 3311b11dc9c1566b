package system

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/studyweek/internal/cli"
	"github.com/julianstephens/studyweek/internal/utils"
)

type DebugCmd struct {
	DBPath       *DebugDBPathCmd       `cmd:"" help:"Show database path."`
	DumpWeek     *DebugDumpWeekCmd     `cmd:"" help:"Dump the sessions of a week as JSON."`
	DumpSubjects *DebugDumpSubjectsCmd `cmd:"" help:"Dump all subjects, deleted ones included, as JSON."`
	DumpSettings *DebugDumpSettingsCmd `cmd:"" help:"Dump settings as JSON."`
}

func printJSON(ctx *cli.Context, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Println(string(jsonBytes))
	return nil
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return printJSON(ctx, map[string]string{
		"path":       ctx.Store.GetConfigPath(),
		"config_dir": ctx.ConfigDir,
	})
}

type DebugDumpWeekCmd struct {
	Week string `arg:"" optional:"" help:"Any date inside the week (YYYY-MM-DD), default today."`
}

func (cmd *DebugDumpWeekCmd) Run(ctx *cli.Context) error {
	day, err := ctx.Today()
	if err != nil {
		return err
	}
	if cmd.Week != "" {
		if day, err = utils.ParseDate(cmd.Week); err != nil {
			return fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", cmd.Week)
		}
	}
	sessions, err := ctx.Store.GetSessionsForWeek(utils.WeekStart(day))
	if err != nil {
		return fmt.Errorf("failed to get sessions: %w", err)
	}
	return printJSON(ctx, sessions)
}

type DebugDumpSubjectsCmd struct{}

func (cmd *DebugDumpSubjectsCmd) Run(ctx *cli.Context) error {
	subjects, err := ctx.Store.GetAllSubjectsIncludingDeleted()
	if err != nil {
		return fmt.Errorf("failed to get subjects: %w", err)
	}
	return printJSON(ctx, subjects)
}

type DebugDumpSettingsCmd struct{}

func (cmd *DebugDumpSettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	return printJSON(ctx, settings)
}

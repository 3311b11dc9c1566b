package plans

import (
	"fmt"

	"github.com/julianstephens/studyweek/internal/cli"
	"github.com/julianstephens/studyweek/internal/constants"
	"github.com/julianstephens/studyweek/internal/export"
	"github.com/julianstephens/studyweek/internal/utils"
)

type ExportCmd struct {
	Out string `short:"o" help:"Output .xlsx file (default studyweek-<week>.xlsx)." type:"path"`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	today, err := ctx.Today()
	if err != nil {
		return err
	}

	data := export.Data{WeekStart: utils.WeekStart(today)}
	if data.Timetable, err = ctx.Scheduler.Timetable(today); err != nil {
		return err
	}
	if data.Summary, err = ctx.Scheduler.Summary(today); err != nil {
		return err
	}
	if data.Subjects, err = ctx.Scheduler.Subjects(); err != nil {
		return err
	}
	if data.Report, err = ctx.Scheduler.Progress(today); err != nil {
		return err
	}

	path := c.Out
	if path == "" {
		path = fmt.Sprintf(constants.ExportDefaultPattern, data.WeekStart)
	}
	if err := export.WriteFile(path, data); err != nil {
		return err
	}

	ctx.Printf("%s Exported week of %s to %s\n", cli.SuccessStyle.Render("✓"), data.WeekStart, path)
	return nil
}

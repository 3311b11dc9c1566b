package plans

import (
	"fmt"

	"github.com/julianstephens/studyweek/internal/cli"
	"github.com/julianstephens/studyweek/internal/utils"
)

const barWidth = 20

type ProgressCmd struct{}

func (c *ProgressCmd) Run(ctx *cli.Context) error {
	today, err := ctx.Today()
	if err != nil {
		return err
	}
	report, err := ctx.Scheduler.Progress(today)
	if err != nil {
		return err
	}
	if len(report.Subjects) == 0 {
		ctx.Println("No subjects found")
		return nil
	}
	subjects, err := ctx.Scheduler.Subjects()
	if err != nil {
		return err
	}

	ctx.Println(cli.TitleStyle.Render(fmt.Sprintf("Productivity score: %d", report.Score)))
	ctx.Printf("Completed %s of %s, %d done and %d missed this week\n\n",
		cli.FormatHours(report.CompletedHours), cli.FormatHours(report.TotalHours),
		report.DoneCount, report.MissedCount)

	for _, p := range report.Subjects {
		ctx.Printf("  %-24s %s %3d%%  %s left, %d days, %s/day needed\n",
			p.Subject.Name, cli.Bar(p.Pct, barWidth, p.Subject.Color), p.Pct,
			cli.FormatHours(p.RemainingHours), p.DaysLeft, cli.FormatHours(p.HoursPerDayNeeded))
	}

	ctx.Println("\nPriority order:")
	for i, id := range report.PriorityOrder {
		ctx.Printf("  %d. %s\n", i+1, cli.SubjectName(subjects, id))
	}
	return nil
}

type SummaryCmd struct{}

func (c *SummaryCmd) Run(ctx *cli.Context) error {
	today, err := ctx.Today()
	if err != nil {
		return err
	}
	summary, err := ctx.Scheduler.Summary(today)
	if err != nil {
		return err
	}

	ctx.Println(cli.TitleStyle.Render(fmt.Sprintf("Summary for the week of %s", utils.WeekStart(today))))
	ctx.Printf("  %-10s %7s %5s %7s %8s\n", "Day", "Hours", "Done", "Missed", "Pending")
	for _, d := range summary {
		ctx.Printf("  %-10s %7s %5d %7d %8d\n", d.Day, cli.FormatHours(d.TotalHours), d.Done, d.Missed, d.Pending)
	}
	return nil
}

package plans

import (
	"errors"

	"github.com/julianstephens/studyweek/internal/cli"
	"github.com/julianstephens/studyweek/internal/scheduler"
	"github.com/julianstephens/studyweek/internal/validation"
)

type AdjustCmd struct{}

func (c *AdjustCmd) Run(ctx *cli.Context) error {
	today, err := ctx.Today()
	if err != nil {
		return err
	}

	out, err := ctx.Scheduler.AdjustMissed(today)
	if errors.Is(err, scheduler.ErrNoMissedSessions) {
		ctx.Println("No missed sessions this week, nothing to adjust.")
		return nil
	}
	if err != nil {
		return err
	}

	subjects, err := ctx.Scheduler.Subjects()
	if err != nil {
		return err
	}

	ctx.Printf("Adjusted %d subject(s) with missed sessions:\n", len(out.Adjusted))
	for _, id := range out.Adjusted {
		sub := subjects[id]
		ctx.Printf("  %s %s, now %s priority\n", cli.Swatch(sub.Color), cli.SubjectName(subjects, id), sub.Priority)
	}
	ctx.Printf("\nReplanned pending sessions for the week of %s:\n\n", out.WeekStart)
	printPlan(ctx, out.Plan, subjects)
	printUnscheduled(ctx, out.Unscheduled, subjects)
	printWarnings(ctx, validation.CheckWeek(out.Ranked, out.Sessions, out.Capacity, today))

	ctx.Printf("\n%s Done and missed sessions were kept.\n", cli.SuccessStyle.Render("✓"))
	return nil
}

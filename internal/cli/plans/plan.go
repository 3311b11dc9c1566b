package plans

import (
	"errors"
	"fmt"

	"github.com/julianstephens/studyweek/internal/cli"
	"github.com/julianstephens/studyweek/internal/models"
	"github.com/julianstephens/studyweek/internal/planner"
	"github.com/julianstephens/studyweek/internal/scheduler"
	"github.com/julianstephens/studyweek/internal/validation"
)

type PlanCmd struct {
	DryRun bool `help:"Show the allocation without saving it." name:"dry-run"`
}

func (c *PlanCmd) Run(ctx *cli.Context) error {
	today, err := ctx.Today()
	if err != nil {
		return err
	}

	var out scheduler.Outcome
	if c.DryRun {
		out, err = ctx.Scheduler.Preview(today)
	} else {
		out, err = ctx.Scheduler.Generate(today)
	}
	if errors.Is(err, scheduler.ErrNoSubjects) {
		return fmt.Errorf("%w, add one with 'studyweek subject add'", err)
	}
	if err != nil {
		return err
	}

	subjects, err := ctx.Scheduler.Subjects()
	if err != nil {
		return err
	}

	if c.DryRun {
		ctx.Printf("Proposed plan for the week of %s (%.1fh per day):\n\n", out.WeekStart, out.Capacity)
	} else {
		ctx.Printf("Plan for the week of %s (%.1fh per day):\n\n", out.WeekStart, out.Capacity)
	}
	printPlan(ctx, out.Plan, subjects)
	printUnscheduled(ctx, out.Unscheduled, subjects)

	printWarnings(ctx, validation.CheckWeek(out.Ranked, out.Sessions, out.Capacity, today))

	if c.DryRun {
		ctx.Println("\nDry run, nothing was saved.")
	} else {
		ctx.Printf("\n%s Saved %d sessions.\n", cli.SuccessStyle.Render("✓"), len(out.Sessions))
	}
	return nil
}

func printPlan(ctx *cli.Context, wp planner.WeeklyPlan, subjects map[string]models.Subject) {
	for i, day := range planner.Days {
		blocks := wp.Days[i]
		if len(blocks) == 0 {
			ctx.Printf("  %-10s %s\n", day, cli.MutedStyle.Render("free"))
			continue
		}
		ctx.Printf("  %-10s %s\n", day, cli.MutedStyle.Render(cli.FormatHours(wp.DayHours(i))))
		for _, b := range blocks {
			ctx.Printf("    %s %-24s %s\n", cli.Swatch(subjects[b.SubjectID].Color),
				cli.SubjectName(subjects, b.SubjectID), cli.FormatHours(b.Hours))
		}
	}
}

// printWarnings lists conflicts other than unscheduled workload, which
// printUnscheduled already shows.
func printWarnings(ctx *cli.Context, res validation.Result) {
	var lines []string
	for _, conflict := range res.Conflicts {
		if conflict.Type != validation.ConflictUnscheduled {
			lines = append(lines, conflict.Description)
		}
	}
	if len(lines) == 0 {
		return
	}
	ctx.Println()
	ctx.Println(cli.WarnStyle.Render("⚠️  Validation warnings:"))
	for _, l := range lines {
		ctx.Printf("  - %s\n", l)
	}
}

func printUnscheduled(ctx *cli.Context, short []planner.Shortfall, subjects map[string]models.Subject) {
	if len(short) == 0 {
		return
	}
	ctx.Println()
	ctx.Println(cli.WarnStyle.Render("Did not fit into this week:"))
	for _, s := range short {
		ctx.Printf("  - %s: %s\n", cli.SubjectName(subjects, s.SubjectID), cli.FormatHours(s.Hours))
	}
}

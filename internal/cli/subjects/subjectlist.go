package subjects

import (
	"fmt"
	"time"

	"github.com/julianstephens/studyweek/internal/cli"
	"github.com/julianstephens/studyweek/internal/models"
	"github.com/julianstephens/studyweek/internal/planner"
)

type SubjectListCmd struct {
	Deleted bool `help:"Include deleted subjects."`
	ShowIDs bool `help:"Show subject IDs." name:"show-ids"`
}

func (c *SubjectListCmd) Run(ctx *cli.Context) error {
	var (
		subs []models.Subject
		err  error
	)
	if c.Deleted {
		subs, err = ctx.Store.GetAllSubjectsIncludingDeleted()
	} else {
		subs, err = ctx.Store.GetAllSubjects()
	}
	if err != nil {
		return fmt.Errorf("failed to get subjects: %w", err)
	}
	if len(subs) == 0 {
		ctx.Println("No subjects found")
		return nil
	}

	today, err := ctx.Today()
	if err != nil {
		return err
	}

	ctx.Println(cli.TitleStyle.Render("Subjects (most urgent first):"))
	for _, sub := range planner.Rank(subs, today) {
		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", sub.ID)
		}
		state := ""
		if sub.DeletedAt != nil {
			state = cli.MutedStyle.Render(" [deleted]")
		}
		ctx.Printf("  %s %s%s%s - %s, %s priority, due %s (%s)\n",
			cli.Swatch(sub.Color), sub.Name, idStr, state,
			cli.FormatHours(sub.TotalHours), sub.Priority, sub.Deadline,
			daysLeftLabel(sub.Deadline, today))
	}
	return nil
}

func daysLeftLabel(deadline string, today time.Time) string {
	n := planner.DaysUntil(deadline, today)
	if n == 1 {
		return "1 day left"
	}
	return fmt.Sprintf("%d days left", n)
}

package subjects

import (
	"fmt"

	"github.com/julianstephens/studyweek/internal/cli"
	"github.com/julianstephens/studyweek/internal/models"
	"github.com/julianstephens/studyweek/internal/validation"
)

type SubjectEditCmd struct {
	ID       string   `arg:"" help:"Subject ID."`
	Name     *string  `help:"New subject name."`
	Hours    *float64 `short:"H" help:"New remaining workload in hours."`
	Priority *int     `short:"p" help:"New priority (1-3)."`
	Deadline *string  `short:"d" help:"New deadline (YYYY-MM-DD)."`
}

func (c *SubjectEditCmd) Run(ctx *cli.Context) error {
	sub, err := ctx.Store.GetSubject(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find subject: %w", err)
	}

	if c.Name != nil {
		sub.Name = *c.Name
	}
	if c.Hours != nil {
		sub.TotalHours = *c.Hours
	}
	if c.Priority != nil {
		sub.Priority = models.Priority(*c.Priority)
	}
	if c.Deadline != nil {
		sub.Deadline = *c.Deadline
	}

	if err := validation.ValidateSubject(validation.SubjectInput{
		Name:       sub.Name,
		TotalHours: sub.TotalHours,
		Priority:   int(sub.Priority),
		Deadline:   sub.Deadline,
	}); err != nil {
		return err
	}

	if err := ctx.Store.UpdateSubject(sub); err != nil {
		return fmt.Errorf("failed to update subject: %w", err)
	}

	ctx.Printf("Subject updated: %s\n", sub.Name)
	ctx.Println("Run 'studyweek plan' to rebuild this week's sessions.")
	return nil
}

package subjects

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/studyweek/internal/cli"
	"github.com/julianstephens/studyweek/internal/models"
	"github.com/julianstephens/studyweek/internal/validation"
)

type SubjectAddCmd struct {
	Name     string  `arg:"" help:"Subject name."`
	Hours    float64 `short:"H" help:"Remaining workload in hours." required:""`
	Priority int     `short:"p" help:"Priority (1=low, 2=medium, 3=high)." default:"2"`
	Deadline string  `short:"d" help:"Deadline (YYYY-MM-DD)." required:""`
}

func (c *SubjectAddCmd) Run(ctx *cli.Context) error {
	in := validation.SubjectInput{
		Name:       c.Name,
		TotalHours: c.Hours,
		Priority:   c.Priority,
		Deadline:   c.Deadline,
	}
	if err := validation.ValidateSubject(in); err != nil {
		return err
	}

	count, err := ctx.Store.CountSubjects()
	if err != nil {
		return fmt.Errorf("failed to count subjects: %w", err)
	}

	sub := models.Subject{
		ID:         uuid.New().String(),
		Name:       c.Name,
		TotalHours: c.Hours,
		Priority:   models.Priority(c.Priority),
		Deadline:   c.Deadline,
		Color:      models.ColorFor(count),
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	if err := ctx.Store.AddSubject(sub); err != nil {
		return err
	}

	ctx.Printf("Added subject: %s %s (ID: %s)\n", cli.Swatch(sub.Color), sub.Name, sub.ID)
	return nil
}

package subjects

import (
	"fmt"

	"github.com/julianstephens/studyweek/internal/cli"
)

type SubjectDeleteCmd struct {
	ID string `arg:"" help:"Subject ID to delete."`
}

func (c *SubjectDeleteCmd) Run(ctx *cli.Context) error {
	sub, err := ctx.Store.GetSubject(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find subject with ID %s: %w", c.ID, err)
	}

	if err := ctx.Store.DeleteSubject(c.ID); err != nil {
		return fmt.Errorf("failed to delete subject: %w", err)
	}

	ctx.Printf("Deleted subject: %s (ID: %s)\n", sub.Name, c.ID)
	ctx.Println("Its sessions were removed. Use 'studyweek subject restore' to bring the subject back.")
	return nil
}

type SubjectRestoreCmd struct {
	ID string `arg:"" help:"Subject ID to restore."`
}

func (c *SubjectRestoreCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.RestoreSubject(c.ID); err != nil {
		return fmt.Errorf("failed to restore subject: %w", err)
	}
	sub, err := ctx.Store.GetSubject(c.ID)
	if err != nil {
		return err
	}

	ctx.Printf("Restored subject: %s (ID: %s)\n", sub.Name, sub.ID)
	return nil
}

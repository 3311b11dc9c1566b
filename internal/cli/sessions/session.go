package sessions

import (
	"fmt"

	"github.com/julianstephens/studyweek/internal/cli"
	"github.com/julianstephens/studyweek/internal/models"
)

type SessionDoneCmd struct {
	ID string `arg:"" help:"Session ID."`
}

func (c *SessionDoneCmd) Run(ctx *cli.Context) error {
	return setStatus(ctx, c.ID, models.SessionDone)
}

type SessionMissedCmd struct {
	ID string `arg:"" help:"Session ID."`
}

func (c *SessionMissedCmd) Run(ctx *cli.Context) error {
	if err := setStatus(ctx, c.ID, models.SessionMissed); err != nil {
		return err
	}
	ctx.Println("Run 'studyweek adjust' to replan the rest of the week around missed work.")
	return nil
}

type SessionPendingCmd struct {
	ID string `arg:"" help:"Session ID."`
}

func (c *SessionPendingCmd) Run(ctx *cli.Context) error {
	return setStatus(ctx, c.ID, models.SessionPending)
}

func setStatus(ctx *cli.Context, id string, status models.SessionStatus) error {
	sess, err := ctx.Scheduler.SetStatus(id, status)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	subjects, err := ctx.Scheduler.Subjects()
	if err != nil {
		return err
	}
	ctx.Printf("%s %s on %s: %s\n", cli.FormatHours(sess.Hours),
		cli.SubjectName(subjects, sess.SubjectID), sess.DayName, cli.FormatStatus(sess.Status))
	return nil
}

package plans

import (
	"fmt"

	"github.com/julianstephens/studyweek/internal/cli"
	"github.com/julianstephens/studyweek/internal/models"
	"github.com/julianstephens/studyweek/internal/utils"
)

type WeekCmd struct {
	ShowIDs bool `help:"Show session IDs." name:"show-ids"`
}

func (c *WeekCmd) Run(ctx *cli.Context) error {
	today, err := ctx.Today()
	if err != nil {
		return err
	}
	days, err := ctx.Scheduler.Timetable(today)
	if err != nil {
		return err
	}
	subjects, err := ctx.Scheduler.Subjects()
	if err != nil {
		return err
	}

	empty := true
	for _, d := range days {
		if len(d.Sessions) > 0 {
			empty = false
			break
		}
	}
	if empty {
		ctx.Printf("No sessions planned for the week of %s. Run 'studyweek plan' first.\n", utils.WeekStart(today))
		return nil
	}

	ctx.Println(cli.TitleStyle.Render(fmt.Sprintf("Week of %s", utils.WeekStart(today))))
	todayName := utils.DayName(today)
	for _, d := range days {
		label := d.Day
		if d.Day == todayName {
			label += " (today)"
		}
		ctx.Printf("\n%s\n", label)
		if len(d.Sessions) == 0 {
			ctx.Printf("  %s\n", cli.MutedStyle.Render("free"))
			continue
		}
		for _, sess := range d.Sessions {
			printSession(ctx, sess, subjects, c.ShowIDs)
		}
	}
	return nil
}

type TodayCmd struct {
	ShowIDs bool `help:"Show session IDs." name:"show-ids"`
}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	today, err := ctx.Today()
	if err != nil {
		return err
	}
	sessions, err := ctx.Scheduler.Today(today)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		ctx.Printf("Nothing planned for %s.\n", utils.DayName(today))
		return nil
	}
	subjects, err := ctx.Scheduler.Subjects()
	if err != nil {
		return err
	}

	ctx.Println(cli.TitleStyle.Render(fmt.Sprintf("%s, %s", utils.DayName(today), utils.FormatDate(today))))
	total := 0.0
	for _, sess := range sessions {
		printSession(ctx, sess, subjects, c.ShowIDs)
		total += sess.Hours
	}
	ctx.Printf("\nTotal: %s\n", cli.FormatHours(total))
	return nil
}

func printSession(ctx *cli.Context, sess models.Session, subjects map[string]models.Subject, showID bool) {
	idStr := ""
	if showID {
		idStr = fmt.Sprintf(" (ID: %s)", sess.ID)
	}
	ctx.Printf("  %s %-24s %5s  %s%s\n", cli.Swatch(subjects[sess.SubjectID].Color),
		cli.SubjectName(subjects, sess.SubjectID), cli.FormatHours(sess.Hours),
		cli.FormatStatus(sess.Status), idStr)
}

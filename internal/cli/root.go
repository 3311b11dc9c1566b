package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/studyweek/internal/backup"
	"github.com/julianstephens/studyweek/internal/models"
	"github.com/julianstephens/studyweek/internal/scheduler"
	"github.com/julianstephens/studyweek/internal/storage"
	"github.com/julianstephens/studyweek/internal/utils"
)

type Context struct {
	Store     storage.Provider
	Scheduler *scheduler.Scheduler
	// Backups is nil when the store is not a local SQLite file.
	Backups   *backup.Manager
	ConfigDir string

	// TodayOverride pins "today" (YYYY-MM-DD); empty means the current
	// date in the configured timezone.
	TodayOverride string

	Out io.Writer
	In  io.Reader
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.out(), args...)
}

// Confirm asks a yes/no question on the context's input. Anything but
// "y" or "yes" is a no.
func (c *Context) Confirm(prompt string) (bool, error) {
	in := c.In
	if in == nil {
		in = os.Stdin
	}
	c.Printf("%s [y/N]: ", prompt)
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// Today resolves the date every week-scoped command works on.
func (c *Context) Today() (time.Time, error) {
	if c.TodayOverride != "" {
		t, err := utils.ParseDate(c.TodayOverride)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid --date %q, use YYYY-MM-DD: %w", c.TodayOverride, err)
		}
		return t, nil
	}
	settings, err := c.Store.GetSettings()
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get settings: %w", err)
	}
	return utils.TodayInTimezone(settings.Timezone)
}

// SubjectName returns the subject's name, or a placeholder for IDs that
// no longer resolve.
func SubjectName(subjects map[string]models.Subject, id string) string {
	if sub, ok := subjects[id]; ok {
		return sub.Name
	}
	return "(unknown subject)"
}

func FormatHours(h float64) string {
	return fmt.Sprintf("%.1fh", h)
}

// FormatStatus renders a session status with its marker.
func FormatStatus(s models.SessionStatus) string {
	switch s {
	case models.SessionDone:
		return SuccessStyle.Render("✓ done")
	case models.SessionMissed:
		return ErrorStyle.Render("✗ missed")
	default:
		return MutedStyle.Render("· pending")
	}
}

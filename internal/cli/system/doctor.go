package system

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/studyweek/internal/cli"
	"github.com/julianstephens/studyweek/internal/planner"
	"github.com/julianstephens/studyweek/internal/utils"
	"github.com/julianstephens/studyweek/internal/validation"
)

// skipped marks a check that does not apply to the current setup.
type skipped string

func (s skipped) Error() string { return string(s) }

type healthCheck struct {
	name string
	run  func(*cli.Context) error
	// warnOnly checks never fail the run.
	warnOnly bool
	needsDB  bool
	// opensDB checks gate every needsDB check after them.
	opensDB bool
}

var healthChecks = []healthCheck{
	{name: "Database reachable", run: checkDBReachable, opensDB: true},
	{name: "Schema version", run: checkSchemaVersion, needsDB: true},
	{name: "Migrations complete", run: checkMigrationsComplete, needsDB: true},
	{name: "Backups present", run: checkBackupsPresent, warnOnly: true},
	{name: "Session integrity", run: checkSessionIntegrity, needsDB: true},
	{name: "Plan conflicts", run: checkPlanConflicts, warnOnly: true, needsDB: true},
	{name: "Clock/timezone", run: checkClockTimezone, needsDB: true},
}

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := false
	for _, hc := range healthChecks {
		if hc.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", hc.name)
			continue
		}
		err := hc.run(ctx)
		var skip skipped
		switch {
		case err == nil:
			ctx.Printf("%s %s: OK\n", cli.SuccessStyle.Render("✓"), hc.name)
			if hc.opensDB {
				dbReachable = true
			}
		case errors.As(err, &skip):
			ctx.Printf("⊘ %s: SKIPPED (%s)\n", hc.name, skip)
		case hc.warnOnly:
			ctx.Printf("%s %s: WARNING\n", cli.WarnStyle.Render("⚠"), hc.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("%s %s: FAIL\n", cli.ErrorStyle.Render("❌"), hc.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return errors.New("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if _, err := ctx.Store.GetSettings(); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	st, err := ctx.Store.SchemaStatus()
	if err != nil {
		return err
	}
	if st.Current < 1 {
		return fmt.Errorf("schema version %d, run 'studyweek init'", st.Current)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	st, err := ctx.Store.SchemaStatus()
	if err != nil {
		return err
	}
	if !st.UpToDate() {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d, run 'studyweek migrate'", st.Current, st.Latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if ctx.Backups == nil {
		return skipped("not a SQLite database")
	}
	backups, err := ctx.Backups.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return errors.New("no backups found, consider creating one with 'studyweek backup create'")
	}
	return nil
}

// checkSessionIntegrity looks for sessions the planner could never have
// produced: unknown subjects, bad day names, non-Monday weeks.
func checkSessionIntegrity(ctx *cli.Context) error {
	subjects, err := ctx.Scheduler.Subjects()
	if err != nil {
		return err
	}
	sessions, err := ctx.Store.GetAllSessions()
	if err != nil {
		return fmt.Errorf("failed to get sessions: %w", err)
	}

	var orphaned, badDay, badWeek, badHours int
	for _, sess := range sessions {
		if sub, ok := subjects[sess.SubjectID]; !ok || sub.DeletedAt != nil {
			orphaned++
		}
		if planner.DayIndex(sess.DayName) < 0 {
			badDay++
		}
		if ws, err := utils.ParseDate(sess.WeekStart); err != nil || ws.Weekday() != time.Monday {
			badWeek++
		}
		if sess.Hours <= 0 {
			badHours++
		}
	}

	var problems []string
	if orphaned > 0 {
		problems = append(problems, fmt.Sprintf("%d sessions reference missing or deleted subjects", orphaned))
	}
	if badDay > 0 {
		problems = append(problems, fmt.Sprintf("%d sessions have an unknown day name", badDay))
	}
	if badWeek > 0 {
		problems = append(problems, fmt.Sprintf("%d sessions have a week start that is not a Monday", badWeek))
	}
	if badHours > 0 {
		problems = append(problems, fmt.Sprintf("%d sessions have no hours", badHours))
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func checkPlanConflicts(ctx *cli.Context) error {
	today, err := ctx.Today()
	if err != nil {
		return err
	}
	subjects, err := ctx.Store.GetAllSubjects()
	if err != nil {
		return fmt.Errorf("failed to get subjects: %w", err)
	}
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	week, err := ctx.Store.GetSessionsForWeek(utils.WeekStart(today))
	if err != nil {
		return fmt.Errorf("failed to get sessions: %w", err)
	}
	res := validation.CheckWeek(subjects, week, settings.HoursPerDay, today)
	if res.HasConflicts() {
		return fmt.Errorf("%d conflict(s), run 'studyweek validate' for details", len(res.Conflicts))
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if _, err := utils.LoadLocation(settings.Timezone); err != nil {
		return fmt.Errorf("configured timezone %q cannot be loaded: %w", settings.Timezone, err)
	}
	return nil
}

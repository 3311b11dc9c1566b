package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/julianstephens/studyweek/internal/backup"
	"github.com/julianstephens/studyweek/internal/cli"
	"github.com/julianstephens/studyweek/internal/cli/backups"
	"github.com/julianstephens/studyweek/internal/cli/plans"
	"github.com/julianstephens/studyweek/internal/cli/sessions"
	"github.com/julianstephens/studyweek/internal/cli/settings"
	"github.com/julianstephens/studyweek/internal/cli/subjects"
	"github.com/julianstephens/studyweek/internal/cli/system"
	"github.com/julianstephens/studyweek/internal/constants"
	errs "github.com/julianstephens/studyweek/internal/errors"
	"github.com/julianstephens/studyweek/internal/keyring"
	"github.com/julianstephens/studyweek/internal/logger"
	"github.com/julianstephens/studyweek/internal/scheduler"
	"github.com/julianstephens/studyweek/internal/storage"
	"github.com/julianstephens/studyweek/internal/storage/postgres"
	"github.com/julianstephens/studyweek/internal/storage/sqlite"
	"github.com/julianstephens/studyweek/internal/weeklock"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string           `help:"Database path or PostgreSQL connection string. Credentials must NOT be embedded in the connection string; use the OS keyring, .pgpass or PGPASSWORD instead." type:"string" env:"STUDYWEEK_CONFIG"`
	Date    string           `help:"Pretend today is this date (YYYY-MM-DD)." env:"STUDYWEEK_TODAY"`
	Verbose bool             `short:"v" help:"Enable debug logging to stderr."`

	Init     system.InitCmd       `cmd:"" help:"Initialize studyweek storage."`
	Migrate  system.MigrateCmd    `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	Tui      system.TuiCmd        `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Plan     plans.PlanCmd        `cmd:"" help:"Generate this week's study plan."`
	Adjust   plans.AdjustCmd      `cmd:"" help:"Escalate subjects with missed sessions and replan the rest of the week."`
	Week     plans.WeekCmd        `cmd:"" help:"Show this week's timetable."`
	Today    plans.TodayCmd       `cmd:"" help:"Show today's sessions."`
	Progress plans.ProgressCmd    `cmd:"" help:"Show progress per subject and the productivity score."`
	Summary  plans.SummaryCmd     `cmd:"" help:"Show per-day totals for this week."`
	Export   plans.ExportCmd      `cmd:"" help:"Export this week to an Excel workbook."`
	Validate system.ValidateCmd   `cmd:"" help:"Validate subjects and this week's plan for conflicts."`
	Debug    system.DebugCmd      `cmd:"" help:"Debug commands for troubleshooting."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Subject  struct {
		Add     subjects.SubjectAddCmd     `cmd:"" help:"Add a new subject."`
		Edit    subjects.SubjectEditCmd    `cmd:"" help:"Edit an existing subject."`
		Delete  subjects.SubjectDeleteCmd  `cmd:"" help:"Delete a subject."`
		Restore subjects.SubjectRestoreCmd `cmd:"" help:"Restore a deleted subject."`
		List    subjects.SubjectListCmd    `cmd:"" help:"List subjects by urgency."`
	} `cmd:"" help:"Manage subjects."`
	Session struct {
		Done    sessions.SessionDoneCmd    `cmd:"" help:"Mark a session done."`
		Missed  sessions.SessionMissedCmd  `cmd:"" help:"Mark a session missed."`
		Pending sessions.SessionPendingCmd `cmd:"" help:"Mark a session pending again."`
	} `cmd:"" help:"Track sessions."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check OS keyring availability."`
	} `cmd:"" help:"Manage database credentials in the OS keyring."`
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// openStore picks PostgreSQL or SQLite from the resolved target. Backups
// only exist for SQLite.
func openStore(target string, fromKeyring bool) (storage.Provider, *backup.Manager, error) {
	if postgres.IsConnString(target) {
		if err := postgres.ValidateConnString(target); err != nil {
			// The keyring is encrypted, so only flag and env values must stay password-free.
			if !errors.Is(err, postgres.ErrEmbeddedCredentials) || !fromKeyring {
				return nil, nil, fmt.Errorf("%w\n       use 'studyweek keyring set', ~/.pgpass or PGPASSWORD instead", err)
			}
		}
		return postgres.New(target), nil, nil
	}
	path := expandHome(target)
	return sqlite.NewStore(path), backup.NewManager(path), nil
}

func loadDotEnv(configDir string) {
	for _, dir := range []string{".", configDir} {
		path := filepath.Join(dir, constants.DotEnvFileName)
		if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: failed to read %s: %v\n", path, err)
		}
	}
}

func main() {
	defaultDir := filepath.Dir(expandHome(constants.DefaultConfigPath))
	loadDotEnv(defaultDir)

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Weekly study planner: allocates study hours across subjects by urgency"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	explicit := CLI.Config
	if explicit == "" {
		explicit = os.Getenv(constants.EnvDBConnection)
	}
	target := keyring.Resolve(explicit, constants.DefaultConfigPath)

	store, mgr, err := openStore(target, explicit == "")
	if err != nil {
		errs.Fatal(err)
	}

	configDir := defaultDir
	if !postgres.IsConnString(target) {
		configDir = filepath.Dir(expandHome(target))
	}
	if err := logger.Init(logger.Config{Debug: CLI.Verbose, ConfigDir: configDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	opts := []scheduler.Option{scheduler.WithLocker(weeklock.New(configDir))}
	appCtx := &cli.Context{
		Store:         store,
		ConfigDir:     configDir,
		TodayOverride: CLI.Date,
	}
	if mgr != nil {
		opts = append(opts, scheduler.WithBackups(mgr))
		appCtx.Backups = mgr
	}
	appCtx.Scheduler = scheduler.New(store, opts...)

	// init creates the schema and doctor reports load failures itself.
	switch cmd := ctx.Command(); {
	case strings.HasPrefix(cmd, "init"), strings.HasPrefix(cmd, "doctor"), strings.HasPrefix(cmd, "keyring"):
	default:
		if err := store.Load(); err != nil {
			errs.Fatal(err)
		}
	}
	defer store.Close()

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		errs.Fatal(err)
	}
}

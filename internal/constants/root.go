package constants

import "time"

const (
	AppName            = "studyweek"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/studyweek/studyweek.db"
	Version            = "v0.2.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "studyweek-"
	BackupFileSuffix = ".db"

	// Week lock constants
	LockDirName       = "locks"
	LockFilePrefix    = "week-"
	LockAcquireTries  = 3
	LockRetryInterval = 150 * time.Millisecond

	// Environment variables
	EnvConfig            = "STUDYWEEK_CONFIG"
	EnvToday             = "STUDYWEEK_TODAY"
	EnvDBConnection      = "STUDYWEEK_DB_CONNECTION"
	EnvTestPostgresURL   = "STUDYWEEK_TEST_POSTGRES_URL"
	DotEnvFileName       = ".env"
	ExportDefaultPattern = "studyweek-%s.xlsx"
)

// SubjectColors is the display palette handed out to new subjects in
// creation order.
var SubjectColors = []string{
	"#FF6B6B", "#4ECDC4", "#FFE66D", "#A78BFA",
	"#F97316", "#34D399", "#60A5FA", "#F472B6",
}

package backup

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/studyweek/internal/constants"
	"github.com/julianstephens/studyweek/internal/logger"
)

const timestampLayout = "20060102-150405"

// Reasons recorded in backup filenames.
const (
	ReasonManual     = "manual"
	ReasonPlan       = "plan"
	ReasonAdjust     = "adjust"
	ReasonPreRestore = "pre-restore"
)

var ErrNoDatabase = errors.New("database does not exist")

// Info describes one backup file.
type Info struct {
	Path      string
	Timestamp time.Time
	Reason    string
	Size      int64
}

// Manager snapshots the SQLite database into <configdir>/backups and keeps
// the newest constants.MaxBackups files.
type Manager struct {
	dbPath    string
	backupDir string
	now       func() time.Time
}

func NewManager(dbPath string) *Manager {
	return &Manager{
		dbPath:    dbPath,
		backupDir: filepath.Join(filepath.Dir(dbPath), constants.BackupDirName),
		now:       time.Now,
	}
}

func (m *Manager) Dir() string {
	return m.backupDir
}

// Create snapshots the database and rotates old backups.
func (m *Manager) Create(reason string) (string, error) {
	path, err := m.snapshot(reason)
	if err != nil {
		return "", err
	}
	if err := m.rotate(); err != nil {
		logger.Warn("failed to rotate old backups", "error", err)
	}
	logger.Info("backup created", "path", path, "reason", reason)
	return path, nil
}

func (m *Manager) snapshot(reason string) (string, error) {
	if _, err := os.Stat(m.dbPath); os.IsNotExist(err) {
		return "", fmt.Errorf("%w: %s", ErrNoDatabase, m.dbPath)
	}
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	dest, err := m.uniquePath(m.now().Format(timestampLayout), reason)
	if err != nil {
		return "", err
	}

	src, err := sql.Open("sqlite", m.dbPath+"?mode=ro")
	if err != nil {
		return "", fmt.Errorf("failed to open database: %w", err)
	}
	defer src.Close()

	if err := integrityCheck(src); err != nil {
		return "", fmt.Errorf("database appears to be corrupted: %w", err)
	}
	if _, err := src.Exec("VACUUM INTO ?", dest); err != nil {
		return "", fmt.Errorf("failed to back up database: %w", err)
	}
	return dest, nil
}

func (m *Manager) uniquePath(stamp, reason string) (string, error) {
	base := constants.BackupFilePrefix + stamp + "-" + reason
	path := filepath.Join(m.backupDir, base+constants.BackupFileSuffix)
	for n := 1; n <= 100; n++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
		path = filepath.Join(m.backupDir, fmt.Sprintf("%s.%d%s", base, n, constants.BackupFileSuffix))
	}
	return "", fmt.Errorf("failed to generate unique backup filename")
}

// parseName splits "studyweek-20250602-101500-plan.db" into its timestamp
// and reason. Counters added by uniquePath are dropped.
func parseName(name string) (time.Time, string, bool) {
	if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
		return time.Time{}, "", false
	}
	rest := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), constants.BackupFileSuffix)
	if len(rest) < len(timestampLayout) {
		return time.Time{}, "", false
	}
	ts, err := time.ParseInLocation(timestampLayout, rest[:len(timestampLayout)], time.Local)
	if err != nil {
		return time.Time{}, "", false
	}
	reason := strings.TrimPrefix(rest[len(timestampLayout):], "-")
	if i := strings.LastIndex(reason, "."); i >= 0 {
		reason = reason[:i]
	}
	return ts, reason, true
}

// List returns backups newest first.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.backupDir)
	if os.IsNotExist(err) {
		return []Info{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []Info{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ts, reason, ok := parseName(e.Name())
		if !ok {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		backups = append(backups, Info{
			Path:      filepath.Join(m.backupDir, e.Name()),
			Timestamp: ts,
			Reason:    reason,
			Size:      fi.Size(),
		})
	}

	sort.SliceStable(backups, func(i, j int) bool {
		if backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].Path > backups[j].Path
		}
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

func (m *Manager) rotate() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	for i := constants.MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// Restore replaces the database with backupPath. The current database is
// snapshotted first and the path of that snapshot is returned. The caller
// must close any open handle on the database beforehand.
func (m *Manager) Restore(backupPath string) (string, error) {
	if _, err := os.Stat(backupPath); err != nil {
		return "", fmt.Errorf("backup file does not exist: %s", backupPath)
	}
	if err := verify(backupPath); err != nil {
		return "", fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	var previous string
	if _, err := os.Stat(m.dbPath); err == nil {
		previous, err = m.snapshot(ReasonPreRestore)
		if err != nil {
			return "", fmt.Errorf("failed to back up current database before restore: %w", err)
		}
	}

	tmp := m.dbPath + ".restore.tmp"
	if err := copyFile(backupPath, tmp); err != nil {
		return previous, fmt.Errorf("failed to copy backup file: %w", err)
	}
	if err := os.Rename(tmp, m.dbPath); err != nil {
		if rmErr := os.Remove(tmp); rmErr != nil {
			logger.Warn("failed to remove temporary restore file", "path", tmp, "error", rmErr)
		}
		return previous, fmt.Errorf("failed to restore database: %w", err)
	}
	logger.Info("database restored", "from", backupPath, "previous", previous)
	return previous, nil
}

func integrityCheck(db *sql.DB) error {
	var result string
	if err := db.QueryRow("PRAGMA quick_check").Scan(&result); err != nil {
		return err
	}
	if result != "ok" {
		return fmt.Errorf("quick_check: %s", result)
	}
	return nil
}

func verify(path string) error {
	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return err
	}
	defer db.Close()
	if err := integrityCheck(db); err != nil {
		return err
	}
	// a studyweek backup always carries the schema_version table
	var n int
	if err := db.QueryRow("SELECT count(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&n); err != nil {
		return err
	}
	if n == 0 {
		return errors.New("not a studyweek database")
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.ReadFrom(in); err != nil {
		return err
	}
	return out.Sync()
}

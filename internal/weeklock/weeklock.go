// Package weeklock serialises plan regeneration for a week across
// studyweek processes with PID lockfiles.
package weeklock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/studyweek/internal/constants"
	"github.com/julianstephens/studyweek/internal/logger"
)

var ErrLocked = errors.New("week is being regenerated by another studyweek process")

var (
	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
)

type Locker struct {
	dir string
}

// New returns a Locker keeping lockfiles in <configDir>/locks.
func New(configDir string) *Locker {
	return &Locker{dir: filepath.Join(configDir, constants.LockDirName)}
}

// Lock is a held week lock.
type Lock struct {
	path string
}

func (l *Locker) path(weekStart string) string {
	return filepath.Join(l.dir, constants.LockFilePrefix+weekStart+".lock")
}

// Acquire takes the lock for weekStart. A lockfile left by a process that
// is no longer running is replaced. If a live process holds it, Acquire
// retries a few times before giving up with ErrLocked.
func (l *Locker) Acquire(weekStart string) (*Lock, error) {
	if err := os.MkdirAll(l.dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}
	p := l.path(weekStart)

	for attempt := 1; ; attempt++ {
		err := tryCreate(p)
		if err == nil {
			logger.Debug("week lock acquired", "week", weekStart)
			return &Lock{path: p}, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("failed to create lockfile: %w", err)
		}

		pid, live := holder(p)
		if !live {
			logger.Warn("removing stale week lock", "week", weekStart, "pid", pid)
			if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to remove stale lockfile: %w", err)
			}
			continue
		}
		if attempt >= constants.LockAcquireTries {
			return nil, fmt.Errorf("%w (pid %d)", ErrLocked, pid)
		}
		time.Sleep(constants.LockRetryInterval)
	}
}

func tryCreate(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return err
	}
	_, werr := fmt.Fprintf(f, "%d\n", getpidFunc())
	cerr := f.Close()
	if werr != nil {
		os.Remove(path)
		return werr
	}
	return cerr
}

// holder reads the lockfile and reports whether its PID belongs to a
// running studyweek process.
func holder(path string) (int, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		// vanished between create and read; the next attempt will take it
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(content)))
	if err != nil || pid <= 0 {
		return 0, false
	}
	proc, err := findProcessFunc(pid)
	if err != nil || proc == nil {
		return pid, false
	}
	return pid, strings.HasPrefix(proc.Executable(), constants.AppName)
}

// Release removes the lockfile. Releasing twice is a no-op.
func (lk *Lock) Release() error {
	if lk == nil || lk.path == "" {
		return nil
	}
	err := os.Remove(lk.path)
	lk.path = ""
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

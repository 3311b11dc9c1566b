package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/studyweek/internal/constants"
)

// Logger is the process-wide logger. It stays nil until Init is called, and
// every helper below is a no-op until then.
var Logger *log.Logger

type Config struct {
	Debug     bool
	ConfigDir string
	// Stderr overrides the debug mirror target; tests point it at a buffer.
	Stderr io.Writer
}

// Init opens the rotating log file under <ConfigDir>/logs and installs the
// global logger. Debug lowers the level and mirrors output to stderr.
func Init(cfg Config) error {
	logDir := filepath.Join(cfg.ConfigDir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	rotating := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, constants.AppName+".log"),
		MaxSize:    5, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}

	var out io.Writer = rotating
	level := log.InfoLevel
	if cfg.Debug {
		level = log.DebugLevel
		mirror := cfg.Stderr
		if mirror == nil {
			mirror = os.Stderr
		}
		out = io.MultiWriter(mirror, rotating)
	}

	Logger = log.NewWithOptions(out, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})
	return nil
}

func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}

// Package logger writes bidtrack's diagnostic log. Entries go to
// <state dir>/logs/bidtrack.log, rotated by size; stderr only sees them with
// --debug. The per-bid audit log is separate and never written here.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/bidtrack/internal/constants"
)

// Logger is nil until Init runs. The helpers below drop messages while it is.
var Logger *log.Logger

// Config selects where the log lives and how chatty it is.
type Config struct {
	Debug    bool
	StateDir string
}

// Path returns the log file location under stateDir.
func Path(stateDir string) string {
	return filepath.Join(stateDir, "logs", constants.AppName+".log")
}

// Init creates the logs directory under the state dir and installs Logger.
// Without Debug only warnings and errors are kept, which covers rejected
// transitions and CLI failures.
func Init(cfg Config) error {
	file := Path(cfg.StateDir)
	if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
		return err
	}

	rotating := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	level := log.WarnLevel
	var w io.Writer = rotating
	if cfg.Debug {
		level = log.DebugLevel
		w = io.MultiWriter(os.Stderr, rotating)
	}

	Logger = log.NewWithOptions(w, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})
	return nil
}

// Debug logs a debug message
func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

// Info logs an info message
func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

// Warn logs a warning message
func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

// Error logs an error message
func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}

// Fatal logs a fatal error and exits
func Fatal(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Fatal(msg, keyvals...)
	}
	os.Exit(1)
}

// Transition records a bid status change at debug level. The audit log on the
// bid is authoritative; this only mirrors it to the log file.
func Transition(bidID, from, to, note string) {
	if Logger != nil {
		Logger.Debug("bid transition", "bid", bidID, "from", from, "to", to, "note", note)
	}
}

// Rejected records a failed transition attempt.
func Rejected(bidID, op string, err error) {
	if Logger != nil {
		Logger.Warn("bid transition rejected", "bid", bidID, "op", op, "error", err)
	}
}

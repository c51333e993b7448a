package contract

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogConfig holds logger configuration.
type LogConfig struct {
	Level string // debug, info, warn, error
	File  string // optional rotating log file
}

var logger atomic.Pointer[log.Logger]

func init() {
	logger.Store(newLogger(os.Stderr, log.WarnLevel, false))
}

func newLogger(w io.Writer, level log.Level, timestamps bool) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: timestamps,
		Level:           level,
		Prefix:          "athome",
	})
}

// InitLogger replaces the package logger. When a file is given, entries are
// also written there with rotation.
func InitLogger(cfg LogConfig) error {
	level := log.WarnLevel
	if cfg.Level != "" {
		parsed, err := log.ParseLevel(cfg.Level)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		level = parsed
	}

	var w io.Writer = os.Stderr
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		w = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		})
	}

	logger.Store(newLogger(w, level, cfg.File != ""))
	return nil
}

// Logger returns the package logger.
func Logger() *log.Logger {
	return logger.Load()
}

// LogDebug logs a debug message with key/value pairs.
func LogDebug(msg string, keyvals ...any) {
	Logger().Debug(msg, keyvals...)
}

// LogInfo logs an info message with key/value pairs.
func LogInfo(msg string, keyvals ...any) {
	Logger().Info(msg, keyvals...)
}

// LogWarn logs a warning with the error that caused it.
func LogWarn(msg string, err error, keyvals ...any) {
	if err != nil {
		keyvals = append([]any{"err", err}, keyvals...)
	}
	Logger().Warn(msg, keyvals...)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	Logger().Error(msg, "err", err)
	os.Exit(1)
}

package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	instance *Logger
	once     sync.Once
)

// Logger provides TUI-safe logging functionality. Nothing is ever written to
// stdout or stderr so the terminal host is never corrupted.
type Logger struct {
	main       *slog.Logger
	assist     *slog.Logger
	level      *slog.LevelVar
	logFile    *os.File
	assistFile *os.File
	mu         sync.Mutex
}

// Init initializes the global logger instance. Logs go to dir/codepad.log,
// model requests and responses to dir/assist.log.
func Init(dir, level string) error {
	var err error
	once.Do(func() {
		instance, err = newLogger(dir, level)
	})
	return err
}

// newLogger creates a new logger instance
func newLogger(dir, level string) (*Logger, error) {
	if dir == "" {
		dir = "logs"
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create logs directory: %w", err)
	}

	logPath := filepath.Join(dir, "codepad.log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	assistPath := filepath.Join(dir, "assist.log")
	assistFile, err := os.OpenFile(assistPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("failed to open assist log file: %w", err)
	}

	lv := new(slog.LevelVar)
	lv.Set(ParseLevel(level))

	return &Logger{
		main:       slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: lv})),
		assist:     slog.New(slog.NewTextHandler(assistFile, nil)),
		level:      lv,
		logFile:    logFile,
		assistFile: assistFile,
	}, nil
}

// ParseLevel maps a config level name to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Info logs an info message with optional key/value pairs
func Info(msg string, args ...any) {
	if l := current(); l != nil {
		l.log(slog.LevelInfo, msg, args...)
	}
}

// Warn logs a warning
func Warn(msg string, args ...any) {
	if l := current(); l != nil {
		l.log(slog.LevelWarn, msg, args...)
	}
}

// Error logs an error message
func Error(msg string, args ...any) {
	if l := current(); l != nil {
		l.log(slog.LevelError, msg, args...)
	}
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	if l := current(); l != nil {
		l.log(slog.LevelDebug, msg, args...)
	}
}

// Assist logs completion/formatter traffic to the dedicated assist log file
func Assist(event string, data any) {
	if l := current(); l != nil {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.assist.Info(event, "data", fmt.Sprintf("%+v", data))
	}
}

func current() *Logger {
	return instance
}

func (l *Logger) log(level slog.Level, msg string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.main.Log(context.Background(), level, msg, args...)
}

// Close closes both log files
func Close() error {
	if instance != nil {
		var err1, err2 error
		if instance.logFile != nil {
			err1 = instance.logFile.Close()
		}
		if instance.assistFile != nil {
			err2 = instance.assistFile.Close()
		}
		if err1 != nil {
			return err1
		}
		return err2
	}
	return nil
}

// SetOutput redirects both channels to w at debug level (useful for testing).
// It installs a logger when Init was never called.
func SetOutput(w io.Writer) {
	lv := new(slog.LevelVar)
	lv.Set(slog.LevelDebug)
	l := &Logger{
		main:   slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lv})),
		assist: slog.New(slog.NewTextHandler(w, nil)),
		level:  lv,
	}
	if instance != nil {
		instance.mu.Lock()
		defer instance.mu.Unlock()
		instance.main = l.main
		instance.assist = l.assist
		instance.level = lv
		return
	}
	instance = l
}

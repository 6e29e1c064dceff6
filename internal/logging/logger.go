// Package logging provides structured file logging for chat-sidebar.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	clog "github.com/charmbracelet/log"
	"github.com/cristianoliveira/chat-sidebar/internal/colors"
)

// Logger is the structured logging interface. Components derive their own
// logger with With("component", name) and keep it for their lifetime.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	// With returns a logger that adds the key-value pairs to every entry.
	With(args ...any) Logger
	// Shutdown closes the log file. Loggers derived with With share it.
	Shutdown() error
}

// sink is the file shared by a logger and everything derived from it.
type sink struct {
	mu     sync.Mutex
	file   *os.File
	path   string
	closed bool
}

func (s *sink) close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil || s.closed {
		return nil
	}
	s.closed = true
	return s.file.Close()
}

type loggerImpl struct {
	clogger  *clog.Logger
	redactor *redactor
	sink     *sink
}

// Init opens a new log file for cfg, rotating old files first.
// A disabled config yields a no-op logger.
func Init(cfg Config) (Logger, error) {
	if !cfg.Enabled {
		return noopLogger{}, nil
	}
	logDir, err := LogDir()
	if err != nil {
		return nil, fmt.Errorf("determine log directory: %w", err)
	}
	if err := rotate(logDir, cfg.MaxFiles); err != nil {
		// Non-fatal: a full log dir must not keep the sidebar from starting.
		fmt.Fprintf(os.Stderr, "log rotation failed: %v\n", err)
	}
	path := filepath.Join(logDir, logFileName(cfg, time.Now()))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return newLogger(f, cfg, &sink{file: f, path: path}), nil
}

// NewWriterLogger builds a JSON logger writing to w. The caller owns w.
func NewWriterLogger(w io.Writer, cfg Config) Logger {
	return newLogger(w, cfg, &sink{})
}

func logFileName(cfg Config, now time.Time) string {
	return fmt.Sprintf("%s%s_PID%d_%s.log",
		logFilePrefix,
		now.Format("20060102_150405"),
		cfg.PID,
		strings.ReplaceAll(cfg.Command, " ", "_"))
}

func newLogger(w io.Writer, cfg Config, s *sink) *loggerImpl {
	clogger := clog.NewWithOptions(w, clog.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339Nano,
		Level:           parseLevel(cfg.Level),
		Formatter:       clog.JSONFormatter,
	})
	return &loggerImpl{
		clogger:  clogger.With("pid", cfg.PID, "command", cfg.Command),
		redactor: newRedactor(),
		sink:     s,
	}
}

func parseLevel(level string) clog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return clog.DebugLevel
	case "warn", "warning":
		return clog.WarnLevel
	case "error":
		return clog.ErrorLevel
	default:
		return clog.InfoLevel
	}
}

func (l *loggerImpl) Debug(msg string, args ...any) { l.log(clog.DebugLevel, msg, args) }
func (l *loggerImpl) Info(msg string, args ...any)  { l.log(clog.InfoLevel, msg, args) }
func (l *loggerImpl) Warn(msg string, args ...any)  { l.log(clog.WarnLevel, msg, args) }
func (l *loggerImpl) Error(msg string, args ...any) { l.log(clog.ErrorLevel, msg, args) }

func (l *loggerImpl) log(level clog.Level, msg string, args []any) {
	l.clogger.Log(level, msg, l.redactor.redact(args)...)
}

// With redacts the pairs once so derived loggers never hold secrets.
func (l *loggerImpl) With(args ...any) Logger {
	return &loggerImpl{
		clogger:  l.clogger.With(l.redactor.redact(args)...),
		redactor: l.redactor,
		sink:     l.sink,
	}
}

func (l *loggerImpl) Shutdown() error {
	return l.sink.close()
}

func (l *loggerImpl) filePath() string {
	return l.sink.path
}

type noopLogger struct{}

// Nop returns a logger that discards everything.
func Nop() Logger { return noopLogger{} }

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (n noopLogger) With(...any) Logger { return n }
func (noopLogger) Shutdown() error      { return nil }

// Global logger instance (optional, for convenience)
var (
	globalLogger     Logger
	globalLoggerOnce sync.Once
	globalLoggerMu   sync.RWMutex
)

// InitGlobal initializes the global logger using configuration from the global config.
// It is safe to call multiple times; only the first call initializes the logger.
func InitGlobal() error {
	var err error
	globalLoggerOnce.Do(func() {
		cfg := FromGlobalConfig()
		globalLogger, err = Init(cfg)
	})
	if err == nil && globalLogger != nil {
		colors.SetLogger(globalLogger)
		if path := CurrentLogFile(); path != "" {
			colors.Info("Logging to file:", path)
		}
	}
	return err
}

// GetGlobal returns the global logger, or a no-op logger if not initialized.
func GetGlobal() Logger {
	globalLoggerMu.RLock()
	defer globalLoggerMu.RUnlock()
	if globalLogger == nil {
		return noopLogger{}
	}
	return globalLogger
}

// Debug logs a debug message using the global logger.
func Debug(msg string, args ...any) {
	GetGlobal().Debug(msg, args...)
}

// Info logs an info message using the global logger.
func Info(msg string, args ...any) {
	GetGlobal().Info(msg, args...)
}

// Warn logs a warning message using the global logger.
func Warn(msg string, args ...any) {
	GetGlobal().Warn(msg, args...)
}

// Error logs an error message using the global logger.
func Error(msg string, args ...any) {
	GetGlobal().Error(msg, args...)
}

// With returns a new global logger with additional key-value pairs.
func With(args ...any) Logger {
	return GetGlobal().With(args...)
}

// ShutdownGlobal shuts down the global logger.
func ShutdownGlobal() error {
	globalLoggerMu.Lock()
	defer globalLoggerMu.Unlock()
	if globalLogger != nil {
		return globalLogger.Shutdown()
	}
	return nil
}

// CurrentLogFile returns the path to the current log file if logging is enabled and a file logger is active.
// Returns empty string if logging is disabled or no file is being written.
func CurrentLogFile() string {
	globalLoggerMu.RLock()
	defer globalLoggerMu.RUnlock()
	if globalLogger == nil {
		return ""
	}
	if impl, ok := globalLogger.(*loggerImpl); ok {
		return impl.filePath()
	}
	return ""
}

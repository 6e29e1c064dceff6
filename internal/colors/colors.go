// Package colors provides color output utilities for the command line.
// Every message is mirrored to the structured logger when one is set.
package colors

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Color constants
const (
	Red    = "\033[0;31m"
	Green  = "\033[0;32m"
	Yellow = "\033[1;33m"
	Blue   = "\033[0;34m"
	Cyan   = "\033[0;36m"
	Reset  = "\033[0m"
)

const checkmark = "✓"

// Logger defines the interface for structured logging.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

var (
	debugEnabled    = false
	quiet           = false
	inErrorHandling = false
	errorMutex      sync.Mutex
	logger          Logger
	loggerMu        sync.RWMutex
	stdout          io.Writer = os.Stdout
	stderr          io.Writer = os.Stderr
)

func init() {
	if val := os.Getenv("CHAT_SIDEBAR_DEBUG"); val == "true" || val == "1" {
		debugEnabled = true
	}
}

// SetDebug enables or disables debug output.
func SetDebug(enabled bool) {
	debugEnabled = enabled
}

// SetQuiet suppresses console output while still mirroring to the logger.
// The TUI sets it so stray writes do not corrupt the screen.
func SetQuiet(enabled bool) {
	quiet = enabled
}

// SetLogger sets the structured logger to mirror console output.
func SetLogger(l Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = l
}

// SetOutput redirects console output. Nil keeps the current writer.
func SetOutput(out, errOut io.Writer) {
	if out != nil {
		stdout = out
	}
	if errOut != nil {
		stderr = errOut
	}
}

func currentLogger() Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// write prints one line and reports print failures once, falling back to a
// bare stderr write if reporting itself fails.
func write(w io.Writer, kind, line string) {
	if quiet {
		return
	}
	if _, err := fmt.Fprint(w, line); err != nil {
		errorMutex.Lock()
		alreadyHandling := inErrorHandling
		inErrorHandling = true
		errorMutex.Unlock()
		if alreadyHandling {
			fmt.Fprintf(os.Stderr, "failed to print %s message: %v\n", kind, err)
			return
		}
		defer func() {
			errorMutex.Lock()
			inErrorHandling = false
			errorMutex.Unlock()
		}()
		Warning("failed to print " + kind + " message: " + err.Error())
	}
}

// Error outputs an error message to stderr.
func Error(msgs ...string) {
	msg := strings.Join(msgs, " ")
	if l := currentLogger(); l != nil {
		l.Error(msg)
	}
	write(stderr, "error", fmt.Sprintf("%sError:%s %s%s\n", Red, Reset, msg, Reset))
}

// Success outputs a success message to stdout.
func Success(msgs ...string) {
	msg := strings.Join(msgs, " ")
	if l := currentLogger(); l != nil {
		l.Info(msg, "type", "success")
	}
	write(stdout, "success", fmt.Sprintf("%s%s%s %s%s\n", Green, checkmark, Reset, msg, Reset))
}

// Warning outputs a warning message to stderr.
func Warning(msgs ...string) {
	msg := strings.Join(msgs, " ")
	if l := currentLogger(); l != nil {
		l.Warn(msg)
	}
	write(stderr, "warning", fmt.Sprintf("%sWarning:%s %s%s\n", Yellow, Reset, msg, Reset))
}

// Info outputs an informational message to stdout.
func Info(msgs ...string) {
	msg := strings.Join(msgs, " ")
	if l := currentLogger(); l != nil {
		l.Info(msg)
	}
	write(stdout, "info", fmt.Sprintf("%s%s%s\n", Blue, msg, Reset))
}

// Debug outputs a debug message to stderr if debug is enabled.
func Debug(msgs ...string) {
	if !debugEnabled {
		return
	}
	msg := strings.Join(msgs, " ")
	if l := currentLogger(); l != nil {
		l.Debug(msg)
	}
	write(stderr, "debug", fmt.Sprintf("%sDebug:%s %s%s\n", Cyan, Reset, msg, Reset))
}

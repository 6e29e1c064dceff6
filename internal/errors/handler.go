// Package errors routes user-facing messages either to the console (CLI)
// or to the status line of the terminal UI.
package errors

import (
	"sync"

	"github.com/cristianoliveira/chat-sidebar/internal/colors"
)

// ErrorHandler is the interface for error handling.
// Different implementations can handle errors differently based on context.
type ErrorHandler interface {
	Error(msg string)
	Warning(msg string)
	Info(msg string)
	Success(msg string)
}

// ColorOutput is the console sink used by CLIHandler.
type ColorOutput interface {
	Error(msgs ...string)
	Warning(msgs ...string)
	Info(msgs ...string)
	Success(msgs ...string)
}

// console prints through the colors package.
type console struct{}

func (console) Error(msgs ...string)   { colors.Error(msgs...) }
func (console) Warning(msgs ...string) { colors.Warning(msgs...) }
func (console) Info(msgs ...string)    { colors.Info(msgs...) }
func (console) Success(msgs ...string) { colors.Success(msgs...) }

// NewDefaultCLIHandler creates a handler printing to the terminal.
func NewDefaultCLIHandler() *CLIHandler {
	return NewCLIHandler(console{})
}

// CLIHandler handles errors by printing to stdout/stderr using the colors package.
type CLIHandler struct {
	colors     ColorOutput
	mu         sync.Mutex
	inHandling bool
}

// NewCLIHandler creates a handler writing to colors.
func NewCLIHandler(colors ColorOutput) *CLIHandler {
	return &CLIHandler{colors: colors}
}

// Error prints msg as an error. Re-entrant calls made while printing go
// straight to the output.
func (h *CLIHandler) Error(msg string) {
	h.mu.Lock()
	if h.inHandling {
		h.mu.Unlock()
		h.colors.Error(msg)
		return
	}
	h.inHandling = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		h.inHandling = false
		h.mu.Unlock()
	}()

	h.colors.Error(msg)
}

func (h *CLIHandler) Warning(msg string) {
	h.colors.Warning(msg)
}

func (h *CLIHandler) Info(msg string) {
	h.colors.Info(msg)
}

func (h *CLIHandler) Success(msg string) {
	h.colors.Success(msg)
}

// Report sends err to h as an error. Nil errors are ignored.
func Report(h ErrorHandler, err error) {
	if h == nil || err == nil {
		return
	}
	h.Error(err.Error())
}

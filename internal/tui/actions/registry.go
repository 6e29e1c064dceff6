// Package actions keeps the user-invocable sidebar actions, their enabled
// state and the handlers bound to them.
package actions

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cristianoliveira/chat-sidebar/internal/reactive"
)

// Sidebar action names.
const (
	ShowSessions             = "sidebar.show-sessions"
	StartSearch              = "sidebar.start-search"
	ShowArchivedChats        = "sidebar.show-archived-chats"
	MenuShowArchivedChats    = "sidebar-menu.show-archived-chats"
	MoveArchiveRowToChatList = "sidebar.move-archive-row-to-chat-list"
)

var (
	// ErrUnknownAction is returned for names that were never installed.
	ErrUnknownAction = errors.New("unknown action")
	// ErrActionDisabled is returned when activating a disabled action.
	ErrActionDisabled = errors.New("action disabled")
	// ErrDuplicateAction is returned when installing a name twice.
	ErrDuplicateAction = errors.New("action already installed")
)

// Handler runs an action.
type Handler func() error

// EnabledChanged is emitted when an action's enabled state flips.
type EnabledChanged struct {
	Name    string
	Enabled bool
}

type action struct {
	handler Handler
	enabled bool
}

// Registry maps action names to handlers and enabled state.
type Registry struct {
	actions map[string]*action
	changed reactive.Signal[EnabledChanged]
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{actions: make(map[string]*action)}
}

// Install registers an enabled action.
func (r *Registry) Install(name string, handler Handler) error {
	if _, exists := r.actions[name]; exists {
		return fmt.Errorf("install %s: %w", name, ErrDuplicateAction)
	}
	r.actions[name] = &action{handler: handler, enabled: true}
	return nil
}

// SetEnabled updates the enabled state of an installed action.
func (r *Registry) SetEnabled(name string, enabled bool) error {
	a, ok := r.actions[name]
	if !ok {
		return fmt.Errorf("set enabled %s: %w", name, ErrUnknownAction)
	}
	if a.enabled == enabled {
		return nil
	}
	a.enabled = enabled
	r.changed.Emit(EnabledChanged{Name: name, Enabled: enabled})
	return nil
}

// Enabled reports whether an action is installed and enabled.
func (r *Registry) Enabled(name string) bool {
	a, ok := r.actions[name]
	return ok && a.enabled
}

// Activate runs the action's handler.
func (r *Registry) Activate(name string) error {
	a, ok := r.actions[name]
	if !ok {
		return fmt.Errorf("activate %s: %w", name, ErrUnknownAction)
	}
	if !a.enabled {
		return fmt.Errorf("activate %s: %w", name, ErrActionDisabled)
	}
	if a.handler == nil {
		return nil
	}
	return a.handler()
}

// Names returns the installed action names sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.actions))
	for name := range r.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OnEnabledChanged connects fn to enabled-state flips.
func (r *Registry) OnEnabledChanged(fn func(EnabledChanged)) reactive.Subscription {
	return r.changed.Connect(fn)
}

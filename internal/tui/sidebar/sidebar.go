// Package sidebar is the controller behind the chat sidebar. It binds the
// active session, keeps the folder bar and archive row visibility in sync
// with the session's collections, enables the archive related actions from
// the persisted settings and drives the navigation between sidebar panes.
//
// Everything here runs on the UI event loop; no method is safe for
// concurrent use.
package sidebar

import (
	"errors"
	"weak"

	"github.com/cristianoliveira/chat-sidebar/internal/logging"
	"github.com/cristianoliveira/chat-sidebar/internal/model"
	"github.com/cristianoliveira/chat-sidebar/internal/reactive"
	"github.com/cristianoliveira/chat-sidebar/internal/settings"
	"github.com/cristianoliveira/chat-sidebar/internal/tui/actions"
	"github.com/cristianoliveira/chat-sidebar/internal/tui/navigation"
)

// ErrNoSettings is returned by New without a settings store.
var ErrNoSettings = errors.New("sidebar: settings store is required")

// SettingsStore is the persisted preferences collaborator.
type SettingsStore interface {
	Bool(key string) (bool, error)
	SetBool(key string, v bool) error
	Subscribe(key string, fn func(bool)) (reactive.Subscription, error)
}

// FolderSelection is the folder bar: it exposes the selected chat list and
// notifies when the selection changes.
type FolderSelection interface {
	reactive.Notifier
	SelectedChatList() *model.ChatList
}

// Search is the search pane.
type Search interface {
	Reset()
	Focus()
}

// View receives the derived visibility flags.
type View interface {
	SetFolderBarVisible(visible bool)
	SetArchiveRowVisible(visible bool)
}

// Options configures a Sidebar. Only Settings is required.
type Options struct {
	Settings   SettingsStore
	Navigation *navigation.Stack
	Actions    *actions.Registry
	FolderBar  FolderSelection
	Search     Search
	View       View
	Logger     logging.Logger
}

// Sidebar is the sidebar controller.
type Sidebar struct {
	settings  SettingsStore
	nav       *navigation.Stack
	actions   *actions.Registry
	folderBar FolderSelection
	search    Search
	view      View
	logger    logging.Logger

	session        weak.Pointer[model.Session]
	archiveSub     reactive.Subscription
	settingsSub    reactive.Subscription
	sessionChanged reactive.Signal[*model.Session]

	folderBarVisible  *reactive.Computed[bool]
	archiveRowVisible *reactive.Computed[bool]

	compact             bool
	compactChanged      reactive.Signal[bool]
	selectedChat        weak.Pointer[model.Chat]
	selectedChatChanged reactive.Signal[*model.Chat]
}

// New creates a sidebar with no session, installs its actions and starts
// observing the archive-row-in-main-menu setting.
func New(opts Options) (*Sidebar, error) {
	if opts.Settings == nil {
		return nil, ErrNoSettings
	}
	s := &Sidebar{
		settings:  opts.Settings,
		nav:       opts.Navigation,
		actions:   opts.Actions,
		folderBar: opts.FolderBar,
		search:    opts.Search,
		view:      opts.View,
		logger:    opts.Logger,
	}
	if s.nav == nil {
		s.nav = navigation.NewSidebarStack()
	}
	if s.actions == nil {
		s.actions = actions.NewRegistry()
	}
	if s.view == nil {
		s.view = nopView{}
	}
	if s.logger == nil {
		s.logger = logging.Nop()
	}
	s.logger = s.logger.With("component", "sidebar")

	if err := s.installActions(); err != nil {
		return nil, err
	}

	sub, err := s.settings.Subscribe(settings.KeyArchiveRowInMainMenu, func(bool) {
		s.updateArchivedChatsActions(s.Session())
	})
	if err != nil {
		return nil, err
	}
	s.settingsSub = sub

	s.setupVisibility()
	s.updateArchivedChatsActions(nil)
	return s, nil
}

// Close disconnects every handler the sidebar registered on its
// collaborators.
func (s *Sidebar) Close() {
	s.settingsSub.Disconnect()
	s.archiveSub.Disconnect()
	s.folderBarVisible.Untrack()
	s.archiveRowVisible.Untrack()
}

// Navigation returns the pane stack.
func (s *Sidebar) Navigation() *navigation.Stack {
	return s.nav
}

// Actions returns the action registry.
func (s *Sidebar) Actions() *actions.Registry {
	return s.actions
}

// Compact reports whether the dense layout is active.
func (s *Sidebar) Compact() bool {
	return s.compact
}

// SetCompact sets the compact property.
func (s *Sidebar) SetCompact(compact bool) {
	if s.compact == compact {
		return
	}
	s.compact = compact
	s.compactChanged.Emit(compact)
}

// OnCompactChanged connects fn to compact property changes.
func (s *Sidebar) OnCompactChanged(fn func(bool)) reactive.Subscription {
	return s.compactChanged.Connect(fn)
}

// SelectedChat returns the highlighted chat, or nil.
func (s *Sidebar) SelectedChat() *model.Chat {
	return s.selectedChat.Value()
}

// SetSelectedChat sets the highlighted chat. The sidebar does not keep the
// chat alive.
func (s *Sidebar) SetSelectedChat(chat *model.Chat) {
	if s.SelectedChat() == chat {
		return
	}
	s.selectedChat = weak.Make(chat)
	s.selectedChatChanged.Emit(chat)
}

// OnSelectedChatChanged connects fn to selected chat changes.
func (s *Sidebar) OnSelectedChatChanged(fn func(*model.Chat)) reactive.Subscription {
	return s.selectedChatChanged.Connect(fn)
}

type nopView struct{}

func (nopView) SetFolderBarVisible(bool)  {}
func (nopView) SetArchiveRowVisible(bool) {}

// Package state holds the bubbletea model of the chat sidebar.
package state

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/chat-sidebar/internal/errors"
	"github.com/cristianoliveira/chat-sidebar/internal/logging"
	"github.com/cristianoliveira/chat-sidebar/internal/model"
	"github.com/cristianoliveira/chat-sidebar/internal/settings"
	"github.com/cristianoliveira/chat-sidebar/internal/storage/sqlite"
	"github.com/cristianoliveira/chat-sidebar/internal/tui/folderbar"
	"github.com/cristianoliveira/chat-sidebar/internal/tui/navigation"
	"github.com/cristianoliveira/chat-sidebar/internal/tui/sidebar"
)

const (
	headerFooterLines     = 4
	defaultViewportWidth  = 48
	defaultViewportHeight = 20
	statusClearDuration   = 5 * time.Second
)

// SessionStore is the persistence used by the TUI.
type SessionStore interface {
	ListSessions(ctx context.Context) ([]sqlite.SessionRecord, error)
	LoadSession(ctx context.Context, id string) (*model.Session, error)
	SetArchived(ctx context.Context, chatID int64, archived bool) error
}

// Options configures NewModel.
type Options struct {
	Store    SessionStore
	Settings *settings.Store
	// SettingsChanges, when set, triggers a settings reload per value.
	SettingsChanges <-chan struct{}
	// InitialSession is the ID of the session to open; empty opens the
	// first stored session.
	InitialSession string
	Logger         logging.Logger
}

// Model represents the TUI model for bubbletea.
type Model struct {
	store    SessionStore
	settings *settings.Store
	changes  <-chan struct{}
	logger   logging.Logger

	sidebar  *sidebar.Sidebar
	bar      *folderbar.Bar
	search   *searchInput
	keys     keyMap
	viewport viewport.Model

	// session is owned here; the sidebar only observes it.
	session  *model.Session
	sessions []sqlite.SessionRecord
	cursors  map[navigation.Destination]int

	folderBarVisible  bool
	archiveRowVisible bool

	errorHandler *errors.TUIHandler
	status       errors.Message
	hasStatus    bool
	statusSeq    int

	width  int
	height int
}

// NewModel creates the TUI model and opens the initial session.
func NewModel(opts Options) (*Model, error) {
	if opts.Store == nil || opts.Settings == nil {
		return nil, fmt.Errorf("tui: store and settings are required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	m := &Model{
		store:    opts.Store,
		settings: opts.Settings,
		changes:  opts.SettingsChanges,
		logger:   logger.With("component", "tui"),
		bar:      folderbar.New(),
		search:   newSearchInput(),
		keys:     defaultKeyMap(),
		viewport: viewport.New(defaultViewportWidth, defaultViewportHeight),
		cursors:  make(map[navigation.Destination]int),
	}

	// Initialize error handler with callback that sets the status line
	m.errorHandler = errors.NewTUIHandler(func(msg errors.Message) {
		m.status = msg
		m.hasStatus = true
		m.statusSeq++
	})

	sb, err := sidebar.New(sidebar.Options{
		Settings:  opts.Settings,
		FolderBar: m.bar,
		Search:    m.search,
		View:      m,
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}
	m.sidebar = sb
	sb.OnSessionChanged(m.bar.SetSession)
	sb.Navigation().OnTransition(m.onTransition)

	compact, _ := opts.Settings.Bool(settings.KeyCompact)
	sb.SetCompact(compact)
	if _, err := opts.Settings.Subscribe(settings.KeyCompact, sb.SetCompact); err != nil {
		return nil, err
	}

	if err := m.loadSessions(); err != nil {
		return nil, err
	}
	initial := opts.InitialSession
	if initial == "" && len(m.sessions) > 0 {
		initial = m.sessions[0].ID
	}
	if initial != "" {
		if err := m.switchSession(initial); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Init initializes the TUI model.
func (m *Model) Init() tea.Cmd {
	return waitForSettingsChange(m.changes)
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	seq := m.statusSeq
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		m.handleWindowSize(msg)
	case settingsFileChangedMsg:
		if err := m.settings.Reload(); err != nil {
			m.errorHandler.Error(fmt.Sprintf("reload settings: %v", err))
		}
		cmd = waitForSettingsChange(m.changes)
	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.hasStatus = false
		}
	}

	if m.statusSeq != seq {
		cmd = tea.Batch(cmd, clearStatusAfter(m.statusSeq, statusClearDuration))
	}
	return m, cmd
}

func (m *Model) handleWindowSize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height
	m.viewport.Width = msg.Width
	h := msg.Height - headerFooterLines
	if h < 1 {
		h = 1
	}
	m.viewport.Height = h
}

// SetFolderBarVisible implements sidebar.View.
func (m *Model) SetFolderBarVisible(visible bool) {
	m.folderBarVisible = visible
}

// SetArchiveRowVisible implements sidebar.View.
func (m *Model) SetArchiveRowVisible(visible bool) {
	m.archiveRowVisible = visible
}

// Sidebar returns the sidebar controller.
func (m *Model) Sidebar() *sidebar.Sidebar {
	return m.sidebar
}

// Session returns the open session.
func (m *Model) Session() *model.Session {
	return m.session
}

// Status returns the current status line message.
func (m *Model) Status() (errors.Message, bool) {
	return m.status, m.hasStatus
}

func (m *Model) onTransition(tr navigation.Transition) {
	if tr.To != navigation.Search {
		m.search.Blur()
	}
	for _, d := range tr.Discarded {
		delete(m.cursors, d)
	}
	if tr.Kind == navigation.TransitionPush {
		m.cursors[tr.To] = 0
	}
	m.viewport.GotoTop()
}

func (m *Model) loadSessions() error {
	list, err := m.store.ListSessions(context.Background())
	if err != nil {
		return fmt.Errorf("tui: list sessions: %w", err)
	}
	m.sessions = list
	return nil
}

// switchSession loads id and binds it to the sidebar.
func (m *Model) switchSession(id string) error {
	session, err := m.store.LoadSession(context.Background(), id)
	if err != nil {
		return err
	}
	m.session = session
	m.sidebar.SetSession(session)
	m.sidebar.SetSelectedChat(nil)
	m.cursors[navigation.Chats] = 0
	m.logger.Info("session opened", "session", session.String())
	return nil
}

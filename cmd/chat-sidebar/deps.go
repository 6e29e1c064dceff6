package main

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/cristianoliveira/chat-sidebar/internal/config"
	"github.com/cristianoliveira/chat-sidebar/internal/logging"
	"github.com/cristianoliveira/chat-sidebar/internal/settings"
	"github.com/cristianoliveira/chat-sidebar/internal/storage/sqlite"
	"github.com/cristianoliveira/chat-sidebar/internal/tui/state"
	"github.com/cristianoliveira/chat-sidebar/internal/version"
)

// app opens the database and the settings file on first use. Configuration
// is loaded by the root command before any subcommand runs, so opening
// lazily is what lets db_path and settings_path overrides take effect.
type app struct {
	storage  *sqlite.SQLiteStorage
	settings *settings.Store
}

var client = &app{}

func (a *app) db() (*sqlite.SQLiteStorage, error) {
	if a.storage != nil {
		return a.storage, nil
	}
	s, err := sqlite.NewSQLiteStorage(config.Get("db_path", ""))
	if err != nil {
		return nil, err
	}
	a.storage = s
	return s, nil
}

func (a *app) settingsStore() (*settings.Store, error) {
	if a.settings != nil {
		return a.settings, nil
	}
	s, err := settings.Open(settings.DefaultPath(), logging.GetGlobal())
	if err != nil {
		return nil, fmt.Errorf("open settings: %w", err)
	}
	a.settings = s
	return s, nil
}

// Close releases the database if it was opened.
func (a *app) Close() error {
	if a.storage == nil {
		return nil
	}
	err := a.storage.Close()
	a.storage = nil
	return err
}

func (a *app) Version() string {
	return version.String()
}

func (a *app) CreateSession(ctx context.Context, name string) (sqlite.SessionRecord, error) {
	db, err := a.db()
	if err != nil {
		return sqlite.SessionRecord{}, err
	}
	return db.CreateSession(ctx, name)
}

func (a *app) ListSessions(ctx context.Context) ([]sqlite.SessionRecord, error) {
	db, err := a.db()
	if err != nil {
		return nil, err
	}
	return db.ListSessions(ctx)
}

func (a *app) FindSession(ctx context.Context, idOrName string) (sqlite.SessionRecord, error) {
	db, err := a.db()
	if err != nil {
		return sqlite.SessionRecord{}, err
	}
	return db.FindSession(ctx, idOrName)
}

func (a *app) AddChat(ctx context.Context, sessionID, title string, archived bool) (int64, error) {
	db, err := a.db()
	if err != nil {
		return 0, err
	}
	return db.AddChat(ctx, sessionID, title, archived)
}

func (a *app) SetArchived(ctx context.Context, chatID int64, archived bool) error {
	db, err := a.db()
	if err != nil {
		return err
	}
	return db.SetArchived(ctx, chatID, archived)
}

func (a *app) SetUnread(ctx context.Context, chatID int64, unread int) error {
	db, err := a.db()
	if err != nil {
		return err
	}
	return db.SetUnread(ctx, chatID, unread)
}

func (a *app) AddFolder(ctx context.Context, sessionID, title string) (int64, error) {
	db, err := a.db()
	if err != nil {
		return 0, err
	}
	return db.AddFolder(ctx, sessionID, title)
}

func (a *app) AddChatToFolder(ctx context.Context, folderID, chatID int64) error {
	db, err := a.db()
	if err != nil {
		return err
	}
	return db.AddChatToFolder(ctx, folderID, chatID)
}

func (a *app) LoadSettings() (settings.Settings, error) {
	s, err := a.settingsStore()
	if err != nil {
		return settings.Settings{}, err
	}
	return s.Snapshot(), nil
}

func (a *app) GetSetting(key string) (bool, error) {
	s, err := a.settingsStore()
	if err != nil {
		return false, err
	}
	return s.Bool(key)
}

func (a *app) SetSetting(key string, v bool) error {
	s, err := a.settingsStore()
	if err != nil {
		return err
	}
	return s.SetBool(key, v)
}

// Settings exposes the shared store to the TUI.
func (a *app) Settings() (*settings.Store, error) {
	return a.settingsStore()
}

// Sessions exposes the database to the TUI.
func (a *app) Sessions() (state.SessionStore, error) {
	db, err := a.db()
	if err != nil {
		return nil, err
	}
	return db, nil
}

// errNoClient is the panic value for constructors given a nil client.
var errNoClient = stderrors.New("client dependency cannot be nil")

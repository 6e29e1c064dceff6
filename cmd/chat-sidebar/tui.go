/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/chat-sidebar/cmd"
	"github.com/cristianoliveira/chat-sidebar/internal/colors"
	"github.com/cristianoliveira/chat-sidebar/internal/config"
	"github.com/cristianoliveira/chat-sidebar/internal/logging"
	"github.com/cristianoliveira/chat-sidebar/internal/settings"
	"github.com/cristianoliveira/chat-sidebar/internal/storage/sqlite"
	"github.com/cristianoliveira/chat-sidebar/internal/tui/state"
	"github.com/spf13/cobra"
)

type tuiClient interface {
	Sessions() (state.SessionStore, error)
	Settings() (*settings.Store, error)
	FindSession(ctx context.Context, idOrName string) (sqlite.SessionRecord, error)
}

// runProgram runs the bubbletea program. Tests replace it.
var runProgram = func(ctx context.Context, m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// NewTUICmd creates the tui command with explicit dependencies.
func NewTUICmd(client tuiClient) *cobra.Command {
	if client == nil {
		panic(fmt.Errorf("NewTUICmd: %w", errNoClient))
	}

	var sessionRef string
	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the chat sidebar",
		Long: `Open the interactive chat sidebar.

KEYS:
    j/k, up/down    Move the cursor
    tab, shift+tab  Switch chat folder
    enter           Open the selected row
    S               Sessions
    /, ctrl+f       Search chats
    a               Archived chats
    x, u            Archive or unarchive the selected chat
    M, A            Move the archived chats entry into the list or the menu
    c               Toggle the compact layout
    esc, q          Back
    ctrl+c          Quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), client, sessionRef)
		},
	}
	tuiCmd.Flags().StringVarP(&sessionRef, "session", "s", "", "Session ID or name to open")
	return tuiCmd
}

func runTUI(ctx context.Context, client tuiClient, sessionRef string) error {
	logger := logging.GetGlobal()

	store, err := client.Sessions()
	if err != nil {
		return err
	}
	st, err := client.Settings()
	if err != nil {
		return err
	}

	var initial string
	if sessionRef != "" {
		rec, err := client.FindSession(ctx, sessionRef)
		if err != nil {
			return err
		}
		initial = rec.ID
	}

	var changes <-chan struct{}
	if config.GetBool("watch_settings", true) {
		stop, ch, err := watchSettings(st.Path(), logger)
		if err != nil {
			// The sidebar still works without live reload.
			logger.Warn("settings watcher unavailable", "error", err)
		} else {
			changes = ch
			defer stop()
		}
	}

	m, err := state.NewModel(state.Options{
		Store:           store,
		Settings:        st,
		SettingsChanges: changes,
		InitialSession:  initial,
		Logger:          logger,
	})
	if err != nil {
		return err
	}

	colors.SetQuiet(true)
	defer colors.SetQuiet(false)
	return runProgram(ctx, m)
}

func watchSettings(path string, logger logging.Logger) (func(), <-chan struct{}, error) {
	if err := os.MkdirAll(filepath.Dir(path), config.FileModeDir); err != nil {
		return nil, nil, fmt.Errorf("create settings dir: %w", err)
	}
	w, err := settings.NewWatcher(path, config.GetDuration("watch_debounce", settings.DefaultDebounce), logger)
	if err != nil {
		return nil, nil, err
	}
	ch, err := w.Start()
	if err != nil {
		_ = w.Stop()
		return nil, nil, err
	}
	return func() { _ = w.Stop() }, ch, nil
}

func init() {
	cmd.RootCmd.AddCommand(NewTUICmd(client))
}

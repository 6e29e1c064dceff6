package main

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/chat-sidebar/internal/settings"
	"github.com/cristianoliveira/chat-sidebar/internal/storage/sqlite"
	"github.com/cristianoliveira/chat-sidebar/internal/tui/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTUIClient(t *testing.T) *mockClient {
	t.Helper()
	st, err := settings.Open(filepath.Join(t.TempDir(), "settings.toml"), nil)
	require.NoError(t, err)
	return &mockClient{
		store: &memoryStore{records: []sqlite.SessionRecord{
			{ID: "s1", Name: "Personal"},
			{ID: "s2", Name: "Work"},
		}},
		settings: st,
	}
}

func stubProgram(t *testing.T, run func(tea.Model) error) {
	t.Helper()
	orig := runProgram
	t.Cleanup(func() { runProgram = orig })
	runProgram = func(_ context.Context, m tea.Model) error { return run(m) }
}

func TestTUIOpensFirstSessionByDefault(t *testing.T) {
	c := newTUIClient(t)
	var got *state.Model
	stubProgram(t, func(m tea.Model) error {
		got = m.(*state.Model)
		return nil
	})

	_, err := execute(t, NewTUICmd(c))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "s1", got.Session().ID)
}

func TestTUIOpensRequestedSession(t *testing.T) {
	c := newTUIClient(t)
	c.On("FindSession", mock.Anything, "Work").Return(sqlite.SessionRecord{ID: "s2", Name: "Work"}, nil)
	var got *state.Model
	stubProgram(t, func(m tea.Model) error {
		got = m.(*state.Model)
		return nil
	})

	_, err := execute(t, NewTUICmd(c), "--session", "Work")
	require.NoError(t, err)
	assert.Equal(t, "s2", got.Session().ID)
}

func TestTUIUnknownSessionFailsBeforeRunning(t *testing.T) {
	c := newTUIClient(t)
	c.On("FindSession", mock.Anything, "ghost").Return(sqlite.SessionRecord{}, sqlite.ErrSessionNotFound)
	stubProgram(t, func(tea.Model) error {
		t.Fatal("program must not start")
		return nil
	})

	_, err := execute(t, NewTUICmd(c), "-s", "ghost")
	assert.ErrorIs(t, err, sqlite.ErrSessionNotFound)
}

func TestTUIPropagatesProgramError(t *testing.T) {
	c := newTUIClient(t)
	boom := errors.New("no tty")
	stubProgram(t, func(tea.Model) error { return boom })

	_, err := execute(t, NewTUICmd(c))
	assert.ErrorIs(t, err, boom)
}

func TestWatchSettingsCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.toml")
	stop, ch, err := watchSettings(path, nil)
	require.NoError(t, err)
	defer stop()
	assert.NotNil(t, ch)
}

package actions

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstallAndActivate(t *testing.T) {
	r := NewRegistry()
	calls := 0
	require.NoError(t, r.Install(ShowSessions, func() error { calls++; return nil }))

	require.NoError(t, r.Activate(ShowSessions))
	assert.Equal(t, 1, calls)
	assert.True(t, r.Enabled(ShowSessions))

	assert.ErrorIs(t, r.Install(ShowSessions, nil), ErrDuplicateAction)
}

func TestActivateUnknownAndDisabled(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Install(MoveArchiveRowToChatList, func() error { return nil }))
	require.NoError(t, r.SetEnabled(MoveArchiveRowToChatList, false))

	assert.ErrorIs(t, r.Activate("sidebar.nope"), ErrUnknownAction)
	assert.ErrorIs(t, r.Activate(MoveArchiveRowToChatList), ErrActionDisabled)
	assert.ErrorIs(t, r.SetEnabled("sidebar.nope", true), ErrUnknownAction)
	assert.False(t, r.Enabled("sidebar.nope"))
}

func TestActivatePropagatesHandlerError(t *testing.T) {
	r := NewRegistry()
	boom := errors.New("boom")
	require.NoError(t, r.Install(StartSearch, func() error { return boom }))

	assert.ErrorIs(t, r.Activate(StartSearch), boom)
}

func TestEnabledChangedOnlyOnFlip(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Install(MenuShowArchivedChats, nil))
	var events []EnabledChanged
	r.OnEnabledChanged(func(ev EnabledChanged) { events = append(events, ev) })

	require.NoError(t, r.SetEnabled(MenuShowArchivedChats, true))
	require.NoError(t, r.SetEnabled(MenuShowArchivedChats, false))
	require.NoError(t, r.SetEnabled(MenuShowArchivedChats, false))

	assert.Equal(t, []EnabledChanged{{Name: MenuShowArchivedChats, Enabled: false}}, events)
	assert.NoError(t, r.SetEnabled(MenuShowArchivedChats, true))
	assert.NoError(t, r.Activate(MenuShowArchivedChats), "nil handler is allowed")
}

func TestNamesSorted(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{StartSearch, MenuShowArchivedChats, ShowSessions} {
		require.NoError(t, r.Install(name, nil))
	}
	assert.Equal(t, []string{MenuShowArchivedChats, ShowSessions, StartSearch}, r.Names())
}

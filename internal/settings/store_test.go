package settings

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(settingsPath(t), nil)
	require.NoError(t, err)
	return s
}

func TestStoreBoolAndUnknownKey(t *testing.T) {
	s := openStore(t)

	v, err := s.Bool(KeyArchiveRowInMainMenu)
	require.NoError(t, err)
	assert.False(t, v)

	_, err = s.Bool("nope")
	assert.ErrorIs(t, err, ErrUnknownKey)
	assert.ErrorIs(t, s.SetBool("nope", true), ErrUnknownKey)
	_, err = s.Subscribe("nope", func(bool) {})
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestStoreSetBoolPersistsAndNotifies(t *testing.T) {
	s := openStore(t)
	var got []bool
	sub, err := s.Subscribe(KeyArchiveRowInMainMenu, func(v bool) { got = append(got, v) })
	require.NoError(t, err)

	require.NoError(t, s.SetBool(KeyArchiveRowInMainMenu, true))
	require.NoError(t, s.SetBool(KeyArchiveRowInMainMenu, true))
	require.NoError(t, s.SetBool(KeyCompact, true))

	assert.Equal(t, []bool{true}, got, "unchanged values and other keys do not notify")

	onDisk, err := Load(s.Path())
	require.NoError(t, err)
	assert.Equal(t, Settings{ArchiveRowInMainMenu: true, Compact: true}, onDisk)

	sub.Disconnect()
	require.NoError(t, s.SetBool(KeyArchiveRowInMainMenu, false))
	assert.Len(t, got, 1)
}

func TestStoreSetBoolFailureLeavesValue(t *testing.T) {
	s := openStore(t)
	boom := errors.New("disk full")
	s.save = func(string, Settings) error { return boom }
	notified := false
	_, err := s.Subscribe(KeyArchiveRowInMainMenu, func(bool) { notified = true })
	require.NoError(t, err)

	err = s.SetBool(KeyArchiveRowInMainMenu, true)
	assert.ErrorIs(t, err, boom)

	v, _ := s.Bool(KeyArchiveRowInMainMenu)
	assert.False(t, v)
	assert.False(t, notified)
}

func TestStoreSetBoolUnwritableDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "conf")
	s, err := Open(filepath.Join(dir, "settings.toml"), nil)
	require.NoError(t, err)

	// The settings directory turns into a file after the store is open.
	require.NoError(t, os.WriteFile(dir, []byte("x"), 0644))

	notified := false
	_, err = s.Subscribe(KeyCompact, func(bool) { notified = true })
	require.NoError(t, err)

	assert.Error(t, s.SetBool(KeyCompact, true))
	assert.False(t, s.Snapshot().Compact)
	assert.False(t, notified)
	_, statErr := os.Stat(filepath.Join(dir, "settings.toml"))
	assert.Error(t, statErr)
}

func TestStoreReloadEmitsChangedKeysOnly(t *testing.T) {
	s := openStore(t)
	var archive, compact []bool
	_, err := s.Subscribe(KeyArchiveRowInMainMenu, func(v bool) { archive = append(archive, v) })
	require.NoError(t, err)
	_, err = s.Subscribe(KeyCompact, func(v bool) { compact = append(compact, v) })
	require.NoError(t, err)

	require.NoError(t, Save(s.Path(), Settings{Compact: true}))
	require.NoError(t, s.Reload())
	require.NoError(t, s.Reload())

	assert.Empty(t, archive)
	assert.Equal(t, []bool{true}, compact)
	assert.True(t, s.Snapshot().Compact)
}

func TestStoreReloadKeepsValuesOnParseError(t *testing.T) {
	s := openStore(t)
	require.NoError(t, s.SetBool(KeyCompact, true))
	require.NoError(t, os.WriteFile(s.Path(), []byte("compact = ="), 0644))

	assert.Error(t, s.Reload())
	assert.True(t, s.Snapshot().Compact)
}

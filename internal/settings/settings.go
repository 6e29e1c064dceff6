// Package settings provides persisted sidebar preferences.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/cristianoliveira/chat-sidebar/internal/config"
	"github.com/pelletier/go-toml/v2"
)

// Setting keys.
const (
	KeyArchiveRowInMainMenu = "archive-row-in-main-menu"
	KeyCompact              = "compact"
)

// ErrUnknownKey is returned for keys that name no setting.
var ErrUnknownKey = errors.New("unknown settings key")

// Settings holds sidebar preferences persisted to disk.
//
// TOML schema:
//
//	archiveRowInMainMenu = false
//	compact = false
//
// Settings are stored at ~/.config/chat-sidebar/settings.toml unless
// settings_path overrides it.
type Settings struct {
	// ArchiveRowInMainMenu moves the archived chats entry out of the chat
	// list and into the sidebar menu.
	ArchiveRowInMainMenu bool `toml:"archiveRowInMainMenu"`

	// Compact selects the dense sidebar layout.
	Compact bool `toml:"compact"`
}

// DefaultSettings returns settings with all default values.
func DefaultSettings() Settings {
	return Settings{}
}

type field struct {
	get func(*Settings) bool
	set func(*Settings, bool)
}

var fields = map[string]field{
	KeyArchiveRowInMainMenu: {
		get: func(s *Settings) bool { return s.ArchiveRowInMainMenu },
		set: func(s *Settings, v bool) { s.ArchiveRowInMainMenu = v },
	},
	KeyCompact: {
		get: func(s *Settings) bool { return s.Compact },
		set: func(s *Settings, v bool) { s.Compact = v },
	},
}

// Keys returns every setting key sorted.
func Keys() []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func lookup(key string) (field, error) {
	f, ok := fields[key]
	if !ok {
		return field{}, fmt.Errorf("%q: %w", key, ErrUnknownKey)
	}
	return f, nil
}

// DefaultPath returns the settings file location from the loaded config.
func DefaultPath() string {
	if p := config.Get("settings_path", ""); p != "" {
		return p
	}
	return filepath.Join(config.Get("config_dir", ""), "settings"+config.FileExtTOML)
}

// Load reads settings from path.
// If the settings file does not exist, returns default settings.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read settings file: %w", err)
	}

	s := DefaultSettings()
	if err := toml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("failed to parse settings file: %w", err)
	}
	return s, nil
}

// Save writes settings to path, creating the parent directory if needed.
// The file is written to a temporary sibling and renamed into place so a
// watcher never observes a half-written file.
func Save(path string, s Settings) error {
	if path == "" {
		return fmt.Errorf("settings path not configured")
	}
	if err := os.MkdirAll(filepath.Dir(path), config.FileModeDir); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, config.FileModeFile); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace settings file: %w", err)
	}
	return nil
}

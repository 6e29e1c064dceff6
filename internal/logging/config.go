package logging

import (
	"os"
	"path/filepath"

	"github.com/cristianoliveira/chat-sidebar/internal/config"
)

// Config holds logging configuration.
type Config struct {
	Enabled  bool
	Level    string
	MaxFiles int
	// Command and PID are stamped on every entry and in the file name.
	Command string
	PID     int
}

// DefaultConfig returns a disabled info-level config for this process.
func DefaultConfig() Config {
	return Config{
		Level:    "info",
		MaxFiles: 10,
		Command:  filepath.Base(os.Args[0]),
		PID:      os.Getpid(),
	}
}

// FromGlobalConfig reads the logging_* keys. The debug flag forces the
// debug level.
func FromGlobalConfig() Config {
	cfg := DefaultConfig()
	cfg.Enabled = config.GetBool("logging_enabled", false)
	cfg.Level = config.Get("logging_level", cfg.Level)
	cfg.MaxFiles = config.GetInt("logging_max_files", cfg.MaxFiles)
	if config.GetBool("debug", false) {
		cfg.Level = "debug"
	}
	return cfg
}

// LogDir returns {state_dir}/logs, or a directory under the system temp
// dir when the state dir is not writable.
func LogDir() (string, error) {
	if stateDir := config.Get("state_dir", ""); stateDir != "" {
		dir := filepath.Join(stateDir, "logs")
		if writable(dir) {
			return dir, nil
		}
	}
	dir := filepath.Join(os.TempDir(), config.AppName, "logs")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return dir, nil
}

func writable(dir string) bool {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return false
	}
	f, err := os.CreateTemp(dir, ".write_test")
	if err != nil {
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return true
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cristianoliveira/chat-sidebar/internal/colors"
)

// Validator validates and normalizes a configuration value.
// Returns the normalized value and an error if validation fails.
type Validator func(key, value, defaultValue string) (normalized string, err error)

var (
	validatorsMu sync.RWMutex
	validators   = make(map[string]Validator)
)

// RegisterValidator registers a validator for a configuration key.
// Panics if a validator is already registered for the key.
func RegisterValidator(key string, validator Validator) {
	validatorsMu.Lock()
	defer validatorsMu.Unlock()
	if _, exists := validators[key]; exists {
		panic(fmt.Sprintf("validator already registered for key: %s", key))
	}
	validators[key] = validator
}

func getValidator(key string) Validator {
	validatorsMu.RLock()
	defer validatorsMu.RUnlock()
	return validators[key]
}

// reject warns about an invalid value and falls back to the default.
func reject(key, value, want, defaultValue string) (string, error) {
	colors.Warning(fmt.Sprintf("invalid %s value '%s': %s; using default: %s", key, value, want, defaultValue))
	return defaultValue, nil
}

// PositiveIntValidator accepts integers greater than zero.
func PositiveIntValidator() Validator {
	return func(key, value, defaultValue string) (string, error) {
		if value == "" {
			return defaultValue, nil
		}
		if n, err := strconv.Atoi(value); err != nil || n <= 0 {
			return reject(key, value, "must be a positive integer", defaultValue)
		}
		return value, nil
	}
}

// EnumValidator accepts one of allowed, case-insensitively.
func EnumValidator(allowed ...string) Validator {
	set := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		set[a] = true
	}
	sorted := append([]string(nil), allowed...)
	sort.Strings(sorted)
	want := "must be one of: " + strings.Join(sorted, ", ")
	return func(key, value, defaultValue string) (string, error) {
		if value == "" {
			return defaultValue, nil
		}
		lower := strings.ToLower(value)
		if !set[lower] {
			return reject(key, value, want, defaultValue)
		}
		return lower, nil
	}
}

// BoolValidator normalizes 1/0, yes/no and on/off to true or false.
func BoolValidator() Validator {
	return func(key, value, defaultValue string) (string, error) {
		if value == "" {
			return defaultValue, nil
		}
		switch strings.ToLower(value) {
		case "1", "true", "yes", "on":
			return "true", nil
		case "0", "false", "no", "off":
			return "false", nil
		}
		return reject(key, value, "must be one of: 1, true, yes, on, 0, false, no, off", defaultValue)
	}
}

// DurationValidator accepts positive Go durations such as 250ms or 1s.
func DurationValidator() Validator {
	return func(key, value, defaultValue string) (string, error) {
		if value == "" {
			return defaultValue, nil
		}
		d, err := time.ParseDuration(value)
		if err != nil || d <= 0 {
			return reject(key, value, "must be a positive duration (e.g. 250ms, 1s)", defaultValue)
		}
		return d.String(), nil
	}
}

// PathValidator expands a leading ~ and makes the path absolute.
// Empty values stay empty so computePaths can derive them.
func PathValidator() Validator {
	return func(key, value, defaultValue string) (string, error) {
		if value == "" {
			return defaultValue, nil
		}
		if value == "~" || strings.HasPrefix(value, "~/") {
			home, err := os.UserHomeDir()
			if err != nil {
				return reject(key, value, "home directory is unknown", defaultValue)
			}
			value = filepath.Join(home, strings.TrimPrefix(value, "~"))
		}
		abs, err := filepath.Abs(value)
		if err != nil {
			return reject(key, value, err.Error(), defaultValue)
		}
		return abs, nil
	}
}

func initValidators() {
	boolean := BoolValidator()
	path := PathValidator()
	for key, v := range map[string]Validator{
		"debug":             boolean,
		"watch_settings":    boolean,
		"watch_debounce":    DurationValidator(),
		"db_path":           path,
		"settings_path":     path,
		"config_dir":        path,
		"state_dir":         path,
		"logging_enabled":   boolean,
		"logging_level":     EnumValidator("debug", "info", "warn", "error"),
		"logging_max_files": PositiveIntValidator(),
	} {
		RegisterValidator(key, v)
	}
}

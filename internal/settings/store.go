package settings

import (
	"fmt"

	"github.com/cristianoliveira/chat-sidebar/internal/logging"
	"github.com/cristianoliveira/chat-sidebar/internal/reactive"
)

// Store is the in-memory view of the settings file with per-key change
// notifications. It is used from the UI event loop only.
type Store struct {
	path    string
	values  Settings
	signals map[string]*reactive.Signal[bool]
	logger  logging.Logger
	save    func(string, Settings) error
}

// Open loads the settings at path into a new store.
func Open(path string, logger logging.Logger) (*Store, error) {
	if logger == nil {
		logger = logging.Nop()
	}
	values, err := Load(path)
	if err != nil {
		return nil, err
	}
	s := &Store{
		path:    path,
		values:  values,
		signals: make(map[string]*reactive.Signal[bool], len(fields)),
		logger:  logger.With("component", "settings"),
		save:    Save,
	}
	for key := range fields {
		s.signals[key] = &reactive.Signal[bool]{}
	}
	return s, nil
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.path
}

// Snapshot returns a copy of the current values.
func (s *Store) Snapshot() Settings {
	return s.values
}

// Bool returns the value of key.
func (s *Store) Bool(key string) (bool, error) {
	f, err := lookup(key)
	if err != nil {
		return false, err
	}
	return f.get(&s.values), nil
}

// SetBool persists key = v and notifies subscribers. Setting the current
// value is a no-op. When persisting fails the in-memory value is left as
// it was and nothing is emitted.
func (s *Store) SetBool(key string, v bool) error {
	f, err := lookup(key)
	if err != nil {
		return err
	}
	if f.get(&s.values) == v {
		return nil
	}

	next := s.values
	f.set(&next, v)
	if err := s.save(s.path, next); err != nil {
		s.logger.Error("persist setting failed", "key", key, "error", err)
		return fmt.Errorf("set %s: %w", key, err)
	}
	s.values = next
	s.logger.Debug("setting changed", "key", key, "value", v)
	s.signals[key].Emit(v)
	return nil
}

// Subscribe connects fn to changes of key.
func (s *Store) Subscribe(key string, fn func(bool)) (reactive.Subscription, error) {
	if _, err := lookup(key); err != nil {
		return reactive.Subscription{}, err
	}
	return s.signals[key].Connect(fn), nil
}

// Reload re-reads the file and emits for every key whose value differs.
func (s *Store) Reload() error {
	next, err := Load(s.path)
	if err != nil {
		return err
	}
	prev := s.values
	s.values = next
	for _, key := range Keys() {
		f := fields[key]
		if f.get(&prev) == f.get(&next) {
			continue
		}
		v := f.get(&next)
		s.logger.Debug("setting reloaded", "key", key, "value", v)
		s.signals[key].Emit(v)
	}
	return nil
}

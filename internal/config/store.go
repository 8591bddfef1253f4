package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// Store is a sectioned key/value store with implicit section creation.
type Store struct {
	mu       sync.RWMutex
	sections map[string]map[string]any
	notifier *Notifier
	path     string
}

// Option configures a Store.
type Option func(*Store)

// WithPath sets the TOML file the store loads from and saves to.
func WithPath(path string) Option {
	return func(s *Store) {
		s.path = path
	}
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		sections: make(map[string]map[string]any),
		notifier: NewNotifier(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Notifier returns the store's change notifier.
func (s *Store) Notifier() *Notifier {
	return s.notifier
}

// Path returns the backing file path, or "" for an in-memory store.
func (s *Store) Path() string {
	return s.path
}

// Get returns the value for section/key. ok is false when either the
// section or the key does not exist.
func (s *Store) Get(section, key string) (value any, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sec, ok := s.sections[section]
	if !ok {
		return nil, false
	}
	value, ok = sec[key]
	return value, ok
}

// GetString returns the value for section/key as a string. ok is false
// when the key is missing or holds a non-string.
func (s *Store) GetString(section, key string) (string, bool) {
	v, ok := s.Get(section, key)
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}

// Set writes section/key, creating the section if needed, and notifies
// observers of the change.
func (s *Store) Set(section, key string, value any) {
	s.mu.Lock()
	sec, ok := s.sections[section]
	if !ok {
		sec = make(map[string]any)
		s.sections[section] = sec
	}
	old := sec[key]
	sec[key] = value
	s.mu.Unlock()

	s.notifier.Notify(Change{Section: section, Key: key, OldValue: old, NewValue: value})
}

// Sections returns the names of all existing sections.
func (s *Store) Sections() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.sections))
	for name := range s.sections {
		names = append(names, name)
	}
	return names
}

// Load replaces the store contents from the backing TOML file. A missing
// file leaves the store empty and is not an error. Observers receive one
// reload change.
func (s *Store) Load() error {
	if s.path == "" {
		return nil
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", s.path, err)
	}

	var sections map[string]map[string]any
	if err := toml.Unmarshal(data, &sections); err != nil {
		return fmt.Errorf("parsing config file %s: %w", s.path, err)
	}
	if sections == nil {
		sections = make(map[string]map[string]any)
	}

	s.mu.Lock()
	s.sections = sections
	s.mu.Unlock()

	s.notifier.Notify(Change{Type: ChangeReload})
	return nil
}

// Save writes the store contents to the backing TOML file, creating
// parent directories as needed.
func (s *Store) Save() error {
	if s.path == "" {
		return nil
	}

	s.mu.RLock()
	data, err := toml.Marshal(s.sections)
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file %s: %w", s.path, err)
	}
	return nil
}

package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sync"
)

// Store holds the live configuration. Readers see the values as they are
// when asked, so a hot reload takes effect on the next frame.
type Store struct {
	mu   sync.RWMutex
	cfg  *Config
	path string

	// written holds the file contents of the last save, so the watcher can
	// tell our own writes from user edits.
	written []byte
}

// NewStore wraps cfg, persisting to path. An empty path uses ConfigPath.
func NewStore(cfg *Config, path string) *Store {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if path == "" {
		path = ConfigPath()
	}
	return &Store{cfg: cfg, path: path}
}

// OpenStore loads the config at path and wraps it in a Store.
func OpenStore(path string) (*Store, error) {
	if path == "" {
		path = ConfigPath()
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return NewStore(cfg, path), nil
}

// Path returns the file the store persists to.
func (s *Store) Path() string {
	return s.path
}

// Snapshot returns a copy of the current configuration.
func (s *Store) Snapshot() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return *s.cfg
}

// Replace swaps in a new configuration without saving it.
func (s *Store) Replace(cfg *Config) {
	if cfg == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
}

// Reload re-reads the file and replaces the live configuration.
func (s *Store) Reload() error {
	cfg, err := LoadConfig(s.path)
	if err != nil {
		return err
	}
	s.Replace(cfg)
	return nil
}

// ReloadIfChanged re-reads the file unless it holds exactly what the store
// last wrote. It reports whether the live configuration was replaced.
func (s *Store) ReloadIfChanged() (bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read config file: %w", err)
	}

	s.mu.RLock()
	own := s.written != nil && bytes.Equal(data, s.written)
	s.mu.RUnlock()
	if own {
		return false, nil
	}

	cfg, err := parseConfig(data)
	if err != nil {
		return false, err
	}
	s.Replace(cfg)
	return true, nil
}

// FontSize returns the timer font size.
func (s *Store) FontSize() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Timer.FontSize
}

// Compact reports whether the timer uses two fraction digits.
func (s *Store) Compact() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Timer.Compact
}

// FontFamily returns the configured font family.
func (s *Store) FontFamily() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Timer.FontFamily
}

// Position returns the saved timer position.
func (s *Store) Position() (x, y float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Timer.X, s.cfg.Timer.Y
}

// Keybinds returns the keybind settings.
func (s *Store) Keybinds() KeybindConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Keybinds
}

// SavePosition records the timer position and writes the file. The live
// position is updated first and stays updated when the write fails, so
// after an error the running overlay and the file disagree until the next
// successful save.
func (s *Store) SavePosition(x, y float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cfg.Timer.X = x
	s.cfg.Timer.Y = y

	data, err := s.cfg.write(s.path)
	if err != nil {
		return fmt.Errorf("failed to save position: %w", err)
	}
	s.written = data
	return nil
}

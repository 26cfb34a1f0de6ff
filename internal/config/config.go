// Package config handles loading, validating and saving the igt
// configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	DefaultX             = 20.0
	DefaultY             = -20.0
	DefaultFontSize      = 72.0
	DefaultFontFamily    = "Monospace"
	DefaultToggleKey     = "F8"
	DefaultMoveKey       = "F9"
	DefaultResetKey      = "F10"
	DefaultTheme         = "default"
	DefaultVolume        = 60
	DefaultFrameInterval = Duration(16 * time.Millisecond)
)

// Duration is a time.Duration that can be unmarshaled from human-readable strings.
// Supports formats like "16ms", "1s" or integer milliseconds.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)

	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: must be like '16ms', '1s' or milliseconds: %w", s, err)
	}
	*d = Duration(dur)
	return nil
}

// MarshalText implements encoding.TextMarshaler for TOML output.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Config is the igt configuration.
// Loaded from ~/.config/igt/igt.toml
type Config struct {
	Timer         TimerConfig         `toml:"timer"`
	Keybinds      KeybindConfig       `toml:"keybinds"`
	Notifications NotificationsConfig `toml:"notifications"`
	Theme         ThemeConfig         `toml:"theme"`
	Display       DisplayConfig       `toml:"display"`
}

// TimerConfig holds the timer's placement and appearance.
type TimerConfig struct {
	X          float64 `toml:"x"`           // Reference units from the left edge
	Y          float64 `toml:"y"`           // Reference units from the top edge, non-positive
	FontSize   float64 `toml:"font_size"`   // 72 is the base size
	Compact    bool    `toml:"compact"`     // MM:SS.CC instead of MM:SS.mmm
	FontFamily string  `toml:"font_family"` // Falls back to the first available font
}

// KeybindConfig holds the key names for the overlay actions.
type KeybindConfig struct {
	Disabled bool   `toml:"disabled"`
	Toggle   string `toml:"toggle"`
	Move     string `toml:"move"`
	Reset    string `toml:"reset"`
}

// NotificationsConfig controls the optional notification chime.
type NotificationsConfig struct {
	Sound  string `toml:"sound"`  // Path to a wav/mp3/ogg file, empty for silence
	Volume int    `toml:"volume"` // 0-100
}

// ThemeConfig contains theme settings.
type ThemeConfig struct {
	Name string `toml:"name"` // Theme name without .css extension
}

// DisplayConfig contains output settings for the overlay window.
type DisplayConfig struct {
	Monitor       int      `toml:"monitor"`        // 0 = compositor default, 1+ = specific monitor
	FrameInterval Duration `toml:"frame_interval"` // How often the frame callback runs
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Timer: TimerConfig{
			X:          DefaultX,
			Y:          DefaultY,
			FontSize:   DefaultFontSize,
			Compact:    true,
			FontFamily: DefaultFontFamily,
		},
		Keybinds: KeybindConfig{
			Disabled: false,
			Toggle:   DefaultToggleKey,
			Move:     DefaultMoveKey,
			Reset:    DefaultResetKey,
		},
		Notifications: NotificationsConfig{
			Sound:  "",
			Volume: DefaultVolume,
		},
		Theme: ThemeConfig{
			Name: DefaultTheme,
		},
		Display: DisplayConfig{
			Monitor:       0,
			FrameInterval: DefaultFrameInterval,
		},
	}
}

// ConfigDir returns the igt configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "igt")
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "igt.toml")
}

// ThemesDir returns the directory searched for user themes.
func ThemesDir() string {
	return filepath.Join(ConfigDir(), "themes")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return parseConfig(data)
}

// parseConfig overlays data on the defaults and validates the result.
func parseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed. The write is atomic.
func (c *Config) Save(path string) error {
	_, err := c.write(path)
	return err
}

// write saves the configuration and returns the bytes written.
func (c *Config) write(path string) ([]byte, error) {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write atomically via temp file
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return nil, fmt.Errorf("failed to write config file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return nil, fmt.Errorf("failed to replace config file: %w", err)
	}

	return data, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Timer.FontSize <= 0 || c.Timer.FontSize > 512 {
		return fmt.Errorf("font_size must be between 0 and 512, got %g", c.Timer.FontSize)
	}

	if c.Notifications.Volume < 0 || c.Notifications.Volume > 100 {
		return fmt.Errorf("volume must be between 0 and 100, got %d", c.Notifications.Volume)
	}

	if c.Display.Monitor < 0 {
		return fmt.Errorf("monitor must not be negative, got %d", c.Display.Monitor)
	}

	if c.Display.FrameInterval.Duration() < time.Millisecond || c.Display.FrameInterval.Duration() > time.Second {
		return fmt.Errorf("frame_interval must be between 1ms and 1s, got %s", c.Display.FrameInterval.Duration())
	}

	if strings.TrimSpace(c.Theme.Name) == "" {
		return errors.New("theme name must not be empty")
	}

	return nil
}

// SoundPath returns the notification sound path with ~ expanded.
func (c *Config) SoundPath() string {
	return c.Notifications.SoundPath()
}

// SoundPath returns the sound path with ~ expanded.
func (n NotificationsConfig) SoundPath() string {
	return expandPath(n.Sound)
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

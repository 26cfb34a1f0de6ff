package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 20.0, cfg.Timer.X)
	assert.Equal(t, -20.0, cfg.Timer.Y)
	assert.Equal(t, 72.0, cfg.Timer.FontSize)
	assert.True(t, cfg.Timer.Compact)
	assert.Equal(t, "Monospace", cfg.Timer.FontFamily)
	assert.False(t, cfg.Keybinds.Disabled)
	assert.Equal(t, "F8", cfg.Keybinds.Toggle)
	assert.Equal(t, "F9", cfg.Keybinds.Move)
	assert.Equal(t, "F10", cfg.Keybinds.Reset)
	assert.Empty(t, cfg.Notifications.Sound)
	assert.Equal(t, "default", cfg.Theme.Name)
	assert.Equal(t, 16*time.Millisecond, cfg.Display.FrameInterval.Duration())
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/igt.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_ParsesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "igt.toml")

	content := `
[timer]
x = 300.5
y = -150.0
font_size = 48.0
compact = false
font_family = "JetBrains Mono"

[keybinds]
disabled = true
toggle = "F1"
move = "F2"
reset = "F3"

[notifications]
sound = "/usr/share/sounds/chime.ogg"
volume = 25

[theme]
name = "minimal"

[display]
monitor = 2
frame_interval = "33ms"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 300.5, cfg.Timer.X)
	assert.Equal(t, -150.0, cfg.Timer.Y)
	assert.Equal(t, 48.0, cfg.Timer.FontSize)
	assert.False(t, cfg.Timer.Compact)
	assert.Equal(t, "JetBrains Mono", cfg.Timer.FontFamily)
	assert.True(t, cfg.Keybinds.Disabled)
	assert.Equal(t, "F1", cfg.Keybinds.Toggle)
	assert.Equal(t, "F2", cfg.Keybinds.Move)
	assert.Equal(t, "F3", cfg.Keybinds.Reset)
	assert.Equal(t, "/usr/share/sounds/chime.ogg", cfg.SoundPath())
	assert.Equal(t, 25, cfg.Notifications.Volume)
	assert.Equal(t, "minimal", cfg.Theme.Name)
	assert.Equal(t, 2, cfg.Display.Monitor)
	assert.Equal(t, 33*time.Millisecond, cfg.Display.FrameInterval.Duration())
}

func TestLoadConfig_PartialConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "igt.toml")

	content := `
[timer]
x = 100.0
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 100.0, cfg.Timer.X)

	// Unchanged fields keep their defaults
	assert.Equal(t, -20.0, cfg.Timer.Y)
	assert.True(t, cfg.Timer.Compact)
	assert.Equal(t, "F8", cfg.Keybinds.Toggle)
}

func TestLoadConfig_IntegerFrameInterval(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "igt.toml")

	require.NoError(t, os.WriteFile(path, []byte("[display]\nframe_interval = \"20\"\n"), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 20*time.Millisecond, cfg.Display.FrameInterval.Duration())
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "igt.toml")

	require.NoError(t, os.WriteFile(path, []byte(`this is not valid toml [`), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "igt.toml")

	require.NoError(t, os.WriteFile(path, []byte("[notifications]\nvolume = 150\n"), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "volume")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero font size", func(c *Config) { c.Timer.FontSize = 0 }, true},
		{"huge font size", func(c *Config) { c.Timer.FontSize = 1000 }, true},
		{"negative volume", func(c *Config) { c.Notifications.Volume = -1 }, true},
		{"negative monitor", func(c *Config) { c.Display.Monitor = -1 }, true},
		{"zero frame interval", func(c *Config) { c.Display.FrameInterval = 0 }, true},
		{"empty theme", func(c *Config) { c.Theme.Name = " " }, true},
		{"position out of bounds is allowed", func(c *Config) { c.Timer.X = 99999 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_Save(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "subdir", "igt.toml")

	cfg := DefaultConfig()
	cfg.Timer.X = 640
	cfg.Keybinds.Toggle = "Home"

	require.NoError(t, cfg.Save(path))

	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file is renamed away")

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 640.0, loaded.Timer.X)
	assert.Equal(t, "Home", loaded.Keybinds.Toggle)
	assert.Equal(t, cfg.Display.FrameInterval, loaded.Display.FrameInterval)
}

func TestConfig_SaveReplaceFailure(t *testing.T) {
	// A directory in the way makes the final rename fail.
	path := filepath.Join(t.TempDir(), "igt.toml")
	require.NoError(t, os.MkdirAll(filepath.Join(path, "occupied"), 0700))

	err := DefaultConfig().Save(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to replace config file")

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file is removed after a failed rename")
}

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"16ms", 16 * time.Millisecond, false},
		{"1s", time.Second, false},
		{"250", 250 * time.Millisecond, false},
		{"soon", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.in))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Duration())
		})
	}
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/igt/igt.toml", ConfigPath())
	assert.Equal(t, "/custom/config/igt/themes", ThemesDir())
}

func TestConfigPathDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	assert.Contains(t, ConfigPath(), filepath.Join("igt", "igt.toml"))
}

func TestSoundPath_ExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.Notifications.Sound = "~/sounds/ding.wav"
	assert.Equal(t, filepath.Join(home, "sounds", "ding.wav"), cfg.SoundPath())
}

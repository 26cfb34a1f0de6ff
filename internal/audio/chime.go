package audio

import (
	"log/slog"
	"os"
	"sync"

	"github.com/jmylchreest/igt/internal/config"
)

// Chime plays the configured sound whenever the overlay shows a
// notification.
type Chime struct {
	mu     sync.RWMutex
	logger *slog.Logger
	player *Player
	path   string

	onError func(error)

	// play is swapped in tests.
	play func(path string) error
}

// NewChime creates a chime configured from cfg.
func NewChime(cfg config.NotificationsConfig, logger *slog.Logger) *Chime {
	if logger == nil {
		logger = slog.Default()
	}

	c := &Chime{
		logger: logger,
		player: NewPlayer(logger),
	}
	c.play = c.player.Play
	c.Configure(cfg)
	return c
}

// Configure applies new notification settings. A missing file disables
// the chime with a warning.
func (c *Chime) Configure(cfg config.NotificationsConfig) {
	path := cfg.SoundPath()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			c.logger.Warn("sound file not found", "path", path)
			path = ""
		}
	}

	c.player.SetVolume(float64(cfg.Volume) / 100.0)
	c.player.Forget()

	c.mu.Lock()
	c.path = path
	c.mu.Unlock()

	if path == "" {
		return
	}

	go func() {
		if _, err := c.player.Load(path); err != nil {
			c.logger.Warn("failed to preload sound", "path", path, "error", err)
		}
	}()
}

// SetErrorCallback sets a function called when playback fails. It runs on
// the playback goroutine.
func (c *Chime) SetErrorCallback(fn func(error)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onError = fn
}

// Path returns the sound that will play, empty when silent.
func (c *Chime) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.path
}

// Notify plays the chime without blocking the caller.
func (c *Chime) Notify(message string) {
	c.mu.RLock()
	path, onError := c.path, c.onError
	c.mu.RUnlock()
	if path == "" {
		return
	}

	go func() {
		if err := c.play(path); err != nil {
			c.logger.Warn("failed to play chime", "message", message, "error", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Close releases the audio device.
func (c *Chime) Close() {
	c.player.Close()
}

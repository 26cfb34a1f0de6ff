package audio

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/igt/internal/config"
)

func TestDecoderFor(t *testing.T) {
	for _, name := range []string{"a.wav", "b.OGG", "c.oga", "d.mp3"} {
		_, err := decoderFor(name)
		assert.NoError(t, err, name)
	}

	_, err := decoderFor("e.flac")
	assert.Error(t, err)
}

func TestVolumeToBels(t *testing.T) {
	assert.Equal(t, 0.0, volumeToBels(1))
	assert.InDelta(t, -0.30103, volumeToBels(0.5), 1e-5)
	assert.Equal(t, -10.0, volumeToBels(0))
}

func TestPlayer_SetVolumeClamps(t *testing.T) {
	p := NewPlayer(nil)

	p.SetVolume(1.5)
	assert.Equal(t, 1.0, p.Volume())

	p.SetVolume(-1)
	assert.Equal(t, 0.0, p.Volume())
}

func TestPlayer_LoadErrors(t *testing.T) {
	p := NewPlayer(nil)
	dir := t.TempDir()

	_, err := p.Load(filepath.Join(dir, "missing.wav"))
	assert.Error(t, err)

	bogus := filepath.Join(dir, "bogus.wav")
	require.NoError(t, os.WriteFile(bogus, []byte("not audio"), 0600))
	_, err = p.Load(bogus)
	assert.Error(t, err)

	unsupported := filepath.Join(dir, "chime.flac")
	require.NoError(t, os.WriteFile(unsupported, []byte("x"), 0600))
	_, err = p.Load(unsupported)
	assert.Error(t, err)
}

func TestPlayer_PlayEmptyPath(t *testing.T) {
	assert.NoError(t, NewPlayer(nil).Play(""))
}

func TestChime_SilentWithoutSound(t *testing.T) {
	c := NewChime(config.NotificationsConfig{Volume: 50}, nil)

	called := make(chan string, 1)
	c.play = func(path string) error {
		called <- path
		return nil
	}

	c.Notify("HELLO")
	assert.Empty(t, c.Path())
	assert.Len(t, called, 0)
	assert.Equal(t, 0.5, c.player.Volume())
}

func TestChime_MissingFileDisables(t *testing.T) {
	c := NewChime(config.NotificationsConfig{
		Sound:  filepath.Join(t.TempDir(), "nope.wav"),
		Volume: 100,
	}, nil)

	assert.Empty(t, c.Path())
}

func TestChime_PlaysConfiguredSound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ding.wav")
	require.NoError(t, os.WriteFile(path, []byte("RIFF"), 0600))

	c := NewChime(config.NotificationsConfig{Sound: path, Volume: 80}, nil)
	require.Equal(t, path, c.Path())

	called := make(chan string, 1)
	c.play = func(p string) error {
		called <- p
		return nil
	}

	c.Notify("MOVE MODE: ON")
	assert.Equal(t, path, <-called)
}

func TestChime_ReportsPlaybackErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ding.wav")
	require.NoError(t, os.WriteFile(path, []byte("RIFF"), 0600))

	c := NewChime(config.NotificationsConfig{Sound: path, Volume: 80}, nil)
	c.play = func(string) error { return errors.New("no audio device") }

	errs := make(chan error, 1)
	c.SetErrorCallback(func(err error) { errs <- err })

	c.Notify("POSITION RESET")
	assert.EqualError(t, <-errs, "no audio device")
}

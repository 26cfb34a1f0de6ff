// Package hotkeys grabs the overlay keys globally on X11 so they work
// while the game has focus.
package hotkeys

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"

	"github.com/jmylchreest/igt/internal/input"
)

// Grabber turns global key presses into input queue events.
type Grabber struct {
	xu     *xgbutil.XUtil
	root   xproto.Window
	queue  *input.Queue
	logger *slog.Logger

	mu       sync.Mutex
	bindings input.Bindings
}

var ignoreModsOnce sync.Once

// NewGrabber connects to the X server named by $DISPLAY.
func NewGrabber(queue *input.Queue, logger *slog.Logger) (*Grabber, error) {
	if logger == nil {
		logger = slog.Default()
	}

	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X server: %w", err)
	}
	keybind.Initialize(xu)

	ignoreModsOnce.Do(func() {
		configureIgnoreMods(xu)
	})

	return &Grabber{
		xu:     xu,
		root:   xu.RootWin(),
		queue:  queue,
		logger: logger,
	}, nil
}

// SetBindings replaces the grabbed keys. Disabled bindings grab nothing so
// the keys keep working in other applications.
func (g *Grabber) SetBindings(b input.Bindings) {
	g.mu.Lock()
	defer g.mu.Unlock()

	keybind.Detach(g.xu, g.root)
	g.bindings = b

	for seq, key := range keySequences(b) {
		err := keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
			g.queue.PressKey(key)
		}).Connect(g.xu, g.root, seq, true)
		if err != nil {
			g.logger.Warn("failed to grab hotkey", "key", seq, "error", err)
			continue
		}
		g.logger.Debug("grabbed hotkey", "key", seq)
	}
}

// Run processes X events until Stop is called.
func (g *Grabber) Run() {
	xevent.Main(g.xu)
}

// Stop ends Run and closes the connection.
func (g *Grabber) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()

	keybind.Detach(g.xu, g.root)
	xevent.Quit(g.xu)
	g.xu.Conn().Close()
}

// keySequences maps xgbutil key sequences to the keys they report.
func keySequences(b input.Bindings) map[string]input.Key {
	seqs := make(map[string]input.Key)
	if b.Disabled {
		return seqs
	}
	for _, k := range []input.Key{b.Toggle, b.Move, b.Reset} {
		if name := k.X11(); name != "" {
			seqs[name] = k
		}
	}
	return seqs
}

// configureIgnoreMods makes grabs fire regardless of CapsLock, NumLock and
// ScrollLock.
func configureIgnoreMods(xu *xgbutil.XUtil) {
	caps := uint16(xproto.ModMaskLock)
	base := []uint16{caps}
	if numLock := modMaskForKeysym(xu, "Num_Lock"); numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock := modMaskForKeysym(xu, "Scroll_Lock"); scrollLock != 0 && scrollLock != caps && !containsMask(base, scrollLock) {
		base = append(base, scrollLock)
	}

	xevent.IgnoreMods = maskCombinations(base)
}

// maskCombinations returns every OR-combination of masks, including zero,
// without duplicates.
func maskCombinations(masks []uint16) []uint16 {
	seen := make(map[uint16]bool)
	var out []uint16
	for subset := 0; subset < 1<<len(masks); subset++ {
		var mask uint16
		for bit := range masks {
			if subset&(1<<bit) != 0 {
				mask |= masks[bit]
			}
		}
		if !seen[mask] {
			seen[mask] = true
			out = append(out, mask)
		}
	}
	return out
}

func containsMask(masks []uint16, m uint16) bool {
	for _, x := range masks {
		if x == m {
			return true
		}
	}
	return false
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}

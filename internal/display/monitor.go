package display

import (
	"log/slog"
	"unsafe"

	"github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"

	"github.com/jmylchreest/igt/internal/overlay"
)

// Screen selects the monitor the overlay is drawn on.
type Screen struct {
	display *gdk.Display
	index   int // 0 = compositor default, 1+ = specific monitor
	logger  *slog.Logger
}

// NewScreen creates a screen for the configured monitor number.
func NewScreen(index int, logger *slog.Logger) *Screen {
	if logger == nil {
		logger = slog.Default()
	}
	return &Screen{
		display: gdk.DisplayGetDefault(),
		index:   index,
		logger:  logger,
	}
}

// Monitor returns the configured monitor, or nil to let the compositor
// choose. An out-of-range number falls back to the first monitor.
func (s *Screen) Monitor() *gdk.Monitor {
	if s.display == nil || s.index == 0 {
		return nil
	}

	monitors := s.display.Monitors()
	if monitors == nil {
		s.logger.Warn("no monitors list available")
		return nil
	}

	index := uint(s.index - 1)
	if index >= monitors.NItems() {
		s.logger.Warn("configured monitor not available, using first",
			"configured", s.index,
			"available", monitors.NItems(),
		)
		return s.firstMonitor()
	}
	return wrapMonitor(monitors.Item(index))
}

// Size returns the pixel size of the overlay's monitor. When the
// compositor picks the output the first monitor is assumed.
func (s *Screen) Size() overlay.Resolution {
	m := s.Monitor()
	if m == nil {
		m = s.firstMonitor()
	}
	if m == nil {
		s.logger.Warn("no monitor geometry, assuming 1080p")
		return overlay.FallbackResolution
	}

	geom := m.Geometry()
	return overlay.Resolution{Width: float64(geom.Width()), Height: float64(geom.Height())}
}

func (s *Screen) firstMonitor() *gdk.Monitor {
	if s.display == nil {
		return nil
	}
	monitors := s.display.Monitors()
	if monitors == nil || monitors.NItems() == 0 {
		return nil
	}
	return wrapMonitor(monitors.Item(0))
}

// wrapMonitor wraps a list model item as a gdk.Monitor. gotk4 keeps its own
// wrapper unexported; gdk.Monitor only embeds the object pointer.
func wrapMonitor(obj *glib.Object) *gdk.Monitor {
	if obj == nil {
		return nil
	}
	type monitor struct {
		_ [0]func()
		*glib.Object
	}
	return (*gdk.Monitor)(unsafe.Pointer(&monitor{Object: obj}))
}

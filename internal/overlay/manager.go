package overlay

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// FontFallbackMessage is shown when the configured font is missing and the
// overlay had to pick another one.
const FontFallbackMessage = "Font not found! Please report this bug."

// fontFallbackDuration keeps the font warning up long enough to be read.
const fontFallbackDuration = 20 * time.Second

// Settings exposes the configuration values the overlay reads at use time.
type Settings interface {
	FontSize() float64
	Compact() bool
	FontFamily() string
}

// Clock provides the current time. It exists so expiry can be tested.
type Clock interface {
	Now() time.Time
}

// SystemClock is the default Clock.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// Manager drives the timer overlay. It is not safe for concurrent use; all
// calls are expected from the host's frame callback.
type Manager struct {
	substrate Substrate
	settings  Settings
	session   *Session
	logger    *slog.Logger
	clock     Clock

	scaler *Cell[Scaler]
	font   *Cell[Font]

	// fontWarning is set when the font cell resolved through the fallback
	// and the user has not been told yet.
	fontWarning bool

	surface      Surface
	timer        Label
	notification Label

	moveMode bool
	drag     *dragSession
	color    ColorState
	hideAt   time.Time

	onNotify func(message string)
}

// NewManager creates a manager that draws through substrate.
func NewManager(substrate Substrate, settings Settings, session *Session, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	if session == nil {
		session = NewSession()
	}

	m := &Manager{
		substrate: substrate,
		settings:  settings,
		session:   session,
		logger:    logger,
		clock:     SystemClock,
	}
	m.scaler = NewCell(m.findScaler)
	m.font = NewCell(m.findFont)
	return m
}

// SetClock replaces the clock used for notification expiry.
func (m *Manager) SetClock(clock Clock) {
	if clock == nil {
		clock = SystemClock
	}
	m.clock = clock
}

// SetNotifyHook registers a function called for every notification shown.
func (m *Manager) SetNotifyHook(hook func(message string)) {
	m.onNotify = hook
}

// Session returns the session the manager reads ShowOverlay from.
func (m *Manager) Session() *Session {
	return m.session
}

// findScaler returns the first host surface with a scaling component,
// skipping the overlay's own surface.
func (m *Manager) findScaler() (Scaler, bool) {
	for _, info := range m.substrate.Surfaces() {
		if info.Name == SurfaceName {
			continue
		}
		if info.Scaler != nil {
			m.logger.Info("found host scaler", "surface", info.Name,
				"reference", fmt.Sprintf("%gx%g", info.Scaler.Reference.Width, info.Scaler.Reference.Height))
			return *info.Scaler, true
		}
	}
	m.logger.Info("no host scaler found, using defaults")
	return Scaler{}, false
}

// findFont returns the configured font, or the first available font when
// the configured one is not registered.
func (m *Manager) findFont() (Font, bool) {
	fonts := m.substrate.Fonts()
	want := m.settings.FontFamily()

	for _, f := range fonts {
		if f.Name != "" && strings.EqualFold(f.Name, want) {
			m.logger.Info("using font", "font", f.Name)
			return f, true
		}
	}

	for _, f := range fonts {
		if f.Name == "" {
			continue
		}
		m.logger.Error("configured font not found, falling back", "want", want, "font", f.Name)
		m.fontWarning = true
		return f, true
	}

	return Font{}, false
}

// ReferenceResolution returns the host's reference resolution, or the
// 1920x1080 fallback when the host exposes no scaler.
func (m *Manager) ReferenceResolution() Resolution {
	if s, ok := m.scaler.Get(); ok {
		return s.Reference
	}
	return FallbackResolution
}

// Dimensions returns the timer size for the current settings.
func (m *Manager) Dimensions() Dimensions {
	return ComputeDimensions(m.settings.FontSize(), m.settings.Compact())
}

// ClearCachedReferences forgets the host scaler and font. Call it when the
// host tears down the scene, since the resolution may change with it.
func (m *Manager) ClearCachedReferences() {
	m.scaler.Invalidate()
	m.font.Invalidate()
	m.logger.Info("cleared cached references")
}

// HasDisplay reports whether the overlay has been built.
func (m *Manager) HasDisplay() bool {
	return m.timer != nil
}

// CreateDisplay builds the overlay surface, timer and notification labels
// with the timer at (x, y). It returns the position actually used, which
// differs from the input when it had to be clamped.
//
// A second call is a no-op returning the zero position. Construction
// failures are logged and also return the zero position.
func (m *Manager) CreateDisplay(x, y float64) (pos Vec2) {
	if m.timer != nil {
		m.logger.Info("display already exists")
		return Vec2{}
	}

	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("error creating display", "panic", r)
			m.discardPartial()
			pos = Vec2{}
		}
	}()

	m.logger.Info("creating display")

	pos, err := m.build(Vec2{X: x, Y: y})
	if err != nil {
		m.logger.Error("error creating display", "error", err)
		m.discardPartial()
		return Vec2{}
	}
	return pos
}

func (m *Manager) build(requested Vec2) (Vec2, error) {
	scaler, found := m.scaler.Get()
	if found {
		m.logger.Info("mirroring host scaler", "mode", scaler.Mode.String(), "match", scaler.Match)
	} else {
		scaler = FallbackScaler()
		m.logger.Info("using 1080p default scaler")
	}

	surface, err := m.substrate.CreateSurface(SurfaceSpec{
		Name:         SurfaceName,
		Scaler:       scaler,
		SortingOrder: SortingOrder,
	})
	if err != nil {
		return Vec2{}, &DisplayError{Message: "failed to create surface", Cause: err}
	}
	m.surface = surface

	font, ok := m.font.Get()
	if !ok {
		return Vec2{}, &DisplayError{Message: "could not find a font"}
	}

	compact := m.settings.Compact()
	fontSize := m.settings.FontSize()
	dim := ComputeDimensions(fontSize, compact)

	pos, changed := ClampPosition(requested, scaler.Reference, dim)
	if changed {
		m.logger.Warn("timer out of bounds, clamped",
			"from", requested.String(),
			"to", pos.String(),
		)
	}

	timer, err := surface.NewLabel(LabelSpec{
		Name:     TimerLabelName,
		Font:     font,
		FontSize: fontSize,
		Anchor:   AnchorTopLeft,
		Position: pos,
		Size:     dim,
		Text:     PlaceholderText(compact),
		Visible:  true,
		Color:    m.color.Color(),
		Style:    DefaultTextStyle,
	})
	if err != nil {
		return Vec2{}, &DisplayError{Message: "failed to create timer label", Cause: err}
	}

	notification, err := surface.NewLabel(LabelSpec{
		Name:     NotificationLabelName,
		Font:     font,
		FontSize: NotificationFontSize,
		Anchor:   AnchorCenter,
		Size:     Dimensions{Width: NotificationWidth, Height: NotificationHeight},
		Visible:  false,
		Color:    TextColor,
		Style:    DefaultTextStyle,
	})
	if err != nil {
		return Vec2{}, &DisplayError{Message: "failed to create notification label", Cause: err}
	}

	surface.SetActive(true)
	timer.SetVisible(true)
	if m.color != ColorNormal {
		timer.SetColorState(m.color)
	}

	m.timer = timer
	m.notification = notification

	m.logger.Info("display created", "position", pos.String(), "width", dim.Width, "height", dim.Height)

	if m.fontWarning {
		m.fontWarning = false
		m.ShowNotification(FontFallbackMessage, fontFallbackDuration)
	}

	return pos, nil
}

// discardPartial hides whatever a failed build left behind so a later
// CreateDisplay can start over.
func (m *Manager) discardPartial() {
	if m.surface != nil {
		m.surface.SetActive(false)
	}
	m.surface = nil
	m.timer = nil
	m.notification = nil
}

// UpdateDisplay is the per-frame entry point. It renders the elapsed time,
// reconciles the timer's visibility with the session and expires
// notifications.
func (m *Manager) UpdateDisplay(elapsedSeconds float64) {
	if m.timer == nil {
		return
	}

	m.timer.SetText(FormatSeconds(elapsedSeconds, m.settings.Compact()))

	if m.timer.Visible() != m.session.ShowOverlay {
		m.timer.SetVisible(m.session.ShowOverlay)
	}

	m.RefreshNotifications(m.clock.Now())
}

// SetVisibility shows or hides the timer directly. Notifications are not
// affected.
func (m *Manager) SetVisibility(visible bool) {
	if m.timer != nil {
		m.timer.SetVisible(visible)
	}
}

// TimerText returns the timer's current text, empty without a display.
func (m *Manager) TimerText() string {
	if m.timer == nil {
		return ""
	}
	return m.timer.Text()
}

// TimerVisible reports whether the timer label is shown.
func (m *Manager) TimerVisible() bool {
	return m.timer != nil && m.timer.Visible()
}

// TimerPosition returns the timer's live position.
func (m *Manager) TimerPosition() (Vec2, bool) {
	if m.timer == nil {
		return Vec2{}, false
	}
	return m.timer.Position(), true
}

// SetRunInvalid would mark the current run invalid for leaderboards.
// It always fails.
func (m *Manager) SetRunInvalid(invalid bool) error {
	return fmt.Errorf("set run invalid (%t): %w", invalid, ErrNotImplemented)
}

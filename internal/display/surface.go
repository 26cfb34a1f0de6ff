package display

import (
	"math"

	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/igt/internal/input"
	"github.com/jmylchreest/igt/internal/overlay"
	"github.com/jmylchreest/igt/internal/theme"
)

// stateClasses are the CSS classes toggled by the label color state.
var stateClasses = map[overlay.ColorState]string{
	overlay.ColorMoveMode: "move-mode",
	overlay.ColorInvalid:  "invalid",
}

// surface is the monitor expressed in reference units. Screen points use
// pixels with the origin at the bottom-left and y growing upward.
type surface struct {
	sub    *Substrate
	name   string
	screen overlay.Resolution // pixels
	factor float64            // pixels per reference unit
	active bool
	labels []*label
}

func (s *surface) Name() string {
	return s.name
}

func (s *surface) ScreenToLocal(p overlay.Vec2) overlay.Vec2 {
	return overlay.Vec2{
		X: p.X / s.factor,
		Y: (p.Y - s.screen.Height) / s.factor,
	}
}

func (s *surface) SetActive(active bool) {
	s.active = active
	for _, l := range s.labels {
		l.sync()
	}
}

func (s *surface) NewLabel(spec overlay.LabelSpec) (overlay.Label, error) {
	if s.sub.app == nil {
		return nil, &overlay.DisplayError{Message: "no application for overlay window"}
	}

	l := &label{
		surface: s,
		spec:    spec,
		width:   int(math.Round(spec.Size.Width * s.factor)),
		height:  int(math.Round(spec.Size.Height * s.factor)),
		visible: spec.Visible,
	}
	l.build()
	l.SetText(spec.Text)
	if spec.Color == overlay.TextColorMoveMode {
		l.SetColorState(overlay.ColorMoveMode)
	}
	l.SetPosition(spec.Position)

	s.sub.setRule(spec.Name, theme.LabelRule(spec.Name, spec.Font.Name, spec.FontSize*s.factor))
	s.labels = append(s.labels, l)
	l.sync()
	return l, nil
}

// label is one layer-shell window holding a single text widget.
type label struct {
	surface *surface
	spec    overlay.LabelSpec
	window  *gtk.Window
	text    *gtk.Label

	width, height int // pixels
	left, top     int // window origin in pixels from the top-left

	pos     overlay.Vec2
	visible bool
	state   overlay.ColorState
}

func (l *label) build() {
	sub := l.surface.sub

	l.window = gtk.NewWindow()
	l.window.SetApplication(sub.app)
	l.window.SetDecorated(false)
	l.window.SetResizable(false)
	l.window.SetDefaultSize(l.width, l.height)
	l.window.SetSizeRequest(l.width, l.height)
	l.window.AddCSSClass("igt-overlay")

	layershell.InitForWindow(l.window)
	layershell.SetLayer(l.window, layershell.LayerShellLayerOverlay)
	layershell.SetExclusiveZone(l.window, 0)
	layershell.SetKeyboardMode(l.window, layershell.LayerShellKeyboardModeOnDemand)
	layershell.SetNamespace(l.window, l.spec.Name)
	if m := sub.screen.Monitor(); m != nil {
		layershell.SetMonitor(l.window, m)
	}
	layershell.SetAnchor(l.window, layershell.LayerShellEdgeTop, true)
	layershell.SetAnchor(l.window, layershell.LayerShellEdgeLeft, true)

	l.text = gtk.NewLabel("")
	l.text.SetName(l.spec.Name)
	l.text.AddCSSClass("igt-label")
	l.text.AddCSSClass(l.spec.Name)
	l.text.SetSingleLineMode(true)
	if l.spec.Anchor == overlay.AnchorCenter {
		l.text.SetXAlign(0.5)
	} else {
		l.text.SetXAlign(0)
	}
	l.window.SetChild(l.text)

	if sub.queue != nil {
		l.connectInput(sub.queue)
	}
}

// connectInput routes pointer and key events to the queue. The driver
// decides whether they mean anything.
func (l *label) connectInput(q *input.Queue) {
	click := gtk.NewGestureClick()
	click.SetButton(gdk.BUTTON_PRIMARY)
	click.ConnectPressed(func(nPress int, x, y float64) {
		q.MouseDown(l.screenPoint(x, y))
	})
	click.ConnectReleased(func(nPress int, x, y float64) {
		q.MouseUp(l.screenPoint(x, y))
	})
	l.window.AddController(click)

	motion := gtk.NewEventControllerMotion()
	motion.ConnectMotion(func(x, y float64) {
		q.MouseMove(l.screenPoint(x, y))
	})
	l.window.AddController(motion)

	keys := gtk.NewEventControllerKey()
	keys.ConnectKeyPressed(func(keyval, keycode uint, state gdk.ModifierType) bool {
		k, ok := input.KeyFromX11(gdk.KeyvalName(keyval))
		if !ok {
			return false
		}
		q.PressKey(k)
		return true
	})
	l.window.AddController(keys)
}

// screenPoint converts window-local pixels to a screen point.
func (l *label) screenPoint(x, y float64) overlay.Vec2 {
	return overlay.Vec2{
		X: float64(l.left) + x,
		Y: l.surface.screen.Height - (float64(l.top) + y),
	}
}

func (l *label) sync() {
	l.window.SetVisible(l.visible && l.surface.active)
}

func (l *label) SetText(text string) {
	if l.text.Text() != text {
		l.text.SetText(text)
	}
}

func (l *label) Text() string {
	return l.text.Text()
}

func (l *label) SetVisible(visible bool) {
	if l.visible == visible {
		return
	}
	l.visible = visible
	l.sync()
}

func (l *label) Visible() bool {
	return l.visible
}

// SetPosition moves the window. Positions are in reference units with y
// pointing up; top-left anchored labels measure from the screen's top-left
// corner and centered labels from its center.
func (l *label) SetPosition(p overlay.Vec2) {
	l.pos = p
	f := l.surface.factor

	left, top := p.X*f, -p.Y*f
	if l.spec.Anchor == overlay.AnchorCenter {
		left += (l.surface.screen.Width - float64(l.width)) / 2
		top += (l.surface.screen.Height - float64(l.height)) / 2
	}

	l.left, l.top = int(math.Round(left)), int(math.Round(top))
	layershell.SetMargin(l.window, layershell.LayerShellEdgeLeft, l.left)
	layershell.SetMargin(l.window, layershell.LayerShellEdgeTop, l.top)
}

func (l *label) Position() overlay.Vec2 {
	return l.pos
}

func (l *label) SetColorState(state overlay.ColorState) {
	if state == l.state {
		return
	}
	if class, ok := stateClasses[l.state]; ok {
		l.text.RemoveCSSClass(class)
	}
	if class, ok := stateClasses[state]; ok {
		l.text.AddCSSClass(class)
	}
	l.state = state
}

package overlay

import "fmt"

// Vec2 is a 2D point or offset in reference-resolution units.
type Vec2 struct {
	X float64
	Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}

// Resolution describes the coordinate space all layout math operates in.
type Resolution struct {
	Width  float64
	Height float64
}

// FallbackResolution is used when the host exposes no scaler.
var FallbackResolution = Resolution{Width: 1920, Height: 1080}

// Dimensions is the size of the timer label in reference units.
type Dimensions struct {
	Width  float64
	Height float64
}

// ScaleMode mirrors how a host scales its UI to the physical screen.
type ScaleMode int

const (
	ScaleConstantPixelSize ScaleMode = iota
	ScaleWithScreenSize
	ScaleConstantPhysicalSize
)

// String returns the string representation of the scale mode.
func (m ScaleMode) String() string {
	switch m {
	case ScaleConstantPixelSize:
		return "constant-pixel-size"
	case ScaleWithScreenSize:
		return "scale-with-screen-size"
	case ScaleConstantPhysicalSize:
		return "constant-physical-size"
	default:
		return "unknown"
	}
}

// MatchMode selects how width and height contribute to the scale factor.
type MatchMode int

const (
	MatchWidthOrHeight MatchMode = iota
	MatchExpand
	MatchShrink
)

// Scaler is a host surface's scaling descriptor.
type Scaler struct {
	Mode      ScaleMode
	Reference Resolution
	MatchMode MatchMode
	// Match blends width (0) and height (1) for MatchWidthOrHeight.
	Match float64
}

// FallbackScaler is the descriptor used when no host scaler is found.
func FallbackScaler() Scaler {
	return Scaler{
		Mode:      ScaleWithScreenSize,
		Reference: FallbackResolution,
		MatchMode: MatchWidthOrHeight,
	}
}

// Anchor is the point of the surface a label's position is relative to.
type Anchor int

const (
	AnchorTopLeft Anchor = iota
	AnchorCenter
)

// Color is an 8-bit RGBA color.
type Color struct {
	R, G, B, A uint8
}

// Hex returns the color as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Label colors.
var (
	TextColor         = Color{R: 248, G: 248, B: 242, A: 255}
	TextColorMoveMode = Color{R: 128, G: 255, B: 234, A: 255}
)

// TextStyle is the outline and shadow treatment applied to every label so
// text stays legible over arbitrary host backgrounds.
type TextStyle struct {
	OutlineWidth   float64
	OutlineColor   Color
	FaceDilate     float64
	UnderlayColor  Color
	UnderlayOffset Vec2
	UnderlayDilate float64
	UnderlaySoften float64
}

// DefaultTextStyle is shared by the timer and notification labels.
var DefaultTextStyle = TextStyle{
	OutlineWidth:   0.3,
	OutlineColor:   Color{A: 255},
	FaceDilate:     0.3,
	UnderlayColor:  Color{A: 128},
	UnderlayOffset: Vec2{X: 0.5, Y: -0.5},
	UnderlayDilate: 0.3,
	UnderlaySoften: 0.1,
}

// ColorState is the timer's color treatment.
type ColorState int

const (
	ColorNormal ColorState = iota
	ColorMoveMode
	// ColorInvalid is reserved; nothing transitions into it yet.
	ColorInvalid
)

// String returns the string representation of the color state.
func (s ColorState) String() string {
	switch s {
	case ColorNormal:
		return "normal"
	case ColorMoveMode:
		return "move-mode"
	case ColorInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Color returns the text color for the state. Invalid has no color of its
// own and renders like Normal.
func (s ColorState) Color() Color {
	if s == ColorMoveMode {
		return TextColorMoveMode
	}
	return TextColor
}

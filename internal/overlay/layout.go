package overlay

// Timer sizing constants, tuned for the base font size in compact mode.
const (
	BaseFontSize    = 72.0
	BaseTimerWidth  = 288.7
	BaseTimerHeight = 70.0

	// millisWidth is the extra width needed for the third fraction digit.
	millisWidth = 37.0
)

// Notification label sizing.
const (
	NotificationFontSize = 48.0
	NotificationWidth    = 800.0
	NotificationHeight   = 100.0
)

// ComputeDimensions returns the timer label size for a font size and
// display mode. The result scales linearly with fontSize.
func ComputeDimensions(fontSize float64, compact bool) Dimensions {
	scale := fontSize / BaseFontSize

	width := BaseTimerWidth
	if !compact {
		width += millisWidth
	}

	return Dimensions{
		Width:  width * scale,
		Height: BaseTimerHeight * scale,
	}
}

// ClampPosition keeps a top-left anchored position inside the reference
// area. y is non-positive, measured downward from the top edge. The bool
// reports whether the input was changed.
//
// Bounds are used as given. When the label is larger than the area the
// range inverts; the lower bound is tested first.
func ClampPosition(p Vec2, res Resolution, dim Dimensions) (Vec2, bool) {
	clamped := Vec2{
		X: clamp(p.X, 0, res.Width-dim.Width),
		Y: clamp(p.Y, -(res.Height - dim.Height), 0),
	}
	return clamped, clamped != p
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package overlay

import "math"

// Factor returns the pixels-per-reference-unit a host scaler applies on a
// screen of the given pixel size.
func (s Scaler) Factor(screen Resolution) float64 {
	if s.Mode != ScaleWithScreenSize {
		return 1
	}
	ref := s.Reference
	if ref.Width <= 0 || ref.Height <= 0 || screen.Width <= 0 || screen.Height <= 0 {
		return 1
	}

	sx := screen.Width / ref.Width
	sy := screen.Height / ref.Height
	switch s.MatchMode {
	case MatchExpand:
		return math.Min(sx, sy)
	case MatchShrink:
		return math.Max(sx, sy)
	default:
		// Blend in log space so halving one axis and doubling the other
		// cancels out.
		match := math.Max(0, math.Min(1, s.Match))
		lw, lh := math.Log2(sx), math.Log2(sy)
		return math.Pow(2, lw+(lh-lw)*match)
	}
}

// Canvas returns the screen size expressed in reference units.
func (s Scaler) Canvas(screen Resolution) Resolution {
	f := s.Factor(screen)
	return Resolution{Width: screen.Width / f, Height: screen.Height / f}
}

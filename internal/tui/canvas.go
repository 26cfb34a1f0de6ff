package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/igt/internal/overlay"
)

// terminalSurface is the name the canvas reports for the terminal itself.
// It has no scaler, so the overlay falls back to the 1080p reference.
const terminalSurface = "terminal"

// Canvas implements overlay.Substrate on a grid of terminal cells. Screen
// points are in cells with the origin at the bottom-left, y up.
type Canvas struct {
	cols, rows int
	surface    *canvasSurface
}

// NewCanvas creates an 80x24 canvas.
func NewCanvas() *Canvas {
	return &Canvas{cols: 80, rows: 24}
}

// Resize sets the grid size. Non-positive sizes are ignored.
func (c *Canvas) Resize(cols, rows int) {
	if cols > 0 {
		c.cols = cols
	}
	if rows > 0 {
		c.rows = rows
	}
}

// Size returns the grid size in cells.
func (c *Canvas) Size() (cols, rows int) {
	return c.cols, c.rows
}

// ScreenPoint converts a cell address (row 0 at the top) to a screen point.
func (c *Canvas) ScreenPoint(col, row int) overlay.Vec2 {
	return overlay.Vec2{X: float64(col), Y: float64(c.rows - row)}
}

func (c *Canvas) Surfaces() []overlay.SurfaceInfo {
	return []overlay.SurfaceInfo{{Name: terminalSurface}}
}

// Fonts reports the terminal's own font.
func (c *Canvas) Fonts() []overlay.Font {
	return []overlay.Font{{Name: "Monospace"}}
}

func (c *Canvas) CreateSurface(spec overlay.SurfaceSpec) (overlay.Surface, error) {
	c.surface = &canvasSurface{
		canvas: c,
		name:   spec.Name,
		ref:    spec.Scaler.Reference,
	}
	return c.surface, nil
}

// cellX converts a reference x to a column.
func (s *canvasSurface) cellX(x float64) int {
	return int(math.Round(x * float64(s.canvas.cols) / s.ref.Width))
}

// cellY converts a reference y (non-positive, from the top) to a row.
func (s *canvasSurface) cellY(y float64) int {
	return int(math.Round(-y * float64(s.canvas.rows) / s.ref.Height))
}

// Render draws the visible labels over an empty grid.
func (c *Canvas) Render() string {
	grid := make([][]span, c.rows)
	if s := c.surface; s != nil && s.active {
		for _, l := range s.labels {
			if !l.visible || l.text == "" {
				continue
			}
			row, col := s.place(l)
			if row < 0 || row >= c.rows {
				continue
			}
			grid[row] = append(grid[row], span{col: col, text: l.text, style: l.style()})
		}
	}

	lines := make([]string, c.rows)
	for i, spans := range grid {
		lines[i] = renderRow(spans, c.cols)
	}
	return strings.Join(lines, "\n")
}

// place returns the cell where a label's text starts.
func (s *canvasSurface) place(l *cellLabel) (row, col int) {
	if l.spec.Anchor == overlay.AnchorCenter {
		row = s.canvas.rows/2 + s.cellY(l.pos.Y)
		col = s.canvas.cols/2 + s.cellX(l.pos.X) - len([]rune(l.text))/2
		return row, col
	}
	return s.cellY(l.pos.Y), s.cellX(l.pos.X)
}

type span struct {
	col   int
	text  string
	style lipgloss.Style
}

// renderRow lays spans left to right, clipping at the edges. A span that
// overlaps an earlier one is shifted right.
func renderRow(spans []span, width int) string {
	var b strings.Builder
	x := 0
	for _, sp := range spans {
		text := []rune(sp.text)
		start := sp.col
		if start < x {
			start = x
		}
		if start < 0 {
			text = text[min(-start, len(text)):]
			start = 0
		}
		if start+len(text) > width {
			text = text[:max(0, width-start)]
		}
		if len(text) == 0 {
			continue
		}
		b.WriteString(strings.Repeat(" ", start-x))
		b.WriteString(sp.style.Render(string(text)))
		x = start + len(text)
	}
	if x < width {
		b.WriteString(strings.Repeat(" ", width-x))
	}
	return b.String()
}

type canvasSurface struct {
	canvas *Canvas
	name   string
	ref    overlay.Resolution
	active bool
	labels []*cellLabel
}

func (s *canvasSurface) Name() string {
	return s.name
}

func (s *canvasSurface) NewLabel(spec overlay.LabelSpec) (overlay.Label, error) {
	l := &cellLabel{
		spec:    spec,
		text:    spec.Text,
		visible: spec.Visible,
		pos:     spec.Position,
	}
	if spec.Color == overlay.TextColorMoveMode {
		l.state = overlay.ColorMoveMode
	}
	s.labels = append(s.labels, l)
	return l, nil
}

func (s *canvasSurface) ScreenToLocal(p overlay.Vec2) overlay.Vec2 {
	cols, rows := float64(s.canvas.cols), float64(s.canvas.rows)
	return overlay.Vec2{
		X: p.X * s.ref.Width / cols,
		Y: (p.Y - rows) * s.ref.Height / rows,
	}
}

func (s *canvasSurface) SetActive(active bool) {
	s.active = active
}

type cellLabel struct {
	spec    overlay.LabelSpec
	text    string
	visible bool
	pos     overlay.Vec2
	state   overlay.ColorState
}

func (l *cellLabel) style() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(l.state.Color().Hex()))
}

func (l *cellLabel) SetText(text string)                    { l.text = text }
func (l *cellLabel) Text() string                           { return l.text }
func (l *cellLabel) SetVisible(visible bool)                { l.visible = visible }
func (l *cellLabel) Visible() bool                          { return l.visible }
func (l *cellLabel) SetPosition(p overlay.Vec2)             { l.pos = p }
func (l *cellLabel) Position() overlay.Vec2                 { return l.pos }
func (l *cellLabel) SetColorState(state overlay.ColorState) { l.state = state }

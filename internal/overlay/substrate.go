package overlay

// SurfaceName is the name of the overlay's own surface. Scaler discovery
// skips it so the overlay never mirrors itself.
const SurfaceName = "igt-overlay"

// SortingOrder places the overlay above the host's own surfaces.
const SortingOrder = 11

// Label names.
const (
	TimerLabelName        = "igt-timer"
	NotificationLabelName = "igt-notification"
)

// SurfaceInfo describes a surface currently instantiated by the host.
// Scaler is nil when the surface has no scaling component.
type SurfaceInfo struct {
	Name   string
	Scaler *Scaler
}

// Font is a text-font resource registered with the host.
type Font struct {
	Name string
}

// SurfaceSpec describes the overlay surface to create.
type SurfaceSpec struct {
	Name         string
	Scaler       Scaler
	SortingOrder int
}

// LabelSpec describes a text label to create on a surface.
type LabelSpec struct {
	Name     string
	Font     Font
	FontSize float64
	Anchor   Anchor
	Position Vec2
	Size     Dimensions
	Text     string
	Visible  bool
	Color    Color
	Style    TextStyle
}

// Substrate is the host render capability the overlay draws through.
type Substrate interface {
	// Surfaces lists the surfaces the host currently has instantiated.
	Surfaces() []SurfaceInfo
	// Fonts lists the globally registered text fonts.
	Fonts() []Font
	// CreateSurface creates a drawable surface that outlives host scenes.
	CreateSurface(spec SurfaceSpec) (Surface, error)
}

// Surface is a drawable overlay surface.
type Surface interface {
	Name() string
	NewLabel(spec LabelSpec) (Label, error)
	// ScreenToLocal converts a screen point into the surface's reference
	// space, with the origin at the top-left and y growing upward.
	ScreenToLocal(screen Vec2) Vec2
	SetActive(active bool)
}

// Label is a text primitive on a Surface.
type Label interface {
	SetText(text string)
	Text() string
	SetVisible(visible bool)
	Visible() bool
	SetPosition(p Vec2)
	Position() Vec2
	SetColorState(state ColorState)
}

package graphics

// Align flags control text anchoring for Canvas.Text.
type Align int

const (
	AlignLeft     Align = 1 << 0
	AlignCenter   Align = 1 << 1
	AlignRight    Align = 1 << 2
	AlignTop      Align = 1 << 3
	AlignMiddle   Align = 1 << 4
	AlignBottom   Align = 1 << 5
	AlignBaseline Align = 1 << 6
)

// Winding selects whether a sub-path is solid or a hole.
type Winding int

const (
	WindingSolid Winding = iota
	WindingHole
)

// ImageHandle identifies an image owned by the rendering backend.
// The core never creates or frees images; it only passes handles through.
type ImageHandle int

// PaintKind identifies the kind of paint produced by a gradient or pattern.
type PaintKind int

const (
	PaintLinearGradient PaintKind = iota
	PaintBoxGradient
	PaintImagePattern
)

// Paint describes a gradient or image fill. It is a plain value; backends
// translate it into their own representation.
type Paint struct {
	Kind    PaintKind
	X, Y    float64
	W, H    float64
	Radius  float64
	Feather float64
	Angle   float64
	Inner   Color
	Outer   Color
	Image   ImageHandle
	Alpha   float64
}

// Canvas is the immediate-mode drawing context that widgets draw into.
// Implementations are stateful: transforms, scissors and the current path
// persist between calls until Restore or BeginPath.
type Canvas interface {
	// Save pushes the current transform, scissor and style state.
	Save()

	// Restore pops the most recent saved state.
	Restore()

	// Translate moves the origin by (dx, dy).
	Translate(dx, dy float64)

	// Scissor replaces the clip with the given rectangle in current coordinates.
	Scissor(x, y, w, h float64)

	// IntersectScissor intersects the current clip with the given rectangle.
	IntersectScissor(x, y, w, h float64)

	// ResetScissor removes clipping.
	ResetScissor()

	// GlobalAlpha sets the transparency applied to all subsequent drawing.
	GlobalAlpha(alpha float64)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Rect(x, y, w, h float64)
	RoundedRect(x, y, w, h, r float64)
	Circle(cx, cy, r float64)
	PathWinding(w Winding)

	FillColor(c Color)
	FillPaint(p Paint)
	Fill()
	StrokeColor(c Color)
	StrokeWidth(w float64)
	Stroke()

	LinearGradient(sx, sy, ex, ey float64, inner, outer Color) Paint
	BoxGradient(x, y, w, h, r, feather float64, inner, outer Color) Paint
	ImagePattern(ox, oy, ex, ey, angle float64, image ImageHandle, alpha float64) Paint

	FontSize(size float64)
	FontFace(name string)
	FontBlur(blur float64)
	TextAlign(align Align)

	// Text draws s at (x, y) and returns the horizontal advance.
	Text(x, y float64, s string) float64

	// TextBounds measures s as if drawn at (x, y). It returns the horizontal
	// advance and the bounding box [xmin, ymin, xmax, ymax].
	TextBounds(x, y float64, s string) (advance float64, bounds [4]float64)
}

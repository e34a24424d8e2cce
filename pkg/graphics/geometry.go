package graphics

import "math"

// epsilon is the tolerance for floating-point comparisons.
const epsilon = 0.0001

// Point is an integer 2D vector in logical pixels. Widget positions and
// sizes are Points.
type Point struct {
	X int
	Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Div returns p with both components divided by k (truncating).
func (p Point) Div(k int) Point {
	return Point{X: p.X / k, Y: p.Y / k}
}

// Max returns the component-wise maximum of p and q.
func (p Point) Max(q Point) Point {
	return Point{X: max(p.X, q.X), Y: max(p.Y, q.Y)}
}

// Min returns the component-wise minimum of p and q.
func (p Point) Min(q Point) Point {
	return Point{X: min(p.X, q.X), Y: min(p.Y, q.Y)}
}

// IsZero reports whether both components are zero.
func (p Point) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// Axis returns the component along axis 0 (X) or 1 (Y).
func (p Point) Axis(axis int) int {
	if axis == 0 {
		return p.X
	}
	return p.Y
}

// SetAxis sets the component along axis 0 (X) or 1 (Y).
func (p *Point) SetAxis(axis, v int) {
	if axis == 0 {
		p.X = v
	} else {
		p.Y = v
	}
}

// Override returns p with every non-zero component of fixed replacing
// the corresponding component of p. Zero means "unset".
func (p Point) Override(fixed Point) Point {
	if fixed.X != 0 {
		p.X = fixed.X
	}
	if fixed.Y != 0 {
		p.Y = fixed.Y
	}
	return p
}

// Vec returns p converted to a float vector.
func (p Point) Vec() Vec {
	return Vec{X: float64(p.X), Y: float64(p.Y)}
}

// Vec is a float 2D vector, used for scroll deltas and sub-pixel geometry.
type Vec struct {
	X float64
	Y float64
}

// Add returns v+w.
func (v Vec) Add(w Vec) Vec {
	return Vec{X: v.X + w.X, Y: v.Y + w.Y}
}

// Scale returns v scaled by k.
func (v Vec) Scale(k float64) Vec {
	return Vec{X: v.X * k, Y: v.Y * k}
}

// Point returns v truncated to integer components.
func (v Vec) Point() Point {
	return Point{X: int(v.X), Y: int(v.Y)}
}

// Equal reports whether v and w are equal within epsilon.
func (v Vec) Equal(w Vec) bool {
	return floatEqual(v.X, w.X) && floatEqual(v.Y, w.Y)
}

// Rect is a half-open integer rectangle [Min, Max).
type Rect struct {
	Min Point
	Max Point
}

// RectAt constructs a Rect from an origin and a size.
func RectAt(origin, size Point) Rect {
	return Rect{Min: origin, Max: origin.Add(size)}
}

// Size returns the width and height of the rectangle.
func (r Rect) Size() Point {
	return r.Max.Sub(r.Min)
}

// Dx returns the width of the rectangle.
func (r Rect) Dx() int {
	return r.Max.X - r.Min.X
}

// Dy returns the height of the rectangle.
func (r Rect) Dy() int {
	return r.Max.Y - r.Min.Y
}

// Contains reports whether p lies within [Min, Max).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.Y >= r.Min.Y && p.X < r.Max.X && p.Y < r.Max.Y
}

// Empty reports whether the rectangle has zero or negative area.
func (r Rect) Empty() bool {
	return r.Max.X <= r.Min.X || r.Max.Y <= r.Min.Y
}

// Translate returns r moved by d.
func (r Rect) Translate(d Point) Rect {
	return Rect{Min: r.Min.Add(d), Max: r.Max.Add(d)}
}

// Intersect returns the intersection of r and s.
// Returns the zero Rect if they don't overlap.
func (r Rect) Intersect(s Rect) Rect {
	out := Rect{Min: r.Min.Max(s.Min), Max: r.Max.Min(s.Max)}
	if out.Empty() {
		return Rect{}
	}
	return out
}

// Union returns the smallest rect containing both r and s.
// An empty operand is ignored.
func (r Rect) Union(s Rect) Rect {
	if r.Empty() {
		return s
	}
	if s.Empty() {
		return r
	}
	return Rect{Min: r.Min.Min(s.Min), Max: r.Max.Max(s.Max)}
}

// floatEqual returns true if two float64 values are approximately equal.
func floatEqual(a, b float64) bool {
	return math.Abs(a-b) <= epsilon
}

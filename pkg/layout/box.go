package layout

import (
	"github.com/go-drift/trellis/pkg/graphics"
	"github.com/go-drift/trellis/pkg/widget"
)

// BoxLayout stacks children along one axis with a fixed spacing and aligns
// them on the other axis.
type BoxLayout struct {
	Orientation Orientation
	Alignment   Alignment
	Margin      int
	Spacing     int
}

// NewBoxLayout returns a box layout with the given parameters.
func NewBoxLayout(o Orientation, a Alignment, margin, spacing int) *BoxLayout {
	return &BoxLayout{Orientation: o, Alignment: a, Margin: margin, Spacing: spacing}
}

// header returns the extra space a header takes in a vertical box (added to
// the stacking axis) and in a horizontal box (an offset above the row).
func (l *BoxLayout) header(w widget.Widget) (stack, yOffset int) {
	extra := headerExtra(w, l.Margin)
	if extra == 0 {
		return 0, 0
	}
	if l.Orientation == Vertical {
		return extra, 0
	}
	return 0, w.(widget.HeaderProvider).HeaderHeight()
}

// PreferredSize sums the children along the stacking axis, plus spacing and
// margins, and takes the largest child on the other axis.
func (l *BoxLayout) PreferredSize(ctx graphics.Canvas, w widget.Widget) graphics.Point {
	axis1, axis2 := l.Orientation.axes()
	size := graphics.Pt(2*l.Margin, 2*l.Margin)
	stack, yOffset := l.header(w)
	size.Y += stack

	for i, c := range visibleChildren(w) {
		if i > 0 {
			size.SetAxis(axis1, size.Axis(axis1)+l.Spacing)
		}
		cs := targetSize(ctx, c)
		size.SetAxis(axis1, size.Axis(axis1)+cs.Axis(axis1))
		size.SetAxis(axis2, max(size.Axis(axis2), cs.Axis(axis2)+2*l.Margin))
	}
	size.Y += yOffset
	return size
}

// PerformLayout places the children one after another along the stacking
// axis.
func (l *BoxLayout) PerformLayout(ctx graphics.Canvas, w widget.Widget) {
	axis1, axis2 := l.Orientation.axes()
	container := containerSize(w)
	stack, yOffset := l.header(w)
	container.Y -= yOffset
	position := l.Margin + stack

	for i, c := range visibleChildren(w) {
		if i > 0 {
			position += l.Spacing
		}
		n := c.Node()
		cs := targetSize(ctx, c)

		pos := graphics.Pt(0, yOffset)
		pos.SetAxis(axis1, position)
		offset, length := align(l.Alignment, container.Axis(axis2)-2*l.Margin, cs.Axis(axis2), n.FixedSize().Axis(axis2))
		pos.SetAxis(axis2, pos.Axis(axis2)+l.Margin+offset)
		cs.SetAxis(axis2, length)

		n.SetPosition(pos)
		n.SetSize(cs)
		c.PerformLayout(ctx)
		position += cs.Axis(axis1)
	}
}

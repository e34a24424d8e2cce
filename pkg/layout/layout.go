// Package layout provides the layout strategies attached to widgets.
//
// A layout runs in two passes. PreferredSize asks every visible child for
// its preferred size (a non-zero fixed size wins on its axis) and combines
// them with the layout's own parameters. PerformLayout assigns each visible
// child a position and size and then lays out the child, so nested
// containers solve their own children with the size just assigned.
//
// Layouts hold only parameters, never widgets' geometry, so running
// PerformLayout twice without changes in between produces identical
// results.
package layout

import (
	"github.com/go-drift/trellis/pkg/graphics"
	"github.com/go-drift/trellis/pkg/widget"
)

// Orientation selects the stacking axis.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// axes returns the major and minor axis indices for o.
func (o Orientation) axes() (int, int) {
	a := int(o)
	return a, (a + 1) % 2
}

// Alignment positions a child within the space available to it.
type Alignment int

const (
	Minimum Alignment = iota
	Middle
	Maximum
	Fill
)

func (a Alignment) String() string {
	switch a {
	case Minimum:
		return "minimum"
	case Middle:
		return "middle"
	case Maximum:
		return "maximum"
	case Fill:
		return "fill"
	default:
		return "unknown"
	}
}

// targetSize is the child's preferred size with its fixed size applied.
func targetSize(ctx graphics.Canvas, c widget.Widget) graphics.Point {
	return c.PreferredSize(ctx).Override(c.Node().FixedSize())
}

// containerSize is the widget's current size with its fixed size applied.
func containerSize(w widget.Widget) graphics.Point {
	n := w.Node()
	return n.Size().Override(n.FixedSize())
}

// headerExtra returns the vertical space a header adds above the content,
// or 0 when w has no header.
func headerExtra(w widget.Widget, margin int) int {
	hp, ok := w.(widget.HeaderProvider)
	if !ok {
		return 0
	}
	h := hp.HeaderHeight()
	if h <= 0 {
		return 0
	}
	return h - margin/2
}

// visibleChildren returns the children that take part in layout.
func visibleChildren(w widget.Widget) []widget.Widget {
	var out []widget.Widget
	for _, c := range w.Node().Children() {
		if c.Node().Visible() {
			out = append(out, c)
		}
	}
	return out
}

// distribute adds extra to the entries of sizes in proportion to weights.
// Cumulative rounding makes the added amounts sum to exactly extra.
func distribute(sizes []int, weights []float64, extra int) {
	var total float64
	for _, w := range weights {
		total += w
	}
	if total <= 0 || extra == 0 {
		return
	}
	var acc float64
	given := 0
	for i, w := range weights {
		acc += w
		target := int(float64(extra)*acc/total + 0.5)
		sizes[i] += target - given
		given = target
	}
}

// align returns the offset and size of an item along one axis inside a cell
// of length cell, given the item's target length and fixed length.
func align(a Alignment, cell, target, fixed int) (offset, size int) {
	switch a {
	case Middle:
		return (cell - target) / 2, target
	case Maximum:
		return cell - target, target
	case Fill:
		if fixed != 0 {
			return 0, fixed
		}
		return 0, cell
	default:
		return 0, target
	}
}

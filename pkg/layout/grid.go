package layout

import (
	"github.com/go-drift/trellis/pkg/graphics"
	"github.com/go-drift/trellis/pkg/widget"
)

// GridLayout arranges children in a table with a fixed number of columns
// (Horizontal) or rows (Vertical). Each column is as wide as its widest
// child and each row as tall as its tallest; leftover container space is
// shared evenly.
type GridLayout struct {
	Orientation Orientation
	// Resolution is the number of cells along the major axis.
	Resolution int
	Margin     int
	Spacing    graphics.Point
	// DefaultAlignment applies per axis when no per-index alignment is set.
	DefaultAlignment [2]Alignment
	// Alignments optionally overrides the alignment per column (index 0)
	// and per row (index 1).
	Alignments [2][]Alignment
}

// NewGridLayout returns a grid with the given orientation and resolution,
// middle-aligned horizontally and filled vertically.
func NewGridLayout(o Orientation, resolution int, margin, spacing int) *GridLayout {
	return &GridLayout{
		Orientation:      o,
		Resolution:       resolution,
		Margin:           margin,
		Spacing:          graphics.Pt(spacing, spacing),
		DefaultAlignment: [2]Alignment{Middle, Fill},
	}
}

// SetColAlignment sets per-column alignments.
func (l *GridLayout) SetColAlignment(a ...Alignment) {
	l.Alignments[0] = a
}

// SetRowAlignment sets per-row alignments.
func (l *GridLayout) SetRowAlignment(a ...Alignment) {
	l.Alignments[1] = a
}

// AlignmentAt returns the alignment for item index along axis.
func (l *GridLayout) AlignmentAt(axis, item int) Alignment {
	if item < len(l.Alignments[axis]) {
		return l.Alignments[axis][item]
	}
	return l.DefaultAlignment[axis]
}

func (l *GridLayout) resolution() int {
	return max(l.Resolution, 1)
}

// computeLayout returns the minimum column widths and row heights.
func (l *GridLayout) computeLayout(ctx graphics.Canvas, children []widget.Widget) [2][]int {
	axis1, axis2 := l.Orientation.axes()
	res := l.resolution()
	var grid [2][]int
	grid[axis1] = make([]int, res)
	grid[axis2] = make([]int, (len(children)+res-1)/res)
	for i, c := range children {
		i1, i2 := i%res, i/res
		ts := targetSize(ctx, c)
		grid[axis1][i1] = max(grid[axis1][i1], ts.Axis(axis1))
		grid[axis2][i2] = max(grid[axis2][i2], ts.Axis(axis2))
	}
	return grid
}

// PreferredSize returns the sum of the minimum columns and rows plus
// spacing and margins.
func (l *GridLayout) PreferredSize(ctx graphics.Canvas, w widget.Widget) graphics.Point {
	grid := l.computeLayout(ctx, visibleChildren(w))
	var size graphics.Point
	for axis := 0; axis < 2; axis++ {
		total := 2 * l.Margin
		for _, s := range grid[axis] {
			total += s
		}
		total += max(len(grid[axis])-1, 0) * l.Spacing.Axis(axis)
		size.SetAxis(axis, total)
	}
	size.Y += headerExtra(w, l.Margin)
	return size
}

// PerformLayout stretches the grid to the container and places each child
// in its cell.
func (l *GridLayout) PerformLayout(ctx graphics.Canvas, w widget.Widget) {
	children := visibleChildren(w)
	grid := l.computeLayout(ctx, children)
	container := containerSize(w)
	extra := graphics.Pt(0, headerExtra(w, l.Margin))

	for axis := 0; axis < 2; axis++ {
		dim := len(grid[axis])
		if dim == 0 {
			continue
		}
		gridSize := 2*l.Margin + extra.Axis(axis) + (dim-1)*l.Spacing.Axis(axis)
		for _, s := range grid[axis] {
			gridSize += s
		}
		if gap := container.Axis(axis) - gridSize; gap > 0 {
			weights := make([]float64, dim)
			for i := range weights {
				weights[i] = 1
			}
			distribute(grid[axis], weights, gap)
		}
	}

	axis1, axis2 := l.Orientation.axes()
	res := l.resolution()
	start := graphics.Pt(l.Margin, l.Margin).Add(extra)
	pos := start
	for i, c := range children {
		i1, i2 := i%res, i/res
		if i1 == 0 && i > 0 {
			pos.SetAxis(axis2, pos.Axis(axis2)+grid[axis2][i2-1]+l.Spacing.Axis(axis2))
		}
		if i1 == 0 {
			pos.SetAxis(axis1, start.Axis(axis1))
		}

		n := c.Node()
		ts := targetSize(ctx, c)
		item := pos
		for j, index := range [2]int{i1, i2} {
			axis := (axis1 + j) % 2
			offset, length := align(l.AlignmentAt(axis, index), grid[axis][index], ts.Axis(axis), n.FixedSize().Axis(axis))
			item.SetAxis(axis, item.Axis(axis)+offset)
			ts.SetAxis(axis, length)
		}
		n.SetPosition(item)
		n.SetSize(ts)
		c.PerformLayout(ctx)
		pos.SetAxis(axis1, pos.Axis(axis1)+grid[axis1][i1]+l.Spacing.Axis(axis1))
	}
}

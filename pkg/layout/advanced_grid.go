package layout

import (
	"fmt"

	"github.com/go-drift/trellis/pkg/graphics"
	"github.com/go-drift/trellis/pkg/widget"
)

// Anchor places a widget in an AdvancedGridLayout: the top-left cell, the
// number of cells spanned and the alignment inside the spanned rectangle,
// each indexed by axis (0 = column, 1 = row).
type Anchor struct {
	Pos   [2]int
	Size  [2]int
	Align [2]Alignment
}

// CellAnchor returns a single-cell anchor at column x, row y. Alignment
// defaults to Fill on both axes; one value applies to both axes, two set
// horizontal and vertical.
func CellAnchor(x, y int, align ...Alignment) Anchor {
	return SpanAnchor(x, y, 1, 1, align...)
}

// SpanAnchor returns an anchor spanning w columns and h rows.
func SpanAnchor(x, y, w, h int, align ...Alignment) Anchor {
	a := Anchor{Pos: [2]int{x, y}, Size: [2]int{w, h}, Align: [2]Alignment{Fill, Fill}}
	switch len(align) {
	case 0:
	case 1:
		a.Align = [2]Alignment{align[0], align[0]}
	default:
		a.Align = [2]Alignment{align[0], align[1]}
	}
	return a
}

func (a Anchor) String() string {
	return fmt.Sprintf("Anchor[pos=(%d,%d), size=(%d,%d), align=(%s,%s)]",
		a.Pos[0], a.Pos[1], a.Size[0], a.Size[1], a.Align[0], a.Align[1])
}

// clamp fits the anchor into a grid of dims cells, keeping at least one
// cell on each axis.
func (a Anchor) clamp(dims [2]int) Anchor {
	for axis := 0; axis < 2; axis++ {
		a.Pos[axis] = min(max(a.Pos[axis], 0), dims[axis]-1)
		a.Size[axis] = min(max(a.Size[axis], 1), dims[axis]-a.Pos[axis])
	}
	return a
}

// AdvancedGridLayout is a table with explicit column widths and row
// heights. A zero entry is sized to the widest (tallest) single-cell child
// placed in it. Stretch factors share leftover container space among
// columns and rows. Children are placed by Anchor; a child with no anchor
// takes the next free cell in row-major order, with extra rows added below
// the declared ones as needed.
type AdvancedGridLayout struct {
	cols, rows             []int
	colStretch, rowStretch []float64
	Margin                 int
	anchors                map[widget.Widget]Anchor
}

// NewAdvancedGridLayout returns a grid with the given column widths and row
// heights.
func NewAdvancedGridLayout(cols, rows []int, margin int) *AdvancedGridLayout {
	return &AdvancedGridLayout{
		cols:       append([]int(nil), cols...),
		rows:       append([]int(nil), rows...),
		colStretch: make([]float64, len(cols)),
		rowStretch: make([]float64, len(rows)),
		Margin:     margin,
		anchors:    make(map[widget.Widget]Anchor),
	}
}

func (l *AdvancedGridLayout) ColCount() int { return len(l.cols) }
func (l *AdvancedGridLayout) RowCount() int { return len(l.rows) }

// AppendRow adds a row of the given height and stretch factor.
func (l *AdvancedGridLayout) AppendRow(size int, stretch float64) {
	l.rows = append(l.rows, size)
	l.rowStretch = append(l.rowStretch, stretch)
}

// AppendCol adds a column of the given width and stretch factor.
func (l *AdvancedGridLayout) AppendCol(size int, stretch float64) {
	l.cols = append(l.cols, size)
	l.colStretch = append(l.colStretch, stretch)
}

// SetColStretch sets the stretch factor of column index. Out-of-range
// indices are ignored.
func (l *AdvancedGridLayout) SetColStretch(index int, stretch float64) {
	if index >= 0 && index < len(l.colStretch) {
		l.colStretch[index] = stretch
	}
}

// SetRowStretch sets the stretch factor of row index. Out-of-range indices
// are ignored.
func (l *AdvancedGridLayout) SetRowStretch(index int, stretch float64) {
	if index >= 0 && index < len(l.rowStretch) {
		l.rowStretch[index] = stretch
	}
}

// SetAnchor places w. Entries for widgets that are no longer children are
// ignored by layout.
func (l *AdvancedGridLayout) SetAnchor(w widget.Widget, a Anchor) {
	l.anchors[w] = a
}

// Anchor returns the explicit anchor of w.
func (l *AdvancedGridLayout) Anchor(w widget.Widget) (Anchor, bool) {
	a, ok := l.anchors[w]
	return a, ok
}

// RemoveAnchor forgets the anchor of w.
func (l *AdvancedGridLayout) RemoveAnchor(w widget.Widget) {
	delete(l.anchors, w)
}

// placement is the resolved grid for one layout computation.
type placement struct {
	sizes   [2][]int
	stretch [2][]float64
	items   []widget.Widget
	anchors []Anchor
}

// resolve assigns every visible child an anchor within an effective grid:
// the declared columns and rows, plus implicit zero-height rows for
// children without an anchor.
func (l *AdvancedGridLayout) resolve(w widget.Widget) *placement {
	p := &placement{
		sizes:   [2][]int{append([]int(nil), l.cols...), append([]int(nil), l.rows...)},
		stretch: [2][]float64{append([]float64(nil), l.colStretch...), append([]float64(nil), l.rowStretch...)},
	}
	for axis := 0; axis < 2; axis++ {
		if len(p.sizes[axis]) == 0 {
			p.sizes[axis] = []int{0}
			p.stretch[axis] = []float64{0}
		}
	}
	dims := [2]int{len(p.sizes[0]), len(p.sizes[1])}

	children := visibleChildren(w)
	p.items = children
	p.anchors = make([]Anchor, len(children))

	occupied := make(map[[2]int]bool)
	occupy := func(a Anchor) {
		for x := a.Pos[0]; x < a.Pos[0]+a.Size[0]; x++ {
			for y := a.Pos[1]; y < a.Pos[1]+a.Size[1]; y++ {
				occupied[[2]int{x, y}] = true
			}
		}
	}
	var free []int
	for i, c := range children {
		if a, ok := l.anchors[c]; ok {
			p.anchors[i] = a.clamp(dims)
			occupy(p.anchors[i])
		} else {
			free = append(free, i)
		}
	}

	cell := 0
	for _, i := range free {
		for occupied[[2]int{cell % dims[0], cell / dims[0]}] {
			cell++
		}
		x, y := cell%dims[0], cell/dims[0]
		for y >= len(p.sizes[1]) {
			p.sizes[1] = append(p.sizes[1], 0)
			p.stretch[1] = append(p.stretch[1], 0)
		}
		p.anchors[i] = CellAnchor(x, y)
		occupied[[2]int{x, y}] = true
		cell++
	}
	return p
}

// computeLayout resolves the final column widths and row heights for a
// container of the given inner size.
func (l *AdvancedGridLayout) computeLayout(ctx graphics.Canvas, w widget.Widget) *placement {
	p := l.resolve(w)
	inner := containerSize(w).Sub(graphics.Pt(2*l.Margin, 2*l.Margin+headerExtra(w, l.Margin)))

	for axis := 0; axis < 2; axis++ {
		declared := p.sizes[axis]
		grid := append([]int(nil), declared...)
		stretch := p.stretch[axis]

		// Single-cell children first, so spanning children only add what
		// their cells do not already provide.
		for phase := 0; phase < 2; phase++ {
			for i, c := range p.items {
				a := p.anchors[i]
				if (a.Size[axis] == 1) != (phase == 0) {
					continue
				}
				target := targetSize(ctx, c).Axis(axis)
				current := 0
				var total float64
				for k := a.Pos[axis]; k < a.Pos[axis]+a.Size[axis]; k++ {
					if declared[k] == 0 && a.Size[axis] == 1 {
						grid[k] = max(grid[k], target)
					}
					current += grid[k]
					total += stretch[k]
				}
				if target <= current {
					continue
				}
				span := a.Pos[axis] + a.Size[axis]
				weights := stretch[a.Pos[axis]:span]
				if total == 0 {
					// Nothing stretches: share the deficit among the
					// unsized cells, or all of them when every cell is sized.
					weights = make([]float64, a.Size[axis])
					unsized := false
					for k := range weights {
						if declared[a.Pos[axis]+k] == 0 {
							weights[k] = 1
							unsized = true
						}
					}
					if !unsized {
						for k := range weights {
							weights[k] = 1
						}
					}
				}
				distribute(grid[a.Pos[axis]:span], weights, target-current)
			}
		}

		current := 0
		for _, s := range grid {
			current += s
		}
		if leftover := inner.Axis(axis) - current; leftover > 0 {
			distribute(grid, stretch, leftover)
		}
		p.sizes[axis] = grid
	}
	return p
}

// PreferredSize returns the resolved grid size plus margins.
func (l *AdvancedGridLayout) PreferredSize(ctx graphics.Canvas, w widget.Widget) graphics.Point {
	p := l.computeLayout(ctx, w)
	var size graphics.Point
	for axis := 0; axis < 2; axis++ {
		total := 2 * l.Margin
		for _, s := range p.sizes[axis] {
			total += s
		}
		size.SetAxis(axis, total)
	}
	size.Y += headerExtra(w, l.Margin)
	return size
}

// PerformLayout places each child in the union of its spanned cells,
// aligned per its anchor.
func (l *AdvancedGridLayout) PerformLayout(ctx graphics.Canvas, w widget.Widget) {
	p := l.computeLayout(ctx, w)

	// Cell edges: offsets[axis][k] is where cell k starts.
	var offsets [2][]int
	start := [2]int{l.Margin, l.Margin + headerExtra(w, l.Margin)}
	for axis := 0; axis < 2; axis++ {
		offsets[axis] = make([]int, len(p.sizes[axis])+1)
		offsets[axis][0] = start[axis]
		for k, s := range p.sizes[axis] {
			offsets[axis][k+1] = offsets[axis][k] + s
		}
	}

	for i, c := range p.items {
		a := p.anchors[i]
		n := c.Node()
		ts := targetSize(ctx, c)
		var pos, size graphics.Point
		for axis := 0; axis < 2; axis++ {
			cellStart := offsets[axis][a.Pos[axis]]
			cell := offsets[axis][a.Pos[axis]+a.Size[axis]] - cellStart
			offset, length := align(a.Align[axis], cell, ts.Axis(axis), n.FixedSize().Axis(axis))
			pos.SetAxis(axis, cellStart+offset)
			size.SetAxis(axis, length)
		}
		n.SetPosition(pos)
		n.SetSize(size)
	}
	for _, c := range p.items {
		c.PerformLayout(ctx)
	}
}

// ResolvedSizes returns the column widths and row heights the layout would
// use for w's current size. It is meant for inspection and tests.
func (l *AdvancedGridLayout) ResolvedSizes(ctx graphics.Canvas, w widget.Widget) (cols, rows []int) {
	p := l.computeLayout(ctx, w)
	return p.sizes[0], p.sizes[1]
}

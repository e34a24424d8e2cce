package layout

import (
	"github.com/go-drift/trellis/pkg/graphics"
	"github.com/go-drift/trellis/pkg/widget"
)

// GroupLayout stacks children vertically, full width. Separator children
// (see widget.Separator) start a group: they get GroupSpacing above them
// instead of Spacing, and when their caption is non-empty the following
// children are indented by GroupIndent.
type GroupLayout struct {
	Margin       int
	Spacing      int
	GroupSpacing int
	GroupIndent  int
}

// NewGroupLayout returns a group layout with the usual form spacing.
func NewGroupLayout() *GroupLayout {
	return &GroupLayout{Margin: 15, Spacing: 6, GroupSpacing: 14, GroupIndent: 20}
}

// groupStep walks the children and reports, for each, the vertical gap
// above it and its indent.
func (l *GroupLayout) groupStep(children []widget.Widget, fn func(c widget.Widget, gap, indent int)) {
	indent := false
	for i, c := range children {
		sep, isSep := c.(widget.Separator)
		gap := 0
		if i > 0 {
			gap = l.Spacing
			if isSep {
				gap = l.GroupSpacing
			}
		}
		in := 0
		if indent && !isSep {
			in = l.GroupIndent
		}
		fn(c, gap, in)
		if isSep {
			indent = sep.SeparatorCaption() != ""
		}
	}
}

// PreferredSize returns the stacked height and the widest child, indents
// and margins included.
func (l *GroupLayout) PreferredSize(ctx graphics.Canvas, w widget.Widget) graphics.Point {
	height := l.Margin + headerExtra(w, l.Margin)
	width := 2 * l.Margin
	l.groupStep(visibleChildren(w), func(c widget.Widget, gap, indent int) {
		cs := targetSize(ctx, c)
		height += gap + cs.Y
		width = max(width, cs.X+2*l.Margin+indent)
	})
	return graphics.Pt(width, height+l.Margin)
}

// PerformLayout gives every child the available width minus its indent, or
// its fixed width when it has one, and its preferred height.
func (l *GroupLayout) PerformLayout(ctx graphics.Canvas, w widget.Widget) {
	height := l.Margin + headerExtra(w, l.Margin)
	available := containerSize(w).X - 2*l.Margin
	l.groupStep(visibleChildren(w), func(c widget.Widget, gap, indent int) {
		height += gap
		cs := targetSize(ctx, c)
		n := c.Node()
		n.SetPosition(graphics.Pt(l.Margin+indent, height))
		width := available - indent
		if fw := n.FixedSize().X; fw != 0 {
			width = fw
		}
		n.SetSize(graphics.Pt(width, cs.Y))
		c.PerformLayout(ctx)
		height += cs.Y
	})
}

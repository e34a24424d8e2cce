package testbed

import (
	"github.com/go-drift/trellis/pkg/graphics"
	"github.com/go-drift/trellis/pkg/widget"
)

// LayoutBox is a fixed-size colored box.
type LayoutBox struct {
	widget.Base
	Color graphics.Color
}

// NewLayoutBox creates a box that prefers size.
func NewLayoutBox(parent widget.Widget, size graphics.Point, color graphics.Color) *LayoutBox {
	b := &LayoutBox{Color: color}
	b.Init(b, parent)
	b.SetFixedSize(size)
	b.SetSize(size)
	return b
}

func (b *LayoutBox) PreferredSize(graphics.Canvas) graphics.Point {
	return b.FixedSize()
}

func (b *LayoutBox) Draw(ctx graphics.Canvas) {
	p, s := b.Position(), b.Size()
	ctx.BeginPath()
	ctx.Rect(float64(p.X), float64(p.Y), float64(s.X), float64(s.Y))
	ctx.FillColor(b.Color)
	ctx.Fill()
	b.Base.Draw(ctx)
}

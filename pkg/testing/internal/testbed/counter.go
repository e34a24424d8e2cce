// Package testbed provides small widgets for testing the test harness
// itself.
package testbed

import (
	"strconv"

	"github.com/go-drift/trellis/pkg/graphics"
	"github.com/go-drift/trellis/pkg/widget"
)

// Counter shows a count and increments it on every primary press.
type Counter struct {
	widget.Base
	count int
	onTap func(count int)
}

// NewCounter creates a 60x30 counter.
func NewCounter(parent widget.Widget, initial int, onTap func(int)) *Counter {
	c := &Counter{count: initial, onTap: onTap}
	c.Init(c, parent)
	c.SetSize(graphics.Pt(60, 30))
	return c
}

func (c *Counter) Count() int { return c.count }

// Caption returns the count as text.
func (c *Counter) Caption() string { return strconv.Itoa(c.count) }

func (c *Counter) PreferredSize(graphics.Canvas) graphics.Point {
	return graphics.Pt(60, 30)
}

func (c *Counter) MouseButtonEvent(p graphics.Point, button widget.MouseButton, down bool, mods widget.ModifierKey) bool {
	c.Base.MouseButtonEvent(p, button, down, mods)
	if button != widget.MouseLeft || !down {
		return false
	}
	c.count++
	if c.onTap != nil {
		c.onTap(c.count)
	}
	return true
}

func (c *Counter) Draw(ctx graphics.Canvas) {
	p := c.Position()
	ctx.FillColor(graphics.RGB(255, 255, 255))
	ctx.TextAlign(graphics.AlignCenter | graphics.AlignMiddle)
	ctx.Text(float64(p.X+c.Width()/2), float64(p.Y+c.Height()/2), c.Caption())
}

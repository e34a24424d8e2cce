// Package scroll provides VScrollPanel, a container that shows a vertical
// window onto a single taller child.
package scroll

import (
	"math"

	"github.com/go-drift/trellis/pkg/errors"
	"github.com/go-drift/trellis/pkg/graphics"
	"github.com/go-drift/trellis/pkg/serialize"
	"github.com/go-drift/trellis/pkg/widget"
)

// ScrollbarWidth is the horizontal space reserved for the scrollbar.
const ScrollbarWidth = 12

// VScrollPanel clips its only child to its own bounds and scrolls it
// vertically. The scroll state is a fraction in [0, 1] of the distance the
// child overflows the panel. The child is moved up by that distance, so
// hit-testing and event coordinates account for the scroll without any
// special casing.
//
// Adding a second child is a programming error and panics.
type VScrollPanel struct {
	widget.Base
	scroll     float64
	childPrefH int
}

// New creates a scroll panel attached to parent.
func New(parent widget.Widget) *VScrollPanel {
	v := &VScrollPanel{}
	v.Init(v, parent)
	return v
}

// CheckChild rejects a second child.
func (v *VScrollPanel) CheckChild(index int, w widget.Widget) {
	if v.ChildCount() > 0 {
		errors.Misuse("scroll.VScrollPanel.AddChild", "a scroll panel holds exactly one child")
	}
}

// Scroll returns the scroll fraction.
func (v *VScrollPanel) Scroll() float64 { return v.scroll }

// SetScroll sets the scroll fraction, clamped to [0, 1].
func (v *VScrollPanel) SetScroll(f float64) {
	if math.IsNaN(f) {
		f = 0
	}
	v.scroll = min(1, max(0, f))
	v.place()
}

// overflow is how far the child extends below the panel.
func (v *VScrollPanel) overflow() int {
	return max(0, v.childPrefH-v.Height())
}

// Shift returns the number of pixels the child is scrolled up by.
func (v *VScrollPanel) Shift() int {
	return int(v.scroll * float64(v.overflow()))
}

func (v *VScrollPanel) child() widget.Widget {
	return v.ChildAt(0)
}

func (v *VScrollPanel) place() {
	if c := v.child(); c != nil {
		c.Node().SetPosition(graphics.Pt(0, -v.Shift()))
	}
}

// thumbHeight is the scrollbar thumb length.
func (v *VScrollPanel) thumbHeight() float64 {
	h := float64(v.Height())
	if v.childPrefH <= 0 {
		return h
	}
	return h * math.Min(1, h/float64(v.childPrefH))
}

// PreferredSize is the child's preferred size plus the scrollbar.
func (v *VScrollPanel) PreferredSize(ctx graphics.Canvas) graphics.Point {
	c := v.child()
	if c == nil {
		return graphics.Point{}
	}
	return c.PreferredSize(ctx).Add(graphics.Pt(ScrollbarWidth, 0))
}

// PerformLayout gives the child the panel's width, less the scrollbar, and
// its full preferred height.
func (v *VScrollPanel) PerformLayout(ctx graphics.Canvas) {
	c := v.child()
	if c == nil {
		return
	}
	v.childPrefH = c.PreferredSize(ctx).Y
	c.Node().SetSize(graphics.Pt(v.Width()-ScrollbarWidth, v.childPrefH))
	v.place()
	c.PerformLayout(ctx)
}

func (v *VScrollPanel) scrollBy(pixels float64) {
	track := float64(v.Height()) - 8 - v.thumbHeight()
	if track <= 0 || v.overflow() == 0 {
		return
	}
	v.SetScroll(v.scroll + pixels/track)
}

// MouseDragEvent scrolls by dragging the scrollbar thumb.
func (v *VScrollPanel) MouseDragEvent(p, rel graphics.Point, buttons int, mods widget.ModifierKey) bool {
	if v.child() == nil {
		return false
	}
	v.scrollBy(float64(rel.Y))
	return true
}

// ScrollEvent offers the scroll to the content first, then scrolls the
// panel by a twentieth of its height per unit.
func (v *VScrollPanel) ScrollEvent(p graphics.Point, rel graphics.Vec) bool {
	if v.child() == nil {
		return false
	}
	if v.Base.ScrollEvent(p, rel) {
		return true
	}
	v.scrollBy(-rel.Y * float64(v.Height()) / 20)
	return true
}

// Draw clips the child to the panel and paints the scrollbar.
func (v *VScrollPanel) Draw(ctx graphics.Canvas) {
	c := v.child()
	if c == nil {
		return
	}
	if h := c.PreferredSize(ctx).Y; h != v.childPrefH {
		v.childPrefH = h
		v.place()
	}
	x, y := float64(v.Position().X), float64(v.Position().Y)
	w, h := float64(v.Width()), float64(v.Height())

	ctx.Save()
	ctx.Translate(x, y)
	ctx.Scissor(0, 0, w, h)
	if c.Node().Visible() {
		c.Draw(ctx)
	}
	ctx.Restore()

	thumb := v.thumbHeight()
	track := ctx.BoxGradient(x+w-ScrollbarWidth+1, y+4+1, 8, h-8, 3, 4, graphics.Gray(0, 32), graphics.Gray(0, 92))
	ctx.BeginPath()
	ctx.RoundedRect(x+w-ScrollbarWidth, y+4, 8, h-8, 3)
	ctx.FillPaint(track)
	ctx.Fill()

	top := y + 4 + (h-8-thumb)*v.scroll
	knob := ctx.BoxGradient(x+w-ScrollbarWidth-1, top-1, 8, thumb, 3, 4, graphics.Gray(220, 100), graphics.Gray(128, 100))
	ctx.BeginPath()
	ctx.RoundedRect(x+w-ScrollbarWidth+1, top+1, 6, thumb-2, 2)
	ctx.FillPaint(knob)
	ctx.Fill()
}

func (v *VScrollPanel) Save(r *serialize.Record) {
	v.Base.Save(r)
	r.SetFloat("scroll", v.scroll)
}

func (v *VScrollPanel) Load(r *serialize.Record) error {
	if err := v.Base.Load(r); err != nil {
		return err
	}
	s := v.scroll
	if err := r.LoadFloat("scroll", &s); err != nil {
		return err
	}
	v.SetScroll(s)
	return nil
}

package window

import (
	"fmt"

	"github.com/go-drift/trellis/pkg/errors"
	"github.com/go-drift/trellis/pkg/graphics"
	"github.com/go-drift/trellis/pkg/serialize"
	"github.com/go-drift/trellis/pkg/widget"
)

// Side is the side of the anchor a popup opens on.
type Side int

const (
	SideRight Side = iota
	SideLeft
	SideTop
	SideBottom
)

func (s Side) String() string {
	switch s {
	case SideRight:
		return "right"
	case SideLeft:
		return "left"
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

const (
	arrowSize = 15

	// MaxAnchorDepth bounds the chain of popups anchored inside popups.
	MaxAnchorDepth = 32
)

// Popup is a window attached to an anchor widget. Its position is not
// authoritative: every layout and draw recomputes it from the anchor's
// current absolute position plus the anchor offset, so a popup follows its
// anchor when the anchor moves. A popup is never visible while its anchor
// is hidden.
type Popup struct {
	Window

	anchor       widget.Widget
	anchorPos    graphics.Point
	anchorOffset int
	side         Side
	showArrow    bool
	disposable   bool
	refreshing   bool
}

// NewPopup creates a popup attached to parent, normally the screen, and
// anchored to anchor. Popups of popups are allowed.
func NewPopup(parent, anchor widget.Widget) *Popup {
	p := &Popup{anchor: anchor, showArrow: true}
	p.Init(p, parent)
	return p
}

// Anchor returns the widget the popup is attached to.
func (p *Popup) Anchor() widget.Widget { return p.anchor }
func (p *Popup) SetAnchor(w widget.Widget) { p.anchor = w }

// AnchorPos is the arrow tip position relative to the anchor's absolute
// position.
func (p *Popup) AnchorPos() graphics.Point { return p.anchorPos }
func (p *Popup) SetAnchorPos(pos graphics.Point) { p.anchorPos = pos }

// AnchorOffset moves the arrow along the popup's edge. Zero selects the
// default: 30 pixels from the top for side popups, the middle for top and
// bottom popups.
func (p *Popup) AnchorOffset() int { return p.anchorOffset }
func (p *Popup) SetAnchorOffset(o int) { p.anchorOffset = o }

func (p *Popup) Side() Side { return p.side }
func (p *Popup) SetSide(s Side) { p.side = s }
func (p *Popup) ShowArrow() bool { return p.showArrow }
func (p *Popup) SetShowArrow(v bool) { p.showArrow = v }

// Disposable popups remove themselves when closed.
func (p *Popup) Disposable() bool { return p.disposable }
func (p *Popup) SetDisposable(v bool) { p.disposable = v }

// ParentWindow returns the window containing the anchor. The screen keeps
// the popup above it.
func (p *Popup) ParentWindow() widget.WindowRole {
	if p.anchor == nil {
		return nil
	}
	return p.anchor.Node().Window()
}

// Close hides the popup, or disposes of it when it is disposable.
func (p *Popup) Close() {
	p.SetVisible(false)
	if p.disposable {
		p.Dispose()
	}
}

func (p *Popup) actualAnchorOffset() int {
	if p.side == SideLeft || p.side == SideRight {
		if p.anchorOffset > 0 {
			return p.anchorOffset
		}
		return 30
	}
	return p.Width()/2 + p.anchorOffset
}

// RefreshRelativePlacement recomputes the position from the anchor. The
// anchor's own window is refreshed first so nested popups settle in order.
func (p *Popup) RefreshRelativePlacement() {
	p.refresh(0)
}

func (p *Popup) refresh(depth int) {
	const op = "window.Popup.RefreshRelativePlacement"
	if p.anchor == nil {
		return
	}
	fail := func(format string, args ...any) {
		p.SetVisible(false)
		errors.Report(&errors.TrellisError{
			Op:     op,
			Kind:   errors.KindLayout,
			Err:    fmt.Errorf(format, args...),
			Widget: p.ID(),
		})
	}
	if p.refreshing {
		fail("anchor chain forms a cycle")
		return
	}
	if depth > MaxAnchorDepth {
		fail("anchor chain deeper than %d", MaxAnchorDepth)
		return
	}
	an := p.anchor.Node()
	if an.Disposed() || an.Root() != p.Root() {
		fail("anchor is not attached to the popup's tree")
		return
	}

	p.refreshing = true
	defer func() { p.refreshing = false }()

	switch pw := p.ParentWindow().(type) {
	case *Popup:
		if pw != p {
			pw.refresh(depth + 1)
		}
	case widget.Refresher:
		pw.RefreshRelativePlacement()
	}
	p.SetVisible(p.Visible() && an.VisibleRecursive())

	var arrow graphics.Point
	if p.showArrow {
		switch p.side {
		case SideLeft:
			arrow.X = -arrowSize
		case SideRight:
			arrow.X = arrowSize
		case SideTop:
			arrow.Y = -arrowSize
		case SideBottom:
			arrow.Y = arrowSize
		}
	}

	pos := an.AbsolutePosition().Add(p.anchorPos).Add(arrow)
	switch p.side {
	case SideLeft:
		pos = pos.Sub(graphics.Pt(p.Width(), p.actualAnchorOffset()))
	case SideRight:
		pos.Y -= p.actualAnchorOffset()
	case SideTop:
		pos = pos.Sub(graphics.Pt(p.actualAnchorOffset(), p.Height()))
	case SideBottom:
		pos.X -= p.actualAnchorOffset()
	}
	if parent := p.Parent(); parent != nil {
		pos = pos.Sub(parent.Node().AbsolutePosition())
	}
	p.SetPosition(pos)
}

// PerformLayout places the popup, then lays out its content. A popup with
// a single child and no layout gives the child its whole area.
func (p *Popup) PerformLayout(ctx graphics.Canvas) {
	p.RefreshRelativePlacement()
	children := p.Children()
	if p.Layout() != nil || len(children) != 1 {
		p.Window.PerformLayout(ctx)
		return
	}
	c := children[0]
	c.Node().SetPosition(graphics.Point{})
	c.Node().SetSize(p.Size())
	c.PerformLayout(ctx)
}

// Draw places the popup, then paints its frame, arrow and content.
func (p *Popup) Draw(ctx graphics.Canvas) {
	p.RefreshRelativePlacement()
	if !p.Visible() {
		return
	}
	th := p.theme()
	ds := float64(th.WindowDropShadowSize)
	cr := float64(th.WindowCornerRadius)
	x, y := float64(p.Position().X), float64(p.Position().Y)
	w, h := float64(p.Width()), float64(p.Height())

	ctx.Save()
	ctx.ResetScissor()

	shadow := ctx.BoxGradient(x, y, w, h, cr*2, ds*2, th.DropShadow, th.Transparent)
	ctx.BeginPath()
	ctx.Rect(x-ds, y-ds, w+2*ds, h+2*ds)
	ctx.RoundedRect(x, y, w, h, cr)
	ctx.PathWinding(graphics.WindingHole)
	ctx.FillPaint(shadow)
	ctx.Fill()

	ctx.BeginPath()
	ctx.RoundedRect(x, y, w, h, cr)
	ctx.FillColor(th.WindowPopup)
	ctx.Fill()

	if p.showArrow {
		ctx.BeginPath()
		off := float64(p.actualAnchorOffset())
		a := float64(arrowSize)
		switch p.side {
		case SideRight, SideLeft:
			bx, by, sign := x, y+off, -1.0
			if p.side == SideLeft {
				bx += w
				sign = 1
			}
			ctx.MoveTo(bx+a*sign, by)
			ctx.LineTo(bx-sign, by-a)
			ctx.LineTo(bx-sign, by+a)
		default:
			bx, by, sign := x+off, y, -1.0
			if p.side == SideTop {
				by += h
				sign = 1
			}
			ctx.MoveTo(bx, by+a*sign)
			ctx.LineTo(bx+a, by-sign)
			ctx.LineTo(bx-a, by-sign)
		}
		ctx.Fill()
	}
	ctx.Restore()

	p.Base.Draw(ctx)
}

// Save stores the placement parameters along with the window state.
func (p *Popup) Save(r *serialize.Record) {
	p.Window.Save(r)
	r.SetPoint("anchor_pos", p.anchorPos)
	r.SetInt("anchor_offset", p.anchorOffset)
	r.SetInt("side", int(p.side))
}

func (p *Popup) Load(r *serialize.Record) error {
	if err := p.Window.Load(r); err != nil {
		return err
	}
	side := int(p.side)
	for _, err := range []error{
		r.LoadPoint("anchor_pos", &p.anchorPos),
		r.LoadInt("anchor_offset", &p.anchorOffset),
		r.LoadInt("side", &side),
	} {
		if err != nil {
			return err
		}
	}
	p.side = Side(side)
	return nil
}

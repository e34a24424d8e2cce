package widgets

import (
	"math"

	"github.com/go-drift/trellis/pkg/errors"
	"github.com/go-drift/trellis/pkg/graphics"
	"github.com/go-drift/trellis/pkg/widget"
	"github.com/go-drift/trellis/pkg/window"
)

// PopupButton is a toggle button that shows a popup beside its window
// while it is pushed. The popup is a child of the screen anchored to the
// button, so it follows the button when the window moves and is removed
// together with the button.
type PopupButton struct {
	Button
	popup *window.Popup
}

// NewPopupButton creates a popup button and its hidden popup. parent must
// already be attached to a screen, since the popup is added to it.
func NewPopupButton(parent widget.Widget, caption string) *PopupButton {
	const op = "widgets.NewPopupButton"
	if parent == nil || parent.Node().Router() == nil {
		errors.Misuse(op, "parent must be attached to a screen")
	}
	pb := &PopupButton{}
	pb.caption = caption
	pb.flags = ButtonToggle | ButtonPopup
	pb.Init(pb, parent)
	pb.SetCursor(widget.CursorHand)

	pb.popup = window.NewPopup(pb.Root(), pb)
	pb.popup.SetVisible(false)
	return pb
}

// Popup returns the popup shown by the button. Content is added to it
// directly.
func (pb *PopupButton) Popup() *window.Popup { return pb.popup }

// Side returns the side of the window the popup opens on.
func (pb *PopupButton) Side() window.Side { return pb.popup.Side() }

func (pb *PopupButton) SetSide(s window.Side) {
	pb.popup.SetSide(s)
	pb.updateAnchor()
}

// SetPushed pushes or releases the button and shows or hides the popup.
func (pb *PopupButton) SetPushed(p bool) {
	pb.pushed = p
	pb.syncPopup()
}

func (pb *PopupButton) syncPopup() {
	if !pb.Enabled() && pb.pushed {
		pb.pushed = false
	}
	if pb.popup.Visible() == pb.pushed {
		return
	}
	pb.popup.SetVisible(pb.pushed)
	if pb.pushed {
		// Hidden windows are skipped by layout.
		pb.popup.MarkLayoutDirty()
	}
}

// updateAnchor points the popup's arrow at the outer edge of the button's
// window, level with the button's center.
func (pb *PopupButton) updateAnchor() {
	abs := pb.AbsolutePosition()
	x := pb.Width()
	if win := pb.Window(); win != nil {
		wn := win.Node()
		switch pb.popup.Side() {
		case window.SideLeft:
			x = wn.AbsolutePosition().X - abs.X
		default:
			x = wn.AbsolutePosition().X + wn.Width() - abs.X
		}
	}
	pb.popup.SetAnchorPos(graphics.Pt(x, pb.Height()/2))
}

func (pb *PopupButton) PreferredSize(ctx graphics.Canvas) graphics.Point {
	return pb.Button.PreferredSize(ctx).Add(graphics.Pt(15, 0))
}

func (pb *PopupButton) PerformLayout(ctx graphics.Canvas) {
	pb.Button.PerformLayout(ctx)
	pb.updateAnchor()
}

func (pb *PopupButton) MouseButtonEvent(p graphics.Point, button widget.MouseButton, down bool, mods widget.ModifierKey) bool {
	handled := pb.Button.MouseButtonEvent(p, button, down, mods)
	pb.updateAnchor()
	pb.syncPopup()
	return handled
}

// Draw paints the button with a chevron pointing toward the popup.
func (pb *PopupButton) Draw(ctx graphics.Canvas) {
	pb.syncPopup()
	pb.Button.Draw(ctx)

	th := themeOf(pb.Node())
	x, y, w, h := origin(pb.Node())
	s := math.Round(float64(pb.fontSize()) * 0.4)
	cy := y + h/2
	ctx.BeginPath()
	if pb.popup.Side() == window.SideLeft {
		cx := x + 10
		ctx.MoveTo(cx, cy-s/2)
		ctx.LineTo(cx-s/2, cy)
		ctx.LineTo(cx, cy+s/2)
	} else {
		cx := x + w - 10
		ctx.MoveTo(cx-s/2, cy-s/2)
		ctx.LineTo(cx, cy)
		ctx.LineTo(cx-s/2, cy+s/2)
	}
	if pb.Enabled() {
		ctx.FillColor(th.TextColor)
	} else {
		ctx.FillColor(th.DisabledTextColor)
	}
	ctx.Fill()
}

// Released disposes of the popup once the button leaves the tree.
func (pb *PopupButton) Released() {
	pb.popup.Dispose()
}

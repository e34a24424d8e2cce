// Package window provides floating containers: Window, a top-level frame
// with an optional title bar, and Popup, a window whose position is derived
// every frame from an anchor widget.
package window

import (
	"github.com/go-drift/trellis/pkg/graphics"
	"github.com/go-drift/trellis/pkg/layout"
	"github.com/go-drift/trellis/pkg/serialize"
	"github.com/go-drift/trellis/pkg/theme"
	"github.com/go-drift/trellis/pkg/widget"
)

const (
	titleFontSize   = 18
	buttonPanelSize = 22
)

// Policy overrides a theme-wide window behavior for one window.
type Policy int

const (
	// PolicyAuto follows the theme.
	PolicyAuto Policy = iota
	PolicyOn
	PolicyOff
)

func (p Policy) resolve(themeDefault bool) bool {
	switch p {
	case PolicyOn:
		return true
	case PolicyOff:
		return false
	default:
		return themeDefault
	}
}

// manager is implemented by the screen.
type manager interface {
	CenterWindow(w widget.Widget)
	DisposeWindow(w widget.Widget)
}

// Window is a movable top-level container. A window with a title reserves
// a header of the theme's WindowHeaderHeight; pressing the header starts a
// drag that moves the window within its parent.
type Window struct {
	widget.Base

	title       string
	modal       bool
	drag        bool
	collapsed   bool
	draggable   Policy
	collapsible Policy
	buttonPanel *widget.Panel
}

// New creates a window attached to parent, normally the screen.
func New(parent widget.Widget, title string) *Window {
	w := &Window{title: title}
	w.Init(w, parent)
	return w
}

func (w *Window) Title() string { return w.title }

func (w *Window) SetTitle(title string) {
	w.title = title
	w.MarkLayoutDirty()
}

// Modal reports whether the window blocks pointer input to the rest of the
// screen while it holds focus.
func (w *Window) Modal() bool { return w.modal }
func (w *Window) SetModal(m bool) { w.modal = m }

// Collapsed reports whether only the title bar is shown.
func (w *Window) Collapsed() bool { return w.collapsed }
func (w *Window) SetCollapsed(c bool) { w.collapsed = c }

// Dragging reports whether a header drag is in progress.
func (w *Window) Dragging() bool { return w.drag }

// Draggable reports whether the header can be used to move the window.
func (w *Window) Draggable() bool {
	return w.draggable.resolve(w.theme().WindowDraggable)
}

func (w *Window) SetDraggable(p Policy) { w.draggable = p }

// Collapsible reports whether the title bar shows a collapse toggle.
func (w *Window) Collapsible() bool {
	return w.title != "" && w.collapsible.resolve(w.theme().WindowCollapsible)
}

func (w *Window) SetCollapsible(p Policy) { w.collapsible = p }

func (w *Window) theme() *theme.ThemeData {
	if t := w.Theme(); t != nil {
		return t
	}
	return theme.DefaultTheme()
}

// HeaderHeight returns the height of the title bar, or 0 for an untitled
// window.
func (w *Window) HeaderHeight() int {
	if w.title == "" {
		return 0
	}
	return w.theme().WindowHeaderHeight
}

// ButtonPanel returns the container for title bar buttons, creating it on
// first use. Its children are laid out right-aligned in the header.
func (w *Window) ButtonPanel() *widget.Panel {
	if w.buttonPanel == nil {
		w.buttonPanel = widget.NewPanel(w)
		w.buttonPanel.SetLayout(layout.NewBoxLayout(layout.Horizontal, layout.Middle, 0, 4))
	}
	return w.buttonPanel
}

// withoutButtonPanel runs fn with the button panel excluded from layout.
func (w *Window) withoutButtonPanel(fn func()) {
	if w.buttonPanel == nil || !w.buttonPanel.Visible() {
		fn()
		return
	}
	w.buttonPanel.SetVisible(false)
	defer w.buttonPanel.SetVisible(true)
	fn()
}

// PreferredSize is the layout's preferred size, widened to fit the title.
func (w *Window) PreferredSize(ctx graphics.Canvas) graphics.Point {
	var result graphics.Point
	w.withoutButtonPanel(func() { result = w.Base.PreferredSize(ctx) })
	if w.title == "" || ctx == nil {
		return result
	}
	ctx.FontSize(titleFontSize)
	ctx.FontFace(graphics.FontSansBold)
	_, b := ctx.TextBounds(0, 0, w.title)
	return result.Max(graphics.Pt(int(b[2]-b[0])+20, int(b[3]-b[1])))
}

// PerformLayout lays out the content, then places the button panel in the
// top-right corner of the header.
func (w *Window) PerformLayout(ctx graphics.Canvas) {
	w.withoutButtonPanel(func() { w.Base.PerformLayout(ctx) })
	bp := w.buttonPanel
	if bp == nil || !bp.Visible() {
		return
	}
	for _, c := range bp.Children() {
		c.Node().SetFixedSize(graphics.Pt(buttonPanelSize, buttonPanelSize))
		c.Node().SetFontSize(15)
	}
	bp.SetSize(graphics.Pt(w.Width(), buttonPanelSize))
	bp.SetPosition(graphics.Pt(w.Width()-(bp.PreferredSize(ctx).X+5), 3))
	bp.PerformLayout(ctx)
}

// Center moves the window to the middle of the screen.
func (w *Window) Center() {
	if m, ok := w.Root().(manager); ok {
		m.CenterWindow(w.Self())
	}
}

// Dispose removes the window from its parent. Inside an event handler the
// removal is deferred until the dispatch returns.
func (w *Window) Dispose() {
	self := w.Self()
	remove := func() {
		if m, ok := w.Root().(manager); ok && w.Parent() == w.Root() {
			m.DisposeWindow(self)
		} else if p := w.Parent(); p != nil {
			p.Node().RemoveChild(self)
		}
	}
	if r := w.Router(); r != nil {
		r.Defer(remove)
		return
	}
	remove()
}

// RefreshRelativePlacement does nothing for a free-standing window.
func (w *Window) RefreshRelativePlacement() {}

// collapseIcon is the hit area of the collapse toggle, relative to the
// window's origin.
func (w *Window) collapseIcon() graphics.Rect {
	fs := w.FontSize()
	return graphics.RectAt(graphics.Pt(5, 5), graphics.Pt(fs, fs))
}

// MouseButtonEvent lets the content handle the event first. Otherwise a
// primary press toggles collapse on the icon or starts a header drag.
func (w *Window) MouseButtonEvent(p graphics.Point, button widget.MouseButton, down bool, mods widget.ModifierKey) bool {
	if !w.collapsed {
		if w.Base.MouseButtonEvent(p, button, down, mods) {
			return true
		}
	} else if down && button == widget.MouseLeft && !w.Focused() && !w.FocusWithin() {
		w.RequestFocus()
	}
	if button != widget.MouseLeft || !w.Enabled() {
		return false
	}
	local := p.Sub(w.Position())
	if down && w.Collapsible() && w.collapseIcon().Contains(local) {
		w.collapsed = !w.collapsed
		w.MarkLayoutDirty()
		return true
	}
	w.drag = down && local.Y < w.HeaderHeight()
	return true
}

// MouseDragEvent moves the window while a header drag is active, keeping
// it inside its parent.
func (w *Window) MouseDragEvent(p, rel graphics.Point, buttons int, mods widget.ModifierKey) bool {
	if !w.Draggable() || !w.drag || buttons&widget.MouseLeft.Mask() == 0 {
		return false
	}
	pos := w.Position().Add(rel).Max(graphics.Point{})
	if parent := w.Parent(); parent != nil {
		pos = pos.Min(parent.Node().Size().Sub(w.Size()))
	}
	w.SetPosition(pos)
	return true
}

// ScrollEvent never lets scrolling fall through to widgets behind the
// window.
func (w *Window) ScrollEvent(p graphics.Point, rel graphics.Vec) bool {
	if !w.collapsed {
		w.Base.ScrollEvent(p, rel)
	}
	return true
}

// Draw paints the frame, drop shadow and title bar, then the content.
func (w *Window) Draw(ctx graphics.Canvas) {
	th := w.theme()
	ds := float64(th.WindowDropShadowSize)
	cr := float64(th.WindowCornerRadius)
	hh := float64(th.WindowHeaderHeight)
	x, y := float64(w.Position().X), float64(w.Position().Y)
	width, height := float64(w.Width()), float64(w.Height())
	if w.collapsed {
		height = hh
	}
	active := w.Focused() || w.FocusWithin()

	ctx.Save()
	ctx.BeginPath()
	ctx.RoundedRect(x, y, width, height, cr)
	if w.MouseFocus() {
		ctx.FillColor(th.WindowFillFocused)
	} else {
		ctx.FillColor(th.WindowFillUnfocused)
	}
	ctx.Fill()

	shadow := ctx.BoxGradient(x, y, width, height, cr*2, ds*2, th.DropShadow, th.Transparent)
	ctx.Save()
	ctx.ResetScissor()
	ctx.BeginPath()
	ctx.Rect(x-ds, y-ds, width+2*ds, height+2*ds)
	ctx.RoundedRect(x, y, width, height, cr)
	ctx.PathWinding(graphics.WindingHole)
	ctx.FillPaint(shadow)
	ctx.Fill()
	ctx.Restore()

	if w.title != "" {
		ctx.BeginPath()
		ctx.RoundedRect(x, y, width, hh, cr)
		ctx.FillPaint(ctx.LinearGradient(x, y, x, y+hh, th.WindowHeaderGradientTop, th.WindowHeaderGradientBot))
		ctx.Fill()

		ctx.BeginPath()
		ctx.RoundedRect(x, y, width, hh, cr)
		ctx.StrokeColor(th.WindowHeaderSepTop)
		ctx.Save()
		ctx.IntersectScissor(x, y, width, 0.5)
		ctx.Stroke()
		ctx.Restore()

		ctx.BeginPath()
		ctx.MoveTo(x+0.5, y+hh-1.5)
		ctx.LineTo(x+width-0.5, y+hh-1.5)
		ctx.StrokeColor(th.WindowHeaderSepBot)
		ctx.Stroke()

		ctx.FontSize(titleFontSize)
		ctx.FontFace(graphics.FontSansBold)
		ctx.TextAlign(graphics.AlignCenter | graphics.AlignMiddle)
		ctx.FontBlur(2)
		ctx.FillColor(th.DropShadow)
		ctx.Text(x+width/2, y+hh/2, w.title)
		ctx.FontBlur(0)
		if active {
			ctx.FillColor(th.WindowTitleFocused)
		} else {
			ctx.FillColor(th.WindowTitleUnfocused)
		}
		ctx.Text(x+width/2, y+hh/2-1, w.title)
	}

	if w.Collapsible() {
		icon := w.collapseIcon().Translate(w.Position())
		ix, iy := float64(icon.Min.X), float64(icon.Min.Y)
		s := float64(icon.Dx())
		ctx.BeginPath()
		if w.collapsed {
			ctx.MoveTo(ix+s*0.3, iy+s*0.2)
			ctx.LineTo(ix+s*0.7, iy+s*0.5)
			ctx.LineTo(ix+s*0.3, iy+s*0.8)
		} else {
			ctx.MoveTo(ix+s*0.2, iy+s*0.3)
			ctx.LineTo(ix+s*0.8, iy+s*0.3)
			ctx.LineTo(ix+s*0.5, iy+s*0.7)
		}
		if active {
			ctx.FillColor(th.WindowTitleFocused)
		} else {
			ctx.FillColor(th.WindowTitleUnfocused)
		}
		ctx.Fill()
	}
	ctx.Restore()

	if !w.collapsed {
		w.Base.Draw(ctx)
	}
}

// Save stores the title and modal flag along with the generic state.
func (w *Window) Save(r *serialize.Record) {
	w.Base.Save(r)
	r.SetString("title", w.title)
	r.SetBool("modal", w.modal)
	r.SetBool("collapsed", w.collapsed)
}

// Load restores the state written by Save and cancels any drag.
func (w *Window) Load(r *serialize.Record) error {
	if err := w.Base.Load(r); err != nil {
		return err
	}
	for _, err := range []error{
		r.LoadString("title", &w.title),
		r.LoadBool("modal", &w.modal),
		r.LoadBool("collapsed", &w.collapsed),
	} {
		if err != nil {
			return err
		}
	}
	w.drag = false
	return nil
}

package widget

import "github.com/go-drift/trellis/pkg/graphics"

// PreferredSize returns the layout's preferred size, or the current size
// when there is no layout.
func (b *Base) PreferredSize(ctx graphics.Canvas) graphics.Point {
	if b.layout != nil {
		return b.layout.PreferredSize(ctx, b.Self())
	}
	return b.size
}

// PerformLayout delegates to the layout. Without one, every visible child
// is sized to its preferred size (overridden by its fixed size) and laid
// out in turn.
func (b *Base) PerformLayout(ctx graphics.Canvas) {
	if b.layout != nil {
		b.layout.PerformLayout(ctx, b.Self())
		return
	}
	for _, c := range b.children {
		n := c.Node()
		if n.hidden {
			continue
		}
		n.SetSize(c.PreferredSize(ctx).Override(n.fixedSize))
		c.PerformLayout(ctx)
	}
}

// Draw draws the visible children, translated by the widget's position.
func (b *Base) Draw(ctx graphics.Canvas) {
	if len(b.children) == 0 {
		return
	}
	ctx.Translate(float64(b.pos.X), float64(b.pos.Y))
	// Children may remove siblings while drawing (disposable popups).
	for _, c := range snapshot(b.children) {
		if n := c.Node(); !n.hidden && !n.disposed {
			c.Draw(ctx)
		}
	}
	ctx.Translate(-float64(b.pos.X), -float64(b.pos.Y))
}

// MouseButtonEvent offers the event to the topmost visible child containing
// p. If none consumes it, a primary press requests focus for this widget
// unless it or one of its descendants already holds focus.
func (b *Base) MouseButtonEvent(p graphics.Point, button MouseButton, down bool, mods ModifierKey) bool {
	local := p.Sub(b.pos)
	for _, c := range reversed(b.children) {
		n := c.Node()
		if !n.hidden && n.Contains(local) && c.MouseButtonEvent(local, button, down, mods) {
			return true
		}
	}
	if button == MouseLeft && down && !b.focused && !b.focusWithin {
		b.RequestFocus()
	}
	return false
}

// MouseMotionEvent sends enter/leave transitions to every visible child
// whose containment changed, whether or not a sibling consumes the motion,
// then offers the motion to children that contain the new or previous
// point, topmost first.
func (b *Base) MouseMotionEvent(p, rel graphics.Point, buttons int, mods ModifierKey) bool {
	local := p.Sub(b.pos)
	prev := local.Sub(rel)
	children := reversed(b.children)
	for _, c := range children {
		n := c.Node()
		if n.hidden || n.disposed {
			continue
		}
		if contained := n.Contains(local); contained != n.Contains(prev) {
			c.MouseEnterEvent(local, contained)
		}
	}
	for _, c := range children {
		n := c.Node()
		if n.hidden || n.disposed {
			continue
		}
		if (n.Contains(local) || n.Contains(prev)) && c.MouseMotionEvent(local, rel, buttons, mods) {
			return true
		}
	}
	return false
}

// MouseDragEvent does nothing by default.
func (b *Base) MouseDragEvent(p, rel graphics.Point, buttons int, mods ModifierKey) bool {
	return false
}

// MouseEnterEvent records the hover state and reports it to the router.
func (b *Base) MouseEnterEvent(p graphics.Point, enter bool) bool {
	b.mouseFocus = enter
	if r := b.Router(); r != nil {
		r.UpdateMouseFocus(b.Self())
	}
	return false
}

// ScrollEvent offers the event to the topmost visible child containing p.
func (b *Base) ScrollEvent(p graphics.Point, rel graphics.Vec) bool {
	local := p.Sub(b.pos)
	for _, c := range reversed(b.children) {
		n := c.Node()
		if !n.hidden && n.Contains(local) && c.ScrollEvent(local, rel) {
			return true
		}
	}
	return false
}

// FocusEvent records the focus state.
func (b *Base) FocusEvent(focused bool) bool {
	b.focused = focused
	return false
}

// KeyboardEvent does nothing by default.
func (b *Base) KeyboardEvent(key Key, scancode int, action Action, mods ModifierKey) bool {
	return false
}

// KeyboardCharacterEvent does nothing by default.
func (b *Base) KeyboardCharacterEvent(r rune) bool {
	return false
}

// snapshot copies ws so callers can iterate while the original is
// mutated.
func snapshot(ws []Widget) []Widget {
	return append([]Widget(nil), ws...)
}

// reversed returns a snapshot of ws in front-to-back order.
func reversed(ws []Widget) []Widget {
	out := make([]Widget, len(ws))
	for i, w := range ws {
		out[len(ws)-1-i] = w
	}
	return out
}

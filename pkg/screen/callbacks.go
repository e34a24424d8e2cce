package screen

import (
	"github.com/go-drift/trellis/pkg/graphics"
	"github.com/go-drift/trellis/pkg/widget"
)

// The callbacks below are the host-facing entry points. Each one is a
// separate dispatch: a panic raised by a widget handler is recovered and
// reported through the errors handler, and the callback returns false.

func (s *Screen) touch() {
	s.lastInteraction = s.clock.Now()
}

// parentOrigin returns the absolute position of w's parent, the space that
// w's events are expressed in.
func parentOrigin(w widget.Widget) graphics.Point {
	if p := w.Node().Parent(); p != nil {
		return p.Node().AbsolutePosition()
	}
	return graphics.Point{}
}

// CursorPosCallback handles pointer motion to (x, y) in screen coordinates.
// While a drag is active the drag target receives MouseDragEvent; otherwise,
// or if the target ignores it, the motion is dispatched through the tree.
func (s *Screen) CursorPosCallback(x, y float64) bool {
	p := graphics.Pt(int(x), int(y))
	s.touch()
	return s.dispatch("screen.CursorPosCallback", func() bool {
		rel := p.Sub(s.mousePos)
		s.mousePos = p
		handled := false
		if s.dragActive && s.dragWidget != nil {
			handled = s.dragWidget.MouseDragEvent(p.Sub(parentOrigin(s.dragWidget)), rel, s.mouseState, s.modifiers)
		}
		if !handled {
			handled = s.MouseMotionEvent(p, rel, s.mouseState, s.modifiers)
		}
		return handled
	})
}

// MouseButtonCallback handles a button transition at the last pointer
// position.
//
// A primary press selects the deepest widget under the pointer as the drag
// target. Releasing over another widget first delivers the release to the
// drag target, so it always sees the end of its drag, and refreshes the
// hover state of the widgets under the pointer. While a modal window holds
// focus, clicks outside it are ignored apart from ending a drag that began
// before the modal took focus.
func (s *Screen) MouseButtonCallback(button widget.MouseButton, action widget.Action, mods widget.ModifierKey) bool {
	s.touch()
	return s.dispatch("screen.MouseButtonCallback", func() bool {
		s.modifiers = mods
		if action == widget.Press {
			s.mouseState |= button.Mask()
		} else {
			s.mouseState &^= button.Mask()
		}
		if s.blockedByModal() {
			if action == widget.Release && s.dragActive && s.dragWidget != nil {
				s.dragWidget.MouseButtonEvent(s.mousePos.Sub(parentOrigin(s.dragWidget)), button, false, mods)
			}
			s.dragActive = false
			s.dragWidget = nil
			return false
		}

		drop := s.FindWidget(s.mousePos)
		if s.dragActive && action == widget.Release && drop != s.dragWidget && s.dragWidget != nil {
			s.dragWidget.MouseButtonEvent(s.mousePos.Sub(parentOrigin(s.dragWidget)), button, false, mods)
			s.refreshHover(drop)
		}

		if action == widget.Press && button == widget.MouseLeft {
			s.dragWidget = drop
			if drop == widget.Widget(s) {
				s.dragWidget = nil
			}
			s.dragActive = s.dragWidget != nil
			if !s.dragActive {
				s.UpdateFocus(nil)
			}
		} else {
			s.dragActive = false
			s.dragWidget = nil
		}

		return s.MouseButtonEvent(s.mousePos, button, action == widget.Press, mods)
	})
}

// refreshHover rebuilds the hover list from the widgets under the pointer
// after a drag ended over w.
func (s *Screen) refreshHover(w widget.Widget) {
	for _, h := range s.hovered {
		h.Node().SetMouseFocus(false)
	}
	s.hovered = s.hovered[:0]
	for ; w != nil && w != widget.Widget(s); w = w.Node().Parent() {
		w.Node().SetMouseFocus(true)
		s.hovered = append([]widget.Widget{w}, s.hovered...)
	}
	s.refreshCursor()
}

// KeyCallback delivers a key event to the focused widget, then to each of
// its ancestors in turn until one consumes it. An unconsumed Escape press
// hides the screen when EscapeHides is set.
func (s *Screen) KeyCallback(key widget.Key, scancode int, action widget.Action, mods widget.ModifierKey) bool {
	s.touch()
	return s.dispatch("screen.KeyCallback", func() bool {
		if s.bubble(func(w widget.Widget) bool {
			return w.KeyboardEvent(key, scancode, action, mods)
		}) {
			return true
		}
		if key == widget.KeyEscape && action == widget.Press && s.escapeHides {
			s.SetVisible(false)
			return true
		}
		return false
	})
}

// CharCallback delivers a typed character like KeyCallback does.
func (s *Screen) CharCallback(r rune) bool {
	s.touch()
	return s.dispatch("screen.CharCallback", func() bool {
		return s.bubble(func(w widget.Widget) bool {
			return w.KeyboardCharacterEvent(r)
		})
	})
}

// bubble offers an event along the focus path from the leaf upwards,
// excluding the screen.
func (s *Screen) bubble(fn func(w widget.Widget) bool) bool {
	path := s.FocusPath()
	for i := len(path) - 1; i >= 1; i-- {
		if path[i].Node().Disposed() {
			continue
		}
		if fn(path[i]) {
			return true
		}
	}
	return false
}

// ScrollCallback dispatches a wheel or trackpad scroll at the pointer.
func (s *Screen) ScrollCallback(dx, dy float64) bool {
	s.touch()
	return s.dispatch("screen.ScrollCallback", func() bool {
		if s.blockedByModal() {
			return false
		}
		return s.ScrollEvent(s.mousePos, graphics.Vec{X: dx, Y: dy})
	})
}

// ResizeCallback records a new framebuffer size and schedules a layout.
func (s *Screen) ResizeCallback(width, height int) bool {
	s.touch()
	return s.dispatch("screen.ResizeCallback", func() bool {
		size := graphics.Pt(width, height)
		if size.X <= 0 || size.Y <= 0 {
			return false
		}
		s.SetSize(size)
		s.MarkLayoutDirty()
		if s.resizeHandler != nil {
			s.resizeHandler(size)
		}
		return true
	})
}

// DropCallback passes dropped file paths to the drop handler.
func (s *Screen) DropCallback(paths []string) bool {
	s.touch()
	return s.dispatch("screen.DropCallback", func() bool {
		if s.dropHandler == nil {
			return false
		}
		return s.dropHandler(paths)
	})
}

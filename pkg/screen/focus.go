package screen

import (
	"fmt"

	"github.com/go-drift/trellis/pkg/errors"
	"github.com/go-drift/trellis/pkg/graphics"
	"github.com/go-drift/trellis/pkg/widget"
)

// FocusPath returns the chain from the screen to the focused widget, or nil
// when nothing has focus.
func (s *Screen) FocusPath() []widget.Widget {
	return append([]widget.Widget(nil), s.focusPath...)
}

// FocusedWidget returns the focused leaf, or nil.
func (s *Screen) FocusedWidget() widget.Widget {
	if len(s.focusPath) == 0 {
		return nil
	}
	return s.focusPath[len(s.focusPath)-1]
}

// UpdateFocus makes w the only focused widget. Its ancestors are flagged
// focus-within, the previous leaf receives FocusEvent(false) and w receives
// FocusEvent(true). The outermost window containing w is moved to the
// front. Focusing the current leaf again does nothing; a nil w, the screen
// itself or a widget outside this screen clears focus.
func (s *Screen) UpdateFocus(w widget.Widget) {
	var path []widget.Widget
	if w != nil && w != widget.Widget(s) && !w.Node().Disposed() {
		path = widget.Path(w)
		if path[0] != widget.Widget(s) {
			path = nil
		}
	}
	if len(path) == 0 && len(s.focusPath) == 0 {
		return
	}
	if len(path) > 0 && s.FocusedWidget() == path[len(path)-1] {
		return
	}

	old := s.FocusedWidget()
	for _, a := range s.focusPath {
		a.Node().SetFocusWithin(false)
	}
	s.focusPath = path
	for i := 0; i+1 < len(path); i++ {
		path[i].Node().SetFocusWithin(true)
	}

	if old != nil && old.Node().Focused() {
		old.FocusEvent(false)
	}
	// The focus-lost handler may have moved focus or removed w.
	if len(path) == 0 || s.FocusedWidget() != path[len(path)-1] {
		return
	}
	leaf := path[len(path)-1]
	leaf.FocusEvent(true)

	for _, a := range path[1:] {
		if win, ok := a.(widget.WindowRole); ok {
			s.MoveWindowToFront(win)
			break
		}
	}
}

// clearFocus drops the focus path without sending focus events.
func (s *Screen) clearFocus() {
	for _, a := range s.focusPath {
		n := a.Node()
		n.SetFocusWithin(false)
		n.SetFocused(false)
	}
	s.focusPath = nil
}

// UpdateMouseFocus adds w to or removes it from the hover list according
// to its hover flag, then pushes the cursor of the most recently entered
// widget to the host.
func (s *Screen) UpdateMouseFocus(w widget.Widget) {
	i := s.hoverIndex(w)
	switch {
	case i >= 0 && !w.Node().MouseFocus():
		s.hovered = append(s.hovered[:i], s.hovered[i+1:]...)
	case i < 0 && w.Node().MouseFocus() && !w.Node().Disposed():
		s.hovered = append(s.hovered, w)
	}
	s.refreshCursor()
}

func (s *Screen) hoverIndex(w widget.Widget) int {
	for i, h := range s.hovered {
		if h == w {
			return i
		}
	}
	return -1
}

func (s *Screen) refreshCursor() {
	cursor := widget.CursorNone
	if len(s.hovered) > 0 {
		cursor = s.hovered[len(s.hovered)-1].Node().Cursor()
	}
	if cursor != s.cursor {
		s.cursor = cursor
		s.host.SetCursor(cursor)
	}
}

// ForgetSubtree drops every reference into the subtree rooted at w: focus
// is cleared if the focused widget or one of its ancestors is inside it,
// and the drag target and hovered widgets inside it are released.
func (s *Screen) ForgetSubtree(w widget.Widget) {
	n := w.Node()
	for _, a := range s.focusPath {
		if n.IsAncestorOf(a) {
			s.clearFocus()
			break
		}
	}
	if s.dragWidget != nil && n.IsAncestorOf(s.dragWidget) {
		s.dragWidget = nil
		s.dragActive = false
	}
	kept := s.hovered[:0]
	for _, h := range s.hovered {
		if !n.IsAncestorOf(h) {
			kept = append(kept, h)
		}
	}
	clear(s.hovered[len(kept):])
	s.hovered = kept
	s.refreshCursor()
}

// MoveWindowToFront raises win above the other top-level widgets, then
// raises every popup anchored to it (recursively) above it. An anchor chain
// that loops back on itself is reported once and left in place.
func (s *Screen) MoveWindowToFront(win widget.WindowRole) {
	s.raiseWindow(win, map[widget.WindowRole]bool{})
}

func (s *Screen) raiseWindow(win widget.WindowRole, visited map[widget.WindowRole]bool) {
	visited[win] = true
	if !s.RaiseChild(win) {
		return
	}
	reported := false
	for changed := true; changed; {
		changed = false
		base := s.ChildIndex(win)
		for i, c := range s.Children() {
			p, ok := c.(widget.Anchored)
			if !ok || i >= base || p.ParentWindow() != win {
				continue
			}
			if visited[p] {
				if !reported {
					reported = true
					errors.Report(&errors.TrellisError{
						Op:     "screen.MoveWindowToFront",
						Kind:   errors.KindLayout,
						Widget: p.Node().ID(),
						Err:    fmt.Errorf("anchor chain forms a cycle"),
					})
				}
				continue
			}
			s.raiseWindow(p, visited)
			changed = true
			break
		}
	}
}

// CenterWindow centers win on the screen, sizing it first if it has never
// been laid out.
func (s *Screen) CenterWindow(win widget.Widget) {
	n := win.Node()
	if n.Size().IsZero() {
		n.SetSize(win.PreferredSize(s.ctx).Override(n.FixedSize()))
		win.PerformLayout(s.ctx)
	}
	n.SetPosition(s.Size().Sub(n.Size()).Div(2))
}

// DisposeWindow removes win from the screen and releases it.
func (s *Screen) DisposeWindow(win widget.Widget) {
	s.RemoveChild(win)
}

// modalWindow returns the top-level window on the focus path when it is
// modal.
func (s *Screen) modalWindow() widget.WindowRole {
	if len(s.focusPath) < 2 {
		return nil
	}
	if win, ok := s.focusPath[1].(widget.WindowRole); ok && win.Modal() {
		return win
	}
	return nil
}

// blockedByModal reports whether the pointer is outside a modal window
// that holds focus.
func (s *Screen) blockedByModal() bool {
	win := s.modalWindow()
	if win == nil {
		return false
	}
	n := win.Node()
	return !graphics.RectAt(n.AbsolutePosition(), n.Size()).Contains(s.mousePos)
}

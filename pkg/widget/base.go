package widget

import (
	"github.com/go-drift/trellis/pkg/errors"
	"github.com/go-drift/trellis/pkg/graphics"
	"github.com/go-drift/trellis/pkg/theme"
)

// Base is the tree node embedded by every widget. The zero value is a
// visible, enabled widget with no parent; Init must be called before it is
// attached to a tree.
type Base struct {
	self     Widget
	parent   Widget
	children []Widget
	layout   Layout
	theme    *theme.ThemeData

	pos       graphics.Point
	size      graphics.Point
	fixedSize graphics.Point

	hidden      bool
	disabled    bool
	focused     bool
	focusWithin bool
	mouseFocus  bool
	disposed    bool
	layoutDirty bool

	id       string
	tooltip  string
	fontSize int
	cursor   Cursor
}

// Init registers self as the concrete widget for this Base and, when parent
// is non-nil, appends it to parent's children. Constructors call it first:
//
//	func NewLabel(parent widget.Widget, caption string) *Label {
//		l := &Label{caption: caption}
//		l.Init(l, parent)
//		return l
//	}
func (b *Base) Init(self, parent Widget) {
	if self == nil || self.Node() != b {
		errors.Misuse("widget.Base.Init", "self must embed this Base")
	}
	b.self = self
	if parent != nil {
		parent.Node().AddChild(self)
	}
}

// Node returns b. It lets every type embedding Base satisfy the Node method
// of Widget.
func (b *Base) Node() *Base {
	return b
}

// Self returns the concrete widget registered with Init.
func (b *Base) Self() Widget {
	if b.self == nil {
		errors.Misuse("widget.Base", "Init was not called")
	}
	return b.self
}

// Parent returns the parent widget, or nil for a root or released widget.
func (b *Base) Parent() Widget {
	return b.parent
}

// Layout returns the layout strategy, if any.
func (b *Base) Layout() Layout {
	return b.layout
}

// SetLayout replaces the layout strategy.
func (b *Base) SetLayout(l Layout) {
	b.layout = l
	b.MarkLayoutDirty()
}

// Theme returns the theme, or nil if none has been propagated yet.
func (b *Base) Theme() *theme.ThemeData {
	return b.theme
}

// SetTheme sets the theme for b and every descendant.
func (b *Base) SetTheme(t *theme.ThemeData) {
	b.theme = t
	for _, c := range b.children {
		c.Node().SetTheme(t)
	}
}

// Position returns the position relative to the parent.
func (b *Base) Position() graphics.Point {
	return b.pos
}

// SetPosition sets the position relative to the parent.
func (b *Base) SetPosition(p graphics.Point) {
	b.pos = p
}

// AbsolutePosition returns the position relative to the root.
func (b *Base) AbsolutePosition() graphics.Point {
	if b.parent == nil {
		return b.pos
	}
	return b.parent.Node().AbsolutePosition().Add(b.pos)
}

// Size returns the current size.
func (b *Base) Size() graphics.Point {
	return b.size
}

// SetSize sets the current size.
func (b *Base) SetSize(s graphics.Point) {
	b.size = s
}

func (b *Base) Width() int { return b.size.X }
func (b *Base) Height() int { return b.size.Y }
func (b *Base) SetWidth(w int) { b.size.X = w }
func (b *Base) SetHeight(h int) { b.size.Y = h }

// Bounds returns the widget rectangle in its parent's coordinates.
func (b *Base) Bounds() graphics.Rect {
	return graphics.RectAt(b.pos, b.size)
}

// FixedSize returns the fixed size override. A zero component means the
// computed preferred size is used on that axis.
func (b *Base) FixedSize() graphics.Point {
	return b.fixedSize
}

// SetFixedSize sets the fixed size override.
func (b *Base) SetFixedSize(s graphics.Point) {
	b.fixedSize = s
	b.MarkLayoutDirty()
}

func (b *Base) FixedWidth() int { return b.fixedSize.X }
func (b *Base) FixedHeight() int { return b.fixedSize.Y }

func (b *Base) SetFixedWidth(w int) {
	b.fixedSize.X = w
	b.MarkLayoutDirty()
}

func (b *Base) SetFixedHeight(h int) {
	b.fixedSize.Y = h
	b.MarkLayoutDirty()
}

// Visible reports whether the widget itself is visible.
func (b *Base) Visible() bool {
	return !b.hidden
}

// SetVisible shows or hides the widget. Hidden widgets stay in the tree
// but are skipped by hit-testing, drawing and layout.
func (b *Base) SetVisible(v bool) {
	b.hidden = !v
}

// VisibleRecursive reports whether the widget and all its ancestors are
// visible.
func (b *Base) VisibleRecursive() bool {
	for w := b; w != nil; {
		if w.hidden {
			return false
		}
		if w.parent == nil {
			break
		}
		w = w.parent.Node()
	}
	return true
}

func (b *Base) Enabled() bool { return !b.disabled }
func (b *Base) SetEnabled(e bool) { b.disabled = !e }
func (b *Base) Focused() bool { return b.focused }
func (b *Base) SetFocused(f bool) { b.focused = f }
func (b *Base) MouseFocus() bool { return b.mouseFocus }
func (b *Base) SetMouseFocus(m bool) { b.mouseFocus = m }
func (b *Base) ID() string { return b.id }
func (b *Base) SetID(id string) { b.id = id }
func (b *Base) Tooltip() string { return b.tooltip }
func (b *Base) SetTooltip(s string) { b.tooltip = s }
func (b *Base) Cursor() Cursor { return b.cursor }
func (b *Base) SetCursor(c Cursor) { b.cursor = c }

// FocusWithin reports whether a strict descendant holds focus.
func (b *Base) FocusWithin() bool {
	return b.focusWithin
}

// SetFocusWithin is called by the router as the focus path changes.
func (b *Base) SetFocusWithin(f bool) {
	b.focusWithin = f
}

// Disposed reports whether the widget was released by a removal.
func (b *Base) Disposed() bool {
	return b.disposed
}

// FontSize returns the font size override, or the theme's standard size.
func (b *Base) FontSize() int {
	if b.fontSize > 0 {
		return b.fontSize
	}
	if b.theme != nil {
		return b.theme.StandardFontSize
	}
	return theme.DefaultTheme().StandardFontSize
}

// SetFontSize overrides the font size. Zero or negative restores the
// theme's size.
func (b *Base) SetFontSize(size int) {
	b.fontSize = size
}

// HasFontSize reports whether a font size override is set.
func (b *Base) HasFontSize() bool {
	return b.fontSize > 0
}

// MarkLayoutDirty flags the root of the tree as needing a layout pass.
func (b *Base) MarkLayoutDirty() {
	b.rootBase().layoutDirty = true
}

// NeedsLayout reports whether the tree rooted at b was structurally
// modified since the last ClearLayoutDirty.
func (b *Base) NeedsLayout() bool {
	return b.layoutDirty
}

// ClearLayoutDirty resets the flag reported by NeedsLayout.
func (b *Base) ClearLayoutDirty() {
	b.layoutDirty = false
}

func (b *Base) rootBase() *Base {
	r := b
	for r.parent != nil {
		r = r.parent.Node()
	}
	return r
}

// Root returns the topmost ancestor.
func (b *Base) Root() Widget {
	r := b.rootBase()
	if r.self == nil {
		return nil
	}
	return r.self
}

// Router returns the root when it routes events, or nil for a detached
// subtree.
func (b *Base) Router() Router {
	r, _ := b.Root().(Router)
	return r
}

// Window returns the nearest ancestor (or b itself) with the window role,
// or nil if there is none.
func (b *Base) Window() WindowRole {
	for w := b.self; w != nil; w = w.Node().parent {
		if win, ok := w.(WindowRole); ok {
			return win
		}
	}
	return nil
}

// RequestFocus asks the router to focus this widget. It does nothing when
// the widget is not attached to a router.
func (b *Base) RequestFocus() {
	if r := b.Router(); r != nil {
		r.UpdateFocus(b.Self())
	}
}

// IsAncestorOf reports whether b is w or one of w's ancestors.
func (b *Base) IsAncestorOf(w Widget) bool {
	for ; w != nil; w = w.Node().parent {
		if w.Node() == b {
			return true
		}
	}
	return false
}

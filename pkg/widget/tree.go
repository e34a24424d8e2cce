package widget

import (
	"slices"

	"github.com/go-drift/trellis/pkg/errors"
	"github.com/go-drift/trellis/pkg/graphics"
)

// Children returns the child list in draw order (back to front). The slice
// must not be modified.
func (b *Base) Children() []Widget {
	return b.children
}

// ChildCount returns the number of children.
func (b *Base) ChildCount() int {
	return len(b.children)
}

// ChildAt returns the child at index, or nil if index is out of range.
func (b *Base) ChildAt(index int) Widget {
	if index < 0 || index >= len(b.children) {
		return nil
	}
	return b.children[index]
}

// ChildIndex returns the index of w among the children, or -1.
func (b *Base) ChildIndex(w Widget) int {
	return slices.IndexFunc(b.children, func(c Widget) bool { return c == w })
}

// AddChild appends w to the children, on top of its siblings.
func (b *Base) AddChild(w Widget) {
	b.AddChildAt(len(b.children), w)
}

// AddChildAt inserts w at index in the child order and takes ownership of
// it. The child inherits the parent's theme if it has none.
//
// Adding a widget that already has a parent, that was released, or that
// is an ancestor of b is a programming error.
func (b *Base) AddChildAt(index int, w Widget) {
	const op = "widget.Base.AddChildAt"
	if w == nil {
		errors.Misuse(op, "nil child")
	}
	self := b.Self()
	c := w.Node()
	if c.self == nil {
		errors.Misuse(op, "child Init was not called")
	}
	if c.disposed {
		errors.Misuse(op, "child %q was released", c.id)
	}
	if c.parent != nil {
		errors.Misuse(op, "child %q already has a parent", c.id)
	}
	if c.IsAncestorOf(self) {
		errors.Misuse(op, "adding %q would create a cycle", c.id)
	}
	if index < 0 || index > len(b.children) {
		errors.Misuse(op, "index %d out of range [0, %d]", index, len(b.children))
	}
	if g, ok := self.(ChildGuard); ok {
		g.CheckChild(index, w)
	}

	b.children = slices.Insert(b.children, index, w)
	c.parent = self
	if c.theme == nil && b.theme != nil {
		c.SetTheme(b.theme)
	}
	// The child may have been the root of a tree with pending layout.
	c.layoutDirty = false
	b.MarkLayoutDirty()
}

// RemoveChild removes w and releases its subtree. It reports whether w was
// a child; removing a widget that is not a child does nothing.
func (b *Base) RemoveChild(w Widget) bool {
	i := b.ChildIndex(w)
	if i < 0 {
		return false
	}
	b.RemoveChildAt(i)
	return true
}

// RemoveChildAt removes the child at index and releases its subtree. An
// out-of-range index does nothing.
func (b *Base) RemoveChildAt(index int) {
	if index < 0 || index >= len(b.children) {
		return
	}
	child := b.children[index]
	if r := b.Router(); r != nil {
		r.ForgetSubtree(child)
	}
	b.children = slices.Delete(b.children, index, index+1)
	b.MarkLayoutDirty()
	release(child)
}

// RaiseChild moves w to the end of the child list, drawing it above its
// siblings. Unlike removal it keeps w alive. It reports whether w is a
// child.
func (b *Base) RaiseChild(w Widget) bool {
	i := b.ChildIndex(w)
	if i < 0 {
		return false
	}
	b.children = append(slices.Delete(b.children, i, i+1), w)
	return true
}

// release detaches and disposes a removed subtree, children first.
func release(w Widget) {
	n := w.Node()
	for _, c := range n.children {
		release(c)
	}
	n.children = nil
	n.parent = nil
	n.focused = false
	n.focusWithin = false
	n.mouseFocus = false
	n.disposed = true
	if r, ok := w.(Releaser); ok {
		r.Released()
	}
}

// Contains reports whether p, in the parent's coordinates, lies within
// [Position, Position+Size).
func (b *Base) Contains(p graphics.Point) bool {
	return b.Bounds().Contains(p)
}

// FindWidget returns the deepest visible widget containing p, where p is in
// the parent's coordinates. It returns b's widget when no child contains p,
// and nil when b itself does not.
func (b *Base) FindWidget(p graphics.Point) Widget {
	local := p.Sub(b.pos)
	for i := len(b.children) - 1; i >= 0; i-- {
		c := b.children[i].Node()
		if !c.hidden && c.Contains(local) {
			return c.FindWidget(local)
		}
	}
	if b.Contains(p) {
		return b.self
	}
	return nil
}

// FindByID returns the first widget in depth-first order, starting with b,
// whose ID is id, or nil.
func (b *Base) FindByID(id string) Widget {
	var found Widget
	Walk(b.Self(), func(w Widget, _ int) bool {
		if found != nil {
			return false
		}
		if w.Node().id == id {
			found = w
			return false
		}
		return true
	})
	return found
}

// Walk visits w and its descendants depth-first in draw order. fn receives
// the depth below w; returning false skips the widget's children.
func Walk(w Widget, fn func(w Widget, depth int) bool) {
	walk(w, 0, fn)
}

func walk(w Widget, depth int, fn func(Widget, int) bool) {
	if !fn(w, depth) {
		return
	}
	for _, c := range w.Node().children {
		walk(c, depth+1, fn)
	}
}

// Path returns the chain from the root down to w, inclusive.
func Path(w Widget) []Widget {
	var path []Widget
	for ; w != nil; w = w.Node().parent {
		path = append(path, w)
	}
	slices.Reverse(path)
	return path
}

// Panel is a plain container that draws only its children.
type Panel struct {
	Base
}

// NewPanel creates a panel attached to parent, which may be nil.
func NewPanel(parent Widget) *Panel {
	p := &Panel{}
	p.Init(p, parent)
	return p
}

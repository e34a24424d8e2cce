package widget

import (
	"math/rand"
	"testing"

	"github.com/go-drift/trellis/pkg/errors"
	"github.com/go-drift/trellis/pkg/graphics"
	"github.com/go-drift/trellis/pkg/theme"
)

// box is a minimal widget that records the events it receives.
type box struct {
	Base
	pref     graphics.Point
	consume  bool
	buttons  []graphics.Point
	enters   []bool
	motions  int
	released int
}

func newBox(parent Widget, id string, pos, size graphics.Point) *box {
	b := &box{}
	b.Init(b, parent)
	b.SetID(id)
	b.SetPosition(pos)
	b.SetSize(size)
	return b
}

func (b *box) PreferredSize(ctx graphics.Canvas) graphics.Point {
	if b.Layout() != nil {
		return b.Base.PreferredSize(ctx)
	}
	return b.pref
}

func (b *box) MouseButtonEvent(p graphics.Point, button MouseButton, down bool, mods ModifierKey) bool {
	if b.Base.MouseButtonEvent(p, button, down, mods) {
		return true
	}
	b.buttons = append(b.buttons, p)
	return b.consume
}

func (b *box) MouseMotionEvent(p, rel graphics.Point, buttons int, mods ModifierKey) bool {
	if b.Base.MouseMotionEvent(p, rel, buttons, mods) {
		return true
	}
	b.motions++
	return b.consume
}

func (b *box) MouseEnterEvent(p graphics.Point, enter bool) bool {
	b.enters = append(b.enters, enter)
	return b.Base.MouseEnterEvent(p, enter)
}

func (b *box) Released() {
	b.released++
}

// router is a root that records what the tree reports to it.
type router struct {
	Base
	focus     Widget
	forgotten []Widget
	hovered   []Widget
}

func newRouter(size graphics.Point) *router {
	r := &router{}
	r.Init(r, nil)
	r.SetSize(size)
	r.SetTheme(theme.DefaultTheme())
	return r
}

func (r *router) UpdateFocus(w Widget) {
	if r.focus != nil {
		r.focus.FocusEvent(false)
		for _, a := range Path(r.focus) {
			a.Node().SetFocusWithin(false)
		}
	}
	r.focus = w
	if w != nil {
		path := Path(w)
		for _, a := range path[:len(path)-1] {
			a.Node().SetFocusWithin(true)
		}
		w.FocusEvent(true)
	}
}

func (r *router) UpdateMouseFocus(w Widget) { r.hovered = append(r.hovered, w) }
func (r *router) ForgetSubtree(w Widget) {
	r.forgotten = append(r.forgotten, w)
	if r.focus != nil && w.Node().IsAncestorOf(r.focus) {
		r.focus = nil
	}
}
func (r *router) Defer(fn func()) { fn() }

func expectMisuse(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if _, ok := recover().(*errors.MisuseError); !ok {
			t.Fatal("expected a *MisuseError panic")
		}
	}()
	fn()
}

func TestInitAttachesAndInheritsTheme(t *testing.T) {
	root := newRouter(graphics.Pt(100, 100))
	child := newBox(root, "child", graphics.Point{}, graphics.Pt(10, 10))

	if child.Parent() != Widget(root) {
		t.Fatalf("Parent() = %v, want root", child.Parent())
	}
	if child.Theme() != root.Theme() {
		t.Error("child should inherit the parent's theme")
	}
	if root.ChildIndex(child) != 0 {
		t.Errorf("ChildIndex = %d, want 0", root.ChildIndex(child))
	}
	if !root.NeedsLayout() {
		t.Error("adding a child should mark the tree for layout")
	}
}

func TestAddChildAtOrdering(t *testing.T) {
	root := newRouter(graphics.Pt(100, 100))
	newBox(root, "a", graphics.Point{}, graphics.Point{})
	newBox(root, "c", graphics.Point{}, graphics.Point{})
	b := newBox(nil, "b", graphics.Point{}, graphics.Point{})
	root.AddChildAt(1, b)

	var ids []string
	for _, w := range root.Children() {
		ids = append(ids, w.Node().ID())
	}
	if got := ids; len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("children = %v, want [a b c]", ids)
	}
}

func TestAddChildMisuse(t *testing.T) {
	root := newRouter(graphics.Pt(100, 100))
	a := newBox(root, "a", graphics.Point{}, graphics.Point{})
	inner := newBox(a, "inner", graphics.Point{}, graphics.Point{})

	t.Run("already parented", func(t *testing.T) {
		expectMisuse(t, func() { root.AddChild(inner) })
	})
	t.Run("cycle", func(t *testing.T) {
		detached := newBox(nil, "d", graphics.Point{}, graphics.Point{})
		sub := newBox(detached, "sub", graphics.Point{}, graphics.Point{})
		expectMisuse(t, func() { sub.AddChild(detached) })
	})
	t.Run("index out of range", func(t *testing.T) {
		expectMisuse(t, func() { root.AddChildAt(5, newBox(nil, "x", graphics.Point{}, graphics.Point{})) })
	})
	t.Run("released", func(t *testing.T) {
		gone := newBox(root, "gone", graphics.Point{}, graphics.Point{})
		root.RemoveChild(gone)
		expectMisuse(t, func() { root.AddChild(gone) })
	})
	t.Run("init not called", func(t *testing.T) {
		expectMisuse(t, func() { root.AddChild(&box{}) })
	})
}

func TestRemoveChildReleasesSubtree(t *testing.T) {
	root := newRouter(graphics.Pt(100, 100))
	parent := newBox(root, "parent", graphics.Point{}, graphics.Pt(50, 50))
	leaf := newBox(parent, "leaf", graphics.Point{}, graphics.Pt(10, 10))
	root.UpdateFocus(leaf)
	root.ClearLayoutDirty()

	if !root.RemoveChild(parent) {
		t.Fatal("RemoveChild returned false for a child")
	}
	if parent.Parent() != nil || leaf.Parent() != nil {
		t.Error("released widgets should have no parent")
	}
	if !parent.Disposed() || !leaf.Disposed() {
		t.Error("released widgets should be disposed")
	}
	if parent.ChildCount() != 0 {
		t.Error("released widget should drop its children")
	}
	if parent.released != 1 || leaf.released != 1 {
		t.Errorf("Released calls = %d/%d, want 1/1", parent.released, leaf.released)
	}
	if len(root.forgotten) != 1 || root.forgotten[0] != Widget(parent) {
		t.Errorf("ForgetSubtree calls = %v, want [parent]", root.forgotten)
	}
	if root.focus != nil {
		t.Error("removing the focused subtree should clear focus")
	}
	if !root.NeedsLayout() {
		t.Error("removing a child should mark the tree for layout")
	}
}

func TestRemoveChildMissingIsNoOp(t *testing.T) {
	root := newRouter(graphics.Pt(100, 100))
	a := newBox(root, "a", graphics.Point{}, graphics.Point{})
	stranger := newBox(nil, "stranger", graphics.Point{}, graphics.Point{})

	if root.RemoveChild(stranger) {
		t.Error("RemoveChild of a non-child should report false")
	}
	root.RemoveChildAt(-1)
	root.RemoveChildAt(7)
	if root.ChildCount() != 1 || a.Disposed() {
		t.Error("no-op removals must not touch existing children")
	}
	if len(root.forgotten) != 0 {
		t.Error("no-op removals must not notify the router")
	}
}

func TestAbsolutePosition(t *testing.T) {
	root := newRouter(graphics.Pt(200, 200))
	a := newBox(root, "a", graphics.Pt(10, 20), graphics.Pt(100, 100))
	b := newBox(a, "b", graphics.Pt(5, 5), graphics.Pt(50, 50))
	c := newBox(b, "c", graphics.Pt(1, 2), graphics.Pt(10, 10))

	for _, w := range []Widget{a, b, c} {
		n := w.Node()
		want := n.Parent().Node().AbsolutePosition().Add(n.Position())
		if got := n.AbsolutePosition(); got != want {
			t.Errorf("%s: AbsolutePosition = %v, want %v", n.ID(), got, want)
		}
	}
	if got := c.AbsolutePosition(); got != graphics.Pt(16, 27) {
		t.Errorf("c.AbsolutePosition = %v, want (16,27)", got)
	}
}

func TestFindWidget(t *testing.T) {
	root := newRouter(graphics.Pt(200, 200))
	panel := newBox(root, "panel", graphics.Pt(10, 10), graphics.Pt(100, 100))
	button := newBox(panel, "button", graphics.Pt(20, 20), graphics.Pt(30, 30))
	hidden := newBox(panel, "hidden", graphics.Pt(0, 0), graphics.Pt(100, 100))
	hidden.SetVisible(false)
	newBox(hidden, "under-hidden", graphics.Pt(0, 0), graphics.Pt(100, 100))

	tests := []struct {
		name string
		p    graphics.Point
		want Widget
	}{
		{"deepest", graphics.Pt(35, 35), button},
		{"container", graphics.Pt(15, 15), panel},
		{"root", graphics.Pt(150, 150), root},
		{"outside", graphics.Pt(250, 10), nil},
		{"far edge is exclusive", graphics.Pt(60, 60), panel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := root.FindWidget(tt.p); got != tt.want {
				t.Errorf("FindWidget(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestFindWidgetFrontToBack(t *testing.T) {
	root := newRouter(graphics.Pt(100, 100))
	newBox(root, "back", graphics.Pt(0, 0), graphics.Pt(50, 50))
	front := newBox(root, "front", graphics.Pt(0, 0), graphics.Pt(50, 50))
	if got := root.FindWidget(graphics.Pt(10, 10)); got != Widget(front) {
		t.Errorf("FindWidget = %v, want front", got)
	}
}

// FindWidget never returns a hidden widget or one that does not contain
// the point, whatever sequence of additions and removals built the tree.
func TestFindWidgetRandomTrees(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for iter := 0; iter < 50; iter++ {
		root := newRouter(graphics.Pt(400, 400))
		nodes := []Widget{root}
		for step := 0; step < 40; step++ {
			if rng.Intn(4) == 0 && len(nodes) > 1 {
				i := 1 + rng.Intn(len(nodes)-1)
				victim := nodes[i]
				if p := victim.Node().Parent(); p != nil {
					p.Node().RemoveChild(victim)
				}
				var alive []Widget
				for _, n := range nodes {
					if !n.Node().Disposed() {
						alive = append(alive, n)
					}
				}
				nodes = alive
				continue
			}
			parent := nodes[rng.Intn(len(nodes))]
			b := newBox(parent, "", graphics.Pt(rng.Intn(100), rng.Intn(100)), graphics.Pt(1+rng.Intn(150), 1+rng.Intn(150)))
			b.SetVisible(rng.Intn(5) != 0)
			nodes = append(nodes, b)
		}
		for attempt := 0; attempt < 50; attempt++ {
			p := graphics.Pt(rng.Intn(420)-10, rng.Intn(420)-10)
			w := root.FindWidget(p)
			if w == nil {
				if root.Contains(p) {
					t.Fatalf("FindWidget(%v) = nil inside the root", p)
				}
				continue
			}
			n := w.Node()
			if !n.VisibleRecursive() {
				t.Fatalf("FindWidget(%v) returned hidden widget", p)
			}
			abs := graphics.RectAt(n.AbsolutePosition(), n.Size())
			if !abs.Contains(p) {
				t.Fatalf("FindWidget(%v) returned widget at %v that does not contain it", p, abs)
			}
			if n.Disposed() {
				t.Fatalf("FindWidget(%v) returned a released widget", p)
			}
		}
	}
}

func TestMouseButtonEventCoordinatesAndFocus(t *testing.T) {
	root := newRouter(graphics.Pt(200, 200))
	panel := newBox(root, "panel", graphics.Pt(10, 10), graphics.Pt(100, 100))
	button := newBox(panel, "button", graphics.Pt(20, 20), graphics.Pt(30, 30))

	root.MouseButtonEvent(graphics.Pt(35, 35), MouseLeft, true, 0)

	if len(button.buttons) != 1 || button.buttons[0] != graphics.Pt(25, 25) {
		t.Errorf("button received %v, want [(25,25)] in its parent's space", button.buttons)
	}
	if root.focus != Widget(button) || !button.Focused() {
		t.Error("a primary press should focus the deepest widget")
	}
	if len(panel.buttons) != 1 {
		t.Error("an unconsumed event should reach the parent's own logic")
	}
}

func TestMouseButtonEventConsumedStopsPropagation(t *testing.T) {
	root := newRouter(graphics.Pt(200, 200))
	back := newBox(root, "back", graphics.Pt(0, 0), graphics.Pt(50, 50))
	front := newBox(root, "front", graphics.Pt(0, 0), graphics.Pt(50, 50))
	front.consume = true

	root.MouseButtonEvent(graphics.Pt(5, 5), MouseRight, true, 0)
	if len(front.buttons) != 1 || len(back.buttons) != 0 {
		t.Errorf("front=%d back=%d, want front only", len(front.buttons), len(back.buttons))
	}
	if root.focus != nil {
		t.Error("non-primary buttons should not request focus")
	}
}

func TestMouseMotionEnterLeave(t *testing.T) {
	root := newRouter(graphics.Pt(200, 200))
	a := newBox(root, "a", graphics.Pt(0, 0), graphics.Pt(50, 50))
	b := newBox(root, "b", graphics.Pt(40, 0), graphics.Pt(50, 50))
	b.consume = true

	// Into the overlap of a and b: b consumes the motion and sees an enter.
	root.MouseMotionEvent(graphics.Pt(45, 10), graphics.Pt(10, 0), 0, 0)
	if len(b.enters) != 1 || !b.enters[0] {
		t.Errorf("b enters = %v, want [true]", b.enters)
	}
	// Leaving both: b consumes but a must still get its leave.
	root.MouseMotionEvent(graphics.Pt(150, 150), graphics.Pt(105, 140), 0, 0)
	if len(b.enters) != 2 || b.enters[1] {
		t.Errorf("b enters = %v, want [true false]", b.enters)
	}
	if len(a.enters) != 1 || a.enters[0] {
		t.Errorf("a enters = %v, want [false]", a.enters)
	}
	if a.MouseFocus() || b.MouseFocus() {
		t.Error("hover flags should be cleared after leaving")
	}
	if len(root.hovered) != 3 {
		t.Errorf("router hover updates = %d, want 3", len(root.hovered))
	}
}

func TestDefaultPerformLayoutUsesFixedSize(t *testing.T) {
	root := newRouter(graphics.Pt(200, 200))
	a := newBox(root, "a", graphics.Point{}, graphics.Point{})
	a.pref = graphics.Pt(30, 40)
	a.SetFixedWidth(70)
	hidden := newBox(root, "hidden", graphics.Point{}, graphics.Pt(1, 1))
	hidden.pref = graphics.Pt(99, 99)
	hidden.SetVisible(false)

	root.PerformLayout(nil)
	if got := a.Size(); got != graphics.Pt(70, 40) {
		t.Errorf("Size = %v, want (70,40)", got)
	}
	if got := hidden.Size(); got != graphics.Pt(1, 1) {
		t.Errorf("hidden widget was resized to %v", got)
	}
}

func TestFindByIDAndPath(t *testing.T) {
	root := newRouter(graphics.Pt(200, 200))
	a := newBox(root, "a", graphics.Point{}, graphics.Point{})
	b := newBox(a, "b", graphics.Point{}, graphics.Point{})

	if got := root.FindByID("b"); got != Widget(b) {
		t.Errorf("FindByID(b) = %v", got)
	}
	if got := root.FindByID("nope"); got != nil {
		t.Errorf("FindByID(nope) = %v, want nil", got)
	}
	path := Path(b)
	if len(path) != 3 || path[0] != Widget(root) || path[2] != Widget(b) {
		t.Errorf("Path = %v", path)
	}

	var depths []int
	Walk(root, func(_ Widget, depth int) bool {
		depths = append(depths, depth)
		return true
	})
	if len(depths) != 3 || depths[2] != 2 {
		t.Errorf("Walk depths = %v, want [0 1 2]", depths)
	}
}

func TestVisibleRecursive(t *testing.T) {
	root := newRouter(graphics.Pt(200, 200))
	a := newBox(root, "a", graphics.Point{}, graphics.Point{})
	b := newBox(a, "b", graphics.Point{}, graphics.Point{})
	if !b.VisibleRecursive() {
		t.Error("b should be visible")
	}
	a.SetVisible(false)
	if b.VisibleRecursive() {
		t.Error("b should be hidden through its parent")
	}
	if !b.Visible() {
		t.Error("b's own flag should be unchanged")
	}
}

func TestFontSizeFallsBackToTheme(t *testing.T) {
	root := newRouter(graphics.Pt(10, 10))
	a := newBox(root, "a", graphics.Point{}, graphics.Point{})
	if got, want := a.FontSize(), root.Theme().StandardFontSize; got != want {
		t.Errorf("FontSize = %d, want %d", got, want)
	}
	a.SetFontSize(30)
	if a.FontSize() != 30 || !a.HasFontSize() {
		t.Error("override should win")
	}
}

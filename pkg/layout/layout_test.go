package layout

import (
	"testing"

	"github.com/go-drift/trellis/pkg/graphics"
	"github.com/go-drift/trellis/pkg/widget"
)

// leaf has a fixed intrinsic size.
type leaf struct {
	widget.Base
	pref graphics.Point
}

func newLeaf(parent widget.Widget, w, h int) *leaf {
	l := &leaf{pref: graphics.Pt(w, h)}
	l.Init(l, parent)
	return l
}

func (l *leaf) PreferredSize(graphics.Canvas) graphics.Point { return l.pref }

// sep is a group separator with a caption.
type sep struct {
	leaf
	caption string
}

func newSep(parent widget.Widget, caption string, h int) *sep {
	s := &sep{leaf: leaf{pref: graphics.Pt(10, h)}, caption: caption}
	s.Init(s, parent)
	return s
}

func (s *sep) SeparatorCaption() string { return s.caption }

// container is a plain widget with a layout.
type container struct {
	widget.Base
	header int
}

func newContainer(parent widget.Widget, l widget.Layout) *container {
	c := &container{}
	c.Init(c, parent)
	c.SetLayout(l)
	return c
}

// headed is a container that reserves a header.
type headed struct {
	container
}

func newHeaded(l widget.Layout, header int) *headed {
	h := &headed{container: container{header: header}}
	h.Init(h, nil)
	h.SetLayout(l)
	return h
}

func (h *headed) HeaderHeight() int { return h.header }

// geometry captures every child's position and size.
func geometry(w widget.Widget) []graphics.Rect {
	var out []graphics.Rect
	widget.Walk(w, func(c widget.Widget, depth int) bool {
		if depth > 0 {
			out = append(out, c.Node().Bounds())
		}
		return true
	})
	return out
}

func layoutTwice(t *testing.T, w widget.Widget) []graphics.Rect {
	t.Helper()
	w.PerformLayout(nil)
	first := geometry(w)
	w.PerformLayout(nil)
	second := geometry(w)
	if len(first) != len(second) {
		t.Fatalf("child count changed between layouts")
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("layout not idempotent: child %d %v then %v", i, first[i], second[i])
		}
	}
	return first
}

func TestBoxLayoutPreferredSize(t *testing.T) {
	c := newContainer(nil, NewBoxLayout(Horizontal, Middle, 0, 5))
	newLeaf(c, 10, 7)
	newLeaf(c, 20, 12)
	newLeaf(c, 30, 9)

	want := graphics.Pt(10+20+30+2*5, 12)
	if got := c.PreferredSize(nil); got != want {
		t.Errorf("PreferredSize = %v, want %v", got, want)
	}
}

func TestBoxLayoutMargins(t *testing.T) {
	c := newContainer(nil, NewBoxLayout(Vertical, Minimum, 4, 2))
	newLeaf(c, 10, 10)
	newLeaf(c, 30, 20)
	if got, want := c.PreferredSize(nil), graphics.Pt(30+8, 10+2+20+8); got != want {
		t.Errorf("PreferredSize = %v, want %v", got, want)
	}
}

func TestBoxLayoutEmpty(t *testing.T) {
	c := newContainer(nil, NewBoxLayout(Horizontal, Fill, 0, 5))
	if got := c.PreferredSize(nil); !got.IsZero() {
		t.Errorf("empty box PreferredSize = %v, want zero", got)
	}
	c.PerformLayout(nil)
}

func TestBoxLayoutAlignment(t *testing.T) {
	tests := []struct {
		align   Alignment
		wantPos graphics.Point
		wantSz  graphics.Point
	}{
		{Minimum, graphics.Pt(2, 2), graphics.Pt(10, 10)},
		{Middle, graphics.Pt(2, 45), graphics.Pt(10, 10)},
		{Maximum, graphics.Pt(2, 88), graphics.Pt(10, 10)},
		{Fill, graphics.Pt(2, 2), graphics.Pt(10, 96)},
	}
	for _, tt := range tests {
		t.Run(tt.align.String(), func(t *testing.T) {
			c := newContainer(nil, NewBoxLayout(Horizontal, tt.align, 2, 0))
			c.SetSize(graphics.Pt(100, 100))
			child := newLeaf(c, 10, 10)
			layoutTwice(t, c)
			if child.Position() != tt.wantPos || child.Size() != tt.wantSz {
				t.Errorf("child at %v size %v, want %v size %v", child.Position(), child.Size(), tt.wantPos, tt.wantSz)
			}
		})
	}
}

func TestBoxLayoutSkipsHiddenAndHonorsFixed(t *testing.T) {
	c := newContainer(nil, NewBoxLayout(Vertical, Minimum, 0, 5))
	a := newLeaf(c, 10, 10)
	hidden := newLeaf(c, 50, 50)
	hidden.SetVisible(false)
	b := newLeaf(c, 10, 10)
	b.SetFixedHeight(25)

	if got, want := c.PreferredSize(nil), graphics.Pt(10, 10+5+25); got != want {
		t.Errorf("PreferredSize = %v, want %v", got, want)
	}
	c.SetSize(c.PreferredSize(nil))
	layoutTwice(t, c)
	if a.Position() != graphics.Pt(0, 0) || b.Position() != graphics.Pt(0, 15) {
		t.Errorf("positions a=%v b=%v", a.Position(), b.Position())
	}
	if b.Size() != graphics.Pt(10, 25) {
		t.Errorf("b size = %v, want (10,25)", b.Size())
	}
}

func TestBoxLayoutHeader(t *testing.T) {
	w := newHeaded(NewBoxLayout(Vertical, Minimum, 10, 0), 30)
	child := newLeaf(w, 20, 20)
	if got, want := w.PreferredSize(nil), graphics.Pt(40, 10+25+20+10); got != want {
		t.Errorf("PreferredSize = %v, want %v", got, want)
	}
	w.SetSize(w.PreferredSize(nil))
	w.PerformLayout(nil)
	if got := child.Position(); got != graphics.Pt(10, 35) {
		t.Errorf("child Position = %v, want (10,35)", got)
	}

	row := newHeaded(NewBoxLayout(Horizontal, Minimum, 0, 0), 30)
	item := newLeaf(row, 20, 20)
	if got, want := row.PreferredSize(nil), graphics.Pt(20, 50); got != want {
		t.Errorf("horizontal PreferredSize = %v, want %v", got, want)
	}
	row.SetSize(row.PreferredSize(nil))
	row.PerformLayout(nil)
	if got := item.Position(); got != graphics.Pt(0, 30) {
		t.Errorf("horizontal child Position = %v, want (0,30)", got)
	}
}

func TestNestedLayoutRecurses(t *testing.T) {
	outer := newContainer(nil, NewBoxLayout(Vertical, Fill, 0, 0))
	inner := newContainer(outer, NewBoxLayout(Horizontal, Minimum, 0, 4))
	a := newLeaf(inner, 10, 10)
	b := newLeaf(inner, 10, 10)

	outer.SetSize(outer.PreferredSize(nil))
	layoutTwice(t, outer)
	if inner.Size() != graphics.Pt(24, 10) {
		t.Errorf("inner size = %v, want (24,10)", inner.Size())
	}
	if a.Position() != graphics.Pt(0, 0) || b.Position() != graphics.Pt(14, 0) {
		t.Errorf("nested positions a=%v b=%v", a.Position(), b.Position())
	}
}

func TestGroupLayout(t *testing.T) {
	g := &GroupLayout{Margin: 5, Spacing: 2, GroupSpacing: 10, GroupIndent: 8}
	c := newContainer(nil, g)
	title := newSep(c, "Section", 12)
	field := newLeaf(c, 40, 20)
	plain := newSep(c, "", 12)
	after := newLeaf(c, 40, 20)

	wantH := 5 + 12 + 2 + 20 + 10 + 12 + 2 + 20 + 5
	wantW := 40 + 2*5 + 8
	if got := c.PreferredSize(nil); got != graphics.Pt(wantW, wantH) {
		t.Errorf("PreferredSize = %v, want (%d,%d)", got, wantW, wantH)
	}

	c.SetSize(graphics.Pt(100, wantH))
	layoutTwice(t, c)
	checks := []struct {
		name string
		w    widget.Widget
		pos  graphics.Point
		size graphics.Point
	}{
		{"title", title, graphics.Pt(5, 5), graphics.Pt(90, 12)},
		{"indented field", field, graphics.Pt(13, 19), graphics.Pt(82, 20)},
		{"empty separator", plain, graphics.Pt(5, 49), graphics.Pt(90, 12)},
		{"not indented", after, graphics.Pt(5, 63), graphics.Pt(90, 20)},
	}
	for _, ck := range checks {
		n := ck.w.Node()
		if n.Position() != ck.pos || n.Size() != ck.size {
			t.Errorf("%s: at %v size %v, want %v size %v", ck.name, n.Position(), n.Size(), ck.pos, ck.size)
		}
	}
}

func TestGroupLayoutFixedWidth(t *testing.T) {
	c := newContainer(nil, &GroupLayout{Margin: 5, GroupIndent: 8})
	newSep(c, "Section", 12)
	fixed := newLeaf(c, 40, 20)
	fixed.SetFixedSize(graphics.Pt(30, 0))
	stretched := newLeaf(c, 40, 20)

	c.SetSize(graphics.Pt(100, 80))
	layoutTwice(t, c)
	if got := fixed.Size(); got != graphics.Pt(30, 20) {
		t.Errorf("fixed-width child size = %v, want (30,20)", got)
	}
	if got := stretched.Size(); got != graphics.Pt(82, 20) {
		t.Errorf("stretched child size = %v, want (82,20)", got)
	}
}

func TestGroupLayoutEmpty(t *testing.T) {
	c := newContainer(nil, &GroupLayout{Margin: 5})
	if got := c.PreferredSize(nil); got != graphics.Pt(10, 10) {
		t.Errorf("PreferredSize = %v, want margins only", got)
	}
}

func TestGridLayout(t *testing.T) {
	gl := NewGridLayout(Horizontal, 2, 0, 5)
	gl.DefaultAlignment = [2]Alignment{Minimum, Minimum}
	c := newContainer(nil, gl)
	a := newLeaf(c, 10, 10)
	newLeaf(c, 30, 5)
	newLeaf(c, 20, 15)
	d := newLeaf(c, 5, 5)

	want := graphics.Pt(20+5+30, 10+5+15)
	if got := c.PreferredSize(nil); got != want {
		t.Fatalf("PreferredSize = %v, want %v", got, want)
	}
	c.SetSize(want)
	layoutTwice(t, c)
	if a.Position() != graphics.Pt(0, 0) {
		t.Errorf("a at %v", a.Position())
	}
	if d.Position() != graphics.Pt(25, 15) {
		t.Errorf("d at %v, want (25,15)", d.Position())
	}
}

func TestGridLayoutStretchesAndEmpty(t *testing.T) {
	gl := NewGridLayout(Horizontal, 2, 0, 0)
	c := newContainer(nil, gl)
	c.PerformLayout(nil) // no children must not divide by zero

	a := newLeaf(c, 10, 10)
	b := newLeaf(c, 10, 10)
	c.SetSize(graphics.Pt(41, 10))
	layoutTwice(t, c)
	// 21 spare pixels split over two columns; middle alignment on x.
	if a.Size() != graphics.Pt(10, 10) || b.Position().X < 20 {
		t.Errorf("a=%v@%v b=%v@%v", a.Size(), a.Position(), b.Size(), b.Position())
	}
}

package scroll

import (
	"testing"

	"github.com/go-drift/trellis/pkg/errors"
	"github.com/go-drift/trellis/pkg/graphics"
	"github.com/go-drift/trellis/pkg/screen"
	"github.com/go-drift/trellis/pkg/serialize"
	"github.com/go-drift/trellis/pkg/widget"
)

// setup builds a 100x50 scroll panel at the screen origin holding 200
// pixels of content, with an item 100 pixels down.
func setup(t *testing.T) (*screen.Screen, *VScrollPanel, *widget.Panel, *widget.Panel) {
	t.Helper()
	s := screen.New(nil, graphics.NewRecorder(nil), graphics.Pt(300, 300), nil)
	v := New(s)
	v.SetFixedSize(graphics.Pt(100, 50))
	content := widget.NewPanel(v)
	content.SetSize(graphics.Pt(88, 200))
	item := widget.NewPanel(content)
	item.SetPosition(graphics.Pt(0, 100))
	item.SetSize(graphics.Pt(88, 20))
	s.PerformLayout(s.Canvas())
	return s, v, content, item
}

func TestSecondChildPanics(t *testing.T) {
	v := New(nil)
	widget.NewPanel(v)
	defer func() {
		if _, ok := recover().(*errors.MisuseError); !ok {
			t.Fatal("adding a second child should panic with a misuse error")
		}
	}()
	widget.NewPanel(v)
}

func TestLayoutAndPreferredSize(t *testing.T) {
	_, v, content, _ := setup(t)
	if got := v.PreferredSize(nil); got != graphics.Pt(100, 200) {
		t.Errorf("PreferredSize = %v, want (100,200)", got)
	}
	if v.Size() != graphics.Pt(100, 50) {
		t.Errorf("panel size = %v", v.Size())
	}
	if content.Size() != graphics.Pt(88, 200) || content.Position() != (graphics.Point{}) {
		t.Errorf("content at %v size %v", content.Position(), content.Size())
	}
	if got := New(nil).PreferredSize(nil); !got.IsZero() {
		t.Errorf("empty panel PreferredSize = %v", got)
	}
}

func TestScrollFractionClamped(t *testing.T) {
	_, v, content, _ := setup(t)
	tests := []struct {
		set       float64
		wantFrac  float64
		wantShift int
	}{
		{0.5, 0.5, 75},
		{2, 1, 150},
		{-1, 0, 0},
	}
	for _, tt := range tests {
		v.SetScroll(tt.set)
		if v.Scroll() != tt.wantFrac || v.Shift() != tt.wantShift {
			t.Errorf("SetScroll(%v): fraction %v shift %d, want %v and %d", tt.set, v.Scroll(), v.Shift(), tt.wantFrac, tt.wantShift)
		}
		if content.Position() != graphics.Pt(0, -tt.wantShift) {
			t.Errorf("content at %v, want (0,%d)", content.Position(), -tt.wantShift)
		}
	}
}

func TestHitTestingFollowsScroll(t *testing.T) {
	s, v, _, item := setup(t)
	if s.FindWidget(graphics.Pt(10, 30)) == widget.Widget(item) {
		t.Fatal("item is below the visible area before scrolling")
	}
	v.SetScroll(0.5)
	if got := s.FindWidget(graphics.Pt(10, 30)); got != widget.Widget(item) {
		t.Errorf("FindWidget after scrolling = %v, want item", got)
	}
	if got := s.FindWidget(graphics.Pt(95, 30)); got != widget.Widget(v) {
		t.Errorf("scrollbar strip hit %v, want the panel", got)
	}
	if got := s.FindWidget(graphics.Pt(10, 60)); got == widget.Widget(item) {
		t.Error("content outside the panel must not be hit")
	}
}

func TestWheelAndDragScroll(t *testing.T) {
	s, v, _, _ := setup(t)
	s.CursorPosCallback(10, 10)
	if !s.ScrollCallback(0, -1) {
		t.Fatal("wheel over the panel not handled")
	}
	if v.Scroll() <= 0 || v.Scroll() >= 1 {
		t.Errorf("one wheel step scrolled to %v", v.Scroll())
	}
	for range 50 {
		s.ScrollCallback(0, -1)
	}
	if v.Scroll() != 1 {
		t.Errorf("scroll = %v after many steps, want 1", v.Scroll())
	}

	s.CursorPosCallback(95, 40)
	s.MouseButtonCallback(widget.MouseLeft, widget.Press, 0)
	if s.DragWidget() != widget.Widget(v) {
		t.Fatalf("drag target = %v, want the panel", s.DragWidget())
	}
	s.CursorPosCallback(95, -100)
	s.MouseButtonCallback(widget.MouseLeft, widget.Release, 0)
	if v.Scroll() != 0 {
		t.Errorf("dragging the thumb to the top left scroll at %v", v.Scroll())
	}
}

func TestContentThatFitsDoesNotScroll(t *testing.T) {
	s := screen.New(nil, graphics.NewRecorder(nil), graphics.Pt(300, 300), nil)
	v := New(s)
	v.SetFixedSize(graphics.Pt(100, 50))
	content := widget.NewPanel(v)
	content.SetSize(graphics.Pt(88, 30))
	s.PerformLayout(s.Canvas())

	v.SetScroll(1)
	if v.Shift() != 0 || content.Position() != (graphics.Point{}) {
		t.Errorf("short content shifted by %d", v.Shift())
	}
}

func TestDrawClipsContent(t *testing.T) {
	s, v, _, _ := setup(t)
	v.SetScroll(1)
	rec := s.Canvas().(*graphics.Recorder)
	rec.BeginRecording(s.Size())
	v.Draw(rec)
	dl := rec.EndRecording()

	var scissored, shifted bool
	for _, op := range dl.Ops() {
		switch op.Kind {
		case graphics.OpScissor:
			scissored = op.Args[2] == 100 && op.Args[3] == 50
		case graphics.OpTranslate:
			if op.Args[1] == -150 {
				shifted = true
			}
		}
	}
	if !scissored {
		t.Error("content was not clipped to the panel")
	}
	if !shifted {
		t.Error("content was not drawn shifted by the scroll")
	}
}

func TestSaveLoadScroll(t *testing.T) {
	_, v, _, _ := setup(t)
	v.SetScroll(0.25)
	r := serialize.New()
	v.Save(r)
	v.SetScroll(0)
	if err := v.Load(r); err != nil {
		t.Fatal(err)
	}
	if v.Scroll() != 0.25 {
		t.Errorf("restored scroll = %v", v.Scroll())
	}
}

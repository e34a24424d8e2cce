package window

import (
	"testing"

	"github.com/go-drift/trellis/pkg/errors"
	"github.com/go-drift/trellis/pkg/graphics"
	"github.com/go-drift/trellis/pkg/widget"
)

func draw(t *testing.T, s interface {
	DrawAll()
	Canvas() graphics.Canvas
	Size() graphics.Point
}) {
	t.Helper()
	rec := s.Canvas().(*graphics.Recorder)
	rec.BeginRecording(s.Size())
	s.DrawAll()
	rec.EndRecording()
}

func TestPopupFollowsAnchor(t *testing.T) {
	s := newScreen()
	w := newWindow(s, "Main", graphics.Pt(10, 10), graphics.Pt(100, 100))
	anchor := panelAt(w, graphics.Pt(20, 40), graphics.Pt(30, 20))
	p := NewPopup(s, anchor)
	p.SetAnchorPos(graphics.Pt(30, 10))
	p.SetSize(graphics.Pt(50, 60))

	draw(t, s)
	// anchor (30,50) + offset (30,10) + arrow (15,0) - anchor offset (0,30)
	first := p.Position()
	if first != graphics.Pt(75, 30) {
		t.Fatalf("popup at %v, want (75,30)", first)
	}

	deltas := []graphics.Point{graphics.Pt(7, 3), graphics.Pt(-12, 25), graphics.Pt(0, 0)}
	for _, d := range deltas {
		before := p.Position()
		w.SetPosition(w.Position().Add(d))
		draw(t, s)
		if got := p.Position().Sub(before); got != d {
			t.Errorf("window moved by %v, popup moved by %v", d, got)
		}
	}
	if p.ParentWindow() != widget.WindowRole(w) {
		t.Error("ParentWindow should be the anchor's window")
	}
}

func TestPopupSides(t *testing.T) {
	tests := []struct {
		side Side
		want graphics.Point
	}{
		{SideRight, graphics.Pt(100+15, 100-30)},
		{SideLeft, graphics.Pt(100-15-40, 100-30)},
		{SideBottom, graphics.Pt(100-20, 100+15)},
		{SideTop, graphics.Pt(100-20, 100-15-50)},
	}
	for _, tt := range tests {
		t.Run(tt.side.String(), func(t *testing.T) {
			s := newScreen()
			anchor := panelAt(s, graphics.Pt(100, 100), graphics.Pt(1, 1))
			p := NewPopup(s, anchor)
			p.SetSide(tt.side)
			p.SetSize(graphics.Pt(40, 50))
			p.RefreshRelativePlacement()
			if p.Position() != tt.want {
				t.Errorf("%s popup at %v, want %v", tt.side, p.Position(), tt.want)
			}
		})
	}
}

func TestPopupHiddenWithAnchor(t *testing.T) {
	s := newScreen()
	w := newWindow(s, "Main", graphics.Pt(10, 10), graphics.Pt(100, 100))
	anchor := panelAt(w, graphics.Pt(20, 40), graphics.Pt(30, 20))
	p := NewPopup(s, anchor)
	p.SetSize(graphics.Pt(50, 60))

	w.SetVisible(false)
	draw(t, s)
	if p.Visible() {
		t.Error("popup visible while its anchor's window is hidden")
	}
}

func TestNestedPopupsFollowChain(t *testing.T) {
	s := newScreen()
	w := newWindow(s, "Main", graphics.Pt(10, 10), graphics.Pt(100, 100))
	anchor := panelAt(w, graphics.Pt(20, 40), graphics.Pt(30, 20))
	outer := NewPopup(s, anchor)
	outer.SetSize(graphics.Pt(60, 60))
	inner := NewPopup(s, panelAt(outer, graphics.Pt(5, 5), graphics.Pt(10, 10)))
	inner.SetSize(graphics.Pt(40, 40))

	if inner.ParentWindow() != widget.WindowRole(outer) {
		t.Fatal("inner popup should report the outer popup as its window")
	}
	draw(t, s)
	before := inner.Position()
	w.SetPosition(w.Position().Add(graphics.Pt(9, 4)))
	// Refreshing only the inner popup must pull the outer one along first.
	inner.RefreshRelativePlacement()
	if got := inner.Position().Sub(before); got != graphics.Pt(9, 4) {
		t.Errorf("nested popup moved by %v, want (9,4)", got)
	}
}

func TestPopupCycleIsReported(t *testing.T) {
	log := captureErrors(t)
	s := newScreen()
	a := NewPopup(s, nil)
	b := NewPopup(s, panelAt(a, graphics.Point{}, graphics.Pt(5, 5)))
	a.SetAnchor(panelAt(b, graphics.Point{}, graphics.Pt(5, 5)))

	a.RefreshRelativePlacement()
	if len(log.errs) == 0 || log.errs[0].Kind != errors.KindLayout {
		t.Fatalf("errors = %v, want a layout error", log.errs)
	}
	if a.Visible() && b.Visible() {
		t.Error("a popup in the cycle should have been hidden")
	}
}

func TestMoveWindowToFrontAnchorCycle(t *testing.T) {
	log := captureErrors(t)
	s := newScreen()
	a := NewPopup(s, nil)
	b := NewPopup(s, panelAt(a, graphics.Point{}, graphics.Pt(5, 5)))
	a.SetAnchor(panelAt(b, graphics.Point{}, graphics.Pt(5, 5)))
	s.RaiseChild(a)

	s.MoveWindowToFront(a)
	if len(log.errs) != 1 || log.errs[0].Kind != errors.KindLayout {
		t.Fatalf("errors = %v, want one layout error", log.errs)
	}
	if s.ChildIndex(b) < s.ChildIndex(a) {
		t.Error("popup anchored to the raised window should sit above it")
	}
}

func TestPopupDetachedAnchor(t *testing.T) {
	log := captureErrors(t)
	s := newScreen()
	w := newWindow(s, "Main", graphics.Pt(10, 10), graphics.Pt(100, 100))
	anchor := panelAt(w, graphics.Pt(20, 40), graphics.Pt(30, 20))
	p := NewPopup(s, anchor)
	w.RemoveChild(anchor)

	draw(t, s)
	if p.Visible() {
		t.Error("popup with a released anchor should hide")
	}
	if len(log.errs) == 0 {
		t.Error("detached anchor was not reported")
	}
}

func TestDisposablePopupRemovesItself(t *testing.T) {
	s := newScreen()
	anchor := panelAt(s, graphics.Pt(0, 0), graphics.Pt(10, 10))
	keep := NewPopup(s, anchor)
	gone := NewPopup(s, anchor)
	gone.SetDisposable(true)

	keep.Close()
	gone.Close()
	if keep.Disposed() || keep.Visible() {
		t.Error("a regular popup should only hide on Close")
	}
	if !gone.Disposed() || s.ChildIndex(gone) >= 0 {
		t.Error("a disposable popup should be removed on Close")
	}
}

func TestPopupSingleChildFills(t *testing.T) {
	s := newScreen()
	anchor := panelAt(s, graphics.Pt(0, 0), graphics.Pt(10, 10))
	p := NewPopup(s, anchor)
	p.SetSize(graphics.Pt(80, 40))
	content := widget.NewPanel(p)
	p.PerformLayout(s.Canvas())
	if content.Position() != (graphics.Point{}) || content.Size() != graphics.Pt(80, 40) {
		t.Errorf("content at %v size %v", content.Position(), content.Size())
	}
}

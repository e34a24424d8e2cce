package widgets_test

import (
	"testing"

	"github.com/go-drift/trellis/pkg/errors"
	"github.com/go-drift/trellis/pkg/graphics"
	trellistest "github.com/go-drift/trellis/pkg/testing"
	"github.com/go-drift/trellis/pkg/widget"
	"github.com/go-drift/trellis/pkg/widgets"
	"github.com/go-drift/trellis/pkg/window"
)

// toolWindow returns an untitled window at (20, 20) holding nothing yet.
func toolWindow(tester *trellistest.ScreenTester) *window.Window {
	w := window.New(tester.Screen(), "")
	w.SetPosition(graphics.Pt(20, 20))
	w.SetFixedSize(graphics.Pt(200, 120))
	return w
}

func TestPopupButton_TogglesPopup(t *testing.T) {
	tester := trellistest.NewScreenTesterWithT(t)
	w := toolWindow(tester)
	pb := widgets.NewPopupButton(w, "More")
	pb.SetPosition(graphics.Pt(10, 10))
	pb.SetFixedSize(graphics.Pt(120, 30))
	tester.Pump()

	if pb.Popup().Visible() {
		t.Fatal("popup should start hidden")
	}
	tester.Tap(trellistest.ByCaption("More"))
	if !pb.Pushed() || !pb.Popup().VisibleRecursive() {
		t.Fatal("tap should push the button and show the popup")
	}
	tester.Pump()
	if got := pb.Popup().AnchorPos(); got != graphics.Pt(190, 15) {
		t.Errorf("anchor = %v, want the window's right edge level with the button", got)
	}
	tester.Tap(trellistest.ByCaption("More"))
	if pb.Pushed() || pb.Popup().Visible() {
		t.Error("second tap should hide the popup")
	}
}

func TestPopupButton_SidePopupsReleaseEachOther(t *testing.T) {
	tester := trellistest.NewScreenTesterWithT(t)
	w := toolWindow(tester)
	a := widgets.NewPopupButton(w, "A")
	a.SetPosition(graphics.Pt(10, 10))
	a.SetFixedSize(graphics.Pt(80, 30))
	b := widgets.NewPopupButton(w, "B")
	b.SetPosition(graphics.Pt(10, 50))
	b.SetFixedSize(graphics.Pt(80, 30))
	tester.Pump()

	tester.Tap(trellistest.ByCaption("A"))
	tester.Tap(trellistest.ByCaption("B"))
	if a.Pushed() || a.Popup().Visible() {
		t.Error("opening B should close A")
	}
	if !b.Popup().Visible() {
		t.Error("B's popup should be open")
	}
}

func TestPopupButton_LeftSide(t *testing.T) {
	tester := trellistest.NewScreenTesterWithT(t)
	w := toolWindow(tester)
	pb := widgets.NewPopupButton(w, "More")
	pb.SetPosition(graphics.Pt(10, 10))
	pb.SetFixedSize(graphics.Pt(120, 30))
	pb.SetSide(window.SideLeft)
	tester.Pump()

	if got := pb.Popup().AnchorPos(); got.X != -10 {
		t.Errorf("left anchor = %v, want x at the window's left edge", got)
	}
}

func TestPopupButton_RemovalDisposesPopup(t *testing.T) {
	tester := trellistest.NewScreenTesterWithT(t)
	w := toolWindow(tester)
	pb := widgets.NewPopupButton(w, "More")
	popup := pb.Popup()
	if popup.Parent() != widget.Widget(tester.Screen()) {
		t.Fatal("popup should live on the screen")
	}

	w.RemoveChild(pb)
	if popup.Parent() != nil {
		t.Error("popup should leave the screen with its button")
	}
}

func TestPopupButton_DisabledStaysClosed(t *testing.T) {
	tester := trellistest.NewScreenTesterWithT(t)
	w := toolWindow(tester)
	pb := widgets.NewPopupButton(w, "More")
	pb.SetFixedSize(graphics.Pt(120, 30))
	pb.SetPushed(true)
	pb.SetEnabled(false)
	tester.Pump()

	if pb.Pushed() || pb.Popup().Visible() {
		t.Error("a disabled popup button must release its popup")
	}
}

func TestNewPopupButton_DetachedParent(t *testing.T) {
	defer func() {
		if _, ok := recover().(*errors.MisuseError); !ok {
			t.Error("expected a misuse panic for a detached parent")
		}
	}()
	widgets.NewPopupButton(widget.NewPanel(nil), "More")
}

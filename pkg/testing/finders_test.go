package testing

import (
	"testing"

	"github.com/go-drift/trellis/pkg/testing/internal/testbed"
	"github.com/go-drift/trellis/pkg/widget"
	"github.com/go-drift/trellis/pkg/widgets"
	"github.com/go-drift/trellis/pkg/window"
)

// buildTree creates a window holding a label, two buttons and a counter,
// plus a loose counter on the screen.
func buildTree(t *testing.T) *ScreenTester {
	t.Helper()
	tester := NewScreenTesterWithT(t)
	w := window.New(tester.Screen(), "Tools")
	w.SetID("tools")
	widgets.NewLabel(w, "Actions")
	widgets.NewButton(w, "Open file")
	widgets.NewButton(w, "Close").SetID("close")
	testbed.NewCounter(w, 3, nil)
	testbed.NewCounter(tester.Screen(), 5, nil)
	return tester
}

func TestByType(t *testing.T) {
	tester := buildTree(t)
	if n := tester.Find(ByType[*widgets.Button]()).Count(); n != 2 {
		t.Errorf("found %d buttons, want 2", n)
	}
	if n := tester.Find(ByType[*testbed.Counter]()).Count(); n != 2 {
		t.Errorf("found %d counters, want 2", n)
	}
}

func TestByID(t *testing.T) {
	tester := buildTree(t)
	b, ok := tester.Find(ByID("close")).First().(*widgets.Button)
	if !ok || b.Caption() != "Close" {
		t.Errorf("ByID(close) = %v", b)
	}
	if tester.Find(ByID("missing")).Exists() {
		t.Error("should not find a missing ID")
	}
}

func TestByCaption(t *testing.T) {
	tester := buildTree(t)
	if !tester.Find(ByCaption("Tools")).Exists() {
		t.Error("window title should match")
	}
	if !tester.Find(ByCaption("Actions")).Exists() {
		t.Error("label caption should match")
	}
	if tester.Find(ByCaption("Open")).Exists() {
		t.Error("ByCaption must match exactly")
	}
	if !tester.Find(ByCaptionContaining("Open")).Exists() {
		t.Error("ByCaptionContaining should match a substring")
	}
}

func TestVisible(t *testing.T) {
	tester := buildTree(t)
	tester.Find(ByID("tools")).First().Node().SetVisible(false)

	if n := tester.Find(Visible(ByType[*testbed.Counter]())).Count(); n != 1 {
		t.Errorf("found %d visible counters, want 1", n)
	}
}

func TestDescendantAndAncestor(t *testing.T) {
	tester := buildTree(t)

	inside := tester.Find(Descendant(ByID("tools"), ByType[*testbed.Counter]()))
	if inside.Count() != 1 || inside.First().(*testbed.Counter).Count() != 3 {
		t.Errorf("Descendant found %d counters", inside.Count())
	}
	windows := tester.Find(Ancestor(ByCaption("Close"), ByType[*window.Window]()))
	if windows.Count() != 1 {
		t.Errorf("Ancestor found %d windows, want 1", windows.Count())
	}
}

func TestByPredicate(t *testing.T) {
	tester := buildTree(t)
	roots := tester.Find(ByPredicate(func(w widget.Widget) bool {
		return w.Node().Parent() == nil
	}))
	if roots.Count() != 1 || roots.First() != widget.Widget(tester.Screen()) {
		t.Errorf("predicate matched %v", roots.All())
	}
}

func TestFinderResult_Panics(t *testing.T) {
	tester := buildTree(t)
	r := tester.Find(ByID("missing"))
	if r.FirstOrNil() != nil {
		t.Error("FirstOrNil should be nil")
	}
	for name, fn := range map[string]func(){
		"First": func() { r.First() },
		"At":    func() { r.At(3) },
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("%s should panic on no match", name)
				}
			}()
			fn()
		}()
	}
}

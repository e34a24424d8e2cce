package widgets_test

import (
	"slices"
	"testing"

	"github.com/go-drift/trellis/pkg/errors"
	"github.com/go-drift/trellis/pkg/graphics"
	"github.com/go-drift/trellis/pkg/serialize"
	trellistest "github.com/go-drift/trellis/pkg/testing"
	"github.com/go-drift/trellis/pkg/widgets"
)

func newCombo(t *testing.T) (*trellistest.ScreenTester, *widgets.ComboBox) {
	t.Helper()
	tester := trellistest.NewScreenTesterWithT(t)
	w := toolWindow(tester)
	c := widgets.NewComboBox(w, []string{"Small", "Medium", "Large"})
	c.SetPosition(graphics.Pt(10, 10))
	c.SetFixedSize(graphics.Pt(120, 30))
	tester.Pump()
	return tester, c
}

func TestComboBox_Defaults(t *testing.T) {
	_, c := newCombo(t)
	if c.SelectedIndex() != 0 || c.Caption() != "Small" {
		t.Errorf("selected %d %q", c.SelectedIndex(), c.Caption())
	}
	if n := c.Popup().ChildCount(); n != 3 {
		t.Errorf("popup holds %d item buttons, want 3", n)
	}
}

func TestComboBox_PickFromPopup(t *testing.T) {
	tester, c := newCombo(t)
	var picked []int
	c.SetCallback(func(i int) { picked = append(picked, i) })

	tester.Tap(trellistest.ByCaption("Small"))
	if !c.Popup().Visible() {
		t.Fatal("tap should open the list")
	}
	tester.Pump()
	if err := tester.Tap(trellistest.Visible(trellistest.ByCaption("Large"))); err != nil {
		t.Fatal(err)
	}
	if c.SelectedIndex() != 2 || c.Caption() != "Large" {
		t.Errorf("selected %d %q", c.SelectedIndex(), c.Caption())
	}
	if c.Pushed() || c.Popup().Visible() {
		t.Error("picking an item should close the list")
	}
	if !slices.Equal(picked, []int{2}) {
		t.Errorf("callbacks = %v", picked)
	}
}

func TestComboBox_ScrollSteps(t *testing.T) {
	tester, c := newCombo(t)
	tester.MoveTo(graphics.Pt(90, 45))

	tester.Scroll(0, -1)
	tester.Scroll(0, -1)
	tester.Scroll(0, -1)
	if c.SelectedIndex() != 2 {
		t.Errorf("scrolling down selected %d, want the last item", c.SelectedIndex())
	}
	tester.Scroll(0, 1)
	if c.SelectedIndex() != 1 {
		t.Errorf("scrolling up selected %d, want 1", c.SelectedIndex())
	}
}

func TestComboBox_ShortItems(t *testing.T) {
	_, c := newCombo(t)
	c.SetItems([]string{"Kilogram", "Gram"}, []string{"kg", "g"})
	c.SetSelectedIndex(1)
	if c.Caption() != "g" {
		t.Errorf("caption = %q, want the short item", c.Caption())
	}
	if got := c.Popup().ChildAt(1).(*widgets.Button).Caption(); got != "Gram" {
		t.Errorf("popup item = %q, want the long item", got)
	}
}

func TestComboBox_Misuse(t *testing.T) {
	_, c := newCombo(t)
	for name, fn := range map[string]func(){
		"index":    func() { c.SetSelectedIndex(5) },
		"mismatch": func() { c.SetItems([]string{"a", "b"}, []string{"a"}) },
	} {
		func() {
			defer func() {
				if _, ok := recover().(*errors.MisuseError); !ok {
					t.Errorf("%s: expected a misuse panic", name)
				}
			}()
			fn()
		}()
	}
}

func TestComboBox_SaveLoad(t *testing.T) {
	tester, c := newCombo(t)
	c.SetSelectedIndex(1)
	r := serialize.New()
	c.Save(r)

	restored := widgets.NewComboBox(tester.Screen(), []string{"Small", "Medium", "Large"})
	if err := restored.Load(r); err != nil {
		t.Fatal(err)
	}
	if restored.SelectedIndex() != 1 || restored.Caption() != "Medium" {
		t.Errorf("restored %d %q", restored.SelectedIndex(), restored.Caption())
	}
}

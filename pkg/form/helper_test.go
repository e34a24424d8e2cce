package form_test

import (
	"testing"

	"github.com/go-drift/trellis/pkg/errors"
	"github.com/go-drift/trellis/pkg/form"
	"github.com/go-drift/trellis/pkg/graphics"
	trellistest "github.com/go-drift/trellis/pkg/testing"
	"github.com/go-drift/trellis/pkg/widget"
	"github.com/go-drift/trellis/pkg/widgets"
	"github.com/go-drift/trellis/pkg/window"
)

type settings struct {
	name    string
	count   int
	ratio   float64
	enabled bool
	mode    int
	tint    graphics.Color
}

func newForm(t *testing.T) (*trellistest.ScreenTester, *form.Helper, *settings) {
	t.Helper()
	tester := trellistest.NewScreenTesterWithT(t)
	s := &settings{name: "sensor", count: 3, ratio: 0.5, mode: 1, tint: graphics.RGB(255, 0, 0)}
	h := form.New(tester.Screen(), nil)
	h.SetFixedSize(graphics.Pt(120, 20))
	h.AddWindow(graphics.Pt(10, 10), "Settings")
	h.AddGroup("General")
	mustAdd(t)(h.AddString("Name", &s.name))
	mustAdd(t)(h.AddInt("Count", &s.count))
	mustAdd(t)(h.AddFloat("Ratio", &s.ratio))
	h.AddGroup("Flags")
	mustAdd(t)(h.AddBool("Enabled", &s.enabled))
	mustAdd(t)(h.AddEnum("Mode", &s.mode, []string{"Fast", "Balanced", "Exact"}))
	mustAdd(t)(h.AddColor("Tint", &s.tint))
	tester.Pump()
	return tester, h, s
}

func mustAdd(t *testing.T) func(form.Editor, error) form.Editor {
	return func(ed form.Editor, err error) form.Editor {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
		ed.Widget().Node().SetID("editor")
		return ed
	}
}

// editorFor returns the editor in the row labeled caption.
func editorFor(tester *trellistest.ScreenTester, caption string) widget.Widget {
	lbl := tester.Find(trellistest.ByCaption(caption)).First()
	for _, c := range lbl.Node().Parent().Node().Children() {
		n := c.Node()
		if n.ID() == "editor" && n.Position().Y == lbl.Node().Position().Y {
			return c
		}
	}
	return nil
}

func TestHelper_LayoutRows(t *testing.T) {
	tester, h, _ := newForm(t)
	w := h.Window()

	name := tester.Find(trellistest.ByCaption("Name")).First().Node()
	if name.Position().X != 20 {
		t.Errorf("label x = %d, want margin plus the first column", name.Position().X)
	}
	ed := editorFor(tester, "Name")
	if ed == nil {
		t.Fatal("no editor beside the Name label")
	}
	if ed.Node().Size() != graphics.Pt(120, 20) {
		t.Errorf("editor size = %v, want the helper's fixed size", ed.Node().Size())
	}
	if right := ed.Node().Position().X + ed.Node().Width(); right != w.Width()-10 {
		t.Errorf("editor ends at %d, want the window's right margin %d", right, w.Width()-10)
	}
	general := tester.Find(trellistest.ByCaption("General")).First().Node()
	if general.Position().Y >= name.Position().Y {
		t.Error("group caption should precede its rows")
	}
	if general.FontSize() != 20 {
		t.Errorf("group font size = %d", general.FontSize())
	}
}

func TestHelper_EditsUpdateVariables(t *testing.T) {
	tester, _, s := newForm(t)

	tester.EnterText(trellistest.ByPredicate(func(w widget.Widget) bool {
		return w == editorFor(tester, "Count")
	}), "12")
	if s.count != 12 {
		t.Errorf("count = %d after editing", s.count)
	}

	tester.Tap(trellistest.ByPredicate(func(w widget.Widget) bool {
		return w == editorFor(tester, "Enabled")
	}))
	if !s.enabled {
		t.Error("tapping the check box should set the flag")
	}

	tester.EnterText(trellistest.ByPredicate(func(w widget.Widget) bool {
		return w == editorFor(tester, "Tint")
	}), "#00ff0080")
	if s.tint != graphics.RGBA(0, 255, 0, 128) {
		t.Errorf("tint = %v", s.tint)
	}
}

func TestHelper_EnumScroll(t *testing.T) {
	tester, _, s := newForm(t)
	combo := editorFor(tester, "Mode").(*widgets.ComboBox)

	n := combo.Node()
	tester.MoveTo(n.AbsolutePosition().Add(n.Size().Div(2)))
	tester.Scroll(0, -1)
	if s.mode != 2 || combo.Caption() != "Exact" {
		t.Errorf("mode = %d caption %q", s.mode, combo.Caption())
	}
}

func TestHelper_Refresh(t *testing.T) {
	tester, h, s := newForm(t)
	s.name = "changed"
	s.enabled = true
	h.Refresh()

	if got := editorFor(tester, "Name").(*widgets.TextBox).Value(); got != "changed" {
		t.Errorf("name editor shows %q", got)
	}
	if !editorFor(tester, "Enabled").(*widgets.CheckBox).Checked() {
		t.Error("check box not refreshed")
	}
}

func TestHelper_ReadOnlyVariable(t *testing.T) {
	tester := trellistest.NewScreenTesterWithT(t)
	h := form.New(tester.Screen(), nil)
	h.AddWindow(graphics.Point{}, "")
	ed, err := h.AddVariable("Version", form.KindString, func() any { return "1.0" }, nil)
	if err != nil {
		t.Fatal(err)
	}
	if ed.Widget().(*widgets.TextBox).Editable() {
		t.Error("a row without a setter should be read-only")
	}
}

func TestHelper_TypeMismatch(t *testing.T) {
	tester := trellistest.NewScreenTesterWithT(t)
	h := form.New(tester.Screen(), nil)
	w := h.AddWindow(graphics.Point{}, "")

	_, err := h.AddVariable("Bad", form.KindInt, func() any { return "seven" }, nil)
	if err == nil {
		t.Fatal("expected an error for a string bound to an int editor")
	}
	if w.ChildCount() != 0 {
		t.Errorf("failed row left %d widgets behind", w.ChildCount())
	}
}

func TestHelper_UnknownKind(t *testing.T) {
	tester := trellistest.NewScreenTesterWithT(t)
	h := form.New(tester.Screen(), form.NewRegistry())
	h.AddWindow(graphics.Point{}, "")

	_, err := h.AddVariable("Vec", "vector", func() any { return nil }, nil)
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

// sliderEditor edits a float in [0, 1] with a slider.
type sliderEditor struct {
	*widgets.Slider
}

func (e *sliderEditor) Widget() widget.Widget { return e.Slider }
func (e *sliderEditor) Value() any            { return e.Slider.Value() }
func (e *sliderEditor) SetEditable(v bool)    { e.SetEnabled(v) }
func (e *sliderEditor) SetOnChange(fn func(any)) {
	e.SetFinalCallback(func(v float64) { fn(v) })
}

func (e *sliderEditor) SetValue(v any) error {
	f, ok := v.(float64)
	if !ok {
		return errors.New("not a float")
	}
	e.Slider.SetValue(f)
	return nil
}

func TestHelper_CustomKind(t *testing.T) {
	tester := trellistest.NewScreenTesterWithT(t)
	reg := form.NewRegistry()
	reg.Register("fraction", func(parent widget.Widget, _ form.Options) form.Editor {
		return &sliderEditor{widgets.NewSlider(parent)}
	})
	h := form.New(tester.Screen(), reg)
	h.AddWindow(graphics.Point{}, "")

	v := 0.25
	ed, err := h.AddVariable("Opacity", "fraction", func() any { return v }, func(x any) { v = x.(float64) })
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := ed.Widget().(*widgets.Slider); !ok {
		t.Fatalf("editor widget = %T", ed.Widget())
	}
	if ed.Value() != 0.25 {
		t.Errorf("Value() = %v", ed.Value())
	}
}

func TestHelper_RefreshReportsRejectedValue(t *testing.T) {
	tester := trellistest.NewScreenTesterWithT(t)
	reg := form.NewRegistry()
	reg.Register("fraction", func(parent widget.Widget, _ form.Options) form.Editor {
		return &sliderEditor{widgets.NewSlider(parent)}
	})
	h := form.New(tester.Screen(), reg)
	h.AddWindow(graphics.Point{}, "")

	var v any = 0.25
	ed, err := h.AddVariable("Opacity", "fraction", func() any { return v }, nil)
	if err != nil {
		t.Fatal(err)
	}
	v = "half"
	h.Refresh()

	errs := tester.Errors()
	if len(errs) != 1 {
		t.Fatalf("collected %d errors, want 1", len(errs))
	}
	if errs[0].Kind != errors.KindMisuse || errs[0].Widget != "Opacity" {
		t.Errorf("error = %+v, want a misuse error for Opacity", errs[0])
	}
	if ed.Value() != 0.25 {
		t.Errorf("Value() = %v, want the previous value kept", ed.Value())
	}
}

func TestHelper_Misuse(t *testing.T) {
	tester := trellistest.NewScreenTesterWithT(t)
	h := form.New(tester.Screen(), nil)
	for name, fn := range map[string]func(){
		"group before window": func() { h.AddGroup("x") },
		"plain window":        func() { h.SetWindow(window.New(tester.Screen(), "plain")) },
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

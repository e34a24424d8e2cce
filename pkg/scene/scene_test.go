package scene_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-drift/trellis/pkg/errors"
	"github.com/go-drift/trellis/pkg/graphics"
	"github.com/go-drift/trellis/pkg/scene"
	trellistest "github.com/go-drift/trellis/pkg/testing"
	"github.com/go-drift/trellis/pkg/widget"
	"github.com/go-drift/trellis/pkg/widgets"
	"github.com/go-drift/trellis/pkg/window"
)

func buildFile(t *testing.T, path string) *trellistest.ScreenTester {
	t.Helper()
	s, err := scene.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	tester := trellistest.NewScreenTesterWithT(t)
	tester.SetSize(graphics.Pt(s.Width, s.Height))
	if _, err := s.Build(tester.Screen(), nil); err != nil {
		t.Fatal(err)
	}
	if err := tester.Pump(); err != nil {
		t.Fatal(err)
	}
	return tester
}

func TestLoad_YAML(t *testing.T) {
	tester := buildFile(t, "testdata/demo.yaml")

	if tester.Screen().Size() != graphics.Pt(640, 480) {
		t.Errorf("screen size = %v", tester.Screen().Size())
	}
	tools := tester.Find(trellistest.ByID("tools")).First().(*window.Window)
	if tools.Title() != "Button demo" || tools.Position() != graphics.Pt(15, 15) {
		t.Errorf("tools window %q at %v", tools.Title(), tools.Position())
	}
	toggle := tester.Find(trellistest.ByID("toggle")).First().(*widgets.Button)
	if toggle.Flags() != widgets.ButtonToggle {
		t.Errorf("toggle flags = %v", toggle.Flags())
	}
	if tip := tester.Find(trellistest.ByID("plain")).First().Node().Tooltip(); tip != "short tooltip" {
		t.Errorf("tooltip = %q", tip)
	}

	combo := tester.Find(trellistest.ByID("combo")).First().(*widgets.ComboBox)
	if combo.SelectedIndex() != 1 {
		t.Errorf("combo selected %d", combo.SelectedIndex())
	}
	count := tester.Find(trellistest.ByID("count")).First().(*widgets.IntBox)
	if lo, hi, ok := count.Range(); !ok || lo != 1 || hi != 100 || count.IntValue() != 50 {
		t.Errorf("int box %d in [%d,%d]", count.IntValue(), lo, hi)
	}
	if v := tester.Find(trellistest.ByID("ratio")).First().(*widgets.FloatBox).Value(); v != "0.25" {
		t.Errorf("float box shows %q", v)
	}
}

func TestLoad_PopupChildren(t *testing.T) {
	tester := buildFile(t, "testdata/demo.yaml")
	more := tester.Find(trellistest.ByID("more")).First().(*widgets.PopupButton)

	cb := tester.Find(trellistest.ByCaption("Another check box")).First()
	if cb.Node().Parent() != widget.Widget(more.Popup()) {
		t.Error("popup button children should be placed in its popup")
	}
	if !cb.(*widgets.CheckBox).Checked() {
		t.Error("checked property not applied")
	}
	if more.Popup().Layout() == nil {
		t.Error("layout should be applied to the popup")
	}
}

func TestLoad_GroupLayoutApplied(t *testing.T) {
	tester := buildFile(t, "testdata/demo.yaml")
	plain := tester.Find(trellistest.ByID("plain")).First().Node()
	heading := tester.Find(trellistest.ByCaption("Push buttons")).First().Node()

	if plain.Position().X <= heading.Position().X {
		t.Errorf("button at %v should be indented past its group caption at %v", plain.Position(), heading.Position())
	}
	if plain.Position().Y <= heading.Position().Y {
		t.Error("button should be below its caption")
	}
}

func TestLoad_TOMLMatchesYAML(t *testing.T) {
	tester := buildFile(t, "testdata/demo.toml")

	if tester.Screen().Size() != graphics.Pt(640, 480) {
		t.Errorf("screen size = %v", tester.Screen().Size())
	}
	combo := tester.Find(trellistest.ByID("combo")).First().(*widgets.ComboBox)
	if combo.Caption() != "Combo box item 2" {
		t.Errorf("combo caption = %q", combo.Caption())
	}
	if v := tester.Find(trellistest.ByID("slider")).First().(*widgets.Slider).Value(); v != 0.5 {
		t.Errorf("slider value = %v", v)
	}
	if tester.Find(trellistest.ByID("toggle")).First().(*widgets.Button).Flags() != widgets.ButtonToggle {
		t.Error("toggle flags not applied")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := scene.Load(filepath.Join(t.TempDir(), "none.yaml"))
	var te *errors.TrellisError
	if !errors.As(err, &te) || te.Kind != errors.KindIO {
		t.Errorf("error = %v, want an IO error", err)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"unknown key", "colors: {}", `unknown scene key "colors"`},
		{"missing type", "widgets:\n  - caption: x", "widgets[0]: missing type"},
		{"widgets not a list", "widgets: 3", "expected a list"},
		{"bad yaml", "widgets: [", "parse scene"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scene.Parse([]byte(tt.src))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind errors.ErrorKind
		want string
	}{
		{"unknown type", "widgets:\n  - type: knob", errors.KindMissing, `unknown widget type "knob"`},
		{"unknown prop", "widgets:\n  - type: label\n    colour: red", errors.KindMisuse, "unknown label properties: colour"},
		{"wrong type", "widgets:\n  - type: check_box\n    checked: yes please", errors.KindMisuse, "expected a boolean"},
		{"bad flag", "widgets:\n  - type: button\n    flags: sticky", errors.KindMisuse, `unknown button flag "sticky"`},
		{"bad color", "widgets:\n  - type: label\n    color: nocolor", errors.KindMisuse, "unknown color name"},
		{"bad layout", "widgets:\n  - type: panel\n    layout: {type: flow}", errors.KindMisuse, `unknown layout type "flow"`},
		{"two scroll children", "widgets:\n  - type: vscroll\n    children: [{type: panel}, {type: panel}]", errors.KindMisuse, "single child"},
		{"short items mismatch", "widgets:\n  - type: combo_box\n    items: [a, b]\n    short_items: [a]", errors.KindMisuse, "short items"},
		{"nested", "widgets:\n  - type: panel\n    children:\n      - type: slider\n        value: high", errors.KindMisuse, "widgets[0].children[0]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := scene.Parse([]byte(tt.src))
			if err != nil {
				t.Fatal(err)
			}
			tester := trellistest.NewScreenTesterWithT(t)
			_, err = s.Build(tester.Screen(), nil)
			var te *errors.TrellisError
			if !errors.As(err, &te) {
				t.Fatalf("error = %v, want a TrellisError", err)
			}
			if te.Kind != tt.kind || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v (%v), want %v containing %q", err, te.Kind, tt.kind, tt.want)
			}
			if n := tester.Screen().ChildCount(); n != 0 {
				t.Errorf("failed build left %d widgets on the screen", n)
			}
		})
	}
}

func TestBuild_KeepsEarlierWidgets(t *testing.T) {
	s, err := scene.Parse([]byte("widgets:\n  - type: label\n    caption: ok\n  - type: knob"))
	if err != nil {
		t.Fatal(err)
	}
	tester := trellistest.NewScreenTesterWithT(t)
	built, err := s.Build(tester.Screen(), nil)
	if err == nil || len(built) != 1 {
		t.Fatalf("built %d widgets, err %v", len(built), err)
	}
	if tester.Screen().ChildCount() != 1 {
		t.Errorf("screen has %d children", tester.Screen().ChildCount())
	}
}

// swatch is a custom widget registered by a test.
type swatch struct {
	widget.Base
	color graphics.Color
}

func TestRegistry_CustomType(t *testing.T) {
	reg := scene.NewRegistry()
	reg.Register("swatch", func(parent widget.Widget, n *scene.Node) (widget.Widget, error) {
		c, err := n.Color("color", graphics.RGB(0, 0, 0))
		if err != nil {
			return nil, err
		}
		sw := &swatch{color: c}
		sw.Init(sw, parent)
		return sw, nil
	})
	s, err := scene.Parse([]byte("widgets:\n  - type: swatch\n    id: sw\n    color: steelblue\n    fixed_size: [20, 20]"))
	if err != nil {
		t.Fatal(err)
	}
	tester := trellistest.NewScreenTesterWithT(t)
	if _, err := s.Build(tester.Screen(), reg); err != nil {
		t.Fatal(err)
	}
	sw := tester.Find(trellistest.ByID("sw")).First().(*swatch)
	if sw.color != graphics.RGB(70, 130, 180) || sw.FixedSize() != graphics.Pt(20, 20) {
		t.Errorf("swatch %v size %v", sw.color, sw.FixedSize())
	}
	if _, ok := scene.DefaultRegistry.Lookup("swatch"); ok {
		t.Error("registering on a new registry must not touch the default one")
	}
}

func TestRegistry_Types(t *testing.T) {
	types := scene.NewRegistry().Types()
	for _, want := range []string{"button", "combo_box", "label", "vscroll", "window"} {
		found := false
		for _, got := range types {
			found = found || got == want
		}
		if !found {
			t.Errorf("Types() = %v, missing %q", types, want)
		}
	}
}

func TestLoad_ExtensionSelectsFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "one.TOML")
	if err := os.WriteFile(path, []byte("[[widgets]]\ntype = \"label\"\ncaption = \"hi\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := scene.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Widgets) != 1 || s.Widgets[0].Type != "label" {
		t.Errorf("widgets = %+v", s.Widgets)
	}
}

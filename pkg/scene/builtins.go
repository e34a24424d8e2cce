package scene

import (
	"fmt"
	"strings"

	"github.com/go-drift/trellis/pkg/graphics"
	"github.com/go-drift/trellis/pkg/scroll"
	"github.com/go-drift/trellis/pkg/widget"
	"github.com/go-drift/trellis/pkg/widgets"
	"github.com/go-drift/trellis/pkg/window"
)

var builtins = map[string]Factory{
	"panel":        buildPanel,
	"window":       buildWindow,
	"label":        buildLabel,
	"button":       buildButton,
	"popup_button": buildPopupButton,
	"combo_box":    buildComboBox,
	"check_box":    buildCheckBox,
	"text_box":     buildTextBox,
	"int_box":      buildIntBox,
	"float_box":    buildFloatBox,
	"slider":       buildSlider,
	"vscroll":      buildVScroll,
}

// reader reads several properties, keeping the first error.
type reader struct {
	n   *Node
	err error
}

func (r *reader) str(key, def string) string {
	if r.err != nil {
		return def
	}
	v, err := r.n.String(key, def)
	r.err = err
	return v
}

func (r *reader) boolean(key string, def bool) bool {
	if r.err != nil {
		return def
	}
	v, err := r.n.Bool(key, def)
	r.err = err
	return v
}

func (r *reader) integer(key string, def int) int {
	if r.err != nil {
		return def
	}
	v, err := r.n.Int(key, def)
	r.err = err
	return v
}

func (r *reader) float(key string, def float64) float64 {
	if r.err != nil {
		return def
	}
	v, err := r.n.Float(key, def)
	r.err = err
	return v
}

func (r *reader) strings(key string) []string {
	if r.err != nil {
		return nil
	}
	v, err := r.n.Strings(key)
	r.err = err
	return v
}

func (r *reader) color(key string) graphics.Color {
	if r.err != nil {
		return 0
	}
	v, err := r.n.Color(key, 0)
	r.err = err
	return v
}

func (r *reader) fail(key string, format string, args ...any) {
	if r.err == nil {
		r.err = r.n.propError(key, fmt.Errorf(format, args...))
	}
}

func noChildren(n *Node) error {
	if len(n.Children) > 0 {
		return fmt.Errorf("%s: %s takes no children", n.path, n.Type)
	}
	return nil
}

func buildPanel(parent widget.Widget, n *Node) (widget.Widget, error) {
	return widget.NewPanel(parent), nil
}

func buildWindow(parent widget.Widget, n *Node) (widget.Widget, error) {
	r := &reader{n: n}
	w := window.New(parent, r.str("title", ""))
	w.SetModal(r.boolean("modal", false))
	w.SetCollapsed(r.boolean("collapsed", false))
	return w, r.err
}

func buildLabel(parent widget.Widget, n *Node) (widget.Widget, error) {
	r := &reader{n: n}
	l := widgets.NewLabel(parent, r.str("caption", ""))
	l.SetFont(r.str("font", l.Font()))
	l.SetColor(r.color("color"))
	if err := noChildren(n); err != nil {
		return l, err
	}
	return l, r.err
}

var buttonFlags = map[string]widgets.ButtonFlags{
	"normal": widgets.ButtonNormal,
	"radio":  widgets.ButtonRadio,
	"toggle": widgets.ButtonToggle,
	"popup":  widgets.ButtonPopup,
}

// parseFlags reads "toggle" or "radio|popup".
func (r *reader) flags(key string, def widgets.ButtonFlags) widgets.ButtonFlags {
	s := r.str(key, "")
	if s == "" {
		return def
	}
	var f widgets.ButtonFlags
	for _, part := range strings.Split(s, "|") {
		v, ok := buttonFlags[strings.TrimSpace(part)]
		if !ok {
			r.fail(key, "unknown button flag %q", part)
			return def
		}
		f |= v
	}
	return f
}

func buildButton(parent widget.Widget, n *Node) (widget.Widget, error) {
	r := &reader{n: n}
	b := widgets.NewButton(parent, r.str("caption", ""))
	b.SetFlags(r.flags("flags", widgets.ButtonNormal))
	b.SetPushed(r.boolean("pushed", false))
	b.SetBackgroundColor(r.color("background"))
	b.SetTextColor(r.color("text_color"))
	if err := noChildren(n); err != nil {
		return b, err
	}
	return b, r.err
}

var sides = map[string]window.Side{
	"right":  window.SideRight,
	"left":   window.SideLeft,
	"top":    window.SideTop,
	"bottom": window.SideBottom,
}

// buildPopupButton creates a popup button; its children fill the popup.
func buildPopupButton(parent widget.Widget, n *Node) (widget.Widget, error) {
	r := &reader{n: n}
	pb := widgets.NewPopupButton(parent, r.str("caption", ""))
	if s := r.str("side", ""); s != "" {
		side, ok := sides[s]
		if !ok {
			r.fail("side", "unknown side %q", s)
		}
		pb.SetSide(side)
	}
	pb.SetPushed(r.boolean("pushed", false))
	return pb, r.err
}

func buildComboBox(parent widget.Widget, n *Node) (widget.Widget, error) {
	r := &reader{n: n}
	items := r.strings("items")
	short := r.strings("short_items")
	selected := r.integer("selected", 0)
	if r.err != nil {
		return nil, r.err
	}
	c := widgets.NewComboBox(parent, items)
	if short != nil {
		c.SetItems(items, short)
	}
	if len(items) > 0 {
		c.SetSelectedIndex(selected)
	}
	return c, noChildren(n)
}

func buildCheckBox(parent widget.Widget, n *Node) (widget.Widget, error) {
	r := &reader{n: n}
	cb := widgets.NewCheckBox(parent, r.str("caption", ""), nil)
	cb.SetChecked(r.boolean("checked", false))
	if err := noChildren(n); err != nil {
		return cb, err
	}
	return cb, r.err
}

var alignments = map[string]widgets.TextAlignment{
	"left":   widgets.TextLeft,
	"center": widgets.TextCenter,
	"right":  widgets.TextRight,
}

// textBoxProps applies the properties shared by all text boxes.
func (r *reader) textBoxProps(tb *widgets.TextBox) {
	tb.SetPlaceholder(r.str("placeholder", ""))
	tb.SetUnits(r.str("units", ""))
	tb.SetDefaultValue(r.str("default", ""))
	if a := r.str("alignment", ""); a != "" {
		v, ok := alignments[a]
		if !ok {
			r.fail("alignment", "unknown alignment %q", a)
		}
		tb.SetAlignment(v)
	}
}

func buildTextBox(parent widget.Widget, n *Node) (widget.Widget, error) {
	r := &reader{n: n}
	tb := widgets.NewTextBox(parent, r.str("value", ""))
	tb.SetEditable(r.boolean("editable", false))
	r.textBoxProps(tb)
	if f := r.str("format", ""); f != "" && r.err == nil {
		if err := tb.SetFormat(f); err != nil {
			r.err = n.propError("format", err)
		}
	}
	if err := noChildren(n); err != nil {
		return tb, err
	}
	return tb, r.err
}

func buildIntBox(parent widget.Widget, n *Node) (widget.Widget, error) {
	r := &reader{n: n}
	b := widgets.NewIntBox(parent, r.integer("value", 0))
	r.textBoxProps(&b.TextBox)
	if n.Has("min") || n.Has("max") {
		b.SetRange(r.integer("min", 0), r.integer("max", 0))
	}
	b.SetEditable(r.boolean("editable", true))
	if err := noChildren(n); err != nil {
		return b, err
	}
	return b, r.err
}

func buildFloatBox(parent widget.Widget, n *Node) (widget.Widget, error) {
	r := &reader{n: n}
	b := widgets.NewFloatBox(parent, 0)
	r.textBoxProps(&b.TextBox)
	b.SetPrecision(r.integer("precision", -1))
	if n.Has("min") || n.Has("max") {
		b.SetRange(r.float("min", 0), r.float("max", 0))
	}
	b.SetValue(r.float("value", 0))
	b.SetEditable(r.boolean("editable", true))
	if err := noChildren(n); err != nil {
		return b, err
	}
	return b, r.err
}

func buildSlider(parent widget.Widget, n *Node) (widget.Widget, error) {
	r := &reader{n: n}
	s := widgets.NewSlider(parent)
	s.SetRange(r.float("min", 0), r.float("max", 1))
	s.SetValue(r.float("value", 0))
	if err := noChildren(n); err != nil {
		return s, err
	}
	return s, r.err
}

func buildVScroll(parent widget.Widget, n *Node) (widget.Widget, error) {
	r := &reader{n: n}
	v := scroll.New(parent)
	if len(n.Children) > 1 {
		return v, fmt.Errorf("%s: vscroll holds a single child, got %d", n.path, len(n.Children))
	}
	v.SetScroll(r.float("scroll", 0))
	return v, r.err
}

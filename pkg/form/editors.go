package form

import (
	"github.com/go-drift/trellis/pkg/graphics"
	"github.com/go-drift/trellis/pkg/widget"
	"github.com/go-drift/trellis/pkg/widgets"
)

type boolEditor struct {
	*widgets.CheckBox
}

func newBoolEditor(parent widget.Widget, _ Options) Editor {
	cb := widgets.NewCheckBox(parent, "", nil)
	cb.SetFixedSize(graphics.Pt(20, 0))
	return &boolEditor{cb}
}

func (e *boolEditor) Widget() widget.Widget { return e.CheckBox }
func (e *boolEditor) Value() any            { return e.Checked() }

func (e *boolEditor) SetValue(v any) error {
	b, ok := v.(bool)
	if !ok {
		return typeMismatch(KindBool, v)
	}
	e.SetChecked(b)
	return nil
}

// SetEditable enables or disables the box; a check box has no read-only
// state.
func (e *boolEditor) SetEditable(editable bool) { e.SetEnabled(editable) }

func (e *boolEditor) SetOnChange(fn func(any)) {
	e.SetCallback(func(checked bool) { fn(checked) })
}

type stringEditor struct {
	*widgets.TextBox
}

func newStringEditor(parent widget.Widget, _ Options) Editor {
	tb := widgets.NewTextBox(parent, "")
	tb.SetEditable(true)
	return &stringEditor{tb}
}

func (e *stringEditor) Widget() widget.Widget { return e.TextBox }
func (e *stringEditor) Value() any            { return e.TextBox.Value() }

func (e *stringEditor) SetValue(v any) error {
	s, ok := v.(string)
	if !ok {
		return typeMismatch(KindString, v)
	}
	e.TextBox.SetValue(s)
	return nil
}

func (e *stringEditor) SetOnChange(fn func(any)) {
	e.SetCallback(func(s string) bool {
		fn(s)
		return true
	})
}

type intEditor struct {
	*widgets.IntBox
}

func newIntEditor(parent widget.Widget, _ Options) Editor {
	return &intEditor{widgets.NewIntBox(parent, 0)}
}

func (e *intEditor) Widget() widget.Widget { return e.IntBox }
func (e *intEditor) Value() any            { return e.IntValue() }

func (e *intEditor) SetValue(v any) error {
	switch n := v.(type) {
	case int:
		e.IntBox.SetValue(n)
	case int64:
		e.IntBox.SetValue(int(n))
	case int32:
		e.IntBox.SetValue(int(n))
	default:
		return typeMismatch(KindInt, v)
	}
	return nil
}

func (e *intEditor) SetOnChange(fn func(any)) {
	e.SetCallback(func(n int) { fn(n) })
}

type floatEditor struct {
	*widgets.FloatBox
}

func newFloatEditor(parent widget.Widget, _ Options) Editor {
	return &floatEditor{widgets.NewFloatBox(parent, 0)}
}

func (e *floatEditor) Widget() widget.Widget { return e.FloatBox }
func (e *floatEditor) Value() any            { return e.FloatValue() }

func (e *floatEditor) SetValue(v any) error {
	switch f := v.(type) {
	case float64:
		e.FloatBox.SetValue(f)
	case float32:
		e.FloatBox.SetValue(float64(f))
	case int:
		e.FloatBox.SetValue(float64(f))
	default:
		return typeMismatch(KindFloat, v)
	}
	return nil
}

func (e *floatEditor) SetOnChange(fn func(any)) {
	e.SetCallback(func(f float64) { fn(f) })
}

// enumEditor edits an index into Options.Items.
type enumEditor struct {
	*widgets.ComboBox
}

func newEnumEditor(parent widget.Widget, opts Options) Editor {
	return &enumEditor{widgets.NewComboBox(parent, opts.Items)}
}

func (e *enumEditor) Widget() widget.Widget { return e.ComboBox }
func (e *enumEditor) Value() any            { return e.SelectedIndex() }

func (e *enumEditor) SetValue(v any) error {
	i, ok := v.(int)
	if !ok || i < 0 || i >= len(e.Items()) {
		return typeMismatch(KindEnum, v)
	}
	e.SetSelectedIndex(i)
	return nil
}

func (e *enumEditor) SetEditable(editable bool) { e.SetEnabled(editable) }

func (e *enumEditor) SetOnChange(fn func(any)) {
	e.SetCallback(func(i int) { fn(i) })
}

const colorFormat = `#[0-9a-fA-F]{6}([0-9a-fA-F]{2})?`

// colorEditor edits a color as #rrggbb or #rrggbbaa text.
type colorEditor struct {
	*widgets.TextBox
	color    graphics.Color
	onChange func(any)
}

func newColorEditor(parent widget.Widget, _ Options) Editor {
	tb := widgets.NewTextBox(parent, "")
	tb.SetEditable(true)
	_ = tb.SetFormat(colorFormat)
	e := &colorEditor{TextBox: tb}
	tb.SetCallback(e.commit)
	e.show(graphics.RGB(0, 0, 0))
	return e
}

func (e *colorEditor) commit(s string) bool {
	c, err := graphics.ParseColor(s)
	if err != nil {
		return false
	}
	e.color = c
	if e.onChange != nil {
		e.onChange(c)
	}
	return true
}

func (e *colorEditor) show(c graphics.Color) {
	e.color = c
	e.TextBox.SetValue(c.String())
}

func (e *colorEditor) Widget() widget.Widget { return e.TextBox }
func (e *colorEditor) Value() any            { return e.color }

func (e *colorEditor) SetValue(v any) error {
	c, ok := v.(graphics.Color)
	if !ok {
		return typeMismatch(KindColor, v)
	}
	e.show(c)
	return nil
}

func (e *colorEditor) SetOnChange(fn func(any)) { e.onChange = fn }

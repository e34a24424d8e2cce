package widgets

import (
	"math"

	"github.com/go-drift/trellis/pkg/graphics"
	"github.com/go-drift/trellis/pkg/serialize"
	"github.com/go-drift/trellis/pkg/widget"
)

// CheckBox is a captioned two-state toggle. A press arms it and the
// release flips it, but only when the release lands inside the box.
type CheckBox struct {
	widget.Base
	caption  string
	checked  bool
	pushed   bool
	callback func(checked bool)
}

// NewCheckBox creates an unchecked check box. callback may be nil.
func NewCheckBox(parent widget.Widget, caption string, callback func(checked bool)) *CheckBox {
	c := &CheckBox{caption: caption, callback: callback}
	c.Init(c, parent)
	return c
}

func (c *CheckBox) Caption() string { return c.caption }
func (c *CheckBox) SetCaption(s string) {
	c.caption = s
	c.MarkLayoutDirty()
}

func (c *CheckBox) Checked() bool { return c.checked }

// SetChecked sets the state without running the callback.
func (c *CheckBox) SetChecked(v bool) { c.checked = v }

func (c *CheckBox) Pushed() bool { return c.pushed }
func (c *CheckBox) SetCallback(fn func(checked bool)) { c.callback = fn }

func (c *CheckBox) MouseButtonEvent(p graphics.Point, button widget.MouseButton, down bool, mods widget.ModifierKey) bool {
	c.Base.MouseButtonEvent(p, button, down, mods)
	if button != widget.MouseLeft || !c.Enabled() {
		return false
	}
	if down {
		c.pushed = true
		return true
	}
	if c.pushed {
		if c.Contains(p) {
			c.checked = !c.checked
			fireChange(c.callback, c.checked)
		}
		c.pushed = false
	}
	return true
}

// KeyboardEvent toggles the box with the space bar while it is focused.
func (c *CheckBox) KeyboardEvent(key widget.Key, scancode int, action widget.Action, mods widget.ModifierKey) bool {
	if key != widget.KeySpace || action != widget.Press || !c.Enabled() || !c.Focused() {
		return false
	}
	c.checked = !c.checked
	fireChange(c.callback, c.checked)
	return true
}

func (c *CheckBox) PreferredSize(ctx graphics.Canvas) graphics.Point {
	if fs := c.FixedSize(); !fs.IsZero() {
		return fs
	}
	fs := float64(c.FontSize())
	tw := textWidth(ctx, graphics.FontSans, c.FontSize(), c.caption)
	return graphics.Pt(int(math.Ceil(tw+1.7*fs)), int(math.Ceil(fs*1.3)))
}

func (c *CheckBox) Draw(ctx graphics.Canvas) {
	c.Base.Draw(ctx)
	th := themeOf(c.Node())
	x, y, _, h := origin(c.Node())
	fs := float64(c.FontSize())

	ctx.FontSize(fs)
	ctx.FontFace(graphics.FontSans)
	ctx.TextAlign(graphics.AlignLeft | graphics.AlignMiddle)
	if c.Enabled() {
		ctx.FillColor(th.TextColor)
	} else {
		ctx.FillColor(th.DisabledTextColor)
	}
	ctx.Text(x+1.6*fs, y+h/2, c.caption)

	box := h - 2
	inner := graphics.Gray(0, 32)
	if c.pushed {
		inner = graphics.Gray(0, 100)
	}
	ctx.BeginPath()
	ctx.RoundedRect(x+1, y+1, box, box, 3)
	ctx.FillPaint(ctx.BoxGradient(x+1.5, y+1.5, box, box, 3, 3, inner, graphics.Gray(0, 180)))
	ctx.Fill()

	if c.checked {
		ctx.BeginPath()
		ctx.MoveTo(x+1+box*0.2, y+1+box*0.5)
		ctx.LineTo(x+1+box*0.42, y+1+box*0.75)
		ctx.LineTo(x+1+box*0.8, y+1+box*0.25)
		ctx.StrokeWidth(2)
		if c.Enabled() {
			ctx.StrokeColor(th.IconColor)
		} else {
			ctx.StrokeColor(th.DisabledTextColor)
		}
		ctx.Stroke()
		ctx.StrokeWidth(1)
	}
}

func (c *CheckBox) Save(r *serialize.Record) {
	c.Base.Save(r)
	r.SetString("caption", c.caption)
	r.SetBool("checked", c.checked)
}

func (c *CheckBox) Load(r *serialize.Record) error {
	if err := c.Base.Load(r); err != nil {
		return err
	}
	if err := r.LoadString("caption", &c.caption); err != nil {
		return err
	}
	return r.LoadBool("checked", &c.checked)
}

package widgets

import (
	"fmt"
	"math"
	"regexp"

	"github.com/go-drift/trellis/pkg/graphics"
	"github.com/go-drift/trellis/pkg/serialize"
	"github.com/go-drift/trellis/pkg/widget"
)

// TextAlignment positions the value inside a text box.
type TextAlignment int

const (
	TextLeft TextAlignment = iota
	TextCenter
	TextRight
)

const textPadding = 5

// TextBox is a single-line editable text field.
//
// Editing happens on a working copy while the box is focused. Losing
// focus or pressing Enter commits it: the copy becomes the value when it
// matches the format, and the callback may still veto it by returning
// false, which restores the previous value. Escape discards the working
// copy.
type TextBox struct {
	widget.Base

	value        string
	temp         []rune
	defaultValue string
	placeholder  string
	units        string
	alignment    TextAlignment
	editable     bool
	editing      bool
	valid        bool
	format       *regexp.Regexp
	formatSrc    string
	cursor       int
	selection    int
	callback     func(value string) bool
}

// NewTextBox creates a read-only text box showing value.
func NewTextBox(parent widget.Widget, value string) *TextBox {
	t := &TextBox{value: value, valid: true, cursor: -1, selection: -1}
	t.Init(t, parent)
	return t
}

// Value returns the committed value.
func (t *TextBox) Value() string { return t.value }

// SetValue replaces the committed value and, while editing, the working
// copy. The callback is not run.
func (t *TextBox) SetValue(v string) {
	t.value = v
	if t.editing {
		t.temp = []rune(v)
		t.cursor = len(t.temp)
		t.selection = -1
		t.validate()
	}
}

// Text returns what the box currently shows: the working copy while
// editing, the value otherwise.
func (t *TextBox) Text() string {
	if t.editing {
		return string(t.temp)
	}
	return t.value
}

func (t *TextBox) Editable() bool { return t.editable }

func (t *TextBox) SetEditable(e bool) {
	t.editable = e
	if e {
		t.SetCursor(widget.CursorIBeam)
	} else {
		t.SetCursor(widget.CursorNone)
	}
}

// Format returns the pattern the whole value must match, or "".
func (t *TextBox) Format() string { return t.formatSrc }

// SetFormat sets the pattern the whole value must match. An empty pattern
// accepts anything.
func (t *TextBox) SetFormat(pattern string) error {
	if pattern == "" {
		t.format, t.formatSrc = nil, ""
		return nil
	}
	re, err := regexp.Compile(`^(?:` + pattern + `)$`)
	if err != nil {
		return fmt.Errorf("text box format %q: %w", pattern, err)
	}
	t.format, t.formatSrc = re, pattern
	t.validate()
	return nil
}

func (t *TextBox) Units() string { return t.units }
func (t *TextBox) SetUnits(u string) {
	t.units = u
	t.MarkLayoutDirty()
}

func (t *TextBox) Placeholder() string { return t.placeholder }
func (t *TextBox) SetPlaceholder(p string) { t.placeholder = p }

// DefaultValue is committed in place of an empty working copy.
func (t *TextBox) DefaultValue() string { return t.defaultValue }
func (t *TextBox) SetDefaultValue(v string) { t.defaultValue = v }

func (t *TextBox) Alignment() TextAlignment { return t.alignment }
func (t *TextBox) SetAlignment(a TextAlignment) { t.alignment = a }

// SetCallback sets the commit hook. Returning false rejects the new value.
func (t *TextBox) SetCallback(fn func(value string) bool) { t.callback = fn }

// Valid reports whether the working copy matches the format.
func (t *TextBox) Valid() bool { return t.valid }

// Editing reports whether a working copy is being edited.
func (t *TextBox) Editing() bool { return t.editing }

// CursorPos returns the caret position in runes, or -1 when not editing.
func (t *TextBox) CursorPos() int { return t.cursor }

// Selection returns the selected rune range, or -1, -1 when nothing is
// selected.
func (t *TextBox) Selection() (start, end int) {
	if t.selection < 0 || t.selection == t.cursor {
		return -1, -1
	}
	return min(t.selection, t.cursor), max(t.selection, t.cursor)
}

func (t *TextBox) checkFormat(s string) bool {
	return s == "" || t.format == nil || t.format.MatchString(s)
}

func (t *TextBox) validate() {
	t.valid = t.checkFormat(string(t.temp))
}

func (t *TextBox) beginEdit() {
	t.editing = true
	t.temp = []rune(t.value)
	t.cursor = len(t.temp)
	t.selection = -1
	t.valid = true
}

// commit ends the edit, keeping the working copy if it is valid and
// accepted.
func (t *TextBox) commit() {
	if !t.editing {
		return
	}
	backup := t.value
	if t.valid {
		if len(t.temp) == 0 && t.defaultValue != "" {
			t.value = t.defaultValue
		} else {
			t.value = string(t.temp)
		}
		if t.callback != nil && !t.callback(t.value) {
			t.value = backup
		}
	}
	t.editing = false
	t.valid = true
	t.temp = nil
	t.cursor, t.selection = -1, -1
}

func (t *TextBox) FocusEvent(focused bool) bool {
	t.Base.FocusEvent(focused)
	if !t.editable {
		return false
	}
	if focused {
		t.beginEdit()
	} else {
		t.commit()
	}
	return true
}

func (t *TextBox) deleteSelection() bool {
	start, end := t.Selection()
	if start < 0 {
		t.selection = -1
		return false
	}
	t.temp = append(t.temp[:start], t.temp[end:]...)
	t.cursor = start
	t.selection = -1
	return true
}

func (t *TextBox) moveCursor(to int, extend bool) {
	to = min(max(to, 0), len(t.temp))
	if extend {
		if t.selection < 0 {
			t.selection = t.cursor
		}
	} else {
		t.selection = -1
	}
	t.cursor = to
}

// KeyboardEvent edits the working copy. Keys the box does not use, such as
// Tab, are left to its ancestors.
func (t *TextBox) KeyboardEvent(key widget.Key, scancode int, action widget.Action, mods widget.ModifierKey) bool {
	if !t.editable || !t.editing || action == widget.Release {
		return false
	}
	shift := mods&widget.ModShift != 0
	switch key {
	case widget.KeyLeft:
		t.moveCursor(t.cursor-1, shift)
	case widget.KeyRight:
		t.moveCursor(t.cursor+1, shift)
	case widget.KeyHome:
		t.moveCursor(0, shift)
	case widget.KeyEnd:
		t.moveCursor(len(t.temp), shift)
	case widget.KeyBackspace:
		if !t.deleteSelection() && t.cursor > 0 {
			t.temp = append(t.temp[:t.cursor-1], t.temp[t.cursor:]...)
			t.cursor--
		}
	case widget.KeyDelete:
		if !t.deleteSelection() && t.cursor < len(t.temp) {
			t.temp = append(t.temp[:t.cursor], t.temp[t.cursor+1:]...)
		}
	case widget.KeyEnter:
		t.commit()
		t.beginEdit()
		return true
	case widget.KeyEscape:
		t.beginEdit()
		return true
	case widget.KeyA:
		if mods&(widget.ModControl|widget.ModSuper) == 0 {
			return false
		}
		t.selection = 0
		t.cursor = len(t.temp)
	default:
		return false
	}
	t.validate()
	return true
}

// KeyboardCharacterEvent inserts r at the caret, replacing the selection.
func (t *TextBox) KeyboardCharacterEvent(r rune) bool {
	if !t.editable || !t.editing {
		return false
	}
	t.deleteSelection()
	t.temp = append(t.temp[:t.cursor], append([]rune{r}, t.temp[t.cursor:]...)...)
	t.cursor++
	t.validate()
	return true
}

func (t *TextBox) fontSize() int {
	if t.HasFontSize() {
		return t.FontSize()
	}
	return themeOf(t.Node()).TextBoxFontSize
}

// textX returns the x coordinate, relative to the box, where the shown
// text starts.
func (t *TextBox) textX(ctx graphics.Canvas) float64 {
	fs := t.fontSize()
	uw := 0.0
	if t.units != "" {
		uw = textWidth(ctx, graphics.FontSans, fs, t.units) + textPadding
	}
	tw := textWidth(ctx, graphics.FontSans, fs, t.Text())
	avail := float64(t.Width()) - 2*textPadding - uw
	switch t.alignment {
	case TextCenter:
		return textPadding + (avail-tw)/2
	case TextRight:
		return textPadding + avail - tw
	default:
		return textPadding
	}
}

// runeAt maps an x coordinate relative to the box to the nearest caret
// position.
func (t *TextBox) runeAt(x float64) int {
	fs := t.fontSize()
	start := t.textX(nil)
	best, bestDist := 0, math.Inf(1)
	for i := 0; i <= len(t.temp); i++ {
		cx := start + textWidth(nil, graphics.FontSans, fs, string(t.temp[:i]))
		if d := math.Abs(cx - x); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func (t *TextBox) MouseButtonEvent(p graphics.Point, button widget.MouseButton, down bool, mods widget.ModifierKey) bool {
	wasEditing := t.editing
	t.Base.MouseButtonEvent(p, button, down, mods)
	if button != widget.MouseLeft || !t.editable {
		return false
	}
	if down && t.editing {
		local := p.Sub(t.Position())
		extend := wasEditing && mods&widget.ModShift != 0
		t.moveCursor(t.runeAt(float64(local.X)), extend)
		if !extend {
			t.selection = t.cursor
		}
	}
	return true
}

// MouseDragEvent extends the selection to the pointer.
func (t *TextBox) MouseDragEvent(p, rel graphics.Point, buttons int, mods widget.ModifierKey) bool {
	if !t.editable || !t.editing {
		return false
	}
	local := p.Sub(t.Position())
	t.moveCursor(t.runeAt(float64(local.X)), true)
	return true
}

func (t *TextBox) PreferredSize(ctx graphics.Canvas) graphics.Point {
	fs := t.fontSize()
	h := int(math.Ceil(float64(fs) * 1.4))
	tw := textWidth(ctx, graphics.FontSans, fs, t.Text())
	if t.units != "" {
		tw += textWidth(ctx, graphics.FontSans, fs, t.units) + textPadding
	}
	return graphics.Pt(h+int(math.Ceil(tw)), h)
}

func (t *TextBox) Draw(ctx graphics.Canvas) {
	t.Base.Draw(ctx)
	th := themeOf(t.Node())
	x, y, w, h := origin(t.Node())
	fs := float64(t.fontSize())
	tx := x + t.textX(ctx)

	inner := graphics.Gray(255, 32)
	if t.editing {
		inner = graphics.Gray(150, 32)
	}
	ctx.BeginPath()
	ctx.RoundedRect(x+1, y+2, w-2, h-2, 3)
	ctx.FillPaint(ctx.BoxGradient(x+1, y+2, w-2, h-2, 3, 4, inner, graphics.Gray(32, 32)))
	ctx.Fill()

	ctx.BeginPath()
	ctx.RoundedRect(x+0.5, y+0.5, w-1, h-1, 2.5)
	if t.valid {
		ctx.StrokeColor(graphics.Gray(0, 48))
	} else {
		ctx.StrokeColor(graphics.RGBA(255, 0, 0, 100))
	}
	ctx.Stroke()

	ctx.FontSize(fs)
	ctx.FontFace(graphics.FontSans)
	if t.units != "" {
		ctx.TextAlign(graphics.AlignRight | graphics.AlignMiddle)
		ctx.FillColor(th.DisabledTextColor)
		ctx.Text(x+w-textPadding, y+h/2, t.units)
	}

	shown := t.Text()
	ctx.TextAlign(graphics.AlignLeft | graphics.AlignMiddle)
	switch {
	case shown == "" && !t.editing && t.placeholder != "":
		ctx.FillColor(th.DisabledTextColor)
		ctx.Text(tx, y+h/2, t.placeholder)
	case t.Enabled():
		ctx.FillColor(th.TextColor)
		ctx.Text(tx, y+h/2, shown)
	default:
		ctx.FillColor(th.DisabledTextColor)
		ctx.Text(tx, y+h/2, shown)
	}

	if !t.editing {
		return
	}
	caretX := func(i int) float64 {
		return tx + textWidth(ctx, graphics.FontSans, int(fs), string(t.temp[:i]))
	}
	if start, end := t.Selection(); start >= 0 {
		sx, ex := caretX(start), caretX(end)
		ctx.BeginPath()
		ctx.Rect(sx, y+h/2-fs/2, ex-sx, fs)
		ctx.FillColor(graphics.RGBA(255, 255, 255, 80))
		ctx.Fill()
	}
	cx := caretX(t.cursor)
	ctx.BeginPath()
	ctx.MoveTo(cx, y+h/2-fs/2)
	ctx.LineTo(cx, y+h/2+fs/2)
	ctx.StrokeColor(graphics.RGBA(255, 192, 0, 255))
	ctx.StrokeWidth(1)
	ctx.Stroke()
}

func (t *TextBox) Save(r *serialize.Record) {
	t.Base.Save(r)
	r.SetString("value", t.value)
	r.SetBool("editable", t.editable)
	r.SetString("units", t.units)
}

func (t *TextBox) Load(r *serialize.Record) error {
	if err := t.Base.Load(r); err != nil {
		return err
	}
	editable := t.editable
	for _, err := range []error{
		r.LoadString("value", &t.value),
		r.LoadBool("editable", &editable),
		r.LoadString("units", &t.units),
	} {
		if err != nil {
			return err
		}
	}
	t.SetEditable(editable)
	if t.editing {
		t.beginEdit()
	}
	return nil
}

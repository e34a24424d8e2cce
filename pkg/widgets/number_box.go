package widgets

import (
	"strconv"

	"github.com/go-drift/trellis/pkg/widget"
)

const (
	intFormat   = `[-+]?[0-9]*`
	floatFormat = `[-+]?[0-9]*\.?[0-9]+([eE][-+]?[0-9]+)?`
)

// IntBox is an editable text box restricted to integers. Committed values
// are clamped to the range when one is set.
type IntBox struct {
	TextBox
	min, max  int
	bounded   bool
	onChanged func(int)
}

// NewIntBox creates an editable integer box.
func NewIntBox(parent widget.Widget, v int) *IntBox {
	b := &IntBox{}
	b.valid, b.cursor, b.selection = true, -1, -1
	b.Init(b, parent)
	b.SetEditable(true)
	b.SetAlignment(TextRight)
	_ = b.SetFormat(intFormat)
	b.TextBox.SetCallback(b.commitInt)
	b.SetValue(v)
	return b
}

func (b *IntBox) commitInt(s string) bool {
	v, err := strconv.Atoi(s)
	if err != nil {
		return false
	}
	b.SetValue(v)
	fireChange(b.onChanged, b.IntValue())
	return true
}

// IntValue returns the committed value.
func (b *IntBox) IntValue() int {
	v, _ := strconv.Atoi(b.TextBox.Value())
	return v
}

// SetValue sets the value, clamped to the range.
func (b *IntBox) SetValue(v int) {
	if b.bounded {
		v = min(max(v, b.min), b.max)
	}
	b.TextBox.SetValue(strconv.Itoa(v))
}

// SetRange limits committed values to [lo, hi].
func (b *IntBox) SetRange(lo, hi int) {
	b.min, b.max, b.bounded = lo, hi, true
	b.SetValue(b.IntValue())
}

func (b *IntBox) Range() (lo, hi int, ok bool) { return b.min, b.max, b.bounded }

// SetCallback sets the function called with each committed value.
func (b *IntBox) SetCallback(fn func(int)) { b.onChanged = fn }

// FloatBox is an editable text box restricted to decimal numbers.
type FloatBox struct {
	TextBox
	min, max  float64
	bounded   bool
	precision int
	onChanged func(float64)
}

// NewFloatBox creates an editable float box showing the shortest
// representation of v.
func NewFloatBox(parent widget.Widget, v float64) *FloatBox {
	b := &FloatBox{precision: -1}
	b.valid, b.cursor, b.selection = true, -1, -1
	b.Init(b, parent)
	b.SetEditable(true)
	b.SetAlignment(TextRight)
	_ = b.SetFormat(floatFormat)
	b.TextBox.SetCallback(b.commitFloat)
	b.SetValue(v)
	return b
}

func (b *FloatBox) commitFloat(s string) bool {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return false
	}
	b.SetValue(v)
	fireChange(b.onChanged, b.FloatValue())
	return true
}

// FloatValue returns the committed value.
func (b *FloatBox) FloatValue() float64 {
	v, _ := strconv.ParseFloat(b.TextBox.Value(), 64)
	return v
}

func (b *FloatBox) SetValue(v float64) {
	if b.bounded {
		v = min(max(v, b.min), b.max)
	}
	b.TextBox.SetValue(strconv.FormatFloat(v, 'f', b.precision, 64))
}

// SetPrecision sets the number of decimals shown. -1 shows the shortest
// exact representation.
func (b *FloatBox) SetPrecision(p int) {
	b.precision = p
	b.SetValue(b.FloatValue())
}

func (b *FloatBox) SetRange(lo, hi float64) {
	b.min, b.max, b.bounded = lo, hi, true
	b.SetValue(b.FloatValue())
}

func (b *FloatBox) Range() (lo, hi float64, ok bool) { return b.min, b.max, b.bounded }

func (b *FloatBox) SetCallback(fn func(float64)) { b.onChanged = fn }

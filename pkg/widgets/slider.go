package widgets

import (
	"math"

	"github.com/go-drift/trellis/pkg/graphics"
	"github.com/go-drift/trellis/pkg/serialize"
	"github.com/go-drift/trellis/pkg/widget"
)

// Slider picks a value in a range by dragging a knob along a track.
// Callback runs on every change; FinalCallback runs once the button is
// released.
type Slider struct {
	widget.Base
	value         float64
	lo, hi        float64
	callback      func(float64)
	finalCallback func(float64)
}

// NewSlider creates a slider over [0, 1].
func NewSlider(parent widget.Widget) *Slider {
	s := &Slider{hi: 1}
	s.Init(s, parent)
	return s
}

func (s *Slider) Value() float64 { return s.value }

// SetValue sets the value, clamped to the range, without running the
// callbacks.
func (s *Slider) SetValue(v float64) {
	if math.IsNaN(v) {
		v = s.lo
	}
	s.value = min(max(v, s.lo), s.hi)
}

func (s *Slider) Range() (lo, hi float64) { return s.lo, s.hi }

// SetRange sets the bounds. A reversed range is swapped.
func (s *Slider) SetRange(lo, hi float64) {
	if lo > hi {
		lo, hi = hi, lo
	}
	s.lo, s.hi = lo, hi
	s.SetValue(s.value)
}

func (s *Slider) SetCallback(fn func(float64))      { s.callback = fn }
func (s *Slider) SetFinalCallback(fn func(float64)) { s.finalCallback = fn }

// knob returns the knob radius and the track's inset from each side.
func (s *Slider) knob() (radius, inset float64) {
	radius = float64(int(float64(s.Height()) * 0.4))
	return radius, radius + 3
}

// valueAt maps an x coordinate in the parent's space to a value.
func (s *Slider) valueAt(x int) float64 {
	_, inset := s.knob()
	start := float64(s.Position().X) + inset - 1
	width := float64(s.Width()) - 2*inset
	if width <= 0 {
		return s.lo
	}
	f := (float64(x) - start) / width
	return s.lo + f*(s.hi-s.lo)
}

func (s *Slider) set(x int) {
	s.SetValue(s.valueAt(x))
	fireChange(s.callback, s.value)
}

func (s *Slider) MouseDragEvent(p, rel graphics.Point, buttons int, mods widget.ModifierKey) bool {
	if !s.Enabled() {
		return false
	}
	s.set(p.X)
	return true
}

func (s *Slider) MouseButtonEvent(p graphics.Point, button widget.MouseButton, down bool, mods widget.ModifierKey) bool {
	s.Base.MouseButtonEvent(p, button, down, mods)
	if !s.Enabled() || button != widget.MouseLeft {
		return false
	}
	s.set(p.X)
	if !down {
		fireChange(s.finalCallback, s.value)
	}
	return true
}

func (s *Slider) PreferredSize(ctx graphics.Canvas) graphics.Point {
	return graphics.Pt(70, 16)
}

func (s *Slider) Draw(ctx graphics.Canvas) {
	s.Base.Draw(ctx)
	x, y, w, h := origin(s.Node())
	radius, inset := s.knob()
	cy := math.Floor(y + h/2)
	f := 0.0
	if s.hi > s.lo {
		f = (s.value - s.lo) / (s.hi - s.lo)
	}
	kx := x + inset + f*(w-2*inset)

	track := graphics.Gray(0, 32)
	if !s.Enabled() {
		track = graphics.Gray(0, 10)
	}
	ctx.BeginPath()
	ctx.RoundedRect(x+inset, cy-3+1, w-2*inset, 6, 2)
	ctx.FillPaint(ctx.BoxGradient(x+inset, cy-3+1, w-2*inset, 6, 3, 3, track, graphics.Gray(0, 128)))
	ctx.Fill()

	ctx.BeginPath()
	ctx.Rect(kx-radius-5, cy-radius-5, radius*2+10, radius*2+10+3)
	ctx.Circle(kx, cy, radius)
	ctx.PathWinding(graphics.WindingHole)
	ctx.FillPaint(ctx.BoxGradient(kx-radius, cy-radius+1, radius*2, radius*2, radius, 3, graphics.Gray(0, 64), graphics.Gray(0, 0)))
	ctx.Fill()

	th := themeOf(s.Node())
	ctx.BeginPath()
	ctx.Circle(kx, cy, radius)
	ctx.StrokeColor(th.BorderDark)
	ctx.FillPaint(ctx.LinearGradient(kx, cy-radius, kx, cy+radius, th.BorderLight, th.BorderMedium))
	ctx.Stroke()
	ctx.Fill()
}

func (s *Slider) Save(r *serialize.Record) {
	s.Base.Save(r)
	r.SetFloat("value", s.value)
	r.SetFloat("min", s.lo)
	r.SetFloat("max", s.hi)
}

func (s *Slider) Load(r *serialize.Record) error {
	if err := s.Base.Load(r); err != nil {
		return err
	}
	lo, hi, v := s.lo, s.hi, s.value
	for _, err := range []error{
		r.LoadFloat("min", &lo),
		r.LoadFloat("max", &hi),
		r.LoadFloat("value", &v),
	} {
		if err != nil {
			return err
		}
	}
	s.SetRange(lo, hi)
	s.SetValue(v)
	return nil
}

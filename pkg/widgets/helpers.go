package widgets

import (
	"github.com/go-drift/trellis/pkg/graphics"
	"github.com/go-drift/trellis/pkg/theme"
	"github.com/go-drift/trellis/pkg/widget"
)

func themeOf(b *widget.Base) *theme.ThemeData {
	if t := b.Theme(); t != nil {
		return t
	}
	return theme.DefaultTheme()
}

// textWidth returns the advance of s. Without a canvas the bundled fonts
// are measured directly, so preferred sizes are available before the first
// frame.
func textWidth(ctx graphics.Canvas, face string, size int, s string) float64 {
	if s == "" {
		return 0
	}
	if ctx != nil {
		ctx.FontFace(face)
		ctx.FontSize(float64(size))
		adv, _ := ctx.TextBounds(0, 0, s)
		return adv
	}
	m := graphics.DefaultFontMeasurer()
	if m == nil {
		return float64(len(s) * size / 2)
	}
	tm, err := m.Measure(face, float64(size), s)
	if err != nil {
		return float64(len(s) * size / 2)
	}
	return tm.Advance
}

// origin returns the widget's position as float coordinates for drawing.
func origin(b *widget.Base) (x, y, w, h float64) {
	p, s := b.Position(), b.Size()
	return float64(p.X), float64(p.Y), float64(s.X), float64(s.Y)
}

// fireChange calls fn with v when fn is set.
func fireChange[T any](fn func(T), v T) {
	if fn != nil {
		fn(v)
	}
}

package widgets

import (
	"math"

	"github.com/go-drift/trellis/pkg/graphics"
	"github.com/go-drift/trellis/pkg/serialize"
	"github.com/go-drift/trellis/pkg/widget"
)

// Label is a single line of static text. With a fixed width the text wraps
// and the preferred height grows to fit it.
//
// Group layouts treat labels as separators: a label starts a new group and
// the widgets that follow it are indented.
type Label struct {
	widget.Base
	caption string
	font    string
	color   graphics.Color
}

// NewLabel creates a label attached to parent.
func NewLabel(parent widget.Widget, caption string) *Label {
	l := &Label{caption: caption, font: graphics.FontSans}
	l.Init(l, parent)
	return l
}

func (l *Label) Caption() string { return l.caption }

func (l *Label) SetCaption(c string) {
	l.caption = c
	l.MarkLayoutDirty()
}

func (l *Label) Font() string { return l.font }
func (l *Label) SetFont(f string) { l.font = f }

// Color returns the text color. The zero color means the theme's text
// color.
func (l *Label) Color() graphics.Color { return l.color }
func (l *Label) SetColor(c graphics.Color) { l.color = c }

// SeparatorCaption makes a label start a group in a group layout.
func (l *Label) SeparatorCaption() string { return l.caption }

func (l *Label) PreferredSize(ctx graphics.Canvas) graphics.Point {
	if l.caption == "" {
		return graphics.Point{}
	}
	fs := l.FontSize()
	tw := textWidth(ctx, l.font, fs, l.caption)
	if fw := l.FixedWidth(); fw > 0 {
		lines := max(1, int(math.Ceil(tw/float64(fw))))
		return graphics.Pt(fw, lines*fs)
	}
	return graphics.Pt(int(math.Ceil(tw))+2, fs)
}

func (l *Label) Draw(ctx graphics.Canvas) {
	l.Base.Draw(ctx)
	x, y, _, h := origin(l.Node())
	ctx.FontFace(l.font)
	ctx.FontSize(float64(l.FontSize()))
	if l.color.Alpha() == 0 {
		ctx.FillColor(themeOf(l.Node()).TextColor)
	} else {
		ctx.FillColor(l.color)
	}
	if l.FixedWidth() > 0 {
		ctx.TextAlign(graphics.AlignLeft | graphics.AlignTop)
		ctx.Text(x, y, l.caption)
		return
	}
	ctx.TextAlign(graphics.AlignLeft | graphics.AlignMiddle)
	ctx.Text(x, y+h/2, l.caption)
}

func (l *Label) Save(r *serialize.Record) {
	l.Base.Save(r)
	r.SetString("caption", l.caption)
	r.SetString("font", l.font)
	r.SetColor("color", l.color)
}

func (l *Label) Load(r *serialize.Record) error {
	if err := l.Base.Load(r); err != nil {
		return err
	}
	for _, err := range []error{
		r.LoadString("caption", &l.caption),
		r.LoadString("font", &l.font),
		r.LoadColor("color", &l.color),
	} {
		if err != nil {
			return err
		}
	}
	return nil
}

package screen

import (
	"math"

	"github.com/go-drift/trellis/pkg/graphics"
	"github.com/go-drift/trellis/pkg/widget"
)

const (
	tooltipFontSize = 15
	tooltipMaxWidth = 150
)

// TooltipWidget returns the widget whose tooltip is due: the deepest widget
// under the pointer, once the pointer has rested for the tooltip delay, if its
// tooltip is not empty.
func (s *Screen) TooltipWidget() widget.Widget {
	if s.clock.Now().Sub(s.lastInteraction) <= s.tooltipDelay {
		return nil
	}
	w := s.FindWidget(s.mousePos)
	if w == nil || w == widget.Widget(s) || w.Node().Tooltip() == "" {
		return nil
	}
	return w
}

// drawTooltip draws the pending tooltip below the widget it belongs to,
// fading in over the half second after the delay expires.
func (s *Screen) drawTooltip(ctx graphics.Canvas) {
	w := s.TooltipWidget()
	if w == nil || ctx == nil {
		return
	}
	th := s.Theme()
	n := w.Node()
	text := n.Tooltip()

	ctx.Save()
	defer ctx.Restore()
	ctx.FontFace(graphics.FontSans)
	ctx.FontSize(tooltipFontSize)
	ctx.TextAlign(graphics.AlignCenter | graphics.AlignTop)

	abs := n.AbsolutePosition()
	x := float64(abs.X) + float64(n.Width())/2
	y := float64(abs.Y) + float64(n.Height()) + 10
	_, bounds := ctx.TextBounds(x, y, text)
	if bounds[2]-bounds[0] > tooltipMaxWidth {
		ctx.TextAlign(graphics.AlignLeft | graphics.AlignTop)
		x = float64(abs.X)
		_, bounds = ctx.TextBounds(x, y, text)
	}

	elapsed := s.clock.Now().Sub(s.lastInteraction) - s.tooltipDelay
	alpha := math.Min(1, 2*elapsed.Seconds()) * 0.8
	ctx.GlobalAlpha(alpha)

	ctx.BeginPath()
	ctx.FillColor(th.TooltipBackground)
	ctx.RoundedRect(bounds[0]-4, bounds[1]-4, bounds[2]-bounds[0]+8, bounds[3]-bounds[1]+8, 3)
	// The arrow points at the widget's horizontal center.
	px := float64(abs.X) + float64(n.Width())/2
	ctx.MoveTo(px, bounds[1]-10)
	ctx.LineTo(px+7, bounds[1]+1)
	ctx.LineTo(px-7, bounds[1]+1)
	ctx.Fill()

	ctx.FillColor(th.TooltipText)
	ctx.FontBlur(0)
	ctx.Text(x, y, text)
}

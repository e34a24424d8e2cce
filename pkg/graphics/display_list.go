package graphics

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// OpKind identifies a recorded drawing operation.
type OpKind int

const (
	OpSave OpKind = iota
	OpRestore
	OpTranslate
	OpScissor
	OpIntersectScissor
	OpResetScissor
	OpGlobalAlpha
	OpBeginPath
	OpMoveTo
	OpLineTo
	OpRect
	OpRoundedRect
	OpCircle
	OpPathWinding
	OpFillColor
	OpFillPaint
	OpFill
	OpStrokeColor
	OpStrokeWidth
	OpStroke
	OpFontSize
	OpFontFace
	OpFontBlur
	OpTextAlign
	OpText
)

var opNames = [...]string{
	OpSave:             "save",
	OpRestore:          "restore",
	OpTranslate:        "translate",
	OpScissor:          "scissor",
	OpIntersectScissor: "intersect-scissor",
	OpResetScissor:     "reset-scissor",
	OpGlobalAlpha:      "global-alpha",
	OpBeginPath:        "begin-path",
	OpMoveTo:           "move-to",
	OpLineTo:           "line-to",
	OpRect:             "rect",
	OpRoundedRect:      "rounded-rect",
	OpCircle:           "circle",
	OpPathWinding:      "path-winding",
	OpFillColor:        "fill-color",
	OpFillPaint:        "fill-paint",
	OpFill:             "fill",
	OpStrokeColor:      "stroke-color",
	OpStrokeWidth:      "stroke-width",
	OpStroke:           "stroke",
	OpFontSize:         "font-size",
	OpFontFace:         "font-face",
	OpFontBlur:         "font-blur",
	OpTextAlign:        "text-align",
	OpText:             "text",
}

func (k OpKind) String() string {
	if int(k) < len(opNames) {
		return opNames[k]
	}
	return fmt.Sprintf("OpKind(%d)", int(k))
}

// Op is a single recorded drawing operation. Args holds the numeric
// arguments in call order. Origin is the accumulated translation in effect
// when the operation was recorded.
type Op struct {
	Kind   OpKind
	Args   []float64
	Color  Color
	Paint  Paint
	Text   string
	Origin Vec
}

func (o Op) String() string {
	var sb strings.Builder
	sb.WriteString(o.Kind.String())
	for _, a := range o.Args {
		fmt.Fprintf(&sb, " %g", a)
	}
	switch o.Kind {
	case OpFillColor, OpStrokeColor:
		sb.WriteString(" " + o.Color.String())
	case OpText, OpFontFace:
		fmt.Fprintf(&sb, " %q", o.Text)
	}
	return sb.String()
}

// DisplayList is an immutable list of drawing operations.
// It can be replayed onto any Canvas implementation.
type DisplayList struct {
	ops  []Op
	size Point
}

// Ops returns the recorded operations.
func (d *DisplayList) Ops() []Op {
	return d.ops
}

// Size returns the surface size recorded when the display list was created.
func (d *DisplayList) Size() Point {
	return d.size
}

// Replay replays the recorded operations onto the provided canvas.
func (d *DisplayList) Replay(c Canvas) {
	for _, op := range d.ops {
		op.execute(c)
	}
}

// Texts returns the strings drawn by OpText operations, in order.
func (d *DisplayList) Texts() []string {
	var out []string
	for _, op := range d.ops {
		if op.Kind == OpText {
			out = append(out, op.Text)
		}
	}
	return out
}

func (o Op) execute(c Canvas) {
	a := o.Args
	switch o.Kind {
	case OpSave:
		c.Save()
	case OpRestore:
		c.Restore()
	case OpTranslate:
		c.Translate(a[0], a[1])
	case OpScissor:
		c.Scissor(a[0], a[1], a[2], a[3])
	case OpIntersectScissor:
		c.IntersectScissor(a[0], a[1], a[2], a[3])
	case OpResetScissor:
		c.ResetScissor()
	case OpGlobalAlpha:
		c.GlobalAlpha(a[0])
	case OpBeginPath:
		c.BeginPath()
	case OpMoveTo:
		c.MoveTo(a[0], a[1])
	case OpLineTo:
		c.LineTo(a[0], a[1])
	case OpRect:
		c.Rect(a[0], a[1], a[2], a[3])
	case OpRoundedRect:
		c.RoundedRect(a[0], a[1], a[2], a[3], a[4])
	case OpCircle:
		c.Circle(a[0], a[1], a[2])
	case OpPathWinding:
		c.PathWinding(Winding(a[0]))
	case OpFillColor:
		c.FillColor(o.Color)
	case OpFillPaint:
		c.FillPaint(o.Paint)
	case OpFill:
		c.Fill()
	case OpStrokeColor:
		c.StrokeColor(o.Color)
	case OpStrokeWidth:
		c.StrokeWidth(a[0])
	case OpStroke:
		c.Stroke()
	case OpFontSize:
		c.FontSize(a[0])
	case OpFontFace:
		c.FontFace(o.Text)
	case OpFontBlur:
		c.FontBlur(a[0])
	case OpTextAlign:
		c.TextAlign(Align(a[0]))
	case OpText:
		c.Text(a[0], a[1], o.Text)
	}
}

type recorderState struct {
	origin   Vec
	scissor  *[4]float64
	fontSize float64
	fontFace string
	align    Align
}

// Recorder is a headless Canvas that records drawing commands into a
// display list and measures text with a FontMeasurer.
type Recorder struct {
	ops       []Op
	recording bool
	size      Point
	state     recorderState
	stack     []recorderState
	measurer  *FontMeasurer
}

// NewRecorder creates a recorder that measures text with m. A nil m uses
// DefaultFontMeasurer; if that is unavailable text is measured with a
// fixed-width estimate.
func NewRecorder(m *FontMeasurer) *Recorder {
	if m == nil {
		m = DefaultFontMeasurer()
	}
	r := &Recorder{measurer: m}
	r.reset()
	return r
}

func (r *Recorder) reset() {
	r.state = recorderState{fontSize: defaultFontSize, fontFace: FontSans, align: AlignLeft | AlignBaseline}
	r.stack = r.stack[:0]
}

// BeginRecording starts a new recording session for a surface of the given size.
func (r *Recorder) BeginRecording(size Point) {
	r.ops = r.ops[:0]
	r.recording = true
	r.size = size
	r.reset()
}

// EndRecording finishes the recording and returns a display list.
func (r *Recorder) EndRecording() *DisplayList {
	if !r.recording {
		return &DisplayList{size: r.size}
	}
	r.recording = false
	ops := make([]Op, len(r.ops))
	copy(ops, r.ops)
	return &DisplayList{ops: ops, size: r.size}
}

// Origin returns the accumulated translation.
func (r *Recorder) Origin() Vec {
	return r.state.origin
}

func (r *Recorder) append(op Op) {
	if !r.recording {
		return
	}
	op.Origin = r.state.origin
	r.ops = append(r.ops, op)
}

func (r *Recorder) Save() {
	r.stack = append(r.stack, r.state)
	r.append(Op{Kind: OpSave})
}

func (r *Recorder) Restore() {
	if n := len(r.stack); n > 0 {
		r.state = r.stack[n-1]
		r.stack = r.stack[:n-1]
	}
	r.append(Op{Kind: OpRestore})
}

func (r *Recorder) Translate(dx, dy float64) {
	r.state.origin = r.state.origin.Add(Vec{X: dx, Y: dy})
	r.append(Op{Kind: OpTranslate, Args: []float64{dx, dy}})
}

func (r *Recorder) Scissor(x, y, w, h float64) {
	s := [4]float64{x + r.state.origin.X, y + r.state.origin.Y, w, h}
	r.state.scissor = &s
	r.append(Op{Kind: OpScissor, Args: []float64{x, y, w, h}})
}

func (r *Recorder) IntersectScissor(x, y, w, h float64) {
	r.append(Op{Kind: OpIntersectScissor, Args: []float64{x, y, w, h}})
}

func (r *Recorder) ResetScissor() {
	r.state.scissor = nil
	r.append(Op{Kind: OpResetScissor})
}

func (r *Recorder) GlobalAlpha(alpha float64) {
	r.append(Op{Kind: OpGlobalAlpha, Args: []float64{alpha}})
}

func (r *Recorder) BeginPath() { r.append(Op{Kind: OpBeginPath}) }

func (r *Recorder) MoveTo(x, y float64) {
	r.append(Op{Kind: OpMoveTo, Args: []float64{x, y}})
}

func (r *Recorder) LineTo(x, y float64) {
	r.append(Op{Kind: OpLineTo, Args: []float64{x, y}})
}

func (r *Recorder) Rect(x, y, w, h float64) {
	r.append(Op{Kind: OpRect, Args: []float64{x, y, w, h}})
}

func (r *Recorder) RoundedRect(x, y, w, h, rad float64) {
	r.append(Op{Kind: OpRoundedRect, Args: []float64{x, y, w, h, rad}})
}

func (r *Recorder) Circle(cx, cy, rad float64) {
	r.append(Op{Kind: OpCircle, Args: []float64{cx, cy, rad}})
}

func (r *Recorder) PathWinding(w Winding) {
	r.append(Op{Kind: OpPathWinding, Args: []float64{float64(w)}})
}

func (r *Recorder) FillColor(c Color) { r.append(Op{Kind: OpFillColor, Color: c}) }
func (r *Recorder) FillPaint(p Paint) { r.append(Op{Kind: OpFillPaint, Paint: p}) }
func (r *Recorder) Fill()             { r.append(Op{Kind: OpFill}) }

func (r *Recorder) StrokeColor(c Color) { r.append(Op{Kind: OpStrokeColor, Color: c}) }

func (r *Recorder) StrokeWidth(w float64) {
	r.append(Op{Kind: OpStrokeWidth, Args: []float64{w}})
}

func (r *Recorder) Stroke() { r.append(Op{Kind: OpStroke}) }

func (r *Recorder) LinearGradient(sx, sy, ex, ey float64, inner, outer Color) Paint {
	return Paint{Kind: PaintLinearGradient, X: sx, Y: sy, W: ex - sx, H: ey - sy, Inner: inner, Outer: outer}
}

func (r *Recorder) BoxGradient(x, y, w, h, rad, feather float64, inner, outer Color) Paint {
	return Paint{Kind: PaintBoxGradient, X: x, Y: y, W: w, H: h, Radius: rad, Feather: feather, Inner: inner, Outer: outer}
}

func (r *Recorder) ImagePattern(ox, oy, ex, ey, angle float64, image ImageHandle, alpha float64) Paint {
	return Paint{Kind: PaintImagePattern, X: ox, Y: oy, W: ex, H: ey, Angle: angle, Image: image, Alpha: alpha}
}

func (r *Recorder) FontSize(size float64) {
	r.state.fontSize = size
	r.append(Op{Kind: OpFontSize, Args: []float64{size}})
}

func (r *Recorder) FontFace(name string) {
	r.state.fontFace = name
	r.append(Op{Kind: OpFontFace, Text: name})
}

func (r *Recorder) FontBlur(blur float64) {
	r.append(Op{Kind: OpFontBlur, Args: []float64{blur}})
}

func (r *Recorder) TextAlign(align Align) {
	r.state.align = align
	r.append(Op{Kind: OpTextAlign, Args: []float64{float64(align)}})
}

func (r *Recorder) Text(x, y float64, s string) float64 {
	r.append(Op{Kind: OpText, Args: []float64{x, y}, Text: s})
	return x + r.measure(s).Advance
}

func (r *Recorder) TextBounds(x, y float64, s string) (float64, [4]float64) {
	m := r.measure(s)
	minX := x
	switch {
	case r.state.align&AlignCenter != 0:
		minX = x - m.Advance/2
	case r.state.align&AlignRight != 0:
		minX = x - m.Advance
	}
	h := m.Height()
	minY := y - m.Ascent
	switch {
	case r.state.align&AlignTop != 0:
		minY = y
	case r.state.align&AlignMiddle != 0:
		minY = y - h/2
	case r.state.align&AlignBottom != 0:
		minY = y - h
	}
	return m.Advance, [4]float64{minX, minY, minX + m.Advance, minY + h}
}

func (r *Recorder) measure(s string) TextMetrics {
	if r.measurer != nil {
		if m, err := r.measurer.Measure(r.state.fontFace, r.state.fontSize, s); err == nil {
			return m
		}
	}
	size := r.state.fontSize
	return TextMetrics{
		Advance: 0.6 * size * float64(utf8.RuneCountInString(s)),
		Ascent:  0.8 * size,
		Descent: 0.2 * size,
	}
}

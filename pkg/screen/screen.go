// Package screen implements the root of a widget tree: it owns the focus
// path, the drag target, the hover list and the cursor, and turns host
// input callbacks into recursive dispatch over the tree.
//
// All methods must be called from the single goroutine that runs the host
// event loop.
package screen

import (
	"time"

	"github.com/go-drift/trellis/pkg/errors"
	"github.com/go-drift/trellis/pkg/graphics"
	"github.com/go-drift/trellis/pkg/theme"
	"github.com/go-drift/trellis/pkg/widget"
)

// TooltipDelay is the default time the pointer must rest before a
// tooltip shows.
const TooltipDelay = 500 * time.Millisecond

// Host is the native window the screen is shown in.
type Host interface {
	// SetCursor changes the pointer shape. CursorNone restores the default.
	SetCursor(c widget.Cursor)
}

// NopHost is a Host that ignores every request.
type NopHost struct{}

func (NopHost) SetCursor(widget.Cursor) {}

// Clock provides the time used for tooltip delays.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Screen is the root widget of a tree.
type Screen struct {
	widget.Base

	host  Host
	ctx   graphics.Canvas
	clock Clock

	caption    string
	background graphics.Color

	focusPath  []widget.Widget
	dragWidget widget.Widget
	dragActive bool
	hovered    []widget.Widget
	cursor     widget.Cursor

	mousePos   graphics.Point
	mouseState int
	modifiers  widget.ModifierKey

	lastInteraction time.Time
	escapeHides     bool
	tooltipDelay    time.Duration

	depth    int
	deferred []func()

	resizeHandler func(size graphics.Point)
	dropHandler   func(paths []string) bool
}

// New creates a screen of the given size. ctx is used for layout
// measurement and drawing; host receives cursor changes and may be nil.
func New(host Host, ctx graphics.Canvas, size graphics.Point, th *theme.ThemeData) *Screen {
	if host == nil {
		host = NopHost{}
	}
	if th == nil {
		th = theme.DefaultTheme()
	}
	s := &Screen{
		host:         host,
		ctx:          ctx,
		clock:        realClock{},
		background:   graphics.RGB(77, 77, 82),
		tooltipDelay: TooltipDelay,
	}
	s.Init(s, nil)
	s.SetSize(size)
	s.SetTheme(th)
	s.lastInteraction = s.clock.Now()
	return s
}

// SetClock replaces the time source. It returns the previous clock.
func (s *Screen) SetClock(c Clock) Clock {
	prev := s.clock
	s.clock = c
	s.lastInteraction = c.Now()
	return prev
}

// Canvas returns the context used for layout and drawing.
func (s *Screen) Canvas() graphics.Canvas { return s.ctx }

// SetCanvas replaces the context used for layout and drawing.
func (s *Screen) SetCanvas(ctx graphics.Canvas) { s.ctx = ctx }

func (s *Screen) Caption() string { return s.caption }
func (s *Screen) SetCaption(c string) { s.caption = c }
func (s *Screen) Background() graphics.Color { return s.background }
func (s *Screen) SetBackground(c graphics.Color) { s.background = c }

// EscapeHides reports whether an unhandled Escape press hides the screen.
func (s *Screen) EscapeHides() bool { return s.escapeHides }

// SetEscapeHides enables hiding the screen on an unhandled Escape press.
func (s *Screen) SetEscapeHides(v bool) { s.escapeHides = v }

// TooltipDelay returns how long the pointer must rest before a tooltip
// shows.
func (s *Screen) TooltipDelay() time.Duration { return s.tooltipDelay }

// SetTooltipDelay changes the tooltip delay. Negative values are treated
// as zero.
func (s *Screen) SetTooltipDelay(d time.Duration) { s.tooltipDelay = max(d, 0) }

// MousePos returns the last pointer position in screen coordinates.
func (s *Screen) MousePos() graphics.Point { return s.mousePos }

// MouseState returns the mask of held buttons.
func (s *Screen) MouseState() int { return s.mouseState }

// Modifiers returns the modifier mask of the last button event.
func (s *Screen) Modifiers() widget.ModifierKey { return s.modifiers }

// CurrentCursor returns the cursor last pushed to the host.
func (s *Screen) CurrentCursor() widget.Cursor { return s.cursor }

// DragWidget returns the widget receiving drag events, or nil.
func (s *Screen) DragWidget() widget.Widget {
	if !s.dragActive {
		return nil
	}
	return s.dragWidget
}

// Hovered returns the widgets currently under the pointer, in the order
// they were entered.
func (s *Screen) Hovered() []widget.Widget {
	return append([]widget.Widget(nil), s.hovered...)
}

// SetResizeHandler registers a function called after the screen is
// resized by the host.
func (s *Screen) SetResizeHandler(fn func(size graphics.Point)) {
	s.resizeHandler = fn
}

// SetDropHandler registers a function receiving dropped file paths.
func (s *Screen) SetDropHandler(fn func(paths []string) bool) {
	s.dropHandler = fn
}

// Defer schedules fn to run once the current dispatch or draw returns. It
// runs fn immediately when nothing is in progress. Widgets use it to remove
// themselves from inside their own handlers.
func (s *Screen) Defer(fn func()) {
	if s.depth == 0 {
		fn()
		return
	}
	s.deferred = append(s.deferred, fn)
}

// dispatch runs fn as one host-level dispatch: panics are recovered and
// reported so the event loop keeps running, and deferred work runs once
// the outermost dispatch returns.
func (s *Screen) dispatch(op string, fn func() bool) (handled bool) {
	s.depth++
	defer func() {
		s.depth--
		if s.depth == 0 {
			s.runDeferred()
		}
	}()
	defer errors.Recover(op)
	return fn()
}

func (s *Screen) runDeferred() {
	for len(s.deferred) > 0 {
		queue := s.deferred
		s.deferred = nil
		for _, fn := range queue {
			s.runOne(fn)
		}
	}
}

func (s *Screen) runOne(fn func()) {
	errors.Guard("screen.Defer", fn)
}

// PerformLayout lays out the whole tree. Windows are sized to their
// preferred size.
func (s *Screen) PerformLayout(ctx graphics.Canvas) {
	s.Base.PerformLayout(ctx)
	s.ClearLayoutDirty()
}

// DrawAll runs a pending layout pass, draws the tree and, after the pointer
// has rested for the tooltip delay, the tooltip of the widget under it.
func (s *Screen) DrawAll() {
	if !s.Visible() {
		return
	}
	s.dispatch("screen.DrawAll", func() bool {
		if s.NeedsLayout() {
			s.PerformLayout(s.ctx)
		}
		s.Draw(s.ctx)
		s.drawTooltip(s.ctx)
		return true
	})
}

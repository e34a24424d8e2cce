package testing

import (
	"testing"

	"github.com/go-drift/trellis/pkg/errors"
	"github.com/go-drift/trellis/pkg/graphics"
	"github.com/go-drift/trellis/pkg/screen"
	"github.com/go-drift/trellis/pkg/theme"
	"github.com/go-drift/trellis/pkg/widget"
)

const (
	// DefaultTestWidth is the default width of the test screen.
	DefaultTestWidth = 800
	// DefaultTestHeight is the default height of the test screen.
	DefaultTestHeight = 600
)

// host records the cursor requested by the screen.
type host struct {
	cursor widget.Cursor
	sets   int
}

func (h *host) SetCursor(c widget.Cursor) {
	h.cursor = c
	h.sets++
}

// collector is the error handler installed while a tester is alive.
type collector struct {
	errs   []*errors.TrellisError
	panics []*errors.PanicError
}

func (c *collector) HandleError(err *errors.TrellisError) { c.errs = append(c.errs, err) }
func (c *collector) HandlePanic(err *errors.PanicError)   { c.panics = append(c.panics, err) }

// ScreenTester owns a screen backed by a recording canvas, a fake clock
// and a host that records cursor changes. Errors reported while the tester
// is alive are collected instead of logged.
type ScreenTester struct {
	screen    *screen.Screen
	recorder  *graphics.Recorder
	clock     *FakeClock
	host      *host
	collector *collector
	frame     *graphics.DisplayList
	pointer   graphics.Point
}

// NewScreenTester creates a tester with an empty screen of the default
// size. Call Cleanup when done, or use NewScreenTesterWithT instead.
func NewScreenTester() *ScreenTester {
	t := &ScreenTester{
		recorder:  graphics.NewRecorder(nil),
		clock:     NewFakeClock(),
		host:      &host{},
		collector: &collector{},
	}
	t.screen = screen.New(t.host, t.recorder, graphics.Pt(DefaultTestWidth, DefaultTestHeight), nil)
	t.screen.SetClock(t.clock)
	errors.SetHandler(t.collector)
	return t
}

// NewScreenTesterWithT creates a tester that cleans up via t.Cleanup.
func NewScreenTesterWithT(t *testing.T) *ScreenTester {
	tester := NewScreenTester()
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup restores the default error handler.
func (t *ScreenTester) Cleanup() {
	errors.SetHandler(nil)
}

// Screen returns the screen widgets are built on.
func (t *ScreenTester) Screen() *screen.Screen { return t.screen }

// Clock returns the fake clock used by the screen.
func (t *ScreenTester) Clock() *FakeClock { return t.clock }

// Cursor returns the cursor the screen last asked the host for.
func (t *ScreenTester) Cursor() widget.Cursor { return t.host.cursor }

// SetSize resizes the screen as a host window resize would.
func (t *ScreenTester) SetSize(size graphics.Point) {
	t.screen.ResizeCallback(size.X, size.Y)
}

// SetTheme replaces the theme of the whole tree.
func (t *ScreenTester) SetTheme(th *theme.ThemeData) {
	t.screen.SetTheme(th)
	t.screen.MarkLayoutDirty()
}

// Pump runs a frame: a layout pass when the tree changed, then a draw into
// the recorder. It returns the first error reported during the frame.
func (t *ScreenTester) Pump() error {
	before := len(t.collector.errs)
	t.recorder.BeginRecording(t.screen.Size())
	t.screen.DrawAll()
	t.frame = t.recorder.EndRecording()
	if len(t.collector.errs) > before {
		return t.collector.errs[before]
	}
	return nil
}

// Layout forces a layout pass without drawing.
func (t *ScreenTester) Layout() {
	t.screen.PerformLayout(t.recorder)
}

// Frame returns the display list recorded by the last Pump.
func (t *ScreenTester) Frame() *graphics.DisplayList { return t.frame }

// Errors returns every error reported since the tester was created.
func (t *ScreenTester) Errors() []*errors.TrellisError { return t.collector.errs }

// Panics returns every recovered panic reported since the tester was
// created.
func (t *ScreenTester) Panics() []*errors.PanicError { return t.collector.panics }

// Find evaluates a finder against the screen's tree.
func (t *ScreenTester) Find(finder Finder) FinderResult {
	return FinderResult{
		widgets: finder.Evaluate(t.screen),
		finder:  finder,
	}
}

// Focused returns the focused leaf, or nil.
func (t *ScreenTester) Focused() widget.Widget {
	return t.screen.FocusedWidget()
}

package testing

import (
	"fmt"

	"github.com/go-drift/trellis/pkg/graphics"
	"github.com/go-drift/trellis/pkg/widget"
)

// center returns the absolute center of w.
func center(w widget.Widget) graphics.Point {
	n := w.Node()
	return n.AbsolutePosition().Add(n.Size().Div(2))
}

func (t *ScreenTester) target(op string, finder Finder) (graphics.Point, error) {
	w := t.Find(finder).FirstOrNil()
	if w == nil {
		return graphics.Point{}, fmt.Errorf("%s: finder matched no widgets: %s", op, finder.Description())
	}
	if !w.Node().VisibleRecursive() {
		return graphics.Point{}, fmt.Errorf("%s: widget is hidden: %s", op, finder.Description())
	}
	return center(w), nil
}

// Tap presses and releases the primary button at the center of the first
// widget matched by finder.
func (t *ScreenTester) Tap(finder Finder) error {
	pos, err := t.target("Tap", finder)
	if err != nil {
		return err
	}
	t.TapAt(pos)
	return nil
}

// TapAt moves the pointer to pos, then presses and releases the primary
// button there.
func (t *ScreenTester) TapAt(pos graphics.Point) {
	t.MoveTo(pos)
	t.Press(widget.MouseLeft)
	t.Release(widget.MouseLeft)
}

// Drag presses on the center of the first widget matched by finder, moves
// by delta and releases.
func (t *ScreenTester) Drag(finder Finder, delta graphics.Point) error {
	pos, err := t.target("Drag", finder)
	if err != nil {
		return err
	}
	t.DragFrom(pos, delta)
	return nil
}

// DragFrom presses at start, moves by delta in two steps and releases.
func (t *ScreenTester) DragFrom(start, delta graphics.Point) {
	t.MoveTo(start)
	t.Press(widget.MouseLeft)
	t.MoveTo(start.Add(delta.Div(2)))
	t.MoveTo(start.Add(delta))
	t.Release(widget.MouseLeft)
}

// MoveTo sends a cursor motion to pos.
func (t *ScreenTester) MoveTo(pos graphics.Point) {
	t.pointer = pos
	t.screen.CursorPosCallback(float64(pos.X), float64(pos.Y))
}

// Pointer returns the last position sent with MoveTo.
func (t *ScreenTester) Pointer() graphics.Point { return t.pointer }

// Press presses button at the current pointer position.
func (t *ScreenTester) Press(button widget.MouseButton) {
	t.screen.MouseButtonCallback(button, widget.Press, 0)
}

// Release releases button at the current pointer position.
func (t *ScreenTester) Release(button widget.MouseButton) {
	t.screen.MouseButtonCallback(button, widget.Release, 0)
}

// Scroll sends a wheel event at the current pointer position. Positive dy
// scrolls up.
func (t *ScreenTester) Scroll(dx, dy float64) bool {
	return t.screen.ScrollCallback(dx, dy)
}

// PressKey sends a press and a release of key.
func (t *ScreenTester) PressKey(key widget.Key, mods widget.ModifierKey) bool {
	handled := t.screen.KeyCallback(key, 0, widget.Press, mods)
	t.screen.KeyCallback(key, 0, widget.Release, mods)
	return handled
}

// TypeText sends one character event per rune of s.
func (t *ScreenTester) TypeText(s string) {
	for _, r := range s {
		t.screen.CharCallback(r)
	}
}

// EnterText taps the widget matched by finder, selects its content, types
// s and presses Enter.
func (t *ScreenTester) EnterText(finder Finder, s string) error {
	if err := t.Tap(finder); err != nil {
		return err
	}
	t.PressKey(widget.KeyA, widget.ModControl)
	t.TypeText(s)
	t.PressKey(widget.KeyEnter, 0)
	return nil
}

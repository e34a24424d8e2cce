package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/trellis/pkg/widget"
)

func init() {
	RegisterCommand(&Command{
		Name:  "replay",
		Short: "Replay input events against a scene",
		Long: `Build a scene file on a headless screen and feed it a YAML list of host
events, printing the focus path, drag target and cursor after each one.

Each list item holds exactly one event:

  - move: [x, y]            pointer moved to x, y
  - press: left             button pressed (left, right, middle)
  - release: left           button released
  - key: ctrl+a             key pressed and released, with modifiers
  - char: "hello"           characters typed
  - scroll: [dx, dy]        scroll wheel
  - resize: [w, h]          host window resized
  - wait: 600ms             time passes (tooltips become due)

Buttons accept modifiers as well, e.g. "shift+left".`,
		Usage: "trellis replay <scene> <events.yaml>",
		Run:   runReplay,
	})
}

// replayEvent is one item of an events file.
type replayEvent struct {
	Move    []float64     `yaml:"move"`
	Press   string        `yaml:"press"`
	Release string        `yaml:"release"`
	Key     string        `yaml:"key"`
	Char    string        `yaml:"char"`
	Scroll  []float64     `yaml:"scroll"`
	Resize  []int         `yaml:"resize"`
	Wait    time.Duration `yaml:"wait"`
}

func (e replayEvent) String() string {
	switch {
	case e.Move != nil:
		return fmt.Sprintf("move %g,%g", e.Move[0], e.Move[1])
	case e.Press != "":
		return "press " + e.Press
	case e.Release != "":
		return "release " + e.Release
	case e.Key != "":
		return "key " + e.Key
	case e.Char != "":
		return fmt.Sprintf("char %q", e.Char)
	case e.Scroll != nil:
		return fmt.Sprintf("scroll %g,%g", e.Scroll[0], e.Scroll[1])
	case e.Resize != nil:
		return fmt.Sprintf("resize %dx%d", e.Resize[0], e.Resize[1])
	default:
		return "wait " + e.Wait.String()
	}
}

func (e replayEvent) validate() error {
	set := 0
	for _, ok := range []bool{
		e.Move != nil, e.Press != "", e.Release != "", e.Key != "",
		e.Char != "", e.Scroll != nil, e.Resize != nil, e.Wait != 0,
	} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("expected exactly one event, got %d", set)
	}
	if e.Move != nil && len(e.Move) != 2 || e.Scroll != nil && len(e.Scroll) != 2 || e.Resize != nil && len(e.Resize) != 2 {
		return fmt.Errorf("expected a pair of numbers")
	}
	if e.Wait < 0 {
		return fmt.Errorf("wait must not be negative")
	}
	return nil
}

var keyNames = map[string]widget.Key{
	"space":     widget.KeySpace,
	"a":         widget.KeyA,
	"c":         widget.KeyC,
	"v":         widget.KeyV,
	"x":         widget.KeyX,
	"escape":    widget.KeyEscape,
	"enter":     widget.KeyEnter,
	"tab":       widget.KeyTab,
	"backspace": widget.KeyBackspace,
	"delete":    widget.KeyDelete,
	"right":     widget.KeyRight,
	"left":      widget.KeyLeft,
	"down":      widget.KeyDown,
	"up":        widget.KeyUp,
	"home":      widget.KeyHome,
	"end":       widget.KeyEnd,
}

var buttonNames = map[string]widget.MouseButton{
	"left":   widget.MouseLeft,
	"right":  widget.MouseRight,
	"middle": widget.MouseMiddle,
}

var modifierNames = map[string]widget.ModifierKey{
	"shift": widget.ModShift,
	"ctrl":  widget.ModControl,
	"alt":   widget.ModAlt,
	"super": widget.ModSuper,
}

// splitModifiers parses "ctrl+shift+name" into the modifier mask and name.
func splitModifiers(s string) (widget.ModifierKey, string, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "+")
	var mods widget.ModifierKey
	for _, p := range parts[:len(parts)-1] {
		m, ok := modifierNames[p]
		if !ok {
			return 0, "", fmt.Errorf("unknown modifier %q", p)
		}
		mods |= m
	}
	return mods, parts[len(parts)-1], nil
}

// readEvents decodes an events file, rejecting unknown event names.
func readEvents(r io.Reader) ([]replayEvent, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var events []replayEvent
	if err := dec.Decode(&events); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse events: %w", err)
	}
	for i, e := range events {
		if err := e.validate(); err != nil {
			return nil, fmt.Errorf("event %d: %w", i+1, err)
		}
	}
	return events, nil
}

func runReplay(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("replay requires a scene file and an events file")
	}
	data, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("failed to read events: %w", err)
	}
	events, err := readEvents(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%s: %w", args[1], err)
	}
	s, err := newSession(args[0])
	if err != nil {
		return err
	}

	s.frame()
	for i, e := range events {
		handled, err := s.apply(e)
		if err != nil {
			return fmt.Errorf("event %d (%s): %w", i+1, e, err)
		}
		s.frame()
		s.printState(i+1, e, handled)
	}
	return nil
}

// apply sends one event to the screen.
func (s *session) apply(e replayEvent) (bool, error) {
	sc := s.screen
	switch {
	case e.Move != nil:
		return sc.CursorPosCallback(e.Move[0], e.Move[1]), nil
	case e.Press != "" || e.Release != "":
		name, action := e.Press, widget.Press
		if name == "" {
			name, action = e.Release, widget.Release
		}
		mods, name, err := splitModifiers(name)
		if err != nil {
			return false, err
		}
		b, ok := buttonNames[name]
		if !ok {
			return false, fmt.Errorf("unknown mouse button %q", name)
		}
		return sc.MouseButtonCallback(b, action, mods), nil
	case e.Key != "":
		mods, name, err := splitModifiers(e.Key)
		if err != nil {
			return false, err
		}
		k, ok := keyNames[name]
		if !ok {
			return false, fmt.Errorf("unknown key %q", name)
		}
		handled := sc.KeyCallback(k, 0, widget.Press, mods)
		sc.KeyCallback(k, 0, widget.Release, mods)
		return handled, nil
	case e.Char != "":
		handled := false
		for _, r := range e.Char {
			handled = sc.CharCallback(r) || handled
		}
		return handled, nil
	case e.Scroll != nil:
		return sc.ScrollCallback(e.Scroll[0], e.Scroll[1]), nil
	case e.Resize != nil:
		return sc.ResizeCallback(e.Resize[0], e.Resize[1]), nil
	default:
		s.clock.now = s.clock.now.Add(e.Wait)
		return false, nil
	}
}

func (s *session) printState(n int, e replayEvent, handled bool) {
	var path []string
	for _, w := range s.screen.FocusPath() {
		path = append(path, describe(w))
	}
	line := fmt.Sprintf("%3d %-22s handled=%-5t focus=[%s] drag=%s cursor=%s",
		n, e, handled, strings.Join(path, " > "), describe(s.screen.DragWidget()), s.screen.CurrentCursor())
	if tip := s.screen.TooltipWidget(); tip != nil {
		line += fmt.Sprintf(" tooltip=%q", tip.Node().Tooltip())
	}
	fmt.Fprintln(stdout, line)
}

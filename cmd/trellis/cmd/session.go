package cmd

import (
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"

	"github.com/go-drift/trellis/cmd/trellis/internal/config"
	"github.com/go-drift/trellis/pkg/graphics"
	"github.com/go-drift/trellis/pkg/scene"
	"github.com/go-drift/trellis/pkg/screen"
	"github.com/go-drift/trellis/pkg/widget"
)

// replayClock is advanced by "wait" events so tooltips appear without
// real time passing.
type replayClock struct {
	now time.Time
}

func (c *replayClock) Now() time.Time { return c.now }

// session is a headless screen with a scene built on it.
type session struct {
	cfg      *config.Resolved
	screen   *screen.Screen
	recorder *graphics.Recorder
	clock    *replayClock
}

// newSession resolves the project configuration, then loads and builds the
// scene file. A size in the scene file overrides trellis.yaml.
func newSession(scenePath string) (*session, error) {
	root, err := config.FindProjectRoot()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Resolve(root)
	if err != nil {
		return nil, err
	}

	sc, err := scene.Load(scenePath)
	if err != nil {
		return nil, err
	}
	size := graphics.Pt(cfg.Width, cfg.Height)
	if sc.Width > 0 {
		size.X = sc.Width
	}
	if sc.Height > 0 {
		size.Y = sc.Height
	}

	s := &session{
		cfg:      cfg,
		recorder: graphics.NewRecorder(nil),
		clock:    &replayClock{now: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	s.screen = screen.New(nil, s.recorder, size, cfg.Theme)
	s.screen.SetCaption(cfg.Caption)
	s.screen.SetTooltipDelay(cfg.TooltipDelay)
	s.screen.SetClock(s.clock)

	if _, err := sc.Build(s.screen, nil); err != nil {
		return nil, fmt.Errorf("%s: %w", scenePath, err)
	}
	return s, nil
}

// frame runs pending layout and draws the tree into a new display list.
func (s *session) frame() *graphics.DisplayList {
	s.recorder.BeginRecording(s.screen.Size())
	s.screen.DrawAll()
	return s.recorder.EndRecording()
}

// typeName returns the unqualified type name of w.
func typeName(w widget.Widget) string {
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// describe names a widget as "Type#id" followed by its caption or title.
func describe(w widget.Widget) string {
	if w == nil {
		return "-"
	}
	var sb strings.Builder
	sb.WriteString(typeName(w))
	if id := w.Node().ID(); id != "" {
		sb.WriteString("#" + id)
	}
	switch v := w.(type) {
	case interface{ Caption() string }:
		if c := v.Caption(); c != "" {
			fmt.Fprintf(&sb, " %q", c)
		}
	case interface{ Title() string }:
		if c := v.Title(); c != "" {
			fmt.Fprintf(&sb, " %q", c)
		}
	}
	return sb.String()
}

// printTree writes one line per widget, indented by depth, with the
// absolute position and size. Hidden subtrees are marked and skipped.
func printTree(out io.Writer, w widget.Widget, depth int) {
	n := w.Node()
	pos := n.AbsolutePosition()
	line := fmt.Sprintf("%s%s (%d,%d) %dx%d", strings.Repeat("  ", depth), describe(w), pos.X, pos.Y, n.Width(), n.Height())
	if !n.Visible() {
		fmt.Fprintln(out, line+" hidden")
		return
	}
	if !n.Enabled() {
		line += " disabled"
	}
	fmt.Fprintln(out, line)
	for _, c := range n.Children() {
		printTree(out, c, depth+1)
	}
}

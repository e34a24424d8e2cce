package testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-drift/trellis/pkg/graphics"
	"github.com/go-drift/trellis/pkg/widget"
)

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot captures the widget tree and the drawing operations of a frame.
type Snapshot struct {
	Tree       *WidgetNode `json:"tree"`
	DisplayOps []DisplayOp `json:"displayOps,omitempty"`
}

// WidgetNode is a node in the serialized widget tree.
type WidgetNode struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Position   [2]int         `json:"pos"`
	Size       [2]int         `json:"size"`
	Hidden     bool           `json:"hidden,omitempty"`
	Properties map[string]any `json:"props,omitempty"`
	Children   []*WidgetNode  `json:"children,omitempty"`
}

// DisplayOp is a serialized drawing operation.
type DisplayOp struct {
	Op    string    `json:"op"`
	Args  []float64 `json:"args,omitempty"`
	Color string    `json:"color,omitempty"`
	Text  string    `json:"text,omitempty"`
}

// CaptureSnapshot lays out and draws the screen, then captures the tree
// and the recorded operations.
func (t *ScreenTester) CaptureSnapshot() *Snapshot {
	t.Pump()
	return &Snapshot{
		Tree:       captureWidget(t.screen, &typeCounter{}),
		DisplayOps: serializeDisplayList(t.frame),
	}
}

// MatchesFile compares this snapshot against a golden file. On mismatch it
// reports a diff and instructions for updating. When
// TRELLIS_UPDATE_SNAPSHOTS=1 is set, the file is silently updated instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv("TRELLIS_UPDATE_SNAPSHOTS") == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := loadSnapshot(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: TRELLIS_UPDATE_SNAPSHOTS=1 go test -run %s", path, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(expected); diff != "" {
		t.Errorf("snapshot mismatch: %s\n%s\n\nTo update: TRELLIS_UPDATE_SNAPSHOTS=1 go test -run %s", path, diff, t.Name())
	}
}

// UpdateFile writes this snapshot to path, creating directories as
// needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := marshalSnapshot(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns a line diff between other (expected) and this snapshot, or
// "" if they are equal.
func (s *Snapshot) Diff(other *Snapshot) string {
	a, _ := marshalSnapshot(s)
	b, _ := marshalSnapshot(other)
	if bytes.Equal(a, b) {
		return ""
	}
	return unifiedDiff(string(b), string(a))
}

// --- Internal ---

// typeCounter assigns stable IDs like "Button#0", "Button#1" to widgets
// without an ID.
type typeCounter struct {
	counts map[string]int
}

func (c *typeCounter) next(typeName string) string {
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	n := c.counts[typeName]
	c.counts[typeName] = n + 1
	return fmt.Sprintf("%s#%d", typeName, n)
}

func widgetTypeName(w widget.Widget) string {
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

func captureWidget(w widget.Widget, counter *typeCounter) *WidgetNode {
	n := w.Node()
	typeName := widgetTypeName(w)
	id := n.ID()
	if id == "" {
		id = counter.next(typeName)
	}
	node := &WidgetNode{
		ID:       id,
		Type:     typeName,
		Position: [2]int{n.Position().X, n.Position().Y},
		Size:     [2]int{n.Width(), n.Height()},
		Hidden:   !n.Visible(),
	}
	if props := captureProperties(w); len(props) > 0 {
		node.Properties = props
	}
	for _, c := range n.Children() {
		node.Children = append(node.Children, captureWidget(c, counter))
	}
	return node
}

// captureProperties records the user-visible state of the standard
// widgets.
func captureProperties(w widget.Widget) map[string]any {
	props := make(map[string]any)
	if s, ok := textOf(w); ok && s != "" {
		props["text"] = s
	}
	if v, ok := w.(interface{ Checked() bool }); ok {
		props["checked"] = v.Checked()
	}
	if v, ok := w.(interface{ Pushed() bool }); ok && v.Pushed() {
		props["pushed"] = true
	}
	if v, ok := w.(interface{ Scroll() float64 }); ok {
		props["scroll"] = round2(v.Scroll())
	}
	if v, ok := w.(interface{ Value() float64 }); ok {
		props["value"] = round2(v.Value())
	}
	if !w.Node().Enabled() {
		props["disabled"] = true
	}
	return props
}

func serializeDisplayList(dl *graphics.DisplayList) []DisplayOp {
	if dl == nil {
		return nil
	}
	ops := make([]DisplayOp, 0, len(dl.Ops()))
	for _, op := range dl.Ops() {
		d := DisplayOp{Op: op.Kind.String()}
		for _, a := range op.Args {
			d.Args = append(d.Args, round2(a))
		}
		switch op.Kind {
		case graphics.OpFillColor, graphics.OpStrokeColor:
			d.Color = op.Color.String()
		case graphics.OpText, graphics.OpFontFace:
			d.Text = op.Text
		}
		ops = append(ops, d)
	}
	return ops
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func loadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", path, err)
	}
	return &s, nil
}

func marshalSnapshot(s *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// unifiedDiff produces a simple line-oriented diff.
func unifiedDiff(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var buf strings.Builder
	buf.WriteString("--- expected\n+++ actual\n")

	for i := range max(len(expectedLines), len(actualLines)) {
		var e, a string
		if i < len(expectedLines) {
			e = expectedLines[i]
		}
		if i < len(actualLines) {
			a = actualLines[i]
		}
		if e != a {
			if i < len(expectedLines) {
				fmt.Fprintf(&buf, "-%s\n", e)
			}
			if i < len(actualLines) {
				fmt.Fprintf(&buf, "+%s\n", a)
			}
		}
	}
	return buf.String()
}

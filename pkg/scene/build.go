package scene

import (
	"fmt"
	"strings"

	"github.com/go-drift/trellis/pkg/errors"
	"github.com/go-drift/trellis/pkg/layout"
	"github.com/go-drift/trellis/pkg/widget"
	"github.com/go-drift/trellis/pkg/window"
)

// Build creates the scene's widgets under parent, normally a screen, and
// returns the top-level ones. A nil registry selects DefaultRegistry.
//
// Building stops at the first error. Everything the failing top-level
// widget added to parent, popups included, is removed again; earlier
// widgets stay attached.
func (s *Scene) Build(parent widget.Widget, reg *Registry) ([]widget.Widget, error) {
	if reg == nil {
		reg = DefaultRegistry
	}
	pn := parent.Node()
	var out []widget.Widget
	for _, n := range s.Widgets {
		before := pn.ChildCount()
		w, err := build(parent, n, reg)
		if err != nil {
			for pn.ChildCount() > before {
				pn.RemoveChildAt(pn.ChildCount() - 1)
			}
			return out, err
		}
		out = append(out, w)
	}
	parent.Node().MarkLayoutDirty()
	return out, nil
}

func buildError(n *Node, kind errors.ErrorKind, err error) error {
	return &errors.TrellisError{Op: "scene.Build", Kind: kind, Widget: n.path, Err: err}
}

// build creates n and its subtree. Misuse panics raised by constructors
// are returned as errors, since scene files are input data.
func build(parent widget.Widget, n *Node, reg *Registry) (w widget.Widget, err error) {
	defer func() {
		if r := recover(); r != nil {
			me, ok := r.(*errors.MisuseError)
			if !ok {
				panic(r)
			}
			err = buildError(n, errors.KindMisuse, me)
		}
	}()

	f, ok := reg.Lookup(n.Type)
	if !ok {
		return nil, buildError(n, errors.KindMissing,
			fmt.Errorf("unknown widget type %q: %w", n.Type, errors.ErrNotFound))
	}
	w, err = f(parent, n)
	if err != nil {
		return w, buildError(n, errors.KindMisuse, err)
	}
	if err := applyCommon(w, n); err != nil {
		return w, buildError(n, errors.KindMisuse, err)
	}
	content := contentOf(w)
	if err := applyLayout(content, n); err != nil {
		return w, buildError(n, errors.KindMisuse, err)
	}
	if unused := n.unused(); len(unused) > 0 {
		return w, buildError(n, errors.KindMisuse,
			fmt.Errorf("unknown %s properties: %s", n.Type, strings.Join(unused, ", ")))
	}
	for _, c := range n.Children {
		if _, err := build(content, c, reg); err != nil {
			return w, err
		}
	}
	return w, nil
}

// contentOf returns the widget that receives the children of w: the popup
// of a popup button, w itself otherwise.
func contentOf(w widget.Widget) widget.Widget {
	if p, ok := w.(interface{ Popup() *window.Popup }); ok {
		return p.Popup()
	}
	return w
}

func applyCommon(w widget.Widget, n *Node) error {
	b := w.Node()
	id, err := n.String("id", "")
	if err != nil {
		return err
	}
	b.SetID(id)
	pos, err := n.Point("position", b.Position())
	if err != nil {
		return err
	}
	b.SetPosition(pos)
	fixed, err := n.Point("fixed_size", b.FixedSize())
	if err != nil {
		return err
	}
	b.SetFixedSize(fixed)
	tip, err := n.String("tooltip", "")
	if err != nil {
		return err
	}
	b.SetTooltip(tip)
	fs, err := n.Int("font_size", 0)
	if err != nil {
		return err
	}
	if fs > 0 {
		b.SetFontSize(fs)
	}
	visible, err := n.Bool("visible", b.Visible())
	if err != nil {
		return err
	}
	b.SetVisible(visible)
	enabled, err := n.Bool("enabled", b.Enabled())
	if err != nil {
		return err
	}
	b.SetEnabled(enabled)
	return nil
}

var orientations = map[string]layout.Orientation{
	"horizontal": layout.Horizontal,
	"vertical":   layout.Vertical,
}

var layoutAlignments = map[string]layout.Alignment{
	"minimum": layout.Minimum,
	"middle":  layout.Middle,
	"maximum": layout.Maximum,
	"fill":    layout.Fill,
}

// applyLayout reads the layout table:
//
//	layout: {type: box, orientation: vertical, alignment: fill, margin: 10, spacing: 6}
//	layout: {type: group, margin: 10}
//	layout: {type: grid, orientation: horizontal, resolution: 2}
func applyLayout(w widget.Widget, n *Node) error {
	m, err := n.Table("layout")
	if err != nil || m == nil {
		return err
	}
	ln := &Node{Props: m, path: n.path + ".layout", used: make(map[string]bool)}
	r := &reader{n: ln}
	kind := r.str("type", "")
	o := r.str("orientation", "horizontal")
	orient, ok := orientations[o]
	if !ok {
		r.fail("orientation", "unknown orientation %q", o)
	}
	a := r.str("alignment", "middle")
	align, ok := layoutAlignments[a]
	if !ok {
		r.fail("alignment", "unknown alignment %q", a)
	}

	switch kind {
	case "box":
		w.Node().SetLayout(layout.NewBoxLayout(orient, align, r.integer("margin", 0), r.integer("spacing", 0)))
	case "group":
		gl := layout.NewGroupLayout()
		gl.Margin = r.integer("margin", gl.Margin)
		gl.Spacing = r.integer("spacing", gl.Spacing)
		gl.GroupSpacing = r.integer("group_spacing", gl.GroupSpacing)
		gl.GroupIndent = r.integer("group_indent", gl.GroupIndent)
		w.Node().SetLayout(gl)
	case "grid":
		w.Node().SetLayout(layout.NewGridLayout(orient, r.integer("resolution", 2), r.integer("margin", 0), r.integer("spacing", 0)))
	default:
		r.fail("type", "unknown layout type %q", kind)
	}
	if r.err != nil {
		return r.err
	}
	if unused := ln.unused(); len(unused) > 0 {
		return fmt.Errorf("%s: unknown layout properties: %s", ln.path, strings.Join(unused, ", "))
	}
	return nil
}

package form

import (
	"github.com/go-drift/trellis/pkg/errors"
	"github.com/go-drift/trellis/pkg/graphics"
	"github.com/go-drift/trellis/pkg/layout"
	"github.com/go-drift/trellis/pkg/screen"
	"github.com/go-drift/trellis/pkg/widget"
	"github.com/go-drift/trellis/pkg/widgets"
	"github.com/go-drift/trellis/pkg/window"
)

// Helper builds form windows row by row.
//
// Each window uses a four-column AdvancedGridLayout: a margin column, the
// labels, a stretching spacer and the editors. Group captions span all
// four columns.
type Helper struct {
	screen   *screen.Screen
	registry *Registry
	window   *window.Window
	layout   *layout.AdvancedGridLayout
	refresh  []func()

	fixedSize      graphics.Point
	groupFont      string
	labelFont      string
	groupFontSize  int
	labelFontSize  int
	widgetFontSize int

	preGroupSpacing  int
	postGroupSpacing int
	variableSpacing  int
}

// New returns a helper adding windows to s. A nil registry selects
// DefaultRegistry.
func New(s *screen.Screen, registry *Registry) *Helper {
	if registry == nil {
		registry = DefaultRegistry
	}
	return &Helper{
		screen:           s,
		registry:         registry,
		fixedSize:        graphics.Pt(0, 20),
		groupFont:        graphics.FontSansBold,
		labelFont:        graphics.FontSans,
		groupFontSize:    20,
		labelFontSize:    16,
		widgetFontSize:   16,
		preGroupSpacing:  15,
		postGroupSpacing: 5,
		variableSpacing:  5,
	}
}

// AddWindow creates a window at pos and makes it the target of the
// following rows.
func (h *Helper) AddWindow(pos graphics.Point, title string) *window.Window {
	w := window.New(h.screen, title)
	l := layout.NewAdvancedGridLayout([]int{10, 0, 10, 0}, nil, 10)
	l.SetColStretch(2, 1)
	w.SetPosition(pos)
	w.SetLayout(l)
	h.window, h.layout = w, l
	return w
}

// Window returns the window rows are added to.
func (h *Helper) Window() *window.Window { return h.window }

// SetWindow directs the following rows to w, which must use an
// AdvancedGridLayout.
func (h *Helper) SetWindow(w *window.Window) {
	l, ok := w.Layout().(*layout.AdvancedGridLayout)
	if !ok {
		errors.Misuse("form.Helper.SetWindow", "window %q has no advanced grid layout", w.Title())
	}
	h.window, h.layout = w, l
}

func (h *Helper) requireWindow(op string) {
	if h.window == nil {
		errors.Misuse(op, "AddWindow must be called first")
	}
}

// nextRow appends a content row, preceded by spacing when the grid is not
// empty, and returns its index.
func (h *Helper) nextRow(spacing int) int {
	if h.layout.RowCount() > 0 && spacing > 0 {
		h.layout.AppendRow(spacing, 0)
	}
	h.layout.AppendRow(0, 0)
	return h.layout.RowCount() - 1
}

func (h *Helper) label(caption string) *widgets.Label {
	l := widgets.NewLabel(h.window, caption)
	l.SetFont(h.labelFont)
	l.SetFontSize(h.labelFontSize)
	return l
}

// AddGroup adds a caption spanning the form.
func (h *Helper) AddGroup(caption string) *widgets.Label {
	h.requireWindow("form.Helper.AddGroup")
	l := widgets.NewLabel(h.window, caption)
	l.SetFont(h.groupFont)
	l.SetFontSize(h.groupFontSize)
	row := h.nextRow(h.preGroupSpacing)
	h.layout.SetAnchor(l, layout.SpanAnchor(0, row, 4, 1))
	h.layout.AppendRow(h.postGroupSpacing, 0)
	return l
}

// AddVariable adds a labeled editor of the given kind. get supplies the
// value shown by Refresh; set receives every committed value and may be
// nil for a read-only row.
func (h *Helper) AddVariable(caption string, kind Kind, get func() any, set func(any), opts ...Options) (Editor, error) {
	h.requireWindow("form.Helper.AddVariable")
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	lbl := h.label(caption)
	ed, err := h.registry.create(kind, h.window, o)
	if err != nil {
		h.window.RemoveChild(lbl)
		return nil, err
	}
	if err := ed.SetValue(get()); err != nil {
		h.window.RemoveChild(lbl)
		h.window.RemoveChild(ed.Widget())
		return nil, &errors.TrellisError{Op: "form.Helper.AddVariable", Kind: errors.KindMisuse, Err: err, Widget: caption}
	}
	if set != nil {
		ed.SetOnChange(set)
	}
	ed.SetEditable(set != nil)

	n := ed.Widget().Node()
	n.SetFontSize(h.widgetFontSize)
	fs := n.FixedSize()
	if fs.X == 0 {
		fs.X = h.fixedSize.X
	}
	if fs.Y == 0 {
		fs.Y = h.fixedSize.Y
	}
	n.SetFixedSize(fs)

	h.refresh = append(h.refresh, func() {
		if v := get(); v != ed.Value() {
			if err := ed.SetValue(v); err != nil {
				errors.Report(&errors.TrellisError{
					Op:     "form.Helper.Refresh",
					Kind:   errors.KindMisuse,
					Widget: caption,
					Err:    err,
				})
			}
		}
	})
	row := h.nextRow(h.variableSpacing)
	h.layout.SetAnchor(lbl, layout.CellAnchor(1, row))
	h.layout.SetAnchor(ed.Widget(), layout.CellAnchor(3, row))
	return ed, nil
}

// AddBool binds a check box to *v.
func (h *Helper) AddBool(caption string, v *bool) (Editor, error) {
	return h.AddVariable(caption, KindBool, func() any { return *v }, func(x any) { *v = x.(bool) })
}

// AddString binds a text box to *v.
func (h *Helper) AddString(caption string, v *string) (Editor, error) {
	return h.AddVariable(caption, KindString, func() any { return *v }, func(x any) { *v = x.(string) })
}

// AddInt binds an integer box to *v.
func (h *Helper) AddInt(caption string, v *int) (Editor, error) {
	return h.AddVariable(caption, KindInt, func() any { return *v }, func(x any) { *v = x.(int) })
}

// AddFloat binds a number box to *v.
func (h *Helper) AddFloat(caption string, v *float64) (Editor, error) {
	return h.AddVariable(caption, KindFloat, func() any { return *v }, func(x any) { *v = x.(float64) })
}

// AddEnum binds a combo box listing items to the index *v.
func (h *Helper) AddEnum(caption string, v *int, items []string) (Editor, error) {
	return h.AddVariable(caption, KindEnum, func() any { return *v }, func(x any) { *v = x.(int) }, Options{Items: items})
}

// AddColor binds a color field to *v.
func (h *Helper) AddColor(caption string, v *graphics.Color) (Editor, error) {
	return h.AddVariable(caption, KindColor, func() any { return *v }, func(x any) { *v = x.(graphics.Color) })
}

// AddButton adds a button spanning the label and editor columns.
func (h *Helper) AddButton(caption string, fn func()) *widgets.Button {
	h.requireWindow("form.Helper.AddButton")
	b := widgets.NewButton(h.window, caption)
	b.SetCallback(fn)
	b.SetFixedSize(graphics.Pt(0, 25))
	row := h.nextRow(h.variableSpacing)
	h.layout.SetAnchor(b, layout.SpanAnchor(1, row, 3, 1))
	return b
}

// AddWidget places w, which must be a child of the current window, on a
// new row. An empty caption lets it span the label column.
func (h *Helper) AddWidget(caption string, w widget.Widget) {
	h.requireWindow("form.Helper.AddWidget")
	if w.Node().Parent() != widget.Widget(h.window) {
		errors.Misuse("form.Helper.AddWidget", "widget is not a child of the form window")
	}
	row := h.nextRow(0)
	if caption == "" {
		h.layout.SetAnchor(w, layout.SpanAnchor(1, row, 3, 1))
		return
	}
	lbl := h.label(caption)
	h.layout.SetAnchor(lbl, layout.CellAnchor(1, row))
	h.layout.SetAnchor(w, layout.CellAnchor(3, row))
}

// Refresh reloads every editor whose bound value changed outside the form.
func (h *Helper) Refresh() {
	for _, fn := range h.refresh {
		fn()
	}
}

// FixedSize is the size given to new editors on the axes where they have
// no fixed size of their own.
func (h *Helper) FixedSize() graphics.Point     { return h.fixedSize }
func (h *Helper) SetFixedSize(s graphics.Point) { h.fixedSize = s }

func (h *Helper) SetGroupFont(face string, size int) {
	h.groupFont, h.groupFontSize = face, size
}

func (h *Helper) SetLabelFont(face string, size int) {
	h.labelFont, h.labelFontSize = face, size
}

func (h *Helper) SetWidgetFontSize(size int) { h.widgetFontSize = size }

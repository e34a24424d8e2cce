package widgets

import (
	"github.com/go-drift/trellis/pkg/errors"
	"github.com/go-drift/trellis/pkg/graphics"
	"github.com/go-drift/trellis/pkg/layout"
	"github.com/go-drift/trellis/pkg/serialize"
	"github.com/go-drift/trellis/pkg/widget"
	"github.com/go-drift/trellis/pkg/window"
)

// ComboBox is a popup button listing mutually exclusive items. The button
// caption shows the short form of the selected item. Scrolling over the
// closed box steps through the items.
type ComboBox struct {
	PopupButton

	items      []string
	shortItems []string
	selected   int
	callback   func(index int)
}

// NewComboBox creates a combo box with the given items, the first one
// selected.
func NewComboBox(parent widget.Widget, items []string) *ComboBox {
	const op = "widgets.NewComboBox"
	if parent == nil || parent.Node().Router() == nil {
		errors.Misuse(op, "parent must be attached to a screen")
	}
	c := &ComboBox{}
	c.flags = ButtonToggle | ButtonPopup
	c.Init(c, parent)
	c.SetCursor(widget.CursorHand)
	c.popup = window.NewPopup(c.Root(), c)
	c.popup.SetVisible(false)
	gl := layout.NewGroupLayout()
	gl.Margin = 10
	c.popup.SetLayout(gl)
	c.SetItems(items, nil)
	return c
}

func (c *ComboBox) Items() []string      { return c.items }
func (c *ComboBox) ShortItems() []string { return c.shortItems }
func (c *ComboBox) SelectedIndex() int   { return c.selected }

// SetCallback sets the function called with the new index when the user
// picks an item.
func (c *ComboBox) SetCallback(fn func(index int)) { c.callback = fn }

// SetItems replaces the items. shortItems, when non-nil, must be as long
// as items and provides the captions shown on the closed box.
func (c *ComboBox) SetItems(items, shortItems []string) {
	if shortItems == nil {
		shortItems = items
	}
	if len(items) != len(shortItems) {
		errors.Misuse("widgets.ComboBox.SetItems", "%d items but %d short items", len(items), len(shortItems))
	}
	c.items = append([]string(nil), items...)
	c.shortItems = append([]string(nil), shortItems...)
	if c.selected >= len(items) {
		c.selected = 0
	}

	for c.popup.ChildCount() > 0 {
		c.popup.RemoveChildAt(c.popup.ChildCount() - 1)
	}
	for i, item := range c.items {
		b := NewButton(c.popup, item)
		b.SetFlags(ButtonRadio)
		b.SetCallback(func() { c.pick(i) })
	}
	if len(c.items) > 0 {
		c.SetSelectedIndex(c.selected)
	} else {
		c.caption = ""
	}
	c.MarkLayoutDirty()
}

// SetSelectedIndex selects an item without running the callback.
func (c *ComboBox) SetSelectedIndex(i int) {
	if i < 0 || i >= len(c.items) {
		errors.Misuse("widgets.ComboBox.SetSelectedIndex", "index %d out of range [0,%d)", i, len(c.items))
	}
	for j, w := range c.popup.Children() {
		if b, ok := w.(*Button); ok {
			b.SetPushed(j == i)
		}
	}
	c.selected = i
	c.caption = c.shortItems[i]
}

func (c *ComboBox) pick(i int) {
	c.SetSelectedIndex(i)
	c.SetPushed(false)
	fireChange(c.callback, i)
}

// ScrollEvent steps the selection while the popup is closed.
func (c *ComboBox) ScrollEvent(p graphics.Point, rel graphics.Vec) bool {
	if !c.Enabled() || c.Pushed() || len(c.items) == 0 {
		return false
	}
	switch {
	case rel.Y < 0 && c.selected < len(c.items)-1:
		c.SetSelectedIndex(c.selected + 1)
		fireChange(c.callback, c.selected)
	case rel.Y > 0 && c.selected > 0:
		c.SetSelectedIndex(c.selected - 1)
		fireChange(c.callback, c.selected)
	}
	return true
}

func (c *ComboBox) Save(r *serialize.Record) {
	c.Button.Save(r)
	r.SetInt("selected_index", c.selected)
}

func (c *ComboBox) Load(r *serialize.Record) error {
	if err := c.Button.Load(r); err != nil {
		return err
	}
	i := c.selected
	if err := r.LoadInt("selected_index", &i); err != nil {
		return err
	}
	if i >= 0 && i < len(c.items) {
		c.SetSelectedIndex(i)
	}
	c.SetPushed(c.pushed)
	return nil
}

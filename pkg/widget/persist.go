package widget

import (
	"fmt"
	"strconv"

	"github.com/go-drift/trellis/pkg/serialize"
)

// Save stores the generic widget state. Widgets with state of their own
// override Save and call it first.
func (b *Base) Save(r *serialize.Record) {
	r.SetString("id", b.id)
	r.SetPoint("position", b.pos)
	r.SetPoint("size", b.size)
	r.SetPoint("fixed_size", b.fixedSize)
	r.SetBool("visible", !b.hidden)
	r.SetBool("enabled", !b.disabled)
	r.SetBool("focused", b.focused)
	r.SetString("tooltip", b.tooltip)
	r.SetInt("font_size", b.fontSize)
	r.SetInt("cursor", int(b.cursor))
}

// Load restores the state written by Save. Absent keys keep their current
// value; a key with the wrong type is an error. Focus is not restored.
func (b *Base) Load(r *serialize.Record) error {
	visible, enabled := !b.hidden, !b.disabled
	cursor := int(b.cursor)
	for _, err := range []error{
		r.LoadString("id", &b.id),
		r.LoadPoint("position", &b.pos),
		r.LoadPoint("size", &b.size),
		r.LoadPoint("fixed_size", &b.fixedSize),
		r.LoadBool("visible", &visible),
		r.LoadBool("enabled", &enabled),
		r.LoadString("tooltip", &b.tooltip),
		r.LoadInt("font_size", &b.fontSize),
		r.LoadInt("cursor", &cursor),
	} {
		if err != nil {
			return err
		}
	}
	b.hidden, b.disabled = !visible, !enabled
	b.cursor = Cursor(cursor)
	b.MarkLayoutDirty()
	return nil
}

// SaveTree saves w and its descendants. Children are stored in nested
// records named by their index.
func SaveTree(w Widget) *serialize.Record {
	r := serialize.New()
	saveTree(w, r)
	return r
}

func saveTree(w Widget, r *serialize.Record) {
	if s, ok := w.(serialize.Saver); ok {
		s.Save(r)
	}
	children := w.Node().children
	if len(children) == 0 {
		return
	}
	kids := r.Child("children")
	for i, c := range children {
		saveTree(c, kids.Child(strconv.Itoa(i)))
	}
}

// LoadTree restores a tree saved by SaveTree onto an existing tree of the
// same shape. Records without a matching child are ignored.
func LoadTree(w Widget, r *serialize.Record) error {
	if s, ok := w.(serialize.Saver); ok {
		if err := s.Load(r); err != nil {
			return fmt.Errorf("%s: %w", describe(w), err)
		}
	}
	kids, ok := r.Lookup("children")
	if !ok {
		return nil
	}
	for i, c := range w.Node().children {
		cr, ok := kids.Lookup(strconv.Itoa(i))
		if !ok {
			continue
		}
		if err := LoadTree(c, cr); err != nil {
			return err
		}
	}
	return nil
}

// describe names w for error messages.
func describe(w Widget) string {
	if id := w.Node().id; id != "" {
		return fmt.Sprintf("%T %q", w, id)
	}
	return fmt.Sprintf("%T", w)
}

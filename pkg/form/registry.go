// Package form builds simple property editors.
//
// A Helper lays out label/editor rows in a window. Each row edits one value
// through an Editor created by a factory looked up by value Kind. The
// factories live in a Registry, so applications can replace the built-in
// editors or add kinds of their own at run time.
package form

import (
	"fmt"
	"slices"
	"sync"

	"github.com/go-drift/trellis/pkg/errors"
	"github.com/go-drift/trellis/pkg/widget"
)

// Kind names the type of value an editor handles.
type Kind string

const (
	KindBool   Kind = "bool"
	KindString Kind = "string"
	KindInt    Kind = "int"
	KindFloat  Kind = "float"
	KindEnum   Kind = "enum"
	KindColor  Kind = "color"
)

// Editor is a widget bound to one value.
type Editor interface {
	// Widget returns the widget placed in the form.
	Widget() widget.Widget
	// Value returns the edited value in its natural Go type.
	Value() any
	// SetValue shows v without running the change function. It fails when
	// v has the wrong type.
	SetValue(v any) error
	SetEditable(editable bool)
	// SetOnChange sets the function called with each value the user
	// commits.
	SetOnChange(fn func(v any))
}

// Options configures a new editor.
type Options struct {
	// Items lists the choices of an enum editor.
	Items []string
}

// Factory creates an editor under parent.
type Factory func(parent widget.Widget, opts Options) Editor

// Registry maps kinds to editor factories. It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[Kind]Factory
}

// NewRegistry returns a registry holding the built-in editors.
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[Kind]Factory)}
	r.Register(KindBool, newBoolEditor)
	r.Register(KindString, newStringEditor)
	r.Register(KindInt, newIntEditor)
	r.Register(KindFloat, newFloatEditor)
	r.Register(KindEnum, newEnumEditor)
	r.Register(KindColor, newColorEditor)
	return r
}

// DefaultRegistry is used by helpers created without one.
var DefaultRegistry = NewRegistry()

// Register adds or replaces the factory for kind.
func (r *Registry) Register(kind Kind, f Factory) {
	if f == nil {
		errors.Misuse("form.Registry.Register", "nil factory for kind %q", kind)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[kind] = f
}

// Unregister removes the factory for kind.
func (r *Registry) Unregister(kind Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.factories, kind)
}

// Lookup returns the factory for kind.
func (r *Registry) Lookup(kind Kind) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[kind]
	return f, ok
}

// Kinds returns the registered kinds, sorted.
func (r *Registry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]Kind, 0, len(r.factories))
	for k := range r.factories {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

// create runs the factory for kind.
func (r *Registry) create(kind Kind, parent widget.Widget, opts Options) (Editor, error) {
	f, ok := r.Lookup(kind)
	if !ok {
		return nil, &errors.TrellisError{
			Op:   "form.Registry.create",
			Kind: errors.KindMissing,
			Err:  fmt.Errorf("no editor for kind %q: %w", kind, errors.ErrNotFound),
		}
	}
	return f(parent, opts), nil
}

func typeMismatch(kind Kind, v any) error {
	return fmt.Errorf("%s editor: unexpected value %v of type %T", kind, v, v)
}

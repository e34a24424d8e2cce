package scene

import (
	"slices"
	"sync"

	"github.com/go-drift/trellis/pkg/errors"
	"github.com/go-drift/trellis/pkg/widget"
)

// Factory creates the widget described by n under parent. It reads its
// properties through the Node accessors; common properties such as id,
// position and layout are applied by Build afterwards.
type Factory func(parent widget.Widget, n *Node) (widget.Widget, error)

// Registry maps widget type names to factories. It is safe for concurrent
// use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns a registry holding the built-in widget types.
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]Factory)}
	for name, f := range builtins {
		r.factories[name] = f
	}
	return r
}

// DefaultRegistry is used when Build is given a nil registry.
var DefaultRegistry = NewRegistry()

// Register adds or replaces the factory for a type name.
func (r *Registry) Register(name string, f Factory) {
	if name == "" || f == nil {
		errors.Misuse("scene.Registry.Register", "name and factory are required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = f
}

func (r *Registry) Lookup(name string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[name]
	return f, ok
}

// Types returns the registered type names, sorted.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for n := range r.factories {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

package scene

import (
	"fmt"
	"math"

	"github.com/go-drift/trellis/pkg/graphics"
)

// The accessors below return def when the property is absent and an error
// when it has the wrong type. Reading a property marks it as used; Build
// rejects properties nothing read.

func (n *Node) lookup(key string) (any, bool) {
	v, ok := n.Props[key]
	if ok {
		n.used[key] = true
	}
	return v, ok
}

func (n *Node) propError(key string, err error) error {
	return fmt.Errorf("%s.%s: %w", n.path, key, err)
}

// Has reports whether key is set.
func (n *Node) Has(key string) bool {
	_, ok := n.Props[key]
	return ok
}

func (n *Node) String(key, def string) (string, error) {
	v, ok := n.lookup(key)
	if !ok {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return def, n.propError(key, fmt.Errorf("expected a string, got %T", v))
	}
	return s, nil
}

func (n *Node) Bool(key string, def bool) (bool, error) {
	v, ok := n.lookup(key)
	if !ok {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return def, n.propError(key, fmt.Errorf("expected a boolean, got %T", v))
	}
	return b, nil
}

func (n *Node) Int(key string, def int) (int, error) {
	v, ok := n.lookup(key)
	if !ok {
		return def, nil
	}
	i, err := toInt(v)
	if err != nil {
		return def, n.propError(key, err)
	}
	return i, nil
}

func (n *Node) Float(key string, def float64) (float64, error) {
	v, ok := n.lookup(key)
	if !ok {
		return def, nil
	}
	f, err := toFloat(v)
	if err != nil {
		return def, n.propError(key, err)
	}
	return f, nil
}

// Strings reads a list of strings.
func (n *Node) Strings(key string) ([]string, error) {
	v, ok := n.lookup(key)
	if !ok {
		return nil, nil
	}
	items, ok := asList(v)
	if !ok {
		return nil, n.propError(key, fmt.Errorf("expected a list, got %T", v))
	}
	out := make([]string, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, n.propError(key, fmt.Errorf("item %d: expected a string, got %T", i, item))
		}
		out[i] = s
	}
	return out, nil
}

// Point reads a two-element list [x, y].
func (n *Node) Point(key string, def graphics.Point) (graphics.Point, error) {
	v, ok := n.lookup(key)
	if !ok {
		return def, nil
	}
	items, ok := asList(v)
	if !ok || len(items) != 2 {
		return def, n.propError(key, fmt.Errorf("expected [x, y], got %v", v))
	}
	x, err := toInt(items[0])
	if err != nil {
		return def, n.propError(key, err)
	}
	y, err := toInt(items[1])
	if err != nil {
		return def, n.propError(key, err)
	}
	return graphics.Pt(x, y), nil
}

// Color reads a color name or hex string.
func (n *Node) Color(key string, def graphics.Color) (graphics.Color, error) {
	s, err := n.String(key, "")
	if err != nil || s == "" {
		return def, err
	}
	c, err := graphics.ParseColor(s)
	if err != nil {
		return def, n.propError(key, err)
	}
	return c, nil
}

// Table reads a nested table.
func (n *Node) Table(key string) (map[string]any, error) {
	v, ok := n.lookup(key)
	if !ok {
		return nil, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, n.propError(key, fmt.Errorf("expected a table, got %T", v))
	}
	return m, nil
}

func toInt(v any) (int, error) {
	switch x := v.(type) {
	case nil:
		return 0, nil
	case int:
		return x, nil
	case int64:
		return int(x), nil
	case uint64:
		return int(x), nil
	case float64:
		if x != math.Trunc(x) {
			return 0, fmt.Errorf("expected an integer, got %v", x)
		}
		return int(x), nil
	}
	return 0, fmt.Errorf("expected an integer, got %T", v)
}

func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	}
	return 0, fmt.Errorf("expected a number, got %T", v)
}

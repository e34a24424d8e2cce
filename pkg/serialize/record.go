// Package serialize stores widget state in generic key-value records.
//
// A Record maps string keys to scalars (bool, int, float, string), points,
// colors and nested records. Records round-trip through YAML; the widget
// tree imposes no file format of its own.
package serialize

import (
	"fmt"
	"maps"
	"slices"

	"github.com/go-drift/trellis/pkg/errors"
	"github.com/go-drift/trellis/pkg/graphics"
)

// Saver is implemented by widgets that persist their state.
type Saver interface {
	Save(r *Record)
	Load(r *Record) error
}

// Record is a set of named values. The zero value is not usable; call New.
type Record struct {
	values map[string]any
}

// New returns an empty record.
func New() *Record {
	return &Record{values: make(map[string]any)}
}

// Keys returns the keys in sorted order.
func (r *Record) Keys() []string {
	return slices.Sorted(maps.Keys(r.values))
}

// Has reports whether key is present.
func (r *Record) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// Len returns the number of keys.
func (r *Record) Len() int {
	return len(r.values)
}

// Delete removes key.
func (r *Record) Delete(key string) {
	delete(r.values, key)
}

func (r *Record) SetBool(key string, v bool) { r.values[key] = v }
func (r *Record) SetInt(key string, v int) { r.values[key] = v }
func (r *Record) SetFloat(key string, v float64) { r.values[key] = v }
func (r *Record) SetString(key string, v string) { r.values[key] = v }

// SetPoint stores p as a two-element list.
func (r *Record) SetPoint(key string, p graphics.Point) {
	r.values[key] = []int{p.X, p.Y}
}

// SetColor stores c in its "#rrggbbaa" form.
func (r *Record) SetColor(key string, c graphics.Color) {
	r.values[key] = c.String()
}

// Child returns the nested record stored under key, creating it if absent.
// It replaces any non-record value stored under key.
func (r *Record) Child(key string) *Record {
	if c, ok := r.values[key].(*Record); ok {
		return c
	}
	c := New()
	r.values[key] = c
	return c
}

// Lookup returns the nested record stored under key.
func (r *Record) Lookup(key string) (*Record, bool) {
	c, ok := r.values[key].(*Record)
	return c, ok
}

func (r *Record) get(key string) (any, error) {
	v, ok := r.values[key]
	if !ok {
		return nil, fmt.Errorf("key %q: %w", key, errors.ErrNotFound)
	}
	return v, nil
}

func typeError(key, want string, v any) error {
	return fmt.Errorf("key %q: want %s, have %T", key, want, v)
}

// Bool returns the boolean stored under key.
func (r *Record) Bool(key string) (bool, error) {
	v, err := r.get(key)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, typeError(key, "bool", v)
	}
	return b, nil
}

// Int returns the integer stored under key. Floats with no fractional
// part are accepted.
func (r *Record) Int(key string) (int, error) {
	v, err := r.get(key)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case uint64:
		return int(n), nil
	case float64:
		if n == float64(int(n)) {
			return int(n), nil
		}
	}
	return 0, typeError(key, "int", v)
}

// Float returns the number stored under key.
func (r *Record) Float(key string) (float64, error) {
	v, err := r.get(key)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	}
	return 0, typeError(key, "float", v)
}

// String returns the string stored under key.
func (r *Record) String(key string) (string, error) {
	v, err := r.get(key)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", typeError(key, "string", v)
	}
	return s, nil
}

// Point returns the point stored under key.
func (r *Record) Point(key string) (graphics.Point, error) {
	v, err := r.get(key)
	if err != nil {
		return graphics.Point{}, err
	}
	switch xs := v.(type) {
	case []int:
		if len(xs) == 2 {
			return graphics.Pt(xs[0], xs[1]), nil
		}
	case []any:
		if len(xs) == 2 {
			x, okx := xs[0].(int)
			y, oky := xs[1].(int)
			if okx && oky {
				return graphics.Pt(x, y), nil
			}
		}
	}
	return graphics.Point{}, typeError(key, "point [x, y]", v)
}

// Color returns the color stored under key.
func (r *Record) Color(key string) (graphics.Color, error) {
	s, err := r.String(key)
	if err != nil {
		return 0, err
	}
	c, err := graphics.ParseColor(s)
	if err != nil {
		return 0, fmt.Errorf("key %q: %w", key, err)
	}
	return c, nil
}

// Optional helpers: they leave *dst untouched when key is absent and
// report type mismatches.

func (r *Record) LoadBool(key string, dst *bool) error {
	if !r.Has(key) {
		return nil
	}
	v, err := r.Bool(key)
	if err == nil {
		*dst = v
	}
	return err
}

func (r *Record) LoadInt(key string, dst *int) error {
	if !r.Has(key) {
		return nil
	}
	v, err := r.Int(key)
	if err == nil {
		*dst = v
	}
	return err
}

func (r *Record) LoadFloat(key string, dst *float64) error {
	if !r.Has(key) {
		return nil
	}
	v, err := r.Float(key)
	if err == nil {
		*dst = v
	}
	return err
}

func (r *Record) LoadString(key string, dst *string) error {
	if !r.Has(key) {
		return nil
	}
	v, err := r.String(key)
	if err == nil {
		*dst = v
	}
	return err
}

func (r *Record) LoadPoint(key string, dst *graphics.Point) error {
	if !r.Has(key) {
		return nil
	}
	v, err := r.Point(key)
	if err == nil {
		*dst = v
	}
	return err
}

func (r *Record) LoadColor(key string, dst *graphics.Color) error {
	if !r.Has(key) {
		return nil
	}
	v, err := r.Color(key)
	if err == nil {
		*dst = v
	}
	return err
}

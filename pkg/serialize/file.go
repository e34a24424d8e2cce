package serialize

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/trellis/pkg/errors"
)

// MarshalYAML encodes the record as a mapping. Nested records become
// nested mappings.
func (r *Record) MarshalYAML() (any, error) {
	out := make(map[string]any, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out, nil
}

// UnmarshalYAML decodes a mapping. Nested mappings become nested records.
func (r *Record) UnmarshalYAML(node *yaml.Node) error {
	var raw map[string]any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	r.values = make(map[string]any, len(raw))
	for k, v := range raw {
		r.values[k] = fromYAML(v)
	}
	return nil
}

func fromYAML(v any) any {
	m, ok := v.(map[string]any)
	if !ok {
		return v
	}
	c := New()
	for k, x := range m {
		c.values[k] = fromYAML(x)
	}
	return c
}

// Marshal encodes r as YAML.
func Marshal(r *Record) ([]byte, error) {
	return yaml.Marshal(r)
}

// Unmarshal decodes a record from YAML.
func Unmarshal(data []byte) (*Record, error) {
	r := New()
	if err := yaml.Unmarshal(data, r); err != nil {
		return nil, err
	}
	return r, nil
}

// SaveFile writes r to path as YAML, creating parent directories.
func SaveFile(path string, r *Record) error {
	const op = "serialize.SaveFile"
	data, err := Marshal(r)
	if err != nil {
		return &errors.TrellisError{Op: op, Kind: errors.KindIO, Err: err}
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &errors.TrellisError{Op: op, Kind: errors.KindIO, Err: err}
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &errors.TrellisError{Op: op, Kind: errors.KindIO, Err: err}
	}
	return nil
}

// LoadFile reads a record written by SaveFile.
func LoadFile(path string) (*Record, error) {
	const op = "serialize.LoadFile"
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &errors.TrellisError{Op: op, Kind: errors.KindIO, Err: err}
	}
	r, err := Unmarshal(data)
	if err != nil {
		return nil, &errors.TrellisError{Op: op, Kind: errors.KindIO, Err: fmt.Errorf("%s: %w", path, err)}
	}
	return r, nil
}

// Package scene builds widget trees from declarative YAML or TOML files.
//
// A scene lists top-level widgets. Every widget is a table with a type, its
// properties and an optional list of children:
//
//	screen:
//	  width: 640
//	  height: 480
//	widgets:
//	  - type: window
//	    title: Tools
//	    position: [15, 15]
//	    layout: {type: group}
//	    children:
//	      - type: label
//	        caption: Push buttons
//	      - type: button
//	        caption: Plain button
//
// Widget types are resolved through a Registry, so applications can add
// their own widgets next to the built-in ones.
package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/trellis/pkg/errors"
)

// Scene is a parsed scene file.
type Scene struct {
	// Width and Height are the requested screen size, zero when unset.
	Width, Height int
	Widgets       []*Node
}

// Node is one widget of a scene.
type Node struct {
	Type     string
	Props    map[string]any
	Children []*Node

	path string
	used map[string]bool
}

// Path locates the node in the file, for example "widgets[0].children[2]".
func (n *Node) Path() string { return n.path }

// Parse decodes a YAML scene.
func Parse(data []byte) (*Scene, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	return fromMap(raw)
}

// ParseTOML decodes a TOML scene. Widgets are written as arrays of tables,
// [[widgets]] and [[widgets.children]].
func ParseTOML(data []byte) (*Scene, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	return fromMap(raw)
}

// Load reads a scene file. Files ending in .toml are decoded as TOML, all
// others as YAML.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &errors.TrellisError{Op: "scene.Load", Kind: errors.KindIO, Err: err}
	}
	parse := Parse
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		parse = ParseTOML
	}
	s, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func fromMap(raw map[string]any) (*Scene, error) {
	s := &Scene{}
	for k, v := range raw {
		switch k {
		case "screen":
			m, ok := v.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("screen: expected a table, got %T", v)
			}
			var err error
			if s.Width, err = toInt(m["width"]); err != nil {
				return nil, fmt.Errorf("screen.width: %w", err)
			}
			if s.Height, err = toInt(m["height"]); err != nil {
				return nil, fmt.Errorf("screen.height: %w", err)
			}
		case "widgets":
			nodes, err := nodeList(v, "widgets")
			if err != nil {
				return nil, err
			}
			s.Widgets = nodes
		default:
			return nil, fmt.Errorf("unknown scene key %q", k)
		}
	}
	return s, nil
}

func nodeList(v any, path string) ([]*Node, error) {
	items, ok := asList(v)
	if !ok {
		return nil, fmt.Errorf("%s: expected a list, got %T", path, v)
	}
	nodes := make([]*Node, 0, len(items))
	for i, item := range items {
		p := fmt.Sprintf("%s[%d]", path, i)
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s: expected a table, got %T", p, item)
		}
		n, err := nodeFrom(m, p)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func nodeFrom(m map[string]any, path string) (*Node, error) {
	n := &Node{Props: make(map[string]any, len(m)), path: path, used: make(map[string]bool)}
	for k, v := range m {
		switch k {
		case "type":
			s, ok := v.(string)
			if !ok || s == "" {
				return nil, fmt.Errorf("%s.type: expected a widget type name", path)
			}
			n.Type = s
		case "children":
			children, err := nodeList(v, path+".children")
			if err != nil {
				return nil, err
			}
			n.Children = children
		default:
			n.Props[k] = v
		}
	}
	if n.Type == "" {
		return nil, fmt.Errorf("%s: missing type", path)
	}
	return n, nil
}

// unused returns the properties no builder read, sorted.
func (n *Node) unused() []string {
	var keys []string
	for k := range n.Props {
		if !n.used[k] {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}

// asList accepts both []any and the typed slices some decoders produce.
func asList(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		return l, true
	case []map[string]any:
		out := make([]any, len(l))
		for i, m := range l {
			out[i] = m
		}
		return out, true
	}
	return nil, false
}

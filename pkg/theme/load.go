package theme

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Parse decodes YAML theme overrides on top of DefaultTheme. Keys that are
// absent keep their default values; colors accept "#rrggbb[aa]" or SVG
// color names.
func Parse(data []byte) (*ThemeData, error) {
	t := DefaultTheme()
	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("failed to parse theme: %w", err)
	}
	if t.StandardFontSize <= 0 {
		return nil, fmt.Errorf("invalid theme: standard_font_size must be positive, got %d", t.StandardFontSize)
	}
	if t.WindowHeaderHeight < 0 {
		return nil, fmt.Errorf("invalid theme: window_header_height must not be negative, got %d", t.WindowHeaderHeight)
	}
	return t, nil
}

// Load reads a YAML theme file.
func Load(path string) (*ThemeData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Marshal encodes the theme as YAML.
func (t *ThemeData) Marshal() ([]byte, error) {
	return yaml.Marshal(t)
}

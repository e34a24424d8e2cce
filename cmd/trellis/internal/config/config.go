package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/trellis/pkg/screen"
	"github.com/go-drift/trellis/pkg/theme"
)

// FileName is the optional project configuration file.
const FileName = "trellis.yaml"

// Default screen size used when trellis.yaml does not set one.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Config represents the optional trellis.yaml configuration.
type Config struct {
	Screen       ScreenConfig  `yaml:"screen"`
	Theme        string        `yaml:"theme,omitempty"`
	TooltipDelay time.Duration `yaml:"tooltip_delay,omitempty"`
}

// ScreenConfig contains the headless screen settings.
type ScreenConfig struct {
	Width   int    `yaml:"width,omitempty"`
	Height  int    `yaml:"height,omitempty"`
	Caption string `yaml:"caption,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root         string
	ModulePath   string
	Width        int
	Height       int
	Caption      string
	ThemePath    string
	Theme        *theme.ThemeData
	TooltipDelay time.Duration
}

// LoadOptional reads trellis.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	return &cfg, nil
}

// Resolve loads trellis.yaml (if present) and resolves defaults. The
// theme file, if any, is read relative to dir.
func Resolve(dir string) (*Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	modulePath, err := modulePath(dir)
	if err != nil {
		return nil, err
	}

	res := &Resolved{
		Root:         dir,
		ModulePath:   modulePath,
		Width:        cfg.Screen.Width,
		Height:       cfg.Screen.Height,
		Caption:      strings.TrimSpace(cfg.Screen.Caption),
		TooltipDelay: cfg.TooltipDelay,
	}
	if res.Width == 0 {
		res.Width = DefaultWidth
	}
	if res.Height == 0 {
		res.Height = DefaultHeight
	}
	if res.Width < 0 || res.Height < 0 {
		return nil, fmt.Errorf("screen size must not be negative (got %dx%d)", res.Width, res.Height)
	}
	if res.Caption == "" {
		res.Caption = defaultCaption(modulePath, dir)
	}
	if res.TooltipDelay == 0 {
		res.TooltipDelay = screen.TooltipDelay
	}
	if res.TooltipDelay < 0 {
		return nil, fmt.Errorf("tooltip_delay must not be negative (got %s)", res.TooltipDelay)
	}

	res.Theme = theme.DefaultTheme()
	if p := strings.TrimSpace(cfg.Theme); p != "" {
		if !filepath.IsAbs(p) {
			p = filepath.Join(dir, p)
		}
		th, err := theme.Load(p)
		if err != nil {
			return nil, err
		}
		res.ThemePath = p
		res.Theme = th
	}

	return res, nil
}

// FindProjectRoot walks up from the current directory to the first
// directory holding trellis.yaml or go.mod. Outside any project the
// current directory is used.
func FindProjectRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for dir := wd; ; {
		for _, name := range []string{FileName, "go.mod"} {
			if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
				return dir, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return wd, nil
		}
		dir = parent
	}
}

// modulePath returns the module path declared in dir/go.mod, or "" when
// there is no go.mod.
func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

// defaultCaption names the screen after the last element of the module
// path with any major version suffix removed, falling back to the
// directory name.
func defaultCaption(modulePath, dir string) string {
	base := filepath.Base(dir)
	if modName, _, ok := module.SplitPathVersion(modulePath); ok && modName != "" {
		parts := strings.Split(modName, "/")
		base = parts[len(parts)-1]
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "trellis"
	}
	return base
}

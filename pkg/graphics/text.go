package graphics

import (
	stderrors "errors"
	"fmt"
	"sync"

	"github.com/go-drift/trellis/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	// defaultFontSize is used when no font size is specified.
	defaultFontSize = 16

	// FontSans is the regular face registered by default.
	FontSans = "sans"
	// FontSansBold is the bold face registered by default.
	FontSansBold = "sans-bold"
)

// TextMetrics describes a measured run of text.
type TextMetrics struct {
	Advance float64
	Ascent  float64
	Descent float64
}

// Height returns the line height implied by the metrics.
func (m TextMetrics) Height() float64 {
	return m.Ascent + m.Descent
}

type faceKey struct {
	name string
	size float64
}

// FontMeasurer measures text using OpenType fonts. Faces are created
// lazily per (name, size) and cached.
type FontMeasurer struct {
	mu          sync.Mutex
	fonts       map[string]*opentype.Font
	faces       map[faceKey]font.Face
	defaultName string
}

var (
	defaultMeasurer     *FontMeasurer
	defaultMeasurerErr  error
	defaultMeasurerOnce sync.Once
)

// NewFontMeasurer creates a measurer with the Go fonts registered as
// FontSans and FontSansBold.
func NewFontMeasurer() (*FontMeasurer, error) {
	m := &FontMeasurer{
		fonts:       make(map[string]*opentype.Font),
		faces:       make(map[faceKey]font.Face),
		defaultName: FontSans,
	}
	if err := m.RegisterFont(FontSans, goregular.TTF); err != nil {
		return nil, err
	}
	if err := m.RegisterFont(FontSansBold, gobold.TTF); err != nil {
		return nil, err
	}
	return m, nil
}

// DefaultFontMeasurerErr returns a shared measurer with the bundled fonts.
func DefaultFontMeasurerErr() (*FontMeasurer, error) {
	defaultMeasurerOnce.Do(func() {
		m, err := NewFontMeasurer()
		if err != nil {
			defaultMeasurerErr = err
			errors.Report(&errors.TrellisError{
				Op:   "graphics.DefaultFontMeasurer",
				Kind: errors.KindIO,
				Err:  err,
			})
			return
		}
		defaultMeasurer = m
	})
	return defaultMeasurer, defaultMeasurerErr
}

// DefaultFontMeasurer returns the shared measurer, or nil if the bundled
// fonts failed to parse.
func DefaultFontMeasurer() *FontMeasurer {
	m, _ := DefaultFontMeasurerErr()
	return m
}

// RegisterFont registers a font family from TrueType/OpenType data.
func (m *FontMeasurer) RegisterFont(name string, data []byte) error {
	if name == "" {
		return stderrors.New("font name required")
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("parse font %q: %w", name, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fonts[name] = f
	for key := range m.faces {
		if key.name == name {
			delete(m.faces, key)
		}
	}
	return nil
}

// face returns a cached face. Unknown names fall back to the default face.
func (m *FontMeasurer) face(name string, size float64) (font.Face, error) {
	if size <= 0 {
		size = defaultFontSize
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.fonts[name]
	if !ok {
		name = m.defaultName
		f, ok = m.fonts[name]
		if !ok {
			return nil, fmt.Errorf("no font registered for %q", name)
		}
	}
	key := faceKey{name: name, size: size}
	if face, ok := m.faces[key]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("create face %q@%v: %w", name, size, err)
	}
	m.faces[key] = face
	return face, nil
}

// Measure returns the advance and vertical metrics of s.
func (m *FontMeasurer) Measure(name string, size float64, s string) (TextMetrics, error) {
	face, err := m.face(name, size)
	if err != nil {
		return TextMetrics{}, err
	}
	metrics := face.Metrics()
	return TextMetrics{
		Advance: fixedToFloat(font.MeasureString(face, s)),
		Ascent:  fixedToFloat(metrics.Ascent),
		Descent: fixedToFloat(metrics.Descent),
	}, nil
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

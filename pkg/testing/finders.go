package testing

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-drift/trellis/pkg/widget"
)

// Finder locates widgets in the tree.
type Finder interface {
	// Evaluate returns all matching widgets under root, depth-first
	// pre-order, root included.
	Evaluate(root widget.Widget) []widget.Widget
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	widgets []widget.Widget
	finder  Finder
}

func (r FinderResult) describe() string {
	if r.finder == nil {
		return "unknown"
	}
	return r.finder.Description()
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() widget.Widget {
	if len(r.widgets) == 0 {
		panic(fmt.Sprintf("Finder found no widgets: %s", r.describe()))
	}
	return r.widgets[0]
}

// FirstOrNil returns the first match, or nil if none.
func (r FinderResult) FirstOrNil() widget.Widget {
	if len(r.widgets) == 0 {
		return nil
	}
	return r.widgets[0]
}

// At returns the match at index. Panics if out of range.
func (r FinderResult) At(index int) widget.Widget {
	if index < 0 || index >= len(r.widgets) {
		panic(fmt.Sprintf("Finder index %d out of range (found %d): %s", index, len(r.widgets), r.describe()))
	}
	return r.widgets[index]
}

func (r FinderResult) All() []widget.Widget { return r.widgets }
func (r FinderResult) Count() int            { return len(r.widgets) }
func (r FinderResult) Exists() bool          { return len(r.widgets) > 0 }

// --- Concrete finders ---

type predicateFinder struct {
	fn   func(widget.Widget) bool
	desc string
}

func (f *predicateFinder) Evaluate(root widget.Widget) []widget.Widget {
	return collectMatches(root, f.fn)
}

func (f *predicateFinder) Description() string { return f.desc }

// ByPredicate returns a finder that matches widgets satisfying fn.
func ByPredicate(fn func(widget.Widget) bool) Finder {
	return &predicateFinder{fn: fn, desc: "ByPredicate(...)"}
}

// ByType returns a finder that matches widgets of concrete type T, such as
// *widgets.Button.
func ByType[T widget.Widget]() Finder {
	t := reflect.TypeFor[T]()
	return &predicateFinder{
		fn:   func(w widget.Widget) bool { return reflect.TypeOf(w) == t },
		desc: fmt.Sprintf("ByType(%s)", t),
	}
}

// ByID returns a finder that matches widgets whose ID is id.
func ByID(id string) Finder {
	return &predicateFinder{
		fn:   func(w widget.Widget) bool { return w.Node().ID() == id },
		desc: fmt.Sprintf("ByID(%q)", id),
	}
}

// captioned is implemented by labels, buttons and check boxes.
type captioned interface {
	Caption() string
}

// titled is implemented by windows.
type titled interface {
	Title() string
}

func textOf(w widget.Widget) (string, bool) {
	switch v := w.(type) {
	case captioned:
		return v.Caption(), true
	case titled:
		return v.Title(), true
	case interface{ Text() string }:
		return v.Text(), true
	}
	return "", false
}

// ByCaption returns a finder that matches widgets whose caption, title or
// shown text equals text exactly.
func ByCaption(text string) Finder {
	return &predicateFinder{
		fn: func(w widget.Widget) bool {
			s, ok := textOf(w)
			return ok && s == text
		},
		desc: fmt.Sprintf("ByCaption(%q)", text),
	}
}

// ByCaptionContaining matches widgets whose caption, title or shown text
// contains substring.
func ByCaptionContaining(substring string) Finder {
	return &predicateFinder{
		fn: func(w widget.Widget) bool {
			s, ok := textOf(w)
			return ok && strings.Contains(s, substring)
		},
		desc: fmt.Sprintf("ByCaptionContaining(%q)", substring),
	}
}

// Visible narrows a finder to widgets that are visible along with all
// their ancestors.
func Visible(f Finder) Finder {
	return &visibleFinder{f}
}

type visibleFinder struct {
	of Finder
}

func (f *visibleFinder) Evaluate(root widget.Widget) []widget.Widget {
	var results []widget.Widget
	for _, w := range f.of.Evaluate(root) {
		if w.Node().VisibleRecursive() {
			results = append(results, w)
		}
	}
	return results
}

func (f *visibleFinder) Description() string {
	return fmt.Sprintf("Visible(%s)", f.of.Description())
}

type descendantFinder struct {
	of       Finder
	matching Finder
}

func (f *descendantFinder) Evaluate(root widget.Widget) []widget.Widget {
	var results []widget.Widget
	seen := make(map[widget.Widget]bool)
	for _, ancestor := range f.of.Evaluate(root) {
		for _, child := range ancestor.Node().Children() {
			for _, match := range f.matching.Evaluate(child) {
				if !seen[match] {
					seen[match] = true
					results = append(results, match)
				}
			}
		}
	}
	return results
}

func (f *descendantFinder) Description() string {
	return fmt.Sprintf("Descendant(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Descendant returns a finder that matches widgets satisfying matching
// that are strict descendants of widgets matching of.
func Descendant(of, matching Finder) Finder {
	return &descendantFinder{of: of, matching: matching}
}

type ancestorFinder struct {
	of       Finder
	matching Finder
}

func (f *ancestorFinder) Evaluate(root widget.Widget) []widget.Widget {
	descendants := f.of.Evaluate(root)
	var results []widget.Widget
	for _, candidate := range f.matching.Evaluate(root) {
		for _, d := range descendants {
			if d != candidate && candidate.Node().IsAncestorOf(d) {
				results = append(results, candidate)
				break
			}
		}
	}
	return results
}

func (f *ancestorFinder) Description() string {
	return fmt.Sprintf("Ancestor(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Ancestor returns a finder that matches widgets satisfying matching that
// are strict ancestors of widgets matching of.
func Ancestor(of, matching Finder) Finder {
	return &ancestorFinder{of: of, matching: matching}
}

// collectMatches walks the tree depth-first pre-order, collecting widgets
// that satisfy the predicate.
func collectMatches(root widget.Widget, predicate func(widget.Widget) bool) []widget.Widget {
	var results []widget.Widget
	widget.Walk(root, func(w widget.Widget, _ int) bool {
		if predicate(w) {
			results = append(results, w)
		}
		return true
	})
	return results
}

// Package widget defines the retained widget tree.
//
// Every widget embeds a Base, reachable through Node, which stores geometry,
// flags and the ordered child list, and implements the default recursive
// event dispatch. Concrete widgets override the Widget methods they care
// about and call back into the embedded Base to keep the default behavior.
//
// A parent exclusively owns its children. Children keep a back-reference to
// their parent for traversal only. Removing a child releases its whole
// subtree: the released widgets are detached, flagged as disposed and
// forgotten by the root router.
//
// # Coordinates
//
// Positions are relative to the parent. Pointer events delivered to a
// widget carry a point in the coordinate space of that widget's parent,
// the same space its Position is expressed in; each level subtracts its own
// position before passing the point to its children.
package widget

import "github.com/go-drift/trellis/pkg/graphics"

// Widget is a node in the retained UI tree.
//
// Implementations embed Base and register themselves with Init. Event
// handlers return true when they consumed the event, which stops further
// propagation.
type Widget interface {
	// Node returns the embedded tree node.
	Node() *Base

	// PreferredSize computes the size the widget would like to have.
	PreferredSize(ctx graphics.Canvas) graphics.Point
	// PerformLayout positions and sizes the children using the current size.
	PerformLayout(ctx graphics.Canvas)
	// Draw paints the widget. The canvas origin is the parent's origin.
	Draw(ctx graphics.Canvas)

	MouseButtonEvent(p graphics.Point, button MouseButton, down bool, mods ModifierKey) bool
	MouseMotionEvent(p, rel graphics.Point, buttons int, mods ModifierKey) bool
	MouseDragEvent(p, rel graphics.Point, buttons int, mods ModifierKey) bool
	MouseEnterEvent(p graphics.Point, enter bool) bool
	ScrollEvent(p graphics.Point, rel graphics.Vec) bool
	FocusEvent(focused bool) bool
	KeyboardEvent(key Key, scancode int, action Action, mods ModifierKey) bool
	KeyboardCharacterEvent(r rune) bool
}

// Layout computes a widget's preferred size from its children and assigns
// positions and sizes to them. Implementations hold only parameters.
type Layout interface {
	PreferredSize(ctx graphics.Canvas, w Widget) graphics.Point
	PerformLayout(ctx graphics.Canvas, w Widget)
}

// Router is implemented by the root of a tree (the screen). Widgets reach
// it through Root to report focus and hover changes.
type Router interface {
	Widget
	// UpdateFocus makes w the focused leaf. A nil w clears focus.
	UpdateFocus(w Widget)
	// UpdateMouseFocus records a hover change reported by w.
	UpdateMouseFocus(w Widget)
	// ForgetSubtree drops every focus, drag and hover reference into the
	// subtree rooted at w. It is called before w is released.
	ForgetSubtree(w Widget)
	// Defer schedules fn to run after the current event dispatch.
	Defer(fn func())
}

// WindowRole is implemented by floating top-level containers.
type WindowRole interface {
	Widget
	Modal() bool
}

// Anchored is implemented by windows whose position derives from another
// window, such as popups. The router keeps them above that window.
type Anchored interface {
	WindowRole
	ParentWindow() WindowRole
}

// Refresher is implemented by widgets that recompute their placement at
// draw time.
type Refresher interface {
	RefreshRelativePlacement()
}

// HeaderProvider is implemented by containers that reserve space at the top
// for a header. Layouts add the height to the content they place.
type HeaderProvider interface {
	HeaderHeight() int
}

// Separator is implemented by label-like widgets that start a group in a
// group layout.
type Separator interface {
	SeparatorCaption() string
}

// ChildGuard is implemented by containers that restrict their children.
// CheckChild panics with a misuse error to reject w.
type ChildGuard interface {
	CheckChild(index int, w Widget)
}

// Releaser is implemented by widgets that hold resources outside their
// subtree. Released is called once when the widget's subtree is removed.
type Releaser interface {
	Released()
}

package widget

// MouseButton identifies a pointer button.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

// Mask returns the bit for b in a pressed-buttons mask.
func (b MouseButton) Mask() int {
	return 1 << b
}

// Action is the state transition reported for a key or button.
type Action int

const (
	Release Action = iota
	Press
	Repeat
)

func (a Action) String() string {
	switch a {
	case Release:
		return "release"
	case Press:
		return "press"
	case Repeat:
		return "repeat"
	default:
		return "unknown"
	}
}

// ModifierKey is a bitmask of held modifier keys.
type ModifierKey int

const (
	ModShift ModifierKey = 1 << iota
	ModControl
	ModAlt
	ModSuper
)

// Key is a host key code. Values follow the common GLFW numbering so hosts
// can pass their codes through unchanged.
type Key int

const (
	KeyUnknown   Key = -1
	KeySpace     Key = 32
	KeyA         Key = 65
	KeyC         Key = 67
	KeyV         Key = 86
	KeyX         Key = 88
	KeyEscape    Key = 256
	KeyEnter     Key = 257
	KeyTab       Key = 258
	KeyBackspace Key = 259
	KeyDelete    Key = 261
	KeyRight     Key = 262
	KeyLeft      Key = 263
	KeyDown      Key = 264
	KeyUp        Key = 265
	KeyHome      Key = 268
	KeyEnd       Key = 269
)

// Cursor is the pointer shape a widget asks for while hovered.
type Cursor int

const (
	// CursorNone leaves the host's default cursor in place.
	CursorNone Cursor = iota
	CursorArrow
	CursorIBeam
	CursorCrosshair
	CursorHand
	CursorHResize
	CursorVResize
)

func (c Cursor) String() string {
	switch c {
	case CursorArrow:
		return "arrow"
	case CursorIBeam:
		return "ibeam"
	case CursorCrosshair:
		return "crosshair"
	case CursorHand:
		return "hand"
	case CursorHResize:
		return "hresize"
	case CursorVResize:
		return "vresize"
	default:
		return "none"
	}
}

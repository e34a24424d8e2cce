// Package errors provides structured error handling for the widget toolkit.
//
// Three kinds of failure are distinguished:
//
//   - Programmer misuse (a scroll panel given a second child, a layout used
//     with the wrong widget) panics with a *MisuseError at the call site.
//   - Missing references (removing a child that is not present, looking up
//     an unknown id) are not errors at all: callers get nil, false or a
//     no-op.
//   - External I/O (theme files, persisted widget state) is returned to
//     the caller as an ordinary error, wrapped with the operation.
//
// Host-level dispatch recovers panics with Recover and reports them to the
// installed ErrorHandler so the event loop keeps running.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrNotFound is returned by lookups that must report failure as an error
// (for example loading a persisted record with a missing key).
var ErrNotFound = stderrors.New("not found")

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindMisuse indicates an API contract violation by the caller.
	KindMisuse
	// KindMissing indicates a missing widget or key.
	KindMissing
	// KindIO indicates a persistence or resource loading failure.
	KindIO
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindLayout indicates a layout or placement failure.
	KindLayout
)

func (k ErrorKind) String() string {
	switch k {
	case KindMisuse:
		return "misuse"
	case KindMissing:
		return "missing"
	case KindIO:
		return "io"
	case KindPanic:
		return "panic"
	case KindLayout:
		return "layout"
	default:
		return "unknown"
	}
}

// TrellisError represents a structured error reported by the toolkit.
type TrellisError struct {
	// Op is the operation that failed (e.g., "window.Popup.RefreshRelativePlacement").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Widget names the widget involved, if any.
	Widget string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *TrellisError) Error() string {
	if e.Widget != "" {
		return fmt.Sprintf("%s [%s] widget=%s: %v", e.Op, e.Kind, e.Widget, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *TrellisError) Unwrap() error {
	return e.Err
}

// MisuseError is the panic value raised when a caller violates an API
// contract. It is not meant to be recovered by library code.
type MisuseError struct {
	// Op is the operation that was misused (e.g., "scroll.VScrollPanel.AddChild").
	Op string
	// Reason describes the violated contract.
	Reason string
}

func (e *MisuseError) Error() string {
	return fmt.Sprintf("misuse of %s: %s", e.Op, e.Reason)
}

// Misuse panics with a *MisuseError.
func Misuse(op, format string, args ...any) {
	panic(&MisuseError{Op: op, Reason: fmt.Sprintf(format, args...)})
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "screen.MouseButtonCallback").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// ErrorHandler receives errors reported by the toolkit.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *TrellisError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}

// Is, As and New re-export the standard library helpers so callers that
// import this package under its own name need not import both.
var (
	Is  = stderrors.Is
	As  = stderrors.As
	New = stderrors.New
)

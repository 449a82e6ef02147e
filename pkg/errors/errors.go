// Package errors provides structured error handling for the fiber renderer.
//
// The renderer has no recoverable error taxonomy: broken invariants (a hook
// called outside a component render, a missing host ancestor during commit)
// panic with a *FiberError of KindInvariant. The types here give those panics
// and the panics raised by component render functions a consistent shape so
// a host loop can report them through a single ErrorHandler.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindInvariant indicates a violated renderer invariant.
	KindInvariant
	// KindRender indicates a failure inside a component render function.
	KindRender
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindConfig indicates invalid configuration.
	KindConfig
	// KindScheduler indicates a failure of the scheduling primitive.
	KindScheduler
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvariant:
		return "invariant"
	case KindRender:
		return "render"
	case KindPanic:
		return "panic"
	case KindConfig:
		return "config"
	case KindScheduler:
		return "scheduler"
	default:
		return "unknown"
	}
}

var (
	// ErrHookOutsideRender is the cause of the invariant panic raised when a
	// hook is called without an active component render.
	ErrHookOutsideRender = stderrors.New("hook called outside component render")

	// ErrNoHostParent is the cause of the invariant panic raised when commit
	// cannot find a host-bearing ancestor for a fiber.
	ErrNoHostParent = stderrors.New("no host-bearing ancestor")

	// ErrLoopStopped is returned by scheduling loops that were stopped.
	ErrLoopStopped = stderrors.New("loop stopped")
)

// FiberError represents a structured error in the renderer.
type FiberError struct {
	// Op is the operation that failed (e.g., "core.commitDeletion").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *FiberError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *FiberError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "engine.Step").
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

// Unwrap exposes the panic value when it is itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// RenderError represents a failure while a component render function ran.
type RenderError struct {
	// Component is the name of the component that failed.
	Component string
	// Recovered is the panic value (nil for regular errors).
	Recovered any
	// Err is the underlying error (nil for panics).
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *RenderError) Error() string {
	if e.Recovered != nil {
		return fmt.Sprintf("panic in %s render: %v", e.Component, e.Recovered)
	}
	if e.Err != nil {
		return fmt.Sprintf("error in %s render: %v", e.Component, e.Err)
	}
	return fmt.Sprintf("unknown error in %s render", e.Component)
}

func (e *RenderError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	if err, ok := e.Recovered.(error); ok {
		return err
	}
	return nil
}

// Invariant panics with a *FiberError of KindInvariant wrapping cause.
// Use it for conditions that indicate a programming error rather than a
// runtime condition the caller could handle.
func Invariant(op string, cause error, format string, args ...any) {
	err := cause
	if format != "" {
		err = fmt.Errorf("%w: %s", cause, fmt.Sprintf(format, args...))
	}
	panic(&FiberError{
		Op:         op,
		Kind:       KindInvariant,
		Err:        err,
		StackTrace: CaptureStack(),
		Timestamp:  time.Now(),
	})
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool { return stderrors.Is(err, target) }

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool { return stderrors.As(err, target) }

// New returns an error that formats as the given text.
func New(text string) error { return stderrors.New(text) }

// ErrorHandler receives errors reported by the renderer.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *FiberError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
	// HandleRenderError is called when a component render fails.
	HandleRenderError(err *RenderError)
}

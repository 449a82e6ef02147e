package errors

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"
)

var (
	handlerMu sync.RWMutex
	handler   ErrorHandler = &LogHandler{}
)

// SetHandler installs the global error handler. Nil restores a LogHandler
// writing to slog.Default().
func SetHandler(h ErrorHandler) {
	if h == nil {
		h = &LogHandler{}
	}
	handlerMu.Lock()
	handler = h
	handlerMu.Unlock()
}

// Handler returns the global error handler.
func Handler() ErrorHandler {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	return handler
}

// Report passes err to the method of the global handler matching its type.
// Errors that are not renderer errors are reported as a *FiberError of
// KindUnknown. A zero Timestamp is set to now.
func Report(err error) {
	h := Handler()
	switch e := err.(type) {
	case nil:
	case *FiberError:
		stamp(&e.Timestamp)
		h.HandleError(e)
	case *RenderError:
		stamp(&e.Timestamp)
		h.HandleRenderError(e)
	case *PanicError:
		stamp(&e.Timestamp)
		h.HandlePanic(e)
	default:
		h.HandleError(&FiberError{Op: "report", Kind: KindUnknown, Err: err, Timestamp: time.Now()})
	}
}

func stamp(t *time.Time) {
	if t.IsZero() {
		*t = time.Now()
	}
}

// Recovered turns a value recovered from a panic in op into an error.
// Renderer errors raised with panic (invariants, render failures) are
// returned unchanged; any other value becomes a *PanicError.
func Recovered(op string, r any) error {
	switch v := r.(type) {
	case *FiberError:
		return v
	case *RenderError:
		return v
	}
	return &PanicError{Op: op, Value: r, StackTrace: CaptureStack(), Timestamp: time.Now()}
}

// RecoverWithCallback must be deferred directly. It recovers a panic of
// the deferring function, reports it and hands the error to callback.
//
//	defer errors.RecoverWithCallback("engine.Step", func(err error) { ... })
func RecoverWithCallback(op string, callback func(err error)) {
	r := recover()
	if r == nil {
		return
	}
	err := Recovered(op, r)
	Report(err)
	if callback != nil {
		callback(err)
	}
}

// KindOf returns the kind of the first renderer error in err's chain:
// the Kind of a *FiberError, KindRender for a *RenderError and KindPanic
// for a *PanicError.
func KindOf(err error) ErrorKind {
	for err != nil {
		switch e := err.(type) {
		case *FiberError:
			return e.Kind
		case *RenderError:
			return KindRender
		case *PanicError:
			return KindPanic
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return KindUnknown
}

// CaptureStack formats the stack of its caller's caller, one
// "function\n\tfile:line" entry per frame, at most 32 frames.
func CaptureStack() string {
	pcs := make([]uintptr, 32)
	pcs = pcs[:runtime.Callers(3, pcs)]
	if len(pcs) == 0 {
		return ""
	}
	var sb strings.Builder
	frames := runtime.CallersFrames(pcs)
	for {
		f, more := frames.Next()
		fmt.Fprintf(&sb, "%s\n\t%s:%d\n", f.Function, f.File, f.Line)
		if !more {
			return sb.String()
		}
	}
}

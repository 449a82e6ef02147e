package core

import (
	"log/slog"
	"time"
)

// DefaultMinRemaining is the budget below which a Root yields.
const DefaultMinRemaining = time.Millisecond

// Option configures a Root.
type Option func(*Root)

// WithLogger configures the structured logger. Render, yield and commit
// events are logged at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Root) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithObserver registers an Observer for slice and commit events. Observers
// are called in registration order.
func WithObserver(observer Observer) Option {
	return func(r *Root) {
		if observer != nil {
			r.observers = append(r.observers, observer)
		}
	}
}

// WithMinRemaining sets the remaining budget below which the work loop
// yields to the host. Non-positive values restore DefaultMinRemaining.
func WithMinRemaining(d time.Duration) Option {
	return func(r *Root) {
		if d <= 0 {
			d = DefaultMinRemaining
		}
		r.minRemaining = d
	}
}

// Observer receives render loop events. It is called on the goroutine
// running the work loop and must not call back into the Root.
type Observer interface {
	ObserveSlice(SliceEvent)
	ObserveCommit(CommitEvent)
}

// SliceEvent describes one call of PerformWork.
type SliceEvent struct {
	// Units is the number of fibers processed.
	Units int
	// Yielded is true when the slice ended with work left.
	Yielded bool
	// Committed is true when the slice ended with a commit.
	Committed bool
	// Restarts counts passes restarted by state updates since the previous
	// slice, including updates made while it ran.
	Restarts int
	Duration time.Duration
}

// Effect is one host mutation applied by a commit.
type Effect struct {
	Tag EffectTag
	// Type is the tag or component name of the fiber.
	Type string
	// Node is the fiber's host node, nil for components.
	Node HostNode
	// Props are the props the fiber was rendered with. For deletions these
	// are the props of the removed fiber.
	Props Props
}

// CommitEvent describes one commit.
type CommitEvent struct {
	// Effects lists the fibers with an effect tag, deletions first, then
	// the finished tree in pre-order.
	Effects    []Effect
	Placements int
	Updates    int
	Deletions  int
	Duration   time.Duration
}

// Stats are cumulative counters of a Root.
type Stats struct {
	Renders    int
	Restarts   int
	Units      int
	Slices     int
	Yields     int
	Commits    int
	Placements int
	Updates    int
	Deletions  int
}

// Package engine drives core.Root from a real-time loop. Loop is a
// core.Scheduler with a fixed per-slice budget; Metrics exports render loop
// counters to Prometheus; the debug server exposes both over HTTP.
package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-drift/fiber/pkg/core"
	"github.com/go-drift/fiber/pkg/errors"
)

const (
	// DefaultBudget is the time a slice may spend on idle callbacks.
	DefaultBudget = 8 * time.Millisecond
	// DefaultFrameInterval is the tick period of Run.
	DefaultFrameInterval = 16667 * time.Microsecond
)

// Clock is the time source of a Loop.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Config configures a Loop. Zero fields take defaults.
type Config struct {
	Budget        time.Duration
	FrameInterval time.Duration
	Clock         Clock
	Logger        *slog.Logger
	// Trace records one sample per slice when set.
	Trace *SliceTraceBuffer
}

// Loop runs dispatched functions and idle callbacks on a single goroutine,
// one slice per tick. It implements core.Scheduler.
//
// ScheduleIdleWork and Dispatch are safe to call from any goroutine; Step
// and Run must not run concurrently.
type Loop struct {
	budget   time.Duration
	interval time.Duration
	clock    Clock
	logger   *slog.Logger
	trace    *SliceTraceBuffer

	mu       sync.Mutex
	dispatch []func()
	idle     []func(core.Deadline)
	err      error

	wake     chan struct{}
	stop     chan struct{}
	stopOnce sync.Once
}

var _ core.Scheduler = (*Loop)(nil)

// NewLoop creates a Loop.
func NewLoop(cfg Config) *Loop {
	l := &Loop{
		budget:   cfg.Budget,
		interval: cfg.FrameInterval,
		clock:    cfg.Clock,
		logger:   cfg.Logger,
		trace:    cfg.Trace,
		wake:     make(chan struct{}, 1),
		stop:     make(chan struct{}),
	}
	if l.budget <= 0 {
		l.budget = DefaultBudget
	}
	if l.interval <= 0 {
		l.interval = DefaultFrameInterval
	}
	if l.clock == nil {
		l.clock = systemClock{}
	}
	if l.logger == nil {
		l.logger = slog.New(slog.DiscardHandler)
	}
	return l
}

// Budget returns the per-slice budget.
func (l *Loop) Budget() time.Duration {
	return l.budget
}

// ScheduleIdleWork implements core.Scheduler. The callback runs in the next
// slice.
func (l *Loop) ScheduleIdleWork(callback func(core.Deadline)) {
	if callback == nil {
		return
	}
	l.mu.Lock()
	l.idle = append(l.idle, callback)
	l.mu.Unlock()
	l.notify()
}

// Dispatch schedules fn to run on the loop goroutine at the start of the
// next slice. It is safe to call from any goroutine.
func (l *Loop) Dispatch(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	l.dispatch = append(l.dispatch, fn)
	l.mu.Unlock()
	l.notify()
}

// Call runs fn on the loop goroutine and waits for it to return. It fails
// if ctx is done or the loop stops first.
func (l *Loop) Call(ctx context.Context, fn func()) error {
	select {
	case <-l.stop:
		return l.stoppedErr()
	default:
	}
	done := make(chan struct{})
	l.Dispatch(func() {
		defer close(done)
		fn()
	})
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.stop:
		return l.stoppedErr()
	}
}

func (l *Loop) stoppedErr() error {
	if err := l.Err(); err != nil {
		return err
	}
	return &errors.FiberError{Op: "engine.Call", Kind: errors.KindScheduler, Err: errors.ErrLoopStopped, Timestamp: time.Now()}
}

func (l *Loop) notify() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Pending returns the number of queued functions and callbacks.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.dispatch) + len(l.idle)
}

// Step runs one slice: every dispatched function, then every idle callback
// queued before the slice started, each with a deadline ending Budget after
// the start of the slice. Callbacks scheduled during the slice run in the
// next one. A panic is reported through the errors package, stops the loop and
// is returned: renderer errors as they were raised, other values as a
// *errors.PanicError.
func (l *Loop) Step() (err error) {
	if err := l.Err(); err != nil {
		return err
	}

	l.mu.Lock()
	dispatched := l.dispatch
	idle := l.idle
	l.dispatch, l.idle = nil, nil
	l.mu.Unlock()

	start := l.clock.Now()
	defer errors.RecoverWithCallback("engine.Step", func(e error) {
		l.fail(e)
		err = e
	})

	for _, fn := range dispatched {
		fn()
	}
	deadline := core.DeadlineFunc(func() time.Duration {
		return l.budget - l.clock.Now().Sub(start)
	})
	for _, cb := range idle {
		cb(deadline)
	}

	elapsed := l.clock.Now().Sub(start)
	if l.trace != nil {
		l.trace.Add(SliceSample{
			Timestamp:  start.UnixMilli(),
			DurationMs: durationToMillis(elapsed),
			Dispatched: len(dispatched),
			Callbacks:  len(idle),
		}, elapsed)
	}
	if elapsed > l.budget {
		l.logger.Debug("slice over budget", "elapsed", elapsed, "budget", l.budget)
	}
	return nil
}

// fail records err, the reported failure of a slice, and stops the loop.
func (l *Loop) fail(err error) {
	l.mu.Lock()
	if l.err == nil {
		l.err = err
	}
	l.mu.Unlock()
	l.logger.Error("loop stopped", "kind", errors.KindOf(err).String(), "err", err)
	l.Stop()
}

// Err returns the error that stopped the loop, if any.
func (l *Loop) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Run steps the loop every FrameInterval, and as soon as work arrives,
// until ctx is done or Stop is called. It returns the error of a failed
// slice, ctx.Err(), or nil after Stop.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.logger.Debug("loop started", "budget", l.budget, "interval", l.interval)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.stop:
			return l.Err()
		case <-l.wake:
		case <-ticker.C:
		}
		if l.Pending() == 0 {
			continue
		}
		if err := l.Step(); err != nil {
			return err
		}
	}
}

// Stop makes Run return. It is safe to call more than once and from any
// goroutine.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

// Done is closed once the loop is stopped.
func (l *Loop) Done() <-chan struct{} {
	return l.stop
}

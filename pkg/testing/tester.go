package testing

import (
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/go-drift/fiber/pkg/core"
	"github.com/go-drift/fiber/pkg/host"
)

// DefaultMaxSlices bounds PumpAll.
const DefaultMaxSlices = 10000

// ErrSettleTimeout is returned when PumpAll exceeds its slice limit.
var ErrSettleTimeout = errors.New("PumpAll: render loop did not settle")

// Tester renders into an in-memory host tree with a manual scheduler, so
// tests decide when and with which budget work runs.
type Tester struct {
	tree      *host.Tree
	container *host.Node
	scheduler *ManualScheduler
	clock     *FakeClock
	root      *core.Root

	// MaxSlices bounds PumpAll. Zero means DefaultMaxSlices.
	MaxSlices int

	slices  []core.SliceEvent
	commits []core.CommitEvent
}

// NewTester creates a tester with an empty "root" container. Options are
// passed to core.NewRoot; the tester registers itself as the observer.
func NewTester(opts ...core.Option) *Tester {
	t := &Tester{
		tree:      host.New(),
		scheduler: &ManualScheduler{},
		clock:     NewFakeClock(),
	}
	t.container = t.tree.NewContainer("root")
	opts = append(opts, core.WithObserver(t))
	t.root = core.NewRoot(t.tree, t.container, t.scheduler, opts...)
	return t
}

// NewTesterWithT creates a tester whose debug logs go to t.Log.
func NewTesterWithT(t testing.TB, opts ...core.Option) *Tester {
	logger := slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewTester(append([]core.Option{core.WithLogger(logger)}, opts...)...)
}

type testWriter struct{ t testing.TB }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// ObserveSlice implements core.Observer.
func (t *Tester) ObserveSlice(ev core.SliceEvent) {
	t.slices = append(t.slices, ev)
}

// ObserveCommit implements core.Observer.
func (t *Tester) ObserveCommit(ev core.CommitEvent) {
	t.commits = append(t.commits, ev)
}

// Root returns the root under test.
func (t *Tester) Root() *core.Root { return t.root }

// Tree returns the host tree.
func (t *Tester) Tree() *host.Tree { return t.tree }

// Container returns the node the root renders into.
func (t *Tester) Container() *host.Node { return t.container }

// Clock returns the fake clock used by Pump.
func (t *Tester) Clock() *FakeClock { return t.clock }

// Scheduler returns the manual scheduler.
func (t *Tester) Scheduler() *ManualScheduler { return t.scheduler }

// Slices returns every observed slice.
func (t *Tester) Slices() []core.SliceEvent { return t.slices }

// Commits returns every observed commit.
func (t *Tester) Commits() []core.CommitEvent { return t.commits }

// LastCommit returns the most recent commit. Panics if there was none.
func (t *Tester) LastCommit() core.CommitEvent {
	if len(t.commits) == 0 {
		panic("Tester.LastCommit: nothing committed")
	}
	return t.commits[len(t.commits)-1]
}

// Render requests a render of el without running any work.
func (t *Tester) Render(el core.Element) {
	t.root.Render(el)
}

// Mount renders el and runs all work to completion.
func (t *Tester) Mount(el core.Element) error {
	t.Render(el)
	return t.PumpAll()
}

// Pump runs one queued slice with an unbounded budget. It reports whether a
// render pass is still in progress afterwards.
func (t *Tester) Pump() bool {
	t.scheduler.RunNext(core.Unbounded)
	return t.root.Pending()
}

// PumpUnits runs one queued slice that yields after n fibers. It reports
// whether a render pass is still in progress afterwards.
func (t *Tester) PumpUnits(n int) bool {
	t.scheduler.RunNext(NewStepDeadline(n))
	return t.root.Pending()
}

// PumpAll runs queued slices until none are left.
func (t *Tester) PumpAll() error {
	limit := t.MaxSlices
	if limit <= 0 {
		limit = DefaultMaxSlices
	}
	for range limit {
		if !t.scheduler.RunNext(core.Unbounded) {
			return nil
		}
	}
	if t.scheduler.Pending() > 0 {
		return ErrSettleTimeout
	}
	return nil
}

// Find evaluates f against the container.
func (t *Tester) Find(f Finder) FinderResult {
	return FinderResult{nodes: f.Evaluate(t.container), finder: f}
}

// Tap dispatches a click to the first node matched by f. It does not pump.
func (t *Tester) Tap(f Finder) error {
	return t.Dispatch(f, "click", nil)
}

// Dispatch fires event on the first node matched by f. It does not pump.
func (t *Tester) Dispatch(f Finder, event string, payload any) error {
	n := t.Find(f).FirstOrNil()
	if n == nil {
		return fmt.Errorf("dispatch %s: no node for %s", event, f.Description())
	}
	if !host.Dispatch(n, event, payload) {
		return fmt.Errorf("dispatch %s: %s has no %s listener", event, n, event)
	}
	return nil
}

// Dump returns the host tree under the container as text.
func (t *Tester) Dump() string {
	return host.Dump(t.container)
}

package core

import (
	"log/slog"
	"time"

	"github.com/go-drift/fiber/pkg/errors"
)

// Root renders Elements into a host container. It owns the committed fiber
// tree, the work-in-progress tree, the next unit of work and the pending
// deletions; independent Roots share nothing.
//
// A Root is not safe for concurrent use. Render, state setters and
// PerformWork must run on one goroutine, normally the one driving the
// Scheduler.
type Root struct {
	host         Host
	container    HostNode
	scheduler    Scheduler
	logger       *slog.Logger
	observers    []Observer
	minRemaining time.Duration

	element Element

	// tables[curIdx] holds the committed tree, the other one the
	// work-in-progress tree. They swap on commit.
	tables [2]fiberTable
	cur    *fiberTable
	wip    *fiberTable

	current   fiberID // committed root fiber, in cur
	wipRoot   fiberID // work-in-progress root fiber, in wip
	next      fiberID // next unit of work, in wip
	deletions []fiberID

	armed    bool
	running  bool
	inUnit   bool
	restart  bool
	restarts int

	stats Stats
}

// NewRoot creates a Root rendering into container, which must be a node of
// host. Work is scheduled on sched; a nil sched queues it until Flush.
func NewRoot(host Host, container HostNode, sched Scheduler, opts ...Option) *Root {
	if sched == nil {
		sched = &SyncScheduler{}
	}
	r := &Root{
		host:         host,
		container:    container,
		scheduler:    sched,
		logger:       slog.New(slog.DiscardHandler),
		minRemaining: DefaultMinRemaining,
		current:      noFiber,
		wipRoot:      noFiber,
		next:         noFiber,
	}
	r.cur, r.wip = &r.tables[0], &r.tables[1]
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render requests a render pass of el into the container. The pass runs
// when the Scheduler calls back; Render itself does no rendering unless the
// Scheduler runs callbacks synchronously. A zero el unmounts everything.
func (r *Root) Render(el Element) {
	r.element = el
	r.requestRender("render")
}

// Flush runs all pending work to completion with an unbounded budget. A
// callback already queued on the Scheduler stays queued and finds nothing
// to do unless new work arrives before it runs.
func (r *Root) Flush() {
	armed := r.armed
	for r.next != noFiber {
		r.PerformWork(Unbounded)
	}
	r.armed = armed
}

// Pending reports whether a render pass is in progress.
func (r *Root) Pending() bool {
	return r.wipRoot != noFiber
}

// Container returns the host node the Root renders into.
func (r *Root) Container() HostNode {
	return r.container
}

// Stats returns cumulative counters.
func (r *Root) Stats() Stats {
	return r.stats
}

// requestRender installs a new work-in-progress root whose alternate is the
// committed root, resets the pending deletions and arms the scheduler. A
// pass already in progress is abandoned. Requests made while a fiber is
// being processed take effect once that fiber is done.
func (r *Root) requestRender(reason string) {
	if r.inUnit {
		r.restart = true
		return
	}
	// A pass that has not processed its root yet is replaced, not restarted.
	restart := r.wipRoot != noFiber && r.next != r.wipRoot
	if restart {
		r.stats.Restarts++
		r.restarts++
	}
	r.wip.reset()
	root := newFiber(nil, nil, nil)
	root.hostNode = r.container
	root.alternate = r.current
	if !r.element.IsZero() {
		root.children = []Element{r.element}
	}
	r.wipRoot = r.wip.alloc(root)
	r.next = r.wipRoot
	r.deletions = r.deletions[:0]
	r.stats.Renders++
	r.logger.Debug("render requested", "reason", reason, "restart", restart)
	r.arm()
}

func (r *Root) arm() {
	if r.armed || r.running {
		return
	}
	r.armed = true
	r.scheduler.ScheduleIdleWork(r.PerformWork)
}

// PerformWork is the scheduler callback. It processes units of work until
// none are left or d reports less than the minimum remaining budget,
// commits when the tree is exhausted, and schedules itself again when work
// is left. Without pending work it returns without recording a slice.
func (r *Root) PerformWork(d Deadline) {
	r.armed = false
	if r.running || r.wipRoot == noFiber {
		return
	}
	r.running = true
	start := time.Now()
	units := 0
	yielded := false
	committed := false

	func() {
		defer func() { r.running = false }()
		for r.next != noFiber {
			r.next = r.performUnitOfWork(r.next)
			units++
			if d.TimeRemaining() < r.minRemaining {
				break
			}
		}
		yielded = r.next != noFiber
		if !yielded && r.wipRoot != noFiber {
			r.commitRoot()
			committed = true
		}
	}()

	r.stats.Slices++
	if yielded {
		r.stats.Yields++
		r.logger.Debug("yield", "units", units)
	}
	// Restarts requested between slices are reported with this one.
	restarts := r.restarts
	r.restarts = 0
	if len(r.observers) > 0 {
		ev := SliceEvent{
			Units:     units,
			Yielded:   yielded,
			Committed: committed,
			Restarts:  restarts,
			Duration:  time.Since(start),
		}
		for _, o := range r.observers {
			o.ObserveSlice(ev)
		}
	}
	if r.next != noFiber {
		r.arm()
	}
}

// performUnitOfWork processes one fiber and returns the next one in
// pre-order, or noFiber when the tree is exhausted.
func (r *Root) performUnitOfWork(id fiberID) fiberID {
	r.inUnit = true
	func() {
		defer func() { r.inUnit = false }()
		if comp, ok := r.wip.at(id).typ.(*ComponentType); ok {
			r.updateFunctionComponent(id, comp)
		} else {
			r.updateHostComponent(id)
		}
	}()
	r.stats.Units++

	if r.restart {
		r.restart = false
		r.requestRender("update")
		return r.next
	}
	return r.wip.next(id, r.wipRoot)
}

func (r *Root) updateFunctionComponent(id fiberID, comp *ComponentType) {
	f := r.wip.at(id)
	f.hooks = nil
	ctx := &RenderContext{
		root:      r,
		fiber:     id,
		component: comp,
		children:  f.children,
		active:    true,
	}
	el := renderComponent(ctx, comp, f.props)
	ctx.active = false

	var children []Element
	if !el.IsZero() {
		children = []Element{el}
	}
	r.reconcileChildren(id, children)
}

// renderComponent calls the component's render function. A panic is
// re-raised as a *errors.RenderError naming the component; invariant
// violations pass through unchanged.
func renderComponent(ctx *RenderContext, comp *ComponentType, props Props) Element {
	defer func() {
		rec := recover()
		if rec == nil {
			return
		}
		switch rec.(type) {
		case *errors.FiberError, *errors.RenderError:
			panic(rec)
		}
		panic(&errors.RenderError{
			Component:  comp.Name,
			Recovered:  rec,
			StackTrace: errors.CaptureStack(),
			Timestamp:  time.Now(),
		})
	}()
	return comp.Render(ctx, props)
}

func (r *Root) updateHostComponent(id fiberID) {
	f := r.wip.at(id)
	if f.hostNode == nil {
		f.hostNode = r.createHostNode(f.typ, f.props)
	}
	r.reconcileChildren(id, f.children)
}

// createHostNode creates a detached node and applies its initial props.
func (r *Root) createHostNode(typ ElementType, props Props) HostNode {
	tag, ok := typ.(HostType)
	if !ok {
		errors.Invariant("core.createHostNode", errors.New("not a host type"), "%s", typeName(typ))
	}
	var node HostNode
	if tag == TextType {
		node = r.host.CreateTextNode()
	} else {
		node = r.host.CreateNode(string(tag))
	}
	applyProps(r.host, node, nil, props)
	return node
}

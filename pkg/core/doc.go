// Package core provides the element model and the incremental rendering core.
//
// An Element is an immutable description of part of a tree. A Root turns a
// sequence of Element renders into mutations of a mutable host tree, splitting
// the work into units (one fiber each) so that a render never blocks the host
// for longer than the budget reported by its Deadline.
//
// # Elements
//
// Elements are built with El and Text:
//
//	core.El(core.HostType("div"), core.Props{"id": "main"},
//	    core.El("h1", nil, "Hello"),
//	    core.El(Counter, core.Props{"start": 3}),
//	)
//
// Strings and numbers passed as children become text elements.
//
// # Components
//
// A component is a render function registered with Component. It receives a
// RenderContext, which is valid only while the function runs, and returns the
// Element subtree it renders to:
//
//	var Counter = core.Component("Counter", func(ctx *core.RenderContext, props core.Props) core.Element {
//	    count, setCount := core.UseState(ctx, 0)
//	    return core.El("button", core.Props{
//	        "onClick": func() { setCount(func(c int) int { return c + 1 }) },
//	    }, count)
//	})
//
// Hooks are identified by call order, so a component must call them in the
// same order on every render.
//
// # Rendering
//
// A Root owns all render state: the committed fiber tree, the
// work-in-progress tree, the next unit of work and the pending deletions.
// Render and state setters request a new render pass over the whole tree and
// arm the Scheduler; the Scheduler calls PerformWork with a Deadline, and the
// pass commits to the Host in a single uninterrupted step once every fiber has
// been visited.
//
// Children are matched by position only. Reordering a list is observed as a
// replacement at every index whose type changed and as an update elsewhere.
package core

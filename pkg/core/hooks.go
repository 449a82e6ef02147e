package core

import (
	"github.com/go-drift/fiber/pkg/errors"
)

// hookCell is the state slot of one hook call site. Actions queued by the
// setter are folded into the state on the next render.
type hookCell struct {
	state any
	queue []func(any) any
}

// RenderContext is passed to a component's render function. It is valid
// only while that function runs; hooks called on it afterwards panic.
type RenderContext struct {
	root      *Root
	fiber     fiberID
	component *ComponentType
	children  []Element
	hookIndex int
	active    bool
}

// Children returns the child elements the component was given.
func (c *RenderContext) Children() []Element {
	return c.children
}

// ComponentName returns the name of the component being rendered.
func (c *RenderContext) ComponentName() string {
	return c.component.Name
}

// useHook returns a fresh cell for the next hook call site of the fiber,
// seeded from the cell at the same index of the alternate with its queued
// actions applied in order.
func (c *RenderContext) useHook(op string, initial func() any) *hookCell {
	if c == nil || !c.active {
		errors.Invariant(op, errors.ErrHookOutsideRender, "")
	}
	r := c.root
	f := r.wip.at(c.fiber)

	var old *hookCell
	if f.alternate != noFiber {
		if alt := r.cur.at(f.alternate); c.hookIndex < len(alt.hooks) {
			old = alt.hooks[c.hookIndex]
		}
	}

	cell := &hookCell{}
	if old != nil {
		cell.state = old.state
		for _, action := range old.queue {
			cell.state = action(cell.state)
		}
	} else {
		cell.state = initial()
	}
	f.hooks = append(f.hooks, cell)
	c.hookIndex++
	return cell
}

// UseState returns the state of this call site and a setter. The setter
// queues action, which maps the previous state to the next one, and
// requests a render of the whole tree; the new state is visible on that
// render.
//
// Example:
//
//	count, setCount := core.UseState(ctx, 0)
//	onClick := func() { setCount(func(c int) int { return c + 1 }) }
func UseState[T any](ctx *RenderContext, initial T) (T, func(action func(T) T)) {
	cell := ctx.useHook("core.UseState", func() any { return initial })
	root := ctx.root
	set := func(action func(T) T) {
		cell.queue = append(cell.queue, func(s any) any {
			prev, _ := s.(T)
			return action(prev)
		})
		root.requestRender("state")
	}
	state, _ := cell.state.(T)
	return state, set
}

// Set returns an action that replaces the state with v.
func Set[T any](v T) func(T) T {
	return func(T) T { return v }
}

// UseReducer is UseState with actions interpreted by reducer.
func UseReducer[S, A any](ctx *RenderContext, reducer func(S, A) S, initial S) (S, func(A)) {
	state, set := UseState(ctx, initial)
	dispatch := func(action A) {
		set(func(s S) S { return reducer(s, action) })
	}
	return state, dispatch
}

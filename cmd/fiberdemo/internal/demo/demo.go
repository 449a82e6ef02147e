// Package demo holds the components rendered by the fiberdemo CLI and a
// scripted session that exercises them.
package demo

import (
	"fmt"

	"github.com/go-drift/fiber/pkg/core"
)

// steps cycles the increment of Counter.
var steps = []int{1, 2, 5}

// Counter shows a count and a step, each kept in its own state hook.
var Counter = core.Component("Counter", func(ctx *core.RenderContext, props core.Props) core.Element {
	count, setCount := core.UseState(ctx, 0)
	step, setStep := core.UseState(ctx, 0)

	increment := func() { setCount(func(c int) int { return c + steps[step] }) }
	nextStep := func() { setStep(func(s int) int { return (s + 1) % len(steps) }) }

	return core.El("section", core.Props{"id": "counter"},
		core.El("h2", nil, props.String("title")),
		core.El("p", core.Props{"id": "count"}, "count: ", count),
		core.El("button", core.Props{"id": "inc", "onClick": increment}, fmt.Sprintf("+%d", steps[step])),
		core.El("button", core.Props{"id": "step", "onClick": nextStep}, "step"),
	)
})

// App renders Counter and TodoList under a header naming the application.
var App = core.Component("App", func(ctx *core.RenderContext, props core.Props) core.Element {
	return core.El("main", core.Props{"id": "app"},
		core.El("h1", nil, props.String("name")),
		core.El(Counter, core.Props{"title": "Counter"}),
		core.El(TodoList, core.Props{"title": "Todo"}),
	)
})

// NewApp returns the App element for an application called name.
func NewApp(name string) core.Element {
	return core.El(App, core.Props{"name": name})
}

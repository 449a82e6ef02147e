package core_test

import (
	"fmt"

	"github.com/go-drift/fiber/pkg/core"
	"github.com/go-drift/fiber/pkg/host"
)

func Example() {
	tree := host.New()
	container := tree.NewContainer("root")
	sched := &core.SyncScheduler{}
	root := core.NewRoot(tree, container, sched)

	var increment func()
	counter := core.Component("Counter", func(ctx *core.RenderContext, props core.Props) core.Element {
		n, setN := core.UseState(ctx, 0)
		increment = func() { setN(func(c int) int { return c + 1 }) }
		return core.El("p", core.Props{"class": "count"}, "count: ", n)
	})

	root.Render(core.El(counter, nil))
	sched.Drain()
	fmt.Print(host.Dump(container))

	increment()
	increment()
	sched.Drain()
	fmt.Print(host.Dump(container))
	// Output:
	// root
	//   p class=count
	//     "count: "
	//     "0"
	// root
	//   p class=count
	//     "count: "
	//     "2"
}

func ExampleUseReducer() {
	tree := host.New()
	container := tree.NewContainer("list")
	root := core.NewRoot(tree, container, nil)

	var add func(string)
	todos := core.Component("Todos", func(ctx *core.RenderContext, props core.Props) core.Element {
		items, dispatch := core.UseReducer(ctx, func(items []string, item string) []string {
			return append(items[:len(items):len(items)], item)
		}, nil)
		add = dispatch
		var lis []core.Element
		for _, item := range items {
			lis = append(lis, core.El("li", nil, item))
		}
		return core.El("ul", nil, lis)
	})

	root.Render(core.El(todos, nil))
	root.Flush()
	add("write tests")
	add("ship")
	root.Flush()
	fmt.Print(host.Dump(container))
	// Output:
	// list
	//   ul
	//     li
	//       "write tests"
	//     li
	//       "ship"
}

func ExampleRoot_DebugString() {
	tree := host.New()
	root := core.NewRoot(tree, tree.NewContainer("root"), nil)
	root.Render(core.El("nav", core.Props{"id": "top"}, core.El("a", core.Props{"href": "/"}, "home")))
	root.Flush()
	fmt.Print(root.DebugString())
	// Output:
	// root
	//   nav id=top
	//     a href=/
	//       TEXT_ELEMENT nodeValue=home
}

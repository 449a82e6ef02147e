package testing

import (
	"fmt"

	"github.com/go-drift/fiber/pkg/core"
)

var counter = core.Component("Counter", func(ctx *core.RenderContext, props core.Props) core.Element {
	n, set := core.UseState(ctx, 0)
	return core.El("div", core.Props{"class": "counter"},
		core.El("span", core.Props{"id": "value"}, n),
		core.El("button", core.Props{"onClick": func() { set(func(c int) int { return c + 1 }) }}, "+"),
		core.El("input", core.Props{"onInput": func(v any) { set(core.Set(len(fmt.Sprint(v)))) }}),
	)
})

func card(title string, lines ...string) core.Element {
	body := make([]any, len(lines))
	for i, line := range lines {
		body[i] = line
	}
	return core.El("section", core.Props{"class": "card"},
		core.El("h2", nil, title),
		core.El("p", nil, body...),
	)
}

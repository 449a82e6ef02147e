package demo

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-drift/fiber/pkg/core"
	"github.com/go-drift/fiber/pkg/host"
)

// Todo is one entry of a TodoList.
type Todo struct {
	Text string
	Done bool
}

// TodoAction is an action of the TodoList reducer.
type TodoAction struct {
	Kind  string // "add", "toggle", "remove" or "clear"
	Text  string
	Index int
}

// ReduceTodos applies action to todos without modifying it.
func ReduceTodos(todos []Todo, action TodoAction) []Todo {
	switch action.Kind {
	case "add":
		text := strings.TrimSpace(action.Text)
		if text == "" {
			return todos
		}
		return append(slices.Clip(todos), Todo{Text: text})
	case "toggle":
		if action.Index < 0 || action.Index >= len(todos) {
			return todos
		}
		out := slices.Clone(todos)
		out[action.Index].Done = !out[action.Index].Done
		return out
	case "remove":
		if action.Index < 0 || action.Index >= len(todos) {
			return todos
		}
		return slices.Delete(slices.Clone(todos), action.Index, action.Index+1)
	case "clear":
		return slices.DeleteFunc(slices.Clone(todos), func(t Todo) bool { return t.Done })
	default:
		return todos
	}
}

// TodoList keeps a draft and a list of todos. Items are matched by index,
// so removing an entry updates the ones after it in place.
var TodoList = core.Component("TodoList", func(ctx *core.RenderContext, props core.Props) core.Element {
	todos, dispatch := core.UseReducer(ctx, ReduceTodos, nil)
	draft, setDraft := core.UseState(ctx, "")

	items := make([]core.Element, 0, len(todos))
	for i, todo := range todos {
		class := "todo"
		if todo.Done {
			class = "todo done"
		}
		items = append(items, core.El("li", core.Props{"class": class},
			core.El("span", core.Props{
				"id":      fmt.Sprintf("todo-%d", i),
				"onClick": func() { dispatch(TodoAction{Kind: "toggle", Index: i}) },
			}, todo.Text),
			core.El("button", core.Props{
				"id":      fmt.Sprintf("remove-%d", i),
				"onClick": func() { dispatch(TodoAction{Kind: "remove", Index: i}) },
			}, "x"),
		))
	}

	return core.El("section", core.Props{"id": "todos"},
		core.El("h2", nil, props.String("title")),
		core.El("input", core.Props{
			"id":      "draft",
			"value":   draft,
			"onInput": func(ev host.Event) { setDraft(core.Set(fmt.Sprint(ev.Payload))) },
		}),
		core.El("button", core.Props{
			"id": "add",
			"onClick": func() {
				dispatch(TodoAction{Kind: "add", Text: draft})
				setDraft(core.Set(""))
			},
		}, "add"),
		core.El("button", core.Props{
			"id":      "clear",
			"onClick": func() { dispatch(TodoAction{Kind: "clear"}) },
		}, "clear done"),
		core.El("ul", nil, items),
		core.El("p", core.Props{"id": "remaining"}, remaining(todos), " left"),
	)
})

func remaining(todos []Todo) int {
	n := 0
	for _, t := range todos {
		if !t.Done {
			n++
		}
	}
	return n
}

package demo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/fiber/pkg/core"
	"github.com/go-drift/fiber/pkg/host"
	fibertest "github.com/go-drift/fiber/pkg/testing"
)

func textOf(t *testing.T, tester *fibertest.Tester, id string) string {
	t.Helper()
	return tester.Find(fibertest.ByAttr("id", id)).First().Text()
}

func TestCounter(t *testing.T) {
	tester := fibertest.NewTesterWithT(t)
	require.NoError(t, tester.Mount(core.El(Counter, core.Props{"title": "C"})))
	assert.Equal(t, "count: 0", textOf(t, tester, "count"))

	require.NoError(t, tester.Tap(fibertest.ByAttr("id", "step")))
	require.NoError(t, tester.PumpAll())
	assert.Equal(t, "+2", textOf(t, tester, "inc"))

	require.NoError(t, tester.Tap(fibertest.ByAttr("id", "inc")))
	require.NoError(t, tester.Tap(fibertest.ByAttr("id", "inc")))
	require.NoError(t, tester.PumpAll())
	assert.Equal(t, "count: 4", textOf(t, tester, "count"))
}

func TestReduceTodos(t *testing.T) {
	base := []Todo{{Text: "a"}, {Text: "b", Done: true}, {Text: "c"}}

	tests := []struct {
		name   string
		action TodoAction
		want   []Todo
	}{
		{"add", TodoAction{Kind: "add", Text: " d "}, []Todo{{Text: "a"}, {Text: "b", Done: true}, {Text: "c"}, {Text: "d"}}},
		{"add blank", TodoAction{Kind: "add", Text: "  "}, base},
		{"toggle", TodoAction{Kind: "toggle", Index: 0}, []Todo{{Text: "a", Done: true}, {Text: "b", Done: true}, {Text: "c"}}},
		{"toggle out of range", TodoAction{Kind: "toggle", Index: 7}, base},
		{"remove", TodoAction{Kind: "remove", Index: 1}, []Todo{{Text: "a"}, {Text: "c"}}},
		{"clear", TodoAction{Kind: "clear"}, []Todo{{Text: "a"}, {Text: "c"}}},
		{"unknown", TodoAction{Kind: "noop"}, base},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := append([]Todo(nil), base...)
			assert.Equal(t, tt.want, ReduceTodos(base, tt.action))
			assert.Equal(t, before, base, "reducer modified its input")
		})
	}
}

func TestTodoListShrinkDetachesTail(t *testing.T) {
	tester := fibertest.NewTesterWithT(t)
	require.NoError(t, tester.Mount(core.El(TodoList, core.Props{"title": "T"})))

	for _, text := range []string{"one", "two", "three"} {
		require.NoError(t, tester.Dispatch(fibertest.ByAttr("id", "draft"), "input", text))
		require.NoError(t, tester.PumpAll())
		require.NoError(t, tester.Tap(fibertest.ByAttr("id", "add")))
		require.NoError(t, tester.PumpAll())
	}
	assert.Equal(t, 3, tester.Find(fibertest.ByTag("li")).Count())
	assert.Equal(t, "3 left", textOf(t, tester, "remaining"))

	require.NoError(t, tester.Tap(fibertest.ByAttr("id", "remove-0")))
	require.NoError(t, tester.PumpAll())

	commit := tester.LastCommit()
	assert.Equal(t, 1, commit.Deletions)
	assert.Equal(t, "two", textOf(t, tester, "todo-0"))
	assert.Equal(t, "three", textOf(t, tester, "todo-1"))
	assert.False(t, tester.Find(fibertest.ByAttr("id", "todo-2")).Exists())
}

func TestScript(t *testing.T) {
	tester := fibertest.NewTesterWithT(t)
	require.NoError(t, tester.Mount(NewApp("demo")))

	for _, step := range Script {
		require.NoError(t, Apply(tester.Container(), step), step.String())
		require.NoError(t, tester.PumpAll())
	}

	assert.Equal(t, "demo", tester.Find(fibertest.ByTag("h1")).First().Text())
	assert.Equal(t, "count: 3", textOf(t, tester, "count"))
	assert.Equal(t, "ship it", textOf(t, tester, "todo-0"))
	assert.Equal(t, "1 left", textOf(t, tester, "remaining"))
	assert.Equal(t, "", tester.Find(fibertest.ByAttr("id", "draft")).First().Attr("value"))
}

func TestScriptWithSyncScheduler(t *testing.T) {
	tree := host.New()
	container := tree.NewContainer("body")
	sched := &core.SyncScheduler{}
	root := core.NewRoot(tree, container, sched)
	root.Render(NewApp("demo"))
	sched.Drain()

	for _, step := range Script {
		require.NoError(t, Apply(container, step), step.String())
		sched.Drain()
	}

	byID := func(id string) *host.Node {
		nodes := host.Find(container, func(n *host.Node) bool { return n.Attr("id") == id })
		require.NotEmpty(t, nodes, id)
		return nodes[0]
	}
	assert.Equal(t, "ship it", byID("todo-0").Text())
	assert.Equal(t, "1 left", byID("remaining").Text())
	assert.Equal(t, "", byID("draft").Attr("value"), "add clears the draft in the same pass")
	assert.Zero(t, sched.Pending())
}

func TestApplyErrors(t *testing.T) {
	tester := fibertest.NewTesterWithT(t)
	require.NoError(t, tester.Mount(NewApp("demo")))

	err := Apply(tester.Container(), Step{Event: "click", Target: "missing"})
	assert.ErrorContains(t, err, `no node with id "missing"`)

	err = Apply(tester.Container(), Step{Event: "click", Target: "count"})
	assert.ErrorContains(t, err, "no click listener")
}

package core_test

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/fiber/pkg/core"
	"github.com/go-drift/fiber/pkg/host"
	fibertest "github.com/go-drift/fiber/pkg/testing"
)

func opStrings(tree *host.Tree) []string {
	var out []string
	for _, op := range tree.Ops() {
		out = append(out, op.String())
	}
	return out
}

func mount(t *testing.T, ft *fibertest.Tester, el core.Element) {
	t.Helper()
	if err := ft.Mount(el); err != nil {
		t.Fatalf("Mount: %v", err)
	}
}

func TestFirstMountOps(t *testing.T) {
	ft := fibertest.NewTester()
	mount(t, ft, core.El("div", core.Props{"id": "a"}, "hi"))

	want := []string{
		"create #2 div",
		"set #2 id=a",
		"create #3 #text",
		"set #3 nodeValue=hi",
		"attach #2 -> #1",
		"attach #3 -> #2",
	}
	if diff := cmp.Diff(want, opStrings(ft.Tree())); diff != "" {
		t.Errorf("ops mismatch (-want +got):\n%s", diff)
	}
}

func TestPositionalReuseUpdatesInPlace(t *testing.T) {
	ft := fibertest.NewTester()
	mount(t, ft, core.El("div", core.Props{"id": "a"}, "hi"))
	div := ft.Find(fibertest.ByTag("div")).First()
	ft.Tree().ResetOps()

	mount(t, ft, core.El("div", core.Props{"id": "b"}, "hi"))

	if diff := cmp.Diff([]string{"set #2 id=b"}, opStrings(ft.Tree())); diff != "" {
		t.Errorf("ops mismatch (-want +got):\n%s", diff)
	}
	if got := ft.Find(fibertest.ByTag("div")).First(); got != div {
		t.Errorf("div node replaced: got %s, want %s", got, div)
	}
	if ev := ft.LastCommit(); ev.Placements != 0 || ev.Deletions != 0 || ev.Updates != 2 {
		t.Errorf("commit = %+v, want 2 updates only", ev)
	}
}

func TestTypeChangeReplacesSubtree(t *testing.T) {
	ft := fibertest.NewTester()
	mount(t, ft, core.El("div", core.Props{"id": "a"}, "hi"))
	ft.Tree().ResetOps()

	mount(t, ft, core.El("span", core.Props{"id": "a"}, "hi"))

	want := []string{
		"create #4 span",
		"set #4 id=a",
		"create #5 #text",
		"set #5 nodeValue=hi",
		"detach #2 -> #1",
		"attach #4 -> #1",
		"attach #5 -> #4",
	}
	if diff := cmp.Diff(want, opStrings(ft.Tree())); diff != "" {
		t.Errorf("ops mismatch (-want +got):\n%s", diff)
	}
	if got, want := ft.Dump(), "root\n  span id=a\n    \"hi\"\n"; got != want {
		t.Errorf("Dump = %q, want %q", got, want)
	}
}

func list(n int) core.Element {
	items := make([]core.Element, n)
	for i := range items {
		items[i] = core.El("li", core.Props{"n": i}, fmt.Sprintf("item %d", i))
	}
	return core.El("ul", nil, items)
}

func TestListShrinkDeletesTailInOrder(t *testing.T) {
	ft := fibertest.NewTester()
	mount(t, ft, list(5))
	ft.Tree().ResetOps()

	mount(t, ft, list(2))

	ev := ft.LastCommit()
	if ev.Deletions != 3 {
		t.Fatalf("deletions = %d, want 3", ev.Deletions)
	}
	for i, effect := range ev.Effects[:3] {
		if effect.Tag != core.Deletion || effect.Props["n"] != i+2 {
			t.Errorf("effect %d = %v %v, want DELETION n=%d", i, effect.Tag, effect.Props, i+2)
		}
	}
	if ev.Updates != 5 || ev.Placements != 0 {
		t.Errorf("commit = %+v, want 5 updates (ul, two li, two text) and no placement", ev)
	}
	var kept []any
	for _, effect := range ev.Effects[3:] {
		if effect.Tag != core.Update {
			t.Errorf("effect %s %v after deletions, want UPDATE", effect.Tag, effect.Type)
		}
		if effect.Type == "li" {
			kept = append(kept, effect.Props["n"])
		}
	}
	if diff := cmp.Diff([]any{0, 1}, kept); diff != "" {
		t.Errorf("updated li positions mismatch (-want +got):\n%s", diff)
	}
	if got := ft.Tree().Count(host.OpDetach); got != 3 {
		t.Errorf("detach ops = %d, want 3", got)
	}
	if got := ft.Tree().Count(host.OpCreate); got != 0 {
		t.Errorf("create ops = %d, want 0", got)
	}
	ul := ft.Find(fibertest.ByTag("ul")).First()
	if len(ul.Children) != 2 || ul.Children[1].Text() != "item 1" {
		t.Errorf("ul children = %v", ul.Children)
	}
}

func TestListGrowAppends(t *testing.T) {
	ft := fibertest.NewTester()
	mount(t, ft, list(1))
	mount(t, ft, list(3))

	ev := ft.LastCommit()
	if ev.Placements != 4 || ev.Deletions != 0 {
		t.Errorf("commit = %+v, want 4 placements (two li, two text)", ev)
	}
	if got := ft.Find(fibertest.ByTag("li")).Count(); got != 3 {
		t.Errorf("li count = %d, want 3", got)
	}
}

func TestRemovingFirstOfTwoSameTypeReusesFirstNode(t *testing.T) {
	ft := fibertest.NewTester()
	mount(t, ft, core.El("ul", nil,
		core.El("li", core.Props{"id": "x"}),
		core.El("li", core.Props{"id": "y"}),
	))
	first := ft.Find(fibertest.ByTag("li")).At(0)
	second := ft.Find(fibertest.ByTag("li")).At(1)
	ft.Tree().ResetOps()

	mount(t, ft, core.El("ul", nil, core.El("li", core.Props{"id": "y"})))

	lis := ft.Find(fibertest.ByTag("li")).All()
	if len(lis) != 1 || lis[0] != first {
		t.Fatalf("remaining li = %v, want the first node", lis)
	}
	if got := first.Attr("id"); got != "y" {
		t.Errorf("first.id = %v, want y", got)
	}
	if second.Parent != nil {
		t.Errorf("second li still attached to %s", second.Parent)
	}
	want := []string{
		fmt.Sprintf("detach #%d -> #%d", second.ID, first.Parent.ID),
		fmt.Sprintf("set #%d id=y", first.ID),
	}
	if diff := cmp.Diff(want, opStrings(ft.Tree())); diff != "" {
		t.Errorf("ops mismatch (-want +got):\n%s", diff)
	}
}

// Placement appends to the parent, so a node replaced in the middle of a
// list ends up last among its siblings.
func TestPlacementAppendsAtEnd(t *testing.T) {
	ft := fibertest.NewTester()
	mount(t, ft, core.El("div", nil, core.El("li", nil), core.El("span", nil), core.El("li", nil)))

	mount(t, ft, core.El("div", nil, core.El("li", nil), core.El("p", nil), core.El("li", nil)))

	div := ft.Find(fibertest.ByTag("div")).First()
	var tags []string
	for _, c := range div.Children {
		tags = append(tags, c.Tag)
	}
	if diff := cmp.Diff([]string{"li", "li", "p"}, tags); diff != "" {
		t.Errorf("host order mismatch (-want +got):\n%s", diff)
	}
}

func TestComponentDeletionDetachesDescendants(t *testing.T) {
	inner := core.Component("Inner", func(ctx *core.RenderContext, props core.Props) core.Element {
		return core.El("div", core.Props{"id": "inner"}, "x")
	})
	outer := core.Component("Outer", func(ctx *core.RenderContext, props core.Props) core.Element {
		return core.El(inner, nil)
	})

	ft := fibertest.NewTester()
	mount(t, ft, core.El("section", nil, core.El(outer, nil), core.El("p", nil)))
	div := ft.Find(fibertest.ByTag("div")).First()
	section := div.Parent
	ft.Tree().ResetOps()

	mount(t, ft, core.El("section", nil))

	if len(section.Children) != 0 {
		t.Fatalf("section children = %v, want none", section.Children)
	}
	want := []string{
		fmt.Sprintf("detach #%d -> #%d", div.ID, section.ID),
		fmt.Sprintf("detach #%d -> #%d", div.ID+2, section.ID),
	}
	if diff := cmp.Diff(want, opStrings(ft.Tree())); diff != "" {
		t.Errorf("ops mismatch (-want +got):\n%s", diff)
	}
	if ev := ft.LastCommit(); ev.Deletions != 2 || ev.Effects[0].Type != "Outer" || ev.Effects[0].Node != nil {
		t.Errorf("commit = %+v, want Outer and p deleted", ev)
	}
}

func TestZeroElementUnmounts(t *testing.T) {
	ft := fibertest.NewTester()
	mount(t, ft, core.El("div", nil, "a"))

	mount(t, ft, core.Element{})

	if len(ft.Container().Children) != 0 {
		t.Errorf("container children = %v, want none", ft.Container().Children)
	}
	if got := ft.Root().DebugString(); got != "root\n" {
		t.Errorf("DebugString = %q, want root only", got)
	}
}

func TestListenersRebindEveryRender(t *testing.T) {
	handler := func() {}
	ft := fibertest.NewTester()
	mount(t, ft, core.El("button", core.Props{"onClick": handler}))
	ft.Tree().ResetOps()

	mount(t, ft, core.El("button", core.Props{"onClick": handler}))

	want := []string{"unlisten #2 click", "listen #2 click"}
	if diff := cmp.Diff(want, opStrings(ft.Tree())); diff != "" {
		t.Errorf("ops mismatch (-want +got):\n%s", diff)
	}
}

func TestChildrenNeverReachHost(t *testing.T) {
	ft := fibertest.NewTester()
	mount(t, ft, core.El("div", core.Props{core.ChildrenKey: "bogus", "title": "t"}, "x"))

	div := ft.Find(fibertest.ByTag("div")).First()
	if _, ok := div.Attrs[core.ChildrenKey]; ok {
		t.Error("children prop applied as attribute")
	}
	if div.Attr("title") != "t" {
		t.Errorf("title = %v, want t", div.Attr("title"))
	}
}

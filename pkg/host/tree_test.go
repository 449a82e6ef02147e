package host

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/fiber/pkg/core"
	"github.com/go-drift/fiber/pkg/errors"
)

func TestTreeMutations(t *testing.T) {
	tree := New()
	root := tree.NewContainer("root")

	div := tree.CreateNode("div").(*Node)
	text := tree.CreateTextNode().(*Node)
	tree.SetAttribute(div, "id", "a")
	tree.SetAttribute(text, core.NodeValueKey, "hello")
	tree.AppendChild(div, text)
	tree.AppendChild(root, div)

	want := "root\n  div id=a\n    \"hello\"\n"
	if diff := cmp.Diff(want, Dump(root)); diff != "" {
		t.Errorf("Dump mismatch (-want +got):\n%s", diff)
	}
	if got := root.Text(); got != "hello" {
		t.Errorf("Text() = %q, want %q", got, "hello")
	}

	tree.ClearAttribute(div, "id")
	tree.ClearAttribute(text, core.NodeValueKey)
	if _, ok := div.Attrs["id"]; ok {
		t.Error("expected id to be removed")
	}
	if got := text.Text(); got != "" {
		t.Errorf("text after clear = %q, want empty", got)
	}

	tree.RemoveChild(root, div)
	if len(root.Children) != 0 || div.Parent != nil {
		t.Error("expected div to be detached")
	}
}

func TestTreeJournal(t *testing.T) {
	tree := New()
	root := tree.NewContainer("root")
	n := tree.CreateNode("p")
	tree.AppendChild(root, n)
	tree.AddEventListener(n, "click", func() {})
	tree.RemoveEventListener(n, "click", nil)

	got := make([]string, 0, len(tree.Ops()))
	for _, op := range tree.Ops() {
		got = append(got, op.String())
	}
	want := []string{
		"create #2 p",
		"attach #2 -> #1",
		"listen #2 click",
		"unlisten #2 click",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("journal mismatch (-want +got):\n%s", diff)
	}
	if got := tree.Count(OpAttach); got != 1 {
		t.Errorf("Count(OpAttach) = %d, want 1", got)
	}

	tree.ResetOps()
	if len(tree.Ops()) != 0 {
		t.Error("expected empty journal after ResetOps")
	}
}

func TestAppendChildMoves(t *testing.T) {
	tree := New()
	a := tree.NewContainer("a")
	b := tree.NewContainer("b")
	n := tree.CreateNode("span").(*Node)

	tree.AppendChild(a, n)
	tree.AppendChild(b, n)

	if len(a.Children) != 0 {
		t.Error("expected node to leave its previous parent")
	}
	if n.Parent != b {
		t.Error("expected node to be attached to b")
	}
}

func TestRemoveChildNotAChildPanics(t *testing.T) {
	tree := New()
	root := tree.NewContainer("root")
	stray := tree.CreateNode("div")

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrNotAChild) {
			t.Fatalf("recovered %v, want ErrNotAChild", r)
		}
	}()
	tree.RemoveChild(root, stray)
}

func TestDispatch(t *testing.T) {
	tree := New()
	n := tree.CreateNode("button").(*Node)

	var calls []string
	tree.AddEventListener(n, "click", func() { calls = append(calls, "click") })
	tree.AddEventListener(n, "input", func(e Event) { calls = append(calls, e.Type+":"+e.Payload.(string)) })
	tree.AddEventListener(n, "change", func(v any) { calls = append(calls, "change:"+v.(string)) })

	if !Dispatch(n, "click", nil) {
		t.Error("expected click listener")
	}
	Dispatch(n, "input", "x")
	Dispatch(n, "change", "y")
	if Dispatch(n, "keydown", nil) {
		t.Error("expected no keydown listener")
	}

	want := []string{"click", "input:x", "change:y"}
	if diff := cmp.Diff(want, calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestFind(t *testing.T) {
	tree := New()
	root := tree.NewContainer("root")
	for _, tag := range []string{"li", "p", "li"} {
		tree.AppendChild(root, tree.CreateNode(tag))
	}

	got := Find(root, func(n *Node) bool { return n.Tag == "li" })
	if len(got) != 2 {
		t.Fatalf("found %d li nodes, want 2", len(got))
	}
	if got[0].ID >= got[1].ID {
		t.Error("expected pre-order results")
	}
}

// Package host provides an in-memory host tree for core.Root.
//
// Tree records every mutation in a journal, which makes it the host of
// choice for tests, and renders itself as indented text for the demo CLI.
package host

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/go-drift/fiber/pkg/core"
	"github.com/go-drift/fiber/pkg/errors"
)

// TextTag is the Tag of text nodes.
const TextTag = "#text"

// ErrNotAChild is the cause of the invariant panic raised when a node is
// detached from a parent it is not attached to.
var ErrNotAChild = errors.New("node is not a child of parent")

// Node is a node of a Tree.
type Node struct {
	ID        int
	Tag       string
	Attrs     map[string]any
	Listeners map[string]any
	Children  []*Node
	Parent    *Node
}

// IsText reports whether n is a text node.
func (n *Node) IsText() bool {
	return n.Tag == TextTag
}

// Attr returns the attribute value for key, or nil.
func (n *Node) Attr(key string) any {
	return n.Attrs[key]
}

// Text returns the concatenated content of the text nodes under n.
func (n *Node) Text() string {
	if n.IsText() {
		s, _ := n.Attrs[core.NodeValueKey].(string)
		return s
	}
	var sb strings.Builder
	for _, c := range n.Children {
		sb.WriteString(c.Text())
	}
	return sb.String()
}

func (n *Node) String() string {
	if n.IsText() {
		return fmt.Sprintf("%q", n.Text())
	}
	return fmt.Sprintf("<%s #%d>", n.Tag, n.ID)
}

// Tree is an in-memory implementation of core.Host. It is not safe for
// concurrent use.
type Tree struct {
	nextID int
	ops    []Op
}

var _ core.Host = (*Tree)(nil)

// New returns an empty Tree.
func New() *Tree {
	return &Tree{}
}

// NewContainer creates a detached node to render into. It is not journaled.
func (t *Tree) NewContainer(tag string) *Node {
	return t.newNode(tag)
}

func (t *Tree) newNode(tag string) *Node {
	t.nextID++
	return &Node{
		ID:        t.nextID,
		Tag:       tag,
		Attrs:     map[string]any{},
		Listeners: map[string]any{},
	}
}

// CreateNode implements core.Host.
func (t *Tree) CreateNode(tag string) core.HostNode {
	n := t.newNode(tag)
	t.record(Op{Kind: OpCreate, Node: n.ID, Key: tag})
	return n
}

// CreateTextNode implements core.Host.
func (t *Tree) CreateTextNode() core.HostNode {
	n := t.newNode(TextTag)
	t.record(Op{Kind: OpCreate, Node: n.ID, Key: TextTag})
	return n
}

// SetAttribute implements core.Host.
func (t *Tree) SetAttribute(node core.HostNode, key string, value any) {
	n := asNode(node)
	n.Attrs[key] = value
	t.record(Op{Kind: OpSet, Node: n.ID, Key: key, Value: value})
}

// ClearAttribute implements core.Host. The text of a text node is reset to
// the empty string; other attributes are removed.
func (t *Tree) ClearAttribute(node core.HostNode, key string) {
	n := asNode(node)
	if n.IsText() && key == core.NodeValueKey {
		n.Attrs[key] = ""
	} else {
		delete(n.Attrs, key)
	}
	t.record(Op{Kind: OpClear, Node: n.ID, Key: key})
}

// AddEventListener implements core.Host. A node holds at most one listener
// per event.
func (t *Tree) AddEventListener(node core.HostNode, event string, handler any) {
	n := asNode(node)
	n.Listeners[event] = handler
	t.record(Op{Kind: OpListen, Node: n.ID, Key: event})
}

// RemoveEventListener implements core.Host.
func (t *Tree) RemoveEventListener(node core.HostNode, event string, handler any) {
	n := asNode(node)
	delete(n.Listeners, event)
	t.record(Op{Kind: OpUnlisten, Node: n.ID, Key: event})
}

// AppendChild implements core.Host. A child attached elsewhere is moved.
func (t *Tree) AppendChild(parent, child core.HostNode) {
	p, c := asNode(parent), asNode(child)
	if c.Parent != nil {
		c.Parent.removeChild(c)
	}
	p.Children = append(p.Children, c)
	c.Parent = p
	t.record(Op{Kind: OpAttach, Node: c.ID, Target: p.ID})
}

// RemoveChild implements core.Host.
func (t *Tree) RemoveChild(parent, child core.HostNode) {
	p, c := asNode(parent), asNode(child)
	if c.Parent != p || !p.removeChild(c) {
		errors.Invariant("host.RemoveChild", ErrNotAChild, "%s from %s", c, p)
	}
	t.record(Op{Kind: OpDetach, Node: c.ID, Target: p.ID})
}

func (n *Node) removeChild(c *Node) bool {
	i := slices.Index(n.Children, c)
	if i < 0 {
		return false
	}
	n.Children = slices.Delete(n.Children, i, i+1)
	c.Parent = nil
	return true
}

func asNode(node core.HostNode) *Node {
	n, ok := node.(*Node)
	if !ok || n == nil {
		panic(fmt.Sprintf("host: %T is not a *host.Node", node))
	}
	return n
}

// Dump renders the subtree under n as indented text, one node per line.
// Attributes are sorted by name; listeners are listed as on:<event>.
func Dump(n *Node) string {
	var sb strings.Builder
	dump(&sb, n, 0)
	return sb.String()
}

// Lines is Dump split into lines.
func Lines(n *Node) []string {
	return strings.Split(strings.TrimSuffix(Dump(n), "\n"), "\n")
}

func dump(sb *strings.Builder, n *Node, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	if n.IsText() {
		fmt.Fprintf(sb, "%q\n", n.Text())
		return
	}
	sb.WriteString(n.Tag)
	for _, key := range slices.Sorted(maps.Keys(n.Attrs)) {
		fmt.Fprintf(sb, " %s=%v", key, n.Attrs[key])
	}
	for _, event := range slices.Sorted(maps.Keys(n.Listeners)) {
		fmt.Fprintf(sb, " on:%s", event)
	}
	sb.WriteString("\n")
	for _, c := range n.Children {
		dump(sb, c, depth+1)
	}
}

// Find returns the nodes under root (root included) that satisfy pred, in
// pre-order.
func Find(root *Node, pred func(*Node) bool) []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(n *Node) {
		if pred(n) {
			out = append(out, n)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root)
	return out
}

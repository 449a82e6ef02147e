package testing

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-drift/fiber/pkg/host"
)

// Finder locates nodes in the host tree.
type Finder interface {
	// Evaluate returns all matching nodes under root (depth-first pre-order).
	Evaluate(root *host.Node) []*host.Node
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	nodes  []*host.Node
	finder Finder
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() *host.Node {
	if len(r.nodes) == 0 {
		panic(fmt.Sprintf("Finder found no nodes: %s", r.description()))
	}
	return r.nodes[0]
}

// FirstOrNil returns the first match, or nil if none.
func (r FinderResult) FirstOrNil() *host.Node {
	if len(r.nodes) == 0 {
		return nil
	}
	return r.nodes[0]
}

// At returns the match at index. Panics if out of range.
func (r FinderResult) At(index int) *host.Node {
	if index < 0 || index >= len(r.nodes) {
		panic(fmt.Sprintf("Finder index %d out of range (found %d): %s", index, len(r.nodes), r.description()))
	}
	return r.nodes[index]
}

// All returns all matches in traversal order.
func (r FinderResult) All() []*host.Node {
	return r.nodes
}

// Count returns the number of matches.
func (r FinderResult) Count() int {
	return len(r.nodes)
}

// Exists returns true if at least one match was found.
func (r FinderResult) Exists() bool {
	return len(r.nodes) > 0
}

func (r FinderResult) description() string {
	if r.finder == nil {
		return "unknown"
	}
	return r.finder.Description()
}

// predicateFinder matches nodes satisfying a predicate.
type predicateFinder struct {
	fn   func(*host.Node) bool
	desc string
}

func (f *predicateFinder) Evaluate(root *host.Node) []*host.Node {
	return host.Find(root, f.fn)
}

func (f *predicateFinder) Description() string {
	return f.desc
}

// ByTag returns a finder that matches nodes with the given tag.
func ByTag(tag string) Finder {
	return &predicateFinder{
		fn:   func(n *host.Node) bool { return n.Tag == tag },
		desc: fmt.Sprintf("ByTag(%q)", tag),
	}
}

// ByAttr returns a finder that matches nodes whose attribute key equals value.
func ByAttr(key string, value any) Finder {
	return &predicateFinder{
		fn: func(n *host.Node) bool {
			v, ok := n.Attrs[key]
			return ok && reflect.DeepEqual(v, value)
		},
		desc: fmt.Sprintf("ByAttr(%s=%v)", key, value),
	}
}

// ByText returns a finder that matches element nodes with a direct text
// child of exactly text.
func ByText(text string) Finder {
	return &predicateFinder{
		fn: func(n *host.Node) bool {
			return !n.IsText() && directText(n) == text
		},
		desc: fmt.Sprintf("ByText(%q)", text),
	}
}

// ByTextContaining returns a finder that matches element nodes whose direct
// text children contain substring.
func ByTextContaining(substring string) Finder {
	return &predicateFinder{
		fn: func(n *host.Node) bool {
			return !n.IsText() && hasTextChild(n) && strings.Contains(directText(n), substring)
		},
		desc: fmt.Sprintf("ByTextContaining(%q)", substring),
	}
}

// ByPredicate returns a finder using a custom predicate.
func ByPredicate(desc string, fn func(*host.Node) bool) Finder {
	return &predicateFinder{fn: fn, desc: desc}
}

func directText(n *host.Node) string {
	var sb strings.Builder
	for _, c := range n.Children {
		if c.IsText() {
			sb.WriteString(c.Text())
		}
	}
	return sb.String()
}

func hasTextChild(n *host.Node) bool {
	for _, c := range n.Children {
		if c.IsText() {
			return true
		}
	}
	return false
}

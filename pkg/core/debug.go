package core

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// FiberInfo describes one fiber of the committed tree.
type FiberInfo struct {
	Depth int
	// Type is the tag or component name; "root" for the root fiber.
	Type     string
	Props    Props
	HostNode HostNode
	// Hooks is the number of hook cells of a component fiber.
	Hooks int
}

// Walk visits the committed tree in pre-order, starting with the root
// fiber, until visit returns false.
func (r *Root) Walk(visit func(FiberInfo) bool) {
	if r.current == noFiber {
		return
	}
	depth := 0
	for id := r.current; id != noFiber; {
		f := r.cur.at(id)
		info := FiberInfo{
			Depth:    depth,
			Type:     typeName(f.typ),
			Props:    f.props,
			HostNode: f.hostNode,
			Hooks:    len(f.hooks),
		}
		if !visit(info) {
			return
		}
		// Track depth along the same pre-order walk used by the work loop.
		if f.child != noFiber {
			depth++
			id = f.child
			continue
		}
		for id != noFiber && id != r.current {
			g := r.cur.at(id)
			if g.sibling != noFiber {
				id = g.sibling
				break
			}
			id = g.parent
			depth--
		}
		if id == r.current {
			return
		}
	}
}

// DebugString renders the committed fiber tree, one fiber per line.
func (r *Root) DebugString() string {
	var sb strings.Builder
	r.Walk(func(info FiberInfo) bool {
		sb.WriteString(strings.Repeat("  ", info.Depth))
		sb.WriteString(info.Type)
		for _, key := range slices.Sorted(maps.Keys(info.Props)) {
			if isEvent(key) {
				fmt.Fprintf(&sb, " %s=<func>", key)
				continue
			}
			fmt.Fprintf(&sb, " %s=%v", key, info.Props[key])
		}
		if info.Hooks > 0 {
			fmt.Fprintf(&sb, " hooks=%d", info.Hooks)
		}
		sb.WriteString("\n")
		return true
	})
	return sb.String()
}

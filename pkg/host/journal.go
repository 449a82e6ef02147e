package host

import "fmt"

// OpKind identifies a host mutation.
type OpKind int

const (
	OpCreate OpKind = iota
	OpSet
	OpClear
	OpListen
	OpUnlisten
	OpAttach
	OpDetach
)

func (k OpKind) String() string {
	switch k {
	case OpCreate:
		return "create"
	case OpSet:
		return "set"
	case OpClear:
		return "clear"
	case OpListen:
		return "listen"
	case OpUnlisten:
		return "unlisten"
	case OpAttach:
		return "attach"
	case OpDetach:
		return "detach"
	default:
		return fmt.Sprintf("OpKind(%d)", int(k))
	}
}

// Op is one journaled mutation. Target is the parent for attach and detach.
type Op struct {
	Kind   OpKind
	Node   int
	Target int
	Key    string
	Value  any
}

func (o Op) String() string {
	switch o.Kind {
	case OpCreate:
		return fmt.Sprintf("create #%d %s", o.Node, o.Key)
	case OpSet:
		return fmt.Sprintf("set #%d %s=%v", o.Node, o.Key, o.Value)
	case OpClear, OpListen, OpUnlisten:
		return fmt.Sprintf("%s #%d %s", o.Kind, o.Node, o.Key)
	default:
		return fmt.Sprintf("%s #%d -> #%d", o.Kind, o.Node, o.Target)
	}
}

func (t *Tree) record(op Op) {
	t.ops = append(t.ops, op)
}

// Ops returns the journal since the last ResetOps.
func (t *Tree) Ops() []Op {
	return t.ops
}

// ResetOps clears the journal.
func (t *Tree) ResetOps() {
	t.ops = nil
}

// Count returns the number of journaled ops of kind.
func (t *Tree) Count(kind OpKind) int {
	n := 0
	for _, op := range t.ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

package core

import "fmt"

// EffectTag is the host mutation a fiber requires at commit.
type EffectTag uint8

const (
	// NoEffect means the fiber needs no host mutation.
	NoEffect EffectTag = iota
	// Placement attaches a new host node.
	Placement
	// Update patches the props of a reused host node.
	Update
	// Deletion detaches the host nodes of a fiber from the previous tree.
	Deletion
)

func (t EffectTag) String() string {
	switch t {
	case NoEffect:
		return "none"
	case Placement:
		return "PLACEMENT"
	case Update:
		return "UPDATE"
	case Deletion:
		return "DELETION"
	default:
		return fmt.Sprintf("EffectTag(%d)", int(t))
	}
}

// fiberID indexes a fiberTable.
type fiberID int32

const noFiber fiberID = -1

// fiber is the unit of scheduling and diffing. parent, child and sibling
// index the table holding the fiber; alternate indexes the committed table.
type fiber struct {
	typ       ElementType // nil for the root fiber
	hostNode  HostNode
	props     Props
	children  []Element
	alternate fiberID
	parent    fiberID
	child     fiberID
	sibling   fiberID
	effect    EffectTag
	hooks     []*hookCell
}

// fiberTable is a growable arena of fibers. Pointers returned by at are
// valid only until the next alloc.
type fiberTable struct {
	fibers []fiber
}

func (t *fiberTable) alloc(f fiber) fiberID {
	t.fibers = append(t.fibers, f)
	return fiberID(len(t.fibers) - 1)
}

func (t *fiberTable) at(id fiberID) *fiber {
	return &t.fibers[id]
}

func (t *fiberTable) len() int {
	return len(t.fibers)
}

// reset drops every fiber while keeping the backing storage.
func (t *fiberTable) reset() {
	clear(t.fibers)
	t.fibers = t.fibers[:0]
}

// next returns the fiber after id in pre-order: the first child, else the
// next sibling of id or of its closest ancestor below stop.
func (t *fiberTable) next(id, stop fiberID) fiberID {
	if child := t.at(id).child; child != noFiber {
		return child
	}
	for id != noFiber && id != stop {
		f := t.at(id)
		if f.sibling != noFiber {
			return f.sibling
		}
		id = f.parent
	}
	return noFiber
}

// newFiber returns a detached fiber with no links.
func newFiber(typ ElementType, props Props, children []Element) fiber {
	return fiber{
		typ:       typ,
		props:     props,
		children:  children,
		alternate: noFiber,
		parent:    noFiber,
		child:     noFiber,
		sibling:   noFiber,
	}
}

package core

// reconcileChildren builds the child list of the work-in-progress fiber wip
// from elements, walking the alternate's children in lockstep by index.
//
// A matching type at the same index yields an Update fiber that keeps the
// previous host node. A new element without a match yields a Placement
// fiber. A previous fiber without a match is tagged Deletion and queued on
// r.deletions; it has no counterpart in the new list.
func (r *Root) reconcileChildren(wip fiberID, elements []Element) {
	old := noFiber
	if alt := r.wip.at(wip).alternate; alt != noFiber {
		old = r.cur.at(alt).child
	}

	prev := noFiber
	for i := 0; i < len(elements) || old != noFiber; i++ {
		var el *Element
		if i < len(elements) {
			el = &elements[i]
		}
		var oldFiber *fiber
		if old != noFiber {
			oldFiber = r.cur.at(old)
		}
		sameType := el != nil && oldFiber != nil && el.Type == oldFiber.typ

		created := noFiber
		switch {
		case sameType:
			f := newFiber(oldFiber.typ, el.Props, el.Children)
			f.hostNode = oldFiber.hostNode
			f.alternate = old
			f.parent = wip
			f.effect = Update
			created = r.wip.alloc(f)
		case el != nil:
			f := newFiber(el.Type, el.Props, el.Children)
			f.parent = wip
			f.effect = Placement
			created = r.wip.alloc(f)
		}
		if oldFiber != nil && !sameType {
			oldFiber.effect = Deletion
			r.deletions = append(r.deletions, old)
		}

		if oldFiber != nil {
			old = oldFiber.sibling
		}
		if created == noFiber {
			continue
		}
		if prev == noFiber {
			r.wip.at(wip).child = created
		} else {
			r.wip.at(prev).sibling = created
		}
		prev = created
	}
}

package core

import (
	"time"

	"github.com/go-drift/fiber/pkg/errors"
)

// commitRoot applies the finished work-in-progress tree to the host:
// pending deletions first, in the order they were queued, then every fiber
// of the new tree in pre-order. The new tree then becomes the committed one.
func (r *Root) commitRoot() {
	start := time.Now()
	var ev CommitEvent
	record := len(r.observers) > 0

	for _, id := range r.deletions {
		f := r.cur.at(id)
		r.commitDeletion(id, r.hostParent(r.cur, id))
		f.effect = NoEffect
		ev.Deletions++
		if record {
			ev.Effects = append(ev.Effects, Effect{Tag: Deletion, Type: typeName(f.typ), Node: f.hostNode, Props: f.props})
		}
	}

	for id := r.wip.at(r.wipRoot).child; id != noFiber; id = r.wip.next(id, r.wipRoot) {
		tag := r.commitWork(id)
		switch tag {
		case Placement:
			ev.Placements++
		case Update:
			ev.Updates++
		}
		if record && tag != NoEffect {
			f := r.wip.at(id)
			ev.Effects = append(ev.Effects, Effect{Tag: tag, Type: typeName(f.typ), Node: f.hostNode, Props: f.props})
		}
	}
	r.wip.at(r.wipRoot).alternate = noFiber

	r.cur, r.wip = r.wip, r.cur
	r.current = r.wipRoot
	r.wipRoot = noFiber
	r.deletions = r.deletions[:0]
	r.wip.reset()

	r.stats.Commits++
	r.stats.Placements += ev.Placements
	r.stats.Updates += ev.Updates
	r.stats.Deletions += ev.Deletions
	ev.Duration = time.Since(start)
	r.logger.Debug("commit",
		"placements", ev.Placements,
		"updates", ev.Updates,
		"deletions", ev.Deletions,
		"fibers", r.cur.len(),
		"duration", ev.Duration,
	)
	for _, o := range r.observers {
		o.ObserveCommit(ev)
	}
}

// commitWork applies the effect of one work-in-progress fiber and returns
// its tag. The tag and the alternate link are consumed. Deletions never
// appear in the new tree; they are committed from r.deletions.
func (r *Root) commitWork(id fiberID) EffectTag {
	f := r.wip.at(id)
	tag := f.effect
	switch tag {
	case Placement:
		if f.hostNode != nil {
			r.host.AppendChild(r.hostParent(r.wip, id), f.hostNode)
		}
	case Update:
		if f.hostNode != nil {
			applyProps(r.host, f.hostNode, r.cur.at(f.alternate).props, f.props)
		}
	}
	f.effect = NoEffect
	f.alternate = noFiber
	return tag
}

// commitDeletion detaches the host nodes of the committed fiber id from
// hostParent. A fiber without a host node (a component) is removed by
// detaching each of its nearest host-bearing descendants.
func (r *Root) commitDeletion(id fiberID, hostParent HostNode) {
	f := r.cur.at(id)
	if f.hostNode != nil {
		r.host.RemoveChild(hostParent, f.hostNode)
		return
	}
	for child := f.child; child != noFiber; child = r.cur.at(child).sibling {
		r.commitDeletion(child, hostParent)
	}
}

// hostParent returns the host node of the closest ancestor of id that has
// one. The root fiber always owns the container, so a miss is an invariant
// violation.
func (r *Root) hostParent(t *fiberTable, id fiberID) HostNode {
	for p := t.at(id).parent; p != noFiber; p = t.at(p).parent {
		if node := t.at(p).hostNode; node != nil {
			return node
		}
	}
	errors.Invariant("core.hostParent", errors.ErrNoHostParent, "fiber %s", typeName(t.at(id).typ))
	return nil
}

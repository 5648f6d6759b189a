package loom

// Links the given dependency under the subscriber currently being
// tracked. Idempotent within one evaluation pass: a repeat read of the
// same dependency is detected via the depsTail fast path, the resumable
// nextDep slot left over from the previous pass, or the pass version
// stamped on the dependency's tail subscriber edge.
func (rs *ReactiveSystem) link(dep, sub *node) {
	prevDep := sub.depsTail
	if prevDep != nil && prevDep.dep == dep {
		return
	}

	var nextDep *edge
	recursedCheck := sub.flags&fRecursedCheck != 0
	if recursedCheck {
		if prevDep != nil {
			nextDep = prevDep.nextDep
		} else {
			nextDep = sub.deps
		}
		if nextDep != nil && nextDep.dep == dep {
			nextDep.version = sub.version
			sub.depsTail = nextDep
			return
		}
	}

	prevSub := dep.subsTail
	if prevSub != nil && prevSub.sub == sub &&
		(!recursedCheck || prevSub.version == sub.version) {
		return
	}

	newLink := &edge{
		version: sub.version,
		dep:     dep,
		sub:     sub,
		prevDep: prevDep,
		nextDep: nextDep,
		prevSub: prevSub,
	}
	sub.depsTail = newLink
	dep.subsTail = newLink
	if nextDep != nil {
		nextDep.prevDep = newLink
	}
	if prevDep != nil {
		prevDep.nextDep = newLink
	} else {
		sub.deps = newLink
	}
	if prevSub != nil {
		prevSub.nextSub = newLink
	} else {
		dep.subs = newLink
	}
}

// Removes the edge from both endpoint lists in O(1). If the dependency
// just lost its last subscriber, the unwatched hook fires (tearing down
// now-unobserved derivations, unsubscribing bridge cells, disposing
// scope-held reactions). Returns the next edge in the subscriber's
// dependency list so callers can unlink while iterating.
func (rs *ReactiveSystem) unlink(l *edge, sub *node) *edge {
	dep := l.dep
	prevDep := l.prevDep
	nextDep := l.nextDep
	prevSub := l.prevSub
	nextSub := l.nextSub

	if nextDep != nil {
		nextDep.prevDep = prevDep
	} else {
		sub.depsTail = prevDep
	}
	if prevDep != nil {
		prevDep.nextDep = nextDep
	} else {
		sub.deps = nextDep
	}

	if nextSub != nil {
		nextSub.prevSub = prevSub
	} else {
		dep.subsTail = prevSub
	}
	if prevSub != nil {
		prevSub.nextSub = nextSub
	} else if dep.subs = nextSub; dep.subs == nil {
		rs.unwatched(dep)
	}

	return nextDep
}

// Verifies the edge is still part of the subscriber's current
// dependency list, scanning from deps to depsTail.
func (rs *ReactiveSystem) isValidLink(checkLink *edge, sub *node) bool {
	depsTail := sub.depsTail
	if depsTail != nil {
		l := sub.deps
		for l != nil {
			if l == checkLink {
				return true
			}
			if l == depsTail {
				break
			}
			l = l.nextDep
		}
	}
	return false
}

// Walks outward through subscriber edges after a write, marking
// transitively reachable mutable nodes pending and handing watching
// nodes to the scheduler. Iterative with an explicit stack so deep
// graphs cannot exhaust the call stack. Nothing is recomputed here;
// the pull side resolves the "maybe stale" frontier on demand.
func (rs *ReactiveSystem) propagate(l *edge) {
	next := l.nextSub
	var stack *edgeStack

top:
	for {
		sub := l.sub
		flags := sub.flags

		if flags&(fMutable|fWatching) != 0 {
			switch {
			case flags&(fRecursedCheck|fRecursed|fDirty|fPending) == 0:
				sub.flags = flags | fPending
			case flags&(fRecursedCheck|fRecursed) == 0:
				flags = 0
			case flags&fRecursedCheck == 0:
				sub.flags = flags&^fRecursed | fPending
			case flags&(fDirty|fPending) == 0 && rs.isValidLink(l, sub):
				sub.flags = flags | fRecursed | fPending
				flags &= fMutable
			default:
				flags = 0
			}

			if flags&fWatching != 0 {
				rs.notify(sub)
			}

			if flags&fMutable != 0 {
				subSubs := sub.subs
				if subSubs != nil {
					l = subSubs
					if subSubs.nextSub != nil {
						stack = &edgeStack{value: next, prev: stack}
						next = l.nextSub
					}
					continue
				}
			}
		}

		if l = next; l != nil {
			next = l.nextSub
			continue
		}

		for stack != nil {
			l = stack.value
			stack = stack.prev
			if l != nil {
				next = l.nextSub
				continue top
			}
		}
		break
	}
}

// Quick pass over a node's direct subscribers after its value actually
// changed: pending subscribers become dirty, watchers get scheduled.
func (rs *ReactiveSystem) shallowPropagate(l *edge) {
	for ; l != nil; l = l.nextSub {
		sub := l.sub
		flags := sub.flags
		if flags&(fDirty|fPending) == fPending {
			sub.flags = flags | fDirty
			if flags&fWatching != 0 {
				rs.notify(sub)
			}
		}
	}
}

// Resolves a pending node on read: walks its dependency chain depth
// first with an explicit stack, recomputing any still-dirty mutable
// ancestor bottom-up, and reports whether the queried node actually
// changed. The push side only marked "maybe"; this is the "actually".
func (rs *ReactiveSystem) checkDirty(l *edge, sub *node) bool {
	var stack *edgeStack
	checkDepth := 0
	dirty := false

top:
	for {
		dirty = false
		dep := l.dep
		depFlags := dep.flags

		if sub.flags&fDirty != 0 {
			dirty = true
		} else if depFlags&(fMutable|fDirty) == fMutable|fDirty {
			if rs.update(dep) {
				if subs := dep.subs; subs.nextSub != nil {
					rs.shallowPropagate(subs)
				}
				dirty = true
			}
		} else if depFlags&(fMutable|fPending) == fMutable|fPending {
			if l.nextSub != nil || l.prevSub != nil {
				stack = &edgeStack{value: l, prev: stack}
			}
			l = dep.deps
			sub = dep
			checkDepth++
			continue
		}

		if !dirty && l.nextDep != nil {
			l = l.nextDep
			continue
		}

		for checkDepth > 0 {
			checkDepth--
			firstSub := sub.subs
			hasMultipleSubs := firstSub.nextSub != nil
			if hasMultipleSubs {
				l = stack.value
				stack = stack.prev
			} else {
				l = firstSub
			}
			if dirty {
				if rs.update(sub) {
					if hasMultipleSubs {
						rs.shallowPropagate(firstSub)
					}
					sub = l.sub
					continue
				}
			} else {
				sub.flags &^= fPending
			}
			sub = l.sub
			if l.nextDep != nil {
				l = l.nextDep
				continue top
			}
			dirty = false
		}

		return dirty
	}
}

// Prepares the subscriber for a fresh evaluation pass: bumps the global
// pass counter, rewinds depsTail so edges are reused in read order, and
// arms the re-entrancy guard.
func (rs *ReactiveSystem) startTracking(sub *node) {
	rs.version++
	sub.version = rs.version
	sub.depsTail = nil
	sub.flags = sub.flags&^(fRecursed|fDirty|fPending) | fRecursedCheck
}

// Concludes an evaluation pass: every edge past depsTail was not read
// this time and is pruned, then the re-entrancy guard drops.
func (rs *ReactiveSystem) endTracking(sub *node) {
	var toRemove *edge
	if sub.depsTail != nil {
		toRemove = sub.depsTail.nextDep
	} else {
		toRemove = sub.deps
	}
	for toRemove != nil {
		toRemove = rs.unlink(toRemove, sub)
	}
	sub.flags &^= fRecursedCheck
}

// Recomputes a mutable node through its typed wrapper, reporting
// whether the value changed.
func (rs *ReactiveSystem) update(n *node) bool {
	r, ok := n.ref.(refresher)
	if !ok {
		panic("loom: update on a non-mutable node")
	}
	return r.refresh()
}

// Fires when a dependency transitions from having subscribers to
// having none. Plain cells outlive observation, so they simply ignore
// the hook.
func (rs *ReactiveSystem) unwatched(n *node) {
	if u, ok := n.ref.(unwatcher); ok {
		u.onUnwatched()
	}
}

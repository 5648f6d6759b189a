package loom

// Schedules a watching node. Reactions nested inside a scope redirect
// to the scope: the scope is the unit of scheduling, and its children
// run when the scope is drained.
func (rs *ReactiveSystem) notify(sub *node) {
	flags := sub.flags
	if flags&fQueued == 0 {
		sub.flags = flags | fQueued
		if sub.subs != nil {
			rs.notify(sub.subs.sub)
		} else {
			rs.queued = append(rs.queued, sub)
		}
	}
}

// Drains the FIFO queue. Slots are tombstoned as they are read so a
// disposal arriving mid-drain never shifts indices; a disposed node
// left in the queue runs as a no-op because its flags were cleared.
func (rs *ReactiveSystem) flush() {
	for rs.notifyIndex < len(rs.queued) {
		sub := rs.queued[rs.notifyIndex]
		rs.queued[rs.notifyIndex] = nil
		rs.notifyIndex++
		if sub != nil {
			sub.flags &^= fQueued
			rs.run(sub, sub.flags)
		}
	}
	rs.notifyIndex = 0
	rs.queued = rs.queued[:0]
}

// Re-executes a dequeued watcher if it is actually stale, otherwise
// clears the pending mark and recurses into any of its own
// dependencies that were independently queued, so scope children
// complete before control returns to the flush loop.
func (rs *ReactiveSystem) run(sub *node, flags nodeFlags) {
	if flags&fDirty != 0 ||
		(flags&fPending != 0 && sub.deps != nil && rs.checkDirty(sub.deps, sub)) {
		if r, ok := sub.ref.(*ReactionRunner); ok {
			rs.runReaction(r)
			return
		}
		sub.flags = flags &^ (fDirty | fPending)
	} else if flags&fPending != 0 {
		sub.flags = flags &^ fPending
	}

	for l := sub.deps; l != nil; l = l.nextDep {
		dep := l.dep
		depFlags := dep.flags
		if depFlags&fQueued != 0 {
			dep.flags = depFlags &^ fQueued
			rs.run(dep, dep.flags)
		}
	}
}

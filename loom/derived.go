package loom

// Derivation caches the result of a pure recompute function. It is both
// a subscriber of whatever the function reads and a dependency of its
// own readers. Created dirty, so the first read computes.
type Derivation[T comparable] struct {
	n         node
	rs        *ReactiveSystem
	value     T
	recompute func(oldValue T) T
}

func Derived[T comparable](rs *ReactiveSystem, recompute func(oldValue T) T) *Derivation[T] {
	d := &Derivation[T]{
		rs:        rs,
		recompute: recompute,
		n:         node{flags: fMutable | fDirty},
	}
	d.n.ref = d
	return d
}

func (d *Derivation[T]) isGraphAware()    {}
func (d *Derivation[T]) graphNode() *node { return &d.n }

func (d *Derivation[T]) Value() T {
	rs := d.rs
	n := &d.n
	flags := n.flags
	if flags&fDirty != 0 ||
		(flags&fPending != 0 && n.deps != nil && rs.checkDirty(n.deps, n)) {
		if d.refresh() {
			if subs := n.subs; subs != nil {
				rs.shallowPropagate(subs)
			}
		}
	} else if flags&fPending != 0 {
		n.flags = flags &^ fPending
	}

	if rs.activeSub != nil {
		rs.link(n, rs.activeSub)
	} else if rs.activeScope != nil {
		rs.link(n, rs.activeScope)
	}
	return d.value
}

// Re-runs the recompute under fresh tracking, replacing the outgoing
// edge set with exactly what this pass read.
func (d *Derivation[T]) refresh() bool {
	rs := d.rs
	n := &d.n
	prevSub := rs.activeSub
	rs.activeSub = n
	rs.startTracking(n)
	defer func() {
		rs.activeSub = prevSub
		rs.endTracking(n)
	}()

	oldValue := d.value
	d.value = d.recompute(oldValue)
	return d.value != oldValue
}

// A derivation nobody observes anymore drops its own edges and goes
// back to dirty, so a later read recomputes from scratch.
func (d *Derivation[T]) onUnwatched() {
	n := &d.n
	if n.deps != nil {
		n.flags = fMutable | fDirty
		toRemove := n.deps
		for toRemove != nil {
			toRemove = d.rs.unlink(toRemove, n)
		}
	}
}

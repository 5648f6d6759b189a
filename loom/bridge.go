package loom

// Source is the narrow contract an externally owned observable must
// satisfy to be bridged into the graph: a synchronous read plus a
// change subscription returning its own unsubscribe.
type Source[R any] interface {
	Read() R
	OnChange(cb func(R)) (unsubscribe func())
}

// BridgeCell wraps a Source as a lazily subscribing cell. It holds the
// external subscription only while the graph observes it: the first
// tracked read subscribes, and losing the last subscriber unsubscribes.
// Each notification re-derives the projected value and only an actual
// change propagates into the graph.
type BridgeCell[R any, T comparable] struct {
	n             node
	rs            *ReactiveSystem
	src           Source[R]
	project       func(R) T
	previousValue T
	value         T
	unsub         func()
}

func Bridge[R any, T comparable](rs *ReactiveSystem, src Source[R], project func(R) T) *BridgeCell[R, T] {
	b := &BridgeCell[R, T]{
		rs:      rs,
		src:     src,
		project: project,
		n:       node{flags: fMutable},
	}
	b.n.ref = b
	return b
}

func (b *BridgeCell[R, T]) isGraphAware()    {}
func (b *BridgeCell[R, T]) graphNode() *node { return &b.n }

func (b *BridgeCell[R, T]) Value() T {
	rs := b.rs
	tracked := rs.activeSub != nil || rs.activeScope != nil
	if tracked && b.unsub == nil {
		v := b.project(b.src.Read())
		b.previousValue = v
		b.value = v
		b.n.flags = fMutable
		b.unsub = b.src.OnChange(b.sourceChanged)
	}

	if b.n.flags&fDirty != 0 {
		if b.refresh() {
			if subs := b.n.subs; subs != nil {
				rs.shallowPropagate(subs)
			}
		}
	}

	switch {
	case rs.activeSub != nil:
		rs.link(&b.n, rs.activeSub)
	case rs.activeScope != nil:
		rs.link(&b.n, rs.activeScope)
	}

	if b.unsub == nil {
		// Cold read while unobserved: project on demand, no caching.
		return b.project(b.src.Read())
	}
	return b.value
}

func (b *BridgeCell[R, T]) sourceChanged(raw R) {
	v := b.project(raw)
	if b.value == v {
		return
	}
	b.value = v
	b.n.flags = fMutable | fDirty
	if subs := b.n.subs; subs != nil {
		b.rs.propagate(subs)
		if b.rs.batchDepth == 0 {
			b.rs.flush()
		}
	}
}

func (b *BridgeCell[R, T]) refresh() bool {
	b.n.flags = fMutable
	changed := b.previousValue != b.value
	b.previousValue = b.value
	return changed
}

// Fires once per has-subscribers to has-none transition. The external
// subscription ends here; a later tracked read starts a fresh one.
func (b *BridgeCell[R, T]) onUnwatched() {
	if b.unsub != nil {
		unsub := b.unsub
		b.unsub = nil
		unsub()
	}
}

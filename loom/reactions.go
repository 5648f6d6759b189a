package loom

// ReactionRunner holds a side-effecting body. It is a pure subscriber,
// except that a reaction created inside a scope is also a dependency of
// that scope so the group disposes together.
type ReactionRunner struct {
	n  node
	rs *ReactiveSystem
	fn ErrFn
}

func (r *ReactionRunner) isGraphAware()    {}
func (r *ReactionRunner) graphNode() *node { return &r.n }

// Reaction runs fn once synchronously under tracking and re-runs it
// whenever a dependency it actually read changes. The returned disposer
// severs every edge and guarantees the body never runs again; calling
// it more than once is safe.
func Reaction(rs *ReactiveSystem, fn ErrFn) ErrFn {
	r := &ReactionRunner{rs: rs, fn: fn, n: node{flags: fWatching}}
	r.n.ref = r

	if rs.activeSub != nil {
		rs.link(&r.n, rs.activeSub)
	} else if rs.activeScope != nil {
		rs.link(&r.n, rs.activeScope)
	}
	rs.runReaction(r)

	return func() error {
		r.dispose()
		return nil
	}
}

func (rs *ReactiveSystem) runReaction(r *ReactionRunner) {
	n := &r.n
	prevSub := rs.activeSub
	rs.activeSub = n
	rs.startTracking(n)
	if err := r.fn(); err != nil && rs.onError != nil {
		rs.onError(r, err)
	}
	rs.activeSub = prevSub
	rs.endTracking(n)
}

func (r *ReactionRunner) dispose() {
	disposeWatcher(r.rs, &r.n)
}

// A reaction unlinked from its scope is no longer watched by anything,
// so it tears down entirely.
func (r *ReactionRunner) onUnwatched() {
	r.dispose()
}

// ScopeRunner groups the reactions created during its body's
// synchronous execution. It never re-runs the body; during flush it
// only forwards to whichever children were queued.
type ScopeRunner struct {
	n  node
	rs *ReactiveSystem
}

func (s *ScopeRunner) isGraphAware()    {}
func (s *ScopeRunner) graphNode() *node { return &s.n }

func ReactionScope(rs *ReactiveSystem, scopedFn ErrFn) (stopScope ErrFn) {
	s := &ScopeRunner{rs: rs, n: node{flags: fWatching}}
	s.n.ref = s

	if rs.activeScope != nil {
		rs.link(&s.n, rs.activeScope)
	}
	rs.runScope(s, scopedFn)

	return func() error {
		s.dispose()
		return nil
	}
}

func (rs *ReactiveSystem) runScope(s *ScopeRunner, scopedFn ErrFn) {
	n := &s.n
	prevSub := rs.activeSub
	prevScope := rs.activeScope
	rs.activeSub = nil
	rs.activeScope = n
	rs.startTracking(n)
	if err := scopedFn(); err != nil && rs.onError != nil {
		rs.onError(s, err)
	}
	rs.activeScope = prevScope
	rs.activeSub = prevSub
	rs.endTracking(n)
}

func (s *ScopeRunner) dispose() {
	disposeWatcher(s.rs, &s.n)
}

func (s *ScopeRunner) onUnwatched() {
	s.dispose()
}

// Severs all outgoing edges, then the parent-scope edge if any, and
// zeroes the flags so an already-queued node drains as a tombstone.
// Unlinking a scope's children fires their unwatched hooks, which is
// what cascades disposal through the group.
func disposeWatcher(rs *ReactiveSystem, n *node) {
	toRemove := n.deps
	for toRemove != nil {
		toRemove = rs.unlink(toRemove, n)
	}
	if n.subs != nil {
		rs.unlink(n.subs, n.subs.sub)
	}
	n.flags = 0
}

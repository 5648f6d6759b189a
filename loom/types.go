package loom

type nodeFlags uint8

const (
	fMutable nodeFlags = 1 << iota
	fWatching
	fRecursedCheck
	fRecursed
	fDirty
	fPending
	fQueued
)

// edge is a single dependency relationship, spliced into two intrusive
// doubly linked lists at once: the dependency's subscriber list and the
// subscriber's dependency list. version carries the evaluation pass the
// edge was last touched in, so repeat reads collapse to one edge.
type edge struct {
	version          uint64
	dep, sub         *node
	prevDep, nextDep *edge
	prevSub, nextSub *edge
}

// node is the base record shared by every graph participant. ref points
// back at the typed wrapper (cell, derivation, reaction, scope, bridge).
type node struct {
	flags                          nodeFlags
	version                        uint64
	deps, depsTail, subs, subsTail *edge
	ref                            any
}

// edgeStack is the explicit work stack used by the iterative traversals.
type edgeStack struct {
	value *edge
	prev  *edgeStack
}

type ErrFn func() error

// GraphAware is implemented by every public graph member, so error
// callbacks and debug walks can take any of them.
type GraphAware interface {
	isGraphAware()
	graphNode() *node
}

// Readable is any graph member a value can be pulled from.
type Readable[T any] interface {
	Value() T
}

// refresher recomputes a mutable node's value, reporting whether it
// actually changed. Implemented by cells, derivations and bridge cells.
type refresher interface {
	refresh() bool
}

// unwatcher fires when a dependency loses its last subscriber.
type unwatcher interface {
	onUnwatched()
}

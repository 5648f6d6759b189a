package loom

// WriteableCell is a leaf holding a value, the only node type writable
// from outside the graph. previousValue lags behind value until the
// graph observes the write, so batched rewrites that land back on the
// original value resolve to "unchanged".
type WriteableCell[T comparable] struct {
	n             node
	rs            *ReactiveSystem
	previousValue T
	value         T
}

func Cell[T comparable](rs *ReactiveSystem, initialValue T) *WriteableCell[T] {
	c := &WriteableCell[T]{
		rs:            rs,
		previousValue: initialValue,
		value:         initialValue,
		n:             node{flags: fMutable},
	}
	c.n.ref = c
	return c
}

func (c *WriteableCell[T]) isGraphAware()    {}
func (c *WriteableCell[T]) graphNode() *node { return &c.n }

func (c *WriteableCell[T]) Value() T {
	rs := c.rs
	if c.n.flags&fDirty != 0 {
		if c.refresh() {
			if subs := c.n.subs; subs != nil {
				rs.shallowPropagate(subs)
			}
		}
	}
	if rs.activeSub != nil {
		rs.link(&c.n, rs.activeSub)
	}
	return c.value
}

func (c *WriteableCell[T]) SetValue(v T) {
	if c.value == v {
		return
	}
	c.value = v
	c.n.flags = fMutable | fDirty
	if subs := c.n.subs; subs != nil {
		c.rs.propagate(subs)
		if c.rs.batchDepth == 0 {
			c.rs.flush()
		}
	}
}

func (c *WriteableCell[T]) refresh() bool {
	c.n.flags = fMutable
	changed := c.previousValue != c.value
	c.previousValue = c.value
	return changed
}

// Accessor exposes a cell through the dual-purpose closure contract:
// zero arguments reads (linking when a tracking context is active), one
// argument writes. Downstream consumers can compose it without knowing
// anything about the graph.
func Accessor[T comparable](rs *ReactiveSystem, initialValue T) func(vs ...T) T {
	c := Cell(rs, initialValue)
	return func(vs ...T) T {
		if len(vs) > 0 {
			c.SetValue(vs[0])
			return vs[0]
		}
		return c.Value()
	}
}

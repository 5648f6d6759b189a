package loom

type OnErrorFunc func(from GraphAware, err error)

// ReactiveSystem owns one dependency graph. It is the explicit tracking
// context handle: all reads, writes and flushes go through it, on a
// single goroutine. There are no locks because there is no concurrent
// writer.
type ReactiveSystem struct {
	batchDepth  int
	version     uint64
	activeSub   *node
	activeScope *node

	queued      []*node
	notifyIndex int

	onError    OnErrorFunc
	pauseStack []*node
}

func CreateReactiveSystem(onError OnErrorFunc) *ReactiveSystem {
	rs := &ReactiveSystem{onError: onError}
	return rs
}

func (rs *ReactiveSystem) StartBatch() {
	rs.batchDepth++
}

func (rs *ReactiveSystem) EndBatch() {
	rs.batchDepth--
	if rs.batchDepth == 0 {
		rs.flush()
	}
}

func (rs *ReactiveSystem) Batch(cb func()) {
	rs.StartBatch()
	defer rs.EndBatch()
	cb()
}

// PauseTracking suspends dependency collection, so reads inside the
// window do not create edges. Must be paired with ResumeTracking.
func (rs *ReactiveSystem) PauseTracking() {
	rs.pauseStack = append(rs.pauseStack, rs.activeSub)
	rs.activeSub = nil
}

func (rs *ReactiveSystem) ResumeTracking() {
	lastIdx := len(rs.pauseStack) - 1
	rs.activeSub = rs.pauseStack[lastIdx]
	rs.pauseStack = rs.pauseStack[:lastIdx]
}

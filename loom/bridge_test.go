package loom_test

import (
	"strconv"
	"testing"

	"github.com/delaneyj/cellgraph/loom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is a stand-in for an externally owned observable source.
type fakeStore struct {
	value        int
	nextID       int
	callbacks    map[int]func(int)
	subscribes   int
	unsubscribes int
}

func newFakeStore(value int) *fakeStore {
	return &fakeStore{value: value, callbacks: map[int]func(int){}}
}

func (s *fakeStore) Read() int { return s.value }

func (s *fakeStore) OnChange(cb func(int)) func() {
	s.subscribes++
	id := s.nextID
	s.nextID++
	s.callbacks[id] = cb
	return func() {
		s.unsubscribes++
		delete(s.callbacks, id)
	}
}

func (s *fakeStore) set(v int) {
	s.value = v
	for _, cb := range s.callbacks {
		cb(v)
	}
}

// an untracked read projects on demand without subscribing
func TestBridgeUntrackedReadDoesNotSubscribe(t *testing.T) {
	rs := loom.CreateReactiveSystem(func(from loom.GraphAware, err error) {
		assert.FailNow(t, err.Error())
	})

	store := newFakeStore(7)
	b := loom.Bridge(rs, store, strconv.Itoa)

	assert.Equal(t, "7", b.Value())
	assert.Equal(t, 0, store.subscribes)

	store.set(8)
	assert.Equal(t, "8", b.Value())
	assert.Equal(t, 0, store.subscribes)
}

// the first tracked read subscribes, and changes drive the graph
func TestBridgeSubscribesOnFirstTrackedRead(t *testing.T) {
	rs := loom.CreateReactiveSystem(func(from loom.GraphAware, err error) {
		assert.FailNow(t, err.Error())
	})

	store := newFakeStore(1)
	b := loom.Bridge(rs, store, func(v int) int { return v * 10 })

	observed := []int{}
	loom.Reaction(rs, func() error {
		observed = append(observed, b.Value())
		return nil
	})
	assert.Equal(t, 1, store.subscribes)
	assert.Equal(t, []int{10}, observed)

	store.set(2)
	assert.Equal(t, []int{10, 20}, observed)
	assert.Equal(t, 1, store.subscribes)
}

// unchanged projections do not propagate
func TestBridgeProjectionDedup(t *testing.T) {
	rs := loom.CreateReactiveSystem(func(from loom.GraphAware, err error) {
		assert.FailNow(t, err.Error())
	})

	store := newFakeStore(10)
	tens := loom.Bridge(rs, store, func(v int) int { return v / 10 })

	runs := 0
	loom.Reaction(rs, func() error {
		runs++
		tens.Value()
		return nil
	})
	assert.Equal(t, 1, runs)

	store.set(13) // still projects to 1
	assert.Equal(t, 1, runs)
	store.set(27)
	assert.Equal(t, 2, runs)
}

// the external subscription lifetime is exactly bounded by observation
func TestBridgeUnsubscribesWithLastSubscriber(t *testing.T) {
	rs := loom.CreateReactiveSystem(func(from loom.GraphAware, err error) {
		assert.FailNow(t, err.Error())
	})

	store := newFakeStore(1)
	b := loom.Bridge(rs, store, func(v int) int { return v })

	stop := loom.Reaction(rs, func() error {
		b.Value()
		return nil
	})
	assert.Equal(t, 1, store.subscribes)
	assert.Equal(t, 0, store.unsubscribes)

	require.NoError(t, stop())
	assert.Equal(t, 1, store.unsubscribes)

	// disposing again must not double-unsubscribe
	require.NoError(t, stop())
	assert.Equal(t, 1, store.unsubscribes)

	// a fresh observer resubscribes
	stop2 := loom.Reaction(rs, func() error {
		b.Value()
		return nil
	})
	assert.Equal(t, 2, store.subscribes)
	require.NoError(t, stop2())
	assert.Equal(t, 2, store.unsubscribes)
}

// the subscription survives until the last observer is gone
func TestBridgeKeepsSubscriptionWhileObserversRemain(t *testing.T) {
	rs := loom.CreateReactiveSystem(func(from loom.GraphAware, err error) {
		assert.FailNow(t, err.Error())
	})

	store := newFakeStore(1)
	b := loom.Bridge(rs, store, func(v int) int { return v })

	firstGot := 0
	stopFirst := loom.Reaction(rs, func() error {
		firstGot = b.Value()
		return nil
	})
	stopSecond := loom.Reaction(rs, func() error {
		b.Value()
		return nil
	})
	assert.Equal(t, 1, store.subscribes)

	// one observer remains, so the source stays subscribed
	require.NoError(t, stopSecond())
	assert.Equal(t, 0, store.unsubscribes)

	store.set(5)
	assert.Equal(t, 5, firstGot)

	require.NoError(t, stopFirst())
	assert.Equal(t, 1, store.unsubscribes)
}

// derivations over a bridge stay lazy and consistent
func TestBridgeThroughDerivation(t *testing.T) {
	rs := loom.CreateReactiveSystem(func(from loom.GraphAware, err error) {
		assert.FailNow(t, err.Error())
	})

	store := newFakeStore(3)
	b := loom.Bridge(rs, store, func(v int) int { return v })
	squared := loom.Derived(rs, func(oldValue int) int {
		v := b.Value()
		return v * v
	})

	got := 0
	loom.Reaction(rs, func() error {
		got = squared.Value()
		return nil
	})
	assert.Equal(t, 9, got)

	store.set(4)
	assert.Equal(t, 16, got)
}

// source notifications inside a batch defer the flush
func TestBridgeChangeInsideBatch(t *testing.T) {
	rs := loom.CreateReactiveSystem(func(from loom.GraphAware, err error) {
		assert.FailNow(t, err.Error())
	})

	store := newFakeStore(1)
	b := loom.Bridge(rs, store, func(v int) int { return v })

	runs := 0
	got := 0
	loom.Reaction(rs, func() error {
		runs++
		got = b.Value()
		return nil
	})
	runs = 0

	rs.StartBatch()
	store.set(2)
	store.set(3)
	assert.Equal(t, 0, runs)
	rs.EndBatch()

	assert.Equal(t, 1, runs)
	assert.Equal(t, 3, got)
}

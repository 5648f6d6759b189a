package loom_test

import (
	"errors"
	"testing"

	"github.com/delaneyj/cellgraph/loom"
	"github.com/stretchr/testify/assert"
)

// should clear subscriptions when untracked by all subscribers
func TestReactionClearSubsWhenUntracked(t *testing.T) {
	bRunTimes := 0

	rs := loom.CreateReactiveSystem(func(from loom.GraphAware, err error) {
		assert.FailNow(t, err.Error())
	})
	a := loom.Cell(rs, 1)
	b := loom.Derived(rs, func(oldValue int) int {
		bRunTimes++
		return a.Value() * 2
	})
	stopReaction := loom.Reaction(rs, func() error {
		b.Value()
		return nil
	})

	assert.Equal(t, 1, bRunTimes)
	a.SetValue(2)
	assert.Equal(t, 2, bRunTimes)
	stopReaction()
	a.SetValue(3)
	assert.Equal(t, 2, bRunTimes)
}

// should not run untracked inner reaction
func TestShouldNotRunUntrackedInnerReaction(t *testing.T) {
	rs := loom.CreateReactiveSystem(func(from loom.GraphAware, err error) {
		assert.FailNow(t, err.Error())
	})
	a := loom.Cell(rs, 3)
	b := loom.Derived(rs, func(oldValue bool) bool {
		return a.Value() > 0
	})

	loom.Reaction(rs, func() error {
		if b.Value() {
			loom.Reaction(rs, func() error {
				if a.Value() == 0 {
					assert.Fail(t, "bad")
				}
				return nil
			})
		}
		return nil
	})

	decrement := func() {
		a.SetValue(a.Value() - 1)
	}
	decrement()
	decrement()
	decrement()
}

// should run outer reaction first
func TestShouldRunOuterReactionFirst(t *testing.T) {
	rs := loom.CreateReactiveSystem(func(from loom.GraphAware, err error) {
		assert.FailNow(t, err.Error())
	})
	a := loom.Cell(rs, 1)
	b := loom.Cell(rs, 1)

	loom.Reaction(rs, func() error {
		aV := a.Value()
		if aV != 0 {
			loom.Reaction(rs, func() error {
				aV := a.Value()
				b.Value()
				if aV == 0 {
					assert.Fail(t, "bad")
				}
				return nil
			})
		}
		return nil
	})

	rs.StartBatch()
	a.SetValue(0)
	b.SetValue(0)
	rs.EndBatch()
}

// should not trigger inner reaction when resolving maybe dirty
func TestShouldNotTriggerInnerReactionWhenResolveMaybeDirty(t *testing.T) {
	rs := loom.CreateReactiveSystem(func(from loom.GraphAware, err error) {
		assert.FailNow(t, err.Error())
	})
	a := loom.Cell(rs, 0)
	b := loom.Derived(rs, func(oldValue bool) bool {
		return a.Value()%2 == 0
	})

	innerTriggerTimes := 0

	loom.Reaction(rs, func() error {
		loom.Reaction(rs, func() error {
			b.Value()
			innerTriggerTimes++
			if innerTriggerTimes >= 2 {
				assert.Fail(t, "bad")
			}
			return nil
		})
		return nil
	})

	a.SetValue(2)
}

// should trigger inner reactions in sequence
func TestShouldTriggerInnerReactionsInSequence(t *testing.T) {
	rs := loom.CreateReactiveSystem(func(from loom.GraphAware, err error) {
		assert.FailNow(t, err.Error())
	})
	a := loom.Cell(rs, 0)
	b := loom.Cell(rs, 0)
	c := loom.Derived(rs, func(oldValue int) int {
		return a.Value() - b.Value()
	})
	order := []string{}

	loom.Reaction(rs, func() error {
		c.Value()

		loom.Reaction(rs, func() error {
			order = append(order, "first inner")
			a.Value()
			return nil
		})

		loom.Reaction(rs, func() error {
			order = append(order, "last inner")
			a.Value()
			b.Value()
			return nil
		})

		return nil
	})

	order = order[:0]
	rs.StartBatch()
	b.SetValue(1)
	a.SetValue(1)
	rs.EndBatch()

	assert.Equal(t, []string{"first inner", "last inner"}, order)
}

// should trigger inner reactions in sequence in a scope
func TestShouldTriggerInnerReactionsInSequenceInScope(t *testing.T) {
	rs := loom.CreateReactiveSystem(func(from loom.GraphAware, err error) {
		assert.FailNow(t, err.Error())
	})
	a := loom.Cell(rs, 0)
	b := loom.Cell(rs, 0)
	order := []string{}

	loom.ReactionScope(rs, func() error {
		loom.Reaction(rs, func() error {
			order = append(order, "first inner")
			a.Value()
			return nil
		})

		loom.Reaction(rs, func() error {
			order = append(order, "last inner")
			a.Value()
			b.Value()
			return nil
		})

		return nil
	})

	order = order[:0]
	rs.StartBatch()
	b.SetValue(1)
	a.SetValue(1)
	rs.EndBatch()

	assert.Equal(t, []string{"first inner", "last inner"}, order)
}

// should custom reaction support batch
func TestShouldCustomReactionSupportBatch(t *testing.T) {
	rs := loom.CreateReactiveSystem(func(from loom.GraphAware, err error) {
		assert.FailNow(t, err.Error())
	})

	batchReaction := func(fn func() error) loom.ErrFn {
		return loom.Reaction(rs, func() error {
			rs.StartBatch()
			defer rs.EndBatch()
			return fn()
		})
	}

	logs := []string{}
	a := loom.Cell(rs, 0)
	b := loom.Cell(rs, 0)

	aa := loom.Derived(rs, func(oldValue int) int {
		logs = append(logs, "aa-0")
		if a.Value() == 0 {
			b.SetValue(1)
		}
		logs = append(logs, "aa-1")
		return 0
	})

	bb := loom.Derived(rs, func(oldValue int) int {
		logs = append(logs, "bb")
		return b.Value()
	})

	batchReaction(func() error {
		bb.Value()
		return nil
	})

	batchReaction(func() error {
		aa.Value()
		return nil
	})

	assert.Equal(t, []string{"bb", "aa-0", "aa-1", "bb"}, logs)
}

// should not trigger after stop
func TestShouldNotTriggerAfterStop(t *testing.T) {
	rs := loom.CreateReactiveSystem(func(from loom.GraphAware, err error) {
		assert.FailNow(t, err.Error())
	})

	count := loom.Cell(rs, 0)

	triggers := 0

	stopScope := loom.ReactionScope(rs, func() error {
		loom.Reaction(rs, func() error {
			triggers++
			count.Value()
			return nil
		})
		return nil
	})

	assert.Equal(t, 1, triggers)
	count.SetValue(2)
	assert.Equal(t, 2, triggers)
	stopScope()
	count.SetValue(3)
	assert.Equal(t, 2, triggers)
}

// disposers are idempotent
func TestDisposerIdempotent(t *testing.T) {
	rs := loom.CreateReactiveSystem(func(from loom.GraphAware, err error) {
		assert.FailNow(t, err.Error())
	})

	a := loom.Cell(rs, 0)
	runs := 0
	stop := loom.Reaction(rs, func() error {
		runs++
		a.Value()
		return nil
	})

	assert.NoError(t, stop())
	assert.NoError(t, stop())
	a.SetValue(1)
	assert.Equal(t, 1, runs)
}

// reaction errors route to the system callback with the originating member
func TestReactionErrorsRouteToCallback(t *testing.T) {
	var gotFrom loom.GraphAware
	var gotErr error
	rs := loom.CreateReactiveSystem(func(from loom.GraphAware, err error) {
		gotFrom = from
		gotErr = err
	})

	boom := errors.New("boom")
	a := loom.Cell(rs, 0)
	loom.Reaction(rs, func() error {
		if a.Value() > 0 {
			return boom
		}
		return nil
	})

	assert.Nil(t, gotErr)
	a.SetValue(1)
	assert.Equal(t, boom, gotErr)
	assert.NotNil(t, gotFrom)
}

// should pause tracking
func TestShouldPauseTracking(t *testing.T) {
	rs := loom.CreateReactiveSystem(func(from loom.GraphAware, err error) {
		t.FailNow()
	})

	src := loom.Cell(rs, 0)
	c := loom.Derived(rs, func(oldValue int) int {
		rs.PauseTracking()
		value := src.Value()
		rs.ResumeTracking()
		return value
	})
	actualC := c.Value()
	assert.Equal(t, 0, actualC)

	src.SetValue(1)
	actualC = c.Value()
	assert.Equal(t, 0, actualC)
}

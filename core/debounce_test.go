package core

import (
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDebounceCollapsesBurst(t *testing.T) {
	const t0 = 1000000
	d := NewDebouncer(0)

	d.OnEdge(ButtonA, t0)
	d.OnEdge(ButtonA, t0+1)
	d.OnEdge(ButtonA, t0+DebounceWindow-1)

	assert.True(t, d.Take(ButtonA))
	assert.False(t, d.Take(ButtonA), "burst must collapse into one event")
	assert.Equal(t, DebounceStats{Accepted: 1, Rejected: 2}, d.Stats(ButtonA))

	d.OnEdge(ButtonA, t0+DebounceWindow+1)
	assert.True(t, d.Take(ButtonA))
	assert.Equal(t, uint32(2), d.Stats(ButtonA).Accepted)
}

func TestDebounceWindowIsExclusive(t *testing.T) {
	d := NewDebouncer(0)
	d.OnEdge(ButtonB, 500000)
	d.Take(ButtonB)

	d.OnEdge(ButtonB, 500000+DebounceWindow)
	assert.False(t, d.Pending(ButtonB), "edge exactly one window later is still inside it")
}

func TestDebounceAcceptsFirstEdgeAtBoot(t *testing.T) {
	for _, now := range []uint64{0, 1, DebounceWindow} {
		d := NewDebouncer(0)
		d.OnEdge(ButtonA, now)
		assert.True(t, d.Pending(ButtonA), "first edge at %d", now)
	}
}

func TestDebounceLatchesUntilTaken(t *testing.T) {
	d := NewDebouncer(0)
	d.OnEdge(ButtonA, 10)

	assert.True(t, d.Pending(ButtonA))
	assert.True(t, d.Pending(ButtonA), "peeking must not consume")
	assert.True(t, d.Take(ButtonA))
	assert.False(t, d.Pending(ButtonA))
}

func TestDebounceButtonsAreIndependent(t *testing.T) {
	d := NewDebouncer(0)
	d.OnEdge(ButtonA, 100)
	d.OnEdge(ButtonB, 100)

	assert.True(t, d.Take(ButtonA))
	assert.True(t, d.Pending(ButtonB), "taking A must not clear B")
	assert.True(t, d.Take(ButtonB))

	// A's window does not block B
	d.OnEdge(ButtonA, 150)
	d.OnEdge(ButtonB, DebounceWindow+101)
	assert.False(t, d.Pending(ButtonA))
	assert.True(t, d.Pending(ButtonB))
}

func TestDebounceUnknownButton(t *testing.T) {
	d := NewDebouncer(0)
	d.OnEdge(Button(7), 100)
	assert.False(t, d.Take(Button(7)))
	assert.False(t, d.Pending(Button(7)))
	assert.Equal(t, DebounceStats{}, d.Stats(Button(7)))
}

func TestDebounceCustomWindow(t *testing.T) {
	d := NewDebouncer(50)
	d.OnEdge(ButtonA, 0)
	d.Take(ButtonA)
	d.OnEdge(ButtonA, 51)
	assert.True(t, d.Take(ButtonA))
}

func TestEdgeHandlerUsesClock(t *testing.T) {
	clock := &ManualClock{}
	d := NewDebouncer(0)
	handler := d.EdgeHandler(ButtonB, clock)

	clock.Set(300000)
	handler()
	clock.Set(300000 + 10)
	handler()

	assert.Equal(t, DebounceStats{Accepted: 1, Rejected: 1}, d.Stats(ButtonB))
	assert.True(t, d.Take(ButtonB))
}

// Edges arriving on other goroutines while the loop consumes must never be
// lost: every accepted edge is observed by some Take.
func TestDebounceConcurrentTakeLosesNothing(t *testing.T) {
	const edges = 2000
	d := NewDebouncer(1)

	var taken int
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := uint64(0); i < edges; i++ {
			d.OnEdge(ButtonA, i*10)
			// wait for the loop so each accepted edge is a separate event
			for d.Pending(ButtonA) {
				runtime.Gosched()
			}
		}
		close(done)
	}()

	for {
		if d.Take(ButtonA) {
			taken++
			continue
		}
		select {
		case <-done:
			wg.Wait()
			if d.Take(ButtonA) {
				taken++
			}
			assert.Equal(t, edges, taken)
			assert.Equal(t, uint32(edges), d.Stats(ButtonA).Accepted)
			return
		default:
			runtime.Gosched()
		}
	}
}

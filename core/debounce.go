package core

import "sync/atomic"

// Button identifies one of the two push buttons
type Button uint8

const (
	ButtonA Button = iota // increments the digit
	ButtonB               // decrements the digit

	NumButtons = 2
)

// String returns "A" or "B"
func (b Button) String() string {
	switch b {
	case ButtonA:
		return "A"
	case ButtonB:
		return "B"
	default:
		return "?"
	}
}

// DebounceWindow is the quiet interval in microseconds. An edge is accepted
// only if it arrives more than this long after the previous accepted edge on
// the same line.
const DebounceWindow = 200000

// lineState is the per-button state shared between the edge context and
// the main loop. The edge context owns last and armed; pending is set by the
// edge context and cleared by the loop only.
type lineState struct {
	last     uint64
	armed    bool
	pending  uint32
	accepted uint32
	rejected uint32
}

// Debouncer turns raw falling edges into latched pending-event flags
type Debouncer struct {
	window uint64
	lines  [NumButtons]lineState
}

// DebounceStats are the counters of one line
type DebounceStats struct {
	Accepted uint32
	Rejected uint32
}

// NewDebouncer creates a debouncer with the given window in microseconds.
// A zero window selects DebounceWindow.
func NewDebouncer(windowUS uint64) *Debouncer {
	if windowUS == 0 {
		windowUS = DebounceWindow
	}
	return &Debouncer{window: windowUS}
}

// OnEdge records a falling edge seen at now (microseconds).
// Called from interrupt context: constant time, never blocks on the loop.
func (d *Debouncer) OnEdge(b Button, now uint64) {
	if b >= NumButtons {
		return
	}
	line := &d.lines[b]

	state := disableInterrupts()
	accept := !line.armed || now-line.last > d.window
	if accept {
		line.last = now
		line.armed = true
	}
	restoreInterrupts(state)

	if accept {
		atomic.StoreUint32(&line.pending, 1)
		atomic.AddUint32(&line.accepted, 1)
	} else {
		atomic.AddUint32(&line.rejected, 1)
	}
}

// Take reports whether an event is pending on b and clears it in the same
// atomic step, so an edge accepted concurrently is either returned here or
// left latched for the next call.
func (d *Debouncer) Take(b Button) bool {
	if b >= NumButtons {
		return false
	}
	return atomic.SwapUint32(&d.lines[b].pending, 0) != 0
}

// Pending reports whether an event is latched on b without consuming it
func (d *Debouncer) Pending(b Button) bool {
	if b >= NumButtons {
		return false
	}
	return atomic.LoadUint32(&d.lines[b].pending) != 0
}

// Stats returns the accept/reject counters of b
func (d *Debouncer) Stats(b Button) DebounceStats {
	if b >= NumButtons {
		return DebounceStats{}
	}
	line := &d.lines[b]
	return DebounceStats{
		Accepted: atomic.LoadUint32(&line.accepted),
		Rejected: atomic.LoadUint32(&line.rejected),
	}
}

// EdgeHandler returns a closure suitable for a pin interrupt. It captures
// the debouncer and the clock only.
func (d *Debouncer) EdgeHandler(b Button, clock Clock) func() {
	return func() {
		d.OnEdge(b, clock.Micros())
	}
}
